package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/iksnae/chat-transcripts/internal"
)

const (
	shortDateLayout = "Jan 02, 2006"
	openerMaxLen    = 50
)

// SummaryRow is one line of the summary table
type SummaryRow struct {
	SessionID string    `json:"session_id" yaml:"session_id"`
	StartedAt time.Time `json:"started_at" yaml:"started_at"`
	Date      string    `json:"date" yaml:"date"`
	Customer  string    `json:"customer" yaml:"customer"`
	Widget    string    `json:"widget" yaml:"widget"`
	Messages  int       `json:"messages" yaml:"messages"`
	Opener    string    `json:"opener" yaml:"opener"`
}

// Summarize builds the summary row for a session
func Summarize(s *internal.Session) SummaryRow {
	return SummaryRow{
		SessionID: s.ID,
		StartedAt: s.StartedAt,
		Date:      s.StartedAt.Format(shortDateLayout),
		Customer:  ExtractCustomerName(s),
		Widget:    s.WidgetID,
		Messages:  len(s.Messages),
		Opener:    Opener(s),
	}
}

// SummarizeAll builds summary rows in session order
func SummarizeAll(sessions []*internal.Session) []SummaryRow {
	rows := make([]SummaryRow, 0, len(sessions))
	for _, s := range sessions {
		rows = append(rows, Summarize(s))
	}
	return rows
}

// Opener returns the first user message, trimmed and cut to 50 characters.
// Sessions without a user message have an empty opener.
func Opener(s *internal.Session) string {
	users := s.UserMessages()
	if len(users) == 0 {
		return ""
	}
	return Truncate(strings.TrimSpace(users[0].Message), openerMaxLen)
}

// Truncate cuts text to max characters and marks the cut with "..."
func Truncate(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max]) + "..."
}

// SummaryRenderer writes a fixed-width table with one row per session
type SummaryRenderer struct{}

// Render writes the table followed by the distinct session count
func (r *SummaryRenderer) Render(sessions []*internal.Session, w io.Writer) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%-14s %-16s %-10s %4s  Topic\n", "Date", "Customer", "Widget", "Msgs")
	fmt.Fprintln(bw, strings.Repeat("-", ruleWidth))

	for _, row := range SummarizeAll(sessions) {
		fmt.Fprintf(bw, "%-14s %-16s %-10s %4d  %s\n", row.Date, row.Customer, row.Widget, row.Messages, row.Opener)
	}

	fmt.Fprintf(bw, "\nTotal sessions: %d\n", len(sessions))
	return bw.Flush()
}
