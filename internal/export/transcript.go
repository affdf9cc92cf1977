package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/chat-transcripts/internal"
)

const (
	ruleWidth      = 70
	longDateLayout = "January 02, 2006"
	clockLayout    = "03:04 PM"
)

// TranscriptRenderer writes every session as a bordered plain-text block
type TranscriptRenderer struct{}

// Render writes the full transcript of each session, oldest session first
func (r *TranscriptRenderer) Render(sessions []*internal.Session, w io.Writer) error {
	bw := bufio.NewWriter(w)
	rule := strings.Repeat("=", ruleWidth)

	for _, s := range sessions {
		fmt.Fprintln(bw, rule)
		fmt.Fprintf(bw, "Session: %s...\n", s.ShortID())
		fmt.Fprintf(bw, "Date: %s | Widget: %s | Origin: %s\n", s.StartedAt.Format(longDateLayout), s.WidgetID, s.Origin)
		fmt.Fprintln(bw, rule)

		for _, msg := range s.Messages {
			fmt.Fprintf(bw, "\n[%s] %s:\n", msg.CreatedAt.Format(clockLayout), roleLabel(msg, s.WidgetID))
			fmt.Fprintln(bw, strings.TrimSpace(msg.Message))
		}
		fmt.Fprint(bw, "\n\n")
	}

	return bw.Flush()
}

// roleLabel names the author the way support staff read transcripts
func roleLabel(msg internal.ChatRecord, widgetID string) string {
	if msg.IsUser() {
		return "Customer"
	}
	return fmt.Sprintf("Bot (%s)", widgetID)
}
