package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/chat-transcripts/internal"
)

// MarkdownRenderer writes transcripts, or the summary table, as Markdown
type MarkdownRenderer struct {
	Summary bool
}

// Render writes Markdown to w
func (r *MarkdownRenderer) Render(sessions []*internal.Session, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if r.Summary {
		renderMarkdownSummary(bw, sessions)
	} else {
		renderMarkdownTranscripts(bw, sessions)
	}
	return bw.Flush()
}

func renderMarkdownTranscripts(w io.Writer, sessions []*internal.Session) {
	_, _ = fmt.Fprintf(w, "# Chat transcripts\n\n")

	for _, s := range sessions {
		_, _ = fmt.Fprintf(w, "## Session %s\n\n", s.ShortID())
		_, _ = fmt.Fprintf(w, "**Date:** %s  \n", s.StartedAt.Format(longDateLayout))
		_, _ = fmt.Fprintf(w, "**Widget:** %s  \n", s.WidgetID)
		_, _ = fmt.Fprintf(w, "**Origin:** %s  \n", s.Origin)
		_, _ = fmt.Fprintf(w, "**Messages:** %d\n\n", len(s.Messages))

		for _, msg := range s.Messages {
			_, _ = fmt.Fprintf(w, "**[%s] %s:**\n\n%s\n\n",
				msg.CreatedAt.Format(clockLayout), roleLabel(msg, s.WidgetID), escapeMarkdown(strings.TrimSpace(msg.Message)))
		}

		_, _ = fmt.Fprintf(w, "---\n\n")
	}
}

func renderMarkdownSummary(w io.Writer, sessions []*internal.Session) {
	_, _ = fmt.Fprintf(w, "| Date | Customer | Widget | Msgs | Topic |\n")
	_, _ = fmt.Fprintf(w, "|------|----------|--------|-----:|-------|\n")
	for _, row := range SummarizeAll(sessions) {
		_, _ = fmt.Fprintf(w, "| %s | %s | %s | %d | %s |\n",
			row.Date, escapeCell(row.Customer), escapeCell(row.Widget), row.Messages, escapeCell(row.Opener))
	}
	_, _ = fmt.Fprintf(w, "\n**Total sessions:** %d\n", len(sessions))
}

// escapeMarkdown escapes markdown emphasis outside fenced code blocks
func escapeMarkdown(text string) string {
	lines := strings.Split(text, "\n")
	var result []string
	inCodeBlock := false

	for _, line := range lines {
		if strings.HasPrefix(line, "```") {
			inCodeBlock = !inCodeBlock
			result = append(result, line)
		} else if inCodeBlock {
			result = append(result, line)
		} else {
			line = strings.ReplaceAll(line, "**", "\\*\\*")
			line = strings.ReplaceAll(line, "__", "\\_\\_")
			result = append(result, line)
		}
	}

	return strings.Join(result, "\n")
}

// escapeCell keeps a value on one table row
func escapeCell(text string) string {
	text = strings.ReplaceAll(text, "|", "\\|")
	return strings.Join(strings.Fields(text), " ")
}
