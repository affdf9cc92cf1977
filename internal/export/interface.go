package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/iksnae/chat-transcripts/internal"
)

// Renderer defines the interface for all output formats
type Renderer interface {
	Render(sessions []*internal.Session, w io.Writer) error
}

// Formats lists the supported --format values
var Formats = []string{"text", "markdown", "json", "jsonl", "yaml"}

// NewRenderer creates a renderer for format. summary selects the one-row-per-
// session view instead of full transcripts.
func NewRenderer(format string, summary bool) (Renderer, error) {
	switch format {
	case "", "text", "txt":
		if summary {
			return &SummaryRenderer{}, nil
		}
		return &TranscriptRenderer{}, nil
	case "md", "markdown":
		return &MarkdownRenderer{Summary: summary}, nil
	case "json":
		return &JSONRenderer{Summary: summary}, nil
	case "jsonl":
		return &JSONLRenderer{Summary: summary}, nil
	case "yaml", "yml":
		return &YAMLRenderer{Summary: summary}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: %s)", format, strings.Join(Formats, ", "))
	}
}
