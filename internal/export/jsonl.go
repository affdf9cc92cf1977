package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/chat-transcripts/internal"
)

// JSONLRenderer writes one JSON object per line: a session, or a summary row
type JSONLRenderer struct {
	Summary bool
}

// Render encodes one line per session
func (r *JSONLRenderer) Render(sessions []*internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, s := range sessions {
		var v interface{} = s
		if r.Summary {
			v = Summarize(s)
		}
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("failed to encode session %s: %w", s.ID, err)
		}
	}

	return nil
}
