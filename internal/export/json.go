package export

import (
	"encoding/json"
	"io"

	"github.com/iksnae/chat-transcripts/internal"
)

// JSONRenderer writes all sessions (or summary rows) as one indented JSON array
type JSONRenderer struct {
	Summary bool
}

// Render encodes the sessions to w
func (r *JSONRenderer) Render(sessions []*internal.Session, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	if r.Summary {
		return enc.Encode(SummarizeAll(sessions))
	}
	if sessions == nil {
		sessions = []*internal.Session{}
	}
	return enc.Encode(sessions)
}
