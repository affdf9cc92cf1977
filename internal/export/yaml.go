package export

import (
	"io"

	"github.com/iksnae/chat-transcripts/internal"
	"gopkg.in/yaml.v3"
)

// YAMLRenderer writes sessions (or summary rows) as a YAML sequence
type YAMLRenderer struct {
	Summary bool
}

// Render encodes the sessions to w
func (r *YAMLRenderer) Render(sessions []*internal.Session, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	var v interface{}
	switch {
	case r.Summary:
		v = SummarizeAll(sessions)
	case sessions == nil:
		v = []*internal.Session{}
	default:
		v = sessions
	}

	if err := enc.Encode(v); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}
