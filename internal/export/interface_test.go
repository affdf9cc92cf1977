package export

import (
	"strings"
	"testing"
)

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		summary bool
		want    Renderer
		wantErr bool
	}{
		{name: "default is transcript", format: "", want: &TranscriptRenderer{}},
		{name: "text transcript", format: "text", want: &TranscriptRenderer{}},
		{name: "txt alias", format: "txt", want: &TranscriptRenderer{}},
		{name: "text summary", format: "text", summary: true, want: &SummaryRenderer{}},
		{name: "markdown", format: "markdown", want: &MarkdownRenderer{}},
		{name: "md alias summary", format: "md", summary: true, want: &MarkdownRenderer{Summary: true}},
		{name: "json", format: "json", want: &JSONRenderer{}},
		{name: "jsonl summary", format: "jsonl", summary: true, want: &JSONLRenderer{Summary: true}},
		{name: "yaml", format: "yaml", want: &YAMLRenderer{}},
		{name: "yml alias", format: "yml", want: &YAMLRenderer{}},
		{name: "unsupported", format: "pdf", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewRenderer(tt.format, tt.summary)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewRenderer() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr {
				return
			}
			if got == nil {
				t.Fatal("NewRenderer() returned nil renderer")
			}
			if gotType, wantType := typeName(got), typeName(tt.want); gotType != wantType {
				t.Errorf("NewRenderer() = %s, want %s", gotType, wantType)
			}
			if sr, ok := summaryFlag(got); ok {
				if want, _ := summaryFlag(tt.want); sr != want {
					t.Errorf("NewRenderer() summary = %v, want %v", sr, want)
				}
			}
		})
	}
}

func typeName(r Renderer) string {
	switch r.(type) {
	case *TranscriptRenderer:
		return "transcript"
	case *SummaryRenderer:
		return "summary"
	case *MarkdownRenderer:
		return "markdown"
	case *JSONRenderer:
		return "json"
	case *JSONLRenderer:
		return "jsonl"
	case *YAMLRenderer:
		return "yaml"
	}
	return "unknown"
}

func summaryFlag(r Renderer) (bool, bool) {
	switch v := r.(type) {
	case *MarkdownRenderer:
		return v.Summary, true
	case *JSONRenderer:
		return v.Summary, true
	case *JSONLRenderer:
		return v.Summary, true
	case *YAMLRenderer:
		return v.Summary, true
	}
	return false, false
}

func TestNewRenderer_EveryFormat(t *testing.T) {
	for _, format := range Formats {
		if _, err := NewRenderer(format, false); err != nil {
			t.Errorf("NewRenderer(%q) error = %v", format, err)
		}
	}

	_, err := NewRenderer("pdf", false)
	if err == nil || !strings.Contains(err.Error(), strings.Join(Formats, ", ")) {
		t.Errorf("unsupported format error should list %v, got %v", Formats, err)
	}
}
