package internal

import "fmt"

// SourceError represents errors opening or reading an input source
type SourceError struct {
	Source string
	Op     string // "open", "read", "query"
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("source error: %s %s: %v", e.Op, e.Source, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}

// ParseError represents a malformed row or value in an input source
type ParseError struct {
	Source string
	Line   int    // 1-based line or row number, 0 when unknown
	Column string // column name, empty for row-level failures
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("parse error [%s] line %d: %v", e.Source, e.Line, e.Err)
	}
	return fmt.Sprintf("parse error [%s] line %d column %s: %v", e.Source, e.Line, e.Column, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ExportError represents errors while rendering output
type ExportError struct {
	Format string
	Path   string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error [%s] %s: %v", e.Format, e.Path, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
