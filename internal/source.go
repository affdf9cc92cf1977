package internal

import (
	"context"
	"path/filepath"
	"strings"
)

// SourceKind identifies how an input argument is read
type SourceKind int

const (
	SourceCSV SourceKind = iota
	SourceSQLite
	SourcePostgres
)

func (k SourceKind) String() string {
	switch k {
	case SourceSQLite:
		return "sqlite"
	case SourcePostgres:
		return "postgres"
	default:
		return "csv"
	}
}

// DetectSource picks the loader for an input path or URL
func DetectSource(input string) SourceKind {
	if IsPostgresURL(input) {
		return SourcePostgres
	}
	switch strings.ToLower(filepath.Ext(input)) {
	case ".db", ".sqlite", ".sqlite3":
		return SourceSQLite
	default:
		return SourceCSV
	}
}

// LoadRecords loads every chat record from input. clientID is pushed down to
// database sources; callers still apply FilterByClient for CSV input.
func LoadRecords(ctx context.Context, input, clientID string) ([]ChatRecord, error) {
	switch DetectSource(input) {
	case SourcePostgres:
		return LoadPostgres(ctx, input, clientID)
	case SourceSQLite:
		db, err := OpenDatabase(input)
		if err != nil {
			return nil, &SourceError{Source: input, Op: "open", Err: err}
		}
		defer db.Close()
		return NewStorage(db, input).LoadRecords(clientID)
	default:
		return LoadCSVFile(input)
	}
}
