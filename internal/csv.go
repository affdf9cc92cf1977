package internal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// LoadCSVFile reads a chat_logs CSV export from disk
func LoadCSVFile(path string) ([]ChatRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &SourceError{Source: path, Op: "open", Err: err}
	}
	defer f.Close()

	return ReadCSV(f, path)
}

// ReadCSV parses a chat_logs CSV export. The header row must contain every
// column in Columns; extra columns such as id are ignored.
func ReadCSV(r io.Reader, source string) ([]ChatRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Source: source, Line: 1, Err: fmt.Errorf("missing header row")}
		}
		return nil, &SourceError{Source: source, Op: "read", Err: err}
	}

	index, err := columnIndex(header)
	if err != nil {
		return nil, &ParseError{Source: source, Line: 1, Err: err}
	}

	var records []ChatRecord
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var csvErr *csv.ParseError
			if errors.As(err, &csvErr) {
				line = csvErr.Line
			}
			return nil, &ParseError{Source: source, Line: line, Err: err}
		}
		line, _ := reader.FieldPos(0)

		if len(row) < len(header) {
			return nil, &ParseError{Source: source, Line: line, Err: fmt.Errorf("expected %d fields, got %d", len(header), len(row))}
		}

		rec, err := recordFromRow(func(col string) string { return row[index[col]] })
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Source = source
				pe.Line = line
			}
			return nil, err
		}
		records = append(records, rec)
	}

	LogDebug("Loaded %d record(s) from %s", len(records), source)
	return records, nil
}

func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, col := range Columns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required column(s): %s", strings.Join(missing, ", "))
	}
	return index, nil
}

// recordFromRow builds a ChatRecord from a column lookup. Any ParseError it
// returns carries the column name; callers fill in source and line.
func recordFromRow(get func(col string) string) (ChatRecord, error) {
	role, err := ParseRole(get("role"))
	if err != nil {
		return ChatRecord{}, &ParseError{Column: "role", Err: err}
	}

	createdAt, err := ParseTimestamp(get("created_at"))
	if err != nil {
		return ChatRecord{}, &ParseError{Column: "created_at", Err: err}
	}

	return ChatRecord{
		SessionID: get("session_id"),
		Role:      role,
		Message:   get("message"),
		CreatedAt: createdAt,
		WidgetID:  get("widget_id"),
		Origin:    get("origin"),
		ClientID:  get("client_id"),
	}, nil
}
