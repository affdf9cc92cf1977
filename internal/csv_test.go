package internal

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/iksnae/chat-transcripts/testutil"
)

func TestReadCSV_Fixture(t *testing.T) {
	data := testutil.LoadFixture(t, "chat_logs.csv")

	records, err := ReadCSV(bytes.NewReader(data), "chat_logs.csv")
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("ReadCSV() returned %d records, want 4", len(records))
	}

	first := records[0]
	if first.SessionID != "9f1c2a7e-0001" || first.Role != RoleUser || first.ClientID != "client-1" {
		t.Errorf("unexpected first record: %+v", first)
	}
	if first.Message != "Hi, I ordered the blue kettle, order #5521" {
		t.Errorf("quoted message with commas = %q", first.Message)
	}
	if !strings.Contains(records[1].Message, "\nOne moment please.") {
		t.Errorf("multi-line message = %q", records[1].Message)
	}
	if records[2].Origin != "" {
		t.Errorf("empty origin = %q, want empty", records[2].Origin)
	}
	if records[3].Message != `It says "delivered" but it isn't here` {
		t.Errorf("escaped quotes = %q", records[3].Message)
	}
	if records[0].CreatedAt.Nanosecond() != 418000000 {
		t.Errorf("fractional seconds lost: %v", records[0].CreatedAt)
	}
}

func TestReadCSV_Errors(t *testing.T) {
	header := "session_id,role,message,created_at,widget_id,origin,client_id\n"

	tests := []struct {
		name       string
		input      string
		wantLine   int
		wantColumn string
		wantText   string
	}{
		{
			name:     "empty file",
			input:    "",
			wantLine: 1,
			wantText: "missing header row",
		},
		{
			name:     "missing columns",
			input:    "session_id,role,message,created_at\ns1,user,hi,2026-02-03 14:05:00+00\n",
			wantLine: 1,
			wantText: "widget_id, origin, client_id",
		},
		{
			name:       "bad timestamp",
			input:      header + "s1,user,hi,2026-02-03 14:05:00+00,w1,web,c1\ns1,user,hi again,not a time,w1,web,c1\n",
			wantLine:   3,
			wantColumn: "created_at",
			wantText:   "not a time",
		},
		{
			name:       "bad role",
			input:      header + "s1,system,hi,2026-02-03 14:05:00+00,w1,web,c1\n",
			wantLine:   2,
			wantColumn: "role",
			wantText:   "system",
		},
		{
			name:     "short row",
			input:    header + "s1,user,hi\n",
			wantLine: 2,
			wantText: "expected 7 fields, got 3",
		},
		{
			name:  "unterminated quote",
			input: header + "s1,user,\"hi,2026-02-03 14:05:00+00,w1,web,c1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.input), "export.csv")
			if err == nil {
				t.Fatal("ReadCSV() expected an error")
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("ReadCSV() error = %T %v, want *ParseError", err, err)
			}
			if pe.Source != "export.csv" {
				t.Errorf("Source = %q, want export.csv", pe.Source)
			}
			if tt.wantLine > 0 && pe.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", pe.Line, tt.wantLine)
			}
			if pe.Column != tt.wantColumn {
				t.Errorf("Column = %q, want %q", pe.Column, tt.wantColumn)
			}
			if tt.wantText != "" && !strings.Contains(err.Error(), tt.wantText) {
				t.Errorf("error %q should mention %q", err.Error(), tt.wantText)
			}
		})
	}
}

func TestReadCSV_ByteOrderMarkAndExtraColumns(t *testing.T) {
	input := "\ufeffsession_id,role,message,created_at,widget_id,origin,client_id,extra\n" +
		"s1,assistant,Hello!,2026-02-03T14:05:00Z,w1,web,c1,ignored\n"

	records, err := ReadCSV(strings.NewReader(input), "bom.csv")
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(records) != 1 || records[0].SessionID != "s1" || records[0].Role != RoleAssistant {
		t.Errorf("unexpected records: %+v", records)
	}
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	records, err := ReadCSV(strings.NewReader("session_id,role,message,created_at,widget_id,origin,client_id\n"), "empty.csv")
	if err != nil {
		t.Fatalf("ReadCSV() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("ReadCSV() returned %d records, want 0", len(records))
	}
}

func TestLoadCSVFile(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	path := filepath.Join(dir, "chat_logs.csv")
	if err := os.WriteFile(path, testutil.LoadFixture(t, "chat_logs.csv"), 0644); err != nil {
		t.Fatalf("failed to write CSV: %v", err)
	}

	records, err := LoadCSVFile(path)
	if err != nil {
		t.Fatalf("LoadCSVFile() error = %v", err)
	}
	if len(records) != 4 {
		t.Errorf("LoadCSVFile() returned %d records, want 4", len(records))
	}

	_, err = LoadCSVFile(filepath.Join(dir, "missing.csv"))
	var se *SourceError
	if !errors.As(err, &se) || se.Op != "open" {
		t.Errorf("LoadCSVFile(missing) error = %v, want open SourceError", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadCSVFile(missing) should wrap os.ErrNotExist")
	}
}
