package testutil

import (
	"database/sql"
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	_ "modernc.org/sqlite"
)

// ChatLogRow is one raw chat_logs row as it appears in an export
type ChatLogRow struct {
	SessionID string
	Role      string
	Message   string
	CreatedAt string
	WidgetID  string
	Origin    string
	ClientID  string
}

// ChatLogColumns is the header written by WriteCSVFixture
var ChatLogColumns = []string{"id", "session_id", "role", "message", "created_at", "widget_id", "origin", "client_id"}

// Session ids in SampleChatLogs
const (
	SampleRealSession    = "a1b2c3d4-real-0001"
	SampleTestSession    = "e5f6a7b8-test-0002"
	SampleDupeSession    = "c9d0e1f2-dupe-0003"
	SampleMinimalSession = "a3b4c5d6-mini-0004"
	SampleJanSession     = "e7f8a9b0-janu-0005"
	SampleOtherClient    = "c1d2e3f4-othr-0006"
)

// SampleChatLogs returns a small export covering every exclusion rule. Rows
// are deliberately out of order.
func SampleChatLogs() []ChatLogRow {
	return []ChatLogRow{
		{SampleRealSession, "assistant", "Hi Maria, let me check that for you.", "2026-02-03 14:06:10+00", "w1", "shop.example.com", "client-1"},
		{SampleRealSession, "user", "Hi, my name is Maria. Where is my order #1234?", "2026-02-03 14:05:00+00", "w1", "shop.example.com", "client-1"},
		{SampleRealSession, "user", "  Thanks, it was placed last week  ", "2026-02-03 14:07:30+00", "w1", "shop.example.com", "client-1"},

		{SampleTestSession, "user", "test", "2026-02-04 09:00:00+00", "w1", "localhost", "client-1"},
		{SampleTestSession, "assistant", "Hello! How can I help?", "2026-02-04 09:00:05+00", "w1", "localhost", "client-1"},
		{SampleTestSession, "user", "please confirm the shipment tracking number today", "2026-02-04 09:01:00+00", "w1", "localhost", "client-1"},

		{SampleDupeSession, "user", "please confirm the shipment tracking number today, thanks", "2026-02-05 10:00:00+00", "w1", "shop.example.com", "client-1"},
		{SampleDupeSession, "assistant", "Your tracking number is on its way.", "2026-02-05 10:00:04+00", "w1", "shop.example.com", "client-1"},

		{SampleMinimalSession, "assistant", "Hi! How can I help today?", "2026-02-06 11:00:00+00", "w1", "shop.example.com", "client-1"},
		{SampleMinimalSession, "user", "ok", "2026-02-06 11:00:09+00", "w1", "shop.example.com", "client-1"},

		{SampleJanSession, "user", "Do you ship to Canada?", "2026-01-20 16:30:00+00", "w2", "shop.example.com", "client-1"},
		{SampleJanSession, "assistant", "Yes we do.", "2026-01-20 16:30:03+00", "w2", "shop.example.com", "client-1"},

		{SampleOtherClient, "user", "I'm Dana, I need to return a jacket", "2026-02-07 08:15:00+00", "w9", "boutique.example.com", "client-2"},
		{SampleOtherClient, "assistant", "Sure Dana, I can help with that.", "2026-02-07 08:15:02+00", "w9", "boutique.example.com", "client-2"},
	}
}

// WriteCSVFixture writes rows as a chat_logs CSV export and returns its path
func WriteCSVFixture(t *testing.T, dir string, rows ...ChatLogRow) string {
	t.Helper()
	path := filepath.Join(dir, "chat_logs.csv")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create CSV fixture: %v", err)
	}
	defer func() { _ = f.Close() }()

	w := csv.NewWriter(f)
	if err := w.Write(ChatLogColumns); err != nil {
		t.Fatalf("Failed to write CSV header: %v", err)
	}
	for i, row := range rows {
		record := []string{
			strconv.Itoa(i + 1), row.SessionID, row.Role, row.Message, row.CreatedAt, row.WidgetID, row.Origin, row.ClientID,
		}
		if err := w.Write(record); err != nil {
			t.Fatalf("Failed to write CSV row: %v", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		t.Fatalf("Failed to flush CSV fixture: %v", err)
	}
	return path
}

// CreateSQLiteFixture creates a SQLite snapshot at dbPath holding rows
func CreateSQLiteFixture(t *testing.T, dbPath string, rows ...ChatLogRow) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		t.Fatalf("Failed to create fixture directory: %v", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	if _, err := db.Exec(chatLogsTable); err != nil {
		t.Fatalf("Failed to create table: %v", err)
	}
	InsertChatLogs(t, db, rows...)
}
