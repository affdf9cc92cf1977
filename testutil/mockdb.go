package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// chatLogsTable mirrors the hosted chat_logs table
const chatLogsTable = `
	CREATE TABLE IF NOT EXISTS chat_logs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		role TEXT NOT NULL,
		message TEXT,
		created_at TEXT NOT NULL,
		widget_id TEXT,
		origin TEXT,
		client_id TEXT
	)`

// CreateInMemoryDB creates an in-memory SQLite database with an empty chat_logs table
func CreateInMemoryDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create in-memory database: %v", err)
	}
	// every pooled connection would get its own empty :memory: database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(chatLogsTable); err != nil {
		db.Close()
		t.Fatalf("Failed to create chat_logs table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// CreateTestDB creates an in-memory database holding SampleChatLogs
func CreateTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db := CreateInMemoryDB(t)
	InsertChatLogs(t, db, SampleChatLogs()...)
	return db
}

// InsertChatLogs inserts rows into chat_logs in order
func InsertChatLogs(t *testing.T, db *sql.DB, rows ...ChatLogRow) {
	t.Helper()
	for _, row := range rows {
		_, err := db.Exec(
			"INSERT INTO chat_logs (session_id, role, message, created_at, widget_id, origin, client_id) VALUES (?, ?, ?, ?, ?, ?, ?)",
			row.SessionID, row.Role, row.Message, row.CreatedAt, row.WidgetID, row.Origin, row.ClientID,
		)
		if err != nil {
			t.Fatalf("Failed to insert chat log for %s: %v", row.SessionID, err)
		}
	}
}
