package internal

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// OpenDatabase opens a SQLite database in read-only mode
func OpenDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	return db, nil
}

// CreateDatabase opens (creating if needed) a writable SQLite database
func CreateDatabase(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return db, nil
}

// ChatLogsSchema matches the columns of the hosted chat_logs table
const ChatLogsSchema = `
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

// QueryChatLogs returns the raw chat_logs rows, optionally for one client
func QueryChatLogs(db *sql.DB, clientID string) ([]RawChatLog, error) {
	query := "SELECT id, session_id, role, message, created_at, widget_id, origin, client_id FROM chat_logs"
	var args []interface{}
	if clientID != "" {
		query += " WHERE client_id = ?"
		args = append(args, clientID)
	}
	query += " ORDER BY id"

	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	var logs []RawChatLog
	for rows.Next() {
		var raw RawChatLog
		var message, widgetID, origin, clientID sql.NullString
		if err := rows.Scan(&raw.ID, &raw.SessionID, &raw.Role, &message, &raw.CreatedAt, &widgetID, &origin, &clientID); err != nil {
			return nil, fmt.Errorf("scan failed: %w", err)
		}
		raw.Message = message.String
		raw.WidgetID = widgetID.String
		raw.Origin = origin.String
		raw.ClientID = clientID.String
		logs = append(logs, raw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return logs, nil
}

// RawChatLog represents a chat_logs row before role/timestamp parsing
type RawChatLog struct {
	ID        int64
	SessionID string
	Role      string
	Message   string
	CreatedAt string
	WidgetID  string
	Origin    string
	ClientID  string
}

func (raw RawChatLog) column(col string) string {
	switch col {
	case "session_id":
		return raw.SessionID
	case "role":
		return raw.Role
	case "message":
		return raw.Message
	case "created_at":
		return raw.CreatedAt
	case "widget_id":
		return raw.WidgetID
	case "origin":
		return raw.Origin
	case "client_id":
		return raw.ClientID
	}
	return ""
}
