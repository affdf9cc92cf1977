package internal

import (
	"database/sql"
	"errors"
	"fmt"
)

// Storage reads and writes chat_logs snapshots in a SQLite database
type Storage struct {
	db     *sql.DB
	source string
}

// NewStorage creates a new Storage instance
func NewStorage(db *sql.DB, source string) *Storage {
	return &Storage{db: db, source: source}
}

// LoadRecords loads chat records, optionally restricted to one client
func (s *Storage) LoadRecords(clientID string) ([]ChatRecord, error) {
	logs, err := QueryChatLogs(s.db, clientID)
	if err != nil {
		return nil, &SourceError{Source: s.source, Op: "query", Err: err}
	}

	records := make([]ChatRecord, 0, len(logs))
	for i, raw := range logs {
		rec, err := recordFromRow(raw.column)
		if err != nil {
			var pe *ParseError
			if errors.As(err, &pe) {
				pe.Source = s.source
				pe.Line = i + 1
			}
			return nil, err
		}
		records = append(records, rec)
	}

	LogDebug("Loaded %d record(s) from %s", len(records), s.source)
	return records, nil
}

// SaveRecords creates the chat_logs table if needed and appends records in a
// single transaction
func (s *Storage) SaveRecords(records []ChatRecord) error {
	return s.writeRecords(records, false)
}

// ReplaceRecords swaps the contents of chat_logs for records. The delete and
// the inserts share one transaction, so a failed import keeps the old rows.
func (s *Storage) ReplaceRecords(records []ChatRecord) error {
	return s.writeRecords(records, true)
}

func (s *Storage) writeRecords(records []ChatRecord, replace bool) error {
	if _, err := s.db.Exec(ChatLogsSchema); err != nil {
		return fmt.Errorf("failed to create chat_logs table: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if replace {
		if _, err := tx.Exec("DELETE FROM chat_logs"); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to clear chat_logs: %w", err)
		}
	}

	stmt, err := tx.Prepare("INSERT INTO chat_logs (session_id, role, message, created_at, widget_id, origin, client_id) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		if _, err := stmt.Exec(rec.SessionID, string(rec.Role), rec.Message, FormatTimestamp(rec.CreatedAt), rec.WidgetID, rec.Origin, rec.ClientID); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to insert record for session %s: %w", rec.SessionID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// CountRecords returns the number of rows in chat_logs
func (s *Storage) CountRecords() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM chat_logs").Scan(&n); err != nil {
		return 0, fmt.Errorf("count failed: %w", err)
	}
	return n, nil
}
