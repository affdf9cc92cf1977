package internal

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// IsPostgresURL reports whether input names a Postgres connection string
func IsPostgresURL(input string) bool {
	return strings.HasPrefix(input, "postgres://") || strings.HasPrefix(input, "postgresql://")
}

// chatLogsQuery builds the SELECT used against the hosted chat_logs table
func chatLogsQuery(clientID string) (string, []any) {
	query := "SELECT session_id, role, message, created_at, widget_id, origin, client_id FROM chat_logs"
	var args []any
	if clientID != "" {
		query += " WHERE client_id = $1"
		args = append(args, clientID)
	}
	query += " ORDER BY created_at"
	return query, args
}

// LoadPostgres reads chat records straight from a Postgres chat_logs table
func LoadPostgres(ctx context.Context, databaseURL, clientID string) ([]ChatRecord, error) {
	source := redactURL(databaseURL)

	conn, err := pgx.Connect(ctx, databaseURL)
	if err != nil {
		return nil, &SourceError{Source: source, Op: "open", Err: err}
	}
	defer func() { _ = conn.Close(ctx) }()

	query, args := chatLogsQuery(clientID)
	rows, err := conn.Query(ctx, query, args...)
	if err != nil {
		return nil, &SourceError{Source: source, Op: "query", Err: err}
	}

	line := 0
	records, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (ChatRecord, error) {
		line++
		var (
			sessionID, role                   string
			message, widgetID, origin, client *string
			createdAt                         time.Time
		)
		if err := row.Scan(&sessionID, &role, &message, &createdAt, &widgetID, &origin, &client); err != nil {
			return ChatRecord{}, &ParseError{Source: source, Line: line, Err: err}
		}
		parsed, err := ParseRole(role)
		if err != nil {
			return ChatRecord{}, &ParseError{Source: source, Line: line, Column: "role", Err: err}
		}
		return ChatRecord{
			SessionID: sessionID,
			Role:      parsed,
			Message:   deref(message),
			CreatedAt: createdAt,
			WidgetID:  deref(widgetID),
			Origin:    deref(origin),
			ClientID:  deref(client),
		}, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read chat_logs: %w", err)
	}

	LogDebug("Loaded %d record(s) from %s", len(records), source)
	return records, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// redactURL hides the password of a connection string for logs and errors
func redactURL(databaseURL string) string {
	cfg, err := pgx.ParseConfig(databaseURL)
	if err != nil {
		return "postgres"
	}
	return fmt.Sprintf("postgres://%s@%s:%d/%s", cfg.User, cfg.Host, cfg.Port, cfg.Database)
}
