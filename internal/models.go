package internal

import (
	"fmt"
	"strings"
	"time"
)

// Role identifies who authored a chat record
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// ChatRecord represents one row of the chat_logs export
type ChatRecord struct {
	SessionID string    `json:"session_id" yaml:"session_id"`
	Role      Role      `json:"role" yaml:"role"`
	Message   string    `json:"message" yaml:"message"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	WidgetID  string    `json:"widget_id" yaml:"widget_id"`
	Origin    string    `json:"origin" yaml:"origin"`
	ClientID  string    `json:"client_id" yaml:"client_id"`
}

// IsUser reports whether the record was written by the customer
func (r ChatRecord) IsUser() bool {
	return r.Role == RoleUser
}

// Columns lists the columns every chat_logs export must carry
var Columns = []string{"session_id", "role", "message", "created_at", "widget_id", "origin", "client_id"}

// ParseRole normalizes a role column value
func ParseRole(value string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "user":
		return RoleUser, nil
	case "assistant":
		return RoleAssistant, nil
	default:
		return "", fmt.Errorf("unknown role %q", value)
	}
}

// Layouts accepted for created_at. Postgres exports use a space separator and
// a short "+00" offset; fractional seconds are accepted by time.Parse implicitly.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05Z07",
	"2006-01-02T15:04:05Z07",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses a created_at value. Values without an offset are UTC.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", value)
}

// FormatTimestamp formats a timestamp the way snapshots store it
func FormatTimestamp(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}
