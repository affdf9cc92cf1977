package internal

import (
	"fmt"
	"strings"
	"time"
)

// Month identifies a calendar month used by --month
type Month struct {
	Year  int
	Month time.Month
}

// ParseMonth parses a YYYY-MM value. A single-digit month (2026-2) is accepted.
func ParseMonth(value string) (Month, error) {
	t, err := time.Parse("2006-1", strings.TrimSpace(value))
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q (expected YYYY-MM)", value)
	}
	return Month{Year: t.Year(), Month: t.Month()}, nil
}

// String formats the month as YYYY-MM
func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}

// Contains reports whether t falls within the month in t's own location
func (m Month) Contains(t time.Time) bool {
	return t.Year() == m.Year && t.Month() == m.Month
}

// FilterByClient keeps records whose client_id matches exactly
func FilterByClient(records []ChatRecord, clientID string) []ChatRecord {
	filtered := make([]ChatRecord, 0, len(records))
	for _, rec := range records {
		if rec.ClientID == clientID {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// FilterByMonth keeps records created within the given month
func FilterByMonth(records []ChatRecord, month Month) []ChatRecord {
	filtered := make([]ChatRecord, 0, len(records))
	for _, rec := range records {
		if month.Contains(rec.CreatedAt) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// ExcludeSessions drops every record whose session id is in excluded
func ExcludeSessions(records []ChatRecord, excluded map[string]bool) []ChatRecord {
	if len(excluded) == 0 {
		return records
	}
	filtered := make([]ChatRecord, 0, len(records))
	for _, rec := range records {
		if !excluded[rec.SessionID] {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// InLocation converts every timestamp to loc
func InLocation(records []ChatRecord, loc *time.Location) []ChatRecord {
	if loc == nil {
		return records
	}
	out := make([]ChatRecord, len(records))
	for i, rec := range records {
		rec.CreatedAt = rec.CreatedAt.In(loc)
		out[i] = rec
	}
	return out
}
