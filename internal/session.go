package internal

import (
	"sort"
	"strings"
	"time"
)

// Session represents the records sharing a session_id, oldest first
type Session struct {
	ID        string       `json:"id" yaml:"id"`
	WidgetID  string       `json:"widget_id" yaml:"widget_id"`
	Origin    string       `json:"origin" yaml:"origin"`
	ClientID  string       `json:"client_id" yaml:"client_id"`
	StartedAt time.Time    `json:"started_at" yaml:"started_at"`
	Messages  []ChatRecord `json:"messages" yaml:"messages"`
}

// ShortID returns the 8 character prefix used in headers
func (s *Session) ShortID() string {
	runes := []rune(s.ID)
	if len(runes) > 8 {
		return string(runes[:8])
	}
	return s.ID
}

// UserMessages returns the customer-authored records in order
func (s *Session) UserMessages() []ChatRecord {
	return s.byRole(RoleUser)
}

// AssistantMessages returns the bot-authored records in order
func (s *Session) AssistantMessages() []ChatRecord {
	return s.byRole(RoleAssistant)
}

func (s *Session) byRole(role Role) []ChatRecord {
	var out []ChatRecord
	for _, msg := range s.Messages {
		if msg.Role == role {
			out = append(out, msg)
		}
	}
	return out
}

// UserText joins every user message with a single space
func (s *Session) UserText() string {
	users := s.UserMessages()
	parts := make([]string, 0, len(users))
	for _, msg := range users {
		parts = append(parts, msg.Message)
	}
	return strings.Join(parts, " ")
}

// GroupSessions groups records by session_id. Messages inside a session are
// sorted by created_at and sessions by their first message; ties keep input order.
func GroupSessions(records []ChatRecord) []*Session {
	index := make(map[string]*Session)
	var sessions []*Session

	for _, rec := range records {
		session, ok := index[rec.SessionID]
		if !ok {
			session = &Session{ID: rec.SessionID}
			index[rec.SessionID] = session
			sessions = append(sessions, session)
		}
		session.Messages = append(session.Messages, rec)
	}

	for _, session := range sessions {
		sort.SliceStable(session.Messages, func(i, j int) bool {
			return session.Messages[i].CreatedAt.Before(session.Messages[j].CreatedAt)
		})
		first := session.Messages[0]
		session.WidgetID = first.WidgetID
		session.Origin = first.Origin
		session.ClientID = first.ClientID
		session.StartedAt = first.CreatedAt
	}

	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})

	return sessions
}
