package internal

import (
	"time"

	"github.com/google/uuid"
)

// TestBaseTime is the reference time used by test fixtures
var TestBaseTime = time.Date(2026, time.February, 3, 14, 5, 0, 0, time.UTC)

// Turn is a role/message pair used to build test conversations
type Turn struct {
	Role    Role
	Message string
}

// User builds a customer turn
func User(message string) Turn {
	return Turn{Role: RoleUser, Message: message}
}

// Bot builds an assistant turn
func Bot(message string) Turn {
	return Turn{Role: RoleAssistant, Message: message}
}

// CreateTestRecords creates the records of one conversation, one minute apart
// starting at start
func CreateTestRecords(sessionID string, start time.Time, turns ...Turn) []ChatRecord {
	records := make([]ChatRecord, 0, len(turns))
	for i, turn := range turns {
		records = append(records, ChatRecord{
			SessionID: sessionID,
			Role:      turn.Role,
			Message:   turn.Message,
			CreatedAt: start.Add(time.Duration(i) * time.Minute),
			WidgetID:  "w1",
			Origin:    "web",
			ClientID:  "client-1",
		})
	}
	return records
}

// CreateTestSession creates a grouped session with a random id
func CreateTestSession(turns ...Turn) *Session {
	return CreateTestSessionWithID(uuid.NewString(), turns...)
}

// CreateTestSessionWithID creates a grouped session with the given id
func CreateTestSessionWithID(id string, turns ...Turn) *Session {
	sessions := GroupSessions(CreateTestRecords(id, TestBaseTime, turns...))
	if len(sessions) == 0 {
		return &Session{ID: id, StartedAt: TestBaseTime, WidgetID: "w1", Origin: "web", ClientID: "client-1"}
	}
	return sessions[0]
}
