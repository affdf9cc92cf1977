package classify

import (
	"strings"
	"unicode/utf8"

	"github.com/iksnae/chat-transcripts/internal"
)

// MinimalSessions flags sessions with exactly one user message whose trimmed
// text is at most maxLen characters
func MinimalSessions(sessions []*internal.Session, maxLen int) Flags {
	if maxLen <= 0 {
		maxLen = DefaultMinimalMaxLength
	}

	flags := Flags{}
	for _, s := range sessions {
		users := s.UserMessages()
		if len(users) != 1 {
			continue
		}
		text := strings.TrimSpace(users[0].Message)
		if utf8.RuneCountInString(text) <= maxLen {
			flags.add(s.ID, Flag{Reason: ReasonMinimal, Detail: text})
		}
	}
	return flags
}

// Exclusions returns every session that should be left out: test sessions
// first, then minimal sessions not already flagged
func (c *Classifier) Exclusions(sessions []*internal.Session) Flags {
	flags := c.TestSessions(sessions)
	minimal := MinimalSessions(sessions, c.opts.MinimalMaxLength)
	for id, flag := range minimal {
		flags.add(id, flag)
	}
	internal.LogDebug("Excluding %d session(s) (%d minimal)", len(flags), flags.Count(ReasonMinimal))
	return flags
}
