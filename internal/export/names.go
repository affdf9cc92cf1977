package export

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/iksnae/chat-transcripts/internal"
)

// UnknownCustomer is shown when no name can be extracted
const UnknownCustomer = "Unknown"

var (
	// "my name is Maria", "this is Maria", "I'm Maria" ...
	introductionPattern = regexp.MustCompile(`(?i:my name(?:'?s| is)|this is|i'm|i am|hey,?\s*this is)\s+([A-Z][\p{L}\p{N}_]+)`)

	// a message signed off with a name: "... thanks. Maria"
	signaturePattern = regexp.MustCompile(`\.\s+([A-Z][a-z]+)\s*$`)

	// the bot greeting the customer by name: "Hi Maria," / "sorry Maria!"
	greetingPattern = regexp.MustCompile(`(?:Hi|Hello|Hey|sorry)\s+\b([A-Z][a-z]+)\b[,!]`)

	introductionExclusions = wordSet("ben", "hugh", "just", "not")
	signatureExclusions    = wordSet("ben", "hugh")
	greetingExclusions     = wordSet("ben", "hugh", "there")
)

func wordSet(words ...string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// ExtractCustomerName guesses the customer's name. Introductions in user
// messages win over signatures, which win over the bot's greetings.
func ExtractCustomerName(s *internal.Session) string {
	users := s.UserMessages()

	for _, msg := range users {
		m := introductionPattern.FindStringSubmatch(msg.Message)
		if m != nil && !introductionExclusions[strings.ToLower(m[1])] {
			return cases.Title(language.Und).String(m[1])
		}
	}

	for _, msg := range users {
		m := signaturePattern.FindStringSubmatch(strings.TrimSpace(msg.Message))
		if m != nil && !signatureExclusions[strings.ToLower(m[1])] {
			return m[1]
		}
	}

	for _, msg := range s.AssistantMessages() {
		m := greetingPattern.FindStringSubmatch(msg.Message)
		if m != nil && !greetingExclusions[strings.ToLower(m[1])] {
			return m[1]
		}
	}

	return UnknownCustomer
}
