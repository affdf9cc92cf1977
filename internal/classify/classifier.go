// Package classify decides which chat sessions are internal test traffic or
// noise and should be left out of transcripts.
//
// A session is test traffic when any of three heuristics fires. They run in a
// fixed order and each one sees the sessions flagged by the ones before it:
//
//  1. keyword: a user message contains a trigger term as a whole word.
//  2. duplicate: a user message of at least DuplicateMinLength characters is a
//     substring of a user message from a flagged session, or the reverse.
//  3. shared-word: the session's user text shares an uncommon capitalized word
//     with a flagged session.
//
// Minimal sessions (one short user message) are reported separately by
// MinimalSessions and combined with the test flags by Exclusions.
package classify

import (
	"regexp"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iksnae/chat-transcripts/internal"
)

// Reason names the rule that excluded a session
type Reason string

const (
	ReasonKeyword    Reason = "keyword"
	ReasonDuplicate  Reason = "duplicate"
	ReasonSharedWord Reason = "shared-word"
	ReasonMinimal    Reason = "minimal"
)

// Flag records why a session was excluded
type Flag struct {
	Reason Reason
	Detail string
}

// Flags maps session ids to the first rule that flagged them
type Flags map[string]Flag

// Has reports whether id is flagged
func (f Flags) Has(id string) bool {
	_, ok := f[id]
	return ok
}

// add flags id unless it is already flagged
func (f Flags) add(id string, flag Flag) {
	if !f.Has(id) {
		f[id] = flag
	}
}

// Set returns the flagged ids as a lookup set
func (f Flags) Set() map[string]bool {
	set := make(map[string]bool, len(f))
	for id := range f {
		set[id] = true
	}
	return set
}

// Count returns how many sessions were flagged for reason
func (f Flags) Count(reason Reason) int {
	n := 0
	for _, flag := range f {
		if flag.Reason == reason {
			n++
		}
	}
	return n
}

var (
	// DefaultTriggerTerms are the words testers type into the widget
	DefaultTriggerTerms = []string{"ben", "testing", "test", "hugh"}

	// DefaultCommonWords are capitalized words too common to link sessions
	DefaultCommonWords = []string{
		"What", "This", "That", "Yeah", "Does", "Have",
		"Here", "Tell", "Show", "Think", "Just", "About",
	}
)

const (
	DefaultDuplicateMinLength = 20
	DefaultMinimalMaxLength   = 5
)

// Options tunes the heuristics. Nil slices and zero lengths select defaults;
// an empty non-nil TriggerTerms disables keyword matching.
type Options struct {
	TriggerTerms       []string
	CommonWords        []string
	DuplicateMinLength int
	MinimalMaxLength   int
}

// DefaultOptions returns the stock heuristic settings
func DefaultOptions() Options {
	return Options{
		TriggerTerms:       DefaultTriggerTerms,
		CommonWords:        DefaultCommonWords,
		DuplicateMinLength: DefaultDuplicateMinLength,
		MinimalMaxLength:   DefaultMinimalMaxLength,
	}
}

func (o Options) withDefaults() Options {
	if o.TriggerTerms == nil {
		o.TriggerTerms = DefaultTriggerTerms
	}
	if o.CommonWords == nil {
		o.CommonWords = DefaultCommonWords
	}
	if o.DuplicateMinLength <= 0 {
		o.DuplicateMinLength = DefaultDuplicateMinLength
	}
	if o.MinimalMaxLength <= 0 {
		o.MinimalMaxLength = DefaultMinimalMaxLength
	}
	return o
}

var capitalizedWord = regexp.MustCompile(`\b[A-Z][a-z]{3,}\b`)

// isWordRune reports whether r continues a word. RE2's \b only knows ASCII,
// so matches next to accented letters are rejected with this.
func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// findWords returns the matches of re that stand alone as whole words
func findWords(re *regexp.Regexp, text string) []string {
	var words []string
	for _, loc := range re.FindAllStringIndex(text, -1) {
		if loc[0] > 0 {
			if r, _ := utf8.DecodeLastRuneInString(text[:loc[0]]); isWordRune(r) {
				continue
			}
		}
		if loc[1] < len(text) {
			if r, _ := utf8.DecodeRuneInString(text[loc[1]:]); isWordRune(r) {
				continue
			}
		}
		words = append(words, text[loc[0]:loc[1]])
	}
	return words
}

// Classifier flags test sessions. It holds no state between calls.
type Classifier struct {
	opts    Options
	trigger *regexp.Regexp
	common  map[string]bool
}

// New builds a Classifier from opts
func New(opts Options) *Classifier {
	opts = opts.withDefaults()

	c := &Classifier{
		opts:    opts,
		trigger: triggerPattern(opts.TriggerTerms),
		common:  make(map[string]bool, len(opts.CommonWords)),
	}
	for _, w := range opts.CommonWords {
		c.common[w] = true
	}
	return c
}

// Options returns the effective settings
func (c *Classifier) Options() Options {
	return c.opts
}

func triggerPattern(terms []string) *regexp.Regexp {
	var quoted []string
	for _, term := range terms {
		if term = strings.TrimSpace(term); term != "" {
			quoted = append(quoted, regexp.QuoteMeta(term))
		}
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(quoted, "|") + `)\b`)
}

// TestSessions runs the three heuristics in order and returns the flagged sessions
func (c *Classifier) TestSessions(sessions []*internal.Session) Flags {
	flags := Flags{}
	c.MatchKeywords(sessions, flags)
	c.MatchDuplicates(sessions, flags)
	c.MatchSharedWords(sessions, flags)

	internal.LogDebug("Test sessions: %d keyword, %d duplicate, %d shared-word",
		flags.Count(ReasonKeyword), flags.Count(ReasonDuplicate), flags.Count(ReasonSharedWord))
	return flags
}

// MatchKeywords flags sessions whose user messages contain a trigger term
func (c *Classifier) MatchKeywords(sessions []*internal.Session, flags Flags) {
	if c.trigger == nil {
		return
	}
	for _, s := range sessions {
		if flags.Has(s.ID) {
			continue
		}
		for _, msg := range s.UserMessages() {
			if terms := findWords(c.trigger, msg.Message); len(terms) > 0 {
				flags.add(s.ID, Flag{Reason: ReasonKeyword, Detail: strings.ToLower(terms[0])})
				break
			}
		}
	}
}

// MatchDuplicates flags sessions that repeat user text from already flagged
// sessions. The corpus is fixed before matching starts, so sessions flagged
// here do not feed further duplicates.
func (c *Classifier) MatchDuplicates(sessions []*internal.Session, flags Flags) {
	type corpusEntry struct {
		text      string
		sessionID string
	}

	seen := make(map[string]bool)
	var corpus []corpusEntry
	for _, s := range sessions {
		if !flags.Has(s.ID) {
			continue
		}
		for _, msg := range s.UserMessages() {
			text := strings.TrimSpace(msg.Message)
			if text == "" || seen[text] {
				continue
			}
			seen[text] = true
			corpus = append(corpus, corpusEntry{text: text, sessionID: s.ID})
		}
	}
	if len(corpus) == 0 {
		return
	}

	for _, s := range sessions {
		if flags.Has(s.ID) {
			continue
		}
	messages:
		for _, msg := range s.UserMessages() {
			text := strings.TrimSpace(msg.Message)
			if text == "" || utf8.RuneCountInString(text) < c.opts.DuplicateMinLength {
				continue
			}
			for _, entry := range corpus {
				if strings.Contains(entry.text, text) || strings.Contains(text, entry.text) {
					flags.add(s.ID, Flag{Reason: ReasonDuplicate, Detail: entry.sessionID})
					break messages
				}
			}
		}
	}
}

// MatchSharedWords flags sessions sharing an uncommon capitalized word with a
// session flagged before this pass
func (c *Classifier) MatchSharedWords(sessions []*internal.Session, flags Flags) {
	type flaggedWords struct {
		sessionID string
		words     map[string]bool
	}

	var known []flaggedWords
	for _, s := range sessions {
		if flags.Has(s.ID) {
			known = append(known, flaggedWords{sessionID: s.ID, words: capitalizedWords(s.UserText())})
		}
	}
	if len(known) == 0 {
		return
	}

	for _, s := range sessions {
		if flags.Has(s.ID) {
			continue
		}
		words := capitalizedWords(s.UserText())
		if len(words) == 0 {
			continue
		}
		for _, k := range known {
			if shared := c.sharedWords(words, k.words); len(shared) > 0 {
				flags.add(s.ID, Flag{Reason: ReasonSharedWord, Detail: strings.Join(shared, ",")})
				break
			}
		}
	}
}

func (c *Classifier) sharedWords(a, b map[string]bool) []string {
	var shared []string
	for w := range a {
		if b[w] && !c.common[w] {
			shared = append(shared, w)
		}
	}
	sort.Strings(shared)
	return shared
}

func capitalizedWords(text string) map[string]bool {
	words := make(map[string]bool)
	for _, w := range findWords(capitalizedWord, text) {
		words[w] = true
	}
	return words
}
