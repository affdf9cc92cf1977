package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iksnae/chat-transcripts/internal"
)

func session(id string, turns ...internal.Turn) *internal.Session {
	return internal.CreateTestSessionWithID(id, turns...)
}

func TestMatchKeywords(t *testing.T) {
	tests := []struct {
		name       string
		session    *internal.Session
		wantFlag   bool
		wantDetail string
	}{
		{
			name:       "whole word",
			session:    session("s1", internal.User("this is a test of the widget")),
			wantFlag:   true,
			wantDetail: "test",
		},
		{
			name:       "case insensitive",
			session:    session("s1", internal.User("TESTING 1 2 3")),
			wantFlag:   true,
			wantDetail: "testing",
		},
		{
			name:       "tester name",
			session:    session("s1", internal.User("Hi it's Ben again")),
			wantFlag:   true,
			wantDetail: "ben",
		},
		{
			name:     "substring only",
			session:  session("s1", internal.User("I want to contest this charge, it is a protest")),
			wantFlag: false,
		},
		{
			name:     "accented continuation is not a word boundary",
			session:  session("s1", internal.User("J'ai testé votre service hier soir")),
			wantFlag: false,
		},
		{
			name:     "digits and underscores continue a word",
			session:  session("s1", internal.User("order test_42 and ben2 are fine")),
			wantFlag: false,
		},
		{
			name:       "whole word after a rejected match",
			session:    session("s1", internal.User("testé puis test")),
			wantFlag:   true,
			wantDetail: "test",
		},
		{
			name:       "accented neighbours outside the word",
			session:    session("s1", internal.User("« test » déjà")),
			wantFlag:   true,
			wantDetail: "test",
		},
		{
			name:     "assistant messages are ignored",
			session:  session("s1", internal.User("hello there"), internal.Bot("This is a test response")),
			wantFlag: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(DefaultOptions())
			flags := Flags{}
			c.MatchKeywords([]*internal.Session{tt.session}, flags)

			assert.Equal(t, tt.wantFlag, flags.Has("s1"))
			if tt.wantFlag {
				assert.Equal(t, ReasonKeyword, flags["s1"].Reason)
				assert.Equal(t, tt.wantDetail, flags["s1"].Detail)
			}
		})
	}
}

func TestMatchKeywords_CustomTerms(t *testing.T) {
	sessions := []*internal.Session{
		session("a", internal.User("qa run number 4")),
		session("b", internal.User("this is a test")),
		session("c", internal.User("price check (beta) please")),
	}

	c := New(Options{TriggerTerms: []string{"QA", "(beta)"}})
	flags := c.TestSessions(sessions)

	assert.True(t, flags.Has("a"))
	assert.False(t, flags.Has("b"), "custom terms replace the defaults")
	assert.Equal(t, map[string]bool{"a": true}, flags.Set())
}

func TestMatchKeywords_Disabled(t *testing.T) {
	c := New(Options{TriggerTerms: []string{}})
	flags := c.TestSessions([]*internal.Session{session("a", internal.User("test test test"))})
	assert.Empty(t, flags)
}

func TestMatchDuplicates(t *testing.T) {
	sessions := []*internal.Session{
		session("tester",
			internal.User("test"),
			internal.User("please confirm the shipment tracking number today")),
		session("copy", internal.User("please confirm the shipment tracking number today, thanks")),
		session("short", internal.User("ok thanks")),
		session("inside", internal.User("shipment tracking number")),
		session("unrelated", internal.User("do you have this jacket in a larger size?")),
	}

	c := New(DefaultOptions())
	flags := c.TestSessions(sessions)

	assert.Equal(t, ReasonKeyword, flags["tester"].Reason)

	require.True(t, flags.Has("copy"))
	assert.Equal(t, ReasonDuplicate, flags["copy"].Reason)
	assert.Equal(t, "tester", flags["copy"].Detail)

	require.True(t, flags.Has("inside"), "a message contained in a flagged message is a duplicate")
	assert.Equal(t, ReasonDuplicate, flags["inside"].Reason)

	assert.False(t, flags.Has("short"), "messages under the length floor are never duplicates")
	assert.False(t, flags.Has("unrelated"))
}

func TestMatchDuplicates_BlankFlaggedMessage(t *testing.T) {
	sessions := []*internal.Session{
		session("tester", internal.User("test"), internal.User("   "), internal.User("")),
		session("real", internal.User("where can I download last month's invoice?")),
	}

	c := New(DefaultOptions())
	flags := c.TestSessions(sessions)

	assert.True(t, flags.Has("tester"))
	assert.False(t, flags.Has("real"), "blank messages never match as substrings")
}

func TestMatchDuplicates_NoUserMessages(t *testing.T) {
	sessions := []*internal.Session{
		session("tester", internal.User("testing the widget greeting message again")),
		session("botonly", internal.Bot("testing the widget greeting message again")),
	}

	flags := Flags{}
	c := New(DefaultOptions())
	c.MatchKeywords(sessions[:1], flags)
	c.MatchDuplicates(sessions, flags)

	assert.True(t, flags.Has("tester"))
	assert.False(t, flags.Has("botonly"))
}

func TestMatchDuplicates_DoesNotChain(t *testing.T) {
	// "second" duplicates "first", but only sessions flagged before the
	// duplicate pass seed the corpus, so "third" is not reached through it.
	sessions := []*internal.Session{
		session("first", internal.User("testing the order status lookup flow")),
		session("second", internal.User("testing the order status lookup flow"), internal.User("my cat knocked the router off the desk")),
		session("third", internal.User("my cat knocked the router off the desk")),
	}

	flags := Flags{}
	c := New(DefaultOptions())
	c.MatchKeywords(sessions[:1], flags)
	c.MatchDuplicates(sessions, flags)

	assert.True(t, flags.Has("first"))
	assert.True(t, flags.Has("second"))
	assert.False(t, flags.Has("third"))
}

func TestMatchSharedWords(t *testing.T) {
	sessions := []*internal.Session{
		session("tester", internal.User("test: What does Fluffington need for a grooming appointment?")),
		session("pet", internal.User("Can I book a bath for Fluffington on Friday")),
		session("common", internal.User("What are your opening hours")),
		session("plain", internal.User("where is my refund")),
	}

	c := New(DefaultOptions())
	flags := c.TestSessions(sessions)

	require.True(t, flags.Has("pet"))
	assert.Equal(t, ReasonSharedWord, flags["pet"].Reason)
	assert.Equal(t, "Fluffington", flags["pet"].Detail)

	assert.False(t, flags.Has("common"), "common capitalized words do not link sessions")
	assert.False(t, flags.Has("plain"))
}

func TestMatchSharedWords_AccentedNames(t *testing.T) {
	sessions := []*internal.Session{
		session("tester", internal.User("test for Renée and Zoë")),
		session("rene", internal.User("Hello, Rene here about my booking")),
		session("renee", internal.User("Can Renée pick up the order")),
	}

	c := New(DefaultOptions())
	flags := c.TestSessions(sessions)

	assert.False(t, flags.Has("rene"), "Rene is not a word inside Renée")
	assert.False(t, flags.Has("renee"))
	assert.Empty(t, capitalizedWords("test for Renée"))
}

func TestMatchSharedWords_NoUserMessages(t *testing.T) {
	sessions := []*internal.Session{
		session("tester", internal.User("test: Fluffington needs a trim")),
		session("botonly", internal.Bot("Hi! Fluffington is booked for Friday")),
		session("empty"),
	}

	c := New(DefaultOptions())
	flags := c.TestSessions(sessions)

	assert.True(t, flags.Has("tester"))
	assert.False(t, flags.Has("botonly"))
	assert.False(t, flags.Has("empty"))
}

func TestMatchSharedWords_CommonWordsOverride(t *testing.T) {
	sessions := []*internal.Session{
		session("tester", internal.User("test with Fluffington")),
		session("pet", internal.User("Is Fluffington ready for pickup")),
	}

	c := New(Options{CommonWords: []string{"Fluffington"}})
	flags := c.TestSessions(sessions)

	assert.False(t, flags.Has("pet"))
}

func TestMatchSharedWords_PreSeeded(t *testing.T) {
	sessions := []*internal.Session{
		session("known", internal.User("Biscuit needs a new collar")),
		session("other", internal.User("Do you sell Biscuit sized harnesses")),
	}

	flags := Flags{"known": {Reason: ReasonKeyword, Detail: "manual"}}
	New(DefaultOptions()).MatchSharedWords(sessions, flags)

	assert.True(t, flags.Has("other"))
	assert.Equal(t, Flag{Reason: ReasonKeyword, Detail: "manual"}, flags["known"], "existing flags are kept")
}

func TestTestSessions_Empty(t *testing.T) {
	c := New(DefaultOptions())
	assert.Empty(t, c.TestSessions(nil))
}

func TestFlags(t *testing.T) {
	flags := Flags{}
	flags.add("b", Flag{Reason: ReasonKeyword, Detail: "test"})
	flags.add("a", Flag{Reason: ReasonMinimal})
	flags.add("b", Flag{Reason: ReasonMinimal})

	assert.Equal(t, ReasonKeyword, flags["b"].Reason, "first flag wins")
	assert.Equal(t, 1, flags.Count(ReasonKeyword))
	assert.Equal(t, map[string]bool{"a": true, "b": true}, flags.Set())
}

func TestNew_Defaults(t *testing.T) {
	opts := New(Options{}).Options()

	assert.Equal(t, DefaultTriggerTerms, opts.TriggerTerms)
	assert.Equal(t, DefaultCommonWords, opts.CommonWords)
	assert.Equal(t, DefaultDuplicateMinLength, opts.DuplicateMinLength)
	assert.Equal(t, DefaultMinimalMaxLength, opts.MinimalMaxLength)
}
