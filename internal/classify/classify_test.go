package classify

import (
	"testing"

	"github.com/stretchr/testify/require"

	"thewire/internal/topics"
)

func mustBuiltIn(t *testing.T, name string, keywords ...string) topics.Topic {
	t.Helper()
	topic, err := topics.NewBuiltIn(name, keywords)
	require.NoError(t, err)
	return topic
}

func TestTagsWordBoundary(t *testing.T) {
	ai := mustBuiltIn(t, "AI", "ai")

	tests := []struct {
		name string
		text string
		want []string
	}{
		{"substring inside word does not match", "He said the deal is paid", nil},
		{"standalone word matches", "AI regulation is coming", []string{"AI"}},
		{"match at start of text", "ai systems are everywhere", []string{"AI"}},
		{"match before punctuation", "The future of AI, explained", []string{"AI"}},
		{"empty text", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Tags(tt.text, []topics.Topic{ai}))
		})
	}
}

func TestTagsPhraseKeyword(t *testing.T) {
	epstein := mustBuiltIn(t, "Epstein", "epstein", "ghislaine maxwell")

	require.Equal(t, []string{"Epstein"}, Tags("Ghislaine Maxwell's appeal continues", []topics.Topic{epstein}))
	require.Empty(t, Tags("Maxwell equation refresher", []topics.Topic{epstein}))
}

func TestTagsCaseInsensitive(t *testing.T) {
	tech := mustBuiltIn(t, "Tech", "semiconductor")

	require.Equal(t, []string{"Tech"}, Tags("SEMICONDUCTOR exports restricted", []topics.Topic{tech}))
}

func TestTagsFirstHitShortCircuits(t *testing.T) {
	// Both keywords match; the topic must still appear once.
	tech := mustBuiltIn(t, "Tech", "software", "hardware")

	require.Equal(t, []string{"Tech"}, Tags("software and hardware reviewed", []topics.Topic{tech}))
}

func TestTagsPreservesSelectionOrder(t *testing.T) {
	tech := mustBuiltIn(t, "Tech", "software")
	stocks := mustBuiltIn(t, "Stocks", "earnings")

	got := Tags("software maker beats earnings estimates", []topics.Topic{stocks, tech})
	require.Equal(t, []string{"Stocks", "Tech"}, got)
}

func TestTagsDeduplicatesRepeatedTopics(t *testing.T) {
	tech := mustBuiltIn(t, "Tech", "software")

	got := Tags("software news", []topics.Topic{tech, tech})
	require.Equal(t, []string{"Tech"}, got)
}

func TestTagsRegexMetacharactersQuoted(t *testing.T) {
	stocks := mustBuiltIn(t, "Stocks", "s&p")

	require.Equal(t, []string{"Stocks"}, Tags("the s&p closed higher", []topics.Topic{stocks}))
}
