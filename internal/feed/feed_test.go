package feed

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"thewire/internal/newsapi"
	"thewire/internal/topics"
)

// stubAnalyzer returns a fixed score per exact text.
type stubAnalyzer struct {
	scores map[string]float64
}

func (s stubAnalyzer) Subjectivity(text string) float64 {
	return s.scores[text]
}

func builtIn(t *testing.T, name string, keywords ...string) topics.Topic {
	t.Helper()
	topic, err := topics.NewBuiltIn(name, keywords)
	require.NoError(t, err)
	return topic
}

func custom(t *testing.T, name string) topics.Topic {
	t.Helper()
	topic, err := topics.NewCustom(name)
	require.NoError(t, err)
	return topic
}

func article(title, desc string, day int) newsapi.Article {
	return newsapi.Article{
		Title:       title,
		Description: desc,
		PublishedAt: time.Date(2026, 8, day, 12, 0, 0, 0, time.UTC),
	}
}

func TestAssembleDeduplicatesByTitleKeepingFirst(t *testing.T) {
	tech := builtIn(t, "Tech", "software")

	raw := []newsapi.Article{
		article("Software update ships", "first occurrence", 26),
		article("Software update ships", "second occurrence", 25),
	}

	f := Assemble(raw, Options{Topics: []topics.Topic{tech}})
	require.Len(t, f.Articles, 1)
	require.Equal(t, "first occurrence", f.Articles[0].Description)
	require.Equal(t, 2, f.Scanned)
}

func TestAssembleIdempotent(t *testing.T) {
	tech := builtIn(t, "Tech", "software")
	raw := []newsapi.Article{
		article("Software update ships", "", 26),
		article("Software update ships", "", 25),
		article("Other software news", "", 24),
	}
	opts := Options{Topics: []topics.Topic{tech}}

	once := Assemble(raw, opts)

	again := make([]newsapi.Article, 0, len(once.Articles))
	for _, a := range once.Articles {
		again = append(again, a.Article)
	}
	twice := Assemble(again, opts)

	require.Equal(t, len(once.Articles), len(twice.Articles))
	for i := range once.Articles {
		require.Equal(t, once.Articles[i].Title, twice.Articles[i].Title)
		require.Equal(t, once.Articles[i].Tags, twice.Articles[i].Tags)
	}
}

func TestAssembleDropsUntaggedArticles(t *testing.T) {
	tech := builtIn(t, "Tech", "software")

	raw := []newsapi.Article{
		article("Software update ships", "", 26),
		article("Local bakery wins award", "croissants praised", 25),
	}

	f := Assemble(raw, Options{Topics: []topics.Topic{tech}})
	require.Len(t, f.Articles, 1)
	require.Equal(t, "Software update ships", f.Articles[0].Title)
}

func TestAssemblePreservesRecencyOrder(t *testing.T) {
	tech := builtIn(t, "Tech", "software")

	raw := []newsapi.Article{
		article("software headline one", "", 26),
		article("software headline two", "", 24),
		article("software headline three", "", 22),
	}

	f := Assemble(raw, Options{Topics: []topics.Topic{tech}})
	require.Len(t, f.Articles, 3)
	for i := 1; i < len(f.Articles); i++ {
		require.False(t, f.Articles[i].PublishedAt.After(f.Articles[i-1].PublishedAt))
	}
}

func TestAssembleEpsteinScenario(t *testing.T) {
	epstein := builtIn(t, "Epstein", "epstein", "jeffrey epstein", "ghislaine maxwell")

	raw := []newsapi.Article{
		article("Judge Sets New Hearing Date in Epstein Case", "", 26),
		article("Judge Sets New Hearing Date in Epstein Case", "syndicated copy", 26),
		article("Ghislaine Maxwell's appeal continues", "", 25),
		article("Local bakery wins award", "", 25),
	}

	f := Assemble(raw, Options{Topics: []topics.Topic{epstein}})

	require.Len(t, f.Articles, 2)
	require.Equal(t, "Judge Sets New Hearing Date in Epstein Case", f.Articles[0].Title)
	require.Equal(t, []string{"Epstein"}, f.Articles[0].Tags)
	require.Equal(t, "Ghislaine Maxwell's appeal continues", f.Articles[1].Title)
	require.Equal(t, []string{"Epstein"}, f.Articles[1].Tags)
	require.Equal(t, 2, f.Counts["Epstein"])
}

func TestAssembleCustomTagsOutrankBuiltIns(t *testing.T) {
	tech := builtIn(t, "Tech", "software")
	quantum := custom(t, "Quantum")

	raw := []newsapi.Article{
		article("Quantum software breakthrough", "", 26),
	}

	// Selection order puts the custom topic first; its tag must lead.
	f := Assemble(raw, Options{Topics: []topics.Topic{quantum, tech}})
	require.Len(t, f.Articles, 1)
	require.Equal(t, []string{"Quantum", "Tech"}, f.Articles[0].Tags)

	// Even with the built-in earlier in the selection, the custom tag
	// still sorts first.
	f = Assemble(raw, Options{Topics: []topics.Topic{tech, quantum}})
	require.Equal(t, []string{"Quantum", "Tech"}, f.Articles[0].Tags)
}

func TestAssembleToneFilter(t *testing.T) {
	tech := builtIn(t, "Tech", "software")

	calm := article("software roadmap published", "quarterly plans", 26)
	heated := article("software vendor SLAMMED in furious rant", "outrage grows", 25)

	analyzer := stubAnalyzer{scores: map[string]float64{
		calm.Title + " " + calm.Description:     0.1,
		heated.Title + " " + heated.Description: 0.9,
	}}

	f := Assemble([]newsapi.Article{calm, heated}, Options{
		Topics:     []topics.Topic{tech},
		ToneFilter: true,
		Analyzer:   analyzer,
	})

	require.Len(t, f.Articles, 1)
	require.Equal(t, calm.Title, f.Articles[0].Title)

	// Counts reflect classification, which runs before the tone filter.
	require.Equal(t, 2, f.Counts["Tech"])
}

func TestAssembleToneAnnotationWithoutFilter(t *testing.T) {
	tech := builtIn(t, "Tech", "software")
	heated := article("software vendor SLAMMED", "", 26)

	analyzer := stubAnalyzer{scores: map[string]float64{
		heated.Title + " " + heated.Description: 0.9,
	}}

	f := Assemble([]newsapi.Article{heated}, Options{
		Topics:   []topics.Topic{tech},
		Analyzer: analyzer,
	})

	require.Len(t, f.Articles, 1)
	require.True(t, f.Articles[0].HighEmotion)
	require.InDelta(t, 0.9, f.Articles[0].Subjectivity, 0.001)
}

func TestFilterByTag(t *testing.T) {
	tech := builtIn(t, "Tech", "software")
	stocks := builtIn(t, "Stocks", "earnings")

	raw := []newsapi.Article{
		article("software maker beats earnings", "", 26),
		article("software only story", "", 25),
		article("earnings only story", "", 24),
	}

	f := Assemble(raw, Options{Topics: []topics.Topic{tech, stocks}})

	techOnly := f.FilterByTag("Tech")
	require.Len(t, techOnly, 2)
	stocksOnly := f.FilterByTag("Stocks")
	require.Len(t, stocksOnly, 2)
	require.Empty(t, f.FilterByTag("Nuclear"))
}

func TestSummaryPayloadFormat(t *testing.T) {
	tech := builtIn(t, "Tech", "software")

	raw := []newsapi.Article{
		{
			Title:       "software headline",
			Description: "what happened",
			Content:     "the details",
			PublishedAt: time.Date(2026, 8, 26, 12, 0, 0, 0, time.UTC),
		},
		{
			Title:       "software headline without body",
			PublishedAt: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		},
	}

	f := Assemble(raw, Options{Topics: []topics.Topic{tech}})
	payload := f.SummaryPayload()

	lines := strings.Split(payload, "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "Categories: [Tech] | Title: software headline | Desc: what happened | Content: the details", lines[0])
	require.Equal(t, "Categories: [Tech] | Title: software headline without body | Desc: No Description | Content: No Content", lines[1])
}

func TestSummaryPayloadCapsAtThirty(t *testing.T) {
	tech := builtIn(t, "Tech", "software")

	var raw []newsapi.Article
	for i := 0; i < 40; i++ {
		raw = append(raw, article("software headline "+strings.Repeat("x", i+1), "", 26))
	}

	f := Assemble(raw, Options{Topics: []topics.Topic{tech}})
	require.Len(t, f.Articles, 40)

	lines := strings.Split(f.SummaryPayload(), "\n")
	require.Len(t, lines, 30)
}

func TestSummaryPayloadLimitsTagsToTwo(t *testing.T) {
	a := builtIn(t, "Tech", "software")
	b := builtIn(t, "AI", "software")
	c := builtIn(t, "Stocks", "software")

	f := Assemble([]newsapi.Article{article("software story", "", 26)}, Options{
		Topics: []topics.Topic{a, b, c},
	})
	require.Len(t, f.Articles, 1)
	require.Len(t, f.Articles[0].Tags, 3)

	payload := f.SummaryPayload()
	require.True(t, strings.HasPrefix(payload, "Categories: [Tech, AI] |"))
}

func TestSummaryPayloadEmptyFeed(t *testing.T) {
	f := Assemble(nil, Options{})
	require.Empty(t, f.SummaryPayload())
}
