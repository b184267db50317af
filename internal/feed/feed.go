// Package feed composes classification, tone filtering and ordering into
// the final article list the dashboard renders and the summary consumes.
package feed

import (
	"fmt"
	"sort"
	"strings"

	"thewire/internal/classify"
	"thewire/internal/metrics"
	"thewire/internal/newsapi"
	"thewire/internal/tone"
	"thewire/internal/topics"
)

// summaryArticleCap bounds the payload handed to the summary
// collaborator.
const summaryArticleCap = 30

// Article is a raw provider article enriched with classification tags
// and the tone annotation. Owned per fetch cycle; never persisted.
type Article struct {
	newsapi.Article
	Tags         []string
	Subjectivity float64
	HighEmotion  bool
}

// Options configures one assembly pass.
type Options struct {
	// Topics in selection order; tag priority derives from this list.
	Topics []topics.Topic
	// ToneFilter drops high-emotion articles when set. Classification
	// always runs first, so topic counts include articles the tone
	// filter later removes from the list.
	ToneFilter bool
	// Analyzer scores subjectivity. Leave nil to skip tone annotation
	// entirely (the filter is then inert).
	Analyzer tone.Analyzer
}

// Feed is the assembled result.
type Feed struct {
	Articles []Article
	// Scanned is the raw input size before dedup and filtering.
	Scanned int
	// Counts maps tag name to the number of articles carrying it.
	Counts map[string]int
}

// Assemble deduplicates by exact title (keeping the first, most recent
// occurrence — input arrives recency-sorted), classifies, tone-filters,
// and preserves recency order throughout. Zero-tag articles are dropped.
func Assemble(raw []newsapi.Article, opts Options) Feed {
	out := Feed{Scanned: len(raw), Counts: make(map[string]int)}
	priority := tagPriority(opts.Topics)

	seenTitles := make(map[string]bool, len(raw))
	duplicates, untagged, toneDropped := 0, 0, 0

	for _, a := range raw {
		if seenTitles[a.Title] {
			duplicates++
			continue
		}
		seenTitles[a.Title] = true

		text := a.Title + " " + a.Description
		tags := classify.Tags(text, opts.Topics)
		if len(tags) == 0 {
			untagged++
			continue
		}
		sortTags(tags, priority)

		enriched := Article{Article: a, Tags: tags}
		if opts.Analyzer != nil {
			enriched.Subjectivity = opts.Analyzer.Subjectivity(text)
			enriched.HighEmotion = tone.HighEmotion(enriched.Subjectivity)
		}

		for _, tag := range tags {
			out.Counts[tag]++
		}

		if opts.ToneFilter && enriched.HighEmotion {
			toneDropped++
			continue
		}

		out.Articles = append(out.Articles, enriched)
	}

	metrics.Global.AddDuplicatesDropped(duplicates)
	metrics.Global.AddUntaggedDropped(untagged)
	metrics.Global.AddToneFiltered(toneDropped)

	return out
}

// tagPriority ranks topic names: custom topics ahead of built-ins, and
// selection order within each kind.
func tagPriority(active []topics.Topic) map[string]int {
	priority := make(map[string]int, len(active))
	for i, t := range active {
		rank := i
		if t.Kind == topics.BuiltIn {
			rank += len(active)
		}
		priority[t.Name] = rank
	}
	return priority
}

func sortTags(tags []string, priority map[string]int) {
	sort.SliceStable(tags, func(i, j int) bool {
		pi, iok := priority[tags[i]]
		pj, jok := priority[tags[j]]
		if iok != jok {
			return iok
		}
		return pi < pj
	})
}

// FilterByTag returns the articles carrying the given tag, preserving
// order.
func (f Feed) FilterByTag(tag string) []Article {
	var out []Article
	for _, a := range f.Articles {
		for _, t := range a.Tags {
			if t == tag {
				out = append(out, a)
				break
			}
		}
	}
	return out
}

// SummaryPayload formats the first articles (at most 30) as one line
// each for the summary collaborator: tags, title, description, content
// excerpt.
func (f Feed) SummaryPayload() string {
	var lines []string
	for i, a := range f.Articles {
		if i >= summaryArticleCap {
			break
		}

		tags := a.Tags
		if len(tags) > 2 {
			tags = tags[:2]
		}

		title := orDefault(a.Title, "No Title")
		desc := orDefault(a.Description, "No Description")
		content := orDefault(a.Content, "No Content")

		lines = append(lines, fmt.Sprintf("Categories: [%s] | Title: %s | Desc: %s | Content: %s",
			strings.Join(tags, ", "), title, desc, content))
	}
	return strings.Join(lines, "\n")
}

func orDefault(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
