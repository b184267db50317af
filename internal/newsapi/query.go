package newsapi

import (
	"strings"

	"thewire/internal/topics"
)

const (
	// maxKeywordsPerTopic bounds the OR-disjunction sent for one topic.
	maxKeywordsPerTopic = 5
	// queryCeiling caps the combined query text across the active topic
	// set, to stay under the provider's query-length limit.
	queryCeiling = 450
)

// TopicQuery pairs a topic with the provider query built for it.
type TopicQuery struct {
	Topic topics.Topic
	Query string
}

// QuerySet is the bounded set of per-topic queries for one fetch batch.
// Topics that did not fit under the ceiling carry an empty Query and are
// skipped by the orchestrator.
type QuerySet struct {
	Queries []TopicQuery
}

// BuildQuerySet builds one query per active topic, keeping the first N
// keywords in declared order and dropping whatever does not fit under
// the aggregate ceiling. No relevance-based selection.
func BuildQuerySet(active []topics.Topic) QuerySet {
	qs := QuerySet{Queries: make([]TopicQuery, 0, len(active))}
	used := 0

	for _, t := range active {
		var parts []string
		budget := queryCeiling - used
		if used > 0 {
			budget -= len(" OR ") // separator in the aggregate
		}

		for _, kw := range t.Keywords {
			if len(parts) >= maxKeywordsPerTopic {
				break
			}
			candidate := append(append([]string{}, parts...), quoteKeyword(kw))
			if groupLen(candidate) > budget {
				break
			}
			parts = candidate
		}

		query := strings.Join(parts, " OR ")
		if query != "" {
			if used > 0 {
				used += len(" OR ")
			}
			used += groupLen(parts)
		}
		qs.Queries = append(qs.Queries, TopicQuery{Topic: t, Query: query})
	}

	return qs
}

// Aggregate joins the per-topic queries into the combined string the
// ceiling is measured against. Multi-keyword groups are parenthesized.
func (qs QuerySet) Aggregate() string {
	var groups []string
	for _, tq := range qs.Queries {
		if tq.Query == "" {
			continue
		}
		if strings.Contains(tq.Query, " OR ") {
			groups = append(groups, "("+tq.Query+")")
		} else {
			groups = append(groups, tq.Query)
		}
	}
	return strings.Join(groups, " OR ")
}

// quoteKeyword wraps multi-word keywords in quotes so the provider
// treats them as phrases.
func quoteKeyword(kw string) string {
	if strings.ContainsAny(kw, " \t") {
		return `"` + kw + `"`
	}
	return kw
}

// groupLen measures a keyword group as it appears in the aggregate,
// including parentheses around multi-keyword disjunctions.
func groupLen(parts []string) int {
	n := 0
	for i, p := range parts {
		if i > 0 {
			n += len(" OR ")
		}
		n += len(p)
	}
	if len(parts) > 1 {
		n += 2
	}
	return n
}
