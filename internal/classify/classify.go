// Package classify tags articles with the topics whose keywords appear
// in their text. Matching mirrors the query builder's keyword semantics
// so the provider and the classifier agree on what belongs to a topic.
package classify

import (
	"regexp"
	"strings"
	"sync"

	"thewire/internal/topics"
)

var (
	matcherMu    sync.RWMutex
	matcherCache = map[string]*regexp.Regexp{}
)

// matcher compiles a case-insensitive whole-word/phrase pattern for a
// keyword. "ai" must not match inside "said" or "paid", so every keyword
// is anchored on word boundaries.
func matcher(keyword string) *regexp.Regexp {
	matcherMu.RLock()
	re, ok := matcherCache[keyword]
	matcherMu.RUnlock()
	if ok {
		return re
	}

	re = regexp.MustCompile(`\b` + regexp.QuoteMeta(strings.ToLower(keyword)) + `\b`)

	matcherMu.Lock()
	matcherCache[keyword] = re
	matcherMu.Unlock()
	return re
}

// Tags returns the names of the active topics whose keywords match the
// text, preserving the priority order of the selection. A topic matches
// on its first keyword hit; no scoring. Duplicate names are removed
// keeping first-seen order.
func Tags(text string, active []topics.Topic) []string {
	text = strings.ToLower(text)

	var tags []string
	seen := make(map[string]bool, len(active))

	for _, t := range active {
		if seen[t.Name] {
			continue
		}
		for _, kw := range t.Keywords {
			if matcher(kw).MatchString(text) {
				tags = append(tags, t.Name)
				seen[t.Name] = true
				break
			}
		}
	}

	return tags
}
