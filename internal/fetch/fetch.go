// Package fetch fans one worker per topic out against the provider,
// merges the partial results, and caches the merged list by request
// shape.
package fetch

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"thewire/internal/cache"
	"thewire/internal/metrics"
	"thewire/internal/newsapi"
	"thewire/internal/topics"
)

const (
	// maxWorkers bounds the concurrent provider calls per batch.
	maxWorkers = 10
	// DefaultTTL is how long a merged result stays valid for an
	// identical request shape.
	DefaultTTL = 6 * time.Hour
)

// Worker executes one topic's query. newsapi.Client satisfies this; tests
// substitute call-counting stubs.
type Worker interface {
	FetchTopic(ctx context.Context, query string, sourceIDs []string, window newsapi.Window) []newsapi.Article
}

// Request is the fetch request shape: the tuple that keys the result
// cache. Topic and source order do not affect the key.
type Request struct {
	Topics  []topics.Topic
	Sources []string
	From    time.Time
	To      time.Time
}

// CacheKey canonicalizes the request shape. Topics and sources are
// sorted so insertion order never splits the cache.
func (r Request) CacheKey() string {
	names := make([]string, len(r.Topics))
	for i, t := range r.Topics {
		names[i] = t.Name
	}
	sort.Strings(names)

	srcs := make([]string, len(r.Sources))
	copy(srcs, r.Sources)
	sort.Strings(srcs)

	var b strings.Builder
	b.WriteString("fetch|")
	b.WriteString(strings.Join(names, ","))
	b.WriteString("|")
	b.WriteString(strings.Join(srcs, ","))
	b.WriteString("|")
	b.WriteString(r.From.Format("2006-01-02"))
	b.WriteString("|")
	b.WriteString(r.To.Format("2006-01-02"))
	return b.String()
}

// Orchestrator owns the worker fan-out and the result cache. It holds no
// other state between invocations.
type Orchestrator struct {
	worker Worker
	cache  *cache.Cache
	ttl    time.Duration
}

func New(worker Worker, c *cache.Cache, ttl time.Duration) *Orchestrator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Orchestrator{worker: worker, cache: c, ttl: ttl}
}

// Fetch returns the merged, tombstone-filtered, recency-sorted article
// list for the request. Identical requests inside the TTL window return
// the cached list without touching the provider. A fully empty result is
// a valid outcome, not an error.
func (o *Orchestrator) Fetch(ctx context.Context, req Request) []newsapi.Article {
	start := time.Now()
	defer func() {
		metrics.Global.RecordFetchTime(time.Since(start))
		metrics.Global.SetLastRun()
	}()

	key := req.CacheKey()
	if cached, ok := o.cache.Get(key); ok {
		if articles, ok := cached.([]newsapi.Article); ok {
			metrics.Global.IncrementCacheHits()
			slog.Debug("fetch cache hit", "key", key, "articles", len(articles))
			return articles
		}
	}
	metrics.Global.IncrementCacheMisses()

	qs := newsapi.BuildQuerySet(req.Topics)
	window := newsapi.Window{From: req.From, To: req.To}

	partials := make([][]newsapi.Article, len(qs.Queries))
	var wg sync.WaitGroup
	sem := make(chan struct{}, maxWorkers)

	for i, tq := range qs.Queries {
		if tq.Query == "" {
			continue
		}
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			partials[i] = o.worker.FetchTopic(ctx, query, req.Sources, window)
		}(i, tq.Query)
	}
	wg.Wait()

	var merged []newsapi.Article
	tombstones := 0
	for _, partial := range partials {
		for _, a := range partial {
			if a.Tombstone() {
				tombstones++
				continue
			}
			merged = append(merged, a)
		}
	}

	// Global recency sort: cross-topic interleaving is determined by
	// timestamp, not dispatch order.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PublishedAt.After(merged[j].PublishedAt)
	})

	metrics.Global.AddTopicsFetched(len(qs.Queries))
	metrics.Global.AddArticlesFetched(len(merged))
	metrics.Global.AddTombstonesDropped(tombstones)

	o.cache.Set(key, merged, o.ttl)
	slog.Info("fetch batch complete",
		"topics", len(qs.Queries),
		"articles", len(merged),
		"tombstones", tombstones,
		"elapsed", time.Since(start))

	return merged
}
