package metrics

import (
	"sync"
	"time"
)

// Metrics tracks pipeline counters for the monitoring endpoints.
type Metrics struct {
	mu sync.RWMutex

	// Fetch counters
	ProviderCalls     int64
	ProviderFailures  int64
	TopicsFetched     int64
	ArticlesFetched   int64
	TombstonesDropped int64
	CacheHits         int64
	CacheMisses       int64

	// Assembly counters
	DuplicatesDropped int64
	UntaggedDropped   int64
	ToneFiltered      int64

	// Summary counters
	SummaryCalls    int64
	SummaryFailures int64

	// Timings
	LastFetchTime    time.Duration
	TotalFetchTime   time.Duration
	AverageFetchTime time.Duration
	FetchCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) add(field *int64, n int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	*field += n
}

func (m *Metrics) AddProviderCalls(n int)     { m.add(&m.ProviderCalls, int64(n)) }
func (m *Metrics) AddProviderFailures(n int)  { m.add(&m.ProviderFailures, int64(n)) }
func (m *Metrics) AddTopicsFetched(n int)     { m.add(&m.TopicsFetched, int64(n)) }
func (m *Metrics) AddArticlesFetched(n int)   { m.add(&m.ArticlesFetched, int64(n)) }
func (m *Metrics) AddTombstonesDropped(n int) { m.add(&m.TombstonesDropped, int64(n)) }
func (m *Metrics) IncrementCacheHits()        { m.add(&m.CacheHits, 1) }
func (m *Metrics) IncrementCacheMisses()      { m.add(&m.CacheMisses, 1) }
func (m *Metrics) AddDuplicatesDropped(n int) { m.add(&m.DuplicatesDropped, int64(n)) }
func (m *Metrics) AddUntaggedDropped(n int)   { m.add(&m.UntaggedDropped, int64(n)) }
func (m *Metrics) AddToneFiltered(n int)      { m.add(&m.ToneFiltered, int64(n)) }
func (m *Metrics) IncrementSummaryCalls()     { m.add(&m.SummaryCalls, 1) }
func (m *Metrics) IncrementSummaryFailures()  { m.add(&m.SummaryFailures, 1) }

func (m *Metrics) RecordFetchTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastFetchTime = duration
	m.TotalFetchTime += duration
	m.FetchCount++

	if m.FetchCount > 0 {
		m.AverageFetchTime = m.TotalFetchTime / time.Duration(m.FetchCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"provider_calls":        m.ProviderCalls,
		"provider_failures":     m.ProviderFailures,
		"topics_fetched":        m.TopicsFetched,
		"articles_fetched":      m.ArticlesFetched,
		"tombstones_dropped":    m.TombstonesDropped,
		"cache_hits":            m.CacheHits,
		"cache_misses":          m.CacheMisses,
		"duplicates_dropped":    m.DuplicatesDropped,
		"untagged_dropped":      m.UntaggedDropped,
		"tone_filtered":         m.ToneFiltered,
		"summary_calls":         m.SummaryCalls,
		"summary_failures":      m.SummaryFailures,
		"last_fetch_time_ms":    m.LastFetchTime.Milliseconds(),
		"average_fetch_time_ms": m.AverageFetchTime.Milliseconds(),
		"last_run_time":         m.LastRunTime.Format(time.RFC3339),
		"last_error_time":       m.LastErrorTime.Format(time.RFC3339),
		"last_error":            m.LastError,
		"is_healthy":            m.IsHealthy,
	}
}
