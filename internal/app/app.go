// Package app wires the pipeline together for one dashboard session:
// resolve the topic selection, fetch, assemble, render, and optionally
// generate the AI overview.
package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"thewire/internal/cache"
	"thewire/internal/config"
	"thewire/internal/feed"
	"thewire/internal/fetch"
	"thewire/internal/gemini"
	"thewire/internal/logger"
	"thewire/internal/newsapi"
	"thewire/internal/ratelimit"
	"thewire/internal/sources"
	"thewire/internal/tone"
	"thewire/internal/topics"
)

// easternOffset anchors "today" to US Eastern so a late-evening run
// still covers the current news day.
var easternOffset = time.FixedZone("UTC-5", -5*60*60)

type App struct {
	cfg      *config.Config
	index    *topics.Index
	srcMap   *sources.Mapping
	orch     *fetch.Orchestrator
	analyzer tone.Analyzer
	summary  *gemini.Client
	out      io.Writer
}

func New(ctx context.Context, cfg *config.Config, out io.Writer) (*App, error) {
	index, err := loadTopicIndex(cfg)
	if err != nil {
		return nil, err
	}
	srcMap, err := loadSourceMapping(cfg)
	if err != nil {
		return nil, err
	}

	pool := newsapi.NewCredentialPool(cfg.NewsAPIKeys, cfg.KeyCooldown)
	client := newsapi.NewClient(pool)
	store := cache.New()
	orch := fetch.New(client, store, cfg.CacheTTL)

	a := &App{
		cfg:    cfg,
		index:  index,
		srcMap: srcMap,
		orch:   orch,
		out:    out,
	}

	if cfg.ToneFilter {
		a.analyzer = tone.NewVaderAnalyzer()
	}

	if cfg.EnableSummary {
		budget := ratelimit.NewBudget(cfg.MaxSummaryRequests, 24*time.Hour)
		summary, err := gemini.NewClient(ctx, cfg.GeminiAPIKey, store, budget)
		if err != nil {
			return nil, err
		}
		a.summary = summary
	}

	return a, nil
}

func (a *App) Close() {
	if a.summary != nil {
		a.summary.Close()
	}
}

func loadTopicIndex(cfg *config.Config) (*topics.Index, error) {
	if cfg.TopicsConfigPath != "" {
		return topics.LoadIndex(cfg.TopicsConfigPath)
	}
	return topics.DefaultIndex(), nil
}

func loadSourceMapping(cfg *config.Config) (*sources.Mapping, error) {
	if cfg.SourcesConfigPath != "" {
		return sources.Load(cfg.SourcesConfigPath)
	}
	return sources.Default(), nil
}

// selection resolves the configured topic names. Custom topics come
// first so their tags outrank the built-ins on shared articles.
func (a *App) selection() ([]topics.Topic, error) {
	active := a.cfg.ActiveTopics
	if len(active) == 0 {
		active = a.index.Names()
	}
	names := append(append([]string{}, a.cfg.CustomTopics...), active...)
	return a.index.Selection(names)
}

// window computes the fetch date range: DaysBack days ending today,
// clamped to the provider's lookback limit.
func (a *App) window(now time.Time) (time.Time, time.Time) {
	today := now.In(easternOffset)
	to := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)
	from := to.AddDate(0, 0, -a.cfg.DaysBack)

	earliest := to.AddDate(0, 0, -config.LookbackDays)
	if from.Before(earliest) {
		from = earliest
	}
	return from, to
}

// Run executes one full dashboard session.
func (a *App) Run(ctx context.Context) error {
	selection, err := a.selection()
	if err != nil {
		return fmt.Errorf("resolving topic selection: %w", err)
	}

	srcIDs := a.cfg.SourceIDs
	if len(srcIDs) == 0 {
		srcIDs = a.srcMap.DefaultSelection()
	}

	from, to := a.window(time.Now())

	logger.Info("starting session",
		"topics", len(selection),
		"sources", len(srcIDs),
		"from", from.Format("2006-01-02"),
		"to", to.Format("2006-01-02"))

	raw := a.orch.Fetch(ctx, fetch.Request{
		Topics:  selection,
		Sources: srcIDs,
		From:    from,
		To:      to,
	})

	assembled := feed.Assemble(raw, feed.Options{
		Topics:     selection,
		ToneFilter: a.cfg.ToneFilter,
		Analyzer:   a.analyzer,
	})

	a.render(assembled, from, to)

	if a.summary != nil {
		a.renderOverview(ctx, assembled, from, to)
	}

	return nil
}

func (a *App) render(f feed.Feed, from, to time.Time) {
	fmt.Fprintln(a.out, "========================================")
	fmt.Fprintln(a.out, " THE WIRE")
	fmt.Fprintf(a.out, " %s — %s\n", from.Format("Jan 02"), to.Format("Jan 02"))
	fmt.Fprintln(a.out, "========================================")

	if len(f.Articles) == 0 {
		if f.Scanned == 0 {
			fmt.Fprintln(a.out, "No articles found for the selected sources and date range.")
		} else {
			fmt.Fprintln(a.out, "Articles were found, but none matched the selected topics.")
		}
		return
	}

	fmt.Fprintf(a.out, "Showing %d articles\n\n", len(f.Articles))

	for _, article := range f.Articles {
		name := a.srcMap.DisplayName(article.SourceID, article.SourceName)
		fmt.Fprintf(a.out, "[%s] %s | %s\n", formatTags(article.Tags), name, article.PublishedAt.Format("Jan 02"))
		fmt.Fprintf(a.out, "  %s\n", article.Title)
		if article.Description != "" {
			fmt.Fprintf(a.out, "  %s\n", article.Description)
		}
		fmt.Fprintf(a.out, "  %s\n\n", article.URL)
	}
}

// formatTags shows the first two tags and folds the rest into a count.
func formatTags(tags []string) string {
	if len(tags) <= 2 {
		return strings.Join(tags, ", ")
	}
	return fmt.Sprintf("%s +%d", strings.Join(tags[:2], ", "), len(tags)-2)
}

func (a *App) renderOverview(ctx context.Context, f feed.Feed, from, to time.Time) {
	fmt.Fprintln(a.out, "----------------------------------------")
	fmt.Fprintln(a.out, " AI OVERVIEW")
	fmt.Fprintln(a.out, "----------------------------------------")

	dateContext := fmt.Sprintf("%s and %s", from.Format("January 02"), to.Format("January 02"))
	text, err := a.summary.Summarize(ctx, f.SummaryPayload(), dateContext)
	if err != nil {
		logger.Error("summary generation failed", "error", err)
		fmt.Fprintln(a.out, gemini.ErrorMessage(err))
		return
	}
	fmt.Fprintln(a.out, text)
}
