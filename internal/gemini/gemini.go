// Package gemini is the summary-generation collaborator: it turns the
// assembled feed payload into a narrative briefing.
package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"thewire/internal/cache"
	"thewire/internal/metrics"
	"thewire/internal/ratelimit"
	"thewire/internal/retry"
)

const (
	modelName = "gemini-1.5-flash"
	// maxPayloadRunes bounds the prompt; payloads beyond it are cut on
	// a line boundary.
	maxPayloadRunes = 24000
	// summaryCacheTTL keeps a generated briefing for the session's
	// lifetime; the prompt-derived key already invalidates on any feed
	// change.
	summaryCacheTTL = 24 * time.Hour
)

type Client struct {
	client *genai.Client
	cache  *cache.Cache
	budget *ratelimit.Budget
}

func NewClient(ctx context.Context, apiKey string, store *cache.Cache, budget *ratelimit.Budget) (*Client, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	return &Client{client: client, cache: store, budget: budget}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// Summarize produces a markdown briefing for the payload, grouped by
// category. Results are cached keyed by the exact prompt text, so an
// unchanged feed never pays for a second generation.
func (c *Client) Summarize(ctx context.Context, payload, dateContext string) (string, error) {
	if strings.TrimSpace(payload) == "" {
		return "No articles available to summarize.", nil
	}

	prompt := buildPrompt(payload, dateContext)
	key := "summary|" + cache.HashKey(prompt)

	if cached, ok := c.cache.Get(key); ok {
		if text, ok := cached.(string); ok {
			return text, nil
		}
	}

	if c.budget != nil {
		if err := c.budget.Use(); err != nil {
			return "", err
		}
	}

	metrics.Global.IncrementSummaryCalls()

	var text string
	err := retry.Do(ctx, retry.Config{MaxAttempts: 3, Delay: 2 * time.Second, Backoff: true}, func() error {
		var genErr error
		text, genErr = c.generate(ctx, prompt)
		return genErr
	})
	if err != nil {
		metrics.Global.IncrementSummaryFailures()
		return "", err
	}

	c.cache.Set(key, text, summaryCacheTTL)
	return text, nil
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	model := c.client.GenerativeModel(modelName)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	text := fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0])
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return text, nil
}

func buildPrompt(payload, dateContext string) string {
	payload = truncatePayload(payload)

	return fmt.Sprintf(`You are a professional news briefing assistant.
The following news articles were published between %s.
I am providing you with a list of current news articles. Each article includes its assigned Categories, Title, and Description.
Please provide a well-structured, easy-to-read summary of the news, grouping the insights by Category.
Keep it engaging, objective, and concise. Use markdown formatting (headers, bullet points) for readability.

Here is the news data:
%s
`, dateContext, payload)
}

// truncatePayload cuts an oversized payload on an article-line boundary.
func truncatePayload(payload string) string {
	payload = strings.ReplaceAll(payload, "\r", "")
	payload = strings.TrimSpace(payload)
	if utf8.RuneCountInString(payload) <= maxPayloadRunes {
		return payload
	}

	runes := []rune(payload)
	trimmed := string(runes[:maxPayloadRunes])
	if idx := strings.LastIndex(trimmed, "\n"); idx > 0 {
		trimmed = trimmed[:idx]
	}
	return trimmed + "\n[TRUNCATED]"
}

// ErrorMessage formats a summary failure for display in place of the
// briefing body.
func ErrorMessage(err error) string {
	return fmt.Sprintf("⚠️ An error occurred while generating the AI Overview: %v", err)
}
