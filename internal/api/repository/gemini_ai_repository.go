package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"finis-oculus/internal/api/config"
	"finis-oculus/pkg/logger"

	"github.com/patrickmn/go-cache"
	"google.golang.org/genai"
)

// SummaryInput is what the summary prompt is built from.
type SummaryInput struct {
	Ticker         string
	Name           string
	Change         string
	SentimentScore float64
	SentimentLabel string
	Headlines      []string
}

// AISummaryRepository produces a short natural-language stock summary.
type AISummaryRepository interface {
	Summarize(ctx context.Context, input SummaryInput) (string, error)
}

type geminiAIRepository struct {
	cfg         *config.Config
	log         *logger.Logger
	genAiClient *genai.Client
	cache       *cache.Cache
}

// NewGeminiAIRepository creates a Gemini-backed summary repository.
// Summaries are cached per ticker for cfg.Gemini.CacheTTL.
func NewGeminiAIRepository(cfg *config.Config, log *logger.Logger, genAiClient *genai.Client) AISummaryRepository {
	ttl := cfg.Gemini.CacheTTL
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &geminiAIRepository{
		cfg:         cfg,
		log:         log,
		genAiClient: genAiClient,
		cache:       cache.New(ttl, 2*ttl),
	}
}

func (r *geminiAIRepository) Summarize(ctx context.Context, input SummaryInput) (string, error) {
	if cached, ok := r.cache.Get(input.Ticker); ok {
		return cached.(string), nil
	}

	resp, err := r.genAiClient.Models.GenerateContent(ctx, r.cfg.Gemini.Model, genai.Text(buildSummaryPrompt(input)), nil)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to generate AI summary", logger.ErrorField(err), logger.StringField("ticker", input.Ticker))
		return "", fmt.Errorf("failed to generate summary: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty summary for %s", input.Ticker)
	}

	r.cache.SetDefault(input.Ticker, text)
	return text, nil
}

func buildSummaryPrompt(input SummaryInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a neutral two-sentence market sentiment summary for %s (%s).\n", input.Name, input.Ticker)
	fmt.Fprintf(&b, "Today's price change: %s.\n", input.Change)
	fmt.Fprintf(&b, "Aggregate news sentiment score: %.2f (%s) on a scale from -1 to 1.\n", input.SentimentScore, input.SentimentLabel)
	if len(input.Headlines) > 0 {
		b.WriteString("Recent headlines:\n")
		for _, h := range input.Headlines {
			fmt.Fprintf(&b, "- %s\n", h)
		}
	}
	b.WriteString("Only use the facts above. Do not give investment advice.")
	return b.String()
}
