package repository

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"finis-oculus/internal/api/dto"
	"finis-oculus/pkg/logger"

	"github.com/mmcdole/gofeed"
)

const rssNewsType = "STORY"

type rssNewsRepository struct {
	feedURL string
	parser  *gofeed.Parser
	log     *logger.Logger
}

// NewRSSNewsRepository reads headlines from a per-symbol RSS feed. Feeds
// only carry stories, so a request excluding "STORY" yields no items.
func NewRSSNewsRepository(feedURL string, log *logger.Logger) NewsRepository {
	return &rssNewsRepository{
		feedURL: feedURL,
		parser:  gofeed.NewParser(),
		log:     log,
	}
}

func (r *rssNewsRepository) GetNews(ctx context.Context, param dto.SearchNewsParam) ([]dto.NewsArticle, error) {
	if len(param.Types) > 0 && !slices.Contains(param.Types, rssNewsType) {
		return []dto.NewsArticle{}, nil
	}

	query := url.Values{}
	query.Set("s", param.Ticker)
	query.Set("region", "US")
	query.Set("lang", "en-US")

	feed, err := r.parser.ParseURLWithContext(r.feedURL+"?"+query.Encode(), ctx)
	if err != nil {
		r.log.ErrorContext(ctx, "Failed to parse news feed", logger.ErrorField(err), logger.StringField("ticker", param.Ticker))
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	if param.Offset >= len(feed.Items) {
		return []dto.NewsArticle{}, nil
	}
	items := feed.Items[param.Offset:]
	if param.Count > 0 && len(items) > param.Count {
		items = items[:param.Count]
	}

	articles := make([]dto.NewsArticle, 0, len(items))
	for _, item := range items {
		article := dto.NewsArticle{
			ID:       item.GUID,
			Headline: item.Title,
			Source:   feed.Title,
			Link:     item.Link,
			Type:     rssNewsType,
		}
		if article.ID == "" {
			article.ID = item.Link
		}
		if len(item.Authors) > 0 && item.Authors[0].Name != "" {
			article.Source = item.Authors[0].Name
		}
		if item.PublishedParsed != nil {
			article.PublishedAt = *item.PublishedParsed
		}
		articles = append(articles, article)
	}
	return articles, nil
}
