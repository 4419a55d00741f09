package news

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/internal/domain/repository"
	apphttp "StockLens/pkg/http"
	"StockLens/pkg/logger"
)

const providerName = "newsapi"

// Option configures the news client.
type Option func(*Client)

func WithHTTPClient(c *apphttp.Client) Option {
	return func(nc *Client) { nc.http = c }
}

func WithAPIKey(key string) Option {
	return func(nc *Client) { nc.apiKey = key }
}

func WithLanguage(lang string) Option {
	return func(nc *Client) {
		if lang != "" {
			nc.language = lang
		}
	}
}

func WithLogger(log *logger.Logger) Option {
	return func(nc *Client) { nc.log = log }
}

func WithMetrics(m repository.Metrics) Option {
	return func(nc *Client) { nc.metrics = m }
}

// Client fetches headlines from a NewsAPI-style endpoint. Without an
// API key, or when the provider fails, it serves a fixed sample batch
// so downstream sentiment analysis still has input.
type Client struct {
	baseURL  string
	apiKey   string
	language string
	http     *apphttp.Client
	log      *logger.Logger
	metrics  repository.Metrics
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		language: "en",
		http:     apphttp.NewClient(apphttp.WithTimeout(10 * time.Second)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type newsResponse struct {
	Status   string `json:"status"`
	Articles []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		URL         string `json:"url"`
		PublishedAt string `json:"publishedAt"`
		Source      struct {
			Name string `json:"name"`
		} `json:"source"`
	} `json:"articles"`
}

// Headlines returns up to limit recent articles matching the query.
func (c *Client) Headlines(ctx context.Context, query string, limit int) ([]models.Article, error) {
	if limit <= 0 {
		limit = 10
	}
	if c.apiKey == "" {
		return sampleArticles(query, limit), nil
	}

	start := time.Now()
	var resp newsResponse
	err := c.http.SendAndParse(ctx, &apphttp.RequestOptions{
		Method: http.MethodGet,
		URL:    c.baseURL + "/v2/everything",
		QueryParams: map[string]string{
			"q":        query,
			"language": c.language,
			"sortBy":   "publishedAt",
			"pageSize": fmt.Sprintf("%d", limit),
			"apiKey":   c.apiKey,
		},
	}, &resp)
	if c.metrics != nil {
		c.metrics.ProviderRequest(providerName, "everything", time.Since(start), err)
	}
	if err != nil || resp.Status != "ok" {
		if c.log != nil {
			c.log.Warn("news provider unavailable, serving sample articles",
				logger.String("query", query), logger.Error(err))
		}
		return sampleArticles(query, limit), nil
	}

	articles := make([]models.Article, 0, len(resp.Articles))
	for _, a := range resp.Articles {
		if a.Title == "" {
			continue
		}
		published, _ := time.Parse(time.RFC3339, a.PublishedAt)
		articles = append(articles, models.Article{
			Title:       a.Title,
			Description: a.Description,
			Source:      a.Source.Name,
			URL:         a.URL,
			PublishedAt: published,
		})
		if len(articles) == limit {
			break
		}
	}
	return articles, nil
}

// sampleArticles is the deterministic offline fallback.
func sampleArticles(query string, limit int) []models.Article {
	now := time.Now().UTC()
	all := []models.Article{
		{
			Title:       fmt.Sprintf("%s reports quarterly results above analyst expectations", query),
			Description: "Revenue and earnings beat estimates, with strong growth in the core business.",
			Source:      "Sample Wire",
			PublishedAt: now.Add(-2 * time.Hour),
		},
		{
			Title:       fmt.Sprintf("Analysts remain divided on %s outlook", query),
			Description: "Some see continued momentum while others cite valuation concerns and macro risks.",
			Source:      "Sample Wire",
			PublishedAt: now.Add(-8 * time.Hour),
		},
		{
			Title:       fmt.Sprintf("%s announces expansion into new markets", query),
			Description: "The company outlined plans for international growth over the next fiscal year.",
			Source:      "Sample Wire",
			PublishedAt: now.Add(-26 * time.Hour),
		},
	}
	if limit < len(all) {
		return all[:limit]
	}
	return all
}
