package repository

import (
	"context"
	"time"

	"StockLens/internal/domain/models"
)

// MarketData supplies quotes and price history for tickers. Unknown
// tickers report ok=false rather than an error so callers can give a
// clean not-found response.
type MarketData interface {
	Resolve(ctx context.Context, ticker string) (models.CompanyInfo, bool, error)
	Quote(ctx context.Context, ticker string) (models.Quote, bool, error)
	History(ctx context.Context, ticker, period, interval string) (models.Series, bool, error)
}

// NewsProvider fetches recent headlines for a ticker or company name.
type NewsProvider interface {
	Headlines(ctx context.Context, query string, limit int) ([]models.Article, error)
}

// HoldingStore persists the portfolio. Save rewrites the whole set.
type HoldingStore interface {
	Load(ctx context.Context) ([]models.Holding, error)
	Save(ctx context.Context, holdings []models.Holding) error
}

// WatchlistStore persists the ordered, de-duplicated watchlist.
type WatchlistStore interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, tickers []string) error
}

// Metrics records application-level observations. A nil-safe no-op
// implementation backs tests.
type Metrics interface {
	ProviderRequest(provider, operation string, d time.Duration, err error)
	CacheHit(kind string)
	CacheMiss(kind string)
	QuotePrice(ticker string, price float64)
	AnalysisRun(kind string)
}
