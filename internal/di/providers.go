package di

import (
	"context"
	"fmt"

	"StockLens/internal/domain/repository"
	"StockLens/internal/handler/api"
	internalrepo "StockLens/internal/repository"
	"StockLens/internal/service/marketdata"
	"StockLens/internal/service/news"
	"StockLens/internal/service/ratelimit"
	"StockLens/internal/services/indicators"
	"StockLens/internal/services/portfolio"
	"StockLens/internal/services/prediction"
	"StockLens/internal/services/sentiment"
	"StockLens/internal/usecase"
	pkgcache "StockLens/pkg/cache"
	"StockLens/pkg/config"
	xhttp "StockLens/pkg/http"
	"StockLens/pkg/logger"
	"StockLens/pkg/metrics"
	"StockLens/pkg/server"
)

// ProvideLogger creates the application logger.
func ProvideLogger(cfg *config.Config) (*logger.Logger, error) {
	return logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
}

// ProvideMetrics creates the Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.NewRecorder("stocklens")
}

// ProvideCache builds the cache stack: always an in-memory layer, with
// Redis behind it when enabled.
func ProvideCache(cfg *config.Config, log *logger.Logger) (pkgcache.Service, error) {
	local := pkgcache.NewMemoryCache(
		pkgcache.WithMemoryMaxSize(cfg.Cache.MemoryMaxSize),
	)
	if !cfg.Cache.Redis.Enabled {
		return local, nil
	}

	remote, err := pkgcache.NewRedisCache(context.Background(),
		pkgcache.WithRedisAddr(cfg.Cache.Redis.Host, cfg.Cache.Redis.Port),
		pkgcache.WithRedisAuth(cfg.Cache.Redis.Password, cfg.Cache.Redis.DB),
	)
	if err != nil {
		// Degrade to memory-only rather than refusing to start.
		log.Warn("redis unavailable, using memory cache only", logger.Error(err))
		return local, nil
	}
	return pkgcache.NewLayeredCache(local, remote), nil
}

// ProvideMarketData creates the market data provider client.
func ProvideMarketData(cfg *config.Config, log *logger.Logger, m repository.Metrics) (repository.MarketData, error) {
	if cfg.MarketData.BaseURL == "" {
		return nil, fmt.Errorf("marketdata base_url is required")
	}
	httpClient := xhttp.NewClient(
		xhttp.WithTimeout(cfg.MarketData.Timeout),
		xhttp.WithUserAgent(cfg.MarketData.UserAgent),
	)
	return marketdata.NewClient(cfg.MarketData.BaseURL,
		marketdata.WithHTTPClient(httpClient),
		marketdata.WithLogger(log),
		marketdata.WithMetrics(m),
	), nil
}

// ProvideNews creates the news provider client.
func ProvideNews(cfg *config.Config, log *logger.Logger, m repository.Metrics) repository.NewsProvider {
	httpClient := xhttp.NewClient(xhttp.WithTimeout(cfg.News.Timeout))
	return news.NewClient(cfg.News.BaseURL,
		news.WithHTTPClient(httpClient),
		news.WithAPIKey(cfg.News.APIKey),
		news.WithLanguage(cfg.News.Language),
		news.WithLogger(log),
		news.WithMetrics(m),
	)
}

// ProvideIndicatorEngine creates the indicator engine from config.
func ProvideIndicatorEngine(cfg *config.Config) *indicators.Engine {
	return indicators.NewEngine(
		indicators.WithMovingAverages(cfg.Indicators.SMAShort, cfg.Indicators.SMALong),
		indicators.WithRSI(cfg.Indicators.RSIPeriod, cfg.Indicators.RSIOverbought, cfg.Indicators.RSIOversold),
		indicators.WithMACD(cfg.Indicators.MACDFast, cfg.Indicators.MACDSlow, cfg.Indicators.MACDSignal),
		indicators.WithBollinger(cfg.Indicators.BBPeriod, cfg.Indicators.BBStdDev),
	)
}

// ProvidePredictionEngine creates the forecast engine from config.
func ProvidePredictionEngine(cfg *config.Config) *prediction.Engine {
	return prediction.NewEngine(
		prediction.WithHorizon(cfg.Prediction.Days),
		prediction.WithTestFraction(cfg.Prediction.TestFraction),
		prediction.WithForest(cfg.Prediction.ForestTrees, cfg.Prediction.ForestDepth),
		prediction.WithSeed(cfg.Prediction.Seed),
	)
}

// ProvideSentimentAnalyzer creates the sentiment analyzer.
func ProvideSentimentAnalyzer() *sentiment.Analyzer {
	return sentiment.NewAnalyzer(sentiment.NewLexiconScorer())
}

// ProvideAnalyzer wires the providers and engines into the usecase.
func ProvideAnalyzer(
	cfg *config.Config,
	log *logger.Logger,
	market repository.MarketData,
	newsProvider repository.NewsProvider,
	indicatorEngine *indicators.Engine,
	predictionEngine *prediction.Engine,
	sentimentAnalyzer *sentiment.Analyzer,
	cacheSvc pkgcache.Service,
	m repository.Metrics,
) *usecase.Analyzer {
	return usecase.NewAnalyzer(
		market,
		newsProvider,
		indicatorEngine,
		predictionEngine,
		sentimentAnalyzer,
		usecase.WithCache(cacheSvc, usecase.TTLs{
			Quote:   cfg.Cache.TTL.Quote,
			History: cfg.Cache.TTL.History,
			News:    cfg.Cache.TTL.News,
		}),
		usecase.WithMetrics(m),
		usecase.WithLogger(log),
	)
}

// ProvideHoldingStore creates the CSV-backed portfolio store.
func ProvideHoldingStore(cfg *config.Config) repository.HoldingStore {
	return internalrepo.NewCSVHoldingStore(cfg.Portfolio.File)
}

// ProvideWatchlistStore creates the file-backed watchlist store.
func ProvideWatchlistStore(cfg *config.Config) repository.WatchlistStore {
	return internalrepo.NewFileWatchlistStore(cfg.Portfolio.WatchlistFile)
}

// ProvidePortfolioService creates the portfolio valuation service.
func ProvidePortfolioService(store repository.HoldingStore, market repository.MarketData) *portfolio.Service {
	return portfolio.NewService(store, market)
}

// ProvideWatchlist creates the watchlist service.
func ProvideWatchlist(store repository.WatchlistStore, market repository.MarketData) *portfolio.Watchlist {
	return portfolio.NewWatchlist(store, market)
}

// ProvideRateLimiter creates the per-client API rate limiter.
func ProvideRateLimiter() *ratelimit.Limiter {
	return ratelimit.New()
}

// ProvideQuoteStream creates the websocket quote streamer.
func ProvideQuoteStream(cfg *config.Config, log *logger.Logger, analyzer *usecase.Analyzer) *api.QuoteStream {
	return api.NewQuoteStream(log, analyzer, cfg.Stream.QuoteInterval)
}

// ProvideHandler creates the API handler.
func ProvideHandler(
	log *logger.Logger,
	analyzer *usecase.Analyzer,
	portfolioSvc *portfolio.Service,
	watchlist *portfolio.Watchlist,
	limiter *ratelimit.Limiter,
	stream *api.QuoteStream,
) *api.Handler {
	return api.NewHandler(log, analyzer, portfolioSvc, watchlist, limiter, stream)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, log *logger.Logger, handler *api.Handler, cacheSvc pkgcache.Service) *server.App {
	return server.New(cfg, log, handler, cacheSvc)
}
