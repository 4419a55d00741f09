package usecase

import (
	"context"
	"errors"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/internal/domain/repository"
	"StockLens/internal/services/indicators"
	"StockLens/internal/services/prediction"
	"StockLens/internal/services/sentiment"
	"StockLens/pkg/cache"
	"StockLens/pkg/logger"
)

var ErrTickerNotFound = errors.New("analysis: ticker not found")

// TTLs bound how long provider responses are reused. The cache is
// advisory; a miss always falls through to the provider.
type TTLs struct {
	Quote   time.Duration
	History time.Duration
	News    time.Duration
}

func defaultTTLs() TTLs {
	return TTLs{
		Quote:   time.Minute,
		History: 5 * time.Minute,
		News:    30 * time.Minute,
	}
}

type Option func(*Analyzer)

func WithCache(c cache.Service, ttls TTLs) Option {
	return func(a *Analyzer) {
		a.cache = c
		if ttls.Quote > 0 {
			a.ttl.Quote = ttls.Quote
		}
		if ttls.History > 0 {
			a.ttl.History = ttls.History
		}
		if ttls.News > 0 {
			a.ttl.News = ttls.News
		}
	}
}

func WithMetrics(m repository.Metrics) Option {
	return func(a *Analyzer) { a.metrics = m }
}

func WithLogger(log *logger.Logger) Option {
	return func(a *Analyzer) { a.log = log }
}

// Analyzer orchestrates providers and engines behind the API surface.
type Analyzer struct {
	market     repository.MarketData
	news       repository.NewsProvider
	indicators *indicators.Engine
	prediction *prediction.Engine
	sentiment  *sentiment.Analyzer

	cache   cache.Service
	metrics repository.Metrics
	log     *logger.Logger
	ttl     TTLs
}

func NewAnalyzer(
	market repository.MarketData,
	news repository.NewsProvider,
	indicatorEngine *indicators.Engine,
	predictionEngine *prediction.Engine,
	sentimentAnalyzer *sentiment.Analyzer,
	opts ...Option,
) *Analyzer {
	a := &Analyzer{
		market:     market,
		news:       news,
		indicators: indicatorEngine,
		prediction: predictionEngine,
		sentiment:  sentimentAnalyzer,
		ttl:        defaultTTLs(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Quote serves the latest quote, reusing a cached one within its TTL.
func (a *Analyzer) Quote(ctx context.Context, ticker string) (models.Quote, error) {
	key := cache.Key("quote", ticker)
	if q, ok := cache.GetTyped[models.Quote](ctx, a.cache, key); ok {
		a.cacheHit("quote")
		return q, nil
	}
	a.cacheMiss("quote")

	q, ok, err := a.market.Quote(ctx, ticker)
	if err != nil {
		return models.Quote{}, err
	}
	if !ok {
		return models.Quote{}, ErrTickerNotFound
	}
	cache.SetTyped(ctx, a.cache, key, q, a.ttl.Quote)
	return q, nil
}

// History serves OHLCV bars for a period and interval.
func (a *Analyzer) History(ctx context.Context, ticker, period, interval string) (models.Series, error) {
	period = repository.NormalizePeriod(period)
	interval = repository.NormalizeInterval(interval)

	key := cache.Key("history", ticker, period, interval)
	if s, ok := cache.GetTyped[models.Series](ctx, a.cache, key); ok {
		a.cacheHit("history")
		return s, nil
	}
	a.cacheMiss("history")

	series, ok, err := a.market.History(ctx, ticker, period, interval)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTickerNotFound
	}
	cache.SetTyped(ctx, a.cache, key, series, a.ttl.History)
	return series, nil
}

// Indicators computes the indicator report over fresh history.
func (a *Analyzer) Indicators(ctx context.Context, req models.IndicatorsRequest) (models.IndicatorReport, error) {
	series, err := a.History(ctx, req.Ticker, req.Period, req.Interval)
	if err != nil {
		return models.IndicatorReport{}, err
	}
	report, err := a.indicators.Compute(req.Ticker, req.Period, series)
	if err != nil {
		return models.IndicatorReport{}, err
	}
	a.analysisRun("indicators")
	return report, nil
}

// Analysis combines company metadata, the live quote, and indicators.
func (a *Analyzer) Analysis(ctx context.Context, req models.AnalysisRequest) (models.AnalysisResult, error) {
	info, ok, err := a.market.Resolve(ctx, req.Ticker)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	if !ok {
		return models.AnalysisResult{}, ErrTickerNotFound
	}

	quote, err := a.Quote(ctx, req.Ticker)
	if err != nil {
		return models.AnalysisResult{}, err
	}
	report, err := a.Indicators(ctx, models.IndicatorsRequest{
		Ticker:   req.Ticker,
		Period:   req.Period,
		Interval: "1d",
	})
	if err != nil {
		return models.AnalysisResult{}, err
	}

	a.analysisRun("analysis")
	return models.AnalysisResult{
		Company:    info,
		Quote:      quote,
		Indicators: report,
	}, nil
}

// Prediction trains on history and forecasts future closes.
func (a *Analyzer) Prediction(ctx context.Context, req models.PredictionRequest) (models.PredictionResult, error) {
	series, err := a.History(ctx, req.Ticker, req.Period, "1d")
	if err != nil {
		return models.PredictionResult{}, err
	}
	result, err := a.prediction.Predict(req.Ticker, series, req.Model, req.Days)
	if err != nil {
		return models.PredictionResult{}, err
	}
	a.analysisRun("prediction")
	return result, nil
}

// Sentiment scores caller-supplied texts, or recent headlines about the
// ticker when no texts are given.
func (a *Analyzer) Sentiment(ctx context.Context, req models.SentimentRequest) (models.SentimentReport, error) {
	if len(req.Texts) > 0 {
		report := a.sentiment.Analyze(req.Ticker, req.Texts)
		a.analysisRun("sentiment")
		return report, nil
	}
	if req.Ticker == "" {
		return models.SentimentReport{
			Overall:        models.SentimentNeutral,
			Recommendation: "Neutral",
		}, nil
	}

	articles, err := a.headlines(ctx, req.Ticker)
	if err != nil {
		return models.SentimentReport{}, err
	}
	report := a.sentiment.AnalyzeArticles(req.Ticker, articles)
	a.analysisRun("sentiment")
	return report, nil
}

// headlines queries news by company name when the ticker resolves, so
// "AAPL" searches for "Apple Inc." instead of the raw symbol.
func (a *Analyzer) headlines(ctx context.Context, ticker string) ([]models.Article, error) {
	key := cache.Key("news", ticker)
	if arts, ok := cache.GetTyped[[]models.Article](ctx, a.cache, key); ok {
		a.cacheHit("news")
		return arts, nil
	}
	a.cacheMiss("news")

	query := ticker
	if info, ok, err := a.market.Resolve(ctx, ticker); err == nil && ok && info.Name != "" {
		query = info.Name
	} else if err == nil && !ok {
		return nil, ErrTickerNotFound
	}

	articles, err := a.news.Headlines(ctx, query, 20)
	if err != nil {
		if a.log != nil {
			a.log.Warn("news fetch failed", logger.String("ticker", ticker), logger.Error(err))
		}
		return nil, err
	}
	cache.SetTyped(ctx, a.cache, key, articles, a.ttl.News)
	return articles, nil
}

func (a *Analyzer) cacheHit(kind string) {
	if a.metrics != nil {
		a.metrics.CacheHit(kind)
	}
}

func (a *Analyzer) cacheMiss(kind string) {
	if a.metrics != nil {
		a.metrics.CacheMiss(kind)
	}
}

func (a *Analyzer) analysisRun(kind string) {
	if a.metrics != nil {
		a.metrics.AnalysisRun(kind)
	}
}
