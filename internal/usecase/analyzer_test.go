package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/internal/services/indicators"
	"StockLens/internal/services/prediction"
	"StockLens/internal/services/sentiment"
	"StockLens/pkg/cache"
)

type stubMarket struct {
	quoteCalls   int
	historyCalls int
	series       models.Series
}

func (m *stubMarket) Resolve(_ context.Context, ticker string) (models.CompanyInfo, bool, error) {
	if ticker == "NOPE" {
		return models.CompanyInfo{}, false, nil
	}
	return models.CompanyInfo{Ticker: ticker, Name: "Test Corp"}, true, nil
}

func (m *stubMarket) Quote(_ context.Context, ticker string) (models.Quote, bool, error) {
	m.quoteCalls++
	if ticker == "NOPE" {
		return models.Quote{}, false, nil
	}
	return models.Quote{Ticker: ticker, Price: 100}, true, nil
}

func (m *stubMarket) History(_ context.Context, ticker, _, _ string) (models.Series, bool, error) {
	m.historyCalls++
	if ticker == "NOPE" {
		return nil, false, nil
	}
	return m.series, true, nil
}

type stubNews struct {
	query string
}

func (n *stubNews) Headlines(_ context.Context, query string, _ int) ([]models.Article, error) {
	n.query = query
	return []models.Article{
		{Title: "Shares surge on record profits"},
		{Title: "Strong growth and an analyst upgrade"},
	}, nil
}

func testHistory(n int) models.Series {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := make(models.Series, n)
	for i := range s {
		price := 100 + float64(i)*0.2
		s[i] = models.Candle{
			Date: start.AddDate(0, 0, i),
			Open: price, High: price * 1.01, Low: price * 0.99, Close: price,
			Volume: 1_000_000,
		}
	}
	return s
}

func newTestAnalyzer(market *stubMarket, news *stubNews, opts ...Option) *Analyzer {
	return NewAnalyzer(
		market,
		news,
		indicators.NewEngine(),
		prediction.NewEngine(prediction.WithForest(10, 5)),
		sentiment.NewAnalyzer(nil),
		opts...,
	)
}

func TestQuoteUsesCache(t *testing.T) {
	market := &stubMarket{}
	mc := cache.NewMemoryCache()
	defer mc.Close()
	a := newTestAnalyzer(market, &stubNews{}, WithCache(mc, TTLs{}))
	ctx := context.Background()

	if _, err := a.Quote(ctx, "AAPL"); err != nil {
		t.Fatalf("first quote: %v", err)
	}
	if _, err := a.Quote(ctx, "AAPL"); err != nil {
		t.Fatalf("second quote: %v", err)
	}
	if market.quoteCalls != 1 {
		t.Errorf("provider calls = %d, want 1 (second served from cache)", market.quoteCalls)
	}
}

func TestQuoteUnknownTicker(t *testing.T) {
	a := newTestAnalyzer(&stubMarket{}, &stubNews{})
	if _, err := a.Quote(context.Background(), "NOPE"); !errors.Is(err, ErrTickerNotFound) {
		t.Errorf("expected ErrTickerNotFound, got %v", err)
	}
}

func TestAnalysisCombinesSources(t *testing.T) {
	market := &stubMarket{series: testHistory(260)}
	a := newTestAnalyzer(market, &stubNews{})

	res, err := a.Analysis(context.Background(), models.AnalysisRequest{Ticker: "AAPL", Period: "1y"})
	if err != nil {
		t.Fatalf("analysis: %v", err)
	}
	if res.Company.Name != "Test Corp" {
		t.Errorf("company = %+v", res.Company)
	}
	if res.Quote.Price != 100 {
		t.Errorf("quote = %+v", res.Quote)
	}
	if len(res.Indicators.Points) != 260 {
		t.Errorf("indicator points = %d, want 260", len(res.Indicators.Points))
	}
}

func TestPredictionOverHistory(t *testing.T) {
	market := &stubMarket{series: testHistory(260)}
	a := newTestAnalyzer(market, &stubNews{})

	res, err := a.Prediction(context.Background(), models.PredictionRequest{
		Ticker: "AAPL", Period: "1y", Days: 15, Model: "forest",
	})
	if err != nil {
		t.Fatalf("prediction: %v", err)
	}
	if len(res.Forecast) != 15 {
		t.Errorf("forecast = %d points, want 15", len(res.Forecast))
	}
}

func TestSentimentWithTexts(t *testing.T) {
	a := newTestAnalyzer(&stubMarket{}, &stubNews{})
	report, err := a.Sentiment(context.Background(), models.SentimentRequest{
		Texts: []string{"Shares surge on record profits"},
	})
	if err != nil {
		t.Fatalf("sentiment: %v", err)
	}
	if report.Overall != models.SentimentPositive {
		t.Errorf("overall = %v, want Positive", report.Overall)
	}
}

func TestSentimentFromNewsUsesCompanyName(t *testing.T) {
	news := &stubNews{}
	a := newTestAnalyzer(&stubMarket{}, news)

	report, err := a.Sentiment(context.Background(), models.SentimentRequest{Ticker: "AAPL"})
	if err != nil {
		t.Fatalf("sentiment: %v", err)
	}
	if news.query != "Test Corp" {
		t.Errorf("news query = %q, want resolved company name", news.query)
	}
	if len(report.Scores) != 2 {
		t.Errorf("scores = %d, want 2", len(report.Scores))
	}
}

func TestSentimentEmptyRequest(t *testing.T) {
	a := newTestAnalyzer(&stubMarket{}, &stubNews{})
	report, err := a.Sentiment(context.Background(), models.SentimentRequest{})
	if err != nil {
		t.Fatalf("sentiment: %v", err)
	}
	if report.Overall != models.SentimentNeutral || report.Recommendation != "Neutral" {
		t.Errorf("empty request report = %+v", report)
	}
}
