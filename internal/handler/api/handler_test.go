package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/internal/repository"
	"StockLens/internal/service/ratelimit"
	"StockLens/internal/services/indicators"
	"StockLens/internal/services/portfolio"
	"StockLens/internal/services/prediction"
	"StockLens/internal/services/sentiment"
	"StockLens/internal/usecase"
	xhttp "StockLens/pkg/http"
	"StockLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubMarket struct{}

func (stubMarket) Resolve(_ context.Context, ticker string) (models.CompanyInfo, bool, error) {
	if ticker == "NOPE" {
		return models.CompanyInfo{}, false, nil
	}
	return models.CompanyInfo{Ticker: ticker, Name: "Test Corp"}, true, nil
}

func (stubMarket) Quote(_ context.Context, ticker string) (models.Quote, bool, error) {
	if ticker == "NOPE" {
		return models.Quote{}, false, nil
	}
	return models.Quote{Ticker: ticker, Price: 100, PreviousClose: 98, Change: 2}, true, nil
}

func (stubMarket) History(_ context.Context, ticker, _, _ string) (models.Series, bool, error) {
	if ticker == "NOPE" {
		return nil, false, nil
	}
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := make(models.Series, 260)
	for i := range s {
		price := 100 + float64(i)*0.2
		s[i] = models.Candle{
			Date: start.AddDate(0, 0, i),
			Open: price, High: price * 1.01, Low: price * 0.99, Close: price,
			Volume: 1_000_000,
		}
	}
	return s, true, nil
}

type stubNews struct{}

func (stubNews) Headlines(context.Context, string, int) ([]models.Article, error) {
	return []models.Article{{Title: "Shares surge on record profits"}}, nil
}

func newTestEcho(t *testing.T) *echo.Echo {
	t.Helper()

	log, err := logger.New(&logger.Config{Level: "error", Format: "json"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	market := stubMarket{}
	analyzer := usecase.NewAnalyzer(
		market,
		stubNews{},
		indicators.NewEngine(),
		prediction.NewEngine(prediction.WithForest(10, 5)),
		sentiment.NewAnalyzer(nil),
	)
	dir := t.TempDir()
	portfolioSvc := portfolio.NewService(repository.NewCSVHoldingStore(filepath.Join(dir, "portfolio.csv")), market)
	watchlist := portfolio.NewWatchlist(repository.NewFileWatchlistStore(filepath.Join(dir, "watchlist.txt")), market)

	h := NewHandler(log, analyzer, portfolioSvc, watchlist, ratelimit.New(), nil)
	e := echo.New()
	h.RegisterRoutes(e)
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) xhttp.APIResponse {
	t.Helper()
	var env xhttp.APIResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %s)", err, rec.Body.String())
	}
	return env
}

func TestHealthEndpoint(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
}

func TestQuoteEndpoint(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/api/quote?ticker=AAPL", "")

	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("envelope status = %d, want 200 (body %s)", env.Status, rec.Body.String())
	}
}

func TestQuoteUnknownTicker(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/api/quote?ticker=NOPE", "")

	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusNotFound {
		t.Fatalf("envelope status = %d, want 404", env.Status)
	}
}

func TestQuoteMissingTicker(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/api/quote", "")

	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400", env.Status)
	}
}

func TestAnalysisEndpoint(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/api/analysis?ticker=AAPL&period=1y", "")

	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("envelope status = %d (body %s)", env.Status, rec.Body.String())
	}
}

func TestPredictionEndpoint(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/api/prediction?ticker=AAPL&days=10", "")

	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("envelope status = %d (body %s)", env.Status, rec.Body.String())
	}
}

func TestPredictionRejectsBadDays(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/api/prediction?ticker=AAPL&days=500", "")

	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400", env.Status)
	}
}

func TestPortfolioFlow(t *testing.T) {
	e := newTestEcho(t)

	rec := doRequest(e, http.MethodPost, "/api/portfolio/holdings",
		`{"ticker":"AAPL","quantity":2,"price":100}`)
	if env := decodeEnvelope(t, rec); env.Status != http.StatusCreated {
		t.Fatalf("add status = %d (body %s)", env.Status, rec.Body.String())
	}

	rec = doRequest(e, http.MethodPost, "/api/portfolio/holdings",
		`{"ticker":"AAPL","quantity":3,"price":200}`)
	if env := decodeEnvelope(t, rec); env.Status != http.StatusCreated {
		t.Fatalf("second add status = %d", env.Status)
	}

	rec = doRequest(e, http.MethodGet, "/api/portfolio/summary", "")
	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("summary status = %d", env.Status)
	}

	data, _ := json.Marshal(env.Data)
	var summary models.PortfolioSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("decode summary: %v", err)
	}
	if len(summary.Holdings) != 1 {
		t.Fatalf("positions = %d, want 1 merged", len(summary.Holdings))
	}
	if summary.Holdings[0].Quantity != 5 {
		t.Errorf("quantity = %v, want 5", summary.Holdings[0].Quantity)
	}

	rec = doRequest(e, http.MethodDelete, "/api/portfolio/holdings/AAPL", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
}

func TestSentimentPost(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodPost, "/api/sentiment",
		`{"texts":["Shares surge on record profits"]}`)

	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusOK {
		t.Fatalf("envelope status = %d (body %s)", env.Status, rec.Body.String())
	}
}

func TestSentimentRequiresInput(t *testing.T) {
	e := newTestEcho(t)
	rec := doRequest(e, http.MethodGet, "/api/sentiment", "")

	env := decodeEnvelope(t, rec)
	if env.Status != http.StatusBadRequest {
		t.Fatalf("envelope status = %d, want 400", env.Status)
	}
}

func TestWatchlistFlow(t *testing.T) {
	e := newTestEcho(t)

	rec := doRequest(e, http.MethodPost, "/api/watchlist", `{"ticker":"AAPL"}`)
	if env := decodeEnvelope(t, rec); env.Status != http.StatusCreated {
		t.Fatalf("add status = %d", env.Status)
	}

	rec = doRequest(e, http.MethodPost, "/api/watchlist", `{"ticker":"AAPL"}`)
	if env := decodeEnvelope(t, rec); env.Status != http.StatusBadRequest {
		t.Fatalf("duplicate add status = %d, want 400", env.Status)
	}

	rec = doRequest(e, http.MethodDelete, "/api/watchlist/AAPL", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
}
