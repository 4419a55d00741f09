package marketdata

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func chartBody(symbol string, timestamps []int64, closes []interface{}) []byte {
	body := map[string]interface{}{
		"chart": map[string]interface{}{
			"result": []interface{}{
				map[string]interface{}{
					"meta": map[string]interface{}{
						"symbol":             symbol,
						"currency":           "USD",
						"exchangeName":       "NMS",
						"longName":           "Test Corp",
						"regularMarketPrice": 105.5,
						"chartPreviousClose": 104.0,
					},
					"timestamp": timestamps,
					"indicators": map[string]interface{}{
						"quote": []interface{}{
							map[string]interface{}{
								"open":   closes,
								"high":   closes,
								"low":    closes,
								"close":  closes,
								"volume": []interface{}{1000, 2000, nil},
							},
						},
					},
				},
			},
			"error": nil,
		},
	}
	b, _ := json.Marshal(body)
	return b
}

func newChartServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v8/finance/chart/") {
			http.NotFound(w, r)
			return
		}
		ticker := strings.TrimPrefix(r.URL.Path, "/v8/finance/chart/")
		if ticker == "NOPE" {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(chartBody(ticker, []int64{1704153600, 1704240000, 1704326400},
			[]interface{}{100.0, 104.0, nil}))
	}))
}

func TestQuoteKnownTicker(t *testing.T) {
	srv := newChartServer(t)
	defer srv.Close()

	c := NewClient(srv.URL)
	q, ok, err := c.Quote(context.Background(), "aapl")
	if err != nil {
		t.Fatalf("quote: %v", err)
	}
	if !ok {
		t.Fatal("expected ok for known ticker")
	}
	if q.Ticker != "AAPL" {
		t.Errorf("ticker = %q, want AAPL", q.Ticker)
	}
	if q.Price != 105.5 {
		t.Errorf("price = %v, want 105.5 from meta", q.Price)
	}
	if q.PreviousClose != 104.0 {
		t.Errorf("previous close = %v, want 104", q.PreviousClose)
	}
	if q.Change != 1.5 {
		t.Errorf("change = %v, want 1.5", q.Change)
	}
}

func TestQuoteUnknownTickerNotError(t *testing.T) {
	srv := newChartServer(t)
	defer srv.Close()

	c := NewClient(srv.URL)
	_, ok, err := c.Quote(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("unknown ticker should not be an error, got %v", err)
	}
	if ok {
		t.Fatal("expected ok=false for unknown ticker")
	}
}

func TestHistorySkipsNullBars(t *testing.T) {
	srv := newChartServer(t)
	defer srv.Close()

	c := NewClient(srv.URL)
	series, ok, err := c.History(context.Background(), "MSFT", "1y", "1d")
	if err != nil || !ok {
		t.Fatalf("history: ok=%v err=%v", ok, err)
	}
	// Third bar has a null close and must be dropped.
	if len(series) != 2 {
		t.Fatalf("bars = %d, want 2", len(series))
	}
	if !series[0].Date.Before(series[1].Date) {
		t.Error("bars must be oldest first")
	}
	if series[1].Close != 104.0 {
		t.Errorf("last close = %v, want 104", series[1].Close)
	}
}

func TestResolveMetadata(t *testing.T) {
	srv := newChartServer(t)
	defer srv.Close()

	c := NewClient(srv.URL)
	info, ok, err := c.Resolve(context.Background(), "AAPL")
	if err != nil || !ok {
		t.Fatalf("resolve: ok=%v err=%v", ok, err)
	}
	if info.Name != "Test Corp" {
		t.Errorf("name = %q, want Test Corp", info.Name)
	}
	if info.Currency != "USD" {
		t.Errorf("currency = %q, want USD", info.Currency)
	}
}
