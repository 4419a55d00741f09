package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/internal/domain/repository"
	apphttp "StockLens/pkg/http"
	"StockLens/pkg/logger"
)

const providerName = "yahoo"

// Option configures the market data client.
type Option func(*Client)

func WithHTTPClient(c *apphttp.Client) Option {
	return func(mc *Client) { mc.http = c }
}

func WithLogger(log *logger.Logger) Option {
	return func(mc *Client) { mc.log = log }
}

func WithMetrics(m repository.Metrics) Option {
	return func(mc *Client) { mc.metrics = m }
}

// Client reads quotes and history from a Yahoo-style chart API. Unknown
// tickers come back as ok=false so handlers can answer 404 cleanly.
type Client struct {
	baseURL string
	http    *apphttp.Client
	log     *logger.Logger
	metrics repository.Metrics
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    apphttp.NewClient(apphttp.WithTimeout(15 * time.Second)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// chartResponse mirrors the chart endpoint payload. Price arrays use
// pointers because holidays and halts produce null entries.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Meta struct {
		Symbol             string  `json:"symbol"`
		Currency           string  `json:"currency"`
		ExchangeName       string  `json:"exchangeName"`
		LongName           string  `json:"longName"`
		ShortName          string  `json:"shortName"`
		RegularMarketPrice float64 `json:"regularMarketPrice"`
		ChartPreviousClose float64 `json:"chartPreviousClose"`
	} `json:"meta"`
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []struct {
			Open   []*float64 `json:"open"`
			High   []*float64 `json:"high"`
			Low    []*float64 `json:"low"`
			Close  []*float64 `json:"close"`
			Volume []*int64   `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

func (c *Client) fetchChart(ctx context.Context, ticker, rng, interval string) (chartResult, bool, error) {
	start := time.Now()
	var resp chartResponse
	err := c.http.SendAndParse(ctx, &apphttp.RequestOptions{
		Method: http.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, url.PathEscape(ticker)),
		QueryParams: map[string]string{
			"range":    rng,
			"interval": interval,
		},
	}, &resp)
	if c.metrics != nil {
		c.metrics.ProviderRequest(providerName, "chart", time.Since(start), err)
	}

	if err != nil {
		var statusErr *apphttp.StatusError
		if errors.As(err, &statusErr) && statusErr.Status == http.StatusNotFound {
			return chartResult{}, false, nil
		}
		return chartResult{}, false, fmt.Errorf("marketdata: chart %s: %w", ticker, err)
	}
	if resp.Chart.Error != nil {
		if c.log != nil {
			c.log.Warn("chart api error",
				logger.String("ticker", ticker),
				logger.String("code", resp.Chart.Error.Code))
		}
		return chartResult{}, false, nil
	}
	if len(resp.Chart.Result) == 0 {
		return chartResult{}, false, nil
	}
	return resp.Chart.Result[0], true, nil
}

// Resolve verifies a ticker exists and returns its metadata.
func (c *Client) Resolve(ctx context.Context, ticker string) (models.CompanyInfo, bool, error) {
	result, ok, err := c.fetchChart(ctx, normalize(ticker), "1d", "1d")
	if err != nil || !ok {
		return models.CompanyInfo{}, false, err
	}

	name := result.Meta.LongName
	if name == "" {
		name = result.Meta.ShortName
	}
	if name == "" {
		name = result.Meta.Symbol
	}
	return models.CompanyInfo{
		Ticker:   result.Meta.Symbol,
		Name:     name,
		Exchange: result.Meta.ExchangeName,
		Currency: result.Meta.Currency,
	}, true, nil
}

// Quote returns the latest market snapshot for a ticker.
func (c *Client) Quote(ctx context.Context, ticker string) (models.Quote, bool, error) {
	result, ok, err := c.fetchChart(ctx, normalize(ticker), "5d", "1d")
	if err != nil || !ok {
		return models.Quote{}, false, err
	}

	q := models.Quote{
		Ticker:        result.Meta.Symbol,
		Price:         result.Meta.RegularMarketPrice,
		PreviousClose: result.Meta.ChartPreviousClose,
		Currency:      result.Meta.Currency,
		AsOf:          time.Now().UTC(),
	}

	bars := resultToSeries(result)
	if last, exists := bars.Last(); exists {
		if q.Price == 0 {
			q.Price = last.Close
		}
		q.Open = last.Open
		q.DayHigh = last.High
		q.DayLow = last.Low
		q.Volume = last.Volume
		if q.PreviousClose == 0 && len(bars) > 1 {
			q.PreviousClose = bars[len(bars)-2].Close
		}
	}
	if q.Price == 0 {
		return models.Quote{}, false, nil
	}
	if q.PreviousClose != 0 {
		q.Change = q.Price - q.PreviousClose
		q.ChangePercent = q.Change / q.PreviousClose * 100
	}

	if c.metrics != nil {
		c.metrics.QuotePrice(q.Ticker, q.Price)
	}
	return q, true, nil
}

// History returns OHLCV bars oldest first, with null bars dropped.
func (c *Client) History(ctx context.Context, ticker, period, interval string) (models.Series, bool, error) {
	rng := repository.NormalizePeriod(period)
	iv := repository.NormalizeInterval(interval)

	result, ok, err := c.fetchChart(ctx, normalize(ticker), rng, iv)
	if err != nil || !ok {
		return nil, false, err
	}

	series := resultToSeries(result)
	if len(series) == 0 {
		return nil, false, nil
	}
	return series, true, nil
}

func resultToSeries(result chartResult) models.Series {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]
	series := make(models.Series, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		if i >= len(quote.Close) || quote.Close[i] == nil {
			continue
		}
		candle := models.Candle{
			Date:  time.Unix(ts, 0).UTC(),
			Close: *quote.Close[i],
		}
		if i < len(quote.Open) && quote.Open[i] != nil {
			candle.Open = *quote.Open[i]
		}
		if i < len(quote.High) && quote.High[i] != nil {
			candle.High = *quote.High[i]
		}
		if i < len(quote.Low) && quote.Low[i] != nil {
			candle.Low = *quote.Low[i]
		}
		if i < len(quote.Volume) && quote.Volume[i] != nil {
			candle.Volume = *quote.Volume[i]
		}
		series = append(series, candle)
	}

	sort.Slice(series, func(i, j int) bool { return series[i].Date.Before(series[j].Date) })
	return series
}

func normalize(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
