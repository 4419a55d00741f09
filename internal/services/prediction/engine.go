package prediction

import (
	"errors"
	"fmt"
	"time"

	"StockLens/internal/domain/models"
)

const (
	ModelForest = "forest"
	ModelLinear = "linear"
	ModelTrend  = "trend"
)

// minModelRows is the smallest dataset the regression models accept.
// Below it the default model falls back to the trend forecaster, while
// an explicitly requested regressor fails instead.
const minModelRows = 40

var ErrNotEnoughHistory = errors.New("prediction: not enough history to forecast")

// Config controls model training and forecast length.
type Config struct {
	Days         int
	TestFraction float64
	ForestTrees  int
	ForestDepth  int
	Seed         int64
}

type Option func(*Config)

func WithHorizon(days int) Option {
	return func(c *Config) {
		if days > 0 {
			c.Days = days
		}
	}
}

func WithTestFraction(f float64) Option {
	return func(c *Config) {
		if f > 0 && f < 1 {
			c.TestFraction = f
		}
	}
}

func WithForest(trees, depth int) Option {
	return func(c *Config) {
		if trees > 0 {
			c.ForestTrees = trees
		}
		if depth > 0 {
			c.ForestDepth = depth
		}
	}
}

func WithSeed(seed int64) Option {
	return func(c *Config) { c.Seed = seed }
}

// Engine trains a price model on history and projects future closes.
type Engine struct {
	cfg Config
}

func NewEngine(opts ...Option) *Engine {
	cfg := Config{
		Days:         30,
		TestFraction: 0.2,
		ForestTrees:  100,
		ForestDepth:  10,
		Seed:         42,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{cfg: cfg}
}

type fittedModel interface {
	Predict(row []float64) float64
	PredictAll(X [][]float64) []float64
}

// Predict fits the requested model and produces an iterative forecast.
// Days defaults to the configured horizon when zero.
func (e *Engine) Predict(ticker string, series models.Series, modelName string, days int) (models.PredictionResult, error) {
	if days <= 0 {
		days = e.cfg.Days
	}
	if len(series) < 2 {
		return models.PredictionResult{}, ErrNotEnoughHistory
	}

	ds := buildDataset(series)
	switch modelName {
	case ModelTrend:
		return e.trendForecast(ticker, series, days)
	case "":
		modelName = ModelForest
		if len(ds.X) < minModelRows {
			return e.trendForecast(ticker, series, days)
		}
	case ModelLinear, ModelForest:
		if len(ds.X) < minModelRows {
			return models.PredictionResult{}, fmt.Errorf("%w: %q needs %d usable rows, have %d",
				ErrNotEnoughHistory, modelName, minModelRows, len(ds.X))
		}
	default:
		return models.PredictionResult{}, fmt.Errorf("prediction: unknown model %q", modelName)
	}

	train, test := splitChronological(ds, e.cfg.TestFraction)

	var (
		model       fittedModel
		importances map[string]float64
	)
	switch modelName {
	case ModelLinear:
		lm, err := FitLinear(train.X, train.Y)
		if err != nil {
			return models.PredictionResult{}, fmt.Errorf("prediction: linear fit: %w", err)
		}
		model = lm
	case ModelForest:
		fm := FitForest(train.X, train.Y, e.cfg.ForestTrees, e.cfg.ForestDepth, e.cfg.Seed)
		model = fm
		importances = make(map[string]float64, featCount)
		for i, v := range fm.Importances() {
			importances[featureNames[i]] = v
		}
	}

	trainMetrics := metricsFor(model.PredictAll(train.X), train.Y)
	testMetrics := metricsFor(model.PredictAll(test.X), test.Y)

	lastClose := series[len(series)-1].Close
	lastDate := series[len(series)-1].Date
	forecast := e.iterativeForecast(model, ds, lastDate, days)

	result := models.PredictionResult{
		Ticker:            ticker,
		Model:             modelName,
		Train:             trainMetrics,
		Test:              testMetrics,
		Confidence:        confidenceFor(testMetrics.R2),
		Forecast:          forecast,
		FeatureImportance: importances,
		Summary:           summarize(lastClose, forecast),
	}
	return result, nil
}

// iterativeForecast walks forward one calendar day per step, feeding
// each predicted close back into the moving-average features. The
// remaining features are held at their last observed values.
func (e *Engine) iterativeForecast(model fittedModel, ds dataset, lastDate time.Time, days int) []models.ForecastPoint {
	row := make([]float64, featCount)
	copy(row, ds.X[len(ds.X)-1])

	out := make([]models.ForecastPoint, 0, days)
	for step := 1; step <= days; step++ {
		row[featDays]++
		price := model.Predict(row)
		date := lastDate.AddDate(0, 0, step)
		out = append(out, models.ForecastPoint{Date: date, Price: price})

		row[featMA5] = price
		row[featMA10] = price
		row[featMA20] = price
	}
	return out
}

// trendForecast projects the average daily return of the recent window.
// It backs the default model when history is too short and serves as
// the explicit "trend" model.
func (e *Engine) trendForecast(ticker string, series models.Series, days int) (models.PredictionResult, error) {
	closes := series.Closes()
	n := len(closes)
	window := 20
	if window >= n {
		window = n - 1
	}
	if window < 1 {
		return models.PredictionResult{}, ErrNotEnoughHistory
	}

	var drift float64
	count := 0
	for i := n - window; i < n; i++ {
		if closes[i-1] != 0 {
			drift += (closes[i] - closes[i-1]) / closes[i-1]
			count++
		}
	}
	if count > 0 {
		drift /= float64(count)
	}

	// One-step naive backtest over the window for honest metrics.
	var pred, truth []float64
	for i := n - window; i < n; i++ {
		pred = append(pred, closes[i-1]*(1+drift))
		truth = append(truth, closes[i])
	}
	m := metricsFor(pred, truth)

	lastClose := closes[n-1]
	lastDate := series[n-1].Date
	forecast := make([]models.ForecastPoint, 0, days)
	price := lastClose
	for step := 1; step <= days; step++ {
		price *= 1 + drift
		forecast = append(forecast, models.ForecastPoint{
			Date:  lastDate.AddDate(0, 0, step),
			Price: price,
		})
	}

	return models.PredictionResult{
		Ticker:     ticker,
		Model:      ModelTrend,
		Train:      m,
		Test:       m,
		Confidence: confidenceFor(m.R2),
		Forecast:   forecast,
		Summary:    summarize(lastClose, forecast),
	}, nil
}

func confidenceFor(r2 float64) models.ConfidenceLabel {
	switch {
	case r2 >= 0.8:
		return models.ConfidenceHigh
	case r2 >= 0.6:
		return models.ConfidenceModerate
	case r2 >= 0.4:
		return models.ConfidenceLow
	default:
		return models.ConfidenceVeryLow
	}
}

func summarize(current float64, forecast []models.ForecastPoint) models.PredictionSummary {
	s := models.PredictionSummary{CurrentPrice: current}
	if len(forecast) == 0 {
		return s
	}

	at := func(day int) float64 {
		idx := day - 1
		if idx >= len(forecast) {
			idx = len(forecast) - 1
		}
		return forecast[idx].Price
	}
	s.Day7Price = at(7)
	s.Day30Price = at(30)
	if current != 0 {
		s.Day7ChangePct = (s.Day7Price - current) / current * 100
		s.Day30ChangePct = (s.Day30Price - current) / current * 100
	}

	s.ForecastHigh = forecast[0].Price
	s.ForecastLow = forecast[0].Price
	for _, p := range forecast[1:] {
		if p.Price > s.ForecastHigh {
			s.ForecastHigh = p.Price
		}
		if p.Price < s.ForecastLow {
			s.ForecastLow = p.Price
		}
	}

	switch {
	case s.Day30Price > current:
		s.Direction = "Up"
	case s.Day30Price < current:
		s.Direction = "Down"
	default:
		s.Direction = "Flat"
	}
	return s
}
