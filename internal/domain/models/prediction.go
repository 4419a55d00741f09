package models

import "time"

// ModelMetrics summarizes fit quality on one data split.
type ModelMetrics struct {
	RMSE float64 `json:"rmse"`
	MAE  float64 `json:"mae"`
	R2   float64 `json:"r2"`
}

// ForecastPoint is a single projected price.
type ForecastPoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// ConfidenceLabel buckets test R2 into a qualitative band.
type ConfidenceLabel string

const (
	ConfidenceHigh     ConfidenceLabel = "High"
	ConfidenceModerate ConfidenceLabel = "Moderate"
	ConfidenceLow      ConfidenceLabel = "Low"
	ConfidenceVeryLow  ConfidenceLabel = "Very Low"
)

// PredictionResult is the full forecaster output for one ticker.
type PredictionResult struct {
	Ticker            string             `json:"ticker"`
	Model             string             `json:"model"`
	Train             ModelMetrics       `json:"train_metrics"`
	Test              ModelMetrics       `json:"test_metrics"`
	Confidence        ConfidenceLabel    `json:"confidence"`
	Forecast          []ForecastPoint    `json:"forecast"`
	FeatureImportance map[string]float64 `json:"feature_importance,omitempty"`
	Summary           PredictionSummary  `json:"summary"`
}

// PredictionSummary condenses the forecast into headline figures.
type PredictionSummary struct {
	CurrentPrice     float64 `json:"current_price"`
	Day7Price        float64 `json:"day_7_price"`
	Day7ChangePct    float64 `json:"day_7_change_pct"`
	Day30Price       float64 `json:"day_30_price"`
	Day30ChangePct   float64 `json:"day_30_change_pct"`
	ForecastHigh     float64 `json:"forecast_high"`
	ForecastLow      float64 `json:"forecast_low"`
	Direction        string  `json:"direction"`
}
