package models

import (
	"encoding/json"
	"math"
	"time"
)

// IndicatorPoint carries every computed indicator value for one bar.
// Values are NaN while the owning window is still warming up; the JSON
// encoding replaces NaN with null.
type IndicatorPoint struct {
	Date        time.Time `json:"date"`
	Close       float64   `json:"close"`
	SMA50       float64   `json:"sma_50"`
	SMA200      float64   `json:"sma_200"`
	EMA20       float64   `json:"ema_20"`
	RSI         float64   `json:"rsi"`
	MACD        float64   `json:"macd"`
	MACDSignal  float64   `json:"macd_signal"`
	MACDHist    float64   `json:"macd_hist"`
	BBUpper     float64   `json:"bb_upper"`
	BBMiddle    float64   `json:"bb_middle"`
	BBLower     float64   `json:"bb_lower"`
	BBWidth     float64   `json:"bb_width"`
	BBPercentB  float64   `json:"bb_percent_b"`
	ATR         float64   `json:"atr"`
	OBV         float64   `json:"obv"`
	Support     float64   `json:"support"`
	Resistance  float64   `json:"resistance"`
	DailyReturn float64   `json:"daily_return"`
}

// MarshalJSON emits null for values whose window has not filled yet.
func (p IndicatorPoint) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"date":         p.Date,
		"close":        nullable(p.Close),
		"sma_50":       nullable(p.SMA50),
		"sma_200":      nullable(p.SMA200),
		"ema_20":       nullable(p.EMA20),
		"rsi":          nullable(p.RSI),
		"macd":         nullable(p.MACD),
		"macd_signal":  nullable(p.MACDSignal),
		"macd_hist":    nullable(p.MACDHist),
		"bb_upper":     nullable(p.BBUpper),
		"bb_middle":    nullable(p.BBMiddle),
		"bb_lower":     nullable(p.BBLower),
		"bb_width":     nullable(p.BBWidth),
		"bb_percent_b": nullable(p.BBPercentB),
		"atr":          nullable(p.ATR),
		"obv":          nullable(p.OBV),
		"support":      nullable(p.Support),
		"resistance":   nullable(p.Resistance),
		"daily_return": nullable(p.DailyReturn),
	}
	return json.Marshal(out)
}

func nullable(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// Levels are the support and resistance estimates across the series.
// Support and resistance are NaN until the lookback window has filled.
type Levels struct {
	Support      float64 `json:"support"`
	Resistance   float64 `json:"resistance"`
	SeriesLow    float64 `json:"series_low"`
	SeriesHigh   float64 `json:"series_high"`
	LookbackBars int     `json:"lookback_bars"`
	LatestClose  float64 `json:"latest_close"`
	DistSupport  float64 `json:"distance_to_support_pct"`
	DistResist   float64 `json:"distance_to_resistance_pct"`
}

// MarshalJSON emits null for levels the lookback has not produced yet.
func (l Levels) MarshalJSON() ([]byte, error) {
	out := map[string]interface{}{
		"support":                    nullable(l.Support),
		"resistance":                 nullable(l.Resistance),
		"series_low":                 nullable(l.SeriesLow),
		"series_high":                nullable(l.SeriesHigh),
		"lookback_bars":              l.LookbackBars,
		"latest_close":               nullable(l.LatestClose),
		"distance_to_support_pct":    nullable(l.DistSupport),
		"distance_to_resistance_pct": nullable(l.DistResist),
	}
	return json.Marshal(out)
}

// IndicatorReport is the full engine output for one ticker and period.
type IndicatorReport struct {
	Ticker  string           `json:"ticker"`
	Period  string           `json:"period"`
	Points  []IndicatorPoint `json:"points"`
	Latest  IndicatorPoint   `json:"latest"`
	Signals SignalSet        `json:"signals"`
	Levels  Levels           `json:"levels"`
}
