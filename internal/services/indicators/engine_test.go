package indicators

import (
	"math"
	"testing"
	"time"

	"StockLens/internal/domain/models"
)

func seriesFromCloses(closes []float64) models.Series {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := make(models.Series, len(closes))
	for i, c := range closes {
		s[i] = models.Candle{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c * 1.01,
			Low:    c * 0.99,
			Close:  c,
			Volume: 1_000_000,
		}
	}
	return s
}

func linearCloses(n int, start, step float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = start + step*float64(i)
	}
	return out
}

func TestSMAWarmup(t *testing.T) {
	got := SMA([]float64{1, 2, 3, 4, 5}, 3)
	if !math.IsNaN(got[0]) || !math.IsNaN(got[1]) {
		t.Errorf("expected NaN during warm-up, got %v", got[:2])
	}
	want := []float64{2, 3, 4}
	for i, w := range want {
		if math.Abs(got[i+2]-w) > 1e-9 {
			t.Errorf("sma[%d] = %v, want %v", i+2, got[i+2], w)
		}
	}
}

func TestEMASeededWithSMA(t *testing.T) {
	values := []float64{2, 4, 6, 8}
	got := EMA(values, 3)
	if !math.IsNaN(got[0]) || !math.IsNaN(got[1]) {
		t.Error("expected NaN before the seed index")
	}
	if math.Abs(got[2]-4) > 1e-9 {
		t.Errorf("seed = %v, want 4", got[2])
	}
	// k = 2/(3+1) = 0.5, so ema[3] = 8*0.5 + 4*0.5 = 6.
	if math.Abs(got[3]-6) > 1e-9 {
		t.Errorf("ema[3] = %v, want 6", got[3])
	}
}

func TestRSIEdgeCases(t *testing.T) {
	up := RSI(linearCloses(20, 100, 1), 14)
	if got := up[len(up)-1]; math.Abs(got-100) > 1e-9 {
		t.Errorf("all-gains rsi = %v, want 100", got)
	}

	flat := RSI(linearCloses(20, 100, 0), 14)
	if got := flat[len(flat)-1]; math.Abs(got-50) > 1e-9 {
		t.Errorf("flat rsi = %v, want 50", got)
	}

	down := RSI(linearCloses(20, 100, -1), 14)
	if got := down[len(down)-1]; math.Abs(got-0) > 1e-9 {
		t.Errorf("all-losses rsi = %v, want 0", got)
	}
}

func TestRSIWithinBounds(t *testing.T) {
	closes := make([]float64, 120)
	price := 100.0
	for i := range closes {
		if i%3 == 0 {
			price *= 1.02
		} else {
			price *= 0.995
		}
		closes[i] = price
	}
	for i, v := range RSI(closes, 14) {
		if math.IsNaN(v) {
			continue
		}
		if v < 0 || v > 100 {
			t.Fatalf("rsi[%d] = %v out of [0,100]", i, v)
		}
	}
}

func TestBollingerConstantSeries(t *testing.T) {
	upper, middle, lower := Bollinger(linearCloses(25, 50, 0), 20, 2)
	last := len(upper) - 1
	if upper[last] != 50 || middle[last] != 50 || lower[last] != 50 {
		t.Errorf("constant series bands = %v/%v/%v, want 50/50/50",
			upper[last], middle[last], lower[last])
	}
}

func TestOBVScan(t *testing.T) {
	s := models.Series{
		{Close: 10, Volume: 100},
		{Close: 11, Volume: 200},
		{Close: 11, Volume: 300},
		{Close: 9, Volume: 400},
	}
	got := OBV(s)
	want := []float64{0, 200, 200, -200}
	for i, w := range want {
		if got[i] != w {
			t.Errorf("obv[%d] = %v, want %v", i, got[i], w)
		}
	}
}

func TestComputeLinearUptrend(t *testing.T) {
	e := NewEngine()
	series := seriesFromCloses(linearCloses(300, 100, 0.5))

	report, err := e.Compute("TEST", "1y", series)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if report.Signals.MACross.Kind != models.SignalBullishTrend {
		t.Errorf("ma cross = %v, want Bullish Trend", report.Signals.MACross.Kind)
	}
	if report.Signals.Trend.Kind != models.SignalBullish {
		t.Errorf("trend = %v, want Bullish", report.Signals.Trend.Kind)
	}
	if report.Signals.Trend.Polarity != models.PolarityBullish {
		t.Errorf("trend polarity = %v, want Bullish", report.Signals.Trend.Polarity)
	}
	if report.Signals.RSI.Kind != models.SignalOverbought {
		t.Errorf("rsi signal = %v, want Overbought", report.Signals.RSI.Kind)
	}
	if report.Signals.RSI.Message == "" {
		t.Error("rsi signal should carry a message")
	}
	if math.IsNaN(report.Latest.SMA200) {
		t.Error("sma_200 should be defined with 300 bars")
	}
	if report.Levels.Resistance < report.Levels.Support {
		t.Error("resistance below support")
	}
}

func TestComputeShortSeriesNeutral(t *testing.T) {
	e := NewEngine()
	series := seriesFromCloses(linearCloses(10, 100, 1))

	report, err := e.Compute("TEST", "1mo", series)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	sig := report.Signals
	for name, got := range map[string]models.Signal{
		"rsi": sig.RSI, "macd": sig.MACD, "ma_cross": sig.MACross,
		"trend": sig.Trend, "volume": sig.Volume, "bollinger": sig.Bollinger,
	} {
		if got.Kind != models.SignalNeutral {
			t.Errorf("%s = %v, want Neutral on short series", name, got.Kind)
		}
		if got.Polarity != models.PolarityNeutral {
			t.Errorf("%s polarity = %v, want Neutral", name, got.Polarity)
		}
		if got.Message == "" {
			t.Errorf("%s should explain why it is neutral", name)
		}
	}

	if !math.IsNaN(report.Latest.Support) || !math.IsNaN(report.Latest.Resistance) {
		t.Error("support and resistance should be undefined before the lookback fills")
	}
	if !math.IsNaN(report.Levels.Support) || !math.IsNaN(report.Levels.Resistance) {
		t.Error("levels should be undefined before the lookback fills")
	}
}

func TestComputeEmptySeries(t *testing.T) {
	e := NewEngine()
	if _, err := e.Compute("TEST", "1y", nil); err == nil {
		t.Fatal("expected error for empty series")
	}
}

func TestMACDCrossoverPriority(t *testing.T) {
	prev := models.IndicatorPoint{MACD: -0.5, MACDSignal: 0.1}
	latest := models.IndicatorPoint{MACD: 0.4, MACDSignal: 0.2}
	if got := macdSignal(latest, prev); got.Kind != models.SignalBullishCrossover {
		t.Errorf("got %v, want Bullish Crossover", got.Kind)
	}

	prev = models.IndicatorPoint{MACD: 0.5, MACDSignal: 0.1}
	latest = models.IndicatorPoint{MACD: -0.4, MACDSignal: 0.2}
	if got := macdSignal(latest, prev); got.Kind != models.SignalBearishCrossover {
		t.Errorf("got %v, want Bearish Crossover", got.Kind)
	}

	prev = models.IndicatorPoint{MACD: 0.5, MACDSignal: 0.1}
	latest = models.IndicatorPoint{MACD: 0.4, MACDSignal: 0.2}
	if got := macdSignal(latest, prev); got.Kind != models.SignalBullish {
		t.Errorf("got %v, want Bullish", got.Kind)
	}
}

func TestMACrossGoldenAndDeath(t *testing.T) {
	prev := models.IndicatorPoint{SMA50: 99, SMA200: 100}
	latest := models.IndicatorPoint{SMA50: 101, SMA200: 100}
	got := maCrossSignal(latest, prev)
	if got.Kind != models.SignalGoldenCross {
		t.Errorf("got %v, want Golden Cross", got.Kind)
	}
	if got.Polarity != models.PolarityBullish {
		t.Errorf("golden cross polarity = %v, want Bullish", got.Polarity)
	}

	prev = models.IndicatorPoint{SMA50: 101, SMA200: 100}
	latest = models.IndicatorPoint{SMA50: 99, SMA200: 100}
	got = maCrossSignal(latest, prev)
	if got.Kind != models.SignalDeathCross {
		t.Errorf("got %v, want Death Cross", got.Kind)
	}
	if got.Polarity != models.PolarityBearish {
		t.Errorf("death cross polarity = %v, want Bearish", got.Polarity)
	}
}

func TestRSISignalInclusiveThresholds(t *testing.T) {
	e := NewEngine()
	cases := []struct {
		rsi      float64
		want     models.SignalKind
		polarity models.Polarity
	}{
		{75, models.SignalOverbought, models.PolarityBearish},
		{70, models.SignalOverbought, models.PolarityBearish},
		{50, models.SignalNeutral, models.PolarityNeutral},
		{30, models.SignalOversold, models.PolarityBullish},
		{25, models.SignalOversold, models.PolarityBullish},
	}
	for _, tc := range cases {
		got := e.rsiSignal(tc.rsi)
		if got.Kind != tc.want {
			t.Errorf("rsiSignal(%v) = %v, want %v", tc.rsi, got.Kind, tc.want)
		}
		if got.Polarity != tc.polarity {
			t.Errorf("rsiSignal(%v) polarity = %v, want %v", tc.rsi, got.Polarity, tc.polarity)
		}
	}

	if got := e.rsiSignal(math.NaN()); got.Kind != models.SignalNeutral || got.Message == "" {
		t.Errorf("rsiSignal(NaN) = %+v, want explained Neutral", got)
	}
}

func TestBollingerSignalBands(t *testing.T) {
	point := func(close float64) models.IndicatorPoint {
		return models.IndicatorPoint{Close: close, BBUpper: 110, BBMiddle: 100, BBLower: 90}
	}
	cases := []struct {
		close    float64
		want     models.SignalKind
		polarity models.Polarity
	}{
		{115, models.SignalOverbought, models.PolarityBearish},
		{110, models.SignalOverbought, models.PolarityBearish},
		{105, models.SignalAboveAverage, models.PolarityBullish},
		{100, models.SignalBelowAverage, models.PolarityBearish},
		{95, models.SignalBelowAverage, models.PolarityBearish},
		{90, models.SignalOversold, models.PolarityBullish},
		{85, models.SignalOversold, models.PolarityBullish},
	}
	for _, tc := range cases {
		got := bollingerSignal(point(tc.close))
		if got.Kind != tc.want {
			t.Errorf("bollingerSignal(close=%v) = %v, want %v", tc.close, got.Kind, tc.want)
		}
		if got.Polarity != tc.polarity {
			t.Errorf("bollingerSignal(close=%v) polarity = %v, want %v", tc.close, got.Polarity, tc.polarity)
		}
	}
}

func TestRollingExtremesWarmup(t *testing.T) {
	maxes := rollingMax([]float64{1, 3, 2, 5}, 3)
	if !math.IsNaN(maxes[0]) || !math.IsNaN(maxes[1]) {
		t.Errorf("expected NaN before the window fills, got %v", maxes[:2])
	}
	if maxes[2] != 3 || maxes[3] != 5 {
		t.Errorf("rolling max = %v, want [_, _, 3, 5]", maxes)
	}

	mins := rollingMin([]float64{4, 3, 5, 1}, 3)
	if !math.IsNaN(mins[0]) || !math.IsNaN(mins[1]) {
		t.Errorf("expected NaN before the window fills, got %v", mins[:2])
	}
	if mins[2] != 3 || mins[3] != 1 {
		t.Errorf("rolling min = %v, want [_, _, 3, 1]", mins)
	}
}

func TestATRRollingMean(t *testing.T) {
	series := seriesFromCloses(linearCloses(30, 100, 0))
	got := ATR(series, 14)
	last := got[len(got)-1]
	// Constant close of 100 with high 101 and low 99 gives TR 2 everywhere.
	if math.Abs(last-2) > 1e-9 {
		t.Errorf("atr = %v, want 2", last)
	}
}
