package indicators

import (
	"errors"
	"math"

	"StockLens/internal/domain/models"
)

var ErrInsufficientData = errors.New("indicators: series is empty")

// Config holds the window lengths and thresholds for every indicator.
type Config struct {
	SMAShort      int
	SMALong       int
	EMAPeriod     int
	RSIPeriod     int
	RSIOverbought float64
	RSIOversold   float64
	MACDFast      int
	MACDSlow      int
	MACDSignal    int
	BBPeriod      int
	BBStdDev      float64
	ATRPeriod     int
	LevelLookback int
}

// Option overrides a Config field.
type Option func(*Config)

func WithMovingAverages(short, long int) Option {
	return func(c *Config) {
		if short > 0 {
			c.SMAShort = short
		}
		if long > 0 {
			c.SMALong = long
		}
	}
}

func WithRSI(period int, overbought, oversold float64) Option {
	return func(c *Config) {
		if period > 0 {
			c.RSIPeriod = period
		}
		if overbought > 0 {
			c.RSIOverbought = overbought
		}
		if oversold > 0 {
			c.RSIOversold = oversold
		}
	}
}

func WithMACD(fast, slow, signal int) Option {
	return func(c *Config) {
		if fast > 0 {
			c.MACDFast = fast
		}
		if slow > 0 {
			c.MACDSlow = slow
		}
		if signal > 0 {
			c.MACDSignal = signal
		}
	}
}

func WithBollinger(period int, stddev float64) Option {
	return func(c *Config) {
		if period > 0 {
			c.BBPeriod = period
		}
		if stddev > 0 {
			c.BBStdDev = stddev
		}
	}
}

// Engine computes technical indicators over a daily price series.
type Engine struct {
	cfg Config
}

func NewEngine(opts ...Option) *Engine {
	cfg := Config{
		SMAShort:      50,
		SMALong:       200,
		EMAPeriod:     20,
		RSIPeriod:     14,
		RSIOverbought: 70,
		RSIOversold:   30,
		MACDFast:      12,
		MACDSlow:      26,
		MACDSignal:    9,
		BBPeriod:      20,
		BBStdDev:      2,
		ATRPeriod:     14,
		LevelLookback: 20,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Engine{cfg: cfg}
}

// Compute produces the full indicator report for one series. Values are
// NaN until their window has filled; signals degrade to Neutral when the
// latest value is still NaN.
func (e *Engine) Compute(ticker, period string, series models.Series) (models.IndicatorReport, error) {
	if len(series) == 0 {
		return models.IndicatorReport{}, ErrInsufficientData
	}

	closes := series.Closes()
	highs := series.Highs()
	lows := series.Lows()

	sma50 := SMA(closes, e.cfg.SMAShort)
	sma200 := SMA(closes, e.cfg.SMALong)
	ema20 := EMA(closes, e.cfg.EMAPeriod)
	rsi := RSI(closes, e.cfg.RSIPeriod)
	macd, macdSignal, macdHist := MACD(closes, e.cfg.MACDFast, e.cfg.MACDSlow, e.cfg.MACDSignal)
	bbUpper, bbMiddle, bbLower := Bollinger(closes, e.cfg.BBPeriod, e.cfg.BBStdDev)
	atr := ATR(series, e.cfg.ATRPeriod)
	obv := OBV(series)
	support := rollingMin(lows, e.cfg.LevelLookback)
	resistance := rollingMax(highs, e.cfg.LevelLookback)
	returns := dailyReturns(closes)

	points := make([]models.IndicatorPoint, len(series))
	for i, c := range series {
		width := math.NaN()
		percentB := math.NaN()
		if !math.IsNaN(bbUpper[i]) && !math.IsNaN(bbLower[i]) && bbMiddle[i] != 0 {
			width = (bbUpper[i] - bbLower[i]) / bbMiddle[i]
			if span := bbUpper[i] - bbLower[i]; span != 0 {
				percentB = (closes[i] - bbLower[i]) / span
			}
		}
		points[i] = models.IndicatorPoint{
			Date:        c.Date,
			Close:       closes[i],
			SMA50:       sma50[i],
			SMA200:      sma200[i],
			EMA20:       ema20[i],
			RSI:         rsi[i],
			MACD:        macd[i],
			MACDSignal:  macdSignal[i],
			MACDHist:    macdHist[i],
			BBUpper:     bbUpper[i],
			BBMiddle:    bbMiddle[i],
			BBLower:     bbLower[i],
			BBWidth:     width,
			BBPercentB:  percentB,
			ATR:         atr[i],
			OBV:         obv[i],
			Support:     support[i],
			Resistance:  resistance[i],
			DailyReturn: returns[i],
		}
	}

	latest := points[len(points)-1]
	var prev models.IndicatorPoint
	if len(points) > 1 {
		prev = points[len(points)-2]
	} else {
		prev = latest
	}

	report := models.IndicatorReport{
		Ticker:  ticker,
		Period:  period,
		Points:  points,
		Latest:  latest,
		Signals: e.deriveSignals(series, latest, prev),
		Levels:  e.levels(series, support, resistance),
	}
	return report, nil
}

// SMA is a simple moving average; NaN until the window fills.
func SMA(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = sum / float64(window)
		}
	}
	return out
}

// EMA seeds with the SMA of the first window values, then applies the
// smoothing factor 2/(window+1).
func EMA(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	var seed float64
	for i := 0; i < window; i++ {
		seed += values[i]
	}
	seed /= float64(window)
	out[window-1] = seed

	k := 2.0 / float64(window+1)
	for i := window; i < len(values); i++ {
		out[i] = values[i]*k + out[i-1]*(1-k)
	}
	return out
}

// RSI uses Wilder smoothing of average gains and losses.
func RSI(values []float64, period int) []float64 {
	out := nanSlice(len(values))
	if period <= 0 || len(values) <= period {
		return out
	}

	var avgGain, avgLoss float64
	for i := 1; i <= period; i++ {
		diff := values[i] - values[i-1]
		if diff > 0 {
			avgGain += diff
		} else {
			avgLoss -= diff
		}
	}
	avgGain /= float64(period)
	avgLoss /= float64(period)
	out[period] = rsiValue(avgGain, avgLoss)

	for i := period + 1; i < len(values); i++ {
		diff := values[i] - values[i-1]
		gain, loss := 0.0, 0.0
		if diff > 0 {
			gain = diff
		} else {
			loss = -diff
		}
		avgGain = (avgGain*float64(period-1) + gain) / float64(period)
		avgLoss = (avgLoss*float64(period-1) + loss) / float64(period)
		out[i] = rsiValue(avgGain, avgLoss)
	}
	return out
}

func rsiValue(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return 50
		}
		return 100
	}
	rs := avgGain / avgLoss
	return 100 - 100/(1+rs)
}

// MACD returns the MACD line, its signal line, and the histogram.
func MACD(values []float64, fast, slow, signal int) (line, signalLine, hist []float64) {
	emaFast := EMA(values, fast)
	emaSlow := EMA(values, slow)

	line = nanSlice(len(values))
	for i := range values {
		if !math.IsNaN(emaFast[i]) && !math.IsNaN(emaSlow[i]) {
			line[i] = emaFast[i] - emaSlow[i]
		}
	}

	// Signal line is an EMA over the defined region of the MACD line.
	signalLine = nanSlice(len(values))
	start := firstDefined(line)
	if start >= 0 {
		defined := line[start:]
		sig := EMA(defined, signal)
		for i, v := range sig {
			signalLine[start+i] = v
		}
	}

	hist = nanSlice(len(values))
	for i := range values {
		if !math.IsNaN(line[i]) && !math.IsNaN(signalLine[i]) {
			hist[i] = line[i] - signalLine[i]
		}
	}
	return line, signalLine, hist
}

// Bollinger returns upper, middle, and lower bands using the population
// standard deviation over the window.
func Bollinger(values []float64, window int, numStd float64) (upper, middle, lower []float64) {
	middle = SMA(values, window)
	upper = nanSlice(len(values))
	lower = nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return upper, middle, lower
	}
	for i := window - 1; i < len(values); i++ {
		mean := middle[i]
		var sq float64
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(window))
		upper[i] = mean + numStd*std
		lower[i] = mean - numStd*std
	}
	return upper, middle, lower
}

// ATR is a rolling mean of the true range.
func ATR(series models.Series, period int) []float64 {
	out := nanSlice(len(series))
	if period <= 0 || len(series) < period {
		return out
	}
	tr := make([]float64, len(series))
	for i, c := range series {
		if i == 0 {
			tr[i] = c.High - c.Low
			continue
		}
		prevClose := series[i-1].Close
		tr[i] = math.Max(c.High-c.Low, math.Max(math.Abs(c.High-prevClose), math.Abs(c.Low-prevClose)))
	}
	return SMA(tr, period)
}

// OBV accumulates volume by the sign of the close-to-close move.
func OBV(series models.Series) []float64 {
	out := make([]float64, len(series))
	if len(series) == 0 {
		return out
	}
	out[0] = 0
	for i := 1; i < len(series); i++ {
		switch {
		case series[i].Close > series[i-1].Close:
			out[i] = out[i-1] + float64(series[i].Volume)
		case series[i].Close < series[i-1].Close:
			out[i] = out[i-1] - float64(series[i].Volume)
		default:
			out[i] = out[i-1]
		}
	}
	return out
}

func dailyReturns(values []float64) []float64 {
	out := nanSlice(len(values))
	for i := 1; i < len(values); i++ {
		if values[i-1] != 0 {
			out[i] = (values[i] - values[i-1]) / values[i-1] * 100
		}
	}
	return out
}

func rollingMax(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		max := values[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if values[j] > max {
				max = values[j]
			}
		}
		out[i] = max
	}
	return out
}

func rollingMin(values []float64, window int) []float64 {
	out := nanSlice(len(values))
	if window <= 0 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		min := values[i-window+1]
		for j := i - window + 2; j <= i; j++ {
			if values[j] < min {
				min = values[j]
			}
		}
		out[i] = min
	}
	return out
}

func nanSlice(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.NaN()
	}
	return out
}

func firstDefined(values []float64) int {
	for i, v := range values {
		if !math.IsNaN(v) {
			return i
		}
	}
	return -1
}
