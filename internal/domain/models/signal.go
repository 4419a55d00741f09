package models

// SignalKind is the category label of an indicator reading.
type SignalKind string

const (
	SignalOverbought       SignalKind = "Overbought"
	SignalOversold         SignalKind = "Oversold"
	SignalNeutral          SignalKind = "Neutral"
	SignalBullishCrossover SignalKind = "Bullish Crossover"
	SignalBearishCrossover SignalKind = "Bearish Crossover"
	SignalBullish          SignalKind = "Bullish"
	SignalBearish          SignalKind = "Bearish"
	SignalGoldenCross      SignalKind = "Golden Cross"
	SignalDeathCross       SignalKind = "Death Cross"
	SignalBullishTrend     SignalKind = "Bullish Trend"
	SignalBearishTrend     SignalKind = "Bearish Trend"
	SignalAboveAverage     SignalKind = "Above Average"
	SignalBelowAverage     SignalKind = "Below Average"
)

// Polarity is the direction a signal leans.
type Polarity string

const (
	PolarityBullish Polarity = "Bullish"
	PolarityBearish Polarity = "Bearish"
	PolarityNeutral Polarity = "Neutral"
)

// Signal pairs a category label with its rationale and direction.
type Signal struct {
	Kind     SignalKind `json:"kind"`
	Message  string     `json:"message"`
	Polarity Polarity   `json:"polarity"`
}

// SignalSet collects the per-indicator signals for the latest bar.
type SignalSet struct {
	RSI       Signal `json:"rsi"`
	MACD      Signal `json:"macd"`
	MACross   Signal `json:"ma_cross"`
	Trend     Signal `json:"trend"`
	Volume    Signal `json:"volume"`
	Bollinger Signal `json:"bollinger"`
}
