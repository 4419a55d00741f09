package indicators

import (
	"fmt"
	"math"

	"StockLens/internal/domain/models"
)

// deriveSignals labels the latest bar. Crossovers between the last two
// bars take priority over the static comparison.
func (e *Engine) deriveSignals(series models.Series, latest, prev models.IndicatorPoint) models.SignalSet {
	return models.SignalSet{
		RSI:       e.rsiSignal(latest.RSI),
		MACD:      macdSignal(latest, prev),
		MACross:   maCrossSignal(latest, prev),
		Trend:     trendSignal(latest),
		Volume:    volumeSignal(series),
		Bollinger: bollingerSignal(latest),
	}
}

func bullish(kind models.SignalKind, format string, args ...interface{}) models.Signal {
	return models.Signal{Kind: kind, Message: fmt.Sprintf(format, args...), Polarity: models.PolarityBullish}
}

func bearish(kind models.SignalKind, format string, args ...interface{}) models.Signal {
	return models.Signal{Kind: kind, Message: fmt.Sprintf(format, args...), Polarity: models.PolarityBearish}
}

func neutral(format string, args ...interface{}) models.Signal {
	return models.Signal{Kind: models.SignalNeutral, Message: fmt.Sprintf(format, args...), Polarity: models.PolarityNeutral}
}

func (e *Engine) rsiSignal(rsi float64) models.Signal {
	switch {
	case math.IsNaN(rsi):
		return neutral("not enough bars to compute RSI")
	case rsi >= e.cfg.RSIOverbought:
		return bearish(models.SignalOverbought, "RSI %.1f is at or above %.0f", rsi, e.cfg.RSIOverbought)
	case rsi <= e.cfg.RSIOversold:
		return bullish(models.SignalOversold, "RSI %.1f is at or below %.0f", rsi, e.cfg.RSIOversold)
	default:
		return neutral("RSI %.1f is between %.0f and %.0f", rsi, e.cfg.RSIOversold, e.cfg.RSIOverbought)
	}
}

func macdSignal(latest, prev models.IndicatorPoint) models.Signal {
	if math.IsNaN(latest.MACD) || math.IsNaN(latest.MACDSignal) {
		return neutral("not enough bars to compute MACD")
	}
	crossable := !math.IsNaN(prev.MACD) && !math.IsNaN(prev.MACDSignal)
	switch {
	case crossable && prev.MACD <= prev.MACDSignal && latest.MACD > latest.MACDSignal:
		return bullish(models.SignalBullishCrossover, "MACD crossed above its signal line")
	case crossable && prev.MACD >= prev.MACDSignal && latest.MACD < latest.MACDSignal:
		return bearish(models.SignalBearishCrossover, "MACD crossed below its signal line")
	case latest.MACD > latest.MACDSignal:
		return bullish(models.SignalBullish, "MACD %.2f is above its signal line %.2f", latest.MACD, latest.MACDSignal)
	case latest.MACD < latest.MACDSignal:
		return bearish(models.SignalBearish, "MACD %.2f is below its signal line %.2f", latest.MACD, latest.MACDSignal)
	default:
		return neutral("MACD equals its signal line")
	}
}

func maCrossSignal(latest, prev models.IndicatorPoint) models.Signal {
	if math.IsNaN(latest.SMA50) || math.IsNaN(latest.SMA200) {
		return neutral("not enough bars to compute both moving averages")
	}
	crossable := !math.IsNaN(prev.SMA50) && !math.IsNaN(prev.SMA200)
	switch {
	case crossable && prev.SMA50 <= prev.SMA200 && latest.SMA50 > latest.SMA200:
		return bullish(models.SignalGoldenCross, "short average crossed above the long average")
	case crossable && prev.SMA50 >= prev.SMA200 && latest.SMA50 < latest.SMA200:
		return bearish(models.SignalDeathCross, "short average crossed below the long average")
	case latest.SMA50 > latest.SMA200:
		return bullish(models.SignalBullishTrend, "short average %.2f is above the long average %.2f", latest.SMA50, latest.SMA200)
	case latest.SMA50 < latest.SMA200:
		return bearish(models.SignalBearishTrend, "short average %.2f is below the long average %.2f", latest.SMA50, latest.SMA200)
	default:
		return neutral("short and long averages are equal")
	}
}

func trendSignal(latest models.IndicatorPoint) models.Signal {
	if math.IsNaN(latest.SMA50) {
		return neutral("not enough bars to compute the trend average")
	}
	switch {
	case latest.Close > latest.SMA50:
		return bullish(models.SignalBullish, "close %.2f is above its moving average %.2f", latest.Close, latest.SMA50)
	case latest.Close < latest.SMA50:
		return bearish(models.SignalBearish, "close %.2f is below its moving average %.2f", latest.Close, latest.SMA50)
	default:
		return neutral("close sits on its moving average")
	}
}

// volumeSignal compares the latest volume against its 20-bar average.
// Volume measures participation, not direction, so it stays neutral.
func volumeSignal(series models.Series) models.Signal {
	const window = 20
	if len(series) < window {
		return neutral("fewer than %d bars of volume history", window)
	}
	var sum float64
	for _, c := range series[len(series)-window:] {
		sum += float64(c.Volume)
	}
	avg := sum / window
	last := float64(series[len(series)-1].Volume)
	switch {
	case avg == 0:
		return neutral("no volume recorded")
	case last > avg:
		return models.Signal{
			Kind:     models.SignalAboveAverage,
			Message:  fmt.Sprintf("volume %.0f is above the %d-bar average %.0f", last, window, avg),
			Polarity: models.PolarityNeutral,
		}
	default:
		return models.Signal{
			Kind:     models.SignalBelowAverage,
			Message:  fmt.Sprintf("volume %.0f is at or below the %d-bar average %.0f", last, window, avg),
			Polarity: models.PolarityNeutral,
		}
	}
}

func bollingerSignal(latest models.IndicatorPoint) models.Signal {
	if math.IsNaN(latest.BBUpper) || math.IsNaN(latest.BBMiddle) || math.IsNaN(latest.BBLower) {
		return neutral("not enough bars to compute Bollinger bands")
	}
	switch {
	case latest.Close >= latest.BBUpper:
		return bearish(models.SignalOverbought, "close %.2f is at or above the upper band %.2f", latest.Close, latest.BBUpper)
	case latest.Close <= latest.BBLower:
		return bullish(models.SignalOversold, "close %.2f is at or below the lower band %.2f", latest.Close, latest.BBLower)
	case latest.Close > latest.BBMiddle:
		return bullish(models.SignalAboveAverage, "close %.2f is above the middle band %.2f", latest.Close, latest.BBMiddle)
	default:
		return bearish(models.SignalBelowAverage, "close %.2f is at or below the middle band %.2f", latest.Close, latest.BBMiddle)
	}
}
