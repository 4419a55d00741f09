package indicators

import (
	"math"

	"StockLens/internal/domain/models"
)

// levels summarizes support and resistance from the rolling extremes and
// the full-series high and low.
func (e *Engine) levels(series models.Series, support, resistance []float64) models.Levels {
	last, _ := series.Last()

	lv := models.Levels{
		LookbackBars: e.cfg.LevelLookback,
		LatestClose:  last.Close,
		SeriesLow:    math.Inf(1),
		SeriesHigh:   math.Inf(-1),
	}
	for _, c := range series {
		if c.Low < lv.SeriesLow {
			lv.SeriesLow = c.Low
		}
		if c.High > lv.SeriesHigh {
			lv.SeriesHigh = c.High
		}
	}

	lv.Support = support[len(support)-1]
	lv.Resistance = resistance[len(resistance)-1]

	lv.DistSupport = math.NaN()
	lv.DistResist = math.NaN()
	if last.Close != 0 && !math.IsNaN(lv.Support) {
		lv.DistSupport = (last.Close - lv.Support) / last.Close * 100
	}
	if last.Close != 0 && !math.IsNaN(lv.Resistance) {
		lv.DistResist = (lv.Resistance - last.Close) / last.Close * 100
	}
	return lv
}
