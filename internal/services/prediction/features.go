package prediction

import (
	"math"
	"time"

	"StockLens/internal/domain/models"
)

// Feature column order. The iterative forecaster updates the day count
// and moving averages in place, so indices here are load-bearing.
const (
	featDays = iota
	featOpen
	featHigh
	featLow
	featVolume
	featMA5
	featMA10
	featMA20
	featVolatility
	featDailyReturn
	featDayOfWeek
	featMonth
	featCount
)

var featureNames = [featCount]string{
	"days", "open", "high", "low", "volume",
	"ma_5", "ma_10", "ma_20", "volatility",
	"daily_return", "day_of_week", "month",
}

// dataset holds aligned feature rows and close-price targets.
type dataset struct {
	X     [][]float64
	Y     []float64
	Dates []time.Time
}

// buildDataset derives the feature matrix from a daily series. Rows
// before the longest rolling window has filled are dropped.
func buildDataset(series models.Series) dataset {
	n := len(series)
	closes := series.Closes()

	ma5 := rollingMean(closes, 5)
	ma10 := rollingMean(closes, 10)
	ma20 := rollingMean(closes, 20)

	returns := make([]float64, n)
	for i := 1; i < n; i++ {
		if closes[i-1] != 0 {
			returns[i] = (closes[i] - closes[i-1]) / closes[i-1]
		}
	}
	vol := rollingSampleStd(returns, 10)

	var ds dataset
	for i := 0; i < n; i++ {
		if math.IsNaN(ma20[i]) || math.IsNaN(vol[i]) {
			continue
		}
		c := series[i]
		row := make([]float64, featCount)
		row[featDays] = dayOrdinal(c.Date)
		row[featOpen] = c.Open
		row[featHigh] = c.High
		row[featLow] = c.Low
		row[featVolume] = float64(c.Volume)
		row[featMA5] = ma5[i]
		row[featMA10] = ma10[i]
		row[featMA20] = ma20[i]
		row[featVolatility] = vol[i]
		row[featDailyReturn] = returns[i]
		row[featDayOfWeek] = float64(c.Date.Weekday())
		row[featMonth] = float64(c.Date.Month())

		ds.X = append(ds.X, row)
		ds.Y = append(ds.Y, c.Close)
		ds.Dates = append(ds.Dates, c.Date)
	}
	return ds
}

// splitChronological keeps row order and cuts at the given fraction.
// Shuffling would leak future prices into the training set.
func splitChronological(ds dataset, testFraction float64) (train, test dataset) {
	cut := int(float64(len(ds.X)) * (1 - testFraction))
	if cut < 1 {
		cut = 1
	}
	if cut > len(ds.X) {
		cut = len(ds.X)
	}
	train = dataset{X: ds.X[:cut], Y: ds.Y[:cut], Dates: ds.Dates[:cut]}
	test = dataset{X: ds.X[cut:], Y: ds.Y[cut:], Dates: ds.Dates[cut:]}
	return train, test
}

func dayOrdinal(t time.Time) float64 {
	return float64(t.Unix() / 86400)
}

func rollingMean(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
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

func rollingSampleStd(values []float64, window int) []float64 {
	out := make([]float64, len(values))
	for i := range out {
		out[i] = math.NaN()
	}
	if window <= 1 || len(values) < window {
		return out
	}
	for i := window - 1; i < len(values); i++ {
		var mean float64
		for j := i - window + 1; j <= i; j++ {
			mean += values[j]
		}
		mean /= float64(window)
		var sq float64
		for j := i - window + 1; j <= i; j++ {
			d := values[j] - mean
			sq += d * d
		}
		out[i] = math.Sqrt(sq / float64(window-1))
	}
	return out
}

// metricsFor computes RMSE, MAE and R2 of predictions against truth.
func metricsFor(pred, truth []float64) models.ModelMetrics {
	if len(truth) == 0 {
		return models.ModelMetrics{}
	}
	var mean float64
	for _, y := range truth {
		mean += y
	}
	mean /= float64(len(truth))

	var sse, sae, sst float64
	for i := range truth {
		d := pred[i] - truth[i]
		sse += d * d
		sae += math.Abs(d)
		t := truth[i] - mean
		sst += t * t
	}
	m := models.ModelMetrics{
		RMSE: math.Sqrt(sse / float64(len(truth))),
		MAE:  sae / float64(len(truth)),
	}
	if sst > 0 {
		m.R2 = 1 - sse/sst
	} else if sse == 0 {
		m.R2 = 1
	}
	return m
}
