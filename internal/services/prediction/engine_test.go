package prediction

import (
	"errors"
	"math"
	"testing"
	"time"

	"StockLens/internal/domain/models"
)

func testSeries(n int) models.Series {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := make(models.Series, n)
	price := 100.0
	for i := range s {
		// Deterministic wave on top of a mild upward drift.
		price = 100 + float64(i)*0.1 + 5*math.Sin(float64(i)/9)
		s[i] = models.Candle{
			Date:   start.AddDate(0, 0, i),
			Open:   price * 0.999,
			High:   price * 1.01,
			Low:    price * 0.99,
			Close:  price,
			Volume: 900_000 + int64(i%7)*10_000,
		}
	}
	return s
}

func TestFitLinearExact(t *testing.T) {
	X := [][]float64{{1}, {2}, {3}, {4}}
	y := []float64{3, 5, 7, 9}

	m, err := FitLinear(X, y)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	if math.Abs(m.Intercept-1) > 1e-6 {
		t.Errorf("intercept = %v, want 1", m.Intercept)
	}
	if math.Abs(m.Coef[0]-2) > 1e-6 {
		t.Errorf("coef = %v, want 2", m.Coef[0])
	}
	if got := m.Predict([]float64{10}); math.Abs(got-21) > 1e-6 {
		t.Errorf("predict(10) = %v, want 21", got)
	}
}

func TestFitLinearCollinearColumns(t *testing.T) {
	// Duplicate columns leave the normal equations rank deficient; the
	// ridge on the diagonal still has to produce a usable fit.
	X := [][]float64{{1, 1}, {2, 2}, {3, 3}, {4, 4}}
	y := []float64{2, 4, 6, 8}

	m, err := FitLinear(X, y)
	if err != nil {
		t.Fatalf("fit: %v", err)
	}
	for i, row := range X {
		if got := m.Predict(row); math.Abs(got-y[i]) > 1e-3 {
			t.Errorf("predict(%v) = %v, want %v", row, got, y[i])
		}
	}
}

func TestSplitChronologicalOrder(t *testing.T) {
	ds := buildDataset(testSeries(120))
	train, test := splitChronological(ds, 0.2)

	if len(train.X)+len(test.X) != len(ds.X) {
		t.Fatal("split lost rows")
	}
	wantTrain := int(float64(len(ds.X)) * 0.8)
	if len(train.X) != wantTrain {
		t.Errorf("train size = %d, want %d", len(train.X), wantTrain)
	}
	if len(test.Dates) > 0 && !train.Dates[len(train.Dates)-1].Before(test.Dates[0]) {
		t.Error("test rows must come strictly after training rows")
	}
}

func TestBuildDatasetWarmup(t *testing.T) {
	series := testSeries(60)
	ds := buildDataset(series)

	// MA_20 is the longest window, so the first 19 bars drop out.
	if want := 60 - 19; len(ds.X) != want {
		t.Fatalf("rows = %d, want %d", len(ds.X), want)
	}
	if ds.Y[0] != series[19].Close {
		t.Errorf("first target = %v, want close at bar 19 = %v", ds.Y[0], series[19].Close)
	}
	for i, row := range ds.X {
		for j, v := range row {
			if math.IsNaN(v) {
				t.Fatalf("row %d feature %s is NaN", i, featureNames[j])
			}
		}
	}
}

func TestForestLearnsThreshold(t *testing.T) {
	var X [][]float64
	var y []float64
	for i := 0; i < 200; i++ {
		v := float64(i) / 200
		X = append(X, []float64{v})
		if v > 0.5 {
			y = append(y, 10)
		} else {
			y = append(y, 0)
		}
	}

	fm := FitForest(X, y, 30, 6, 42)
	if got := fm.Predict([]float64{0.9}); math.Abs(got-10) > 2 {
		t.Errorf("predict(0.9) = %v, want near 10", got)
	}
	if got := fm.Predict([]float64{0.1}); math.Abs(got) > 2 {
		t.Errorf("predict(0.1) = %v, want near 0", got)
	}

	imp := fm.Importances()
	if len(imp) != 1 || math.Abs(imp[0]-1) > 1e-9 {
		t.Errorf("single-feature importances = %v, want [1]", imp)
	}
}

func TestForestDeterministicForSeed(t *testing.T) {
	ds := buildDataset(testSeries(150))
	a := FitForest(ds.X, ds.Y, 10, 5, 7)
	b := FitForest(ds.X, ds.Y, 10, 5, 7)

	row := ds.X[len(ds.X)-1]
	if a.Predict(row) != b.Predict(row) {
		t.Error("same seed should give identical predictions")
	}
}

func TestPredictForecastShape(t *testing.T) {
	e := NewEngine(WithForest(20, 6))
	series := testSeries(300)

	res, err := e.Predict("TEST", series, ModelForest, 30)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	if len(res.Forecast) != 30 {
		t.Fatalf("forecast length = %d, want 30", len(res.Forecast))
	}
	last := series[len(series)-1].Date
	for i, p := range res.Forecast {
		want := last.AddDate(0, 0, i+1)
		if !p.Date.Equal(want) {
			t.Errorf("forecast[%d] date = %v, want %v", i, p.Date, want)
		}
	}
	if res.Summary.CurrentPrice != series[len(series)-1].Close {
		t.Errorf("current price = %v, want last close", res.Summary.CurrentPrice)
	}
	if res.Summary.ForecastHigh < res.Summary.ForecastLow {
		t.Error("forecast high below forecast low")
	}
	if len(res.FeatureImportance) == 0 {
		t.Error("forest result should carry feature importances")
	}
}

func TestPredictTrendFallbackOnShortHistory(t *testing.T) {
	e := NewEngine()
	res, err := e.Predict("TEST", testSeries(30), "", 10)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.Model != ModelTrend {
		t.Errorf("model = %q, want trend fallback", res.Model)
	}
	if len(res.Forecast) != 10 {
		t.Errorf("forecast length = %d, want 10", len(res.Forecast))
	}
}

func TestPredictExplicitModelNeedsEnoughHistory(t *testing.T) {
	e := NewEngine()
	for _, name := range []string{ModelForest, ModelLinear} {
		_, err := e.Predict("TEST", testSeries(30), name, 10)
		if !errors.Is(err, ErrNotEnoughHistory) {
			t.Errorf("%s on short history: err = %v, want ErrNotEnoughHistory", name, err)
		}
	}
}

func TestPredictLinearSeriesHighR2(t *testing.T) {
	start := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	s := make(models.Series, 200)
	for i := range s {
		price := 100 + 0.5*float64(i)
		s[i] = models.Candle{
			Date:   start.AddDate(0, 0, i),
			Open:   price - 0.2,
			High:   price + 0.4,
			Low:    price - 0.4,
			Close:  price,
			Volume: 1_000_000 + int64(i%11)*5_000,
		}
	}

	e := NewEngine()
	res, err := e.Predict("TEST", s, ModelLinear, 10)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if res.Model != ModelLinear {
		t.Errorf("model = %q, want linear", res.Model)
	}
	if res.Test.R2 < 0.95 {
		t.Errorf("test R2 = %v, want >= 0.95 on a linear series", res.Test.R2)
	}
	if res.Confidence != models.ConfidenceHigh {
		t.Errorf("confidence = %v, want High", res.Confidence)
	}
}

func TestConfidenceBands(t *testing.T) {
	cases := []struct {
		r2   float64
		want models.ConfidenceLabel
	}{
		{0.95, models.ConfidenceHigh},
		{0.8, models.ConfidenceHigh},
		{0.7, models.ConfidenceModerate},
		{0.5, models.ConfidenceLow},
		{0.1, models.ConfidenceVeryLow},
		{-2, models.ConfidenceVeryLow},
	}
	for _, tc := range cases {
		if got := confidenceFor(tc.r2); got != tc.want {
			t.Errorf("confidenceFor(%v) = %v, want %v", tc.r2, got, tc.want)
		}
	}
}

func TestMetricsPerfectFit(t *testing.T) {
	truth := []float64{1, 2, 3, 4}
	m := metricsFor(truth, truth)
	if m.RMSE != 0 || m.MAE != 0 || m.R2 != 1 {
		t.Errorf("perfect fit metrics = %+v", m)
	}
}

func TestSummaryChanges(t *testing.T) {
	last := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	forecast := make([]models.ForecastPoint, 30)
	for i := range forecast {
		forecast[i] = models.ForecastPoint{
			Date:  last.AddDate(0, 0, i+1),
			Price: 110,
		}
	}
	s := summarize(100, forecast)
	if s.Day7Price != 110 || s.Day30Price != 110 {
		t.Errorf("summary prices = %v/%v", s.Day7Price, s.Day30Price)
	}
	if math.Abs(s.Day30ChangePct-10) > 1e-9 {
		t.Errorf("day 30 change = %v, want 10", s.Day30ChangePct)
	}
	if s.Direction != "Up" {
		t.Errorf("direction = %q, want Up", s.Direction)
	}
}
