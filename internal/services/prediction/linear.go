package prediction

import "errors"

var ErrSingularMatrix = errors.New("prediction: normal equations are singular")

// LinearModel is an ordinary least squares regression fit via the
// normal equations with partial-pivot Gaussian elimination.
type LinearModel struct {
	Coef      []float64
	Intercept float64
}

// FitLinear solves (X'X)b = X'y with an intercept column.
func FitLinear(X [][]float64, y []float64) (*LinearModel, error) {
	if len(X) == 0 || len(X) != len(y) {
		return nil, errors.New("prediction: empty or mismatched training data")
	}
	p := len(X[0]) + 1

	// Normal equations on the augmented design matrix.
	xtx := make([][]float64, p)
	for i := range xtx {
		xtx[i] = make([]float64, p)
	}
	xty := make([]float64, p)

	for r := range X {
		row := make([]float64, p)
		row[0] = 1
		copy(row[1:], X[r])
		for i := 0; i < p; i++ {
			for j := 0; j < p; j++ {
				xtx[i][j] += row[i] * row[j]
			}
			xty[i] += row[i] * y[r]
		}
	}

	// Collinear or constant feature columns leave X'X rank deficient,
	// so the feature diagonal gets a small ridge before solving.
	for i := 1; i < p; i++ {
		xtx[i][i] = xtx[i][i]*(1+1e-10) + 1e-8
	}

	b, err := solve(xtx, xty)
	if err != nil {
		return nil, err
	}
	return &LinearModel{Intercept: b[0], Coef: b[1:]}, nil
}

func (m *LinearModel) Predict(row []float64) float64 {
	out := m.Intercept
	for i, c := range m.Coef {
		out += c * row[i]
	}
	return out
}

func (m *LinearModel) PredictAll(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = m.Predict(row)
	}
	return out
}

// solve runs Gaussian elimination with partial pivoting on a copy of
// the inputs.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(a)
	m := make([][]float64, n)
	for i := range a {
		m[i] = make([]float64, n+1)
		copy(m[i], a[i])
		m[i][n] = b[i]
	}

	for col := 0; col < n; col++ {
		pivot := col
		for r := col + 1; r < n; r++ {
			if abs(m[r][col]) > abs(m[pivot][col]) {
				pivot = r
			}
		}
		if abs(m[pivot][col]) < 1e-12 {
			return nil, ErrSingularMatrix
		}
		m[col], m[pivot] = m[pivot], m[col]

		for r := col + 1; r < n; r++ {
			f := m[r][col] / m[col][col]
			for c := col; c <= n; c++ {
				m[r][c] -= f * m[col][c]
			}
		}
	}

	x := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := m[r][n]
		for c := r + 1; c < n; c++ {
			sum -= m[r][c] * x[c]
		}
		x[r] = sum / m[r][r]
	}
	return x, nil
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
