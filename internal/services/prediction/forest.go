package prediction

import (
	"math/rand"
)

// ForestModel is a random forest of regression trees trained on
// bootstrap samples with per-split feature subsampling.
type ForestModel struct {
	trees       []*treeNode
	importances []float64
	nFeatures   int
}

type treeNode struct {
	feature int
	thresh  float64
	value   float64
	left    *treeNode
	right   *treeNode
	leaf    bool
}

type forestParams struct {
	trees           int
	maxDepth        int
	minSamplesSplit int
	seed            int64
}

// FitForest trains the forest. Training is deterministic for a fixed
// seed so forecasts are reproducible.
func FitForest(X [][]float64, y []float64, trees, maxDepth int, seed int64) *ForestModel {
	if trees <= 0 {
		trees = 100
	}
	if maxDepth <= 0 {
		maxDepth = 10
	}
	p := forestParams{trees: trees, maxDepth: maxDepth, minSamplesSplit: 2, seed: seed}

	nFeat := 0
	if len(X) > 0 {
		nFeat = len(X[0])
	}
	fm := &ForestModel{
		trees:       make([]*treeNode, 0, p.trees),
		importances: make([]float64, nFeat),
		nFeatures:   nFeat,
	}
	if len(X) == 0 {
		return fm
	}

	rng := rand.New(rand.NewSource(seed))
	n := len(X)
	for t := 0; t < p.trees; t++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.Intn(n)
		}
		tree := growTree(X, y, idx, 0, p, rng, fm.importances)
		fm.trees = append(fm.trees, tree)
	}

	var total float64
	for _, v := range fm.importances {
		total += v
	}
	if total > 0 {
		for i := range fm.importances {
			fm.importances[i] /= total
		}
	}
	return fm
}

func (fm *ForestModel) Predict(row []float64) float64 {
	if len(fm.trees) == 0 {
		return 0
	}
	var sum float64
	for _, t := range fm.trees {
		sum += t.predict(row)
	}
	return sum / float64(len(fm.trees))
}

func (fm *ForestModel) PredictAll(X [][]float64) []float64 {
	out := make([]float64, len(X))
	for i, row := range X {
		out[i] = fm.Predict(row)
	}
	return out
}

// Importances returns normalized impurity-reduction feature importances.
func (fm *ForestModel) Importances() []float64 {
	out := make([]float64, len(fm.importances))
	copy(out, fm.importances)
	return out
}

func (t *treeNode) predict(row []float64) float64 {
	node := t
	for !node.leaf {
		if row[node.feature] <= node.thresh {
			node = node.left
		} else {
			node = node.right
		}
	}
	return node.value
}

func growTree(X [][]float64, y []float64, idx []int, depth int, p forestParams, rng *rand.Rand, importances []float64) *treeNode {
	if depth >= p.maxDepth || len(idx) < p.minSamplesSplit || pure(y, idx) {
		return &treeNode{leaf: true, value: meanAt(y, idx)}
	}

	feature, thresh, gain, ok := bestSplit(X, y, idx, rng)
	if !ok {
		return &treeNode{leaf: true, value: meanAt(y, idx)}
	}
	importances[feature] += gain

	var leftIdx, rightIdx []int
	for _, i := range idx {
		if X[i][feature] <= thresh {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return &treeNode{leaf: true, value: meanAt(y, idx)}
	}

	return &treeNode{
		feature: feature,
		thresh:  thresh,
		left:    growTree(X, y, leftIdx, depth+1, p, rng, importances),
		right:   growTree(X, y, rightIdx, depth+1, p, rng, importances),
	}
}

// bestSplit scans a random subset of features and candidate thresholds,
// maximizing weighted variance reduction.
func bestSplit(X [][]float64, y []float64, idx []int, rng *rand.Rand) (feature int, thresh, gain float64, ok bool) {
	nFeat := len(X[idx[0]])
	parentVar := varianceAt(y, idx)
	if parentVar == 0 {
		return 0, 0, 0, false
	}

	// sqrt(p) features per split, sklearn-style subsampling.
	nTry := 1
	for nTry*nTry < nFeat {
		nTry++
	}
	perm := rng.Perm(nFeat)[:nTry]

	best := -1.0
	for _, f := range perm {
		vals := make([]float64, 0, len(idx))
		for _, i := range idx {
			vals = append(vals, X[i][f])
		}
		for _, cand := range candidateThresholds(vals, rng) {
			g := splitGain(X, y, idx, f, cand, parentVar)
			if g > best {
				best = g
				feature = f
				thresh = cand
			}
		}
	}
	if best <= 0 {
		return 0, 0, 0, false
	}
	return feature, thresh, best, true
}

func candidateThresholds(vals []float64, rng *rand.Rand) []float64 {
	const maxCandidates = 8
	if len(vals) <= maxCandidates {
		return vals
	}
	out := make([]float64, maxCandidates)
	for i := range out {
		out[i] = vals[rng.Intn(len(vals))]
	}
	return out
}

func splitGain(X [][]float64, y []float64, idx []int, feature int, thresh, parentVar float64) float64 {
	var leftIdx, rightIdx []int
	for _, i := range idx {
		if X[i][feature] <= thresh {
			leftIdx = append(leftIdx, i)
		} else {
			rightIdx = append(rightIdx, i)
		}
	}
	if len(leftIdx) == 0 || len(rightIdx) == 0 {
		return -1
	}
	n := float64(len(idx))
	weighted := varianceAt(y, leftIdx)*float64(len(leftIdx))/n +
		varianceAt(y, rightIdx)*float64(len(rightIdx))/n
	return (parentVar - weighted) * n
}

func meanAt(y []float64, idx []int) float64 {
	var sum float64
	for _, i := range idx {
		sum += y[i]
	}
	return sum / float64(len(idx))
}

func varianceAt(y []float64, idx []int) float64 {
	mean := meanAt(y, idx)
	var sq float64
	for _, i := range idx {
		d := y[i] - mean
		sq += d * d
	}
	return sq / float64(len(idx))
}

func pure(y []float64, idx []int) bool {
	first := y[idx[0]]
	for _, i := range idx[1:] {
		if y[i] != first {
			return false
		}
	}
	return true
}
