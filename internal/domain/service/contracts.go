package service

// TextScorer reads sentiment off free text. Polarity lands in [-1, 1]
// and Subjectivity in [0, 1]; blank or whitespace-only input scores
// zero on both.
type TextScorer interface {
	Polarity(text string) float64
	Subjectivity(text string) float64
}
