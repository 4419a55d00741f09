package sentiment

import (
	"math"
	"strings"

	"StockLens/internal/domain/models"
	"StockLens/internal/domain/service"
)

// Polarity thresholds for labeling a single text.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// Analyzer scores texts and aggregates them into an overall view.
type Analyzer struct {
	scorer service.TextScorer
}

func NewAnalyzer(scorer service.TextScorer) *Analyzer {
	if scorer == nil {
		scorer = NewLexiconScorer()
	}
	return &Analyzer{scorer: scorer}
}

// Score labels one text. Blank input is Neutral with zero polarity.
func (a *Analyzer) Score(text string) models.SentimentScore {
	score := models.SentimentScore{Text: text, Label: models.SentimentNeutral}
	if strings.TrimSpace(text) == "" {
		return score
	}

	p := a.scorer.Polarity(text)
	score.Polarity = p
	score.Subjectivity = a.scorer.Subjectivity(text)
	score.Confidence = math.Min(math.Abs(p), 1)
	switch {
	case p > positiveThreshold:
		score.Label = models.SentimentPositive
	case p < negativeThreshold:
		score.Label = models.SentimentNegative
	}
	return score
}

// Analyze scores a batch and aggregates. The overall label needs a
// strict majority; any tie lands on Neutral.
func (a *Analyzer) Analyze(ticker string, texts []string) models.SentimentReport {
	report := models.SentimentReport{
		Ticker:         ticker,
		Overall:        models.SentimentNeutral,
		Recommendation: "Neutral",
	}
	if len(texts) == 0 {
		return report
	}

	var pos, neg, neu int
	var totalPolarity float64
	for _, text := range texts {
		s := a.Score(text)
		report.Scores = append(report.Scores, s)
		totalPolarity += s.Polarity
		switch s.Label {
		case models.SentimentPositive:
			pos++
		case models.SentimentNegative:
			neg++
		default:
			neu++
		}
	}

	n := float64(len(texts))
	report.PositivePct = float64(pos) / n * 100
	report.NegativePct = float64(neg) / n * 100
	report.NeutralPct = float64(neu) / n * 100
	report.AvgPolarity = totalPolarity / n

	switch {
	case pos > neg && pos > neu:
		report.Overall = models.SentimentPositive
	case neg > pos && neg > neu:
		report.Overall = models.SentimentNegative
	}

	report.Recommendation = recommend(report.Overall, report.PositivePct, report.NegativePct)
	return report
}

// AnalyzeArticles scores headline and description together per article.
func (a *Analyzer) AnalyzeArticles(ticker string, articles []models.Article) models.SentimentReport {
	texts := make([]string, 0, len(articles))
	for _, art := range articles {
		text := art.Title
		if art.Description != "" {
			text += ". " + art.Description
		}
		texts = append(texts, text)
	}
	return a.Analyze(ticker, texts)
}

func recommend(overall models.SentimentLabel, posPct, negPct float64) string {
	switch {
	case overall == models.SentimentPositive && posPct > 60:
		return "Bullish"
	case overall == models.SentimentPositive:
		return "Moderately Bullish"
	case overall == models.SentimentNegative && negPct > 60:
		return "Bearish"
	case overall == models.SentimentNegative:
		return "Moderately Bearish"
	default:
		return "Neutral"
	}
}
