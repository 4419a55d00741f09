package sentiment

import (
	"math"
	"testing"

	"StockLens/internal/domain/models"
)

func TestScoreBlankText(t *testing.T) {
	a := NewAnalyzer(nil)
	for _, text := range []string{"", "   ", "\t\n"} {
		s := a.Score(text)
		if s.Polarity != 0 || s.Subjectivity != 0 || s.Label != models.SentimentNeutral || s.Confidence != 0 {
			t.Errorf("blank %q scored %+v", text, s)
		}
	}
}

func TestScoreLabels(t *testing.T) {
	a := NewAnalyzer(nil)

	s := a.Score("Shares surge after earnings beat, strong growth ahead")
	if s.Label != models.SentimentPositive {
		t.Errorf("positive headline labeled %v (polarity %v)", s.Label, s.Polarity)
	}
	if s.Confidence != math.Abs(s.Polarity) {
		t.Errorf("confidence %v != |polarity| %v", s.Confidence, s.Polarity)
	}
	if s.Subjectivity <= 0 || s.Subjectivity > 1 {
		t.Errorf("subjectivity = %v, want in (0,1]", s.Subjectivity)
	}

	s = a.Score("Stock plunges on fraud scandal, heavy losses expected")
	if s.Label != models.SentimentNegative {
		t.Errorf("negative headline labeled %v (polarity %v)", s.Label, s.Polarity)
	}

	s = a.Score("The company held its annual meeting on Tuesday")
	if s.Label != models.SentimentNeutral {
		t.Errorf("neutral text labeled %v (polarity %v)", s.Label, s.Polarity)
	}
}

func TestNegatorFlipsPolarity(t *testing.T) {
	scorer := NewLexiconScorer()
	plain := scorer.Polarity("the outlook is strong")
	negated := scorer.Polarity("the outlook is not strong")
	if plain <= 0 {
		t.Fatalf("expected positive base polarity, got %v", plain)
	}
	if negated >= 0 {
		t.Errorf("negated polarity = %v, want negative", negated)
	}
}

func TestSubjectivityTracksWordStrength(t *testing.T) {
	scorer := NewLexiconScorer()

	if got := scorer.Subjectivity("the meeting is on tuesday"); got != 0 {
		t.Errorf("objective text subjectivity = %v, want 0", got)
	}

	strong := scorer.Subjectivity("shares soared after the blowout quarter")
	mild := scorer.Subjectivity("results were good")
	if strong <= mild {
		t.Errorf("strong wording %v should read more subjective than mild %v", strong, mild)
	}
	for _, v := range []float64{strong, mild} {
		if v < 0 || v > 1 {
			t.Errorf("subjectivity %v out of [0,1]", v)
		}
	}
}

func TestAnalyzeMajority(t *testing.T) {
	a := NewAnalyzer(nil)
	texts := []string{
		"Shares surge on record profits",
		"Strong growth and an upgrade from analysts",
	}
	r := a.Analyze("AAPL", texts)

	if r.Overall != models.SentimentPositive {
		t.Errorf("overall = %v, want Positive", r.Overall)
	}
	if r.PositivePct != 100 {
		t.Errorf("positive pct = %v, want 100", r.PositivePct)
	}
	if r.Recommendation != "Bullish" {
		t.Errorf("recommendation = %q, want Bullish", r.Recommendation)
	}
}

func TestAnalyzeTieIsNeutral(t *testing.T) {
	a := NewAnalyzer(nil)
	texts := []string{
		"Shares surge on record profits",
		"Stock plunges amid bankruptcy fears",
	}
	r := a.Analyze("", texts)

	if r.Overall != models.SentimentNeutral {
		t.Errorf("tied batch overall = %v, want Neutral", r.Overall)
	}
	if r.Recommendation != "Neutral" {
		t.Errorf("recommendation = %q, want Neutral", r.Recommendation)
	}
}

func TestAnalyzeEmptyBatch(t *testing.T) {
	a := NewAnalyzer(nil)
	r := a.Analyze("AAPL", nil)
	if r.Overall != models.SentimentNeutral || r.Recommendation != "Neutral" {
		t.Errorf("empty batch report = %+v", r)
	}
	if r.PositivePct != 0 || r.NegativePct != 0 || r.NeutralPct != 0 {
		t.Errorf("empty batch percentages = %+v", r)
	}
}

func TestRecommendationBands(t *testing.T) {
	cases := []struct {
		overall models.SentimentLabel
		pos     float64
		neg     float64
		want    string
	}{
		{models.SentimentPositive, 80, 10, "Bullish"},
		{models.SentimentPositive, 55, 20, "Moderately Bullish"},
		{models.SentimentNegative, 10, 80, "Bearish"},
		{models.SentimentNegative, 20, 55, "Moderately Bearish"},
		{models.SentimentNeutral, 30, 30, "Neutral"},
	}
	for _, tc := range cases {
		if got := recommend(tc.overall, tc.pos, tc.neg); got != tc.want {
			t.Errorf("recommend(%v, %v, %v) = %q, want %q", tc.overall, tc.pos, tc.neg, got, tc.want)
		}
	}
}

func TestAnalyzeArticlesUsesTitleAndDescription(t *testing.T) {
	a := NewAnalyzer(nil)
	articles := []models.Article{
		{Title: "Company reports results", Description: "Profits surge with strong growth"},
	}
	r := a.AnalyzeArticles("MSFT", articles)
	if len(r.Scores) != 1 {
		t.Fatalf("scores = %d, want 1", len(r.Scores))
	}
	if r.Overall != models.SentimentPositive {
		t.Errorf("overall = %v, want Positive", r.Overall)
	}
}
