package models

// SentimentLabel classifies one text's polarity.
type SentimentLabel string

const (
	SentimentPositive SentimentLabel = "Positive"
	SentimentNegative SentimentLabel = "Negative"
	SentimentNeutral  SentimentLabel = "Neutral"
)

// SentimentScore is the per-text analysis result. Polarity is in
// [-1, 1] and subjectivity in [0, 1].
type SentimentScore struct {
	Text         string         `json:"text"`
	Polarity     float64        `json:"polarity"`
	Subjectivity float64        `json:"subjectivity"`
	Label        SentimentLabel `json:"label"`
	Confidence   float64        `json:"confidence"`
}

// SentimentReport aggregates scores across a batch of texts.
type SentimentReport struct {
	Ticker         string           `json:"ticker,omitempty"`
	Scores         []SentimentScore `json:"scores"`
	Overall        SentimentLabel   `json:"overall"`
	PositivePct    float64          `json:"positive_pct"`
	NegativePct    float64          `json:"negative_pct"`
	NeutralPct     float64          `json:"neutral_pct"`
	AvgPolarity    float64          `json:"avg_polarity"`
	Recommendation string           `json:"recommendation"`
}
