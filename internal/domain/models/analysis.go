package models

// AnalysisResult is the combined dashboard view for one ticker.
type AnalysisResult struct {
	Company    CompanyInfo     `json:"company"`
	Quote      Quote           `json:"quote"`
	Indicators IndicatorReport `json:"indicators"`
}
