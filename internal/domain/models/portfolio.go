package models

import "time"

// Holding is one merged position in the portfolio, keyed by ticker.
type Holding struct {
	Ticker          string    `json:"ticker"`
	CompanyName     string    `json:"company_name"`
	Quantity        float64   `json:"quantity"`
	PurchasePrice   float64   `json:"purchase_price"`
	PurchaseDate    time.Time `json:"purchase_date"`
	TotalInvestment float64   `json:"total_investment"`
}

// HoldingView is a holding enriched with live market data.
type HoldingView struct {
	Holding
	CurrentPrice  float64 `json:"current_price"`
	CurrentValue  float64 `json:"current_value"`
	GainLoss      float64 `json:"gain_loss"`
	GainLossPct   float64 `json:"gain_loss_pct"`
	AllocationPct float64 `json:"allocation_pct"`
	PriceKnown    bool    `json:"price_known"`
}

// PortfolioSummary aggregates the portfolio at current prices.
type PortfolioSummary struct {
	Holdings            []HoldingView `json:"holdings"`
	TotalInvestment     float64       `json:"total_investment"`
	TotalValue          float64       `json:"total_value"`
	TotalGainLoss       float64       `json:"total_gain_loss"`
	TotalGainLossPct    float64       `json:"total_gain_loss_pct"`
	WeightedAvgGainPct  float64       `json:"weighted_avg_gain_pct"`
	RiskLevel           string        `json:"risk_level"`
	LargestAllocation   float64       `json:"largest_allocation_pct"`
	Best                *HoldingView  `json:"best_performer,omitempty"`
	Worst               *HoldingView  `json:"worst_performer,omitempty"`
	AsOf                time.Time     `json:"as_of"`
}
