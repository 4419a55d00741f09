package models

import "time"

// Quote is a point-in-time market snapshot for a ticker.
type Quote struct {
	Ticker        string    `json:"ticker"`
	Price         float64   `json:"price"`
	Change        float64   `json:"change"`
	ChangePercent float64   `json:"change_percent"`
	PreviousClose float64   `json:"previous_close"`
	Open          float64   `json:"open"`
	DayHigh       float64   `json:"day_high"`
	DayLow        float64   `json:"day_low"`
	Volume        int64     `json:"volume"`
	MarketCap     int64     `json:"market_cap,omitempty"`
	Currency      string    `json:"currency,omitempty"`
	AsOf          time.Time `json:"as_of"`
}

// CompanyInfo holds descriptive metadata for a resolved ticker.
type CompanyInfo struct {
	Ticker    string `json:"ticker"`
	Name      string `json:"name"`
	Exchange  string `json:"exchange,omitempty"`
	Currency  string `json:"currency,omitempty"`
	Sector    string `json:"sector,omitempty"`
	Industry  string `json:"industry,omitempty"`
	Website   string `json:"website,omitempty"`
	Summary   string `json:"summary,omitempty"`
	MarketCap int64  `json:"market_cap,omitempty"`
}
