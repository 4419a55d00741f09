package models

// AnalysisRequest asks for the combined indicator view of one ticker.
type AnalysisRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required,max=12"`
	Period string `query:"period" json:"period" default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y max"`
}

// IndicatorsRequest asks for the raw indicator series.
type IndicatorsRequest struct {
	Ticker   string `query:"ticker" json:"ticker" validate:"required,max=12"`
	Period   string `query:"period" json:"period" default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y max"`
	Interval string `query:"interval" json:"interval" default:"1d" validate:"oneof=1d 1wk 1mo"`
}

// HistoryRequest asks for raw OHLCV bars.
type HistoryRequest struct {
	Ticker   string `query:"ticker" json:"ticker" validate:"required,max=12"`
	Period   string `query:"period" json:"period" default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y max"`
	Interval string `query:"interval" json:"interval" default:"1d" validate:"oneof=1d 1wk 1mo"`
}

// QuoteRequest asks for the latest quote of one ticker.
type QuoteRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required,max=12"`
}

// PredictionRequest asks for a price forecast. An omitted model lets
// the engine choose and fall back to the trend model on short history;
// naming one makes it binding.
type PredictionRequest struct {
	Ticker string `query:"ticker" json:"ticker" validate:"required,max=12"`
	Period string `query:"period" json:"period" default:"1y" validate:"oneof=6mo 1y 2y 5y max"`
	Days   int    `query:"days" json:"days" default:"30" validate:"gte=1,lte=90"`
	Model  string `query:"model" json:"model" validate:"omitempty,oneof=forest linear trend"`
}

// AddHoldingRequest records a purchase lot. Lots for an existing ticker
// merge into the position at a blended cost basis.
type AddHoldingRequest struct {
	Ticker       string  `json:"ticker" validate:"required,max=12"`
	Quantity     float64 `json:"quantity" validate:"required,gt=0"`
	Price        float64 `json:"price" validate:"omitempty,gt=0"`
	PurchaseDate string  `json:"purchase_date" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateHoldingRequest replaces quantity or cost basis on a position.
type UpdateHoldingRequest struct {
	Quantity float64 `json:"quantity" validate:"required,gt=0"`
	Price    float64 `json:"price" validate:"required,gt=0"`
}

// SentimentRequest scores a batch of texts, or recent news when texts
// are omitted and a ticker is given.
type SentimentRequest struct {
	Ticker string   `query:"ticker" json:"ticker" validate:"omitempty,max=12"`
	Texts  []string `json:"texts" validate:"omitempty,max=100,dive,max=2000"`
}

// WatchlistAddRequest appends a ticker to the watchlist.
type WatchlistAddRequest struct {
	Ticker string `json:"ticker" validate:"required,max=12"`
}
