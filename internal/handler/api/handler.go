package api

import (
	"errors"
	"net/http"

	"StockLens/internal/service/ratelimit"
	"StockLens/internal/services/indicators"
	"StockLens/internal/services/portfolio"
	"StockLens/internal/services/prediction"
	"StockLens/internal/usecase"
	xhttp "StockLens/pkg/http"
	xlogger "StockLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Handler exposes the analysis, portfolio, and sentiment API.
type Handler struct {
	logger    *xlogger.Logger
	analyzer  *usecase.Analyzer
	portfolio *portfolio.Service
	watchlist *portfolio.Watchlist
	limiter   *ratelimit.Limiter
	stream    *QuoteStream
}

func NewHandler(
	logger *xlogger.Logger,
	analyzer *usecase.Analyzer,
	portfolioSvc *portfolio.Service,
	watchlist *portfolio.Watchlist,
	limiter *ratelimit.Limiter,
	stream *QuoteStream,
) *Handler {
	return &Handler{
		logger:    logger,
		analyzer:  analyzer,
		portfolio: portfolioSvc,
		watchlist: watchlist,
		limiter:   limiter,
		stream:    stream,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api", h.rateLimit)
	g.GET("/analysis", h.Analysis)
	g.GET("/indicators", h.Indicators)
	g.GET("/quote", h.Quote)
	g.GET("/history", h.History)
	g.GET("/prediction", h.Prediction)

	g.GET("/portfolio/holdings", h.ListHoldings)
	g.POST("/portfolio/holdings", h.AddHolding)
	g.PUT("/portfolio/holdings/:ticker", h.UpdateHolding)
	g.DELETE("/portfolio/holdings/:ticker", h.RemoveHolding)
	g.DELETE("/portfolio/holdings", h.ClearHoldings)
	g.GET("/portfolio/summary", h.PortfolioSummary)

	g.GET("/watchlist", h.ListWatchlist)
	g.POST("/watchlist", h.AddToWatchlist)
	g.DELETE("/watchlist/:ticker", h.RemoveFromWatchlist)

	g.GET("/sentiment", h.Sentiment)
	g.POST("/sentiment", h.Sentiment)

	if h.stream != nil {
		e.GET("/ws/quotes", h.stream.Serve)
	}
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

// rateLimit applies a per-client token bucket on the API group.
func (h *Handler) rateLimit(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if h.limiter != nil && !h.limiter.Allow(c.RealIP(), 30, 10) {
			return xhttp.DataResponse(c, http.StatusTooManyRequests, "rate limit exceeded")
		}
		return next(c)
	}
}

// respondError maps domain errors onto the API error envelope.
func (h *Handler) respondError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, usecase.ErrTickerNotFound),
		errors.Is(err, portfolio.ErrUnknownTicker):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError("ticker not found").WithError(err))
	case errors.Is(err, portfolio.ErrHoldingNotFound),
		errors.Is(err, portfolio.ErrNotWatched):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundError(err.Error()).WithError(err))
	case errors.Is(err, portfolio.ErrAlreadyWatched):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
	case errors.Is(err, indicators.ErrInsufficientData),
		errors.Is(err, prediction.ErrNotEnoughHistory):
		return xhttp.AppErrorResponse(c, xhttp.BadRequestError(err.Error()).WithError(err))
	default:
		h.logger.Error("request failed", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
}
