package api

import (
	"StockLens/internal/domain/models"
	xhttp "StockLens/pkg/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ListWatchlist(c echo.Context) error {
	tickers, err := h.watchlist.List(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.ListResponse(c, tickers, int64(len(tickers)))
}

func (h *Handler) AddToWatchlist(c echo.Context) error {
	req := &models.WatchlistAddRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if err := h.watchlist.Add(c.Request().Context(), req.Ticker); err != nil {
		return h.respondError(c, err)
	}
	return xhttp.CreatedResponse(c, req.Ticker)
}

func (h *Handler) RemoveFromWatchlist(c echo.Context) error {
	if err := h.watchlist.Remove(c.Request().Context(), c.Param("ticker")); err != nil {
		return h.respondError(c, err)
	}
	return xhttp.NoContentResponse(c)
}
