package api

import (
	"time"

	"StockLens/internal/domain/models"
	xhttp "StockLens/pkg/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) ListHoldings(c echo.Context) error {
	holdings, err := h.portfolio.Holdings(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.ListResponse(c, holdings, int64(len(holdings)))
}

func (h *Handler) AddHolding(c echo.Context) error {
	req := &models.AddHoldingRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	var purchaseDate time.Time
	if req.PurchaseDate != "" {
		purchaseDate, _ = time.Parse("2006-01-02", req.PurchaseDate)
	}

	holding, err := h.portfolio.AddLot(c.Request().Context(), req.Ticker, req.Quantity, req.Price, purchaseDate)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.CreatedResponse(c, holding)
}

func (h *Handler) UpdateHolding(c echo.Context) error {
	req := &models.UpdateHoldingRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	holding, err := h.portfolio.UpdateHolding(c.Request().Context(), c.Param("ticker"), req.Quantity, req.Price)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, holding)
}

func (h *Handler) RemoveHolding(c echo.Context) error {
	if err := h.portfolio.RemoveHolding(c.Request().Context(), c.Param("ticker")); err != nil {
		return h.respondError(c, err)
	}
	return xhttp.NoContentResponse(c)
}

func (h *Handler) ClearHoldings(c echo.Context) error {
	if err := h.portfolio.Clear(c.Request().Context()); err != nil {
		return h.respondError(c, err)
	}
	return xhttp.NoContentResponse(c)
}

func (h *Handler) PortfolioSummary(c echo.Context) error {
	summary, err := h.portfolio.Summary(c.Request().Context())
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, summary)
}
