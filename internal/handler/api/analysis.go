package api

import (
	"StockLens/internal/domain/models"
	xhttp "StockLens/pkg/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) Analysis(c echo.Context) error {
	req := &models.AnalysisRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Analysis(c.Request().Context(), *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) Indicators(c echo.Context) error {
	req := &models.IndicatorsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Indicators(c.Request().Context(), *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) Quote(c echo.Context) error {
	req := &models.QuoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Quote(c.Request().Context(), req.Ticker)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *Handler) History(c echo.Context) error {
	req := &models.HistoryRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	series, err := h.analyzer.History(c.Request().Context(), req.Ticker, req.Period, req.Interval)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.ListResponse(c, series, int64(len(series)))
}
