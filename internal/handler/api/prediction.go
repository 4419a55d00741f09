package api

import (
	"StockLens/internal/domain/models"
	xhttp "StockLens/pkg/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) Prediction(c echo.Context) error {
	req := &models.PredictionRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	res, err := h.analyzer.Prediction(c.Request().Context(), *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, res)
}
