package api

import (
	"StockLens/internal/domain/models"
	xhttp "StockLens/pkg/http"

	"github.com/labstack/echo/v4"
)

// Sentiment handles both forms of the endpoint: GET with a ticker pulls
// recent headlines, POST with texts scores the caller's own batch.
func (h *Handler) Sentiment(c echo.Context) error {
	req := &models.SentimentRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	if req.Ticker == "" && len(req.Texts) == 0 {
		return xhttp.BadRequestResponse(c, "either ticker or texts is required")
	}

	report, err := h.analyzer.Sentiment(c.Request().Context(), *req)
	if err != nil {
		return h.respondError(c, err)
	}
	return xhttp.SuccessResponse(c, report)
}
