package api

import (
	"net/http"
	"strings"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/internal/usecase"
	xhttp "StockLens/pkg/http"
	xlogger "StockLens/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

// QuoteStream pushes quote updates for a set of tickers over a
// websocket at a fixed interval.
type QuoteStream struct {
	logger   *xlogger.Logger
	analyzer *usecase.Analyzer
	interval time.Duration
	upgrader websocket.Upgrader
}

func NewQuoteStream(logger *xlogger.Logger, analyzer *usecase.Analyzer, interval time.Duration) *QuoteStream {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &QuoteStream{
		logger:   logger,
		analyzer: analyzer,
		interval: interval,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

type quoteUpdate struct {
	Quotes []models.Quote `json:"quotes"`
	AsOf   time.Time      `json:"as_of"`
}

// Serve upgrades the connection and streams quotes until the client
// disconnects. Tickers come from the comma-separated "tickers" query
// parameter.
func (s *QuoteStream) Serve(c echo.Context) error {
	tickers := splitTickers(c.QueryParam("tickers"))
	if len(tickers) == 0 {
		return xhttp.BadRequestResponse(c, "tickers query parameter is required")
	}

	conn, err := s.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ctx := c.Request().Context()
	done := make(chan struct{})

	// Drain client frames so pings and close messages are processed.
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Send one snapshot immediately, then on every tick.
	for {
		if err := s.push(c, conn, tickers); err != nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return nil
		case <-done:
			return nil
		case <-ticker.C:
		}
	}
}

func (s *QuoteStream) push(c echo.Context, conn *websocket.Conn, tickers []string) error {
	update := quoteUpdate{AsOf: time.Now().UTC()}
	for _, t := range tickers {
		q, err := s.analyzer.Quote(c.Request().Context(), t)
		if err != nil {
			s.logger.Warn("stream quote fetch failed",
				xlogger.String("ticker", t), xlogger.Error(err))
			continue
		}
		update.Quotes = append(update.Quotes, q)
	}
	return conn.WriteJSON(update)
}

func splitTickers(raw string) []string {
	var out []string
	for _, t := range strings.Split(raw, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}
