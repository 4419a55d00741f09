//go:build wireinject
// +build wireinject

package di

import (
	"StockLens/pkg/config"
	"StockLens/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		ProvideLogger,
		ProvideMetrics,
		ProvideCache,

		// Providers
		ProvideMarketData,
		ProvideNews,

		// Engines
		ProvideIndicatorEngine,
		ProvidePredictionEngine,
		ProvideSentimentAnalyzer,

		// Stores and services
		ProvideHoldingStore,
		ProvideWatchlistStore,
		ProvidePortfolioService,
		ProvideWatchlist,

		// Use case and API surface
		ProvideAnalyzer,
		ProvideRateLimiter,
		ProvideQuoteStream,
		ProvideHandler,

		// Application server
		ProvideApp,
	)
	return &server.App{}, nil
}
