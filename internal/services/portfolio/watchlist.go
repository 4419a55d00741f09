package portfolio

import (
	"context"
	"errors"
	"strings"

	"StockLens/internal/domain/repository"
)

var (
	ErrAlreadyWatched = errors.New("portfolio: ticker already on watchlist")
	ErrNotWatched     = errors.New("portfolio: ticker not on watchlist")
)

// Watchlist maintains an ordered, de-duplicated set of tickers.
type Watchlist struct {
	store  repository.WatchlistStore
	market repository.MarketData
}

func NewWatchlist(store repository.WatchlistStore, market repository.MarketData) *Watchlist {
	return &Watchlist{store: store, market: market}
}

func (w *Watchlist) List(ctx context.Context) ([]string, error) {
	return w.store.Load(ctx)
}

// Add validates the ticker against the market data provider before
// appending it. Duplicates are rejected.
func (w *Watchlist) Add(ctx context.Context, ticker string) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	_, ok, err := w.market.Resolve(ctx, ticker)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownTicker
	}

	tickers, err := w.store.Load(ctx)
	if err != nil {
		return err
	}
	for _, t := range tickers {
		if t == ticker {
			return ErrAlreadyWatched
		}
	}
	return w.store.Save(ctx, append(tickers, ticker))
}

func (w *Watchlist) Remove(ctx context.Context, ticker string) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	tickers, err := w.store.Load(ctx)
	if err != nil {
		return err
	}
	kept := tickers[:0]
	removed := false
	for _, t := range tickers {
		if t == ticker {
			removed = true
			continue
		}
		kept = append(kept, t)
	}
	if !removed {
		return ErrNotWatched
	}
	return w.store.Save(ctx, kept)
}
