package portfolio

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"StockLens/internal/domain/models"
	"StockLens/internal/domain/repository"
)

var (
	ErrHoldingNotFound = errors.New("portfolio: holding not found")
	ErrUnknownTicker   = errors.New("portfolio: ticker could not be resolved")
)

// Risk thresholds on the largest single-position allocation.
const (
	riskHighPct     = 40
	riskModeratePct = 25
)

// Service values the portfolio at live prices. Positions merge on add,
// so each ticker appears once with a blended cost basis.
type Service struct {
	store  repository.HoldingStore
	market repository.MarketData
}

func NewService(store repository.HoldingStore, market repository.MarketData) *Service {
	return &Service{store: store, market: market}
}

// Holdings returns the stored positions sorted by ticker.
func (s *Service) Holdings(ctx context.Context) ([]models.Holding, error) {
	holdings, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(holdings, func(i, j int) bool {
		return holdings[i].Ticker < holdings[j].Ticker
	})
	return holdings, nil
}

// AddLot records a purchase. An existing position for the ticker merges
// with the lot: quantities add, the cost basis blends, and the earliest
// purchase date wins. Price zero means "buy at the current quote".
func (s *Service) AddLot(ctx context.Context, ticker string, quantity, price float64, purchaseDate time.Time) (models.Holding, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	info, ok, err := s.market.Resolve(ctx, ticker)
	if err != nil {
		return models.Holding{}, err
	}
	if !ok {
		return models.Holding{}, ErrUnknownTicker
	}

	if price <= 0 {
		quote, ok, err := s.market.Quote(ctx, ticker)
		if err != nil {
			return models.Holding{}, err
		}
		if !ok || quote.Price <= 0 {
			return models.Holding{}, ErrUnknownTicker
		}
		price = quote.Price
	}
	if purchaseDate.IsZero() {
		purchaseDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	holdings, err := s.store.Load(ctx)
	if err != nil {
		return models.Holding{}, err
	}

	merged := models.Holding{
		Ticker:          ticker,
		CompanyName:     info.Name,
		Quantity:        quantity,
		PurchasePrice:   price,
		PurchaseDate:    purchaseDate,
		TotalInvestment: quantity * price,
	}

	found := false
	for i, h := range holdings {
		if h.Ticker != ticker {
			continue
		}
		newQty := h.Quantity + quantity
		blended := (h.Quantity*h.PurchasePrice + quantity*price) / newQty
		merged.Quantity = newQty
		merged.PurchasePrice = blended
		merged.TotalInvestment = newQty * blended
		if h.PurchaseDate.Before(purchaseDate) {
			merged.PurchaseDate = h.PurchaseDate
		}
		if merged.CompanyName == "" {
			merged.CompanyName = h.CompanyName
		}
		holdings[i] = merged
		found = true
		break
	}
	if !found {
		holdings = append(holdings, merged)
	}

	if err := s.store.Save(ctx, holdings); err != nil {
		return models.Holding{}, err
	}
	return merged, nil
}

// UpdateHolding replaces the quantity and cost basis of a position.
func (s *Service) UpdateHolding(ctx context.Context, ticker string, quantity, price float64) (models.Holding, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	holdings, err := s.store.Load(ctx)
	if err != nil {
		return models.Holding{}, err
	}
	for i, h := range holdings {
		if h.Ticker != ticker {
			continue
		}
		h.Quantity = quantity
		h.PurchasePrice = price
		h.TotalInvestment = quantity * price
		holdings[i] = h
		if err := s.store.Save(ctx, holdings); err != nil {
			return models.Holding{}, err
		}
		return h, nil
	}
	return models.Holding{}, ErrHoldingNotFound
}

// RemoveHolding drops a position entirely.
func (s *Service) RemoveHolding(ctx context.Context, ticker string) error {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	holdings, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	kept := holdings[:0]
	removed := false
	for _, h := range holdings {
		if h.Ticker == ticker {
			removed = true
			continue
		}
		kept = append(kept, h)
	}
	if !removed {
		return ErrHoldingNotFound
	}
	return s.store.Save(ctx, kept)
}

// Clear empties the portfolio.
func (s *Service) Clear(ctx context.Context) error {
	return s.store.Save(ctx, nil)
}

// Summary revalues every position at the current quote. Positions whose
// quote is unavailable keep their cost basis as the current value and
// are excluded from best and worst performer selection.
func (s *Service) Summary(ctx context.Context) (models.PortfolioSummary, error) {
	holdings, err := s.Holdings(ctx)
	if err != nil {
		return models.PortfolioSummary{}, err
	}

	summary := models.PortfolioSummary{AsOf: time.Now().UTC()}
	views := make([]models.HoldingView, 0, len(holdings))

	for _, h := range holdings {
		view := models.HoldingView{Holding: h}
		quote, ok, err := s.market.Quote(ctx, h.Ticker)
		if err == nil && ok && quote.Price > 0 {
			view.PriceKnown = true
			view.CurrentPrice = quote.Price
			view.CurrentValue = quote.Price * h.Quantity
		} else {
			view.CurrentPrice = h.PurchasePrice
			view.CurrentValue = h.TotalInvestment
		}
		view.GainLoss = view.CurrentValue - h.TotalInvestment
		if h.TotalInvestment > 0 {
			view.GainLossPct = view.GainLoss / h.TotalInvestment * 100
		}
		views = append(views, view)

		summary.TotalInvestment += h.TotalInvestment
		summary.TotalValue += view.CurrentValue
	}

	summary.TotalGainLoss = summary.TotalValue - summary.TotalInvestment
	if summary.TotalInvestment > 0 {
		summary.TotalGainLossPct = summary.TotalGainLoss / summary.TotalInvestment * 100
	}

	for i := range views {
		if summary.TotalValue > 0 {
			views[i].AllocationPct = views[i].CurrentValue / summary.TotalValue * 100
		}
		if views[i].AllocationPct > summary.LargestAllocation {
			summary.LargestAllocation = views[i].AllocationPct
		}
		if summary.TotalValue > 0 {
			weight := views[i].CurrentValue / summary.TotalValue
			summary.WeightedAvgGainPct += weight * views[i].GainLossPct
		}
	}

	summary.Best, summary.Worst = bestWorst(views)
	summary.RiskLevel = riskLevel(summary.LargestAllocation)
	summary.Holdings = views
	return summary, nil
}

func bestWorst(views []models.HoldingView) (best, worst *models.HoldingView) {
	for i := range views {
		if !views[i].PriceKnown {
			continue
		}
		if best == nil || views[i].GainLossPct > best.GainLossPct {
			best = &views[i]
		}
		if worst == nil || views[i].GainLossPct < worst.GainLossPct {
			worst = &views[i]
		}
	}
	return best, worst
}

func riskLevel(largestAllocationPct float64) string {
	switch {
	case largestAllocationPct > riskHighPct:
		return "High"
	case largestAllocationPct > riskModeratePct:
		return "Moderate"
	default:
		return "Low"
	}
}
