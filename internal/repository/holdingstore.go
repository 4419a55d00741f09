package repository

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"StockLens/internal/domain/models"
)

var csvHeader = []string{
	"Ticker", "Company_Name", "Quantity", "Purchase_Price", "Purchase_Date", "Total_Investment",
}

const dateLayout = "2006-01-02"

// CSVHoldingStore persists holdings as a CSV file. Every save rewrites
// the whole file through a temp file and rename, so a crash never
// leaves a half-written portfolio behind.
type CSVHoldingStore struct {
	mu   sync.Mutex
	path string
}

func NewCSVHoldingStore(path string) *CSVHoldingStore {
	return &CSVHoldingStore{path: path}
}

// Load reads all holdings. A missing file is an empty portfolio.
func (s *CSVHoldingStore) Load(_ context.Context) ([]models.Holding, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open portfolio file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read portfolio csv: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	holdings := make([]models.Holding, 0, len(records)-1)
	for i, rec := range records[1:] {
		h, err := recordToHolding(rec)
		if err != nil {
			return nil, fmt.Errorf("portfolio row %d: %w", i+2, err)
		}
		holdings = append(holdings, h)
	}
	return holdings, nil
}

// Save rewrites the file with a header and one row per holding.
func (s *CSVHoldingStore) Save(_ context.Context, holdings []models.Holding) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create portfolio dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "portfolio-*.csv")
	if err != nil {
		return fmt.Errorf("create temp portfolio file: %w", err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(csvHeader); err != nil {
		tmp.Close()
		return fmt.Errorf("write portfolio header: %w", err)
	}
	for _, h := range holdings {
		rec := []string{
			h.Ticker,
			h.CompanyName,
			strconv.FormatFloat(h.Quantity, 'f', -1, 64),
			strconv.FormatFloat(h.PurchasePrice, 'f', -1, 64),
			h.PurchaseDate.Format(dateLayout),
			strconv.FormatFloat(h.TotalInvestment, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return fmt.Errorf("write portfolio row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("flush portfolio csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp portfolio file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace portfolio file: %w", err)
	}
	return nil
}

func recordToHolding(rec []string) (models.Holding, error) {
	if len(rec) < len(csvHeader) {
		return models.Holding{}, fmt.Errorf("expected %d columns, got %d", len(csvHeader), len(rec))
	}

	qty, err := strconv.ParseFloat(rec[2], 64)
	if err != nil {
		return models.Holding{}, fmt.Errorf("quantity: %w", err)
	}
	price, err := strconv.ParseFloat(rec[3], 64)
	if err != nil {
		return models.Holding{}, fmt.Errorf("purchase price: %w", err)
	}
	date, err := time.Parse(dateLayout, rec[4])
	if err != nil {
		return models.Holding{}, fmt.Errorf("purchase date: %w", err)
	}
	invested, err := strconv.ParseFloat(rec[5], 64)
	if err != nil {
		return models.Holding{}, fmt.Errorf("total investment: %w", err)
	}

	return models.Holding{
		Ticker:          rec[0],
		CompanyName:     rec[1],
		Quantity:        qty,
		PurchasePrice:   price,
		PurchaseDate:    date,
		TotalInvestment: invested,
	}, nil
}
