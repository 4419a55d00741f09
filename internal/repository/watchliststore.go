package repository

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FileWatchlistStore keeps the watchlist as one ticker per line.
type FileWatchlistStore struct {
	mu   sync.Mutex
	path string
}

func NewFileWatchlistStore(path string) *FileWatchlistStore {
	return &FileWatchlistStore{path: path}
}

// Load returns the tickers in file order, skipping blank lines.
func (s *FileWatchlistStore) Load(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open watchlist: %w", err)
	}
	defer f.Close()

	var tickers []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			tickers = append(tickers, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	return tickers, nil
}

// Save rewrites the watchlist file.
func (s *FileWatchlistStore) Save(_ context.Context, tickers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create watchlist dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "watchlist-*.txt")
	if err != nil {
		return fmt.Errorf("create temp watchlist: %w", err)
	}
	defer os.Remove(tmp.Name())

	for _, t := range tickers {
		if _, err := fmt.Fprintln(tmp, t); err != nil {
			tmp.Close()
			return fmt.Errorf("write watchlist: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp watchlist: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace watchlist: %w", err)
	}
	return nil
}
