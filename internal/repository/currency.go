package repository

import (
	"log/slog"
	"path/filepath"
	"strings"
	"sync"
)

const currencyFile = "currency"

// CurrencyStore persists the selected display currency as a plain string.
type CurrencyStore struct {
	mu       sync.Mutex
	path     string
	fallback string
}

// NewCurrencyStore creates a CurrencyStore rooted at the given data
// directory, returning fallback when nothing has been persisted yet.
func NewCurrencyStore(dataDir, fallback string) *CurrencyStore {
	return &CurrencyStore{path: filepath.Join(dataDir, currencyFile), fallback: fallback}
}

// Get returns the persisted currency code, or the fallback.
func (s *CurrencyStore) Get() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	data := readFile(s.path)
	code := strings.TrimSpace(string(data))
	if code == "" {
		return s.fallback
	}
	return code
}

// Set persists the currency code. Best-effort.
func (s *CurrencyStore) Set(code string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(s.path, []byte(code), 0o644); err != nil {
		slog.Debug("persisting currency failed", "error", err)
	}
}
