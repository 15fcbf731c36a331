package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/storage"
	"folio/internal/uuid"
)

// registryService owns the set of tradable symbols. The full registry is
// loaded once at construction and written back wholesale after every
// mutation, so a read immediately after a write always observes the write.
type registryService struct {
	mu      sync.Mutex
	store   storage.Store
	symbols []models.Symbol
}

// NewRegistryService creates a RegistryServicer over the given store,
// loading any previously persisted registry. An absent key means an empty
// registry, not an error.
func NewRegistryService(store storage.Store) (RegistryServicer, error) {
	data, err := store.Get(storage.KeySymbols)
	if err != nil {
		return nil, fmt.Errorf("load symbols: %w", err)
	}

	var symbols []models.Symbol
	if len(data) > 0 {
		if err := json.Unmarshal(data, &symbols); err != nil {
			return nil, fmt.Errorf("decode symbols: %w", err)
		}
	}

	return &registryService{store: store, symbols: symbols}, nil
}

// Add registers a new symbol with an optional current price.
func (s *registryService) Add(name string, currentPrice *float64) (*models.Symbol, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	trimmed, err := validateSymbolName(name)
	if err != nil {
		return nil, err
	}
	if err := validateCurrentPrice(currentPrice); err != nil {
		return nil, err
	}
	if s.nameTaken(trimmed, "") {
		return nil, apperrors.ErrDuplicateSymbol
	}

	symbol := models.Symbol{
		ID:           uuid.New(),
		Name:         trimmed,
		CurrentPrice: currentPrice,
	}

	next := append(append([]models.Symbol(nil), s.symbols...), symbol)
	if err := s.persist(next); err != nil {
		return nil, err
	}
	s.symbols = next

	out := symbol
	return &out, nil
}

// Update replaces a symbol's name and price in place. The duplicate check
// excludes the record being edited, so renames that only change case pass.
func (s *registryService) Update(id, name string, currentPrice *float64) (*models.Symbol, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, apperrors.ErrSymbolNotFound
	}

	trimmed, err := validateSymbolName(name)
	if err != nil {
		return nil, err
	}
	if err := validateCurrentPrice(currentPrice); err != nil {
		return nil, err
	}
	if s.nameTaken(trimmed, id) {
		return nil, apperrors.ErrDuplicateSymbol
	}

	next := append([]models.Symbol(nil), s.symbols...)
	next[idx] = models.Symbol{ID: id, Name: trimmed, CurrentPrice: currentPrice}
	if err := s.persist(next); err != nil {
		return nil, err
	}
	s.symbols = next

	out := next[idx]
	return &out, nil
}

// Delete removes a symbol. Transactions referencing it are left untouched;
// the valuation engine keeps reporting positions for orphaned symbols.
func (s *registryService) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return apperrors.ErrSymbolNotFound
	}

	next := append([]models.Symbol(nil), s.symbols[:idx]...)
	next = append(next, s.symbols[idx+1:]...)
	if err := s.persist(next); err != nil {
		return err
	}
	s.symbols = next
	return nil
}

// Get returns one symbol by id.
func (s *registryService) Get(id string) (*models.Symbol, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, apperrors.ErrSymbolNotFound
	}
	out := s.symbols[idx]
	return &out, nil
}

// GetAll returns the registry in insertion order.
func (s *registryService) GetAll() []models.Symbol {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Symbol, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// GetCurrentPrice returns the last-known price for a symbol name, or nil
// when the symbol is unknown or has no price set. The name match is exact.
func (s *registryService) GetCurrentPrice(name string) *float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, symbol := range s.symbols {
		if symbol.Name == name {
			return symbol.CurrentPrice
		}
	}
	return nil
}

func (s *registryService) indexOf(id string) int {
	for i := range s.symbols {
		if s.symbols[i].ID == id {
			return i
		}
	}
	return -1
}

// nameTaken reports whether another symbol already uses the name,
// case-insensitively. excludeID skips the record being edited.
func (s *registryService) nameTaken(name, excludeID string) bool {
	for _, symbol := range s.symbols {
		if symbol.ID == excludeID {
			continue
		}
		if strings.EqualFold(strings.TrimSpace(symbol.Name), name) {
			return true
		}
	}
	return false
}

func (s *registryService) persist(symbols []models.Symbol) error {
	data, err := json.Marshal(symbols)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.store.Set(storage.KeySymbols, data); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func validateSymbolName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", apperrors.WithMessage(apperrors.ErrValidation, "Symbol name is required")
	}
	return trimmed, nil
}

func validateCurrentPrice(price *float64) error {
	if price != nil && *price < 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, "Current price must not be negative")
	}
	return nil
}
