package services

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	apperrors "folio/internal/errors"
	"folio/internal/models"
	"folio/internal/storage"
	"folio/internal/uuid"
)

// ledgerService owns the ordered log of buy/sell transactions. Like the
// registry, the whole log is loaded at construction and persisted wholesale
// after each mutation. Mutations validate everything first and commit the
// in-memory log only after the persist succeeds, so a failed call never
// leaves a partial write behind.
type ledgerService struct {
	mu           sync.Mutex
	store        storage.Store
	valuation    ValuationServicer
	transactions []models.Transaction
}

// NewLedgerService creates a LedgerServicer over the given store. The
// valuation service prices realized profit for sells at write time.
func NewLedgerService(store storage.Store, valuation ValuationServicer) (LedgerServicer, error) {
	data, err := store.Get(storage.KeyTransactions)
	if err != nil {
		return nil, fmt.Errorf("load transactions: %w", err)
	}

	var transactions []models.Transaction
	if len(data) > 0 {
		if err := json.Unmarshal(data, &transactions); err != nil {
			return nil, fmt.Errorf("decode transactions: %w", err)
		}
	}

	return &ledgerService{store: store, valuation: valuation, transactions: transactions}, nil
}

// AddTransaction validates and appends a new trade. Sells are checked
// against the running buy-minus-sell balance for the symbol, and their
// profit is priced against the average cost of the ledger as it stands
// before the append — never including the sale itself.
func (s *ledgerService) AddTransaction(tradeType models.TradeType, symbol string, amount, price float64) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if tradeType != models.TradeBuy && tradeType != models.TradeSell {
		return nil, apperrors.WithMessage(apperrors.ErrValidation, "Trade type must be buy or sell")
	}
	if err := validateTrade(symbol, amount, price); err != nil {
		return nil, err
	}

	if tradeType == models.TradeSell {
		available := availableAmount(s.transactions, symbol)
		if amount > available {
			return nil, apperrors.InsufficientHoldings(available)
		}
	}

	transaction := models.Transaction{
		ID:     uuid.New(),
		Type:   tradeType,
		Symbol: symbol,
		Amount: amount,
		Price:  models.TotalConsideration(price),
		Date:   time.Now().UTC(),
	}

	if tradeType == models.TradeSell {
		profit := s.priceSale(s.transactions, transaction)
		transaction.Profit = &profit
	}

	next := append(append([]models.Transaction(nil), s.transactions...), transaction)
	if err := s.persist(next); err != nil {
		return nil, err
	}
	s.transactions = next

	out := transaction
	return &out, nil
}

// UpdateTransaction replaces a record's symbol, amount, and price in place.
// Type and date are preserved. Every edit runs the sell-shaped input checks;
// the oversell check only applies when the original record is a sell, and it
// adds the original amount back before comparing, so an edit fails only when
// the net change would overdraw. Profit is recomputed only for sells, priced
// against the ledger before the edit takes effect.
func (s *ledgerService) UpdateTransaction(id, symbol string, amount, price float64) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, apperrors.ErrTransactionNotFound
	}
	if err := validateTrade(symbol, amount, price); err != nil {
		return nil, err
	}

	original := s.transactions[idx]

	if original.Type == models.TradeSell {
		available := availableAmount(s.transactions, symbol) + original.Amount
		if amount > available {
			return nil, apperrors.InsufficientHoldings(available)
		}
	}

	updated := original
	updated.Symbol = symbol
	updated.Amount = amount
	updated.Price = models.TotalConsideration(price)

	if original.Type == models.TradeSell {
		profit := s.priceSale(s.transactions, updated)
		updated.Profit = &profit
	}

	next := append([]models.Transaction(nil), s.transactions...)
	next[idx] = updated
	if err := s.persist(next); err != nil {
		return nil, err
	}
	s.transactions = next

	out := updated
	return &out, nil
}

// DeleteTransaction removes a record. The resulting position is not
// re-validated; editing the log out of order can leave a symbol oversold
// relative to its remaining buys.
func (s *ledgerService) DeleteTransaction(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return apperrors.ErrTransactionNotFound
	}

	next := append([]models.Transaction(nil), s.transactions[:idx]...)
	next = append(next, s.transactions[idx+1:]...)
	if err := s.persist(next); err != nil {
		return err
	}
	s.transactions = next
	return nil
}

// GetTransaction returns one record by id.
func (s *ledgerService) GetTransaction(id string) (*models.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return nil, apperrors.ErrTransactionNotFound
	}
	out := s.transactions[idx]
	return &out, nil
}

// GetAllTransactions returns the ledger in insertion order.
func (s *ledgerService) GetAllTransactions() []models.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// GetAvailableAmount returns the signed running balance of buys minus sells
// for a symbol. This is the ledger-only balance, computed independently of
// the average-cost position.
func (s *ledgerService) GetAvailableAmount(symbol string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	return availableAmount(s.transactions, symbol)
}

// priceSale computes the realized profit of a prospective sell against the
// given ledger state: total received minus the average-cost basis of the
// units sold. A symbol with no holdings realizes zero.
func (s *ledgerService) priceSale(transactions []models.Transaction, sale models.Transaction) float64 {
	positions := s.valuation.Compute(transactions)

	pos, ok := positions[sale.Symbol]
	if !ok || pos.Amount == 0 {
		return 0
	}
	return float64(sale.Price) - sale.Amount*float64(pos.AvgPrice)
}

func (s *ledgerService) indexOf(id string) int {
	for i := range s.transactions {
		if s.transactions[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *ledgerService) persist(transactions []models.Transaction) error {
	data, err := json.Marshal(transactions)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if err := s.store.Set(storage.KeyTransactions, data); err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

func availableAmount(transactions []models.Transaction, symbol string) float64 {
	total := 0.0
	for _, t := range transactions {
		if t.Symbol != symbol {
			continue
		}
		if t.Type == models.TradeBuy {
			total += t.Amount
		} else {
			total -= t.Amount
		}
	}
	return total
}

func validateTrade(symbol string, amount, price float64) error {
	if strings.TrimSpace(symbol) == "" {
		return apperrors.WithMessage(apperrors.ErrValidation, "Symbol is required")
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, "Amount must be a positive number")
	}
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return apperrors.WithMessage(apperrors.ErrValidation, "Price must be a positive number")
	}
	return nil
}
