package services

import "folio/internal/models"

// RegistryServicer defines the contract for the symbol registry.
type RegistryServicer interface {
	Add(name string, currentPrice *float64) (*models.Symbol, error)
	Update(id, name string, currentPrice *float64) (*models.Symbol, error)
	Delete(id string) error
	Get(id string) (*models.Symbol, error)
	GetAll() []models.Symbol
	GetCurrentPrice(name string) *float64
}

// LedgerServicer defines the contract for the transaction ledger.
type LedgerServicer interface {
	AddTransaction(tradeType models.TradeType, symbol string, amount, price float64) (*models.Transaction, error)
	UpdateTransaction(id, symbol string, amount, price float64) (*models.Transaction, error)
	DeleteTransaction(id string) error
	GetTransaction(id string) (*models.Transaction, error)
	GetAllTransactions() []models.Transaction
	GetAvailableAmount(symbol string) float64
}

// ValuationServicer replays a transaction log into per-symbol positions.
// Both methods are pure: no state, no side effects, never an error.
type ValuationServicer interface {
	Compute(transactions []models.Transaction) map[string]models.Position
	RealizedProfit(transactions []models.Transaction) map[string]float64
}
