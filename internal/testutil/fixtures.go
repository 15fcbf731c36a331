// Package testutil provides test helpers for building stores, ledger
// fixtures, and assertions.
package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"folio/internal/models"
	"folio/internal/storage"
)

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// SetupStore creates an empty in-memory key-value store.
func SetupStore() storage.Store {
	return storage.NewMemoryStore()
}

// baseTime anchors fixture dates so replay order is deterministic.
var baseTime = time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)

// Buy builds a buy record. seq spaces the date so later fixtures replay later.
func Buy(symbol string, seq int, amount, price float64) models.Transaction {
	return models.Transaction{
		ID:     fmt.Sprintf("fixture-%d", nextID()),
		Type:   models.TradeBuy,
		Symbol: symbol,
		Amount: amount,
		Price:  models.TotalConsideration(price),
		Date:   baseTime.Add(time.Duration(seq) * time.Minute),
	}
}

// Sell builds a sell record with an already-priced profit.
func Sell(symbol string, seq int, amount, price, profit float64) models.Transaction {
	return models.Transaction{
		ID:     fmt.Sprintf("fixture-%d", nextID()),
		Type:   models.TradeSell,
		Symbol: symbol,
		Amount: amount,
		Price:  models.TotalConsideration(price),
		Date:   baseTime.Add(time.Duration(seq) * time.Minute),
		Profit: &profit,
	}
}
