package services

import (
	"sort"

	"folio/internal/models"
)

// valuationService derives position snapshots from the ledger.
type valuationService struct{}

// NewValuationService creates a new ValuationServicer.
func NewValuationService() ValuationServicer {
	return &valuationService{}
}

// Compute replays the transaction log in chronological order and returns the
// resulting position per symbol. Every symbol with at least one transaction
// appears in the result. The input is sorted by date defensively: edits do
// not guarantee the ledger stays date-ordered, and the replay is
// order-sensitive. The sort is stable, so ledger order breaks date ties.
//
// Buys fold the trade's total consideration into the running average:
//
//	avgPrice' = (amount*avgPrice + price) / (amount + t.amount)
//
// with avgPrice' = price/amount for the first lot. Sells remove cost basis
// at the running average and never move it. A sell that empties the holding
// marks the position sold out and resets amount, cost, and average to zero,
// so a later buy starts a fresh basis.
func (s *valuationService) Compute(transactions []models.Transaction) map[string]models.Position {
	ordered := make([]models.Transaction, len(transactions))
	copy(ordered, transactions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	positions := make(map[string]models.Position)

	for _, t := range ordered {
		pos := positions[t.Symbol]

		switch t.Type {
		case models.TradeBuy:
			if pos.Amount > 0 {
				pos.AvgPrice = models.UnitPrice(
					(pos.Amount*float64(pos.AvgPrice) + float64(t.Price)) / (pos.Amount + t.Amount))
			} else {
				pos.AvgPrice = models.UnitPrice(float64(t.Price) / t.Amount)
			}
			pos.Amount += t.Amount
			pos.TotalCost += float64(t.Price)
			pos.IsSoldOut = false

		case models.TradeSell:
			soldValue := t.Amount * float64(pos.AvgPrice)
			pos.Amount -= t.Amount
			pos.TotalCost -= soldValue
			if pos.Amount <= 0 {
				pos.IsSoldOut = true
				pos.Amount = 0
				pos.TotalCost = 0
				pos.AvgPrice = 0
			}
		}

		positions[t.Symbol] = pos
	}

	for symbol, pos := range positions {
		// A net-positive holding can never be sold out, whatever the
		// replay passed through.
		if pos.Amount > 0 {
			pos.IsSoldOut = false
		}
		pos.CurrentValue = pos.TotalCost
		positions[symbol] = pos
	}

	return positions
}

// RealizedProfit sums the recorded profit of each symbol's sell records.
// The aggregate reads the ledger directly rather than re-deriving profits
// from the replay.
func (s *valuationService) RealizedProfit(transactions []models.Transaction) map[string]float64 {
	totals := make(map[string]float64)
	for _, t := range transactions {
		if t.Type == models.TradeSell && t.Profit != nil {
			totals[t.Symbol] += *t.Profit
		}
	}
	return totals
}
