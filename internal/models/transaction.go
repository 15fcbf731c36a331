package models

import "time"

// TradeType represents the direction of a ledger entry.
type TradeType string

const (
	TradeBuy  TradeType = "buy"
	TradeSell TradeType = "sell"
)

// Transaction is one entry in the trade ledger. Price is the total
// consideration of the trade, not a per-unit quote. Date is assigned at
// creation and survives edits. Profit is present only on sell records and
// holds the realized gain or loss priced at the moment of the sale.
type Transaction struct {
	ID     string             `json:"id"`
	Type   TradeType          `json:"type"`
	Symbol string             `json:"symbol"`
	Amount float64            `json:"amount"`
	Price  TotalConsideration `json:"price"`
	Date   time.Time          `json:"date"`
	Profit *float64           `json:"profit,omitempty"`
}
