package models

// Position is the derived current state of one symbol, replayed from the
// ledger. It is never persisted. CurrentValue equals TotalCost: the capital
// still deployed at average cost, not a mark-to-market value.
type Position struct {
	Amount       float64   `json:"amount"`
	AvgPrice     UnitPrice `json:"avgPrice"`
	TotalCost    float64   `json:"totalCost"`
	CurrentValue float64   `json:"currentValue"`
	IsSoldOut    bool      `json:"isSoldOut"`
}
