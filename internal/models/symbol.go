package models

// Symbol represents a named tradable instrument with an optional
// last-known market price. Name is the natural key referenced by
// transactions; CurrentPrice is nil until the user sets one and never
// changes as a side effect of trading.
type Symbol struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	CurrentPrice *float64 `json:"currentPrice"`
}
