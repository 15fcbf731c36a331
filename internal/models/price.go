package models

// The ledger stores the money that changed hands per trade, not a per-unit
// quote. The two defined types below keep that distinction visible at every
// arithmetic seam; converting between them always divides or multiplies by a
// quantity, and doing so implicitly is how averages get corrupted.

// TotalConsideration is the full amount paid or received for a trade
// (quantity times unit price, as a single number).
type TotalConsideration float64

// UnitPrice is a per-unit price, such as the running average acquisition
// cost of a holding.
type UnitPrice float64
