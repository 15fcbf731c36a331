// Package storage defines the key-value blob port the registry and ledger
// persist through, plus its database-backed and in-memory implementations.
// State lives under two keys ("symbols" and "transactions"), each holding a
// JSON-serialized sequence written wholesale on every mutation.
package storage

// Well-known keys.
const (
	KeySymbols      = "symbols"
	KeyTransactions = "transactions"
)

// Store is the persistence capability injected into the services. Get
// returns (nil, nil) for an absent key; callers treat that as an empty
// sequence. Set replaces the value for a key atomically.
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}
