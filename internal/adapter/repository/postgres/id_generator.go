package postgres

import "github.com/oklog/ulid/v2"

// ULIDGenerator implements usecase.IDGenerator with lexicographically
// sortable ids, which keeps index pages append-mostly.
type ULIDGenerator struct{}

// NewULIDGenerator creates a new ULIDGenerator.
func NewULIDGenerator() *ULIDGenerator {
	return &ULIDGenerator{}
}

// Generate returns a new ULID string.
func (ULIDGenerator) Generate() string {
	return ulid.Make().String()
}
