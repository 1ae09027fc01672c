// Package repository implements the typed domain operations over the
// embedded store. It is the single point through which all mutations flow;
// every write runs its statements and then persists the store snapshot.
// See docs/ARCHITECTURE.md § Domain Repository.
package repository

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/opsledger/svcledger/internal/sqlite"
	"github.com/opsledger/svcledger/pkg/types"
)

// Repository exposes typed CRUD operations over the store.
type Repository struct {
	store *sqlite.Store
	log   zerolog.Logger
}

// New creates a Repository over an attached store.
func New(store *sqlite.Store, log zerolog.Logger) *Repository {
	return &Repository{store: store, log: log}
}

// Store returns the underlying store, for lifecycle management by the
// orchestration layer.
func (r *Repository) Store() *sqlite.Store {
	return r.store
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// parsePrice converts a stored decimal string back to a decimal.Decimal.
func parsePrice(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: bad decimal %q: %v", types.ErrStorage, s, err)
	}
	return d, nil
}

// parseDate converts a stored calendar date back to a time.Time.
func parseDate(s string) (time.Time, error) {
	t, err := time.Parse(types.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q: %v", types.ErrStorage, s, err)
	}
	return t, nil
}

// parseTimestamp converts a stored RFC 3339 timestamp back to a time.Time.
func parseTimestamp(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad timestamp %q: %v", types.ErrStorage, s, err)
	}
	return t, nil
}
