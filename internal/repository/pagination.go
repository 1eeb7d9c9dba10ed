package repository

import (
	"github.com/elise-tremblay/ClipNest/clipnest-go/internal/apperr"
)

// Pagination bounds for block listings.
const (
	MaxBlockListLimit     = 500
	DefaultBlockListLimit = 100
)

// Pagination carries limit/offset for block listings. Callers normalize it
// through exactly one of the two modes before handing it to a repo: Strict
// for admin-facing listings (out-of-range values are errors), Clamped for
// the fail-safe resolver path (out-of-range values are coerced).
type Pagination struct {
	Limit  int
	Offset int
}

// Strict validates the pagination and returns it unchanged, or an
// InvalidArgument error for out-of-range values.
func (p Pagination) Strict() (Pagination, error) {
	if p.Limit <= 0 || p.Limit > MaxBlockListLimit {
		return Pagination{}, apperr.New(apperr.InvalidArgument, "'limit' must be between 1 and 500.")
	}
	if p.Offset < 0 {
		return Pagination{}, apperr.New(apperr.InvalidArgument, "'offset' must be a non-negative integer.")
	}
	return p, nil
}

// Clamped coerces out-of-range values to safe bounds instead of failing.
func (p Pagination) Clamped() Pagination {
	if p.Limit <= 0 || p.Limit > MaxBlockListLimit {
		p.Limit = MaxBlockListLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}
