package repository

import (
	"context"
	"errors"
)

// ErrConcurrentModification is returned when a write carries a stale conflict
// token, meaning another transaction modified the entity after it was loaded.
// It is the only transient error in the system: callers retry the whole
// read-mutate-write cycle, never merge partial state.
var ErrConcurrentModification = errors.New("entity was modified concurrently")

// Transactioner is the atomic commit boundary. fn runs with a
// transaction-scoped context; returning an error rolls everything back, so
// either all writes inside fn persist or none do.
type Transactioner interface {
	WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
