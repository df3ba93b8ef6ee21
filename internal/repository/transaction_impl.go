package repository

import (
	"context"

	domainRepo "clinic-booking-service/internal/domain/repository"

	"gorm.io/gorm"
)

type txKey struct{}

type gormTransactioner struct {
	db *gorm.DB
}

func NewTransactioner(db *gorm.DB) domainRepo.Transactioner {
	return &gormTransactioner{db: db}
}

// WithinTransaction runs fn inside a single database transaction. The
// transaction handle travels in the context so that repository calls made
// from fn join it; repositories called outside a transaction fall back to
// their own connection. Rollback happens on error, panic, or context
// cancellation before commit.
func (t *gormTransactioner) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// dbFromContext returns the transaction handle carried by ctx, or the
// fallback connection scoped to ctx when no transaction is open.
func dbFromContext(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return fallback.WithContext(ctx)
}
