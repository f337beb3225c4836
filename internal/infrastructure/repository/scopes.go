package repository

import (
	"context"

	domainRepo "github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/pkg/pagination"
	"gorm.io/gorm"
)

type ctxKey string

// txKey is the context key holding the transaction of WithinTransaction.
const txKey ctxKey = "gorm_tx"

type transactor struct {
	db *gorm.DB
}

// NewTransactor creates a Transactor backed by db.
func NewTransactor(db *gorm.DB) domainRepo.Transactor {
	return &transactor{db: db}
}

// WithinTransaction commits when fn returns nil and rolls back otherwise.
// Nested calls join the outer transaction.
func (t *transactor) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey, tx))
	})
}

// conn returns the transaction carried by ctx, or db.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// Paginate returns a GORM scope applying offset and limit.
func Paginate(p pagination.Params) func(db *gorm.DB) *gorm.DB {
	p = p.Normalize()
	return func(db *gorm.DB) *gorm.DB {
		return db.Offset(p.Offset()).Limit(p.PerPage)
	}
}

// DayRange returns a GORM scope bounding a YYYY-MM-DD column. Empty bounds
// are open.
func DayRange(column, startDay, endDay string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if startDay != "" {
			db = db.Where(column+" >= ?", startDay)
		}
		if endDay != "" {
			db = db.Where(column+" <= ?", endDay)
		}
		return db
	}
}
