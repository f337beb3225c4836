package repository

import (
	"context"

	"github.com/sangkips/restopos/internal/domain/entity"
)

// CartRepository persists in-progress carts so they survive a restart.
type CartRepository interface {
	// LoadAll returns every line ordered by location then position.
	LoadAll(ctx context.Context) ([]entity.CartLine, error)
	// Replace overwrites the lines of a location; positions follow the
	// slice order. An empty slice clears the location.
	Replace(ctx context.Context, location string, lines []entity.CartLine) error
}
