package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/pkg/pagination"
)

// SaleRepository defines the interface for sale data operations
type SaleRepository interface {
	// Create stores the sale together with its items.
	Create(ctx context.Context, sale *entity.SaleOrder) error
	// GetByID returns the sale with its items, or nil when it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleOrder, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.SaleOrder, int64, error)
	// ListForSession returns the sales tagged with the session plus every
	// untagged sale; callers decide membership of the untagged ones.
	ListForSession(ctx context.Context, sessionID uuid.UUID) ([]entity.SaleOrder, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error
	UpdatePreparation(ctx context.Context, id uuid.UUID, status enum.PreparationStatus) error
	// MarkRefunded links a sale to the sale that refunds it.
	MarkRefunded(ctx context.Context, id, refundID uuid.UUID) error
}

// SaleFilterParams contains filtering parameters for sale queries.
// StartDay and EndDay are inclusive YYYY-MM-DD business days.
type SaleFilterParams struct {
	Pagination pagination.Params
	Status     *enum.SaleStatus
	Location   string
	SessionID  *uuid.UUID
	StartDay   string
	EndDay     string
	// All disables pagination.
	All bool
}
