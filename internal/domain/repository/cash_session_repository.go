package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/pkg/pagination"
)

// CashSessionRepository defines the interface for cash session data operations
type CashSessionRepository interface {
	Create(ctx context.Context, session *entity.CashSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error)
	// GetOpen returns the open session of a terminal, or nil.
	GetOpen(ctx context.Context, terminalID string) (*entity.CashSession, error)
	Update(ctx context.Context, session *entity.CashSession) error
	ListClosed(ctx context.Context, terminalID string, params pagination.Params) ([]entity.CashSession, int64, error)
}
