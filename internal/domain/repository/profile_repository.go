package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
)

// ProfileRepository defines the interface for lock-screen profiles
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
	ListActive(ctx context.Context) ([]entity.Profile, error)
	Count(ctx context.Context) (int64, error)
}
