package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	domainRepo "github.com/sangkips/restopos/internal/domain/repository"
	"github.com/sangkips/restopos/pkg/pagination"
	"gorm.io/gorm"
)

type cashSessionRepository struct {
	db *gorm.DB
}

// NewCashSessionRepository creates a new cash session repository
func NewCashSessionRepository(db *gorm.DB) domainRepo.CashSessionRepository {
	return &cashSessionRepository{db: db}
}

func (r *cashSessionRepository) Create(ctx context.Context, session *entity.CashSession) error {
	return conn(ctx, r.db).Create(session).Error
}

func (r *cashSessionRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.CashSession, error) {
	var session entity.CashSession
	err := conn(ctx, r.db).First(&session, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *cashSessionRepository) GetOpen(ctx context.Context, terminalID string) (*entity.CashSession, error) {
	var session entity.CashSession
	err := conn(ctx, r.db).
		Where("terminal_id = ? AND status = ?", terminalID, enum.SessionOpen).
		Order("opened_at DESC").
		First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &session, err
}

func (r *cashSessionRepository) Update(ctx context.Context, session *entity.CashSession) error {
	return conn(ctx, r.db).Save(session).Error
}

func (r *cashSessionRepository) ListClosed(ctx context.Context, terminalID string, params pagination.Params) ([]entity.CashSession, int64, error) {
	var sessions []entity.CashSession
	var total int64

	query := conn(ctx, r.db).Model(&entity.CashSession{}).
		Where("terminal_id = ? AND status = ?", terminalID, enum.SessionClosed)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.Scopes(Paginate(params)).
		Order("opened_at DESC").
		Find(&sessions).Error
	return sessions, total, err
}
