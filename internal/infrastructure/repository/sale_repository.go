package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	domainRepo "github.com/sangkips/restopos/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	})
}

func (r *saleRepository) Create(ctx context.Context, sale *entity.SaleOrder) error {
	for i := range sale.Items {
		sale.Items[i].Position = i
	}
	return conn(ctx, r.db).Create(sale).Error
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.SaleOrder, error) {
	var sale entity.SaleOrder
	err := conn(ctx, r.db).Scopes(preloadItems).First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.SaleOrder, int64, error) {
	var sales []entity.SaleOrder
	var total int64

	query := conn(ctx, r.db).Model(&entity.SaleOrder{}).
		Scopes(DayRange("business_day", params.StartDay, params.EndDay))
	if params.Status != nil {
		query = query.Where("status = ?", *params.Status)
	}
	if params.Location != "" {
		query = query.Where("location = ?", params.Location)
	}
	if params.SessionID != nil {
		query = query.Where("session_id = ?", *params.SessionID)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Scopes(preloadItems).Order("ordered_at DESC")
	if !params.All {
		query = query.Scopes(Paginate(params.Pagination))
	}
	err := query.Find(&sales).Error
	return sales, total, err
}

func (r *saleRepository) ListForSession(ctx context.Context, sessionID uuid.UUID) ([]entity.SaleOrder, error) {
	var sales []entity.SaleOrder
	err := conn(ctx, r.db).
		Where("session_id = ? OR session_id IS NULL", sessionID).
		Order("ordered_at ASC").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status enum.SaleStatus) error {
	return conn(ctx, r.db).Model(&entity.SaleOrder{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *saleRepository) UpdatePreparation(ctx context.Context, id uuid.UUID, status enum.PreparationStatus) error {
	return conn(ctx, r.db).Model(&entity.SaleOrder{}).
		Where("id = ?", id).
		Update("preparation_status", status).Error
}

func (r *saleRepository) MarkRefunded(ctx context.Context, id, refundID uuid.UUID) error {
	result := conn(ctx, r.db).Model(&entity.SaleOrder{}).
		Where("id = ? AND refunded_by_id IS NULL", id).
		Update("refunded_by_id", refundID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("sale %s: %w", id, gorm.ErrRecordNotFound)
	}
	return nil
}
