package repository

import (
	"context"
	"errors"

	"github.com/sangkips/restopos/internal/domain/entity"
	domainRepo "github.com/sangkips/restopos/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type preferenceRepository struct {
	db *gorm.DB
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *gorm.DB) domainRepo.PreferenceRepository {
	return &preferenceRepository{db: db}
}

func (r *preferenceRepository) Get(ctx context.Context, key string) (*entity.Preference, error) {
	var pref entity.Preference
	err := conn(ctx, r.db).Where(&entity.Preference{Key: key}).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &pref, err
}

func (r *preferenceRepository) Upsert(ctx context.Context, pref *entity.Preference) error {
	return conn(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(pref).Error
}

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a new notification repository
func NewNotificationRepository(db *gorm.DB) domainRepo.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *entity.Notification) error {
	return conn(ctx, r.db).Create(n).Error
}

func (r *notificationRepository) Recent(ctx context.Context, limit int) ([]entity.Notification, error) {
	var items []entity.Notification
	err := conn(ctx, r.db).Order("created_at DESC").Limit(limit).Find(&items).Error
	return items, err
}
