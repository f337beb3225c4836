package repository

import (
	"context"

	"github.com/sangkips/restopos/internal/domain/entity"
)

// PreferenceRepository stores JSON documents by key.
type PreferenceRepository interface {
	Get(ctx context.Context, key string) (*entity.Preference, error)
	Upsert(ctx context.Context, pref *entity.Preference) error
}

// NotificationRepository stores the notification history.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	Recent(ctx context.Context, limit int) ([]entity.Notification, error)
}
