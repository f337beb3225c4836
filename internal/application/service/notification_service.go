package service

import (
	"context"

	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/sangkips/restopos/internal/domain/enum"
	"github.com/sangkips/restopos/internal/domain/repository"
	"go.uber.org/zap"
)

// Notifier raises operator-visible messages. Notify never fails the caller.
type Notifier interface {
	Notify(ctx context.Context, title, message string, severity enum.Severity)
}

// NotificationService logs notifications and keeps them as history.
type NotificationService struct {
	repo repository.NotificationRepository
	log  *zap.Logger
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo repository.NotificationRepository, log *zap.Logger) *NotificationService {
	return &NotificationService{repo: repo, log: log}
}

// Notify must not be called inside a transaction: the history write uses
// its own connection.
func (s *NotificationService) Notify(ctx context.Context, title, message string, severity enum.Severity) {
	if !severity.Valid() {
		severity = enum.SeverityInfo
	}

	fields := []zap.Field{zap.String("title", title), zap.String("severity", string(severity))}
	switch severity {
	case enum.SeverityWarning:
		s.log.Warn(message, fields...)
	case enum.SeverityError:
		s.log.Error(message, fields...)
	default:
		s.log.Info(message, fields...)
	}

	n := &entity.Notification{Title: title, Message: message, Severity: severity}
	if err := s.repo.Create(context.WithoutCancel(ctx), n); err != nil {
		s.log.Error("failed to store notification", zap.Error(err), zap.String("title", title))
	}
}

// Recent returns the latest notifications, newest first.
func (s *NotificationService) Recent(ctx context.Context, limit int) ([]entity.Notification, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	return s.repo.Recent(ctx, limit)
}
