package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/enum"
	"gorm.io/gorm"
)

// Notification is a message shown to the operator, kept as history.
type Notification struct {
	ID        uuid.UUID     `gorm:"type:char(36);primaryKey" json:"id"`
	Title     string        `gorm:"size:255;not null" json:"title"`
	Message   string        `gorm:"type:text" json:"message"`
	Severity  enum.Severity `gorm:"size:10;not null;index" json:"severity"`
	CreatedAt time.Time     `gorm:"index" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}

func (Notification) TableName() string {
	return "notifications"
}
