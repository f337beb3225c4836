package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/restopos/internal/domain/entity"
	domainRepo "github.com/sangkips/restopos/internal/domain/repository"
	"gorm.io/gorm"
)

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *gorm.DB) domainRepo.CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) LoadAll(ctx context.Context) ([]entity.CartLine, error) {
	var lines []entity.CartLine
	err := conn(ctx, r.db).Order("location ASC, position ASC").Find(&lines).Error
	return lines, err
}

func (r *cartRepository) Replace(ctx context.Context, location string, lines []entity.CartLine) error {
	write := func(db *gorm.DB) error {
		if err := db.Where("location = ?", location).Delete(&entity.CartLine{}).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return nil
		}
		rows := make([]entity.CartLine, len(lines))
		for i, l := range lines {
			l.ID = uuid.New()
			l.Location = location
			l.Position = i
			rows[i] = l
		}
		return db.Create(&rows).Error
	}

	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return write(tx.WithContext(ctx))
	}
	return r.db.WithContext(ctx).Transaction(write)
}
