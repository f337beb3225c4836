package database

import (
	"fmt"

	"github.com/sangkips/restopos/internal/domain/entity"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedProfiles creates the default lock-screen profiles on an empty
// database. adminPin, when set, protects the manager profile.
func SeedProfiles(db *gorm.DB, adminPin string, log *zap.Logger) error {
	var count int64
	if err := db.Model(&entity.Profile{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	manager := entity.Profile{Name: "Gérant", Role: "admin", Active: true}
	if adminPin != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(adminPin), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("hash admin pin: %w", err)
		}
		manager.PinHash = string(hash)
	}
	profiles := []entity.Profile{
		manager,
		{Name: "Caisse", Role: "cashier", Active: true},
		{Name: "Cuisine", Role: "kitchen", Active: true},
	}
	if err := db.Create(&profiles).Error; err != nil {
		return fmt.Errorf("seed profiles: %w", err)
	}
	log.Info("seeded default profiles", zap.Int("count", len(profiles)))
	return nil
}

// SeedDemo adds a small catalog and staff on an empty database.
func SeedDemo(db *gorm.DB, log *zap.Logger) error {
	var count int64
	if err := db.Model(&entity.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	threshold := 5
	products := []entity.Product{
		{Name: "Thé à la menthe", SKU: "BOI-001", Price: decimal.NewFromInt(50), Cost: decimal.NewFromInt(15), Stock: 200, Category: "Boissons"},
		{Name: "Jus de bissap", SKU: "BOI-002", Price: decimal.NewFromInt(100), Cost: decimal.NewFromInt(40), Stock: 60, Category: "Boissons"},
		{Name: "Thieboudienne", SKU: "PLT-001", Price: decimal.NewFromInt(600), Cost: decimal.NewFromInt(250), Stock: 40, Category: "Plats", LowStockThreshold: &threshold},
		{Name: "Couscous poulet", SKU: "PLT-002", Price: decimal.NewFromInt(500), Cost: decimal.NewFromInt(200), Stock: 40, Category: "Plats", LowStockThreshold: &threshold},
		{Name: "Méchoui (part)", SKU: "PLT-003", Price: decimal.NewFromInt(1200), Cost: decimal.NewFromInt(600), Stock: 15, Category: "Plats", LowStockThreshold: &threshold},
	}
	employees := []entity.Employee{
		{Name: "Mariem Sidi", Role: "Serveuse", Department: "Salle", Salary: decimal.NewFromInt(30000), JoinDate: "2023-01-15", ContractType: "CDI"},
		{Name: "Oumar Ba", Role: "Cuisinier", Department: "Cuisine", Salary: decimal.NewFromInt(40000), JoinDate: "2022-06-01", ContractType: "CDI"},
	}

	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("seed products: %w", err)
		}
		if err := tx.Create(&employees).Error; err != nil {
			return fmt.Errorf("seed employees: %w", err)
		}
		log.Info("seeded demo data", zap.Int("products", len(products)), zap.Int("employees", len(employees)))
		return nil
	})
}
