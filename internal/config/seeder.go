package config

import (
	"fmt"

	"gcbp-mortgage/internal/adapters/persistence/models"
	"gcbp-mortgage/internal/core/domain"
	"gcbp-mortgage/internal/pkg/logger"
	"gcbp-mortgage/internal/pkg/password"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

type seedUser struct {
	name     string
	email    string
	password string
	role     domain.Role
}

// Development accounts. Change the passwords before exposing a deployment.
var seedUsers = []seedUser{
	{"Admin", "admin@gcbp.com", "admin123", domain.RoleAdmin},
	{"Sales Agent", "sales@gcbp.com", "sales123", domain.RoleSalesAgent},
	{"Credit Analyst", "credit@gcbp.com", "credit123", domain.RoleCreditAnalyst},
	{"Operations", "ops@gcbp.com", "ops123", domain.RoleOperations},
	{"Customer", "customer@example.com", "cust123", domain.RoleCustomer},
	{"Relationship Manager", "rm@gcbp.com", "rm123", domain.RoleRelationshipManager},
}

// Catalog order is id order, so the slice order matters.
var seedOffers = []models.BankOffer{
	{BankName: "HDFC Bank", ROI: 8.5, ProcessingFee: 0.5, MaxTenure: 30, MinIncome: 25000},
	{BankName: "ICICI Bank", ROI: 8.7, ProcessingFee: 0.4, MaxTenure: 25, MinIncome: 30000},
	{BankName: "SBI", ROI: 8.4, ProcessingFee: 0.2, MaxTenure: 30, MinIncome: 20000},
}

// Run executes all seeders. Each one is idempotent.
func (s *Seeder) Run() error {
	logger.L().Info("🌱 Running database seeders...")

	if err := s.seedUsers(); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}
	if err := s.seedBankOffers(); err != nil {
		return fmt.Errorf("seed bank offers: %w", err)
	}

	logger.L().Info("✅ Database seeding completed")
	return nil
}

func (s *Seeder) seedUsers() error {
	for _, su := range seedUsers {
		var count int64
		if err := s.db.Model(&models.User{}).Where("email = ?", su.email).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		hashed, err := password.Hash(su.password)
		if err != nil {
			return err
		}

		user := &models.User{
			Name:     su.name,
			Email:    su.email,
			Password: hashed,
			Role:     string(su.role),
			IsActive: true,
		}
		if err := s.db.Create(user).Error; err != nil {
			return err
		}
		logger.L().Info("✅ Seed user created", zap.String("email", su.email), zap.String("role", string(su.role)))
	}
	return nil
}

func (s *Seeder) seedBankOffers() error {
	var count int64
	if err := s.db.Model(&models.BankOffer{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	offers := make([]models.BankOffer, len(seedOffers))
	copy(offers, seedOffers)
	if err := s.db.Create(&offers).Error; err != nil {
		return err
	}

	logger.L().Info("✅ Bank offers seeded", zap.Int("count", len(offers)))
	return nil
}
