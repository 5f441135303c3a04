package database

import (
	"fmt"
	"log"
	"os"

	"franquia-backend/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func Connect() (*gorm.DB, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "host=localhost user=postgres password=postgres dbname=franquia port=5432 sslmode=disable"
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	// Ensure PostgreSQL has gen_random_uuid() available (pgcrypto extension).
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto;`).Error; err != nil {
		return fmt.Errorf("failed to enable pgcrypto extension: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Franchise{},
		&models.FranchiseProduct{},
		&models.Client{},
		&models.Lead{},
		&models.LeadNote{},
		&models.Task{},
		&models.Transaction{},
		&models.Consortium{},
		&models.CreditRecoveryCase{},
		&models.Sale{},
		&models.SaleItem{},
		&models.Contract{},
		&models.Audit{},
		&models.Product{},
		&models.KnowledgeBaseResource{},
		&models.Announcement{},
		&models.MarketingCampaign{},
		&models.TrainingCourse{},
		&models.TrainingModule{},
	); err != nil {
		return err
	}

	return nil
}

// CreateDefaultFranchisor seeds the network operator account on first boot.
func CreateDefaultFranchisor(db *gorm.DB) error {
	email := os.Getenv("FRANCHISOR_EMAIL")
	password := os.Getenv("FRANCHISOR_PASSWORD")

	if email == "" {
		email = "admin@franquia.com"
	}
	if password == "" {
		password = "admin123"
	}

	var existingUser models.User
	result := db.Where("email = ?", email).First(&existingUser)
	if result.Error == nil {
		// Franchisor already exists
		return nil
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	franchisor := models.User{
		Email:    email,
		Password: string(hashedPassword),
		Role:     models.RoleFranchisor,
		Name:     "Network Admin",
	}

	if err := db.Create(&franchisor).Error; err != nil {
		return err
	}

	log.Printf("Default franchisor created: %s", email)
	return nil
}

// CreateDefaultFranchise seeds a demo unit on first boot so a fresh install
// has something to look at. Skipped when any franchise already exists or the
// default franchisor has not been created yet.
func CreateDefaultFranchise(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Franchise{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var franchisor models.User
	if err := db.Where("role = ?", models.RoleFranchisor).First(&franchisor).Error; err != nil {
		// Partial bootstrap; nothing to anchor the demo unit to.
		return nil
	}

	ownerPassword := os.Getenv("DEMO_OWNER_PASSWORD")
	if ownerPassword == "" {
		ownerPassword = "demo1234"
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	owner := models.User{
		Email:    "owner@demo.franquia.com",
		Password: string(hashed),
		Name:     "Demo Owner",
		Role:     models.RoleFranchisee,
	}
	if err := db.Create(&owner).Error; err != nil {
		return err
	}

	franchise := models.Franchise{
		Name:    "Franquia Demo",
		OwnerID: owner.ID,
		City:    "São Paulo",
		State:   "SP",
	}
	if err := db.Create(&franchise).Error; err != nil {
		return err
	}

	// Owner created before the franchise existed; bind them now.
	if err := db.Model(&owner).Update("franchise_id", franchise.ID).Error; err != nil {
		return err
	}

	log.Printf("Demo franchise created: %s", franchise.Name)
	return nil
}
