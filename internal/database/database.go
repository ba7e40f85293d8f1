package database

import (
	"log"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/config"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/domain"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(cfg.DSN), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	return db, nil
}

// AutoMigrate runs Gorm auto-migration for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.Address{},
		&models.Product{},
		&models.NewsletterSubscriber{},
		&models.AbandonedCart{},
		&models.RestockAlert{},
		&models.Notification{},
		&models.NotificationTrigger{},
	)
}

// SeedAdmin creates a development admin account if none exists.
func SeedAdmin(db *gorm.DB) {
	var count int64
	db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin).Count(&count)
	if count > 0 {
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte("admin1234"), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[Seed] bcrypt: %v", err)
		return
	}
	admin := &models.User{
		Email:        "admin@bliss-store.example",
		Name:         "Store Admin",
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("[Seed] admin: %v", err)
		return
	}
	log.Printf("[Seed] created admin %s", admin.Email)
}

// SeedTriggers installs inactive default configs for each trigger type
// so admins can enable them from the trigger surface without typing
// templates from scratch.
func SeedTriggers(db *gorm.DB) {
	defaults := []models.NotificationTrigger{
		{
			TriggerType:     domain.TriggerAbandonedCart,
			DelayMinutes:    60,
			TitleTemplate:   "You left something behind",
			MessageTemplate: "Hi {{customer_name}}, your cart with {{item_count}} item(s) is still waiting for you.",
			SendEmail:       true,
		},
		{
			TriggerType:     domain.TriggerRestock,
			DelayMinutes:    0,
			TitleTemplate:   "Back in stock",
			MessageTemplate: "{{product_name}} is back in stock. Grab it before it sells out again!",
			SendEmail:       true,
		},
		{
			TriggerType:     domain.TriggerOrderStatus,
			DelayMinutes:    0,
			TitleTemplate:   "Order {{order_number}} update",
			MessageTemplate: "Hi {{customer_name}}, order {{order_number}} is now {{status}}.",
			SendEmail:       true,
		},
		{
			TriggerType:     domain.TriggerWelcome,
			DelayMinutes:    0,
			TitleTemplate:   "Welcome to Bliss Store",
			MessageTemplate: "Hi {{customer_name}}, thanks for joining us!",
			SendEmail:       false,
		},
	}
	for _, t := range defaults {
		var count int64
		db.Model(&models.NotificationTrigger{}).Where("trigger_type = ?", t.TriggerType).Count(&count)
		if count > 0 {
			continue
		}
		if err := db.Create(&t).Error; err != nil {
			log.Printf("[Seed] trigger %s: %v", t.TriggerType, err)
		}
	}
}
