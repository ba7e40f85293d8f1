package repository

import (
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/models"

	"gorm.io/gorm"
)

type RestockRepository struct {
	db *gorm.DB
}

func NewRestockRepository(db *gorm.DB) *RestockRepository {
	return &RestockRepository{db: db}
}

// FindPending returns unnotified alerts whose product is back in stock.
func (r *RestockRepository) FindPending(limit int) ([]models.RestockAlert, error) {
	var alerts []models.RestockAlert
	err := r.db.Preload("Product").Preload("User").
		Joins("JOIN products ON products.id = restock_alerts.product_id").
		Where("restock_alerts.notified = ? AND products.stock > 0", false).
		Order("restock_alerts.created_at ASC").Limit(limit).
		Find(&alerts).Error
	return alerts, err
}

// MarkNotified flips the alert's completion flag. Set unconditionally
// after the attempt regardless of delivery outcome.
func (r *RestockRepository) MarkNotified(id uint) error {
	return r.db.Model(&models.RestockAlert{}).Where("id = ?", id).
		Update("notified", true).Error
}
