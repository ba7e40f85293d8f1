package repository

import (
	"time"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/domain"
	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/models"

	"gorm.io/gorm"
)

type CartRepository struct {
	db *gorm.DB
}

func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

// FindDueReminders selects abandoned carts eligible for a reminder:
// not recovered, under the reminder cap, idle past the configured delay,
// at least 1h idle before the first reminder and 24h since the previous
// one. Oldest carts first.
func (r *CartRepository) FindDueReminders(now time.Time, delayMinutes, limit int) ([]models.AbandonedCart, error) {
	firstGapMin := delayMinutes
	if firstGapMin < domain.FirstReminderMinGapMin {
		firstGapMin = domain.FirstReminderMinGapMin
	}
	firstCutoff := now.Add(-time.Duration(firstGapMin) * time.Minute)
	delayCutoff := now.Add(-time.Duration(delayMinutes) * time.Minute)
	repeatCutoff := now.Add(-time.Duration(domain.RepeatReminderMinGapMin) * time.Minute)

	var carts []models.AbandonedCart
	err := r.db.Preload("User").
		Where("recovered = ? AND reminder_count < ?", false, domain.MaxCartReminders).
		Where("updated_at <= ?", delayCutoff).
		Where("(reminder_count = 0 AND updated_at <= ?) OR (reminder_count > 0 AND last_reminder_at <= ?)",
			firstCutoff, repeatCutoff).
		Order("updated_at ASC").Limit(limit).Find(&carts).Error
	return carts, err
}

// MarkReminded stamps the idempotency fields in one write so a row is
// never picked up twice within a qualifying window, even when the email
// channel failed.
func (r *CartRepository) MarkReminded(id uint, now time.Time) error {
	return r.db.Model(&models.AbandonedCart{}).Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"reminder_sent":    true,
			"reminder_count":   gorm.Expr("reminder_count + 1"),
			"last_reminder_at": now,
		}).Error
}
