package repository

import (
	"errors"
	"time"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/models"

	"gorm.io/gorm"
)

var ErrChildDeletion = errors.New("cannot delete an A/B child variant on its own")

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *NotificationRepository) GetByID(id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.db.First(&n, id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// ListForUser returns the most recent notifications visible to a user:
// global broadcasts plus their personal records, newest first.
func (r *NotificationRepository) ListForUser(userID uint, limit int) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Where("is_global = ? OR user_id = ?", true, userID).
		Order("created_at DESC").Limit(limit).Find(&list).Error
	return list, err
}

func (r *NotificationRepository) ListAdmin(limit, offset int) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Order("created_at DESC").Limit(limit).Offset(offset).Find(&list).Error
	return list, err
}

// FindDue returns unsent notifications whose schedule has elapsed,
// oldest due first, bounded to one dispatch batch.
func (r *NotificationRepository) FindDue(now time.Time, limit int) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Where("is_sent = ? AND scheduled_at IS NOT NULL AND scheduled_at <= ?", false, now).
		Order("scheduled_at ASC").Limit(limit).Find(&list).Error
	return list, err
}

// MarkSent flips the dispatch idempotency flag. Called before delivery so
// an overlapping run does not pick the same record up again.
func (r *NotificationRepository) MarkSent(id uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).
		Update("is_sent", true).Error
}

func (r *NotificationRepository) SetDeliveredCount(id uint, count int) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).
		Update("delivered_count", count).Error
}

func (r *NotificationRepository) IncrementOpened(id uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).
		Update("opened_count", gorm.Expr("opened_count + 1")).Error
}

func (r *NotificationRepository) IncrementClicked(id uint) error {
	return r.db.Model(&models.Notification{}).Where("id = ?", id).
		Update("clicked_count", gorm.Expr("clicked_count + 1")).Error
}

func (r *NotificationRepository) MarkRead(id, userID uint) error {
	return r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("is_read", true).Error
}

func (r *NotificationRepository) MarkAllRead(userID uint, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.Model(&models.Notification{}).
		Where("id IN ? AND user_id = ?", ids, userID).
		Update("is_read", true).Error
}

// DeleteGlobal removes all global broadcast records. This is the server
// half of the client's clear-all; personal records are left untouched.
func (r *NotificationRepository) DeleteGlobal() error {
	return r.db.Where("is_global = ?", true).Delete(&models.Notification{}).Error
}

// DeleteWithVariants hard-deletes a notification and any child variants.
// Deleting a child directly is rejected; the B arm only goes away with
// its parent.
func (r *NotificationRepository) DeleteWithVariants(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var n models.Notification
		if err := tx.First(&n, id).Error; err != nil {
			return err
		}
		if n.ParentID != nil {
			return ErrChildDeletion
		}
		if err := tx.Where("parent_id = ?", id).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Notification{}, id).Error
	})
}

// VariantsByTestName returns both arms of an A/B test, variant A first.
func (r *NotificationRepository) VariantsByTestName(name string) ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Where("is_ab_test = ? AND ab_test_name = ?", true, name).
		Order("variant_id ASC").Find(&list).Error
	return list, err
}

func (r *NotificationRepository) ListABTests() ([]models.Notification, error) {
	var list []models.Notification
	err := r.db.Where("is_ab_test = ? AND parent_id IS NULL", true).
		Order("created_at DESC").Find(&list).Error
	return list, err
}
