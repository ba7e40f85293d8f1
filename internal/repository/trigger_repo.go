package repository

import (
	"errors"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/models"

	"gorm.io/gorm"
)

type TriggerRepository struct {
	db *gorm.DB
}

func NewTriggerRepository(db *gorm.DB) *TriggerRepository {
	return &TriggerRepository{db: db}
}

func (r *TriggerRepository) List() ([]models.NotificationTrigger, error) {
	var list []models.NotificationTrigger
	err := r.db.Order("trigger_type ASC, updated_at DESC").Find(&list).Error
	return list, err
}

func (r *TriggerRepository) GetByID(id uint) (*models.NotificationTrigger, error) {
	var t models.NotificationTrigger
	if err := r.db.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ActiveByType returns the single active config for a trigger type, or
// nil when the trigger is disabled. Multiple inactive configs may exist;
// only one active config is ever consulted per run.
func (r *TriggerRepository) ActiveByType(triggerType string) (*models.NotificationTrigger, error) {
	var t models.NotificationTrigger
	err := r.db.Where("trigger_type = ? AND is_active = ?", triggerType, true).
		Order("updated_at DESC").First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TriggerRepository) Create(t *models.NotificationTrigger) error {
	if t.IsActive {
		return r.db.Transaction(func(tx *gorm.DB) error {
			if err := deactivateOthers(tx, t.TriggerType, 0); err != nil {
				return err
			}
			return tx.Create(t).Error
		})
	}
	return r.db.Create(t).Error
}

// Update saves a config. Activating one config deactivates its siblings
// of the same type so at most one active config exists per trigger_type.
func (r *TriggerRepository) Update(t *models.NotificationTrigger) error {
	if t.IsActive {
		return r.db.Transaction(func(tx *gorm.DB) error {
			if err := deactivateOthers(tx, t.TriggerType, t.ID); err != nil {
				return err
			}
			return tx.Save(t).Error
		})
	}
	return r.db.Save(t).Error
}

func (r *TriggerRepository) Delete(id uint) error {
	return r.db.Delete(&models.NotificationTrigger{}, id).Error
}

func deactivateOthers(tx *gorm.DB, triggerType string, keepID uint) error {
	q := tx.Model(&models.NotificationTrigger{}).Where("trigger_type = ? AND is_active = ?", triggerType, true)
	if keepID != 0 {
		q = q.Where("id <> ?", keepID)
	}
	return q.Update("is_active", false).Error
}
