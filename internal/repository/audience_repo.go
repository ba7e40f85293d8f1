package repository

import (
	"strings"
	"time"

	"github.com/SnigdhoNext27/bliss-store-suite-sub001/internal/models"

	"gorm.io/gorm"
)

// RecipientContact is one resolved member of a target segment.
type RecipientContact struct {
	Email  string `json:"email"`
	Name   string `json:"name"`
	UserID *uint  `json:"user_id,omitempty"`
}

// AudienceRepository is strictly read-only over collaborator data
// (profiles, orders, addresses, newsletter subscribers).
type AudienceRepository struct {
	db *gorm.DB
}

func NewAudienceRepository(db *gorm.DB) *AudienceRepository {
	return &AudienceRepository{db: db}
}

// ProfilesWithEmail returns every customer profile carrying an email.
func (r *AudienceRepository) ProfilesWithEmail() ([]RecipientContact, error) {
	var users []models.User
	if err := r.db.Where("email IS NOT NULL AND email <> ''").Find(&users).Error; err != nil {
		return nil, err
	}
	return contactsFromUsers(users), nil
}

func (r *AudienceRepository) ActiveSubscribers() ([]RecipientContact, error) {
	var subs []models.NewsletterSubscriber
	if err := r.db.Where("is_active = ?", true).Find(&subs).Error; err != nil {
		return nil, err
	}
	contacts := make([]RecipientContact, 0, len(subs))
	for _, s := range subs {
		contacts = append(contacts, RecipientContact{Email: s.Email, Name: s.Name})
	}
	return contacts, nil
}

// ProfilesCreatedSince returns profiles created at or after the cutoff
// (inclusive boundary).
func (r *AudienceRepository) ProfilesCreatedSince(cutoff time.Time) ([]RecipientContact, error) {
	var users []models.User
	if err := r.db.Where("created_at >= ? AND email <> ''", cutoff).Find(&users).Error; err != nil {
		return nil, err
	}
	return contactsFromUsers(users), nil
}

// HighValueProfiles sums each customer's lifetime order total and keeps
// those at or above the threshold.
func (r *AudienceRepository) HighValueProfiles(minOrderValue int64) ([]RecipientContact, error) {
	var rows []struct {
		ID    uint
		Email string
		Name  string
	}
	err := r.db.Model(&models.User{}).
		Select("users.id, users.email, users.name").
		Joins("JOIN orders ON orders.user_id = users.id").
		Where("users.email <> ''").
		Group("users.id, users.email, users.name").
		Having("SUM(orders.total_cents) >= ?", minOrderValue).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	contacts := make([]RecipientContact, 0, len(rows))
	for _, row := range rows {
		id := row.ID
		contacts = append(contacts, RecipientContact{Email: row.Email, Name: row.Name, UserID: &id})
	}
	return contacts, nil
}

// ProfilesInCity matches any address city containing the given value,
// case-insensitive.
func (r *AudienceRepository) ProfilesInCity(city string) ([]RecipientContact, error) {
	pattern := "%" + strings.ToLower(city) + "%"
	var users []models.User
	err := r.db.
		Joins("JOIN addresses ON addresses.user_id = users.id").
		Where("LOWER(addresses.city) LIKE ? AND users.email <> ''", pattern).
		Group("users.id").
		Find(&users).Error
	if err != nil {
		return nil, err
	}
	return contactsFromUsers(users), nil
}

// OrderWithUser fetches one order and its owning profile, used by the
// order-status trigger to render and address the notification.
func (r *AudienceRepository) OrderWithUser(orderID uint) (*models.Order, error) {
	var o models.Order
	if err := r.db.Preload("User").First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func contactsFromUsers(users []models.User) []RecipientContact {
	contacts := make([]RecipientContact, 0, len(users))
	for _, u := range users {
		id := u.ID
		contacts = append(contacts, RecipientContact{Email: u.Email, Name: u.Name, UserID: &id})
	}
	return contacts
}
