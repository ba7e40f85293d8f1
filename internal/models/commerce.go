package models

import "time"

// Commerce models are collaborator-owned: the notification pipeline reads
// them to resolve segments and trigger content, and only ever writes the
// completion flags on AbandonedCart and RestockAlert.

type Order struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"not null;index" json:"user_id"`
	OrderNumber string    `gorm:"uniqueIndex;size:40;not null" json:"order_number"`
	Status      string    `gorm:"size:30;not null" json:"status"`
	TotalCents  int64     `gorm:"not null" json:"total_cents"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

type Address struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	UserID  uint   `gorm:"not null;index" json:"user_id"`
	Line1   string `gorm:"size:255" json:"line1"`
	City    string `gorm:"size:120;index" json:"city"`
	Country string `gorm:"size:120" json:"country"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

type Product struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Slug       string    `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Stock      int       `gorm:"not null;default:0" json:"stock"`
	PriceCents int64     `gorm:"not null;default:0" json:"price_cents"`
	ImageURL   string    `gorm:"size:512" json:"image_url"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type NewsletterSubscriber struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;size:255;not null" json:"email"`
	Name      string    `gorm:"size:120" json:"name"`
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type AbandonedCart struct {
	ID             uint       `gorm:"primaryKey" json:"id"`
	UserID         *uint      `gorm:"index" json:"user_id"`
	Email          string     `gorm:"size:255" json:"email"`
	Items          string     `gorm:"type:text" json:"items"` // JSON payload
	ItemCount      int        `gorm:"not null;default:0" json:"item_count"`
	Recovered      bool       `gorm:"not null;default:false;index" json:"recovered"`
	ReminderSent   bool       `gorm:"not null;default:false;index" json:"reminder_sent"`
	ReminderCount  int        `gorm:"not null;default:0" json:"reminder_count"`
	LastReminderAt *time.Time `json:"last_reminder_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"-"`
}

type RestockAlert struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index" json:"product_id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	Email     string    `gorm:"size:255" json:"email"`
	Notified  bool      `gorm:"not null;default:false;index" json:"notified"`
	CreatedAt time.Time `json:"created_at"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
	User    *User   `gorm:"foreignKey:UserID" json:"-"`
}
