package models

import "time"

type Notification struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Title    string `gorm:"size:255;not null" json:"title"`
	Message  string `gorm:"type:text" json:"message"`
	Type     string `gorm:"size:20;not null;index" json:"type"` // info | product | order | promo
	Link     string `gorm:"size:512" json:"link"`
	ImageURL string `gorm:"size:512" json:"image_url"`

	// IsGlobal true means segment broadcast; false means a single
	// recipient with UserID set.
	IsGlobal bool  `gorm:"not null;default:false;index" json:"is_global"`
	UserID   *uint `gorm:"index" json:"user_id"`

	// Nil ScheduledAt means send immediately on creation.
	ScheduledAt *time.Time `gorm:"index" json:"scheduled_at"`
	IsSent      bool       `gorm:"not null;default:false;index" json:"is_sent"`
	SendEmail   bool       `gorm:"not null;default:false" json:"send_email"`

	DeliveredCount int `gorm:"not null;default:0" json:"delivered_count"`
	OpenedCount    int `gorm:"not null;default:0" json:"opened_count"`
	ClickedCount   int `gorm:"not null;default:0" json:"clicked_count"`

	TargetSegment  string `gorm:"size:40" json:"target_segment"`
	TargetCriteria string `gorm:"type:text" json:"target_criteria"` // JSON payload

	IsABTest   bool   `gorm:"not null;default:false;index" json:"is_ab_test"`
	ABTestName string `gorm:"size:120;index" json:"ab_test_name"`
	VariantID  string `gorm:"size:1" json:"variant_id"` // A | B
	ParentID   *uint  `gorm:"index" json:"parent_id"`   // nil for variant A

	// Server-side read marker; meaningful for single-recipient records.
	IsRead bool `gorm:"not null;default:false" json:"is_read"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	User     *User          `gorm:"foreignKey:UserID" json:"-"`
	Variants []Notification `gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Notification) TableName() string {
	return "notifications"
}

// CTR is clicks over opens, zero when nothing has been opened.
func (n *Notification) CTR() float64 {
	if n.OpenedCount == 0 {
		return 0
	}
	return float64(n.ClickedCount) / float64(n.OpenedCount)
}
