package models

import "time"

// NotificationTrigger configures one automated trigger type. Multiple
// inactive configs may coexist; the engine consults at most one active
// config per trigger_type per run.
type NotificationTrigger struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	TriggerType     string    `gorm:"size:30;not null;index" json:"trigger_type"` // abandoned_cart | order_status | restock | welcome
	IsActive        bool      `gorm:"not null;default:false;index" json:"is_active"`
	DelayMinutes    int       `gorm:"not null;default:0" json:"delay_minutes"`
	TitleTemplate   string    `gorm:"size:255;not null" json:"title_template"`
	MessageTemplate string    `gorm:"type:text;not null" json:"message_template"`
	SendEmail       bool      `gorm:"not null;default:false" json:"send_email"`
	SendPush        bool      `gorm:"not null;default:false" json:"send_push"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (NotificationTrigger) TableName() string {
	return "notification_triggers"
}
