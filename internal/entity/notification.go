package entity

import (
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/pkg/identifier"
)

const (
	NotificationTypeMessage           = "message"
	NotificationTypeThreadReply       = "thread_reply"
	NotificationTypeMentorshipRequest = "mentorship_request"
	NotificationTypeShiftApplication  = "shift_application"
	NotificationTypeFollow            = "follow"
)

type Notification struct {
	ID        string    `gorm:"size:40;primaryKey" json:"id"`
	UserID    string    `gorm:"size:40;not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Type      string    `gorm:"size:30;not null" json:"type"`
	Title     string    `gorm:"size:255;not null" json:"title"`
	Content   *string   `gorm:"type:text" json:"content,omitempty"`
	IsRead    bool      `gorm:"default:false;index" json:"is_read"`
	LinkURL   *string   `gorm:"type:text" json:"link_url,omitempty"`
	RelatedID *string   `gorm:"size:40" json:"related_id,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = identifier.New(identifier.TagNotification)
	}
	return nil
}
