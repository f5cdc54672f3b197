package entity

import (
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/pkg/identifier"
)

type Thread struct {
	ID             string    `gorm:"size:40;primaryKey" json:"id"`
	Title          string    `gorm:"size:255;not null" json:"title"`
	Content        string    `gorm:"type:text;not null" json:"content"`
	CategoryID     string    `gorm:"size:40;not null;index" json:"category_id"`
	Category       Category  `gorm:"constraint:OnDelete:CASCADE" json:"category,omitempty"`
	AuthorID       string    `gorm:"size:40;not null;index" json:"author_id"`
	Author         User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	IsPinned       bool      `gorm:"default:false" json:"is_pinned"`
	IsLocked       bool      `gorm:"default:false" json:"is_locked"`
	ViewCount      int64     `gorm:"not null;default:0" json:"view_count"`
	FollowCount    int64     `gorm:"not null;default:0" json:"follow_count"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	LastActivityAt time.Time `gorm:"index;not null" json:"last_activity_at"`
}

func (t *Thread) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = identifier.New(identifier.TagThread)
	}
	if t.LastActivityAt.IsZero() {
		t.LastActivityAt = time.Now()
	}
	return nil
}

// ThreadReaction has a composite key: one reaction of a given type per user
// per thread.
type ThreadReaction struct {
	ThreadID  string    `gorm:"size:40;primaryKey" json:"thread_id"`
	Thread    Thread    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    string    `gorm:"size:40;primaryKey" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Type      string    `gorm:"size:20;primaryKey" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
