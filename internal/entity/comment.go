package entity

import (
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/pkg/identifier"
)

// Comment is a reply in a thread; ParentID forms the reply tree. Deleting a
// thread cascades its comments; deleting a parent comment detaches replies.
type Comment struct {
	ID        string    `gorm:"size:40;primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	ThreadID  string    `gorm:"size:40;not null;index" json:"thread_id"`
	Thread    Thread    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AuthorID  string    `gorm:"size:40;not null;index" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	ParentID  *string   `gorm:"size:40;index" json:"parent_id,omitempty"`
	Parent    *Comment  `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"-"`
	IsEdited  bool      `gorm:"default:false" json:"is_edited"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = identifier.New(identifier.TagComment)
	}
	return nil
}

type CommentReaction struct {
	CommentID string    `gorm:"size:40;primaryKey" json:"comment_id"`
	Comment   Comment   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    string    `gorm:"size:40;primaryKey" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Type      string    `gorm:"size:20;primaryKey" json:"type"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
