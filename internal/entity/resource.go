package entity

import (
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/pkg/identifier"
)

// Resource extends a thread with document metadata. A resource is a
// specialized thread, so its primary key is the thread's ID and it goes
// away with the thread.
type Resource struct {
	ThreadID      string    `gorm:"size:40;primaryKey" json:"thread_id"`
	Thread        Thread    `gorm:"constraint:OnDelete:CASCADE" json:"thread,omitempty"`
	Type          string    `gorm:"size:50;not null;index" json:"type"`
	URL           *string   `gorm:"type:text" json:"url,omitempty"`
	HasAttachment bool      `gorm:"default:false" json:"has_attachment"`
	IsVerified    bool      `gorm:"default:false" json:"is_verified"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type ResourceTag struct {
	ID        string    `gorm:"size:40;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (t *ResourceTag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = identifier.New(identifier.TagResourceTag)
	}
	return nil
}

type ResourceToTag struct {
	ResourceID string      `gorm:"size:40;primaryKey" json:"resource_id"`
	Resource   Resource    `gorm:"foreignKey:ResourceID;references:ThreadID;constraint:OnDelete:CASCADE" json:"-"`
	TagID      string      `gorm:"size:40;primaryKey" json:"tag_id"`
	Tag        ResourceTag `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE" json:"-"`
}
