package entity

import (
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/pkg/identifier"
)

// PolicyUpdate is an announcement of a changed hospital or regional policy,
// scoped by hospital and region so nurses only follow what applies to them.
type PolicyUpdate struct {
	ID             string     `gorm:"size:40;primaryKey" json:"id"`
	Title          string     `gorm:"size:255;not null" json:"title"`
	Content        string     `gorm:"type:text;not null" json:"content"`
	AuthorID       string     `gorm:"size:40;not null;index" json:"author_id"`
	Author         User       `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Hospital       *string    `gorm:"size:255;index" json:"hospital,omitempty"`
	Region         *string    `gorm:"size:255;index" json:"region,omitempty"`
	EffectiveDate  *time.Time `gorm:"index" json:"effective_date,omitempty"`
	HasAttachments bool       `gorm:"default:false" json:"has_attachments"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *PolicyUpdate) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = identifier.New(identifier.TagPolicyUpdate)
	}
	return nil
}

type EquipmentReview struct {
	ID          string    `gorm:"size:40;primaryKey" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Category    string    `gorm:"size:100;not null;index" json:"category"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	AuthorID    string    `gorm:"size:40;not null;index" json:"author_id"`
	Author      User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author,omitempty"`
	Rating      int       `gorm:"not null;index" json:"rating"`
	Review      string    `gorm:"type:text;not null" json:"review"`
	Pros        *string   `gorm:"type:text" json:"pros,omitempty"`
	Cons        *string   `gorm:"type:text" json:"cons,omitempty"`
	HasImages   bool      `gorm:"default:false" json:"has_images"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *EquipmentReview) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = identifier.New(identifier.TagEquipmentReview)
	}
	return nil
}
