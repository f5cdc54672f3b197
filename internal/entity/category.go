package entity

import (
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/pkg/identifier"
)

// Category is a node in the self-referential category tree. Specialized
// categories (ICU, pediatric, geriatric, ...) may be regional or
// hospital-specific.
type Category struct {
	ID               string    `gorm:"size:40;primaryKey" json:"id"`
	Name             string    `gorm:"size:100;not null" json:"name"`
	Description      *string   `gorm:"type:text" json:"description,omitempty"`
	Slug             string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Icon             *string   `gorm:"size:100" json:"icon,omitempty"`
	IsRegional       bool      `gorm:"default:false" json:"is_regional"`
	HospitalSpecific bool      `gorm:"default:false" json:"hospital_specific"`
	ParentID         *string   `gorm:"size:40;index" json:"parent_id"`
	Parent           *Category `gorm:"foreignKey:ParentID;constraint:OnDelete:SET NULL" json:"parent,omitempty"`
	CreatedAt        time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = identifier.New(identifier.TagCategory)
	}
	return nil
}
