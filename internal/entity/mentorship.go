package entity

import (
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/pkg/identifier"
)

const (
	MentorshipStatusPending   = "pending"
	MentorshipStatusActive    = "active"
	MentorshipStatusCompleted = "completed"
	MentorshipStatusRejected  = "rejected"
)

type Mentorship struct {
	ID             string     `gorm:"size:40;primaryKey" json:"id"`
	MentorID       string     `gorm:"size:40;not null;index" json:"mentor_id"`
	Mentor         User       `gorm:"foreignKey:MentorID;constraint:OnDelete:CASCADE" json:"mentor,omitempty"`
	MenteeID       string     `gorm:"size:40;not null;index" json:"mentee_id"`
	Mentee         User       `gorm:"foreignKey:MenteeID;constraint:OnDelete:CASCADE" json:"mentee,omitempty"`
	Status         string     `gorm:"size:20;not null;index" json:"status"`
	SpecialtyFocus *string    `gorm:"size:100" json:"specialty_focus,omitempty"`
	Notes          *string    `gorm:"type:text" json:"notes,omitempty"`
	StartDate      *time.Time `gorm:"type:date" json:"start_date,omitempty"`
	EndDate        *time.Time `gorm:"type:date" json:"end_date,omitempty"`
	CreatedAt      time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *Mentorship) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = identifier.New(identifier.TagMentorship)
	}
	return nil
}
