package entity

import (
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/pkg/identifier"
)

const (
	ShiftTypeOffering   = "offering"
	ShiftTypeRequesting = "requesting"

	ShiftStatusOpen     = "open"
	ShiftStatusFilled   = "filled"
	ShiftStatusCanceled = "canceled"
	ShiftStatusExpired  = "expired"

	ApplicationStatusPending  = "pending"
	ApplicationStatusAccepted = "accepted"
	ApplicationStatusRejected = "rejected"
)

type Shift struct {
	ID         string    `gorm:"size:40;primaryKey" json:"id"`
	UserID     string    `gorm:"size:40;not null;index" json:"user_id"`
	User       User      `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Date       time.Time `gorm:"type:date;not null;index" json:"date"`
	StartTime  string    `gorm:"size:8;not null" json:"start_time"`
	EndTime    string    `gorm:"size:8;not null" json:"end_time"`
	Location   string    `gorm:"size:150;not null" json:"location"`
	Department string    `gorm:"size:100;not null;index" json:"department"`
	Type       string    `gorm:"size:20;not null" json:"type"`
	Status     string    `gorm:"size:20;not null;index" json:"status"`
	Notes      *string   `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (s *Shift) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = identifier.New(identifier.TagShift)
	}
	return nil
}

type ShiftApplication struct {
	ID          string    `gorm:"size:40;primaryKey" json:"id"`
	ShiftID     string    `gorm:"size:40;not null;index" json:"shift_id"`
	Shift       Shift     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ApplicantID string    `gorm:"size:40;not null;index" json:"applicant_id"`
	Applicant   User      `gorm:"foreignKey:ApplicantID;constraint:OnDelete:CASCADE" json:"applicant,omitempty"`
	Status      string    `gorm:"size:20;not null;index" json:"status"`
	Message     *string   `gorm:"type:text" json:"message,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *ShiftApplication) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = identifier.New(identifier.TagShiftApplication)
	}
	return nil
}
