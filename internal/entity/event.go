package entity

import (
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/pkg/identifier"
)

const (
	ParticipantStatusRegistered = "registered"
	ParticipantStatusAttended   = "attended"
	ParticipantStatusCanceled   = "canceled"
)

type Event struct {
	ID              string    `gorm:"size:40;primaryKey" json:"id"`
	Title           string    `gorm:"size:255;not null" json:"title"`
	Description     *string   `gorm:"type:text" json:"description,omitempty"`
	Location        *string   `gorm:"size:200" json:"location,omitempty"`
	StartDateTime   time.Time `gorm:"not null;index" json:"start_date_time"`
	EndDateTime     time.Time `gorm:"not null" json:"end_date_time"`
	OrganizerID     string    `gorm:"size:40;not null;index" json:"organizer_id"`
	Organizer       User      `gorm:"foreignKey:OrganizerID;constraint:OnDelete:CASCADE" json:"organizer,omitempty"`
	Type            string    `gorm:"size:50;not null;index" json:"type"`
	IsOnline        bool      `gorm:"default:false" json:"is_online"`
	MeetingURL      *string   `gorm:"type:text" json:"meeting_url,omitempty"`
	MaxParticipants *int      `json:"max_participants,omitempty"`
	ImageURL        *string   `gorm:"type:text" json:"image_url,omitempty"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = identifier.New(identifier.TagEvent)
	}
	return nil
}

type EventParticipant struct {
	EventID      string    `gorm:"size:40;primaryKey" json:"event_id"`
	Event        Event     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID       string    `gorm:"size:40;primaryKey" json:"user_id"`
	User         User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Status       string    `gorm:"size:20;not null;index" json:"status"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
}
