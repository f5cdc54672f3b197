package entity

import (
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/pkg/identifier"
)

const (
	ReportStatusPending     = "pending"
	ReportStatusReviewed    = "reviewed"
	ReportStatusDismissed   = "dismissed"
	ReportStatusActionTaken = "action_taken"
)

// Content kinds a content report may target. Like attachments, the
// (ContentType, ContentID) pair carries no foreign key.
const (
	ReportableThread  = "thread"
	ReportableComment = "comment"
	ReportableMessage = "message"
	ReportableShift   = "shift"
	ReportableEvent   = "event"
)

type UserReport struct {
	ID             string    `gorm:"size:40;primaryKey" json:"id"`
	ReporterID     string    `gorm:"size:40;not null;index" json:"reporter_id"`
	Reporter       User      `gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE" json:"-"`
	ReportedUserID string    `gorm:"size:40;not null;index" json:"reported_user_id"`
	ReportedUser   User      `gorm:"foreignKey:ReportedUserID;constraint:OnDelete:CASCADE" json:"-"`
	Reason         string    `gorm:"size:255;not null" json:"reason"`
	Details        *string   `gorm:"type:text" json:"details,omitempty"`
	Status         string    `gorm:"size:20;not null;index" json:"status"`
	ModeratorID    *string   `gorm:"size:40" json:"moderator_id,omitempty"`
	Moderator      *User     `gorm:"foreignKey:ModeratorID;constraint:OnDelete:SET NULL" json:"-"`
	ModeratorNotes *string   `gorm:"type:text" json:"moderator_notes,omitempty"`
	Resolution     *string   `gorm:"type:text" json:"resolution,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *UserReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = identifier.New(identifier.TagReport)
	}
	return nil
}

type ContentReport struct {
	ID             string    `gorm:"size:40;primaryKey" json:"id"`
	ReporterID     string    `gorm:"size:40;not null;index" json:"reporter_id"`
	Reporter       User      `gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE" json:"-"`
	ContentType    string    `gorm:"size:20;not null;index:idx_content_report_target,priority:1" json:"content_type"`
	ContentID      string    `gorm:"size:40;not null;index:idx_content_report_target,priority:2" json:"content_id"`
	Reason         string    `gorm:"size:255;not null" json:"reason"`
	Details        *string   `gorm:"type:text" json:"details,omitempty"`
	Status         string    `gorm:"size:20;not null;index" json:"status"`
	ModeratorID    *string   `gorm:"size:40" json:"moderator_id,omitempty"`
	Moderator      *User     `gorm:"foreignKey:ModeratorID;constraint:OnDelete:SET NULL" json:"-"`
	ModeratorNotes *string   `gorm:"type:text" json:"moderator_notes,omitempty"`
	Resolution     *string   `gorm:"type:text" json:"resolution,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *ContentReport) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = identifier.New(identifier.TagReport)
	}
	return nil
}
