package dto

import "time"

type EventFilter struct {
	PageQuery
	Type         string `form:"type"`
	UpcomingOnly bool   `form:"upcomingOnly"`
}

type CreateEventRequest struct {
	Title           string    `json:"title" binding:"required,min=3,max=255"`
	Description     *string   `json:"description"`
	Location        *string   `json:"location"`
	StartDateTime   time.Time `json:"startDateTime" binding:"required"`
	EndDateTime     time.Time `json:"endDateTime" binding:"required"`
	Type            string    `json:"type" binding:"required"`
	IsOnline        bool      `json:"isOnline"`
	MeetingURL      *string   `json:"meetingUrl"`
	MaxParticipants *int      `json:"maxParticipants"`
}

type UpdateEventRequest struct {
	Title           *string    `json:"title" binding:"omitempty,min=3,max=255"`
	Description     *string    `json:"description"`
	Location        *string    `json:"location"`
	StartDateTime   *time.Time `json:"startDateTime"`
	EndDateTime     *time.Time `json:"endDateTime"`
	Type            *string    `json:"type"`
	IsOnline        *bool      `json:"isOnline"`
	MeetingURL      *string    `json:"meetingUrl"`
	MaxParticipants *int       `json:"maxParticipants"`
}
