package dto

import "time"

type CreateConversationRequest struct {
	Title          *string  `json:"title"`
	IsGroup        bool     `json:"isGroup"`
	IsAnonymous    bool     `json:"isAnonymous"`
	SupportType    *string  `json:"supportType"`
	ParticipantIDs []string `json:"participantIds" binding:"required,min=1"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required,min=1"`
}

// MessageView substitutes the sender's pseudonym in anonymous conversations.
type MessageView struct {
	ID             string    `json:"id"`
	ConversationID string    `json:"conversation_id"`
	Content        string    `json:"content"`
	SenderID       *string   `json:"sender_id,omitempty"`
	SenderName     string    `json:"sender_name"`
	IsEdited       bool      `json:"is_edited"`
	CreatedAt      time.Time `json:"created_at"`
}
