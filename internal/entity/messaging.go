package entity

import (
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/pkg/identifier"
)

type Conversation struct {
	ID            string    `gorm:"size:40;primaryKey" json:"id"`
	Title         *string   `gorm:"size:150" json:"title,omitempty"`
	IsGroup       bool      `gorm:"default:false" json:"is_group"`
	IsAnonymous   bool      `gorm:"default:false;index" json:"is_anonymous"`
	SupportType   *string   `gorm:"size:50" json:"support_type,omitempty"`
	CreatedByID   string    `gorm:"size:40;not null;index" json:"created_by_id"`
	CreatedBy     User      `gorm:"foreignKey:CreatedByID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	LastMessageAt time.Time `gorm:"index;not null" json:"last_message_at"`
}

func (c *Conversation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = identifier.New(identifier.TagConversation)
	}
	if c.LastMessageAt.IsZero() {
		c.LastMessageAt = time.Now()
	}
	return nil
}

type ConversationParticipant struct {
	ConversationID    string       `gorm:"size:40;primaryKey" json:"conversation_id"`
	Conversation      Conversation `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID            string       `gorm:"size:40;primaryKey" json:"user_id"`
	User              User         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	IsAdmin           bool         `gorm:"default:false" json:"is_admin"`
	HasLeft           bool         `gorm:"default:false" json:"has_left"`
	LastReadMessageID *string      `gorm:"size:40" json:"last_read_message_id,omitempty"`
}

// AnonymousIdentity gives a participant a stable pseudonym inside one
// anonymous conversation.
type AnonymousIdentity struct {
	ConversationID string       `gorm:"size:40;primaryKey" json:"conversation_id"`
	Conversation   Conversation `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID         string       `gorm:"size:40;primaryKey" json:"user_id"`
	User           User         `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Pseudonym      string       `gorm:"size:60;not null" json:"pseudonym"`
	AvatarSeed     *string      `gorm:"size:60" json:"avatar_seed,omitempty"`
	CreatedAt      time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

type Message struct {
	ID             string       `gorm:"size:40;primaryKey" json:"id"`
	Content        string       `gorm:"type:text;not null" json:"content"`
	ConversationID string       `gorm:"size:40;not null;index" json:"conversation_id"`
	Conversation   Conversation `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	SenderID       string       `gorm:"size:40;not null;index" json:"sender_id"`
	Sender         User         `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"sender,omitempty"`
	HasAttachments bool         `gorm:"default:false" json:"has_attachments"`
	IsEdited       bool         `gorm:"default:false" json:"is_edited"`
	CreatedAt      time.Time    `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"autoUpdateTime" json:"updated_at"`
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = identifier.New(identifier.TagMessage)
	}
	return nil
}
