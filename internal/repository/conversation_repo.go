package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
)

type ConversationRepository interface {
	Create(ctx context.Context, conversation *entity.Conversation, participants []*entity.ConversationParticipant) error
	FindByID(ctx context.Context, id string) (*entity.Conversation, error)
	FindForUser(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.Conversation, int64, error)
	Participant(ctx context.Context, conversationID, userID string) (*entity.ConversationParticipant, error)
	Participants(ctx context.Context, conversationID string) ([]*entity.ConversationParticipant, error)
	MarkLeft(ctx context.Context, conversationID, userID string) error
	SetLastRead(ctx context.Context, conversationID, userID, messageID string) error

	AnonymousIdentity(ctx context.Context, conversationID, userID string) (*entity.AnonymousIdentity, error)
	AnonymousIdentities(ctx context.Context, conversationID string) ([]*entity.AnonymousIdentity, error)
	CreateAnonymousIdentity(ctx context.Context, identity *entity.AnonymousIdentity) error

	CreateMessage(ctx context.Context, message *entity.Message) error
	FindMessage(ctx context.Context, id string) (*entity.Message, error)
	FindMessages(ctx context.Context, conversationID string, page dto.PageQuery) ([]*entity.Message, int64, error)
	UpdateMessage(ctx context.Context, id string, values map[string]any) (*entity.Message, error)
	DeleteMessage(ctx context.Context, id string) error
	TouchLastMessage(ctx context.Context, conversationID string) error
}

type conversationRepository struct {
	db *gorm.DB
}

func NewConversationRepository(db *gorm.DB) ConversationRepository {
	return &conversationRepository{db: db}
}

// Create inserts the conversation and its participant rows in one
// transaction so a failed participant insert never leaves an empty
// conversation behind.
func (r *conversationRepository) Create(ctx context.Context, conversation *entity.Conversation, participants []*entity.ConversationParticipant) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(conversation).Error; err != nil {
			return err
		}
		for _, p := range participants {
			p.ConversationID = conversation.ID
		}
		return tx.Create(&participants).Error
	})
}

func (r *conversationRepository) FindByID(ctx context.Context, id string) (*entity.Conversation, error) {
	var conversation entity.Conversation
	if err := r.db.WithContext(ctx).First(&conversation, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &conversation, nil
}

func (r *conversationRepository) FindForUser(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.Conversation, int64, error) {
	var conversations []*entity.Conversation
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.Conversation{}).
		Joins("JOIN conversation_participants ON conversation_participants.conversation_id = conversations.id").
		Where("conversation_participants.user_id = ? AND conversation_participants.has_left = ?", userID, false)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := page.Normalize()
	if err := query.
		Order("conversations.last_message_at desc").
		Offset(offset).
		Limit(page.Limit).
		Find(&conversations).Error; err != nil {
		return nil, 0, err
	}

	return conversations, total, nil
}

func (r *conversationRepository) Participant(ctx context.Context, conversationID, userID string) (*entity.ConversationParticipant, error) {
	var participant entity.ConversationParticipant
	if err := r.db.WithContext(ctx).
		First(&participant, "conversation_id = ? AND user_id = ?", conversationID, userID).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *conversationRepository) Participants(ctx context.Context, conversationID string) ([]*entity.ConversationParticipant, error) {
	var participants []*entity.ConversationParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("conversation_id = ?", conversationID).
		Find(&participants).Error
	return participants, err
}

func (r *conversationRepository) MarkLeft(ctx context.Context, conversationID, userID string) error {
	return r.db.WithContext(ctx).
		Model(&entity.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Update("has_left", true).Error
}

func (r *conversationRepository) SetLastRead(ctx context.Context, conversationID, userID, messageID string) error {
	return r.db.WithContext(ctx).
		Model(&entity.ConversationParticipant{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Update("last_read_message_id", messageID).Error
}

func (r *conversationRepository) AnonymousIdentity(ctx context.Context, conversationID, userID string) (*entity.AnonymousIdentity, error) {
	var identity entity.AnonymousIdentity
	if err := r.db.WithContext(ctx).
		First(&identity, "conversation_id = ? AND user_id = ?", conversationID, userID).Error; err != nil {
		return nil, err
	}
	return &identity, nil
}

func (r *conversationRepository) AnonymousIdentities(ctx context.Context, conversationID string) ([]*entity.AnonymousIdentity, error) {
	var identities []*entity.AnonymousIdentity
	err := r.db.WithContext(ctx).Where("conversation_id = ?", conversationID).Find(&identities).Error
	return identities, err
}

func (r *conversationRepository) CreateAnonymousIdentity(ctx context.Context, identity *entity.AnonymousIdentity) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(identity).Error
}

func (r *conversationRepository) CreateMessage(ctx context.Context, message *entity.Message) error {
	return r.db.WithContext(ctx).Create(message).Error
}

func (r *conversationRepository) FindMessage(ctx context.Context, id string) (*entity.Message, error) {
	var message entity.Message
	if err := r.db.WithContext(ctx).First(&message, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *conversationRepository) FindMessages(ctx context.Context, conversationID string, page dto.PageQuery) ([]*entity.Message, int64, error) {
	var messages []*entity.Message
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Message{}).Where("conversation_id = ?", conversationID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := page.Normalize()
	if err := query.
		Preload("Sender").
		Order("created_at desc").
		Offset(offset).
		Limit(page.Limit).
		Find(&messages).Error; err != nil {
		return nil, 0, err
	}

	return messages, total, nil
}

func (r *conversationRepository) UpdateMessage(ctx context.Context, id string, values map[string]any) (*entity.Message, error) {
	if err := r.db.WithContext(ctx).Model(&entity.Message{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}
	return r.FindMessage(ctx, id)
}

func (r *conversationRepository) DeleteMessage(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Message{}, "id = ?", id).Error
}

func (r *conversationRepository) TouchLastMessage(ctx context.Context, conversationID string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Conversation{}).
		Where("id = ?", conversationID).
		UpdateColumn("last_message_at", gorm.Expr("CURRENT_TIMESTAMP")).Error
}
