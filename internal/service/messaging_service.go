package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/response"
)

// pseudonymPool seeds stable per-conversation display names for anonymous
// participants. Names repeat with a numeric suffix once the pool runs out.
var pseudonymPool = []string{
	"قاصدک",
	"شقایق",
	"نیلوفر",
	"آفتابگردان",
	"بنفشه",
	"ارکیده",
	"یاس",
	"نرگس",
}

type MessagingService interface {
	CreateConversation(ctx context.Context, creatorID string, req dto.CreateConversationRequest) (*entity.Conversation, error)
	GetConversations(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.Conversation, response.Pagination, error)
	GetConversation(ctx context.Context, id, userID string) (*entity.Conversation, error)
	LeaveConversation(ctx context.Context, id, userID string) error

	SendMessage(ctx context.Context, conversationID, senderID string, req dto.SendMessageRequest) (*dto.MessageView, error)
	GetMessages(ctx context.Context, conversationID, userID string, page dto.PageQuery) ([]dto.MessageView, response.Pagination, error)
	EditMessage(ctx context.Context, messageID, userID string, req dto.SendMessageRequest) (*entity.Message, error)
	DeleteMessage(ctx context.Context, messageID, userID string) error
	MarkRead(ctx context.Context, conversationID, userID, messageID string) error
}

type messagingService struct {
	repo          repository.ConversationRepository
	userRepo      repository.UserRepository
	notifications NotificationService
}

func NewMessagingService(
	repo repository.ConversationRepository,
	userRepo repository.UserRepository,
	notifications NotificationService,
) MessagingService {
	return &messagingService{
		repo:          repo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *messagingService) CreateConversation(ctx context.Context, creatorID string, req dto.CreateConversationRequest) (*entity.Conversation, error) {
	memberIDs := map[string]bool{creatorID: true}
	for _, id := range req.ParticipantIDs {
		if _, err := s.userRepo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperror.New(apperror.CodeUserNotFound)
			}
			return nil, apperror.Wrap(apperror.CodeInternal, err)
		}
		memberIDs[id] = true
	}

	if !req.IsGroup && len(memberIDs) != 2 {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	conversation := &entity.Conversation{
		Title:       req.Title,
		IsGroup:     req.IsGroup,
		IsAnonymous: req.IsAnonymous,
		SupportType: req.SupportType,
		CreatedByID: creatorID,
	}

	var participants []*entity.ConversationParticipant
	for id := range memberIDs {
		participants = append(participants, &entity.ConversationParticipant{
			UserID:  id,
			IsAdmin: id == creatorID,
		})
	}

	if err := s.repo.Create(ctx, conversation, participants); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	if req.IsAnonymous {
		if err := s.assignPseudonyms(ctx, conversation.ID, participants); err != nil {
			return nil, err
		}
	}

	return conversation, nil
}

// assignPseudonyms gives every participant a pseudonym that stays fixed for
// the life of the conversation.
func (s *messagingService) assignPseudonyms(ctx context.Context, conversationID string, participants []*entity.ConversationParticipant) error {
	for i, p := range participants {
		name := pseudonymPool[i%len(pseudonymPool)]
		if i >= len(pseudonymPool) {
			name = fmt.Sprintf("%s %d", name, i/len(pseudonymPool)+1)
		}
		identity := &entity.AnonymousIdentity{
			ConversationID: conversationID,
			UserID:         p.UserID,
			Pseudonym:      name,
		}
		if err := s.repo.CreateAnonymousIdentity(ctx, identity); err != nil {
			return apperror.Wrap(apperror.CodeInternal, err)
		}
	}
	return nil
}

func (s *messagingService) GetConversations(ctx context.Context, userID string, page dto.PageQuery) ([]*entity.Conversation, response.Pagination, error) {
	page.Normalize()
	conversations, total, err := s.repo.FindForUser(ctx, userID, page)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return conversations, response.NewPagination(page.Page, page.Limit, total), nil
}

func (s *messagingService) GetConversation(ctx context.Context, id, userID string) (*entity.Conversation, error) {
	conversation, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	if _, err := s.activeParticipant(ctx, id, userID); err != nil {
		return nil, err
	}
	return conversation, nil
}

func (s *messagingService) LeaveConversation(ctx context.Context, id, userID string) error {
	if _, err := s.activeParticipant(ctx, id, userID); err != nil {
		return err
	}
	if err := s.repo.MarkLeft(ctx, id, userID); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *messagingService) SendMessage(ctx context.Context, conversationID, senderID string, req dto.SendMessageRequest) (*dto.MessageView, error) {
	conversation, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	if _, err := s.activeParticipant(ctx, conversationID, senderID); err != nil {
		return nil, err
	}

	message := &entity.Message{
		Content:        sanitizeContent(req.Content),
		ConversationID: conversationID,
		SenderID:       senderID,
	}

	if err := s.repo.CreateMessage(ctx, message); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	if err := s.repo.TouchLastMessage(ctx, conversationID); err != nil {
		log.Printf("failed to bump conversation %s: %v", conversationID, err)
	}

	senderName, err := s.displayName(ctx, conversation, senderID)
	if err != nil {
		return nil, err
	}

	s.notifyParticipants(ctx, conversation, senderID, senderName)

	view := toMessageView(message, senderName, conversation.IsAnonymous)
	return &view, nil
}

func (s *messagingService) notifyParticipants(ctx context.Context, conversation *entity.Conversation, senderID, senderName string) {
	participants, err := s.repo.Participants(ctx, conversation.ID)
	if err != nil {
		log.Printf("failed to load participants of %s: %v", conversation.ID, err)
		return
	}

	var notifications []*entity.Notification
	for _, p := range participants {
		if p.UserID == senderID || p.HasLeft {
			continue
		}
		convID := conversation.ID
		notifications = append(notifications, &entity.Notification{
			UserID:    p.UserID,
			Type:      entity.NotificationTypeMessage,
			Title:     "پیام جدیدی از " + senderName + " دریافت کردید",
			RelatedID: &convID,
		})
	}

	if err := s.notifications.NotifyMany(ctx, notifications); err != nil {
		log.Printf("failed to notify participants of %s: %v", conversation.ID, err)
	}
}

func (s *messagingService) GetMessages(ctx context.Context, conversationID, userID string, page dto.PageQuery) ([]dto.MessageView, response.Pagination, error) {
	conversation, err := s.repo.FindByID(ctx, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.Pagination{}, apperror.New(apperror.CodeNotFound)
		}
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}

	if _, err := s.activeParticipant(ctx, conversationID, userID); err != nil {
		return nil, response.Pagination{}, err
	}

	page.Normalize()
	messages, total, err := s.repo.FindMessages(ctx, conversationID, page)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}

	var pseudonyms map[string]string
	if conversation.IsAnonymous {
		identities, err := s.repo.AnonymousIdentities(ctx, conversationID)
		if err != nil {
			return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
		}
		pseudonyms = make(map[string]string, len(identities))
		for _, id := range identities {
			pseudonyms[id.UserID] = id.Pseudonym
		}
	}

	views := make([]dto.MessageView, 0, len(messages))
	for _, m := range messages {
		name := m.Sender.Username
		if conversation.IsAnonymous {
			name = pseudonyms[m.SenderID]
		}
		views = append(views, toMessageView(m, name, conversation.IsAnonymous))
	}

	return views, response.NewPagination(page.Page, page.Limit, total), nil
}

func (s *messagingService) EditMessage(ctx context.Context, messageID, userID string, req dto.SendMessageRequest) (*entity.Message, error) {
	message, err := s.repo.FindMessage(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	if message.SenderID != userID {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}

	updated, err := s.repo.UpdateMessage(ctx, messageID, map[string]any{
		"content":   sanitizeContent(req.Content),
		"is_edited": true,
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return updated, nil
}

func (s *messagingService) DeleteMessage(ctx context.Context, messageID, userID string) error {
	message, err := s.repo.FindMessage(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	if message.SenderID != userID {
		return apperror.New(apperror.CodePermissionDenied)
	}

	if err := s.repo.DeleteMessage(ctx, messageID); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *messagingService) MarkRead(ctx context.Context, conversationID, userID, messageID string) error {
	if _, err := s.activeParticipant(ctx, conversationID, userID); err != nil {
		return err
	}

	message, err := s.repo.FindMessage(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if message.ConversationID != conversationID {
		return apperror.New(apperror.CodeBadRequest)
	}

	if err := s.repo.SetLastRead(ctx, conversationID, userID, messageID); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *messagingService) activeParticipant(ctx context.Context, conversationID, userID string) (*entity.ConversationParticipant, error) {
	participant, err := s.repo.Participant(ctx, conversationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeForbidden)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if participant.HasLeft {
		return nil, apperror.New(apperror.CodeForbidden)
	}
	return participant, nil
}

func (s *messagingService) displayName(ctx context.Context, conversation *entity.Conversation, userID string) (string, error) {
	if conversation.IsAnonymous {
		identity, err := s.repo.AnonymousIdentity(ctx, conversation.ID, userID)
		if err == nil {
			return identity.Pseudonym, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperror.Wrap(apperror.CodeInternal, err)
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", apperror.Wrap(apperror.CodeInternal, err)
	}
	return user.Username, nil
}

// toMessageView hides the real sender ID in anonymous conversations.
func toMessageView(m *entity.Message, senderName string, anonymous bool) dto.MessageView {
	view := dto.MessageView{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		Content:        m.Content,
		SenderName:     senderName,
		IsEdited:       m.IsEdited,
		CreatedAt:      m.CreatedAt,
	}
	if !anonymous {
		senderID := m.SenderID
		view.SenderID = &senderID
	}
	return view
}
