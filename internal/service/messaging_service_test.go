package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
)

func newMessagingService(t *testing.T, db *gorm.DB) MessagingService {
	t.Helper()
	return NewMessagingService(
		repository.NewConversationRepository(db),
		repository.NewUserRepository(db),
		NewNotificationService(repository.NewNotificationRepository(db), nil),
	)
}

func TestCreateConversationUnknownParticipant(t *testing.T) {
	db := newTestDB(t)
	svc := newMessagingService(t, db)
	creator := seedUser(t, db, "nurse1")

	_, err := svc.CreateConversation(context.Background(), creator.ID, dto.CreateConversationRequest{
		ParticipantIDs: []string{"usr_missing"},
	})
	assert.True(t, apperror.Is(err, apperror.CodeUserNotFound))
}

func TestCreateConversationDirectNeedsTwoMembers(t *testing.T) {
	db := newTestDB(t)
	svc := newMessagingService(t, db)
	creator := seedUser(t, db, "nurse1")
	second := seedUser(t, db, "nurse2")
	third := seedUser(t, db, "nurse3")

	_, err := svc.CreateConversation(context.Background(), creator.ID, dto.CreateConversationRequest{
		IsGroup:        false,
		ParticipantIDs: []string{second.ID, third.ID},
	})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestAnonymousConversationHidesSender(t *testing.T) {
	db := newTestDB(t)
	svc := newMessagingService(t, db)
	creator := seedUser(t, db, "nurse1")
	peer := seedUser(t, db, "nurse2")
	ctx := context.Background()

	conversation, err := svc.CreateConversation(ctx, creator.ID, dto.CreateConversationRequest{
		IsAnonymous:    true,
		ParticipantIDs: []string{peer.ID},
	})
	require.NoError(t, err)

	sent, err := svc.SendMessage(ctx, conversation.ID, creator.ID, dto.SendMessageRequest{
		Content: "سلام، به کمک نیاز دارم",
	})
	require.NoError(t, err)
	assert.Nil(t, sent.SenderID)
	assert.NotEqual(t, "nurse1", sent.SenderName)
	assert.NotEmpty(t, sent.SenderName)
}

func TestAnonymousPseudonymStable(t *testing.T) {
	db := newTestDB(t)
	svc := newMessagingService(t, db)
	creator := seedUser(t, db, "nurse1")
	peer := seedUser(t, db, "nurse2")
	ctx := context.Background()

	conversation, err := svc.CreateConversation(ctx, creator.ID, dto.CreateConversationRequest{
		IsAnonymous:    true,
		ParticipantIDs: []string{peer.ID},
	})
	require.NoError(t, err)

	first, err := svc.SendMessage(ctx, conversation.ID, creator.ID, dto.SendMessageRequest{Content: "پیام اول"})
	require.NoError(t, err)
	second, err := svc.SendMessage(ctx, conversation.ID, creator.ID, dto.SendMessageRequest{Content: "پیام دوم"})
	require.NoError(t, err)
	assert.Equal(t, first.SenderName, second.SenderName)

	messages, _, err := svc.GetMessages(ctx, conversation.ID, peer.ID, dto.PageQuery{})
	require.NoError(t, err)
	require.Len(t, messages, 2)
	for _, m := range messages {
		assert.Equal(t, first.SenderName, m.SenderName)
		assert.Nil(t, m.SenderID)
	}
}

func TestSendMessageAfterLeaving(t *testing.T) {
	db := newTestDB(t)
	svc := newMessagingService(t, db)
	creator := seedUser(t, db, "nurse1")
	peer := seedUser(t, db, "nurse2")
	ctx := context.Background()

	conversation, err := svc.CreateConversation(ctx, creator.ID, dto.CreateConversationRequest{
		ParticipantIDs: []string{peer.ID},
	})
	require.NoError(t, err)

	require.NoError(t, svc.LeaveConversation(ctx, conversation.ID, peer.ID))

	_, err = svc.SendMessage(ctx, conversation.ID, peer.ID, dto.SendMessageRequest{Content: "پیام بعد از خروج"})
	assert.True(t, apperror.Is(err, apperror.CodeForbidden))
}

func TestEditMessageOnlySender(t *testing.T) {
	db := newTestDB(t)
	svc := newMessagingService(t, db)
	creator := seedUser(t, db, "nurse1")
	peer := seedUser(t, db, "nurse2")
	ctx := context.Background()

	conversation, err := svc.CreateConversation(ctx, creator.ID, dto.CreateConversationRequest{
		ParticipantIDs: []string{peer.ID},
	})
	require.NoError(t, err)

	sent, err := svc.SendMessage(ctx, conversation.ID, creator.ID, dto.SendMessageRequest{Content: "پیام اصلی"})
	require.NoError(t, err)

	_, err = svc.EditMessage(ctx, sent.ID, peer.ID, dto.SendMessageRequest{Content: "ویرایش غیرمجاز"})
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))

	edited, err := svc.EditMessage(ctx, sent.ID, creator.ID, dto.SendMessageRequest{Content: "پیام ویرایش شده"})
	require.NoError(t, err)
	assert.True(t, edited.IsEdited)
}
