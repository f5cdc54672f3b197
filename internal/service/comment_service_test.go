package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
)

func newCommentService(t *testing.T, db *gorm.DB) CommentService {
	t.Helper()
	return NewCommentService(
		repository.NewCommentRepository(db),
		repository.NewThreadRepository(db),
		repository.NewFollowRepository(db),
		NewNotificationService(repository.NewNotificationRepository(db), nil),
	)
}

func TestCommentCreateOnLockedThread(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(t, db)
	author := seedUser(t, db, "nurse1")
	category := seedCategory(t, db, "بخش عمومی", "general")
	thread := seedThread(t, db, author, category, "تاپیک قفل شده")
	require.NoError(t, db.Model(&entity.Thread{}).Where("id = ?", thread.ID).Update("is_locked", true).Error)

	_, err := svc.Create(context.Background(), thread.ID, author.ID, dto.CreateCommentRequest{
		Content: "نظر روی تاپیک قفل",
	})
	assert.True(t, apperror.Is(err, apperror.CodeForbidden))
}

func TestCommentCreateCrossThreadParent(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(t, db)
	author := seedUser(t, db, "nurse1")
	category := seedCategory(t, db, "بخش عمومی", "general")
	first := seedThread(t, db, author, category, "تاپیک شماره یک")
	second := seedThread(t, db, author, category, "تاپیک شماره دو")
	ctx := context.Background()

	parent, err := svc.Create(ctx, first.ID, author.ID, dto.CreateCommentRequest{Content: "نظر والد"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, second.ID, author.ID, dto.CreateCommentRequest{
		Content:  "پاسخ به نظر تاپیک دیگر",
		ParentID: &parent.ID,
	})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestCommentNotifiesFollowersNotAuthor(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(t, db)
	followSvc := newFollowService(t, db)
	author := seedUser(t, db, "nurse1")
	follower := seedUser(t, db, "nurse2")
	category := seedCategory(t, db, "بخش عمومی", "general")
	thread := seedThread(t, db, author, category, "تاپیک دنبال شده")
	ctx := context.Background()

	require.NoError(t, followSvc.FollowThread(ctx, thread.ID, follower.ID))
	require.NoError(t, followSvc.FollowThread(ctx, thread.ID, author.ID))

	_, err := svc.Create(ctx, thread.ID, author.ID, dto.CreateCommentRequest{
		Content: "نظر جدید نویسنده",
	})
	require.NoError(t, err)

	var followerCount, authorCount int64
	require.NoError(t, db.Model(&entity.Notification{}).
		Where("user_id = ? AND type = ?", follower.ID, entity.NotificationTypeThreadReply).
		Count(&followerCount).Error)
	require.NoError(t, db.Model(&entity.Notification{}).
		Where("user_id = ? AND type = ?", author.ID, entity.NotificationTypeThreadReply).
		Count(&authorCount).Error)

	assert.Equal(t, int64(1), followerCount)
	assert.Equal(t, int64(0), authorCount)
}

func TestCommentUpdateOwnerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newCommentService(t, db)
	author := seedUser(t, db, "nurse1")
	other := seedUser(t, db, "nurse2")
	category := seedCategory(t, db, "بخش عمومی", "general")
	thread := seedThread(t, db, author, category, "تاپیک نظرات")
	ctx := context.Background()

	comment, err := svc.Create(ctx, thread.ID, author.ID, dto.CreateCommentRequest{Content: "نظر اصلی"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, comment.ID, other.ID, dto.UpdateCommentRequest{Content: "ویرایش غیرمجاز"}, false)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))

	updated, err := svc.Update(ctx, comment.ID, other.ID, dto.UpdateCommentRequest{Content: "ویرایش مدیر"}, true)
	require.NoError(t, err)
	assert.True(t, updated.IsEdited)
}
