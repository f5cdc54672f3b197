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

func newFollowService(t *testing.T, db *gorm.DB) FollowService {
	t.Helper()
	return NewFollowService(
		repository.NewFollowRepository(db),
		repository.NewThreadRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewUserRepository(db),
		NewNotificationService(repository.NewNotificationRepository(db), nil),
	)
}

func TestFollowThreadIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(t, db)
	author := seedUser(t, db, "nurse1")
	follower := seedUser(t, db, "nurse2")
	category := seedCategory(t, db, "بخش عمومی", "general")
	thread := seedThread(t, db, author, category, "تاپیک دنبال شدنی")
	ctx := context.Background()

	require.NoError(t, svc.FollowThread(ctx, thread.ID, follower.ID))
	require.NoError(t, svc.FollowThread(ctx, thread.ID, follower.ID))

	var stored entity.Thread
	require.NoError(t, db.First(&stored, "id = ?", thread.ID).Error)
	assert.Equal(t, int64(1), stored.FollowCount)

	require.NoError(t, svc.UnfollowThread(ctx, thread.ID, follower.ID))
	require.NoError(t, db.First(&stored, "id = ?", thread.ID).Error)
	assert.Equal(t, int64(0), stored.FollowCount)
}

func TestFollowThreadMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(t, db)
	follower := seedUser(t, db, "nurse1")

	err := svc.FollowThread(context.Background(), "thr_missing", follower.ID)
	assert.True(t, apperror.Is(err, apperror.CodeThreadNotFound))
}

func TestFollowUserSelf(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(t, db)
	user := seedUser(t, db, "nurse1")

	err := svc.FollowUser(context.Background(), user.ID, user.ID)
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestFollowUserNotifiesOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(t, db)
	followed := seedUser(t, db, "nurse1")
	follower := seedUser(t, db, "nurse2")
	ctx := context.Background()

	require.NoError(t, svc.FollowUser(ctx, followed.ID, follower.ID))
	require.NoError(t, svc.FollowUser(ctx, followed.ID, follower.ID))

	var count int64
	require.NoError(t, db.Model(&entity.Notification{}).
		Where("user_id = ?", followed.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)

	followers, _, err := svc.Followers(ctx, followed.ID, dto.PageQuery{})
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, follower.ID, followers[0].ID)
}

func TestFollowedThreadsList(t *testing.T) {
	db := newTestDB(t)
	svc := newFollowService(t, db)
	author := seedUser(t, db, "nurse1")
	follower := seedUser(t, db, "nurse2")
	category := seedCategory(t, db, "بخش عمومی", "general")
	first := seedThread(t, db, author, category, "تاپیک شماره یک")
	seedThread(t, db, author, category, "تاپیک شماره دو")
	ctx := context.Background()

	require.NoError(t, svc.FollowThread(ctx, first.ID, follower.ID))

	threads, pagination, err := svc.FollowedThreads(ctx, follower.ID, dto.PageQuery{})
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, first.ID, threads[0].ID)
	assert.Equal(t, int64(1), pagination.Total)
}
