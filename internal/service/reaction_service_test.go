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

func newReactionService(t *testing.T, db *gorm.DB) ReactionService {
	t.Helper()
	return NewReactionService(
		repository.NewReactionRepository(db),
		repository.NewThreadRepository(db),
		repository.NewCommentRepository(db),
	)
}

func TestReactToThreadIdempotent(t *testing.T) {
	db := newTestDB(t)
	svc := newReactionService(t, db)
	author := seedUser(t, db, "nurse1")
	reactor := seedUser(t, db, "nurse2")
	category := seedCategory(t, db, "بخش عمومی", "general")
	thread := seedThread(t, db, author, category, "تاپیک واکنش")
	ctx := context.Background()

	require.NoError(t, svc.ReactToThread(ctx, thread.ID, reactor.ID, "like"))
	require.NoError(t, svc.ReactToThread(ctx, thread.ID, reactor.ID, "like"))
	require.NoError(t, svc.ReactToThread(ctx, thread.ID, reactor.ID, "helpful"))

	var count int64
	require.NoError(t, db.Model(&entity.ThreadReaction{}).
		Where("thread_id = ?", thread.ID).
		Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestReactToMissingThread(t *testing.T) {
	db := newTestDB(t)
	svc := newReactionService(t, db)
	reactor := seedUser(t, db, "nurse1")

	err := svc.ReactToThread(context.Background(), "thr_missing", reactor.ID, "like")
	assert.True(t, apperror.Is(err, apperror.CodeThreadNotFound))
}

func TestUnreactWithoutReaction(t *testing.T) {
	db := newTestDB(t)
	svc := newReactionService(t, db)
	author := seedUser(t, db, "nurse1")
	reactor := seedUser(t, db, "nurse2")
	category := seedCategory(t, db, "بخش عمومی", "general")
	thread := seedThread(t, db, author, category, "تاپیک بدون واکنش")

	err := svc.UnreactToThread(context.Background(), thread.ID, reactor.ID, "like")
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestCommentReactionRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := newReactionService(t, db)
	commentSvc := newCommentService(t, db)
	author := seedUser(t, db, "nurse1")
	reactor := seedUser(t, db, "nurse2")
	category := seedCategory(t, db, "بخش عمومی", "general")
	thread := seedThread(t, db, author, category, "تاپیک نظر و واکنش")
	ctx := context.Background()

	comment, err := commentSvc.Create(ctx, thread.ID, author.ID, dto.CreateCommentRequest{Content: "نظر قابل واکنش"})
	require.NoError(t, err)

	require.NoError(t, svc.ReactToComment(ctx, comment.ID, reactor.ID, "insightful"))
	require.NoError(t, svc.UnreactToComment(ctx, comment.ID, reactor.ID, "insightful"))

	err = svc.UnreactToComment(ctx, comment.ID, reactor.ID, "insightful")
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}
