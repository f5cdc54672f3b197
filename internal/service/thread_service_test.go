package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
)

func newThreadService(t *testing.T, db *gorm.DB, rdb *redis.Client, limit time.Duration) ThreadService {
	t.Helper()
	return NewThreadService(
		repository.NewThreadRepository(db),
		repository.NewCategoryRepository(db),
		rdb,
		NewSearchService(nil),
		limit,
	)
}

func TestThreadCreateUnknownCategory(t *testing.T) {
	db := newTestDB(t)
	svc := newThreadService(t, db, nil, 0)
	author := seedUser(t, db, "nurse1")

	_, err := svc.Create(context.Background(), author.ID, dto.CreateThreadRequest{
		Title:      "تاپیک بدون دسته",
		Content:    "محتوای این تاپیک کافی است",
		CategoryID: "cat_missing",
	})
	assert.True(t, apperror.Is(err, apperror.CodeCategoryNotFound))
}

func TestThreadCreateSanitizesContent(t *testing.T) {
	db := newTestDB(t)
	svc := newThreadService(t, db, nil, 0)
	author := seedUser(t, db, "nurse1")
	category := seedCategory(t, db, "بخش عمومی", "general")

	thread, err := svc.Create(context.Background(), author.ID, dto.CreateThreadRequest{
		Title:      "تاپیک با محتوای ناامن",
		Content:    `<p>سلام</p><script>alert("x")</script>`,
		CategoryID: category.ID,
	})
	require.NoError(t, err)
	assert.NotContains(t, thread.Content, "<script>")
	assert.Contains(t, thread.Content, "سلام")
}

func TestThreadCreateRateLimited(t *testing.T) {
	db := newTestDB(t)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	svc := newThreadService(t, db, rdb, time.Minute)

	author := seedUser(t, db, "nurse1")
	category := seedCategory(t, db, "بخش عمومی", "general")
	ctx := context.Background()

	_, err := svc.Create(ctx, author.ID, dto.CreateThreadRequest{
		Title:      "اولین تاپیک کاربر",
		Content:    "محتوای اولین تاپیک کاربر",
		CategoryID: category.ID,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, author.ID, dto.CreateThreadRequest{
		Title:      "دومین تاپیک کاربر",
		Content:    "محتوای دومین تاپیک کاربر",
		CategoryID: category.ID,
	})
	assert.True(t, apperror.Is(err, apperror.CodeRateLimitExceeded))

	mr.FastForward(time.Minute)
	_, err = svc.Create(ctx, author.ID, dto.CreateThreadRequest{
		Title:      "سومین تاپیک کاربر",
		Content:    "محتوای سومین تاپیک کاربر",
		CategoryID: category.ID,
	})
	require.NoError(t, err)
}

func TestThreadGetByIDIncrementsViews(t *testing.T) {
	db := newTestDB(t)
	svc := newThreadService(t, db, nil, 0)

	author := seedUser(t, db, "nurse1")
	category := seedCategory(t, db, "بخش عمومی", "general")
	thread := seedThread(t, db, author, category, "تاپیک پربازدید")
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.GetByID(ctx, thread.ID)
		require.NoError(t, err)
	}

	detail, err := svc.GetByID(ctx, thread.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(4), detail.ViewCount)
}

func TestThreadGetByIDNotFound(t *testing.T) {
	db := newTestDB(t)
	svc := newThreadService(t, db, nil, 0)

	_, err := svc.GetByID(context.Background(), "thr_missing")
	assert.True(t, apperror.Is(err, apperror.CodeThreadNotFound))
}

func TestThreadUpdatePinRequiresAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newThreadService(t, db, nil, 0)

	author := seedUser(t, db, "nurse1")
	category := seedCategory(t, db, "بخش عمومی", "general")
	thread := seedThread(t, db, author, category, "تاپیک معمولی")

	pinned := true
	_, err := svc.Update(context.Background(), thread.ID, dto.UpdateThreadRequest{IsPinned: &pinned}, false)
	assert.True(t, apperror.Is(err, apperror.CodeAdminRequired))
}

func TestThreadTogglePinTwiceRestores(t *testing.T) {
	db := newTestDB(t)
	svc := newThreadService(t, db, nil, 0)

	author := seedUser(t, db, "nurse1")
	category := seedCategory(t, db, "بخش عمومی", "general")
	thread := seedThread(t, db, author, category, "تاپیک سنجاق شدنی")
	ctx := context.Background()

	first, err := svc.TogglePin(ctx, thread.ID)
	require.NoError(t, err)
	assert.True(t, first.IsPinned)

	second, err := svc.TogglePin(ctx, thread.ID)
	require.NoError(t, err)
	assert.False(t, second.IsPinned)
}

func TestThreadUpdateMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newThreadService(t, db, nil, 0)

	title := "عنوان تازه"
	_, err := svc.Update(context.Background(), "thr_missing", dto.UpdateThreadRequest{Title: &title}, true)
	assert.True(t, apperror.Is(err, apperror.CodeThreadNotFound))
}

func TestThreadDeleteMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newThreadService(t, db, nil, 0)

	err := svc.Delete(context.Background(), "thr_missing")
	assert.True(t, apperror.Is(err, apperror.CodeThreadNotFound))
}

func TestThreadToggleLockMissing(t *testing.T) {
	db := newTestDB(t)
	svc := newThreadService(t, db, nil, 0)

	_, err := svc.ToggleLock(context.Background(), "thr_missing")
	assert.True(t, apperror.Is(err, apperror.CodeThreadNotFound))
}
