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

func newResourceTestEnv(t *testing.T) (ResourceService, *gorm.DB) {
	t.Helper()

	db := newTestDB(t)
	svc := NewResourceService(repository.NewResourceRepository(db), repository.NewThreadRepository(db))
	return svc, db
}

func TestResourceMarkMissingThread(t *testing.T) {
	svc, db := newResourceTestEnv(t)
	author := seedUser(t, db, "nurse1")

	_, err := svc.Mark(context.Background(), "thr_missing", author.ID, dto.MarkResourceRequest{Type: "guideline"}, false)
	assert.True(t, apperror.Is(err, apperror.CodeThreadNotFound))
}

func TestResourceMarkByStranger(t *testing.T) {
	svc, db := newResourceTestEnv(t)
	author := seedUser(t, db, "nurse1")
	stranger := seedUser(t, db, "nurse2")
	category := seedCategory(t, db, "آموزش", "education")
	thread := seedThread(t, db, author, category, "پروتکل احیای قلبی ریوی")

	_, err := svc.Mark(context.Background(), thread.ID, stranger.ID, dto.MarkResourceRequest{Type: "guideline"}, false)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))
}

func TestResourceMarkReplacesTags(t *testing.T) {
	svc, db := newResourceTestEnv(t)
	author := seedUser(t, db, "nurse1")
	category := seedCategory(t, db, "آموزش", "education")
	thread := seedThread(t, db, author, category, "پروتکل احیای قلبی ریوی")
	ctx := context.Background()

	view, err := svc.Mark(ctx, thread.ID, author.ID, dto.MarkResourceRequest{
		Type: "guideline",
		Tags: []string{"احیا", "اورژانس", "احیا"},
	}, false)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"احیا", "اورژانس"}, view.Tags)

	view, err = svc.Mark(ctx, thread.ID, author.ID, dto.MarkResourceRequest{
		Type: "checklist",
		Tags: []string{"اورژانس", "آموزش"},
	}, false)
	require.NoError(t, err)
	assert.Equal(t, "checklist", view.Type)
	assert.ElementsMatch(t, []string{"اورژانس", "آموزش"}, view.Tags)

	// re-marking the same thread updates the row instead of adding one
	var count int64
	require.NoError(t, db.Model(&entity.Resource{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestResourceVerify(t *testing.T) {
	svc, db := newResourceTestEnv(t)
	author := seedUser(t, db, "nurse1")
	category := seedCategory(t, db, "آموزش", "education")
	thread := seedThread(t, db, author, category, "راهنمای کنترل عفونت")
	ctx := context.Background()

	_, err := svc.Mark(ctx, thread.ID, author.ID, dto.MarkResourceRequest{Type: "guideline"}, false)
	require.NoError(t, err)

	view, err := svc.Verify(ctx, thread.ID, true)
	require.NoError(t, err)
	assert.True(t, view.IsVerified)

	_, err = svc.Verify(ctx, "thr_missing", true)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}

func TestResourceGetAllFilterByTag(t *testing.T) {
	svc, db := newResourceTestEnv(t)
	author := seedUser(t, db, "nurse1")
	category := seedCategory(t, db, "آموزش", "education")
	first := seedThread(t, db, author, category, "پروتکل احیای قلبی ریوی")
	second := seedThread(t, db, author, category, "راهنمای کنترل عفونت")
	ctx := context.Background()

	_, err := svc.Mark(ctx, first.ID, author.ID, dto.MarkResourceRequest{
		Type: "guideline",
		Tags: []string{"احیا"},
	}, false)
	require.NoError(t, err)
	_, err = svc.Mark(ctx, second.ID, author.ID, dto.MarkResourceRequest{
		Type: "checklist",
		Tags: []string{"عفونت"},
	}, false)
	require.NoError(t, err)

	views, pagination, err := svc.GetAll(ctx, dto.ResourceFilter{Tag: "عفونت"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, second.ID, views[0].ThreadID)
	assert.Equal(t, int64(1), pagination.Total)

	views, _, err = svc.GetAll(ctx, dto.ResourceFilter{Type: "guideline"})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, first.ID, views[0].ThreadID)

	tags, err := svc.Tags(ctx)
	require.NoError(t, err)
	assert.Len(t, tags, 2)
}

func TestResourceUnmark(t *testing.T) {
	svc, db := newResourceTestEnv(t)
	author := seedUser(t, db, "nurse1")
	stranger := seedUser(t, db, "nurse2")
	category := seedCategory(t, db, "آموزش", "education")
	thread := seedThread(t, db, author, category, "پروتکل احیای قلبی ریوی")
	ctx := context.Background()

	_, err := svc.Mark(ctx, thread.ID, author.ID, dto.MarkResourceRequest{
		Type: "guideline",
		Tags: []string{"احیا"},
	}, false)
	require.NoError(t, err)

	err = svc.Unmark(ctx, thread.ID, stranger.ID, false)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))

	require.NoError(t, svc.Unmark(ctx, thread.ID, author.ID, false))

	_, err = svc.GetByThread(ctx, thread.ID)
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))

	var joins int64
	require.NoError(t, db.Model(&entity.ResourceToTag{}).Count(&joins).Error)
	assert.Equal(t, int64(0), joins)
}
