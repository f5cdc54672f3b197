package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
)

func strp(s string) *string { return &s }

func TestPolicyUpdateCreateBadDate(t *testing.T) {
	db := newTestDB(t)
	svc := NewPolicyUpdateService(repository.NewPolicyUpdateRepository(db))
	author := seedUser(t, db, "nurse1")

	_, err := svc.Create(context.Background(), author.ID, dto.CreatePolicyUpdateRequest{
		Title:         "آیین‌نامه جدید دارودهی",
		Content:       "متن کامل آیین‌نامه جدید دارودهی",
		EffectiveDate: strp("1404/06/01"),
	})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestPolicyUpdateFilterByHospital(t *testing.T) {
	db := newTestDB(t)
	svc := NewPolicyUpdateService(repository.NewPolicyUpdateRepository(db))
	author := seedUser(t, db, "nurse1")
	ctx := context.Background()

	_, err := svc.Create(ctx, author.ID, dto.CreatePolicyUpdateRequest{
		Title:    "آیین‌نامه بیمارستان امام",
		Content:  "متن کامل آیین‌نامه بیمارستان امام",
		Hospital: strp("بیمارستان امام"),
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, author.ID, dto.CreatePolicyUpdateRequest{
		Title:    "آیین‌نامه بیمارستان شریعتی",
		Content:  "متن کامل آیین‌نامه بیمارستان شریعتی",
		Hospital: strp("بیمارستان شریعتی"),
	})
	require.NoError(t, err)

	updates, pagination, err := svc.GetAll(ctx, dto.PolicyUpdateFilter{Hospital: "بیمارستان امام"})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, "آیین‌نامه بیمارستان امام", updates[0].Title)
	assert.Equal(t, int64(1), pagination.Total)
}

func TestPolicyUpdateEditByStranger(t *testing.T) {
	db := newTestDB(t)
	svc := NewPolicyUpdateService(repository.NewPolicyUpdateRepository(db))
	author := seedUser(t, db, "nurse1")
	stranger := seedUser(t, db, "nurse2")
	ctx := context.Background()

	created, err := svc.Create(ctx, author.ID, dto.CreatePolicyUpdateRequest{
		Title:   "آیین‌نامه شیفت شب",
		Content: "متن کامل آیین‌نامه شیفت شب",
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, created.ID, stranger.ID, dto.UpdatePolicyUpdateRequest{
		Title: strp("عنوان دستکاری شده"),
	}, false)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))

	err = svc.Delete(ctx, created.ID, stranger.ID, false)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))
}

func TestPolicyUpdateAdminCanEdit(t *testing.T) {
	db := newTestDB(t)
	svc := NewPolicyUpdateService(repository.NewPolicyUpdateRepository(db))
	author := seedUser(t, db, "nurse1")
	admin := seedUser(t, db, "headnurse")
	ctx := context.Background()

	created, err := svc.Create(ctx, author.ID, dto.CreatePolicyUpdateRequest{
		Title:   "آیین‌نامه کنترل عفونت",
		Content: "متن کامل آیین‌نامه کنترل عفونت",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, created.ID, admin.ID, dto.UpdatePolicyUpdateRequest{
		Title: strp("آیین‌نامه کنترل عفونت (بازنگری)"),
	}, true)
	require.NoError(t, err)
	assert.Equal(t, "آیین‌نامه کنترل عفونت (بازنگری)", updated.Title)
}

func TestPolicyUpdateGetMissing(t *testing.T) {
	db := newTestDB(t)
	svc := NewPolicyUpdateService(repository.NewPolicyUpdateRepository(db))

	_, err := svc.GetByID(context.Background(), "pol_missing")
	assert.True(t, apperror.Is(err, apperror.CodeNotFound))
}
