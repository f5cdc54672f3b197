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

func newEquipmentReviewTestEnv(t *testing.T) (EquipmentReviewService, func(name string) string) {
	t.Helper()

	db := newTestDB(t)
	svc := NewEquipmentReviewService(repository.NewEquipmentReviewRepository(db))
	seed := func(name string) string {
		return seedUser(t, db, name).ID
	}
	return svc, seed
}

func TestEquipmentReviewCreateRatingOutOfRange(t *testing.T) {
	svc, seed := newEquipmentReviewTestEnv(t)
	author := seed("nurse1")

	_, err := svc.Create(context.Background(), author, dto.CreateEquipmentReviewRequest{
		Name:     "دستگاه فشارسنج",
		Category: "مانیتورینگ",
		Rating:   7,
		Review:   "دقت اندازه‌گیری بسیار خوبی دارد",
	})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestEquipmentReviewFilterByCategoryAndRating(t *testing.T) {
	svc, seed := newEquipmentReviewTestEnv(t)
	author := seed("nurse1")
	ctx := context.Background()

	_, err := svc.Create(ctx, author, dto.CreateEquipmentReviewRequest{
		Name:     "دستگاه فشارسنج",
		Category: "مانیتورینگ",
		Rating:   5,
		Review:   "دقت اندازه‌گیری بسیار خوبی دارد",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, author, dto.CreateEquipmentReviewRequest{
		Name:     "پالس اکسیمتر",
		Category: "مانیتورینگ",
		Rating:   2,
		Review:   "در اندازه‌گیری اشباع اکسیژن خطا دارد",
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, author, dto.CreateEquipmentReviewRequest{
		Name:     "ویلچر استاندارد",
		Category: "جابجایی بیمار",
		Rating:   4,
		Review:   "برای جابجایی روزانه مناسب است",
	})
	require.NoError(t, err)

	reviews, pagination, err := svc.GetAll(ctx, dto.EquipmentReviewFilter{
		Category:  "مانیتورینگ",
		MinRating: 4,
	})
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, "دستگاه فشارسنج", reviews[0].Name)
	assert.Equal(t, int64(1), pagination.Total)
}

func TestEquipmentReviewEditOnlyByAuthorOrAdmin(t *testing.T) {
	svc, seed := newEquipmentReviewTestEnv(t)
	author := seed("nurse1")
	stranger := seed("nurse2")
	ctx := context.Background()

	created, err := svc.Create(ctx, author, dto.CreateEquipmentReviewRequest{
		Name:     "تخت بیمارستانی برقی",
		Category: "بستری",
		Rating:   3,
		Review:   "تنظیم ارتفاع آن گاهی گیر می‌کند",
	})
	require.NoError(t, err)

	newRating := 1
	_, err = svc.Update(ctx, created.ID, stranger, dto.UpdateEquipmentReviewRequest{Rating: &newRating}, false)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))

	updated, err := svc.Update(ctx, created.ID, stranger, dto.UpdateEquipmentReviewRequest{Rating: &newRating}, true)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.Rating)
}

func TestEquipmentReviewUpdateRatingOutOfRange(t *testing.T) {
	svc, seed := newEquipmentReviewTestEnv(t)
	author := seed("nurse1")
	ctx := context.Background()

	created, err := svc.Create(ctx, author, dto.CreateEquipmentReviewRequest{
		Name:     "گلوکومتر",
		Category: "آزمایش",
		Rating:   4,
		Review:   "نتیجه را سریع نشان می‌دهد",
	})
	require.NoError(t, err)

	zero := 0
	_, err = svc.Update(ctx, created.ID, author, dto.UpdateEquipmentReviewRequest{Rating: &zero}, false)
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}
