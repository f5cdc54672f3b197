package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
)

func newShiftService(t *testing.T, db *gorm.DB) ShiftService {
	t.Helper()
	return NewShiftService(
		repository.NewShiftRepository(db),
		NewNotificationService(repository.NewNotificationRepository(db), nil),
	)
}

func createOpenShift(t *testing.T, svc ShiftService, ownerID string, date time.Time) *entity.Shift {
	t.Helper()
	shift, err := svc.Create(context.Background(), ownerID, dto.CreateShiftRequest{
		Date:       date.Format("2006-01-02"),
		StartTime:  "07:00",
		EndTime:    "19:00",
		Location:   "بیمارستان امام",
		Department: "اورژانس",
		Type:       entity.ShiftTypeOffering,
	})
	require.NoError(t, err)
	return shift
}

func TestShiftCreateBadDate(t *testing.T) {
	db := newTestDB(t)
	svc := newShiftService(t, db)
	owner := seedUser(t, db, "nurse1")

	_, err := svc.Create(context.Background(), owner.ID, dto.CreateShiftRequest{
		Date:       "1404/06/01",
		StartTime:  "07:00",
		EndTime:    "19:00",
		Location:   "بیمارستان امام",
		Department: "اورژانس",
		Type:       entity.ShiftTypeOffering,
	})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestShiftApplyOwnShift(t *testing.T) {
	db := newTestDB(t)
	svc := newShiftService(t, db)
	owner := seedUser(t, db, "nurse1")
	shift := createOpenShift(t, svc, owner.ID, time.Now().AddDate(0, 0, 7))

	_, err := svc.Apply(context.Background(), shift.ID, owner.ID, dto.ApplyShiftRequest{})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestShiftApplyTwice(t *testing.T) {
	db := newTestDB(t)
	svc := newShiftService(t, db)
	owner := seedUser(t, db, "nurse1")
	applicant := seedUser(t, db, "nurse2")
	shift := createOpenShift(t, svc, owner.ID, time.Now().AddDate(0, 0, 7))
	ctx := context.Background()

	_, err := svc.Apply(ctx, shift.ID, applicant.ID, dto.ApplyShiftRequest{})
	require.NoError(t, err)

	_, err = svc.Apply(ctx, shift.ID, applicant.ID, dto.ApplyShiftRequest{})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestShiftReviewAcceptRejectsOthers(t *testing.T) {
	db := newTestDB(t)
	svc := newShiftService(t, db)
	owner := seedUser(t, db, "nurse1")
	first := seedUser(t, db, "nurse2")
	second := seedUser(t, db, "nurse3")
	shift := createOpenShift(t, svc, owner.ID, time.Now().AddDate(0, 0, 7))
	ctx := context.Background()

	firstApp, err := svc.Apply(ctx, shift.ID, first.ID, dto.ApplyShiftRequest{})
	require.NoError(t, err)
	secondApp, err := svc.Apply(ctx, shift.ID, second.ID, dto.ApplyShiftRequest{})
	require.NoError(t, err)

	accepted, err := svc.ReviewApplication(ctx, firstApp.ID, owner.ID, dto.ReviewApplicationRequest{
		Status: entity.ApplicationStatusAccepted,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ApplicationStatusAccepted, accepted.Status)

	updatedShift, err := svc.GetByID(ctx, shift.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftStatusFilled, updatedShift.Status)

	var rejected entity.ShiftApplication
	require.NoError(t, db.First(&rejected, "id = ?", secondApp.ID).Error)
	assert.Equal(t, entity.ApplicationStatusRejected, rejected.Status)
}

func TestShiftReviewNotOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newShiftService(t, db)
	owner := seedUser(t, db, "nurse1")
	applicant := seedUser(t, db, "nurse2")
	stranger := seedUser(t, db, "nurse3")
	shift := createOpenShift(t, svc, owner.ID, time.Now().AddDate(0, 0, 7))
	ctx := context.Background()

	application, err := svc.Apply(ctx, shift.ID, applicant.ID, dto.ApplyShiftRequest{})
	require.NoError(t, err)

	_, err = svc.ReviewApplication(ctx, application.ID, stranger.ID, dto.ReviewApplicationRequest{
		Status: entity.ApplicationStatusAccepted,
	})
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))
}

func TestShiftCancelThenApply(t *testing.T) {
	db := newTestDB(t)
	svc := newShiftService(t, db)
	owner := seedUser(t, db, "nurse1")
	applicant := seedUser(t, db, "nurse2")
	shift := createOpenShift(t, svc, owner.ID, time.Now().AddDate(0, 0, 7))
	ctx := context.Background()

	canceled, err := svc.Cancel(ctx, shift.ID, owner.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftStatusCanceled, canceled.Status)

	_, err = svc.Apply(ctx, shift.ID, applicant.ID, dto.ApplyShiftRequest{})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestExpireOpenShifts(t *testing.T) {
	db := newTestDB(t)
	svc := newShiftService(t, db)
	owner := seedUser(t, db, "nurse1")
	ctx := context.Background()

	past := createOpenShift(t, svc, owner.ID, time.Now().AddDate(0, 0, -3))
	future := createOpenShift(t, svc, owner.ID, time.Now().AddDate(0, 0, 3))

	expired, err := svc.ExpireOpenShifts(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), expired)

	pastShift, err := svc.GetByID(ctx, past.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftStatusExpired, pastShift.Status)

	futureShift, err := svc.GetByID(ctx, future.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftStatusOpen, futureShift.Status)
}
