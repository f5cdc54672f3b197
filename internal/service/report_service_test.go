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
	"parastaran.ir/nursesforum/pkg/identifier"
)

func newReportService(t *testing.T, db *gorm.DB) ReportService {
	t.Helper()
	return NewReportService(
		repository.NewReportRepository(db),
		repository.NewUserRepository(db),
	)
}

func TestReportUserSelf(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(t, db)
	user := seedUser(t, db, "nurse1")

	_, err := svc.ReportUser(context.Background(), user.ID, dto.ReportUserRequest{
		ReportedUserID: user.ID,
		Reason:         "گزارش خود",
	})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestReportUserUnknownTarget(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(t, db)
	reporter := seedUser(t, db, "nurse1")

	_, err := svc.ReportUser(context.Background(), reporter.ID, dto.ReportUserRequest{
		ReportedUserID: "usr_missing",
		Reason:         "رفتار نامناسب",
	})
	assert.True(t, apperror.Is(err, apperror.CodeUserNotFound))
}

func TestReportContentBadReference(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(t, db)
	reporter := seedUser(t, db, "nurse1")
	ctx := context.Background()

	_, err := svc.ReportContent(ctx, reporter.ID, dto.ReportContentRequest{
		ContentType: "user",
		ContentID:   identifier.New(identifier.TagUser),
		Reason:      "نوع نامعتبر",
	})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))

	_, err = svc.ReportContent(ctx, reporter.ID, dto.ReportContentRequest{
		ContentType: "thread",
		ContentID:   identifier.New(identifier.TagComment),
		Reason:      "شناسه ناسازگار",
	})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestReportReviewFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(t, db)
	reporter := seedUser(t, db, "nurse1")
	reported := seedUser(t, db, "nurse2")
	moderator := seedUser(t, db, "headnurse")
	ctx := context.Background()

	report, err := svc.ReportUser(ctx, reporter.ID, dto.ReportUserRequest{
		ReportedUserID: reported.ID,
		Reason:         "رفتار نامناسب در پیام خصوصی",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusPending, report.Status)

	resolution := "اخطار داده شد"
	reviewed, err := svc.ReviewUserReport(ctx, report.ID, moderator.ID, dto.ReviewReportRequest{
		Status:     entity.ReportStatusActionTaken,
		Resolution: &resolution,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.ReportStatusActionTaken, reviewed.Status)
	require.NotNil(t, reviewed.ModeratorID)
	assert.Equal(t, moderator.ID, *reviewed.ModeratorID)

	// a report can be reviewed once
	_, err = svc.ReviewUserReport(ctx, report.ID, moderator.ID, dto.ReviewReportRequest{
		Status: entity.ReportStatusDismissed,
	})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestReportListingFilter(t *testing.T) {
	db := newTestDB(t)
	svc := newReportService(t, db)
	reporter := seedUser(t, db, "nurse1")
	first := seedUser(t, db, "nurse2")
	second := seedUser(t, db, "nurse3")
	moderator := seedUser(t, db, "headnurse")
	ctx := context.Background()

	report, err := svc.ReportUser(ctx, reporter.ID, dto.ReportUserRequest{ReportedUserID: first.ID, Reason: "دلیل اول"})
	require.NoError(t, err)
	_, err = svc.ReportUser(ctx, reporter.ID, dto.ReportUserRequest{ReportedUserID: second.ID, Reason: "دلیل دوم"})
	require.NoError(t, err)

	_, err = svc.ReviewUserReport(ctx, report.ID, moderator.ID, dto.ReviewReportRequest{Status: entity.ReportStatusDismissed})
	require.NoError(t, err)

	pending, pagination, err := svc.UserReports(ctx, dto.ReportFilter{Status: entity.ReportStatusPending})
	require.NoError(t, err)
	assert.Len(t, pending, 1)
	assert.Equal(t, int64(1), pagination.Total)
}
