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

func newMentorshipService(t *testing.T, db *gorm.DB) MentorshipService {
	t.Helper()
	return NewMentorshipService(
		repository.NewMentorshipRepository(db),
		repository.NewUserRepository(db),
		NewNotificationService(repository.NewNotificationRepository(db), nil),
	)
}

func seedMentor(t *testing.T, db *gorm.DB, username string) *entity.User {
	t.Helper()
	mentor := seedUser(t, db, username)
	require.NoError(t, db.Create(&entity.NurseProfile{
		UserID:              mentor.ID,
		ConsentToMentorship: true,
	}).Error)
	return mentor
}

func TestMentorshipRequestSelf(t *testing.T) {
	db := newTestDB(t)
	svc := newMentorshipService(t, db)
	user := seedMentor(t, db, "nurse1")

	_, err := svc.Request(context.Background(), user.ID, dto.RequestMentorshipRequest{MentorID: user.ID})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestMentorshipRequestWithoutConsent(t *testing.T) {
	db := newTestDB(t)
	svc := newMentorshipService(t, db)
	mentee := seedUser(t, db, "nurse1")
	mentor := seedUser(t, db, "nurse2")

	_, err := svc.Request(context.Background(), mentee.ID, dto.RequestMentorshipRequest{MentorID: mentor.ID})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestMentorshipDuplicateOpenPair(t *testing.T) {
	db := newTestDB(t)
	svc := newMentorshipService(t, db)
	mentee := seedUser(t, db, "nurse1")
	mentor := seedMentor(t, db, "nurse2")
	ctx := context.Background()

	_, err := svc.Request(ctx, mentee.ID, dto.RequestMentorshipRequest{MentorID: mentor.ID})
	require.NoError(t, err)

	_, err = svc.Request(ctx, mentee.ID, dto.RequestMentorshipRequest{MentorID: mentor.ID})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestMentorshipAcceptFlow(t *testing.T) {
	db := newTestDB(t)
	svc := newMentorshipService(t, db)
	mentee := seedUser(t, db, "nurse1")
	mentor := seedMentor(t, db, "nurse2")
	ctx := context.Background()

	requested, err := svc.Request(ctx, mentee.ID, dto.RequestMentorshipRequest{MentorID: mentor.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.MentorshipStatusPending, requested.Status)

	// only the mentor may accept
	_, err = svc.Accept(ctx, requested.ID, mentee.ID)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))

	accepted, err := svc.Accept(ctx, requested.ID, mentor.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MentorshipStatusActive, accepted.Status)
	assert.NotNil(t, accepted.StartDate)

	completed, err := svc.Complete(ctx, requested.ID, mentee.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MentorshipStatusCompleted, completed.Status)
	assert.NotNil(t, completed.EndDate)
}

func TestMentorshipRejectOnlyPending(t *testing.T) {
	db := newTestDB(t)
	svc := newMentorshipService(t, db)
	mentee := seedUser(t, db, "nurse1")
	mentor := seedMentor(t, db, "nurse2")
	ctx := context.Background()

	requested, err := svc.Request(ctx, mentee.ID, dto.RequestMentorshipRequest{MentorID: mentor.ID})
	require.NoError(t, err)

	rejected, err := svc.Reject(ctx, requested.ID, mentor.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.MentorshipStatusRejected, rejected.Status)

	_, err = svc.Reject(ctx, requested.ID, mentor.ID)
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestMentorsListing(t *testing.T) {
	db := newTestDB(t)
	svc := newMentorshipService(t, db)
	seedMentor(t, db, "mentor1")
	seedUser(t, db, "plain1")

	mentors, pagination, err := svc.Mentors(context.Background(), dto.PageQuery{})
	require.NoError(t, err)
	require.Len(t, mentors, 1)
	assert.Equal(t, "mentor1", mentors[0].Username)
	assert.Equal(t, int64(1), pagination.Total)
}
