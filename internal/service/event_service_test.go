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

func newEventService(t *testing.T, db *gorm.DB) EventService {
	t.Helper()
	return NewEventService(repository.NewEventRepository(db))
}

func createEvent(t *testing.T, svc EventService, organizerID string, maxParticipants *int) *entity.Event {
	t.Helper()
	start := time.Now().AddDate(0, 0, 14)
	event, err := svc.Create(context.Background(), organizerID, dto.CreateEventRequest{
		Title:           "کارگاه احیای قلبی ریوی",
		StartDateTime:   start,
		EndDateTime:     start.Add(4 * time.Hour),
		Type:            "workshop",
		MaxParticipants: maxParticipants,
	})
	require.NoError(t, err)
	return event
}

func TestEventCreateEndBeforeStart(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(t, db)
	organizer := seedUser(t, db, "nurse1")
	start := time.Now().AddDate(0, 0, 14)

	_, err := svc.Create(context.Background(), organizer.ID, dto.CreateEventRequest{
		Title:         "کارگاه نامعتبر",
		StartDateTime: start,
		EndDateTime:   start.Add(-time.Hour),
		Type:          "workshop",
	})
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestEventRegisterCapacity(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(t, db)
	organizer := seedUser(t, db, "nurse1")
	first := seedUser(t, db, "nurse2")
	second := seedUser(t, db, "nurse3")
	ctx := context.Background()

	capacity := 1
	event := createEvent(t, svc, organizer.ID, &capacity)

	require.NoError(t, svc.Register(ctx, event.ID, first.ID))

	err := svc.Register(ctx, event.ID, second.ID)
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestEventCancelFreesSeat(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(t, db)
	organizer := seedUser(t, db, "nurse1")
	first := seedUser(t, db, "nurse2")
	second := seedUser(t, db, "nurse3")
	ctx := context.Background()

	capacity := 1
	event := createEvent(t, svc, organizer.ID, &capacity)

	require.NoError(t, svc.Register(ctx, event.ID, first.ID))
	require.NoError(t, svc.CancelRegistration(ctx, event.ID, first.ID))
	require.NoError(t, svc.Register(ctx, event.ID, second.ID))
}

func TestEventRegisterTwice(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(t, db)
	organizer := seedUser(t, db, "nurse1")
	attendee := seedUser(t, db, "nurse2")
	ctx := context.Background()

	event := createEvent(t, svc, organizer.ID, nil)

	require.NoError(t, svc.Register(ctx, event.ID, attendee.ID))
	err := svc.Register(ctx, event.ID, attendee.ID)
	assert.True(t, apperror.Is(err, apperror.CodeBadRequest))
}

func TestEventMarkAttendedOrganizerOnly(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(t, db)
	organizer := seedUser(t, db, "nurse1")
	attendee := seedUser(t, db, "nurse2")
	stranger := seedUser(t, db, "nurse3")
	ctx := context.Background()

	event := createEvent(t, svc, organizer.ID, nil)
	require.NoError(t, svc.Register(ctx, event.ID, attendee.ID))

	err := svc.MarkAttended(ctx, event.ID, attendee.ID, stranger.ID, false)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))

	require.NoError(t, svc.MarkAttended(ctx, event.ID, attendee.ID, organizer.ID, false))

	participants, err := svc.Participants(ctx, event.ID, organizer.ID, false)
	require.NoError(t, err)
	require.Len(t, participants, 1)
	assert.Equal(t, entity.ParticipantStatusAttended, participants[0].Status)
}

func TestEventUpdateNotOrganizer(t *testing.T) {
	db := newTestDB(t)
	svc := newEventService(t, db)
	organizer := seedUser(t, db, "nurse1")
	stranger := seedUser(t, db, "nurse2")

	event := createEvent(t, svc, organizer.ID, nil)

	title := "عنوان جدید کارگاه"
	_, err := svc.Update(context.Background(), event.ID, stranger.ID, dto.UpdateEventRequest{Title: &title}, false)
	assert.True(t, apperror.Is(err, apperror.CodePermissionDenied))
}
