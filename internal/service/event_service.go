package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/response"
)

type EventService interface {
	Create(ctx context.Context, organizerID string, req dto.CreateEventRequest) (*entity.Event, error)
	GetAll(ctx context.Context, filter dto.EventFilter) ([]*entity.Event, response.Pagination, error)
	GetByID(ctx context.Context, id string) (*entity.Event, error)
	Update(ctx context.Context, id, userID string, req dto.UpdateEventRequest, isAdmin bool) (*entity.Event, error)
	Delete(ctx context.Context, id, userID string, isAdmin bool) error

	Register(ctx context.Context, eventID, userID string) error
	CancelRegistration(ctx context.Context, eventID, userID string) error
	Participants(ctx context.Context, eventID, userID string, isAdmin bool) ([]*entity.EventParticipant, error)
	MarkAttended(ctx context.Context, eventID, participantID, userID string, isAdmin bool) error
}

type eventService struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &eventService{repo: repo}
}

func (s *eventService) Create(ctx context.Context, organizerID string, req dto.CreateEventRequest) (*entity.Event, error) {
	if !req.EndDateTime.After(req.StartDateTime) {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	event := &entity.Event{
		Title:           req.Title,
		Description:     req.Description,
		Location:        req.Location,
		StartDateTime:   req.StartDateTime,
		EndDateTime:     req.EndDateTime,
		OrganizerID:     organizerID,
		Type:            req.Type,
		IsOnline:        req.IsOnline,
		MeetingURL:      req.MeetingURL,
		MaxParticipants: req.MaxParticipants,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return event, nil
}

func (s *eventService) GetAll(ctx context.Context, filter dto.EventFilter) ([]*entity.Event, response.Pagination, error) {
	filter.Normalize()
	events, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return events, response.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*entity.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id, userID string, req dto.UpdateEventRequest, isAdmin bool) (*entity.Event, error) {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != userID && !isAdmin {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}

	values := map[string]any{}
	if req.Title != nil {
		values["title"] = *req.Title
	}
	if req.Description != nil {
		values["description"] = *req.Description
	}
	if req.Location != nil {
		values["location"] = *req.Location
	}
	if req.StartDateTime != nil {
		values["start_date_time"] = *req.StartDateTime
	}
	if req.EndDateTime != nil {
		values["end_date_time"] = *req.EndDateTime
	}
	if req.Type != nil {
		values["type"] = *req.Type
	}
	if req.IsOnline != nil {
		values["is_online"] = *req.IsOnline
	}
	if req.MeetingURL != nil {
		values["meeting_url"] = *req.MeetingURL
	}
	if req.MaxParticipants != nil {
		values["max_participants"] = *req.MaxParticipants
	}

	if len(values) == 0 {
		return event, nil
	}

	updated, err := s.repo.Update(ctx, id, values)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return updated, nil
}

func (s *eventService) Delete(ctx context.Context, id, userID string, isAdmin bool) error {
	event, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if event.OrganizerID != userID && !isAdmin {
		return apperror.New(apperror.CodePermissionDenied)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

// Register adds the user unless the event is full. A canceled registration
// can be re-activated.
func (s *eventService) Register(ctx context.Context, eventID, userID string) error {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return err
	}

	if event.MaxParticipants != nil {
		count, err := s.repo.CountActiveParticipants(ctx, eventID)
		if err != nil {
			return apperror.Wrap(apperror.CodeInternal, err)
		}
		if count >= int64(*event.MaxParticipants) {
			return apperror.New(apperror.CodeBadRequest)
		}
	}

	inserted, err := s.repo.Register(ctx, &entity.EventParticipant{
		EventID: eventID,
		UserID:  userID,
		Status:  entity.ParticipantStatusRegistered,
	})
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}

	if !inserted {
		existing, err := s.repo.Participant(ctx, eventID, userID)
		if err != nil {
			return apperror.Wrap(apperror.CodeInternal, err)
		}
		if existing.Status != entity.ParticipantStatusCanceled {
			return apperror.New(apperror.CodeBadRequest)
		}
		if err := s.repo.UpdateParticipant(ctx, eventID, userID, map[string]any{
			"status": entity.ParticipantStatusRegistered,
		}); err != nil {
			return apperror.Wrap(apperror.CodeInternal, err)
		}
	}
	return nil
}

func (s *eventService) CancelRegistration(ctx context.Context, eventID, userID string) error {
	participant, err := s.repo.Participant(ctx, eventID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if participant.Status == entity.ParticipantStatusCanceled {
		return apperror.New(apperror.CodeBadRequest)
	}

	if err := s.repo.UpdateParticipant(ctx, eventID, userID, map[string]any{
		"status": entity.ParticipantStatusCanceled,
	}); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *eventService) Participants(ctx context.Context, eventID, userID string, isAdmin bool) ([]*entity.EventParticipant, error) {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event.OrganizerID != userID && !isAdmin {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}

	participants, err := s.repo.Participants(ctx, eventID)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return participants, nil
}

func (s *eventService) MarkAttended(ctx context.Context, eventID, participantID, userID string, isAdmin bool) error {
	event, err := s.GetByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event.OrganizerID != userID && !isAdmin {
		return apperror.New(apperror.CodePermissionDenied)
	}

	participant, err := s.repo.Participant(ctx, eventID, participantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if participant.Status == entity.ParticipantStatusCanceled {
		return apperror.New(apperror.CodeBadRequest)
	}

	if err := s.repo.UpdateParticipant(ctx, eventID, participantID, map[string]any{
		"status": entity.ParticipantStatusAttended,
	}); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}
