package service

import (
	"context"
	"errors"
	"log"
	"time"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/response"
)

type MentorshipService interface {
	Request(ctx context.Context, menteeID string, req dto.RequestMentorshipRequest) (*entity.Mentorship, error)
	GetMine(ctx context.Context, userID string, filter dto.MentorshipFilter) ([]*entity.Mentorship, response.Pagination, error)
	GetByID(ctx context.Context, id, userID string) (*entity.Mentorship, error)
	Accept(ctx context.Context, id, userID string) (*entity.Mentorship, error)
	Reject(ctx context.Context, id, userID string) (*entity.Mentorship, error)
	Complete(ctx context.Context, id, userID string) (*entity.Mentorship, error)
	Mentors(ctx context.Context, page dto.PageQuery) ([]*entity.User, response.Pagination, error)
}

type mentorshipService struct {
	repo          repository.MentorshipRepository
	userRepo      repository.UserRepository
	notifications NotificationService
}

func NewMentorshipService(
	repo repository.MentorshipRepository,
	userRepo repository.UserRepository,
	notifications NotificationService,
) MentorshipService {
	return &mentorshipService{
		repo:          repo,
		userRepo:      userRepo,
		notifications: notifications,
	}
}

func (s *mentorshipService) Request(ctx context.Context, menteeID string, req dto.RequestMentorshipRequest) (*entity.Mentorship, error) {
	if req.MentorID == menteeID {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	mentor, err := s.userRepo.FindByID(ctx, req.MentorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeUserNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	// Only users who opted into mentoring can receive requests.
	if mentor.Profile == nil || !mentor.Profile.ConsentToMentorship {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	open, err := s.repo.HasOpenPair(ctx, req.MentorID, menteeID)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if open {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	mentorship := &entity.Mentorship{
		MentorID:       req.MentorID,
		MenteeID:       menteeID,
		Status:         entity.MentorshipStatusPending,
		SpecialtyFocus: req.SpecialtyFocus,
		Notes:          req.Notes,
	}

	if err := s.repo.Create(ctx, mentorship); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	relID := mentorship.ID
	err = s.notifications.Notify(ctx, &entity.Notification{
		UserID:    req.MentorID,
		Type:      entity.NotificationTypeMentorshipRequest,
		Title:     "درخواست منتورشیپ جدیدی دریافت کردید",
		RelatedID: &relID,
	})
	if err != nil {
		log.Printf("failed to notify mentor %s: %v", req.MentorID, err)
	}

	return s.repo.FindByID(ctx, mentorship.ID)
}

func (s *mentorshipService) GetMine(ctx context.Context, userID string, filter dto.MentorshipFilter) ([]*entity.Mentorship, response.Pagination, error) {
	filter.Normalize()
	mentorships, total, err := s.repo.FindForUser(ctx, userID, filter)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return mentorships, response.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *mentorshipService) GetByID(ctx context.Context, id, userID string) (*entity.Mentorship, error) {
	mentorship, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if mentorship.MentorID != userID && mentorship.MenteeID != userID {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}
	return mentorship, nil
}

// Accept moves a pending request to active. Only the mentor may accept.
func (s *mentorshipService) Accept(ctx context.Context, id, userID string) (*entity.Mentorship, error) {
	mentorship, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if mentorship.MentorID != userID {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}
	if mentorship.Status != entity.MentorshipStatusPending {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	now := time.Now()
	updated, err := s.repo.Update(ctx, id, map[string]any{
		"status":     entity.MentorshipStatusActive,
		"start_date": now,
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	s.notifyMentee(ctx, updated, "درخواست منتورشیپ شما پذیرفته شد")
	return updated, nil
}

func (s *mentorshipService) Reject(ctx context.Context, id, userID string) (*entity.Mentorship, error) {
	mentorship, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if mentorship.MentorID != userID {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}
	if mentorship.Status != entity.MentorshipStatusPending {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	updated, err := s.repo.Update(ctx, id, map[string]any{"status": entity.MentorshipStatusRejected})
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	s.notifyMentee(ctx, updated, "درخواست منتورشیپ شما رد شد")
	return updated, nil
}

// Complete closes an active mentorship; either side may end it.
func (s *mentorshipService) Complete(ctx context.Context, id, userID string) (*entity.Mentorship, error) {
	mentorship, err := s.GetByID(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	if mentorship.Status != entity.MentorshipStatusActive {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	now := time.Now()
	updated, err := s.repo.Update(ctx, id, map[string]any{
		"status":   entity.MentorshipStatusCompleted,
		"end_date": now,
	})
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return updated, nil
}

func (s *mentorshipService) Mentors(ctx context.Context, page dto.PageQuery) ([]*entity.User, response.Pagination, error) {
	page.Normalize()
	mentors, total, err := s.repo.FindMentors(ctx, page)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return mentors, response.NewPagination(page.Page, page.Limit, total), nil
}

func (s *mentorshipService) notifyMentee(ctx context.Context, mentorship *entity.Mentorship, title string) {
	relID := mentorship.ID
	err := s.notifications.Notify(ctx, &entity.Notification{
		UserID:    mentorship.MenteeID,
		Type:      entity.NotificationTypeMentorshipRequest,
		Title:     title,
		RelatedID: &relID,
	})
	if err != nil {
		log.Printf("failed to notify mentee %s: %v", mentorship.MenteeID, err)
	}
}
