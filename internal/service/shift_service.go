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

const shiftDateLayout = "2006-01-02"

type ShiftService interface {
	Create(ctx context.Context, userID string, req dto.CreateShiftRequest) (*entity.Shift, error)
	GetAll(ctx context.Context, filter dto.ShiftFilter) ([]*entity.Shift, response.Pagination, error)
	GetByID(ctx context.Context, id string) (*entity.Shift, error)
	Update(ctx context.Context, id, userID string, req dto.UpdateShiftRequest) (*entity.Shift, error)
	Cancel(ctx context.Context, id, userID string) (*entity.Shift, error)

	Apply(ctx context.Context, shiftID, applicantID string, req dto.ApplyShiftRequest) (*entity.ShiftApplication, error)
	Applications(ctx context.Context, shiftID, userID string) ([]*entity.ShiftApplication, error)
	ReviewApplication(ctx context.Context, applicationID, userID string, req dto.ReviewApplicationRequest) (*entity.ShiftApplication, error)

	ExpireOpenShifts(ctx context.Context) (int64, error)
}

type shiftService struct {
	repo          repository.ShiftRepository
	notifications NotificationService
}

func NewShiftService(repo repository.ShiftRepository, notifications NotificationService) ShiftService {
	return &shiftService{repo: repo, notifications: notifications}
}

func (s *shiftService) Create(ctx context.Context, userID string, req dto.CreateShiftRequest) (*entity.Shift, error) {
	date, err := time.Parse(shiftDateLayout, req.Date)
	if err != nil {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	shift := &entity.Shift{
		UserID:     userID,
		Date:       date,
		StartTime:  req.StartTime,
		EndTime:    req.EndTime,
		Location:   req.Location,
		Department: req.Department,
		Type:       req.Type,
		Status:     entity.ShiftStatusOpen,
		Notes:      req.Notes,
	}

	if err := s.repo.Create(ctx, shift); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return shift, nil
}

func (s *shiftService) GetAll(ctx context.Context, filter dto.ShiftFilter) ([]*entity.Shift, response.Pagination, error) {
	filter.Normalize()
	shifts, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return shifts, response.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *shiftService) GetByID(ctx context.Context, id string) (*entity.Shift, error) {
	shift, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return shift, nil
}

func (s *shiftService) Update(ctx context.Context, id, userID string, req dto.UpdateShiftRequest) (*entity.Shift, error) {
	shift, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift.UserID != userID {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}
	if shift.Status != entity.ShiftStatusOpen {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	values := map[string]any{}
	if req.Date != nil {
		date, err := time.Parse(shiftDateLayout, *req.Date)
		if err != nil {
			return nil, apperror.New(apperror.CodeBadRequest)
		}
		values["date"] = date
	}
	if req.StartTime != nil {
		values["start_time"] = *req.StartTime
	}
	if req.EndTime != nil {
		values["end_time"] = *req.EndTime
	}
	if req.Location != nil {
		values["location"] = *req.Location
	}
	if req.Department != nil {
		values["department"] = *req.Department
	}
	if req.Notes != nil {
		values["notes"] = *req.Notes
	}

	if len(values) == 0 {
		return shift, nil
	}

	updated, err := s.repo.Update(ctx, id, values)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return updated, nil
}

func (s *shiftService) Cancel(ctx context.Context, id, userID string) (*entity.Shift, error) {
	shift, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if shift.UserID != userID {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}
	if shift.Status != entity.ShiftStatusOpen {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	updated, err := s.repo.Update(ctx, id, map[string]any{"status": entity.ShiftStatusCanceled})
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return updated, nil
}

func (s *shiftService) Apply(ctx context.Context, shiftID, applicantID string, req dto.ApplyShiftRequest) (*entity.ShiftApplication, error) {
	shift, err := s.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.Status != entity.ShiftStatusOpen {
		return nil, apperror.New(apperror.CodeBadRequest)
	}
	if shift.UserID == applicantID {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	applied, err := s.repo.HasApplied(ctx, shiftID, applicantID)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if applied {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	application := &entity.ShiftApplication{
		ShiftID:     shiftID,
		ApplicantID: applicantID,
		Status:      entity.ApplicationStatusPending,
		Message:     req.Message,
	}

	if err := s.repo.CreateApplication(ctx, application); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	shiftRef := shiftID
	err = s.notifications.Notify(ctx, &entity.Notification{
		UserID:    shift.UserID,
		Type:      entity.NotificationTypeShiftApplication,
		Title:     "درخواست جدیدی برای شیفت شما ثبت شد",
		RelatedID: &shiftRef,
	})
	if err != nil {
		log.Printf("failed to notify shift owner %s: %v", shift.UserID, err)
	}

	return s.repo.FindApplication(ctx, application.ID)
}

func (s *shiftService) Applications(ctx context.Context, shiftID, userID string) ([]*entity.ShiftApplication, error) {
	shift, err := s.GetByID(ctx, shiftID)
	if err != nil {
		return nil, err
	}
	if shift.UserID != userID {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}

	applications, err := s.repo.FindApplications(ctx, shiftID)
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return applications, nil
}

// ReviewApplication accepts or rejects one application. Accepting fills the
// shift and rejects every other pending application.
func (s *shiftService) ReviewApplication(ctx context.Context, applicationID, userID string, req dto.ReviewApplicationRequest) (*entity.ShiftApplication, error) {
	application, err := s.repo.FindApplication(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	if application.Shift.UserID != userID {
		return nil, apperror.New(apperror.CodePermissionDenied)
	}
	if application.Status != entity.ApplicationStatusPending {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	updated, err := s.repo.UpdateApplication(ctx, applicationID, map[string]any{"status": req.Status})
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	if req.Status == entity.ApplicationStatusAccepted {
		if _, err := s.repo.Update(ctx, application.ShiftID, map[string]any{"status": entity.ShiftStatusFilled}); err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, err)
		}
		if err := s.repo.RejectOtherApplications(ctx, application.ShiftID, applicationID); err != nil {
			return nil, apperror.Wrap(apperror.CodeInternal, err)
		}
	}

	shiftRef := application.ShiftID
	err = s.notifications.Notify(ctx, &entity.Notification{
		UserID:    application.ApplicantID,
		Type:      entity.NotificationTypeShiftApplication,
		Title:     "نتیجه درخواست شیفت شما مشخص شد",
		RelatedID: &shiftRef,
	})
	if err != nil {
		log.Printf("failed to notify applicant %s: %v", application.ApplicantID, err)
	}

	return updated, nil
}

// ExpireOpenShifts is run on a schedule; it closes open shifts whose date
// is already in the past.
func (s *shiftService) ExpireOpenShifts(ctx context.Context) (int64, error) {
	today := time.Now().Truncate(24 * time.Hour)
	expired, err := s.repo.ExpireBefore(ctx, today)
	if err != nil {
		return 0, apperror.Wrap(apperror.CodeInternal, err)
	}
	return expired, nil
}
