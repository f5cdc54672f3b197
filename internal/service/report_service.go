package service

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/identifier"
	"parastaran.ir/nursesforum/pkg/response"
)

// reportableTags mirrors the attachment check: the target pair has no
// foreign key, so the ID tag is validated instead.
var reportableTags = map[string]identifier.Tag{
	entity.ReportableThread:  identifier.TagThread,
	entity.ReportableComment: identifier.TagComment,
	entity.ReportableMessage: identifier.TagMessage,
	entity.ReportableShift:   identifier.TagShift,
	entity.ReportableEvent:   identifier.TagEvent,
}

type ReportService interface {
	ReportUser(ctx context.Context, reporterID string, req dto.ReportUserRequest) (*entity.UserReport, error)
	ReportContent(ctx context.Context, reporterID string, req dto.ReportContentRequest) (*entity.ContentReport, error)
	UserReports(ctx context.Context, filter dto.ReportFilter) ([]*entity.UserReport, response.Pagination, error)
	ContentReports(ctx context.Context, filter dto.ReportFilter) ([]*entity.ContentReport, response.Pagination, error)
	ReviewUserReport(ctx context.Context, id, moderatorID string, req dto.ReviewReportRequest) (*entity.UserReport, error)
	ReviewContentReport(ctx context.Context, id, moderatorID string, req dto.ReviewReportRequest) (*entity.ContentReport, error)
}

type reportService struct {
	repo     repository.ReportRepository
	userRepo repository.UserRepository
}

func NewReportService(repo repository.ReportRepository, userRepo repository.UserRepository) ReportService {
	return &reportService{repo: repo, userRepo: userRepo}
}

func (s *reportService) ReportUser(ctx context.Context, reporterID string, req dto.ReportUserRequest) (*entity.UserReport, error) {
	if req.ReportedUserID == reporterID {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	if _, err := s.userRepo.FindByID(ctx, req.ReportedUserID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeUserNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}

	report := &entity.UserReport{
		ReporterID:     reporterID,
		ReportedUserID: req.ReportedUserID,
		Reason:         req.Reason,
		Details:        req.Details,
		Status:         entity.ReportStatusPending,
	}

	if err := s.repo.CreateUserReport(ctx, report); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return report, nil
}

func (s *reportService) ReportContent(ctx context.Context, reporterID string, req dto.ReportContentRequest) (*entity.ContentReport, error) {
	tag, ok := reportableTags[req.ContentType]
	if !ok {
		return nil, apperror.New(apperror.CodeBadRequest)
	}
	if !identifier.HasTag(req.ContentID, tag) {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	report := &entity.ContentReport{
		ReporterID:  reporterID,
		ContentType: req.ContentType,
		ContentID:   req.ContentID,
		Reason:      req.Reason,
		Details:     req.Details,
		Status:      entity.ReportStatusPending,
	}

	if err := s.repo.CreateContentReport(ctx, report); err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return report, nil
}

func (s *reportService) UserReports(ctx context.Context, filter dto.ReportFilter) ([]*entity.UserReport, response.Pagination, error) {
	filter.Normalize()
	reports, total, err := s.repo.FindUserReports(ctx, filter)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return reports, response.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *reportService) ContentReports(ctx context.Context, filter dto.ReportFilter) ([]*entity.ContentReport, response.Pagination, error) {
	filter.Normalize()
	reports, total, err := s.repo.FindContentReports(ctx, filter)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return reports, response.NewPagination(filter.Page, filter.Limit, total), nil
}

func (s *reportService) ReviewUserReport(ctx context.Context, id, moderatorID string, req dto.ReviewReportRequest) (*entity.UserReport, error) {
	report, err := s.repo.FindUserReport(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if report.Status != entity.ReportStatusPending {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	updated, err := s.repo.UpdateUserReport(ctx, id, reviewValues(moderatorID, req))
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return updated, nil
}

func (s *reportService) ReviewContentReport(ctx context.Context, id, moderatorID string, req dto.ReviewReportRequest) (*entity.ContentReport, error) {
	report, err := s.repo.FindContentReport(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.New(apperror.CodeNotFound)
		}
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	if report.Status != entity.ReportStatusPending {
		return nil, apperror.New(apperror.CodeBadRequest)
	}

	updated, err := s.repo.UpdateContentReport(ctx, id, reviewValues(moderatorID, req))
	if err != nil {
		return nil, apperror.Wrap(apperror.CodeInternal, err)
	}
	return updated, nil
}

func reviewValues(moderatorID string, req dto.ReviewReportRequest) map[string]any {
	values := map[string]any{
		"status":       req.Status,
		"moderator_id": moderatorID,
	}
	if req.ModeratorNotes != nil {
		values["moderator_notes"] = *req.ModeratorNotes
	}
	if req.Resolution != nil {
		values["resolution"] = *req.Resolution
	}
	return values
}
