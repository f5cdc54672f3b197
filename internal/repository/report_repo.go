package repository

import (
	"context"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
)

type ReportRepository interface {
	CreateUserReport(ctx context.Context, report *entity.UserReport) error
	FindUserReport(ctx context.Context, id string) (*entity.UserReport, error)
	FindUserReports(ctx context.Context, filter dto.ReportFilter) ([]*entity.UserReport, int64, error)
	UpdateUserReport(ctx context.Context, id string, values map[string]any) (*entity.UserReport, error)

	CreateContentReport(ctx context.Context, report *entity.ContentReport) error
	FindContentReport(ctx context.Context, id string) (*entity.ContentReport, error)
	FindContentReports(ctx context.Context, filter dto.ReportFilter) ([]*entity.ContentReport, int64, error)
	UpdateContentReport(ctx context.Context, id string, values map[string]any) (*entity.ContentReport, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) CreateUserReport(ctx context.Context, report *entity.UserReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FindUserReport(ctx context.Context, id string) (*entity.UserReport, error) {
	var report entity.UserReport
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindUserReports(ctx context.Context, filter dto.ReportFilter) ([]*entity.UserReport, int64, error) {
	var reports []*entity.UserReport
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.UserReport{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := filter.Normalize()
	if err := query.
		Order("created_at desc").
		Offset(offset).
		Limit(filter.Limit).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (r *reportRepository) UpdateUserReport(ctx context.Context, id string, values map[string]any) (*entity.UserReport, error) {
	if err := r.db.WithContext(ctx).Model(&entity.UserReport{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}
	return r.FindUserReport(ctx, id)
}

func (r *reportRepository) CreateContentReport(ctx context.Context, report *entity.ContentReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) FindContentReport(ctx context.Context, id string) (*entity.ContentReport, error) {
	var report entity.ContentReport
	if err := r.db.WithContext(ctx).First(&report, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) FindContentReports(ctx context.Context, filter dto.ReportFilter) ([]*entity.ContentReport, int64, error) {
	var reports []*entity.ContentReport
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.ContentReport{})
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := filter.Normalize()
	if err := query.
		Order("created_at desc").
		Offset(offset).
		Limit(filter.Limit).
		Find(&reports).Error; err != nil {
		return nil, 0, err
	}

	return reports, total, nil
}

func (r *reportRepository) UpdateContentReport(ctx context.Context, id string, values map[string]any) (*entity.ContentReport, error) {
	if err := r.db.WithContext(ctx).Model(&entity.ContentReport{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}
	return r.FindContentReport(ctx, id)
}
