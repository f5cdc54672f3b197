package repository

import (
	"context"

	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
)

type MentorshipRepository interface {
	Create(ctx context.Context, mentorship *entity.Mentorship) error
	FindByID(ctx context.Context, id string) (*entity.Mentorship, error)
	FindForUser(ctx context.Context, userID string, filter dto.MentorshipFilter) ([]*entity.Mentorship, int64, error)
	HasOpenPair(ctx context.Context, mentorID, menteeID string) (bool, error)
	Update(ctx context.Context, id string, values map[string]any) (*entity.Mentorship, error)
	FindMentors(ctx context.Context, page dto.PageQuery) ([]*entity.User, int64, error)
}

type mentorshipRepository struct {
	db *gorm.DB
}

func NewMentorshipRepository(db *gorm.DB) MentorshipRepository {
	return &mentorshipRepository{db: db}
}

func (r *mentorshipRepository) Create(ctx context.Context, mentorship *entity.Mentorship) error {
	return r.db.WithContext(ctx).Create(mentorship).Error
}

func (r *mentorshipRepository) FindByID(ctx context.Context, id string) (*entity.Mentorship, error) {
	var mentorship entity.Mentorship
	if err := r.db.WithContext(ctx).
		Preload("Mentor").
		Preload("Mentee").
		First(&mentorship, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &mentorship, nil
}

func (r *mentorshipRepository) FindForUser(ctx context.Context, userID string, filter dto.MentorshipFilter) ([]*entity.Mentorship, int64, error) {
	var mentorships []*entity.Mentorship
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Mentorship{})

	switch filter.Role {
	case "mentor":
		query = query.Where("mentor_id = ?", userID)
	case "mentee":
		query = query.Where("mentee_id = ?", userID)
	default:
		query = query.Where("mentor_id = ? OR mentee_id = ?", userID, userID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := filter.Normalize()
	if err := query.
		Preload("Mentor").
		Preload("Mentee").
		Order("created_at desc").
		Offset(offset).
		Limit(filter.Limit).
		Find(&mentorships).Error; err != nil {
		return nil, 0, err
	}

	return mentorships, total, nil
}

// HasOpenPair reports whether a pending or active mentorship already links
// the two users.
func (r *mentorshipRepository) HasOpenPair(ctx context.Context, mentorID, menteeID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Mentorship{}).
		Where("mentor_id = ? AND mentee_id = ? AND status IN ?",
			mentorID, menteeID,
			[]string{entity.MentorshipStatusPending, entity.MentorshipStatusActive}).
		Count(&count).Error
	return count > 0, err
}

func (r *mentorshipRepository) Update(ctx context.Context, id string, values map[string]any) (*entity.Mentorship, error) {
	if err := r.db.WithContext(ctx).Model(&entity.Mentorship{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// FindMentors lists users whose profile opted into mentoring.
func (r *mentorshipRepository) FindMentors(ctx context.Context, page dto.PageQuery) ([]*entity.User, int64, error) {
	var users []*entity.User
	var total int64

	query := r.db.WithContext(ctx).
		Model(&entity.User{}).
		Joins("JOIN nurse_profiles ON nurse_profiles.user_id = users.id").
		Where("nurse_profiles.consent_to_mentorship = ?", true)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := page.Normalize()
	if err := query.
		Preload("Profile").
		Order("users.username asc").
		Offset(offset).
		Limit(page.Limit).
		Find(&users).Error; err != nil {
		return nil, 0, err
	}

	return users, total, nil
}
