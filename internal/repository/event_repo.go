package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
)

type EventRepository interface {
	Create(ctx context.Context, event *entity.Event) error
	FindByID(ctx context.Context, id string) (*entity.Event, error)
	FindAll(ctx context.Context, filter dto.EventFilter) ([]*entity.Event, int64, error)
	Update(ctx context.Context, id string, values map[string]any) (*entity.Event, error)
	Delete(ctx context.Context, id string) error

	Register(ctx context.Context, participant *entity.EventParticipant) (bool, error)
	Participant(ctx context.Context, eventID, userID string) (*entity.EventParticipant, error)
	Participants(ctx context.Context, eventID string) ([]*entity.EventParticipant, error)
	CountActiveParticipants(ctx context.Context, eventID string) (int64, error)
	UpdateParticipant(ctx context.Context, eventID, userID string, values map[string]any) error
}

type eventRepository struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	var event entity.Event
	if err := r.db.WithContext(ctx).Preload("Organizer").First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) FindAll(ctx context.Context, filter dto.EventFilter) ([]*entity.Event, int64, error) {
	var events []*entity.Event
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Event{})

	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.UpcomingOnly {
		query = query.Where("start_date_time > ?", time.Now())
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := filter.Normalize()
	if err := query.
		Preload("Organizer").
		Order("start_date_time asc").
		Offset(offset).
		Limit(filter.Limit).
		Find(&events).Error; err != nil {
		return nil, 0, err
	}

	return events, total, nil
}

func (r *eventRepository) Update(ctx context.Context, id string, values map[string]any) (*entity.Event, error) {
	if err := r.db.WithContext(ctx).Model(&entity.Event{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&entity.Event{}, "id = ?", id).Error
}

func (r *eventRepository) Register(ctx context.Context, participant *entity.EventParticipant) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(participant)
	return result.RowsAffected > 0, result.Error
}

func (r *eventRepository) Participant(ctx context.Context, eventID, userID string) (*entity.EventParticipant, error) {
	var participant entity.EventParticipant
	if err := r.db.WithContext(ctx).
		First(&participant, "event_id = ? AND user_id = ?", eventID, userID).Error; err != nil {
		return nil, err
	}
	return &participant, nil
}

func (r *eventRepository) Participants(ctx context.Context, eventID string) ([]*entity.EventParticipant, error) {
	var participants []*entity.EventParticipant
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("event_id = ?", eventID).
		Order("registered_at asc").
		Find(&participants).Error
	return participants, err
}

func (r *eventRepository) CountActiveParticipants(ctx context.Context, eventID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.EventParticipant{}).
		Where("event_id = ? AND status <> ?", eventID, entity.ParticipantStatusCanceled).
		Count(&count).Error
	return count, err
}

func (r *eventRepository) UpdateParticipant(ctx context.Context, eventID, userID string, values map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&entity.EventParticipant{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Updates(values).Error
}
