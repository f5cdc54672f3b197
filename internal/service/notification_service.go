package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/dto"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/repository"
	"parastaran.ir/nursesforum/pkg/apperror"
	"parastaran.ir/nursesforum/pkg/response"
)

type NotificationService interface {
	Notify(ctx context.Context, notification *entity.Notification) error
	NotifyMany(ctx context.Context, notifications []*entity.Notification) error
	GetForUser(ctx context.Context, userID string, unreadOnly bool, page dto.PageQuery) ([]*entity.Notification, response.Pagination, error)
	UnreadCount(ctx context.Context, userID string) (int64, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
	Channel(userID string) string
}

type notificationService struct {
	repo repository.NotificationRepository
	rdb  *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, rdb *redis.Client) NotificationService {
	return &notificationService{repo: repo, rdb: rdb}
}

// Notify persists the notification and fans it out over the user's pub/sub
// channel. Publish failures are logged, never surfaced: the row is already
// durable and will show up on the next poll.
func (s *notificationService) Notify(ctx context.Context, notification *entity.Notification) error {
	if err := s.repo.Create(ctx, notification); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	s.publish(ctx, notification)
	return nil
}

func (s *notificationService) NotifyMany(ctx context.Context, notifications []*entity.Notification) error {
	if err := s.repo.CreateBatch(ctx, notifications); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	for _, n := range notifications {
		s.publish(ctx, n)
	}
	return nil
}

func (s *notificationService) publish(ctx context.Context, notification *entity.Notification) {
	if s.rdb == nil {
		return
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		return
	}
	if err := s.rdb.Publish(ctx, s.Channel(notification.UserID), payload).Err(); err != nil {
		log.Printf("failed to publish notification %s: %v", notification.ID, err)
	}
}

func (s *notificationService) GetForUser(ctx context.Context, userID string, unreadOnly bool, page dto.PageQuery) ([]*entity.Notification, response.Pagination, error) {
	page.Normalize()
	notifications, total, err := s.repo.FindForUser(ctx, userID, unreadOnly, page)
	if err != nil {
		return nil, response.Pagination{}, apperror.Wrap(apperror.CodeInternal, err)
	}
	return notifications, response.NewPagination(page.Page, page.Limit, total), nil
}

func (s *notificationService) UnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.repo.CountUnread(ctx, userID)
	if err != nil {
		return 0, apperror.Wrap(apperror.CodeInternal, err)
	}
	return count, nil
}

func (s *notificationService) MarkRead(ctx context.Context, userID, id string) error {
	notification, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.New(apperror.CodeNotFound)
		}
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	if notification.UserID != userID {
		return apperror.New(apperror.CodePermissionDenied)
	}
	if err := s.repo.MarkRead(ctx, id); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

func (s *notificationService) MarkAllRead(ctx context.Context, userID string) error {
	if err := s.repo.MarkAllRead(ctx, userID); err != nil {
		return apperror.Wrap(apperror.CodeInternal, err)
	}
	return nil
}

// Channel is the redis pub/sub channel carrying one user's notifications.
func (s *notificationService) Channel(userID string) string {
	return fmt.Sprintf("user_notifications:%s", userID)
}
