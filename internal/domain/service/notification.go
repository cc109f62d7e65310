package service

import (
	"context"
	"errors"
	"time"

	"github.com/jonboulle/clockwork"
	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
	"github.com/241luca/soccer-manager/pkg/logger"
)

type notificationStorage interface {
	Create(ctx context.Context, notification *entity.Notification) (*entity.Notification, error)
	Get(ctx context.Context, organizationID, id string) (*entity.Notification, error)
	List(ctx context.Context, organizationID, userID string, filter dto.NotificationFilter, now time.Time) ([]entity.Notification, error)
	UnreadCount(ctx context.Context, organizationID, userID string, now time.Time) (int64, error)
	MarkRead(ctx context.Context, id string) error
	MarkAllRead(ctx context.Context, organizationID, userID string) error
	Delete(ctx context.Context, id string) error
	DeleteAll(ctx context.Context, organizationID, userID string) error
	ExistsSince(ctx context.Context, organizationID string, notificationType entity.NotificationType, relatedEntityID string, since time.Time) (bool, error)
}

// broadcaster pushes a created notification over the real-time channel.
// Delivery is best-effort; a failed push is not an error.
type broadcaster interface {
	ToOrganization(organizationID string, payload interface{})
	ToUser(userID string, payload interface{})
}

type NotificationService struct {
	notifications notificationStorage
	broadcast     broadcaster
	clock         clockwork.Clock
	logger        *logger.Logger
}

func NewNotificationService(notifications notificationStorage, broadcast broadcaster, clock clockwork.Clock, log *logger.Logger) *NotificationService {
	return &NotificationService{
		notifications: notifications,
		broadcast:     broadcast,
		clock:         clock,
		logger:        log,
	}
}

// Create persists a notification and pushes it to the organization room,
// plus the user room when targeted.
func (s *NotificationService) Create(ctx context.Context, organizationID string, data dto.CreateNotification) (*entity.Notification, error) {
	severity := entity.NotificationSeverity(data.Severity)
	if severity == "" {
		severity = entity.SeverityInfo
	}
	notification := &entity.Notification{
		OrganizationID:    organizationID,
		Type:              entity.NotificationType(data.Type),
		Severity:          severity,
		Title:             data.Title,
		Message:           data.Message,
		RelatedEntityType: data.RelatedEntityType,
		RelatedEntityID:   data.RelatedEntityID,
		ExpiresAt:         data.ExpiresAt,
	}
	if data.UserID != "" {
		notification.UserID = &data.UserID
	}

	created, err := s.notifications.Create(ctx, notification)
	if err != nil {
		return nil, err
	}

	s.broadcast.ToOrganization(organizationID, created)
	if created.UserID != nil {
		s.broadcast.ToUser(*created.UserID, created)
	}

	s.logger.Infof("notification created: %s - %s", created.Type, created.Title)
	return created, nil
}

// Notify is the fire-and-forget variant used by other services; failures are
// logged and swallowed.
func (s *NotificationService) Notify(ctx context.Context, organizationID string, data dto.CreateNotification) {
	if _, err := s.Create(ctx, organizationID, data); err != nil {
		s.logger.Errorf("failed to create notification for organization %s: %v", organizationID, err)
	}
}

// List returns non-expired notifications visible to the user, newest first,
// together with the unread count.
func (s *NotificationService) List(ctx context.Context, organizationID, userID string, filter dto.NotificationFilter) ([]entity.Notification, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	now := s.clock.Now()
	notifications, err := s.notifications.List(ctx, organizationID, userID, filter, now)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.notifications.UnreadCount(ctx, organizationID, userID, now)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, organizationID, userID, id string) error {
	notification, err := s.visible(ctx, organizationID, userID, id)
	if err != nil {
		return err
	}
	return s.notifications.MarkRead(ctx, notification.ID)
}

func (s *NotificationService) MarkAllRead(ctx context.Context, organizationID, userID string) error {
	return s.notifications.MarkAllRead(ctx, organizationID, userID)
}

func (s *NotificationService) Delete(ctx context.Context, organizationID, userID, id string) error {
	notification, err := s.visible(ctx, organizationID, userID, id)
	if err != nil {
		return err
	}
	return s.notifications.Delete(ctx, notification.ID)
}

func (s *NotificationService) ClearAll(ctx context.Context, organizationID, userID string) error {
	return s.notifications.DeleteAll(ctx, organizationID, userID)
}

// ExistsSince reports whether a notification of the given type for the same
// related entity was already created inside the dedup window.
func (s *NotificationService) ExistsSince(ctx context.Context, organizationID string, notificationType entity.NotificationType, relatedEntityID string, since time.Time) (bool, error) {
	return s.notifications.ExistsSince(ctx, organizationID, notificationType, relatedEntityID, since)
}

func (s *NotificationService) visible(ctx context.Context, organizationID, userID, id string) (*entity.Notification, error) {
	notification, err := s.notifications.Get(ctx, organizationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorz.NotFound("NOTIFICATION_NOT_FOUND", "notification not found")
		}
		return nil, err
	}
	if notification.UserID != nil && *notification.UserID != userID {
		return nil, errorz.NotFound("NOTIFICATION_NOT_FOUND", "notification not found")
	}
	return notification, nil
}
