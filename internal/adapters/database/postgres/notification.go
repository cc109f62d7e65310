package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type NotificationStorage struct {
	db *gorm.DB
}

func NewNotificationStorage(db *gorm.DB) *NotificationStorage {
	return &NotificationStorage{
		db: db,
	}
}

// visible scopes notifications to the ones a user can see: organization-wide
// rows plus rows targeted at the user, excluding expired ones.
func (s *NotificationStorage) visible(ctx context.Context, organizationID, userID string, now time.Time) *gorm.DB {
	return s.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("organization_id = ?", organizationID).
		Where(s.db.Where("user_id IS NULL").Or("user_id = ?", userID)).
		Where(s.db.Where("expires_at IS NULL").Or("expires_at > ?", now))
}

// Create is a function that creates a new notification in the database.
func (s *NotificationStorage) Create(ctx context.Context, notification *entity.Notification) (*entity.Notification, error) {
	err := s.db.WithContext(ctx).Create(&notification).Error
	return notification, err
}

// Get is a function that gets a notification of an organization by id.
func (s *NotificationStorage) Get(ctx context.Context, organizationID, id string) (*entity.Notification, error) {
	var notification entity.Notification
	err := s.db.WithContext(ctx).
		Where("organization_id = ? AND id = ?", organizationID, id).
		First(&notification).Error
	return &notification, err
}

// List returns the newest notifications visible to the user.
func (s *NotificationStorage) List(ctx context.Context, organizationID, userID string, filter dto.NotificationFilter, now time.Time) ([]entity.Notification, error) {
	query := s.visible(ctx, organizationID, userID, now)

	if filter.Unread != nil {
		query = query.Where("is_read = ?", !*filter.Unread)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}

	var notifications []entity.Notification
	err := query.Order("created_at DESC").Limit(filter.Limit).Find(&notifications).Error
	return notifications, err
}

// UnreadCount counts the unread notifications visible to the user.
func (s *NotificationStorage) UnreadCount(ctx context.Context, organizationID, userID string, now time.Time) (int64, error) {
	var count int64
	err := s.visible(ctx, organizationID, userID, now).
		Where("is_read = ?", false).
		Count(&count).Error
	return count, err
}

// MarkRead is a function that marks a notification as read.
func (s *NotificationStorage) MarkRead(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

// MarkAllRead marks every notification visible to the user as read.
func (s *NotificationStorage) MarkAllRead(ctx context.Context, organizationID, userID string) error {
	return s.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("organization_id = ? AND is_read = ?", organizationID, false).
		Where(s.db.Where("user_id IS NULL").Or("user_id = ?", userID)).
		Update("is_read", true).Error
}

// Delete is a function that removes a notification from the database.
func (s *NotificationStorage) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Delete(&entity.Notification{}, "id = ?", id).Error
}

// DeleteAll removes every notification visible to the user.
func (s *NotificationStorage) DeleteAll(ctx context.Context, organizationID, userID string) error {
	return s.db.WithContext(ctx).
		Where("organization_id = ?", organizationID).
		Where(s.db.Where("user_id IS NULL").Or("user_id = ?", userID)).
		Delete(&entity.Notification{}).Error
}

// ExistsSince reports whether a notification of the given type for the same
// related entity was created after the given time.
func (s *NotificationStorage) ExistsSince(ctx context.Context, organizationID string, notificationType entity.NotificationType, relatedEntityID string, since time.Time) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&entity.Notification{}).
		Where("organization_id = ? AND type = ? AND related_entity_id = ? AND created_at > ?",
			organizationID, notificationType, relatedEntityID, since).
		Count(&count).Error
	return count > 0, err
}
