package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/241luca/soccer-manager/internal/domain/common/errorz"
	"github.com/241luca/soccer-manager/internal/domain/dto"
	"github.com/241luca/soccer-manager/internal/domain/entity"
)

type fakeNotificationStorage struct {
	notifications map[string]*entity.Notification
	listedLimit   int
}

func newFakeNotificationStorage() *fakeNotificationStorage {
	return &fakeNotificationStorage{notifications: make(map[string]*entity.Notification)}
}

func (f *fakeNotificationStorage) Create(_ context.Context, notification *entity.Notification) (*entity.Notification, error) {
	notification.ID = uuid.New().String()
	f.notifications[notification.ID] = notification
	return notification, nil
}

func (f *fakeNotificationStorage) Get(_ context.Context, organizationID, id string) (*entity.Notification, error) {
	n, ok := f.notifications[id]
	if !ok || n.OrganizationID != organizationID {
		return nil, gorm.ErrRecordNotFound
	}
	return n, nil
}

func (f *fakeNotificationStorage) List(_ context.Context, organizationID, userID string, filter dto.NotificationFilter, _ time.Time) ([]entity.Notification, error) {
	f.listedLimit = filter.Limit
	var out []entity.Notification
	for _, n := range f.notifications {
		if n.OrganizationID == organizationID && (n.UserID == nil || *n.UserID == userID) {
			out = append(out, *n)
		}
	}
	return out, nil
}

func (f *fakeNotificationStorage) UnreadCount(_ context.Context, organizationID, userID string, _ time.Time) (int64, error) {
	var count int64
	for _, n := range f.notifications {
		if n.OrganizationID == organizationID && !n.IsRead && (n.UserID == nil || *n.UserID == userID) {
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationStorage) MarkRead(_ context.Context, id string) error {
	f.notifications[id].IsRead = true
	return nil
}

func (f *fakeNotificationStorage) MarkAllRead(_ context.Context, organizationID, userID string) error {
	for _, n := range f.notifications {
		if n.OrganizationID == organizationID && (n.UserID == nil || *n.UserID == userID) {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeNotificationStorage) Delete(_ context.Context, id string) error {
	delete(f.notifications, id)
	return nil
}

func (f *fakeNotificationStorage) DeleteAll(_ context.Context, organizationID, userID string) error {
	for id, n := range f.notifications {
		if n.OrganizationID == organizationID && (n.UserID == nil || *n.UserID == userID) {
			delete(f.notifications, id)
		}
	}
	return nil
}

func (f *fakeNotificationStorage) ExistsSince(_ context.Context, _ string, _ entity.NotificationType, _ string, _ time.Time) (bool, error) {
	return false, nil
}

// fakeBroadcaster records room pushes.
type fakeBroadcaster struct {
	orgPushes  []string
	userPushes []string
}

func (f *fakeBroadcaster) ToOrganization(organizationID string, _ interface{}) {
	f.orgPushes = append(f.orgPushes, organizationID)
}

func (f *fakeBroadcaster) ToUser(userID string, _ interface{}) {
	f.userPushes = append(f.userPushes, userID)
}

type notificationFixture struct {
	service   *NotificationService
	storage   *fakeNotificationStorage
	broadcast *fakeBroadcaster
}

func newNotificationFixture(t *testing.T) *notificationFixture {
	t.Helper()
	storage := newFakeNotificationStorage()
	broadcast := &fakeBroadcaster{}
	clock := clockwork.NewFakeClockAt(date(2026, time.March, 1))

	return &notificationFixture{
		service:   NewNotificationService(storage, broadcast, clock, testLogger()),
		storage:   storage,
		broadcast: broadcast,
	}
}

func TestCreateNotificationBroadcastsToOrganization(t *testing.T) {
	f := newNotificationFixture(t)

	created, err := f.service.Create(context.Background(), testOrgID, dto.CreateNotification{
		Type:    string(entity.NotificationTypeSystem),
		Title:   "Maintenance",
		Message: "Scheduled maintenance tonight",
	})

	require.NoError(t, err)
	assert.Equal(t, entity.SeverityInfo, created.Severity)
	assert.Equal(t, []string{testOrgID}, f.broadcast.orgPushes)
	assert.Empty(t, f.broadcast.userPushes)
}

func TestCreateTargetedNotificationAlsoPushesUserRoom(t *testing.T) {
	f := newNotificationFixture(t)
	userID := uuid.New().String()

	_, err := f.service.Create(context.Background(), testOrgID, dto.CreateNotification{
		UserID:  userID,
		Type:    string(entity.NotificationTypeSystem),
		Title:   "Hello",
		Message: "Just for you",
	})

	require.NoError(t, err)
	assert.Equal(t, []string{userID}, f.broadcast.userPushes)
}

func TestListCapsLimit(t *testing.T) {
	f := newNotificationFixture(t)

	_, _, err := f.service.List(context.Background(), testOrgID, "user-1", dto.NotificationFilter{})
	require.NoError(t, err)
	assert.Equal(t, 50, f.storage.listedLimit)

	_, _, err = f.service.List(context.Background(), testOrgID, "user-1", dto.NotificationFilter{Limit: 1000})
	require.NoError(t, err)
	assert.Equal(t, 50, f.storage.listedLimit)

	_, _, err = f.service.List(context.Background(), testOrgID, "user-1", dto.NotificationFilter{Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 20, f.storage.listedLimit)
}

func TestMarkReadOtherUsersNotificationRejected(t *testing.T) {
	f := newNotificationFixture(t)
	otherUser := uuid.New().String()

	created, err := f.service.Create(context.Background(), testOrgID, dto.CreateNotification{
		UserID:  otherUser,
		Type:    string(entity.NotificationTypeSystem),
		Title:   "Private",
		Message: "Not yours",
	})
	require.NoError(t, err)

	err = f.service.MarkRead(context.Background(), testOrgID, "someone-else", created.ID)

	require.Error(t, err)
	assert.Equal(t, errorz.KindNotFound, errorz.KindOf(err))
}

func TestMarkReadAndUnreadCount(t *testing.T) {
	f := newNotificationFixture(t)
	created, err := f.service.Create(context.Background(), testOrgID, dto.CreateNotification{
		Type:    string(entity.NotificationTypeSystem),
		Title:   "Maintenance",
		Message: "Tonight",
	})
	require.NoError(t, err)

	_, unread, err := f.service.List(context.Background(), testOrgID, "user-1", dto.NotificationFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, unread)

	require.NoError(t, f.service.MarkRead(context.Background(), testOrgID, "user-1", created.ID))

	_, unread, err = f.service.List(context.Background(), testOrgID, "user-1", dto.NotificationFilter{})
	require.NoError(t, err)
	assert.Zero(t, unread)
}
