package notification

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/notification"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	mu      sync.Mutex
	stored  []*notification.Notification
	batches int
	muted   map[notification.NotificationType]bool
	prefs   []*notification.NotificationPreference
}

func (f *fakeRepo) CreateBatch(ctx context.Context, ns []*notification.Notification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stored = append(f.stored, ns...)
	f.batches++
	return nil
}

func (f *fakeRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.stored)
}

func (f *fakeRepo) GetByRecipient(ctx context.Context, recipientID string, page, pageSize int, unreadOnly bool) ([]*notification.Notification, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*notification.Notification
	for _, n := range f.stored {
		if n.RecipientID == recipientID && (!unreadOnly || !n.IsRead) {
			out = append(out, n)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) GetUnreadCount(ctx context.Context, recipientID string) (int, error) {
	ns, _, err := f.GetByRecipient(ctx, recipientID, 1, 100, true)
	return len(ns), err
}

func (f *fakeRepo) MarkAsRead(ctx context.Context, ids []string, recipientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.stored {
		for _, id := range ids {
			if n.ID == id && n.RecipientID == recipientID {
				n.IsRead = true
			}
		}
	}
	return nil
}

func (f *fakeRepo) MarkAllAsRead(ctx context.Context, recipientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, n := range f.stored {
		if n.RecipientID == recipientID {
			n.IsRead = true
		}
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id string, recipientID string) error {
	return nil
}

func (f *fakeRepo) GetPreferences(ctx context.Context, employeeID string) ([]*notification.NotificationPreference, error) {
	return f.prefs, nil
}

func (f *fakeRepo) UpsertPreference(ctx context.Context, pref *notification.NotificationPreference) error {
	f.prefs = append(f.prefs, pref)
	return nil
}

func (f *fakeRepo) IsNotificationEnabled(ctx context.Context, employeeID string, t notification.NotificationType) (bool, error) {
	return !f.muted[t], nil
}

func request(recipient string, t notification.NotificationType) notification.CreateNotificationRequest {
	return notification.CreateNotificationRequest{RecipientID: recipient, Type: t, Title: "title", Message: "message"}
}

func TestQueueNotification_FlushesOnStop(t *testing.T) {
	repo := &fakeRepo{muted: map[notification.NotificationType]bool{notification.TypeWorklogSubmitted: true}}
	svc := newService(repo, sse.NewHub(), Config{BatchSize: 50, FlushInterval: time.Hour, WorkerCount: 1})

	require.NoError(t, svc.QueueNotification(t.Context(), request("emp-1", notification.TypeAttendanceWarning)))
	require.NoError(t, svc.QueueNotification(t.Context(), request("emp-1", notification.TypeWorklogSubmitted)))
	require.NoError(t, svc.QueueBulkNotification(t.Context(), []notification.CreateNotificationRequest{
		request("emp-2", notification.TypeLeaveApproved),
		request("emp-3", notification.TypeLeaveDenied),
	}))
	assert.ErrorIs(t, svc.QueueNotification(t.Context(), request("emp-1", "birthday")), notification.ErrInvalidNotificationType)

	svc.Stop()
	svc.Stop()

	require.Equal(t, 3, repo.count(), "muted types are dropped")
	for _, n := range repo.stored {
		assert.NotEmpty(t, n.ID)
		assert.NotEqual(t, notification.TypeWorklogSubmitted, n.Type)
	}
}

func TestQueueNotification_FlushesFullBatch(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, sse.NewHub(), Config{BatchSize: 2, FlushInterval: time.Hour, WorkerCount: 1})
	defer svc.Stop()

	require.NoError(t, svc.QueueNotification(t.Context(), request("emp-1", notification.TypeAttendancePenalty)))
	require.NoError(t, svc.QueueNotification(t.Context(), request("emp-1", notification.TypeAttendancePenalty)))

	assert.Eventually(t, func() bool { return repo.count() == 2 }, time.Second, 10*time.Millisecond)
}

func TestQueueNotification_FullQueueInsertsDirectly(t *testing.T) {
	repo := &fakeRepo{}
	hub := sse.NewHub()
	// no workers: the queue only drains through the fallback
	svc := &service{
		repo:   repo,
		hub:    hub,
		config: Config{BatchSize: 10},
		now:    time.Now,
		queue:  make(chan notification.CreateNotificationRequest, 1),
		stopCh: make(chan struct{}),
	}
	events, cleanup := hub.Subscribe("emp-1")
	defer cleanup()

	require.NoError(t, svc.QueueNotification(t.Context(), request("emp-1", notification.TypeAttendanceReview)))
	assert.Equal(t, 0, repo.count())

	require.NoError(t, svc.QueueNotification(t.Context(), request("emp-1", notification.TypeAttendanceReview)))
	assert.Equal(t, 1, repo.count())

	require.Len(t, events, 1)
	event := <-events
	assert.Equal(t, "notification", event.Event)
	resp, ok := event.Data.(notification.NotificationResponse)
	require.True(t, ok)
	assert.Equal(t, notification.TypeAttendanceReview, resp.Type)
}

func TestSubscribe_ReceivesPersistedNotifications(t *testing.T) {
	repo := &fakeRepo{}
	svc := newService(repo, sse.NewHub(), Config{BatchSize: 1, FlushInterval: time.Hour, WorkerCount: 1})
	defer svc.Stop()

	ctx, cancel := context.WithCancel(t.Context())
	stream, cleanup := svc.Subscribe(ctx, "emp-1")
	defer cleanup()

	require.NoError(t, svc.QueueNotification(t.Context(), request("emp-1", notification.TypeAttendanceException)))

	select {
	case ev := <-stream:
		assert.Equal(t, notification.TypeAttendanceException, ev.Data.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
	}

	cancel()
	assert.Eventually(t, func() bool {
		_, open := <-stream
		return !open
	}, time.Second, 10*time.Millisecond)
}

func TestGetNotifications_AndMarkAsRead(t *testing.T) {
	repo := &fakeRepo{stored: []*notification.Notification{
		{ID: "n1", RecipientID: "emp-1", Type: notification.TypeLeaveApproved},
		{ID: "n2", RecipientID: "emp-1", Type: notification.TypeAttendanceWarning},
		{ID: "n3", RecipientID: "emp-2", Type: notification.TypeLeaveDenied},
	}}
	svc := &service{repo: repo}

	list, err := svc.GetNotifications(t.Context(), notification.ListNotificationsRequest{EmployeeID: "emp-1", PageSize: 500})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Total)
	assert.Equal(t, 2, list.UnreadCount)
	assert.Equal(t, 1, list.Page)
	assert.Equal(t, 20, list.PageSize)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, svc.MarkAsRead(t.Context(), "emp-1", notification.MarkAsReadRequest{}), &verrs)

	require.NoError(t, svc.MarkAsRead(t.Context(), "emp-1", notification.MarkAsReadRequest{NotificationIDs: []string{"n1", "n3"}}))
	count, err := svc.GetUnreadCount(t.Context(), "emp-1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, svc.MarkAllAsRead(t.Context(), "emp-1"))
	count, err = svc.GetUnreadCount(t.Context(), "emp-2")
	require.NoError(t, err)
	assert.Equal(t, 1, count, "other recipients are untouched")
}

func TestPreferences(t *testing.T) {
	repo := &fakeRepo{}
	svc := &service{repo: repo}

	require.NoError(t, svc.UpdatePreference(t.Context(), "emp-1", notification.UpdatePreferenceRequest{
		NotificationType: notification.TypeWorklogSubmitted, Enabled: false,
	}))
	assert.Error(t, svc.UpdatePreference(t.Context(), "emp-1", notification.UpdatePreferenceRequest{NotificationType: "nope"}))

	prefs, err := svc.GetPreferences(t.Context(), "emp-1")
	require.NoError(t, err)
	require.Len(t, prefs, len(notification.AllNotificationTypes()))
	for _, p := range prefs {
		assert.Equal(t, p.NotificationType != notification.TypeWorklogSubmitted, p.Enabled, p.NotificationType)
	}
}
