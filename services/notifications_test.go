package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clinio/clinic-server/channel"
	"github.com/clinio/clinic-server/models/userdata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- mocks ---

type mockStore struct{ mock.Mock }

func (m *mockStore) AddNotification(ctx context.Context, noti userdata.Notification) (*userdata.Notification, error) {
	args := m.Called(ctx, noti)
	if n, _ := args.Get(0).(*userdata.Notification); n != nil {
		return n, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStore) NotificationsByAccount(ctx context.Context, accountId int64, skip, limit int) ([]userdata.Notification, int, error) {
	args := m.Called(ctx, accountId, skip, limit)
	if n, _ := args.Get(0).([]userdata.Notification); n != nil {
		return n, args.Int(1), args.Error(2)
	}
	return nil, args.Int(1), args.Error(2)
}

func (m *mockStore) MarkAllRead(ctx context.Context, accountId int64) (int64, error) {
	args := m.Called(ctx, accountId)
	return int64(args.Int(0)), args.Error(1)
}

type mockPusher struct{ mock.Mock }

func (m *mockPusher) SendNotification(accountId int64, payload channel.Payload) error {
	return m.Called(accountId, payload).Error(0)
}

func newService(store NotificationStore, pusher Pusher) *NotificationService {
	return &NotificationService{store: store, pusher: pusher}
}

// --- tests ---

func TestCreatePersistsBeforePush(t *testing.T) {
	store := new(mockStore)
	pusher := new(mockPusher)
	svc := newService(store, pusher)

	created := time.Now()
	saved := &userdata.Notification{
		Id:        7,
		AccountId: 42,
		Type:      "appointment",
		Title:     "Reminder",
		Message:   "Your appointment is tomorrow",
		CreatedAt: created,
	}

	store.On("AddNotification", mock.Anything, mock.MatchedBy(func(n userdata.Notification) bool {
		return n.AccountId == 42 && n.Type == "appointment" && !n.Read
	})).Return(saved, nil)

	// The push must carry the persisted identity, not the draft.
	pusher.On("SendNotification", int64(42), channel.Payload{
		Id:        7,
		Type:      "appointment",
		Title:     "Reminder",
		Message:   "Your appointment is tomorrow",
		CreatedAt: created,
	}).Return(nil)

	got, err := svc.Create(context.Background(), NotificationDetails{
		Type:    "appointment",
		Title:   "Reminder",
		Message: "Your appointment is tomorrow",
	}, 42)

	require.NoError(t, err)
	assert.Equal(t, int64(7), got.Id)
	assert.False(t, got.Read)
	store.AssertExpectations(t)
	pusher.AssertExpectations(t)
}

func TestCreatePushFailureDoesNotFailCreate(t *testing.T) {
	store := new(mockStore)
	pusher := new(mockPusher)
	svc := newService(store, pusher)

	store.On("AddNotification", mock.Anything, mock.Anything).Return(&userdata.Notification{Id: 3, AccountId: 8}, nil)
	pusher.On("SendNotification", int64(8), mock.Anything).Return(errors.New("transport down"))

	got, err := svc.Create(context.Background(), NotificationDetails{Type: "payment", Title: "t", Message: "m"}, 8)

	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Id)
}

func TestCreatePersistenceFailureSkipsPush(t *testing.T) {
	store := new(mockStore)
	pusher := new(mockPusher)
	svc := newService(store, pusher)

	store.On("AddNotification", mock.Anything, mock.Anything).Return(nil, errors.New("db unavailable"))

	_, err := svc.Create(context.Background(), NotificationDetails{Type: "payment", Title: "t", Message: "m"}, 8)

	require.Error(t, err)
	pusher.AssertNotCalled(t, "SendNotification", mock.Anything, mock.Anything)
}

func TestCreateRequiresAccount(t *testing.T) {
	store := new(mockStore)
	pusher := new(mockPusher)
	svc := newService(store, pusher)

	_, err := svc.Create(context.Background(), NotificationDetails{Type: "payment", Title: "t", Message: "m"}, 0)

	require.ErrorIs(t, err, ErrMissingAccount)
	store.AssertNotCalled(t, "AddNotification", mock.Anything, mock.Anything)
}

func TestListPaginationFallbacks(t *testing.T) {
	cases := []struct {
		name      string
		skip      string
		limit     string
		wantSkip  int
		wantLimit int
	}{
		{"absent", "", "", 0, 10},
		{"non numeric", "abc", "x", 0, 10},
		{"negative", "-3", "-1", 0, 10},
		{"valid", "5", "2", 5, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := new(mockStore)
			svc := newService(store, new(mockPusher))

			store.On("NotificationsByAccount", mock.Anything, int64(1), tc.wantSkip, tc.wantLimit).Return([]userdata.Notification{}, 0, nil)

			_, _, err := svc.List(context.Background(), 1, tc.skip, tc.limit)

			require.NoError(t, err)
			store.AssertExpectations(t)
		})
	}
}

func TestListReturnsPageAndTotal(t *testing.T) {
	store := new(mockStore)
	svc := newService(store, new(mockPusher))

	page := []userdata.Notification{{Id: 2}, {Id: 1}}
	store.On("NotificationsByAccount", mock.Anything, int64(1), 0, 10).Return(page, 5, nil)

	notis, total, err := svc.List(context.Background(), 1, "", "")

	require.NoError(t, err)
	assert.Len(t, notis, 2)
	assert.Equal(t, 5, total)
}

func TestReadAllIsIdempotent(t *testing.T) {
	store := new(mockStore)
	svc := newService(store, new(mockPusher))

	store.On("MarkAllRead", mock.Anything, int64(1)).Return(3, nil).Once()
	store.On("MarkAllRead", mock.Anything, int64(1)).Return(0, nil).Once()

	first, err := svc.ReadAll(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), first)

	second, err := svc.ReadAll(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(0), second)
}
