package services

import (
	"context"
	"errors"

	"github.com/clinio/clinic-server/channel"
	"github.com/clinio/clinic-server/models/userdata"
	"github.com/clinio/clinic-server/repos"
	"github.com/clinio/clinic-server/utils"
	"github.com/rs/zerolog/log"
)

var ErrMissingAccount = errors.New("notification requires an owning account")

// NotificationStore is the persistence capability the service needs.
type NotificationStore interface {
	AddNotification(ctx context.Context, noti userdata.Notification) (*userdata.Notification, error)
	NotificationsByAccount(ctx context.Context, accountId int64, skip, limit int) ([]userdata.Notification, int, error)
	MarkAllRead(ctx context.Context, accountId int64) (int64, error)
}

// Pusher is the best-effort realtime delivery capability.
type Pusher interface {
	SendNotification(accountId int64, payload channel.Payload) error
}

type NotificationDetails struct {
	Type    string `json:"type" validate:"required,min=1,max=32"`
	Title   string `json:"title" validate:"required,min=1,max=256"`
	Message string `json:"message" validate:"required,min=1,max=2048"`
}

// NotificationService is the only component allowed to mutate
// notifications. Writes go to the store first; the realtime push is a
// second, independent effect that never fails the operation.
type NotificationService struct {
	store  NotificationStore
	pusher Pusher
}

func NewNotificationService(store *repos.NotificationRepo, registry *channel.Registry) *NotificationService {
	return &NotificationService{store: store, pusher: registry}
}

// Create persists the notification and then attempts a realtime push
// with the saved record. The insert must complete (assigning id and
// created_at) before the push so a client receiving it can use the id
// immediately. A push failure is logged and swallowed; a persistence
// failure aborts with no push attempted.
func (s *NotificationService) Create(ctx context.Context, details NotificationDetails, accountId int64) (*userdata.Notification, error) {
	if accountId <= 0 {
		return nil, ErrMissingAccount
	}

	saved, err := s.store.AddNotification(ctx, userdata.Notification{
		AccountId: accountId,
		Type:      details.Type,
		Title:     details.Title,
		Message:   details.Message,
	})
	if err != nil {
		return nil, err
	}

	if err := s.pusher.SendNotification(accountId, channel.Payload{
		Id:        saved.Id,
		Type:      saved.Type,
		Title:     saved.Title,
		Message:   saved.Message,
		CreatedAt: saved.CreatedAt,
	}); err != nil {
		log.Warn().Err(err).Int64("account", accountId).Msg("Realtime push failed, notification remains persisted")
	}

	return saved, nil
}

// List returns one page ordered most recent first plus the total count
// for the account. skip and limit arrive as raw query strings; invalid
// values fall back to the defaults.
func (s *NotificationService) List(ctx context.Context, accountId int64, skip, limit string) ([]userdata.Notification, int, error) {
	if accountId <= 0 {
		return nil, 0, ErrMissingAccount
	}

	offset, size := utils.ParsePagination(skip, limit)
	return s.store.NotificationsByAccount(ctx, accountId, offset, size)
}

// ReadAll marks every unread notification of the account as read.
// Idempotent: the second call updates zero rows.
func (s *NotificationService) ReadAll(ctx context.Context, accountId int64) (int64, error) {
	if accountId <= 0 {
		return 0, ErrMissingAccount
	}

	return s.store.MarkAllRead(ctx, accountId)
}
