package repos

import (
	"context"

	models "github.com/clinio/clinic-server/models/userdata"
	"github.com/uptrace/bun"
)

type NotificationRepo struct {
	db *bun.DB
}

func NewNotificationRepo(db *bun.DB) *NotificationRepo {
	return &NotificationRepo{db: db}
}

// AddNotification inserts the record and returns it with the
// server-assigned id and created_at.
func (c *NotificationRepo) AddNotification(ctx context.Context, noti models.Notification) (*models.Notification, error) {
	_, err := c.db.NewInsert().Model(&noti).Column("account_id", "type", "title", "message").Returning("id, is_read, created_at").Exec(ctx)
	if err != nil {
		return nil, err
	}

	return &noti, nil
}

// NotificationsByAccount returns one page ordered most recent first,
// plus the total count for the account.
func (c *NotificationRepo) NotificationsByAccount(ctx context.Context, accountId int64, skip, limit int) ([]models.Notification, int, error) {
	notis := make([]models.Notification, 0)

	count, err := c.db.NewSelect().Model(&notis).Where("account_id = ?", accountId).Order("created_at DESC").Offset(skip).Limit(limit).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return notis, count, nil
}

func (c *NotificationRepo) MarkAllRead(ctx context.Context, accountId int64) (int64, error) {
	result, err := c.db.NewUpdate().Model((*models.Notification)(nil)).Set("is_read = TRUE").Where("account_id = ?", accountId).Where("is_read = FALSE").Exec(ctx)
	if err != nil {
		return 0, err
	}

	updated, _ := result.RowsAffected()
	return updated, nil
}
