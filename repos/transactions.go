package repos

import (
	"context"

	models "github.com/clinio/clinic-server/models/clinic"
	"github.com/uptrace/bun"
)

type TransactionRepo struct {
	db *bun.DB
}

func NewTransactionRepo(db *bun.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

func (c *TransactionRepo) AddTransaction(ctx context.Context, transaction models.Transaction) (*models.Transaction, error) {
	_, err := c.db.NewInsert().Model(&transaction).Column("account_id", "appointment_id", "amount", "currency", "method", "status").Returning("id, created_at").Exec(ctx)
	if err != nil {
		return nil, err
	}

	return &transaction, nil
}

func (c *TransactionRepo) TransactionsByAccount(ctx context.Context, accountId int64, skip, limit int) ([]models.Transaction, int, error) {
	transactions := make([]models.Transaction, 0)

	count, err := c.db.NewSelect().Model(&transactions).Where("account_id = ?", accountId).Order("created_at DESC").Offset(skip).Limit(limit).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return transactions, count, nil
}
