package repos

import (
	"context"
	"errors"

	models "github.com/clinio/clinic-server/models/userdata"
	"github.com/uptrace/bun"
)

var ErrDuplicateEmail = errors.New("account email already registered")

type AccountRepo struct {
	db *bun.DB
}

func NewAccountRepo(db *bun.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// AddAccount returns ErrDuplicateEmail when the insert hits the unique
// email constraint: the conflict is ignored and no id comes back.
func (c *AccountRepo) AddAccount(ctx context.Context, account models.Account) (int64, error) {
	result, err := c.db.NewInsert().Model(&account).Column("name", "email", "password", "role", "phone").Ignore().Returning("id").Exec(ctx)
	if err != nil {
		return 0, err
	}

	id, _ := result.LastInsertId()
	if id == 0 {
		return 0, ErrDuplicateEmail
	}

	return id, nil
}

func (c *AccountRepo) AccountProfile(ctx context.Context, id int64) (*models.Account, error) {
	account := new(models.Account)

	err := c.db.NewSelect().Model(account).ExcludeColumn("password").Where(`"account"."id" = ?`, id).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return account, nil
}

func (c *AccountRepo) AccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	account := new(models.Account)

	err := c.db.NewSelect().Model(account).Where(`"account"."email" = ?`, email).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return account, nil
}
