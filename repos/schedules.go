package repos

import (
	"context"

	models "github.com/clinio/clinic-server/models/clinic"
	"github.com/uptrace/bun"
)

type ScheduleRepo struct {
	db *bun.DB
}

func NewScheduleRepo(db *bun.DB) *ScheduleRepo {
	return &ScheduleRepo{db: db}
}

func (c *ScheduleRepo) AddPattern(ctx context.Context, pattern models.SchedulePattern) (int64, error) {
	result, err := c.db.NewInsert().Model(&pattern).Returning("id").Exec(ctx)
	if err != nil {
		return 0, err
	}

	id, _ := result.LastInsertId()
	return id, nil
}

func (c *ScheduleRepo) PatternsByStaff(ctx context.Context, staffId int64) ([]models.SchedulePattern, error) {
	patterns := make([]models.SchedulePattern, 0)

	err := c.db.NewSelect().Model(&patterns).Where("staff_id = ?", staffId).Order("weekday ASC", "start_minute ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return patterns, nil
}

func (c *ScheduleRepo) RemovePattern(ctx context.Context, id, staffId int64) (int64, error) {
	result, err := c.db.NewDelete().Model((*models.SchedulePattern)(nil)).Where("id = ?", id).Where("staff_id = ?", staffId).Exec(ctx)
	if err != nil {
		return 0, err
	}

	removed, _ := result.RowsAffected()
	return removed, nil
}
