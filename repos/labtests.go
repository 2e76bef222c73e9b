package repos

import (
	"context"
	"time"

	models "github.com/clinio/clinic-server/models/clinic"
	"github.com/uptrace/bun"
)

type LabTestRepo struct {
	db *bun.DB
}

func NewLabTestRepo(db *bun.DB) *LabTestRepo {
	return &LabTestRepo{db: db}
}

func (c *LabTestRepo) AddLabTest(ctx context.Context, test models.LabTest) (*models.LabTest, error) {
	_, err := c.db.NewInsert().Model(&test).Column("patient_id", "name", "status").Returning("id, ordered_at").Exec(ctx)
	if err != nil {
		return nil, err
	}

	return &test, nil
}

func (c *LabTestRepo) LabTestsByPatient(ctx context.Context, patientId int64) ([]models.LabTest, error) {
	tests := make([]models.LabTest, 0)

	err := c.db.NewSelect().Model(&tests).Where("patient_id = ?", patientId).Order("ordered_at DESC").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return tests, nil
}

// SetResult stores the result and marks the test ready.
func (c *LabTestRepo) SetResult(ctx context.Context, id int64, result string) (*models.LabTest, error) {
	test := new(models.LabTest)
	now := time.Now()

	_, err := c.db.NewUpdate().Model(test).Set("result = ?", result).Set("status = ?", models.LabTestReady).Set("completed_at = ?", now).Where("id = ?", id).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}

	return test, nil
}
