package repos

import (
	"context"
	"database/sql"
	"time"

	models "github.com/clinio/clinic-server/models/clinic"
	"github.com/uptrace/bun"
)

type AppointmentRepo struct {
	db *bun.DB
}

func NewAppointmentRepo(db *bun.DB) *AppointmentRepo {
	return &AppointmentRepo{db: db}
}

func (c *AppointmentRepo) AddAppointment(ctx context.Context, appointment models.Appointment) (*models.Appointment, error) {
	_, err := c.db.NewInsert().Model(&appointment).Column("patient_id", "staff_id", "scheduled_at", "duration_mins", "status", "reason").Returning("id, created_at").Exec(ctx)
	if err != nil {
		return nil, err
	}

	return &appointment, nil
}

func (c *AppointmentRepo) GetAppointment(ctx context.Context, id int64) (*models.Appointment, error) {
	appointment := new(models.Appointment)

	err := c.db.NewSelect().Model(appointment).Where(`"appointment"."id" = ?`, id).Scan(ctx)
	if err != nil {
		return nil, err
	}

	return appointment, nil
}

// AppointmentsByAccount lists appointments where the account is either
// the patient or the assigned staff member.
func (c *AppointmentRepo) AppointmentsByAccount(ctx context.Context, accountId int64, skip, limit int) ([]models.Appointment, int, error) {
	appointments := make([]models.Appointment, 0)

	count, err := c.db.NewSelect().Model(&appointments).WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.WhereOr("patient_id = ?", accountId).WhereOr("staff_id = ?", accountId)
	}).Order("scheduled_at DESC").Offset(skip).Limit(limit).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return appointments, count, nil
}

// UpdateStatus returns sql.ErrNoRows when no appointment has that id.
func (c *AppointmentRepo) UpdateStatus(ctx context.Context, id int64, status string) (*models.Appointment, error) {
	appointment := new(models.Appointment)

	result, err := c.db.NewUpdate().Model(appointment).Set("status = ?", status).Where("id = ?", id).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}

	if rows, _ := result.RowsAffected(); rows == 0 {
		return nil, sql.ErrNoRows
	}

	return appointment, nil
}

// DueForReminder returns appointments entering the reminder window:
// still booked or confirmed, scheduled between now and now+window.
func (c *AppointmentRepo) DueForReminder(ctx context.Context, window time.Duration) ([]models.Appointment, error) {
	appointments := make([]models.Appointment, 0)
	now := time.Now()

	err := c.db.NewSelect().Model(&appointments).Where("scheduled_at > ?", now).Where("scheduled_at <= ?", now.Add(window)).WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.WhereOr("status = ?", models.AppointmentBooked).WhereOr("status = ?", models.AppointmentConfirmed)
	}).Relation("Patient").Scan(ctx)
	if err != nil {
		return nil, err
	}

	return appointments, nil
}
