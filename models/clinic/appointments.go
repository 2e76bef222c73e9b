package clinic

import (
	"time"

	"github.com/clinio/clinic-server/models/userdata"
	"github.com/uptrace/bun"
)

const (
	AppointmentBooked    = "booked"
	AppointmentConfirmed = "confirmed"
	AppointmentCompleted = "completed"
	AppointmentCancelled = "cancelled"
)

type Appointment struct {
	bun.BaseModel `bun:"clinic.appointments"`

	Id           int64             `bun:",pk,autoincrement" json:"id"`
	PatientId    int64             `bun:",notnull" json:"patient_id"`
	StaffId      int64             `bun:",notnull" json:"staff_id"`
	ScheduledAt  time.Time         `bun:",notnull" json:"scheduled_at"`
	DurationMins int               `json:"duration_mins"`
	Status       string            `json:"status"`
	Reason       string            `json:"reason,omitempty"`
	CreatedAt    time.Time         `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	Patient      *userdata.Account `bun:"rel:belongs-to,join:patient_id=id" json:"patient,omitempty"`
	Staff        *userdata.Account `bun:"rel:belongs-to,join:staff_id=id" json:"staff,omitempty"`
}
