package userdata

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	NotificationAppointment = "appointment"
	NotificationLabResult   = "lab_result"
	NotificationPayment     = "payment"
	NotificationReminder    = "reminder"
)

// Notification always belongs to exactly one account. The only mutation
// after insert is flipping the read flag.
type Notification struct {
	bun.BaseModel `bun:"userdata.notifications"`

	Id        int64     `bun:",pk,autoincrement" json:"id"`
	AccountId int64     `bun:",notnull" json:"account_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `bun:"is_read,default:false" json:"is_read"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
}
