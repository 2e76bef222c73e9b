package clinic

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	TransactionPending  = "pending"
	TransactionPaid     = "paid"
	TransactionRefunded = "refunded"
)

// Transaction amounts are stored in minor currency units.
type Transaction struct {
	bun.BaseModel `bun:"clinic.transactions"`

	Id            int64     `bun:",pk,autoincrement" json:"id"`
	AccountId     int64     `bun:",notnull" json:"account_id"`
	AppointmentId int64     `bun:",nullzero" json:"appointment_id,omitempty"`
	Amount        int64     `json:"amount"`
	Currency      string    `json:"currency"`
	Method        string    `json:"method"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
}
