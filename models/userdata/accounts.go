package userdata

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	RolePatient = "patient"
	RoleStaff   = "staff"
	RoleAdmin   = "admin"
)

type Account struct {
	bun.BaseModel `bun:"userdata.accounts"`

	Id        int64     `bun:",pk,autoincrement" json:"id,omitempty"`
	Name      string    `json:"name,omitempty"`
	Email     string    `json:"email,omitempty"`
	Password  string    `json:"-"`
	Role      string    `json:"role,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Verified  bool      `json:"verified,omitempty"`
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at,omitempty"`
}
