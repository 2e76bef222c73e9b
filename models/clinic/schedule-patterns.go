package clinic

import "github.com/uptrace/bun"

// SchedulePattern is a weekly recurring availability window for one
// staff member. Minutes are counted from midnight.
type SchedulePattern struct {
	bun.BaseModel `bun:"clinic.schedule_patterns"`

	Id          int64 `bun:",pk,autoincrement" json:"id"`
	StaffId     int64 `bun:",notnull" json:"staff_id"`
	Weekday     int   `json:"weekday"`
	StartMinute int   `json:"start_minute"`
	EndMinute   int   `json:"end_minute"`
	SlotMins    int   `json:"slot_mins"`
}
