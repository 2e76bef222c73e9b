package clinic

import (
	"time"

	"github.com/uptrace/bun"
)

const (
	LabTestOrdered    = "ordered"
	LabTestProcessing = "processing"
	LabTestReady      = "ready"
)

type LabTest struct {
	bun.BaseModel `bun:"clinic.lab_tests"`

	Id          int64      `bun:",pk,autoincrement" json:"id"`
	PatientId   int64      `bun:",notnull" json:"patient_id"`
	Name        string     `json:"name"`
	Status      string     `json:"status"`
	Result      string     `json:"result,omitempty"`
	OrderedAt   time.Time  `bun:",nullzero,notnull,default:current_timestamp" json:"ordered_at"`
	CompletedAt *time.Time `bun:",nullzero" json:"completed_at,omitempty"`
}
