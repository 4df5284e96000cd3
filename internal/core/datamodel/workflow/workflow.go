package workflow

import "time"

// Workflow is the persistence shape of an approval request. Department is
// a snapshot copied from the submitter at creation time, never re-derived.
type Workflow struct {
	ID          string     `json:"id" gorm:"primaryKey"`
	Title       string     `json:"title" gorm:"not null"`
	Description string     `json:"description" gorm:"size:1000"`
	Type        string     `json:"type" gorm:"not null"`
	Status      string     `json:"status" gorm:"not null;default:PENDING"`
	Amount      *float64   `json:"amount,omitempty"`
	Department  string     `json:"department"`
	SubmittedBy string     `json:"submitted_by" gorm:"column:submitted_by;not null"`
	DecidedBy   *string    `json:"decided_by,omitempty" gorm:"column:decided_by"`
	CreatedAt   time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt   time.Time  `json:"updated_at" gorm:"column:updated_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty" gorm:"column:decided_at"`
}

func (Workflow) TableName() string {
	return "workflows"
}
