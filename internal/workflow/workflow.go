package workflow

import (
	"time"

	workflowDatamodel "github.com/frahmantamala/workflow-approval/internal/core/datamodel/workflow"
)

// Status values a workflow moves through. Decide accepts the status string
// as supplied, so these are the conventional values rather than a closed
// set (see Service.Decide).
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

// Request type tags.
const (
	TypeBudget   = "BUDGET"
	TypePurchase = "PURCHASE"
	TypeLeave    = "LEAVE"
	TypeProject  = "PROJECT"
)

// Workflow is a single approval request. Department is a snapshot of the
// submitter's department at submission time; DecidedBy is set only once a
// decision has been recorded.
type Workflow struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	Amount      *float64   `json:"amount,omitempty"`
	Department  string     `json:"department"`
	SubmittedBy string     `json:"submitted_by"`
	DecidedBy   *string    `json:"decided_by,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DecidedAt   *time.Time `json:"decided_at,omitempty"`
}

func (w *Workflow) IsPending() bool {
	return w.Status == StatusPending
}

func ToDataModel(w *Workflow) *workflowDatamodel.Workflow {
	return &workflowDatamodel.Workflow{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Type:        w.Type,
		Status:      w.Status,
		Amount:      w.Amount,
		Department:  w.Department,
		SubmittedBy: w.SubmittedBy,
		DecidedBy:   w.DecidedBy,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
		DecidedAt:   w.DecidedAt,
	}
}

func FromDataModel(w *workflowDatamodel.Workflow) *Workflow {
	return &Workflow{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Type:        w.Type,
		Status:      w.Status,
		Amount:      w.Amount,
		Department:  w.Department,
		SubmittedBy: w.SubmittedBy,
		DecidedBy:   w.DecidedBy,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
		DecidedAt:   w.DecidedAt,
	}
}

func FromDataModelSlice(records []*workflowDatamodel.Workflow) []*Workflow {
	result := make([]*Workflow, len(records))
	for i, w := range records {
		result[i] = FromDataModel(w)
	}
	return result
}
