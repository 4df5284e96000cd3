package workflow

import "errors"

// SubmitWorkflowDTO is the submission payload. Status and department are
// accepted on the wire but always overridden by the engine: status starts
// at PENDING and department is copied from the submitter. Title, type and
// amount are passed through without validation.
type SubmitWorkflowDTO struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Type        string   `json:"type"`
	Amount      *float64 `json:"amount,omitempty"`
	Status      string   `json:"status,omitempty"`
	Department  string   `json:"department,omitempty"`
}

// DecideDTO records an approval decision. Both fields are required at the
// boundary; the status value itself is not constrained.
type DecideDTO struct {
	Status          string `json:"status"`
	ManagerUsername string `json:"managerUsername"`
}

func (dto DecideDTO) Validate() error {
	if dto.Status == "" || dto.ManagerUsername == "" {
		return errors.New("missing status or managerUsername")
	}
	return nil
}
