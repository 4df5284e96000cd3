package workflow

import (
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/frahmantamala/workflow-approval/internal"
	"github.com/frahmantamala/workflow-approval/internal/user"
)

// Repository defines the record-store operations the lifecycle engine
// needs.
type Repository interface {
	Create(w *Workflow) error
	GetByID(id string) (*Workflow, error)
	GetAll() ([]*Workflow, error)
	GetBySubmitter(username string) ([]*Workflow, error)
	GetByDepartment(department string) ([]*Workflow, error)
	GetPendingByDepartment(department string) ([]*Workflow, error)
	Save(w *Workflow) error
	CountAll() (int64, error)
	CountByStatus(status string) (int64, error)
}

// UserDirectory resolves submitters and deciders by username.
type UserDirectory interface {
	GetUserByUsername(username string) (*user.User, error)
}

// Service is the workflow lifecycle engine. It is stateless between calls;
// all state lives in the repository and isolation is the store's concern.
type Service struct {
	repo   Repository
	users  UserDirectory
	logger *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, users UserDirectory, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		logger: logger,
		now:    time.Now,
	}
}

// Submit creates a workflow on behalf of submitterUsername. The submitter
// must exist; status is forced to PENDING and department is copied from
// the submitter regardless of what the draft carries. Title, type and
// amount are persisted as supplied.
func (s *Service) Submit(dto SubmitWorkflowDTO, submitterUsername string) (*Workflow, error) {
	submitter, err := s.users.GetUserByUsername(submitterUsername)
	if err != nil {
		s.logger.Warn("submit rejected: unknown submitter", "username", submitterUsername)
		return nil, internal.ErrUserNotFound
	}

	now := s.now()
	wf := &Workflow{
		ID:          uuid.NewString(),
		Title:       dto.Title,
		Description: dto.Description,
		Type:        dto.Type,
		Amount:      dto.Amount,
		Status:      StatusPending,
		Department:  submitter.Department,
		SubmittedBy: submitter.Username,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(wf); err != nil {
		s.logger.Error("failed to create workflow", "error", err, "submitted_by", submitterUsername)
		return nil, err
	}

	s.logger.Info("workflow submitted",
		"workflow_id", wf.ID,
		"type", wf.Type,
		"department", wf.Department,
		"submitted_by", wf.SubmittedBy)

	return wf, nil
}

func (s *Service) ListAll() ([]*Workflow, error) {
	return s.repo.GetAll()
}

func (s *Service) ListBySubmitter(username string) ([]*Workflow, error) {
	return s.repo.GetBySubmitter(username)
}

func (s *Service) ListByDepartment(department string) ([]*Workflow, error) {
	return s.repo.GetByDepartment(department)
}

// ListPending returns the department's workflows still awaiting a
// decision: exactly the PENDING subset of ListByDepartment.
func (s *Service) ListPending(department string) ([]*Workflow, error) {
	return s.repo.GetPendingByDepartment(department)
}

// Decide records a decision on a workflow. Both the workflow and the
// decider must exist; when either is missing the same not-found signal is
// returned and nothing is written. The status string is stored as
// supplied: values outside PENDING/APPROVED/REJECTED are accepted, and an
// already-decided workflow can be decided again. Concurrent decisions on
// the same workflow are last-writer-wins.
func (s *Service) Decide(workflowID, status, deciderUsername string) (*Workflow, error) {
	wf, err := s.repo.GetByID(workflowID)
	if err != nil {
		if errors.Is(err, internal.ErrWorkflowNotFound) {
			s.logger.Warn("decide rejected: unknown workflow", "workflow_id", workflowID)
		}
		return nil, internal.ErrWorkflowNotFound
	}

	decider, err := s.users.GetUserByUsername(deciderUsername)
	if err != nil {
		s.logger.Warn("decide rejected: unknown decider", "workflow_id", workflowID, "username", deciderUsername)
		return nil, internal.ErrWorkflowNotFound
	}

	now := s.now()
	wf.Status = status
	wf.DecidedBy = &decider.Username
	wf.DecidedAt = &now
	wf.UpdatedAt = now

	if err := s.repo.Save(wf); err != nil {
		s.logger.Error("failed to persist decision", "error", err, "workflow_id", workflowID)
		return nil, err
	}

	s.logger.Info("workflow decided",
		"workflow_id", wf.ID,
		"status", status,
		"decided_by", decider.Username)

	return wf, nil
}
