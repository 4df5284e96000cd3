package analytics

import (
	"context"
	"log/slog"
	"math"

	"github.com/frahmantamala/workflow-approval/internal"
	"github.com/frahmantamala/workflow-approval/internal/aiclient"
	"github.com/frahmantamala/workflow-approval/internal/core/resilient"
	"github.com/frahmantamala/workflow-approval/internal/workflow"
)

// Predictor is the slice of the ML client the aggregator consumes.
type Predictor interface {
	PredictApproval(ctx context.Context, req aiclient.PredictionRequest) *aiclient.Prediction
	FetchAnalytics(ctx context.Context) (map[string]interface{}, error)
}

// Service aggregates workflow statistics, preferring the remote analytics
// source and falling back to counts computed from the record store.
type Service struct {
	workflows workflow.Repository
	predictor Predictor
	logger    *slog.Logger
}

func NewService(workflows workflow.Repository, predictor Predictor, logger *slog.Logger) *Service {
	return &Service{
		workflows: workflows,
		predictor: predictor,
		logger:    logger,
	}
}

// GetAnalytics returns the remote summary verbatim when the remote call
// succeeds and its payload carries no fallback marker; otherwise the
// summary is computed from the record store and tagged source=database.
// Store failures during the local computation are surfaced, remote
// failures never are.
func (s *Service) GetAnalytics(ctx context.Context) (*Result, error) {
	var dbErr error

	result, usedFallback := resilient.Lookup(ctx,
		s.fetchRemote,
		func(r *Result) bool { return r.degraded },
		func() *Result {
			r, err := s.databaseAnalytics()
			dbErr = err
			return r
		},
	)

	if usedFallback {
		if dbErr != nil {
			s.logger.Error("database analytics failed", "error", dbErr)
			return nil, dbErr
		}
		s.logger.Info("analytics served from database fallback")
	}

	return result, nil
}

func (s *Service) fetchRemote(ctx context.Context) (*Result, error) {
	payload, err := s.predictor.FetchAnalytics(ctx)
	if err != nil {
		s.logger.Warn("remote analytics unavailable", "error", err)
		return nil, err
	}

	_, degraded := payload["fallback"]
	return &Result{
		Summary:  payload["summary"],
		Source:   SourceRemote,
		degraded: degraded,
	}, nil
}

func (s *Service) databaseAnalytics() (*Result, error) {
	total, err := s.workflows.CountAll()
	if err != nil {
		return nil, err
	}
	pending, err := s.workflows.CountByStatus(workflow.StatusPending)
	if err != nil {
		return nil, err
	}
	approved, err := s.workflows.CountByStatus(workflow.StatusApproved)
	if err != nil {
		return nil, err
	}
	rejected, err := s.workflows.CountByStatus(workflow.StatusRejected)
	if err != nil {
		return nil, err
	}

	var approvalRate int64
	if total > 0 {
		approvalRate = int64(math.Round(float64(approved) / float64(total) * 100))
	}

	return &Result{
		Summary: Summary{
			TotalWorkflows:    total,
			PendingWorkflows:  pending,
			ApprovedWorkflows: approved,
			RejectedWorkflows: rejected,
			ApprovalRate:      approvalRate,
		},
		Source: SourceDatabase,
	}, nil
}

// GetAIPrediction scores a single workflow. The workflow must exist; the
// prediction itself never fails because the gateway absorbs remote
// outages with its local heuristic.
func (s *Service) GetAIPrediction(ctx context.Context, workflowID string) (*aiclient.Prediction, error) {
	wf, err := s.workflows.GetByID(workflowID)
	if err != nil {
		return nil, internal.ErrWorkflowNotFound
	}

	return s.predictor.PredictApproval(ctx, aiclient.PredictionRequest{
		Title:       wf.Title,
		Description: wf.Description,
		Type:        wf.Type,
		Amount:      wf.Amount,
		Department:  wf.Department,
	}), nil
}
