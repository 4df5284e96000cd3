package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/frahmantamala/workflow-approval/internal"
	workflowDatamodel "github.com/frahmantamala/workflow-approval/internal/core/datamodel/workflow"
	"github.com/frahmantamala/workflow-approval/internal/workflow"
)

// WorkflowRepository implements workflow.Repository using GORM.
type WorkflowRepository struct {
	db *gorm.DB
}

func NewWorkflowRepository(db *gorm.DB) workflow.Repository {
	return &WorkflowRepository{db: db}
}

func (r *WorkflowRepository) Create(w *workflow.Workflow) error {
	return r.db.Create(workflow.ToDataModel(w)).Error
}

func (r *WorkflowRepository) GetByID(id string) (*workflow.Workflow, error) {
	var record workflowDatamodel.Workflow
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrWorkflowNotFound
		}
		return nil, err
	}
	return workflow.FromDataModel(&record), nil
}

func (r *WorkflowRepository) GetAll() ([]*workflow.Workflow, error) {
	var records []*workflowDatamodel.Workflow
	if err := r.db.Find(&records).Error; err != nil {
		return nil, err
	}
	return workflow.FromDataModelSlice(records), nil
}

func (r *WorkflowRepository) GetBySubmitter(username string) ([]*workflow.Workflow, error) {
	var records []*workflowDatamodel.Workflow
	err := r.db.Where("submitted_by = ?", username).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return workflow.FromDataModelSlice(records), nil
}

func (r *WorkflowRepository) GetByDepartment(department string) ([]*workflow.Workflow, error) {
	var records []*workflowDatamodel.Workflow
	err := r.db.Where("department = ?", department).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return workflow.FromDataModelSlice(records), nil
}

func (r *WorkflowRepository) GetPendingByDepartment(department string) ([]*workflow.Workflow, error) {
	var records []*workflowDatamodel.Workflow
	err := r.db.Where("department = ? AND status = ?", department, workflow.StatusPending).
		Order("created_at ASC"). // FIFO for approvals
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return workflow.FromDataModelSlice(records), nil
}

func (r *WorkflowRepository) Save(w *workflow.Workflow) error {
	return r.db.Save(workflow.ToDataModel(w)).Error
}

func (r *WorkflowRepository) CountAll() (int64, error) {
	var count int64
	err := r.db.Model(&workflowDatamodel.Workflow{}).Count(&count).Error
	return count, err
}

func (r *WorkflowRepository) CountByStatus(status string) (int64, error) {
	var count int64
	err := r.db.Model(&workflowDatamodel.Workflow{}).Where("status = ?", status).Count(&count).Error
	return count, err
}
