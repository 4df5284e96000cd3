package workflow

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/workflow-approval/internal/transport"
	"github.com/frahmantamala/workflow-approval/pkg/logger"
)

type ServiceAPI interface {
	Submit(dto SubmitWorkflowDTO, submitterUsername string) (*Workflow, error)
	ListAll() ([]*Workflow, error)
	ListBySubmitter(username string) ([]*Workflow, error)
	ListByDepartment(department string) ([]*Workflow, error)
	ListPending(department string) ([]*Workflow, error)
	Decide(workflowID, status, deciderUsername string) (*Workflow, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) ListWorkflows(w http.ResponseWriter, r *http.Request) {
	workflows, err := h.Service.ListAll()
	if err != nil {
		h.Logger.Error("ListWorkflows: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, workflows)
}

func (h *Handler) ListUserWorkflows(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	workflows, err := h.Service.ListBySubmitter(username)
	if err != nil {
		h.Logger.Error("ListUserWorkflows: service error", "error", err, "username", username)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, workflows)
}

func (h *Handler) ListDepartmentWorkflows(w http.ResponseWriter, r *http.Request) {
	department := chi.URLParam(r, "department")
	workflows, err := h.Service.ListByDepartment(department)
	if err != nil {
		h.Logger.Error("ListDepartmentWorkflows: service error", "error", err, "department", department)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, workflows)
}

func (h *Handler) ListPendingWorkflows(w http.ResponseWriter, r *http.Request) {
	department := chi.URLParam(r, "department")
	workflows, err := h.Service.ListPending(department)
	if err != nil {
		h.Logger.Error("ListPendingWorkflows: service error", "error", err, "department", department)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, workflows)
}

func (h *Handler) SubmitWorkflow(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var dto SubmitWorkflowDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("SubmitWorkflow: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	wf, err := h.Service.Submit(dto, username)
	if err != nil {
		h.Logger.Error("SubmitWorkflow: service error", "error", err, "username", username)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("SubmitWorkflow: workflow created",
		"workflow_id", wf.ID,
		"type", wf.Type,
		"submitted_by", username)

	h.WriteJSON(w, http.StatusCreated, wf)
}

func (h *Handler) DecideWorkflow(w http.ResponseWriter, r *http.Request) {
	workflowID := chi.URLParam(r, "id")

	var dto DecideDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("DecideWorkflow: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.Logger.Error("DecideWorkflow: validation error", "error", err)
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	wf, err := h.Service.Decide(workflowID, dto.Status, dto.ManagerUsername)
	if err != nil {
		h.Logger.Error("DecideWorkflow: service error", "error", err, "workflow_id", workflowID)
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("DecideWorkflow: decision recorded",
		"workflow_id", wf.ID,
		"status", dto.Status,
		"decided_by", dto.ManagerUsername)

	h.WriteJSON(w, http.StatusOK, wf)
}
