package analytics

import (
	"context"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/workflow-approval/internal/aiclient"
	"github.com/frahmantamala/workflow-approval/internal/transport"
	"github.com/frahmantamala/workflow-approval/pkg/logger"
)

type ServiceAPI interface {
	GetAnalytics(ctx context.Context) (*Result, error)
	GetAIPrediction(ctx context.Context, workflowID string) (*aiclient.Prediction, error)
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

func (h *Handler) GetAnalytics(w http.ResponseWriter, r *http.Request) {
	result, err := h.Service.GetAnalytics(r.Context())
	if err != nil {
		h.Logger.Error("GetAnalytics: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetAIPrediction(w http.ResponseWriter, r *http.Request) {
	workflowID := chi.URLParam(r, "id")

	prediction, err := h.Service.GetAIPrediction(r.Context(), workflowID)
	if err != nil {
		h.Logger.Error("GetAIPrediction: service error", "error", err, "workflow_id", workflowID)
		h.HandleServiceError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, prediction)
}
