package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	chiMiddleware "github.com/go-chi/chi/middleware"

	"github.com/frahmantamala/workflow-approval/internal/analytics"
	"github.com/frahmantamala/workflow-approval/internal/auth"
	"github.com/frahmantamala/workflow-approval/internal/transport/middleware"
	"github.com/frahmantamala/workflow-approval/internal/transport/swagger"
	"github.com/frahmantamala/workflow-approval/internal/user"
	"github.com/frahmantamala/workflow-approval/internal/workflow"
)

// RegisterAllRoutes wires the boundary layer. Route shapes mirror the
// dashboard client: workflows are submitted on behalf of a username and
// decided through a status update on the workflow id.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	userHandler *user.Handler,
	workflowHandler *workflow.Handler,
	analyticsHandler *analytics.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(chiMiddleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		if authHandler != nil {
			r.Route("/auth", func(ar chi.Router) {
				ar.Post("/login", authHandler.Login)
				ar.Post("/refresh", authHandler.RefreshToken)
			})
		}

		if workflowHandler != nil {
			r.Route("/workflows", func(wr chi.Router) {
				wr.Get("/", workflowHandler.ListWorkflows)
				wr.Get("/user/{username}", workflowHandler.ListUserWorkflows)
				wr.Get("/department/{department}", workflowHandler.ListDepartmentWorkflows)
				wr.Get("/pending/{department}", workflowHandler.ListPendingWorkflows)
				wr.Post("/{username}", workflowHandler.SubmitWorkflow)
				wr.Put("/{id}/status", workflowHandler.DecideWorkflow)

				if analyticsHandler != nil {
					wr.Get("/analytics", analyticsHandler.GetAnalytics)
					wr.Get("/{id}/ai-prediction", analyticsHandler.GetAIPrediction)
				}
			})
		}

		if userHandler != nil {
			r.Route("/users", func(ur chi.Router) {
				ur.Get("/", userHandler.GetAllUsers)
				ur.Get("/role/{role}", userHandler.GetUsersByRole)
				ur.Get("/department/{department}", userHandler.GetUsersByDepartment)
				ur.Get("/{userId}", userHandler.GetUser)
				ur.Post("/", userHandler.CreateUser)
				ur.Put("/{userId}", userHandler.UpdateUser)
				ur.Delete("/{userId}", userHandler.DeleteUser)
			})
		}
	})
}
