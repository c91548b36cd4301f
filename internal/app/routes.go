package app

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/klokku/clockify-timeline/internal/rest"
)

const (
	serviceName    = "clockify-agent"
	serviceVersion = "1.0.0"
)

// RegisterRoutes registers all API endpoints.
func RegisterRoutes(r *mux.Router, deps *Dependencies) {

	// Service info
	r.HandleFunc("/", root).Methods("GET")
	r.HandleFunc("/health", health).Methods("GET")

	api := r.PathPrefix("/api/v1").Subrouter()

	// Timeline
	api.HandleFunc("/daily-timeline", deps.TimelineHandler.GetDailyTimeline).Methods("GET")
	api.HandleFunc("/project-timeline", deps.TimelineHandler.GetProjectTimeline).Methods("GET")

	// Projects
	api.HandleFunc("/projects", deps.ProjectsHandler.ListProjects).Methods("GET")
}

func root(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, map[string]string{
		"message": "Clockify Agent API",
		"version": serviceVersion,
	})
}

func health(w http.ResponseWriter, r *http.Request) {
	rest.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
	})
}
