package clockify

import (
	"net/http"

	"github.com/klokku/clockify-timeline/internal/rest"
	log "github.com/sirupsen/logrus"
)

type ProjectListDTO struct {
	Projects []string `json:"projects"`
	Count    int      `json:"count"`
}

type Handler struct {
	client Client
}

func NewHandler(c Client) *Handler {
	return &Handler{c}
}

// ListProjects godoc
// @Summary List available projects
// @Description Get the names of all active projects in the workspace
// @Tags Projects
// @Produce json
// @Success 200 {object} ProjectListDTO
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/v1/projects [get]
func (h *Handler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.client.GetProjects(r.Context())
	if err != nil {
		log.Errorf("Error listing projects: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, rest.ErrorResponse{
			Error:   "Internal server error",
			Details: "Failed to fetch projects",
			Code:    rest.CodeInternal,
		})
		return
	}

	names := make([]string, 0, len(projects))
	for _, project := range projects {
		names = append(names, project.Name)
	}

	rest.WriteJSON(w, http.StatusOK, ProjectListDTO{Projects: names, Count: len(names)})
}
