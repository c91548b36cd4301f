package timeline

import (
	"errors"
	"net/http"

	"github.com/klokku/clockify-timeline/internal/config"
	"github.com/klokku/clockify-timeline/internal/rest"
	log "github.com/sirupsen/logrus"
)

type TimeBlockDTO struct {
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Duration    string  `json:"duration"`
	Description *string `json:"description"`
}

type ActivityDTO struct {
	TotalHours float64        `json:"total_hours"`
	TimeBlocks []TimeBlockDTO `json:"time_blocks"`
}

type DayDTO struct {
	Projects map[string]ActivityDTO `json:"projects"`
	DayTotal float64                `json:"day_total"`
}

type ProjectTotalDTO struct {
	Hours     float64 `json:"hours"`
	Formatted string  `json:"formatted"`
}

type DailySummaryDTO struct {
	Period        string                     `json:"period"`
	ActiveDays    int                        `json:"active_days"`
	TotalTime     string                     `json:"total_time"`
	ProjectTotals map[string]ProjectTotalDTO `json:"project_totals"`
}

type ProjectSummaryDTO struct {
	Period         string `json:"period"`
	ActiveDays     int    `json:"active_days"`
	TotalTime      string `json:"total_time"`
	AvgDaily       string `json:"avg_daily"`
	LongestSession string `json:"longest_session"`
	AvgSession     string `json:"avg_session"`
}

type DailyTimelineDTO struct {
	Days    map[string]DayDTO `json:"days"`
	Summary DailySummaryDTO   `json:"summary"`
}

type ProjectTimelineDTO struct {
	ProjectName string                 `json:"project_name"`
	Days        map[string]ActivityDTO `json:"days"`
	Summary     ProjectSummaryDTO      `json:"summary"`
}

type Handler struct {
	service       Service
	csvRenderer   Renderer
	maxPeriodDays int
}

func NewHandler(service Service, csvRenderer Renderer, settings config.Timeline) *Handler {
	return &Handler{service: service, csvRenderer: csvRenderer, maxPeriodDays: settings.MaxPeriodDays}
}

// GetDailyTimeline godoc
// @Summary Get daily timeline
// @Description Timeline data grouped by days and projects for a date range
// @Tags Timeline
// @Produce json,text/csv
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Success 200 {object} DailyTimelineDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/v1/daily-timeline [get]
func (h *Handler) GetDailyTimeline(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	period, err := ParseDateRange(query.Get("start_date"), query.Get("end_date"), h.maxPeriodDays)
	if err != nil {
		writeError(w, err)
		return
	}

	log.WithFields(log.Fields{
		"startDate": query.Get("start_date"),
		"endDate":   query.Get("end_date"),
	}).Info("Processing daily timeline request")

	timeline, err := h.service.GetDailyTimeline(r.Context(), period)
	if err != nil {
		writeError(w, err)
		return
	}

	if r.Header.Get("Accept") == "text/csv" {
		csv, err := h.csvRenderer.RenderDailyTimeline(timeline)
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(csv)); err != nil {
			log.Errorf("Error writing response: %v", err)
		}
		return
	}

	rest.WriteJSON(w, http.StatusOK, dailyTimelineToDTO(timeline))
}

// GetProjectTimeline godoc
// @Summary Get project timeline
// @Description Timeline data of a single project over a date range
// @Tags Timeline
// @Produce json
// @Param start_date query string true "Start date (YYYY-MM-DD)"
// @Param end_date query string true "End date (YYYY-MM-DD)"
// @Param project query string true "Exact project name"
// @Success 200 {object} ProjectTimelineDTO
// @Failure 400 {object} rest.ErrorResponse
// @Failure 404 {object} rest.ErrorResponse
// @Failure 500 {object} rest.ErrorResponse
// @Router /api/v1/project-timeline [get]
func (h *Handler) GetProjectTimeline(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	period, err := ParseDateRange(query.Get("start_date"), query.Get("end_date"), h.maxPeriodDays)
	if err != nil {
		writeError(w, err)
		return
	}
	projectName := query.Get("project")
	if err := ValidateProjectName(projectName); err != nil {
		writeError(w, err)
		return
	}

	log.WithFields(log.Fields{
		"startDate": query.Get("start_date"),
		"endDate":   query.Get("end_date"),
		"project":   projectName,
	}).Info("Processing project timeline request")

	timeline, err := h.service.GetProjectTimeline(r.Context(), period, projectName)
	if err != nil {
		writeError(w, err)
		return
	}

	rest.WriteJSON(w, http.StatusOK, projectTimelineToDTO(timeline))
}

func writeError(w http.ResponseWriter, err error) {
	var validationErr *ValidationError
	var notFoundErr *NotFoundError

	switch {
	case errors.As(err, &validationErr):
		response := rest.ErrorResponse{
			Error:   "Invalid input",
			Details: validationErr.Message,
			Code:    rest.CodeValidation,
		}
		if validationErr.IsDateRange() {
			response.Error = "Invalid date range"
			response.Code = rest.CodeInvalidDateRange
		}
		log.Debugf("Rejected request: %v", err)
		rest.WriteError(w, http.StatusBadRequest, response)
	case errors.As(err, &notFoundErr):
		log.WithField("project", notFoundErr.Project).Warn("Project not found")
		rest.WriteError(w, http.StatusNotFound, rest.ErrorResponse{
			Error:   "Project not found",
			Details: notFoundErr.Error(),
			Code:    rest.CodeProjectNotFound,
		})
	default:
		log.Errorf("Unexpected error in timeline request: %v", err)
		rest.WriteError(w, http.StatusInternalServerError, rest.ErrorResponse{
			Error:   "Internal server error",
			Details: "An unexpected error occurred",
			Code:    rest.CodeInternal,
		})
	}
}

func activityToDTO(activity Activity) ActivityDTO {
	blocks := make([]TimeBlockDTO, 0, len(activity.TimeBlocks))
	for _, block := range activity.TimeBlocks {
		var description *string
		if block.Description != "" {
			d := block.Description
			description = &d
		}
		blocks = append(blocks, TimeBlockDTO{
			StartTime:   block.StartTime,
			EndTime:     block.EndTime,
			Duration:    block.Duration,
			Description: description,
		})
	}
	return ActivityDTO{TotalHours: activity.TotalHours, TimeBlocks: blocks}
}

func dailyTimelineToDTO(timeline DailyTimeline) DailyTimelineDTO {
	days := make(map[string]DayDTO, len(timeline.Days))
	for date, day := range timeline.Days {
		projects := make(map[string]ActivityDTO, len(day.Projects))
		for name, activity := range day.Projects {
			projects[name] = activityToDTO(activity)
		}
		days[date] = DayDTO{Projects: projects, DayTotal: day.DayTotal}
	}

	projectTotals := make(map[string]ProjectTotalDTO, len(timeline.Summary.ProjectTotals))
	for name, total := range timeline.Summary.ProjectTotals {
		projectTotals[name] = ProjectTotalDTO(total)
	}

	return DailyTimelineDTO{
		Days: days,
		Summary: DailySummaryDTO{
			Period:        timeline.Summary.Period,
			ActiveDays:    timeline.Summary.ActiveDays,
			TotalTime:     timeline.Summary.TotalTime,
			ProjectTotals: projectTotals,
		},
	}
}

func projectTimelineToDTO(timeline ProjectTimeline) ProjectTimelineDTO {
	days := make(map[string]ActivityDTO, len(timeline.Days))
	for date, activity := range timeline.Days {
		days[date] = activityToDTO(activity)
	}

	return ProjectTimelineDTO{
		ProjectName: timeline.ProjectName,
		Days:        days,
		Summary:     ProjectSummaryDTO(timeline.Summary),
	}
}
