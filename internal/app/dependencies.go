package app

import (
	"github.com/klokku/clockify-timeline/internal/config"
	"github.com/klokku/clockify-timeline/pkg/clockify"
	"github.com/klokku/clockify-timeline/pkg/timeline"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	ClockifyClient  clockify.Client
	ProjectsHandler *clockify.Handler

	TimelineService timeline.Service
	CsvRenderer     *timeline.CsvRendererImpl
	TimelineHandler *timeline.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(client clockify.Client, cfg config.Application) *Dependencies {
	deps := &Dependencies{}

	deps.ClockifyClient = client
	deps.ProjectsHandler = clockify.NewHandler(deps.ClockifyClient)

	deps.TimelineService = timeline.NewServiceImpl(deps.ClockifyClient, cfg.Timeline)
	deps.CsvRenderer = timeline.NewCsvRenderer()
	deps.TimelineHandler = timeline.NewHandler(deps.TimelineService, deps.CsvRenderer, cfg.Timeline)

	return deps
}
