package timeline

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"time"

	"github.com/klokku/clockify-timeline/internal/config"
	"github.com/klokku/clockify-timeline/pkg/clockify"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	GetDailyTimeline(ctx context.Context, period DateRange) (DailyTimeline, error)
	GetProjectTimeline(ctx context.Context, period DateRange, projectName string) (ProjectTimeline, error)
}

// ServiceImpl holds no request state; every call fetches fresh data from the client.
type ServiceImpl struct {
	client   clockify.Client
	settings config.Timeline
}

func NewServiceImpl(client clockify.Client, settings config.Timeline) *ServiceImpl {
	return &ServiceImpl{
		client:   client,
		settings: settings,
	}
}

func (s *ServiceImpl) GetDailyTimeline(ctx context.Context, period DateRange) (DailyTimeline, error) {
	log.WithField("period", period.Period()).Debug("Building daily timeline")

	entries, projects, err := s.fetch(ctx, period)
	if err != nil {
		return DailyTimeline{}, err
	}

	projectNames := make(map[string]string, len(projects))
	for _, project := range projects {
		projectNames[project.Id] = project.Name
	}

	intervalsByDay := make(map[string]map[string][]Interval)
	for _, entry := range entries {
		if entry.IsRunning() {
			continue
		}
		date, interval, err := s.toInterval(entry)
		if err != nil {
			return DailyTimeline{}, err
		}

		projectName, ok := projectNames[entry.ProjectIdOrEmpty()]
		if !ok {
			projectName = UnnamedProject
		}
		if intervalsByDay[date] == nil {
			intervalsByDay[date] = make(map[string][]Interval)
		}
		intervalsByDay[date][projectName] = append(intervalsByDay[date][projectName], interval)
	}

	days := make(map[string]DayData, len(intervalsByDay))
	for date, intervalsByProject := range intervalsByDay {
		dayProjects := make(map[string]Activity, len(intervalsByProject))
		dayTotal := 0.0
		for _, projectName := range sortedKeys(intervalsByProject) {
			activity, projectTotal := buildActivity(intervalsByProject[projectName])
			dayProjects[projectName] = activity
			dayTotal += projectTotal
		}
		days[date] = DayData{
			Projects: dayProjects,
			DayTotal: roundTenth(dayTotal),
		}
	}

	summary := calculateDailySummary(days, period)
	log.WithFields(log.Fields{
		"activeDays": summary.ActiveDays,
		"totalTime":  summary.TotalTime,
	}).Info("Daily timeline processed successfully")

	return DailyTimeline{Days: days, Summary: summary}, nil
}

func (s *ServiceImpl) GetProjectTimeline(ctx context.Context, period DateRange, projectName string) (ProjectTimeline, error) {
	log.WithFields(log.Fields{"period": period.Period(), "project": projectName}).Debug("Building project timeline")

	entries, projects, err := s.fetch(ctx, period)
	if err != nil {
		return ProjectTimeline{}, err
	}

	project := clockify.FindProjectByName(projects, projectName)
	if project == nil {
		return ProjectTimeline{}, &NotFoundError{Project: projectName}
	}

	intervalsByDay := make(map[string][]Interval)
	for _, entry := range entries {
		if entry.IsRunning() || entry.ProjectIdOrEmpty() != project.Id {
			continue
		}
		date, interval, err := s.toInterval(entry)
		if err != nil {
			return ProjectTimeline{}, err
		}
		intervalsByDay[date] = append(intervalsByDay[date], interval)
	}

	days := make(map[string]Activity, len(intervalsByDay))
	for date, intervals := range intervalsByDay {
		days[date], _ = buildActivity(intervals)
	}

	summary, err := calculateProjectSummary(days, period)
	if err != nil {
		return ProjectTimeline{}, err
	}
	log.WithFields(log.Fields{
		"project":    projectName,
		"activeDays": summary.ActiveDays,
		"totalTime":  summary.TotalTime,
	}).Info("Project timeline processed successfully")

	return ProjectTimeline{
		ProjectName: projectName,
		Days:        days,
		Summary:     summary,
	}, nil
}

// fetch loads entries and the project catalog concurrently. The first failure cancels the other call.
func (s *ServiceImpl) fetch(ctx context.Context, period DateRange) ([]clockify.TimeEntry, []clockify.Project, error) {
	var entries []clockify.TimeEntry
	var projects []clockify.Project

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = s.client.GetTimeEntries(gctx, period.Start, period.End)
		return err
	})
	g.Go(func() error {
		var err error
		projects, err = s.client.GetProjects(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return entries, projects, nil
}

// toInterval converts a completed entry to local time. The start date decides the day bucket,
// entries crossing midnight are not split.
func (s *ServiceImpl) toInterval(entry clockify.TimeEntry) (string, Interval, error) {
	start, err := ParseTimestamp(entry.TimeInterval.Start, s.settings.TimezoneOffset)
	if err != nil {
		return "", Interval{}, err
	}
	end, err := ParseTimestamp(*entry.TimeInterval.End, s.settings.TimezoneOffset)
	if err != nil {
		return "", Interval{}, err
	}
	return start.Format(time.DateOnly), Interval{Start: start, End: end, Label: entry.Description}, nil
}

// buildActivity merges the intervals of one bucket into time blocks. The returned total is the
// unrounded sum of the per-entry hours; Activity.TotalHours holds it rounded to one decimal.
func buildActivity(intervals []Interval) (Activity, float64) {
	total := 0.0
	for _, interval := range intervals {
		total += HoursBetween(interval.Start, interval.End)
	}

	merged := Merge(intervals)
	blocks := make([]TimeBlock, 0, len(merged))
	for _, interval := range merged {
		blocks = append(blocks, TimeBlock{
			StartTime:   FormatClock(interval.Start),
			EndTime:     FormatClock(interval.End),
			Duration:    FormatDurationHMS(interval.Start, interval.End),
			Description: interval.Label,
		})
	}

	return Activity{TotalHours: roundTenth(total), TimeBlocks: blocks}, total
}

func sortedKeys[M ~map[K]V, K cmp.Ordered, V any](m M) []K {
	return slices.Sorted(maps.Keys(m))
}
