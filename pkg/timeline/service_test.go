package timeline

import (
	"context"
	"errors"
	"testing"

	"github.com/klokku/clockify-timeline/internal/config"
	"github.com/klokku/clockify-timeline/pkg/clockify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	alpha = clockify.Project{Id: "p1", Name: "Alpha"}
	beta  = clockify.Project{Id: "p2", Name: "Beta"}
)

func setupServiceTest(t *testing.T, offset float64) (*ServiceImpl, *clockify.ClientStub) {
	t.Helper()
	client := clockify.NewClientStub()
	client.SetProjects([]clockify.Project{alpha, beta})
	service := NewServiceImpl(client, config.Timeline{MaxPeriodDays: 31, TimezoneOffset: offset})
	return service, client
}

func entry(id, projectId, description, start, end string) clockify.TimeEntry {
	e := clockify.TimeEntry{
		Id:           id,
		Description:  description,
		TimeInterval: clockify.TimeInterval{Start: start},
	}
	if projectId != "" {
		e.ProjectId = &projectId
	}
	if end != "" {
		e.TimeInterval.End = &end
	}
	return e
}

func mustRange(t *testing.T, start, end string) DateRange {
	t.Helper()
	r, err := ParseDateRange(start, end, 31)
	require.NoError(t, err)
	return r
}

func TestServiceImpl_GetDailyTimeline(t *testing.T) {
	ctx := context.Background()

	t.Run("should merge close sessions in local time", func(t *testing.T) {
		// given
		service, client := setupServiceTest(t, 3)
		client.SetEntries([]clockify.TimeEntry{
			entry("e1", "p1", "", "2024-10-01T06:55:00Z", "2024-10-01T07:55:00Z"),
			entry("e2", "p1", "", "2024-10-01T08:00:00Z", "2024-10-01T09:00:00Z"),
		})

		// when
		result, err := service.GetDailyTimeline(ctx, mustRange(t, "2024-10-01", "2024-10-01"))

		// then
		require.NoError(t, err)
		require.Contains(t, result.Days, "2024-10-01")
		day := result.Days["2024-10-01"]
		require.Contains(t, day.Projects, "Alpha")
		activity := day.Projects["Alpha"]
		assert.Equal(t, 2.0, activity.TotalHours)
		assert.Equal(t, []TimeBlock{{StartTime: "09:55", EndTime: "12:00", Duration: "02:05:00"}}, activity.TimeBlocks)
		assert.Equal(t, 2.0, day.DayTotal)

		assert.Equal(t, "2024-10-01 to 2024-10-01", result.Summary.Period)
		assert.Equal(t, 1, result.Summary.ActiveDays)
		assert.Equal(t, "2h 0m", result.Summary.TotalTime)
		assert.Equal(t, map[string]ProjectTotal{"Alpha": {Hours: 2.0, Formatted: "2h 0m"}}, result.Summary.ProjectTotals)
	})

	t.Run("should total projects per day and across the range", func(t *testing.T) {
		// given
		service, client := setupServiceTest(t, 0)
		client.SetEntries([]clockify.TimeEntry{
			entry("e1", "p1", "Design", "2024-10-01T09:00:00Z", "2024-10-01T10:30:00Z"),
			entry("e2", "p1", "Review", "2024-10-01T12:00:00Z", "2024-10-01T13:30:00Z"),
			entry("e3", "p2", "", "2024-10-01T14:00:00Z", "2024-10-01T14:30:00Z"),
			entry("e4", "p2", "Call", "2024-10-02T08:00:00Z", "2024-10-02T09:00:00Z"),
		})

		// when
		result, err := service.GetDailyTimeline(ctx, mustRange(t, "2024-10-01", "2024-10-02"))

		// then
		require.NoError(t, err)
		require.Len(t, result.Days, 2)

		first := result.Days["2024-10-01"]
		assert.Equal(t, 3.5, first.DayTotal)
		assert.Equal(t, 3.0, first.Projects["Alpha"].TotalHours)
		assert.Equal(t, []TimeBlock{
			{StartTime: "09:00", EndTime: "10:30", Duration: "01:30:00", Description: "Design"},
			{StartTime: "12:00", EndTime: "13:30", Duration: "01:30:00", Description: "Review"},
		}, first.Projects["Alpha"].TimeBlocks)
		assert.Equal(t, 0.5, first.Projects["Beta"].TotalHours)

		second := result.Days["2024-10-02"]
		assert.Equal(t, 1.0, second.DayTotal)
		assert.NotContains(t, second.Projects, "Alpha")

		assert.Equal(t, 2, result.Summary.ActiveDays)
		assert.Equal(t, "4h 30m", result.Summary.TotalTime)
		assert.Equal(t, ProjectTotal{Hours: 3.0, Formatted: "3h 0m"}, result.Summary.ProjectTotals["Alpha"])
		assert.Equal(t, ProjectTotal{Hours: 1.5, Formatted: "1h 30m"}, result.Summary.ProjectTotals["Beta"])
	})

	t.Run("should group unresolvable projects under Unnamed", func(t *testing.T) {
		// given
		service, client := setupServiceTest(t, 0)
		client.SetProjects([]clockify.Project{alpha, {Id: "p9", Name: "Old", Archived: true}})
		client.SetEntries([]clockify.TimeEntry{
			entry("e1", "", "no project", "2024-10-01T09:00:00Z", "2024-10-01T10:00:00Z"),
			entry("e2", "p9", "archived", "2024-10-01T13:00:00Z", "2024-10-01T14:00:00Z"),
			entry("e3", "missing", "", "2024-10-01T15:00:00Z", "2024-10-01T15:30:00Z"),
		})

		// when
		result, err := service.GetDailyTimeline(ctx, mustRange(t, "2024-10-01", "2024-10-01"))

		// then
		require.NoError(t, err)
		projects := result.Days["2024-10-01"].Projects
		require.Len(t, projects, 1)
		unnamed := projects[UnnamedProject]
		assert.Equal(t, 2.5, unnamed.TotalHours)
		assert.Len(t, unnamed.TimeBlocks, 3)
	})

	t.Run("should skip running entries", func(t *testing.T) {
		// given
		service, client := setupServiceTest(t, 0)
		client.SetEntries([]clockify.TimeEntry{
			entry("e1", "p1", "", "2024-10-01T09:00:00Z", "2024-10-01T10:00:00Z"),
			entry("e2", "p2", "still going", "2024-10-01T11:00:00Z", ""),
		})

		// when
		result, err := service.GetDailyTimeline(ctx, mustRange(t, "2024-10-01", "2024-10-01"))

		// then
		require.NoError(t, err)
		projects := result.Days["2024-10-01"].Projects
		assert.Contains(t, projects, "Alpha")
		assert.NotContains(t, projects, "Beta")
		assert.Equal(t, 1.0, result.Days["2024-10-01"].DayTotal)
	})

	t.Run("should bucket by local start date without splitting at midnight", func(t *testing.T) {
		// given
		service, client := setupServiceTest(t, 3)
		client.SetEntries([]clockify.TimeEntry{
			entry("e1", "p1", "late", "2024-10-01T20:30:00Z", "2024-10-01T21:30:00Z"),
			entry("e2", "p1", "after midnight", "2024-10-01T22:00:00Z", "2024-10-01T23:00:00Z"),
		})

		// when
		result, err := service.GetDailyTimeline(ctx, mustRange(t, "2024-10-01", "2024-10-02"))

		// then
		require.NoError(t, err)
		assert.Equal(t, []TimeBlock{
			{StartTime: "23:30", EndTime: "00:30", Duration: "01:00:00", Description: "late"},
		}, result.Days["2024-10-01"].Projects["Alpha"].TimeBlocks)
		assert.Equal(t, []TimeBlock{
			{StartTime: "01:00", EndTime: "02:00", Duration: "01:00:00", Description: "after midnight"},
		}, result.Days["2024-10-02"].Projects["Alpha"].TimeBlocks)
	})

	t.Run("should return empty result when there are no entries", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, 0)

		// when
		result, err := service.GetDailyTimeline(ctx, mustRange(t, "2024-01-01", "2024-01-31"))

		// then
		require.NoError(t, err)
		assert.Empty(t, result.Days)
		assert.Equal(t, 0, result.Summary.ActiveDays)
		assert.Equal(t, "0h 0m", result.Summary.TotalTime)
		assert.Empty(t, result.Summary.ProjectTotals)
		assert.Equal(t, "2024-01-01 to 2024-01-31", result.Summary.Period)
	})

	t.Run("should request the whole period once", func(t *testing.T) {
		// given
		service, client := setupServiceTest(t, 0)
		period := mustRange(t, "2024-10-01", "2024-10-07")

		// when
		_, err := service.GetDailyTimeline(ctx, period)

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, client.GetTimeEntriesCalls())
		assert.Equal(t, 1, client.GetProjectsCalls())
		start, end := client.LastEntriesRange()
		assert.Equal(t, period.Start, start)
		assert.Equal(t, period.End, end)
	})

	t.Run("should propagate upstream failure", func(t *testing.T) {
		// given
		service, client := setupServiceTest(t, 0)
		upstreamErr := &clockify.UpstreamError{Kind: clockify.KindUnauthorized, StatusCode: 401}
		client.SetGetTimeEntriesError(upstreamErr)

		// when
		_, err := service.GetDailyTimeline(ctx, mustRange(t, "2024-10-01", "2024-10-01"))

		// then
		assert.True(t, clockify.IsKind(err, clockify.KindUnauthorized))
	})

	t.Run("should propagate project catalog failure", func(t *testing.T) {
		service, client := setupServiceTest(t, 0)
		client.SetGetProjectsError(clockify.ErrClientTestError)

		_, err := service.GetDailyTimeline(ctx, mustRange(t, "2024-10-01", "2024-10-01"))

		assert.ErrorIs(t, err, clockify.ErrClientTestError)
	})

	t.Run("should fail on malformed timestamps", func(t *testing.T) {
		// given
		service, client := setupServiceTest(t, 0)
		client.SetEntries([]clockify.TimeEntry{
			entry("e1", "p1", "", "yesterday", "2024-10-01T10:00:00Z"),
		})

		// when
		_, err := service.GetDailyTimeline(ctx, mustRange(t, "2024-10-01", "2024-10-01"))

		// then
		var parseErr *ParseError
		require.True(t, errors.As(err, &parseErr))
		assert.Equal(t, "yesterday", parseErr.Value)
	})
}

func TestServiceImpl_GetProjectTimeline(t *testing.T) {
	ctx := context.Background()

	t.Run("should build timeline and session statistics for one project", func(t *testing.T) {
		// given
		service, client := setupServiceTest(t, 0)
		client.SetEntries([]clockify.TimeEntry{
			entry("e1", "p1", "Design", "2024-10-01T09:00:00Z", "2024-10-01T10:30:00Z"),
			entry("e2", "p1", "Build", "2024-10-01T12:00:00Z", "2024-10-01T14:00:00Z"),
			entry("e3", "p2", "Other", "2024-10-01T15:00:00Z", "2024-10-01T16:00:00Z"),
			entry("e4", "p1", "Fix", "2024-10-02T09:00:00Z", "2024-10-02T09:30:00Z"),
			entry("e5", "p1", "Running", "2024-10-02T11:00:00Z", ""),
		})

		// when
		result, err := service.GetProjectTimeline(ctx, mustRange(t, "2024-10-01", "2024-10-02"), "Alpha")

		// then
		require.NoError(t, err)
		assert.Equal(t, "Alpha", result.ProjectName)
		require.Len(t, result.Days, 2)
		assert.Equal(t, 3.5, result.Days["2024-10-01"].TotalHours)
		assert.Len(t, result.Days["2024-10-01"].TimeBlocks, 2)
		assert.Equal(t, []TimeBlock{
			{StartTime: "09:00", EndTime: "09:30", Duration: "00:30:00", Description: "Fix"},
		}, result.Days["2024-10-02"].TimeBlocks)

		assert.Equal(t, ProjectSummary{
			Period:         "2024-10-01 to 2024-10-02",
			ActiveDays:     2,
			TotalTime:      "4h 0m",
			AvgDaily:       "2h 0m",
			LongestSession: "02:00:00",
			// 4/3 hours truncates at every step
			AvgSession: "01:19:59",
		}, result.Summary)
	})

	t.Run("should merge sessions of the project across descriptions", func(t *testing.T) {
		// given
		service, client := setupServiceTest(t, 0)
		client.SetEntries([]clockify.TimeEntry{
			entry("e1", "p2", "Task 1", "2024-10-01T10:00:00Z", "2024-10-01T11:00:00Z"),
			entry("e2", "p2", "Task 2", "2024-10-01T11:02:00Z", "2024-10-01T12:00:00Z"),
		})

		// when
		result, err := service.GetProjectTimeline(ctx, mustRange(t, "2024-10-01", "2024-10-01"), "Beta")

		// then
		require.NoError(t, err)
		assert.Equal(t, []TimeBlock{
			{StartTime: "10:00", EndTime: "12:00", Duration: "02:00:00", Description: "Task 1, Task 2"},
		}, result.Days["2024-10-01"].TimeBlocks)
		assert.Equal(t, "02:00:00", result.Summary.LongestSession)
	})

	t.Run("should return zeroed summary for a project without entries", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, 0)

		// when
		result, err := service.GetProjectTimeline(ctx, mustRange(t, "2024-10-01", "2024-10-07"), "Beta")

		// then
		require.NoError(t, err)
		assert.Empty(t, result.Days)
		assert.Equal(t, ProjectSummary{
			Period:         "2024-10-01 to 2024-10-07",
			TotalTime:      "0h 0m",
			AvgDaily:       "0h 0m",
			LongestSession: "00:00:00",
			AvgSession:     "00:00:00",
		}, result.Summary)
	})

	t.Run("should match project names case-sensitively", func(t *testing.T) {
		// given
		service, _ := setupServiceTest(t, 0)

		// when
		_, err := service.GetProjectTimeline(ctx, mustRange(t, "2024-10-01", "2024-10-01"), "alpha")

		// then
		var notFoundErr *NotFoundError
		require.True(t, errors.As(err, &notFoundErr))
		assert.Equal(t, "alpha", notFoundErr.Project)
		assert.Equal(t, "Project 'alpha' not found", err.Error())
	})

	t.Run("should not find archived projects", func(t *testing.T) {
		service, client := setupServiceTest(t, 0)
		client.SetProjects([]clockify.Project{{Id: "p9", Name: "Old", Archived: true}})

		_, err := service.GetProjectTimeline(ctx, mustRange(t, "2024-10-01", "2024-10-01"), "Old")

		var notFoundErr *NotFoundError
		assert.True(t, errors.As(err, &notFoundErr))
	})

	t.Run("should propagate upstream failure", func(t *testing.T) {
		service, client := setupServiceTest(t, 0)
		client.SetGetTimeEntriesError(&clockify.UpstreamError{Kind: clockify.KindTimeout})

		_, err := service.GetProjectTimeline(ctx, mustRange(t, "2024-10-01", "2024-10-01"), "Alpha")

		assert.True(t, clockify.IsKind(err, clockify.KindTimeout))
	})
}

func TestBuildActivity_TotalsConstituentEntries(t *testing.T) {
	// two entries of 1h45m each merge into one block but keep per-entry rounding in the total
	intervals := []Interval{
		{Start: at(9, 0, 0), End: at(10, 45, 0)},
		{Start: at(10, 46, 0), End: at(12, 31, 0)},
	}

	activity, total := buildActivity(intervals)

	require.Len(t, activity.TimeBlocks, 1)
	assert.Equal(t, "03:31:00", activity.TimeBlocks[0].Duration)
	assert.Equal(t, 3.6, total)
	assert.Equal(t, 3.6, activity.TotalHours)
}
