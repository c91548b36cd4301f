package timeline

import "slices"

func calculateDailySummary(days map[string]DayData, period DateRange) DailySummary {
	projectHours := make(map[string]float64)
	totalHours := 0.0

	for _, date := range sortedKeys(days) {
		day := days[date]
		totalHours += day.DayTotal
		for _, name := range sortedKeys(day.Projects) {
			projectHours[name] += day.Projects[name].TotalHours
		}
	}

	projectTotals := make(map[string]ProjectTotal, len(projectHours))
	for name, hours := range projectHours {
		projectTotals[name] = ProjectTotal{
			Hours:     roundTenth(hours),
			Formatted: FormatHoursFuzzy(hours),
		}
	}

	return DailySummary{
		Period:        period.Period(),
		ActiveDays:    len(days),
		TotalTime:     FormatHoursFuzzy(totalHours),
		ProjectTotals: projectTotals,
	}
}

func calculateProjectSummary(days map[string]Activity, period DateRange) (ProjectSummary, error) {
	totalHours := 0.0
	var sessions []float64

	for _, date := range sortedKeys(days) {
		day := days[date]
		totalHours += day.TotalHours
		for _, block := range day.TimeBlocks {
			hours, err := ParseSessionHours(block.Duration)
			if err != nil {
				return ProjectSummary{}, err
			}
			sessions = append(sessions, hours)
		}
	}

	activeDays := len(days)
	avgDailyHours := totalHours / float64(max(activeDays, 1))

	longestSessionHours, avgSessionHours := 0.0, 0.0
	if len(sessions) > 0 {
		longestSessionHours = slices.Max(sessions)
		sum := 0.0
		for _, session := range sessions {
			sum += session
		}
		avgSessionHours = sum / float64(len(sessions))
	}

	return ProjectSummary{
		Period:         period.Period(),
		ActiveDays:     activeDays,
		TotalTime:      FormatHoursFuzzy(totalHours),
		AvgDaily:       FormatHoursFuzzy(avgDailyHours),
		LongestSession: FormatSessionHMS(longestSessionHours),
		AvgSession:     FormatSessionHMS(avgSessionHours),
	}, nil
}
