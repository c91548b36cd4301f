package timeline

// UnnamedProject labels entries without a project or whose project is not in the active catalog.
const UnnamedProject = "Unnamed"

// TimeBlock is a merged interval rendered for display.
type TimeBlock struct {
	StartTime   string // HH:MM
	EndTime     string // HH:MM
	Duration    string // HH:MM:SS
	Description string
}

// Activity is the merged work of one project on one day.
type Activity struct {
	TotalHours float64
	TimeBlocks []TimeBlock
}

type DayData struct {
	Projects map[string]Activity
	DayTotal float64
}

type ProjectTotal struct {
	Hours     float64
	Formatted string // e.g. "18h 11m"
}

type DailySummary struct {
	Period        string
	ActiveDays    int
	TotalTime     string
	ProjectTotals map[string]ProjectTotal
}

type ProjectSummary struct {
	Period         string
	ActiveDays     int
	TotalTime      string
	AvgDaily       string
	LongestSession string // HH:MM:SS
	AvgSession     string // HH:MM:SS
}

// DailyTimeline is keyed by local calendar date (YYYY-MM-DD). Days without entries are absent.
type DailyTimeline struct {
	Days    map[string]DayData
	Summary DailySummary
}

type ProjectTimeline struct {
	ProjectName string
	Days        map[string]Activity
	Summary     ProjectSummary
}
