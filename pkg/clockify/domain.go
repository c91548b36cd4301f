package clockify

// TimeInterval keeps the raw upstream timestamps. End is nil while the timer is still running.
type TimeInterval struct {
	Start    string  `json:"start"`
	End      *string `json:"end"`
	Duration *string `json:"duration"`
}

type TimeEntry struct {
	Id           string       `json:"id"`
	Description  string       `json:"description"`
	ProjectId    *string      `json:"projectId"`
	TaskId       *string      `json:"taskId"`
	UserId       string       `json:"userId"`
	WorkspaceId  string       `json:"workspaceId"`
	Billable     bool         `json:"billable"`
	TimeInterval TimeInterval `json:"timeInterval"`
}

// IsRunning reports whether the entry has no end timestamp yet.
func (e TimeEntry) IsRunning() bool {
	return e.TimeInterval.End == nil || *e.TimeInterval.End == ""
}

// ProjectIdOrEmpty returns the project id or "" when the entry has none.
func (e TimeEntry) ProjectIdOrEmpty() string {
	if e.ProjectId == nil {
		return ""
	}
	return *e.ProjectId
}

type Project struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	WorkspaceId string `json:"workspaceId"`
	ClientName  string `json:"clientName"`
	Color       string `json:"color"`
	Archived    bool   `json:"archived"`
}

type Workspace struct {
	Id   string `json:"id"`
	Name string `json:"name"`
}
