package clockify

import (
	"context"
	"errors"
	"sync"
	"time"
)

type ClientStub struct {
	mu                   sync.Mutex
	entries              []TimeEntry
	projects             []Project
	getTimeEntriesErr    error
	getProjectsErr       error
	testConnectionErr    error
	getTimeEntriesCalls  int
	getProjectsCalls     int
	lastEntriesStartDate time.Time
	lastEntriesEndDate   time.Time
}

func NewClientStub() *ClientStub {
	return &ClientStub{}
}

func (c *ClientStub) GetTimeEntries(ctx context.Context, startDate, endDate time.Time) ([]TimeEntry, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.getTimeEntriesCalls++
	c.lastEntriesStartDate = startDate
	c.lastEntriesEndDate = endDate
	if c.getTimeEntriesErr != nil {
		return nil, c.getTimeEntriesErr
	}

	result := make([]TimeEntry, len(c.entries))
	copy(result, c.entries)
	return result, nil
}

func (c *ClientStub) GetProjects(ctx context.Context) ([]Project, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.getProjectsCalls++
	if c.getProjectsErr != nil {
		return nil, c.getProjectsErr
	}

	result := make([]Project, 0, len(c.projects))
	for _, project := range c.projects {
		if !project.Archived {
			result = append(result, project)
		}
	}
	return result, nil
}

func (c *ClientStub) GetProjectByName(ctx context.Context, name string) (*Project, error) {
	projects, err := c.GetProjects(ctx)
	if err != nil {
		return nil, err
	}
	return FindProjectByName(projects, name), nil
}

func (c *ClientStub) TestConnection(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.testConnectionErr
}

// Helper methods for test setup

func (c *ClientStub) SetEntries(entries []TimeEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make([]TimeEntry, len(entries))
	copy(c.entries, entries)
}

func (c *ClientStub) SetProjects(projects []Project) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.projects = make([]Project, len(projects))
	copy(c.projects, projects)
}

// Error setters for testing error scenarios

func (c *ClientStub) SetGetTimeEntriesError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getTimeEntriesErr = err
}

func (c *ClientStub) SetGetProjectsError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.getProjectsErr = err
}

func (c *ClientStub) SetTestConnectionError(err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.testConnectionErr = err
}

// Call inspection

func (c *ClientStub) GetTimeEntriesCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getTimeEntriesCalls
}

func (c *ClientStub) GetProjectsCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.getProjectsCalls
}

// LastEntriesRange returns the dates passed to the most recent GetTimeEntries call.
func (c *ClientStub) LastEntriesRange() (time.Time, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastEntriesStartDate, c.lastEntriesEndDate
}

// Reset clears all data
func (c *ClientStub) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = nil
	c.projects = nil
	c.getTimeEntriesErr = nil
	c.getProjectsErr = nil
	c.testConnectionErr = nil
	c.getTimeEntriesCalls = 0
	c.getProjectsCalls = 0
	c.lastEntriesStartDate = time.Time{}
	c.lastEntriesEndDate = time.Time{}
}

var ErrClientTestError = errors.New("client test error")
