package clockify

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/klokku/clockify-timeline/internal/config"
	log "github.com/sirupsen/logrus"
)

const (
	defaultBaseURL  = "https://api.clockify.me/api/v1"
	defaultTimeout  = 30 * time.Second
	defaultPageSize = 1000
	minApiKeyLength = 10
)

type Client interface {
	GetTimeEntries(ctx context.Context, startDate, endDate time.Time) ([]TimeEntry, error) // /workspaces/{ws}/user/{user}/time-entries
	GetProjects(ctx context.Context) ([]Project, error)                                    // /workspaces/{ws}/projects, archived excluded
	GetProjectByName(ctx context.Context, name string) (*Project, error)
	TestConnection(ctx context.Context) error // /workspaces/{ws}
}

type ClientImpl struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	workspaceId string
	userId      string
	pageSize    int
}

// NewClient validates the credentials and returns a client bound to one workspace and user.
func NewClient(cfg config.Clockify) (*ClientImpl, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	baseURL := strings.TrimRight(cfg.BaseUrl, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	return &ClientImpl{
		httpClient:  &http.Client{Timeout: timeout},
		baseURL:     baseURL,
		apiKey:      strings.TrimSpace(cfg.ApiKey),
		workspaceId: strings.TrimSpace(cfg.WorkspaceId),
		userId:      strings.TrimSpace(cfg.UserId),
		pageSize:    pageSize,
	}, nil
}

func validateConfig(cfg config.Clockify) error {
	apiKey := strings.TrimSpace(cfg.ApiKey)
	if apiKey == "" {
		return fmt.Errorf("%w: API key is required", ErrInvalidConfiguration)
	}
	if len(apiKey) < minApiKeyLength {
		return fmt.Errorf("%w: invalid API key format", ErrInvalidConfiguration)
	}
	if strings.TrimSpace(cfg.WorkspaceId) == "" {
		return fmt.Errorf("%w: workspace ID is required", ErrInvalidConfiguration)
	}
	if strings.TrimSpace(cfg.UserId) == "" {
		return fmt.Errorf("%w: user ID is required", ErrInvalidConfiguration)
	}
	return nil
}

// GetTimeEntries fetches every entry of the user between startDate 00:00:00Z and endDate 23:59:59Z,
// following pages until a short page is returned.
func (c *ClientImpl) GetTimeEntries(ctx context.Context, startDate, endDate time.Time) ([]TimeEntry, error) {
	startStr := startDate.Format(time.DateOnly)
	endStr := endDate.Format(time.DateOnly)
	log.WithFields(log.Fields{"startDate": startStr, "endDate": endStr}).Info("Fetching time entries")

	endpoint := fmt.Sprintf("/workspaces/%s/user/%s/time-entries", url.PathEscape(c.workspaceId), url.PathEscape(c.userId))

	var allEntries []TimeEntry
	page := 1
	for {
		query := url.Values{}
		query.Set("start", startStr+"T00:00:00Z")
		query.Set("end", endStr+"T23:59:59Z")
		query.Set("page", strconv.Itoa(page))
		query.Set("page-size", strconv.Itoa(c.pageSize))

		var entries []TimeEntry
		if err := c.get(ctx, endpoint, query, &entries); err != nil {
			log.Errorf("Failed to fetch time entries: %v", err)
			return nil, err
		}
		allEntries = append(allEntries, entries...)

		if len(entries) < c.pageSize {
			break
		}
		page++
	}

	log.WithField("count", len(allEntries)).Info("Successfully fetched time entries")
	return allEntries, nil
}

// GetProjects returns the active (non-archived) projects of the workspace.
func (c *ClientImpl) GetProjects(ctx context.Context) ([]Project, error) {
	log.Info("Fetching projects")

	endpoint := fmt.Sprintf("/workspaces/%s/projects", url.PathEscape(c.workspaceId))
	var projects []Project
	if err := c.get(ctx, endpoint, nil, &projects); err != nil {
		log.Errorf("Failed to fetch projects: %v", err)
		return nil, err
	}

	active := make([]Project, 0, len(projects))
	for _, project := range projects {
		if !project.Archived {
			active = append(active, project)
		}
	}

	log.WithFields(log.Fields{"total": len(projects), "active": len(active)}).Info("Successfully fetched projects")
	return active, nil
}

// GetProjectByName returns the active project whose name matches exactly (case-sensitive), or nil.
func (c *ClientImpl) GetProjectByName(ctx context.Context, name string) (*Project, error) {
	projects, err := c.GetProjects(ctx)
	if err != nil {
		return nil, err
	}
	return FindProjectByName(projects, name), nil
}

func (c *ClientImpl) TestConnection(ctx context.Context) error {
	endpoint := fmt.Sprintf("/workspaces/%s", url.PathEscape(c.workspaceId))
	var workspace Workspace
	if err := c.get(ctx, endpoint, nil, &workspace); err != nil {
		log.Errorf("Connection test failed: %v", err)
		return err
	}
	log.Infof("Connected to Clockify workspace %q", workspace.Name)
	return nil
}

// FindProjectByName performs an exact, case-sensitive lookup.
func FindProjectByName(projects []Project, name string) *Project {
	for i := range projects {
		if projects[i].Name == name {
			return &projects[i]
		}
	}
	return nil
}

func (c *ClientImpl) get(ctx context.Context, endpoint string, query url.Values, out any) error {
	requestURL := c.baseURL + endpoint
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		log.Errorf("Failed to create request: %v", err)
		return err
	}
	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			log.WithField("url", endpoint).Error("Request timeout")
			return &UpstreamError{Kind: KindTimeout, Endpoint: endpoint, Err: err}
		}
		log.WithField("url", endpoint).Errorf("Request error: %v", err)
		return &UpstreamError{Kind: KindNetwork, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		log.WithField("statusCode", resp.StatusCode).Error("Unauthorized request to Clockify API")
		return &UpstreamError{Kind: KindUnauthorized, StatusCode: resp.StatusCode, Endpoint: endpoint}
	case resp.StatusCode == http.StatusTooManyRequests:
		log.WithField("statusCode", resp.StatusCode).Warn("Rate limit exceeded")
		return &UpstreamError{Kind: KindRateLimited, StatusCode: resp.StatusCode, Endpoint: endpoint}
	case resp.StatusCode >= http.StatusInternalServerError:
		log.WithField("statusCode", resp.StatusCode).Error("Clockify API server error")
		return &UpstreamError{Kind: KindServerError, StatusCode: resp.StatusCode, Endpoint: endpoint}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		log.WithField("statusCode", resp.StatusCode).Error("Clockify API returned non-OK status")
		return &UpstreamError{Kind: KindUnexpectedStatus, StatusCode: resp.StatusCode, Endpoint: endpoint}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return &UpstreamError{Kind: KindTimeout, Endpoint: endpoint, Err: err}
		}
		return &UpstreamError{Kind: KindNetwork, Endpoint: endpoint, Err: err}
	}
	if err := sonic.Unmarshal(body, out); err != nil {
		log.Errorf("Failed to decode response: %v", err)
		return &UpstreamError{Kind: KindMalformedResponse, StatusCode: resp.StatusCode, Endpoint: endpoint, Err: err}
	}
	return nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
