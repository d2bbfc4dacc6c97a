package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	httpTimeoutEnvKey  = "JOT_HTTP_TIMEOUT"

	// Jira pages worklog results; requesting the maximum page size keeps
	// retrieval single-page.
	worklogMaxResults = 1048576
)

// TimeLayout is the timestamp format Jira expects and emits for worklog
// start instants (ISO-8601 with millisecond precision and numeric offset).
const TimeLayout = "2006-01-02T15:04:05.000-0700"

// Config carries everything needed to talk to one Jira server.
type Config struct {
	BaseURL  string
	Username string
	Secret   string
	// Timeout overrides the default per-request timeout when positive.
	Timeout time.Duration
}

// Client is an authenticated HTTP client for the Jira REST API.
type Client struct {
	baseURL  string
	username string
	secret   string
	http     *http.Client
}

// NewClient creates a new API client.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = httpTimeoutFromEnv()
	}
	return &Client{
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		username: cfg.Username,
		secret:   cfg.Secret,
		http:     &http.Client{Timeout: timeout},
	}
}

// BoardsForProject returns the boards configured for a project, in API
// response order.
func (c *Client) BoardsForProject(ctx context.Context, projectKey string) ([]Board, error) {
	query := url.Values{}
	query.Set("projectKeyOrId", projectKey)
	var resp boardsResponse
	err := c.do(ctx, http.MethodGet, "/rest/agile/1.0/board", query, nil, &resp)
	return resp.Values, err
}

// BoardConfiguration returns a board's column configuration.
func (c *Client) BoardConfiguration(ctx context.Context, boardID int) (BoardConfiguration, error) {
	var resp BoardConfiguration
	err := c.do(ctx, http.MethodGet, "/rest/agile/1.0/board/"+strconv.Itoa(boardID)+"/configuration", nil, nil, &resp)
	return resp, err
}

// SprintsForBoard returns a board's sprints, optionally filtered by state.
func (c *Client) SprintsForBoard(ctx context.Context, boardID int, state string) ([]Sprint, error) {
	var query url.Values
	if state != "" {
		query = url.Values{}
		query.Set("state", state)
	}
	var resp sprintsResponse
	err := c.do(ctx, http.MethodGet, "/rest/agile/1.0/board/"+strconv.Itoa(boardID)+"/sprint", query, nil, &resp)
	return resp.Values, err
}

// IssuesForSprint returns the issues of a sprint, optionally restricted by a
// JQL clause evaluated server-side.
func (c *Client) IssuesForSprint(ctx context.Context, sprintID int, jql string) ([]Issue, error) {
	var query url.Values
	if jql != "" {
		query = url.Values{}
		query.Set("jql", jql)
	}
	var resp issuesResponse
	err := c.do(ctx, http.MethodGet, "/rest/agile/1.0/sprint/"+strconv.Itoa(sprintID)+"/issue", query, nil, &resp)
	return resp.Issues, err
}

// SearchIssues runs a JQL search, requesting only the given response fields.
func (c *Client) SearchIssues(ctx context.Context, jql, fields string) ([]Issue, error) {
	query := url.Values{}
	query.Set("jql", jql)
	if fields != "" {
		query.Set("fields", fields)
	}
	var resp issuesResponse
	err := c.do(ctx, http.MethodGet, "/rest/api/2/search", query, nil, &resp)
	return resp.Issues, err
}

// CurrentSession returns the identity of the authenticated user.
func (c *Client) CurrentSession(ctx context.Context) (Session, error) {
	var resp Session
	err := c.do(ctx, http.MethodGet, "/rest/auth/1/session", nil, nil, &resp)
	return resp, err
}

// WorklogsForIssue returns the full worklog history of an issue.
func (c *Client) WorklogsForIssue(ctx context.Context, issueKey string) ([]Worklog, error) {
	query := url.Values{}
	query.Set("maxResults", strconv.Itoa(worklogMaxResults))
	var resp worklogPage
	err := c.do(ctx, http.MethodGet, "/rest/api/2/issue/"+url.PathEscape(issueKey)+"/worklog", query, nil, &resp)
	return resp.Worklogs, err
}

// AddWorklog creates a new worklog entry on an issue.
func (c *Client) AddWorklog(ctx context.Context, issueKey string, req WorklogCreateRequest) error {
	return c.do(ctx, http.MethodPost, "/rest/api/2/issue/"+url.PathEscape(issueKey)+"/worklog", nil, req, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.username, c.secret)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}
	var errResp errorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		apiErr.Messages = errResp.ErrorMessages
		for field, message := range errResp.Errors {
			apiErr.Messages = append(apiErr.Messages, fmt.Sprintf("%s: %s", field, message))
		}
	}
	return apiErr
}

func httpTimeoutFromEnv() time.Duration {
	value := strings.TrimSpace(os.Getenv(httpTimeoutEnvKey))
	if value == "" {
		return defaultHTTPTimeout
	}

	if duration, err := time.ParseDuration(value); err == nil && duration > 0 {
		return duration
	}
	if seconds, err := strconv.Atoi(value); err == nil && seconds > 0 {
		return time.Duration(seconds) * time.Second
	}

	return defaultHTTPTimeout
}
