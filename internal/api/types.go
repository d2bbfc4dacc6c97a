package api

// Board is an agile board as returned by the boards-by-project endpoint.
type Board struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

type boardsResponse struct {
	Values []Board `json:"values"`
}

// Sprint states as reported by the agile API.
const (
	SprintStateActive = "active"
	SprintStateClosed = "closed"
	SprintStateFuture = "future"
)

// Sprint is one sprint of a board.
type Sprint struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	State string `json:"state"`
}

type sprintsResponse struct {
	Values []Sprint `json:"values"`
}

// BoardConfiguration is the column layout of a board.
type BoardConfiguration struct {
	ColumnConfig ColumnConfig `json:"columnConfig"`
}

// ColumnConfig holds the configured columns of a board.
type ColumnConfig struct {
	Columns []Column `json:"columns"`
}

// Column maps a display column to the status ids it contains.
type Column struct {
	Name     string         `json:"name"`
	Statuses []ColumnStatus `json:"statuses"`
}

// ColumnStatus references one workflow status by id.
type ColumnStatus struct {
	ID string `json:"id"`
}

// Issue is a read-only projection of a remote issue.
type Issue struct {
	Key    string      `json:"key"`
	Fields IssueFields `json:"fields"`
}

// IssueFields carries the subset of issue fields this tool reads.
type IssueFields struct {
	Summary  string `json:"summary"`
	Status   Status `json:"status"`
	Assignee *User  `json:"assignee,omitempty"`
}

// Status is an issue workflow status.
type Status struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// User identifies a Jira user.
type User struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
}

type issuesResponse struct {
	Issues []Issue `json:"issues"`
}

// Session is the identity payload of the current-session endpoint.
type Session struct {
	Name string `json:"name"`
	Self string `json:"self,omitempty"`
}

// Worklog is one worklog entry of an issue.
type Worklog struct {
	Author           User   `json:"author"`
	Started          string `json:"started"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
	Comment          string `json:"comment,omitempty"`
}

type worklogPage struct {
	Total    int       `json:"total"`
	Worklogs []Worklog `json:"worklogs"`
}

// WorklogCreateRequest is the body of the create-worklog endpoint.
type WorklogCreateRequest struct {
	Started          string `json:"started"`
	TimeSpentSeconds int    `json:"timeSpentSeconds"`
	Comment          string `json:"comment,omitempty"`
}

type errorResponse struct {
	ErrorMessages []string          `json:"errorMessages"`
	Errors        map[string]string `json:"errors"`
}
