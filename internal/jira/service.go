// Package jira composes transport calls into the read models and the one
// write operation the CLI works with: sprint lists, display boards, per-user
// worklog reports, and worklog submission.
package jira

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"jot/internal/api"
	"jot/internal/timeutil"
)

// Progress receives start/stop notifications around remote fetches, so the
// CLI can show a spinner while requests are in flight. Start returns the
// stop function for its message.
type Progress interface {
	Start(message string) (stop func())
}

type nopProgress struct{}

func (nopProgress) Start(string) func() { return func() {} }

// Service aggregates Jira API calls into display-ready structures.
type Service struct {
	api      *api.Client
	progress Progress
}

// Option configures a Service.
type Option func(*Service)

// WithProgress attaches a progress reporter to remote fetches.
func WithProgress(p Progress) Option {
	return func(s *Service) {
		if p != nil {
			s.progress = p
		}
	}
}

// NewService creates an aggregation service on top of a transport client.
func NewService(client *api.Client, opts ...Option) *Service {
	s := &Service{api: client, progress: nopProgress{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BoardColumn is one display column of a board: the configured column name
// plus the active-sprint issues whose status falls into it.
type BoardColumn struct {
	Name   string      `json:"name" yaml:"name"`
	Issues []api.Issue `json:"issues" yaml:"issues"`
}

// ReportEntry is one row of a worklog report, a worklog entry annotated
// with its issue.
type ReportEntry struct {
	IssueKey        string    `json:"issueKey" yaml:"issueKey"`
	IssueSummary    string    `json:"issueSummary,omitempty" yaml:"issueSummary,omitempty"`
	Author          string    `json:"author" yaml:"author"`
	Start           time.Time `json:"start" yaml:"start"`
	DurationSeconds int       `json:"durationSeconds" yaml:"durationSeconds"`
	Comment         string    `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// OpenSprints returns the non-closed sprints of the project's primary
// board. Fails with ErrNoBoards when the project has no boards.
func (s *Service) OpenSprints(ctx context.Context, projectKey string) ([]api.Sprint, error) {
	board, err := s.primaryBoard(ctx, projectKey)
	if err != nil {
		return nil, err
	}

	stop := s.progress.Start("fetching sprints for board")
	sprints, err := s.api.SprintsForBoard(ctx, board.ID, "")
	stop()
	if err != nil {
		return nil, err
	}

	open := make([]api.Sprint, 0, len(sprints))
	for _, sprint := range sprints {
		if sprint.State == api.SprintStateClosed {
			continue
		}
		open = append(open, sprint)
	}
	return open, nil
}

// DisplayBoard assembles the display board for the project's primary board
// and active sprint: every configured column paired with the sprint issues
// whose status id belongs to it. Fails with ErrNoActiveSprint when the
// board has no active sprint.
func (s *Service) DisplayBoard(ctx context.Context, projectKey string, onlyMine bool) ([]BoardColumn, error) {
	board, err := s.primaryBoard(ctx, projectKey)
	if err != nil {
		return nil, err
	}

	var (
		sprints []api.Sprint
		config  api.BoardConfiguration
	)
	stop := s.progress.Start("fetching board layout")
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		sprints, err = s.api.SprintsForBoard(groupCtx, board.ID, api.SprintStateActive)
		return err
	})
	group.Go(func() error {
		var err error
		config, err = s.api.BoardConfiguration(groupCtx, board.ID)
		return err
	})
	err = group.Wait()
	stop()
	if err != nil {
		return nil, &AggregationError{Op: "fetch board layout", Err: err}
	}

	sprint, ok := lastActiveSprint(sprints)
	if !ok {
		return nil, fmt.Errorf("board %q: %w", board.Name, ErrNoActiveSprint)
	}

	jql := ""
	if onlyMine {
		jql = "assignee = currentUser()"
	}
	stop = s.progress.Start("fetching issues for sprint")
	issues, err := s.api.IssuesForSprint(ctx, sprint.ID, jql)
	stop()
	if err != nil {
		return nil, err
	}

	columns := make([]BoardColumn, 0, len(config.ColumnConfig.Columns))
	for _, column := range config.ColumnConfig.Columns {
		statusIDs := make(map[string]struct{}, len(column.Statuses))
		for _, status := range column.Statuses {
			statusIDs[status.ID] = struct{}{}
		}
		assigned := []api.Issue{}
		for _, issue := range issues {
			if _, ok := statusIDs[issue.Fields.Status.ID]; ok {
				assigned = append(assigned, issue)
			}
		}
		columns = append(columns, BoardColumn{Name: column.Name, Issues: assigned})
	}
	return columns, nil
}

// CurrentUser resolves the authenticated user's name.
func (s *Service) CurrentUser(ctx context.Context) (string, error) {
	stop := s.progress.Start("fetching current user")
	session, err := s.api.CurrentSession(ctx)
	stop()
	if err != nil {
		return "", err
	}
	return session.Name, nil
}

// WorklogReport returns the given user's worklog entries for one calendar
// day, each annotated with its issue, ordered by start time. An empty user
// or "me" resolves to the authenticated caller.
func (s *Service) WorklogReport(ctx context.Context, user string, day time.Time) ([]ReportEntry, error) {
	user = strings.TrimSpace(user)
	if user == "" || user == "me" {
		resolved, err := s.CurrentUser(ctx)
		if err != nil {
			return nil, err
		}
		user = resolved
	}

	jql := fmt.Sprintf("worklogAuthor = '%s' AND worklogDate = '%s'", user, day.Format(timeutil.DayLayout))
	stop := s.progress.Start("fetching worked on issues")
	issues, err := s.api.SearchIssues(ctx, jql, "key,summary")
	stop()
	if err != nil {
		return nil, err
	}

	// One request per issue. A single day's work touches few issues, so the
	// fan-out is unbounded. Each branch writes its own slot, keyed by input
	// index rather than completion order.
	histories := make([][]api.Worklog, len(issues))
	stop = s.progress.Start("fetching worklogs for issues")
	group, groupCtx := errgroup.WithContext(ctx)
	for i, issue := range issues {
		group.Go(func() error {
			worklogs, err := s.api.WorklogsForIssue(groupCtx, issue.Key)
			if err != nil {
				return fmt.Errorf("issue %s: %w", issue.Key, err)
			}
			histories[i] = worklogs
			return nil
		})
	}
	err = group.Wait()
	stop()
	if err != nil {
		return nil, &AggregationError{Op: "fetch worklogs", Err: err}
	}

	var entries []ReportEntry
	for i, issue := range issues {
		for _, worklog := range histories[i] {
			started, err := time.Parse(api.TimeLayout, worklog.Started)
			if err != nil {
				slog.Warn("skipping worklog with unparseable start", "issue", issue.Key, "started", worklog.Started)
				continue
			}
			if worklog.Author.Name != user || !timeutil.SameDay(day, started) {
				continue
			}
			entries = append(entries, ReportEntry{
				IssueKey:        issue.Key,
				IssueSummary:    issue.Fields.Summary,
				Author:          worklog.Author.Name,
				Start:           started,
				DurationSeconds: worklog.TimeSpentSeconds,
				Comment:         worklog.Comment,
			})
		}
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start.Compare(entries[j].Start) < 0
	})
	return entries, nil
}

// AddWorklog submits a new worklog entry for an issue. A zero start means
// now. The remote service owns all business rules; its rejections come back
// as *api.APIError.
func (s *Service) AddWorklog(ctx context.Context, issueKey string, seconds int, start time.Time, comment string) error {
	if strings.TrimSpace(issueKey) == "" {
		return &ValidationError{Message: "issue key is required"}
	}
	if seconds <= 0 {
		return &ValidationError{Message: "duration must be positive"}
	}
	if start.IsZero() {
		start = time.Now()
	}

	stop := s.progress.Start("adding work log")
	err := s.api.AddWorklog(ctx, issueKey, api.WorklogCreateRequest{
		Started:          start.Format(api.TimeLayout),
		TimeSpentSeconds: seconds,
		Comment:          comment,
	})
	stop()
	return err
}

// primaryBoard returns the project's primary board: the first board in API
// response order. The remote service documents no ordering guarantee; this
// mirrors the established selection rule.
func (s *Service) primaryBoard(ctx context.Context, projectKey string) (api.Board, error) {
	stop := s.progress.Start("fetching boards for project")
	boards, err := s.api.BoardsForProject(ctx, projectKey)
	stop()
	if err != nil {
		return api.Board{}, err
	}
	if len(boards) == 0 {
		return api.Board{}, fmt.Errorf("project %q: %w", projectKey, ErrNoBoards)
	}
	return boards[0], nil
}

// lastActiveSprint picks the last sprint reporting the active state. When
// the remote returns several active sprints, last wins; callers depend on
// that tie-break.
func lastActiveSprint(sprints []api.Sprint) (api.Sprint, bool) {
	for i := len(sprints) - 1; i >= 0; i-- {
		if sprints[i].State == api.SprintStateActive {
			return sprints[i], true
		}
	}
	return api.Sprint{}, false
}
