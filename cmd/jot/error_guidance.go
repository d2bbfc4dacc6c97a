package main

import (
	"context"
	"errors"
	"net"

	"jot/internal/api"
	"jot/internal/jira"
)

func formatCLIError(err error) []string {
	if err == nil {
		return nil
	}

	lines := []string{err.Error()}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if apiErr.AuthFailure() {
			lines = append(lines, "hint: credentials were rejected; run: jot login --force")
		}
		if apiErr.Status >= 500 {
			lines = append(lines, "hint: the Jira server returned an internal error; try again later.")
		}
		return uniqueLines(lines)
	}

	var validationErr *jira.ValidationError
	if errors.As(err, &validationErr) {
		return uniqueLines(lines)
	}

	if errors.Is(err, errNotLoggedIn) {
		return uniqueLines(lines)
	}

	if errors.Is(err, jira.ErrNoBoards) {
		lines = append(lines, "hint: check the project key; only projects with an agile board have sprints.")
		return uniqueLines(lines)
	}

	if errors.Is(err, context.DeadlineExceeded) {
		lines = append(lines, "hint: request timed out; check connectivity or increase JOT_HTTP_TIMEOUT.")
		return uniqueLines(lines)
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		lines = append(lines,
			"hint: could not reach the Jira server; verify the stored URL with: jot login --force",
			"hint: you can increase JOT_HTTP_TIMEOUT for slower environments.",
		)
		return uniqueLines(lines)
	}

	return uniqueLines(lines)
}

func uniqueLines(lines []string) []string {
	seen := make(map[string]struct{}, len(lines))
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		if _, ok := seen[line]; ok {
			continue
		}
		seen[line] = struct{}{}
		out = append(out, line)
	}
	return out
}
