package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"jot/internal/api"
	"jot/internal/jira"
)

func TestFormatCLIError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		if lines := formatCLIError(nil); lines != nil {
			t.Fatalf("expected no lines, got %v", lines)
		}
	})

	t.Run("auth failure hints at relogin", func(t *testing.T) {
		err := fmt.Errorf("credential check failed: %w", &api.APIError{Status: http.StatusUnauthorized})
		lines := formatCLIError(err)
		if len(lines) < 2 {
			t.Fatalf("expected hint line, got %v", lines)
		}
		if !strings.Contains(lines[1], "jot login") {
			t.Fatalf("expected relogin hint, got %q", lines[1])
		}
	})

	t.Run("server error hint", func(t *testing.T) {
		lines := formatCLIError(&api.APIError{Status: http.StatusInternalServerError})
		joined := strings.Join(lines, "\n")
		if !strings.Contains(joined, "internal error") {
			t.Fatalf("expected server hint, got %q", joined)
		}
	})

	t.Run("validation errors carry no hints", func(t *testing.T) {
		lines := formatCLIError(&jira.ValidationError{Message: "invalid duration"})
		if len(lines) != 1 || lines[0] != "invalid duration" {
			t.Fatalf("expected bare message, got %v", lines)
		}
	})

	t.Run("no boards hint", func(t *testing.T) {
		err := fmt.Errorf("project %q: %w", "X", jira.ErrNoBoards)
		lines := formatCLIError(err)
		if len(lines) != 2 || !strings.Contains(lines[1], "project key") {
			t.Fatalf("expected project hint, got %v", lines)
		}
	})

	t.Run("duplicate lines collapse", func(t *testing.T) {
		lines := uniqueLines([]string{"a", "a", "", "b"})
		if len(lines) != 2 || lines[0] != "a" || lines[1] != "b" {
			t.Fatalf("unexpected lines %v", lines)
		}
	})
}

func TestFormatCLIErrorNotLoggedIn(t *testing.T) {
	lines := formatCLIError(errNotLoggedIn)
	if len(lines) != 1 {
		t.Fatalf("expected single line, got %v", lines)
	}
	if !strings.Contains(lines[0], "jot login") {
		t.Fatalf("expected login instruction, got %q", lines[0])
	}
}

func TestValidateOutputMode(t *testing.T) {
	for _, mode := range []string{outputTable, outputJSON, outputYAML} {
		if err := validateOutputMode(mode); err != nil {
			t.Fatalf("expected %q to be valid: %v", mode, err)
		}
	}
	if err := validateOutputMode("xml"); err == nil {
		t.Fatal("expected error for xml")
	}
}

func TestFormatHours(t *testing.T) {
	cases := []struct {
		seconds int
		want    string
	}{
		{5400, "1.5"},
		{2700, "0.75"},
		{3600, "1"},
		{0, "0"},
		{900, "0.25"},
		{28800, "8"},
		{100, "0.03"},
	}
	for _, tc := range cases {
		if got := formatHours(tc.seconds); got != tc.want {
			t.Fatalf("formatHours(%d) = %q, want %q", tc.seconds, got, tc.want)
		}
	}
}

func TestErrorsIsAggregation(t *testing.T) {
	inner := &api.APIError{Status: http.StatusBadGateway}
	err := &jira.AggregationError{Op: "fetch worklogs", Err: inner}
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("expected AggregationError to unwrap to APIError")
	}
	lines := formatCLIError(err)
	if len(lines) == 0 {
		t.Fatal("expected at least the message line")
	}
}
