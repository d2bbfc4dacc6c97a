package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(Config{BaseURL: server.URL, Username: "alice", Secret: "s3cret"})
}

func TestClientAuthAndHeaders(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, secret, ok := r.BasicAuth()
		if !ok || username != "alice" || secret != "s3cret" {
			t.Errorf("missing or wrong basic auth: %q %q", username, secret)
		}
		if accept := r.Header.Get("Accept"); accept != "application/json" {
			t.Errorf("expected Accept application/json, got %q", accept)
		}
		json.NewEncoder(w).Encode(map[string]any{"name": "alice"})
	}))

	session, err := client.CurrentSession(context.Background())
	if err != nil {
		t.Fatalf("session: %v", err)
	}
	if session.Name != "alice" {
		t.Fatalf("expected alice, got %q", session.Name)
	}
}

func TestBoardsForProjectQuery(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/agile/1.0/board" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("projectKeyOrId"); got != "PROJ" {
			t.Errorf("expected projectKeyOrId=PROJ, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"values": []map[string]any{{"id": 7, "name": "Main"}}})
	}))

	boards, err := client.BoardsForProject(context.Background(), "PROJ")
	if err != nil {
		t.Fatalf("boards: %v", err)
	}
	if len(boards) != 1 || boards[0].ID != 7 || boards[0].Name != "Main" {
		t.Fatalf("unexpected boards %+v", boards)
	}
}

func TestWorklogsForIssueForcesSinglePage(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rest/api/2/issue/PROJ-1/worklog" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("maxResults"); got != "1048576" {
			t.Errorf("expected maxResults=1048576, got %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"total": 0, "worklogs": []any{}})
	}))

	worklogs, err := client.WorklogsForIssue(context.Background(), "PROJ-1")
	if err != nil {
		t.Fatalf("worklogs: %v", err)
	}
	if len(worklogs) != 0 {
		t.Fatalf("expected no worklogs, got %d", len(worklogs))
	}
}

func TestAddWorklogBody(t *testing.T) {
	var got WorklogCreateRequest
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("expected JSON content type, got %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusCreated)
	}))

	req := WorklogCreateRequest{Started: "2024-01-15T09:30:00.000+0100", TimeSpentSeconds: 7200, Comment: "review"}
	if err := client.AddWorklog(context.Background(), "PROJ-1", req); err != nil {
		t.Fatalf("add worklog: %v", err)
	}
	if got != req {
		t.Fatalf("expected body %+v, got %+v", req, got)
	}
}

func TestErrorDecoding(t *testing.T) {
	t.Run("jira error body", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]any{"errorMessages": []string{"Worklog must not be null."}})
		}))

		err := client.AddWorklog(context.Background(), "PROJ-1", WorklogCreateRequest{})
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if apiErr.Status != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", apiErr.Status)
		}
		if len(apiErr.Messages) != 1 || apiErr.Messages[0] != "Worklog must not be null." {
			t.Fatalf("unexpected messages %v", apiErr.Messages)
		}
	})

	t.Run("auth failure", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))

		_, err := client.CurrentSession(context.Background())
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
		if !apiErr.AuthFailure() {
			t.Fatal("expected auth failure")
		}
	})
}

func TestHTTPTimeoutFromEnv(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "")
		if got := httpTimeoutFromEnv(); got != defaultHTTPTimeout {
			t.Fatalf("expected default timeout %v, got %v", defaultHTTPTimeout, got)
		}
	})

	t.Run("duration format", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "45s")
		if got := httpTimeoutFromEnv(); got != 45*time.Second {
			t.Fatalf("expected 45s timeout, got %v", got)
		}
	})

	t.Run("integer seconds", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "25")
		if got := httpTimeoutFromEnv(); got != 25*time.Second {
			t.Fatalf("expected 25s timeout, got %v", got)
		}
	})

	t.Run("invalid falls back", func(t *testing.T) {
		t.Setenv(httpTimeoutEnvKey, "invalid")
		if got := httpTimeoutFromEnv(); got != defaultHTTPTimeout {
			t.Fatalf("expected default timeout %v, got %v", defaultHTTPTimeout, got)
		}
	})
}
