package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestSpinnerSilentOffTerminal(t *testing.T) {
	var buf bytes.Buffer
	spinner := NewSpinner(&buf)

	stop := spinner.Start("fetching boards")
	stop()
	stop() // stop must be idempotent

	if buf.Len() != 0 {
		t.Fatalf("expected no output off-terminal, got %q", buf.String())
	}
}

func TestPrompterLine(t *testing.T) {
	var out bytes.Buffer
	prompter := NewPrompter(strings.NewReader("  alice \ns3cret\n"), &out)

	answer, err := prompter.Line("Username")
	if err != nil {
		t.Fatalf("prompt: %v", err)
	}
	if answer != "alice" {
		t.Fatalf("expected trimmed answer, got %q", answer)
	}
	if !strings.Contains(out.String(), "Username:") {
		t.Fatalf("expected label in output, got %q", out.String())
	}

	// A second prompt must see the rest of the input.
	secret, err := prompter.Secret("Password")
	if err != nil {
		t.Fatalf("secret prompt: %v", err)
	}
	if secret != "s3cret" {
		t.Fatalf("expected second line, got %q", secret)
	}
}

func TestPrompterConfirm(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"yes\n", true},
		{"Y\n", true},
		{"n\n", false},
		{"\n", false},
		{"whatever\n", false},
	}
	for _, tc := range cases {
		var out bytes.Buffer
		got, err := NewPrompter(strings.NewReader(tc.input), &out).Confirm("Proceed?")
		if err != nil {
			t.Fatalf("confirm %q: %v", tc.input, err)
		}
		if got != tc.want {
			t.Fatalf("confirm %q = %v, want %v", tc.input, got, tc.want)
		}
	}
}
