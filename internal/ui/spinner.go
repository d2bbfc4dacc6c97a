// Package ui holds the interactive terminal pieces: the fetch spinner and
// the login prompts.
package ui

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"|", "/", "-", "\\"}

const spinnerInterval = 100 * time.Millisecond

// Spinner animates a one-line progress message on a terminal. On
// non-terminal writers it stays silent. It satisfies the aggregation
// service's Progress interface.
type Spinner struct {
	w       io.Writer
	enabled bool
	mu      sync.Mutex
}

// NewSpinner builds a spinner writing to w. Animation is enabled only when
// w is a terminal.
func NewSpinner(w io.Writer) *Spinner {
	enabled := false
	if f, ok := w.(*os.File); ok {
		enabled = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return &Spinner{w: w, enabled: enabled}
}

// Start begins animating the message and returns the stop function. Only
// one message animates at a time; remote calls in this tool are either
// sequential or joined before the next message starts.
func (s *Spinner) Start(message string) func() {
	if !s.enabled {
		return func() {}
	}

	done := make(chan struct{})
	var once sync.Once

	go func() {
		frame := 0
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				s.mu.Lock()
				fmt.Fprintf(s.w, "\r%s %s ", spinnerFrames[frame%len(spinnerFrames)], message)
				s.mu.Unlock()
				frame++
			}
		}
	}()

	return func() {
		once.Do(func() {
			close(done)
			s.mu.Lock()
			fmt.Fprintf(s.w, "\r\033[K")
			s.mu.Unlock()
		})
	}
}
