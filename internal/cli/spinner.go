package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// spinnerFrames cycle while a slow build or render runs. Braille dots
// keep the status line a single column wide.
var spinnerFrames = [...]string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 100 * time.Millisecond

// Spinner animates a one-line status message while the pipeline works.
// The animation goroutine exits on its own when the parent context is
// cancelled, so a Ctrl-C during a long render never leaves it behind.
type Spinner struct {
	message  string
	out      io.Writer
	parent   context.Context
	done     chan struct{}
	drained  chan struct{}
	stopOnce sync.Once
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext binds the spinner's lifetime to ctx. Stop must
// still be called to clear the status line.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return &Spinner{
		message: message,
		out:     os.Stderr,
		parent:  ctx,
		done:    make(chan struct{}),
		drained: make(chan struct{}),
	}
}

// Start launches the animation. Every Start needs a matching Stop.
func (s *Spinner) Start() {
	go s.run()
}

func (s *Spinner) run() {
	defer close(s.drained)
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	for frame := 0; ; frame++ {
		select {
		case <-s.parent.Done():
			s.erase()
			return
		case <-s.done:
			return
		case <-ticker.C:
			dot := spinnerFrames[frame%len(spinnerFrames)]
			fmt.Fprintf(s.out, "\r%s %s", styleIconSpinner.Render(dot), StyleDim.Render(s.message))
		}
	}
}

// Stop halts the animation and clears the status line. Calling it a
// second time is a no-op.
func (s *Spinner) Stop() {
	s.stopOnce.Do(func() {
		close(s.done)
		<-s.drained
		s.erase()
	})
}

// StopWithSuccess stops the spinner and prints a success line in its place.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line in its place.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the parent context ended before Stop was
// called, which callers use to tell an interrupted build from a
// finished one.
func (s *Spinner) Cancelled() bool {
	return s.parent.Err() != nil
}

func (s *Spinner) erase() {
	fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", len(s.message)+4))
}
