package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line on spinnerOut while a render runs. It stops
// on Stop or when its context ends, whichever comes first.
type Spinner struct {
	message string
	ctx     context.Context
	cancel  context.CancelFunc
	start   time.Time
	stopped chan struct{}
	once    sync.Once
	started bool

	halted      bool // Stop was called
	interrupted bool // the parent context ended first
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	sctx, cancel := context.WithCancel(ctx)
	return &Spinner{
		message: message,
		ctx:     sctx,
		cancel:  cancel,
		stopped: make(chan struct{}),
	}
}

// Start begins the animation. Frames after the first second show the
// elapsed time.
func (s *Spinner) Start() {
	s.started = true
	s.start = time.Now()
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()
		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clear()
				return
			case <-ticker.C:
				fmt.Fprintf(spinnerOut, "\r%s %s", styleSpinner.Render(spinnerFrames[i%len(spinnerFrames)]), StyleDim.Render(s.line()))
			}
		}
	}()
}

func (s *Spinner) line() string {
	if d := time.Since(s.start); d >= time.Second {
		return fmt.Sprintf("%s %ds", s.message, int(d.Seconds()))
	}
	return s.message
}

func (s *Spinner) clear() {
	fmt.Fprintf(spinnerOut, "\r%s\r", strings.Repeat(" ", len(s.line())+4))
}

// Stop halts the animation and erases the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		s.interrupted = s.ctx.Err() != nil
		s.halted = true
		s.cancel()
		if s.started {
			<-s.stopped
		}
	})
}

// StopWithSuccess stops the spinner and prints msg as a success line.
func (s *Spinner) StopWithSuccess(msg string) {
	s.Stop()
	printSuccess("%s", msg)
}

// StopWithError stops the spinner and prints msg as an error line.
func (s *Spinner) StopWithError(msg string) {
	s.Stop()
	printError("%s", msg)
}

// Cancelled reports whether the parent context ended the spinner.
func (s *Spinner) Cancelled() bool {
	if s.halted {
		return s.interrupted
	}
	return s.ctx.Err() != nil
}
