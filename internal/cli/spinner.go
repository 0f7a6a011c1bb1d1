package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a progress line on the status stream while a feed crawl
// or other slow step runs. It stops early when its context is cancelled.
// After a second the elapsed time is appended to the line.
type Spinner struct {
	ctx   context.Context
	start time.Time

	mu      sync.Mutex
	message string
	detail  string
	width   int // runes on the line last drawn

	once    sync.Once
	quit    chan struct{}
	exited  chan struct{}
	running bool
}

func newSpinner(message string) *Spinner {
	return newSpinnerWithContext(context.Background(), message)
}

// newSpinnerWithContext creates a spinner that stops drawing once ctx is done.
func newSpinnerWithContext(ctx context.Context, message string) *Spinner {
	return &Spinner{
		ctx:     ctx,
		message: message,
		quit:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
}

// Start begins the animation.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.start = time.Now()
	s.mu.Unlock()

	go func() {
		defer close(s.exited)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-s.quit:
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	text := s.message
	if s.detail != "" {
		text += " " + s.detail
	}
	if elapsed := time.Since(s.start); elapsed >= time.Second {
		text += fmt.Sprintf(" (%.0fs)", elapsed.Seconds())
	}
	line := styleIconSpinner.Render(frame) + " " + StyleDim.Render(text)

	pad := ""
	if n := utf8.RuneCountInString(text) + 2; n < s.width {
		pad = strings.Repeat(" ", s.width-n)
	} else {
		s.width = n
	}
	fmt.Fprintf(statusOut, "\r%s%s", line, pad)
}

// Stop ends the animation and clears the line. It is safe to call more than
// once and before Start.
func (s *Spinner) Stop() {
	s.once.Do(func() {
		close(s.quit)
		s.mu.Lock()
		running := s.running
		s.mu.Unlock()
		if running {
			<-s.exited
		}
		s.clearLine()
	})
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width == 0 {
		return
	}
	fmt.Fprintf(statusOut, "\r%s\r", strings.Repeat(" ", s.width))
	s.width = 0
}

// SetMessage replaces the main text.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// SetDetail replaces the text shown after the message, such as a counter.
func (s *Spinner) SetDetail(detail string) {
	s.mu.Lock()
	s.detail = detail
	s.mu.Unlock()
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// Cancelled reports whether the spinner's context ended.
func (s *Spinner) Cancelled() bool {
	return s.ctx.Err() != nil
}
