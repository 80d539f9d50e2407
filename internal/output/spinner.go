package output

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

const spinnerInterval = 80 * time.Millisecond

// Spinner shows an animated progress line while a blocking call runs.
// On a non-TTY writer it prints the message once and never animates.
type Spinner struct {
	w       io.Writer
	message string
	animate bool
	style   lipgloss.Style

	done     chan struct{}
	wg       sync.WaitGroup
	mu       sync.Mutex
	current  int
	started  bool
	stopOnce sync.Once
}

// NewSpinner creates a spinner writing to w.
func NewSpinner(w io.Writer, message string) *Spinner {
	tty := IsTTY(w)
	style := lipgloss.NewStyle()
	if tty {
		style = style.Bold(true)
	}
	return &Spinner{
		w:       w,
		message: message,
		animate: tty,
		style:   style,
		done:    make(chan struct{}),
	}
}

// Start begins the animation. Calling Start twice is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.mu.Unlock()

	if !s.animate {
		mustWrite(fmt.Fprintf(s.w, "%s...\n", s.message))
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(spinnerInterval)
		defer ticker.Stop()

		for {
			select {
			case <-s.done:
				mustWrite(fmt.Fprint(s.w, "\r\033[K"))
				return
			case <-ticker.C:
				s.mu.Lock()
				frame := spinnerFrames[s.current%len(spinnerFrames)]
				s.current++
				s.mu.Unlock()
				mustWrite(fmt.Fprintf(s.w, "\r%s %s", s.style.Render(frame), s.message))
			}
		}
	}()
}

// Stop ends the animation and clears the line. Safe to call more than once.
func (s *Spinner) Stop() {
	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started || !s.animate {
		return
	}
	s.stopOnce.Do(func() {
		close(s.done)
		s.wg.Wait()
	})
}

// StopWithMessage stops the spinner and prints a final line.
func (s *Spinner) StopWithMessage(message string) {
	s.Stop()
	mustWrite(fmt.Fprintln(s.w, message))
}
