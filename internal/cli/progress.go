package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Spinner provides an animated spinner for indeterminate operations,
// such as waiting for file changes in watch mode.
type Spinner struct {
	message string
	writer  io.Writer
	active  bool
	done    chan struct{}
	mu      sync.Mutex
	frames  []string
	current int
}

// SpinnerFrames are the animation frames for the spinner.
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// SpinnerFramesASCII are ASCII fallback frames for non-Unicode terminals.
var SpinnerFramesASCII = []string{"|", "/", "-", "\\"}

// NewSpinner creates a new spinner with the given message.
func NewSpinner(message string) *Spinner {
	frames := SpinnerFrames
	// Use ASCII frames if not in TTY mode (simpler for logs)
	if !EnableColors() {
		frames = SpinnerFramesASCII
	}
	return &Spinner{
		message: message,
		writer:  os.Stderr,
		frames:  frames,
	}
}

// Start begins the spinner animation.
func (s *Spinner) Start() {
	if !EnableColors() {
		// In non-TTY mode, just print the message once
		fmt.Fprintf(s.writer, "%s...\n", s.message)
		return
	}

	s.mu.Lock()
	if s.active {
		s.mu.Unlock()
		return
	}
	s.active = true
	s.done = make(chan struct{})
	s.mu.Unlock()

	go s.spin()
}

// spin runs the animation loop.
func (s *Spinner) spin() {
	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.mu.Lock()
			frame := Progress(s.frames[s.current])
			msg := s.message
			s.current = (s.current + 1) % len(s.frames)
			s.mu.Unlock()

			// Clear line and write new frame
			fmt.Fprintf(s.writer, "\r%s %s", frame, msg)
		}
	}
}

// Update changes the spinner message.
func (s *Spinner) Update(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Stop stops the spinner and clears the line.
func (s *Spinner) Stop() {
	if !EnableColors() {
		return
	}

	s.mu.Lock()
	if !s.active {
		s.mu.Unlock()
		return
	}
	s.active = false
	close(s.done)
	s.mu.Unlock()

	// Clear the spinner line
	fmt.Fprintf(s.writer, "\r%s\r", strings.Repeat(" ", len(s.message)+10))
}

// StopWithMessage stops the spinner and prints a final message.
func (s *Spinner) StopWithMessage(message string) {
	s.Stop()
	fmt.Fprintln(s.writer, message)
}

// StopWithSuccess stops the spinner with a success message.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	fmt.Fprintln(s.writer, Success("✓")+" "+message)
}

// StopWithError stops the spinner with an error message.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	fmt.Fprintln(s.writer, Failed("✗")+" "+message)
}

// TaskProgress provides step-by-step progress output when running a
// batch of scripts, one line per script.
type TaskProgress struct {
	tasks   []string
	current int
	total   int
	writer  io.Writer
	times   []time.Duration
	start   time.Time
}

// NewTaskProgress creates a new task progress tracker.
func NewTaskProgress(tasks []string) *TaskProgress {
	return &TaskProgress{
		tasks:  tasks,
		total:  len(tasks),
		writer: os.Stderr,
		times:  make([]time.Duration, len(tasks)),
	}
}

// Start starts tracking the next task.
func (t *TaskProgress) Start(index int) {
	t.current = index
	t.start = time.Now()

	if EnableColors() {
		fmt.Fprintf(t.writer, "  [%d/%d] %s ",
			index+1, t.total, t.tasks[index])
	} else {
		fmt.Fprintf(t.writer, "  [%d/%d] %s...\n",
			index+1, t.total, t.tasks[index])
	}
}

// Complete marks the current task as complete.
func (t *TaskProgress) Complete() {
	elapsed := time.Since(t.start)
	t.times[t.current] = elapsed

	if EnableColors() {
		fmt.Fprintf(t.writer, "%s %s (%s)\n",
			t.fillDots(), Done("done"), formatDuration(elapsed))
	}
}

// Failed marks the current task as failed.
func (t *TaskProgress) Failed(err error) {
	elapsed := time.Since(t.start)
	t.times[t.current] = elapsed

	if EnableColors() {
		fmt.Fprintf(t.writer, "%s %s (%s)\n",
			t.fillDots(), Failed("failed"), formatDuration(elapsed))
	} else {
		fmt.Fprintf(t.writer, "    FAILED: %v\n", err)
	}
}

// fillDots pads the current task line out to a fixed column. Task names
// longer than the column still get a single dot.
func (t *TaskProgress) fillDots() string {
	n := 40 - len(t.tasks[t.current])
	if n < 1 {
		n = 1
	}
	return strings.Repeat(".", n)
}

// Summary prints a summary of all tasks.
func (t *TaskProgress) Summary() {
	var total time.Duration
	for _, d := range t.times {
		total += d
	}
	fmt.Fprintf(t.writer, "\nCompleted %d tasks in %s\n", t.total, formatDuration(total))
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}
