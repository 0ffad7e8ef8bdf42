package engine

import (
	"errors"
	"runtime"
	"time"
)

// defaultWatchInterval is how often the watchdog samples heap usage.
const defaultWatchInterval = 100 * time.Millisecond

// watchdog samples memory usage on its own goroutine and interrupts the
// runtime when the limit is breached. One breach is terminal: the script is
// interrupted, the condition is reported, and the loop exits.
type watchdog struct {
	limit    uint64
	interval time.Duration
	sample   func() uint64

	stop chan struct{}
	done chan struct{}
}

// StartWatchdog begins enforcing a heap memory limit, in bytes, on script
// execution. A breach interrupts the running script, which then fails with
// ErrOutOfMemory, and raises an error-severity out-of-memory report.
func (c *Context) StartWatchdog(limit uint64) error {
	return c.startWatchdog(limit, defaultWatchInterval, heapInUse)
}

func (c *Context) startWatchdog(limit uint64, interval time.Duration, sample func() uint64) error {
	if limit == 0 {
		return errors.New("engine: watchdog limit must be positive")
	}

	defer c.enter()()
	if c.wd != nil {
		return errors.New("engine: watchdog already running")
	}

	w := &watchdog{
		limit:    limit,
		interval: interval,
		sample:   sample,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
	c.wd = w
	go c.watch(w)
	return nil
}

// StopWatchdog stops the memory watchdog and waits for its goroutine to
// exit. Safe to call when no watchdog is running.
func (c *Context) StopWatchdog() {
	c.mu.Lock()
	w := c.wd
	c.wd = nil
	c.mu.Unlock()

	if w == nil {
		return
	}
	close(w.stop)
	<-w.done
}

func (c *Context) watch(w *watchdog) {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			if w.sample() <= w.limit {
				continue
			}
			// Interrupt is the one runtime call that is safe from another
			// goroutine; everything else stays on the script side.
			c.vm.Interrupt(interruptOOM)
			c.reporter.Report(Report{
				Severity: SeverityError,
				Code:     CodeOutOfMemory,
				Filename: c.scriptName(),
				Message:  "memory limit exceeded",
			})
			return
		}
	}
}

// heapInUse reports live heap bytes as the runtime sees them.
func heapInUse() uint64 {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	return ms.HeapAlloc
}
