package rollfile

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Status report levels
const (
	StatusWarn  int64 = 4
	StatusError int64 = 8
)

// Status is a single diagnostic report emitted by the core. The core never
// writes diagnostics to its own output file; everything goes through a sink.
type Status struct {
	Level   int64
	Message string
	Origin  string
	Cause   error
	Time    time.Time
}

// String renders the report for human consumption.
func (s Status) String() string {
	level := "WARN"
	if s.Level >= StatusError {
		level = "ERROR"
	}
	if s.Cause != nil {
		return fmt.Sprintf("%s [%s] %s: %v", level, s.Origin, s.Message, s.Cause)
	}
	return fmt.Sprintf("%s [%s] %s", level, s.Origin, s.Message)
}

// StatusSink receives diagnostic reports. Implementations must not block;
// the write path calls Add while holding the appender lock.
type StatusSink interface {
	Add(s Status)
}

// CollectingSink accumulates reports in memory. Used in tests and by
// applications that poll for degraded-logging conditions.
type CollectingSink struct {
	mu      sync.Mutex
	reports []Status
}

// Add appends a report.
func (c *CollectingSink) Add(s Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.reports = append(c.reports, s)
}

// Reports returns a copy of all reports received so far.
func (c *CollectingSink) Reports() []Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Status, len(c.reports))
	copy(out, c.reports)
	return out
}

// Errors returns only the error-level reports.
func (c *CollectingSink) Errors() []Status {
	var out []Status
	for _, s := range c.Reports() {
		if s.Level >= StatusError {
			out = append(out, s)
		}
	}
	return out
}

// WriterSink writes each report as one line to an io.Writer, typically
// os.Stderr. Write failures are ignored; a diagnostic channel that fails
// has nowhere left to report to.
type WriterSink struct {
	mu sync.Mutex
	W  io.Writer
}

// Add writes the report.
func (w *WriterSink) Add(s Status) {
	w.mu.Lock()
	defer w.mu.Unlock()
	fmt.Fprintf(w.W, "rollfile: %s\n", s.String())
}
