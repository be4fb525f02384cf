package rollfile

import (
	"fmt"
	"io"
	"path/filepath"
	"sync/atomic"
)

// Appender accepts discrete events, serializes them through its encoder and
// writes the bytes to the active output file under lock. An attached
// RolloverController rotates that file; without one the appender writes to
// a fixed path forever.
//
// Lifecycle: Idle until Start succeeds, then Started. Stop is terminal; a
// stopped appender cannot be restarted, construct a new one. Any I/O error
// on the append path demotes the appender to Failed: one error report, then
// every further Append is a silent no-op. Callers that care about degraded
// logging watch the context's status sink; Append itself never reports
// failure.
type Appender struct {
	name    string
	ctx     *Context
	writer  lockedWriter
	encoder Encoder
	roller  *RolloverController
	file    string
	state   atomic.Int32
}

// NewAppender creates an idle appender reporting through ctx.
func NewAppender(ctx *Context, name string) *Appender {
	if ctx == nil {
		ctx = NewContext("default", nil)
	}
	a := &Appender{
		name: name,
		ctx:  ctx,
	}
	a.writer.immediateFlush = true
	return a
}

// Name returns the appender identity used in status reports and the
// collision registry.
func (a *Appender) Name() string {
	return a.name
}

// Context returns the owning context.
func (a *Appender) Context() *Context {
	return a.ctx
}

// IsStarted reports whether the appender currently accepts events.
func (a *Appender) IsStarted() bool {
	return a.state.Load() == StateStarted
}

// State returns the current lifecycle state.
func (a *Appender) State() int32 {
	return a.state.Load()
}

// SetEncoder attaches the encoder. Must be called before Start.
func (a *Appender) SetEncoder(enc Encoder) {
	a.encoder = enc
	a.writer.setEncoder(enc)
}

// SetFile sets the active output file path. Start opens it in append mode.
func (a *Appender) SetFile(path string) {
	a.file = path
}

// File returns the active output file path.
func (a *Appender) File() string {
	return a.file
}

// SetImmediateFlush controls whether each write is followed by a flush of
// the underlying output. Defaults to true.
func (a *Appender) SetImmediateFlush(flush bool) {
	a.writer.mu.Lock()
	a.writer.immediateFlush = flush
	a.writer.mu.Unlock()
}

// SetRolloverController attaches the rotation logic. Must be called before
// Start; the controller's lifecycle mirrors the appender's.
func (a *Appender) SetRolloverController(rc *RolloverController) {
	a.roller = rc
	if rc != nil {
		rc.attach(a)
	}
}

// Start validates preconditions and activates the appender. Each violated
// precondition produces one error report and the appender stays idle; it
// never partially starts. A path collision with another appender in the
// same context is reported but does not block the start.
func (a *Appender) Start() {
	switch a.state.Load() {
	case StateStarted:
		return
	case StateStopped:
		a.ctx.addError(a.origin(), "Attempted to start a stopped appender; construct a new instance instead.", nil)
		return
	}

	errs := 0
	if a.encoder == nil {
		a.ctx.addError(a.origin(), fmt.Sprintf("No encoder set for the appender named %q.", a.name), nil)
		errs++
	}
	if a.file == "" && !a.writer.hasOutput() {
		a.ctx.addError(a.origin(), fmt.Sprintf("No output file set for the appender named %q.", a.name), nil)
		errs++
	}
	if errs > 0 {
		return
	}

	if a.file != "" {
		abs := a.file
		if p, err := filepath.Abs(a.file); err == nil {
			abs = p
		}
		if ok, owner := a.ctx.registry.registerFile(abs, a.name); !ok {
			a.ctx.addError(a.origin(),
				fmt.Sprintf("'File' option has the same value %q as that given for appender [%s] defined earlier.", a.file, owner), nil)
		}

		f, err := openAppend(a.file)
		if err != nil {
			a.ctx.addError(a.origin(), fmt.Sprintf("Failed to open file for appender named %q.", a.name), err)
			return
		}
		if err := a.writer.replace(f); err != nil {
			a.ctx.addError(a.origin(), fmt.Sprintf("Failed to initialize encoder for appender named %q.", a.name), err)
			return
		}
	}

	if a.roller != nil {
		a.roller.start()
	}
	a.state.Store(StateStarted)
}

// Append writes one event. It is a no-op unless the appender is started.
// I/O and encoding failures demote the appender instead of propagating.
func (a *Appender) Append(event any) {
	if a.state.Load() != StateStarted {
		return
	}

	// Deferred preparation must run before serialization, once per event.
	if p, ok := event.(DeferredPreparer); ok {
		p.PrepareForDeferredProcessing()
	}

	data, err := a.encoder.Encode(event)
	if err != nil {
		a.demote("Failed to encode event", err)
		return
	}
	if err := a.writer.write(data); err != nil {
		a.demote("IO failure in appender", err)
		return
	}

	if a.roller != nil {
		a.roller.maybeRollover(nowFn())
	}
}

// Stop flushes the encoder footer, closes the output and marks the
// appender stopped. Idempotent; closing an already-closed output is a
// no-op, so repeated calls emit no duplicate footer.
func (a *Appender) Stop() {
	if a.state.Swap(StateStopped) == StateStopped {
		return
	}
	if a.roller != nil {
		a.roller.stop()
	}
	if err := a.writer.close(); err != nil {
		a.ctx.addError(a.origin(), "Could not close output for appender.", err)
	}
}

// SetOutput replaces the active output target: the previous target is
// closed first (with footer), then wc is installed and the header is
// re-emitted. Without an encoder the initialization step is skipped and a
// warning is reported; the output then carries no header until an encoder
// is supplied and the output replaced again.
func (a *Appender) SetOutput(wc io.WriteCloser) {
	if a.encoder == nil {
		a.ctx.addWarn(a.origin(), "Encoder has not been set. Cannot invoke its init method.")
	}
	if err := a.writer.replace(wc); err != nil {
		a.ctx.addError(a.origin(), "Failed to replace output for appender.", err)
	}
}

// demote is the one-way Started -> Failed transition. Exactly one error
// report is emitted; later Append calls see Failed and return silently,
// preventing a flood of duplicate reports.
func (a *Appender) demote(msg string, cause error) {
	if a.state.CompareAndSwap(StateStarted, StateFailed) {
		a.ctx.addError(a.origin(), msg, cause)
	}
}

func (a *Appender) origin() string {
	return "appender[" + a.name + "]"
}
