package rollfile

import (
	"os"
)

// Context scopes shared state for a set of appenders: the status sink they
// report through and the collision table consulted at Start. Appenders
// hold a reference to their Context for their whole lifetime.
type Context struct {
	name     string
	sink     StatusSink
	registry *collisionRegistry
}

// NewContext creates a context reporting to the given sink. A nil sink
// falls back to stderr.
func NewContext(name string, sink StatusSink) *Context {
	if sink == nil {
		sink = &WriterSink{W: os.Stderr}
	}
	return &Context{
		name:     name,
		sink:     sink,
		registry: newCollisionRegistry(),
	}
}

// Name returns the context name.
func (c *Context) Name() string {
	return c.name
}

// Reset tears the context down: all collision claims are dropped. Appender
// Stop does not unregister individually; the context owns the table.
func (c *Context) Reset() {
	c.registry.reset()
}

// addError reports an error-level status.
func (c *Context) addError(origin, msg string, cause error) {
	c.sink.Add(Status{Level: StatusError, Message: msg, Origin: origin, Cause: cause, Time: nowFn()})
}

// addWarn reports a warning-level status.
func (c *Context) addWarn(origin, msg string) {
	c.sink.Add(Status{Level: StatusWarn, Message: msg, Origin: origin, Time: nowFn()})
}

// discardSink drops every report. Used when a component has no context.
type discardSink struct{}

func (discardSink) Add(Status) {}
