package compat

import (
	"fmt"

	"github.com/arcspan/rollfile"
)

// Builder provides a flexible way to create configured appender adapters
// for gnet and fasthttp. It can use an existing *rollfile.Appender or
// create a new one from a *rollfile.Config
type Builder struct {
	appender *rollfile.Appender
	cfg      *rollfile.Config
	err      error
}

// NewBuilder creates a new adapter builder
func NewBuilder() *Builder {
	return &Builder{}
}

// WithAppender specifies an existing started appender to use for the adapters
// Recommended for applications that already have a central appender instance
// If this is set WithConfig is ignored
func (b *Builder) WithAppender(a *rollfile.Appender) *Builder {
	if a == nil {
		b.err = fmt.Errorf("rollfile/compat: provided appender cannot be nil")
		return b
	}
	b.appender = a
	return b
}

// WithConfig provides a configuration for a new appender instance
// This is used only if an existing appender is NOT provided via WithAppender
func (b *Builder) WithConfig(cfg *rollfile.Config) *Builder {
	b.cfg = cfg
	return b
}

// getAppender resolves the appender to be used, creating and starting one
// if necessary
func (b *Builder) getAppender() (*rollfile.Appender, error) {
	if b.err != nil {
		return nil, b.err
	}

	if b.appender != nil {
		return b.appender, nil
	}

	builder := rollfile.NewBuilder()
	if b.cfg != nil {
		builder.Config(b.cfg)
	}
	a, err := builder.Build()
	if err != nil {
		return nil, err
	}
	a.Start()
	if !a.IsStarted() {
		return nil, fmt.Errorf("rollfile/compat: appender failed to start; check the context status sink")
	}

	// Cache the newly created appender for subsequent builds with this builder
	b.appender = a
	return a, nil
}

// BuildGnet creates a gnet adapter
func (b *Builder) BuildGnet(opts ...GnetOption) (*GnetAdapter, error) {
	a, err := b.getAppender()
	if err != nil {
		return nil, err
	}
	return NewGnetAdapter(a, opts...), nil
}

// BuildFastHTTP creates a fasthttp adapter
func (b *Builder) BuildFastHTTP(opts ...FastHTTPOption) (*FastHTTPAdapter, error) {
	a, err := b.getAppender()
	if err != nil {
		return nil, err
	}
	return NewFastHTTPAdapter(a, opts...), nil
}

// GetAppender returns the underlying *rollfile.Appender instance
// If an appender has not been provided or created yet, it will be initialized
func (b *Builder) GetAppender() (*rollfile.Appender, error) {
	return b.getAppender()
}
