package compat

import (
	"fmt"
	"os"

	"github.com/arcspan/rollfile"
)

// GnetAdapter wraps a rollfile.Appender to implement the gnet
// logging.Logger interface
type GnetAdapter struct {
	appender     *rollfile.Appender
	fatalHandler func(msg string) // Customizable fatal behavior
}

// NewGnetAdapter creates a new gnet-compatible logger adapter
func NewGnetAdapter(appender *rollfile.Appender, opts ...GnetOption) *GnetAdapter {
	adapter := &GnetAdapter{
		appender: appender,
		fatalHandler: func(msg string) {
			os.Exit(1) // Default behavior matches gnet expectations
		},
	}

	for _, opt := range opts {
		opt(adapter)
	}

	return adapter
}

// GnetOption allows customizing adapter behavior
type GnetOption func(*GnetAdapter)

// WithFatalHandler sets a custom fatal handler
func WithFatalHandler(handler func(string)) GnetOption {
	return func(a *GnetAdapter) {
		a.fatalHandler = handler
	}
}

// Debugf logs at debug level with printf-style formatting
func (a *GnetAdapter) Debugf(format string, args ...any) {
	a.appender.Append("DEBUG [gnet] " + fmt.Sprintf(format, args...))
}

// Infof logs at info level with printf-style formatting
func (a *GnetAdapter) Infof(format string, args ...any) {
	a.appender.Append("INFO [gnet] " + fmt.Sprintf(format, args...))
}

// Warnf logs at warn level with printf-style formatting
func (a *GnetAdapter) Warnf(format string, args ...any) {
	a.appender.Append("WARN [gnet] " + fmt.Sprintf(format, args...))
}

// Errorf logs at error level with printf-style formatting
func (a *GnetAdapter) Errorf(format string, args ...any) {
	a.appender.Append("ERROR [gnet] " + fmt.Sprintf(format, args...))
}

// Fatalf logs at error level and triggers fatal handler
func (a *GnetAdapter) Fatalf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	a.appender.Append("FATAL [gnet] " + msg)

	if a.fatalHandler != nil {
		a.fatalHandler(msg)
	}
}
