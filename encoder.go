package rollfile

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

// Encoder turns events into the bytes written to the output file. The
// header is emitted once when an output is installed, the footer once when
// it is closed. Any method may fail; the owning appender demotes itself on
// failure.
type Encoder interface {
	HeaderBytes() ([]byte, error)
	FooterBytes() ([]byte, error)
	Encode(event any) ([]byte, error)
}

// DeferredPreparer is the capability hook for events that must capture
// caller-side state before serialization. When an event implements it, the
// appender invokes it exactly once, before Encode.
type DeferredPreparer interface {
	PrepareForDeferredProcessing()
}

// NopEncoder encodes nothing. Useful in tests and for appenders whose
// events are pre-rendered elsewhere.
type NopEncoder struct{}

func (NopEncoder) HeaderBytes() ([]byte, error) { return nil, nil }
func (NopEncoder) FooterBytes() ([]byte, error) { return nil, nil }
func (NopEncoder) Encode(event any) ([]byte, error) {
	if s, ok := event.(string); ok {
		return []byte(s), nil
	}
	return nil, nil
}

// LineEncoder renders events as single text lines: an optional timestamp,
// then the event rendered with fmt conventions, with control characters
// stripped so one event cannot forge additional lines.
type LineEncoder struct {
	// TimestampFormat is a time layout string; empty disables timestamps.
	TimestampFormat string
	// Header and Footer are emitted verbatim (with trailing newline) at
	// output open and close when non-empty.
	Header string
	Footer string
}

func (e *LineEncoder) HeaderBytes() ([]byte, error) {
	if e.Header == "" {
		return nil, nil
	}
	return []byte(e.Header + "\n"), nil
}

func (e *LineEncoder) FooterBytes() ([]byte, error) {
	if e.Footer == "" {
		return nil, nil
	}
	return []byte(e.Footer + "\n"), nil
}

func (e *LineEncoder) Encode(event any) ([]byte, error) {
	var b strings.Builder
	if e.TimestampFormat != "" {
		b.WriteString(time.Now().Format(e.TimestampFormat))
		b.WriteByte(' ')
	}
	switch v := event.(type) {
	case string:
		b.WriteString(sanitizeLine(v))
	case []byte:
		b.WriteString(sanitizeLine(string(v)))
	case fmt.Stringer:
		b.WriteString(sanitizeLine(v.String()))
	default:
		b.WriteString(sanitizeLine(fmt.Sprint(v)))
	}
	b.WriteByte('\n')
	return []byte(b.String()), nil
}

// sanitizeLine replaces line breaks and other control characters with
// spaces, keeping every event on one physical line.
func sanitizeLine(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' {
			return ' '
		}
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}
