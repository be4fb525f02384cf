package rollfile

import (
	"time"
)

// Builder provides a fluent API for assembling a configured appender with
// its rollover controller. It wraps a Config instance and provides
// chainable methods for setting values.
type Builder struct {
	cfg     *Config
	ctx     *Context
	encoder Encoder
	namer   Namer
	fs      FileProvider
	err     error // Accumulate errors for deferred handling
}

// NewBuilder creates a new builder with default configuration values.
func NewBuilder() *Builder {
	return &Builder{
		cfg: DefaultConfig(),
	}
}

// Build assembles the appender. The appender is returned idle; call Start
// on it. Rotation is attached when any trigger is configured.
func (b *Builder) Build() (*Appender, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.cfg.validate(); err != nil {
		return nil, err
	}

	ctx := b.ctx
	if ctx == nil {
		ctx = NewContext("default", nil)
	}

	a := NewAppender(ctx, b.cfg.Name)
	a.SetFile(b.cfg.File)
	a.SetImmediateFlush(b.cfg.ImmediateFlush)

	enc := b.encoder
	if enc == nil {
		enc = &LineEncoder{
			TimestampFormat: b.cfg.TimestampFormat,
			Header:          b.cfg.Header,
			Footer:          b.cfg.Footer,
		}
	}
	a.SetEncoder(enc)

	if policy := b.buildPolicy(); policy != nil {
		gate := NewInvocationGate(
			time.Duration(b.cfg.MinDelayMs)*time.Millisecond,
			time.Duration(b.cfg.MaxDelayMs)*time.Millisecond,
			nowFn(),
		)
		a.SetRolloverController(&RolloverController{
			Policy:     policy,
			Namer:      b.namer,
			Pattern:    b.cfg.Pattern,
			Compress:   b.cfg.Compress,
			MaxHistory: int(b.cfg.MaxHistory),
			MaxAge:     time.Duration(b.cfg.MaxAgeHrs * float64(time.Hour)),
			FS:         b.fs,
			Gate:       gate,
		})
	}

	return a, nil
}

func (b *Builder) buildPolicy() TriggeringPolicy {
	var policies []TriggeringPolicy
	if b.cfg.MaxSizeKB > 0 {
		policies = append(policies, SizeBasedPolicy{MaxSizeKB: b.cfg.MaxSizeKB})
	}
	if b.cfg.RotateEveryMins > 0 {
		policies = append(policies, &TimeBasedPolicy{
			Interval: time.Duration(b.cfg.RotateEveryMins * float64(time.Minute)),
		})
	}
	switch len(policies) {
	case 0:
		return nil
	case 1:
		return policies[0]
	default:
		return CompositePolicy{Policies: policies}
	}
}

// Config replaces the whole configuration.
func (b *Builder) Config(cfg *Config) *Builder {
	if cfg == nil {
		b.err = fmtErrorf("configuration cannot be nil")
		return b
	}
	b.cfg = cfg.Clone()
	return b
}

// Context sets the context the appender reports through.
func (b *Builder) Context(ctx *Context) *Builder {
	b.ctx = ctx
	return b
}

// Name sets the appender name.
func (b *Builder) Name(name string) *Builder {
	b.cfg.Name = name
	return b
}

// File sets the active log file path.
func (b *Builder) File(path string) *Builder {
	b.cfg.File = path
	return b
}

// Encoder sets the encoder, overriding the default line encoder.
func (b *Builder) Encoder(enc Encoder) *Builder {
	b.encoder = enc
	return b
}

// Namer sets the rotation namer, overriding the timestamp namer.
func (b *Builder) Namer(n Namer) *Builder {
	b.namer = n
	return b
}

// FileProvider sets the filesystem port used by rotation and cleanup.
func (b *Builder) FileProvider(fp FileProvider) *Builder {
	b.fs = fp
	return b
}

// MaxSizeKB sets the size rotation trigger in KB.
func (b *Builder) MaxSizeKB(size int64) *Builder {
	b.cfg.MaxSizeKB = size
	return b
}

// MaxSizeMB sets the size rotation trigger in MB. Convenience.
func (b *Builder) MaxSizeMB(size int64) *Builder {
	b.cfg.MaxSizeKB = size * sizeMultiplier
	return b
}

// RotateEvery sets the time rotation trigger.
func (b *Builder) RotateEvery(interval time.Duration) *Builder {
	b.cfg.RotateEveryMins = interval.Minutes()
	return b
}

// MaxHistory caps the number of rotated files kept.
func (b *Builder) MaxHistory(count int64) *Builder {
	b.cfg.MaxHistory = count
	return b
}

// MaxAge removes rotated files older than the given duration.
func (b *Builder) MaxAge(age time.Duration) *Builder {
	b.cfg.MaxAgeHrs = age.Hours()
	return b
}

// Compress enables gzip compression of rotated files.
func (b *Builder) Compress(compress bool) *Builder {
	b.cfg.Compress = compress
	return b
}

// ImmediateFlush controls flushing after every write.
func (b *Builder) ImmediateFlush(flush bool) *Builder {
	b.cfg.ImmediateFlush = flush
	return b
}

// Example usage:
// appender, err := rollfile.NewBuilder().
//
//	File("/var/log/app/app.log").
//	MaxSizeMB(50).
//	MaxHistory(10).
//	Compress(true).
//	Build()
//
// if err == nil {
//
//	 appender.Start()
//	 defer appender.Stop()
//	 appender.Append("service starting")
//
// }
