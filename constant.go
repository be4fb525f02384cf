package rollfile

import (
	"time"
)

// Appender lifecycle states. Stopped is terminal; a stopped appender
// cannot be restarted.
const (
	StateIdle int32 = iota
	StateStarted
	StateStopped
	StateFailed
)

// Gate delay defaults
const (
	defaultMinDelay = 100 * time.Millisecond
	defaultMaxDelay = time.Second
)

// Rotation
const (
	compressSuffix = ".gz"
	// Size multiplier for KB
	sizeMultiplier = 1000
)
