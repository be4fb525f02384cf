package rollfile

import (
	"time"
)

// TriggeringPolicy decides whether the active file is due for rotation.
// It is only consulted when the invocation gate lets a check through, so
// implementations may do real filesystem work.
type TriggeringPolicy interface {
	IsTriggered(activePath string, now time.Time, fp FileProvider) bool
}

// rolloverAware policies are told when a rotation actually happened, so
// interval-based policies can restart their window.
type rolloverAware interface {
	NotifyRollover(now time.Time)
}

// SizeBasedPolicy triggers once the active file reaches MaxSizeKB.
type SizeBasedPolicy struct {
	MaxSizeKB int64
}

func (p SizeBasedPolicy) IsTriggered(activePath string, _ time.Time, fp FileProvider) bool {
	if p.MaxSizeKB <= 0 {
		return false
	}
	return fp.Length(activePath) >= p.MaxSizeKB*sizeMultiplier
}

// TimeBasedPolicy triggers once Interval has elapsed since the previous
// rotation (or since the policy first saw the file).
type TimeBasedPolicy struct {
	Interval time.Duration

	last time.Time
}

func (p *TimeBasedPolicy) IsTriggered(_ string, now time.Time, _ FileProvider) bool {
	if p.Interval <= 0 {
		return false
	}
	if p.last.IsZero() {
		p.last = now
		return false
	}
	return now.Sub(p.last) >= p.Interval
}

func (p *TimeBasedPolicy) NotifyRollover(now time.Time) {
	p.last = now
}

// CompositePolicy triggers when any member policy triggers.
type CompositePolicy struct {
	Policies []TriggeringPolicy
}

func (p CompositePolicy) IsTriggered(activePath string, now time.Time, fp FileProvider) bool {
	for _, member := range p.Policies {
		if member.IsTriggered(activePath, now, fp) {
			return true
		}
	}
	return false
}

func (p CompositePolicy) NotifyRollover(now time.Time) {
	for _, member := range p.Policies {
		if aware, ok := member.(rolloverAware); ok {
			aware.NotifyRollover(now)
		}
	}
}
