package rollfile

import (
	"time"
)

const (
	defaultMask            = 0xf
	maxMask                = 0xffff
	maskDecreaseShiftCount = 2
)

// InvocationGate decides, per call, whether an expensive periodic check
// (rollover evaluation, stale-file scan) should actually run. It self-tunes
// to the observed call rate: dense bursts raise the mask so fewer calls get
// through, sparse calls lower it toward zero where every call gets through.
//
// The gate is only ever touched from the rollover path, which runs under
// the appender write lock, so it carries no synchronization of its own.
// Given a fixed sequence of (call, now) pairs its behavior is deterministic.
type InvocationGate struct {
	mask              int64
	invocationCounter int64
	lastMaskCheck     time.Time
	minDelayThreshold time.Duration
	maxDelayThreshold time.Duration
}

// NewInvocationGate creates a gate with the default mask. minDelay and
// maxDelay bound the self-tuning: calls arriving within minDelay of the
// last real check raise the mask, calls arriving after maxDelay lower it.
func NewInvocationGate(minDelay, maxDelay time.Duration, now time.Time) *InvocationGate {
	return &InvocationGate{
		mask:              defaultMask,
		lastMaskCheck:     now,
		minDelayThreshold: minDelay,
		maxDelayThreshold: maxDelay,
	}
}

// IsTooSoon reports whether the caller should skip the real check this
// time. A false return means the check is due now.
func (g *InvocationGate) IsTooSoon(now time.Time) bool {
	if g.mask == 0 {
		// Fully open; stays open.
		return false
	}

	maskMatch := (g.invocationCounter & g.mask) == g.mask
	g.invocationCounter++

	if maskMatch {
		if now.Sub(g.lastMaskCheck) < g.minDelayThreshold {
			g.increaseMask()
		}
		g.lastMaskCheck = now
	} else if now.Sub(g.lastMaskCheck) > g.maxDelayThreshold {
		// Calls are sparse; relax the throttle and let this one through.
		g.decreaseMask()
		g.lastMaskCheck = now
		return false
	}

	return !maskMatch
}

// Mask exposes the current mask for inspection.
func (g *InvocationGate) Mask() int64 {
	return g.mask
}

func (g *InvocationGate) increaseMask() {
	if g.mask < maxMask {
		g.mask = (g.mask << 1) | 1
	}
}

func (g *InvocationGate) decreaseMask() {
	g.mask >>= maskDecreaseShiftCount
}
