package rollfile

import (
	"io/fs"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// stubFS answers Length from a fixed table and stubs the rest.
type stubFS struct {
	sizes map[string]int64
}

func (s stubFS) ListFiles(string, func(string) bool) []fs.FileInfo { return nil }
func (s stubFS) List(string, func(string) bool) []string           { return nil }

func (s stubFS) Delete(string) bool       { return false }
func (s stubFS) Length(path string) int64 { return s.sizes[path] }

func (s stubFS) Exists(path string) bool {
	_, ok := s.sizes[path]
	return ok
}

func (s stubFS) IsDirectory(string) bool     { return false }
func (s stubFS) Rename(string, string) error { return nil }

func TestSizeBasedPolicy(t *testing.T) {
	fp := stubFS{sizes: map[string]int64{
		"small.log": 999,
		"exact.log": 1000,
		"big.log":   50_000,
	}}
	now := time.Now()

	p := SizeBasedPolicy{MaxSizeKB: 1}
	assert.False(t, p.IsTriggered("small.log", now, fp))
	assert.True(t, p.IsTriggered("exact.log", now, fp))
	assert.True(t, p.IsTriggered("big.log", now, fp))
	assert.False(t, p.IsTriggered("missing.log", now, fp))

	// Zero and negative limits disable the policy entirely.
	assert.False(t, SizeBasedPolicy{}.IsTriggered("big.log", now, fp))
	assert.False(t, SizeBasedPolicy{MaxSizeKB: -1}.IsTriggered("big.log", now, fp))
}

func TestTimeBasedPolicy(t *testing.T) {
	base := time.Unix(1000, 0)
	p := &TimeBasedPolicy{Interval: time.Minute}

	// First sighting seeds the window without triggering.
	assert.False(t, p.IsTriggered("a.log", base, nil))
	assert.False(t, p.IsTriggered("a.log", base.Add(59*time.Second), nil))
	assert.True(t, p.IsTriggered("a.log", base.Add(time.Minute), nil))

	// A rotation restarts the window.
	p.NotifyRollover(base.Add(time.Minute))
	assert.False(t, p.IsTriggered("a.log", base.Add(90*time.Second), nil))
	assert.True(t, p.IsTriggered("a.log", base.Add(2*time.Minute), nil))

	assert.False(t, (&TimeBasedPolicy{}).IsTriggered("a.log", base, nil))
}

func TestCompositePolicy(t *testing.T) {
	fp := stubFS{sizes: map[string]int64{"app.log": 5000}}
	base := time.Unix(1000, 0)

	size := SizeBasedPolicy{MaxSizeKB: 10}
	interval := &TimeBasedPolicy{Interval: time.Minute}
	p := CompositePolicy{Policies: []TriggeringPolicy{size, interval}}

	assert.False(t, p.IsTriggered("app.log", base, fp))

	// Either member may fire the composite.
	assert.True(t, p.IsTriggered("app.log", base.Add(2*time.Minute), fp))
	assert.True(t, CompositePolicy{
		Policies: []TriggeringPolicy{SizeBasedPolicy{MaxSizeKB: 1}},
	}.IsTriggered("app.log", base, fp))

	// NotifyRollover reaches rollover-aware members only.
	p.NotifyRollover(base.Add(2 * time.Minute))
	assert.False(t, p.IsTriggered("app.log", base.Add(150*time.Second), fp))

	assert.False(t, CompositePolicy{}.IsTriggered("app.log", base, fp))
}
