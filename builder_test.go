package rollfile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderDefaults(t *testing.T) {
	dir := t.TempDir()
	ctx, sink := newTestContext(t)

	a, err := NewBuilder().
		Context(ctx).
		Name("built").
		File(filepath.Join(dir, "app.log")).
		Build()
	require.NoError(t, err)
	require.NotNil(t, a)

	// Returned idle; the caller starts it.
	assert.False(t, a.IsStarted())
	a.Start()
	require.True(t, a.IsStarted())

	a.Append("hello from the builder")
	a.Stop()

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello from the builder")
	assert.Empty(t, sink.Errors())
}

func TestBuilderValidatesConfig(t *testing.T) {
	_, err := NewBuilder().Name("").Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name cannot be empty")

	_, err = NewBuilder().File("").Build()
	require.Error(t, err)

	_, err = NewBuilder().Config(nil).Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "configuration cannot be nil")
}

func TestBuilderConfigIsCloned(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Name = "shared"

	b := NewBuilder().Config(cfg).Name("renamed")
	assert.Equal(t, "shared", cfg.Name, "builder must not mutate the caller's config")

	a, err := b.File(filepath.Join(t.TempDir(), "a.log")).Build()
	require.NoError(t, err)
	assert.Equal(t, "renamed", a.Name())
}

func TestBuilderAttachesRotationWhenTriggered(t *testing.T) {
	dir := t.TempDir()
	ctx, _ := newTestContext(t)

	a, err := NewBuilder().
		Context(ctx).
		Name("rotating").
		File(filepath.Join(dir, "app.log")).
		MaxSizeKB(1).
		MaxHistory(3).
		Build()
	require.NoError(t, err)
	require.NotNil(t, a.roller)
	assert.Equal(t, 3, a.roller.MaxHistory)

	// No trigger configured means no controller at all.
	plain, err := NewBuilder().
		Context(ctx).
		Name("plain").
		File(filepath.Join(dir, "plain.log")).
		MaxSizeKB(0).
		Build()
	require.NoError(t, err)
	assert.Nil(t, plain.roller)
}

func TestBuilderSizeRotationEndToEnd(t *testing.T) {
	dir := t.TempDir()
	ctx, sink := newTestContext(t)

	a, err := NewBuilder().
		Context(ctx).
		Name("e2e").
		File(filepath.Join(dir, "app.log")).
		MaxSizeKB(1).
		Compress(true).
		Build()
	require.NoError(t, err)
	// Replace the default gate so every append checks the policy.
	a.roller.Gate = &InvocationGate{}

	a.Start()
	require.True(t, a.IsStarted())
	line := strings.Repeat("b", 120)
	for i := 0; i < 50; i++ {
		a.Append(line)
	}
	a.Stop()

	var gz int
	for _, info := range a.roller.ArchiveFiles() {
		if strings.HasSuffix(info.Name(), compressSuffix) {
			gz++
		}
	}
	assert.Greater(t, gz, 0, "expected compressed archives")
	assert.Empty(t, sink.Errors())
}

func TestBuilderUnitConversions(t *testing.T) {
	b := NewBuilder().
		MaxSizeMB(5).
		RotateEvery(90 * time.Second).
		MaxAge(36 * time.Hour)

	assert.Equal(t, int64(5*sizeMultiplier), b.cfg.MaxSizeKB)
	assert.InDelta(t, 1.5, b.cfg.RotateEveryMins, 1e-9)
	assert.InDelta(t, 36.0, b.cfg.MaxAgeHrs, 1e-9)
}
