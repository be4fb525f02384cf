package compat

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcspan/rollfile"
)

func newStartedAppender(t *testing.T) (*rollfile.Appender, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "adapter.log")
	sink := &rollfile.CollectingSink{}

	a, err := rollfile.NewBuilder().
		Context(rollfile.NewContext(t.Name(), sink)).
		Name(t.Name()).
		File(path).
		Build()
	require.NoError(t, err)
	a.Start()
	require.True(t, a.IsStarted())
	t.Cleanup(a.Stop)
	return a, path
}

func readLog(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestGnetAdapterLevels(t *testing.T) {
	a, path := newStartedAppender(t)

	fatals := 0
	adapter := NewGnetAdapter(a, WithFatalHandler(func(string) { fatals++ }))

	adapter.Debugf("dialing %s", "127.0.0.1:9000")
	adapter.Infof("accepted %d connections", 3)
	adapter.Warnf("slow consumer")
	adapter.Errorf("read: %v", os.ErrClosed)
	adapter.Fatalf("listener gone")

	a.Stop()
	out := readLog(t, path)
	assert.Contains(t, out, "DEBUG [gnet] dialing 127.0.0.1:9000")
	assert.Contains(t, out, "INFO [gnet] accepted 3 connections")
	assert.Contains(t, out, "WARN [gnet] slow consumer")
	assert.Contains(t, out, "ERROR [gnet] read: file already closed")
	assert.Contains(t, out, "FATAL [gnet] listener gone")
	assert.Equal(t, 1, fatals, "custom fatal handler replaces os.Exit")
}

func TestFastHTTPAdapterLevelDetection(t *testing.T) {
	a, path := newStartedAppender(t)
	adapter := NewFastHTTPAdapter(a)

	adapter.Printf("serving on %s", ":8080")
	adapter.Printf("error when serving connection")
	adapter.Printf("deprecated option used")

	a.Stop()
	out := readLog(t, path)
	assert.Contains(t, out, "INFO [fasthttp] serving on :8080")
	assert.Contains(t, out, "ERROR [fasthttp] error when serving connection")
	assert.Contains(t, out, "WARN [fasthttp] deprecated option used")
}

func TestFastHTTPAdapterOptions(t *testing.T) {
	a, path := newStartedAppender(t)
	adapter := NewFastHTTPAdapter(a,
		WithDefaultLevel("NOTICE"),
		WithLevelDetector(func(string) string { return "" }),
	)

	adapter.Printf("error text that the nil detector ignores")

	a.Stop()
	assert.Contains(t, readLog(t, path), "NOTICE [fasthttp] error text")
}

func TestDetectLogLevel(t *testing.T) {
	tests := []struct {
		msg   string
		level string
	}{
		{"connection failed: timeout", "ERROR"},
		{"PANIC recovered in handler", "ERROR"},
		{"warning: connection pool exhausted", "WARN"},
		{"this flag is deprecated", "WARN"},
		{"debug: wrote 512 bytes", "DEBUG"},
		{"trace id 4f2a", "DEBUG"},
		{"listening on :8080", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.level, DetectLogLevel(tt.msg), "message %q", tt.msg)
	}
}

func TestBuilderWithConfig(t *testing.T) {
	cfg := rollfile.DefaultConfig()
	cfg.Name = "compat-built"
	cfg.File = filepath.Join(t.TempDir(), "compat.log")

	b := NewBuilder().WithConfig(cfg)
	gnet, err := b.BuildGnet()
	require.NoError(t, err)
	require.NotNil(t, gnet)

	// The second build reuses the cached appender.
	fh, err := b.BuildFastHTTP()
	require.NoError(t, err)

	a, err := b.GetAppender()
	require.NoError(t, err)
	t.Cleanup(a.Stop)
	assert.True(t, a.IsStarted())

	gnet.Infof("from gnet")
	fh.Printf("from fasthttp")
	a.Stop()

	out := readLog(t, cfg.File)
	assert.Contains(t, out, "INFO [gnet] from gnet")
	assert.Contains(t, out, "INFO [fasthttp] from fasthttp")
}

func TestBuilderWithExistingAppender(t *testing.T) {
	a, _ := newStartedAppender(t)

	got, err := NewBuilder().WithAppender(a).GetAppender()
	require.NoError(t, err)
	assert.Same(t, a, got)

	_, err = NewBuilder().WithAppender(nil).BuildGnet()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be nil")
}

func TestBuilderRejectsBadConfig(t *testing.T) {
	cfg := rollfile.DefaultConfig()
	cfg.File = ""

	_, err := NewBuilder().WithConfig(cfg).BuildFastHTTP()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "file path cannot be empty")
}
