package rollfile

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompressFileRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "rotated.log")
	payload := strings.Repeat("compressible line of log text\n", 500)
	require.NoError(t, os.WriteFile(src, []byte(payload), 0644))

	require.NoError(t, compressFile(src))

	// The original is gone, the archive decompresses to the same bytes.
	_, err := os.Stat(src)
	assert.True(t, os.IsNotExist(err))

	f, err := os.Open(src + compressSuffix)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	defer gz.Close()
	data, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, payload, string(data))

	info, err := os.Stat(src + compressSuffix)
	require.NoError(t, err)
	assert.Less(t, info.Size(), int64(len(payload)))
}

func TestCompressFileMissingSource(t *testing.T) {
	dir := t.TempDir()
	err := compressFile(filepath.Join(dir, "never-existed.log"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open rotated file")
	// No stray destination left behind.
	_, statErr := os.Stat(filepath.Join(dir, "never-existed.log"+compressSuffix))
	assert.True(t, os.IsNotExist(statErr))
}

func TestCompressFileOverwritesStaleDestination(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "again.log")
	require.NoError(t, os.WriteFile(src, []byte("fresh contents\n"), 0644))
	// Remains of an interrupted earlier attempt.
	require.NoError(t, os.WriteFile(src+compressSuffix, []byte("not gzip"), 0644))

	require.NoError(t, compressFile(src))

	f, err := os.Open(src + compressSuffix)
	require.NoError(t, err)
	defer f.Close()
	gz, err := gzip.NewReader(f)
	require.NoError(t, err)
	data, err := io.ReadAll(gz)
	require.NoError(t, err)
	assert.Equal(t, "fresh contents\n", string(data))
}
