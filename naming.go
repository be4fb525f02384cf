package rollfile

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// Namer resolves the concrete file name a rotation should rename the active
// file to. The rotation logic treats NextName as an opaque pure function of
// the timestamp; IsArchive is the matching predicate cleanup uses to
// recognize previously rotated siblings.
type Namer interface {
	// NextName returns the full path the closed active file is renamed to.
	NextName(now time.Time) string
	// IsArchive reports whether the base name belongs to a rotated file
	// produced by this namer (compressed or not).
	IsArchive(name string) bool
}

// TimestampNamer derives archive names from the active path by inserting a
// timestamp before the extension: app.log rotates to
// app_060102_150405_123456789.log. The nanosecond component keeps names
// unique across rapid rotations.
type TimestampNamer struct {
	ActivePath string
}

func (n TimestampNamer) NextName(now time.Time) string {
	dir := filepath.Dir(n.ActivePath)
	base, ext := n.split()
	ts := now.Format("060102_150405")
	if ext != "" {
		return filepath.Join(dir, fmt.Sprintf("%s_%s_%d%s", base, ts, now.Nanosecond(), ext))
	}
	return filepath.Join(dir, fmt.Sprintf("%s_%s_%d", base, ts, now.Nanosecond()))
}

func (n TimestampNamer) IsArchive(name string) bool {
	base, ext := n.split()
	if !strings.HasPrefix(name, base+"_") {
		return false
	}
	rest := strings.TrimSuffix(name, compressSuffix)
	if ext == "" {
		return true
	}
	return strings.HasSuffix(rest, ext)
}

func (n TimestampNamer) split() (base, ext string) {
	filename := filepath.Base(n.ActivePath)
	ext = filepath.Ext(filename)
	return filename[:len(filename)-len(ext)], ext
}

// Pattern returns the opaque pattern string registered for collision
// detection between rolling appenders sharing a context.
func (n TimestampNamer) Pattern() string {
	base, ext := n.split()
	return filepath.Join(filepath.Dir(n.ActivePath), base+"_%ts"+ext)
}
