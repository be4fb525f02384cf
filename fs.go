package rollfile

import (
	"io/fs"
	"os"
	"path/filepath"
)

// FileProvider abstracts the filesystem queries the rotation and cleanup
// logic depends on, so that logic is testable without touching a disk.
// Query operations are best-effort and never panic; Delete and the listing
// methods swallow I/O errors and report absence instead.
type FileProvider interface {
	// ListFiles returns file info for entries of dir whose name matches.
	ListFiles(dir string, match func(name string) bool) []fs.FileInfo
	// List returns the names of entries of dir whose name matches.
	List(dir string, match func(name string) bool) []string
	// Delete removes path, reporting success.
	Delete(path string) bool
	// Length returns the size of path in bytes, 0 if it cannot be determined.
	Length(path string) int64
	// Exists reports whether path exists.
	Exists(path string) bool
	// IsDirectory reports whether path is a directory.
	IsDirectory(path string) bool
	// Rename moves old to new. Rotation treats a failure as non-fatal.
	Rename(oldPath, newPath string) error
}

// osFileProvider is the production FileProvider backed by the os package.
type osFileProvider struct{}

// NewOSFileProvider returns a FileProvider over the real filesystem.
func NewOSFileProvider() FileProvider {
	return osFileProvider{}
}

func (osFileProvider) ListFiles(dir string, match func(string) bool) []fs.FileInfo {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []fs.FileInfo
	for _, entry := range entries {
		if entry.IsDir() || (match != nil && !match(entry.Name())) {
			continue
		}
		info, errInfo := entry.Info()
		if errInfo != nil {
			continue
		}
		out = append(out, info)
	}
	return out
}

func (osFileProvider) List(dir string, match func(string) bool) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, entry := range entries {
		if entry.IsDir() || (match != nil && !match(entry.Name())) {
			continue
		}
		out = append(out, entry.Name())
	}
	return out
}

func (osFileProvider) Delete(path string) bool {
	return os.Remove(path) == nil
}

func (osFileProvider) Length(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func (osFileProvider) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (osFileProvider) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func (osFileProvider) Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

// openAppend opens (creating if needed) the active log file for appending.
func openAppend(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmtErrorf("failed to create log directory '%s': %w", dir, err)
		}
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmtErrorf("failed to open/create log file '%s': %w", path, err)
	}
	return f, nil
}
