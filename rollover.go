package rollfile

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// RolloverController rotates the owning appender's active file. After every
// successful write the appender hands it the current time; the invocation
// gate throttles how often the triggering policy is actually evaluated, and
// when the policy fires the controller renames the active file to the name
// resolved by the Namer, reopens a fresh handle at the active path, and
// prunes rotated history.
//
// Rotation itself runs under the appender's write lock. Compression and the
// retention sweep run after the lock is released: a concurrent writer may
// briefly see the fresh active file before old archives are gone, which
// loses no events.
type RolloverController struct {
	// Policy decides when to rotate. Required.
	Policy TriggeringPolicy
	// Namer resolves rotated file names. Defaults to TimestampNamer over
	// the appender's active path.
	Namer Namer
	// Pattern is the opaque rotation pattern registered for collision
	// detection. Defaults to the TimestampNamer pattern.
	Pattern string
	// Compress gzips rotated files.
	Compress bool
	// MaxHistory caps the number of rotated files kept; 0 disables.
	MaxHistory int
	// MaxAge removes rotated files older than this; 0 disables.
	MaxAge time.Duration
	// FS is the filesystem port. Defaults to the os-backed provider.
	FS FileProvider
	// Gate throttles rollover checks. Defaults to a fresh gate with the
	// package default delay thresholds.
	Gate *InvocationGate

	appender *Appender
	sweepMu  sync.Mutex
}

func (rc *RolloverController) attach(a *Appender) {
	rc.appender = a
}

// start fills defaults and registers the rotation pattern in the context's
// collision table. Called from Appender.Start.
func (rc *RolloverController) start() {
	a := rc.appender
	if rc.FS == nil {
		rc.FS = NewOSFileProvider()
	}
	if rc.Namer == nil {
		rc.Namer = TimestampNamer{ActivePath: a.file}
	}
	if rc.Pattern == "" {
		if p, ok := rc.Namer.(interface{ Pattern() string }); ok {
			rc.Pattern = p.Pattern()
		} else {
			rc.Pattern = a.file
		}
	}
	if rc.Gate == nil {
		rc.Gate = NewInvocationGate(defaultMinDelay, defaultMaxDelay, nowFn())
	}
	if rc.Policy == nil {
		a.ctx.addError(rc.origin(), "No triggering policy set; rollover disabled.", nil)
	}

	if ok, owner := a.ctx.registry.registerPattern(rc.Pattern, a.name); !ok {
		a.ctx.addError(rc.origin(),
			fmt.Sprintf("'FileNamePattern' option has the same value %q as that given for appender [%s] defined earlier.", rc.Pattern, owner), nil)
	}
}

func (rc *RolloverController) stop() {}

// maybeRollover is the per-event entry point. The gate consult, policy
// evaluation and the rotation steps all run in one hold of the appender
// write lock, so no event can straddle the rotation boundary.
func (rc *RolloverController) maybeRollover(now time.Time) {
	if rc.Policy == nil {
		return
	}
	a := rc.appender
	w := &a.writer

	var rotated string
	w.mu.Lock()
	if rc.Gate.IsTooSoon(now) || !rc.Policy.IsTriggered(a.file, now, rc.FS) {
		w.mu.Unlock()
		return
	}
	rotated = rc.rolloverLocked(now)
	w.mu.Unlock()

	rc.finishRollover(rotated)
}

// Rollover forces a rotation regardless of gate and policy. Exposed for
// operational triggers (SIGHUP handlers and the like). No-op unless the
// appender is started.
func (rc *RolloverController) Rollover() {
	a := rc.appender
	if a == nil || a.state.Load() != StateStarted {
		return
	}
	now := nowFn()
	a.writer.mu.Lock()
	rotated := rc.rolloverLocked(now)
	a.writer.mu.Unlock()
	rc.finishRollover(rotated)
}

// rolloverLocked performs close-rename-reopen under the already-held write
// lock and returns the rotated file's path, or "" if the rename failed (in
// which case logging continues on the active name; nothing is lost).
func (rc *RolloverController) rolloverLocked(now time.Time) string {
	a := rc.appender
	w := &a.writer

	if err := w.closeLocked(); err != nil {
		a.ctx.addError(rc.origin(), "Failed to close active file during rollover.", err)
	}

	dest := rc.Namer.NextName(now)
	if err := rc.FS.Rename(a.file, dest); err != nil {
		a.ctx.addError(rc.origin(),
			fmt.Sprintf("Failed to rename %q to %q during rollover; continuing on the active file.", a.file, dest), err)
		dest = ""
	}

	f, err := openAppend(a.file)
	if err != nil {
		// The next Append will fail against the missing output and demote
		// the appender; report the cause here once.
		a.ctx.addError(rc.origin(), "Failed to reopen active file after rollover.", err)
	} else if err := w.replaceLocked(f); err != nil {
		a.ctx.addError(rc.origin(), "Failed to initialize reopened active file.", err)
	}

	if aware, ok := rc.Policy.(rolloverAware); ok {
		aware.NotifyRollover(now)
	}
	return dest
}

// finishRollover compresses the rotated file and sweeps retention, outside
// the write lock. Sweeps are serialized among themselves so two rotations
// in quick succession do not race over the same archives.
func (rc *RolloverController) finishRollover(rotated string) {
	rc.sweepMu.Lock()
	defer rc.sweepMu.Unlock()

	a := rc.appender
	if rc.Compress && rotated != "" {
		if err := compressFile(rotated); err != nil {
			a.ctx.addError(rc.origin(), fmt.Sprintf("Failed to compress rotated file %q.", rotated), err)
		}
	}
	rc.sweep(nowFn())
}

// sweep enumerates rotated siblings and deletes those beyond the retention
// limits. Individual delete failures are reported and skipped; the sweep
// never aborts early.
func (rc *RolloverController) sweep(now time.Time) {
	if rc.MaxHistory <= 0 && rc.MaxAge <= 0 {
		return
	}
	a := rc.appender
	dir := filepath.Dir(a.file)

	archives := rc.FS.ListFiles(dir, rc.Namer.IsArchive)
	sort.Slice(archives, func(i, j int) bool {
		return archives[i].ModTime().Before(archives[j].ModTime())
	})

	var cutoff time.Time
	if rc.MaxAge > 0 {
		cutoff = now.Add(-rc.MaxAge)
	}

	remaining := len(archives)
	for _, info := range archives {
		overCount := rc.MaxHistory > 0 && remaining > rc.MaxHistory
		overAge := rc.MaxAge > 0 && info.ModTime().Before(cutoff)
		if !overCount && !overAge {
			continue
		}
		path := filepath.Join(dir, info.Name())
		if !rc.FS.Delete(path) {
			a.ctx.addError(rc.origin(), fmt.Sprintf("Failed to delete expired log file %q.", path), nil)
			continue
		}
		remaining--
	}
}

// ArchiveFiles returns the rotated siblings of the active file, oldest
// first. Primarily for tests and operational tooling.
func (rc *RolloverController) ArchiveFiles() []fs.FileInfo {
	if rc.FS == nil || rc.Namer == nil || rc.appender == nil {
		return nil
	}
	archives := rc.FS.ListFiles(filepath.Dir(rc.appender.file), rc.Namer.IsArchive)
	sort.Slice(archives, func(i, j int) bool {
		return archives[i].ModTime().Before(archives[j].ModTime())
	})
	return archives
}

func (rc *RolloverController) origin() string {
	if rc.appender != nil {
		return "rollover[" + rc.appender.name + "]"
	}
	return "rollover"
}
