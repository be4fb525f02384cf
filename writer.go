package rollfile

import (
	"io"
	"sync"
)

// flusher is implemented by buffered outputs that need an explicit push to
// the operating system. Raw *os.File writes are already unbuffered.
type flusher interface {
	Flush() error
}

// lockedWriter owns the single open output handle and serializes every
// byte-level operation on it. All mutating operations hold mu for their
// entire critical section, so a concurrent close can never race a write
// and two events' bytes can never interleave.
//
// The same mutex also guards the owning appender's lifecycle transitions;
// nothing here is reentrant.
type lockedWriter struct {
	mu             sync.Mutex
	out            io.WriteCloser
	enc            Encoder
	immediateFlush bool
}

// write appends p to the active output. A zero-length p is a no-op and
// does not acquire the lock.
func (w *lockedWriter) write(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.writeLocked(p)
}

func (w *lockedWriter) writeLocked(p []byte) error {
	if len(p) == 0 {
		return nil
	}
	if w.out == nil {
		return fmtErrorf("no output attached")
	}
	if _, err := w.out.Write(p); err != nil {
		return err
	}
	if w.immediateFlush {
		if f, ok := w.out.(flusher); ok {
			return f.Flush()
		}
	}
	return nil
}

// replace installs wc as the new active output, closing any previous one
// first (emitting the encoder footer through itself) and then emitting the
// encoder header into wc. A nil wc just closes.
func (w *lockedWriter) replace(wc io.WriteCloser) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.replaceLocked(wc)
}

// close is replace(nil).
func (w *lockedWriter) close() error {
	return w.replace(nil)
}

func (w *lockedWriter) replaceLocked(wc io.WriteCloser) error {
	closeErr := w.closeLocked()
	w.out = wc
	if wc == nil || w.enc == nil {
		return closeErr
	}
	header, err := w.enc.HeaderBytes()
	if err != nil {
		return combineErrors(closeErr, err)
	}
	if err := w.writeLocked(header); err != nil {
		return combineErrors(closeErr, err)
	}
	return closeErr
}

// closeLocked emits the footer and closes the current output. An absent
// output is ignored.
func (w *lockedWriter) closeLocked() error {
	if w.out == nil {
		return nil
	}
	var footerErr error
	if w.enc != nil {
		footer, err := w.enc.FooterBytes()
		if err == nil {
			footerErr = w.writeLocked(footer)
		} else {
			footerErr = err
		}
	}
	err := w.out.Close()
	w.out = nil
	return combineErrors(footerErr, err)
}

// setEncoder swaps the encoder under the lock.
func (w *lockedWriter) setEncoder(enc Encoder) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.enc = enc
}

// hasOutput reports whether an output is currently attached.
func (w *lockedWriter) hasOutput() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.out != nil
}
