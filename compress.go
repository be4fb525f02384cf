package rollfile

import (
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
)

// compressFile gzips src into src+".gz" and removes the original. A
// pre-existing destination is presumed to be the remains of an earlier
// attempt and is truncated. On any failure the partial destination is
// removed and src is left in place.
func compressFile(src string) (err error) {
	dst := src + compressSuffix

	f, err := os.Open(src)
	if err != nil {
		return fmtErrorf("failed to open rotated file: %w", err)
	}
	defer f.Close()

	gzf, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0644)
	if err != nil {
		return fmtErrorf("failed to create compressed file: %w", err)
	}

	defer func() {
		if err != nil {
			os.Remove(dst)
			err = fmtErrorf("failed to compress rotated file: %w", err)
		}
	}()

	gz := gzip.NewWriter(gzf)
	if _, err = io.Copy(gz, f); err != nil {
		gzf.Close()
		return err
	}
	if err = gz.Close(); err != nil {
		gzf.Close()
		return err
	}
	if err = gzf.Close(); err != nil {
		return err
	}

	if err = f.Close(); err != nil {
		return err
	}
	return os.Remove(src)
}
