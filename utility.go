package rollfile

import (
	"fmt"
	"strings"
	"time"
)

// nowFn is swapped out by tests that need a fixed clock.
var nowFn = time.Now

// fmtErrorf wrapper
func fmtErrorf(format string, args ...any) error {
	if !strings.HasPrefix(format, "rollfile: ") {
		format = "rollfile: " + format
	}
	return fmt.Errorf(format, args...)
}

// combineErrors helper
func combineErrors(err1, err2 error) error {
	if err1 == nil {
		return err2
	}
	if err2 == nil {
		return err1
	}
	return fmt.Errorf("%v; %w", err1, err2)
}
