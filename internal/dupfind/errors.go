package dupfind

import (
	"errors"
	"syscall"
)

// isExhausted reports whether err signals resource exhaustion.
// Such errors abort the run; every other per-entry error only skips the entry.
func isExhausted(err error) bool {
	return errors.Is(err, syscall.EMFILE) ||
		errors.Is(err, syscall.ENFILE) ||
		errors.Is(err, syscall.ENOMEM)
}
