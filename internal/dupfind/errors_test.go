package dupfind

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsExhausted(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "too many open files", err: &fs.PathError{Op: "open", Path: "/x", Err: syscall.EMFILE}, want: true},
		{name: "file table overflow", err: fmt.Errorf("hash stage: %w", syscall.ENFILE), want: true},
		{name: "out of memory", err: &fs.PathError{Op: "read", Path: "/x", Err: syscall.ENOMEM}, want: true},
		{name: "permission denied", err: &fs.PathError{Op: "open", Path: "/x", Err: syscall.EACCES}, want: false},
		{name: "not found", err: fmt.Errorf("opening: %w", syscall.ENOENT), want: false},
		{name: "size changed", err: ErrSizeChanged, want: false},
		{name: "other", err: errors.New("boom"), want: false},
		{name: "nil", err: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, isExhausted(tt.err))
		})
	}
}
