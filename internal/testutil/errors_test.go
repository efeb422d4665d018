package testutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// errMockWrapped is a static error for testing that non-wrapped errors don't match sentinels.
var errMockWrapped = errors.New("wrapped: connection refused")

func TestMockErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"ErrMockConnectionRefused", ErrMockConnectionRefused, "connection refused"},
		{"ErrMockMailboxFull", ErrMockMailboxFull, "mailbox full"},
		{"ErrMockRender", ErrMockRender, "oops"},
		{"ErrMockFault", ErrMockFault, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Error() != tt.want {
				t.Errorf("%s.Error() = %q, want %q", tt.name, tt.err.Error(), tt.want)
			}
		})
	}
}

func TestMockErrorsAreSentinelErrors(t *testing.T) {
	wrapped := fmt.Errorf("send: %w", ErrMockConnectionRefused)
	if !errors.Is(wrapped, ErrMockConnectionRefused) {
		t.Error("wrapped error should match sentinel")
	}

	// Non-wrapped errors should not match (standard Go error behavior)
	if errors.Is(errMockWrapped, ErrMockConnectionRefused) {
		t.Error("non-wrapped error should not match sentinel")
	}
}

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()

	path := WriteFile(t, dir, "manifest.yaml", "project: alpha\n")

	if path != filepath.Join(dir, "manifest.yaml") {
		t.Errorf("path = %q", path)
	}
	data, err := os.ReadFile(path) //#nosec G304 -- test file in temp dir
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "project: alpha\n" {
		t.Errorf("content = %q", data)
	}
}
