// Package validation checks user-supplied input paths before any file is
// opened, so a bad invocation fails fast with a precise error instead of a
// stray open(2) failure.
package validation

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/tapetools/tapeconv/core/errors"
)

// Limits on user-supplied paths.
const (
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
)

// InputSuffix is the required extension for table files.
const InputSuffix = ".in"

// CompressedInputSuffix marks an xz-compressed table file.
const CompressedInputSuffix = ".in.xz"

// CheckInputPath validates a table file path: non-empty, within length
// limits, free of control characters, and carrying the .in (or .in.xz)
// extension. It never touches the filesystem.
func CheckInputPath(path string) error {
	if path == "" {
		return errors.NewExtension(path, InputSuffix)
	}
	if len(path) > MaxPathLength {
		return errors.Wrap(errors.NewExtension(path, InputSuffix), "path too long")
	}
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("invalid character in path %q: null byte not allowed", path)
	}
	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("invalid character in path %q: control character not allowed", path)
		}
	}
	if !HasInputSuffix(path) {
		return errors.NewExtension(path, InputSuffix)
	}
	return nil
}

// HasInputSuffix reports whether the path names a table file, compressed
// or not. A bare ".in" or ".in.xz" with no stem does not count.
func HasInputSuffix(path string) bool {
	stem, ok := strings.CutSuffix(path, CompressedInputSuffix)
	if !ok {
		stem, ok = strings.CutSuffix(path, InputSuffix)
	}
	return ok && stem != ""
}

// IsCompressed reports whether the path names an xz-compressed table file.
func IsCompressed(path string) bool {
	return strings.HasSuffix(path, ".xz")
}
