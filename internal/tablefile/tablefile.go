// Package tablefile reads and writes table files on disk, with transparent
// xz compression keyed on the .xz suffix.
package tablefile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/tapetools/tapeconv/internal/validation"
)

// osRename is a variable to allow testing of rename errors.
var osRename = os.Rename

// OutputPath derives the output file name from an input file name:
// the .in extension becomes .out, and a compressed input stays compressed.
// The input must already satisfy validation.CheckInputPath.
func OutputPath(inputPath string) string {
	if stem, ok := strings.CutSuffix(inputPath, validation.CompressedInputSuffix); ok {
		return stem + ".out.xz"
	}
	stem := strings.TrimSuffix(inputPath, validation.InputSuffix)
	return stem + ".out"
}

// Read returns the text content of a table file, decompressing it when the
// path carries the .xz suffix.
func Read(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open table file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if validation.IsCompressed(path) {
		xzr, err := xz.NewReader(f)
		if err != nil {
			return "", fmt.Errorf("xz reader: %w", err)
		}
		reader = xzr
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("read table file: %w", err)
	}
	return string(data), nil
}

// Write stores text at path, compressing it when the path carries the .xz
// suffix. The content lands in a temp file first and is renamed into place,
// so a failed conversion never leaves a partial output behind.
func Write(path, text string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tapeconv-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tmp.Name()

	if err := writeTo(tmp, path, text); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	// Rename to final path (atomic on POSIX)
	if err := osRename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to rename output: %w", err)
	}
	return nil
}

func writeTo(w io.Writer, path, text string) error {
	if validation.IsCompressed(path) {
		xzw, err := xz.NewWriter(w)
		if err != nil {
			return fmt.Errorf("xz writer: %w", err)
		}
		if _, err := io.WriteString(xzw, text); err != nil {
			return fmt.Errorf("write table file: %w", err)
		}
		if err := xzw.Close(); err != nil {
			return fmt.Errorf("close xz writer: %w", err)
		}
		return nil
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("write table file: %w", err)
	}
	return nil
}
