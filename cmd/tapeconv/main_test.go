package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tcerrors "github.com/tapetools/tapeconv/core/errors"
	"github.com/tapetools/tapeconv/core/history"
)

func writeTable(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestConvertCmdWritesOutput(t *testing.T) {
	path := writeTable(t, "walker.in", ";I\n0 0 1 r 1\n1 1 1 l 0\n")

	cmd := &ConvertCmd{Path: path}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	outPath := strings.TrimSuffix(path, ".in") + ".out"
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", outPath, err)
	}
	if !strings.HasPrefix(string(data), ";S\n") {
		t.Errorf("output does not start with the Sipser tag:\n%s", data)
	}
}

func TestConvertCmdRejectsBadExtension(t *testing.T) {
	path := writeTable(t, "walker.txt", ";I\n0 0 1 r 1\n")

	cmd := &ConvertCmd{Path: path}
	err := cmd.Run()
	if !errors.Is(err, tcerrors.ErrBadInputExtension) {
		t.Fatalf("Run() error = %v, want ErrBadInputExtension", err)
	}

	// No output file may exist after a failed run.
	outPath := strings.TrimSuffix(path, ".txt") + ".out"
	if _, statErr := os.Stat(outPath); statErr == nil {
		t.Error("output file written despite validation failure")
	}
}

func TestConvertCmdRejectsMalformedTable(t *testing.T) {
	path := writeTable(t, "broken.in", ";I\n0 0 1 r\n")

	cmd := &ConvertCmd{Path: path}
	err := cmd.Run()
	if !errors.Is(err, tcerrors.ErrMalformedTransition) {
		t.Fatalf("Run() error = %v, want ErrMalformedTransition", err)
	}

	outPath := strings.TrimSuffix(path, ".in") + ".out"
	if _, statErr := os.Stat(outPath); statErr == nil {
		t.Error("output file written despite parse failure")
	}
}

func TestConvertCmdMissingFile(t *testing.T) {
	cmd := &ConvertCmd{Path: filepath.Join(t.TempDir(), "absent.in")}
	if err := cmd.Run(); err == nil {
		t.Error("Run() on a missing file succeeded")
	}
}

func TestConvertCmdRecordsHistory(t *testing.T) {
	path := writeTable(t, "walker.in", ";I\n0 0 1 r 1\n")
	dbPath := filepath.Join(t.TempDir(), "history.db")

	CLI.History = dbPath
	defer func() { CLI.History = "" }()

	cmd := &ConvertCmd{Path: path}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	store, err := history.Open(dbPath)
	if err != nil {
		t.Fatalf("history.Open() error = %v", err)
	}
	defer store.Close()

	recs, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("List() returned %d records, want 1", len(recs))
	}
	if recs[0].SourceModel != "Infinite" || recs[0].TargetModel != "Sipser" {
		t.Errorf("recorded models = %s -> %s", recs[0].SourceModel, recs[0].TargetModel)
	}
	if recs[0].InputDigest == "" || recs[0].OutputDigest == "" {
		t.Error("recorded digests are empty")
	}
}

func TestConvertCmdSipserInput(t *testing.T) {
	path := writeTable(t, "shift.in", ";S\n0 _ 1 r 0\n0 1 1 l 0\n")

	cmd := &ConvertCmd{Path: path}
	if err := cmd.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	outPath := strings.TrimSuffix(path, ".in") + ".out"
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if !strings.HasPrefix(string(data), ";I\n") {
		t.Errorf("output does not start with the Infinite tag:\n%s", data)
	}
}
