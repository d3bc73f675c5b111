// Package cliutil provides utilities for CLI operations.
package cliutil

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/erraggy/schemagraph/internal/fileutil"
)

// Writef writes formatted output to the writer.
// If the write fails, it logs to stderr (useful for debugging).
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}

// CheckOutputPath rejects an output path that would overwrite one of the
// inputs or that is a symlink.
func CheckOutputPath(outputPath string, inputPaths ...string) error {
	absOutput, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}
	for _, in := range inputPaths {
		absInput, err := filepath.Abs(in)
		if err != nil {
			return fmt.Errorf("invalid input path %s: %w", in, err)
		}
		if absOutput == absInput {
			return fmt.Errorf("output file %s would overwrite input file %s", outputPath, in)
		}
	}

	info, err := os.Lstat(absOutput)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("checking output path: %w", err)
	}
	if info.Mode()&os.ModeSymlink != 0 {
		return fmt.Errorf("refusing to write to symlink: %s", outputPath)
	}
	return nil
}

// WriteOutput writes data to path with owner-only permissions after
// CheckOutputPath passes.
func WriteOutput(path string, data []byte, inputPaths ...string) error {
	if err := CheckOutputPath(path, inputPaths...); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(path), data, fileutil.OwnerReadWrite); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
