// Package fsx provides the filesystem primitives the pipeline relies on:
// cross-device-safe moves and write-permission probes.
package fsx

import (
	"errors"
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/google/uuid"
)

// MoveFile renames src to dst. When the rename fails with EXDEV (src and dst
// on different filesystems) it falls back to copy-then-remove so relocation
// still works across mount points.
func MoveFile(src, dst string) error {
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !errors.Is(err, syscall.EXDEV) {
		return err
	}
	if err := copyFile(src, dst); err != nil {
		return fmt.Errorf("cross-device move %q -> %q: %w", src, dst, err)
	}
	return os.Remove(src)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	fi, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, fi.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}

// ProbeWritable verifies dir accepts writes by creating and removing a
// uniquely named marker file. Used to fail fast on permission errors before
// any pipeline work starts.
func ProbeWritable(dir string) error {
	marker := dir + string(os.PathSeparator) + ".probe-" + uuid.NewString()
	f, err := os.OpenFile(marker, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("directory not writable: %q: %w", dir, err)
	}
	f.Close()
	return os.Remove(marker)
}

// Exists reports whether path refers to an existing file or directory.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
