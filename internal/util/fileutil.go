package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

const tmpPattern = ".mirrorsync-*.tmp"

// CopyFile copies src onto dst through a temp file in dst's directory,
// carrying over the permission bits and the modification time. Missing
// parent directories are created.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open src: %w", err)
	}

	defer func(in *os.File) {
		_ = in.Close()
	}(in)

	info, err := in.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat src: %w", err)
	}

	if !info.Mode().IsRegular() {
		return fmt.Errorf("failed to copy %s: not a regular file", src)
	}

	return atomicWrite(dst, in, info)
}

// atomicWrite writes r to dst via rename, applying the mode and mtime of info
// to the result.
func atomicWrite(dst string, r io.Reader, info os.FileInfo) error {
	dir := filepath.Dir(dst)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create parent dir: %w", err)
	}

	f, err := os.CreateTemp(dir, tmpPattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	tmp := f.Name()
	defer func() {
		if tmp != "" {
			_ = os.Remove(tmp)
		}
	}()

	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write: %w", err)
	}

	if err := f.Chmod(info.Mode().Perm()); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	// mtime must be set after Close, the final flush may touch it
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Chtimes(tmp, info.ModTime(), info.ModTime()); err != nil {
		return fmt.Errorf("failed to set timestamps: %w", err)
	}

	if err := os.Rename(tmp, dst); err != nil {
		return fmt.Errorf("failed to rename: %w", err)
	}

	tmp = ""
	return nil
}
