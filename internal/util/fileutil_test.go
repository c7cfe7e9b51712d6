package util

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"testing/iotest"
	"time"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestCopyFilePreservesContentAndMtime(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src", "a.txt")
	dst := filepath.Join(dir, "dst", "nested", "a.txt")

	writeFile(t, src, "hello")
	mtime := time.Date(2021, 3, 4, 5, 6, 7, 123456789, time.UTC)
	if err := os.Chtimes(src, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("copy: %v", err)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "hello" {
		t.Fatalf("unexpected content: %q", data)
	}

	srcInfo, _ := os.Stat(src)
	dstInfo, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !dstInfo.ModTime().Equal(srcInfo.ModTime()) {
		t.Fatalf("mtime = %v, want %v", dstInfo.ModTime(), srcInfo.ModTime())
	}
}

func TestCopyFilePreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not meaningful on windows")
	}

	dir := t.TempDir()
	src := filepath.Join(dir, "run.sh")
	dst := filepath.Join(dir, "out", "run.sh")

	writeFile(t, src, "#!/bin/sh\n")
	if err := os.Chmod(src, 0o750); err != nil {
		t.Fatalf("chmod: %v", err)
	}

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("copy: %v", err)
	}

	info, err := os.Stat(dst)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if info.Mode().Perm() != 0o750 {
		t.Fatalf("mode = %v", info.Mode().Perm())
	}
}

func TestCopyFileOverwrites(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")

	writeFile(t, src, "new")
	writeFile(t, dst, "old content that is longer")

	if err := CopyFile(src, dst); err != nil {
		t.Fatalf("copy: %v", err)
	}

	data, _ := os.ReadFile(dst)
	if string(data) != "new" {
		t.Fatalf("unexpected content: %q", data)
	}
}

func TestCopyFileMissingSourceLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "out", "a.txt")

	if err := CopyFile(filepath.Join(dir, "missing.txt"), dst); err == nil {
		t.Fatal("expected error")
	}

	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Fatalf("dst should not exist, got %v", err)
	}
}

func TestCopyFileRejectsDirectory(t *testing.T) {
	dir := t.TempDir()
	if err := CopyFile(dir, filepath.Join(dir, "x")); err == nil || !strings.Contains(err.Error(), "not a regular file") {
		t.Fatalf("expected regular file error, got %v", err)
	}
}

func TestCopyFileLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	out := filepath.Join(dir, "out")

	writeFile(t, src, "data")
	if err := CopyFile(src, filepath.Join(out, "a.txt")); err != nil {
		t.Fatalf("copy: %v", err)
	}
	if err := CopyFile(dir, filepath.Join(out, "b.txt")); err == nil {
		t.Fatal("expected error")
	}

	leftovers, err := filepath.Glob(filepath.Join(out, tmpPattern))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Fatalf("temp files left behind: %v", leftovers)
	}

	entries, _ := os.ReadDir(out)
	if len(entries) != 1 || entries[0].Name() != "a.txt" {
		t.Fatalf("unexpected entries in %s: %v", out, entries)
	}
}

func TestAtomicWriteFailureRemovesTemp(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "out", "a.txt")
	writeFile(t, src, "data")

	info, err := os.Stat(src)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}

	boom := errors.New("boom")
	if err := atomicWrite(dst, iotest.ErrReader(boom), info); !errors.Is(err, boom) {
		t.Fatalf("expected read error, got %v", err)
	}

	entries, _ := os.ReadDir(filepath.Dir(dst))
	if len(entries) != 0 {
		t.Fatalf("partial write left behind: %v", entries)
	}
}
