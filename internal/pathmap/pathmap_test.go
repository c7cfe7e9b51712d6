package pathmap

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestMap(t *testing.T) {
	src := filepath.FromSlash("/src")
	dst := filepath.FromSlash("/dst")

	tests := []struct {
		name string
		path string
		want string
	}{
		{"root", "/src", "/dst"},
		{"file", "/src/b.txt", "/dst/b.txt"},
		{"nested", "/src/a/b.txt", "/dst/a/b.txt"},
		{"deep", "/src/a/b/c/d.bin", "/dst/a/b/c/d.bin"},
		{"root repeated later", "/src/x/src/y.txt", "/dst/x/src/y.txt"},
		{"dotdot-like name", "/src/..hidden", "/dst/..hidden"},
		{"unclean", "/src/a/../b.txt", "/dst/b.txt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Map(src, dst, filepath.FromSlash(tt.path))
			if err != nil {
				t.Fatalf("map: %v", err)
			}
			if want := filepath.FromSlash(tt.want); got != want {
				t.Fatalf("got %q, want %q", got, want)
			}
		})
	}
}

func TestMapRejectsOutsideRoot(t *testing.T) {
	m := New(filepath.FromSlash("/data"), filepath.FromSlash("/backup"))

	for _, p := range []string{"/data2/file.txt", "/other/file.txt", "/", "/data/../etc/passwd"} {
		_, err := m.Map(filepath.FromSlash(p))
		if err == nil {
			t.Fatalf("expected error for %q", p)
		}

		var mapErr *MappingError
		if !errors.As(err, &mapErr) {
			t.Fatalf("expected MappingError for %q, got %T", p, err)
		}
	}
}

func TestMapTrailingSeparatorOnRoot(t *testing.T) {
	m := New(filepath.FromSlash("/src/"), filepath.FromSlash("/dst/"))

	got, err := m.Map(filepath.FromSlash("/src/a.txt"))
	if err != nil {
		t.Fatalf("map: %v", err)
	}
	if want := filepath.FromSlash("/dst/a.txt"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
