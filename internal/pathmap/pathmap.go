// Package pathmap translates paths under a source root into the matching
// path under a destination root.
package pathmap

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MappingError reports a path that does not lie under the source root.
type MappingError struct {
	Path string
	Root string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("path %q is not under source root %q", e.Path, e.Root)
}

type Mapper struct {
	src string
	dst string
}

func New(src, dst string) Mapper {
	return Mapper{
		src: filepath.Clean(src),
		dst: filepath.Clean(dst),
	}
}

func (m Mapper) Src() string { return m.src }
func (m Mapper) Dst() string { return m.dst }

// Rel returns path relative to the source root. Siblings sharing a string
// prefix with the root (/data2 for /data) are rejected.
func (m Mapper) Rel(path string) (string, error) {
	rel, err := filepath.Rel(m.src, filepath.Clean(path))
	if err != nil {
		return "", &MappingError{Path: path, Root: m.src}
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &MappingError{Path: path, Root: m.src}
	}

	return rel, nil
}

// Map swaps the leading source root for the destination root. Later
// occurrences of the root inside the path are left alone.
func (m Mapper) Map(path string) (string, error) {
	rel, err := m.Rel(path)
	if err != nil {
		return "", err
	}

	if rel == "." {
		return m.dst, nil
	}

	return filepath.Join(m.dst, rel), nil
}

func Map(src, dst, path string) (string, error) {
	return New(src, dst).Map(path)
}
