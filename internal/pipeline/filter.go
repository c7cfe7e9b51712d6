package pipeline

import (
	"path/filepath"
	"strings"

	"mirrorsync/internal/model"
	"mirrorsync/internal/pathmap"

	ignore "github.com/sabhiram/go-gitignore"
	"go.uber.org/zap"
)

// Matcher applies gitignore-style patterns to paths under a root.
type Matcher struct {
	root pathmap.Mapper
	gi   *ignore.GitIgnore
}

func NewMatcher(root string, patterns []string) *Matcher {
	if len(patterns) == 0 {
		return &Matcher{root: pathmap.New(root, root)}
	}

	return &Matcher{
		root: pathmap.New(root, root),
		gi:   ignore.CompileIgnoreLines(patterns...),
	}
}

// Ignored reports whether path, or any directory between the root and
// path, matches a pattern.
func (m *Matcher) Ignored(path string) bool {
	if m == nil || m.gi == nil {
		return false
	}

	rel, err := m.root.Rel(path)
	if err != nil || rel == "." {
		return false
	}

	parts := strings.Split(filepath.ToSlash(rel), "/")
	for i := range parts {
		if m.gi.MatchesPath(strings.Join(parts[:i+1], "/")) {
			return true
		}
	}

	return false
}

func Filter(inCh <-chan model.FileEvent, m *Matcher, log *zap.Logger) <-chan model.FileEvent {
	outCh := make(chan model.FileEvent, cap(inCh))

	go func() {
		defer close(outCh)

		for event := range inCh {
			if m.Ignored(event.Path) {
				log.Debug("ignored",
					zap.String("path", event.Path))
				continue
			}
			outCh <- event
		}
	}()

	return outCh
}
