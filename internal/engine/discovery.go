package engine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Default discovery patterns.
var (
	DefaultInclude = []string{"*.kt", "*.kts"}
	DefaultExclude = []string{"build/**", ".gradle/**", "out/**"}
)

// Discover expands paths into the sorted list of Kotlin files to lint.
//
// Directories are walked recursively; hidden directories and anything
// matching an exclude pattern are skipped. Files named explicitly are
// returned as long as they are not excluded, whatever their extension.
// With no paths the current directory is used.
func (e *Engine) Discover(paths ...string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", root, err)
		}

		if !info.IsDir() {
			if !e.excluded(filepath.Base(root), false) && !e.excluded(filepath.ToSlash(filepath.Clean(root)), false) {
				add(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			rel = filepath.ToSlash(rel)

			if d.IsDir() {
				if path == root {
					return nil
				}
				if strings.HasPrefix(d.Name(), ".") || e.excluded(rel, true) {
					return filepath.SkipDir
				}
				return nil
			}

			if e.included(rel) && !e.excluded(rel, false) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	e.logger.Debug("discovered files", "count", len(files))
	return files, nil
}

func (e *Engine) included(rel string) bool {
	for _, pattern := range e.include {
		if MatchGlob(pattern, rel) {
			return true
		}
	}
	return false
}

func (e *Engine) excluded(rel string, isDir bool) bool {
	if isDir {
		return ExcludesDir(e.exclude, rel)
	}
	for _, pattern := range e.exclude {
		if MatchGlob(pattern, rel) {
			return true
		}
	}
	return false
}

// ExcludesDir reports whether patterns exclude the directory rel and so
// everything below it.
func ExcludesDir(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if MatchGlob(pattern, rel) {
			return true
		}
		// "dir/**" excludes the directory itself
		if dir, ok := strings.CutSuffix(pattern, "/**"); ok && MatchGlob(dir, rel) {
			return true
		}
	}
	return false
}

// MatchGlob matches a doublestar pattern against a slash-separated relative
// path. A pattern without a slash, ignoring a trailing "/**", matches at any
// depth; other patterns are anchored at the root.
func MatchGlob(pattern, rel string) bool {
	if !strings.Contains(strings.TrimSuffix(pattern, "/**"), "/") {
		pattern = "**/" + pattern
	}
	ok, _ := doublestar.Match(pattern, rel)
	return ok
}
