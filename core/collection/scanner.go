package collection

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
)

// recordExtension is the file extension of source records, matched
// case-insensitively.
const recordExtension = ".json"

// Scan recursively discovers record files under root and returns their
// absolute paths sorted bytewise. The ordering is deliberately not the final
// record order; it only guarantees that discovery itself is deterministic so
// error reporting order is reproducible.
//
// Exclude patterns are globs matched against the slash-separated path
// relative to root and against the bare file name.
func Scan(root string, exclude []string) ([]string, error) {
	matchers, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(root)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrMissingDirectory, root)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: stat %s: %v", ErrIO, root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrMissingDirectory, root)
	}

	var paths []string
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: walk %s: %v", ErrIO, path, err)
		}
		if d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(d.Name()), recordExtension) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
		}
		if excluded(matchers, filepath.ToSlash(rel), d.Name()) {
			return nil
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrIO, path, err)
		}
		paths = append(paths, abs)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no %s files under %s", ErrEmptyCollection, recordExtension, root)
	}

	sort.Strings(paths)
	return paths, nil
}

func compileExcludes(patterns []string) ([]glob.Glob, error) {
	matchers := make([]glob.Glob, 0, len(patterns))
	for _, pattern := range patterns {
		matcher, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("%w: exclude pattern %q: %v", ErrInvalidArgument, pattern, err)
		}
		matchers = append(matchers, matcher)
	}
	return matchers, nil
}

func excluded(matchers []glob.Glob, relPath, name string) bool {
	for _, matcher := range matchers {
		if matcher.Match(relPath) || matcher.Match(name) {
			return true
		}
	}
	return false
}
