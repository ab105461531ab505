package loader

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cockroachdb/errors"

	matterrors "github.com/thoreinstein/matter/internal/errors"
)

// Expand returns the files under root matching any of patterns. Patterns
// use doublestar syntax ("**/*.md") relative to root. The result is sorted
// and free of duplicates; paths are joined with root.
func Expand(root string, patterns []string) ([]string, error) {
	fsys := os.DirFS(root)
	seen := make(map[string]struct{})
	var out []string

	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, errors.Wrapf(doublestar.ErrBadPattern, "pattern %q", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, errors.Wrapf(err, "expanding %q in %s", pattern, root)
		}
		for _, m := range matches {
			path := filepath.Join(root, filepath.FromSlash(m))
			if _, ok := seen[path]; ok {
				continue
			}
			seen[path] = struct{}{}
			out = append(out, path)
		}
	}

	slices.Sort(out)
	return out, nil
}

// Targets resolves command-line arguments into document paths. Directories
// are expanded with patterns and files are taken as given. With no
// arguments, root is expanded. The result keeps argument order and drops
// repeats.
func Targets(root string, patterns, args []string) ([]string, error) {
	if len(args) == 0 {
		args = []string{root}
	}

	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.Mark(errors.Wrapf(err, "no such file or directory: %s", arg), matterrors.ErrNotFound)
			}
			return nil, errors.Wrapf(err, "checking %s", arg)
		}
		if !info.IsDir() {
			add(filepath.Clean(arg))
			continue
		}
		files, err := Expand(arg, patterns)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}

// Match reports whether the slash-separated path rel matches any pattern.
func Match(patterns []string, rel string) bool {
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); ok {
			return true
		}
	}
	return false
}
