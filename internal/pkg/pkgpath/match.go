package pkgpath

import (
	"fmt"

	"github.com/shandysiswandi/goident/internal/pkg/pkgglob"
	"github.com/spf13/afero"
)

// Match returns the files in the directories of paths whose name matches the
// glob pattern. Directories are visited in list order and entries in name
// order. An empty directory means "."; unreadable directories are skipped.
func Match(fs afero.Fs, pattern string, paths *Paths) ([]string, error) {
	pat, err := pkgglob.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("match %q: %w", pattern, err)
	}

	var out []string
	for _, dir := range paths.paths {
		for _, name := range readDir(fs, dir, pat) {
			out = append(out, paths.convert(name))
		}
	}
	return out, nil
}

// Glob returns the files matching pattern. Only the final component of
// pattern may contain wildcards.
func Glob(fs afero.Fs, pattern string) ([]string, error) {
	pat, err := pkgglob.Compile(Base(pattern))
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}
	return readDir(fs, Dir(pattern), pat), nil
}

// Walk returns the entries reachable from paths, which may mix directories
// and glob patterns. Directories contribute all their entries; other paths are
// expanded with Glob. When pattern is not empty only entries whose name
// matches it are returned.
func Walk(fs afero.Fs, paths *Paths, pattern string) ([]string, error) {
	var filter *pkgglob.Pattern
	if pattern != "" {
		var err error
		if filter, err = pkgglob.Compile(pattern); err != nil {
			return nil, fmt.Errorf("walk %q: %w", pattern, err)
		}
	}

	var out []string
	for _, p := range paths.paths {
		var found []string
		if ok, _ := afero.IsDir(fs, p); ok {
			found = readDir(fs, p, nil)
		} else {
			matches, err := Glob(fs, p)
			if err != nil {
				return nil, err
			}
			found = matches
		}
		for _, f := range found {
			if filter == nil || filter.Match(Base(f)) {
				out = append(out, paths.convert(f))
			}
		}
	}
	return out, nil
}

// readDir lists dir, keeping names accepted by pat (all names when pat is
// nil). Errors yield an empty result.
func readDir(fs afero.Fs, dir string, pat *pkgglob.Pattern) []string {
	if dir == "" {
		dir = "."
	}
	infos, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil
	}

	var out []string
	for _, fi := range infos {
		if pat != nil && !pat.Match(fi.Name()) {
			continue
		}
		out = append(out, childPath(dir, fi.Name()))
	}
	return out
}

func childPath(dir, name string) string {
	switch {
	case dir == ".":
		return name
	case isSep(dir[len(dir)-1]):
		return dir + name
	default:
		return dir + "/" + name
	}
}
