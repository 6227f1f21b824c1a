package pkgpath

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
)

var (
	// ErrIndexRange is returned when removing an index outside the list.
	ErrIndexRange = errors.New("path index out of range")
	// ErrNoPath is returned when removing a path that is not in the list.
	ErrNoPath = errors.New("no such path")
)

// Paths is an ordered list of search paths. Paths are stored as given and
// converted to the list's platform when read back with Get or Join.
//
// A Paths value is not safe for concurrent use.
type Paths struct {
	paths    []string
	platform Platform
}

// NewPaths returns a list holding paths, skipping empty ones.
func NewPaths(paths ...string) *Paths {
	p := &Paths{platform: Native}
	for _, s := range paths {
		if s != "" {
			p.paths = append(p.paths, s)
		}
	}
	return p
}

// FromEnv returns a list initialised from the environment variable envvar.
// An unset variable gives an empty list. See NextPath for pathsep.
func FromEnv(envvar, pathsep string) *Paths {
	p := NewPaths()
	if v, ok := os.LookupEnv(envvar); ok {
		p.Extend(v, pathsep)
	}
	return p
}

// Platform returns the platform paths are converted to.
func (p *Paths) Platform() Platform {
	return p.platform
}

// SetPlatform sets the platform paths are converted to.
func (p *Paths) SetPlatform(platform Platform) error {
	if !platform.Supported() {
		return fmt.Errorf("%w: %s", ErrBadPlatform, platform)
	}
	p.platform = platform
	return nil
}

// Len returns the number of paths.
func (p *Paths) Len() int {
	return len(p.paths)
}

// Insert inserts path before index n and returns its index. A negative n
// counts from the end; indices outside the list are clamped to it.
func (p *Paths) Insert(path string, n int) int {
	if n < 0 {
		n += len(p.paths)
	}
	n = min(max(n, 0), len(p.paths))
	p.paths = slices.Insert(p.paths, n, path)
	return n
}

// Append adds path to the end of the list and returns its index.
func (p *Paths) Append(path string) int {
	return p.Insert(path, len(p.paths))
}

// Extend appends every path in s and returns how many were added. See
// NextPath for pathsep.
func (p *Paths) Extend(s, pathsep string) int {
	return p.ExtendPrefix("", s, pathsep)
}

// ExtendPrefix is like Extend but joins prefix in front of relative paths.
func (p *Paths) ExtendPrefix(prefix, s, pathsep string) int {
	n := 0
	for path, pos, ok := NextPath(s, 0, pathsep); ok; path, pos, ok = NextPath(s, pos, pathsep) {
		if prefix != "" && !IsAbs(path) && schemeEnd(path) == 0 {
			path = Join(prefix, path)
		}
		p.Append(path)
		n++
	}
	return n
}

// Index returns the index of path, or -1.
func (p *Paths) Index(path string) int {
	return slices.Index(p.paths, path)
}

// Remove removes the first occurrence of path.
func (p *Paths) Remove(path string) error {
	i := p.Index(path)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrNoPath, path)
	}
	return p.RemoveIndex(i)
}

// RemoveIndex removes the path at index n. A negative n counts from the end.
func (p *Paths) RemoveIndex(n int) error {
	if n < 0 {
		n += len(p.paths)
	}
	if n < 0 || n >= len(p.paths) {
		return fmt.Errorf("%w: %d", ErrIndexRange, n)
	}
	p.paths = slices.Delete(p.paths, n, n+1)
	return nil
}

// Get returns a copy of the paths in the syntax of the list's platform.
func (p *Paths) Get() []string {
	out := make([]string, len(p.paths))
	for i, s := range p.paths {
		out[i] = p.convert(s)
	}
	return out
}

// Join joins the paths with pathsep, or with the platform's path separator
// when pathsep is empty.
func (p *Paths) Join(pathsep string) string {
	if pathsep == "" {
		pathsep = p.platform.PathSep()
	}
	return strings.Join(p.Get(), pathsep)
}

func (p *Paths) convert(s string) string {
	if p.platform.Resolve() == Windows {
		return ToWindows(s)
	}
	return ToUnix(s)
}
