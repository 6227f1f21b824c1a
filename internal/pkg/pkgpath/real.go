package pkgpath

import (
	"fmt"
	"path/filepath"
)

// RealPath returns the absolute, symlink-free form of p, which must exist.
// "." and ".." are resolved against the filesystem.
func RealPath(p string) (string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", p, err)
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", fmt.Errorf("resolve %q: %w", p, err)
	}
	return resolved, nil
}
