package pkgpath

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrBadPlatform is returned for unknown or unsupported platforms.
var ErrBadPlatform = errors.New("unsupported platform")

// Platform selects the path syntax.
type Platform int

const (
	Unknown Platform = iota - 1
	Native           // platform the process runs on
	Unix
	Windows
	Apple // recognised but not supported
)

// NativePlatform returns the syntax of the running process. Darwin is
// POSIX compliant and reported as Unix.
func NativePlatform() Platform {
	if runtime.GOOS == "windows" {
		return Windows
	}
	return Unix
}

// ParsePlatform returns the platform named name, ignoring case.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(name) {
	case "native", "":
		return Native, nil
	case "unix", "linux", "posix":
		return Unix, nil
	case "windows", "win":
		return Windows, nil
	case "apple", "darwin":
		return Apple, nil
	default:
		return Unknown, fmt.Errorf("%w: %q", ErrBadPlatform, name)
	}
}

func (p Platform) String() string {
	switch p {
	case Native:
		return "Native"
	case Unix:
		return "Unix"
	case Windows:
		return "Windows"
	case Apple:
		return "Apple"
	default:
		return "Unknown"
	}
}

// Supported reports whether paths can be converted to p.
func (p Platform) Supported() bool {
	return p == Native || p == Unix || p == Windows
}

// Resolve maps Native to the running platform and leaves others unchanged.
func (p Platform) Resolve() Platform {
	if p == Native {
		return NativePlatform()
	}
	return p
}

// DirSep returns the directory separator of p, or "" when p is unsupported.
func (p Platform) DirSep() string {
	switch p.Resolve() {
	case Unix:
		return "/"
	case Windows:
		return "\\"
	default:
		return ""
	}
}

// PathSep returns the search-path list separator of p, or "" when p is
// unsupported.
func (p Platform) PathSep() string {
	switch p.Resolve() {
	case Unix:
		return ":"
	case Windows:
		return ";"
	default:
		return ""
	}
}

// LineSep returns the line separator of p, or "" when p is unsupported.
func (p Platform) LineSep() string {
	switch p.Resolve() {
	case Unix:
		return "\n"
	case Windows:
		return "\r\n"
	default:
		return ""
	}
}
