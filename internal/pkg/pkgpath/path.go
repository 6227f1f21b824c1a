package pkgpath

import "strings"

// IsAbs reports whether p is absolute in either syntax: a leading '/' or '\',
// or a drive prefix such as "C:".
func IsAbs(p string) bool {
	if p == "" {
		return false
	}
	if isSep(p[0]) {
		return true
	}
	return hasDrive(p)
}

// IsWindowsStyle reports whether p looks like a Windows path: a drive prefix,
// a UNC prefix (`\\`), or backslashes without any forward slash.
func IsWindowsStyle(p string) bool {
	if hasDrive(p) || strings.HasPrefix(p, `\\`) {
		return true
	}
	return strings.ContainsRune(p, '\\') && !strings.ContainsRune(p, '/')
}

// Join joins parts with '/'. See JoinSep.
func Join(parts ...string) string {
	return JoinSep('/', parts...)
}

// JoinSep joins parts with sep. An absolute part discards every part before
// it, and an empty last part leaves a trailing separator:
//
//	JoinSep('/', "a", "/bb", "ccc") == "/bb/ccc"
//	JoinSep('/', "a", "")           == "a/"
func JoinSep(sep byte, parts ...string) string {
	start := 0
	for i := len(parts) - 1; i > 0; i-- {
		if IsAbs(parts[i]) {
			start = i
			break
		}
	}
	return strings.Join(parts[start:], string(sep))
}

// LastSep returns the index of the last '/' or '\' in p, or -1.
func LastSep(p string) int {
	return strings.LastIndexAny(p, `/\`)
}

// Dir returns everything before the last separator of p. A path directly
// under the root returns the root; a path without separators returns "".
func Dir(p string) string {
	i := LastSep(p)
	switch {
	case i < 0:
		return ""
	case i == 0:
		return p[:1]
	case i == 2 && hasDrive(p):
		return p[:3]
	default:
		return p[:i]
	}
}

// Base returns the final component of p.
func Base(p string) string {
	return p[LastSep(p)+1:]
}

// Ext returns what follows the last '.' of the final component of p, without
// the dot. A leading dot (".bashrc") does not start an extension.
func Ext(p string) string {
	b := Base(p)
	if i := strings.LastIndexByte(b, '.'); i > 0 {
		return b[i+1:]
	}
	return ""
}

// Stem returns the final component of p without its extension.
func Stem(p string) string {
	b := Base(p)
	if i := strings.LastIndexByte(b, '.'); i > 0 {
		return b[:i]
	}
	return b
}

// FriendlySep rewrites the directory separators of p for display on
// platform. On Windows a path starting with "//" or `\\` gets backslashes and
// any other path gets forward slashes. Other platforms leave p unchanged.
func FriendlySep(p string, platform Platform) string {
	if platform.Resolve() != Windows {
		return p
	}
	if strings.HasPrefix(p, "//") || strings.HasPrefix(p, `\\`) {
		return strings.ReplaceAll(p, "/", `\`)
	}
	return strings.ReplaceAll(p, `\`, "/")
}

// Normalize collapses runs of separators into their first separator and
// drops a trailing separator, keeping the root ("/", `C:\`) and a UNC
// prefix (`\\host`). URLs are returned unchanged.
func Normalize(p string) string {
	if schemeEnd(p) > 0 {
		return p
	}

	var b strings.Builder
	b.Grow(len(p))

	i := 0
	if strings.HasPrefix(p, `\\`) {
		b.WriteString(`\\`)
		i = 2
	}
	for i < len(p) {
		c := p[i]
		b.WriteByte(c)
		i++
		if isSep(c) {
			for i < len(p) && isSep(p[i]) {
				i++
			}
		}
	}

	out := b.String()
	if len(out) > 1 && isSep(out[len(out)-1]) && !isRoot(out) {
		out = out[:len(out)-1]
	}
	return out
}

// Within reports whether p is root itself or lies below it. Both are
// normalized and compared with '/' separators. A p holding a ".." component
// or any URL is never within.
func Within(root, p string) bool {
	if root == "" || schemeEnd(p) > 0 || schemeEnd(root) > 0 {
		return false
	}
	root = strings.ReplaceAll(Normalize(root), `\`, "/")
	p = strings.ReplaceAll(Normalize(p), `\`, "/")
	for part := range strings.SplitSeq(p, "/") {
		if part == ".." {
			return false
		}
	}
	if p == root {
		return true
	}
	if !strings.HasSuffix(root, "/") {
		root += "/"
	}
	return strings.HasPrefix(p, root)
}

func isRoot(p string) bool {
	return len(p) == 1 || p == `\\` || (len(p) == 3 && hasDrive(p))
}

func isSep(c byte) bool {
	return c == '/' || c == '\\'
}

func isAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func hasDrive(p string) bool {
	return len(p) >= 2 && p[1] == ':' && isAlpha(p[0])
}

// schemeEnd returns the index just after "scheme://" when p starts with an
// alphabetic scheme followed by "//" and a letter, and 0 otherwise. A single
// letter scheme is a drive, not a URL.
func schemeEnd(p string) int {
	i := 0
	for i < len(p) && isAlpha(p[i]) {
		i++
	}
	if i < 2 || !strings.HasPrefix(p[i:], "://") || len(p) <= i+3 || !isAlpha(p[i+3]) {
		return 0
	}
	return i + 3
}
