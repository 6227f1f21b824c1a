package pkguid

// minInstanceURILen is the shortest string that can hold a scheme, a slash
// and a UUID.
const minInstanceURILen = UUIDLen + 10

type text interface {
	~string | ~[]byte
}

// IsUUID reports whether s starts with a UUID (8-4-4-4-12 hex digits, any
// case). Bytes after the first UUIDLen are not inspected, so callers that need
// a whole-string match must also check the length.
func IsUUID(s string) bool {
	return isUUID(s)
}

// IsInstanceURI reports whether s matches <URI>/<UUID>, optionally followed by
// a single '/' or '#'.
func IsInstanceURI(s string) bool {
	return isInstanceURI(s)
}

// IsInstanceURIN is like IsInstanceURI but only considers the first n bytes
// of s. n == 0 means all of s.
func IsInstanceURIN(s string, n int) bool {
	if n <= 0 || n > len(s) {
		n = len(s)
	}
	return isInstanceURI(s[:n])
}

func isUUID[T text](s T) bool {
	if len(s) < UUIDLen {
		return false
	}
	for i := 0; i < UUIDLen; i++ {
		switch i {
		case 8, 13, 18, 23:
			if s[i] != '-' {
				return false
			}
		default:
			if !isHex(s[i]) {
				return false
			}
		}
	}
	return true
}

func isInstanceURI[T text](s T) bool {
	n := len(s)
	if n < minInstanceURILen {
		return false
	}
	if isTrailer(s[n-1]) {
		n--
	}
	n -= UUIDLen
	if !isUUID(s[n:]) {
		return false
	}
	n--
	if s[n] != '/' {
		return false
	}

	colon := false
	for i := 0; i < n; i++ {
		c := s[i]
		if !isURIChar(c) {
			return false
		}
		if c == ':' {
			colon = true
		}
	}
	return colon
}

func isHex(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// isURIChar reports whether c may appear unencoded in a URI (RFC 3986
// unreserved, sub-delims, gen-delims) or is the percent sign.
func isURIChar(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '.', '_', '~',
		'!', '$', '&', '\'', '(', ')', '*', '+', ',', ';', '=',
		':', '/', '?', '#', '[', ']', '@',
		'%':
		return true
	}
	return false
}
