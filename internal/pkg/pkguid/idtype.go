package pkguid

import (
	"net/url"
	"strings"
)

// DefaultDataNamespace prefixes bare names in NormaliseID.
const DefaultDataNamespace = "http://onto-ns.com/data"

// IDType is the way an identifier maps to a UUID, without deriving it.
type IDType int

const (
	IDTypeRandom IDType = iota // empty id, a random UUID would be generated
	IDTypeHash                 // id would be hashed
	IDTypeCopy                 // id is, or ends with, a UUID
)

func (t IDType) String() string {
	switch t {
	case IDTypeRandom:
		return "RANDOM"
	case IDTypeHash:
		return "HASH"
	case IDTypeCopy:
		return "COPY"
	default:
		return "UNKNOWN"
	}
}

// IsURL reports whether s is a URL with a scheme. A leading upper case
// letter followed by a colon ("C:") is read as a Windows drive, not a scheme.
func IsURL(s string) bool {
	if len(s) >= 2 && 'A' <= s[0] && s[0] <= 'Z' && s[1] == ':' {
		return false
	}
	colon := strings.IndexByte(s, ':')
	if colon < 1 || s[0] < 'a' || s[0] > 'z' {
		return false
	}
	for i := 1; i < colon; i++ {
		c := s[i]
		if !isAlnum(c) && c != '+' && c != '.' && c != '-' {
			return false
		}
	}
	for i := colon + 1; i < len(s); i++ {
		if !isURIChar(s[i]) {
			return false
		}
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme != ""
}

// IDTypeOf classifies id. A final '/' or '#' is ignored.
func IDTypeOf(id string) IDType {
	if id == "" {
		return IDTypeRandom
	}
	id = trimTrailer(id)

	if len(id) == UUIDLen && isUUID(id) {
		return IDTypeCopy
	}
	if IsURL(id) && endsWithUUID(id) {
		return IDTypeCopy
	}
	return IDTypeHash
}

// NormaliseID returns the canonical locator form of id:
//
//	""          -> ""
//	<uuid>      -> <ns>/<uuid>
//	<uri>/<uuid>-> <uri>/<uuid>
//	<uri>       -> <uri>
//	<name>      -> <ns>/<name>
//
// where <ns> is uri, or DefaultDataNamespace when uri is empty. A final '/'
// or '#' in id is stripped.
func NormaliseID(id, uri string) string {
	if id == "" {
		return ""
	}
	id = trimTrailer(id)

	if IsURL(id) {
		return id
	}

	if uri == "" {
		uri = DefaultDataNamespace
	}
	if isTrailer(uri[len(uri)-1]) {
		return uri + id
	}
	return uri + "/" + id
}

func endsWithUUID(s string) bool {
	return len(s) > UUIDLen+9 && isUUID(s[len(s)-UUIDLen:])
}

func trimTrailer(s string) string {
	if s != "" && isTrailer(s[len(s)-1]) {
		return s[:len(s)-1]
	}
	return s
}

func isAlnum(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9')
}
