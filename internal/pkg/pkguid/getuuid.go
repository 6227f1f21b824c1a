package pkguid

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// UUIDLen is the length of a canonical UUID string.
const UUIDLen = 36

var (
	// ErrShortBuffer is returned by Put when the destination cannot hold UUIDLen bytes.
	ErrShortBuffer = errors.New("uuid buffer too small")
	// ErrRandom is returned when the entropy source fails.
	ErrRandom = errors.New("cannot generate random uuid")
)

// Variant tells how Get obtained the returned UUID.
type Variant int

const (
	VariantCopy    Variant = 0 // input already was a UUID
	VariantExtract Variant = 1 // UUID taken from the end of an instance URI
	VariantRandom  Variant = 4 // new random version 4 UUID
	VariantHash    Variant = 5 // version 5 SHA-1 hash of the input, DNS namespace
)

func (v Variant) String() string {
	switch v {
	case VariantCopy:
		return "COPY"
	case VariantExtract:
		return "EXTRACT"
	case VariantRandom:
		return "RANDOM"
	case VariantHash:
		return "HASH"
	default:
		return "UNKNOWN"
	}
}

// ParseVariant is the inverse of Variant.String.
func ParseVariant(s string) (Variant, bool) {
	switch s {
	case "COPY":
		return VariantCopy, true
	case "EXTRACT":
		return VariantExtract, true
	case "RANDOM":
		return VariantRandom, true
	case "HASH":
		return VariantHash, true
	default:
		return 0, false
	}
}

// Deriver turns identifying strings into UUIDs.
//
// A Deriver holds no mutable state besides its entropy source, so one value may
// be shared between goroutines as long as the reader is safe for concurrent use
// (crypto/rand.Reader is).
type Deriver struct {
	random io.Reader
}

// Option configures a Deriver.
type Option func(*Deriver)

// WithRandom sets the entropy source used for version 4 UUIDs.
func WithRandom(r io.Reader) Option {
	return func(d *Deriver) {
		if r != nil {
			d.random = r
		}
	}
}

// NewDeriver returns a Deriver reading entropy from crypto/rand unless
// overridden with WithRandom.
func NewDeriver(opts ...Option) *Deriver {
	d := &Deriver{random: rand.Reader}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Get returns the UUID corresponding to id together with how it was obtained.
//
// The heuristics are checked in order:
//   - empty id: a new random version 4 UUID (VariantRandom)
//   - id is a UUID, optionally followed by one '/' or '#': copied (VariantCopy)
//   - id is an instance URI, <URI>/<UUID> with an optional final '/' or '#':
//     the UUID part is returned (VariantExtract)
//   - anything else: version 5 UUID of id in the DNS namespace (VariantHash)
//
// The result is always lower case.
func (d *Deriver) Get(id string) (string, Variant, error) {
	var buf [UUIDLen]byte
	v, err := d.Put(buf[:], []byte(id))
	if err != nil {
		return "", v, err
	}
	return string(buf[:]), v, nil
}

// Put is like Get but writes the UUID into dst, which must hold at least
// UUIDLen bytes. id may contain NUL bytes; its length is len(id).
func (d *Deriver) Put(dst, id []byte) (Variant, error) {
	if len(dst) < UUIDLen {
		return -1, fmt.Errorf("%w: need %d bytes, got %d", ErrShortBuffer, UUIDLen, len(dst))
	}

	n := len(id)
	var v Variant

	switch {
	case n == 0:
		u, err := uuid.NewRandomFromReader(d.random)
		if err != nil {
			return -1, fmt.Errorf("%w: %w", ErrRandom, err)
		}
		copy(dst, u.String())
		v = VariantRandom
	case (n == UUIDLen || (n == UUIDLen+1 && isTrailer(id[UUIDLen]))) && isUUID(id):
		copy(dst, id[:UUIDLen])
		v = VariantCopy
	case isInstanceURI(id):
		if isTrailer(id[n-1]) {
			n--
		}
		copy(dst, id[n-UUIDLen:n])
		v = VariantExtract
	default:
		copy(dst, uuid.NewSHA1(uuid.NameSpaceDNS, id).String())
		v = VariantHash
	}

	lower(dst[:UUIDLen])
	return v, nil
}

//nolint:gochecknoglobals // immutable default over crypto/rand
var defaultDeriver = NewDeriver()

// GetUUID calls Get on a Deriver backed by crypto/rand.
func GetUUID(id string) (string, Variant, error) {
	return defaultDeriver.Get(id)
}

// PutUUID calls Put on a Deriver backed by crypto/rand.
func PutUUID(dst, id []byte) (Variant, error) {
	return defaultDeriver.Put(dst, id)
}

func isTrailer(c byte) bool {
	return c == '/' || c == '#'
}

func lower(b []byte) {
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
}
