package pkguid

import (
	"crypto/rand"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// UUID generates time-ordered RFC 9562 version 7 UUID strings.
type UUID struct {
	random io.Reader
}

// NewUUID returns a UUID generator reading entropy from crypto/rand.
func NewUUID() *UUID {
	return &UUID{random: rand.Reader}
}

// Generate returns a new UUID string. It panics when the entropy source fails.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7FromReader(u.random)
	if err != nil {
		panic(fmt.Errorf("%w: %w", ErrRandom, err))
	}
	return id.String()
}
