package entity

import (
	"slices"

	"github.com/shandysiswandi/goident/internal/pkg/pkguid"
)

// Identifier is a UUID seen by the service together with the inputs that
// derived to it.
type Identifier struct {
	UUID      string
	Variant   pkguid.Variant
	Sources   []string
	FirstSeen int64
	LastSeen  int64

	// Count is the number of derivations, duplicates included
	Count int64
}

// Clone returns a copy that shares no memory with i.
func (i Identifier) Clone() Identifier {
	i.Sources = slices.Clone(i.Sources)
	return i
}
