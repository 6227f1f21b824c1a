package entity

import "github.com/shandysiswandi/goident/internal/pkg/pkguid"

type DerivedEvent struct {
	EventID string
	UUID    string
	Source  string
	Variant pkguid.Variant
	At      int64
}
