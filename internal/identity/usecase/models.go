package usecase

import (
	"slices"

	"github.com/shandysiswandi/goident/internal/identity/entity"
	"github.com/shandysiswandi/goident/internal/pkg/pkguid"
)

type DeriveResult struct {
	ID      string
	UUID    string
	Variant pkguid.Variant
}

type ListResult struct {
	Identifiers []entity.Identifier
	Page        int
	PageSize    int
	Total       int
}

type ListFilter struct {
	Variants []pkguid.Variant
}

func (f ListFilter) Matches(id entity.Identifier) bool {
	return len(f.Variants) == 0 || slices.Contains(f.Variants, id.Variant)
}

type ClassifyResult struct {
	Input         string
	IsUUID        bool
	HasUUIDPrefix bool
	IsInstanceURI bool
	IsURL         bool
	IDType        pkguid.IDType
}

type ConvertResult struct {
	Platform string
	Paths    string
	Entries  []string
}

type JoinResult struct {
	Path       string
	Normalized string
}

type PathInfo struct {
	Path           string
	IsAbs          bool
	IsWindowsStyle bool
	Dir            string
	Base           string
	Stem           string
	Ext            string
	Normalized     string
	Unix           string
	Windows        string
}

type GlobResult struct {
	Pattern string
	Name    string
	Matched bool
}

type SearchResult struct {
	Pattern string
	Paths   []string
	Files   []string
}

type NormaliseResult struct {
	ID         string
	URI        string
	Normalised string
	IDType     pkguid.IDType
}
