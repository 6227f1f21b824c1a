package inbound

import (
	"context"

	"github.com/shandysiswandi/goident/internal/identity/entity"
	"github.com/shandysiswandi/goident/internal/identity/usecase"
	"github.com/shandysiswandi/goident/internal/pkg/pkgrouter"
)

type uc interface {
	Derive(ctx context.Context, id string) (usecase.DeriveResult, error)
	DeriveBatch(ctx context.Context, ids []string) ([]usecase.DeriveResult, error)
	Lookup(ctx context.Context, uuid string) (entity.Identifier, error)
	List(ctx context.Context, filter usecase.ListFilter, page, pageSize int) (usecase.ListResult, error)
	Classify(ctx context.Context, s string) usecase.ClassifyResult
	Normalise(ctx context.Context, id, uri string) usecase.NormaliseResult
	ConvertPaths(ctx context.Context, paths, platform, pathsep string) (usecase.ConvertResult, error)
	JoinPaths(ctx context.Context, parts []string, sep string) (usecase.JoinResult, error)
	SplitPaths(ctx context.Context, paths, pathsep string) []string
	DescribePath(ctx context.Context, p string) (usecase.PathInfo, error)
	MatchGlob(ctx context.Context, pattern, name string) (usecase.GlobResult, error)
	SearchPaths(ctx context.Context, paths, pattern string) (usecase.SearchResult, error)
}

func RegisterHTTPEndpoint(r *pkgrouter.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	r.POST("/uuids", end.DeriveBatch)
	r.POST("/paths/join", end.JoinPaths)
	r.GET("/uuids/:uuid", end.Lookup)

	r.GET("/uuid", end.Derive)         // ?id=
	r.GET("/uuids", end.List)          // ?variant=&page=&page_size=
	r.GET("/classify", end.Classify)   // ?s=
	r.GET("/normalise", end.Normalise) // ?id=&uri=
	r.GET("/glob", end.Glob)           // ?pattern=&name=

	r.GET("/paths/convert", end.ConvertPaths)  // ?paths=&platform=&pathsep=
	r.GET("/paths/split", end.SplitPaths)      // ?paths=&pathsep=
	r.GET("/paths/describe", end.DescribePath) // ?path=
	r.GET("/paths/search", end.SearchPaths)    // ?paths=&pattern=
}
