package inbound

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/shandysiswandi/goident/internal/identity/entity"
	"github.com/shandysiswandi/goident/internal/identity/usecase"
	"github.com/shandysiswandi/goident/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goident/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/goident/internal/pkg/pkguid"
)

const maxPageSize = 100

type HTTPEndpoint struct {
	uc uc
}

func (h *HTTPEndpoint) Derive(ctx context.Context, r *http.Request) (any, error) {
	result, err := h.uc.Derive(ctx, r.URL.Query().Get("id"))
	if err != nil {
		return nil, err
	}

	return toDeriveResponse(result), nil
}

func (h *HTTPEndpoint) DeriveBatch(ctx context.Context, r *http.Request) (any, error) {
	var req DeriveBatchRequest
	if err := pkgrouter.DecodeJSON(r, &req); err != nil {
		return nil, err
	}

	results, err := h.uc.DeriveBatch(ctx, req.IDs)
	if err != nil {
		return nil, err
	}

	out := make([]DeriveResponse, 0, len(results))
	for _, res := range results {
		out = append(out, toDeriveResponse(res))
	}

	return DeriveBatchResponse{Results: out}, nil
}

func (h *HTTPEndpoint) Lookup(ctx context.Context, r *http.Request) (any, error) {
	rec, err := h.uc.Lookup(ctx, pkgrouter.GetParam(ctx, "uuid"))
	if err != nil {
		return nil, err
	}

	return toIdentifierResponse(rec), nil
}

func (h *HTTPEndpoint) List(ctx context.Context, r *http.Request) (any, error) {
	page, pageSize, err := parsePagination(r)
	if err != nil {
		return nil, err
	}

	filter, err := parseListFilter(r.URL.Query().Get("variant"))
	if err != nil {
		return nil, err
	}

	result, err := h.uc.List(ctx, filter, page, pageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]IdentifierResponse, 0, len(result.Identifiers))
	for _, rec := range result.Identifiers {
		ids = append(ids, toIdentifierResponse(rec))
	}

	return ListResponse{
		Identifiers: ids,
		page:        result.Page,
		pageSize:    result.PageSize,
		total:       result.Total,
	}, nil
}

func (h *HTTPEndpoint) Classify(ctx context.Context, r *http.Request) (any, error) {
	result := h.uc.Classify(ctx, r.URL.Query().Get("s"))

	return ClassifyResponse{
		Input:         result.Input,
		IsUUID:        result.IsUUID,
		HasUUIDPrefix: result.HasUUIDPrefix,
		IsInstanceURI: result.IsInstanceURI,
		IsURL:         result.IsURL,
		IDType:        result.IDType.String(),
	}, nil
}

func (h *HTTPEndpoint) Normalise(ctx context.Context, r *http.Request) (any, error) {
	query := r.URL.Query()
	result := h.uc.Normalise(ctx, query.Get("id"), query.Get("uri"))

	return NormaliseResponse{
		ID:         result.ID,
		URI:        result.URI,
		Normalised: result.Normalised,
		IDType:     result.IDType.String(),
	}, nil
}

func (h *HTTPEndpoint) Glob(ctx context.Context, r *http.Request) (any, error) {
	query := r.URL.Query()
	result, err := h.uc.MatchGlob(ctx, query.Get("pattern"), query.Get("name"))
	if err != nil {
		return nil, err
	}

	return GlobResponse{
		Pattern: result.Pattern,
		Name:    result.Name,
		Matched: result.Matched,
	}, nil
}

func (h *HTTPEndpoint) ConvertPaths(ctx context.Context, r *http.Request) (any, error) {
	query := r.URL.Query()
	result, err := h.uc.ConvertPaths(ctx, query.Get("paths"), strings.TrimSpace(query.Get("platform")), query.Get("pathsep"))
	if err != nil {
		return nil, err
	}

	return ConvertResponse{
		Platform: result.Platform,
		Paths:    result.Paths,
		Entries:  result.Entries,
	}, nil
}

func (h *HTTPEndpoint) JoinPaths(ctx context.Context, r *http.Request) (any, error) {
	var req JoinRequest
	if err := pkgrouter.DecodeJSON(r, &req); err != nil {
		return nil, err
	}

	result, err := h.uc.JoinPaths(ctx, req.Parts, req.Sep)
	if err != nil {
		return nil, err
	}

	return JoinResponse{
		Path:       result.Path,
		Normalized: result.Normalized,
	}, nil
}

func (h *HTTPEndpoint) SplitPaths(ctx context.Context, r *http.Request) (any, error) {
	query := r.URL.Query()

	return SplitResponse{
		Entries: h.uc.SplitPaths(ctx, query.Get("paths"), query.Get("pathsep")),
	}, nil
}

func (h *HTTPEndpoint) DescribePath(ctx context.Context, r *http.Request) (any, error) {
	info, err := h.uc.DescribePath(ctx, r.URL.Query().Get("path"))
	if err != nil {
		return nil, err
	}

	return PathInfoResponse{
		Path:           info.Path,
		IsAbs:          info.IsAbs,
		IsWindowsStyle: info.IsWindowsStyle,
		Dir:            info.Dir,
		Base:           info.Base,
		Stem:           info.Stem,
		Ext:            info.Ext,
		Normalized:     info.Normalized,
		Unix:           info.Unix,
		Windows:        info.Windows,
	}, nil
}

func (h *HTTPEndpoint) SearchPaths(ctx context.Context, r *http.Request) (any, error) {
	query := r.URL.Query()
	result, err := h.uc.SearchPaths(ctx, query.Get("paths"), query.Get("pattern"))
	if err != nil {
		return nil, err
	}

	return SearchResponse{
		Pattern: result.Pattern,
		Paths:   result.Paths,
		Files:   result.Files,
	}, nil
}

func parsePagination(r *http.Request) (int, int, error) {
	page, err := pkgrouter.QueryInt(r, "page", 1)
	if err != nil {
		return 0, 0, err
	}
	if page < 1 {
		return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page"))
	}

	pageSize, err := pkgrouter.QueryInt(r, "page_size", 10)
	if err != nil {
		return 0, 0, err
	}
	if pageSize < 1 {
		return 0, 0, pkgerror.NewInvalidInput(errors.New("invalid page_size"))
	}

	return page, min(pageSize, maxPageSize), nil
}

func parseListFilter(raw string) (usecase.ListFilter, error) {
	filter := usecase.ListFilter{}

	for value := range strings.SplitSeq(raw, ",") {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		variant, ok := pkguid.ParseVariant(strings.ToUpper(value))
		if !ok {
			return filter, pkgerror.NewInvalidInput(errors.New("invalid variant filter"))
		}
		filter.Variants = append(filter.Variants, variant)
	}

	return filter, nil
}

func toDeriveResponse(res usecase.DeriveResult) DeriveResponse {
	return DeriveResponse{
		ID:      res.ID,
		UUID:    res.UUID,
		Variant: res.Variant.String(),
	}
}

func toIdentifierResponse(rec entity.Identifier) IdentifierResponse {
	sources := rec.Sources
	if sources == nil {
		sources = []string{}
	}

	return IdentifierResponse{
		UUID:      rec.UUID,
		Variant:   rec.Variant.String(),
		Sources:   sources,
		FirstSeen: rec.FirstSeen,
		LastSeen:  rec.LastSeen,
		Count:     rec.Count,
	}
}
