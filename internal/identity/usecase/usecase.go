package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shandysiswandi/goident/internal/identity/entity"
	"github.com/shandysiswandi/goident/internal/pkg/pkgerror"
	"github.com/shandysiswandi/goident/internal/pkg/pkgglob"
	"github.com/shandysiswandi/goident/internal/pkg/pkgpath"
	"github.com/shandysiswandi/goident/internal/pkg/pkguid"
	"github.com/spf13/afero"
)

// DefaultBatchLimit bounds DeriveBatch when Options.BatchLimit is not set.
const DefaultBatchLimit = 1000

type Store interface {
	Get(ctx context.Context, uuid string) (entity.Identifier, error)
	List(ctx context.Context, filter ListFilter, page, pageSize int) ([]entity.Identifier, int, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event entity.DerivedEvent) error
}

type Runner interface {
	Go(ctx context.Context, name string, f func(ctx context.Context) error) bool
}

type Clock interface {
	Now() time.Time
}

type Deriver interface {
	Get(id string) (string, pkguid.Variant, error)
}

type Options struct {
	DataNamespace string
	BatchLimit    int
	Platform      pkgpath.Platform
	SearchPaths   *pkgpath.Paths
}

type Dependency struct {
	Store   Store
	Events  EventPublisher
	Runner  Runner
	Clock   Clock
	Deriver Deriver
	EventID pkguid.StringID
	Fs      afero.Fs
	Options Options
	RootCtx context.Context
}

type Usecase struct {
	store   Store
	events  EventPublisher
	runner  Runner
	clock   Clock
	deriver Deriver
	eventID pkguid.StringID
	fs      afero.Fs
	opts    Options
	rootCtx context.Context
}

func New(dep Dependency) *Usecase {
	root := dep.RootCtx
	if root == nil {
		root = context.Background()
	}

	clock := dep.Clock
	if clock == nil {
		clock = realClock{}
	}

	deriver := dep.Deriver
	if deriver == nil {
		deriver = pkguid.NewDeriver()
	}

	eventID := dep.EventID
	if eventID == nil {
		eventID = pkguid.NewUUID()
	}

	fs := dep.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	opts := dep.Options
	if opts.DataNamespace == "" {
		opts.DataNamespace = pkguid.DefaultDataNamespace
	}
	if opts.BatchLimit < 1 {
		opts.BatchLimit = DefaultBatchLimit
	}

	return &Usecase{
		store:   dep.Store,
		events:  dep.Events,
		runner:  dep.Runner,
		clock:   clock,
		deriver: deriver,
		eventID: eventID,
		fs:      fs,
		opts:    opts,
		rootCtx: root,
	}
}

type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

// Derive returns the UUID for id and announces it to the event publisher.
// A failed publish is logged; the derived UUID is still returned.
func (u *Usecase) Derive(ctx context.Context, id string) (DeriveResult, error) {
	res, err := u.derive(id)
	if err != nil {
		return DeriveResult{}, err
	}

	u.publish(ctx, res)
	return res, nil
}

// DeriveBatch derives every id in order. Events are published in the
// background.
func (u *Usecase) DeriveBatch(ctx context.Context, ids []string) ([]DeriveResult, error) {
	if len(ids) == 0 {
		return nil, pkgerror.NewInvalidInput(errors.New("ids is required"))
	}
	if len(ids) > u.opts.BatchLimit {
		return nil, pkgerror.NewTooLarge(fmt.Sprintf("batch holds %d ids, limit is %d", len(ids), u.opts.BatchLimit))
	}

	results := make([]DeriveResult, 0, len(ids))
	for _, id := range ids {
		res, err := u.derive(id)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	if u.events != nil && u.runner != nil {
		started := u.runner.Go(u.rootCtx, "identity.publish_batch", func(ctx context.Context) error {
			for _, res := range results {
				u.publish(ctx, res)
			}
			return nil
		})
		if !started {
			slog.WarnContext(ctx, "batch events dropped", "count", len(results))
		}
	}

	return results, nil
}

// Lookup returns the stored record for a canonical UUID, in any case.
func (u *Usecase) Lookup(ctx context.Context, uuid string) (entity.Identifier, error) {
	uuid = strings.TrimSpace(uuid)
	if len(uuid) != pkguid.UUIDLen || !pkguid.IsUUID(uuid) {
		return entity.Identifier{}, pkgerror.NewInvalidInput(errors.New("uuid must be a canonical 36 character UUID"))
	}

	rec, err := u.store.Get(ctx, strings.ToLower(uuid))
	if err != nil {
		return entity.Identifier{}, mapStoreErr(err)
	}

	return rec, nil
}

func (u *Usecase) List(ctx context.Context, filter ListFilter, page, pageSize int) (ListResult, error) {
	if page < 1 || pageSize < 1 {
		return ListResult{}, pkgerror.NewInvalidInput(errors.New("invalid pagination"))
	}

	items, total, err := u.store.List(ctx, filter, page, pageSize)
	if err != nil {
		return ListResult{}, mapStoreErr(err)
	}

	return ListResult{
		Identifiers: items,
		Page:        page,
		PageSize:    pageSize,
		Total:       total,
	}, nil
}

func (u *Usecase) Classify(ctx context.Context, s string) ClassifyResult {
	return ClassifyResult{
		Input:         s,
		IsUUID:        len(s) == pkguid.UUIDLen && pkguid.IsUUID(s),
		HasUUIDPrefix: pkguid.IsUUID(s),
		IsInstanceURI: pkguid.IsInstanceURI(s),
		IsURL:         pkguid.IsURL(s),
		IDType:        pkguid.IDTypeOf(s),
	}
}

// Normalise returns the locator form of id under uri, or under the configured
// data namespace when uri is empty.
func (u *Usecase) Normalise(ctx context.Context, id, uri string) NormaliseResult {
	if uri == "" {
		uri = u.opts.DataNamespace
	}

	return NormaliseResult{
		ID:         id,
		URI:        uri,
		Normalised: pkguid.NormaliseID(id, uri),
		IDType:     pkguid.IDTypeOf(id),
	}
}

func (u *Usecase) ConvertPaths(ctx context.Context, paths, platform, pathsep string) (ConvertResult, error) {
	pl := u.opts.Platform
	if platform != "" {
		var err error
		if pl, err = pkgpath.ParsePlatform(platform); err != nil {
			return ConvertResult{}, pkgerror.NewInvalidInput(err)
		}
	}
	if !pl.Supported() {
		return ConvertResult{}, unsupportedPlatform(pl)
	}

	out, err := pkgpath.Convert(paths, pl, pathsep)
	if err != nil {
		if errors.Is(err, pkgpath.ErrBadPlatform) {
			return ConvertResult{}, unsupportedPlatform(pl)
		}
		return ConvertResult{}, pkgerror.NewServer(err)
	}

	resolved := pl.Resolve()
	entries := pkgpath.SplitPaths(out, resolved.PathSep())
	if entries == nil {
		entries = []string{}
	}

	return ConvertResult{
		Platform: resolved.String(),
		Paths:    out,
		Entries:  entries,
	}, nil
}

// JoinPaths joins parts with sep, "/" when empty.
func (u *Usecase) JoinPaths(ctx context.Context, parts []string, sep string) (JoinResult, error) {
	if len(parts) == 0 {
		return JoinResult{}, pkgerror.NewInvalidInput(errors.New("parts is required"))
	}
	if sep == "" {
		sep = "/"
	}
	if len(sep) != 1 {
		return JoinResult{}, pkgerror.NewInvalidInput(errors.New("sep must be a single character"))
	}

	p := pkgpath.JoinSep(sep[0], parts...)
	return JoinResult{
		Path:       p,
		Normalized: pkgpath.Normalize(p),
	}, nil
}

func (u *Usecase) SplitPaths(ctx context.Context, paths, pathsep string) []string {
	entries := pkgpath.SplitPaths(paths, pathsep)
	if entries == nil {
		return []string{}
	}
	return entries
}

func (u *Usecase) DescribePath(ctx context.Context, p string) (PathInfo, error) {
	if p == "" {
		return PathInfo{}, pkgerror.NewInvalidInput(errors.New("path is required"))
	}

	return PathInfo{
		Path:           p,
		IsAbs:          pkgpath.IsAbs(p),
		IsWindowsStyle: pkgpath.IsWindowsStyle(p),
		Dir:            pkgpath.Dir(p),
		Base:           pkgpath.Base(p),
		Stem:           pkgpath.Stem(p),
		Ext:            pkgpath.Ext(p),
		Normalized:     pkgpath.Normalize(p),
		Unix:           pkgpath.ToUnix(p),
		Windows:        pkgpath.ToWindows(p),
	}, nil
}

func (u *Usecase) MatchGlob(ctx context.Context, pattern, name string) (GlobResult, error) {
	pat, err := pkgglob.Compile(pattern)
	if err != nil {
		return GlobResult{}, pkgerror.NewInvalidInput(err)
	}

	return GlobResult{
		Pattern: pattern,
		Name:    name,
		Matched: pat.Match(name),
	}, nil
}

// SearchPaths lists the files reachable from paths whose name matches
// pattern. paths mixes directories and glob patterns; when empty the
// configured search paths are used. Every requested entry must lie inside a
// configured directory or equal a configured glob entry.
func (u *Usecase) SearchPaths(ctx context.Context, paths, pattern string) (SearchResult, error) {
	list := u.opts.SearchPaths
	if list == nil || list.Len() == 0 {
		return SearchResult{}, pkgerror.NewInvalidInput(errors.New("no search paths configured"))
	}
	if paths != "" {
		requested, err := u.confine(pkgpath.SplitPaths(paths, ""))
		if err != nil {
			return SearchResult{}, err
		}
		list = requested
	}

	files, err := pkgpath.Walk(u.fs, list, pattern)
	if err != nil {
		if errors.Is(err, pkgglob.ErrBadPattern) {
			return SearchResult{}, pkgerror.NewInvalidInput(err)
		}
		return SearchResult{}, pkgerror.NewServer(err)
	}
	if files == nil {
		files = []string{}
	}

	return SearchResult{
		Pattern: pattern,
		Paths:   list.Get(),
		Files:   files,
	}, nil
}

func (u *Usecase) confine(entries []string) (*pkgpath.Paths, error) {
	roots := u.opts.SearchPaths.Get()
	for _, entry := range entries {
		if !allowed(roots, entry) {
			return nil, pkgerror.NewBusiness(
				fmt.Sprintf("path %q is outside the configured search paths", entry),
				pkgerror.CodeForbidden,
			)
		}
	}

	list := pkgpath.NewPaths(entries...)
	if err := list.SetPlatform(u.opts.SearchPaths.Platform()); err != nil {
		return nil, pkgerror.NewServer(err)
	}
	return list, nil
}

func allowed(roots []string, entry string) bool {
	for _, root := range roots {
		if pkgglob.HasMeta(root) {
			if pkgpath.Normalize(root) == pkgpath.Normalize(entry) {
				return true
			}
			continue
		}
		if pkgpath.Within(root, entry) {
			return true
		}
	}
	return false
}

func (u *Usecase) derive(id string) (DeriveResult, error) {
	uuid, variant, err := u.deriver.Get(id)
	if err != nil {
		return DeriveResult{}, pkgerror.NewServer(err)
	}

	return DeriveResult{ID: id, UUID: uuid, Variant: variant}, nil
}

func (u *Usecase) publish(ctx context.Context, res DeriveResult) {
	if u.events == nil {
		return
	}

	event := entity.DerivedEvent{
		EventID: u.eventID.Generate(),
		UUID:    res.UUID,
		Source:  res.ID,
		Variant: res.Variant,
		At:      u.clock.Now().Unix(),
	}
	if err := u.events.Publish(ctx, event); err != nil {
		slog.WarnContext(ctx, "failed to publish event", "uuid", res.UUID, "event_id", event.EventID, "error", err)
	}
}

func unsupportedPlatform(pl pkgpath.Platform) error {
	return pkgerror.NewBusiness(fmt.Sprintf("platform %s is not supported", pl), pkgerror.CodeUnsupported)
}

func mapStoreErr(err error) error {
	if errors.Is(err, pkgerror.ErrNotFound) {
		return pkgerror.NewNotFound("uuid not found")
	}
	return normalizeErr(err)
}

func normalizeErr(err error) error {
	if perr, ok := pkgerror.As(err); ok {
		return perr
	}
	return pkgerror.NewServer(err)
}
