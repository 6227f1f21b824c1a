package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/shandysiswandi/goident/internal/identity/event"
	"github.com/shandysiswandi/goident/internal/identity/inbound"
	"github.com/shandysiswandi/goident/internal/identity/store"
	"github.com/shandysiswandi/goident/internal/identity/usecase"
	"github.com/shandysiswandi/goident/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/goident/internal/pkg/pkgpath"
	"github.com/shandysiswandi/goident/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/goident/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/goident/internal/pkg/pkguid"
	"github.com/spf13/afero"
)

// SearchPathEnv names the environment variable seeding the search paths.
const SearchPathEnv = "GOIDENT_SEARCH_PATH"

type Dependency struct {
	Config    pkgconfig.Config
	Goroutine *pkgroutine.Manager
	Router    *pkgrouter.Router
	Context   context.Context
	ID        pkguid.StringID
	Fs        afero.Fs
}

func New(dep Dependency) (func(context.Context) error, error) {
	platform, err := pkgpath.ParsePlatform(dep.Config.GetString("paths.platform"))
	if err != nil {
		return nil, fmt.Errorf("identity: paths.platform: %w", err)
	}

	search := pkgpath.FromEnv(SearchPathEnv, "")
	search.Extend(dep.Config.GetString("paths.search"), "")
	if err := search.SetPlatform(platform); err != nil {
		return nil, fmt.Errorf("identity: search paths: %w", err)
	}

	storage := store.NewInMemoryStore()
	bus := event.NewBus(int(dep.Config.GetInt("identity.event.buffer")))
	consumer := event.NewConsumer(bus, event.NewIndexer(storage), event.ConsumerConfig{
		Workers:      int(dep.Config.GetInt("identity.event.workers")),
		MaxRetries:   int(dep.Config.GetInt("identity.event.max_retries")),
		BaseBackoff:  time.Duration(dep.Config.GetInt("identity.event.base_backoff_ms")) * time.Millisecond,
		SeenCapacity: int(dep.Config.GetInt("identity.event.seen_capacity")),
	})
	consumer.Start()

	if dep.ID == nil {
		dep.ID = pkguid.NewUUID()
	}

	uc := usecase.New(usecase.Dependency{
		Store:   storage,
		Events:  bus,
		Runner:  dep.Goroutine,
		Clock:   nil,
		Deriver: pkguid.NewDeriver(),
		EventID: dep.ID,
		Fs:      dep.Fs,
		Options: usecase.Options{
			DataNamespace: dep.Config.GetString("identity.data_namespace"),
			BatchLimit:    int(dep.Config.GetInt("identity.batch_limit")),
			Platform:      platform,
			SearchPaths:   search,
		},
		RootCtx: dep.Context,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return consumer.Stop, nil
}
