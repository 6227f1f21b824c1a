package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/rs/cors"
	"github.com/shandysiswandi/goident/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/goident/internal/pkg/pkglog"
	"github.com/shandysiswandi/goident/internal/pkg/pkgpath"
	"github.com/shandysiswandi/goident/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/goident/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/goident/internal/pkg/pkguid"
	"github.com/spf13/afero"
)

func (a *App) initConfig() {
	path := "/config/config.yaml"
	if os.Getenv("LOCAL") == "true" {
		path = "./config/config.yaml"
	}

	cfg, err := pkgconfig.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "path", path, "error", err)
		os.Exit(1)
	}

	if resolved, err := pkgpath.RealPath(path); err == nil {
		path = resolved
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("tz"))

	pkglog.InitLogging(os.Stdout, cfg.GetString("log.level"))
	slog.Info("config loaded", "path", path)

	a.config = cfg
}

func (a *App) initLibraries() {
	a.goroutine = pkgroutine.NewManager(int(a.config.GetInt("routine.max")))
	a.uuid = pkguid.NewUUID()
	a.fs = afero.NewReadOnlyFs(afero.NewOsFs())

	node, err := pkguid.NewSnowflake(a.config.GetInt("id.snowflake_node"))
	if err != nil {
		slog.Error("failed to init snowflake", "error", err)
		os.Exit(1)
	}
	a.cid = node.Base36()
}

func (a *App) initHTTPServer() {
	a.router = pkgrouter.NewRouter(a.cid)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{pkgrouter.HeaderCorrelationID},
	})

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("server.address.http"),
		Handler:           corsHandler.Handler(a.router),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func (a *App) initClosers() {
	if a.closerFn == nil {
		a.closerFn = map[string]func(context.Context) error{}
	}

	a.closerFn["HTTP Server"] = func(ctx context.Context) error {
		return a.httpServer.Shutdown(ctx)
	}
	a.closerFn["Config"] = func(context.Context) error {
		return a.config.Close()
	}
}
