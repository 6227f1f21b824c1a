package app

import (
	"context"
	"net/http"
	"os"

	"github.com/shandysiswandi/goident/internal/pkg/pkgconfig"
	"github.com/shandysiswandi/goident/internal/pkg/pkglog"
	"github.com/shandysiswandi/goident/internal/pkg/pkgrouter"
	"github.com/shandysiswandi/goident/internal/pkg/pkgroutine"
	"github.com/shandysiswandi/goident/internal/pkg/pkguid"
	"github.com/spf13/afero"
)

// LogLevelEnv selects the log level used until the config file is read.
const LogLevelEnv = "GOIDENT_LOG_LEVEL"

type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config pkgconfig.Config

	// libraries
	uuid      pkguid.StringID
	cid       pkguid.StringID
	goroutine *pkgroutine.Manager
	fs        afero.Fs

	// server
	router     *pkgrouter.Router
	httpServer *http.Server

	closerFn map[string]func(context.Context) error
}

func New() *App {
	pkglog.InitLogging(os.Stdout, os.Getenv(LogLevelEnv))

	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initLibraries()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
