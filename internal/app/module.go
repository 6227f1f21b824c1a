package app

import (
	"context"
	"log/slog"
	"os"

	"github.com/shandysiswandi/goident/internal/identity"
)

func (a *App) initModules() {
	if !a.config.GetBool("modules.identity.enabled") {
		slog.Warn("module identity is disabled")
		return
	}

	closer, err := identity.New(identity.Dependency{
		Config:    a.config,
		Router:    a.router,
		Goroutine: a.goroutine,
		Context:   a.ctx,
		ID:        a.uuid,
		Fs:        a.fs,
	})
	if err != nil {
		slog.Error("failed to init module identity", "error", err)
		os.Exit(1)
	}
	if closer != nil {
		if a.closerFn == nil {
			a.closerFn = map[string]func(context.Context) error{}
		}
		a.closerFn["Identity"] = closer
	}
}
