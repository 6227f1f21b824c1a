package app

import (
	"context"
	"errors"
	"log/slog"
	"maps"
	"net/http"
	"os"
	"os/signal"
	"slices"
	"syscall"
)

// closeOrder lists closers that must run in sequence after the HTTP server
// stops. Closers not listed run afterwards in name order.
//
//nolint:gochecknoglobals // fixed shutdown sequence
var closeOrder = []string{"Identity", "Config"}

func (a *App) Start() <-chan struct{} {
	terminateChan := make(chan struct{})

	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)

		if err := a.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			slog.Error("failed to listen and serve http server", "error", err)
			os.Exit(1)
		}
	}()

	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

		sig := <-sigint
		slog.Info("termination signal received", "signal", sig.String())

		if a.cancel != nil {
			a.cancel()
		}

		close(terminateChan)
	}()

	return terminateChan
}

// Stop shuts the HTTP server down, waits for background goroutines, then runs
// the remaining closers so queued events are indexed before exit.
func (a *App) Stop(ctx context.Context) {
	if closer, ok := a.closerFn["HTTP Server"]; ok {
		if err := closer(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
		}
	}

	if a.cancel != nil {
		a.cancel()
	}

	slog.InfoContext(ctx, "waiting for all goroutine to finish")
	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "error from goroutines executions", "error", err)
	}

	for _, name := range closerNames(a.closerFn) {
		if err := a.closerFn[name](ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", name, "error", err)
		}
	}

	slog.InfoContext(ctx, "application gracefully shutdown")
}

func closerNames(closers map[string]func(context.Context) error) []string {
	names := make([]string, 0, len(closers))
	for _, name := range closeOrder {
		if _, ok := closers[name]; ok {
			names = append(names, name)
		}
	}
	for _, name := range slices.Sorted(maps.Keys(closers)) {
		if name != "HTTP Server" && !slices.Contains(closeOrder, name) {
			names = append(names, name)
		}
	}
	return names
}
