package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/lmittmann/tint"

	"github.com/vancomm/officegen/internal/app"
	"github.com/vancomm/officegen/internal/config"
	"github.com/vancomm/officegen/internal/generator"
	"github.com/vancomm/officegen/internal/render"
	"github.com/vancomm/officegen/internal/tileset"
	"github.com/vancomm/officegen/internal/wfc"
)

func newLogger() *slog.Logger {
	if config.Development() {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, nil))
}

func main() {
	logger := newLogger()
	wfc.Log = logger.With("pkg", "wfc")
	generator.Log = logger.With("pkg", "generator")
	render.Log = logger.With("pkg", "render")
	tileset.Log = logger.With("pkg", "tileset")

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := app.New(logger).Run(ctx); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("server stopped")
}
