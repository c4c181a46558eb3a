package main

import (
	"errors"
	"flag"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	"github.com/lmittmann/tint"

	"github.com/vancomm/officegen/internal/config"
	"github.com/vancomm/officegen/internal/database"
)

func main() {
	down := flag.Bool("down", false, "roll back every migration instead of applying them")
	flag.Parse()

	var logger *slog.Logger
	if config.Development() {
		logger = slog.New(tint.NewHandler(os.Stderr, nil))
	} else {
		logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	url, err := config.DbURL()
	if err != nil {
		logger.Error("failed to read database config", slog.Any("error", err))
		os.Exit(1)
	}

	migrator, err := database.NewMigrator(url, database.Migrations)
	if err != nil {
		logger.Error("failed to connect to db", slog.Any("error", err))
		os.Exit(1)
	}
	defer migrator.Close()

	apply, action := migrator.Up, "migration successful"
	if *down {
		apply, action = migrator.Down, "rollback successful"
	}
	if err := apply(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("failed to migrate database", slog.Any("error", err))
		os.Exit(1)
	}

	version, dirty, err := migrator.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		logger.Info(action, slog.String("version", "none"))
		return
	}
	if err != nil {
		logger.Error("failed to check migration version", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info(action, slog.Uint64("version", uint64(version)), slog.Bool("dirty", dirty))
}
