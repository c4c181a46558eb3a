package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/vancomm/officegen/internal/config"
	"github.com/vancomm/officegen/internal/database"
	"github.com/vancomm/officegen/internal/generator"
	"github.com/vancomm/officegen/internal/handlers"
	"github.com/vancomm/officegen/internal/middleware"
	"github.com/vancomm/officegen/internal/render"
)

const shutdownTimeout = 15 * time.Second

type App struct {
	logger  *slog.Logger
	router  *http.ServeMux
	db      *pgxpool.Pool
	store   handlers.Store
	cookies *config.Cookies
	ws      *config.WebSocket
	gen     *generator.Generator
	assets  *render.Assets
}

func New(logger *slog.Logger) *App {
	return &App{
		logger: logger,
		router: http.NewServeMux(),
	}
}

// setup reads the configuration and opens the database.
func (a *App) setup(ctx context.Context) error {
	genCfg, err := config.NewGenerator()
	if err != nil {
		return err
	}
	a.gen = generator.New(genCfg.Config)
	if genCfg.AssetsDir != "" {
		assets := a.gen.Tileset().Assets(genCfg.AssetsDir)
		a.assets = &assets
	}

	jwt, err := config.NewJWT()
	if err != nil {
		return fmt.Errorf("unable to read jwt config: %w", err)
	}

	a.cookies, err = config.NewCookies(jwt)
	if err != nil {
		return fmt.Errorf("unable to read cookies config: %w", err)
	}

	a.ws = config.NewWebSocket()

	db, _, err := database.ConnectAndMigrate(ctx)
	if err != nil {
		return fmt.Errorf("unable to connect to db: %w", err)
	}
	a.db = db
	a.store = newStore(db)

	return nil
}

func (a *App) Handler() http.Handler {
	return middleware.Wrap(
		a.router,
		middleware.Auth(a.logger, a.cookies),
		middleware.Logging(a.logger),
		middleware.Cors(),
	)
}

// Run serves until ctx is cancelled, then shuts the server down.
func (a *App) Run(ctx context.Context) error {
	if err := a.setup(ctx); err != nil {
		return err
	}
	defer a.db.Close()

	a.loadRoutes()

	addr := config.Addr()
	server := &http.Server{
		Addr:              addr,
		Handler:           a.Handler(),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("server listening", slog.String("addr", addr))
		err := server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		<-gCtx.Done()
		sCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(sCtx)
	})

	return g.Wait()
}
