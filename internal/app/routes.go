package app

import (
	"math/rand/v2"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vancomm/officegen/internal/handlers"
	"github.com/vancomm/officegen/internal/repository"
)

func newStore(db *pgxpool.Pool) handlers.Store {
	return repository.New(db)
}

func (a *App) loadRoutes() {
	layouts := handlers.NewLayoutHandler(
		a.logger, a.store, a.gen, a.assets, a.ws, rand.Uint64,
	)
	auth := handlers.NewAuth(a.logger, a.store, a.cookies)

	a.router.HandleFunc("POST /layout", layouts.Create)
	a.router.HandleFunc("GET /layout/stream", layouts.Stream)
	a.router.HandleFunc("GET /layout/{id}", layouts.Fetch)
	a.router.HandleFunc("GET /layout/{id}/image", layouts.Image)
	a.router.HandleFunc("GET /layouts", layouts.List)

	a.router.HandleFunc("POST /register", auth.Register)
	a.router.HandleFunc("POST /login", auth.Login)
	a.router.HandleFunc("POST /logout", auth.Logout)
	a.router.HandleFunc("GET /status", auth.Status)

	a.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
}
