package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vancomm/officegen/internal/config"
)

type ctxKey int

const ctxPlayerClaims ctxKey = iota

// Auth stores the claims of a logged in player in the request context.
// Requests with missing or invalid cookies pass through anonymously.
func Auth(logger *slog.Logger, cookies *config.Cookies) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := cookies.ParsePlayerClaims(r)
			if err != nil {
				if !errors.Is(err, http.ErrNoCookie) {
					logger.Debug("rejected auth cookies", "error", err)
				}
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithPlayerClaims(r.Context(), claims)))
		})
	}
}

func WithPlayerClaims(ctx context.Context, claims *config.PlayerClaims) context.Context {
	return context.WithValue(ctx, ctxPlayerClaims, claims)
}

func PlayerClaims(ctx context.Context) (*config.PlayerClaims, bool) {
	claims, ok := ctx.Value(ctxPlayerClaims).(*config.PlayerClaims)
	return claims, ok
}
