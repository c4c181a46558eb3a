package middleware

import (
	"net/http"

	"github.com/rs/cors"
)

// Cors allows credentials from origins; any origin is allowed when origins
// is empty.
func Cors(origins ...string) Middleware {
	options := cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
	if len(origins) == 0 {
		options.AllowOriginFunc = func(origin string) bool { return true }
	}
	return cors.New(options).Handler
}
