package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/vancomm/officegen/internal/repository"
)

// Store is the persistence used by the handlers; *repository.Queries
// implements it.
type Store interface {
	CreateLayout(context.Context, repository.CreateLayoutParams) (*repository.Layout, error)
	FetchLayout(context.Context, int64) (*repository.Layout, error)
	ListLayouts(context.Context, repository.LayoutFilter) ([]repository.LayoutSummary, error)
	CreatePlayer(context.Context, repository.CreatePlayerParams) (*repository.Player, error)
	FetchPlayer(context.Context, string) (*repository.Player, error)
}

func sendJSON(w http.ResponseWriter, status int, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(payload)
	return err
}

func sendJSONOrLog(w http.ResponseWriter, logger *slog.Logger, v any) {
	sendStatusJSONOrLog(w, logger, http.StatusOK, v)
}

func sendStatusJSONOrLog(w http.ResponseWriter, logger *slog.Logger, status int, v any) {
	if err := sendJSON(w, status, v); err != nil {
		logger.Error(
			"unable to send response",
			slog.Any("response", v),
			slog.Any("error", err),
		)
	}
}

func sendError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	sendStatusJSONOrLog(w, logger, status, wrapError(err))
}

func internalError(w http.ResponseWriter, logger *slog.Logger, msg string, args ...any) {
	w.WriteHeader(http.StatusInternalServerError)
	logger.Error(msg, args...)
}

func wrapError(err error) map[string]string {
	return map[string]string{
		"error": err.Error(),
	}
}
