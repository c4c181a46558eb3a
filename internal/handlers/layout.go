package handlers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5"

	"github.com/vancomm/officegen/internal/config"
	"github.com/vancomm/officegen/internal/generator"
	"github.com/vancomm/officegen/internal/middleware"
	"github.com/vancomm/officegen/internal/render"
	"github.com/vancomm/officegen/internal/repository"
	"github.com/vancomm/officegen/internal/wfc"
)

var (
	ErrBadLayoutID       = errors.New("layout id must be an integer")
	ErrRenderingDisabled = errors.New("layout rendering is not configured")
)

type LayoutHandler struct {
	logger  *slog.Logger
	store   Store
	gen     *generator.Generator
	assets  *render.Assets
	ws      *config.WebSocket
	newSeed func() uint64
}

// NewLayoutHandler serves layouts from gen. Image rendering is disabled when
// assets is nil.
func NewLayoutHandler(
	logger *slog.Logger,
	store Store,
	gen *generator.Generator,
	assets *render.Assets,
	ws *config.WebSocket,
	newSeed func() uint64,
) *LayoutHandler {
	return &LayoutHandler{
		logger:  logger,
		store:   store,
		gen:     gen,
		assets:  assets,
		ws:      ws,
		newSeed: newSeed,
	}
}

func (h LayoutHandler) request(dto GenerateLayoutDTO) generator.Request {
	req := generator.Request{Size: dto.Size}
	if dto.Seed != nil {
		req.Seed = *dto.Seed
	} else {
		req.Seed = h.newSeed()
	}
	return req
}

// generationStatus maps generator errors onto response codes.
func generationStatus(err error) int {
	switch {
	case errors.Is(err, generator.ErrSizeTooLarge), errors.Is(err, wfc.ErrInvalidSize):
		return http.StatusBadRequest
	case errors.Is(err, wfc.ErrContradiction), errors.Is(err, wfc.ErrStepBudget):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h LayoutHandler) persist(
	ctx context.Context, res *generator.Result,
) (*repository.Layout, error) {
	params := repository.CreateLayoutParams{
		Seed:     res.Seed,
		Attempts: res.Attempts,
		Tiles:    res.Layout,
	}
	if claims, ok := middleware.PlayerClaims(ctx); ok {
		params.PlayerID = &claims.PlayerID
	}
	return h.store.CreateLayout(ctx, params)
}

func (h LayoutHandler) Create(w http.ResponseWriter, r *http.Request) {
	dto, err := decode[GenerateLayoutDTO](r.URL.Query())
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	res, err := h.gen.Generate(r.Context(), h.request(dto))
	if err != nil {
		status := generationStatus(err)
		if status == http.StatusInternalServerError {
			internalError(w, h.logger, "unable to generate layout", "error", err)
			return
		}
		sendError(w, h.logger, status, err)
		return
	}

	layout, err := h.persist(r.Context(), res)
	if err != nil {
		internalError(w, h.logger, "unable to save layout", "error", err)
		return
	}

	sendStatusJSONOrLog(w, h.logger, http.StatusCreated, NewLayoutDTO(layout))
}

func (h LayoutHandler) fetch(w http.ResponseWriter, r *http.Request) (*repository.Layout, bool) {
	layoutID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, ErrBadLayoutID)
		return nil, false
	}

	layout, err := h.store.FetchLayout(r.Context(), layoutID)
	if errors.Is(err, pgx.ErrNoRows) {
		w.WriteHeader(http.StatusNotFound)
		return nil, false
	}
	if err != nil {
		internalError(w, h.logger, "unable to fetch layout from db", "error", err)
		return nil, false
	}
	return layout, true
}

func (h LayoutHandler) Fetch(w http.ResponseWriter, r *http.Request) {
	layout, ok := h.fetch(w, r)
	if !ok {
		return
	}
	sendJSONOrLog(w, h.logger, NewLayoutDTO(layout))
}

func (h LayoutHandler) Image(w http.ResponseWriter, r *http.Request) {
	if h.assets == nil {
		sendError(w, h.logger, http.StatusNotImplemented, ErrRenderingDisabled)
		return
	}

	layout, ok := h.fetch(w, r)
	if !ok {
		return
	}

	img, err := render.Compose(layout.Tiles, *h.assets)
	if err != nil {
		internalError(w, h.logger, "unable to render layout",
			"layoutId", layout.LayoutID, "error", err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`inline; filename="layout_%d.png"`, layout.LayoutID))
	if err := render.Encode(w, img); err != nil {
		h.logger.Error("unable to send layout image", "error", err)
	}
}

func (h LayoutHandler) List(w http.ResponseWriter, r *http.Request) {
	dto, err := decode[ListLayoutsDTO](r.URL.Query())
	if err != nil {
		sendError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	summaries, err := h.store.ListLayouts(r.Context(), repository.LayoutFilter{
		Username: dto.Username,
		Size:     dto.Size,
	})
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		internalError(w, h.logger, "unable to list layouts",
			"error", err, "filter", dto)
		return
	}

	res := make([]LayoutSummaryDTO, len(summaries))
	for i, s := range summaries {
		res[i] = NewLayoutSummaryDTO(s)
	}
	sendJSONOrLog(w, h.logger, res)
}
