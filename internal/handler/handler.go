// Package handler serves the photo cache over HTTP and streams the live
// slots over websockets.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"apod_fetcher/internal/dates"
	"apod_fetcher/internal/domain"
	"apod_fetcher/internal/live"
	"apod_fetcher/internal/metrics"
)

// PhotoService is the part of the sync service the handlers use.
type PhotoService interface {
	RefreshToday(ctx context.Context, apiKey string) (*domain.SyncStats, error)
	RefreshRange(ctx context.Context, apiKey, start, end string) (*domain.SyncStats, error)
	RefreshRandom(ctx context.Context, apiKey string, count int) (*domain.SyncStats, error)

	Photo(ctx context.Context, date string) (*domain.PhotoRecord, error)
	PhotosInRange(ctx context.Context, start, end string) ([]domain.PhotoRecord, error)
	Favorites(ctx context.Context) ([]domain.PhotoRecord, error)
	RandomSample(ctx context.Context, n int) ([]domain.PhotoRecord, error)
	ToggleFavoriteByDate(ctx context.Context, date string) (*domain.PhotoRecord, error)

	LoadToday(ctx context.Context, apiKey string)
	LoadRange(ctx context.Context, apiKey, start, end string) error
	LoadRandom(ctx context.Context, apiKey string, count int)
	LoadFavorites(ctx context.Context)
	SetDateRangeSelection(start, end string)
	DateRangeSelection() domain.DateRange

	Current() *live.Value[*domain.PhotoRecord]
	List() *live.Value[[]domain.PhotoRecord]
}

type Config struct {
	APIKey string
	// Base bounds the live slots driven through the API. It should outlive
	// single requests.
	Base     context.Context
	Gatherer prometheus.Gatherer
}

type Handler struct {
	svc      PhotoService
	apiKey   string
	base     context.Context
	gatherer prometheus.Gatherer
	logger   *slog.Logger
	now      func() time.Time
}

func New(svc PhotoService, cfg Config, logger *slog.Logger) *Handler {
	base := cfg.Base
	if base == nil {
		base = context.Background()
	}
	return &Handler{
		svc:      svc,
		apiKey:   cfg.APIKey,
		base:     base,
		gatherer: cfg.Gatherer,
		logger:   logger.With("component", "http"),
		now:      time.Now,
	}
}

// Router wires every route.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", h.Health)
	if h.gatherer != nil {
		r.Handle("/metrics", metrics.Handler(h.gatherer))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/today", h.Today)
		r.Get("/favorites", h.Favorites)

		r.Route("/photos", func(r chi.Router) {
			r.Get("/", h.Range)
			r.Get("/random", h.Random)
			r.Get("/{date}", h.Photo)
			r.Post("/{date}/favorite", h.ToggleFavorite)
		})

		r.Get("/selection", h.GetSelection)
		r.Put("/selection", h.PutSelection)

		r.Route("/load", func(r chi.Router) {
			r.Post("/today", h.LoadToday)
			r.Post("/random", h.LoadRandom)
			r.Post("/favorites", h.LoadFavorites)
		})
	})

	r.Get("/ws/current", h.StreamCurrent)
	r.Get("/ws/list", h.StreamList)

	return r
}

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type photoResponse struct {
	domain.PhotoRecord
	DisplayURL string `json:"display_url"`
}

func toResponse(p domain.PhotoRecord) photoResponse {
	return photoResponse{PhotoRecord: p, DisplayURL: p.DisplayURL()}
}

func toResponses(photos []domain.PhotoRecord) []photoResponse {
	out := make([]photoResponse, len(photos))
	for i, p := range photos {
		out[i] = toResponse(p)
	}
	return out
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func (h *Handler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "photo not cached")
	case errors.Is(err, dates.ErrInvalidDate),
		errors.Is(err, dates.ErrInvalidRange),
		errors.Is(err, dates.ErrInvalidMonth),
		errors.Is(err, dates.ErrInvalidYear):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}
