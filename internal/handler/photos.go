package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"apod_fetcher/internal/dates"
	"apod_fetcher/internal/domain"
)

// Read endpoints refresh from the API first and answer from the cache. A
// failed refresh is logged and the cached records are served anyway.

// Today returns the photo the API currently calls today, or the cached
// photo for the local date when the API is unreachable.
// GET /api/today
func (h *Handler) Today(w http.ResponseWriter, r *http.Request) {
	// APOD dates its photos in US Eastern time, so the stored record may not
	// match the local calendar day.
	date := dates.Today(h.now)
	stats, err := h.svc.RefreshToday(r.Context(), h.apiKey)
	switch {
	case err != nil:
		h.logger.Warn("refresh today failed, serving cache", "error", err)
	case stats != nil && stats.LastDate != "":
		date = stats.LastDate
	}

	photo, err := h.svc.Photo(r.Context(), date)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(*photo))
}

// Range returns the photos dated within [start, end].
// GET /api/photos?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) Range(w http.ResponseWriter, r *http.Request) {
	start := r.URL.Query().Get("start")
	end := r.URL.Query().Get("end")
	if err := dates.ValidateRange(start, end); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.svc.RefreshRange(r.Context(), h.apiKey, start, end); err != nil {
		h.logger.Warn("refresh range failed, serving cache", "start", start, "end", end, "error", err)
	}

	photos, err := h.svc.PhotosInRange(r.Context(), start, end)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponses(photos))
}

// Random fetches random photos and returns a random sample of the cache.
// GET /api/photos/random?count=N
func (h *Handler) Random(w http.ResponseWriter, r *http.Request) {
	count, ok := parseCount(w, r)
	if !ok {
		return
	}

	if _, err := h.svc.RefreshRandom(r.Context(), h.apiKey, count); err != nil {
		h.logger.Warn("refresh random failed, serving cache", "error", err)
	}

	photos, err := h.svc.RandomSample(r.Context(), count)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponses(photos))
}

// Photo returns a single cached photo without contacting the API.
// GET /api/photos/{date}
func (h *Handler) Photo(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if _, err := dates.Parse(date); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	photo, err := h.svc.Photo(r.Context(), date)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(*photo))
}

// GET /api/favorites
func (h *Handler) Favorites(w http.ResponseWriter, r *http.Request) {
	photos, err := h.svc.Favorites(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponses(photos))
}

// ToggleFavorite flips the favorite flag of a cached photo.
// POST /api/photos/{date}/favorite
func (h *Handler) ToggleFavorite(w http.ResponseWriter, r *http.Request) {
	photo, err := h.svc.ToggleFavoriteByDate(r.Context(), chi.URLParam(r, "date"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(*photo))
}

// GET /api/selection
func (h *Handler) GetSelection(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.svc.DateRangeSelection())
}

// PutSelection stores the selected range and loads it into the list slot.
// PUT /api/selection
func (h *Handler) PutSelection(w http.ResponseWriter, r *http.Request) {
	var req domain.DateRange
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.svc.LoadRange(h.base, h.apiKey, req.Start, req.End); err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.svc.SetDateRangeSelection(req.Start, req.End)

	writeJSON(w, http.StatusAccepted, req)
}

// POST /api/load/today
func (h *Handler) LoadToday(w http.ResponseWriter, r *http.Request) {
	h.svc.LoadToday(h.base, h.apiKey)
	w.WriteHeader(http.StatusAccepted)
}

// POST /api/load/random?count=N
func (h *Handler) LoadRandom(w http.ResponseWriter, r *http.Request) {
	count, ok := parseCount(w, r)
	if !ok {
		return
	}
	h.svc.LoadRandom(h.base, h.apiKey, count)
	w.WriteHeader(http.StatusAccepted)
}

// POST /api/load/favorites
func (h *Handler) LoadFavorites(w http.ResponseWriter, r *http.Request) {
	h.svc.LoadFavorites(h.base)
	w.WriteHeader(http.StatusAccepted)
}

// parseCount reads the optional count parameter. Zero selects the service
// default.
func parseCount(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := r.URL.Query().Get("count")
	if raw == "" {
		return 0, true
	}

	count, err := strconv.Atoi(raw)
	if err == nil && count < 0 {
		err = errors.New("negative")
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "count must be a non-negative integer")
		return 0, false
	}
	return count, true
}
