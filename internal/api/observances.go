package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/almanac-api/internal/calendar"
	"github.com/zapponejosh/almanac-api/internal/database"
)

// ListObservances handles GET /api/v1/observances
func (h *Handlers) ListObservances(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	opts := database.ListOptions{}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil {
		opts.Limit = l
	}
	if o, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil {
		opts.Offset = o
	}
	opts = opts.Normalize()

	obs, err := h.db.ListObservances(ctx, opts)
	if err != nil {
		h.log(ctx).Error("failed to list observances", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve observances")
		return
	}

	total, err := h.db.CountObservances(ctx)
	if err != nil {
		h.log(ctx).Error("failed to count observances", slog.Any("error", err))
		WriteInternalError(w, "Failed to retrieve observances")
		return
	}

	WriteSuccess(w, map[string]any{
		"observances": obs,
		"total":       total,
		"limit":       opts.Limit,
		"offset":      opts.Offset,
	})
}

// CreateObservance handles POST /api/v1/observances
func (h *Handlers) CreateObservance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req struct {
		Name        string `json:"name"`
		LunarMonth  int    `json:"lunar_month"`
		LunarDay    int    `json:"lunar_day"`
		IsLeapMonth bool   `json:"is_leap_month"`
		Notes       string `json:"notes,omitempty"`
	}

	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, fmt.Sprintf("Invalid request body: %v", err))
		return
	}

	o := &database.Observance{
		Name:        req.Name,
		LunarMonth:  req.LunarMonth,
		LunarDay:    req.LunarDay,
		IsLeapMonth: req.IsLeapMonth,
	}
	if req.Notes != "" {
		o.Notes = &req.Notes
	}

	if err := h.db.CreateObservance(ctx, o); err != nil {
		switch {
		case errors.Is(err, database.ErrInvalidObservance):
			WriteError(w, http.StatusBadRequest, err.Error(), CodeInvalidInput)
		case database.IsDuplicate(err):
			WriteError(w, http.StatusConflict, "Observance already exists on that lunar date", CodeDuplicate)
		default:
			h.log(ctx).Error("failed to create observance", slog.Any("error", err))
			WriteInternalError(w, "Failed to create observance")
		}
		return
	}
	h.metrics.IncrementObservanceWrites("create", 1)

	WriteCreated(w, o)
}

// GetObservance handles GET /api/v1/observances/{id}
func (h *Handlers) GetObservance(w http.ResponseWriter, r *http.Request) {
	o, ok := h.loadObservance(w, r)
	if !ok {
		return
	}
	WriteSuccess(w, o)
}

// DeleteObservance handles DELETE /api/v1/observances/{id}
func (h *Handlers) DeleteObservance(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.db.DeleteObservance(ctx, id); err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Observance not found")
			return
		}
		h.log(ctx).Error("failed to delete observance", slog.Any("error", err), slog.Int64("id", id))
		WriteInternalError(w, "Failed to delete observance")
		return
	}
	h.metrics.IncrementObservanceWrites("delete", 1)

	WriteSuccess(w, map[string]string{"message": "Observance deleted"})
}

// GetOccurrences handles GET /api/v1/observances/{id}/occurrences?year=YYYY
//
// Without ?year the current year in the configured time zone is used.
func (h *Handlers) GetOccurrences(w http.ResponseWriter, r *http.Request) {
	year := h.now().In(h.cfg.Location()).Year()
	if s := r.URL.Query().Get("year"); s != "" {
		y, err := strconv.Atoi(s)
		if err != nil {
			WriteBadRequest(w, "Year must be an integer")
			return
		}
		year = y
	}

	o, ok := h.loadObservance(w, r)
	if !ok {
		return
	}

	dates, err := h.engine.Anniversaries(o.LunarMonth, o.LunarDay, o.IsLeapMonth, year)
	if err != nil {
		if writeCalendarError(w, err) {
			return
		}
		h.log(r.Context()).Error("failed to compute occurrences", slog.Any("error", err), slog.Int64("id", o.ID))
		WriteInternalError(w, "Failed to compute occurrences")
		return
	}
	if dates == nil {
		dates = []calendar.CivilDate{}
	}

	WriteSuccess(w, map[string]any{
		"observance": o,
		"year":       year,
		"dates":      dates,
	})
}

// loadObservance fetches the observance named by the {id} URL parameter,
// writing the error response itself when it cannot.
func (h *Handlers) loadObservance(w http.ResponseWriter, r *http.Request) (*database.Observance, bool) {
	id, ok := parseID(w, r)
	if !ok {
		return nil, false
	}

	o, err := h.db.GetObservance(r.Context(), id)
	if err != nil {
		if database.IsNotFound(err) {
			WriteNotFound(w, "Observance not found")
			return nil, false
		}
		h.log(r.Context()).Error("failed to get observance", slog.Any("error", err), slog.Int64("id", id))
		WriteInternalError(w, "Failed to retrieve observance")
		return nil, false
	}
	return o, true
}

func parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		WriteBadRequest(w, "Invalid observance ID")
		return 0, false
	}
	return id, true
}
