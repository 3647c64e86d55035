package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/zapponejosh/almanac-api/internal/calendar"
	"github.com/zapponejosh/almanac-api/internal/config"
	"github.com/zapponejosh/almanac-api/internal/database"
	"github.com/zapponejosh/almanac-api/internal/labels"
	"github.com/zapponejosh/almanac-api/internal/logger"
	"github.com/zapponejosh/almanac-api/internal/metrics"
)

// Handlers contains all HTTP handlers and their dependencies.
type Handlers struct {
	db      *database.DB
	engine  *calendar.Engine
	cfg     *config.Config
	metrics *metrics.Metrics
	logger  *slog.Logger

	now func() time.Time
}

// NewHandlers creates a new Handlers instance. m may be nil.
func NewHandlers(db *database.DB, engine *calendar.Engine, cfg *config.Config, m *metrics.Metrics, logger *slog.Logger) *Handlers {
	return &Handlers{
		db:      db,
		engine:  engine,
		cfg:     cfg,
		metrics: m,
		logger:  logger,
		now:     time.Now,
	}
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	st, err := h.db.Health(ctx)
	if err != nil {
		h.log(ctx).Warn("health check failed", slog.Any("error", err))
		WriteError(w, http.StatusServiceUnavailable, "Database unhealthy", CodeUnhealthy)
		return
	}

	WriteSuccess(w, map[string]any{
		"status":         "healthy",
		"era":            h.engine.Era(),
		"schema_version": st.SchemaVersion,
		"observances":    st.Observances,
	})
}

// =============================================================================
// Almanac
// =============================================================================

// dayResponse is a computed day plus the observances that fall on it.
type dayResponse struct {
	calendar.DayRecord
	Observances []database.Observance `json:"observances"`
}

// cardResponse is the display form of a day.
type cardResponse struct {
	labels.Card
	Lunar       calendar.LunarDate    `json:"lunar"`
	Observances []database.Observance `json:"observances"`
}

// GetToday handles GET /api/v1/almanac/today
func (h *Handlers) GetToday(w http.ResponseWriter, r *http.Request) {
	today := calendar.CivilDateOf(h.now().In(h.cfg.Location()))
	h.writeDay(w, r, today)
}

// GetDate handles GET /api/v1/almanac/date/{YYYY-MM-DD}
func (h *Handlers) GetDate(w http.ResponseWriter, r *http.Request) {
	date, err := calendar.ParseCivilDate(chi.URLParam(r, "date"))
	if err != nil {
		writeCalendarError(w, err)
		return
	}
	h.writeDay(w, r, date)
}

func (h *Handlers) writeDay(w http.ResponseWriter, r *http.Request, date calendar.CivilDate) {
	ctx := r.Context()

	hour, err := parseHour(r)
	if err != nil {
		writeCalendarError(w, err)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "card" {
		WriteBadRequest(w, fmt.Sprintf("Unknown format %q. Use json or card", format))
		return
	}

	rec, err := h.engine.Compute(date, hour)
	if err != nil {
		h.metrics.IncrementDays("error", 1)
		if writeCalendarError(w, err) {
			return
		}
		h.log(ctx).Error("failed to compute day", slog.Any("error", err), slog.String("date", date.String()))
		WriteInternalError(w, "Failed to compute day")
		return
	}
	h.metrics.IncrementDays("ok", 1)

	obs, err := h.observancesFor(ctx, rec.Lunar)
	if err != nil {
		h.log(ctx).Error("failed to load observances", slog.Any("error", err), slog.String("date", date.String()))
		WriteInternalError(w, "Failed to load observances")
		return
	}

	if format == "card" {
		WriteSuccess(w, cardResponse{Card: labels.NewCard(rec), Lunar: rec.Lunar, Observances: obs})
		return
	}
	WriteSuccess(w, dayResponse{DayRecord: rec, Observances: obs})
}

// observancesFor returns the observances that land on a lunar date under
// the same rules Engine.Anniversaries applies: day 30 falls on day 29 in a
// short month, and a leap-month observance falls in the ordinary month when
// the year has no such leap month.
func (h *Handlers) observancesFor(ctx context.Context, d calendar.LunarDate) ([]database.Observance, error) {
	days := []int{d.Day}
	if d.Day == 29 && d.MonthDays == 29 {
		days = append(days, 30)
	}

	leapFlags := []bool{d.IsLeapMonth}
	if !d.IsLeapMonth {
		ly, err := h.engine.LunarYear(d.Year)
		if err != nil {
			return nil, err
		}
		if ly.LeapMonth != d.Month {
			leapFlags = append(leapFlags, true)
		}
	}

	out := []database.Observance{}
	for _, leap := range leapFlags {
		for _, day := range days {
			obs, err := h.db.ObservancesOn(ctx, d.Month, day, leap)
			if err != nil {
				return nil, err
			}
			out = append(out, obs...)
		}
	}
	return out, nil
}

// GetRange handles GET /api/v1/almanac/range?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handlers) GetRange(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	startStr := r.URL.Query().Get("start")
	endStr := r.URL.Query().Get("end")

	if startStr == "" || endStr == "" {
		WriteBadRequest(w, "Both start and end date parameters are required")
		return
	}

	start, err := calendar.ParseCivilDate(startStr)
	if err != nil {
		writeCalendarError(w, err)
		return
	}
	end, err := calendar.ParseCivilDate(endStr)
	if err != nil {
		writeCalendarError(w, err)
		return
	}

	if end.Before(start) {
		WriteBadRequest(w, "Start date must be before or equal to end date")
		return
	}

	var dates []calendar.CivilDate
	for d := start; !end.Before(d); d = d.AddDays(1) {
		if len(dates) == h.cfg.RangeLimitDays {
			WriteBadRequest(w, fmt.Sprintf("Date range cannot exceed %d days", h.cfg.RangeLimitDays))
			return
		}
		dates = append(dates, d)
	}
	h.metrics.ObserveRange(len(dates))

	days, err := h.computeRange(ctx, dates)
	if err != nil {
		h.metrics.IncrementDays("error", 1)
		if writeCalendarError(w, err) {
			return
		}
		h.log(ctx).Error("failed to compute range", slog.Any("error", err),
			slog.String("start", startStr),
			slog.String("end", endStr))
		WriteInternalError(w, "Failed to compute range")
		return
	}
	h.metrics.IncrementDays("ok", len(days))

	WriteSuccess(w, map[string]any{
		"start": start,
		"end":   end,
		"days":  days,
	})
}

// computeRange computes dates concurrently. Results keep the input order
// and the first error cancels the rest.
func (h *Handlers) computeRange(ctx context.Context, dates []calendar.CivilDate) ([]calendar.DayRecord, error) {
	out := make([]calendar.DayRecord, len(dates))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, d := range dates {
		i, d := i, d
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rec, err := h.engine.Compute(d, nil)
			if err != nil {
				return fmt.Errorf("compute %s: %w", d, err)
			}
			out[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// =============================================================================
// Lunar calendar and solar terms
// =============================================================================

// lunarMonthView is one month of a lunar year with its display name.
type lunarMonthView struct {
	calendar.LunarMonth
	Name     string              `json:"name"`
	FirstDay *calendar.CivilDate `json:"first_day,omitempty"`
}

// GetLunarYear handles GET /api/v1/lunar/{year}
func (h *Handlers) GetLunarYear(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Year must be an integer")
		return
	}

	ly, err := h.engine.LunarYear(year)
	if err != nil {
		if writeCalendarError(w, err) {
			return
		}
		h.log(r.Context()).Error("failed to load lunar year", slog.Any("error", err), slog.Int("year", year))
		WriteInternalError(w, "Failed to load lunar year")
		return
	}

	months := make([]lunarMonthView, 0, len(ly.Months))
	for _, m := range ly.Months {
		v := lunarMonthView{LunarMonth: m, Name: labels.LunarMonth(m.Month, m.IsLeap)}
		// The last months of the final table year run past the era.
		if first, err := h.engine.LunarToCivil(calendar.LunarDate{Year: year, Month: m.Month, IsLeapMonth: m.IsLeap, Day: 1}); err == nil {
			v.FirstDay = &first
		}
		months = append(months, v)
	}

	pillar := calendar.YearPillar(year)
	WriteSuccess(w, map[string]any{
		"year":       ly.Year,
		"pillar":     pillar,
		"ganzhi":     labels.Pillar(pillar),
		"zodiac":     pillar.Branch().Zodiac(),
		"leap_month": ly.LeapMonth,
		"days":       ly.Days,
		"months":     months,
	})
}

// ConvertLunar handles GET /api/v1/lunar/{year}/{month}/{day}?leap=true
func (h *Handlers) ConvertLunar(w http.ResponseWriter, r *http.Request) {
	var parts [3]int
	for i, name := range []string{"year", "month", "day"} {
		n, err := strconv.Atoi(chi.URLParam(r, name))
		if err != nil {
			WriteBadRequest(w, fmt.Sprintf("%s must be an integer", name))
			return
		}
		parts[i] = n
	}

	leap := false
	if s := r.URL.Query().Get("leap"); s != "" {
		b, err := strconv.ParseBool(s)
		if err != nil {
			WriteBadRequest(w, "leap must be true or false")
			return
		}
		leap = b
	}

	lunar := calendar.LunarDate{Year: parts[0], Month: parts[1], IsLeapMonth: leap, Day: parts[2]}
	civil, err := h.engine.LunarToCivil(lunar)
	if err != nil {
		if writeCalendarError(w, err) {
			return
		}
		h.log(r.Context()).Error("failed to convert lunar date", slog.Any("error", err), slog.String("lunar", lunar.String()))
		WriteInternalError(w, "Failed to convert lunar date")
		return
	}

	h.writeDay(w, r, civil)
}

// termView is one solar term boundary with its display name.
type termView struct {
	calendar.TermDate
	Name      string  `json:"name"`
	Longitude float64 `json:"longitude"`
}

// GetTerms handles GET /api/v1/terms/{year}
func (h *Handlers) GetTerms(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(chi.URLParam(r, "year"))
	if err != nil {
		WriteBadRequest(w, "Year must be an integer")
		return
	}

	terms, err := h.engine.Terms(year)
	if err != nil {
		if writeCalendarError(w, err) {
			return
		}
		h.log(r.Context()).Error("failed to compute solar terms", slog.Any("error", err), slog.Int("year", year))
		WriteInternalError(w, "Failed to compute solar terms")
		return
	}

	out := make([]termView, 0, len(terms))
	for _, t := range terms {
		out = append(out, termView{
			TermDate:  t,
			Name:      labels.SolarTerm(t.Term),
			Longitude: t.Term.Longitude(),
		})
	}

	WriteSuccess(w, map[string]any{
		"year":  year,
		"terms": out,
	})
}

// =============================================================================
// Helpers
// =============================================================================

// log returns the handler logger tagged with the request ID.
func (h *Handlers) log(ctx context.Context) *slog.Logger {
	if id := logger.RequestID(ctx); id != "" {
		return h.logger.With(slog.String("request_id", id))
	}
	return h.logger
}

// parseHour reads the optional ?hour= parameter. Range checking is left to
// the engine.
func parseHour(r *http.Request) (*int, error) {
	s := r.URL.Query().Get("hour")
	if s == "" {
		return nil, nil
	}
	hour, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: hour %q is not a number", calendar.ErrInvalidInput, s)
	}
	return &hour, nil
}

// decodeJSON decodes JSON request body.
func decodeJSON(r *http.Request, v any) error {
	if r.Body == nil {
		return fmt.Errorf("request body is empty")
	}
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
