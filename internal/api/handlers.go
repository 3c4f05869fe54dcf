package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/leeks92/bus-mustarddata/internal/metadata"
	"github.com/leeks92/bus-mustarddata/internal/model"
	"github.com/leeks92/bus-mustarddata/internal/slug"
)

// SnapshotRepository reads the published snapshots
type SnapshotRepository interface {
	Terminals(ctx context.Context, bus model.BusType) ([]model.Terminal, error)
	Routes(ctx context.Context, bus model.BusType) ([]model.Route, error)
	Metadata(ctx context.Context) (model.Metadata, error)
	AirportBuses(ctx context.Context) ([]model.AirportBus, error)
	// SyncCache picks up snapshots rewritten by a collector and returns when
	// the metadata was last written
	SyncCache(ctx context.Context) (time.Time, error)
}

// Handler serves lookups over the snapshots
type Handler struct {
	repo       SnapshotRepository
	staleAfter time.Duration
	logger     *zap.SugaredLogger
	now        func() time.Time
}

// NewHandler creates a handler. Metadata older than staleAfter is flagged.
func NewHandler(repo SnapshotRepository, staleAfter time.Duration, logger *zap.SugaredLogger) *Handler {
	return &Handler{repo: repo, staleAfter: staleAfter, logger: logger, now: time.Now}
}

// ErrorResponse is the JSON error response structure
type ErrorResponse struct {
	Error   string                 `json:"error"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// MetadataResponse is the JSON response for GET /api/metadata
type MetadataResponse struct {
	model.Metadata
	WrittenAt string `json:"writtenAt,omitempty"`
	Stale     bool   `json:"stale"`
}

// TerminalSummary is a terminal with its slugs
type TerminalSummary struct {
	ID         string `json:"terminalId"`
	Name       string `json:"terminalNm"`
	Slug       string `json:"slug"`
	KoreanSlug string `json:"koreanSlug"`
}

// Destination is one route leaving a terminal
type Destination struct {
	ArrTerminalID   string `json:"arrTerminalId"`
	ArrTerminalName string `json:"arrTerminalName"`
	RouteSlug       string `json:"routeSlug"`
	ScheduleCount   int    `json:"scheduleCount"`
}

// TerminalResponse is the JSON response for GET /api/terminals/{bus}/{slug}
type TerminalResponse struct {
	Terminal     TerminalSummary `json:"terminal"`
	BusType      model.BusType   `json:"busType"`
	Destinations []Destination   `json:"destinations"`
}

// TerminalListResponse is the JSON response for GET /api/terminals/{bus}
type TerminalListResponse struct {
	BusType   model.BusType     `json:"busType"`
	Terminals []TerminalSummary `json:"terminals"`
	Count     int               `json:"count"`
}

// ScheduleView is a schedule with its fare rendered for display
type ScheduleView struct {
	model.Schedule
	ChargeLabel string `json:"chargeLabel"`
}

// FareRange is the known fare span of a route
type FareRange struct {
	Min      int    `json:"min"`
	Max      int    `json:"max"`
	MinLabel string `json:"minLabel"`
	MaxLabel string `json:"maxLabel"`
}

// RouteResponse is the JSON response for GET /api/routes/{bus}/{routeSlug}
type RouteResponse struct {
	BusType         model.BusType   `json:"busType"`
	RouteSlug       string          `json:"routeSlug"`
	KoreanRouteSlug string          `json:"koreanRouteSlug"`
	DepTerminal     TerminalSummary `json:"depTerminal"`
	ArrTerminal     TerminalSummary `json:"arrTerminal"`
	Schedules       []ScheduleView  `json:"schedules"`
	FirstDeparture  string          `json:"firstDeparture,omitempty"`
	LastDeparture   string          `json:"lastDeparture,omitempty"`
	Fare            *FareRange      `json:"fare,omitempty"`
}

// AirportResponse is the JSON response for GET /api/airport
type AirportResponse struct {
	Buses []model.AirportBus `json:"buses"`
	Count int                `json:"count"`
}

// Health handles GET /health by reading the metadata document
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if _, err := h.repo.Metadata(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "error",
			"storage":   "unavailable",
			"timestamp": h.now().UTC(),
			"error":     err.Error(),
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"storage":   "available",
		"timestamp": h.now().UTC(),
	})
}

// GetMetadata handles GET /api/metadata
func (h *Handler) GetMetadata(w http.ResponseWriter, r *http.Request) {
	writtenAt, syncErr := h.repo.SyncCache(r.Context())

	m, err := h.repo.Metadata(r.Context())
	if err != nil {
		h.internalError(w, "Failed to load metadata", err)
		return
	}

	resp := MetadataResponse{
		Metadata: m,
		Stale:    metadata.IsStale(m, h.staleAfter, h.now()),
	}
	if syncErr != nil {
		h.logger.Debugw("API: snapshot write time unavailable", "error", syncErr)
	} else {
		resp.WrittenAt = writtenAt.UTC().Format(time.RFC3339)
		// documents without a collection timestamp age by their write time
		if m.LastUpdated == "" {
			resp.Stale = h.now().Sub(writtenAt) > h.staleAfter
		}
	}

	w.Header().Set("Cache-Control", "public, max-age=300")
	writeJSON(w, http.StatusOK, resp)
}

// ListTerminals handles GET /api/terminals/{bus}
func (h *Handler) ListTerminals(w http.ResponseWriter, r *http.Request) {
	bus, ok := routeBusType(w, r)
	if !ok {
		return
	}

	terminals, err := h.repo.Terminals(r.Context(), bus)
	if err != nil {
		h.internalError(w, "Failed to load terminals", err)
		return
	}

	dir := slug.NewDirectory(terminals, bus)
	summaries := make([]TerminalSummary, 0, len(terminals))
	for _, t := range terminals {
		summaries = append(summaries, summarize(dir, t))
	}

	writeJSON(w, http.StatusOK, TerminalListResponse{
		BusType:   bus,
		Terminals: summaries,
		Count:     len(summaries),
	})
}

// GetTerminal handles GET /api/terminals/{bus}/{slug}
func (h *Handler) GetTerminal(w http.ResponseWriter, r *http.Request) {
	bus, ok := routeBusType(w, r)
	if !ok {
		return
	}
	terminalSlug := chi.URLParam(r, "slug")

	terminals, err := h.repo.Terminals(r.Context(), bus)
	if err != nil {
		h.internalError(w, "Failed to load terminals", err)
		return
	}

	dir := slug.NewDirectory(terminals, bus)
	id, found := dir.IDFor(terminalSlug)
	if !found {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   "Terminal not found",
			Details: map[string]interface{}{"slug": terminalSlug},
		})
		return
	}

	routes, err := h.repo.Routes(r.Context(), bus)
	if err != nil {
		h.internalError(w, "Failed to load routes", err)
		return
	}

	destinations := []Destination{}
	for _, route := range routes {
		if route.DepTerminalID != id {
			continue
		}
		routeSlug, _ := dir.RouteSlugFor(route.DepTerminalID, route.ArrTerminalID)
		destinations = append(destinations, Destination{
			ArrTerminalID:   route.ArrTerminalID,
			ArrTerminalName: route.ArrTerminalName,
			RouteSlug:       routeSlug,
			ScheduleCount:   len(route.Schedules),
		})
	}

	writeJSON(w, http.StatusOK, TerminalResponse{
		Terminal:     summarize(dir, findTerminal(terminals, id)),
		BusType:      bus,
		Destinations: destinations,
	})
}

// GetRoute handles GET /api/routes/{bus}/{routeSlug}. Every split of the slug
// into two known terminals is tried, leftmost first, and the first pair with
// collected schedules is returned.
func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	bus, ok := routeBusType(w, r)
	if !ok {
		return
	}
	routeSlug := chi.URLParam(r, "routeSlug")

	terminals, err := h.repo.Terminals(r.Context(), bus)
	if err != nil {
		h.internalError(w, "Failed to load terminals", err)
		return
	}

	dir := slug.NewDirectory(terminals, bus)
	splits := dir.RouteSplits(routeSlug)
	if len(splits) == 0 {
		writeJSON(w, http.StatusNotFound, ErrorResponse{
			Error:   "Unknown route",
			Details: map[string]interface{}{"routeSlug": routeSlug},
		})
		return
	}

	routes, err := h.repo.Routes(r.Context(), bus)
	if err != nil {
		h.internalError(w, "Failed to load routes", err)
		return
	}

	byKey := make(map[string]model.Route, len(routes))
	for _, route := range routes {
		byKey[route.Key()] = route
	}

	for _, split := range splits {
		depID, _ := dir.IDFor(split.Dep)
		arrID, _ := dir.IDFor(split.Arr)
		if route, ok := byKey[model.RouteKey(depID, arrID)]; ok {
			writeJSON(w, http.StatusOK, buildRouteResponse(bus, routeSlug, dir, terminals, route))
			return
		}
	}

	depID, _ := dir.IDFor(splits[0].Dep)
	arrID, _ := dir.IDFor(splits[0].Arr)
	writeJSON(w, http.StatusNotFound, ErrorResponse{
		Error: "No schedules collected for this route",
		Details: map[string]interface{}{
			"routeSlug":     routeSlug,
			"depTerminalId": depID,
			"arrTerminalId": arrID,
		},
	})
}

// GetAirportBuses handles GET /api/airport, optionally filtered by ?area=
func (h *Handler) GetAirportBuses(w http.ResponseWriter, r *http.Request) {
	buses, err := h.repo.AirportBuses(r.Context())
	if err != nil {
		h.internalError(w, "Failed to load airport buses", err)
		return
	}

	if area := r.URL.Query().Get("area"); area != "" {
		filtered := []model.AirportBus{}
		for _, b := range buses {
			if b.Area == area {
				filtered = append(filtered, b)
			}
		}
		buses = filtered
	}

	writeJSON(w, http.StatusOK, AirportResponse{Buses: buses, Count: len(buses)})
}

// GetAirportBus handles GET /api/airport/{busNumber}
func (h *Handler) GetAirportBus(w http.ResponseWriter, r *http.Request) {
	busNumber := chi.URLParam(r, "busNumber")

	buses, err := h.repo.AirportBuses(r.Context())
	if err != nil {
		h.internalError(w, "Failed to load airport buses", err)
		return
	}

	for _, b := range buses {
		if b.BusNumber == busNumber {
			writeJSON(w, http.StatusOK, b)
			return
		}
	}

	writeJSON(w, http.StatusNotFound, ErrorResponse{
		Error:   "Airport bus not found",
		Details: map[string]interface{}{"busNumber": busNumber},
	})
}

func buildRouteResponse(bus model.BusType, routeSlug string, dir *slug.Directory, terminals []model.Terminal, route model.Route) RouteResponse {
	dep := findTerminal(terminals, route.DepTerminalID)
	arr := findTerminal(terminals, route.ArrTerminalID)

	resp := RouteResponse{
		BusType:         bus,
		RouteSlug:       routeSlug,
		KoreanRouteSlug: slug.KoreanRouteSlug(dep.Name, arr.Name),
		DepTerminal:     summarize(dir, dep),
		ArrTerminal:     summarize(dir, arr),
		Schedules:       make([]ScheduleView, 0, len(route.Schedules)),
	}

	for _, s := range route.Schedules {
		resp.Schedules = append(resp.Schedules, ScheduleView{Schedule: s, ChargeLabel: model.FormatCharge(s.Charge)})
	}
	if n := len(route.Schedules); n > 0 {
		resp.FirstDeparture = route.Schedules[0].DepTime
		resp.LastDeparture = route.Schedules[n-1].DepTime
	}
	if lo, hi, ok := model.FareRange(route.Schedules); ok {
		resp.Fare = &FareRange{
			Min:      lo,
			Max:      hi,
			MinLabel: model.FormatCharge(lo),
			MaxLabel: model.FormatCharge(hi),
		}
	}
	return resp
}

func summarize(dir *slug.Directory, t model.Terminal) TerminalSummary {
	s, _ := dir.SlugFor(t.ID)
	return TerminalSummary{
		ID:         t.ID,
		Name:       t.Name,
		Slug:       s,
		KoreanSlug: slug.KoreanSlug(t.Name),
	}
}

func findTerminal(terminals []model.Terminal, id string) model.Terminal {
	for _, t := range terminals {
		if t.ID == id {
			return t
		}
	}
	return model.Terminal{ID: id}
}

// routeBusType reads {bus}; only express and intercity have terminal data
func routeBusType(w http.ResponseWriter, r *http.Request) (model.BusType, bool) {
	bus := model.BusType(chi.URLParam(r, "bus"))
	if bus != model.Express && bus != model.Intercity {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "bus must be express or intercity",
			Details: map[string]interface{}{"bus": string(bus)},
		})
		return "", false
	}
	return bus, true
}

func (h *Handler) internalError(w http.ResponseWriter, msg string, err error) {
	h.logger.Errorw("API: "+msg, "error", err)
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   msg,
		Details: map[string]interface{}{"internal": err.Error()},
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
