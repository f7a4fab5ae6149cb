package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/dashboard"
	"github.com/fakhrymubarak/weather-dashboard/internal/geolocation"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

// DashboardController is the command surface of the running dashboard.
type DashboardController interface {
	State(ctx context.Context) (dashboard.State, error)
	Input(ctx context.Context, text string) error
	Submit(ctx context.Context) error
	SelectSuggestion(ctx context.Context, index int) error
	Geolocate(ctx context.Context, loc geolocation.Locator) error
	ToggleFavorite(ctx context.Context) error
	SetUnits(ctx context.Context, units model.UnitSystem) error
	ToggleDarkMode(ctx context.Context) error
	DismissNotification(ctx context.Context, id string) error
}

// DashboardHandler exposes the dashboard commands under /api. Every command
// answers with the resulting state snapshot.
type DashboardHandler struct {
	Dashboard DashboardController
}

func NewDashboardHandler(d DashboardController) *DashboardHandler {
	return &DashboardHandler{Dashboard: d}
}

// Register mounts the /api routes on mux.
func (h *DashboardHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/api/state", h.HandleState)
	mux.HandleFunc("/api/search/input", h.HandleInput)
	mux.HandleFunc("/api/search/submit", h.HandleSubmit)
	mux.HandleFunc("/api/search/select", h.HandleSelect)
	mux.HandleFunc("/api/geolocate", h.HandleGeolocate)
	mux.HandleFunc("/api/favorites/toggle", h.HandleToggleFavorite)
	mux.HandleFunc("/api/units", h.HandleUnits)
	mux.HandleFunc("/api/theme/toggle", h.HandleToggleTheme)
	mux.HandleFunc("/api/notifications/dismiss", h.HandleDismiss)
}

type inputRequest struct {
	Text string `json:"text"`
}

type selectRequest struct {
	Index *int `json:"index"`
}

type geolocateRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type unitsRequest struct {
	Units string `json:"units"`
}

type dismissRequest struct {
	ID string `json:"id"`
}

func (h *DashboardHandler) HandleState(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	h.respondState(w, r)
}

func (h *DashboardHandler) HandleInput(w http.ResponseWriter, r *http.Request) {
	var req inputRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.run(w, r, h.Dashboard.Input(r.Context(), req.Text))
}

func (h *DashboardHandler) HandleSubmit(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	h.run(w, r, h.Dashboard.Submit(r.Context()))
}

func (h *DashboardHandler) HandleSelect(w http.ResponseWriter, r *http.Request) {
	var req selectRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.Index == nil {
		writeError(w, http.StatusBadRequest, "Missing 'index' field")
		return
	}
	h.run(w, r, h.Dashboard.SelectSuggestion(r.Context(), *req.Index))
}

// HandleGeolocate switches to the device position reported by the client.
// A body without coordinates means the client has no geolocation capability.
func (h *DashboardHandler) HandleGeolocate(w http.ResponseWriter, r *http.Request) {
	var req geolocateRequest
	if !h.decode(w, r, &req) {
		return
	}
	var loc geolocation.Locator = geolocation.Unavailable
	if req.Latitude != nil && req.Longitude != nil {
		loc = geolocation.Fixed(*req.Latitude, *req.Longitude)
	}
	h.run(w, r, h.Dashboard.Geolocate(r.Context(), loc))
}

func (h *DashboardHandler) HandleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	h.run(w, r, h.Dashboard.ToggleFavorite(r.Context()))
}

func (h *DashboardHandler) HandleUnits(w http.ResponseWriter, r *http.Request) {
	var req unitsRequest
	if !h.decode(w, r, &req) {
		return
	}
	h.run(w, r, h.Dashboard.SetUnits(r.Context(), model.UnitSystem(req.Units)))
}

func (h *DashboardHandler) HandleToggleTheme(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost) {
		return
	}
	h.run(w, r, h.Dashboard.ToggleDarkMode(r.Context()))
}

func (h *DashboardHandler) HandleDismiss(w http.ResponseWriter, r *http.Request) {
	var req dismissRequest
	if !h.decode(w, r, &req) {
		return
	}
	if req.ID == "" {
		writeError(w, http.StatusBadRequest, "Missing 'id' field")
		return
	}
	h.run(w, r, h.Dashboard.DismissNotification(r.Context(), req.ID))
}

// decode reads a JSON body into dst. An empty body leaves dst untouched.
func (h *DashboardHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if !allowMethod(w, r, http.MethodPost) {
		return false
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "Invalid JSON body")
		return false
	}
	return true
}

func (h *DashboardHandler) run(w http.ResponseWriter, r *http.Request, err error) {
	if err != nil {
		status, msg := commandErrorStatus(err)
		config.GetLogger().Warnw("Dashboard command failed", "path", r.URL.Path, "status", status, "error", err)
		writeError(w, status, msg)
		return
	}
	h.respondState(w, r)
}

func (h *DashboardHandler) respondState(w http.ResponseWriter, r *http.Request) {
	state, err := h.Dashboard.State(r.Context())
	if err != nil {
		status, msg := commandErrorStatus(err)
		writeError(w, status, msg)
		return
	}
	writeSuccess(w, state)
}

func commandErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, dashboard.ErrNoSuchSuggestion):
		return http.StatusNotFound, "No such suggestion"
	case errors.Is(err, dashboard.ErrNoSuchNotification):
		return http.StatusNotFound, "No such notification"
	case errors.Is(err, model.ErrUnknownUnits):
		return http.StatusBadRequest, "Invalid 'units', expected metric or imperial"
	case errors.Is(err, dashboard.ErrStopped):
		return http.StatusServiceUnavailable, "Dashboard is not running"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable, "Request cancelled"
	}
	return http.StatusInternalServerError, "Failed to update dashboard"
}
