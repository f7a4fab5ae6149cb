package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/dashboard"
	"github.com/fakhrymubarak/weather-dashboard/internal/geolocation"
	"github.com/fakhrymubarak/weather-dashboard/internal/handler"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWeather struct{}

func (stubWeather) GetForecast(ctx context.Context, q model.LocationQuery, units model.UnitSystem) (*model.ForecastRecord, error) {
	return &model.ForecastRecord{Name: q.String(), Country: "IN", Units: units}, nil
}

type stubSuggestions struct{}

func (stubSuggestions) Suggest(ctx context.Context, partial string) []model.SuggestionEntry {
	return []model.SuggestionEntry{{CityName: "Paris", Latitude: 48.8566, Longitude: 2.3522}}
}

type stoppedDashboard struct{}

func (stoppedDashboard) State(context.Context) (dashboard.State, error) {
	return dashboard.State{}, dashboard.ErrStopped
}
func (stoppedDashboard) Input(context.Context, string) error                    { return dashboard.ErrStopped }
func (stoppedDashboard) Submit(context.Context) error                           { return dashboard.ErrStopped }
func (stoppedDashboard) SelectSuggestion(context.Context, int) error            { return dashboard.ErrStopped }
func (stoppedDashboard) Geolocate(context.Context, geolocation.Locator) error   { return dashboard.ErrStopped }
func (stoppedDashboard) ToggleFavorite(context.Context) error                   { return dashboard.ErrStopped }
func (stoppedDashboard) SetUnits(context.Context, model.UnitSystem) error       { return dashboard.ErrStopped }
func (stoppedDashboard) ToggleDarkMode(context.Context) error                   { return dashboard.ErrStopped }
func (stoppedDashboard) DismissNotification(context.Context, string) error      { return dashboard.ErrStopped }

func testRouter() http.Handler {
	return newRouter(
		handler.NewWeatherHandler(stubWeather{}, stubSuggestions{}),
		handler.NewDashboardHandler(stoppedDashboard{}),
	)
}

func TestRouterRoutes(t *testing.T) {
	server := httptest.NewServer(testRouter())
	defer server.Close()

	tests := []struct {
		method string
		path   string
		want   int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/weather?location=kolkata", http.StatusOK},
		{http.MethodGet, "/weather", http.StatusBadRequest},
		{http.MethodGet, "/suggest?q=par", http.StatusOK},
		{http.MethodGet, "/api/state", http.StatusServiceUnavailable},
		{http.MethodPost, "/api/search/submit", http.StatusServiceUnavailable},
		{http.MethodGet, "/nope", http.StatusNotFound},
	}
	for _, tt := range tests {
		req, err := http.NewRequest(tt.method, server.URL+tt.path, nil)
		require.NoError(t, err)
		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, tt.want, resp.StatusCode, "%s %s", tt.method, tt.path)
	}
}

func TestNewServer(t *testing.T) {
	srv := newServer(http.NotFoundHandler())

	assert.Equal(t, ":"+config.GetServerPort(), srv.Addr)
	assert.Equal(t, 15*time.Second, srv.ReadHeaderTimeout)
	assert.Equal(t, 15*time.Second, srv.ReadTimeout)
	assert.Equal(t, 10*time.Second, srv.WriteTimeout)
	assert.Equal(t, 30*time.Second, srv.IdleTimeout)
}

func TestEnvironmentVariables(t *testing.T) {
	// Test default port behavior
	port := config.GetServerPort()
	if port != "8080" {
		t.Errorf("Expected default port 8080, got %s", port)
	}
}

func BenchmarkRouter(b *testing.B) {
	h := testRouter()
	for i := 0; i < b.N; i++ {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	}
}
