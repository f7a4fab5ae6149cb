package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/dashboard"
	"github.com/fakhrymubarak/weather-dashboard/internal/handler"
	"github.com/fakhrymubarak/weather-dashboard/internal/middleware"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/notify"
	"github.com/fakhrymubarak/weather-dashboard/internal/service"
	"github.com/fakhrymubarak/weather-dashboard/internal/storage"
)

func main() {
	logger := config.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		logger.Fatalw("Weather dashboard stopped with error", "error", err)
	}
}

func run(ctx context.Context) error {
	logger := config.GetLogger()

	openCtx, openCancel := context.WithTimeout(ctx, 5*time.Second)
	store, err := storage.Open(openCtx, config.GetStoreDriver())
	openCancel()
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warnw("Failed to close store", "error", err)
		}
	}()

	favorites := storage.NewFavoritesStore(store)
	weatherService := service.NewWeatherService()
	suggestionService := service.NewSuggestionService(favorites)

	units, err := model.ParseUnitSystem(config.GetDefaultUnits())
	if err != nil {
		logger.Warnw("Invalid default units, using metric", "error", err)
		units = model.Metric
	}
	dash := dashboard.New(dashboard.Options{
		Weather:      weatherService,
		Suggestions:  suggestionService,
		Favorites:    favorites,
		Theme:        storage.NewThemeStore(store),
		Notifier:     notify.NewCenter(config.GetNotificationTTL()),
		Logger:       logger,
		InitialQuery: model.ByCity(config.GetDefaultCity()),
		InitialUnits: units,
	})

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	dashDone := make(chan error, 1)
	go func() { dashDone <- dash.Run(runCtx) }()

	srv := newServer(newRouter(
		handler.NewWeatherHandler(weatherService, suggestionService),
		handler.NewDashboardHandler(dash),
	))

	srvErr := make(chan error, 1)
	go func() {
		logger.Infow("Weather dashboard listening", "addr", srv.Addr, "store", config.GetStoreDriver())
		srvErr <- srv.ListenAndServe()
	}()

	select {
	case err = <-srvErr:
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
	case <-runCtx.Done():
		logger.Infow("Shutting down")
		shutdownCtx, done := context.WithTimeout(context.Background(), 10*time.Second)
		defer done()
		err = srv.Shutdown(shutdownCtx)
	}

	cancel()
	if dashErr := <-dashDone; dashErr != nil && err == nil {
		err = dashErr
	}
	return err
}

func newRouter(weather *handler.WeatherHandler, dash *handler.DashboardHandler) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", weather.HandleHealth)
	mux.HandleFunc("/weather", weather.HandleWeather)
	mux.HandleFunc("/suggest", weather.HandleSuggest)
	dash.Register(mux)
	return middleware.Recoverer(middleware.RequestLogger(mux))
}

func newServer(h http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + config.GetServerPort(),
		Handler:           h,
		ReadHeaderTimeout: config.GetServerTimeoutDuration("read_header_timeout", 15*time.Second),
		ReadTimeout:       config.GetServerTimeoutDuration("read_timeout", 15*time.Second),
		WriteTimeout:      config.GetServerTimeoutDuration("write_timeout", 10*time.Second),
		IdleTimeout:       config.GetServerTimeoutDuration("idle_timeout", 30*time.Second),
	}
}
