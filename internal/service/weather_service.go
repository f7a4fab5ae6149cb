package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/repository"
	"github.com/fakhrymubarak/weather-dashboard/internal/timezone"
	"go.uber.org/zap"
)

var ErrWeatherService = errors.New("weather service error")

// WeatherServiceInterface is the Weather Data Adapter as seen by the dashboard and handlers.
type WeatherServiceInterface interface {
	GetForecast(ctx context.Context, query model.LocationQuery, units model.UnitSystem) (*model.ForecastRecord, error)
}

type WeatherService struct {
	WeatherRepo repository.WeatherRepository
	// Zones fills in the timezone when the provider omits it. Built lazily when nil.
	Zones  timezone.Resolver
	Logger *zap.SugaredLogger

	zonesOnce sync.Once
}

func NewWeatherService(repo ...repository.WeatherRepository) *WeatherService {
	var weatherRepo repository.WeatherRepository
	if len(repo) > 0 && repo[0] != nil {
		weatherRepo = repo[0]
	} else {
		weatherRepo = repository.NewWeatherRepository()
	}
	return &WeatherService{
		WeatherRepo: weatherRepo,
		Logger:      config.GetLogger(),
	}
}

// GetForecast returns a normalized record whose values are in the requested unit system.
// Provider errors are returned as-is so callers can inspect the ProviderError.
func (s *WeatherService) GetForecast(ctx context.Context, query model.LocationQuery, units model.UnitSystem) (*model.ForecastRecord, error) {
	if s.WeatherRepo == nil {
		return nil, fmt.Errorf("%w: no repository configured", ErrWeatherService)
	}
	rec, err := s.WeatherRepo.GetForecast(ctx, query, units)
	if err != nil {
		return nil, err
	}
	if rec.Timezone == "" {
		rec.Localize(s.resolveZone(rec.Latitude, rec.Longitude))
	}
	return rec, nil
}

// resolveZone returns "" (UTC) when no zone can be determined.
func (s *WeatherService) resolveZone(lat, lon float64) string {
	s.zonesOnce.Do(func() {
		if s.Zones != nil {
			return
		}
		zones, err := timezone.NewResolver()
		if err != nil {
			s.logger().Warnw("Timezone resolver unavailable", "error", err)
			return
		}
		s.Zones = zones
	})
	if s.Zones == nil {
		return ""
	}
	tz, err := s.Zones.Resolve(lat, lon)
	if err != nil {
		s.logger().Warnw("Timezone lookup failed, using UTC", "lat", lat, "lon", lon, "error", err)
		return ""
	}
	return tz
}

func (s *WeatherService) logger() *zap.SugaredLogger {
	if s.Logger == nil {
		return config.GetLogger()
	}
	return s.Logger
}
