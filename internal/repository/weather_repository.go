package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

const openWeatherMap = "openweathermap"

// WeatherRepository defines the interface for weather data access
type WeatherRepository interface {
	GetForecast(ctx context.Context, query model.LocationQuery, units model.UnitSystem) (*model.ForecastRecord, error)
}

// weatherRepository implements WeatherRepository against OpenWeatherMap
type weatherRepository struct {
	httpClient *http.Client
	baseURL    string
	apiKey     func() string
}

// NewWeatherRepository creates a new weather repository instance
func NewWeatherRepository(httpClient ...*http.Client) WeatherRepository {
	client := defaultHTTPClient()
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &weatherRepository{
		httpClient: client,
		baseURL:    config.GetOpenWeatherApiUrl(),
		apiKey:     config.GetOpenWeatherMapAPIKey,
	}
}

// GetForecast fetches current conditions and the hourly/daily forecast, then flattens them.
// No retry is attempted.
func (r *weatherRepository) GetForecast(ctx context.Context, query model.LocationQuery, units model.UnitSystem) (*model.ForecastRecord, error) {
	if err := query.Validate(); err != nil {
		return nil, &ProviderError{Provider: openWeatherMap, Op: "weather", Err: fmt.Errorf("%w: %w", ErrExternalAPI, err)}
	}
	apiKey := r.apiKey()
	if apiKey == "" {
		return nil, &ProviderError{Provider: openWeatherMap, Op: "weather", Err: ErrAPIKeyMissing}
	}
	if units == "" {
		units = model.Metric
	}

	params := url.Values{}
	if query.IsCoordinates() {
		params.Set("lat", formatCoord(*query.Latitude))
		params.Set("lon", formatCoord(*query.Longitude))
	} else {
		params.Set("q", query.CityName)
	}
	params.Set("units", string(units))
	params.Set("appid", apiKey)

	var current model.OpenWeatherMapResponse
	if err := getJSON(ctx, r.httpClient, openWeatherMap, "weather", r.baseURL+"/weather", params, nil, &current); err != nil {
		return nil, err
	}
	if current.Coord == nil {
		return nil, &ProviderError{Provider: openWeatherMap, Op: "weather", Err: fmt.Errorf("%w: missing coordinates", ErrMalformedPayload)}
	}

	fcParams := url.Values{}
	fcParams.Set("lat", formatCoord(current.Coord.Lat))
	fcParams.Set("lon", formatCoord(current.Coord.Lon))
	fcParams.Set("exclude", "current,minutely,alerts")
	fcParams.Set("units", string(units))
	fcParams.Set("appid", apiKey)

	var forecast model.OpenWeatherMapOneCall
	if err := getJSON(ctx, r.httpClient, openWeatherMap, "onecall", r.baseURL+"/onecall", fcParams, nil, &forecast); err != nil {
		return nil, err
	}

	return normalizeForecast(&current, &forecast, units), nil
}

// normalizeForecast flattens both payloads. Hourly and daily arrays pass through in provider order.
func normalizeForecast(cur *model.OpenWeatherMapResponse, fc *model.OpenWeatherMapOneCall, units model.UnitSystem) *model.ForecastRecord {
	rec := &model.ForecastRecord{
		Name:        cur.Name,
		Country:     cur.Sys.Country,
		Latitude:    cur.Coord.Lat,
		Longitude:   cur.Coord.Lon,
		Temperature: cur.Main.Temp,
		FeelsLike:   cur.Main.FeelsLike,
		TempMin:     cur.Main.TempMin,
		TempMax:     cur.Main.TempMax,
		Humidity:    cur.Main.Humidity,
		WindSpeed:   cur.Wind.Speed,
		Sunrise:     unixUTC(cur.Sys.Sunrise),
		Sunset:      unixUTC(cur.Sys.Sunset),
		ObservedAt:  unixUTC(cur.Dt),
		Units:       units,
		TempSymbol:  units.TemperatureSymbol(),
		SpeedUnit:   units.SpeedUnit(),
		Hourly:      make([]model.ForecastEntry, 0, len(fc.Hourly)),
		Daily:       make([]model.ForecastEntry, 0, len(fc.Daily)),
	}
	if len(cur.Weather) > 0 {
		rec.Description = cur.Weather[0].Description
		rec.Details = cur.Weather[0].Main
		rec.Icon = cur.Weather[0].Icon
		rec.IconURL = model.IconURL(rec.Icon)
	}

	for _, h := range fc.Hourly {
		icon := firstIcon(h.Weather)
		rec.Hourly = append(rec.Hourly, model.ForecastEntry{
			Time:        unixUTC(h.Dt),
			Temperature: h.Temp,
			Icon:        icon,
			IconURL:     model.IconURL(icon),
		})
	}
	for _, d := range fc.Daily {
		icon := firstIcon(d.Weather)
		rec.Daily = append(rec.Daily, model.ForecastEntry{
			Time:        unixUTC(d.Dt),
			Temperature: d.Temp.Day,
			Icon:        icon,
			IconURL:     model.IconURL(icon),
		})
	}

	// without a zone the service resolves one from the coordinates
	if fc.Timezone != "" {
		rec.Localize(fc.Timezone)
	}
	return rec
}

func firstIcon(ws []model.OpenWeatherMapCondition) string {
	if len(ws) == 0 {
		return ""
	}
	return ws[0].Icon
}

func unixUTC(sec int64) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(sec, 0).UTC()
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
