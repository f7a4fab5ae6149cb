package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
	"github.com/fakhrymubarak/weather-dashboard/internal/repository"
	"github.com/fakhrymubarak/weather-dashboard/internal/service"
	"github.com/fakhrymubarak/weather-dashboard/internal/storage"
)

// WeatherHandler serves stateless forecast and suggestion lookups.
type WeatherHandler struct {
	WeatherService    service.WeatherServiceInterface
	SuggestionService service.SuggestionServiceInterface
}

func NewWeatherHandler(weather service.WeatherServiceInterface, suggestions ...service.SuggestionServiceInterface) *WeatherHandler {
	if weather == nil {
		weather = service.NewWeatherService()
	}
	var suggestionService service.SuggestionServiceInterface
	if len(suggestions) > 0 && suggestions[0] != nil {
		suggestionService = suggestions[0]
	} else {
		suggestionService = service.NewSuggestionService(storage.NewFavoritesStore(storage.NewMemoryStore()))
	}
	return &WeatherHandler{
		WeatherService:    weather,
		SuggestionService: suggestionService,
	}
}

func (h *WeatherHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}
	writeSuccess(w, map[string]string{"status": "ok"})
}

// HandleWeather answers GET /weather?location=<city> or ?lat=&lon=, with optional units.
func (h *WeatherHandler) HandleWeather(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	query, err := parseLocationQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	units, err := model.ParseUnitSystem(r.URL.Query().Get("units"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid 'units' query parameter, expected metric or imperial")
		return
	}

	forecast, err := h.WeatherService.GetForecast(r.Context(), query, units)
	if err != nil {
		config.GetLogger().Warnw("Failed to fetch weather data", "query", query.String(), "units", units, "error", err)
		switch {
		case errors.Is(err, repository.ErrLocationNotFound):
			writeError(w, http.StatusNotFound, "Location not found")
		default:
			writeError(w, http.StatusBadGateway, "Failed to fetch weather data")
		}
		return
	}

	writeSuccess(w, forecast)
}

// HandleSuggest answers GET /suggest?q=<partial>. Provider failures yield an empty list.
func (h *WeatherHandler) HandleSuggest(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet) {
		return
	}

	partial := strings.TrimSpace(r.URL.Query().Get("q"))
	if partial == "" {
		writeError(w, http.StatusBadRequest, "Missing 'q' query parameter")
		return
	}

	writeSuccess(w, h.SuggestionService.Suggest(r.Context(), partial))
}

func parseLocationQuery(r *http.Request) (model.LocationQuery, error) {
	params := r.URL.Query()
	location := strings.TrimSpace(params.Get("location"))
	rawLat, rawLon := params.Get("lat"), params.Get("lon")

	switch {
	case location != "" && (rawLat != "" || rawLon != ""):
		return model.LocationQuery{}, errors.New("Use either 'location' or 'lat' and 'lon', not both")
	case location != "":
		return model.ByCity(location), nil
	case rawLat == "" && rawLon == "":
		return model.LocationQuery{}, errors.New("Missing 'location' query parameter")
	}

	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil {
		return model.LocationQuery{}, errors.New("Invalid 'lat' query parameter")
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil {
		return model.LocationQuery{}, errors.New("Invalid 'lon' query parameter")
	}
	q := model.ByCoordinates(lat, lon)
	if err := q.Validate(); err != nil {
		return model.LocationQuery{}, errors.New("Coordinates out of range")
	}
	return q, nil
}
