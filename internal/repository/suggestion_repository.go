package repository

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/fakhrymubarak/weather-dashboard/internal/config"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

const nominatim = "nominatim"

// MaxSuggestions caps the candidates requested from and returned by the geocoder.
const MaxSuggestions = 5

// SuggestionRepository looks up city candidates for a partial name.
type SuggestionRepository interface {
	Search(ctx context.Context, partial string) ([]model.Place, error)
}

type suggestionRepository struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
}

func NewSuggestionRepository(httpClient ...*http.Client) SuggestionRepository {
	client := defaultHTTPClient()
	if len(httpClient) > 0 && httpClient[0] != nil {
		client = httpClient[0]
	}
	return &suggestionRepository{
		httpClient: client,
		baseURL:    config.GetGeocodingApiUrl(),
		userAgent:  config.GetGeocodingUserAgent(),
	}
}

// Search returns at most MaxSuggestions places in provider relevance order.
// Blank input yields no places and no request.
func (r *suggestionRepository) Search(ctx context.Context, partial string) ([]model.Place, error) {
	partial = strings.TrimSpace(partial)
	if partial == "" {
		return []model.Place{}, nil
	}

	params := url.Values{}
	params.Set("q", partial)
	params.Set("format", "json")
	params.Set("limit", strconv.Itoa(MaxSuggestions))

	header := http.Header{}
	if r.userAgent != "" {
		header.Set("User-Agent", r.userAgent)
	}

	var resp []model.NominatimPlace
	if err := getJSON(ctx, r.httpClient, nominatim, "search", r.baseURL, params, header, &resp); err != nil {
		return nil, err
	}

	places := make([]model.Place, 0, min(len(resp), MaxSuggestions))
	for _, c := range resp {
		if len(places) == MaxSuggestions {
			break
		}
		p, ok := toPlace(c)
		if !ok {
			continue
		}
		places = append(places, p)
	}
	return places, nil
}

// toPlace takes the first display_name component as the city name.
func toPlace(c model.NominatimPlace) (model.Place, bool) {
	name := strings.TrimSpace(strings.Split(c.DisplayName, ",")[0])
	if name == "" {
		return model.Place{}, false
	}
	lat, err := strconv.ParseFloat(c.Lat, 64)
	if err != nil {
		return model.Place{}, false
	}
	lon, err := strconv.ParseFloat(c.Lon, 64)
	if err != nil {
		return model.Place{}, false
	}
	return model.Place{CityName: name, Latitude: lat, Longitude: lon}, true
}
