package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidQuery = errors.New("invalid location query")
	ErrUnknownUnits = errors.New("unknown unit system")
)

// UnitSystem selects the provider's unit scope for temperature and wind speed.
type UnitSystem string

const (
	Metric   UnitSystem = "metric"
	Imperial UnitSystem = "imperial"
)

// ParseUnitSystem accepts "metric" or "imperial" in any case. An empty string yields Metric.
func ParseUnitSystem(s string) (UnitSystem, error) {
	switch UnitSystem(strings.ToLower(strings.TrimSpace(s))) {
	case "", Metric:
		return Metric, nil
	case Imperial:
		return Imperial, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownUnits, s)
}

func (u UnitSystem) TemperatureSymbol() string {
	if u == Imperial {
		return "°F"
	}
	return "°C"
}

func (u UnitSystem) SpeedUnit() string {
	if u == Imperial {
		return "mph"
	}
	return "m/s"
}

// LocationQuery is either a city name or a coordinate pair, never both.
type LocationQuery struct {
	CityName  string   `json:"cityName,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`
}

func ByCity(name string) LocationQuery {
	return LocationQuery{CityName: strings.TrimSpace(name)}
}

func ByCoordinates(lat, lon float64) LocationQuery {
	return LocationQuery{Latitude: &lat, Longitude: &lon}
}

// IsCoordinates reports whether the coordinate shape is the active one.
func (q LocationQuery) IsCoordinates() bool {
	return q.Latitude != nil && q.Longitude != nil
}

func (q LocationQuery) Validate() error {
	hasCoords := q.Latitude != nil || q.Longitude != nil
	switch {
	case q.CityName != "" && hasCoords:
		return fmt.Errorf("%w: both city name and coordinates set", ErrInvalidQuery)
	case q.CityName != "":
		return nil
	case !q.IsCoordinates():
		return fmt.Errorf("%w: missing city name or coordinates", ErrInvalidQuery)
	case *q.Latitude < -90 || *q.Latitude > 90:
		return fmt.Errorf("%w: latitude %f out of range", ErrInvalidQuery, *q.Latitude)
	case *q.Longitude < -180 || *q.Longitude > 180:
		return fmt.Errorf("%w: longitude %f out of range", ErrInvalidQuery, *q.Longitude)
	}
	return nil
}

// Equal compares by value, not by pointer identity.
func (q LocationQuery) Equal(o LocationQuery) bool {
	if q.CityName != o.CityName || q.IsCoordinates() != o.IsCoordinates() {
		return false
	}
	if !q.IsCoordinates() {
		return true
	}
	return *q.Latitude == *o.Latitude && *q.Longitude == *o.Longitude
}

func (q LocationQuery) String() string {
	if q.IsCoordinates() {
		return fmt.Sprintf("%.4f,%.4f", *q.Latitude, *q.Longitude)
	}
	return q.CityName
}
