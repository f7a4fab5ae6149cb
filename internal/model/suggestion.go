package model

// Place is a geocoding candidate as returned by the provider, before decoration.
type Place struct {
	CityName  string  `json:"cityName"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// SuggestionEntry is one autocomplete candidate. IsFavorite is a local decoration.
type SuggestionEntry struct {
	CityName   string  `json:"cityName"`
	IsFavorite bool    `json:"isFavorite"`
	Latitude   float64 `json:"latitude"`
	Longitude  float64 `json:"longitude"`
}

func (s SuggestionEntry) Query() LocationQuery {
	return ByCoordinates(s.Latitude, s.Longitude)
}
