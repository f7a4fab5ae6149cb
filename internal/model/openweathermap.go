package model

// OpenWeatherMapResponse is the provider's current-weather payload.
type OpenWeatherMapResponse struct {
	Name  string `json:"name"`
	Dt    int64  `json:"dt"`
	Coord *struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"coord"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		TempMin   float64 `json:"temp_min"`
		TempMax   float64 `json:"temp_max"`
		Pressure  int     `json:"pressure"`
		Humidity  int     `json:"humidity"`
		SeaLevel  int     `json:"sea_level"`
		GrndLevel int     `json:"grnd_level"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
		Deg   int     `json:"deg"`
	} `json:"wind"`
	Sys struct {
		Country string `json:"country"`
		Sunrise int64  `json:"sunrise"`
		Sunset  int64  `json:"sunset"`
	} `json:"sys"`
	Weather []OpenWeatherMapCondition `json:"weather"`
}

type OpenWeatherMapCondition struct {
	ID          int    `json:"id"`
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// OpenWeatherMapOneCall is the provider's forecast payload with current, minutely and alerts excluded.
type OpenWeatherMapOneCall struct {
	Timezone string `json:"timezone"`
	Hourly   []struct {
		Dt      int64                     `json:"dt"`
		Temp    float64                   `json:"temp"`
		Weather []OpenWeatherMapCondition `json:"weather"`
	} `json:"hourly"`
	Daily []struct {
		Dt   int64 `json:"dt"`
		Temp struct {
			Day float64 `json:"day"`
		} `json:"temp"`
		Weather []OpenWeatherMapCondition `json:"weather"`
	} `json:"daily"`
}

// NominatimPlace is one candidate of a Nominatim search response.
type NominatimPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}
