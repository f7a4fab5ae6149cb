package model

import "time"

// ForecastRecord is the normalized, display-ready snapshot for one location.
// It is replaced wholesale on each successful fetch.
type ForecastRecord struct {
	Name        string          `json:"name"`
	Country     string          `json:"country"`
	Latitude    float64         `json:"latitude"`
	Longitude   float64         `json:"longitude"`
	Temperature float64         `json:"temperature"`
	FeelsLike   float64         `json:"feelsLike"`
	TempMin     float64         `json:"tempMin"`
	TempMax     float64         `json:"tempMax"`
	Description string          `json:"description"`
	Details     string          `json:"details"`
	Icon        string          `json:"icon"`
	IconURL     string          `json:"iconUrl"`
	Humidity    int             `json:"humidity"`
	WindSpeed   float64         `json:"windSpeed"`
	Sunrise     time.Time       `json:"sunrise"`
	Sunset      time.Time       `json:"sunset"`
	ObservedAt  time.Time       `json:"observedAt"`
	Timezone    string          `json:"timezone"`
	LocalTime   string          `json:"localTime"`
	Units       UnitSystem      `json:"units"`
	TempSymbol  string          `json:"tempSymbol"`
	SpeedUnit   string          `json:"speedUnit"`
	Hourly      []ForecastEntry `json:"hourly"`
	Daily       []ForecastEntry `json:"daily"`
}

// ForecastEntry is one hourly or daily item.
type ForecastEntry struct {
	Time        time.Time `json:"time"`
	Title       string    `json:"title"`
	Temperature float64   `json:"temperature"`
	Icon        string    `json:"icon"`
	IconURL     string    `json:"iconUrl"`
}

const (
	hourlyTitleLayout = "03:04 PM"
	dailyTitleLayout  = "Mon"
	localTimeLayout   = "Monday, 02 Jan 2006 | Local time: 03:04 PM"
)

// IconURL returns the provider's image URL for an icon code.
func IconURL(code string) string {
	if code == "" {
		return ""
	}
	return "https://openweathermap.org/img/wn/" + code + "@2x.png"
}

// Localize sets the timezone and recomputes every local-time label.
// Unknown zones fall back to UTC.
func (r *ForecastRecord) Localize(tz string) {
	loc, err := time.LoadLocation(tz)
	if err != nil || tz == "" {
		loc = time.UTC
		tz = "UTC"
	}
	r.Timezone = tz
	if !r.ObservedAt.IsZero() {
		r.LocalTime = r.ObservedAt.In(loc).Format(localTimeLayout)
	}
	for i := range r.Hourly {
		r.Hourly[i].Title = r.Hourly[i].Time.In(loc).Format(hourlyTitleLayout)
	}
	for i := range r.Daily {
		r.Daily[i].Title = r.Daily[i].Time.In(loc).Format(dailyTitleLayout)
	}
}
