package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

// State is a point-in-time copy of the dashboard.
type State struct {
	Query              model.LocationQuery     `json:"query"`
	Units              model.UnitSystem        `json:"units"`
	DarkMode           bool                    `json:"darkMode"`
	ThemeGradient      string                  `json:"themeGradient"`
	Background         model.Palette           `json:"background"`
	BackgroundGradient string                  `json:"backgroundGradient"`
	Forecast           *model.ForecastRecord   `json:"forecast,omitempty"`
	Loading            bool                    `json:"loading"`
	LastError          string                  `json:"lastError,omitempty"`
	Text               string                  `json:"text"`
	Phase              SearchPhase             `json:"phase"`
	Suggestions        []model.SuggestionEntry `json:"suggestions"`
	Favorites          []string                `json:"favorites"`
	CurrentIsFavorite  bool                    `json:"currentIsFavorite"`
	Notifications      []model.Notification    `json:"notifications"`
}

// SetUnits switches the unit system and refetches. Selecting the current unit does nothing.
func (d *Dashboard) SetUnits(ctx context.Context, units model.UnitSystem) error {
	units, err := model.ParseUnitSystem(string(units))
	if err != nil {
		return err
	}
	return d.do(ctx, func() error {
		if units == d.st.units {
			return nil
		}
		d.st.units = units
		d.refetch()
		return nil
	})
}

// ToggleDarkMode flips and persists the theme flag.
func (d *Dashboard) ToggleDarkMode(ctx context.Context) error {
	return d.do(ctx, func() error {
		dark, err := d.theme.Toggle(d.runCtx)
		if err != nil {
			d.logger.Errorw("Failed to persist theme", "error", err)
			d.notifier.Error("Could not save the theme setting.")
			return err
		}
		d.st.dark = dark
		return nil
	})
}

// DismissNotification closes an active notification before it expires.
func (d *Dashboard) DismissNotification(ctx context.Context, id string) error {
	return d.do(ctx, func() error {
		if !d.notifier.Dismiss(id) {
			return fmt.Errorf("%w: %s", ErrNoSuchNotification, id)
		}
		return nil
	})
}

func (d *Dashboard) State(ctx context.Context) (State, error) {
	var s State
	err := d.do(ctx, func() error {
		s = d.snapshot()
		return nil
	})
	return s, err
}

func (d *Dashboard) snapshot() State {
	bg := model.BackgroundFor(d.st.forecast, d.st.units)
	s := State{
		Query:              d.st.query,
		Units:              d.st.units,
		DarkMode:           d.st.dark,
		ThemeGradient:      model.ThemeGradient(d.st.dark),
		Background:         bg,
		BackgroundGradient: bg.Gradient(),
		Loading:            d.st.loading,
		LastError:          d.st.lastErr,
		Text:               d.st.text,
		Phase:              d.st.phase,
		Suggestions:        append([]model.SuggestionEntry{}, d.st.suggestions...),
		Favorites:          d.favorites.List(),
		CurrentIsFavorite:  d.favorites.Contains(strings.TrimSpace(d.st.text)),
		Notifications:      d.notifier.Active(),
	}
	if d.st.query.Latitude != nil {
		lat := *d.st.query.Latitude
		s.Query.Latitude = &lat
	}
	if d.st.query.Longitude != nil {
		lon := *d.st.query.Longitude
		s.Query.Longitude = &lon
	}
	if d.st.forecast != nil {
		fc := *d.st.forecast
		fc.Hourly = append([]model.ForecastEntry{}, d.st.forecast.Hourly...)
		fc.Daily = append([]model.ForecastEntry{}, d.st.forecast.Daily...)
		s.Forecast = &fc
	}
	return s
}

// setQuery makes q the active query. A newer query also makes any pending
// geolocation result stale.
func (d *Dashboard) setQuery(q model.LocationQuery) {
	d.st.locateSeq++
	d.st.query = q
	d.refetch()
}

// refetch starts a forecast request for the current query and units,
// superseding any request still in flight.
func (d *Dashboard) refetch() {
	d.st.weatherSeq++
	seq := d.st.weatherSeq
	d.cancelForecast()

	reqCtx, cancel := context.WithCancel(d.runCtx)
	d.st.cancelWeather = cancel
	d.st.loading = true

	q, units := d.st.query, d.st.units
	d.spawn(func() {
		rec, err := d.weather.GetForecast(reqCtx, q, units)
		d.post(func() { d.applyForecast(seq, q, rec, err) })
	})
}

func (d *Dashboard) applyForecast(seq uint64, q model.LocationQuery, rec *model.ForecastRecord, err error) {
	if seq != d.st.weatherSeq {
		d.logger.Debugw("Dropping stale forecast", "query", q.String(), "seq", seq, "latest", d.st.weatherSeq)
		return
	}
	d.cancelForecast()
	d.st.loading = false

	if err != nil {
		d.logger.Warnw("Failed to update weather", "query", q.String(), "error", err)
		d.st.lastErr = err.Error()
		d.notifier.Error(fmt.Sprintf("Failed to update weather for %s.", q.String()))
		return
	}
	d.st.forecast = rec
	d.st.lastErr = ""
	d.notifier.Success(fmt.Sprintf("Weather successfully updated for %s, %s.", rec.Name, rec.Country))
}

func (d *Dashboard) cancelForecast() {
	if d.st.cancelWeather != nil {
		d.st.cancelWeather()
		d.st.cancelWeather = nil
	}
}
