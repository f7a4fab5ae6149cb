package dashboard

import (
	"context"
	"fmt"
	"strings"

	"github.com/fakhrymubarak/weather-dashboard/internal/geolocation"
	"github.com/fakhrymubarak/weather-dashboard/internal/model"
)

// SearchPhase is the state of the search box.
type SearchPhase string

const (
	PhaseIdle       SearchPhase = "idle"
	PhaseSuggesting SearchPhase = "suggesting"
	PhaseSelected   SearchPhase = "selected"
)

const msgNoFavoriteCity = "Can't find a city to add to favorites."

// Input records new search text and requests suggestions for it. Blank text
// clears the list.
func (d *Dashboard) Input(ctx context.Context, text string) error {
	return d.do(ctx, func() error {
		d.input(text)
		return nil
	})
}

// Submit makes the typed text the active query.
func (d *Dashboard) Submit(ctx context.Context) error {
	return d.do(ctx, func() error {
		city := strings.TrimSpace(d.st.text)
		if city == "" {
			return nil
		}
		d.invalidateSuggestions()
		d.st.phase = PhaseIdle
		d.setQuery(model.ByCity(city))
		return nil
	})
}

// SelectSuggestion makes the coordinates of the suggestion at index the active query.
func (d *Dashboard) SelectSuggestion(ctx context.Context, index int) error {
	return d.do(ctx, func() error {
		if index < 0 || index >= len(d.st.suggestions) {
			return fmt.Errorf("%w: index %d of %d", ErrNoSuchSuggestion, index, len(d.st.suggestions))
		}
		picked := d.st.suggestions[index]

		d.invalidateSuggestions()
		d.st.text = picked.CityName
		d.st.suggestions = nil
		d.st.phase = PhaseSelected
		d.setQuery(picked.Query())
		return nil
	})
}

// Geolocate asks loc for the device position and switches to it. A nil loc
// uses the dashboard's default locator. Failures are ignored, as is a position
// that arrives after a newer query was chosen or that matches the active query.
func (d *Dashboard) Geolocate(ctx context.Context, loc geolocation.Locator) error {
	if loc == nil {
		loc = d.locator
	}
	return d.do(ctx, func() error {
		d.st.locateSeq++
		seq := d.st.locateSeq
		runCtx := d.runCtx

		d.spawn(func() {
			lat, lon, err := loc.Locate(runCtx)
			if err != nil {
				d.logger.Debugw("Geolocation unavailable", "error", err)
				return
			}
			q := model.ByCoordinates(lat, lon)
			if err := q.Validate(); err != nil {
				d.logger.Debugw("Geolocation returned an invalid position", "error", err)
				return
			}
			d.post(func() {
				if seq != d.st.locateSeq {
					d.logger.Debugw("Dropping stale geolocation", "seq", seq, "latest", d.st.locateSeq)
					return
				}
				if q.Equal(d.st.query) {
					return
				}
				d.setQuery(q)
			})
		})
		return nil
	})
}

// ToggleFavorite adds or removes the city currently typed in the search box.
func (d *Dashboard) ToggleFavorite(ctx context.Context) error {
	return d.do(ctx, func() error {
		city := strings.TrimSpace(d.st.text)
		if city == "" {
			d.notifier.Error(msgNoFavoriteCity)
			return nil
		}

		added, err := d.favorites.Toggle(d.runCtx, city)
		if err != nil {
			d.logger.Errorw("Failed to persist favorites", "city", city, "error", err)
			d.notifier.Error(fmt.Sprintf("Could not update favorites for %s.", city))
			return err
		}
		if added {
			d.notifier.Success(fmt.Sprintf("%s added to favorites.", city))
		} else {
			d.notifier.Warning(fmt.Sprintf("%s removed from favorites.", city))
		}
		d.redecorate()
		return nil
	})
}

func (d *Dashboard) input(text string) {
	d.st.text = text
	d.invalidateSuggestions()

	partial := strings.TrimSpace(text)
	if partial == "" {
		d.st.phase = PhaseIdle
		d.st.suggestions = nil
		return
	}
	d.st.phase = PhaseSuggesting

	seq := d.st.suggestSeq
	reqCtx, cancel := context.WithCancel(d.runCtx)
	d.st.cancelSuggest = cancel

	d.spawn(func() {
		entries := d.suggestions.Suggest(reqCtx, partial)
		d.post(func() { d.applySuggestions(seq, entries) })
	})
}

func (d *Dashboard) applySuggestions(seq uint64, entries []model.SuggestionEntry) {
	if seq != d.st.suggestSeq || d.st.phase != PhaseSuggesting {
		d.logger.Debugw("Dropping stale suggestions", "seq", seq, "latest", d.st.suggestSeq)
		return
	}
	d.cancelSuggestion()
	d.st.suggestions = entries
}

// invalidateSuggestions cancels the in-flight suggestion request and makes any
// late response stale.
func (d *Dashboard) invalidateSuggestions() {
	d.st.suggestSeq++
	d.cancelSuggestion()
}

func (d *Dashboard) cancelSuggestion() {
	if d.st.cancelSuggest != nil {
		d.st.cancelSuggest()
		d.st.cancelSuggest = nil
	}
}

func (d *Dashboard) redecorate() {
	for i := range d.st.suggestions {
		d.st.suggestions[i].IsFavorite = d.favorites.Contains(d.st.suggestions[i].CityName)
	}
}
