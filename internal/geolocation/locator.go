// Package geolocation abstracts the device position capability.
package geolocation

import (
	"context"
	"errors"
)

// ErrGeolocationUnavailable means the platform denied or lacks the capability.
var ErrGeolocationUnavailable = errors.New("geolocation unavailable")

// Locator reports the device coordinates.
type Locator interface {
	Locate(ctx context.Context) (latitude, longitude float64, err error)
}

// LocatorFunc adapts a function to Locator.
type LocatorFunc func(ctx context.Context) (float64, float64, error)

func (f LocatorFunc) Locate(ctx context.Context) (float64, float64, error) {
	return f(ctx)
}

// Fixed returns coordinates reported by the client device.
func Fixed(latitude, longitude float64) Locator {
	return LocatorFunc(func(ctx context.Context) (float64, float64, error) {
		if err := ctx.Err(); err != nil {
			return 0, 0, err
		}
		return latitude, longitude, nil
	})
}

// Unavailable is a Locator for platforms without the capability.
var Unavailable Locator = LocatorFunc(func(context.Context) (float64, float64, error) {
	return 0, 0, ErrGeolocationUnavailable
})
