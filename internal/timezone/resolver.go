package timezone

import (
	"fmt"
	"sync"

	"github.com/ringsaturn/tzf"
)

// Resolver maps coordinates to an IANA timezone name.
type Resolver interface {
	Resolve(latitude, longitude float64) (string, error)
}

type resolver struct {
	finder tzf.F
}

var (
	instance *resolver
	initErr  error
	once     sync.Once
)

// NewResolver returns the shared tzf-backed resolver. The finder holds the
// timezone polygons in memory, so it is built once per process.
func NewResolver() (Resolver, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = &resolver{finder: finder}
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

func (r *resolver) Resolve(latitude, longitude float64) (string, error) {
	name := r.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return "", fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", latitude, longitude)
	}
	return name, nil
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(latitude, longitude float64) (string, error)

func (f ResolverFunc) Resolve(latitude, longitude float64) (string, error) {
	return f(latitude, longitude)
}
