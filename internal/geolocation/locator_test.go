package geolocation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFixed(t *testing.T) {
	lat, lon, err := Fixed(48.85, 2.35).Locate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 48.85, lat)
	assert.Equal(t, 2.35, lon)
}

func TestFixed_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := Fixed(1, 2).Locate(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUnavailable(t *testing.T) {
	_, _, err := Unavailable.Locate(context.Background())
	assert.ErrorIs(t, err, ErrGeolocationUnavailable)
}
