package geo

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversine(t *testing.T) {
	t.Parallel()

	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.Equal(t, 0.0, Haversine(12.9716, 77.5946, 12.9716, 77.5946))
	})

	t.Run("known city pair", func(t *testing.T) {
		// Bengaluru to Chennai, roughly 290 km great-circle.
		d := Haversine(12.9716, 77.5946, 13.0827, 80.2707)
		assert.InDelta(t, 290000, d, 5000)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Haversine(10, 20, 30, 40)
		b := Haversine(30, 40, 10, 20)
		assert.InDelta(t, a, b, 1e-9)
	})
}

func TestHaversineCalculator(t *testing.T) {
	t.Parallel()

	calc := NewHaversineCalculator()
	d, err := calc.Distance(context.Background(), Point{Lat: 12.9716, Lon: 77.5946}, Point{Lat: 12.9716, Lon: 77.5946})
	assert.NoError(t, err)
	assert.Equal(t, 0.0, d)
}
