package idw_test

import (
	"math"
	"testing"

	"github.com/alecthomas/assert/v2"

	idw "github.com/KhangMBui/inverse-distance-weighting-microservice"
)

var testBounds = idw.Bounds{MinLat: 0, MinLng: 0, MaxLat: 10, MaxLng: 10}

func assertInDelta(t *testing.T, expected, actual, delta float64) {
	t.Helper()
	assert.True(t, math.Abs(expected-actual) <= delta)
}

func TestPixelToLatLng(t *testing.T) {
	for _, tc := range []struct {
		x           float64
		y           float64
		expectedLat float64
		expectedLng float64
	}{
		{x: 0, y: 0, expectedLat: 10, expectedLng: 0},
		{x: 100, y: 0, expectedLat: 10, expectedLng: 10},
		{x: 0, y: 100, expectedLat: 0, expectedLng: 0},
		{x: 100, y: 100, expectedLat: 0, expectedLng: 10},
		{x: 50, y: 0, expectedLat: 10, expectedLng: 5},
	} {
		lat, lng := idw.PixelToLatLng(tc.x, tc.y, 100, 100, testBounds)
		assertInDelta(t, tc.expectedLat, lat, 1e-9)
		assertInDelta(t, tc.expectedLng, lng, 1e-9)
	}
}

func TestPixelToLatLngMercatorRows(t *testing.T) {
	// Mercator stretches rows away from the equator, so in a
	// north-of-equator bounds the vertical midpoint maps above the linear
	// midpoint latitude.
	lat, _ := idw.PixelToLatLng(50, 50, 100, 100, testBounds)
	assert.True(t, lat > 5)
	assert.True(t, lat < 5.1)
}

func TestPixelRoundTrip(t *testing.T) {
	bounds := idw.Bounds{MinLat: -35, MinLng: -120, MaxLat: 48, MaxLng: 31}
	for _, tc := range []struct {
		x float64
		y float64
	}{
		{x: 0, y: 0},
		{x: 256, y: 256},
		{x: 17, y: 193},
		{x: 128.5, y: 64.25},
		{x: 255, y: 1},
	} {
		lat, lng := idw.PixelToLatLng(tc.x, tc.y, 256, 256, bounds)
		x, y := idw.LatLngToPixel(lat, lng, 256, 256, bounds)
		assertInDelta(t, tc.x, x, 1e-9)
		assertInDelta(t, tc.y, y, 1e-9)
	}
}
