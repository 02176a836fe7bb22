package idw_test

import (
	"image/color"
	"testing"

	"github.com/alecthomas/assert/v2"

	idw "github.com/KhangMBui/inverse-distance-weighting-microservice"
)

var (
	black = color.RGBA{A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	red   = color.RGBA{R: 0xff, A: 0xff}
	blue  = color.RGBA{B: 0xff, A: 0xff}
)

func grayscaleLookup(t *testing.T) *idw.Lookup {
	t.Helper()
	lookup, err := idw.NewLookup([]idw.Stop{
		{Position: 0, Color: black},
		{Position: 1, Color: white},
	})
	assert.NoError(t, err)
	return lookup
}

func TestNewLookupErrors(t *testing.T) {
	for _, tc := range []struct {
		name  string
		stops []idw.Stop
	}{
		{name: "empty", stops: nil},
		{name: "below_zero", stops: []idw.Stop{{Position: -0.1, Color: black}}},
		{name: "above_one", stops: []idw.Stop{{Position: 1.1, Color: black}}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := idw.NewLookup(tc.stops)
			assert.IsError(t, err, idw.ErrInvalidGradient)
		})
	}
}

func TestLookupEndpoints(t *testing.T) {
	lookup := grayscaleLookup(t)
	assert.Equal(t, black, lookup.At(0))
	assert.Equal(t, white, lookup.At(255))
	assert.Equal(t, color.RGBA{R: 128, G: 128, B: 128, A: 0xff}, lookup.At(128))
	assert.Equal(t, black, lookup.Background())
}

func TestLookupClampsOutsideStops(t *testing.T) {
	lookup, err := idw.NewLookup([]idw.Stop{
		{Position: 0.25, Color: red},
		{Position: 0.75, Color: blue},
	})
	assert.NoError(t, err)
	assert.Equal(t, red, lookup.At(0))
	assert.Equal(t, red, lookup.At(63))
	assert.Equal(t, blue, lookup.At(192))
	assert.Equal(t, blue, lookup.At(255))
}

func TestLookupSingleStop(t *testing.T) {
	lookup, err := idw.NewLookup([]idw.Stop{
		{Position: 0.5, Color: red},
	})
	assert.NoError(t, err)
	for i := 0; i < 256; i++ {
		assert.Equal(t, red, lookup.At(i))
	}
}

func TestLookupDuplicatePositionLastWins(t *testing.T) {
	lookup, err := idw.NewLookup([]idw.Stop{
		{Position: 0.5, Color: red},
		{Position: 0.5, Color: blue},
	})
	assert.NoError(t, err)
	assert.Equal(t, blue, lookup.At(0))
	assert.Equal(t, blue, lookup.At(255))
}

func TestLookupAtClampsIndex(t *testing.T) {
	lookup := grayscaleLookup(t)
	assert.Equal(t, lookup.At(0), lookup.At(-1))
	assert.Equal(t, lookup.At(255), lookup.At(256))
}

func TestParseHexColor(t *testing.T) {
	for _, tc := range []struct {
		s        string
		expected color.RGBA
	}{
		{s: "#000000", expected: black},
		{s: "#ffffff", expected: white},
		{s: "#FF0000", expected: red},
		{s: "#00f", expected: blue},
		{s: "#18c", expected: color.RGBA{R: 0x11, G: 0x88, B: 0xcc, A: 0xff}},
	} {
		actual, err := idw.ParseHexColor(tc.s)
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, actual)
	}
}

func TestParseHexColorErrors(t *testing.T) {
	for _, s := range []string{"", "fff", "#ff", "#fffff", "#gggggg", "red"} {
		_, err := idw.ParseHexColor(s)
		assert.IsError(t, err, idw.ErrInvalidGradient)
	}
}
