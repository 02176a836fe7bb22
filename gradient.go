package idw

import (
	"cmp"
	"fmt"
	"image/color"
	"math"
	"slices"
	"strconv"
)

// A Stop is one position/color pair of a gradient specification. Positions
// must lie within [0, 1].
type Stop struct {
	Position float64
	Color    color.RGBA
}

// A Lookup is a dense 256-entry color table built from gradient stops by
// piecewise-linear RGB interpolation. It is immutable after construction, so
// a single Lookup may be shared across concurrent renders.
type Lookup struct {
	table [256]color.RGBA
}

// NewLookup builds a lookup table from stops. Stops need not be sorted. When
// two stops share a position, the last declared wins.
func NewLookup(stops []Stop) (*Lookup, error) {
	normalized, err := normalizeStops(stops)
	if err != nil {
		return nil, err
	}
	return newLookup(normalized), nil
}

// At returns the color at table index i, clamped to [0, 255].
func (l *Lookup) At(i int) color.RGBA {
	if i < 0 {
		i = 0
	} else if i > 255 {
		i = 255
	}
	return l.table[i]
}

// Background returns the color interpolated values fade toward, which is the
// color at the lowest stop.
func (l *Lookup) Background() color.RGBA {
	return l.table[0]
}

// normalizeStops validates stops, sorts them ascending by position, and drops
// all but the last declared of any stops sharing a position.
func normalizeStops(stops []Stop) ([]Stop, error) {
	if len(stops) == 0 {
		return nil, fmt.Errorf("%w: no stops", ErrInvalidGradient)
	}
	for _, stop := range stops {
		if math.IsNaN(stop.Position) || stop.Position < 0 || stop.Position > 1 {
			return nil, fmt.Errorf("%w: stop position %v outside [0, 1]", ErrInvalidGradient, stop.Position)
		}
	}
	sorted := slices.Clone(stops)
	slices.SortStableFunc(sorted, func(a, b Stop) int {
		return cmp.Compare(a.Position, b.Position)
	})
	normalized := sorted[:0]
	for _, stop := range sorted {
		if n := len(normalized); n > 0 && normalized[n-1].Position == stop.Position {
			normalized[n-1] = stop
		} else {
			normalized = append(normalized, stop)
		}
	}
	return normalized, nil
}

// newLookup builds the table from already-normalized stops.
func newLookup(stops []Stop) *Lookup {
	var l Lookup
	for i := range l.table {
		t := float64(i) / 255
		// First stop at or beyond t.
		j := 0
		for j < len(stops) && stops[j].Position < t {
			j++
		}
		switch {
		case j == len(stops):
			l.table[i] = stops[len(stops)-1].Color
		case j == 0:
			l.table[i] = stops[0].Color
		default:
			prev, next := stops[j-1], stops[j]
			f := (t - prev.Position) / (next.Position - prev.Position)
			l.table[i] = lerpRGB(prev.Color, next.Color, f)
		}
	}
	return &l
}

func lerpRGB(a, b color.RGBA, f float64) color.RGBA {
	return color.RGBA{
		R: uint8(math.Round(float64(a.R) + f*(float64(b.R)-float64(a.R)))),
		G: uint8(math.Round(float64(a.G) + f*(float64(b.G)-float64(a.G)))),
		B: uint8(math.Round(float64(a.B) + f*(float64(b.B)-float64(a.B)))),
		A: 0xff,
	}
}

// ParseHexColor parses a #rgb or #rrggbb color.
func ParseHexColor(s string) (color.RGBA, error) {
	var hex string
	switch {
	case len(s) == 4 && s[0] == '#':
		hex = string([]byte{s[1], s[1], s[2], s[2], s[3], s[3]})
	case len(s) == 7 && s[0] == '#':
		hex = s[1:]
	default:
		return color.RGBA{}, fmt.Errorf("%w: bad color %q", ErrInvalidGradient, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: bad color %q", ErrInvalidGradient, s)
	}
	return color.RGBA{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
		A: 0xff,
	}, nil
}
