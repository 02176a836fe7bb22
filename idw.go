// Package idw rasterizes sparse geolocated scalar samples into RGBA images
// using inverse distance weighting.
package idw

import (
	"errors"
	"fmt"
)

// Errors surfaced by renderer construction and rendering. The transport layer
// maps these to client errors.
var (
	ErrInvalidDimensions = errors.New("invalid dimensions")
	ErrInvalidBounds     = errors.New("invalid bounds")
	ErrNoPoints          = errors.New("no sample points")
	ErrInvalidGradient   = errors.New("invalid gradient")
	ErrInvalidExponent   = errors.New("invalid exponent")
)

// A Point is a geolocated scalar sample. Duplicate locations are permitted
// and contribute independently to the weighted sum.
type Point struct {
	Lat   float64
	Lng   float64
	Value float64
}

// A Bounds is the geographic extent covered by a raster, north-up: the top
// pixel row maps to MaxLat.
type Bounds struct {
	MinLat float64 `json:"minLat"`
	MinLng float64 `json:"minLng"`
	MaxLat float64 `json:"maxLat"`
	MaxLng float64 `json:"maxLng"`
}

func (b Bounds) validate() error {
	switch {
	case b.MinLat <= -90 || b.MaxLat >= 90:
		// The Mercator projection diverges at the poles.
		return fmt.Errorf("%w: latitudes must be within (-90, 90)", ErrInvalidBounds)
	case b.MinLat >= b.MaxLat:
		return fmt.Errorf("%w: minLat %v >= maxLat %v", ErrInvalidBounds, b.MinLat, b.MaxLat)
	case b.MinLng >= b.MaxLng:
		return fmt.Errorf("%w: minLng %v >= maxLng %v", ErrInvalidBounds, b.MinLng, b.MaxLng)
	default:
		return nil
	}
}
