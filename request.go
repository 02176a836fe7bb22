package idw

import (
	"context"
	"fmt"
	"image"
	"strconv"
)

// A Request is the JSON document accepted by the HTTP endpoint and the
// example CLI. Points are [lat, lng, value] triples; gradient maps stop
// positions to #rrggbb colors. Omitted fields take the renderer defaults,
// except max, which defaults to the largest sample value.
type Request struct {
	Points       [][3]float64      `json:"points"`
	Width        int               `json:"width"`
	Height       int               `json:"height"`
	CellSize     int               `json:"cellSize"`
	Max          *float64          `json:"max"`
	Exp          *float64          `json:"exp"`
	FadeDistance *float64          `json:"fadeDistance"`
	Feather      *bool             `json:"feather"`
	Format       Format            `json:"format"`
	Gradient     map[string]string `json:"gradient"`
	BBox         Bounds            `json:"bbox"`
}

// Stops converts the request's gradient map into gradient stops.
func (req *Request) Stops() ([]Stop, error) {
	if len(req.Gradient) == 0 {
		return nil, fmt.Errorf("%w: no stops", ErrInvalidGradient)
	}
	stops := make([]Stop, 0, len(req.Gradient))
	for position, hex := range req.Gradient {
		pos, err := strconv.ParseFloat(position, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: bad stop position %q", ErrInvalidGradient, position)
		}
		c, err := ParseHexColor(hex)
		if err != nil {
			return nil, err
		}
		stops = append(stops, Stop{Position: pos, Color: c})
	}
	return stops, nil
}

// SamplePoints converts the request's [lat, lng, value] triples to Points.
func (req *Request) SamplePoints() []Point {
	points := make([]Point, len(req.Points))
	for i, p := range req.Points {
		points[i] = Point{Lat: p[0], Lng: p[1], Value: p[2]}
	}
	return points
}

// Render executes the request: it builds the gradient lookup (through cache
// when non-nil), constructs the renderer, and rasterizes the sample points.
// Extra options are applied after the request's own.
func (req *Request) Render(ctx context.Context, cache *LookupCache, extra ...RendererOption) (*image.RGBA, error) {
	stops, err := req.Stops()
	if err != nil {
		return nil, err
	}
	var lookup *Lookup
	if cache != nil {
		lookup, err = cache.Lookup(stops)
	} else {
		lookup, err = NewLookup(stops)
	}
	if err != nil {
		return nil, err
	}

	points := req.SamplePoints()

	options := []RendererOption{WithMax(req.max(points))}
	if req.CellSize != 0 {
		options = append(options, WithCellSize(req.CellSize))
	}
	if req.Exp != nil {
		options = append(options, WithExponent(*req.Exp))
	}
	if req.FadeDistance != nil {
		options = append(options, WithFadeDistance(*req.FadeDistance))
	}
	if req.Feather != nil {
		options = append(options, WithFeather(*req.Feather))
	}
	options = append(options, extra...)

	renderer, err := NewRenderer(req.Width, req.Height, req.BBox, lookup, options...)
	if err != nil {
		return nil, err
	}
	return renderer.Render(ctx, points)
}

// max returns the request's max, defaulting to the largest sample value.
func (req *Request) max(points []Point) float64 {
	if req.Max != nil {
		return *req.Max
	}
	var max float64
	for i, p := range points {
		if i == 0 || p.Value > max {
			max = p.Value
		}
	}
	return max
}
