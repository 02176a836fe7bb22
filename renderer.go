package idw

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	rendersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "idw_renders_total",
		Help: "The total number of completed renders",
	})
	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "idw_render_duration_seconds",
		Help:    "The duration of completed renders",
		Buckets: prometheus.DefBuckets,
	})
)

// Defaults for renderer options.
const (
	DefaultCellSize     = 4
	DefaultExponent     = 2
	DefaultFadeDistance = 100000 // meters
)

// distanceEpsilon guards the inverse distance weight against division by zero
// when a cell center coincides with a sample.
const distanceEpsilon = 1e-6

// A Renderer rasterizes inverse-distance-weighted samples into an RGBA image.
// A Renderer is immutable after construction and safe for concurrent use.
type Renderer struct {
	width        int
	height       int
	cellSize     int
	max          float64
	exponent     float64
	fadeDistance float64
	feather      bool
	workers      int
	bounds       Bounds
	lookup       *Lookup
}

// A RendererOption sets an option on a Renderer.
type RendererOption func(*Renderer)

func WithCellSize(cellSize int) RendererOption {
	return func(r *Renderer) {
		r.cellSize = cellSize
	}
}

func WithExponent(exponent float64) RendererOption {
	return func(r *Renderer) {
		r.exponent = exponent
	}
}

// WithFadeDistance sets the distance in meters beyond which cells fade toward
// the background color.
func WithFadeDistance(fadeDistance float64) RendererOption {
	return func(r *Renderer) {
		r.fadeDistance = fadeDistance
	}
}

// WithFeather enables or disables fading far from any sample.
func WithFeather(feather bool) RendererOption {
	return func(r *Renderer) {
		r.feather = feather
	}
}

// WithMax sets the value that maps to the top of the gradient. Interpolated
// values above it saturate. A max of zero maps every value to the gradient's
// lowest stop.
func WithMax(max float64) RendererOption {
	return func(r *Renderer) {
		r.max = max
	}
}

// WithWorkers shards cell rows across workers. Each worker writes disjoint
// pixel rows, so output is byte-identical regardless of worker count.
func WithWorkers(workers int) RendererOption {
	return func(r *Renderer) {
		r.workers = workers
	}
}

// NewRenderer returns a new Renderer for a width×height raster covering
// bounds, coloring through lookup.
func NewRenderer(width, height int, bounds Bounds, lookup *Lookup, options ...RendererOption) (*Renderer, error) {
	r := &Renderer{
		width:        width,
		height:       height,
		bounds:       bounds,
		lookup:       lookup,
		cellSize:     DefaultCellSize,
		exponent:     DefaultExponent,
		fadeDistance: DefaultFadeDistance,
		feather:      true,
		workers:      1,
	}
	for _, option := range options {
		option(r)
	}

	if r.width <= 0 || r.height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, r.width, r.height)
	}
	if r.cellSize <= 0 {
		return nil, fmt.Errorf("%w: cell size %d", ErrInvalidDimensions, r.cellSize)
	}
	if err := r.bounds.validate(); err != nil {
		return nil, err
	}
	if r.exponent <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExponent, r.exponent)
	}
	if r.lookup == nil {
		return nil, fmt.Errorf("%w: no lookup table", ErrInvalidGradient)
	}
	if r.workers < 1 {
		r.workers = 1
	}
	return r, nil
}

// Render rasterizes points. Every pixel is written: the buffer is prefilled
// with the background color at full opacity, then each cellSize×cellSize
// block is filled with the color of the value interpolated at its center.
// Identical inputs produce byte-identical buffers.
func (r *Renderer) Render(ctx context.Context, points []Point) (*image.RGBA, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: interpolation needs at least one sample", ErrNoPoints)
	}

	start := time.Now()
	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))

	bg := r.lookup.Background()
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i] = bg.R
		img.Pix[i+1] = bg.G
		img.Pix[i+2] = bg.B
		img.Pix[i+3] = 0xff
	}

	cellRows := (r.height + r.cellSize - 1) / r.cellSize
	if r.workers == 1 {
		for row := 0; row < cellRows; row++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			r.renderCellRow(img, points, row)
		}
	} else {
		// Workers fill disjoint row ranges of the shared buffer, so no
		// synchronization is needed beyond the final wait.
		var wg sync.WaitGroup
		chunk := (cellRows + r.workers - 1) / r.workers
		for begin := 0; begin < cellRows; begin += chunk {
			end := min(begin+chunk, cellRows)
			wg.Add(1)
			go func(begin, end int) {
				defer wg.Done()
				for row := begin; row < end; row++ {
					if ctx.Err() != nil {
						return
					}
					r.renderCellRow(img, points, row)
				}
			}(begin, end)
		}
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	rendersTotal.Inc()
	renderDuration.Observe(time.Since(start).Seconds())
	return img, nil
}

// renderCellRow fills one row of cells. The last row and column are clipped
// to the image bounds.
func (r *Renderer) renderCellRow(img *image.RGBA, points []Point, row int) {
	y0 := row * r.cellSize
	y1 := min(y0+r.cellSize, r.height)
	cy := float64(y0) + float64(r.cellSize)/2
	for x0 := 0; x0 < r.width; x0 += r.cellSize {
		x1 := min(x0+r.cellSize, r.width)
		cx := float64(x0) + float64(r.cellSize)/2
		lat, lng := PixelToLatLng(cx, cy, r.width, r.height, r.bounds)
		value, minDist := r.interpolate(points, lat, lng)
		fillRect(img, x0, y0, x1, y1, r.shade(value, minDist))
	}
}

// interpolate returns the inverse-distance-weighted value at (lat, lng) and
// the distance to the nearest sample.
func (r *Renderer) interpolate(points []Point, lat, lng float64) (value, minDist float64) {
	minDist = math.Inf(1)
	var num, den float64
	for _, p := range points {
		d := Haversine(lat, lng, p.Lat, p.Lng)
		if d < minDist {
			minDist = d
		}
		w := 1 / math.Max(math.Pow(d, r.exponent), distanceEpsilon)
		num += p.Value * w
		den += w
	}
	return num / den, minDist
}

// shade maps an interpolated value to a color, feathering toward the
// background beyond the fade distance.
func (r *Renderer) shade(value, minDist float64) color.RGBA {
	if value > r.max {
		value = r.max
	}
	index := 0
	if r.max != 0 {
		index = int(math.Round(value / r.max * 255))
	}
	c := r.lookup.At(index)

	alpha := 1.0
	if r.feather && minDist > r.fadeDistance {
		alpha = math.Max(0, 1-(minDist-r.fadeDistance)/r.fadeDistance)
		bg := r.lookup.Background()
		c = color.RGBA{
			R: uint8(math.Round(float64(c.R)*alpha + float64(bg.R)*(1-alpha))),
			G: uint8(math.Round(float64(c.G)*alpha + float64(bg.G)*(1-alpha))),
			B: uint8(math.Round(float64(c.B)*alpha + float64(bg.B)*(1-alpha))),
		}
	}
	c.A = uint8(math.Round(alpha * 255))
	return c
}

func fillRect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		i := img.PixOffset(x0, y)
		for x := x0; x < x1; x++ {
			img.Pix[i] = c.R
			img.Pix[i+1] = c.G
			img.Pix[i+2] = c.B
			img.Pix[i+3] = c.A
			i += 4
		}
	}
}
