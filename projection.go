package idw

import "math"

// mercatorY returns the Web Mercator Y coordinate of lat in degrees.
func mercatorY(lat float64) float64 {
	return math.Log(math.Tan(math.Pi/4 + lat*math.Pi/360))
}

// invMercatorY returns the latitude in degrees of the Web Mercator Y
// coordinate y.
func invMercatorY(y float64) float64 {
	return (2*math.Atan(math.Exp(y)) - math.Pi/2) * 180 / math.Pi
}

// PixelToLatLng maps pixel (x, y) of a width×height raster covering bounds to
// geographic coordinates. Longitude is linear in x. Latitude is linear in Web
// Mercator Y so rows line up with standard web map tiles; y=0 is the north
// edge. Pure function; bounds with latitudes at the poles are the caller's
// responsibility.
func PixelToLatLng(x, y float64, width, height int, bounds Bounds) (lat, lng float64) {
	lng = bounds.MinLng + x/float64(width)*(bounds.MaxLng-bounds.MinLng)
	top := mercatorY(bounds.MaxLat)
	bottom := mercatorY(bounds.MinLat)
	lat = invMercatorY(top + y/float64(height)*(bottom-top))
	return lat, lng
}

// LatLngToPixel is the inverse of PixelToLatLng.
func LatLngToPixel(lat, lng float64, width, height int, bounds Bounds) (x, y float64) {
	x = (lng - bounds.MinLng) / (bounds.MaxLng - bounds.MinLng) * float64(width)
	top := mercatorY(bounds.MaxLat)
	bottom := mercatorY(bounds.MinLat)
	y = (mercatorY(lat) - top) / (bottom - top) * float64(height)
	return x, y
}
