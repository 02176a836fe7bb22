package idw

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"golang.org/x/image/tiff"
)

// A Format identifies an image encoding. The zero value encodes as PNG.
type Format string

const (
	FormatPNG  Format = "png"
	FormatTIFF Format = "tiff"
)

// ContentType returns the MIME type for f.
func (f Format) ContentType() string {
	switch f {
	case FormatTIFF:
		return "image/tiff"
	default:
		return "image/png"
	}
}

// Encode writes img to w in the given format.
func Encode(w io.Writer, img image.Image, format Format) error {
	switch format {
	case FormatPNG, "":
		return png.Encode(w, img)
	case FormatTIFF:
		return tiff.Encode(w, img, &tiff.Options{
			Compression: tiff.Deflate,
		})
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
}
