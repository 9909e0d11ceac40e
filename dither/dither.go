// Package dither reduces 8-bit grayscale to black and white for 1-bit
// reflective panels.
//
// Three modes are supported: a plain midpoint threshold and ordered
// dithering with a 4x4 or 16x16 Bayer matrix. The matrices are tiled over
// absolute image coordinates, so the halftone pattern of a pixel only
// depends on where it is on the panel, never on the rectangle being
// converted.
//
// Uniform gray of level L turns on about L/255 of the cells of a tile:
//
//	level:   0   64  128  192  255
//	4x4:     0    4    8   12   16   (white cells out of 16)
package dither

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"
)

// Mode selects the dithering algorithm.
type Mode uint8

const (
	// None thresholds each pixel at the midpoint (gray > 128 is white).
	None Mode = iota
	// Bayer4x4 applies ordered dithering with the 4x4 Bayer matrix.
	Bayer4x4
	// Bayer16x16 applies ordered dithering with the 16x16 Bayer matrix.
	Bayer16x16
)

// Black and White are the two output levels of Apply and Image.
const (
	Black = 0x00
	White = 0xFF
)

// midpoint is the threshold used by None.
const midpoint = 128

// ErrInvalidMode is returned when parsing or setting a mode outside of the
// enumerated set.
var ErrInvalidMode = errors.New("dither: invalid mode")

var modeNames = [...]string{
	None:       "none",
	Bayer4x4:   "bayer4x4",
	Bayer16x16: "bayer16x16",
}

// Valid reports whether m is one of the enumerated modes.
func (m Mode) Valid() bool {
	return int(m) < len(modeNames)
}

func (m Mode) String() string {
	if !m.Valid() {
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
	return modeNames[m]
}

// ParseMode parses the attribute form of a mode ("0", "1" or "2", as
// written to a configuration attribute) or its name. Surrounding
// whitespace, including a trailing newline, is ignored.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseUint(s, 10, 8); err == nil {
		if m := Mode(n); m.Valid() {
			return m, nil
		}
		return None, fmt.Errorf("%w: %q", ErrInvalidMode, s)
	}
	for i, name := range modeNames {
		if strings.EqualFold(s, name) {
			return Mode(i), nil
		}
	}
	return None, fmt.Errorf("%w: %q", ErrInvalidMode, s)
}

// Set implements flag.Value. On error m is left unchanged.
func (m *Mode) Set(s string) error {
	v, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Threshold returns the threshold applied at (x, y). A pixel is white iff
// its gray value is strictly greater than the threshold.
func Threshold(m Mode, x, y int) uint8 {
	switch m {
	case Bayer4x4:
		return bayer4x4Thresholds[y&3][x&3]
	case Bayer16x16:
		return bayer16x16Thresholds[y&15][x&15]
	default:
		return midpoint
	}
}

// IsWhite reports whether the gray value g at (x, y) is rendered white.
func IsWhite(m Mode, g uint8, x, y int) bool {
	return g > Threshold(m, x, y)
}

// Apply converts a row-major 8-bit grayscale raster of width x height to
// black and white. The result has the same dimensions and only contains
// Black and White. The matrix phase is pinned to the raster origin.
//
// A zero or negative dimension returns an empty slice.
func Apply(m Mode, gray []byte, width, height int) []byte {
	if width <= 0 || height <= 0 {
		return []byte{}
	}
	out := make([]byte, width*height)
	for y := 0; y < height; y++ {
		row := gray[y*width : (y+1)*width]
		dst := out[y*width : (y+1)*width]
		for x, g := range row {
			if IsWhite(m, g, x, y) {
				dst[x] = White
			}
		}
	}
	return out
}

// Image converts src to black and white. Unlike Apply, the matrix is tiled
// over the absolute coordinates of src.Rect, so converting a sub-image
// yields the same pixels as converting the whole image.
func Image(m Mode, src *image.Gray) *image.Gray {
	r := src.Rect
	dst := image.NewGray(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		si := src.PixOffset(r.Min.X, y)
		di := dst.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			if IsWhite(m, src.Pix[si], x, y) {
				dst.Pix[di] = White
			}
			si++
			di++
		}
	}
	return dst
}
