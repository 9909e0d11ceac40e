package st7305

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// GrayModel selects how color pixels are reduced to 8-bit gray.
type GrayModel uint8

const (
	// GrayLuma weights channels as (3R + 6G + B) / 10, like the kernel's
	// XRGB8888 to gray8 framebuffer helper.
	GrayLuma GrayModel = iota
	// GrayLightness uses the CIE L* lightness, which keeps perceived
	// brightness steps even before dithering.
	GrayLightness
)

func (m GrayModel) String() string {
	switch m {
	case GrayLuma:
		return "luma"
	case GrayLightness:
		return "lightness"
	default:
		return fmt.Sprintf("GrayModel(%d)", uint8(m))
	}
}

// ParseGrayModel parses "luma" or "lightness".
func ParseGrayModel(s string) (GrayModel, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "luma", "":
		return GrayLuma, nil
	case "lightness":
		return GrayLightness, nil
	}
	return GrayLuma, fmt.Errorf("st7305: unknown gray model %q", s)
}

// Set implements flag.Value.
func (m *GrayModel) Set(s string) error {
	v, err := ParseGrayModel(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

func luma(r, g, b uint8) uint8 {
	return uint8((3*uint32(r) + 6*uint32(g) + uint32(b)) / 10)
}

func lightness(r, g, b uint8) uint8 {
	l, _, _ := colorful.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
	}.Lab()
	return uint8(math.Round(math.Max(0, math.Min(1, l)) * 255))
}

func (m GrayModel) reduce(r, g, b uint8) uint8 {
	if m == GrayLightness {
		return lightness(r, g, b)
	}
	return luma(r, g, b)
}

// grayscale reduces the rectangle r of src to 8-bit gray. The returned
// image has bounds r, in src coordinates. r must lie within src.Bounds().
func grayscale(src image.Image, r image.Rectangle, m GrayModel) *image.Gray {
	dst := image.NewGray(r)
	switch s := src.(type) {
	case *image.Gray:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			copy(dst.Pix[dst.PixOffset(r.Min.X, y):dst.PixOffset(r.Max.X, y)],
				s.Pix[s.PixOffset(r.Min.X, y):s.PixOffset(r.Max.X, y)])
		}
	case *XRGB8888:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			si := s.PixOffset(r.Min.X, y)
			di := dst.PixOffset(r.Min.X, y)
			for x := r.Min.X; x < r.Max.X; x++ {
				dst.Pix[di] = m.reduce(s.Pix[si+2], s.Pix[si+1], s.Pix[si])
				si += 4
				di++
			}
		}
	case *image.RGBA:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			si := s.PixOffset(r.Min.X, y)
			di := dst.PixOffset(r.Min.X, y)
			for x := r.Min.X; x < r.Max.X; x++ {
				dst.Pix[di] = m.reduce(s.Pix[si], s.Pix[si+1], s.Pix[si+2])
				si += 4
				di++
			}
		}
	default:
		for y := r.Min.Y; y < r.Max.Y; y++ {
			di := dst.PixOffset(r.Min.X, y)
			for x := r.Min.X; x < r.Max.X; x++ {
				c := color.RGBAModel.Convert(src.At(x, y)).(color.RGBA)
				dst.Pix[di] = m.reduce(c.R, c.G, c.B)
				di++
			}
		}
	}
	return dst
}
