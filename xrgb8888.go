package st7305

import (
	"encoding/binary"
	"image"
	"image/color"
)

// XRGB8888 is a 32 bits per pixel source raster as handed over by a host
// framebuffer: one little-endian word per pixel, 0xXXRRGGBB, where the top
// byte is ignored.
type XRGB8888 struct {
	Pix    []byte          // 4 bytes per pixel: B, G, R, X
	Stride int             // Bytes per row
	Rect   image.Rectangle // Image bounds
}

// NewXRGB8888 returns a blank raster with bounds r.
func NewXRGB8888(r image.Rectangle) *XRGB8888 {
	w, h := r.Dx(), r.Dy()
	if w < 0 || h < 0 {
		return &XRGB8888{Rect: r}
	}
	return &XRGB8888{
		Pix:    make([]byte, 4*w*h),
		Stride: 4 * w,
		Rect:   r,
	}
}

// XRGB8888FromWords wraps packed 32-bit samples of a width x height frame.
// The words are copied.
func XRGB8888FromWords(words []uint32, width, height int) *XRGB8888 {
	img := NewXRGB8888(image.Rect(0, 0, width, height))
	for i := 0; i < width*height && i < len(words); i++ {
		binary.LittleEndian.PutUint32(img.Pix[4*i:], words[i])
	}
	return img
}

// ColorModel returns the color model of the image.
func (p *XRGB8888) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds returns the image bounds.
func (p *XRGB8888) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
func (p *XRGB8888) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return color.RGBA{}
	}
	i := p.PixOffset(x, y)
	return color.RGBA{R: p.Pix[i+2], G: p.Pix[i+1], B: p.Pix[i], A: 0xFF}
}

// Set sets the color of the pixel at (x, y).
func (p *XRGB8888) Set(x, y int, c color.Color) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	rgba := color.RGBAModel.Convert(c).(color.RGBA)
	p.Pix[i], p.Pix[i+1], p.Pix[i+2], p.Pix[i+3] = rgba.B, rgba.G, rgba.R, 0
}

// Word returns the packed sample at (x, y).
func (p *XRGB8888) Word(x, y int) uint32 {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return 0
	}
	return binary.LittleEndian.Uint32(p.Pix[p.PixOffset(x, y):])
}

// PixOffset returns the index of the first byte of the pixel at (x, y).
func (p *XRGB8888) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

// SubImage returns the part of p visible through r, sharing pixels with p.
func (p *XRGB8888) SubImage(r image.Rectangle) image.Image {
	r = r.Intersect(p.Rect)
	if r.Empty() {
		return &XRGB8888{}
	}
	return &XRGB8888{
		Pix:    p.Pix[p.PixOffset(r.Min.X, r.Min.Y):],
		Stride: p.Stride,
		Rect:   r,
	}
}
