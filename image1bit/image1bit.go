package image1bit

import (
	"image"
	"image/color"
)

// Bit is a 1-bit color: On is white (reflective), Off is black.
type Bit bool

const (
	On  Bit = true
	Off Bit = false
)

// RGBA implements color.Color.
func (c Bit) RGBA() (r, g, b, a uint32) {
	if c {
		return 0xFFFF, 0xFFFF, 0xFFFF, 0xFFFF
	}
	return 0, 0, 0, 0xFFFF
}

func (c Bit) String() string {
	if c {
		return "On"
	}
	return "Off"
}

// toBit converts any color.Color to Bit. Gray levels above 128 are On,
// matching the dither package's midpoint.
func toBit(c color.Color) color.Color {
	if b, ok := c.(Bit); ok {
		return b
	}
	g := color.GrayModel.Convert(c).(color.Gray)
	return Bit(g.Y > 128)
}

// BitModel converts colors to Bit.
var BitModel = color.ModelFunc(toBit)

// Transform maps a pixel to the byte holding it and the mask selecting its
// bit. Controllers with a different RAM organization supply their own.
type Transform interface {
	Offset(x, y int) (index int, mask byte)
}

// Layout is the ST7305 Transform.
//
// LeftOffset shifts pixels right before packing to compensate for the
// panel's first column not being wired to RAM column 0. PageSize is the
// number of bytes between two consecutive pages (row pairs).
type Layout struct {
	LeftOffset int
	PageSize   int
}

// Offset implements Transform.
func (l Layout) Offset(x, y int) (index int, mask byte) {
	ex := x + l.LeftOffset
	index = (y>>1)*l.PageSize + ex>>2
	bit := (ex&3)<<1 | y&1
	return index, 1 << (7 - bit)
}

// Set writes one pixel into the packed buffer pix, leaving every other bit
// untouched.
//
// (x, y) must lie within the geometry t was built for; an out of range
// coordinate is a programming error and panics with an index error.
func Set(pix []byte, t Transform, x, y int, on bool) {
	i, mask := t.Offset(x, y)
	if on {
		pix[i] |= mask
	} else {
		pix[i] &^= mask
	}
}

// Get returns the pixel at (x, y) in the packed buffer pix.
func Get(pix []byte, t Transform, x, y int) bool {
	i, mask := t.Offset(x, y)
	return pix[i]&mask != 0
}

// PagedQuad is a 1-bit image stored in the controller's native layout.
//
// Pix is typically the whole controller RAM window, so it may hold more
// pixels than Rect covers (columns left of LeftOffset, padding at the right
// of each page).
type PagedQuad struct {
	Pix       []byte          // Packed pixels, see Transform
	Rect      image.Rectangle // Image bounds
	Transform Transform       // Pixel to bit mapping, relative to Rect.Min
}

// NewPagedQuad returns a blank image of bounds r backed by a size byte
// buffer.
func NewPagedQuad(r image.Rectangle, t Transform, size int) *PagedQuad {
	return &PagedQuad{
		Pix:       make([]byte, size),
		Rect:      r,
		Transform: t,
	}
}

// ColorModel returns the color model of the image.
func (p *PagedQuad) ColorModel() color.Model {
	return BitModel
}

// Bounds returns the image bounds.
func (p *PagedQuad) Bounds() image.Rectangle {
	return p.Rect
}

// At returns the color of the pixel at (x, y).
// It implements the image.Image interface.
func (p *PagedQuad) At(x, y int) color.Color {
	return p.BitAt(x, y)
}

// BitAt returns the Bit at (x, y). Pixels outside Rect are Off.
func (p *PagedQuad) BitAt(x, y int) Bit {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return Off
	}
	return Bit(Get(p.Pix, p.Transform, x-p.Rect.Min.X, y-p.Rect.Min.Y))
}

// Set sets the color of the pixel at (x, y).
func (p *PagedQuad) Set(x, y int, c color.Color) {
	p.SetBit(x, y, BitModel.Convert(c).(Bit))
}

// SetBit sets the Bit at (x, y). Pixels outside Rect are ignored.
// This is faster than Set() as it doesn't require color conversion.
func (p *PagedQuad) SetBit(x, y int, b Bit) {
	if !(image.Point{X: x, Y: y}.In(p.Rect)) {
		return
	}
	Set(p.Pix, p.Transform, x-p.Rect.Min.X, y-p.Rect.Min.Y, bool(b))
}

// Clear sets every bit of the buffer to Off.
func (p *PagedQuad) Clear() {
	clear(p.Pix)
}
