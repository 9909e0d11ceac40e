package st7305

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/jonboulle/clockwork"
	"golang.org/x/image/draw"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"github.com/flavioheleno/st7305/dither"
	"github.com/flavioheleno/st7305/image1bit"
	"github.com/flavioheleno/st7305/panel"
)

// ErrHalted is returned by every operation on a halted device.
var ErrHalted = errors.New("st7305: halted")

// DefaultHz is the SPI clock used when Opts.Hz is zero.
const DefaultHz = 10 * physic.MegaHertz

// Opts is the configuration for the display.
type Opts struct {
	// Panel is the registry name of the panel (default: panel.Default)
	Panel string

	// Optional hardware reset pin
	RST gpio.PinIO

	// Conversion
	Dither dither.Mode // Ordered dithering mode (default: none)
	Gray   GrayModel   // Color to gray reduction (default: luma)

	// Rotation in degrees. Only 0 is supported; other values are logged and
	// ignored.
	Rotation int

	// Clock paces the reset and init delays (default: real clock)
	Clock clockwork.Clock

	// SPI clock (default: DefaultHz)
	Hz physic.Frequency
}

var _ display.Drawer = (*Dev)(nil)

// Dev is the device handle for an ST7305 panel.
type Dev struct {
	// Communication
	c   conn.Conn   // SPI connection
	dc  gpio.PinOut // Data/Command pin
	rst gpio.PinIO  // Reset pin (optional)

	clock clockwork.Clock
	desc  panel.Descriptor
	rect  image.Rectangle

	// session owns the packed frame; canvas holds what was drawn so far so
	// a full panel reconversion has every pixel at hand.
	session *Session
	canvas  *image.RGBA

	mu      sync.Mutex
	halted  bool
	errOnce sync.Once
}

// NewSPI creates a new device connected via SPI.
//
// The SPI port is configured for Opts.Hz, Mode0 (CPOL=0, CPHA=0), 8-bit
// transfers. The dc (Data/Command) GPIO pin must be provided and configured
// as an output.
//
// opts can be nil to use defaults (168x384 panel, no dithering).
func NewSPI(p spi.Port, dc gpio.PinOut, opts *Opts) (*Dev, error) {
	if opts == nil {
		opts = &Opts{}
	}
	name := opts.Panel
	if name == "" {
		name = panel.Default
	}
	desc, err := panel.Lookup(name)
	if err != nil {
		return nil, fmt.Errorf("st7305: %w", err)
	}
	s, err := NewSession(desc, opts.Dither, opts.Gray)
	if err != nil {
		return nil, err
	}
	if opts.Rotation != 0 {
		glog.Warningf("st7305: rotation %d is not supported, using 0", opts.Rotation)
	}

	hz := opts.Hz
	if hz == 0 {
		hz = DefaultHz
	}
	c, err := p.Connect(hz, spi.Mode0, 8)
	if err != nil {
		return nil, fmt.Errorf("st7305: %w", err)
	}

	clock := opts.Clock
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	d := &Dev{
		c:       c,
		dc:      dc,
		rst:     opts.RST,
		clock:   clock,
		desc:    desc,
		rect:    desc.Bounds(),
		session: s,
		canvas:  image.NewRGBA(desc.Bounds()),
	}
	draw.Draw(d.canvas, d.rect, image.White, image.Point{}, draw.Src)

	if err := d.init(); err != nil {
		return nil, err
	}
	return d, nil
}

// init resets the controller, sends the panel init sequence and blanks the
// panel to white.
func (d *Dev) init() error {
	if d.rst != nil {
		if err := d.rst.Out(gpio.Low); err != nil {
			return fmt.Errorf("st7305: failed to pull RST low: %w", err)
		}
		d.clock.Sleep(10 * time.Millisecond)

		if err := d.rst.Out(gpio.High); err != nil {
			return fmt.Errorf("st7305: failed to pull RST high: %w", err)
		}
		d.clock.Sleep(10 * time.Millisecond)
	}

	for _, c := range d.desc.Family.InitSequence(&d.desc) {
		if err := d.sendCommand(c.Cmd, c.Args...); err != nil {
			return err
		}
		if c.Delay > 0 {
			d.clock.Sleep(c.Delay)
		}
	}

	return d.session.Flush(d.canvas, d.rect, d.writeFrame)
}

// sendCommand sends a command byte followed by its arguments, if any.
func (d *Dev) sendCommand(cmd byte, args ...byte) error {
	if err := d.dc.Out(gpio.Low); err != nil {
		return fmt.Errorf("st7305: command %#02x: %w", cmd, err)
	}
	if err := d.c.Tx([]byte{cmd}, nil); err != nil {
		return fmt.Errorf("st7305: command %#02x: %w", cmd, err)
	}
	if len(args) == 0 {
		return nil
	}
	return d.sendData(args)
}

// sendData sends data bytes, split to the connection's transfer limit.
func (d *Dev) sendData(data []byte) error {
	if err := d.dc.Out(gpio.High); err != nil {
		return fmt.Errorf("st7305: data: %w", err)
	}
	limit := len(data)
	if l, ok := d.c.(conn.Limits); ok {
		if m := l.MaxTxSize(); m > 0 && m < limit {
			limit = m
		}
	}
	for len(data) > 0 {
		n := min(limit, len(data))
		if err := d.c.Tx(data[:n], nil); err != nil {
			return fmt.Errorf("st7305: data: %w", err)
		}
		data = data[n:]
	}
	return nil
}

// writeFrame sets the address window of f and streams its bytes.
func (d *Dev) writeFrame(f *Frame) error {
	if err := d.sendCommand(panel.CASET, f.Columns[0], f.Columns[1]); err != nil {
		return err
	}
	if err := d.sendCommand(panel.RASET, f.Rows[0], f.Rows[1]); err != nil {
		return err
	}
	if err := d.sendCommand(panel.RAMWR); err != nil {
		return err
	}
	if glog.V(2) {
		glog.Infof("st7305: write %v, cols %v rows %v, %d bytes", f.Rect, f.Columns, f.Rows, f.Bytes())
	}
	return d.sendData(f.Data)
}

// ColorModel returns the color model of the display.
func (d *Dev) ColorModel() color.Model {
	return image1bit.BitModel
}

// Bounds returns the image bounds of the display.
func (d *Dev) Bounds() image.Rectangle {
	return d.rect
}

// Panel returns the descriptor of the driven panel.
func (d *Dev) Panel() panel.Descriptor {
	return d.desc
}

// Draw draws src onto the display.
//
// The dst rectangle specifies the destination region on the display. The
// src image is positioned at src point sp within the destination. Only
// dst is converted and sent when dithering is off; with dithering the
// whole panel is reconverted.
//
// A *image1bit.PagedQuad covering the whole panel in its native layout is
// sent as is, like Write.
func (d *Dev) Draw(dst image.Rectangle, src image.Image, sp image.Point) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return ErrHalted
	}

	// Fast path: the source is already a packed frame at full size
	if p, ok := src.(*image1bit.PagedQuad); ok && dst == d.rect && sp == d.rect.Min && d.native(p) {
		return d.replace(p.Pix)
	}

	clipped := dst.Intersect(d.rect)
	if clipped.Empty() {
		return nil
	}
	// draw.Draw clips dst to the canvas and shifts sp to match.
	draw.Draw(d.canvas, dst, src, sp, draw.Src)
	return d.logOnce(d.session.Flush(d.canvas, clipped, d.writeFrame))
}

// native reports whether p is a whole panel frame in the panel layout.
func (d *Dev) native(p *image1bit.PagedQuad) bool {
	l, ok := p.Transform.(image1bit.Layout)
	return ok && p.Rect == d.rect && l == d.desc.Transform() && len(p.Pix) == d.desc.BufferSize
}

// Write writes a raw packed frame to the display. The data must be exactly
// the panel buffer size. Later dithered updates start from this frame.
func (d *Dev) Write(pixels []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return 0, ErrHalted
	}
	if len(pixels) != d.desc.BufferSize {
		return 0, ErrBufferSize
	}
	if err := d.replace(pixels); err != nil {
		return 0, err
	}
	return len(pixels), nil
}

// replace sends a packed frame and unpacks it into the canvas, so a later
// full panel reconversion reproduces it.
func (d *Dev) replace(pix []byte) error {
	frame := &image1bit.PagedQuad{Pix: pix, Rect: d.rect, Transform: d.desc.Transform()}
	draw.Draw(d.canvas, d.rect, frame, d.rect.Min, draw.Src)
	return d.logOnce(d.session.Replace(pix, d.writeFrame))
}

// Buffer returns a copy of the packed frame last sent to the panel.
func (d *Dev) Buffer() []byte {
	return d.session.Buffer()
}

// Dither returns the current dithering mode.
func (d *Dev) Dither() dither.Mode {
	return d.session.Dither()
}

// SetDither changes the dithering mode. The next Draw reconverts the whole
// panel in the new mode.
func (d *Dev) SetDither(m dither.Mode) error {
	return d.session.SetDither(m)
}

// Invert inverts the display colors (black becomes white and vice versa).
func (d *Dev) Invert(invert bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.halted {
		return ErrHalted
	}
	cmd := byte(panel.INVOFF)
	if invert {
		cmd = panel.INVON
	}
	return d.sendCommand(cmd)
}

// Halt turns the display off.
// After calling Halt, the display will not respond to further commands
// until the device is re-initialized.
func (d *Dev) Halt() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.halted = true
	return d.sendCommand(panel.DISPOFF)
}

// String returns a string representation of the device.
func (d *Dev) String() string {
	return fmt.Sprintf("st7305.Dev{%dx%d}", d.rect.Dx(), d.rect.Dy())
}

// logOnce logs the first transfer failure. Later failures are only
// returned.
func (d *Dev) logOnce(err error) error {
	if err != nil {
		d.errOnce.Do(func() {
			glog.Errorf("st7305: update failed: %v", err)
		})
	}
	return err
}
