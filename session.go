package st7305

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/golang/glog"

	"github.com/flavioheleno/st7305/dither"
	"github.com/flavioheleno/st7305/image1bit"
	"github.com/flavioheleno/st7305/panel"
)

var (
	// ErrSourceBounds is returned when the source image does not cover the
	// rectangle to convert.
	ErrSourceBounds = errors.New("st7305: source does not cover update")
	// ErrBufferSize is returned when a raw frame does not match the panel
	// buffer size.
	ErrBufferSize = errors.New("st7305: invalid buffer size")
)

// Frame describes the result of one conversion: what changed and what must
// be sent to the controller.
type Frame struct {
	Rect    image.Rectangle // Panel pixels converted and packed
	Columns panel.Window    // Column address window to send
	Rows    panel.Window    // Row address window to send
	Data    []byte          // Bytes for the window, in transfer order
	Buffer  []byte          // Whole packed buffer
}

// Bytes returns the number of bytes to transfer.
func (f *Frame) Bytes() int {
	return len(f.Data)
}

// Empty reports whether there is nothing to send.
func (f *Frame) Empty() bool {
	return len(f.Data) == 0
}

// Session converts images for one panel and owns its packed buffer.
//
// A Session is safe for concurrent use. The Buffer and Data of a returned
// Frame alias the session buffer until the next conversion; use Flush to
// keep the conversion and the transfer under the same lock.
type Session struct {
	mu        sync.Mutex
	desc      panel.Descriptor
	transform image1bit.Transform
	buf       []byte
	mode      dither.Mode
	gray      GrayModel
	full      bool // next non-empty update converts the whole panel
}

// NewSession validates d and returns a session with a blank buffer.
func NewSession(d panel.Descriptor, mode dither.Mode, gray GrayModel) (*Session, error) {
	if err := panel.Validate(&d); err != nil {
		return nil, fmt.Errorf("st7305: %w", err)
	}
	if !mode.Valid() {
		return nil, fmt.Errorf("st7305: %w: %d", dither.ErrInvalidMode, uint8(mode))
	}
	if d.Unreliable {
		glog.Warningf("st7305: panel %s is known to freeze after a few seconds", d.Name)
	}
	return &Session{
		desc:      d,
		transform: d.Transform(),
		buf:       make([]byte, d.BufferSize),
		mode:      mode,
		gray:      gray,
		full:      true,
	}, nil
}

// Descriptor returns the panel descriptor.
func (s *Session) Descriptor() panel.Descriptor {
	return s.desc
}

// Dither returns the current dithering mode.
func (s *Session) Dither() dither.Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetDither changes the dithering mode used by the next conversion. An
// invalid mode is rejected and the current one kept.
func (s *Session) SetDither(m dither.Mode) error {
	if !m.Valid() {
		return fmt.Errorf("st7305: %w: %d", dither.ErrInvalidMode, uint8(m))
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if m != s.mode {
		s.mode = m
		s.full = true
	}
	return nil
}

// SetDitherAttr parses the attribute form of a mode ("0", "1" or "2") and
// applies it.
func (s *Session) SetDitherAttr(v string) error {
	m, err := dither.ParseMode(v)
	if err != nil {
		return fmt.Errorf("st7305: %w", err)
	}
	return s.SetDither(m)
}

// Reset clears the packed buffer. The next update converts the whole
// panel.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.buf)
	s.full = true
}

// Buffer returns a copy of the packed buffer.
func (s *Session) Buffer() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.buf...)
}

// ConvertAndPack converts the part of src selected by Plan for damage and
// packs it into the session buffer. src is in panel coordinates.
//
// An empty damage returns an empty Frame and leaves the buffer untouched.
// On error the buffer is left untouched too.
func (s *Session) ConvertAndPack(src image.Image, damage image.Rectangle) (Frame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convertAndPack(src, damage)
}

// Flush runs ConvertAndPack and hands a non-empty frame to tx while still
// holding the session lock, so the buffer cannot change during the
// transfer.
func (s *Session) Flush(src image.Image, damage image.Rectangle, tx func(*Frame) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := s.convertAndPack(src, damage)
	if err != nil || f.Empty() {
		return err
	}
	return tx(&f)
}

// Replace copies a raw packed frame into the buffer and hands the full
// frame to tx under the session lock.
func (s *Session) Replace(pix []byte, tx func(*Frame) error) error {
	if len(pix) != len(s.buf) {
		return ErrBufferSize
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	copy(s.buf, pix)
	s.full = false
	f := s.frame(s.desc.Bounds())
	return tx(&f)
}

func (s *Session) convertAndPack(src image.Image, damage image.Rectangle) (Frame, error) {
	bounds := s.desc.Bounds()
	if s.full && !damage.Empty() {
		damage = bounds
	}
	r := Plan(damage, s.mode, bounds)
	if r.Empty() {
		return Frame{}, nil
	}
	if !r.In(src.Bounds()) {
		return Frame{}, fmt.Errorf("%w: %v not in %v", ErrSourceBounds, r, src.Bounds())
	}

	// Convert fully before touching the buffer so a failed conversion never
	// leaves a half packed frame behind.
	gray := grayscale(src, r, s.gray)
	if s.mode != dither.None {
		gray = dither.Image(s.mode, gray)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := gray.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x++ {
			image1bit.Set(s.buf, s.transform, x, y, dither.IsWhite(dither.None, gray.Pix[i], x, y))
			i++
		}
	}
	s.full = false

	f := s.frame(r)
	if glog.V(1) {
		glog.Infof("st7305: packed %v (%v), window %v x %v, %d bytes", r, s.mode, f.Columns, f.Rows, f.Bytes())
	}
	return f, nil
}

func (s *Session) frame(r image.Rectangle) Frame {
	cols, rows := addressWindow(r, &s.desc)
	return Frame{
		Rect:    r,
		Columns: cols,
		Rows:    rows,
		Data:    windowBytes(s.buf, &s.desc, cols, rows),
		Buffer:  s.buf,
	}
}
