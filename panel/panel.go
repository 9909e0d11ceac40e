// Package panel describes the physical panels driven by an ST7305
// controller.
//
// A Descriptor is pure data: resolution, column offset, RAM geometry and
// the address windows sent with every memory write. Supporting a new panel
// means adding a Descriptor to the registry; it must pass Validate like
// the built-in ones.
package panel

import (
	"errors"
	"fmt"
	"image"

	"github.com/flavioheleno/st7305/image1bit"
)

const (
	// ColumnBytes is the number of RAM bytes addressed by one column
	// address (12 pixels).
	ColumnBytes = 3
	// RowsPerPage is the number of pixel rows addressed by one row address.
	RowsPerPage = 2
	// pixelsPerByte is the number of columns packed in one byte.
	pixelsPerByte = 4
)

// ErrInvalidDescriptor is wrapped by every Validate failure.
var ErrInvalidDescriptor = errors.New("panel: invalid descriptor")

// Window is an inclusive address range sent to the controller, as the two
// parameter bytes of a column (0x2A) or row (0x2B) address command.
type Window [2]uint8

// Span returns the number of addresses covered by w.
func (w Window) Span() int {
	return int(w[1]) - int(w[0]) + 1
}

func (w Window) String() string {
	return fmt.Sprintf("[%#02x,%#02x]", w[0], w[1])
}

// Descriptor is the geometry of a physical panel.
type Descriptor struct {
	Name string // Identity tag, e.g. "st7305,168x384"

	Width  int // Logical width in pixels
	Height int // Logical height in pixels

	LeftOffset int // Columns skipped in RAM before the first visible one
	PageSize   int // Bytes per page (row pair)
	PageCount  int // Number of pages
	BufferSize int // Bytes in the packed buffer

	Columns Window // Column address window
	Rows    Window // Row (page) address window

	// Family builds the init sequence and the pixel layout.
	Family Family

	// Unreliable marks geometries known to misbehave on real hardware.
	Unreliable bool
}

// Bounds returns the logical image bounds of the panel.
func (d *Descriptor) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.Width, d.Height)
}

// Transform returns the pixel to bit mapping of the panel.
func (d *Descriptor) Transform() image1bit.Transform {
	return d.Family.Transform(d)
}

func (d *Descriptor) String() string {
	return fmt.Sprintf("%s{%dx%d}", d.Name, d.Width, d.Height)
}

// Validate cross-checks the geometry of d. A descriptor failing validation
// must never be used: packing into it would truncate or overrun the
// buffer.
func Validate(d *Descriptor) error {
	switch {
	case d.Name == "":
		return fmt.Errorf("%w: missing name", ErrInvalidDescriptor)
	case d.Family == nil:
		return fmt.Errorf("%w: %s: missing family", ErrInvalidDescriptor, d.Name)
	case d.Width <= 0 || d.Height <= 0:
		return fmt.Errorf("%w: %s: resolution %dx%d", ErrInvalidDescriptor, d.Name, d.Width, d.Height)
	case d.LeftOffset < 0:
		return fmt.Errorf("%w: %s: negative left offset %d", ErrInvalidDescriptor, d.Name, d.LeftOffset)
	case d.Columns[1] < d.Columns[0] || d.Rows[1] < d.Rows[0]:
		return fmt.Errorf("%w: %s: reversed address window %v %v", ErrInvalidDescriptor, d.Name, d.Columns, d.Rows)
	}
	if got := d.PageSize * d.PageCount; got != d.BufferSize {
		return fmt.Errorf("%w: %s: page size %d * page count %d = %d, buffer size is %d",
			ErrInvalidDescriptor, d.Name, d.PageSize, d.PageCount, got, d.BufferSize)
	}
	if got := d.Columns.Span() * ColumnBytes; got != d.PageSize {
		return fmt.Errorf("%w: %s: column window %v covers %d bytes, page size is %d",
			ErrInvalidDescriptor, d.Name, d.Columns, got, d.PageSize)
	}
	if got := d.Rows.Span(); got != d.PageCount {
		return fmt.Errorf("%w: %s: row window %v covers %d pages, page count is %d",
			ErrInvalidDescriptor, d.Name, d.Rows, got, d.PageCount)
	}
	if got := d.Columns.Span() * ColumnBytes * d.Rows.Span(); got != d.BufferSize {
		return fmt.Errorf("%w: %s: address window covers %d bytes, buffer size is %d",
			ErrInvalidDescriptor, d.Name, got, d.BufferSize)
	}
	if got := d.Width + d.LeftOffset; got > d.PageSize*pixelsPerByte {
		return fmt.Errorf("%w: %s: width %d + left offset %d exceeds %d columns per page",
			ErrInvalidDescriptor, d.Name, d.Width, d.LeftOffset, d.PageSize*pixelsPerByte)
	}
	if d.Height > d.PageCount*RowsPerPage {
		return fmt.Errorf("%w: %s: height %d exceeds %d rows",
			ErrInvalidDescriptor, d.Name, d.Height, d.PageCount*RowsPerPage)
	}
	return nil
}
