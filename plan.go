package st7305

import (
	"image"

	"github.com/flavioheleno/st7305/dither"
	"github.com/flavioheleno/st7305/panel"
)

// Plan returns the rectangle to convert and pack for a damaged rectangle.
//
// An empty damage is a no-op and returns an empty rectangle. Ordered
// dithering is pinned to absolute panel coordinates, so any update with a
// dithering mode other than dither.None reconverts the whole panel;
// redithering only the damage would leave its edges out of phase with the
// surrounding pixels. Without dithering the damage is used as is, clipped
// to bounds.
func Plan(damage image.Rectangle, mode dither.Mode, bounds image.Rectangle) image.Rectangle {
	if damage.Empty() {
		return image.Rectangle{}
	}
	if mode != dither.None {
		return bounds
	}
	return damage.Intersect(bounds)
}

// pixelsPerColumn is the number of pixel columns behind one column address.
const pixelsPerColumn = panel.ColumnBytes * 4

// addressWindow returns the smallest controller window covering r, which
// must be non-empty and inside the panel bounds. The full panel maps to the
// descriptor's own windows.
func addressWindow(r image.Rectangle, d *panel.Descriptor) (cols, rows panel.Window) {
	if r == d.Bounds() {
		return d.Columns, d.Rows
	}
	first := (r.Min.X + d.LeftOffset) / pixelsPerColumn
	last := (r.Max.X - 1 + d.LeftOffset) / pixelsPerColumn
	cols = panel.Window{d.Columns[0] + uint8(first), d.Columns[0] + uint8(last)}

	first = r.Min.Y / panel.RowsPerPage
	last = (r.Max.Y - 1) / panel.RowsPerPage
	rows = panel.Window{d.Rows[0] + uint8(first), d.Rows[0] + uint8(last)}
	return cols, rows
}

// windowBytes copies the bytes of the window cols x rows out of the packed
// buffer pix, page by page, in the order the controller expects them.
func windowBytes(pix []byte, d *panel.Descriptor, cols, rows panel.Window) []byte {
	if cols == d.Columns && rows == d.Rows {
		return pix
	}
	start := int(cols[0]-d.Columns[0]) * panel.ColumnBytes
	width := cols.Span() * panel.ColumnBytes
	out := make([]byte, 0, width*rows.Span())
	for page := int(rows[0] - d.Rows[0]); page <= int(rows[1]-d.Rows[0]); page++ {
		off := page*d.PageSize + start
		out = append(out, pix[off:off+width]...)
	}
	return out
}
