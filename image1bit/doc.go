// Package image1bit provides the 1-bit image format used by the ST7305
// reflective display controller.
//
// The controller groups pixels in pages of two rows. Each byte holds a
// 4x2 cell: four horizontally adjacent columns, each contributing its
// even-row and odd-row pixel. Bits are filled from the MSB:
//
//	bit:    7    6    5    4    3    2    1    0
//	pixel: x0y0 x0y1 x1y0 x1y1 x2y0 x2y1 x3y0 x3y1
//
// Bytes of a page follow each other left to right, and pages follow each
// other top to bottom, PageSize bytes apart. A column offset shifts the
// image right inside the controller RAM when the glass does not start at
// column 0.
//
// Memory layout example for a 4x2 block at the top-left corner:
//
//	Pixels (x,y): (0,0)=1 (1,0)=1 (0,1)=1, all others 0
//	Byte 0:       0b1110_0000
//	              (bit 7: x0y0, bit 6: x0y1, bit 5: x1y0)
//
// This package provides:
//
// - Bit: a black or white color
// - BitModel: a color model converting standard Go colors to Bit
// - Transform: the mapping from a pixel to its byte and bit
// - Layout: the ST7305 Transform
// - PagedQuad: an image.Image and draw.Image backed by a packed buffer
//
// Example usage:
//
//	layout := image1bit.Layout{PageSize: 42}
//	img := image1bit.NewPagedQuad(image.Rect(0, 0, 168, 384), layout, 8064)
//	img.SetBit(10, 20, image1bit.On)
//	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
package image1bit
