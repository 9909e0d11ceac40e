// Package st7305 drives Sitronix ST7305 monochrome reflective LCD panels
// via SPI.
//
// The ST7305 stores one bit per pixel, packed four columns by two rows per
// byte ("4x2 paged"). Each 12 pixel column group is one column address and
// every two rows are one row address (page). Panels differ in resolution,
// left offset and address windows; the panel package holds a registry of
// known ones. This driver implements the display.Drawer interface from
// periph.io.
//
// # Display Characteristics
//
// - 1 bit per pixel, white when set
// - Gray sources rendered through ordered dithering (none, Bayer 4x4, Bayer 16x16)
// - Partial updates limited to the damaged address window when not dithering
// - Display inversion
//
// # Hardware Connection
//
// Connect the panel to your system via SPI:
//
//	Display Pin → System Pin
//	GND         → GND
//	VCC         → 3.3V
//	SCL/CLK     → SPI Clock (SCLK)
//	SDA/MOSI    → SPI Data (MOSI)
//	DC          → GPIO (any available pin)
//	CS          → SPI Chip Select (or GND if always selected)
//	RES         → Optional: GPIO for hardware reset
//
// # Basic Usage
//
//	package main
//
//	import (
//		"image"
//		"image/color"
//
//		"github.com/flavioheleno/st7305"
//		"github.com/flavioheleno/st7305/dither"
//		"periph.io/x/conn/v3/gpio/gpioreg"
//		"periph.io/x/conn/v3/spi/spireg"
//		"periph.io/x/host/v3"
//	)
//
//	func main() {
//		host.Init()
//
//		spiBus, _ := spireg.Open("")
//		dcPin := gpioreg.ByName("GPIO25")
//
//		dev, _ := st7305.NewSPI(spiBus, dcPin, &st7305.Opts{
//			Panel:  "st7305,300x400",
//			Dither: dither.Bayer4x4,
//		})
//		defer dev.Halt()
//
//		// A horizontal gray ramp, dithered on the way to the panel.
//		img := image.NewGray(dev.Bounds())
//		for y := 0; y < img.Rect.Dy(); y++ {
//			for x := 0; x < img.Rect.Dx(); x++ {
//				img.SetGray(x, y, color.Gray{Y: uint8(x * 255 / img.Rect.Dx())})
//			}
//		}
//		dev.Draw(dev.Bounds(), img, image.Point{})
//	}
//
// # Updates
//
// Draw converts the destination rectangle to gray, dithers it and packs it
// into the frame buffer, then sends the smallest address window covering
// it. Ordered dithering is tied to absolute panel coordinates, so with a
// dithering mode set every Draw converts and sends the whole panel. The
// first update after NewSPI, a Reset or a dithering mode change is always
// a full frame.
//
// Write sends a frame that is already packed; it must be exactly the
// panel buffer size. Drawing a whole panel *image1bit.PagedQuad in the
// panel layout does the same. Later dithered updates start from that
// frame.
//
// # Sessions
//
// Session holds the conversion state without any transport and can be
// used to produce frames for other links:
//
//	d, _ := panel.Lookup(panel.Default)
//	s, _ := st7305.NewSession(d, dither.Bayer16x16, st7305.GrayLuma)
//	f, _ := s.ConvertAndPack(src, src.Bounds())
//	// f.Columns, f.Rows and f.Data describe the transfer.
//
// # Compatibility with periph.io
//
// This driver implements the display.Drawer interface from periph.io:
// https://pkg.go.dev/periph.io/x/conn/v3/display
//
// It can be used with any periph.io tool or library expecting a
// display.Drawer.
package st7305
