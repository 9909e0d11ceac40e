package panel

import (
	"time"

	"github.com/flavioheleno/st7305/image1bit"
)

// ST7305 command set (MIPI DCS subset plus vendor registers).
const (
	SLPOUT  = 0x11 // Sleep out
	INVOFF  = 0x20 // Display inversion off
	INVON   = 0x21 // Display inversion on
	DISPOFF = 0x28 // Display off
	DISPON  = 0x29 // Display on
	CASET   = 0x2A // Column address set
	RASET   = 0x2B // Row address set
	RAMWR   = 0x2C // Memory write
	MADCTL  = 0x36 // Memory data access control
	HPM     = 0x38 // High power mode on
	COLMOD  = 0x3A // Data format select
	GTCON   = 0x62 // Gate timing control
	GATESET = 0xB0 // Gate line setting
	FRCTRL  = 0xB2 // Frame rate control
	GTUPEQH = 0xB3 // Update period gate EQ control in HPM
	GTUPEQL = 0xB4 // Update period gate EQ control in LPM
	SOUEQ   = 0xB7 // Source EQ enable
	PNLSET  = 0xB8 // Panel setting
	GAMAMS  = 0xB9 // Gamma mode setting
	GCTRL   = 0xC0 // Gate voltage setting
	VSHPCTR = 0xC1 // VSHP setting
	VSLPCTR = 0xC2 // VSLP setting
	VSHNCTR = 0xC4 // VSHN setting
	VSLNCTR = 0xC5 // VSLN setting
	VSIKCTR = 0xC9 // Source voltage select
	AUTOPWR = 0xD0 // Auto power down
	BSTEN   = 0xD1 // Booster enable
	OSCSET  = 0xD8 // Oscillator setting
	NVMLOAD = 0xD6 // NVM load control
)

// Command is one entry of an initialization table.
type Command struct {
	Cmd   byte
	Args  []byte
	Delay time.Duration // Wait after the command
}

// Family is a controller variant. It turns a Descriptor into the values
// that differ between controller families, so a Descriptor stays data only.
type Family interface {
	// Name identifies the family.
	Name() string
	// InitSequence returns the power-up table for d. The caller sends it
	// once, after the hardware reset.
	InitSequence(d *Descriptor) []Command
	// Transform returns the pixel to bit mapping of d.
	Transform(d *Descriptor) image1bit.Transform
}

// ST7305 is the family of panels wired to a Sitronix ST7305 in 4x2 paged
// monochrome mode.
var ST7305 Family = st7305Family{}

type st7305Family struct{}

func (st7305Family) Name() string {
	return "st7305"
}

func (st7305Family) Transform(d *Descriptor) image1bit.Transform {
	return image1bit.Layout{LeftOffset: d.LeftOffset, PageSize: d.PageSize}
}

// gateLines is the gate line setting: the number of driven lines divided
// by four, rounded up.
func gateLines(d *Descriptor) byte {
	return byte((d.PageCount*RowsPerPage + 3) / 4)
}

func (st7305Family) InitSequence(d *Descriptor) []Command {
	return []Command{
		{Cmd: NVMLOAD, Args: []byte{0x13, 0x02}},
		{Cmd: BSTEN, Args: []byte{0x01}},
		{Cmd: GCTRL, Args: []byte{0x08, 0x06}},
		{Cmd: VSHPCTR, Args: []byte{0x3C, 0x3E, 0x3C, 0x3C}}, // 4.8V
		{Cmd: VSLPCTR, Args: []byte{0x23, 0x21, 0x23, 0x23}}, // 0.98V
		{Cmd: VSHNCTR, Args: []byte{0x5A, 0x5C, 0x5A, 0x5A}}, // -3.6V
		{Cmd: VSLNCTR, Args: []byte{0x37, 0x35, 0x37, 0x37}}, // 0.22V
		{Cmd: OSCSET, Args: []byte{0x80, 0xE9}},
		{Cmd: FRCTRL, Args: []byte{0x02}},
		{Cmd: GTUPEQH, Args: []byte{0xE5, 0xF6, 0x17, 0x77, 0x77, 0x77, 0x77, 0x77, 0x77, 0x71}},
		{Cmd: GTUPEQL, Args: []byte{0x05, 0x46, 0x77, 0x77, 0x77, 0x77, 0x76, 0x45}},
		{Cmd: GTCON, Args: []byte{0x32, 0x03, 0x1F}},
		{Cmd: SOUEQ, Args: []byte{0x13}},
		{Cmd: GATESET, Args: []byte{gateLines(d)}},
		{Cmd: SLPOUT, Delay: 120 * time.Millisecond},
		{Cmd: VSIKCTR, Args: []byte{0x00}},
		{Cmd: MADCTL, Args: []byte{0x00}},
		{Cmd: COLMOD, Args: []byte{0x11}},
		{Cmd: GAMAMS, Args: []byte{0x20}},
		{Cmd: PNLSET, Args: []byte{0x29}},
		{Cmd: CASET, Args: []byte{d.Columns[0], d.Columns[1]}},
		{Cmd: RASET, Args: []byte{d.Rows[0], d.Rows[1]}},
		{Cmd: AUTOPWR, Args: []byte{0xFF}},
		{Cmd: HPM},
		{Cmd: DISPON},
	}
}
