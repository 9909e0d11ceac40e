package panel

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Default is the identity of the panel the driver was first written for.
const Default = "st7305,168x384"

// ErrUnknownPanel is returned by Lookup for an unregistered identity.
var ErrUnknownPanel = errors.New("panel: unknown panel")

// builtin lists the known panel geometries.
var builtin = []Descriptor{
	{
		// 2.9" 168x384.
		Name:  "st7305,168x384",
		Width: 168, Height: 384,
		LeftOffset: 0, PageSize: 42, PageCount: 192, BufferSize: 8064,
		Columns: Window{0x17, 0x24}, Rows: Window{0x00, 0xBF},
		Family: ST7305,
	},
	{
		// 4.2" 300x400.
		Name:  "st7305,300x400",
		Width: 300, Height: 400,
		LeftOffset: 0, PageSize: 75, PageCount: 200, BufferSize: 15000,
		Columns: Window{0x04, 0x1C}, Rows: Window{0x00, 0xC7},
		Family: ST7305,
	},
	{
		// 2.13" 122x250.
		Name:  "st7305,122x250",
		Width: 122, Height: 250,
		LeftOffset: 10, PageSize: 33, PageCount: 125, BufferSize: 4125,
		Columns: Window{0x19, 0x23}, Rows: Window{0x00, 0x7C},
		Family: ST7305,
	},
	{
		// 1.54" 200x200.
		Name:  "st7305,200x200",
		Width: 200, Height: 200,
		LeftOffset: 4, PageSize: 51, PageCount: 100, BufferSize: 5100,
		Columns: Window{0x13, 0x23}, Rows: Window{0x00, 0x63},
		Family: ST7305,
	},
	{
		// 2.7" 176x264.
		Name:  "st7305,176x264",
		Width: 176, Height: 264,
		LeftOffset: 4, PageSize: 45, PageCount: 132, BufferSize: 5940,
		Columns: Window{0x16, 0x24}, Rows: Window{0x00, 0x83},
		Family: ST7305,
	},
	{
		// 3.5" 210x480. The controller stops refreshing after a few
		// seconds with this geometry.
		Name:  "st7305,210x480",
		Width: 210, Height: 480,
		LeftOffset: 6, PageSize: 54, PageCount: 240, BufferSize: 12960,
		Columns: Window{0x12, 0x23}, Rows: Window{0x00, 0xEF},
		Family:     ST7305,
		Unreliable: true,
	},
}

var registry = struct {
	sync.RWMutex
	panels map[string]Descriptor
}{panels: map[string]Descriptor{}}

func init() {
	for _, d := range builtin {
		if err := Register(d); err != nil {
			panic(err)
		}
	}
}

// Register validates d and makes it available to Lookup.
func Register(d Descriptor) error {
	if err := Validate(&d); err != nil {
		return err
	}
	registry.Lock()
	defer registry.Unlock()
	if _, ok := registry.panels[d.Name]; ok {
		return fmt.Errorf("panel: %q already registered", d.Name)
	}
	registry.panels[d.Name] = d
	return nil
}

// Lookup returns the descriptor registered for the identity tag id.
func Lookup(id string) (Descriptor, error) {
	registry.RLock()
	defer registry.RUnlock()
	d, ok := registry.panels[id]
	if !ok {
		return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownPanel, id)
	}
	return d, nil
}

// Names returns the registered identity tags, sorted.
func Names() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.panels))
	for name := range registry.panels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
