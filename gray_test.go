package st7305

import (
	"image"
	"image/color"
	"testing"
)

func TestLuma(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b uint8
		want    uint8
	}{
		{"black", 0, 0, 0, 0},
		{"white", 255, 255, 255, 255},
		{"red", 255, 0, 0, 76},
		{"green", 0, 255, 0, 153},
		{"blue", 0, 0, 255, 25},
		{"gray", 128, 128, 128, 128},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := luma(tt.r, tt.g, tt.b); got != tt.want {
				t.Errorf("luma(%d, %d, %d) = %d, want %d", tt.r, tt.g, tt.b, got, tt.want)
			}
		})
	}
}

func TestLightness(t *testing.T) {
	if got := lightness(0, 0, 0); got != 0 {
		t.Errorf("lightness(black) = %d, want 0", got)
	}
	if got := lightness(255, 255, 255); got != 255 {
		t.Errorf("lightness(white) = %d, want 255", got)
	}
	prev := uint8(0)
	for v := 0; v < 256; v++ {
		got := lightness(uint8(v), uint8(v), uint8(v))
		if got < prev {
			t.Fatalf("lightness(%d) = %d, smaller than lightness(%d) = %d", v, got, v-1, prev)
		}
		prev = got
	}
	// L* lifts the dark half of the sRGB ramp.
	if got := lightness(128, 128, 128); got <= 128 {
		t.Errorf("lightness(128) = %d, want > 128", got)
	}
}

func TestParseGrayModel(t *testing.T) {
	tests := []struct {
		in      string
		want    GrayModel
		wantErr bool
	}{
		{"", GrayLuma, false},
		{"luma", GrayLuma, false},
		{" Lightness ", GrayLightness, false},
		{"drm", GrayLuma, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseGrayModel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseGrayModel(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseGrayModel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	var m GrayModel
	if err := m.Set("lightness"); err != nil || m != GrayLightness {
		t.Errorf("Set() = %v, model %v", err, m)
	}
	if err := m.Set("bogus"); err == nil || m != GrayLightness {
		t.Errorf("Set(bogus) = %v, model %v; want error and unchanged model", err, m)
	}
	if got := GrayModel(9).String(); got != "GrayModel(9)" {
		t.Errorf("String() = %q", got)
	}
}

func TestGrayscaleSources(t *testing.T) {
	bounds := image.Rect(0, 0, 8, 4)
	colors := []color.RGBA{
		{0, 0, 0, 0xFF},
		{0xFF, 0xFF, 0xFF, 0xFF},
		{0xFF, 0, 0, 0xFF},
		{0x20, 0x80, 0xC0, 0xFF},
	}

	rgba := image.NewRGBA(bounds)
	nrgba := image.NewNRGBA(bounds)
	xrgb := NewXRGB8888(bounds)
	for y := 0; y < bounds.Dy(); y++ {
		for x := 0; x < bounds.Dx(); x++ {
			c := colors[(x+y)%len(colors)]
			rgba.SetRGBA(x, y, c)
			nrgba.Set(x, y, c)
			xrgb.Set(x, y, c)
		}
	}

	r := image.Rect(1, 1, 7, 3)
	for _, m := range []GrayModel{GrayLuma, GrayLightness} {
		want := grayscale(rgba, r, m)
		if want.Rect != r {
			t.Fatalf("grayscale() bounds = %v, want %v", want.Rect, r)
		}
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				c := colors[(x+y)%len(colors)]
				if got := want.GrayAt(x, y).Y; got != m.reduce(c.R, c.G, c.B) {
					t.Errorf("%v: pixel (%d,%d) = %d, want %d", m, x, y, got, m.reduce(c.R, c.G, c.B))
				}
			}
		}
		for _, src := range []image.Image{nrgba, xrgb} {
			got := grayscale(src, r, m)
			for i := range want.Pix {
				if got.Pix[i] != want.Pix[i] {
					t.Errorf("%v: %T pixel %d = %d, want %d", m, src, i, got.Pix[i], want.Pix[i])
				}
			}
		}
	}
}

func TestGrayscaleGrayCopies(t *testing.T) {
	src := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range src.Pix {
		src.Pix[i] = byte(i * 16)
	}
	got := grayscale(src, image.Rect(1, 1, 3, 3), GrayLightness)
	want := []byte{80, 96, 144, 160}
	for i := range want {
		if got.Pix[i] != want[i] {
			t.Errorf("Pix[%d] = %d, want %d", i, got.Pix[i], want[i])
		}
	}
	got.Pix[0] = 0
	if src.Pix[5] != 80 {
		t.Error("grayscale() must not alias the source")
	}
}
