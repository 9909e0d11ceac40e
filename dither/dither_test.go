package dither

import (
	"bytes"
	"errors"
	"image"
	"math"
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"0", None, false},
		{"1", Bayer4x4, false},
		{"2", Bayer16x16, false},
		{"2\n", Bayer16x16, false},
		{" 1 ", Bayer4x4, false},
		{"none", None, false},
		{"Bayer4x4", Bayer4x4, false},
		{"bayer16x16", Bayer16x16, false},
		{"3", None, true},
		{"255", None, true},
		{"256", None, true},
		{"-1", None, true},
		{"", None, true},
		{"floyd", None, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidMode) {
				t.Errorf("ParseMode(%q) error = %v, want ErrInvalidMode", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestModeSetKeepsValueOnError(t *testing.T) {
	m := Bayer16x16
	if err := m.Set("7"); err == nil {
		t.Fatal("Set(\"7\") should fail")
	}
	if m != Bayer16x16 {
		t.Errorf("mode = %v after rejected Set, want %v", m, Bayer16x16)
	}
	if err := m.Set("1"); err != nil {
		t.Fatal(err)
	}
	if m != Bayer4x4 {
		t.Errorf("mode = %v, want %v", m, Bayer4x4)
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		m    Mode
		want string
	}{
		{None, "none"},
		{Bayer4x4, "bayer4x4"},
		{Bayer16x16, "bayer16x16"},
		{Mode(9), "Mode(9)"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.want {
			t.Errorf("Mode(%d).String() = %q, want %q", uint8(tt.m), got, tt.want)
		}
	}
}

// bayer builds the n x n index matrix recursively.
func bayer(n int) [][]int {
	m := [][]int{{0}}
	for len(m) < n {
		k := len(m)
		next := make([][]int, 2*k)
		for y := range next {
			next[y] = make([]int, 2*k)
		}
		for y := 0; y < k; y++ {
			for x := 0; x < k; x++ {
				v := 4 * m[y][x]
				next[y][x] = v
				next[y][x+k] = v + 2
				next[y+k][x] = v + 3
				next[y+k][x+k] = v + 1
			}
		}
		m = next
	}
	return m
}

func TestBayerMatrices(t *testing.T) {
	want4 := bayer(4)
	for y := range bayer4x4 {
		for x := range bayer4x4[y] {
			if int(bayer4x4[y][x]) != want4[y][x] {
				t.Errorf("bayer4x4[%d][%d] = %d, want %d", y, x, bayer4x4[y][x], want4[y][x])
			}
		}
	}
	want16 := bayer(16)
	for y := range bayer16x16 {
		for x := range bayer16x16[y] {
			if int(bayer16x16[y][x]) != want16[y][x] {
				t.Errorf("bayer16x16[%d][%d] = %d, want %d", y, x, bayer16x16[y][x], want16[y][x])
			}
		}
	}
}

func TestApplyThresholdNone(t *testing.T) {
	got := Apply(None, []byte{0, 128, 129, 255}, 4, 1)
	want := []byte{Black, Black, White, White}
	if !bytes.Equal(got, want) {
		t.Errorf("Apply(None) = %v, want %v", got, want)
	}
}

func TestApplyEmpty(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 4},
		{"zero height", 4, 0},
		{"negative", -1, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Apply(Bayer4x4, nil, tt.w, tt.h); len(got) != 0 {
				t.Errorf("Apply(%d, %d) returned %d bytes, want 0", tt.w, tt.h, len(got))
			}
		})
	}
}

func uniform(level byte, n int) []byte {
	return bytes.Repeat([]byte{level}, n*n)
}

func TestCoverage(t *testing.T) {
	tests := []struct {
		mode Mode
		n    int
	}{
		{Bayer4x4, 4},
		{Bayer16x16, 16},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			prev := -1
			for level := 0; level < 256; level++ {
				out := Apply(tt.mode, uniform(byte(level), tt.n), tt.n, tt.n)
				white := bytes.Count(out, []byte{White})

				below := 0
				for y := 0; y < tt.n; y++ {
					for x := 0; x < tt.n; x++ {
						if int(Threshold(tt.mode, x, y)) < level {
							below++
						}
					}
				}
				if white != below {
					t.Fatalf("level %d: %d white cells, want %d", level, white, below)
				}
				if white < prev {
					t.Fatalf("level %d: coverage %d dropped below %d", level, white, prev)
				}
				prev = white

				cells := tt.n * tt.n
				if ideal := float64(level*cells) / 255; math.Abs(float64(white)-ideal) > 1 {
					t.Errorf("level %d: %d white cells, want about %.1f", level, white, ideal)
				}
			}
		})
	}
}

func TestCoverageKnownLevels(t *testing.T) {
	tests := []struct {
		level byte
		want  int
	}{
		{0, 0},
		{64, 4},
		{128, 8},
		{192, 12},
		{255, 16},
	}
	for _, tt := range tests {
		out := Apply(Bayer4x4, uniform(tt.level, 4), 4, 4)
		if got := bytes.Count(out, []byte{White}); got != tt.want {
			t.Errorf("level %d: %d white cells, want %d", tt.level, got, tt.want)
		}
	}
}

func TestApplyDeterministic(t *testing.T) {
	src := make([]byte, 37*23)
	for i := range src {
		src[i] = byte(i * 7)
	}
	for _, m := range []Mode{None, Bayer4x4, Bayer16x16} {
		first := Apply(m, src, 37, 23)
		// Unrelated calls in between must not influence the result.
		Apply(m, uniform(200, 16), 16, 16)
		Apply(m, src[:5], 5, 1)
		if second := Apply(m, src, 37, 23); !bytes.Equal(first, second) {
			t.Errorf("%v: Apply is not deterministic", m)
		}
	}
}

func TestImagePhaseIsAbsolute(t *testing.T) {
	full := image.NewGray(image.Rect(0, 0, 40, 24))
	for i := range full.Pix {
		full.Pix[i] = byte(i * 13)
	}
	want := Image(Bayer16x16, full)

	r := image.Rect(5, 3, 29, 17)
	got := Image(Bayer16x16, full.SubImage(r).(*image.Gray))
	if got.Rect != r {
		t.Fatalf("Rect = %v, want %v", got.Rect, r)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if g, w := got.GrayAt(x, y), want.GrayAt(x, y); g != w {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, g, w)
			}
		}
	}
}

func TestImageMatchesApply(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 20, 9))
	for i := range img.Pix {
		img.Pix[i] = byte(i * 31)
	}
	for _, m := range []Mode{None, Bayer4x4, Bayer16x16} {
		if got, want := Image(m, img).Pix, Apply(m, img.Pix, 20, 9); !bytes.Equal(got, want) {
			t.Errorf("%v: Image and Apply disagree", m)
		}
	}
}
