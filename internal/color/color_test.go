package color

import (
	"math"
	"strings"
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Color
		wantErr bool
	}{
		{"with hash", "#eb6f92", Color{235, 111, 146}, false},
		{"without hash", "eb6f92", Color{235, 111, 146}, false},
		{"short form", "#fa0", Color{255, 170, 0}, false},
		{"uppercase", "#AABBCC", Color{170, 187, 204}, false},
		{"four digits", "#abcd", Color{}, true},
		{"too long", "#aabbccdd", Color{}, true},
		{"invalid chars", "#zzzzzz", Color{}, true},
		{"empty", "", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseHex(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Color
		wantOK bool
	}{
		{"hex6", "#2563eb", Color{37, 99, 235}, true},
		{"hex3", "#FFF", Color{255, 255, 255}, true},
		{"padded", "  #111827 ", Color{17, 24, 39}, true},
		{"rgb", "rgb(37, 99, 235)", Color{37, 99, 235}, true},
		{"rgba drops alpha", "rgba(37, 99, 235, 0.35)", Color{37, 99, 235}, true},
		{"rgb clamps and rounds", "rgb(300, 0, 12.6)", Color{255, 0, 13}, true},
		{"uppercase function", "RGB(1,2,3)", Color{1, 2, 3}, true},
		{"transparent", "transparent", Color{}, false},
		{"empty", "", Color{}, false},
		{"named color", "red", Color{}, false},
		{"bare hex", "2563eb", Color{}, false},
		{"two channels", "rgb(1, 2)", Color{}, false},
		{"var reference", "var(--pi-color-primary)", Color{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, h := range []string{"#000000", "#FFFFFF", "#2563EB", "#1d4ed8", "#00050a"} {
		c, ok := Parse(h)
		if !ok {
			t.Fatalf("Parse(%q) failed", h)
		}
		if got := c.Hex(); got != strings.ToLower(h) {
			t.Errorf("Parse(%q).Hex() = %q, want %q", h, got, strings.ToLower(h))
		}
	}
}

func TestColorFormats(t *testing.T) {
	c := Color{235, 111, 146}
	if got := c.Hex(); got != "#eb6f92" {
		t.Errorf("Color.Hex() = %q, want %q", got, "#eb6f92")
	}
	if got := c.HexBare(); got != "eb6f92" {
		t.Errorf("Color.HexBare() = %q, want %q", got, "eb6f92")
	}
	if got := c.RGB(); got != "rgb(235, 111, 146)" {
		t.Errorf("Color.RGB() = %q, want %q", got, "rgb(235, 111, 146)")
	}
}

func TestFromRGBClamps(t *testing.T) {
	got := FromRGB(-20, 127.5, 999)
	want := Color{0, 128, 255}
	if got != want {
		t.Errorf("FromRGB() = %v, want %v", got, want)
	}
}

func TestNormalize(t *testing.T) {
	if got := Normalize("rgb(255, 0, 0)", "#000000"); got != "#ff0000" {
		t.Errorf("Normalize(rgb) = %q, want %q", got, "#ff0000")
	}
	if got := Normalize("nope", "#123456"); got != "#123456" {
		t.Errorf("Normalize(invalid) = %q, want fallback", got)
	}
}

func TestContrastRatio(t *testing.T) {
	black := Color{0, 0, 0}
	if got := ContrastRatio(White, black); math.Abs(got-21) > 1e-9 {
		t.Errorf("ContrastRatio(white, black) = %v, want 21", got)
	}
	if got := ContrastRatio(White, White); math.Abs(got-1) > 1e-9 {
		t.Errorf("ContrastRatio(white, white) = %v, want 1", got)
	}

	samples := []Color{{37, 99, 235}, {17, 24, 39}, {128, 128, 128}, {255, 170, 0}, White, black}
	for _, a := range samples {
		for _, b := range samples {
			ab, ba := ContrastRatio(a, b), ContrastRatio(b, a)
			if ab != ba {
				t.Errorf("ContrastRatio(%s, %s) = %v but reversed = %v", a.Hex(), b.Hex(), ab, ba)
			}
			if ab < 1 || ab > 21 {
				t.Errorf("ContrastRatio(%s, %s) = %v, out of range", a.Hex(), b.Hex(), ab)
			}
		}
	}
}

func TestRelativeLuminance(t *testing.T) {
	if got := RelativeLuminance(White); math.Abs(got-1) > 1e-9 {
		t.Errorf("RelativeLuminance(white) = %v, want 1", got)
	}
	if got := RelativeLuminance(Color{}); got != 0 {
		t.Errorf("RelativeLuminance(black) = %v, want 0", got)
	}
	got := RelativeLuminance(Color{128, 128, 128})
	if got < 0.21 || got > 0.22 {
		t.Errorf("RelativeLuminance(#808080) = %v, want about 0.216", got)
	}
}

func TestContrast(t *testing.T) {
	ratio, ok := Contrast("#ffffff", "#111827")
	if !ok {
		t.Fatal("Contrast() ok = false")
	}
	if ratio < 17 || ratio > 18.5 {
		t.Errorf("Contrast(white, #111827) = %v, want about 17.7", ratio)
	}
	if _, ok := Contrast("#ffffff", "transparent"); ok {
		t.Error("Contrast() with transparent should not be ok")
	}
}

func TestBestOn(t *testing.T) {
	tests := []struct {
		name string
		bg   Color
		want Color
	}{
		{"default blue takes white", Color{37, 99, 235}, White},
		{"yellow takes ink", Color{255, 255, 0}, Ink},
		{"black takes white", Color{}, White},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BestOn(tt.bg, White, Ink); got != tt.want {
				t.Errorf("BestOn(%s) = %s, want %s", tt.bg.Hex(), got.Hex(), tt.want.Hex())
			}
		})
	}
}

func TestLightenDarken(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string, float64) string
		in   string
		amt  float64
		want string
	}{
		{"lighten black half", Lighten, "#000000", 0.5, "#808080"},
		{"darken white half", Darken, "#ffffff", 0.5, "#808080"},
		{"darken primary", Darken, "#2563eb", 0.1, "#2159d4"},
		{"lighten zero is identity", Lighten, "#2563EB", 0, "#2563eb"},
		{"lighten clamps above one", Lighten, "#2563eb", 3, "#ffffff"},
		{"darken clamps below zero", Darken, "#2563eb", -1, "#2563eb"},
		{"darken full is black", Darken, "rgb(10, 20, 30)", 1, "#000000"},
		{"invalid passes through", Lighten, "not-a-color", 0.5, "not-a-color"},
		{"empty passes through", Darken, "", 0.5, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in, tt.amt); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNode_Lookup(t *testing.T) {
	// palette { ink = "#111827"; brand { color = "#ff6b35"; deep = "#dc2626" } }
	ink, _ := ParseHex("#111827")
	brand, _ := ParseHex("#ff6b35")
	deep, _ := ParseHex("#dc2626")

	root := &Node{
		Children: map[string]*Node{
			"ink": {Color: &ink},
			"brand": {
				Color: &brand,
				Children: map[string]*Node{
					"deep": {Color: &deep},
				},
			},
			"neutral": {
				Children: map[string]*Node{
					"light": {Color: &ink},
				},
			},
		},
	}

	tests := []struct {
		name    string
		path    []string
		want    string
		wantErr bool
	}{
		{"flat leaf", []string{"ink"}, "#111827", false},
		{"block with color", []string{"brand"}, "#ff6b35", false},
		{"nested child", []string{"brand", "deep"}, "#dc2626", false},
		{"through leaf", []string{"ink", "x"}, "", true},
		{"not found", []string{"missing"}, "", true},
		{"namespace only", []string{"neutral"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := root.Lookup(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("Lookup(%v) error = %v, wantErr %v", tt.path, err, tt.wantErr)
				return
			}
			if err == nil && got.Hex() != tt.want {
				t.Errorf("Lookup(%v) = %q, want %q", tt.path, got.Hex(), tt.want)
			}
		})
	}
}
