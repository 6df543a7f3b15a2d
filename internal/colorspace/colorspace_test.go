package colorspace

import (
	"testing"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Pixel8
		wantErr bool
	}{
		{"valid", "0x123456", Pixel8{0x12, 0x34, 0x56}, false},
		{"uppercase prefix", "0X123456", Pixel8{0x12, 0x34, 0x56}, false},
		{"uppercase digits", "0xAABBCC", Pixel8{0xAA, 0xBB, 0xCC}, false},
		{"black", "0x000000", Pixel8{0, 0, 0}, false},
		{"white", "0xFFFFFF", Pixel8{255, 255, 255}, false},
		{"seven chars", "0x12345", Pixel8{}, true},
		{"nine chars", "0x1234567", Pixel8{}, true},
		{"no prefix", "12345678", Pixel8{}, true},
		{"bad digits", "0xZZZZZZ", Pixel8{}, true},
		{"hash prefix", "#123456", Pixel8{}, true},
		{"empty", "", Pixel8{}, true},
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

func TestPixel8Hex(t *testing.T) {
	c := Pixel8{0x1A, 0x2B, 0x3C}
	want := "0x1A2B3C"
	if got := c.Hex(); got != want {
		t.Errorf("Pixel8.Hex() = %q, want %q", got, want)
	}
}

func TestPixel8HexZeroPadding(t *testing.T) {
	c := Pixel8{0, 5, 10}
	want := "0x00050A"
	if got := c.Hex(); got != want {
		t.Errorf("Pixel8.Hex() = %q, want %q", got, want)
	}
}

func TestEncodeChannelTruncates(t *testing.T) {
	tests := []struct {
		name  string
		input float64
		want  uint8
	}{
		{"zero", 0.0, 0},
		{"one", 1.0, 255},
		{"just under one", 0.999, 254}, // 254.745 truncates, never rounds up
		{"half", 0.5, 127},
		{"above range clamps", 1.5, 255},
		{"below range clamps", -0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EncodeChannel(tt.input); got != tt.want {
				t.Errorf("EncodeChannel(%v) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	for c := 0; c <= 255; c++ {
		in := uint8(c)
		if got := EncodeChannel(DecodeChannel(in)); got != in {
			t.Errorf("EncodeChannel(DecodeChannel(%d)) = %d", in, got)
		}
	}
}

func TestDecodeChannelRange(t *testing.T) {
	if got := DecodeChannel(0); got != 0 {
		t.Errorf("DecodeChannel(0) = %v, want 0", got)
	}
	if got := DecodeChannel(255); got != 1 {
		t.Errorf("DecodeChannel(255) = %v, want 1", got)
	}
}
