package picture

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"testing"
)

func testImage(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 90, A: 255})
		}
	}
	return img
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, testImage(w, h)); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, testImage(w, h), nil); err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	return buf.Bytes()
}

func gifBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := gif.Encode(&buf, testImage(w, h), nil); err != nil {
		t.Fatalf("encode gif: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeOutputDimensions(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"wide png", pngBytes(t, 300, 100)},
		{"tall png", pngBytes(t, 100, 300)},
		{"exact jpeg", jpegBytes(t, 150, 150)},
		{"large jpeg", jpegBytes(t, 1000, 700)},
		{"small gif upscaled", gifBytes(t, 50, 50)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Normalize(tt.input)
			if err != nil {
				t.Fatalf("normalize: %v", err)
			}

			cfg, format, err := image.DecodeConfig(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("decode output: %v", err)
			}
			if format != "jpeg" {
				t.Errorf("expected jpeg output, got %s", format)
			}
			if cfg.Width != TargetSize || cfg.Height != TargetSize {
				t.Errorf("expected %dx%d, got %dx%d", TargetSize, TargetSize, cfg.Width, cfg.Height)
			}
		})
	}
}

func TestNormalizeRejectsUndecodableInput(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", nil},
		{"garbage", []byte("definitely not an image")},
		{"truncated png", pngBytes(t, 40, 40)[:10]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Normalize(tt.input); !errors.Is(err, ErrBadImage) {
				t.Errorf("expected ErrBadImage, got %v", err)
			}
		})
	}
}

func TestNormalizeIsDeterministic(t *testing.T) {
	input := pngBytes(t, 320, 240)

	a, err := Normalize(input)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	b, err := Normalize(input)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}

	if !bytes.Equal(a, b) {
		t.Error("same input produced different output")
	}
}
