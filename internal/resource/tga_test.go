package resource

import (
	"image/color"
	"testing"
)

func tgaHeader(kind byte, w, h int, bpp byte, descriptor byte) []byte {
	hdr := make([]byte, tgaHeaderSize)
	hdr[2] = kind
	hdr[12] = byte(w)
	hdr[13] = byte(w >> 8)
	hdr[14] = byte(h)
	hdr[15] = byte(h >> 8)
	hdr[16] = bpp
	hdr[17] = descriptor
	return hdr
}

func TestDecodeTGAUncompressedBottomUp(t *testing.T) {
	// 2x1 rows, bottom-up: first row in the file is the bottom row.
	data := tgaHeader(tgaTrueColor, 1, 2, 24, 0)
	data = append(data,
		0, 0, 255, // bottom: red (BGR)
		255, 0, 0, // top: blue
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("bottom pixel = %v, want red", got)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("top pixel = %v, want blue", got)
	}
}

func TestDecodeTGARLETopDown(t *testing.T) {
	data := tgaHeader(tgaTrueColorRLE, 3, 1, 32, 0x20)
	data = append(data,
		0x81, 0, 255, 0, 128, // run of 2 green, alpha 128
		0x00, 10, 20, 30, 255, // one raw pixel
	)

	img, err := DecodeTGA(data)
	if err != nil {
		t.Fatalf("DecodeTGA failed: %v", err)
	}
	green := color.RGBA{G: 255, A: 128}
	if img.RGBAAt(0, 0) != green || img.RGBAAt(1, 0) != green {
		t.Errorf("run pixels = %v %v, want %v", img.RGBAAt(0, 0), img.RGBAAt(1, 0), green)
	}
	if got := img.RGBAAt(2, 0); got != (color.RGBA{R: 30, G: 20, B: 10, A: 255}) {
		t.Errorf("raw pixel = %v", got)
	}
}

func TestDecodeTGAErrors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"short header", []byte{0, 0, 2}},
		{"color mapped", func() []byte { d := tgaHeader(tgaTrueColor, 1, 1, 24, 0); d[1] = 1; return d }()},
		{"grayscale", tgaHeader(3, 1, 1, 8, 0)},
		{"16 bit", tgaHeader(tgaTrueColor, 1, 1, 16, 0)},
		{"truncated raw", append(tgaHeader(tgaTrueColor, 2, 2, 24, 0), 1, 2, 3)},
		{"truncated rle", append(tgaHeader(tgaTrueColorRLE, 4, 1, 24, 0), 0x81, 1, 2, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeTGA(tt.data); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestDecodeSelectsTGAByExtension(t *testing.T) {
	data := append(tgaHeader(tgaTrueColor, 1, 1, 24, 0), 1, 2, 3)
	img, err := Decode(data, ".TGA")
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if img.Bounds().Dx() != 1 {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
}
