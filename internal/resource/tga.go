package resource

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// TGA image types the decoder accepts.
const (
	tgaTrueColor    = 2
	tgaTrueColorRLE = 10
)

const tgaHeaderSize = 18

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes an uncompressed or RLE true-color TGA at 24 or 32 bpp.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, errors.New("tga: header too short")
	}

	idLen := int(data[0])
	if data[1] != 0 {
		return nil, errors.New("tga: color-mapped images not supported")
	}
	kind := data[2]
	if kind != tgaTrueColor && kind != tgaTrueColorRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", kind)
	}

	w := int(data[12]) | int(data[13])<<8
	h := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}
	topDown := data[17]&0x20 != 0

	start := tgaHeaderSize + idLen
	if start > len(data) {
		return nil, errTGATruncated
	}

	px := &tgaPixels{
		src:      data[start:],
		stride:   bpp / 8,
		rle:      kind == tgaTrueColorRLE,
		img:      image.NewRGBA(image.Rect(0, 0, w, h)),
		width:    w,
		height:   h,
		topDown:  topDown,
		capacity: w * h,
	}
	if err := px.decode(); err != nil {
		return nil, err
	}
	return px.img, nil
}

type tgaPixels struct {
	src      []byte
	pos      int
	stride   int
	rle      bool
	img      *image.RGBA
	width    int
	height   int
	topDown  bool
	capacity int
	written  int
}

func (p *tgaPixels) decode() error {
	if !p.rle {
		if len(p.src) < p.capacity*p.stride {
			return errTGATruncated
		}
		for p.written < p.capacity {
			c, _ := p.next()
			p.put(c)
		}
		return nil
	}

	for p.written < p.capacity {
		if p.pos >= len(p.src) {
			return errTGATruncated
		}
		header := p.src[p.pos]
		p.pos++
		count := int(header&0x7f) + 1

		if header&0x80 != 0 {
			c, ok := p.next()
			if !ok {
				return errTGATruncated
			}
			for i := 0; i < count && p.written < p.capacity; i++ {
				p.put(c)
			}
			continue
		}

		for i := 0; i < count && p.written < p.capacity; i++ {
			c, ok := p.next()
			if !ok {
				return errTGATruncated
			}
			p.put(c)
		}
	}
	return nil
}

// next reads one BGR(A) pixel.
func (p *tgaPixels) next() (color.RGBA, bool) {
	if p.pos+p.stride > len(p.src) {
		return color.RGBA{}, false
	}
	b := p.src[p.pos : p.pos+p.stride]
	p.pos += p.stride

	c := color.RGBA{R: b[2], G: b[1], B: b[0], A: 0xff}
	if p.stride == 4 {
		c.A = b[3]
	}
	return c, true
}

func (p *tgaPixels) put(c color.RGBA) {
	x := p.written % p.width
	y := p.written / p.width
	if !p.topDown {
		y = p.height - 1 - y
	}
	p.img.SetRGBA(x, y, c)
	p.written++
}
