package texture

import (
	"fmt"
	"image"
	"image/color"
)

// TGA image types understood by DecodeTGA.
const (
	TGATypeUncompressed = 2
	TGATypeRLE          = 10
)

const tgaHeaderSize = 18

// DecodeTGA decodes an uncompressed or RLE true-colour TGA image with 24 or
// 32 bits per pixel. The result is always top-down.
func DecodeTGA(data []byte) (image.Image, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("%w: tga header too short", ErrDecode)
	}

	idLength := int(data[0])
	colorMapType := data[1]
	imageType := data[2]
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	topToBottom := data[17]&0x20 != 0

	if colorMapType != 0 {
		return nil, fmt.Errorf("%w: color-mapped tga", ErrUnsupported)
	}
	if imageType != TGATypeUncompressed && imageType != TGATypeRLE {
		return nil, fmt.Errorf("%w: tga type %d", ErrUnsupported, imageType)
	}
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("%w: tga bit depth %d", ErrUnsupported, bpp)
	}

	offset := tgaHeaderSize + idLength
	if offset > len(data) {
		return nil, fmt.Errorf("%w: tga id field truncated", ErrDecode)
	}

	d := tgaDecoder{
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		src:         data[offset:],
		width:       width,
		height:      height,
		bytesPerPx:  bpp / 8,
		topToBottom: topToBottom,
	}

	var err error
	if imageType == TGATypeUncompressed {
		err = d.raw()
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	img         *image.RGBA
	src         []byte
	pos         int
	width       int
	height      int
	bytesPerPx  int
	topToBottom bool
}

// pixel reads one BGR(A) pixel at the cursor.
func (d *tgaDecoder) pixel() (color.RGBA, bool) {
	if d.pos+d.bytesPerPx > len(d.src) {
		return color.RGBA{}, false
	}
	p := d.src[d.pos:]
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.bytesPerPx == 4 {
		c.A = p[3]
	}
	d.pos += d.bytesPerPx
	return c, true
}

// put stores the n-th pixel in file order.
func (d *tgaDecoder) put(n int, c color.RGBA) {
	x, y := n%d.width, n/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
}

func (d *tgaDecoder) raw() error {
	if len(d.src) < d.width*d.height*d.bytesPerPx {
		return fmt.Errorf("%w: tga pixel data truncated", ErrDecode)
	}
	for n := 0; n < d.width*d.height; n++ {
		c, _ := d.pixel()
		d.put(n, c)
	}
	return nil
}

// rle decodes run-length packets. Truncated input leaves the remaining
// pixels transparent.
func (d *tgaDecoder) rle() error {
	total := d.width * d.height
	n := 0
	for n < total && d.pos < len(d.src) {
		header := d.src[d.pos]
		d.pos++
		count := int(header&0x7F) + 1

		if header&0x80 != 0 {
			c, ok := d.pixel()
			if !ok {
				return nil
			}
			for i := 0; i < count && n < total; i++ {
				d.put(n, c)
				n++
			}
			continue
		}

		for i := 0; i < count && n < total; i++ {
			c, ok := d.pixel()
			if !ok {
				return nil
			}
			d.put(n, c)
			n++
		}
	}
	return nil
}
