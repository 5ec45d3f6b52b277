// Package texture decodes images into GL-ready RGBA textures.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"os"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

var (
	// ErrDecode is returned when image data is malformed.
	ErrDecode = errors.New("texture: decode failed")
	// ErrUnsupported is returned for image formats or variants we cannot read.
	ErrUnsupported = errors.New("texture: unsupported format")
)

// Decode decodes image data. name is only used to pick the TGA decoder,
// which has no magic number; every other format is sniffed.
func Decode(name string, data []byte) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(name), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, name)
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, name, err)
	}
	return img, nil
}

// Load reads and decodes path, returning a bottom-up RGBA image ready for
// glTexImage2D.
func Load(path string) (*image.RGBA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading texture: %w", err)
	}
	img, err := Decode(path, data)
	if err != nil {
		return nil, err
	}
	rgba := ToRGBA(img)
	FlipVertical(rgba)
	return rgba, nil
}

// ToRGBA converts img to *image.RGBA with its origin at (0,0). An RGBA
// input that already starts at the origin is returned as is.
func ToRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Rect, img, b.Min, draw.Src)
	return rgba
}

// FlipVertical mirrors img top to bottom in place. GL samples textures
// with v = 0 at the bottom row.
func FlipVertical(img *image.RGBA) {
	b := img.Bounds()
	rowLen := b.Dx() * 4
	tmp := make([]byte, rowLen)
	for top, bottom := b.Min.Y, b.Max.Y-1; top < bottom; top, bottom = top+1, bottom-1 {
		t := img.Pix[img.PixOffset(b.Min.X, top):][:rowLen]
		u := img.Pix[img.PixOffset(b.Min.X, bottom):][:rowLen]
		copy(tmp, t)
		copy(t, u)
		copy(u, tmp)
	}
}
