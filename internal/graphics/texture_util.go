package graphics

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned for images that are neither RGB nor RGBA.
var ErrUnsupportedFormat = errors.New("unsupported image format for texture")

// PixelFormat is the GL layout of decoded texture data.
type PixelFormat int

const (
	FormatRGB  PixelFormat = 3
	FormatRGBA PixelFormat = 4
)

func (f PixelFormat) glFormat() int32 {
	if f == FormatRGB {
		return gl.RGB
	}
	return gl.RGBA
}

// Pixels is a decoded image, tightly packed, top row first.
type Pixels struct {
	Format PixelFormat
	Width  int
	Height int
	Data   []byte
}

// BytesPerPixel reports the natural channel layout of a decoded image: 3 for
// colour without alpha, 4 for colour with alpha, 0 for anything else (grey,
// paletted, CMYK).
func BytesPerPixel(img image.Image) int {
	switch img.(type) {
	case *image.RGBA, *image.NRGBA, *image.RGBA64, *image.NRGBA64:
		return 4
	case *image.YCbCr:
		return 3
	}
	return 0
}

// ToPixels converts img into packed RGB or RGBA bytes.
func ToPixels(img image.Image) (*Pixels, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	switch BytesPerPixel(img) {
	case 4:
		nrgba := image.NewNRGBA(image.Rect(0, 0, w, h))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
		return &Pixels{Format: FormatRGBA, Width: w, Height: h, Data: nrgba.Pix}, nil
	case 3:
		data := make([]byte, 0, w*h*3)
		for y := b.Min.Y; y < b.Max.Y; y++ {
			for x := b.Min.X; x < b.Max.X; x++ {
				r, g, bl, _ := img.At(x, y).RGBA()
				data = append(data, byte(r>>8), byte(g>>8), byte(bl>>8))
			}
		}
		return &Pixels{Format: FormatRGB, Width: w, Height: h, Data: data}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedFormat, img)
}

// DecodeTexture reads and decodes an image file into packed pixels.
func DecodeTexture(path string) (*Pixels, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open texture file: %w", err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	px, err := ToPixels(img)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return px, nil
}

// LoadTexture decodes an image file and uploads it as a repeating, linearly
// filtered 2D texture.
func LoadTexture(path string) (uint32, error) {
	px, err := DecodeTexture(path)
	if err != nil {
		return 0, err
	}
	return UploadTexture(px), nil
}

// UploadTexture creates a GL texture from px.
func UploadTexture(px *Pixels) uint32 {
	var texture uint32
	gl.GenTextures(1, &texture)
	gl.BindTexture(gl.TEXTURE_2D, texture)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	// RGB rows are not 4-byte aligned in general.
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	gl.TexImage2D(
		gl.TEXTURE_2D,
		0,
		px.Format.glFormat(),
		int32(px.Width),
		int32(px.Height),
		0,
		uint32(px.Format.glFormat()),
		gl.UNSIGNED_BYTE,
		gl.Ptr(px.Data),
	)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return texture
}
