package bitpack

import (
	"fmt"
	"image"
	"image/color"
	"strings"
)

var (
	inkColor        = color.Gray{Y: 0xff}
	backgroundColor = color.Gray{Y: 0x00}
)

// Bitmap is a 1-bit raster. A set pixel (true) is foreground ink; it renders as
// white through the image.Image interface, matching a lit display pixel.
//
// The origin of Rect is always (0, 0).
type Bitmap struct {
	// Pix holds one bool per pixel in row-major order.
	Pix []bool
	// Stride is the Pix distance between vertically adjacent pixels.
	Stride int
	Rect   image.Rectangle
}

var _ image.Image = (*Bitmap)(nil)

// New returns an all-background bitmap of the given size.
// Negative dimensions are treated as zero.
func New(width, height int) *Bitmap {
	width, height = max(width, 0), max(height, 0)

	return &Bitmap{
		Pix:    make([]bool, width*height),
		Stride: width,
		Rect:   image.Rect(0, 0, width, height),
	}
}

// FromRows builds a bitmap from ASCII art, one string per row.
//
// '#', 'X', 'x', '@', '*' and '1' mark ink; '.', ' ', '_', '-' and '0' mark
// background. All rows must have the same length.
func FromRows(rows ...string) (*Bitmap, error) {
	if len(rows) == 0 {
		return New(0, 0), nil
	}

	width := len(rows[0])
	b := New(width, len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("row %d has %d pixels, want %d", y, len(row), width)
		}
		for x := 0; x < width; x++ {
			switch row[x] {
			case '#', 'X', 'x', '@', '*', '1':
				b.SetBit(x, y, true)
			case '.', ' ', '_', '-', '0':
			default:
				return nil, fmt.Errorf("row %d: unexpected pixel %q at column %d", y, row[x], x)
			}
		}
	}

	return b, nil
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.Rect.Dx() }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.Rect.Dy() }

// Size returns (width, height) as a point.
func (b *Bitmap) Size() image.Point { return b.Rect.Size() }

func (b *Bitmap) ColorModel() color.Model { return color.GrayModel }

func (b *Bitmap) Bounds() image.Rectangle { return b.Rect }

func (b *Bitmap) At(x, y int) color.Color {
	if b.BitAt(x, y) {
		return inkColor
	}

	return backgroundColor
}

// Set implements draw.Image. Colors at or above mid-gray become ink.
func (b *Bitmap) Set(x, y int, c color.Color) {
	g, _ := color.GrayModel.Convert(c).(color.Gray)
	b.SetBit(x, y, g.Y >= 0x80)
}

// BitAt reports whether the pixel at (x, y) is ink. Out-of-bounds pixels are background.
func (b *Bitmap) BitAt(x, y int) bool {
	if !image.Pt(x, y).In(b.Rect) {
		return false
	}

	return b.Pix[y*b.Stride+x]
}

// SetBit sets the pixel at (x, y). Out-of-bounds writes are ignored.
func (b *Bitmap) SetBit(x, y int, v bool) {
	if !image.Pt(x, y).In(b.Rect) {
		return
	}
	b.Pix[y*b.Stride+x] = v
}

// Crop returns a copy of the top-left width × height region. Pixels outside the
// source bounds are background.
func (b *Bitmap) Crop(width, height int) *Bitmap {
	out := New(width, height)
	w, h := min(out.Width(), b.Width()), min(out.Height(), b.Height())
	for y := 0; y < h; y++ {
		copy(out.Pix[y*out.Stride:y*out.Stride+w], b.Pix[y*b.Stride:y*b.Stride+w])
	}

	return out
}

// Equal reports whether both bitmaps have the same size and pixels.
func (b *Bitmap) Equal(o *Bitmap) bool {
	if b == nil || o == nil {
		return b == o
	}
	if b.Size() != o.Size() {
		return false
	}
	w := b.Width()
	for y := 0; y < b.Height(); y++ {
		for x := 0; x < w; x++ {
			if b.Pix[y*b.Stride+x] != o.Pix[y*o.Stride+x] {
				return false
			}
		}
	}

	return true
}

// Rows renders the bitmap as ASCII art using ink and background runes.
func (b *Bitmap) Rows(ink, background byte) []string {
	rows := make([]string, b.Height())
	line := make([]byte, b.Width())
	for y := range rows {
		for x := range line {
			line[x] = background
			if b.Pix[y*b.Stride+x] {
				line[x] = ink
			}
		}
		rows[y] = string(line)
	}

	return rows
}

// String renders the bitmap with '#' for ink and '.' for background.
func (b *Bitmap) String() string {
	return strings.Join(b.Rows('#', '.'), "\n")
}
