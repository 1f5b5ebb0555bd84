// Package bitpack converts 1-bit rasters to and from the packed byte layouts
// used by monochrome display controllers.
//
// Three layouts are supported, named after MicroPython's framebuf constants:
//
//	Encoding | Packing axis | First pixel of a byte | Packed length
//	---------|--------------|-----------------------|---------------------------
//	HLSB     | horizontal   | most-significant bit  | ceil(width/8) * height
//	HMSB     | horizontal   | least-significant bit | ceil(width/8) * height
//	VLSB     | vertical     | most-significant bit  | ceil(height/8) * width
//
// Horizontal layouts store each row as ceil(width/8) bytes, rows top to bottom.
// VLSB stores bands of 8 rows; within a band byte i holds column i. When the
// packing axis is not a multiple of 8 it is padded with background bits which
// are never read back: Unpack always crops to the requested size.
package bitpack

import (
	"fmt"

	"github.com/mrmattuschka/yokai-image/errs"
	"github.com/mrmattuschka/yokai-image/format"
)

// PackedLen returns the number of bytes Pack produces for a width × height raster.
func PackedLen(width, height int, enc format.PixelEncoding) (int, error) {
	if !enc.Valid() {
		return 0, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownPixelEncoding, uint8(enc))
	}
	if width < 0 || height < 0 {
		return 0, fmt.Errorf("%w: %dx%d", errs.ErrInvalidImageSize, width, height)
	}
	if enc.Vertical() {
		return ceilBytes(height) * width, nil
	}

	return ceilBytes(width) * height, nil
}

// Pack packs b using enc and returns a newly allocated buffer.
func Pack(b *Bitmap, enc format.PixelEncoding) ([]byte, error) {
	return AppendPack(nil, b, enc)
}

// AppendPack packs b using enc and appends the result to dst.
func AppendPack(dst []byte, b *Bitmap, enc format.PixelEncoding) ([]byte, error) {
	w, h := b.Width(), b.Height()
	n, err := PackedLen(w, h, enc)
	if err != nil {
		return dst, err
	}

	start := len(dst)
	dst = append(dst, make([]byte, n)...)
	out := dst[start:]

	if enc.Vertical() {
		for y := 0; y < h; y++ {
			band := (y >> 3) * w
			mask := bitMask(y&7, false)
			row := b.Pix[y*b.Stride : y*b.Stride+w]
			for x, v := range row {
				if v {
					out[band+x] |= mask
				}
			}
		}

		return dst, nil
	}

	stride := ceilBytes(w)
	lsb := enc.LSBFirst()
	for y := 0; y < h; y++ {
		line := out[y*stride : (y+1)*stride]
		row := b.Pix[y*b.Stride : y*b.Stride+w]
		for x, v := range row {
			if v {
				line[x>>3] |= bitMask(x&7, lsb)
			}
		}
	}

	return dst, nil
}

// Unpack expands data packed with enc into a width × height bitmap.
//
// The buffer is reshaped against the padded packing axis: horizontal layouts
// use height rows of len(data)/height bytes, VLSB uses width columns of
// len(data)/width bands. Extra padding in the stride is allowed and cropped
// away. A buffer that does not divide into that shape, or is too short for the
// requested size, returns errs.ErrCorruptData.
func Unpack(data []byte, width, height int, enc format.PixelEncoding) (*Bitmap, error) {
	if !enc.Valid() {
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownPixelEncoding, uint8(enc))
	}
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: target size %dx%d", errs.ErrCorruptData, width, height)
	}

	if !Fits(len(data), width, height, enc) {
		if enc.Vertical() {
			return nil, fmt.Errorf("%w: %d bytes do not reshape to %d columns of %d rows",
				errs.ErrCorruptData, len(data), width, height)
		}

		return nil, fmt.Errorf("%w: %d bytes do not reshape to %d rows of %d pixels",
			errs.ErrCorruptData, len(data), height, width)
	}

	b := New(width, height)

	if enc.Vertical() {
		for y := 0; y < height; y++ {
			band := data[(y>>3)*width : (y>>3+1)*width]
			mask := bitMask(y&7, false)
			row := b.Pix[y*b.Stride : y*b.Stride+width]
			for x := range row {
				row[x] = band[x]&mask != 0
			}
		}

		return b, nil
	}

	stride := len(data) / height
	lsb := enc.LSBFirst()
	for y := 0; y < height; y++ {
		line := data[y*stride : (y+1)*stride]
		row := b.Pix[y*b.Stride : y*b.Stride+width]
		for x := range row {
			row[x] = line[x>>3]&bitMask(x&7, lsb) != 0
		}
	}

	return b, nil
}

// Fits reports whether n packed bytes reshape to a width × height raster
// along the padded packing axis, with a stride of at least the unpadded size.
func Fits(n, width, height int, enc format.PixelEncoding) bool {
	if width <= 0 || height <= 0 || !enc.Valid() {
		return false
	}
	if enc.Vertical() {
		return n%width == 0 && n/width >= ceilBytes(height)
	}

	return n%height == 0 && n/height >= ceilBytes(width)
}

func ceilBytes(bits int) int {
	return (bits + 7) >> 3
}

// bitMask returns the mask of the i-th pixel (0-7) in a packed byte.
func bitMask(i int, lsbFirst bool) byte {
	if lsbFirst {
		return 1 << uint(i)
	}

	return 0x80 >> uint(i)
}
