package section

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/mrmattuschka/yokai-image/bitpack"
	"github.com/mrmattuschka/yokai-image/endian"
	"github.com/mrmattuschka/yokai-image/errs"
	"github.com/mrmattuschka/yokai-image/format"
	"github.com/mrmattuschka/yokai-image/internal/hash"
)

// ImageSection is one self-length-prefixed image record of the image data block.
type ImageSection struct {
	// Length is the self-inclusive section length: 12 + len(Data).
	Length int
	Width  int
	Height int
	// Data holds the packed pixels.
	Data []byte
}

// Size returns the true (width, height) stored in the section.
func (s ImageSection) Size() image.Point {
	return image.Pt(s.Width, s.Height)
}

// Digest returns the xxHash64 of the packed pixel data.
func (s ImageSection) Digest() uint64 {
	return hash.Digest(s.Data)
}

// Bitmap unpacks the section pixels using the container metadata.
//
// Sections packed at their own size without extra padding unpack directly.
// Otherwise the data is reshaped with a padded stride, either at MaxSize (a
// shared canvas, then cropped) or at the section size. Font containers try the
// canvas first and image containers their own size first. Data that fits
// neither shape is ErrCorruptData.
func (s ImageSection) Bitmap(meta Metadata) (*bitpack.Bitmap, error) {
	enc := meta.PixelEncoding
	own := s.Size()

	exact, err := bitpack.PackedLen(own.X, own.Y, enc)
	if err != nil {
		return nil, err
	}
	if exact == len(s.Data) {
		return bitpack.Unpack(s.Data, own.X, own.Y, enc)
	}

	shapes := [2]image.Point{own, meta.MaxSize}
	if meta.Kind == format.KindFont {
		shapes[0], shapes[1] = shapes[1], shapes[0]
	}

	for _, shape := range shapes {
		if shape.X < own.X || shape.Y < own.Y || !bitpack.Fits(len(s.Data), shape.X, shape.Y, enc) {
			continue
		}

		b, err := bitpack.Unpack(s.Data, shape.X, shape.Y, enc)
		if err != nil {
			return nil, err
		}
		if shape == own {
			return b, nil
		}

		return b.Crop(own.X, own.Y), nil
	}

	return nil, fmt.Errorf("%w: %d packed bytes match neither %dx%d nor max size %dx%d",
		errs.ErrCorruptData, len(s.Data), own.X, own.Y, meta.MaxSize.X, meta.MaxSize.Y)
}

// AppendImageSection appends one image section packing b with enc.
// The section records b's size as the true image size.
func AppendImageSection(dst []byte, b *bitpack.Bitmap, enc format.PixelEncoding) ([]byte, int, error) {
	start := len(dst)
	dst = append(dst, make([]byte, ImageSectionHeaderSize)...)

	dst, err := bitpack.AppendPack(dst, b, enc)
	if err != nil {
		return dst[:start], 0, err
	}

	length := len(dst) - start
	if length > math.MaxInt32 || b.Width() > math.MaxInt32 || b.Height() > math.MaxInt32 {
		return dst[:start], 0, fmt.Errorf("%w: %dx%d", errs.ErrInvalidImageSize, b.Width(), b.Height())
	}

	engine := endian.GetLittleEndianEngine()
	engine.PutUint32(dst[start:start+4], uint32(length))        //nolint: gosec
	engine.PutUint32(dst[start+4:start+8], uint32(b.Width()))   //nolint: gosec
	engine.PutUint32(dst[start+8:start+12], uint32(b.Height())) //nolint: gosec

	return dst, length, nil
}

// EncodeImageData appends the image data block to dst: one leading block tag
// followed by one section per bitmap, in order.
//
// Returns:
//   - []int64: offset of each section relative to the start of the block
//   - []byte: dst with the block appended
//   - error: pixel encoding or image size errors
func EncodeImageData(dst []byte, bitmaps []*bitpack.Bitmap, enc format.PixelEncoding) ([]int64, []byte, error) {
	start := len(dst)
	dst = append(dst, byte(BlockImageData))

	offsets := make([]int64, len(bitmaps))
	offset := int64(FirstImageOffset)
	for i, b := range bitmaps {
		var (
			n   int
			err error
		)
		dst, n, err = AppendImageSection(dst, b, enc)
		if err != nil {
			return nil, dst[:start], err
		}
		offsets[i] = offset
		offset += int64(n)
	}

	return offsets, dst, nil
}

// readSectionHeader seeks to offset+pointer and reads the 12-byte section header.
func readSectionHeader(r io.ReadSeeker, offset, pointer int64) (int, image.Point, error) {
	if err := seekTo(r, offset+pointer); err != nil {
		return 0, image.Point{}, err
	}

	var hdr [ImageSectionHeaderSize]byte
	if err := readFull(r, hdr[:], "image section header"); err != nil {
		return 0, image.Point{}, err
	}

	length := int(endian.Int32(hdr[0:4]))
	size := image.Pt(int(endian.Int32(hdr[4:8])), int(endian.Int32(hdr[8:12])))
	if length < ImageSectionHeaderSize {
		return 0, image.Point{}, fmt.Errorf("%w: section length %d at offset %d",
			errs.ErrCorruptData, length, offset+pointer)
	}
	if size.X < 0 || size.Y < 0 {
		return 0, image.Point{}, fmt.Errorf("%w: negative image size %v at offset %d",
			errs.ErrCorruptData, size, offset+pointer)
	}

	return length, size, nil
}

// ReadImageSize reads only the (width, height) of the section at offset+pointer,
// without touching the pixel bytes.
func ReadImageSize(r io.ReadSeeker, offset, pointer int64) (image.Point, error) {
	if err := seekTo(r, offset+pointer+4); err != nil {
		return image.Point{}, err
	}

	var wh [8]byte
	if err := readFull(r, wh[:], "image size"); err != nil {
		return image.Point{}, err
	}

	return image.Pt(int(endian.Int32(wh[0:4])), int(endian.Int32(wh[4:8]))), nil
}

// ReadImage reads the whole section at offset+pointer, where offset is the start
// of the image data block and pointer the LUT offset.
func ReadImage(r io.ReadSeeker, offset, pointer int64) (ImageSection, error) {
	length, size, err := readSectionHeader(r, offset, pointer)
	if err != nil {
		return ImageSection{}, err
	}

	data, err := readN(r, int64(length-ImageSectionHeaderSize), "image data")
	if err != nil {
		return ImageSection{}, err
	}

	return ImageSection{
		Length: length,
		Width:  size.X,
		Height: size.Y,
		Data:   data,
	}, nil
}

// ReadImageInto reads the packed bytes of the section at offset+pointer into buf,
// avoiding an allocation.
//
// Returns:
//   - image.Point: true (width, height) of the image
//   - int: number of packed bytes written to buf
//   - error: io.ErrShortBuffer when buf cannot hold the packed data, or read errors
func ReadImageInto(r io.ReadSeeker, offset, pointer int64, buf []byte) (image.Point, int, error) {
	length, size, err := readSectionHeader(r, offset, pointer)
	if err != nil {
		return image.Point{}, 0, err
	}

	n := length - ImageSectionHeaderSize
	if len(buf) < n {
		return size, 0, fmt.Errorf("%w: need %d bytes, have %d", io.ErrShortBuffer, n, len(buf))
	}
	if err := readFull(r, buf[:n], "image data"); err != nil {
		return size, 0, err
	}

	return size, n, nil
}
