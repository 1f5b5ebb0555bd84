package container

import (
	"fmt"
	"image"
	"io"

	"github.com/mrmattuschka/yokai-image/errs"
	"github.com/mrmattuschka/yokai-image/section"
)

// Reader gives random access to the images of a container.
//
// NewReader decodes only the metadata and the LUT; each image is read from r
// on demand by seeking to its section.
//
// Note: The Reader is NOT thread-safe because reads move the position of r.
type Reader struct {
	r         io.ReadSeeker
	meta      section.Metadata
	lut       *section.LUT
	lutLength int
	dataStart int64
}

// NewReader decodes the metadata and LUT blocks of the container stored at the
// beginning of r.
//
// Returns:
//   - *Reader: reader positioned on the container
//   - error: any metadata or LUT decoding error, or ErrCorruptData when the
//     LUT size disagrees with the declared image count
func NewReader(r io.ReadSeeker) (*Reader, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to container start: %w", err)
	}

	meta, err := section.DecodeMetadata(r)
	if err != nil {
		return nil, err
	}

	lut, lutLength, err := section.DecodeLUT(r, int64(meta.Length), meta)
	if err != nil {
		return nil, err
	}
	if lut.Len() != meta.ImageCount {
		return nil, fmt.Errorf("%w: lut has %d entries, metadata declares %d images",
			errs.ErrCorruptData, lut.Len(), meta.ImageCount)
	}

	return &Reader{
		r:         r,
		meta:      meta,
		lut:       lut,
		lutLength: lutLength,
		dataStart: int64(meta.Length + lutLength),
	}, nil
}

// Metadata returns the decoded metadata block.
func (rd *Reader) Metadata() section.Metadata {
	return rd.meta
}

// Len returns the number of images in the container.
func (rd *Reader) Len() int {
	return rd.lut.Len()
}

// Keys returns the image keys in stored order.
func (rd *Reader) Keys() []Key {
	entries := rd.lut.Entries()
	keys := make([]Key, len(entries))
	for i, e := range entries {
		keys[i] = Key(e.Key)
	}

	return keys
}

// LUTEntries returns the decoded LUT in stored order. The slice must not be modified.
func (rd *Reader) LUTEntries() []section.LUTEntry {
	return rd.lut.Entries()
}

// LUTLength returns the LUT block length in bytes.
func (rd *Reader) LUTLength() int {
	return rd.lutLength
}

// DataStart returns the absolute position of the image data block.
func (rd *Reader) DataStart() int64 {
	return rd.dataStart
}

func (rd *Reader) pointer(key Key) (int64, error) {
	ptr, ok := rd.lut.Lookup(byte(key))
	if !ok {
		return 0, fmt.Errorf("%w: %d", errs.ErrKeyNotFound, key)
	}

	return ptr, nil
}

// ImageSize returns the (width, height) of the image stored under key without
// reading its pixels.
func (rd *Reader) ImageSize(key Key) (image.Point, error) {
	ptr, err := rd.pointer(key)
	if err != nil {
		return image.Point{}, err
	}

	return section.ReadImageSize(rd.r, rd.dataStart, ptr)
}

// Section returns the raw image section stored under key.
func (rd *Reader) Section(key Key) (section.ImageSection, error) {
	ptr, err := rd.pointer(key)
	if err != nil {
		return section.ImageSection{}, err
	}

	return section.ReadImage(rd.r, rd.dataStart, ptr)
}

// Image reads and unpacks the image stored under key.
func (rd *Reader) Image(key Key) (Image, error) {
	s, err := rd.Section(key)
	if err != nil {
		return Image{}, err
	}

	b, err := s.Bitmap(rd.meta)
	if err != nil {
		return Image{}, fmt.Errorf("key %d: %w", key, err)
	}

	return Image{Bitmap: b, Width: s.Width, Height: s.Height}, nil
}

// ImageInto copies the packed pixels of the image stored under key into buf.
//
// Returns:
//   - image.Point: the image size
//   - int: number of bytes written to buf
//   - error: ErrKeyNotFound, io.ErrShortBuffer, or read errors
func (rd *Reader) ImageInto(key Key, buf []byte) (image.Point, int, error) {
	ptr, err := rd.pointer(key)
	if err != nil {
		return image.Point{}, 0, err
	}

	return section.ReadImageInto(rd.r, rd.dataStart, ptr, buf)
}
