// Package yokai reads and writes YI containers: compact bundles of monochrome
// images and bitmap font glyphs meant to be blitted straight to a
// microcontroller display.
//
// A container stores up to 255 images, each under a one-byte key, in the bit
// layout of MicroPython's framebuf (HLSB, HMSB or VLSB) so the device can copy
// the packed bytes without converting them.
//
// # Core Features
//
//   - Three framebuf pixel layouts, chosen per container
//   - Random access to a single image through the lookup table
//   - Per-image sizes: glyphs of a proportional font keep their own width
//   - Configurable LUT pointer width (1-4 bytes) or automatic sizing
//
// # Basic Usage
//
// Encoding a font:
//
//	import "github.com/mrmattuschka/yokai-image"
//
//	set := container.NewImageSet()
//	glyph, _ := bitpack.FromRows(
//	    ".##.",
//	    "#..#",
//	    "####",
//	    "#..#",
//	)
//	_ = set.Add('A', container.NewImage(glyph))
//
//	data, err := yokai.EncodeFont(set, container.WithPixelEncoding(format.VLSB))
//
// Reading one glyph back:
//
//	f, err := yokai.Open("font.yi")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer f.Close()
//
//	img, err := f.Image('A')
//
// # Package Structure
//
// This package wraps the container package for the most common use cases.
// The section package exposes the individual blocks and bitpack the pixel
// layouts for callers that need finer control.
package yokai

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/mrmattuschka/yokai-image/container"
	"github.com/mrmattuschka/yokai-image/format"
	"github.com/mrmattuschka/yokai-image/section"
)

// NewEncoder creates a container encoder for the given kind.
//
// Example:
//
//	enc, err := yokai.NewEncoder(format.KindImages, container.WithAutoPointerLength())
//	_ = enc.AddBitmap(0, logo)
//	data, err := enc.Finish()
func NewEncoder(kind format.Kind, opts ...container.EncoderOption) (*container.Encoder, error) {
	return container.NewEncoder(kind, opts...)
}

// Encode encodes entries, in order, into a container of the given kind.
func Encode(entries []container.Entry, kind format.Kind, opts ...container.EncoderOption) ([]byte, error) {
	return container.Encode(entries, kind, opts...)
}

// EncodeImages encodes set as an image container keyed by integers 0-255.
//
// Parameters:
//   - set: images to store, in LUT order
//   - opts: pixel encoding, pointer width and logging options
//
// Returns:
//   - []byte: the encoded container
//   - error: a validation error from the errs package
func EncodeImages(set *container.ImageSet, opts ...container.EncoderOption) ([]byte, error) {
	return container.EncodeSet(set, format.KindImages, opts...)
}

// EncodeFont encodes set as a font container keyed by ASCII character codes.
// The text encoding section is always written.
func EncodeFont(set *container.ImageSet, opts ...container.EncoderOption) ([]byte, error) {
	return container.EncodeSet(set, format.KindFont, opts...)
}

// Decode reads every image of the container stored at the start of r.
func Decode(r io.ReadSeeker) (section.Metadata, *container.ImageSet, error) {
	return container.Decode(r)
}

// DecodeBytes reads every image of the container held in data.
func DecodeBytes(data []byte) (section.Metadata, *container.ImageSet, error) {
	return container.Decode(bytes.NewReader(data))
}

// NewReader opens the container stored at the start of r for random access.
func NewReader(r io.ReadSeeker) (*container.Reader, error) {
	return container.NewReader(r)
}

// File is a container reader that owns the underlying file.
type File struct {
	*container.Reader
	f *os.File
}

// Open opens the container file at path for random access. The caller must
// call Close when done.
func Open(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	rd, err := container.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	return &File{Reader: rd, f: f}, nil
}

// Name returns the path the file was opened with.
func (f *File) Name() string {
	return f.f.Name()
}

// Close closes the underlying file.
func (f *File) Close() error {
	return f.f.Close()
}
