package container

import (
	"fmt"
	"image"

	"github.com/mrmattuschka/yokai-image/bitpack"
	"github.com/mrmattuschka/yokai-image/errs"
	"github.com/mrmattuschka/yokai-image/format"
	"github.com/mrmattuschka/yokai-image/internal/collision"
	"github.com/mrmattuschka/yokai-image/internal/options"
	"github.com/mrmattuschka/yokai-image/internal/pool"
	"github.com/mrmattuschka/yokai-image/section"
)

// maxFontKey is the largest key allowed in a font container (7-bit ASCII).
const maxFontKey = 0x7F

// Encoder builds one YI container.
//
// Images are validated as they are added; Finish lays out the image data
// block, the LUT and the metadata block and returns the complete container.
// Nothing is produced when any validation fails.
//
// Note: The Encoder is NOT thread-safe and NOT reusable. After Finish, create
// a new encoder for the next container.
type Encoder struct {
	*EncoderConfig

	kind     format.Kind
	tracker  *collision.Tracker
	images   []Image // parallel to tracker.Keys()
	maxSize  image.Point
	finished bool
}

// NewEncoder creates an encoder for a container of the given kind.
//
// Returns:
//   - *Encoder: encoder ready for Add
//   - error: ErrUnknownKind, or the first error returned by an option
func NewEncoder(kind format.Kind, opts ...EncoderOption) (*Encoder, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownKind, uint8(kind))
	}

	config := NewEncoderConfig()
	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	return &Encoder{
		EncoderConfig: config,
		kind:          kind,
		tracker:       collision.NewTracker(),
	}, nil
}

// Kind returns the container kind being built.
func (e *Encoder) Kind() format.Kind {
	return e.kind
}

// Len returns the number of images added so far.
func (e *Encoder) Len() int {
	return e.tracker.Count()
}

// Add appends img under key.
//
// Font containers only accept 7-bit ASCII keys. A rejected image leaves the
// encoder unchanged.
//
// Returns:
//   - error: ErrEncoderFinished, ErrTooManyImages, ErrInvalidKey,
//     ErrInvalidImageSize, or ErrDuplicateKey
func (e *Encoder) Add(key Key, img Image) error {
	if e.finished {
		return errs.ErrEncoderFinished
	}
	if e.tracker.Count() >= section.MaxImageCount {
		return fmt.Errorf("%w: limit is %d", errs.ErrTooManyImages, section.MaxImageCount)
	}
	if e.kind == format.KindFont && key > maxFontKey {
		return fmt.Errorf("%w: font key 0x%02x is not ASCII", errs.ErrInvalidKey, uint8(key))
	}
	if err := img.Validate(); err != nil {
		return fmt.Errorf("key %d: %w", key, err)
	}
	if err := e.tracker.Track(byte(key)); err != nil {
		return err
	}

	e.images = append(e.images, img)
	e.maxSize.X = max(e.maxSize.X, img.Width)
	e.maxSize.Y = max(e.maxSize.Y, img.Height)

	return nil
}

// AddBitmap adds b at its full size.
func (e *Encoder) AddBitmap(key Key, b *bitpack.Bitmap) error {
	if b == nil {
		return fmt.Errorf("key %d: %w: missing bitmap", key, errs.ErrInvalidImageSize)
	}

	return e.Add(key, NewImage(b))
}

// Finish assembles and returns the container.
//
// The encoder cannot be used afterwards, whether Finish succeeds or not.
//
// Returns:
//   - []byte: the encoded container, owned by the caller
//   - error: ErrEncoderFinished, ErrEmptyImageSet, or ErrPointerOverflow when a
//     fixed pointer width cannot address every image
func (e *Encoder) Finish() ([]byte, error) {
	if e.finished {
		return nil, errs.ErrEncoderFinished
	}
	e.finished = true

	if e.tracker.Count() == 0 {
		return nil, errs.ErrEmptyImageSet
	}

	buf := pool.GetContainerBuffer()
	defer pool.PutContainerBuffer(buf)

	bitmaps := make([]*bitpack.Bitmap, len(e.images))
	for i, img := range e.images {
		bitmaps[i] = img.Cropped()
	}

	offsets, data, err := section.EncodeImageData(buf.B, bitmaps, e.pixelEncoding)
	buf.B = data
	if err != nil {
		return nil, err
	}

	keys := e.tracker.Keys()
	lut := section.NewLUT(len(keys))
	for i, key := range keys {
		if err := lut.Add(key, offsets[i]); err != nil {
			return nil, err
		}
	}

	pointerLength := e.pointerLength
	if e.autoPointerLength {
		pointerLength, err = section.PointerLengthFor(lut.MaxOffset())
		if err != nil {
			return nil, err
		}
	}

	lutBytes, err := lut.Bytes(pointerLength)
	if err != nil {
		return nil, err
	}

	meta := section.NewMetadata(e.kind, e.pixelEncoding, e.textEncoding, pointerLength, len(keys), e.maxSize)
	metaBytes, err := meta.Bytes()
	if err != nil {
		return nil, err
	}

	out := pool.NewByteBuffer(len(metaBytes) + len(lutBytes) + buf.Len())
	_, _ = out.Write(metaBytes)
	_, _ = out.Write(lutBytes)
	if _, err := buf.WriteTo(out); err != nil {
		return nil, err
	}

	e.logger.Debug("encoded container",
		"kind", e.kind.String(),
		"images", len(keys),
		"pixel_encoding", e.pixelEncoding.String(),
		"pointer_length", pointerLength,
		"max_size", e.maxSize.String(),
		"metadata_bytes", len(metaBytes),
		"lut_bytes", len(lutBytes),
		"image_data_bytes", buf.Len(),
	)

	return out.Bytes(), nil
}

// Encode encodes entries, in order, into a container of the given kind.
func Encode(entries []Entry, kind format.Kind, opts ...EncoderOption) ([]byte, error) {
	enc, err := NewEncoder(kind, opts...)
	if err != nil {
		return nil, err
	}

	for _, entry := range entries {
		if err := enc.Add(entry.Key, entry.Image); err != nil {
			return nil, err
		}
	}

	return enc.Finish()
}

// EncodeSet encodes every image of set, in insertion order.
func EncodeSet(set *ImageSet, kind format.Kind, opts ...EncoderOption) ([]byte, error) {
	return Encode(set.Entries(), kind, opts...)
}
