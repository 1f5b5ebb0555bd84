package section

import (
	"fmt"
	"image"
	"io"
	"math"

	"github.com/mrmattuschka/yokai-image/endian"
	"github.com/mrmattuschka/yokai-image/errs"
	"github.com/mrmattuschka/yokai-image/format"
)

// Version is the (major, minor) stamp of a container.
type Version struct {
	Major uint8
	Minor uint8
}

// CurrentVersion returns the version written by this package.
func CurrentVersion() Version {
	return Version{Major: format.VersionMajor, Minor: format.VersionMinor}
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Metadata is the typed header stored in the metadata block.
type Metadata struct {
	Version Version
	// PointerLength is the width in bytes of each LUT offset (1-4).
	PointerLength int
	Kind          format.Kind
	// ImageCount is the number of images, at most MaxImageCount.
	ImageCount    int
	PixelEncoding format.PixelEncoding
	// TextEncoding is only meaningful when HasTextEncoding is set. Font
	// containers always carry it.
	TextEncoding    format.TextEncoding
	HasTextEncoding bool
	// MaxSize is the element-wise maximum (width, height) of all images.
	MaxSize image.Point

	// Length is the metadata block length. It is filled in by DecodeMetadata and
	// by Bytes, and locates the LUT block.
	Length int
}

// NewMetadata creates metadata stamped with the current version. The text
// encoding is attached only for font containers.
func NewMetadata(kind format.Kind, enc format.PixelEncoding, text format.TextEncoding,
	pointerLength, imageCount int, maxSize image.Point,
) Metadata {
	m := Metadata{
		Version:       CurrentVersion(),
		PointerLength: pointerLength,
		Kind:          kind,
		ImageCount:    imageCount,
		PixelEncoding: enc,
		MaxSize:       maxSize,
	}
	if kind == format.KindFont {
		m.TextEncoding = text
		m.HasTextEncoding = true
	}

	return m
}

// Validate checks that every field can be represented in the metadata block.
func (m *Metadata) Validate() error {
	if m.PointerLength < 1 || m.PointerLength > MaxPointerLength {
		return fmt.Errorf("%w: %d", errs.ErrInvalidPointerLength, m.PointerLength)
	}
	if !m.Kind.Valid() {
		return fmt.Errorf("%w: 0x%02x", errs.ErrUnknownKind, uint8(m.Kind))
	}
	if m.ImageCount < 0 || m.ImageCount > MaxImageCount {
		return fmt.Errorf("%w: %d exceeds %d", errs.ErrTooManyImages, m.ImageCount, MaxImageCount)
	}
	if !m.PixelEncoding.Valid() {
		return fmt.Errorf("%w: 0x%02x", errs.ErrUnknownPixelEncoding, uint8(m.PixelEncoding))
	}
	if m.HasTextEncoding && !m.TextEncoding.Valid() {
		return fmt.Errorf("%w: 0x%02x", errs.ErrUnknownTextEncoding, uint8(m.TextEncoding))
	}
	if m.Kind == format.KindFont && !m.HasTextEncoding {
		return fmt.Errorf("%w: font container without text encoding", errs.ErrMissingSection)
	}
	if m.MaxSize.X < 0 || m.MaxSize.Y < 0 || m.MaxSize.X > math.MaxInt32 || m.MaxSize.Y > math.MaxInt32 {
		return fmt.Errorf("%w: max size %v", errs.ErrInvalidImageSize, m.MaxSize)
	}

	return nil
}

// Bytes serializes the metadata block. Sections are written in tag order and
// Length is updated to the block length.
func (m *Metadata) Bytes() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	b := make([]byte, MetadataHeaderSize, 32)
	b[0] = byte(BlockMetadata)
	b[1] = m.Version.Major
	b[2] = m.Version.Minor

	b = append(b,
		byte(TagPointerLength), byte(m.PointerLength),
		byte(TagKind), byte(m.Kind),
		byte(TagImageCount), byte(m.ImageCount),
		byte(TagPixelEncoding), byte(m.PixelEncoding),
	)
	if m.HasTextEncoding {
		b = append(b, byte(TagTextEncoding), byte(m.TextEncoding))
	}
	b = append(b, byte(TagMaxSize))
	b = endian.AppendInt32(b, int32(m.MaxSize.X)) //nolint: gosec
	b = endian.AppendInt32(b, int32(m.MaxSize.Y)) //nolint: gosec

	if len(b) > MaxMetadataLength {
		return nil, fmt.Errorf("%w: metadata length %d", errs.ErrInvalidBlockLength, len(b))
	}
	b[3] = byte(len(b))
	m.Length = len(b)

	return b, nil
}

// DecodeMetadata decodes the metadata block starting at the current position of r.
//
// Sections may appear in any order; decoding stops exactly at the end of the
// block. Unknown section tags are fatal because the format has no skip mechanism.
// On success r is positioned right after the block.
//
// Returns:
//   - Metadata: decoded metadata with Length set to the block length
//   - error: ErrBlockTagMismatch, ErrUnsupportedVersion, ErrInvalidBlockLength,
//     ErrUnknownSectionTag, ErrMissingSection, enum errors, or ErrTruncated
func DecodeMetadata(r io.ReadSeeker) (Metadata, error) {
	start, err := tell(r)
	if err != nil {
		return Metadata{}, err
	}

	var hdr [MetadataHeaderSize]byte
	if err := readFull(r, hdr[:], "metadata header"); err != nil {
		return Metadata{}, err
	}

	if BlockTag(hdr[0]) != BlockMetadata {
		return Metadata{}, fmt.Errorf("%w: expected %s block (0x%02x) at offset %d, got 0x%02x",
			errs.ErrBlockTagMismatch, BlockMetadata, uint8(BlockMetadata), start, hdr[0])
	}

	m := Metadata{
		Version:       Version{Major: hdr[1], Minor: hdr[2]},
		PointerLength: DefaultPointerLength,
		Length:        int(hdr[3]),
	}
	if m.Version.Major != format.VersionMajor {
		return Metadata{}, fmt.Errorf("%w: %s, supported major version is %d",
			errs.ErrUnsupportedVersion, m.Version, format.VersionMajor)
	}
	if m.Length < MetadataHeaderSize {
		return Metadata{}, fmt.Errorf("%w: metadata length %d", errs.ErrInvalidBlockLength, m.Length)
	}

	payload := make([]byte, m.Length-MetadataHeaderSize)
	if err := readFull(r, payload, "metadata sections"); err != nil {
		return Metadata{}, err
	}

	if err := m.parseSections(payload, start+MetadataHeaderSize); err != nil {
		return Metadata{}, err
	}

	return m, nil
}

// parseSections decodes (tag, payload) pairs until payload is consumed.
// base is the stream offset of payload[0], used for error context.
func (m *Metadata) parseSections(payload []byte, base int64) error {
	var hasKind, hasCount, hasEncoding, hasMaxSize bool

	pos := 0
	for pos < len(payload) {
		tag := SectionTag(payload[pos])
		size, ok := tag.payloadSize()
		if !ok {
			return fmt.Errorf("%w: tag 0x%02x at offset %d", errs.ErrUnknownSectionTag, uint8(tag), base+int64(pos))
		}
		pos++
		if pos+size > len(payload) {
			return fmt.Errorf("%w: section 0x%02x overruns metadata block", errs.ErrInvalidBlockLength, uint8(tag))
		}
		v := payload[pos : pos+size]
		pos += size

		switch tag {
		case TagPointerLength:
			m.PointerLength = int(v[0])
			if m.PointerLength < 1 || m.PointerLength > MaxPointerLength {
				return fmt.Errorf("%w: %d", errs.ErrInvalidPointerLength, m.PointerLength)
			}
		case TagKind:
			m.Kind = format.Kind(v[0])
			if !m.Kind.Valid() {
				return fmt.Errorf("%w: 0x%02x", errs.ErrUnknownKind, v[0])
			}
			hasKind = true
		case TagImageCount:
			m.ImageCount = int(v[0])
			hasCount = true
		case TagPixelEncoding:
			m.PixelEncoding = format.PixelEncoding(v[0])
			if !m.PixelEncoding.Valid() {
				return fmt.Errorf("%w: 0x%02x", errs.ErrUnknownPixelEncoding, v[0])
			}
			hasEncoding = true
		case TagTextEncoding:
			m.TextEncoding = format.TextEncoding(v[0])
			if !m.TextEncoding.Valid() {
				return fmt.Errorf("%w: 0x%02x", errs.ErrUnknownTextEncoding, v[0])
			}
			m.HasTextEncoding = true
		case TagMaxSize:
			m.MaxSize = image.Pt(int(endian.Int32(v[0:4])), int(endian.Int32(v[4:8])))
			if m.MaxSize.X < 0 || m.MaxSize.Y < 0 {
				return fmt.Errorf("%w: negative max size %v", errs.ErrCorruptData, m.MaxSize)
			}
			hasMaxSize = true
		}
	}

	switch {
	case !hasKind:
		return fmt.Errorf("%w: kind", errs.ErrMissingSection)
	case !hasCount:
		return fmt.Errorf("%w: image count", errs.ErrMissingSection)
	case !hasEncoding:
		return fmt.Errorf("%w: pixel encoding", errs.ErrMissingSection)
	case !hasMaxSize:
		return fmt.Errorf("%w: max size", errs.ErrMissingSection)
	case m.Kind == format.KindFont && !m.HasTextEncoding:
		return fmt.Errorf("%w: font container without text encoding", errs.ErrMissingSection)
	}

	return nil
}
