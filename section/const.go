package section

import "math"

// BlockTag is the first byte of each top-level block.
type BlockTag uint8

const (
	BlockMetadata  BlockTag = 0x00 // BlockMetadata opens the metadata block.
	BlockLUT       BlockTag = 0x01 // BlockLUT opens the lookup table block.
	BlockImageData BlockTag = 0x02 // BlockImageData opens the image data block.
)

func (t BlockTag) String() string {
	switch t {
	case BlockMetadata:
		return "metadata"
	case BlockLUT:
		return "lut"
	case BlockImageData:
		return "image data"
	default:
		return "unknown"
	}
}

// SectionTag identifies a (tag, payload) pair inside the metadata block.
type SectionTag uint8

const (
	TagPointerLength SectionTag = 0x00 // 1 byte: width of each LUT offset
	TagKind          SectionTag = 0x01 // 1 byte: format.Kind
	TagImageCount    SectionTag = 0x02 // 1 byte: number of images
	TagPixelEncoding SectionTag = 0x03 // 1 byte: format.PixelEncoding
	TagTextEncoding  SectionTag = 0x04 // 1 byte: format.TextEncoding
	TagMaxSize       SectionTag = 0x05 // 8 bytes: int32 width, int32 height
)

// payloadSize returns the payload size of a known tag.
func (t SectionTag) payloadSize() (int, bool) {
	switch t {
	case TagPointerLength, TagKind, TagImageCount, TagPixelEncoding, TagTextEncoding:
		return 1, true
	case TagMaxSize:
		return 8, true
	default:
		return 0, false
	}
}

// offset and section sizes in the container
const (
	MetadataHeaderSize     = 4 // tag, major, minor, length
	LUTHeaderSize          = 5 // tag, int32 length
	ImageDataHeaderSize    = 1 // tag
	ImageSectionHeaderSize = 12

	// FirstImageOffset is the LUT offset of the first image section, right after
	// the image data block tag.
	FirstImageOffset = ImageDataHeaderSize

	MaxMetadataLength = math.MaxUint8
	MaxImageCount     = math.MaxUint8
	MaxPointerLength  = 4

	// DefaultPointerLength applies when the metadata carries no pointer length section.
	DefaultPointerLength = 1

	// legacyPointerLength is the pointer width written by early encoders
	// regardless of the declared pointer length.
	legacyPointerLength = 4
)
