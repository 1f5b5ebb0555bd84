package format

import (
	"fmt"
	"strings"

	"github.com/mrmattuschka/yokai-image/errs"
)

// Version stamped into every container written by this package.
// Decoders only accept containers whose major version matches VersionMajor.
const (
	VersionMajor uint8 = 0
	VersionMinor uint8 = 1
)

type (
	Kind          uint8
	PixelEncoding uint8
	TextEncoding  uint8
)

const (
	KindImages Kind = 0x00 // KindImages represents a set of images keyed by integer.
	KindFont   Kind = 0x01 // KindFont represents a glyph set keyed by character code.

	// The three pixel encodings mirror MicroPython's framebuf constants
	// bit-for-bit, including their counter-intuitive names.
	VLSB PixelEncoding = 0x00 // VLSB packs columns of 8 rows per byte, first row in the MSB.
	HLSB PixelEncoding = 0x03 // HLSB packs 8 columns per byte, first column in the MSB.
	HMSB PixelEncoding = 0x04 // HMSB packs 8 columns per byte, first column in the LSB.

	ASCII TextEncoding = 0x00 // ASCII is the only defined glyph key encoding.
)

// DefaultPixelEncoding is used when the encoder is given no pixel encoding.
const DefaultPixelEncoding = HLSB

func (k Kind) String() string {
	switch k {
	case KindImages:
		return "img"
	case KindFont:
		return "font"
	default:
		return "Unknown"
	}
}

// Valid reports whether k is a defined container kind.
func (k Kind) Valid() bool {
	return k == KindImages || k == KindFont
}

func (e PixelEncoding) String() string {
	switch e {
	case VLSB:
		return "VLSB"
	case HLSB:
		return "HLSB"
	case HMSB:
		return "HMSB"
	default:
		return "Unknown"
	}
}

// Valid reports whether e is one of VLSB, HLSB or HMSB.
func (e PixelEncoding) Valid() bool {
	switch e {
	case VLSB, HLSB, HMSB:
		return true
	default:
		return false
	}
}

// Vertical reports whether bits are packed along the vertical axis.
func (e PixelEncoding) Vertical() bool {
	return e == VLSB
}

// LSBFirst reports whether the first pixel of a packed group occupies the
// least-significant bit.
func (e PixelEncoding) LSBFirst() bool {
	return e == HMSB
}

func (e TextEncoding) String() string {
	switch e {
	case ASCII:
		return "ascii"
	default:
		return "Unknown"
	}
}

// Valid reports whether e is a defined text encoding.
func (e TextEncoding) Valid() bool {
	return e == ASCII
}

// ParseKind resolves a kind name ("img", "images", "font").
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "img", "image", "images":
		return KindImages, nil
	case "font":
		return KindFont, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownKind, name)
	}
}

// ParsePixelEncoding resolves a pixel encoding name. Names are case-insensitive.
func ParsePixelEncoding(name string) (PixelEncoding, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "VLSB":
		return VLSB, nil
	case "HLSB":
		return HLSB, nil
	case "HMSB":
		return HMSB, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownPixelEncoding, name)
	}
}

// ParseTextEncoding resolves a text encoding name. Only "ascii" is defined.
func ParseTextEncoding(name string) (TextEncoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "ascii":
		return ASCII, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownTextEncoding, name)
	}
}
