package container

import (
	"fmt"
	"log/slog"

	"github.com/mrmattuschka/yokai-image/errs"
	"github.com/mrmattuschka/yokai-image/format"
	"github.com/mrmattuschka/yokai-image/internal/logger"
	"github.com/mrmattuschka/yokai-image/internal/options"
	"github.com/mrmattuschka/yokai-image/section"
)

// EncoderConfig holds the encoder settings applied through EncoderOption.
type EncoderConfig struct {
	pixelEncoding     format.PixelEncoding
	textEncoding      format.TextEncoding
	pointerLength     int
	autoPointerLength bool
	logger            *slog.Logger
}

// NewEncoderConfig returns the default configuration: HLSB pixels, ASCII text
// and 1-byte pointers.
func NewEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		pixelEncoding: format.DefaultPixelEncoding,
		textEncoding:  format.ASCII,
		pointerLength: section.DefaultPointerLength,
		logger:        logger.Discard(),
	}
}

// PixelEncoding returns the configured pixel encoding.
func (c *EncoderConfig) PixelEncoding() format.PixelEncoding {
	return c.pixelEncoding
}

// TextEncoding returns the configured text encoding.
func (c *EncoderConfig) TextEncoding() format.TextEncoding {
	return c.textEncoding
}

// PointerLength returns the configured pointer width. It is ignored when the
// width is chosen automatically.
func (c *EncoderConfig) PointerLength() int {
	return c.pointerLength
}

// AutoPointerLength reports whether the pointer width is derived from the
// largest offset.
func (c *EncoderConfig) AutoPointerLength() bool {
	return c.autoPointerLength
}

func (c *EncoderConfig) setPixelEncoding(enc format.PixelEncoding) error {
	if !enc.Valid() {
		return fmt.Errorf("%w: 0x%02x", errs.ErrUnknownPixelEncoding, uint8(enc))
	}
	c.pixelEncoding = enc

	return nil
}

func (c *EncoderConfig) setTextEncoding(enc format.TextEncoding) error {
	if !enc.Valid() {
		return fmt.Errorf("%w: 0x%02x", errs.ErrUnknownTextEncoding, uint8(enc))
	}
	c.textEncoding = enc

	return nil
}

// EncoderOption is a functional option for configuring Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithPixelEncoding sets the pixel encoding. Default is format.HLSB.
func WithPixelEncoding(enc format.PixelEncoding) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setPixelEncoding(enc)
	})
}

// WithPixelEncodingName sets the pixel encoding by name ("HLSB", "HMSB" or "VLSB").
func WithPixelEncodingName(name string) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		enc, err := format.ParsePixelEncoding(name)
		if err != nil {
			return err
		}

		return c.setPixelEncoding(enc)
	})
}

// WithTextEncoding sets the text encoding written by font containers.
// Default is format.ASCII.
func WithTextEncoding(enc format.TextEncoding) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		return c.setTextEncoding(enc)
	})
}

// WithTextEncodingName sets the text encoding by name.
func WithTextEncodingName(name string) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		enc, err := format.ParseTextEncoding(name)
		if err != nil {
			return err
		}

		return c.setTextEncoding(enc)
	})
}

// WithPointerLength sets a fixed LUT pointer width in bytes (1-4). Default is 1.
//
// Encoding fails with ErrPointerOverflow when an image offset does not fit.
func WithPointerLength(n int) EncoderOption {
	return options.New(func(c *EncoderConfig) error {
		if n < 1 || n > section.MaxPointerLength {
			return fmt.Errorf("%w: %d", errs.ErrInvalidPointerLength, n)
		}
		c.pointerLength = n
		c.autoPointerLength = false

		return nil
	})
}

// WithAutoPointerLength selects the smallest pointer width able to address
// every image.
func WithAutoPointerLength() EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		c.autoPointerLength = true
	})
}

// WithLogger sets the logger receiving debug records. A nil logger disables logging.
func WithLogger(l *slog.Logger) EncoderOption {
	return options.NoError(func(c *EncoderConfig) {
		if l == nil {
			l = logger.Discard()
		}
		c.logger = l
	})
}
