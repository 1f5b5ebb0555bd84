// Package errs defines the sentinel errors returned while encoding and decoding
// YI containers.
//
// Errors are grouped in three families. Validation errors are returned by the
// encoder before any byte is produced. Format errors are returned by the decoder
// when the stream is structurally wrong; there is no recovery path. Truncation
// errors are returned when the stream ends in the middle of a field.
//
// Callers match them with errors.Is; the returned errors usually wrap a sentinel
// with positional context.
package errs

import (
	"errors"
	"fmt"
	"io"
)

// Validation errors.
var (
	ErrDuplicateKey         = errors.New("duplicate image key")
	ErrUnknownPixelEncoding = errors.New("unknown pixel encoding")
	ErrUnknownTextEncoding  = errors.New("unknown text encoding")
	ErrUnknownKind          = errors.New("unknown container kind")
	ErrInvalidKey           = errors.New("invalid image key")
	ErrInvalidImageSize     = errors.New("invalid image size")
	ErrEmptyImageSet        = errors.New("image set is empty")
	ErrTooManyImages        = errors.New("too many images")
	ErrInvalidPointerLength = errors.New("invalid pointer length")
	ErrPointerOverflow      = errors.New("offset does not fit pointer length")
	ErrEncoderFinished      = errors.New("encoder already finished")
)

// Format errors.
var (
	ErrBlockTagMismatch   = errors.New("block tag mismatch")
	ErrUnsupportedVersion = errors.New("unsupported format version")
	ErrUnknownSectionTag  = errors.New("unrecognized metadata section")
	ErrInvalidBlockLength = errors.New("invalid block length")
	ErrMissingSection     = errors.New("missing metadata section")
	ErrCorruptData        = errors.New("corrupt image data")
	ErrKeyNotFound        = errors.New("image key not found")
)

// ErrTruncated is returned when the stream ends before a field is complete.
// It also matches io.ErrUnexpectedEOF.
var ErrTruncated = truncatedError{}

type truncatedError struct{}

func (truncatedError) Error() string { return "truncated container" }

func (truncatedError) Is(target error) bool {
	return target == io.ErrUnexpectedEOF
}

// Truncated wraps ErrTruncated with the name of the field being read.
func Truncated(field string) error {
	return fmt.Errorf("%w: reading %s", ErrTruncated, field)
}
