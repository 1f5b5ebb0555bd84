package section

import (
	"fmt"
	"io"

	"github.com/mrmattuschka/yokai-image/endian"
	"github.com/mrmattuschka/yokai-image/errs"
)

// LUTEntry maps one key to the offset of its image section, relative to the
// start of the image data block.
type LUTEntry struct {
	Key    byte
	Offset int64
}

// LUT is the lookup table block: an ordered key → offset mapping.
//
// Entry order is the image set order and is preserved through encoding and
// decoding.
type LUT struct {
	entries []LUTEntry
	index   map[byte]int
}

// NewLUT creates an empty lookup table with room for n entries.
func NewLUT(n int) *LUT {
	return &LUT{
		entries: make([]LUTEntry, 0, n),
		index:   make(map[byte]int, n),
	}
}

// Add appends an entry. Keys must be unique.
func (l *LUT) Add(key byte, offset int64) error {
	if _, ok := l.index[key]; ok {
		return fmt.Errorf("%w: %d", errs.ErrDuplicateKey, key)
	}
	l.index[key] = len(l.entries)
	l.entries = append(l.entries, LUTEntry{Key: key, Offset: offset})

	return nil
}

// Len returns the number of entries.
func (l *LUT) Len() int {
	return len(l.entries)
}

// Entries returns the entries in stored order. The slice must not be modified.
func (l *LUT) Entries() []LUTEntry {
	return l.entries
}

// Keys returns the keys in stored order.
func (l *LUT) Keys() []byte {
	keys := make([]byte, len(l.entries))
	for i, e := range l.entries {
		keys[i] = e.Key
	}

	return keys
}

// Lookup returns the offset stored for key.
func (l *LUT) Lookup(key byte) (int64, bool) {
	i, ok := l.index[key]
	if !ok {
		return 0, false
	}

	return l.entries[i].Offset, true
}

// BlockLen returns the encoded block length for the given pointer width.
func (l *LUT) BlockLen(pointerLength int) int {
	return LUTHeaderSize + len(l.entries)*(1+pointerLength)
}

// MaxOffset returns the largest stored offset, or 0 for an empty table.
func (l *LUT) MaxOffset() int64 {
	var maxOff int64
	for _, e := range l.entries {
		maxOff = max(maxOff, e.Offset)
	}

	return maxOff
}

// Bytes serializes the LUT block: tag, 4-byte self-inclusive block length, then
// per entry one key byte and a pointerLength-byte signed offset.
//
// Returns:
//   - []byte: encoded LUT block
//   - error: ErrInvalidPointerLength, or ErrPointerOverflow when an offset does not
//     fit in pointerLength signed bytes
func (l *LUT) Bytes(pointerLength int) ([]byte, error) {
	if pointerLength < 1 || pointerLength > MaxPointerLength {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidPointerLength, pointerLength)
	}

	blockLen := l.BlockLen(pointerLength)
	b := make([]byte, 1, blockLen)
	b[0] = byte(BlockLUT)
	b = endian.AppendInt32(b, int32(blockLen)) //nolint: gosec

	for _, e := range l.entries {
		if !endian.FitsInt(e.Offset, pointerLength) {
			return nil, fmt.Errorf("%w: offset %d of key %d needs more than %d bytes",
				errs.ErrPointerOverflow, e.Offset, e.Key, pointerLength)
		}
		b = append(b, e.Key)
		b, _ = endian.AppendInt(b, e.Offset, pointerLength)
	}

	return b, nil
}

// PointerLengthFor returns the smallest pointer width able to store offset.
func PointerLengthFor(offset int64) (int, error) {
	for width := 1; width <= MaxPointerLength; width++ {
		if endian.FitsInt(offset, width) {
			return width, nil
		}
	}

	return 0, fmt.Errorf("%w: offset %d", errs.ErrPointerOverflow, offset)
}

// DecodeLUT decodes the LUT block located at offset.
//
// The pointer width comes from meta. Early encoders always wrote 4-byte
// pointers whatever width they declared; such tables are recognized by their
// payload size and decoded with 4-byte pointers.
//
// Returns:
//   - *LUT: decoded table in stored order
//   - int: total block length, used to locate the image data block
//   - error: ErrBlockTagMismatch, ErrInvalidBlockLength, ErrCorruptData, or ErrTruncated
func DecodeLUT(r io.ReadSeeker, offset int64, meta Metadata) (*LUT, int, error) {
	if err := seekTo(r, offset); err != nil {
		return nil, 0, err
	}

	var hdr [LUTHeaderSize]byte
	if err := readFull(r, hdr[:], "lut header"); err != nil {
		return nil, 0, err
	}
	if BlockTag(hdr[0]) != BlockLUT {
		return nil, 0, fmt.Errorf("%w: expected %s block (0x%02x) at offset %d, got 0x%02x",
			errs.ErrBlockTagMismatch, BlockLUT, uint8(BlockLUT), offset, hdr[0])
	}

	blockLen := int(endian.Int32(hdr[1:5]))
	maxLen := LUTHeaderSize + (MaxImageCount+1)*(1+MaxPointerLength)
	if blockLen < LUTHeaderSize || blockLen > maxLen {
		return nil, 0, fmt.Errorf("%w: lut length %d", errs.ErrInvalidBlockLength, blockLen)
	}

	payload := make([]byte, blockLen-LUTHeaderSize)
	if err := readFull(r, payload, "lut entries"); err != nil {
		return nil, 0, err
	}

	width := meta.PointerLength
	if width < 1 || width > MaxPointerLength {
		return nil, 0, fmt.Errorf("%w: %d", errs.ErrInvalidPointerLength, width)
	}
	if n := meta.ImageCount; n > 0 && len(payload) != n*(1+width) && len(payload) == n*(1+legacyPointerLength) {
		width = legacyPointerLength
	}
	entrySize := 1 + width
	if len(payload)%entrySize != 0 {
		return nil, 0, fmt.Errorf("%w: lut payload of %d bytes is not a multiple of %d",
			errs.ErrInvalidBlockLength, len(payload), entrySize)
	}

	lut := NewLUT(len(payload) / entrySize)
	for pos := 0; pos < len(payload); pos += entrySize {
		key := payload[pos]
		ptr := endian.Int(payload[pos+1 : pos+entrySize])
		if ptr < FirstImageOffset {
			return nil, 0, fmt.Errorf("%w: key %d points to offset %d", errs.ErrCorruptData, key, ptr)
		}
		if err := lut.Add(key, ptr); err != nil {
			return nil, 0, fmt.Errorf("%w: %w", errs.ErrCorruptData, err)
		}
	}

	return lut, blockLen, nil
}
