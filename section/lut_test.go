package section

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrmattuschka/yokai-image/errs"
	"github.com/mrmattuschka/yokai-image/format"
)

func metaFor(pointerLength, count int) Metadata {
	return NewMetadata(format.KindImages, format.HLSB, format.ASCII, pointerLength, count, image.Pt(8, 8))
}

func TestLUT_AddAndLookup(t *testing.T) {
	lut := NewLUT(2)
	require.NoError(t, lut.Add(0, 1))
	require.NoError(t, lut.Add(1, 21))

	off, ok := lut.Lookup(1)
	require.True(t, ok)
	require.Equal(t, int64(21), off)

	_, ok = lut.Lookup(7)
	require.False(t, ok)

	require.ErrorIs(t, lut.Add(0, 41), errs.ErrDuplicateKey)
	require.Equal(t, []byte{0, 1}, lut.Keys())
	require.Equal(t, int64(21), lut.MaxOffset())
}

func TestLUT_Bytes(t *testing.T) {
	lut := NewLUT(2)
	require.NoError(t, lut.Add(0, 1))
	require.NoError(t, lut.Add(1, 21))

	data, err := lut.Bytes(1)
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x01, 9, 0, 0, 0,
		0, 1,
		1, 21,
	}, data)
	require.Equal(t, 9, lut.BlockLen(1))

	data, err = lut.Bytes(2)
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x01, 11, 0, 0, 0,
		0, 1, 0,
		1, 21, 0,
	}, data)
}

func TestLUT_BytesErrors(t *testing.T) {
	lut := NewLUT(1)
	require.NoError(t, lut.Add('A', 200))

	_, err := lut.Bytes(1)
	require.ErrorIs(t, err, errs.ErrPointerOverflow)

	_, err = lut.Bytes(0)
	require.ErrorIs(t, err, errs.ErrInvalidPointerLength)

	_, err = lut.Bytes(2)
	require.NoError(t, err)
}

func TestPointerLengthFor(t *testing.T) {
	tests := []struct {
		offset int64
		width  int
	}{
		{1, 1},
		{127, 1},
		{128, 2},
		{40000, 3},
		{1 << 24, 4},
	}

	for _, tt := range tests {
		w, err := PointerLengthFor(tt.offset)
		require.NoError(t, err)
		require.Equal(t, tt.width, w, "offset %d", tt.offset)
	}

	_, err := PointerLengthFor(1 << 40)
	require.ErrorIs(t, err, errs.ErrPointerOverflow)
}

func TestDecodeLUT_RoundTrip(t *testing.T) {
	for width := 1; width <= MaxPointerLength; width++ {
		lut := NewLUT(3)
		require.NoError(t, lut.Add('b', 1))
		require.NoError(t, lut.Add('a', 50))
		require.NoError(t, lut.Add('c', 99))

		block, err := lut.Bytes(width)
		require.NoError(t, err)

		// Prefix with filler standing in for the metadata block.
		prefix := []byte{0xAA, 0xBB, 0xCC}
		r := bytes.NewReader(append(prefix, block...))

		got, n, err := DecodeLUT(r, int64(len(prefix)), metaFor(width, 3))
		require.NoError(t, err)
		require.Equal(t, len(block), n)
		require.Equal(t, lut.Entries(), got.Entries())
		require.Equal(t, []byte{'b', 'a', 'c'}, got.Keys())
	}
}

func TestDecodeLUT_LegacyFourBytePointers(t *testing.T) {
	// Metadata declares 1-byte pointers but the table stores 4-byte ones.
	block := []byte{
		0x01, 15, 0, 0, 0,
		0, 1, 0, 0, 0,
		1, 21, 0, 0, 0,
	}

	got, n, err := DecodeLUT(bytes.NewReader(block), 0, metaFor(1, 2))
	require.NoError(t, err)
	require.Equal(t, 15, n)

	off, ok := got.Lookup(1)
	require.True(t, ok)
	require.Equal(t, int64(21), off)
}

func TestDecodeLUT_Errors(t *testing.T) {
	tests := []struct {
		name  string
		block []byte
		err   error
	}{
		{"wrong tag", []byte{0x02, 5, 0, 0, 0}, errs.ErrBlockTagMismatch},
		{"length too small", []byte{0x01, 4, 0, 0, 0}, errs.ErrInvalidBlockLength},
		{"length absurd", []byte{0x01, 0, 0, 0, 1}, errs.ErrInvalidBlockLength},
		{"ragged payload", []byte{0x01, 8, 0, 0, 0, 0, 1, 1}, errs.ErrInvalidBlockLength},
		{"truncated header", []byte{0x01, 9}, errs.ErrTruncated},
		{"truncated payload", []byte{0x01, 9, 0, 0, 0, 0, 1}, errs.ErrTruncated},
		{"duplicate key", []byte{0x01, 9, 0, 0, 0, 0, 1, 0, 21}, errs.ErrCorruptData},
		{"pointer before first image", []byte{0x01, 7, 0, 0, 0, 0, 0}, errs.ErrCorruptData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := DecodeLUT(bytes.NewReader(tt.block), 0, metaFor(1, 2))
			require.ErrorIs(t, err, tt.err)
		})
	}
}
