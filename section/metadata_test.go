package section

import (
	"bytes"
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrmattuschka/yokai-image/errs"
	"github.com/mrmattuschka/yokai-image/format"
)

func TestNewMetadata(t *testing.T) {
	m := NewMetadata(format.KindImages, format.HLSB, format.ASCII, 1, 2, image.Pt(8, 8))
	require.Equal(t, CurrentVersion(), m.Version)
	require.False(t, m.HasTextEncoding)

	f := NewMetadata(format.KindFont, format.VLSB, format.ASCII, 2, 95, image.Pt(12, 20))
	require.True(t, f.HasTextEncoding)
	require.Equal(t, format.ASCII, f.TextEncoding)
}

func TestMetadata_Bytes(t *testing.T) {
	m := NewMetadata(format.KindImages, format.HLSB, format.ASCII, 1, 2, image.Pt(8, 8))

	data, err := m.Bytes()
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x00, format.VersionMajor, format.VersionMinor, 21,
		0x00, 0x01, // pointer length
		0x01, 0x00, // kind
		0x02, 0x02, // image count
		0x03, 0x03, // HLSB
		0x05, 8, 0, 0, 0, 8, 0, 0, 0, // max size
	}, data)
	require.Equal(t, 21, m.Length)

	f := NewMetadata(format.KindFont, format.HMSB, format.ASCII, 1, 1, image.Pt(1, 1))
	data, err = f.Bytes()
	require.NoError(t, err)
	require.Len(t, data, 23)
	require.Equal(t, byte(23), data[3])
	require.Equal(t, []byte{0x04, 0x00}, data[12:14])
}

func TestMetadata_Validate(t *testing.T) {
	base := func() Metadata {
		return NewMetadata(format.KindImages, format.HLSB, format.ASCII, 1, 1, image.Pt(1, 1))
	}

	tests := []struct {
		name   string
		modify func(m *Metadata)
		err    error
	}{
		{"pointer length zero", func(m *Metadata) { m.PointerLength = 0 }, errs.ErrInvalidPointerLength},
		{"pointer length five", func(m *Metadata) { m.PointerLength = 5 }, errs.ErrInvalidPointerLength},
		{"unknown kind", func(m *Metadata) { m.Kind = 9 }, errs.ErrUnknownKind},
		{"too many images", func(m *Metadata) { m.ImageCount = 256 }, errs.ErrTooManyImages},
		{"unknown pixel encoding", func(m *Metadata) { m.PixelEncoding = 1 }, errs.ErrUnknownPixelEncoding},
		{"unknown text encoding", func(m *Metadata) { m.HasTextEncoding, m.TextEncoding = true, 3 }, errs.ErrUnknownTextEncoding},
		{"font without text encoding", func(m *Metadata) { m.Kind = format.KindFont }, errs.ErrMissingSection},
		{"negative max size", func(m *Metadata) { m.MaxSize = image.Pt(-1, 1) }, errs.ErrInvalidImageSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base()
			tt.modify(&m)
			_, err := m.Bytes()
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDecodeMetadata_RoundTrip(t *testing.T) {
	for _, kind := range []format.Kind{format.KindImages, format.KindFont} {
		for _, enc := range []format.PixelEncoding{format.HLSB, format.HMSB, format.VLSB} {
			t.Run(kind.String()+"/"+enc.String(), func(t *testing.T) {
				m := NewMetadata(kind, enc, format.ASCII, 3, 200, image.Pt(300, 17))
				data, err := m.Bytes()
				require.NoError(t, err)

				r := bytes.NewReader(append(data, 0xEE)) // trailing byte belongs to the next block
				got, err := DecodeMetadata(r)
				require.NoError(t, err)
				require.Equal(t, m, got)

				pos, err := tell(r)
				require.NoError(t, err)
				require.Equal(t, int64(len(data)), pos)
			})
		}
	}
}

func TestDecodeMetadata_AnySectionOrder(t *testing.T) {
	data := []byte{
		0x00, format.VersionMajor, 7, 23,
		0x05, 10, 0, 0, 0, 3, 0, 0, 0,
		0x04, 0x00,
		0x03, 0x00,
		0x02, 0x05,
		0x01, 0x01,
		0x00, 0x02,
	}

	m, err := DecodeMetadata(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, Version{Major: format.VersionMajor, Minor: 7}, m.Version)
	require.Equal(t, 2, m.PointerLength)
	require.Equal(t, format.KindFont, m.Kind)
	require.Equal(t, 5, m.ImageCount)
	require.Equal(t, format.VLSB, m.PixelEncoding)
	require.True(t, m.HasTextEncoding)
	require.Equal(t, image.Pt(10, 3), m.MaxSize)
	require.Equal(t, 23, m.Length)
}

func TestDecodeMetadata_DefaultPointerLength(t *testing.T) {
	data := []byte{
		0x00, format.VersionMajor, 1, 19,
		0x01, 0x00,
		0x02, 0x01,
		0x03, 0x03,
		0x05, 1, 0, 0, 0, 1, 0, 0, 0,
	}

	m, err := DecodeMetadata(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, DefaultPointerLength, m.PointerLength)
}

func TestDecodeMetadata_Errors(t *testing.T) {
	valid := func() []byte {
		m := NewMetadata(format.KindImages, format.HLSB, format.ASCII, 1, 1, image.Pt(1, 1))
		data, err := m.Bytes()
		require.NoError(t, err)

		return data
	}

	tests := []struct {
		name   string
		modify func(b []byte) []byte
		err    error
	}{
		{"wrong block tag", func(b []byte) []byte { b[0] = 0x01; return b }, errs.ErrBlockTagMismatch},
		{"unsupported major", func(b []byte) []byte { b[1] = format.VersionMajor + 1; return b }, errs.ErrUnsupportedVersion},
		{"length below header", func(b []byte) []byte { b[3] = 2; return b }, errs.ErrInvalidBlockLength},
		{"unknown section tag", func(b []byte) []byte { b[4] = 0x06; return b }, errs.ErrUnknownSectionTag},
		{"unknown kind value", func(b []byte) []byte { b[7] = 0x02; return b }, errs.ErrUnknownKind},
		{"unknown encoding value", func(b []byte) []byte { b[11] = 0x01; return b }, errs.ErrUnknownPixelEncoding},
		{"bad pointer length value", func(b []byte) []byte { b[5] = 0x09; return b }, errs.ErrInvalidPointerLength},
		{"section overruns block", func(b []byte) []byte { b[3] = byte(len(b) - 3); return b[:len(b)-3] }, errs.ErrInvalidBlockLength},
		{"truncated header", func(b []byte) []byte { return b[:2] }, errs.ErrTruncated},
		{"truncated sections", func(b []byte) []byte { return b[:10] }, errs.ErrTruncated},
		{"missing max size", func(b []byte) []byte { b[3] = 12; return b[:12] }, errs.ErrMissingSection},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeMetadata(bytes.NewReader(tt.modify(valid())))
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestDecodeMetadata_FontRequiresTextEncoding(t *testing.T) {
	data := []byte{
		0x00, format.VersionMajor, 1, 21,
		0x00, 0x01,
		0x01, 0x01, // font
		0x02, 0x01,
		0x03, 0x03,
		0x05, 1, 0, 0, 0, 1, 0, 0, 0,
	}

	_, err := DecodeMetadata(bytes.NewReader(data))
	require.ErrorIs(t, err, errs.ErrMissingSection)
}
