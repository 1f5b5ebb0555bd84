package endian

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetLittleEndianEngine(t *testing.T) {
	engine := GetLittleEndianEngine()

	require.Implements(t, (*EndianEngine)(nil), engine)
	require.Equal(t, binary.LittleEndian, engine)

	b := engine.AppendUint32(nil, 0x01020304)
	require.Equal(t, []byte{0x04, 0x03, 0x02, 0x01}, b)
}

func TestInt32RoundTrip(t *testing.T) {
	for _, v := range []int32{0, 1, 20, -1, math.MaxInt32, math.MinInt32} {
		b := AppendInt32(nil, v)
		require.Len(t, b, 4)
		require.Equal(t, v, Int32(b))
	}

	require.Equal(t, []byte{0x14, 0x00, 0x00, 0x00}, AppendInt32(nil, 20))
}

func TestFitsInt(t *testing.T) {
	tests := []struct {
		name  string
		v     int64
		width int
		fits  bool
	}{
		{"1 byte max", 127, 1, true},
		{"1 byte overflow", 128, 1, false},
		{"1 byte min", -128, 1, true},
		{"2 bytes", 32767, 2, true},
		{"2 bytes overflow", 32768, 2, false},
		{"3 bytes", 1 << 22, 3, true},
		{"4 bytes max", math.MaxInt32, 4, true},
		{"4 bytes overflow", math.MaxInt32 + 1, 4, false},
		{"zero width", 0, 0, false},
		{"too wide", 0, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.fits, FitsInt(tt.v, tt.width))
		})
	}
}

func TestAppendIntAndInt(t *testing.T) {
	for width := 1; width <= MaxIntWidth; width++ {
		for _, v := range []int64{0, 1, 21, 100, -1, -100} {
			b, err := AppendInt(nil, v, width)
			require.NoError(t, err)
			require.Len(t, b, width)
			require.Equal(t, v, Int(b))
		}
	}

	b, err := AppendInt([]byte{0xAA}, 0x0102, 2)
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA, 0x02, 0x01}, b)

	_, err = AppendInt(nil, 200, 1)
	require.Error(t, err)

	require.Equal(t, int64(-1), Int([]byte{0xFF}))
	require.Equal(t, int64(255), Int([]byte{0xFF, 0x00}))
	require.Equal(t, int64(0), Int(nil))
}
