package container

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrmattuschka/yokai-image/bitpack"
	"github.com/mrmattuschka/yokai-image/errs"
)

func mustRows(t *testing.T, rows ...string) *bitpack.Bitmap {
	t.Helper()

	b, err := bitpack.FromRows(rows...)
	require.NoError(t, err)

	return b
}

func TestImage_Validate(t *testing.T) {
	b := bitpack.New(8, 4)

	require.NoError(t, NewImage(b).Validate())
	require.NoError(t, Image{Bitmap: b, Width: 3, Height: 4}.Validate())

	tests := []struct {
		name string
		img  Image
	}{
		{"nil bitmap", Image{Width: 1, Height: 1}},
		{"zero width", Image{Bitmap: b, Width: 0, Height: 4}},
		{"negative height", Image{Bitmap: b, Width: 8, Height: -1}},
		{"wider than bitmap", Image{Bitmap: b, Width: 9, Height: 4}},
		{"taller than bitmap", Image{Bitmap: b, Width: 8, Height: 5}},
		{"empty bitmap", NewImage(bitpack.New(0, 0))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.img.Validate(), errs.ErrInvalidImageSize)
		})
	}
}

func TestImage_CroppedAndEqual(t *testing.T) {
	b := mustRows(t,
		"##..#",
		"#...#",
	)

	full := NewImage(b)
	require.Same(t, b, full.Cropped())

	img := Image{Bitmap: b, Width: 2, Height: 2}
	require.Equal(t, image.Pt(2, 2), img.Size())
	require.Equal(t, "##\n#.", img.Cropped().String())

	same := NewImage(mustRows(t, "##", "#."))
	require.True(t, img.Equal(same), "pixels outside the crop are ignored")
	require.False(t, img.Equal(full))
	require.False(t, img.Equal(NewImage(mustRows(t, "##", "##"))))
}

func TestImageSet(t *testing.T) {
	set := NewImageSet()
	a := NewImage(bitpack.New(1, 1))
	b := NewImage(bitpack.New(2, 2))

	require.NoError(t, set.Add(5, a))
	require.NoError(t, set.Add(1, b))
	require.ErrorIs(t, set.Add(5, b), errs.ErrDuplicateKey)

	require.Equal(t, 2, set.Len())
	require.Equal(t, []Key{5, 1}, set.Keys())

	got, ok := set.Get(1)
	require.True(t, ok)
	require.Equal(t, b, got)

	_, ok = set.Get(9)
	require.False(t, ok)

	var order []Key
	for k, img := range set.All() {
		order = append(order, k)
		require.NotNil(t, img.Bitmap)
	}
	require.Equal(t, []Key{5, 1}, order)

	for k := range set.All() {
		require.Equal(t, Key(5), k)
		break
	}
}
