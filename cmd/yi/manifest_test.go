package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/mrmattuschka/yokai-image/container"
	"github.com/mrmattuschka/yokai-image/errs"
	"github.com/mrmattuschka/yokai-image/format"
	"github.com/mrmattuschka/yokai-image/internal/logger"
)

const fontManifest = `
kind: font
pixel_encoding: vlsb
pointer_length: auto
images:
  - key: "H"
    rows:
      - "#...#"
      - "#####"
      - "#...#"
  - key: 1
    rows: ["#", "#", "#"]
  - key: "i"
    rows: ["#.", "..", "#.", "#."]
    width: 1
`

func TestLoadManifest(t *testing.T) {
	m, err := loadManifest(strings.NewReader(fontManifest))
	require.NoError(t, err)

	kind, err := m.kind()
	require.NoError(t, err)
	require.Equal(t, format.KindFont, kind)
	require.Equal(t, scalar("auto"), m.PointerLength)
	require.Len(t, m.Images, 3)

	entries, err := m.entries(kind)
	require.NoError(t, err)
	require.Equal(t, container.Key('H'), entries[0].Key)
	require.Equal(t, container.Key('1'), entries[1].Key, "single characters are font keys")
	require.Equal(t, 1, entries[2].Image.Width)
	require.Equal(t, 4, entries[2].Image.Height)
}

func TestLoadManifest_Errors(t *testing.T) {
	_, err := loadManifest(strings.NewReader(""))
	require.ErrorIs(t, err, errEmptyManifest)

	_, err = loadManifest(strings.NewReader("kind: img\nimages: []\n"))
	require.ErrorIs(t, err, errEmptyManifest)

	_, err = loadManifest(strings.NewReader("kind: img\ncolour: red\nimages: [{key: 1, rows: ['#']}]\n"))
	require.Error(t, err)

	_, err = loadManifest(strings.NewReader("images: [{key: [1, 2], rows: ['#']}]\n"))
	require.Error(t, err)
}

func TestManifest_ImageKeys(t *testing.T) {
	m, err := loadManifest(strings.NewReader("images:\n  - key: 300\n    rows: ['#']\n"))
	require.NoError(t, err)

	kind, err := m.kind()
	require.NoError(t, err)
	require.Equal(t, format.KindImages, kind)

	_, err = m.entries(kind)
	require.ErrorIs(t, err, errs.ErrInvalidKey)
}

func TestPackManifest(t *testing.T) {
	data, err := packManifest(strings.NewReader(fontManifest), "", "", logger.Discard())
	require.NoError(t, err)

	rd, err := container.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, format.VLSB, rd.Metadata().PixelEncoding)
	require.Equal(t, []container.Key{'H', '1', 'i'}, rd.Keys())

	img, err := rd.Image('i')
	require.NoError(t, err)
	require.Equal(t, "#\n.\n#\n#", img.Bitmap.String())

	data, err = packManifest(strings.NewReader(fontManifest), "HMSB", "2", logger.Discard())
	require.NoError(t, err)

	rd, err = container.NewReader(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, format.HMSB, rd.Metadata().PixelEncoding, "flags override the manifest")
	require.Equal(t, 2, rd.Metadata().PointerLength)

	_, err = packManifest(strings.NewReader(fontManifest), "", "wide", logger.Discard())
	require.Error(t, err)

	_, err = packManifest(strings.NewReader(fontManifest), "rgb", "", logger.Discard())
	require.ErrorIs(t, err, errs.ErrUnknownPixelEncoding)
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.yi")

	require.NoError(t, writeFileAtomic(path, []byte("first")))
	require.NoError(t, writeFileAtomic(path, []byte("second")))

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "second", string(got))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "scratch directory is removed")
}

func TestParseKey(t *testing.T) {
	tests := []struct {
		kind format.Kind
		in   string
		want container.Key
	}{
		{format.KindFont, "A", 'A'},
		{format.KindFont, "7", '7'},
		{format.KindFont, "65", 65},
		{format.KindImages, "7", 7},
		{format.KindImages, "255", 255},
	}

	for _, tt := range tests {
		got, err := parseKey(tt.kind, tt.in)
		require.NoError(t, err)
		require.Equal(t, tt.want, got, "%s %q", tt.kind, tt.in)
	}

	for _, bad := range []string{"", "-1", "256", "abc"} {
		_, err := parseKey(format.KindImages, bad)
		require.ErrorIs(t, err, errs.ErrInvalidKey, "%q", bad)
	}

	require.Equal(t, "'A'", keyLabel(format.KindFont, 'A'))
	require.Equal(t, "10", keyLabel(format.KindFont, '\n'))
	require.Equal(t, "65", keyLabel(format.KindImages, 'A'))
}
