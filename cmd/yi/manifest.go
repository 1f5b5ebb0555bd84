package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mrmattuschka/yokai-image/bitpack"
	"github.com/mrmattuschka/yokai-image/container"
	"github.com/mrmattuschka/yokai-image/format"
)

// manifest describes a container to pack. Images are given as ASCII art:
//
//	kind: font
//	pixel_encoding: VLSB
//	pointer_length: auto
//	images:
//	  - key: "i"
//	    rows: ["#", ".", "#", "#"]
type manifest struct {
	Kind          string          `yaml:"kind"`
	PixelEncoding string          `yaml:"pixel_encoding"`
	TextEncoding  string          `yaml:"text_encoding"`
	PointerLength scalar          `yaml:"pointer_length"`
	Images        []manifestImage `yaml:"images"`
}

type manifestImage struct {
	Key  scalar   `yaml:"key"`
	Rows []string `yaml:"rows"`
	// Width and Height crop the rows; zero keeps the full extent.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// scalar keeps the literal text of a YAML scalar so that `key: 7` and
// `key: "7"` are read the same way.
type scalar string

func (s *scalar) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", n.Line)
	}
	*s = scalar(n.Value)

	return nil
}

var errEmptyManifest = errors.New("manifest lists no images")

// loadManifest decodes a manifest, rejecting unknown fields.
func loadManifest(r io.Reader) (*manifest, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var m manifest
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errEmptyManifest
		}

		return nil, fmt.Errorf("decode manifest: %w", err)
	}
	if len(m.Images) == 0 {
		return nil, errEmptyManifest
	}

	return &m, nil
}

func (m *manifest) kind() (format.Kind, error) {
	if m.Kind == "" {
		return format.KindImages, nil
	}

	return format.ParseKind(m.Kind)
}

// options turns the manifest settings into encoder options.
func (m *manifest) options() ([]container.EncoderOption, error) {
	var opts []container.EncoderOption
	if m.PixelEncoding != "" {
		opts = append(opts, container.WithPixelEncodingName(m.PixelEncoding))
	}
	if m.TextEncoding != "" {
		opts = append(opts, container.WithTextEncodingName(m.TextEncoding))
	}
	if m.PointerLength != "" {
		opt, err := pointerLengthOption(string(m.PointerLength))
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}

	return opts, nil
}

// pointerLengthOption parses "auto" or a byte width.
func pointerLengthOption(s string) (container.EncoderOption, error) {
	if strings.EqualFold(s, "auto") {
		return container.WithAutoPointerLength(), nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("pointer length %q: want auto or 1-4", s)
	}

	return container.WithPointerLength(n), nil
}

// entries builds the keyed images in manifest order.
func (m *manifest) entries(kind format.Kind) ([]container.Entry, error) {
	entries := make([]container.Entry, 0, len(m.Images))
	for i, mi := range m.Images {
		key, err := parseKey(kind, string(mi.Key))
		if err != nil {
			return nil, fmt.Errorf("image %d: %w", i, err)
		}

		b, err := bitpack.FromRows(mi.Rows...)
		if err != nil {
			return nil, fmt.Errorf("image %d (key %s): %w", i, keyLabel(kind, key), err)
		}

		img := container.NewImage(b)
		if mi.Width > 0 {
			img.Width = mi.Width
		}
		if mi.Height > 0 {
			img.Height = mi.Height
		}
		entries = append(entries, container.Entry{Key: key, Image: img})
	}

	return entries, nil
}
