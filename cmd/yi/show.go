package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/urfave/cli/v3"

	yokai "github.com/mrmattuschka/yokai-image"
	"github.com/mrmattuschka/yokai-image/container"
)

func showCmd() *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Render the images of a .yi container as ASCII art",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"in"},
				Usage:    "Path to .yi file",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:    "key",
				Aliases: []string{"k"},
				Usage:   "Only show these keys (character for fonts, number for images)",
			},
			&cli.StringFlag{Name: "ink", Usage: "Character for set pixels", Value: "#"},
			&cli.StringFlag{Name: "background", Usage: "Character for clear pixels", Value: "."},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			f, err := yokai.Open(cmd.String("input"))
			if err != nil {
				return fmt.Errorf("show: %w", err)
			}
			defer func() { _ = f.Close() }()

			keys := f.Keys()
			if raw := cmd.StringSlice("key"); len(raw) > 0 {
				keys = keys[:0]
				for _, s := range raw {
					key, err := parseKey(f.Metadata().Kind, s)
					if err != nil {
						return fmt.Errorf("show: %w", err)
					}
					keys = append(keys, key)
				}
			}

			ink, bg := firstByte(cmd.String("ink"), '#'), firstByte(cmd.String("background"), '.')
			if err := showImages(cmd.Root().Writer, f.Reader, keys, ink, bg); err != nil {
				return fmt.Errorf("show: %w", err)
			}

			return nil
		},
	}
}

// showImages prints each key's image as rows of ink and bg characters.
func showImages(w io.Writer, rd *container.Reader, keys []container.Key, ink, bg byte) error {
	kind := rd.Metadata().Kind
	_, _ = fmt.Fprintf(w, "%s, %d images\n", formatKind(kind), rd.Len())

	for _, key := range keys {
		img, err := rd.Image(key)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "\n%s %dx%d\n%s\n", keyLabel(kind, key), img.Width, img.Height,
			strings.Join(img.Bitmap.Rows(ink, bg), "\n"))
		if err != nil {
			return err
		}
	}

	return nil
}

func firstByte(s string, fallback byte) byte {
	if s == "" {
		return fallback
	}

	return s[0]
}
