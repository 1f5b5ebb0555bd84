package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/mrmattuschka/yokai-image/container"
	"github.com/mrmattuschka/yokai-image/internal/logger"
	"github.com/mrmattuschka/yokai-image/internal/scratch"
)

func packCmd() *cli.Command {
	return &cli.Command{
		Name:  "pack",
		Usage: "Pack the images listed in a YAML manifest into a .yi container",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "manifest",
				Aliases:  []string{"m"},
				Usage:    "YAML manifest describing the images",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "output",
				Aliases:  []string{"out"},
				Usage:    "Output .yi path",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "encoding",
				Usage: "Pixel encoding override: HLSB|HMSB|VLSB",
			},
			&cli.StringFlag{
				Name:  "pointer-length",
				Usage: "LUT pointer width override: 1-4 or auto",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)

			f, err := os.Open(cmd.String("manifest"))
			if err != nil {
				return fmt.Errorf("pack: %w", err)
			}
			defer func() { _ = f.Close() }()

			data, err := packManifest(f, cmd.String("encoding"), cmd.String("pointer-length"), log)
			if err != nil {
				return fmt.Errorf("pack: %w", err)
			}

			out := cmd.String("output")
			if err := writeFileAtomic(out, data); err != nil {
				return fmt.Errorf("pack: %w", err)
			}
			log.Info("wrote container", "path", out, "bytes", len(data))

			return nil
		},
	}
}

// packManifest encodes the container described by the manifest in r.
// Non-empty encoding and pointerLength override the manifest settings.
func packManifest(r io.Reader, encoding, pointerLength string, log *slog.Logger) ([]byte, error) {
	m, err := loadManifest(r)
	if err != nil {
		return nil, err
	}

	kind, err := m.kind()
	if err != nil {
		return nil, err
	}

	opts, err := m.options()
	if err != nil {
		return nil, err
	}
	if encoding != "" {
		opts = append(opts, container.WithPixelEncodingName(encoding))
	}
	if pointerLength != "" {
		opt, err := pointerLengthOption(pointerLength)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt)
	}
	opts = append(opts, container.WithLogger(log))

	entries, err := m.entries(kind)
	if err != nil {
		return nil, err
	}

	return container.Encode(entries, kind, opts...)
}

// writeFileAtomic writes data next to path through a scratch directory and
// renames it into place, so readers never see a partial container.
func writeFileAtomic(path string, data []byte) error {
	dir := scratch.New(filepath.Dir(path), ".yi-*")
	defer func() { _ = dir.Cleanup() }()

	tmp, err := dir.CreateTemp("out-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
