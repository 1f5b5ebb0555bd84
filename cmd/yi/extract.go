package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/urfave/cli/v3"

	yokai "github.com/mrmattuschka/yokai-image"
	"github.com/mrmattuschka/yokai-image/container"
	"github.com/mrmattuschka/yokai-image/internal/logger"
)

var (
	errNoExtractTarget = errors.New("one of --output-dir or --zip is required")
	errZipMethod       = errors.New("unknown zip method")
)

// zipMethod resolves an archive compression method name.
func zipMethod(name string) (uint16, error) {
	switch name {
	case "", "deflate":
		return zip.Deflate, nil
	case "store":
		return zip.Store, nil
	case "zstd":
		return zstd.ZipMethodWinZip, nil
	default:
		return 0, fmt.Errorf("%w: %q, want deflate|store|zstd", errZipMethod, name)
	}
}

func extractCmd() *cli.Command {
	return &cli.Command{
		Name:  "extract",
		Usage: "Export every image of a .yi container as PNG",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"in"},
				Usage:    "Path to .yi file",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output-dir",
				Aliases: []string{"out"},
				Usage:   "Directory receiving one PNG per image",
			},
			&cli.StringFlag{
				Name:  "zip",
				Usage: "Write the PNGs into this zip archive instead",
			},
			&cli.StringFlag{
				Name:  "zip-method",
				Usage: "Archive compression: deflate|store|zstd",
				Value: "deflate",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			log := logger.FromContext(ctx)
			outDir, zipPath := cmd.String("output-dir"), cmd.String("zip")
			if outDir == "" && zipPath == "" {
				return fmt.Errorf("extract: %w", errNoExtractTarget)
			}
			method, err := zipMethod(cmd.String("zip-method"))
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}

			f, err := yokai.Open(cmd.String("input"))
			if err != nil {
				return fmt.Errorf("extract: %w", err)
			}
			defer func() { _ = f.Close() }()

			if outDir != "" {
				if err := extractPNGs(f.Reader, outDir); err != nil {
					return fmt.Errorf("extract: %w", err)
				}
				log.Info("extracted images", "dir", outDir, "count", f.Len())
			}

			if zipPath != "" {
				var buf bytes.Buffer
				if err := extractZip(f.Reader, &buf, method); err != nil {
					return fmt.Errorf("extract: %w", err)
				}
				if err := writeFileAtomic(zipPath, buf.Bytes()); err != nil {
					return fmt.Errorf("extract: %w", err)
				}
				log.Info("wrote archive", "path", zipPath, "count", f.Len(), "bytes", buf.Len())
			}

			return nil
		},
	}
}

// pngName is the file name of the image stored under key.
func pngName(key container.Key) string {
	return fmt.Sprintf("%03d.png", key)
}

// extractPNGs writes one PNG per image into dir, creating it if needed.
func extractPNGs(rd *container.Reader, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	for _, key := range rd.Keys() {
		img, err := rd.Image(key)
		if err != nil {
			return err
		}

		out, err := os.Create(filepath.Join(dir, pngName(key)))
		if err != nil {
			return err
		}
		if err := png.Encode(out, img.Bitmap); err != nil {
			_ = out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
	}

	return nil
}

// extractZip writes a zip archive holding one PNG per image to w, compressed
// with method.
func extractZip(rd *container.Reader, w io.Writer, method uint16) error {
	zw := zip.NewWriter(w)
	zw.RegisterCompressor(zstd.ZipMethodWinZip, zstd.ZipCompressor())

	for _, key := range rd.Keys() {
		img, err := rd.Image(key)
		if err != nil {
			return err
		}

		entry, err := zw.CreateHeader(&zip.FileHeader{Name: pngName(key), Method: method})
		if err != nil {
			return err
		}
		if err := png.Encode(entry, img.Bitmap); err != nil {
			return err
		}
	}

	return zw.Close()
}
