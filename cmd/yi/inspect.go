package main

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v3"

	yokai "github.com/mrmattuschka/yokai-image"
	"github.com/mrmattuschka/yokai-image/container"
	"github.com/mrmattuschka/yokai-image/internal/hash"
)

type inspectReport struct {
	File           string         `json:"file,omitempty"`
	Version        string         `json:"version"`
	Kind           string         `json:"kind"`
	PixelEncoding  string         `json:"pixel_encoding"`
	TextEncoding   string         `json:"text_encoding,omitempty"`
	PointerLength  int            `json:"pointer_length"`
	ImageCount     int            `json:"image_count"`
	MaxWidth       int            `json:"max_width"`
	MaxHeight      int            `json:"max_height"`
	MetadataLength int            `json:"metadata_length"`
	LUTLength      int            `json:"lut_length"`
	Images         []inspectImage `json:"images"`
}

type inspectImage struct {
	Key           int    `json:"key"`
	Label         string `json:"label"`
	Offset        int64  `json:"offset"`
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	SectionLength int    `json:"section_length"`
	Digest        string `json:"digest"`
	Fingerprint   string `json:"fingerprint"`
}

func inspectCmd() *cli.Command {
	var (
		path    string
		asJSON  bool
		noImage bool
	)

	return &cli.Command{
		Name:  "inspect",
		Usage: "Print the metadata and lookup table of a .yi container",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "input",
				Aliases:     []string{"in"},
				Usage:       "Path to .yi file",
				Destination: &path,
				Required:    true,
			},
			&cli.BoolFlag{Name: "json", Usage: "Print the report as JSON", Destination: &asJSON},
			&cli.BoolFlag{Name: "no-images", Usage: "Omit the per-image listing", Destination: &noImage},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			f, err := yokai.Open(path)
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			defer func() { _ = f.Close() }()

			report, err := buildReport(f.Reader, !noImage)
			if err != nil {
				return fmt.Errorf("inspect: %w", err)
			}
			report.File = path

			w := cmd.Root().Writer
			if asJSON {
				return writeReportJSON(w, report)
			}

			return writeReportText(w, report)
		},
	}
}

// buildReport collects the container layout. Image sections are read only
// when withImages is set.
//
// Digest hashes the packed bytes; Fingerprint hashes the rendered pixels and
// stays the same when an image is repacked with another pixel encoding.
func buildReport(rd *container.Reader, withImages bool) (inspectReport, error) {
	meta := rd.Metadata()
	report := inspectReport{
		Version:        meta.Version.String(),
		Kind:           meta.Kind.String(),
		PixelEncoding:  meta.PixelEncoding.String(),
		PointerLength:  meta.PointerLength,
		ImageCount:     meta.ImageCount,
		MaxWidth:       meta.MaxSize.X,
		MaxHeight:      meta.MaxSize.Y,
		MetadataLength: meta.Length,
		LUTLength:      rd.LUTLength(),
		Images:         []inspectImage{},
	}
	if meta.HasTextEncoding {
		report.TextEncoding = meta.TextEncoding.String()
	}
	if !withImages {
		return report, nil
	}

	for _, e := range rd.LUTEntries() {
		key := container.Key(e.Key)
		s, err := rd.Section(key)
		if err != nil {
			return inspectReport{}, err
		}
		img, err := rd.Image(key)
		if err != nil {
			return inspectReport{}, err
		}
		report.Images = append(report.Images, inspectImage{
			Key:           int(key),
			Label:         keyLabel(meta.Kind, key),
			Offset:        e.Offset,
			Width:         s.Width,
			Height:        s.Height,
			SectionLength: s.Length,
			Digest:        fmt.Sprintf("%016x", s.Digest()),
			Fingerprint:   fmt.Sprintf("%016x", hash.DigestString(img.Bitmap.String())),
		})
	}

	return report, nil
}

func writeReportJSON(w io.Writer, report inspectReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = w.Write(data)

	return err
}

func writeReportText(w io.Writer, r inspectReport) error {
	var text string
	if r.TextEncoding != "" {
		text = ", text " + r.TextEncoding
	}

	_, err := fmt.Fprintf(w, "YI container %s\n", r.File)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Version: %s\n", r.Version)
	_, _ = fmt.Fprintf(w, "Kind: %s (%d images), %s pixels%s\n", r.Kind, r.ImageCount, r.PixelEncoding, text)
	_, _ = fmt.Fprintf(w, "Max size: %dx%d\n", r.MaxWidth, r.MaxHeight)
	_, _ = fmt.Fprintf(w, "Blocks: metadata %d bytes, lut %d bytes (%d-byte pointers)\n",
		r.MetadataLength, r.LUTLength, r.PointerLength)

	if len(r.Images) == 0 {
		return nil
	}

	_, _ = fmt.Fprintf(w, "\n%-6s %8s %9s %8s  %-16s  %s\n", "KEY", "OFFSET", "SIZE", "SECTION", "DIGEST", "FINGERPRINT")
	for _, img := range r.Images {
		size := strconv.Itoa(img.Width) + "x" + strconv.Itoa(img.Height)
		_, err = fmt.Fprintf(w, "%-6s %8d %9s %8d  %-16s  %s\n",
			img.Label, img.Offset, size, img.SectionLength, img.Digest, img.Fingerprint)
		if err != nil {
			return err
		}
	}

	return nil
}
