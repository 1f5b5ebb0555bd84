// Command yi packs, inspects and extracts YI image containers.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/mrmattuschka/yokai-image/internal/logger"
)

func main() {
	app := &cli.Command{
		Name:  "yi",
		Usage: "Build and inspect YI image and font containers for microcontroller displays",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level: debug|info|warn|error",
				Value: "info",
			},
			&cli.BoolFlag{
				Name:  "log-json",
				Usage: "Write logs as JSON",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level := logger.ParseLevel(cmd.String("log-level"))
			log := logger.New(os.Stderr, level)
			if cmd.Bool("log-json") {
				log = logger.JSON(os.Stderr, level)
			}

			return logger.WithContext(ctx, log), nil
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return cli.ShowAppHelp(cmd)
		},
		Commands: []*cli.Command{
			packCmd(),
			inspectCmd(),
			showCmd(),
			extractCmd(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
