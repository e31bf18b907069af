// Command goldens inspects and maintains golden reference images.
//
// Usage:
//
//	goldens list testdata/goldens
//	goldens diff testdata/goldens-failures/home.phone_candidate.png testdata/goldens/home.phone.png
//	goldens approve testdata/goldens-failures testdata/goldens
//	goldens devices --suite goldens.yaml
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	cli "github.com/urfave/cli/v3"

	"github.com/gogpu/golden"
)

func setupLogging(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := slog.LevelInfo
	if cmd.Bool("debug") {
		level = slog.LevelDebug
	}
	golden.SetLogger(slog.New(slog.NewTextHandler(cmd.Root().ErrWriter, &slog.HandlerOptions{Level: level})))
	golden.Logger().Debug("goldens: started", "args", cmd.Args().Slice())
	return ctx, nil
}

func newApp(stdout, stderr io.Writer) *cli.Command {
	return &cli.Command{
		Name:            "goldens",
		Usage:           "inspects and maintains golden reference images",
		HideHelpCommand: true,
		Writer:          stdout,
		ErrWriter:       stderr,
		Before:          setupLogging,
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log debug output to stderr"},
		},
		Commands: []*cli.Command{
			{
				Name:      "list",
				Usage:     "Lists reference images with their sizes",
				ArgsUsage: "DIR",
				Action:    runList,
			},
			{
				Name:      "diff",
				Usage:     "Compares two images the way golden assertions do",
				ArgsUsage: "CANDIDATE REFERENCE",
				Action:    runDiff,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Aliases: []string{"o"}, Usage: "write the diff image to `FILE`"},
					&cli.FloatFlag{Name: "threshold", Usage: "accepted `PERCENT` of differing pixels"},
					&cli.UintFlag{Name: "tolerance", Usage: "accepted per-channel `DELTA` (0-255)"},
				},
			},
			{
				Name:      "approve",
				Usage:     "Promotes failure candidates to references",
				ArgsUsage: "FAILURES BASE",
				Action:    runApprove,
			},
			{
				Name:   "devices",
				Usage:  "Lists device presets or the configurations of a suite",
				Action: runDevices,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "suite", Aliases: []string{"s"}, Usage: "load configurations from `FILE` (YAML)"},
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	var err error
	defer func() {
		stop()
		if err != nil {
			fmt.Fprintf(os.Stderr, "goldens: %v\n", err)
			os.Exit(1)
		}
	}()
	err = newApp(os.Stdout, os.Stderr).Run(ctx, os.Args)
}
