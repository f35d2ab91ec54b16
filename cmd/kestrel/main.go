// Command kestrel opens a single browser window at a given URL. Grounded
// on cmd/l14/main.go's app.New()/NewWindow()/ShowAndRun() shape, rebuilt
// against internal/browser's scheduled multi-tab engine instead of the
// teacher's one-shot OnSubmitted render.
package main

import (
	"context"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"kestrel/internal/browser"
	"kestrel/internal/netfetch"
)

func main() {
	app := &cli.Command{
		Name:      "kestrel",
		Usage:     "a small browser engine",
		ArgsUsage: "URL",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "width", Value: 1024, Usage: "window width in pixels"},
			&cli.IntFlag{Name: "height", Value: 768, Usage: "window height in pixels"},
			&cli.StringFlag{Name: "font", Usage: "path to a TTF file used for regular text"},
			&cli.StringFlag{Name: "font-bold", Usage: "path to a TTF file used for bold text"},
			&cli.StringFlag{Name: "font-italic", Usage: "path to a TTF file used for italic text"},
			&cli.BoolFlag{Name: "debug", Usage: "enable verbose logging"},
		},
		Action: run,
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "kestrel: %v\n", err)
		os.Exit(1)
	}
}

func run(_ context.Context, cmd *cli.Command) error {
	url := cmd.Args().First()
	if url == "" {
		return fmt.Errorf("missing URL argument; usage: kestrel [options] URL")
	}

	log, err := newLogger(cmd.Bool("debug"))
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer log.Sync()
	sugar := log.Sugar()

	fetcher := netfetch.NewHTTPFetcher(url)

	b := browser.New(url, int(cmd.Int("width")), int(cmd.Int("height")), fetcher, browser.FontPaths{
		Regular: cmd.String("font"),
		Bold:    cmd.String("font-bold"),
		Italic:  cmd.String("font-italic"),
	}, sugar)

	b.Run()
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.DisableStacktrace = true
	return cfg.Build()
}
