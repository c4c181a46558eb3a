// Command officegen generates an office floor plan and optionally renders it
// to a PNG.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/officegen/internal/generator"
	"github.com/vancomm/officegen/internal/render"
	"github.com/vancomm/officegen/internal/tileset"
)

var log = logrus.New()

type options struct {
	size        int
	seed        uint64
	seedSet     bool
	tilesetPath string
	assetsDir   string
	out         string
	attempts    int
	maxSteps    int
	logFile     string
	verbose     bool
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	opts := &options{}
	fs := flag.NewFlagSet("officegen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&opts.size, "n", 10, "layout side length in tiles")
	fs.Uint64Var(&opts.seed, "seed", 0, "random seed (random when omitted)")
	fs.StringVar(&opts.tilesetPath, "tileset", "", "tileset file (built-in office set when empty)")
	fs.StringVar(&opts.assetsDir, "assets", "", "tile image directory (defaults to the tileset's directory)")
	fs.StringVar(&opts.out, "out", "", "write the rendered layout to this PNG file")
	fs.IntVar(&opts.attempts, "attempts", generator.DefaultAttempts, "solve attempts before giving up")
	fs.IntVar(&opts.maxSteps, "max-steps", 0, "collapse steps per attempt (0 for no limit)")
	fs.StringVar(&opts.logFile, "log-file", "", "also log to this file, rotated by size")
	fs.BoolVar(&opts.verbose, "v", false, "verbose logging")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			opts.seedSet = true
		}
	})
	if !opts.seedSet {
		opts.seed = rand.Uint64()
	}
	return opts, nil
}

func (o *options) assets(ts *tileset.Tileset) render.Assets {
	dir := o.assetsDir
	if dir == "" && o.tilesetPath != "" {
		dir = filepath.Dir(o.tilesetPath)
	}
	if dir == "" {
		dir = "."
	}
	return ts.Assets(dir)
}

func run(ctx context.Context, opts *options, stdout io.Writer) error {
	ts := tileset.Default()
	if opts.tilesetPath != "" {
		var err error
		if ts, err = tileset.Load(opts.tilesetPath); err != nil {
			return fmt.Errorf("unable to load tileset: %w", err)
		}
	}

	gen := generator.New(generator.Config{
		Tileset:  ts,
		MaxSize:  opts.size,
		Attempts: opts.attempts,
		MaxSteps: opts.maxSteps,
	})

	log.WithFields(logrus.Fields{
		"size": opts.size,
		"seed": opts.seed,
	}).Debug("generating layout")

	res, err := gen.Generate(ctx, generator.Request{Size: opts.size, Seed: opts.seed})
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"seed":     res.Seed,
		"attempts": res.Attempts,
	}).Info("layout generated")
	if _, err := io.WriteString(stdout, res.Layout.String()); err != nil {
		return err
	}

	if opts.out == "" {
		return nil
	}
	img, err := render.Compose(res.Layout, opts.assets(ts))
	if err != nil {
		return fmt.Errorf("unable to render layout: %w", err)
	}
	path, err := render.Save(img, opts.out)
	if err != nil {
		return fmt.Errorf("unable to save layout image: %w", err)
	}
	log.WithField("path", path).Info("layout image saved")
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := setupLogging(log, opts.verbose, opts.logFile); err != nil {
		log.Fatal("unable to open log file: ", err)
	}
	bridge := bridgeSlog(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, opts, os.Stdout)
	stop()
	bridge.Close()
	if err != nil {
		log.Fatal(err)
	}
}
