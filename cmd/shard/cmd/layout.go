package cmd

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-drift/shard/pkg/graphics"
	"github.com/go-drift/shard/pkg/platform"
	"github.com/go-drift/shard/pkg/platform/headless"
	"github.com/go-drift/shard/pkg/shard"
)

func init() {
	RegisterCommand(&Command{
		Name:  "layout",
		Short: "Lay out a document and print its frames",
		Long: `Build a document, lay it out on a headless surface and print the
materialized view tree with each view's frame in pixels.

Engine settings (density, fonts, image timeout, log level) are read from
shard.yaml next to the document, if present.

Flags:
  --width N        Surface width in pixels (default 390)
  --height N       Surface height in pixels (default 844)
  --wait DURATION  Keep pumping layout passes for this long so remote
                   images can resolve their sizes (default 0)
  --no-images      Do not fetch images; they lay out at zero size`,
		Usage: "shard layout [--width N] [--height N] [--wait DURATION] [--no-images] <file>",
		Run:   runLayout,
	})
}

type layoutOptions struct {
	path     string
	size     graphics.Size
	wait     time.Duration
	noImages bool
}

func parseLayoutArgs(args []string) (layoutOptions, error) {
	opts := layoutOptions{size: graphics.Size{Width: 390, Height: 844}}
	value := func(i int, name string) (string, error) {
		if i+1 >= len(args) {
			return "", fmt.Errorf("%s requires a value", name)
		}
		return args[i+1], nil
	}
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "--width", "--height":
			s, err := value(i, arg)
			if err != nil {
				return opts, err
			}
			n, err := strconv.ParseFloat(s, 64)
			if err != nil || n <= 0 {
				return opts, fmt.Errorf("%s must be a positive number (got %q)", arg, s)
			}
			if arg == "--width" {
				opts.size.Width = n
			} else {
				opts.size.Height = n
			}
			i++
		case "--wait":
			s, err := value(i, arg)
			if err != nil {
				return opts, err
			}
			d, err := time.ParseDuration(s)
			if err != nil || d < 0 {
				return opts, fmt.Errorf("--wait must be a duration (got %q)", s)
			}
			opts.wait = d
			i++
		case "--no-images":
			opts.noImages = true
		default:
			if strings.HasPrefix(arg, "--") {
				return opts, fmt.Errorf("unknown flag: %s", arg)
			}
			if opts.path != "" {
				return opts, fmt.Errorf("only one document can be laid out at a time")
			}
			opts.path = arg
		}
	}
	if opts.path == "" {
		return opts, fmt.Errorf("document path is required\n\nUsage: shard layout <file>")
	}
	return opts, nil
}

func runLayout(args []string) error {
	opts, err := parseLayoutArgs(args)
	if err != nil {
		return err
	}
	doc, err := readDocument(opts.path)
	if err != nil {
		return err
	}
	cfg, logger, err := engineConfig(opts.path, !opts.noImages)
	if err != nil {
		return err
	}

	loop := platform.NewLoop(headless.New())
	surface := shard.NewSurface(loop, cfg)
	defer func() {
		surface.Close()
		loop.Pump()
		loop.Close()
	}()

	surface.SetSize(opts.size)
	var (
		finished bool
		loadErr  error
	)
	surface.LoadDocument(doc, func(err error) { finished, loadErr = true, err })
	for !finished {
		if loop.Pump() == 0 {
			time.Sleep(time.Millisecond)
		}
	}
	if loadErr != nil {
		return fmt.Errorf("%s: %w", opts.path, loadErr)
	}

	deadline := time.Now().Add(opts.wait)
	for time.Now().Before(deadline) {
		loop.Pump()
		time.Sleep(10 * time.Millisecond)
	}
	loop.Pump()

	view, ok := surface.View().(*headless.View)
	if !ok {
		return fmt.Errorf("%s: nothing was materialized", opts.path)
	}
	logger.Debug("layout done", "path", opts.path, "passes", surface.Root().Context().Pipeline().Passes())
	fmt.Fprint(stdout, view.Tree().String())
	return nil
}
