package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/pipeline"
)

// renderOpts holds the flags shared by the render and sector commands.
type renderOpts struct {
	output    string // output file path, "-" for stdout
	style     string
	format    string
	options   string // map option bits, decimal or 0x hex
	overlays  string // comma-separated overlay names
	highlight string
	scale     float64
	noCache   bool
	refresh   bool
}

func (o *renderOpts) addFlags(cmd *cobra.Command, defaultScale float64) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (\"-\" for stdout)")
	cmd.Flags().StringVar(&o.style, "style", "", "map style: "+strings.Join(themeNames(), ", "))
	cmd.Flags().StringVarP(&o.format, "format", "f", "", "output format: png, jpeg, svg (default depends on style)")
	cmd.Flags().StringVar(&o.options, "options", "", "map option bits (e.g. 0x2073)")
	cmd.Flags().StringVar(&o.overlays, "overlays", "", "comma-separated overlays: "+strings.Join(pipeline.Overlays(), ", "))
	cmd.Flags().StringVar(&o.highlight, "hl", "", "highlight worlds (e.g. stA, p9+, b:NS)")
	cmd.Flags().Float64Var(&o.scale, "scale", defaultScale, "pixels per parsec")
	cmd.Flags().BoolVar(&o.noCache, "no-cache", false, "disable the tile cache")
	cmd.Flags().BoolVar(&o.refresh, "refresh", false, "re-render even when cached")
}

// apply layers the flags over the configured defaults.
func (o *renderOpts) apply(base pipeline.Options) (pipeline.Options, error) {
	opts := base
	opts.Scale = o.scale
	opts.Refresh = o.refresh
	if o.style != "" {
		opts.Style = o.style
	}
	if o.format != "" {
		opts.Format = o.format
	}
	if o.options != "" {
		mo, err := pipeline.ParseMapOptions(o.options)
		if err != nil {
			return opts, err
		}
		opts.MapOptions = mo
	}
	if o.overlays != "" {
		opts.Overlays = pipeline.ParseOverlays(o.overlays)
	}
	if o.highlight != "" {
		opts.Highlight = o.highlight
	}
	return opts, nil
}

// renderCommand creates the render command for a single tile.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		opts          renderOpts
		x, y          float64
		width, height int
		noClip        bool
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a map tile",
		Long: `Render a rectangular tile of the map.

The tile origin is given in tile units: tile (x, y) at scale s and size w×h
covers the map from (x·w/s, y·h/s) parsecs.`,
		Example: `  hexmap render -s scene.toml --scale 64 -x 0 -y -1 -o tile.png
  hexmap render -s scene.toml --style atlas --overlays stellar,capitals -f svg -o tile.svg`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := c.cfg().defaults()
			if err != nil {
				return err
			}
			po, err := opts.apply(base)
			if err != nil {
				return err
			}
			po.X, po.Y = x, y
			if cmd.Flags().Changed("width") {
				po.Width = width
			}
			if cmd.Flags().Changed("height") {
				po.Height = height
			}
			po.ClipOutsectorBorders = !noClip
			return c.runRender(cmd.Context(), po, &opts, fmt.Sprintf("tile_%g_%g", x, y))
		},
	}

	opts.addFlags(cmd, pipeline.DefaultScale)
	cmd.Flags().Float64VarP(&x, "x", "x", 0, "tile x index")
	cmd.Flags().Float64VarP(&y, "y", "y", 0, "tile y index")
	cmd.Flags().IntVarP(&width, "width", "W", pipeline.DefaultTileSize, "tile width in pixels")
	cmd.Flags().IntVarP(&height, "height", "H", pipeline.DefaultTileSize, "tile height in pixels")
	cmd.Flags().BoolVar(&noClip, "no-clip-outsector", false, "draw borders that cross into sectors outside the tile")

	return cmd
}

// sectorCommand creates the sector command for whole-sector renders.
func (c *CLI) sectorCommand() *cobra.Command {
	var (
		opts   renderOpts
		noClip bool
	)

	cmd := &cobra.Command{
		Use:   "sector <name|abbreviation|x,y>",
		Short: "Render a whole sector",
		Example: `  hexmap sector -s scene.toml Core -o core.png
  hexmap sector -s scene.toml 1,0 --scale 16 -f svg -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := c.cfg().defaults()
			if err != nil {
				return err
			}
			po, err := opts.apply(base)
			if err != nil {
				return err
			}
			po.Sector = args[0]
			po.SectorClip = !noClip
			return c.runRender(cmd.Context(), po, &opts, sanitizeName(args[0]))
		},
	}

	opts.addFlags(cmd, pipeline.DefaultSectorScale)
	cmd.Flags().BoolVar(&noClip, "no-clip", false, "render the sector's full bounding box instead of clipping to its outline")

	return cmd
}

// runRender renders opts and writes the image. name is the output file
// stem used when --output is not given.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, ro *renderOpts, name string) error {
	logger := loggerFromContext(ctx)

	p, err := c.loadScene(ctx)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, c.sceneID(), ro.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	if ro.output != "-" {
		spinner.Start()
	}
	res, err := runner.Render(ctx, p, opts)
	if ro.output != "-" {
		spinner.Stop()
	}
	if err != nil {
		return err
	}
	logger.Debugf("Rendered %d bytes of %s", len(res.Data), res.ContentType)

	path := ro.output
	if path == "" {
		path = name + "." + res.Format.Extension()
	}
	if err := writeOutput(path, res.Data); err != nil {
		return err
	}
	if path != "-" {
		printSuccess("Rendered %s", path)
		printTileStats(len(res.Data), string(res.Format), res.Duration, res.Cached)
	}
	return nil
}

// writeOutput writes data to path, or to stdout for "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
	}
	return nil
}

// sanitizeName turns a sector reference into a file stem.
func sanitizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ',':
			return '_'
		}
		return '-'
	}, s)
}
