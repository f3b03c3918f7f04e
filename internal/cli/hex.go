package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/pipeline"
	"github.com/travellermap/hexmap/pkg/sector"
)

// hexCommand groups the coordinate tools.
func (c *CLI) hexCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hex",
		Short: "Convert between sector hexes and map coordinates",
		Long: `Convert between sector hexes and map coordinates.

A location is written SECTOR:XXYY where SECTOR is "x,y" or, with a scene
loaded, a sector name or abbreviation. Map coordinates are parsecs from
the reference hex (Core 0140). Use -- before negative numbers.`,
	}

	cmd.AddCommand(c.hexCoordsCommand())
	cmd.AddCommand(c.hexLocateCommand())
	cmd.AddCommand(c.hexDistanceCommand())

	return cmd
}

func (c *CLI) hexCoordsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "coords <location>",
		Short:   "Print the map coordinates of a location",
		Example: `  hexmap hex coords 0,0:0101`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := c.parseLocation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p := loc.Coordinates()
			printKeyValue("location", loc.String())
			printKeyValue("coords", fmt.Sprintf("%d, %d", p.X, p.Y))
			return nil
		},
	}
}

func (c *CLI) hexLocateCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "locate <x> <y>",
		Short:   "Print the sector and hex containing map coordinates",
		Example: `  hexmap hex locate -- 32 -39`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p astrometrics.Point
			var err error
			if p.X, err = strconv.Atoi(args[0]); err != nil {
				return errors.Invalid("x", "not an integer: %q", args[0])
			}
			if p.Y, err = strconv.Atoi(args[1]); err != nil {
				return errors.Invalid("y", "not an integer: %q", args[1])
			}
			loc := astrometrics.CoordinatesToLocation(p)
			printKeyValue("coords", fmt.Sprintf("%d, %d", p.X, p.Y))
			printKeyValue("location", loc.String())
			printKeyValue("subsector", string(rune('A'+loc.Hex.Subsector())))
			return nil
		},
	}
}

func (c *CLI) hexDistanceCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "distance <location> <location>",
		Short:   "Print the jump distance between two locations",
		Example: `  hexmap hex distance 0,0:0101 1,0:0101`,
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.parseLocation(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			b, err := c.parseLocation(cmd.Context(), args[1])
			if err != nil {
				return err
			}
			d := astrometrics.HexDistance(a.Coordinates(), b.Coordinates())
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", d)
			return nil
		},
	}
}

// parseLocation parses SECTOR:XXYY. Named sectors need the scene.
func (c *CLI) parseLocation(ctx context.Context, s string) (astrometrics.Location, error) {
	var loc astrometrics.Location
	ref, hex, ok := strings.Cut(s, ":")
	if !ok {
		return loc, errors.Invalid("location", "want SECTOR:XXYY, got %q", s)
	}

	h, err := astrometrics.ParseHex(hex)
	if err != nil || !h.IsValid() {
		return loc, errors.Invalid("location", "bad hex %q", hex)
	}
	loc.Hex = h

	var x, y int
	if n, err := fmt.Sscanf(ref, "%d,%d", &x, &y); err == nil && n == 2 {
		loc.Sector = astrometrics.Point{X: x, Y: y}
		return loc, nil
	}

	var p *sector.MemoryProvider
	if p, err = c.loadScene(ctx); err != nil {
		return loc, err
	}
	sec, err := pipeline.FindSector(p, ref)
	if err != nil {
		return loc, err
	}
	loc.Sector = sec.Location
	return loc, nil
}
