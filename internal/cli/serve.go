package cli

import (
	"github.com/spf13/cobra"

	"github.com/travellermap/hexmap/internal/server"
)

// serveCommand runs the tile service until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve map tiles over HTTP",
		Long: `Serve map tiles over HTTP.

Endpoints:
  GET /api/tile         render a tile or, with sector=, a whole sector
  GET /api/coordinates  convert a sector hex to map coordinates
  GET /api/version      build information
  GET /healthz          liveness check`,
		Example: `  hexmap serve -s scene.toml --addr :9000
  curl 'localhost:9000/api/tile?x=0&y=0&scale=64&style=atlas' > tile.png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			defaults, err := c.cfg().defaults()
			if err != nil {
				return err
			}
			p, err := c.loadScene(ctx)
			if err != nil {
				return err
			}
			runner, err := c.newRunner(ctx, c.sceneID(), noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			if addr == "" {
				addr = c.cfg().Server.Addr
			}
			srv := server.New(server.Config{
				Addr:     addr,
				Provider: p,
				Runner:   runner,
				Logger:   logger,
				Defaults: defaults,
			})

			printInfo("Serving %d sectors on %s", p.Len(), StyleHighlight.Render(addr))
			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, "+server.DefaultAddr+")")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the tile cache")

	return cmd
}
