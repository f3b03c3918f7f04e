package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/travellermap/hexmap/pkg/buildinfo"
	"github.com/travellermap/hexmap/pkg/cache"
	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/pipeline"
	"github.com/travellermap/hexmap/pkg/sector"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "hexmap"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogWarn  = log.WarnLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	scenePath  string
	config     *Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "hexmap renders Traveller-style hex maps",
		Long:          `hexmap renders sector and tile images of a hex star map from a TOML scene, as PNG, JPEG or SVG, and serves them over HTTP.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, path, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.config = cfg
			if path != "" {
				c.Logger.Debug("loaded config", "path", path)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "config file (default ./"+configFile+")")
	root.PersistentFlags().StringVarP(&c.scenePath, "scene", "s", "", "scene file (overrides [data] scene)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.sectorCommand())
	root.AddCommand(c.stylesheetCommand())
	root.AddCommand(c.hexCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// cfg returns the loaded config, or the defaults before PersistentPreRunE
// has run.
func (c *CLI) cfg() *Config {
	if c.config == nil {
		c.config = defaultConfig()
	}
	return c.config
}

// =============================================================================
// Factories
// =============================================================================

// loadScene loads the scene named by --scene or the config file.
func (c *CLI) loadScene(ctx context.Context) (*sector.MemoryProvider, error) {
	path := c.scenePath
	if path == "" {
		path = c.cfg().Data.Scene
	}
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no scene: pass --scene or set [data] scene in %s", configFile)
	}
	prog := newProgress(loggerFromContext(ctx))
	p, err := sector.LoadFile(path)
	if err != nil {
		return nil, err
	}
	prog.done("Loaded scene", "path", path, "sectors", len(p.All()))
	return p, nil
}

// newRunner creates a pipeline runner for CLI use. Tiles of different
// scenes share one cache without colliding.
func (c *CLI) newRunner(ctx context.Context, sceneID string, noCache bool) (*pipeline.Runner, error) {
	cc := c.cfg().cacheConfig()
	if noCache {
		cc.Backend = cache.BackendNone
	}
	store, err := cache.Open(cc)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cache.NewScoped(store, "scene:"+sceneID+":"), loggerFromContext(ctx))
	r.TTL = cc.TTL
	r.CacheName = cc.Backend
	return r, nil
}

// sceneID fingerprints the scene file so that edits invalidate its tiles.
func (c *CLI) sceneID() string {
	path := c.scenePath
	if path == "" {
		path = c.cfg().Data.Scene
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "none"
	}
	return cache.Hash(data)[:12]
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns $XDG_CACHE_HOME/hexmap, or ~/.cache/hexmap.
func cacheDir() (string, error) {
	return xdgDir("XDG_CACHE_HOME", ".cache")
}

// configDir returns $XDG_CONFIG_HOME/hexmap, or ~/.config/hexmap.
func configDir() (string, error) {
	return xdgDir("XDG_CONFIG_HOME", ".config")
}

func xdgDir(env, fallback string) (string, error) {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback, appName), nil
}
