package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/travellermap/hexmap/internal/server"
	"github.com/travellermap/hexmap/pkg/cache"
	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/pipeline"
)

// configFile is the name searched for when --config is not given.
const configFile = appName + ".toml"

// Config is the contents of hexmap.toml. Every field is optional.
type Config struct {
	Server struct {
		Addr string `toml:"addr"`
	} `toml:"server"`

	Cache cache.Config `toml:"cache"`

	Render struct {
		Style    string   `toml:"style"`
		Options  string   `toml:"options"`
		TileSize int      `toml:"tile_size"`
		Overlays []string `toml:"overlays"`
	} `toml:"render"`

	Data struct {
		Scene string `toml:"scene"`
	} `toml:"data"`
}

// defaultConfig returns the configuration used when no file is found.
func defaultConfig() *Config {
	cfg := &Config{}
	cfg.Server.Addr = server.DefaultAddr
	cfg.Cache.Backend = cache.BackendFile
	cfg.Cache.TTL = pipeline.DefaultTTL
	cfg.Render.Style = pipeline.DefaultStyle
	cfg.Render.TileSize = pipeline.DefaultTileSize
	return cfg
}

// loadConfig reads path over the defaults. An empty path searches the
// working directory and then the user config directory; finding nothing
// there is not an error.
func loadConfig(path string) (*Config, string, error) {
	cfg := defaultConfig()
	explicit := path != ""
	if !explicit {
		path = findConfig()
		if path == "" {
			return cfg, "", nil
		}
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return nil, "", errors.Wrap(errors.ErrCodeConfig, err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, "", errors.New(errors.ErrCodeConfig, "config %s: unknown key %s", path, undecoded[0])
	}

	// Relative paths in the file are relative to the file.
	dir := filepath.Dir(path)
	if cfg.Data.Scene != "" && !filepath.IsAbs(cfg.Data.Scene) {
		cfg.Data.Scene = filepath.Join(dir, cfg.Data.Scene)
	}
	if cfg.Cache.Dir != "" && !filepath.IsAbs(cfg.Cache.Dir) {
		cfg.Cache.Dir = filepath.Join(dir, cfg.Cache.Dir)
	}
	return cfg, path, nil
}

func findConfig() string {
	candidates := []string{configFile}
	if dir, err := configDir(); err == nil {
		candidates = append(candidates, filepath.Join(dir, configFile))
	}
	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			return c
		}
	}
	return ""
}

// defaults returns the pipeline options implied by the [render] section.
func (c *Config) defaults() (pipeline.Options, error) {
	opts := pipeline.Options{
		Style:    c.Render.Style,
		Width:    c.Render.TileSize,
		Height:   c.Render.TileSize,
		Overlays: c.Render.Overlays,
	}
	var err error
	if opts.MapOptions, err = pipeline.ParseMapOptions(c.Render.Options); err != nil {
		return opts, err
	}
	return opts, nil
}

// cacheConfig resolves the [cache] section, filling in the default cache
// directory.
func (c *Config) cacheConfig() cache.Config {
	cc := c.Cache
	if cc.Backend == cache.BackendFile && cc.Dir == "" {
		if dir, err := cacheDir(); err == nil {
			cc.Dir = dir
		} else {
			cc.Backend = cache.BackendNone
		}
	}
	if cc.TTL == 0 {
		cc.TTL = pipeline.DefaultTTL
	}
	return cc
}
