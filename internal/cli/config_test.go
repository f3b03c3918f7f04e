package cli

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/travellermap/hexmap/pkg/cache"
	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/pipeline"
	"github.com/travellermap/hexmap/pkg/style"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFile)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	isolate(t)
	cfg, path, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if path != "" {
		t.Errorf("found config %s in an empty config dir", path)
	}
	if cfg.Render.Style != pipeline.DefaultStyle || cfg.Render.TileSize != pipeline.DefaultTileSize {
		t.Errorf("render defaults = %+v", cfg.Render)
	}
	if cfg.Cache.Backend != cache.BackendFile {
		t.Errorf("cache backend = %s", cfg.Cache.Backend)
	}
}

func TestLoadConfigFile(t *testing.T) {
	isolate(t)
	path := writeConfig(t, `
[server]
addr = ":9999"

[cache]
backend = "none"
ttl = "1h"

[render]
style = "atlas"
options = "0x2000"
tile_size = 512
overlays = ["stellar", "capitals"]

[data]
scene = "maps/scene.toml"
`)
	cfg, got, err := loadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != path {
		t.Errorf("path = %s", got)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %s", cfg.Server.Addr)
	}
	if cfg.Cache.TTL != time.Hour {
		t.Errorf("ttl = %v", cfg.Cache.TTL)
	}
	if want := filepath.Join(filepath.Dir(path), "maps", "scene.toml"); cfg.Data.Scene != want {
		t.Errorf("scene = %s, want %s", cfg.Data.Scene, want)
	}

	opts, err := cfg.defaults()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Style != "atlas" || opts.Width != 512 || opts.Height != 512 {
		t.Errorf("defaults = %+v", opts)
	}
	if opts.MapOptions != style.MapOptions(0x2000) {
		t.Errorf("map options = %#x", opts.MapOptions)
	}
	if !slices.Equal(opts.Overlays, []string{"stellar", "capitals"}) {
		t.Errorf("overlays = %v", opts.Overlays)
	}
}

func TestLoadConfigSearchesConfigDir(t *testing.T) {
	isolate(t)
	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), appName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(dir, configFile)
	if err := os.WriteFile(want, []byte("[render]\nstyle = \"fasa\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, path, err := loadConfig("")
	if err != nil {
		t.Fatal(err)
	}
	if path != want || cfg.Render.Style != "fasa" {
		t.Errorf("loaded %s with style %s", path, cfg.Render.Style)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	isolate(t)
	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(t.TempDir(), "absent.toml"), errors.ErrCodeFileNotFound},
		{"syntax", writeConfig(t, "[render\n"), errors.ErrCodeConfig},
		{"unknown key", writeConfig(t, "[render]\nstlye = \"atlas\"\n"), errors.ErrCodeConfig},
		{"wrong type", writeConfig(t, "[render]\ntile_size = \"big\"\n"), errors.ErrCodeConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := loadConfig(tt.path)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestConfigFlag(t *testing.T) {
	isolate(t)
	_, err := execute(t, "--config", filepath.Join(t.TempDir(), "absent.toml"), "version")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestConfigDefaultsBadOptions(t *testing.T) {
	cfg := defaultConfig()
	cfg.Render.Options = "lots"
	if _, err := cfg.defaults(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("err = %v", err)
	}
}

func TestCacheConfig(t *testing.T) {
	cacheHome := isolate(t)

	cc := defaultConfig().cacheConfig()
	if cc.Backend != cache.BackendFile || cc.Dir != filepath.Join(cacheHome, appName) {
		t.Errorf("file cache = %+v", cc)
	}
	if cc.TTL != pipeline.DefaultTTL {
		t.Errorf("ttl = %v", cc.TTL)
	}

	cfg := defaultConfig()
	cfg.Cache.Dir = "/srv/tiles"
	if cc := cfg.cacheConfig(); cc.Dir != "/srv/tiles" {
		t.Errorf("explicit dir = %s", cc.Dir)
	}

	cfg = defaultConfig()
	cfg.Cache.TTL = 0
	if cc := cfg.cacheConfig(); cc.TTL != pipeline.DefaultTTL {
		t.Errorf("zero ttl = %v", cc.TTL)
	}
}
