package cli

import (
	"path/filepath"
	"testing"
)

func TestXDGDirs(t *testing.T) {
	home := t.TempDir()
	tests := []struct {
		name   string
		env    map[string]string
		dir    func() (string, error)
		expect string
	}{
		{"cache default", map[string]string{"XDG_CACHE_HOME": ""}, cacheDir, filepath.Join(home, ".cache", appName)},
		{"cache xdg", map[string]string{"XDG_CACHE_HOME": "/tmp/xc"}, cacheDir, filepath.Join("/tmp/xc", appName)},
		{"config default", map[string]string{"XDG_CONFIG_HOME": ""}, configDir, filepath.Join(home, ".config", appName)},
		{"config xdg", map[string]string{"XDG_CONFIG_HOME": "/tmp/xg"}, configDir, filepath.Join("/tmp/xg", appName)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", home)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			got, err := tt.dir()
			if err != nil {
				t.Fatalf("error: %v", err)
			}
			if got != tt.expect {
				t.Errorf("got %q, want %q", got, tt.expect)
			}
		})
	}
}
