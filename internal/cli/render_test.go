package cli

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/travellermap/hexmap/pkg/errors"
)

func TestRenderCommand(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "tile.png")

	_, err := execute(t, "render", "-s", testScene, "--scale", "32", "-W", "64", "-H", "64", "-o", out)
	if err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(data, []byte("\x89PNG")) {
		t.Error("output is not a PNG")
	}
}

func TestRenderCommandFormats(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name  string
		args  []string
		magic string
	}{
		{"svg", []string{"-f", "svg"}, "<svg"},
		{"candy prefers jpeg", []string{"--style", "candy"}, "\xff\xd8"},
		{"overlays", []string{"--overlays", "stellar,capitals", "--hl", "stA", "-f", "svg"}, "<svg"},
	}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := filepath.Join(dir, string(rune('a'+i)))
			args := append([]string{"render", "-s", testScene, "-W", "64", "-H", "64", "--no-cache", "-o", out}, tt.args...)
			if _, err := execute(t, args...); err != nil {
				t.Fatal(err)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Contains(data[:min(len(data), 256)], []byte(tt.magic)) {
				t.Errorf("output does not start with %q", tt.magic)
			}
		})
	}
}

func TestSectorCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	for _, ref := range []string{"Core", "1,0"} {
		out := filepath.Join(dir, sanitizeName(ref)+".svg")
		if _, err := execute(t, "sector", "-s", testScene, ref, "--scale", "4", "-f", "svg", "-o", out); err != nil {
			t.Fatalf("%s: %v", ref, err)
		}
		data, err := os.ReadFile(out)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.Contains(data, []byte("<svg")) {
			t.Errorf("%s: output is not SVG", ref)
		}
	}
}

func TestRenderCommandErrors(t *testing.T) {
	isolate(t)
	out := filepath.Join(t.TempDir(), "x")

	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"no scene", []string{"render", "-o", out}, errors.ErrCodeInvalidInput},
		{"missing scene", []string{"render", "-s", "nope.toml", "-o", out}, errors.ErrCodeFileNotFound},
		{"bad style", []string{"render", "-s", testScene, "--style", "neon", "-o", out}, errors.ErrCodeInvalidStyle},
		{"bad format", []string{"render", "-s", testScene, "-f", "gif", "-o", out}, errors.ErrCodeInvalidFormat},
		{"bad options", []string{"render", "-s", testScene, "--options", "lots", "-o", out}, errors.ErrCodeInvalidInput},
		{"bad overlay", []string{"render", "-s", testScene, "--overlays", "sparkles", "-o", out}, errors.ErrCodeInvalidInput},
		{"scale", []string{"render", "-s", testScene, "--scale", "100000", "-o", out}, errors.ErrCodeOutOfRange},
		{"unknown sector", []string{"sector", "-s", testScene, "Nowhere", "-o", out}, errors.ErrCodeSectorNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestRenderCommandCachesAndClears(t *testing.T) {
	cacheHome := isolate(t)
	out := filepath.Join(t.TempDir(), "tile.png")
	args := []string{"render", "-s", testScene, "-W", "64", "-H", "64", "-o", out}

	if _, err := execute(t, args...); err != nil {
		t.Fatal(err)
	}
	if n := countEntries(t, filepath.Join(cacheHome, appName)); n != 1 {
		t.Fatalf("%d cache entries after render, want 1", n)
	}

	if _, err := execute(t, "cache", "clear", "-s", testScene); err != nil {
		t.Fatal(err)
	}
	if n := countEntries(t, filepath.Join(cacheHome, appName)); n != 0 {
		t.Errorf("%d cache entries after clear, want 0", n)
	}
}

func countEntries(t *testing.T, dir string) int {
	t.Helper()
	n := 0
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == ".json" {
			n++
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	return n
}

func TestSanitizeName(t *testing.T) {
	tests := map[string]string{
		"Core":               "core",
		"1,0":                "1_0",
		" Spinward Marches ": "spinward-marches",
		"-1,-2":              "-1_-2",
	}
	for in, want := range tests {
		if got := sanitizeName(in); got != want {
			t.Errorf("sanitizeName(%q) = %q, want %q", in, got, want)
		}
	}
}
