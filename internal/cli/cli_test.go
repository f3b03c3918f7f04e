package cli

import (
	"bytes"
	"context"
	"io"
	"testing"
)

const testScene = "../../pkg/sector/testdata/scene.toml"

// isolate points the config and cache directories at fresh temp dirs.
func isolate(t *testing.T) (cacheHome string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cacheHome = t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	return cacheHome
}

// execute runs the root command with args and returns what it wrote
// through cobra's output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := New(io.Discard, LogWarn).RootCommand()
	root.SetArgs(args)
	root.SetOut(&out)
	root.SetErr(io.Discard)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := New(io.Discard, LogWarn).RootCommand()
	for _, name := range []string{"render", "sector", "stylesheet", "hex", "serve", "browse", "cache", "version", "completion"} {
		if cmd, _, err := root.Find([]string{name}); err != nil || cmd.Name() != name {
			t.Errorf("subcommand %s not registered", name)
		}
	}
}

func TestVersionJSON(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version", "--json")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains([]byte(out), []byte(`"version"`)) {
		t.Errorf("output = %s", out)
	}
}

func TestCompletion(t *testing.T) {
	isolate(t)
	out, err := execute(t, "completion", "bash")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains([]byte(out), []byte("hexmap")) {
		t.Error("bash completion does not mention hexmap")
	}
	if _, err := execute(t, "completion", "tcsh"); err == nil {
		t.Error("unsupported shell accepted")
	}
}
