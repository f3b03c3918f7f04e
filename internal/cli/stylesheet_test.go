package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/travellermap/hexmap/pkg/errors"
)

func TestStylesheetCheckScene(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "stylesheet", "check", "-s", testScene); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "stylesheet", "check", "-s", testScene, "Core"); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "stylesheet", "check", "-s", testScene, "Nowhere"); !errors.Is(err, errors.ErrCodeSectorNotFound) {
		t.Errorf("unknown sector: err = %v", err)
	}
}

func TestStylesheetCheckFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"valid", "border.Im { color: #ff0000; width: 2; style: dashed; }", ""},
		{"bad color", "border { color: notacolor; }", errors.ErrCodeInvalidStyle},
		{"bad style", "route { style: wavy; }", errors.ErrCodeInvalidStyle},
		{"syntax", "border { color: ", errors.ErrCodeParse},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".css")
			if err := os.WriteFile(path, []byte(tt.src), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := execute(t, "stylesheet", "check", "--file", path)
			if tt.code == "" {
				if err != nil {
					t.Errorf("err = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("err = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestStylesheetResolve(t *testing.T) {
	isolate(t)
	if _, err := execute(t, "stylesheet", "resolve", "route", "Xb", "--sector", "Core", "-s", testScene); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "stylesheet", "resolve", "border.ImDc"); err != nil {
		t.Fatal(err)
	}
}

func TestStylesheetDefault(t *testing.T) {
	isolate(t)
	out, err := execute(t, "stylesheet", "default")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "{") {
		t.Errorf("default stylesheet output = %q", out)
	}
}

func TestSplitSelector(t *testing.T) {
	tests := []struct {
		args          []string
		element, code string
	}{
		{[]string{"route"}, "route", ""},
		{[]string{"route", "Xb"}, "route", "Xb"},
		{[]string{"border.ImDc"}, "border", "ImDc"},
	}
	for _, tt := range tests {
		e, c := splitSelector(tt.args)
		if e != tt.element || c != tt.code {
			t.Errorf("splitSelector(%v) = %q, %q", tt.args, e, c)
		}
	}
}
