// Package fonts maps stylesheet font families onto embedded faces and caches sized faces.
//
// The Go fonts from golang.org/x/image cover every family used by the map
// themes. Family names used by the stylesheets ("Arial", "Courier New", ...)
// are mapped onto these embedded faces so rendering never depends on fonts
// installed on the host.
package fonts

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/gomonobolditalic"
	"golang.org/x/image/font/gofont/gomonoitalic"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

// ScriptFamily is the CSS font-family list written into vector output for
// handwriting faces. Raster output draws them with the Go italic face.
const ScriptFamily = `'Comic Sans MS', 'Bradley Hand', 'Segoe Script', cursive`

// Kind identifies one of the embedded typefaces.
type Kind int

const (
	Sans Kind = iota
	Mono
	Script
)

func (k Kind) String() string {
	switch k {
	case Mono:
		return "mono"
	case Script:
		return "script"
	}
	return "sans"
}

// KindOf maps a family name as written in a stylesheet onto an embedded
// typeface. Unknown families fall back to Sans.
func KindOf(family string) Kind {
	f := strings.ToLower(strings.Trim(family, `'" `))
	switch {
	case strings.Contains(f, "comic"), strings.Contains(f, "script"):
		return Script
	case strings.Contains(f, "courier"), strings.Contains(f, "mono"), strings.Contains(f, "consol"):
		return Mono
	}
	return Sans
}

// Key identifies a sized face. Size is in points at 72 DPI, i.e. pixels.
type Key struct {
	Kind   Kind
	Bold   bool
	Italic bool
	Size   float64
}

type fontKey struct {
	kind         Kind
	bold, italic bool
}

var (
	parsedMu sync.Mutex
	parsed   = map[fontKey]*opentype.Font{}
)

// parse returns the shared parsed font for k. Parsed fonts are safe for
// concurrent use; faces are not.
func parse(k fontKey) (*opentype.Font, error) {
	parsedMu.Lock()
	defer parsedMu.Unlock()
	if f, ok := parsed[k]; ok {
		return f, nil
	}
	f, err := opentype.Parse(source(k))
	if err != nil {
		return nil, fmt.Errorf("fonts: parse %s: %w", k.kind, err)
	}
	parsed[k] = f
	return f, nil
}

// NewFace returns a new face for the key. Sizes are rounded to 1/64 pixel.
func NewFace(k Key) (font.Face, error) {
	k.Size = roundSize(k.Size)
	if k.Size <= 0 {
		return nil, fmt.Errorf("fonts: invalid size %v", k.Size)
	}
	fk := fontKey{kind: k.Kind, bold: k.Bold, italic: k.Italic}
	if k.Kind == Script {
		fk.italic = true
	}
	otf, err := parse(fk)
	if err != nil {
		return nil, err
	}
	face, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    k.Size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, fmt.Errorf("fonts: face %s %.2f: %w", k.Kind, k.Size, err)
	}
	return face, nil
}

func roundSize(s float64) float64 { return float64(int(s*64+0.5)) / 64 }

// Cache holds faces for one renderer. A face must not be used by two
// goroutines at once, so each render pass owns its own Cache.
type Cache struct {
	mu    sync.Mutex
	faces map[Key]font.Face
}

// NewCache returns an empty face cache.
func NewCache() *Cache {
	return &Cache{faces: map[Key]font.Face{}}
}

// Face returns the cached face for k, creating it on first use.
func (c *Cache) Face(k Key) (font.Face, error) {
	k.Size = roundSize(k.Size)
	c.mu.Lock()
	defer c.mu.Unlock()
	if f, ok := c.faces[k]; ok {
		return f, nil
	}
	f, err := NewFace(k)
	if err != nil {
		return nil, err
	}
	c.faces[k] = f
	return f, nil
}

// Len returns the number of cached faces.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.faces)
}

// Close releases all cached faces.
func (c *Cache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k, f := range c.faces {
		f.Close()
		delete(c.faces, k)
	}
	return nil
}

func source(k fontKey) []byte {
	switch k.kind {
	case Mono:
		switch {
		case k.bold && k.italic:
			return gomonobolditalic.TTF
		case k.bold:
			return gomonobold.TTF
		case k.italic:
			return gomonoitalic.TTF
		}
		return gomono.TTF
	}
	switch {
	case k.bold && k.italic:
		return gobolditalic.TTF
	case k.bold:
		return gobold.TTF
	case k.italic:
		return goitalic.TTF
	}
	return goregular.TTF
}
