package render

import (
	"bytes"
	"context"
	"image"
	"slices"
	"strings"
	"testing"

	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/graphics"
	"github.com/travellermap/hexmap/pkg/sector"
	"github.com/travellermap/hexmap/pkg/style"
)

func loadScene(t *testing.T) *sector.MemoryProvider {
	t.Helper()
	p, err := sector.LoadFile("../sector/testdata/scene.toml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	return p
}

func coreSector(t *testing.T, p *sector.MemoryProvider) *sector.Sector {
	t.Helper()
	sec := p.Lookup("Core")
	if sec == nil {
		t.Fatal("Core sector missing")
	}
	return sec
}

func countOps(r *graphics.Recorder, name string) int {
	n := 0
	for _, op := range r.Names() {
		if op == name {
			n++
		}
	}
	return n
}

func TestLayersFollowStyleOrder(t *testing.T) {
	for _, theme := range []style.Theme{style.Poster, style.Mongoose} {
		s := style.New(64, style.DefaultMapOptions, theme)
		got := Layers(s)
		if len(got) != len(layers) {
			t.Fatalf("%v: %d layers, want %d", theme, len(got), len(layers))
		}
		for i := 1; i < len(got); i++ {
			if s.LayerIndex(got[i-1]) > s.LayerIndex(got[i]) {
				t.Errorf("%v: %v drawn before %v", theme, got[i-1], got[i])
			}
		}
	}

	m := Layers(style.New(64, style.DefaultMapOptions, style.Mongoose))
	wb := slices.Index(m, style.LayerWorldsBackground)
	if wb < 0 || m[wb+1] != style.LayerMicroBordersStroke {
		t.Errorf("mongoose: border stroke should follow world backgrounds: %v", m)
	}
}

func TestRenderEmptyProvider(t *testing.T) {
	for _, scale := range []float64{1.0 / 64, 1, 8, 64, 256} {
		s := style.New(scale, style.DefaultMapOptions, style.Poster)
		req, err := NewTileRequest(sector.NewMemoryProvider(), s, 0, 0, 256, 256)
		if err != nil {
			t.Fatalf("scale %g: %v", scale, err)
		}
		rec := graphics.NewVectorRecorder()
		if err := Render(rec, req); err != nil {
			t.Errorf("scale %g: %v", scale, err)
		}
	}
}

func TestRenderSavesBalance(t *testing.T) {
	p := loadScene(t)
	for _, theme := range []style.Theme{style.Poster, style.Atlas, style.Candy, style.Mongoose} {
		s := style.New(64, style.DefaultMapOptions, theme)
		req, err := NewTileRequest(p, s, -1, -1, 512, 512)
		if err != nil {
			t.Fatal(err)
		}
		rec := graphics.NewVectorRecorder()
		if err := Render(rec, req); err != nil {
			t.Fatalf("%v: %v", theme, err)
		}
		if saves, restores := countOps(rec, "save"), countOps(rec, "restore"); saves != restores {
			t.Errorf("%v: %d saves, %d restores", theme, saves, restores)
		}
	}
}

func TestClipOnlyForVectorTiles(t *testing.T) {
	p := loadScene(t)
	s := style.New(32, style.DefaultMapOptions, style.Poster)
	req, err := NewTileRequest(p, s, 0, 0, 256, 256)
	if err != nil {
		t.Fatal(err)
	}

	raster := graphics.NewRecorder(nil)
	if err := Render(raster, req); err != nil {
		t.Fatal(err)
	}
	vector := graphics.NewVectorRecorder()
	if err := Render(vector, req); err != nil {
		t.Fatal(err)
	}
	if n := countOps(vector, "clip-rect"); n == 0 {
		t.Error("vector tile was not clipped to the tile rectangle")
	}
	if countOps(raster, "clip-rect") >= countOps(vector, "clip-rect") {
		t.Error("raster tile should skip the tile clip")
	}
}

func TestSectorRenderBackendEquivalence(t *testing.T) {
	p := loadScene(t)
	s := style.New(16, style.DefaultMapOptions, style.Poster)
	req, err := NewSectorRequest(p, s, coreSector(t, p), true)
	if err != nil {
		t.Fatal(err)
	}
	raster := graphics.NewRecorder(graphics.NewRaster(req.Width, req.Height))
	vector := graphics.NewRecorder(graphics.NewVector(float64(req.Width), float64(req.Height)))
	if err := Render(raster, req); err != nil {
		t.Fatalf("raster: %v", err)
	}
	if err := Render(vector, req); err != nil {
		t.Fatalf("vector: %v", err)
	}
	if raster.String() != vector.String() {
		t.Error("raster and vector passes issued different drawing calls")
	}
	if countOps(vector, "clip-path") == 0 {
		t.Error("sector render should clip to the sector outline")
	}
}

func TestRenderDeterministic(t *testing.T) {
	p := loadScene(t)
	s := style.New(2, style.DefaultMapOptions, style.Poster)
	run := func() string {
		req, err := NewTileRequest(p, s, 3, -2, 256, 256)
		if err != nil {
			t.Fatal(err)
		}
		rec := graphics.NewRecorder(nil)
		if err := Render(rec, req); err != nil {
			t.Fatal(err)
		}
		return rec.String()
	}
	first := run()
	if first != run() {
		t.Error("two passes over the same tile differ")
	}
	if !s.PseudoRandomStars.Visible {
		t.Skip("pseudo-random stars hidden at this scale")
	}
	if !strings.Contains(first, "ellipse") {
		t.Error("no stars drawn")
	}
}

func TestRenderCancelled(t *testing.T) {
	s := style.New(64, style.DefaultMapOptions, style.Poster)
	req, err := NewTileRequest(sector.NewMemoryProvider(), s, 0, 0, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = RenderContext(ctx, graphics.NewRecorder(nil), req)
	if !errors.Is(err, errors.ErrCodeRender) {
		t.Errorf("err = %v, want a render error", err)
	}
}

func TestRequestValidation(t *testing.T) {
	p := sector.NewMemoryProvider()
	if _, err := NewTileRequest(p, style.New(1024, style.DefaultMapOptions, style.Poster), 0, 0, 256, 256); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("scale 1024: err = %v", err)
	}
	s := style.New(64, style.DefaultMapOptions, style.Poster)
	if _, err := NewTileRequest(p, s, 0, 0, 0, 256); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("zero width: err = %v", err)
	}
	if _, err := NewTileRequest(p, s, 0, 0, MaxTileSize+1, 256); !errors.Is(err, errors.ErrCodeOutOfRange) {
		t.Errorf("oversize: err = %v", err)
	}
	if err := Render(graphics.NewRecorder(nil), &Request{Scale: 64, Width: 1, Height: 1}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("no style: err = %v", err)
	}
}

func TestTileFailsOnDrawError(t *testing.T) {
	p := loadScene(t)
	p.SetImage(ImageNebula, image.NewRGBA(image.Rect(0, 0, 0, 0)))
	s := style.New(32, style.DefaultMapOptions, style.Poster)
	s.ShowNebulaBackground = true
	req, err := NewTileRequest(p, s, 0, 0, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	for _, format := range []style.Format{style.FormatPNG, style.FormatJPEG, style.FormatSVG} {
		data, _, err := Tile(context.Background(), req, format)
		if !errors.Is(err, errors.ErrCodeRender) {
			t.Errorf("%s: err = %v, want RENDER", format, err)
		}
		if data != nil {
			t.Errorf("%s: %d bytes returned with an error", format, len(data))
		}
	}
}

func TestTile(t *testing.T) {
	p := loadScene(t)
	s := style.New(32, style.DefaultMapOptions, style.Poster)
	req, err := NewTileRequest(p, s, 0, 0, 64, 64)
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		format style.Format
		prefix []byte
	}{
		{style.FormatPNG, []byte("\x89PNG\r\n\x1a\n")},
		{style.FormatJPEG, []byte{0xff, 0xd8}},
		{style.FormatSVG, []byte("<?xml")},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			data, format, err := Tile(context.Background(), req, tt.format)
			if err != nil {
				t.Fatal(err)
			}
			if format != tt.format {
				t.Errorf("format = %q", format)
			}
			if !bytes.HasPrefix(data, tt.prefix) {
				t.Errorf("output starts %q", data[:min(len(data), 8)])
			}
		})
	}
	if _, _, err := Tile(context.Background(), req, "gif"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("gif: err = %v", err)
	}
}

func TestWrapLabel(t *testing.T) {
	tests := []struct{ in, want string }{
		{"Spinward Marches", "Spinward\nMarches"},
		{"Zhodani Consulate of the Sword", "Zhodani\nConsulate of the\nSword"},
		{"Two  Spaces", "Two\nSpaces"},
		{"Gap  of", "Gap\n of"},
		{"Single", "Single"},
	}
	for _, tt := range tests {
		if got := wrapLabel(tt.in); got != tt.want {
			t.Errorf("wrapLabel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBiasFormat(t *testing.T) {
	tests := []struct {
		bx, by int
		want   textFormat
	}{
		{0, 0, formatCenter},
		{1, 0, formatMiddleLeft},
		{-1, 0, formatMiddleRight},
		{0, 1, formatTopCenter},
		{0, -1, formatBottomCenter},
		{1, 1, formatTopLeft},
		{-1, -1, formatBottomRight},
	}
	for _, tt := range tests {
		if got := biasFormat(tt.bx, tt.by); got != tt.want {
			t.Errorf("biasFormat(%d, %d) = %d, want %d", tt.bx, tt.by, got, tt.want)
		}
	}
}

func TestBaseGlyph(t *testing.T) {
	tests := []struct {
		alleg string
		code  byte
		want  glyph
	}{
		{"Im", 'N', glyph{glyphStar5Point, false, biasTop}},
		{"Im", 'D', glyph{glyphSquare, false, biasBottom}},
		{"Zh", 'D', glyph{glyphSquare, true, biasNone}},
		{"Zh", 'W', glyph{glyphDiamond, true, biasNone}},
		{"Im", 'W', glyph{glyphTriangle, true, biasBottom}},
		{"Im", 'S', glyph{glyphTriangle, false, biasBottom}},
		{"Va", 'Q', glyph{glyphCircle, false, biasNone}},
	}
	for _, tt := range tests {
		if got := baseGlyph(tt.alleg, tt.code); got != tt.want {
			t.Errorf("baseGlyph(%q, %q) = %+v, want %+v", tt.alleg, tt.code, got, tt.want)
		}
	}

	if g := researchGlyph("RsT"); g.chars != "Θ" || !g.highlight {
		t.Errorf("RsT = %+v", g)
	}
	if g := researchGlyph("Rs"); g.chars != "Γ" {
		t.Errorf("Rs = %+v", g)
	}
}

func TestParseStellar(t *testing.T) {
	tests := []struct {
		in   string
		want []star
	}{
		{"G2 V", []star{{"G", "V"}}},
		{"F7 V M2 V", []star{{"F", "V"}, {"M", "V"}}},
		{"K1 IV D", []star{{"K", "IV"}, {"D", ""}}},
		{"M0V BD", []star{{"M", "V"}, {"BD", ""}}},
		{"A0 Ia [G2 III]", []star{{"A", "Ia"}, {"G", "III"}}},
		{"", nil},
		{"garbage", nil},
	}
	for _, tt := range tests {
		if got := parseStellar(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("parseStellar(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if r := (star{"G", "III"}).props().radius; r != 3 {
		t.Errorf("G III radius = %g", r)
	}
	if r := (star{"BH", ""}).props().radius; r != 0.8 {
		t.Errorf("BH radius = %g", r)
	}
}

func TestStarOffsetWraps(t *testing.T) {
	if o := starOffset(0); o.X != 0 || o.Y != 0 {
		t.Errorf("offset 0 = %v", o)
	}
	if starOffset(7) != starOffset(2) {
		t.Error("offset 7 should wrap onto the hexagon")
	}
}
