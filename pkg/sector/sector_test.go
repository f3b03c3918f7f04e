package sector

import (
	"strings"
	"testing"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/graphics"
	"github.com/travellermap/hexmap/pkg/stylesheet"
)

func loadScene(t *testing.T) *MemoryProvider {
	t.Helper()
	p, err := LoadFile("testdata/scene.toml")
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	return p
}

func TestLoadScene(t *testing.T) {
	p := loadScene(t)
	if p.Len() != 2 {
		t.Fatalf("Len = %d, want 2", p.Len())
	}
	core := p.Sector(0, 0)
	if core == nil {
		t.Fatal("sector 0,0 missing")
	}
	if core.Name() != "Core" || !core.Selected {
		t.Errorf("core = %q selected=%v", core.Name(), core.Selected)
	}
	if core.Subsectors[1] != "Capital" || core.Subsectors[15] != "Lishun" || core.Subsectors[2] != "" {
		t.Errorf("subsectors = %q", core.Subsectors)
	}
	if len(core.Borders) != 2 || len(core.Regions) != 1 || len(core.Routes) != 2 || len(core.Labels) != 1 || len(core.Worlds) != 3 {
		t.Fatalf("counts: borders=%d regions=%d routes=%d labels=%d worlds=%d",
			len(core.Borders), len(core.Regions), len(core.Routes), len(core.Labels), len(core.Worlds))
	}
	for _, w := range core.Worlds {
		if w.Sector != core {
			t.Errorf("world %s not linked to its sector", w.Name)
		}
	}
	if !core.HasTag("official") || core.HasTag("Apocryphal") {
		t.Errorf("tags = %v", core.Tags)
	}

	region := core.Regions[0]
	if region.ShowLabel || region.Color == nil || region.Color.G != 0xFF {
		t.Errorf("region = %+v", region)
	}

	label := core.Labels[0]
	if label.Size != LabelLarge || label.Color == DefaultLabelColor || label.Hex != astrometrics.MustParseHex("1620") {
		t.Errorf("label = %+v", label)
	}

	if got := p.Lookup("Trailing"); got == nil || got.Location != (astrometrics.Point{X: 1, Y: 0}) {
		t.Errorf("Lookup(Trailing) = %v", got)
	}
	if p.Lookup("Nowhere") != nil {
		t.Error("Lookup(Nowhere) should be nil")
	}
}

func TestSceneVectorsAndMacroWorlds(t *testing.T) {
	p := loadScene(t)

	borders := p.VectorObjects(VectorBorders)
	if len(borders) != 1 {
		t.Fatalf("borders = %d", len(borders))
	}
	path := borders[0].Path()
	if !path.Types[len(path.Types)-1].Closes() || path.Types[0] != graphics.PointStart {
		t.Errorf("border path types = %v", path.Types)
	}
	if borders[0].Options != 0x50 {
		t.Errorf("options = %#x", borders[0].Options)
	}

	rifts := p.VectorObjects(VectorRifts)
	if len(rifts) != 1 {
		t.Fatalf("rifts = %d", len(rifts))
	}
	want := astrometrics.RectangleF{X: -10, Y: 3, Width: 8, Height: 2}
	if got := rifts[0].TransformedBounds(); got != want {
		t.Errorf("TransformedBounds = %+v, want %+v", got, want)
	}
	if got := rifts[0].NamePosition(); got != (astrometrics.PointF{X: -6, Y: 4}) {
		t.Errorf("NamePosition = %+v", got)
	}
	if len(p.VectorObjects(VectorRoutes)) != 0 {
		t.Error("no route vectors expected")
	}

	macro := p.MacroWorlds()
	if len(macro) != 1 || macro[0].LabelBiasX != -1 || macro[0].LabelBiasY != 0 || macro[0].Options != 0x100 {
		t.Errorf("macro worlds = %+v", macro)
	}
	if p.Image("Nebula") != nil {
		t.Error("unexpected image")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code errors.Code
	}{
		{"syntax", "[[sector]\n", errors.ErrCodeParse},
		{"unknown key", "[[sector]]\nx = 0\ny = 0\ncolour = 1\n", errors.ErrCodeInvalidFormat},
		{"bad world hex", "[[sector]]\n[[sector.world]]\nhex = \"01\"\nuwp = \"A000000-0\"\n", errors.ErrCodeInvalidFormat},
		{"world outside sector", "[[sector]]\n[[sector.world]]\nhex = \"3301\"\nuwp = \"A000000-0\"\n", errors.ErrCodeInvalidFormat},
		{"bad uwp", "[[sector]]\n[[sector.world]]\nhex = \"0101\"\nuwp = \"A00\"\n", errors.ErrCodeInvalidFormat},
		{"bad color", "[[sector]]\n[[sector.border]]\npath = \"0101\"\ncolor = \"#12\"\n", errors.ErrCodeInvalidFormat},
		{"bad style", "[[sector]]\n[[sector.route]]\nstart = \"0101\"\nend = \"0102\"\nstyle = \"wavy\"\n", errors.ErrCodeInvalidFormat},
		{"bad subsector", "[[sector]]\n[sector.subsectors]\nQ = \"x\"\n", errors.ErrCodeInvalidFormat},
		{"duplicate sector", "[[sector]]\nx = 1\n[[sector]]\nx = 1\n", errors.ErrCodeInvalidFormat},
		{"short vector", "[[vector]]\npoints = [[0.0, 0.0]]\n", errors.ErrCodeInvalidFormat},
		{"bad vector kind", "[[vector]]\nkind = \"lakes\"\npoints = [[0.0, 0.0], [1.0, 1.0]]\n", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, tt.code) {
				t.Errorf("code = %s, want %s (%v)", errors.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile("testdata/missing.toml")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("err = %v", err)
	}
}

func TestBadStylesheetFallsBack(t *testing.T) {
	p, err := Decode(strings.NewReader("[[sector]]\nstylesheet = \"border { color red; }\"\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	s := p.Sector(0, 0)
	if s.Stylesheet() != stylesheet.Default() {
		t.Error("expected default sheet")
	}
	if !errors.Is(s.StylesheetError(), errors.ErrCodeParse) {
		t.Errorf("StylesheetError = %v", s.StylesheetError())
	}
}

func TestSectorStylesheet(t *testing.T) {
	p := loadScene(t)
	core := p.Sector(0, 0)

	c, ok := core.ApplyStylesheet("border", "ImDc").Color("color")
	if !ok || c != stylesheet.MustParseColor("#c00000") {
		t.Errorf("border.ImDc color = %v, %v", c, ok)
	}
	c, ok = core.ApplyStylesheet("border", "Zh").Color("color")
	if !ok || c != stylesheet.MustParseColor("blue") {
		t.Errorf("border.Zh color = %v, %v", c, ok)
	}
	if w, ok := core.ApplyStylesheet("route", "Xb").Number("width"); !ok || w != 2 {
		t.Errorf("route.Xb width = %v, %v", w, ok)
	}
	if p.Sector(1, 0).Stylesheet() != stylesheet.Default() {
		t.Error("sector without a sheet should use the default")
	}
}

func TestCheckStylesheet(t *testing.T) {
	p := loadScene(t)
	if errs := p.Sector(0, 0).CheckStylesheet(); len(errs) != 0 {
		t.Errorf("scene sheet: %v", errs)
	}
	if errs := p.Sector(1, 0).CheckStylesheet(); errs != nil {
		t.Errorf("sector without a sheet: %v", errs)
	}

	bad, err := Decode(strings.NewReader("[[sector]]\nstylesheet = \"route.Xb { width: wide; style: wavy; color: #00f; }\"\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	errs := bad.Sector(0, 0).CheckStylesheet()
	if len(errs) != 2 {
		t.Fatalf("got %d errors, want 2: %v", len(errs), errs)
	}
	for _, e := range errs {
		var ve *stylesheet.ValueError
		if !asValueError(e, &ve) || (ve.Property != "width" && ve.Property != "style") {
			t.Errorf("unexpected error %v", e)
		}
	}

	broken, err := Decode(strings.NewReader("[[sector]]\nstylesheet = \"border { color red; }\"\n"))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if errs := broken.Sector(0, 0).CheckStylesheet(); len(errs) != 1 || !errors.Is(errs[0], errors.ErrCodeParse) {
		t.Errorf("parse failure: %v", errs)
	}
}

func asValueError(err error, target **stylesheet.ValueError) bool {
	ve, ok := err.(*stylesheet.ValueError)
	*target = ve
	return ok
}

func TestBorderLabels(t *testing.T) {
	p := loadScene(t)
	core := p.Sector(0, 0)

	b := core.Borders[0]
	if got := b.LabelPosition(); got != (astrometrics.Hex{X: 2, Y: 2}) {
		t.Errorf("LabelPosition = %v", got)
	}
	if got := b.DisplayLabel(core); got != "Third Imperium, Domain of Sylea" {
		t.Errorf("DisplayLabel = %q", got)
	}

	b = core.Borders[1]
	if got := b.LabelPosition(); got != astrometrics.MustParseHex("1010") {
		t.Errorf("explicit LabelPosition = %v", got)
	}
	if got := b.DisplayLabel(core); got != "Outpost" || !b.WrapLabel {
		t.Errorf("DisplayLabel = %q wrap=%v", got, b.WrapLabel)
	}
	if got := core.Regions[0].DisplayLabel(core); got != "" {
		t.Errorf("hidden label = %q", got)
	}

	unknown := NewBorder([]astrometrics.Hex{{X: 1, Y: 1}}, "Qq")
	if got := unknown.DisplayLabel(core); got != "" {
		t.Errorf("unknown allegiance label = %q", got)
	}
	stock := NewBorder([]astrometrics.Hex{{X: 1, Y: 1}}, "Zh")
	if got := stock.DisplayLabel(core); got != "Zhodani Consulate" {
		t.Errorf("stock allegiance label = %q", got)
	}
}

func TestBorderTraceCached(t *testing.T) {
	p := loadScene(t)
	core := p.Sector(0, 0)
	b := core.Borders[0]
	t1 := b.Trace(core.Location, astrometrics.PathHex)
	t2 := b.Trace(core.Location, astrometrics.PathHex)
	if len(t1.Path.Points) == 0 || &t1.Path.Points[0] != &t2.Path.Points[0] {
		t.Error("trace not cached")
	}
	c1 := core.ClipPath(astrometrics.PathSquare)
	c2 := core.ClipPath(astrometrics.PathSquare)
	if &c1.Path.Points[0] != &c2.Path.Points[0] {
		t.Error("clip path not cached")
	}
	sb := core.Bounds().Float()
	if !c1.Bounds.IntersectsWith(sb) {
		t.Errorf("clip bounds %+v outside sector %+v", c1.Bounds, sb)
	}
}

func TestFixHex(t *testing.T) {
	tests := []struct {
		in      astrometrics.Hex
		wantHex astrometrics.Hex
		wantOff astrometrics.Point
	}{
		{astrometrics.Hex{X: 5, Y: 5}, astrometrics.Hex{X: 5, Y: 5}, astrometrics.Point{}},
		{astrometrics.Hex{X: 0, Y: 5}, astrometrics.Hex{X: 32, Y: 5}, astrometrics.Point{X: -1}},
		{astrometrics.Hex{X: 33, Y: 41}, astrometrics.Hex{X: 1, Y: 1}, astrometrics.Point{X: 1, Y: 1}},
		{astrometrics.Hex{X: 5, Y: 0}, astrometrics.Hex{X: 5, Y: 40}, astrometrics.Point{Y: -1}},
	}
	for _, tt := range tests {
		h, off := FixHex(tt.in)
		if h != tt.wantHex || off != tt.wantOff {
			t.Errorf("FixHex(%v) = %v, %v; want %v, %v", tt.in, h, off, tt.wantHex, tt.wantOff)
		}
	}
}

func TestRouteEndpoints(t *testing.T) {
	p := loadScene(t)
	core := p.Sector(0, 0)

	r := core.Routes[1]
	if r.End != (astrometrics.Hex{X: 1, Y: 10}) || r.EndOffset != (astrometrics.Point{X: 1}) {
		t.Fatalf("route end = %v %v", r.End, r.EndOffset)
	}
	start, end := core.RouteEndpoints(r)
	if start.Sector != (astrometrics.Point{}) || end.Sector != (astrometrics.Point{X: 1}) {
		t.Errorf("endpoints = %v, %v", start, end)
	}
	if d := astrometrics.HexDistance(start.Coordinates(), end.Coordinates()); d != 1 {
		t.Errorf("distance = %d, want 1", d)
	}
	if got := r.StyleCode(); got != "Im" {
		t.Errorf("StyleCode = %q", got)
	}
	if got := core.Routes[0].StyleCode(); got != "Xb" {
		t.Errorf("StyleCode = %q", got)
	}
}

func TestLineStyle(t *testing.T) {
	for name, want := range LineStyles {
		got, err := ParseLineStyle(strings.ToUpper(name))
		if err != nil || got != want {
			t.Errorf("ParseLineStyle(%q) = %v, %v", name, got, err)
		}
		if got.String() != name {
			t.Errorf("String = %q, want %q", got.String(), name)
		}
	}
	if _, err := ParseLineStyle("wavy"); err == nil {
		t.Error("expected error")
	}
}

func TestProviderSectors(t *testing.T) {
	p := loadScene(t)

	got := p.Sectors(astrometrics.RectangleF{X: 0, Y: -39, Width: 30, Height: 38})
	if len(got) != 1 || got[0].Name() != "Core" {
		t.Errorf("inner rect selected %d sectors", len(got))
	}

	got = p.Sectors(astrometrics.RectangleF{X: 0, Y: -39, Width: 40, Height: 10})
	if len(got) != 2 || got[0].Name() != "Core" || got[1].Name() != "Trailing" {
		t.Errorf("wide rect selected %v", got)
	}

	if p.Sector(5, 5) != nil {
		t.Error("missing sector should be nil")
	}
	if got := p.Sectors(astrometrics.RectangleF{X: 1000, Y: 1000, Width: 10, Height: 10}); len(got) != 0 {
		t.Errorf("far rect selected %d sectors", len(got))
	}
}

func TestRectSelector(t *testing.T) {
	p := loadScene(t)

	sel := NewRectSelector(p, astrometrics.RectangleF{X: 0, Y: -38, Width: 3, Height: 2}, false)
	worlds := sel.Worlds()
	if len(worlds) != 2 || worlds[0].Name != "Capital" || worlds[1].Name != "Belter" {
		names := make([]string, len(worlds))
		for i, w := range worlds {
			names[i] = w.Name
		}
		t.Errorf("worlds = %v", names)
	}
	if len(sel.Routes()) != 2 {
		t.Errorf("routes = %d", len(sel.Routes()))
	}

	slop := NewRectSelector(p, astrometrics.RectangleF{X: 0, Y: -38, Width: 10, Height: 10}, true)
	if r := slop.Rect(); r.X != -3 || r.Width != 16 {
		t.Errorf("slop rect = %+v", r)
	}
	if wide := slop.WithSlopFactor(1); wide.SlopFactor() != 1 || slop.SlopFactor() != DefaultSlopFactor {
		t.Error("WithSlopFactor must not modify the original")
	}
}

func TestHexSelector(t *testing.T) {
	p := loadScene(t)
	loc := astrometrics.Location{Hex: astrometrics.MustParseHex("0102")}

	sel, err := NewHexSelector(p, loc, 1)
	if err != nil {
		t.Fatal(err)
	}
	if w := sel.Worlds(); len(w) != 1 || w[0].Name != "Capital" {
		t.Errorf("jump 1 worlds = %d", len(w))
	}
	sel, _ = NewHexSelector(p, loc, 2)
	if w := sel.Worlds(); len(w) != 2 {
		t.Errorf("jump 2 worlds = %d", len(w))
	}
	for _, j := range []int{-1, MaxJump + 1} {
		if _, err := NewHexSelector(p, loc, j); !errors.Is(err, errors.ErrCodeOutOfRange) {
			t.Errorf("jump %d: err = %v", j, err)
		}
	}
}
