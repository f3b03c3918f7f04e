package render

import (
	"image/color"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/graphics"
	"github.com/travellermap/hexmap/pkg/sector"
	"github.com/travellermap/hexmap/pkg/style"
)

type worldLayer int

const (
	worldBackground worldLayer = iota
	worldForeground
	worldOverlay
)

// Gas giant symbol radius, in hex content units.
const gasGiantRadius = 0.05

// Asteroid belt speckle: a 3-4-3 pattern with a per-position chance.
var (
	beltX      = [...]int{-2, 0, 2, -3, -1, 1, 3, -2, 0, 2}
	beltY      = [...]int{-2, -2, -2, 0, 0, 0, 0, 2, 2, 2}
	beltChance = [...]float64{0.5, 0.9, 0.5, 0.6, 0.9, 0.9, 0.6, 0.5, 0.9, 0.5}
)

const beltSpacing = 0.035

func (p *pass) drawWorldsBackground() error {
	s := p.s
	if !s.Worlds.Visible {
		return nil
	}
	if s.ShowStellarOverlay {
		for _, w := range p.sel.Worlds() {
			p.drawStars(astrometrics.HexToCenter(w.Coordinates()), w.Stellar)
		}
		return nil
	}
	for _, w := range p.sel.Worlds() {
		p.drawWorld(w, worldBackground)
	}
	return nil
}

func (p *pass) drawWorldsForeground() error {
	if !p.s.Worlds.Visible || p.s.ShowStellarOverlay {
		return nil
	}
	for _, w := range p.sel.Worlds() {
		p.drawWorld(w, worldForeground)
	}
	return nil
}

// drawWorldsOverlays draws the circles sized by population, importance and
// the like. They reach far past their hex, so the selection grows with
// scale.
func (p *pass) drawWorldsOverlays() error {
	s := p.s
	if !s.Worlds.Visible || s.ShowStellarOverlay || !s.HasWorldOverlays() {
		return nil
	}
	sel := p.sel
	if rs, ok := sel.(*sector.RectSelector); ok {
		sel = rs.WithSlopFactor(math.Max(rs.SlopFactor(), math.Log2(s.Scale)-4))
	}
	for _, w := range sel.Worlds() {
		p.drawWorld(w, worldOverlay)
	}
	return nil
}

// zoneStyle returns the element for the world's travel zone, or nil.
func (p *pass) zoneStyle(w *sector.World) *style.Element {
	s := p.s
	switch {
	case w.IsAmber():
		return &s.AmberZone
	case w.IsRed():
		return &s.RedZone
	case s.GreenZone.Visible && !w.IsPlaceholder():
		return &s.GreenZone
	}
	return nil
}

// drawWorld draws one layer of a world in hex content space: centered on
// the hex, scaled by the content scale and rotated by the hex rotation.
func (p *pass) drawWorld(w *sector.World, layer worldLayer) {
	g, s := p.g, p.s
	state := g.Save()
	defer g.Restore(state)

	center := astrometrics.HexToCenter(w.Coordinates())
	g.TranslateTransform(center.X, center.Y)
	g.ScaleTransform(s.HexContentScale/astrometrics.ParsecScaleX, s.HexContentScale/astrometrics.ParsecScaleY)
	g.RotateTransform(s.HexRotation)

	switch {
	case layer == worldOverlay:
		p.drawWorldOverlays(w)
	case s.UseWorldImages:
		p.drawCandyWorld(w, layer)
	case layer == worldBackground:
		p.drawWorldBackground(w)
	default:
		p.drawWorldForeground(w)
	}
}

func (p *pass) drawWorldOverlays(w *sector.World) {
	s := p.s
	if s.PopulationOverlay.Visible && w.Population() > 0 {
		p.drawOverlay(&s.PopulationOverlay, math.Sqrt(w.Population()/math.Pi)*0.00002)
	}
	if s.ImportanceOverlay.Visible {
		if im := w.ImportanceValue(); im > 0 {
			p.drawOverlay(&s.ImportanceOverlay, (float64(im)-0.5)*astrometrics.ParsecScaleX)
		}
	}
	if s.CapitalOverlay.Visible {
		important, capital := w.ImportanceValue() >= 4, w.IsCapital()
		r := 2 * astrometrics.ParsecScaleX
		switch {
		case important && capital:
			p.drawOverlay(&s.CapitalOverlay, r)
		case important:
			p.drawOverlay(&s.CapitalOverlayAltA, r)
		case capital:
			p.drawOverlay(&s.CapitalOverlayAltB, r)
		}
	}
	if s.HighlightWorlds.Visible && s.HighlightPattern != nil && s.HighlightPattern.Match(w) {
		p.drawOverlay(&s.HighlightWorlds, astrometrics.ParsecScaleX)
	}
}

// drawOverlay draws a circle of radius r with e's fill and pen, skipping
// whichever is empty.
func (p *pass) drawOverlay(e *style.Element, r float64) {
	if r < 0.001 {
		return
	}
	var (
		pen   *graphics.Pen
		brush *graphics.Brush
	)
	if !graphics.IsEmptyColor(e.Fill) {
		p.brush.Color = e.Fill
		brush = &p.brush
	}
	if !graphics.IsEmptyColor(e.Pen.Color) {
		p.pen = e.Pen
		pen = &p.pen
	}
	if pen == nil && brush == nil {
		return
	}
	p.g.DrawEllipse(pen, brush, astrometrics.RectangleF{X: -r, Y: -r, Width: 2 * r, Height: 2 * r})
}

func (p *pass) renderName(w *sector.World) bool {
	d := p.s.WorldDetails
	return d.Has(style.DetailAllNames) || (d.Has(style.DetailKeyNames) && (w.IsCapital() || w.IsHi()))
}

func (p *pass) hexLabelOf(w *sector.World) string {
	if p.s.HexCoordinateStyle == style.HexCoordinateSubsector {
		return w.SubsectorHex()
	}
	return w.Hex.String()
}

var zoneDisc = astrometrics.RectangleF{X: -0.4, Y: -0.4, Width: 0.8, Height: 0.8}

// zonePerimeterScale shrinks the hex outline used for zones so that
// neighbouring perimeters do not overlap.
const zonePerimeterScale = 0.95

func (p *pass) drawWorldBackground(w *sector.World) {
	g, s := p.g, p.s
	if s.WorldDetails.Has(style.DetailZone) {
		if zone := p.zoneStyle(w); zone != nil {
			p.drawZone(w, zone)
		}
	}
	if !s.NumberAllHexes && s.WorldDetails.Has(style.DetailHex) {
		p.brush.Color = s.HexNumber.TextColor
		pos := s.HexNumber.Position
		g.DrawString(p.hexLabelOf(w), s.HexNumber.Font, p.brush, pos.X, pos.Y, graphics.AlignTopCenter)
	}
}

func (p *pass) drawZone(w *sector.World, zone *style.Element) {
	g, s := p.g, p.s
	if s.ShowZonesAsPerimeters {
		if graphics.IsEmptyColor(zone.Pen.Color) {
			return
		}
		outline := astrometrics.HexOutline()
		for i := range outline {
			outline[i].X *= zonePerimeterScale
			outline[i].Y *= zonePerimeterScale
		}
		p.pen = zone.Pen
		g.DrawLines(p.pen, outline)
		return
	}

	if !graphics.IsEmptyColor(zone.Fill) {
		p.brush.Color = zone.Fill
		g.DrawEllipse(nil, &p.brush, zoneDisc)
	}
	if graphics.IsEmptyColor(zone.Pen.Color) {
		return
	}
	p.pen = zone.Pen
	if p.renderName(w) && s.FillMicroBorders {
		// Keep the ring off the name, which sits on the border fill.
		h := 0.75
		if s.WorldDetails.Has(style.DetailUWP) {
			h = 0.65
		}
		state := g.Save()
		g.IntersectClipRect(astrometrics.RectangleF{X: -0.5, Y: -0.5, Width: 1, Height: h})
		g.DrawEllipse(&p.pen, nil, zoneDisc)
		g.Restore(state)
		return
	}
	g.DrawEllipse(&p.pen, nil, zoneDisc)
}

func (p *pass) drawWorldForeground(w *sector.World) {
	s := p.s
	details := s.WorldDetails

	// A filled zone disc is background enough for the labels.
	bg := s.Worlds.TextBackground
	if zone := p.zoneStyle(w); zone != nil && !graphics.IsEmptyColor(zone.Fill) && !s.ShowZonesAsPerimeters {
		bg = style.TextBackgroundNone
	}
	worldFill := s.Worlds.Brush()
	textBrush := s.Worlds.TextBrush()

	if !w.IsPlaceholder() {
		if details.Has(style.DetailGasGiant) && w.GasGiants() > 0 {
			p.drawGasGiant(s.Worlds.TextColor, s.GasGiantPosition.X, s.GasGiantPosition.Y, gasGiantRadius, s.ShowGasGiantRing)
		}
		if details.Has(style.DetailStarport) {
			text := string(w.Starport())
			if s.ShowTL {
				text += "-" + string(sector.ToHex(w.TechLevel()))
			}
			p.drawWorldLabel(bg, s.Starport.Brush(), textBrush, s.Starport.Position, s.Starport.Font, text)
		}
		if details.Has(style.DetailUWP) {
			p.drawWorldLabel(s.UWP.TextBackground, s.UWP.Brush(), s.UWP.TextBrush(), s.UWP.Position, s.UWP.Font, w.UWP)
		}
		if details.Has(style.DetailBases) {
			p.drawBases(w)
		}
	}

	p.drawDisc(w)

	if p.renderName(w) {
		highlight := details.Has(style.DetailHighlight)
		name := w.Name
		if (w.IsHi() && highlight) || s.Worlds.TextStyle.Uppercase {
			name = strings.ToUpper(name)
		}
		nameBrush := textBrush
		if w.IsCapital() && highlight {
			nameBrush.Color = s.Worlds.TextHighlightColor
		}
		font := s.Worlds.Font
		if (w.IsHi() || w.IsCapital()) && highlight {
			font = s.Worlds.LargeFont
		}
		p.drawWorldLabel(bg, worldFill, nameBrush, s.Worlds.Position, font, name)
	}

	if details.Has(style.DetailAllegiance) {
		p.drawAllegiance(w)
	}
}

// drawBases draws up to two base glyphs and one research or facility
// glyph. The first base takes the slot its glyph prefers; the second takes
// whichever slot is left.
func (p *pass) drawBases(w *sector.World) {
	s := p.s
	bases := w.Bases
	alleg := w.BaseAllegiance()
	// Zhodani naval and military bases show as one base.
	if alleg == "Zh" && bases == "KM" {
		bases = "Z"
	}

	bottomUsed := false
	if len(bases) > 0 {
		if gl := baseGlyph(alleg, bases[0]); gl.printable() {
			pt := s.BaseTopPosition
			if gl.bias == biasBottom && !s.IgnoreBaseBias {
				pt = s.BaseBottomPosition
				bottomUsed = true
			}
			p.drawGlyph(gl, pt.X, pt.Y)
		}
	}
	if len(bases) > 1 {
		if gl := baseGlyph(w.LegacyAllegiance(), bases[1]); gl.printable() {
			pt := s.BaseBottomPosition
			if bottomUsed {
				pt = s.BaseTopPosition
			}
			p.drawGlyph(gl, pt.X, pt.Y)
		}
	}

	mid := s.BaseMiddlePosition
	if rs, ok := w.ResearchStation(); ok {
		p.drawGlyph(researchGlyph(rs), mid.X, mid.Y)
		return
	}
	switch {
	case w.IsReserve():
		p.drawGlyph(glyphReserve, mid.X, 0)
	case w.IsPenalColony():
		p.drawGlyph(glyphPrison, mid.X, 0)
	case w.IsPrisonExileCamp():
		p.drawGlyph(glyphExileCamp, mid.X, 0)
	}
}

// drawDisc draws the world itself: a placeholder marker, an asteroid
// speckle or glyph, a colored disc, or a plain dot when types are hidden.
func (p *pass) drawDisc(w *sector.World) {
	g, s := p.g, p.s
	if !s.WorldDetails.Has(style.DetailType) {
		if !w.IsAnomaly() {
			p.drawDot()
		}
		return
	}
	if w.IsPlaceholder() {
		p.drawPlaceholder(w)
		return
	}
	if w.Size() <= 0 {
		if !s.WorldDetails.Has(style.DetailAsteroids) {
			p.drawGlyph(glyph{chars: glyphDiamondX}, 0, 0)
			return
		}
		p.brush.Color = s.Worlds.TextColor
		c := w.Coordinates()
		seed := uint64(int64(c.X ^ c.Y))
		rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))
		for i := range beltX {
			if rng.Float64() >= beltChance[i] {
				continue
			}
			x, y := float64(beltX[i])*beltSpacing, float64(beltY[i])*beltSpacing
			rw, rh := 0.04+rng.Float64()*0.03, 0.04+rng.Float64()*0.03
			g.DrawEllipse(nil, &p.brush, astrometrics.RectangleF{X: x - rw/2, Y: y - rh/2, Width: rw, Height: rh})
		}
		return
	}

	penColor, brushColor := s.WorldColors(w)
	var (
		pen   *graphics.Pen
		brush *graphics.Brush
	)
	if !graphics.IsEmptyColor(brushColor) {
		p.brush.Color = brushColor
		brush = &p.brush
	}
	if !graphics.IsEmptyColor(penColor) {
		p.pen = s.WorldWater.Pen
		p.pen.Color = penColor
		pen = &p.pen
	}
	if pen == nil && brush == nil {
		return
	}
	r, pos := s.DiscRadius, s.DiscPosition
	g.DrawEllipse(pen, brush, astrometrics.RectangleF{X: pos.X - r, Y: pos.Y - r, Width: 2 * r, Height: 2 * r})
}

func (p *pass) drawDot() {
	p.brush.Color = p.s.Worlds.TextColor
	p.g.DrawEllipse(nil, &p.brush, astrometrics.RectangleF{X: -0.2, Y: -0.2, Width: 0.4, Height: 0.4})
}

func (p *pass) drawPlaceholder(w *sector.World) {
	e := &p.s.Placeholder
	if w.IsAnomaly() {
		e = &p.s.Anomaly
	}
	p.drawWorldLabel(e.TextBackground, e.Brush(), e.TextBrush(), e.Position, e.Font, e.Content)
}

func (p *pass) drawAllegiance(w *sector.World) {
	s := p.s
	alleg := w.Allegiance
	if sector.IsDefaultAllegiance(alleg) {
		return
	}
	if !s.T5AllegianceCodes && len(alleg) > 2 {
		alleg = sector.LegacyCode(alleg)
	}
	if s.LowerCaseAllegiance {
		alleg = strings.ToLower(alleg)
	}
	p.brush.Color = s.Worlds.TextColor
	pos := s.AllegiancePosition
	p.g.DrawString(alleg, s.Worlds.SmallFont, p.brush, pos.X, pos.Y, graphics.AlignCentered)
}

// drawGasGiant draws a small disc at (x, y), optionally with a tilted ring.
func (p *pass) drawGasGiant(c color.NRGBA, x, y, r float64, ring bool) {
	g := p.g
	state := g.Save()
	defer g.Restore(state)
	g.TranslateTransform(x, y)
	brush := graphics.Brush{Color: c}
	g.DrawEllipse(nil, &brush, astrometrics.RectangleF{X: -r, Y: -r, Width: 2 * r, Height: 2 * r})
	if !ring {
		return
	}
	g.RotateTransform(-30)
	pen := graphics.Pen{Color: c, Width: r / 4}
	g.DrawEllipse(&pen, nil, astrometrics.RectangleF{X: -r * 1.75, Y: -r * 0.4, Width: r * 3.5, Height: r * 0.8})
}

// hydrographicImages names the world textures by hydrographics digit.
var hydrographicImages = [...]string{
	"Hyd0", "Hyd1", "Hyd2", "Hyd3", "Hyd4", "Hyd5",
	"Hyd6", "Hyd7", "Hyd8", "Hyd9", "HydA",
}

// drawCandyWorld draws worlds as textured images with their decorations
// stacked to the right.
func (p *pass) drawCandyWorld(w *sector.World, layer worldLayer) {
	g, s := p.g, p.s
	details := s.WorldDetails

	imageRadius := 0.3
	if w.Size() > 0 {
		imageRadius = 0.3 * (float64(w.Size())/5 + 0.2) / 2
	}

	if layer == worldBackground {
		switch {
		case !details.Has(style.DetailType):
			if !w.IsAnomaly() {
				p.drawDot()
			}
		case w.IsPlaceholder():
			p.drawPlaceholder(w)
		case w.Size() <= 0:
			const sx, sy = 1.5, 1.0
			if img := p.image(ImageBelt); img != nil {
				g.DrawImage(img, astrometrics.RectangleF{
					X: -imageRadius * sx, Y: -imageRadius * sy,
					Width: 2 * imageRadius * sx, Height: 2 * imageRadius * sy,
				})
			}
		default:
			h := w.Hydrographics()
			if h < 0 || h >= len(hydrographicImages) {
				h = 0
			}
			if img := p.image(hydrographicImages[h]); img != nil {
				g.DrawImage(img, astrometrics.RectangleF{X: -imageRadius, Y: -imageRadius, Width: 2 * imageRadius, Height: 2 * imageRadius})
			}
		}
		return
	}
	if w.IsPlaceholder() {
		return
	}

	decR := imageRadius + 0.1
	if details.Has(style.DetailZone) && (w.IsAmber() || w.IsRed()) {
		p.pen = s.RedZone.Pen
		if w.IsAmber() {
			p.pen = s.AmberZone.Pen
		}
		arc := astrometrics.RectangleF{X: -decR, Y: -decR, Width: 2 * decR, Height: 2 * decR}
		for _, start := range [...]float64{5, 95, 185, 275} {
			g.DrawArc(p.pen, arc, start, 80)
		}
		decR += 0.1
	}

	if details.Has(style.DetailGasGiant) && w.GasGiants() > 0 {
		if s.ShowGasGiantRing {
			decR += gasGiantRadius
		}
		p.drawGasGiant(s.Worlds.TextHighlightColor, decR, 0, gasGiantRadius, s.ShowGasGiantRing)
		decR += 0.1
	}

	if details.Has(style.DetailUWP) {
		p.brush.Color = s.Worlds.TextColor
		g.DrawString(w.UWP, s.HexNumber.Font, p.brush, decR, -s.Starport.Position.Y, graphics.AlignCenterLeft)
	}

	if p.renderName(w) {
		name := w.Name
		if w.IsHi() || s.Worlds.TextStyle.Uppercase {
			name = strings.ToUpper(name)
		}
		nameBrush := s.Worlds.TextBrush()
		if w.IsCapital() && details.Has(style.DetailHighlight) {
			nameBrush.Color = s.Worlds.TextHighlightColor
		}
		state := g.Save()
		sx, sy := s.Worlds.TextStyle.Scale.X, s.Worlds.TextStyle.Scale.Y
		if sx == 0 && sy == 0 {
			sx, sy = 1, 1
		}
		g.TranslateTransform(decR, 0)
		g.ScaleTransform(sx, sy)
		// Left align on the decoration edge.
		width, _ := g.MeasureString(name, s.Worlds.Font)
		g.TranslateTransform(width/2, 0)
		p.drawWorldLabel(s.Worlds.TextBackground, s.Worlds.Brush(), nameBrush, s.Worlds.TextStyle.Translation, s.Worlds.Font, name)
		g.Restore(state)
	}
}
