package render

import (
	"image/color"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/graphics"
	"github.com/travellermap/hexmap/pkg/sector"
	"github.com/travellermap/hexmap/pkg/style"
)

// drawOverlayGlyph draws text centered on a world's hex, in points.
func (p *pass) drawOverlayGlyph(text string, font graphics.Font, w *sector.World) {
	g := p.g
	center := astrometrics.HexToCenter(w.Coordinates())
	state := g.Save()
	defer g.Restore(state)
	g.TranslateTransform(center.X, center.Y)
	g.ScaleTransform(1/astrometrics.ParsecScaleX, 1/astrometrics.ParsecScaleY)
	g.DrawString(text, font, p.brush, 0, 0, graphics.AlignCentered)
}

// drawDroyneOverlay marks Droyne worlds with the first rune of the
// element content and Chirper worlds with the second.
func (p *pass) drawDroyneOverlay() error {
	e := &p.s.DroyneWorlds
	if !e.Visible {
		return nil
	}
	runes := []rune(e.Content)
	if len(runes) < 2 {
		return nil
	}
	p.brush.Color = e.TextColor
	for _, w := range p.sel.Worlds() {
		_, droyne := w.CodePrefix("Droy")
		_, chirper := w.CodePrefix("Chir")
		switch {
		case droyne:
			p.drawOverlayGlyph(string(runes[0]), e.Font, w)
		case chirper:
			p.drawOverlayGlyph(string(runes[1]), e.Font, w)
		}
	}
	return nil
}

// drawMinorHomeworldOverlay marks worlds with a parenthesized sophont
// homeworld remark.
func (p *pass) drawMinorHomeworldOverlay() error {
	e := &p.s.MinorHomeWorlds
	if !e.Visible {
		return nil
	}
	p.brush.Color = e.TextColor
	for _, w := range p.sel.Worlds() {
		if _, ok := w.CodePrefix("("); ok {
			p.drawOverlayGlyph(e.Content, e.Font, w)
		}
	}
	return nil
}

func (p *pass) drawAncientsOverlay() error {
	e := &p.s.AncientsWorlds
	if !e.Visible {
		return nil
	}
	p.brush.Color = e.TextColor
	for _, w := range p.sel.Worlds() {
		if w.HasCode("An") {
			p.drawOverlayGlyph(e.Content, e.Font, w)
		}
	}
	return nil
}

const reviewAlpha = 128

// reviewColors tints sectors by their first matching review tag.
var reviewColors = []struct {
	tag   string
	color color.NRGBA
}{
	{sector.TagOfficial, color.NRGBA{R: 0xff, A: reviewAlpha}},
	{sector.TagInReview, color.NRGBA{R: 0xff, G: 0xa5, A: reviewAlpha}},
	{sector.TagUnreviewed, color.NRGBA{R: 0xff, G: 0xff, A: reviewAlpha}},
	{sector.TagApocryphal, color.NRGBA{R: 0xff, B: 0xff, A: reviewAlpha}},
	{sector.TagPreserve, color.NRGBA{G: 0x80, A: reviewAlpha}},
}

// drawReviewStatus dims sectors without official data and optionally
// color codes every sector by review state.
func (p *pass) drawReviewStatus() error {
	s, g := p.s, p.g
	if !s.Worlds.Visible {
		return nil
	}
	if s.DimUnofficialSectors {
		p.brush.Color = style.WithAlpha(reviewAlpha, s.BackgroundColor)
		for _, sec := range p.sectors() {
			if sec.HasTag(sector.TagOfficial) || sec.HasTag(sector.TagPreserve) || sec.HasTag(sector.TagInReview) {
				continue
			}
			g.DrawRectangle(nil, &p.brush, sec.Bounds().Float())
		}
	}
	if s.ColorCodeSectorStatus {
		for _, sec := range p.sectors() {
			for _, rc := range reviewColors {
				if sec.HasTag(rc.tag) {
					p.brush.Color = rc.color
					g.DrawRectangle(nil, &p.brush, sec.Bounds().Float())
					break
				}
			}
		}
	}
	return nil
}
