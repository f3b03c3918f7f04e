package style

import (
	"image/color"
	"math"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/graphics"
	"github.com/travellermap/hexmap/pkg/sector"
)

// themes holds the override sequence of each theme. Poster is the
// scale-derived default and has no entry.
var themes = map[Theme]func(*Snapshot, *palette){
	Atlas:    applyAtlas,
	FASA:     applyFASA,
	Print:    applyPrint,
	Draft:    applyDraft,
	Candy:    applyCandy,
	Terminal: applyTerminal,
	Mongoose: applyMongoose,
}

// fadeOverlays tones down the world overlays for light backgrounds.
func (s *Snapshot) fadeOverlays(pop, imp, hw color.NRGBA) {
	s.PopulationOverlay.Fill = WithAlpha(0x40, pop)
	s.PopulationOverlay.Pen.Color = gray
	s.ImportanceOverlay.Fill = WithAlpha(0x20, imp)
	s.ImportanceOverlay.Pen.Color = gray
	s.HighlightWorlds.Fill = WithAlpha(0x30, hw)
	s.HighlightWorlds.Pen.Color = gray
}

// renameFonts switches every text element to family.
func (s *Snapshot) renameFonts(family string) {
	for _, f := range []*graphics.Font{
		&s.Worlds.Font, &s.Worlds.SmallFont, &s.Worlds.LargeFont, &s.Starport.Font,
		&s.MacroNames.Font, &s.MacroNames.MediumFont, &s.MacroNames.SmallFont,
		&s.MegaNames.Font, &s.MegaNames.MediumFont, &s.MegaNames.SmallFont,
		&s.MicroBorders.Font, &s.MicroBorders.SmallFont, &s.MicroBorders.LargeFont,
		&s.SectorName.Font, &s.SubsectorNames.Font,
	} {
		f.Family = family
	}
}

func applyAtlas(s *Snapshot, p *palette) {
	s.Grayscale = true
	s.LightBackground = true

	s.Capitals.Fill = darkGray
	s.Capitals.TextColor = black
	s.AmberZone.Pen.Color = lightGray
	s.RedZone.Pen.Color = black
	s.MacroBorders.Pen.Color = black
	s.MacroRoutes.Pen.Color = gray
	s.MicroBorders.Pen.Color = black
	s.MicroRoutes.Pen.Color = gray

	p.foreground = black
	s.BackgroundColor = white
	p.light = darkGray
	p.dark = darkGray
	p.dim = lightGray
	p.highlight = gray
	s.MicroBorders.TextColor = gray
	s.WorldWater.Fill = black
	s.WorldNoWater.Fill = white
	s.WorldNoWater.Pen = newPen(black, 1/s.Scale, graphics.DashSolid)

	s.RiftOpacity = math.Min(s.RiftOpacity, 0.70)
	s.ShowWorldDetailColors = false

	s.fadeOverlays(p.highlight, p.highlight, p.highlight)
}

func applyFASA(s *Snapshot, p *palette) {
	onePixel := 1 / s.Scale
	s.ShowGalaxyBackground = false
	s.DeepBackgroundOpacity = 0
	s.RiftOpacity = 0

	ink := color.NRGBA{R: 0x5C, G: 0x40, B: 0x33, A: 0xff}

	p.foreground = ink
	s.BackgroundColor = white

	s.Grayscale = true
	s.LightBackground = true

	s.Capitals.Fill = ink
	s.Capitals.TextColor = ink
	s.AmberZone.Pen.Color = ink
	s.AmberZone.Pen.Width = onePixel * 2
	s.RedZone.Pen.Color = Empty
	s.RedZone.Fill = WithAlpha(0x80, ink)

	s.MacroBorders.Pen.Color = ink
	s.MacroRoutes.Pen.Color = ink

	s.MicroBorders.Pen.Color = ink
	s.MicroBorders.Pen.Width = onePixel * 2
	s.MicroBorders.Font.Size *= 0.6
	s.MicroBorders.Font.Style = graphics.FontRegular

	s.MicroRoutes.Pen.Color = ink

	p.light = WithAlpha(0x80, ink)
	p.dark = ink
	p.dim = ink
	p.highlight = ink
	s.MicroBorders.TextColor = ink
	s.HexStyle = HexStyleHex
	s.MicroBorderStyle = MicroBorderCurve

	s.ParsecGrid.Pen.Color = p.light
	s.SectorGrid.Pen.Color = p.light
	s.SubsectorGrid.Pen.Color = p.light

	s.WorldWater.Fill = ink
	s.WorldNoWater.Fill = ink
	s.WorldWater.Pen.Color = Empty
	s.WorldNoWater.Pen.Color = Empty

	s.ShowWorldDetailColors = false

	s.WorldDetails &^= DetailStarport | DetailAllegiance | DetailBases | DetailGasGiant | DetailHighlight | DetailUWP
	s.Worlds.Font.Size *= 0.85
	s.Worlds.TextStyle.Translation = astrometrics.PointF{X: 0, Y: 0.25}

	s.NumberAllHexes = true
	s.HexCoordinateStyle = HexCoordinateSubsector
	solid := sector.LineSolid
	s.OverrideLineStyle = &solid

	s.fadeOverlays(p.highlight, p.highlight, p.highlight)
}

func applyPrint(s *Snapshot, p *palette) {
	s.LightBackground = true

	p.foreground = black
	s.BackgroundColor = white
	p.light = darkGray
	p.dark = darkGray
	p.dim = lightGray
	s.MicroRoutes.Pen.Color = gray

	s.MicroBorders.TextColor = brown

	s.AmberZone.Pen.Color = Amber
	s.WorldNoWater.Fill = white
	s.WorldNoWater.Pen = newPen(black, 1/s.Scale, graphics.DashSolid)

	s.RiftOpacity = math.Min(s.RiftOpacity, 0.70)

	s.fadeOverlays(s.PopulationOverlay.Fill, s.ImportanceOverlay.Fill, s.HighlightWorlds.Fill)
}

// handDrawn holds what Draft and Terminal share: a single typeface, larger
// key names, uppercase labels and dotted borders.
func (s *Snapshot) handDrawn(p *palette, family string) {
	onePixel := 1 / s.Scale
	s.renameFonts(family)
	s.Worlds.LargeFont.Size = s.Worlds.Font.Size * 1.25
	s.Worlds.Font.Size *= 0.8

	s.Worlds.TextStyle.Uppercase = true
	s.MicroBorders.TextStyle.Uppercase = true
	s.Worlds.TextBackground = TextBackgroundNone
	s.Worlds.LargeFont.Style |= graphics.FontUnderline

	s.MicroBorders.Pen.Width = onePixel * 4
	s.MicroBorders.Pen.Dash = graphics.DashDot

	s.WorldNoWater.Fill = p.foreground
	s.WorldWater.Fill = Empty
	s.WorldWater.Pen = newPen(p.foreground, onePixel*2, graphics.DashSolid)

	s.AmberZone.Pen.Color = p.foreground
	s.AmberZone.Pen.Width = onePixel
	s.RedZone.Pen.Width = onePixel * 2

	s.MicroRoutes.Pen.Color = gray
	s.RiftOpacity = math.Min(s.RiftOpacity, 0.30)
	s.NumberAllHexes = true
}

func applyDraft(s *Snapshot, p *palette) {
	const ink = 0xB0

	s.ShowGalaxyBackground = false
	s.LightBackground = true
	s.DeepBackgroundOpacity = 0

	s.BackgroundColor = antiqueWhite
	p.foreground = WithAlpha(ink, black)
	p.highlight = WithAlpha(ink, Red)
	p.light = WithAlpha(ink, darkCyan)
	p.dark = WithAlpha(ink, black)
	p.dim = WithAlpha(ink/2, black)

	s.SubsectorGrid.Pen.Color = WithAlpha(ink, firebrick)

	s.handDrawn(p, "Comic Sans MS")

	s.SectorName.TextStyle.Uppercase = true
	s.SubsectorNames.TextStyle.Uppercase = true
	s.SubsectorNames.Visible = false
	s.WorldDetails &^= DetailAllegiance

	s.ParsecGrid.Pen.Color = p.light
	s.MicroBorders.TextColor = WithAlpha(ink, brown)

	s.fadeOverlays(s.PopulationOverlay.Fill, s.ImportanceOverlay.Fill, s.HighlightWorlds.Fill)
}

func applyCandy(s *Snapshot, p *palette) {
	scale := s.Scale
	s.PreferredFormat = FormatJPEG

	s.UseWorldImages = true
	s.PseudoRandomStars.Visible = false
	p.fadeSectorSubsectorNames = false

	s.ShowNebulaBackground = s.DeepBackgroundOpacity < 0.5

	s.HexStyle = HexStyleNone
	s.MicroBorderStyle = MicroBorderCurve

	s.SectorGrid.Visible = s.SectorGrid.Visible && scale >= 4
	s.SubsectorGrid.Visible = s.SubsectorGrid.Visible && scale >= 32
	s.ParsecGrid.Visible = false

	dashed := func() graphics.Pen {
		return graphics.Pen{
			Color:       s.SectorGrid.Pen.Color,
			Width:       0.03 * (64 / scale),
			Dash:        graphics.DashCustom,
			DashPattern: []float64{10, 8},
		}
	}
	s.SubsectorGrid.Pen = dashed()
	s.SectorGrid.Pen = dashed()

	s.Worlds.TextBackground = TextBackgroundShadow

	s.WorldDetails &^= DetailStarport | DetailAllegiance | DetailBases | DetailHex
	if scale < CandyMinWorldNameScale {
		s.WorldDetails &^= DetailKeyNames | DetailAllNames
	}
	if scale < CandyMinUwpScale {
		s.WorldDetails &^= DetailUWP
	}

	s.AmberZone.Pen.Color = goldenrod
	s.AmberZone.Pen.Width = 0.035
	s.RedZone.Pen.Width = 0.035

	s.SectorName.TextStyle = LabelStyle{
		Translation: astrometrics.PointF{X: 0, Y: -0.25},
		Scale:       astrometrics.PointF{X: 0.5, Y: 0.25},
		Uppercase:   true,
	}
	s.SubsectorNames.TextStyle = LabelStyle{
		Translation: astrometrics.PointF{X: 0, Y: -0.25},
		Scale:       astrometrics.PointF{X: 0.3, Y: 0.15},
		Uppercase:   true,
	}
	s.SectorName.TextColor = WithAlpha(128, goldenrod)
	s.SubsectorNames.TextColor = s.SectorName.TextColor

	s.MicroBorders.TextStyle = LabelStyle{
		Translation: astrometrics.PointF{X: 0, Y: 0.25},
		Scale:       astrometrics.PointF{X: 1, Y: 0.5},
		Uppercase:   true,
	}

	s.MicroBorders.Pen.Color = WithAlpha(128, Red)
	if scale >= CandyMaxRouteRelativeScale {
		s.MicroRoutes.Pen.Width = p.routePenWidth / 2
	}
	if scale >= CandyMaxBorderRelativeScale {
		s.MacroBorders.Pen.Width = p.borderPenWidth / 4
		s.MicroBorders.Pen.Width = p.borderPenWidth / 4
	}

	s.Worlds.TextStyle = LabelStyle{
		Scale:     astrometrics.PointF{X: 1, Y: 0.5},
		Uppercase: true,
	}

	if scale > CandyMaxWorldRelativeScale {
		s.HexContentScale = CandyMaxWorldRelativeScale / scale
	}
}

func applyTerminal(s *Snapshot, p *palette) {
	p.fadeSectorSubsectorNames = false
	s.ShowGalaxyBackground = false
	s.LightBackground = false

	s.BackgroundColor = black
	p.foreground = cyan
	p.highlight = white
	p.light = lightBlue
	p.dark = darkBlue
	p.dim = dimGray

	s.SubsectorGrid.Pen.Color = cyan

	s.handDrawn(p, "Courier New")
	s.MicroBorders.Font.Style |= graphics.FontUnderline

	for _, e := range []*Element{&s.SectorName, &s.SubsectorNames} {
		e.TextColor = p.foreground
		e.TextStyle.Scale = astrometrics.PointF{X: 1, Y: 1}
		e.TextStyle.Rotation = 0
		e.TextStyle.Uppercase = true
		e.Font.Style |= graphics.FontBold
		e.Font.Size *= 0.5
	}

	s.ParsecGrid.Pen.Color = plum
	s.MicroBorders.TextColor = cyan

	if s.Scale >= 64 {
		s.SubsectorNames.Visible = false
	}
}

func applyMongoose(s *Snapshot, p *palette) {
	onePixel := 1 / s.Scale
	s.ShowGalaxyBackground = false
	s.LightBackground = true
	s.ShowGasGiantRing = true
	s.ShowTL = true
	s.IgnoreBaseBias = true
	s.ShadeMicroBorders = true

	s.layers = moveAfter(s.layers, LayerWorldsBackground, LayerMicroBordersStroke)
	s.layers = moveAfter(s.layers, LayerWorldsForeground, LayerMicroRoutes)

	s.ImageBorderWidth = 0.1
	s.DeepBackgroundOpacity = 0

	s.BackgroundColor = color.NRGBA{R: 0xe6, G: 0xe7, B: 0xe8, A: 0xff}
	p.foreground = black
	p.highlight = pureRed
	p.light = black
	p.dark = black
	p.dim = gray

	s.SectorGrid.Pen.Color = p.foreground
	s.SubsectorGrid.Pen.Color = p.foreground
	s.ParsecGrid.Pen.Color = p.foreground

	s.renameFonts("Calibri,Arial")
	s.Starport.Font.Style = graphics.FontItalic
	s.Worlds.Font.Style = graphics.FontRegular
	s.Worlds.LargeFont.Style = graphics.FontBold

	s.HexNumber.Font = s.Worlds.Font
	s.HexNumber.Position.Y = -0.49

	s.MicroBorders.TextStyle.Uppercase = true
	s.SectorName.TextStyle.Uppercase = true
	s.SubsectorNames.TextStyle.Uppercase = true
	s.SubsectorNames.Visible = false
	s.Worlds.TextStyle.Uppercase = true

	s.WorldDetails &^= DetailAllegiance

	s.MicroBorders.Pen.Width = 0.11
	s.MicroBorders.Pen.Dash = graphics.DashDot

	s.WorldWater.Fill = mediumBlue
	s.WorldNoWater.Fill = darkKhaki
	s.WorldWater.Pen = newPen(darkGray, onePixel*2, graphics.DashSolid)
	s.WorldNoWater.Pen = s.WorldWater.Pen

	s.ShowZonesAsPerimeters = true
	s.GreenZone.Visible = true
	s.GreenZone.Pen.Width = 0.05
	s.AmberZone.Pen.Width = 0.05
	s.RedZone.Pen.Width = 0.05

	s.GreenZone.Pen.Color = color.NRGBA{R: 0x80, G: 0xc6, B: 0x76, A: 0xff}
	s.AmberZone.Pen.Color = color.NRGBA{R: 0xfb, G: 0xb0, B: 0x40, A: 0xff}
	s.RedZone.Pen.Color = color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0xff}

	s.MicroBorders.TextColor = darkSlateGray
	s.RiftOpacity = math.Min(s.RiftOpacity, 0.30)

	pt := func(x, y float64) astrometrics.PointF { return astrometrics.PointF{X: x, Y: y} }
	s.DiscRadius = 0.11
	s.GasGiantPosition = pt(0, -0.23)
	s.BaseTopPosition = pt(-0.22, -0.21)
	s.BaseMiddlePosition = pt(-0.32, 0.17)
	s.BaseBottomPosition = pt(0.22, -0.21)
	s.Starport.Position = pt(0.175, 0.17)
	s.UWP.Position = pt(0, 0.40)
	s.DiscPosition = pt(-s.DiscRadius, 0.16)
	s.Worlds.TextStyle.Translation = pt(0, -0.04)

	s.Worlds.TextBackground = TextBackgroundNone

	s.UWP.Font = s.HexNumber.Font
	s.UWP.Fill = black
	s.UWP.TextColor = white
	s.UWP.TextBackground = TextBackgroundFilled
}
