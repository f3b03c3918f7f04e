package style

import (
	"image/color"
	"math"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/graphics"
	"github.com/travellermap/hexmap/pkg/sector"
)

// Scale thresholds, in pixels per parsec.
const (
	SectorGridMinScale         = 1.0 / 2
	SectorGridFullScale        = 4
	SectorNameMinScale         = 1
	SectorNameAllSelectedScale = 4
	SectorNameMaxScale         = 16
	PseudoRandomStarsMinScale  = 1
	PseudoRandomStarsMaxScale  = 4
	SubsectorsMinScale         = 8
	SubsectorNameMinScale      = 24
	SubsectorNameMaxScale      = 64
	MegaLabelMaxScale          = 1.0 / 4
	MacroWorldsMinScale        = 1.0 / 2
	MacroWorldsMaxScale        = 4
	MacroLabelMinScale         = 1.0 / 2
	MacroLabelMaxScale         = 4
	MacroRouteMinScale         = 1.0 / 2
	MacroRouteMaxScale         = 4
	MacroBorderMinScale        = 1.0 / 32
	MicroBorderMinScale        = 4
	MicroNameMinScale          = 16
	RouteMinScale              = 8
	ParsecMinScale             = 16
	ParsecHexMinScale          = 48
	WorldMinScale              = 4
	WorldBasicMinScale         = 24
	WorldFullMinScale          = 48
	WorldUwpMinScale           = 96

	CandyMinWorldNameScale      = 64
	CandyMinUwpScale            = 256
	CandyMaxWorldRelativeScale  = 512
	CandyMaxBorderRelativeScale = 32
	CandyMaxRouteRelativeScale  = 32

	T5AllegianceCodeMinScale = 64
)

// Snapshot is the appearance of every map feature for one (scale, options,
// theme) triple. It is built once per render pass by New and must not be
// modified afterwards; layers share it by pointer.
type Snapshot struct {
	Scale   float64
	Options MapOptions
	Theme   Theme

	BackgroundColor  color.NRGBA
	ImageBorderColor color.NRGBA
	ImageBorderWidth float64

	ShowNebulaBackground  bool
	ShowGalaxyBackground  bool
	UseWorldImages        bool
	DimUnofficialSectors  bool
	ColorCodeSectorStatus bool
	DeepBackgroundOpacity float64

	Grayscale       bool
	LightBackground bool

	ShowRiftOverlay bool
	RiftOpacity     float64

	HexContentScale float64
	HexRotation     float64
	RouteEndAdjust  float64

	PreferredFormat   Format
	T5AllegianceCodes bool

	HighlightWorlds  Element
	HighlightPattern *HighlightPattern

	DroyneWorlds    Element
	AncientsWorlds  Element
	MinorHomeWorlds Element

	Worlds                Element
	ShowWorldDetailColors bool
	PopulationOverlay     Element
	ImportanceOverlay     Element
	CapitalOverlay        Element
	CapitalOverlayAltA    Element
	CapitalOverlayAltB    Element
	ShowStellarOverlay    bool

	DiscPosition       astrometrics.PointF
	DiscRadius         float64
	GasGiantPosition   astrometrics.PointF
	AllegiancePosition astrometrics.PointF
	BaseTopPosition    astrometrics.PointF
	BaseBottomPosition astrometrics.PointF
	BaseMiddlePosition astrometrics.PointF

	UWP      Element
	Starport Element

	GlyphFont             graphics.Font
	WorldDetails          WorldDetails
	LowerCaseAllegiance   bool
	ShowGasGiantRing      bool
	ShowTL                bool
	IgnoreBaseBias        bool
	ShowZonesAsPerimeters bool

	HexNumber          Element
	HexCoordinateStyle HexCoordinateStyle
	NumberAllHexes     bool

	SectorName          Element
	ShowSomeSectorNames bool
	ShowAllSectorNames  bool

	Capitals          Element
	SubsectorNames    Element
	GreenZone         Element
	AmberZone         Element
	RedZone           Element
	SectorGrid        Element
	SubsectorGrid     Element
	ParsecGrid        Element
	WorldWater        Element
	WorldNoWater      Element
	MacroRoutes       Element
	MicroRoutes       Element
	MacroBorders      Element
	MegaNames         Element
	MacroNames        Element
	PseudoRandomStars Element
	Placeholder       Element
	Anomaly           Element

	MicroBorders      Element
	FillMicroBorders  bool
	ShadeMicroBorders bool
	ShowMicroNames    bool
	MicroBorderStyle  MicroBorderStyle
	HexStyle          HexStyle
	OverrideLineStyle *sector.LineStyle

	layers     []LayerID
	layerOrder [layerCount]int
}

// palette holds the generic colors a theme assigns before the per-element
// defaults are filled in.
type palette struct {
	foreground color.NRGBA
	light      color.NRGBA
	dark       color.NRGBA
	dim        color.NRGBA
	highlight  color.NRGBA

	fadeSectorSubsectorNames bool
	routePenWidth            float64
	borderPenWidth           float64
}

// Option adjusts a snapshot after its theme has been applied.
type Option func(*Snapshot)

// New computes the snapshot for a render pass. Scale-banded defaults are
// derived first, then the theme's overrides, then opts in order.
func New(scale float64, options MapOptions, theme Theme, opts ...Option) *Snapshot {
	s := &Snapshot{
		Scale:            scale,
		Options:          options,
		Theme:            theme,
		ImageBorderWidth: 0.2,
		HexContentScale:  1,
		RouteEndAdjust:   0.25,
		DiscRadius:       0.1,
	}
	p := s.deriveFromScale()
	if apply, ok := themes[theme]; ok {
		apply(s, p)
	}
	s.finish(p)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Snapshot) deriveFromScale() *palette {
	scale, options := s.Scale, s.Options
	onePixel := 1 / scale

	s.SubsectorGrid.Visible = scale >= SubsectorsMinScale && options.Has(SubsectorGrid)
	s.SectorGrid.Visible = scale >= SectorGridMinScale && options.Has(SectorGrid)
	s.ParsecGrid.Visible = scale >= ParsecMinScale
	s.ShowSomeSectorNames = scale >= SectorNameMinScale && scale <= SectorNameMaxScale && options.Any(SectorsMask)
	s.ShowAllSectorNames = s.ShowSomeSectorNames && (scale >= SectorNameAllSelectedScale || options.Has(SectorsAll))
	s.SubsectorNames.Visible = scale >= SubsectorNameMinScale && scale <= SubsectorNameMaxScale && options.Any(SectorsMask)

	s.Worlds.Visible = scale >= WorldMinScale
	s.PseudoRandomStars.Visible = PseudoRandomStarsMinScale <= scale && scale <= PseudoRandomStarsMaxScale
	s.ShowRiftOverlay = scale <= PseudoRandomStarsMaxScale || s.Theme == Candy

	s.T5AllegianceCodes = scale >= T5AllegianceCodeMinScale

	s.RiftOpacity = ScaleInterpolate(0, 0.85, scale, 1.0/4, 4)
	s.DeepBackgroundOpacity = ScaleInterpolate(1, 0, scale, 1.0/8, 2)

	s.MacroRoutes.Visible = scale >= MacroRouteMinScale && scale <= MacroRouteMaxScale
	s.MacroNames.Visible = scale >= MacroLabelMinScale && scale <= MacroLabelMaxScale
	s.MegaNames.Visible = scale <= MegaLabelMaxScale && options.Any(NamesMask)
	s.ShowMicroNames = scale >= MicroNameMinScale && options.Any(NamesMask)
	s.Capitals.Visible = scale >= MacroWorldsMinScale && scale <= MacroWorldsMaxScale

	if !options.Has(ForceHexes) && scale < ParsecHexMinScale {
		s.HexStyle = HexStyleSquare
		s.MicroBorderStyle = MicroBorderSquare
	} else {
		s.HexStyle = HexStyleHex
		s.MicroBorderStyle = MicroBorderHex
	}

	s.MacroBorders.Visible = scale >= MacroBorderMinScale && scale < MicroBorderMinScale && options.Any(BordersMask)
	s.MicroBorders.Visible = scale >= MicroBorderMinScale && options.Any(BordersMask)
	s.FillMicroBorders = s.MicroBorders.Visible && options.Has(FilledBorders)
	s.MicroRoutes.Visible = scale >= RouteMinScale

	switch {
	case !s.Worlds.Visible:
		s.WorldDetails = DetailNone
	case scale < WorldBasicMinScale:
		s.WorldDetails = DetailDotmap
	case scale < WorldFullMinScale:
		s.WorldDetails = DetailAtlas
	default:
		s.WorldDetails = DetailPoster
	}

	if s.WorldDetails.Has(DetailType) {
		s.DiscRadius = 0.1
	} else {
		s.DiscRadius = 0.2
	}

	s.ShowWorldDetailColors = s.WorldDetails == DetailPoster && options.Has(WorldColors)
	s.LowerCaseAllegiance = scale < WorldFullMinScale
	s.ShowGasGiantRing = scale >= WorldUwpMinScale

	s.Worlds.TextBackground = TextBackgroundRectangle
	s.HexCoordinateStyle = HexCoordinateSector
	s.NumberAllHexes = false

	s.placeGlyphs()

	if s.Worlds.Visible {
		s.sizeWorldFonts()
	}

	s.SectorName.Font = newFont(DefaultFont, 5.5, graphics.FontRegular)
	s.SubsectorNames.Font = newFont(DefaultFont, 1.5, graphics.FontRegular)

	overlayFontSize := math.Max(onePixel*12, 0.375)
	s.DroyneWorlds.Font = newFont(DefaultFont, overlayFontSize, graphics.FontRegular)
	s.AncientsWorlds.Font = newFont(DefaultFont, overlayFontSize, graphics.FontRegular)
	s.MinorHomeWorlds.Font = newFont(DefaultFont, overlayFontSize, graphics.FontRegular)

	s.DroyneWorlds.Content = "★☆"
	s.MinorHomeWorlds.Content = "✻"
	s.AncientsWorlds.Content = "☀"

	microNameSize := 0.25
	if scale == MicroNameMinScale {
		microNameSize = 0.6
	}
	s.MicroBorders.Font = newFont(DefaultFont, microNameSize, graphics.FontBold)
	s.MicroBorders.SmallFont = newFont(DefaultFont, 0.15, graphics.FontBold)
	s.MicroBorders.LargeFont = newFont(DefaultFont, 0.75, graphics.FontBold)

	s.MacroNames.Font = newFont(DefaultFont, 8/fontScale, graphics.FontBold)
	s.MacroNames.SmallFont = newFont(DefaultFont, 5/fontScale, graphics.FontRegular)
	s.MacroNames.MediumFont = newFont(DefaultFont, 6.5/fontScale, graphics.FontItalic)

	mega := math.Min(35, 0.75*onePixel)
	s.MegaNames.Font = newFont(DefaultFont, 24*mega, graphics.FontBold)
	s.MegaNames.MediumFont = newFont(DefaultFont, 22*mega, graphics.FontRegular)
	s.MegaNames.SmallFont = newFont(DefaultFont, 18*mega, graphics.FontItalic)

	s.Capitals.Fill = wheat
	s.Capitals.TextColor = Red
	s.AmberZone.Visible = true
	s.RedZone.Visible = true
	s.AmberZone.Pen.Color = Amber
	s.RedZone.Pen.Color = Red
	s.MacroBorders.Pen.Color = Red
	s.MacroRoutes.Pen.Color = white
	s.MicroBorders.Pen.Color = gray
	s.MicroRoutes.Pen.Color = gray

	s.BackgroundColor = black

	s.MicroBorders.TextColor = Amber
	s.WorldWater.Fill = deepSkyBlue
	s.WorldNoWater.Fill = white
	s.WorldNoWater.Pen.Color = Empty

	gridColor := WithAlpha(uint8(ScaleInterpolateInt(0, 255, scale, SectorGridMinScale, SectorGridFullScale)), gray)
	s.ParsecGrid.Pen = newPen(gridColor, onePixel, graphics.DashSolid)
	s.SubsectorGrid.Pen = newPen(gridColor, onePixel*2, graphics.DashSolid)
	sectorGridWidth := 2.0
	if s.SubsectorGrid.Visible {
		sectorGridWidth = 4
	}
	s.SectorGrid.Pen = newPen(gridColor, sectorGridWidth*onePixel, graphics.DashSolid)
	s.WorldWater.Pen = newPen(Empty, math.Max(0.01, onePixel), graphics.DashSolid)

	s.MicroBorders.TextStyle = unitLabel

	s.SectorName.TextStyle = LabelStyle{
		Rotation: -50,
		Scale:    astrometrics.PointF{X: 0.75, Y: 1},
		Wrap:     true,
	}
	s.SubsectorNames.TextStyle = s.SectorName.TextStyle

	s.Worlds.TextStyle = unitLabel
	s.Worlds.TextStyle.Translation = s.Worlds.Position

	s.HexNumber.Position = astrometrics.PointF{X: 0, Y: -0.5}

	s.ShowNebulaBackground = false
	s.ShowGalaxyBackground = s.DeepBackgroundOpacity > 0
	s.UseWorldImages = false

	penScale := 1.0
	if scale > 64 {
		penScale = 64 / scale
	}

	p := &palette{
		foreground:               white,
		light:                    lightGray,
		dark:                     darkGray,
		dim:                      dimGray,
		highlight:                Red,
		fadeSectorSubsectorNames: true,
	}

	switch {
	case scale < MicroBorderMinScale, scale < ParsecMinScale:
		p.borderPenWidth = 1
	default:
		// Clipping to the region halves the visible width.
		p.borderPenWidth = 0.16 * penScale
	}
	if scale <= 16 {
		p.routePenWidth = 0.2
	} else {
		p.routePenWidth = 0.08 * penScale
	}

	s.MicroBorders.Pen.Width = p.borderPenWidth
	s.MacroBorders.Pen.Width = p.borderPenWidth
	s.MicroRoutes.Pen.Width = p.routePenWidth

	s.AmberZone.Pen.Width = 0.05 * penScale
	s.RedZone.Pen.Width = 0.05 * penScale

	s.MacroRoutes.Pen.Width = p.borderPenWidth
	s.MacroRoutes.Pen.Dash = graphics.DashDash

	s.PopulationOverlay.Fill = color.NRGBA{R: 0xff, G: 0xff, B: 0x00, A: 0x80}
	s.ImportanceOverlay.Fill = color.NRGBA{R: 0x80, G: 0xff, B: 0x00, A: 0x20}
	s.HighlightWorlds.Fill = color.NRGBA{R: 0xff, G: 0x00, B: 0x00, A: 0x80}

	s.PopulationOverlay.Pen = newPen(Empty, 0.03*penScale, graphics.DashDash)
	s.ImportanceOverlay.Pen = newPen(Empty, 0.03*penScale, graphics.DashDot)
	s.HighlightWorlds.Pen = newPen(Empty, 0.03*penScale, graphics.DashDashDot)

	s.CapitalOverlay.Fill = WithAlpha(0x80, Green)
	s.CapitalOverlayAltA.Fill = WithAlpha(0x80, blue)
	s.CapitalOverlayAltB.Fill = WithAlpha(0x80, Amber)

	s.Placeholder.Content = "*"
	s.Placeholder.Font = newFont("Georgia", 0.6, graphics.FontRegular)
	s.Placeholder.Position = astrometrics.PointF{X: 0, Y: 0.17}

	s.Anomaly.Content = "⌖"
	s.Anomaly.Font = newFont("Segoe UI Symbol", 0.6, graphics.FontRegular)

	s.layers = defaultLayers()
	s.PreferredFormat = FormatPNG
	return p
}

// placeGlyphs sets the glyph anchors of a world hex. Positions depend on
// the detail tier chosen by scale, never on the theme.
func (s *Snapshot) placeGlyphs() {
	pt := func(x, y float64) astrometrics.PointF { return astrometrics.PointF{X: x, Y: y} }
	if s.Scale < WorldFullMinScale {
		const x, y = 0.225, 0.125
		s.BaseTopPosition = pt(-x, -y)
		s.BaseBottomPosition = pt(-x, y)
		s.GasGiantPosition = pt(x, -y)
		s.AllegiancePosition = pt(x, y)
		if s.Options.Has(ForceHexes) {
			s.BaseMiddlePosition = pt(-0.35, 0)
		} else {
			s.BaseMiddlePosition = pt(-0.2, 0)
		}
		s.Starport.Position = pt(0, -0.24)
		s.UWP.Position = pt(0, 0.24)
		s.Worlds.Position = pt(0, 0.4)
	} else {
		const x, y = 0.25, 0.18
		s.BaseTopPosition = pt(-x, -y)
		s.BaseBottomPosition = pt(-x, y)
		s.GasGiantPosition = pt(x, -y)
		s.AllegiancePosition = pt(x, y)
		s.BaseMiddlePosition = pt(-0.35, 0)
		s.Starport.Position = pt(0, -0.225)
		s.UWP.Position = pt(0, 0.225)
		// Leaves room for the UWP without covering the hex bottom.
		s.Worlds.Position = pt(0, 0.37)
	}

	if s.Scale >= WorldUwpMinScale {
		s.WorldDetails |= DetailUWP
		s.BaseBottomPosition.Y = 0.1
		s.BaseMiddlePosition.Y = (s.BaseBottomPosition.Y + s.BaseTopPosition.Y) / 2
		s.AllegiancePosition.Y = 0.1
	}
}

func (s *Snapshot) sizeWorldFonts() {
	scale := s.Scale
	fs := 1.0
	if scale > 96 && s.Theme != Candy {
		fs = 96 / math.Min(scale, 192)
	}
	pick := func(atlas, poster float64) float64 {
		if scale < WorldFullMinScale {
			return atlas
		}
		return poster * fs
	}

	s.Worlds.Font = newFont(DefaultFont, pick(0.2, 0.15), graphics.FontBold)
	s.GlyphFont = newFont(DefaultFont, pick(0.175, 0.15), graphics.FontBold)
	s.UWP.Font = newFont(DefaultFont, 0.1*fs, graphics.FontRegular)
	s.HexNumber.Font = s.UWP.Font
	s.Worlds.SmallFont = newFont(DefaultFont, pick(0.2, 0.1), graphics.FontRegular)
	s.Worlds.LargeFont = s.Worlds.Font
	if scale < WorldFullMinScale {
		s.Starport.Font = s.Worlds.SmallFont
	} else {
		s.Starport.Font = s.Worlds.Font
	}
}

// finish fades sector names and fills every color a theme left unset from
// the theme palette.
func (s *Snapshot) finish(p *palette) {
	if p.fadeSectorSubsectorNames {
		c := p.dim
		switch {
		case s.Scale < 16:
			c = p.foreground
		case s.Scale < 48:
			c = p.dark
		}
		s.SectorName.TextColor = c
		s.SubsectorNames.TextColor = c
	}

	defaultTo(&s.PseudoRandomStars.Fill, p.foreground)

	defaultTo(&s.DroyneWorlds.TextColor, s.MicroBorders.TextColor)
	defaultTo(&s.MinorHomeWorlds.TextColor, s.MicroBorders.TextColor)
	defaultTo(&s.AncientsWorlds.TextColor, s.MicroBorders.TextColor)

	defaultTo(&s.MegaNames.TextColor, p.foreground)
	defaultTo(&s.MegaNames.TextHighlightColor, p.highlight)

	defaultTo(&s.MacroNames.TextColor, p.foreground)
	defaultTo(&s.MacroNames.TextHighlightColor, p.highlight)

	defaultTo(&s.MacroRoutes.TextColor, p.foreground)
	defaultTo(&s.MacroRoutes.TextHighlightColor, p.highlight)

	defaultTo(&s.Worlds.TextColor, p.foreground)
	defaultTo(&s.Worlds.TextHighlightColor, p.highlight)

	defaultTo(&s.HexNumber.TextColor, p.light)
	defaultTo(&s.UWP.TextColor, p.foreground)

	defaultTo(&s.Placeholder.TextColor, p.foreground)
	defaultTo(&s.Anomaly.TextColor, p.highlight)

	defaultTo(&s.ImageBorderColor, p.light)

	for i, id := range s.layers {
		s.layerOrder[id] = i
	}
}

// HasWorldOverlays reports whether the world overlay layer draws anything.
func (s *Snapshot) HasWorldOverlays() bool {
	return s.PopulationOverlay.Visible || s.ImportanceOverlay.Visible || s.HighlightWorlds.Visible ||
		s.ShowStellarOverlay || s.CapitalOverlay.Visible
}

var (
	rust         = color.NRGBA{R: 0xcc, G: 0x66, B: 0x26, A: 0xff}
	industryGray = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
)

// WorldColors returns the pen and brush colors of a world disc. Either may
// be Empty, meaning that part is not drawn.
func (s *Snapshot) WorldColors(w *sector.World) (pen, brush color.NRGBA) {
	if s.ShowWorldDetailColors {
		switch {
		case w.IsAg() && w.IsRi():
			return Amber, Amber
		case w.IsAg():
			return Green, Green
		case w.IsRi():
			return purple, purple
		case w.IsIn():
			return industryGray, industryGray
		case w.Atmosphere() > 10:
			return rust, rust
		case w.HasCode("Va"):
			return white, black
		}
	}
	if w.WaterPresent() {
		return s.WorldWater.Pen.Color, s.WorldWater.Fill
	}
	return s.WorldNoWater.Pen.Color, s.WorldNoWater.Fill
}
