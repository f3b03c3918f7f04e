package render

import (
	"math"
	"math/rand/v2"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/graphics"
)

// Provider image names.
const (
	ImageNebula     = "nebula"
	ImageGalaxy     = "galaxy"
	ImageGalaxyGray = "galaxy-gray"
	ImageRifts      = "rifts"
	ImageBelt       = "Belt"
)

// Fixed world-space placement of the background images.
var (
	galaxyImageRect = astrometrics.RectangleF{X: -18257, Y: -26234, Width: 36551, Height: 32462}
	riftImageRect   = astrometrics.RectangleF{X: -1374, Y: -827, Width: 2769, Height: 1754}
)

const (
	nebulaImageSize  = 1024
	nebulaImageScale = 2
)

// maxPseudoRandomStars caps the scatter at extreme zoom-outs.
const maxPseudoRandomStars = 20000

// image returns the provider image called name, or nil.
func (p *pass) image(name string) *graphics.Image {
	if p.req.Provider == nil {
		return nil
	}
	img := p.req.Provider.Image(name)
	if img == nil {
		return nil
	}
	return &graphics.Image{Name: name, Img: img}
}

func (p *pass) drawSolidBackground() error {
	p.brush.Color = p.s.BackgroundColor
	p.g.DrawRectangle(nil, &p.brush, p.req.TileRect)
	return nil
}

// drawNebulaBackground tiles the nebula texture in image space so that it
// keeps its pixel size at every zoom level.
func (p *pass) drawNebulaBackground() error {
	if !p.s.ShowNebulaBackground {
		return nil
	}
	img := p.image(ImageNebula)
	if img == nil {
		return nil
	}
	g, r := p.g, p.req
	state := g.Save()
	defer g.Restore(state)
	g.MultiplyTransform(p.worldSpaceToImageSpace())

	w := float64(nebulaImageSize * nebulaImageScale)
	h := w
	px, py := astrometrics.ParsecToPixels(r.Scale)
	ox := math.Mod(-r.TileRect.Left()*px, w)
	oy := math.Mod(-r.TileRect.Top()*py, h)
	if ox > 0 {
		ox -= w
	}
	if oy > 0 {
		oy -= h
	}

	width, height := float64(r.Width), float64(r.Height)
	nx := 1 + int(math.Floor(width/w))
	ny := 1 + int(math.Floor(height/h))
	if ox+float64(nx)*w < width {
		nx++
	}
	if oy+float64(ny)*h < height {
		ny++
	}
	for x := range nx {
		for y := range ny {
			g.DrawImage(img, astrometrics.RectangleF{X: ox + float64(x)*w, Y: oy + float64(y)*h, Width: w + 1, Height: h + 1})
		}
	}
	return nil
}

func (p *pass) drawGalaxyBackground() error {
	s := p.s
	if !s.ShowGalaxyBackground || s.DeepBackgroundOpacity <= 0 || !galaxyImageRect.IntersectsWith(p.req.TileRect) {
		return nil
	}
	name := ImageGalaxy
	if s.LightBackground {
		name = ImageGalaxyGray
	}
	if img := p.image(name); img != nil {
		p.g.DrawImageAlpha(s.DeepBackgroundOpacity, img, galaxyImageRect)
	}
	return nil
}

// drawPseudoRandomStars scatters background stars. The generator is seeded
// from the tile position so a tile renders the same stars every time.
func (p *pass) drawPseudoRandomStars() error {
	s, r := p.s, p.req
	if !s.PseudoRandomStars.Visible {
		return nil
	}
	n := r.Width * r.Height / 300
	if r.Scale < 1 {
		n = int(float64(n) / r.Scale)
	}
	n = min(n, maxPseudoRandomStars)

	seed := uint64(int64(int(r.TileRect.Left())<<8 ^ int(r.TileRect.Top())))
	rng := rand.New(rand.NewPCG(seed, seed^0xdeadbeef))

	p.brush.Color = s.PseudoRandomStars.Fill
	rect := r.TileRect
	for range n {
		x := rng.Float64()*rect.Width + rect.X
		y := rng.Float64()*rect.Height + rect.Y
		d := rng.Float64() * 2
		p.g.DrawEllipse(nil, &p.brush, astrometrics.RectangleF{
			X:      x,
			Y:      y,
			Width:  d / r.Scale * astrometrics.ParsecScaleX,
			Height: d / r.Scale * astrometrics.ParsecScaleY,
		})
	}
	return nil
}

func (p *pass) drawRifts() error {
	s := p.s
	if !s.ShowRiftOverlay || s.RiftOpacity <= 0 {
		return nil
	}
	if img := p.image(ImageRifts); img != nil {
		p.g.DrawImageAlpha(s.RiftOpacity, img, riftImageRect)
	}
	return nil
}
