package sector

import (
	"cmp"
	"image"
	"math"
	"slices"
	"sync"

	"github.com/travellermap/hexmap/pkg/astrometrics"
)

// Provider supplies map data to renderers. Implementations must be safe for
// concurrent use. Data that is not available is returned as nil or an empty
// slice.
type Provider interface {
	// Sectors returns the sectors whose area overlaps rect (in global
	// coordinates), ordered by column and then row.
	Sectors(rect astrometrics.RectangleF) []*Sector

	// Sector returns the sector at sector-space (x, y), or nil.
	Sector(x, y int) *Sector

	// VectorObjects returns the galaxy-scale objects of one kind.
	VectorObjects(kind VectorKind) []*VectorObject

	// MacroWorlds returns the capitals and homeworlds shown at galaxy scale.
	MacroWorlds() []MacroWorld

	// Image returns a named background or world image, or nil.
	Image(name string) image.Image
}

// SectorRange returns the inclusive sector-space range covering rect.
func SectorRange(rect astrometrics.RectangleF) (x1, y1, x2, y2 int) {
	fx := func(v float64) int {
		return int(math.Floor((v + float64(astrometrics.ReferenceHex.X)) / astrometrics.SectorWidth))
	}
	fy := func(v float64) int {
		return int(math.Floor((v + float64(astrometrics.ReferenceHex.Y)) / astrometrics.SectorHeight))
	}
	return fx(rect.Left()), fy(rect.Top()), fx(rect.Right()), fy(rect.Bottom())
}

// MemoryProvider is a Provider over data held in memory.
type MemoryProvider struct {
	mu      sync.RWMutex
	sectors map[astrometrics.Point]*Sector
	vectors map[VectorKind][]*VectorObject
	macro   []MacroWorld
	images  map[string]image.Image
}

// NewMemoryProvider returns an empty provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		sectors: make(map[astrometrics.Point]*Sector),
		vectors: make(map[VectorKind][]*VectorObject),
		images:  make(map[string]image.Image),
	}
}

// AddSector stores s, replacing any sector at the same location, and links
// its worlds back to it.
func (p *MemoryProvider) AddSector(s *Sector) {
	for _, w := range s.Worlds {
		w.Sector = s
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sectors[s.Location] = s
}

// AddVectorObject appends a galaxy-scale object.
func (p *MemoryProvider) AddVectorObject(kind VectorKind, v *VectorObject) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.vectors[kind] = append(p.vectors[kind], v)
}

// AddMacroWorld appends a galaxy-scale capital.
func (p *MemoryProvider) AddMacroWorld(w MacroWorld) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.macro = append(p.macro, w)
}

// SetImage registers a named image. A nil image removes it.
func (p *MemoryProvider) SetImage(name string, img image.Image) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if img == nil {
		delete(p.images, name)
		return
	}
	p.images[name] = img
}

// Len returns the number of sectors.
func (p *MemoryProvider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.sectors)
}

// All returns every sector ordered by column and then row.
func (p *MemoryProvider) All() []*Sector {
	p.mu.RLock()
	out := make([]*Sector, 0, len(p.sectors))
	for _, s := range p.sectors {
		out = append(out, s)
	}
	p.mu.RUnlock()
	sortSectors(out)
	return out
}

// Lookup finds a sector by name or abbreviation.
func (p *MemoryProvider) Lookup(name string) *Sector {
	for _, s := range p.All() {
		if s.Abbreviation == name || s.Name() == name || slices.Contains(s.Names, name) {
			return s
		}
	}
	return nil
}

func sortSectors(s []*Sector) {
	slices.SortFunc(s, func(a, b *Sector) int {
		if c := cmp.Compare(a.Location.X, b.Location.X); c != 0 {
			return c
		}
		return cmp.Compare(a.Location.Y, b.Location.Y)
	})
}

func (p *MemoryProvider) Sectors(rect astrometrics.RectangleF) []*Sector {
	x1, y1, x2, y2 := SectorRange(rect)
	p.mu.RLock()
	defer p.mu.RUnlock()
	var out []*Sector
	for x := x1; x <= x2; x++ {
		for y := y1; y <= y2; y++ {
			if s, ok := p.sectors[astrometrics.Point{X: x, Y: y}]; ok {
				out = append(out, s)
			}
		}
	}
	return out
}

func (p *MemoryProvider) Sector(x, y int) *Sector {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.sectors[astrometrics.Point{X: x, Y: y}]
}

func (p *MemoryProvider) VectorObjects(kind VectorKind) []*VectorObject {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.vectors[kind])
}

func (p *MemoryProvider) MacroWorlds() []MacroWorld {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return slices.Clone(p.macro)
}

func (p *MemoryProvider) Image(name string) image.Image {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.images[name]
}
