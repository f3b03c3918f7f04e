package sector

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/travellermap/hexmap/pkg/astrometrics"
	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/graphics"
	"github.com/travellermap/hexmap/pkg/stylesheet"
)

type sceneFile struct {
	Sectors     []sectorFile     `toml:"sector"`
	Vectors     []vectorFile     `toml:"vector"`
	MacroWorlds []macroWorldFile `toml:"macro_world"`
	Images      []imageFile      `toml:"image"`
}

type sectorFile struct {
	X            int               `toml:"x"`
	Y            int               `toml:"y"`
	Name         string            `toml:"name"`
	Names        []string          `toml:"names"`
	Abbreviation string            `toml:"abbreviation"`
	Label        string            `toml:"label"`
	Selected     bool              `toml:"selected"`
	Tags         []string          `toml:"tags"`
	Stylesheet   string            `toml:"stylesheet"`
	Subsectors   map[string]string `toml:"subsectors"`
	Allegiances  []Allegiance      `toml:"allegiance"`
	Borders      []borderFile      `toml:"border"`
	Regions      []borderFile      `toml:"region"`
	Routes       []routeFile       `toml:"route"`
	Labels       []labelFile       `toml:"labels"`
	Worlds       []worldFile       `toml:"world"`
}

type borderFile struct {
	Path         string  `toml:"path"`
	Allegiance   string  `toml:"allegiance"`
	Color        string  `toml:"color"`
	Style        string  `toml:"style"`
	Label        string  `toml:"label"`
	LabelHex     string  `toml:"label_hex"`
	LabelOffsetX float64 `toml:"label_offset_x"`
	LabelOffsetY float64 `toml:"label_offset_y"`
	ShowLabel    *bool   `toml:"show_label"`
	WrapLabel    bool    `toml:"wrap_label"`
}

type routeFile struct {
	Start       string   `toml:"start"`
	End         string   `toml:"end"`
	StartOffset [2]int   `toml:"start_offset"`
	EndOffset   [2]int   `toml:"end_offset"`
	Allegiance  string   `toml:"allegiance"`
	Type        string   `toml:"type"`
	Color       string   `toml:"color"`
	Style       string   `toml:"style"`
	Width       *float64 `toml:"width"`
}

type labelFile struct {
	Hex     string  `toml:"hex"`
	Text    string  `toml:"text"`
	Color   string  `toml:"color"`
	Size    string  `toml:"size"`
	Wrap    bool    `toml:"wrap"`
	OffsetX float64 `toml:"offset_x"`
	OffsetY float64 `toml:"offset_y"`
}

type worldFile struct {
	Hex        string `toml:"hex"`
	Name       string `toml:"name"`
	UWP        string `toml:"uwp"`
	PBG        string `toml:"pbg"`
	Zone       string `toml:"zone"`
	Bases      string `toml:"bases"`
	Allegiance string `toml:"allegiance"`
	Stellar    string `toml:"stellar"`
	Remarks    string `toml:"remarks"`
	Importance string `toml:"importance"`
}

type vectorFile struct {
	Kind       string       `toml:"kind"`
	Name       string       `toml:"name"`
	Origin     [2]float64   `toml:"origin"`
	Scale      *[2]float64  `toml:"scale"`
	NameOffset [2]float64   `toml:"name_offset"`
	Options    uint32       `toml:"options"`
	Points     [][2]float64 `toml:"points"`
	Closed     bool         `toml:"closed"`
}

type macroWorldFile struct {
	Name    string  `toml:"name"`
	Sector  [2]int  `toml:"sector"`
	Hex     string  `toml:"hex"`
	Options uint32  `toml:"options"`
	Bias    *[2]int `toml:"bias"`
}

type imageFile struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// LoadFile reads a TOML scene. Image paths are resolved relative to the
// scene file.
func LoadFile(path string) (*MemoryProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read scene %s", path)
	}
	return decode(data, filepath.Dir(path))
}

// Decode reads a TOML scene from r. Image entries are resolved relative to
// the working directory.
func Decode(r io.Reader) (*MemoryProvider, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read scene")
	}
	return decode(data, ".")
}

func decode(data []byte, dir string) (*MemoryProvider, error) {
	var scene sceneFile
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&scene)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "decode scene")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown scene keys: %s", strings.Join(keys, ", "))
	}

	p := NewMemoryProvider()
	for i := range scene.Sectors {
		s, err := scene.Sectors[i].build()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "sector %d", i)
		}
		if p.Sector(s.Location.X, s.Location.Y) != nil {
			return nil, errors.New(errors.ErrCodeInvalidFormat, "duplicate sector at %d,%d", s.Location.X, s.Location.Y)
		}
		p.AddSector(s)
	}
	for i, vf := range scene.Vectors {
		kind, v, err := vf.build()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "vector %d", i)
		}
		p.AddVectorObject(kind, v)
	}
	for i, mf := range scene.MacroWorlds {
		w, err := mf.build()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "macro world %d", i)
		}
		p.AddMacroWorld(w)
	}
	for _, im := range scene.Images {
		img, err := loadImage(filepath.Join(dir, im.Path))
		if err != nil {
			return nil, err
		}
		p.SetImage(im.Name, img)
	}
	return p, nil
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "image %s", path)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "image %s", path)
	}
	return img, nil
}

func optionalColor(s string) (*color.NRGBA, error) {
	if s == "" {
		return nil, nil
	}
	c, err := stylesheet.ParseColor(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func optionalStyle(s string) (*LineStyle, error) {
	if s == "" {
		return nil, nil
	}
	ls, err := ParseLineStyle(s)
	if err != nil {
		return nil, err
	}
	return &ls, nil
}

func (f *sectorFile) build() (*Sector, error) {
	s := &Sector{
		Location:         astrometrics.Point{X: f.X, Y: f.Y},
		Abbreviation:     f.Abbreviation,
		Label:            f.Label,
		Selected:         f.Selected,
		Tags:             f.Tags,
		StylesheetSource: f.Stylesheet,
		Allegiances:      f.Allegiances,
	}
	if f.Name != "" {
		s.Names = append(s.Names, f.Name)
	}
	s.Names = append(s.Names, f.Names...)

	for idx, name := range f.Subsectors {
		if len(idx) != 1 || idx[0] < 'A' || idx[0] > 'P' {
			return nil, fmt.Errorf("subsector index %q is not A..P", idx)
		}
		s.Subsectors[idx[0]-'A'] = name
	}

	for i, bf := range f.Borders {
		b, err := bf.build()
		if err != nil {
			return nil, fmt.Errorf("border %d: %w", i, err)
		}
		s.Borders = append(s.Borders, b)
	}
	for i, bf := range f.Regions {
		b, err := bf.build()
		if err != nil {
			return nil, fmt.Errorf("region %d: %w", i, err)
		}
		s.Regions = append(s.Regions, b)
	}
	for i, rf := range f.Routes {
		r, err := rf.build()
		if err != nil {
			return nil, fmt.Errorf("route %d: %w", i, err)
		}
		s.Routes = append(s.Routes, r)
	}
	for i, lf := range f.Labels {
		l, err := lf.build()
		if err != nil {
			return nil, fmt.Errorf("label %d: %w", i, err)
		}
		s.Labels = append(s.Labels, l)
	}
	for i, wf := range f.Worlds {
		w, err := wf.build()
		if err != nil {
			return nil, fmt.Errorf("world %d: %w", i, err)
		}
		if s.WorldAt(w.Hex) != nil {
			return nil, fmt.Errorf("world %d: hex %s is occupied", i, w.Hex)
		}
		w.Sector = s
		s.Worlds = append(s.Worlds, w)
	}
	return s, nil
}

func (f borderFile) build() (*Border, error) {
	path, err := ParsePath(f.Path)
	if err != nil {
		return nil, err
	}
	if len(path) == 0 {
		return nil, fmt.Errorf("empty path")
	}
	b := NewBorder(path, f.Allegiance)
	if b.Color, err = optionalColor(f.Color); err != nil {
		return nil, err
	}
	if b.Style, err = optionalStyle(f.Style); err != nil {
		return nil, err
	}
	if b.LabelHex, err = astrometrics.ParseHex(f.LabelHex); err != nil {
		return nil, err
	}
	b.Label = f.Label
	b.LabelOffsetX, b.LabelOffsetY = f.LabelOffsetX, f.LabelOffsetY
	if f.ShowLabel != nil {
		b.ShowLabel = *f.ShowLabel
	}
	b.WrapLabel = f.WrapLabel
	return b, nil
}

func (f routeFile) build() (*Route, error) {
	start, err := astrometrics.ParseHex(f.Start)
	if err != nil {
		return nil, err
	}
	end, err := astrometrics.ParseHex(f.End)
	if err != nil {
		return nil, err
	}
	r := NewRoute(start, end)
	r.StartOffset = r.StartOffset.Offset(astrometrics.Point{X: f.StartOffset[0], Y: f.StartOffset[1]})
	r.EndOffset = r.EndOffset.Offset(astrometrics.Point{X: f.EndOffset[0], Y: f.EndOffset[1]})
	r.Allegiance, r.Type = f.Allegiance, f.Type
	if r.Color, err = optionalColor(f.Color); err != nil {
		return nil, err
	}
	if r.Style, err = optionalStyle(f.Style); err != nil {
		return nil, err
	}
	r.Width = f.Width
	return r, nil
}

func (f labelFile) build() (*Label, error) {
	h, err := astrometrics.ParseHex(f.Hex)
	if err != nil {
		return nil, err
	}
	l := &Label{Hex: h, Text: f.Text, Color: DefaultLabelColor, Size: f.Size, Wrap: f.Wrap, OffsetX: f.OffsetX, OffsetY: f.OffsetY}
	if f.Color != "" {
		if l.Color, err = stylesheet.ParseColor(f.Color); err != nil {
			return nil, err
		}
	}
	switch f.Size {
	case "", LabelSmall, LabelLarge:
	default:
		return nil, fmt.Errorf("unknown label size %q", f.Size)
	}
	return l, nil
}

func (f worldFile) build() (*World, error) {
	h, err := astrometrics.ParseHex(f.Hex)
	if err != nil {
		return nil, err
	}
	if !h.IsValid() {
		return nil, fmt.Errorf("%w: %s is outside the sector", astrometrics.ErrInvalidHex, f.Hex)
	}
	w := NewWorld(f.Name, h, f.UWP)
	if w.UWP == "" {
		w.UWP = defaultUWP
	}
	if f.PBG != "" {
		w.PBG = f.PBG
	}
	if f.Allegiance != "" {
		w.Allegiance = f.Allegiance
	}
	w.Zone = strings.ToUpper(strings.TrimSpace(f.Zone))
	if w.Zone == "G" {
		w.Zone = ""
	}
	w.Bases, w.Stellar, w.Remarks, w.Importance = f.Bases, f.Stellar, f.Remarks, f.Importance
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func (f vectorFile) build() (VectorKind, *VectorObject, error) {
	var kind VectorKind
	switch strings.ToLower(f.Kind) {
	case "", "borders", "border":
		kind = VectorBorders
	case "rifts", "rift":
		kind = VectorRifts
	case "routes", "route":
		kind = VectorRoutes
	default:
		return 0, nil, fmt.Errorf("unknown vector kind %q", f.Kind)
	}
	if len(f.Points) < 2 {
		return 0, nil, fmt.Errorf("vector %q needs at least two points", f.Name)
	}
	v := &VectorObject{
		Name:    f.Name,
		OriginX: f.Origin[0], OriginY: f.Origin[1],
		ScaleX: 1, ScaleY: 1,
		NameX: f.NameOffset[0], NameY: f.NameOffset[1],
		Options: f.Options,
	}
	if f.Scale != nil {
		v.ScaleX, v.ScaleY = f.Scale[0], f.Scale[1]
	}
	for _, pt := range f.Points {
		v.Points = append(v.Points, astrometrics.PointF{X: pt[0], Y: pt[1]})
	}
	if f.Closed {
		v.Types = v.Path().Types
		v.Types[len(v.Types)-1] |= graphics.PointClose
	}
	return kind, v, nil
}

func (f macroWorldFile) build() (MacroWorld, error) {
	h, err := astrometrics.ParseHex(f.Hex)
	if err != nil {
		return MacroWorld{}, err
	}
	w := MacroWorld{
		Name:       f.Name,
		Location:   astrometrics.Location{Sector: astrometrics.Point{X: f.Sector[0], Y: f.Sector[1]}, Hex: h},
		Options:    f.Options,
		LabelBiasX: 1,
		LabelBiasY: 1,
	}
	if f.Bias != nil {
		w.LabelBiasX, w.LabelBiasY = f.Bias[0], f.Bias[1]
	}
	return w, nil
}
