package sector

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/travellermap/hexmap/pkg/astrometrics"
)

// Positions of the fields of a UWP ("A788899-C") and a PBG ("703").
const (
	uwpStarport = 0
	uwpSize     = 1
	uwpAtmos    = 2
	uwpHydro    = 3
	uwpPop      = 4
	uwpGov      = 5
	uwpLaw      = 6
	uwpTech     = 8

	pbgPop        = 0
	pbgBelts      = 1
	pbgGasGiants  = 2
	defaultUWP    = "X000000-0"
	defaultPBG    = "000"
	defaultAlleg  = "Na"
	eHexDigits    = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"
	unknownDigits = "X?_"
)

// World is one star system.
type World struct {
	Name       string
	Hex        astrometrics.Hex
	UWP        string
	PBG        string
	Zone       string
	Bases      string
	Allegiance string
	Stellar    string
	Remarks    string

	// Importance is the explicit importance extension ("{ +2 }"), if any.
	Importance string

	// Sector is set when the world is added to a sector.
	Sector *Sector
}

// NewWorld returns a world with the conventional defaults for missing
// fields.
func NewWorld(name string, hex astrometrics.Hex, uwp string) *World {
	return &World{Name: name, Hex: hex, UWP: uwp, PBG: defaultPBG, Allegiance: defaultAlleg}
}

// Location returns the world's sector and hex.
func (w *World) Location() astrometrics.Location {
	var s astrometrics.Point
	if w.Sector != nil {
		s = w.Sector.Location
	}
	return astrometrics.Location{Sector: s, Hex: w.Hex}
}

// Coordinates returns the world's global coordinate.
func (w *World) Coordinates() astrometrics.Point { return w.Location().Coordinates() }

// SubsectorHex returns the hex number within the world's subsector.
func (w *World) SubsectorHex() string { return w.Hex.SubsectorString() }

// FromHex decodes one extended-hex digit. Unknown markers (X, ? and _)
// yield unknown. The letters I and O, which are not digits, are read as the
// typos 1 and 0.
func FromHex(c byte, unknown int) (int, error) {
	switch u := upper(c); {
	case strings.IndexByte(unknownDigits, u) >= 0:
		return unknown, nil
	case u == 'O':
		return 0, nil
	case u == 'I':
		return 1, nil
	default:
		if i := strings.IndexByte(eHexDigits, u); i >= 0 {
			return i, nil
		}
	}
	return 0, fmt.Errorf("invalid extended-hex digit %q", c)
}

// ToHex encodes v as an extended-hex digit, or '?' if out of range.
func ToHex(v int) byte {
	if v < 0 || v >= len(eHexDigits) {
		return '?'
	}
	return eHexDigits[v]
}

func upper(c byte) byte {
	if 'a' <= c && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func (w *World) uwp() string {
	if len(w.UWP) < 9 {
		return defaultUWP
	}
	return w.UWP
}

func (w *World) pbg() string {
	if len(w.PBG) < 3 {
		return defaultPBG
	}
	return w.PBG
}

func digit(s string, i, unknown int) int {
	v, err := FromHex(s[i], unknown)
	if err != nil {
		return unknown
	}
	return v
}

// Validate checks that the UWP and PBG are well formed.
func (w *World) Validate() error {
	if len(w.UWP) != 9 || w.UWP[7] != '-' {
		return fmt.Errorf("world %q: malformed UWP %q", w.Name, w.UWP)
	}
	for i := 1; i < 9; i++ {
		if i == 7 || (i == uwpSize && upper(w.UWP[i]) == 'S') {
			continue
		}
		if _, err := FromHex(w.UWP[i], 0); err != nil {
			return fmt.Errorf("world %q: UWP %q: %w", w.Name, w.UWP, err)
		}
	}
	if len(w.PBG) != 3 {
		return fmt.Errorf("world %q: malformed PBG %q", w.Name, w.PBG)
	}
	for i := range 3 {
		if _, err := FromHex(w.PBG[i], 0); err != nil {
			return fmt.Errorf("world %q: PBG %q: %w", w.Name, w.PBG, err)
		}
	}
	return nil
}

// Starport returns the starport class letter.
func (w *World) Starport() byte { return upper(w.uwp()[uwpStarport]) }

// Size returns the size digit; small bodies ("S") and unknowns are -1.
func (w *World) Size() int {
	u := w.uwp()
	if upper(u[uwpSize]) == 'S' {
		return -1
	}
	return digit(u, uwpSize, -1)
}

func (w *World) Atmosphere() int         { return digit(w.uwp(), uwpAtmos, -1) }
func (w *World) Hydrographics() int      { return digit(w.uwp(), uwpHydro, -1) }
func (w *World) PopulationExponent() int { return digit(w.uwp(), uwpPop, 0) }
func (w *World) Government() int         { return digit(w.uwp(), uwpGov, 0) }
func (w *World) Law() int                { return digit(w.uwp(), uwpLaw, 0) }
func (w *World) TechLevel() int          { return digit(w.uwp(), uwpTech, 0) }

// PopulationMantissa returns the PBG population multiplier. Worlds with a
// population but no multiplier count as 1.
func (w *World) PopulationMantissa() int {
	m := digit(w.pbg(), pbgPop, 0)
	if m == 0 && w.PopulationExponent() > 0 {
		return 1
	}
	return m
}

func (w *World) Belts() int     { return digit(w.pbg(), pbgBelts, 0) }
func (w *World) GasGiants() int { return digit(w.pbg(), pbgGasGiants, 0) }

// Population returns the total population.
func (w *World) Population() float64 {
	return math.Pow(10, float64(w.PopulationExponent())) * float64(w.PopulationMantissa())
}

func inRange(v, lo, hi int) bool { return lo <= v && v <= hi }

func inList(v int, list ...int) bool {
	for _, x := range list {
		if v == x {
			return true
		}
	}
	return false
}

// WaterPresent reports whether the world has surface water under a
// breathable or exotic atmosphere.
func (w *World) WaterPresent() bool {
	a := w.Atmosphere()
	return w.Hydrographics() > 0 && (inRange(a, 2, 9) || inRange(a, 0xD, 0xF))
}

func (w *World) IsAsteroids() bool { return w.Size() == 0 }
func (w *World) IsVacuum() bool    { return w.Atmosphere() == 0 }
func (w *World) IsHi() bool        { return w.PopulationExponent() >= 9 }

// IsAg reports the agricultural trade classification.
func (w *World) IsAg() bool {
	return inRange(w.Atmosphere(), 4, 9) && inRange(w.Hydrographics(), 4, 8) && inRange(w.PopulationExponent(), 5, 7)
}

// IsIn reports the industrial trade classification.
func (w *World) IsIn() bool {
	return inList(w.Atmosphere(), 0, 1, 2, 4, 7, 9, 10, 11, 12) && w.PopulationExponent() >= 9
}

// IsRi reports the rich trade classification.
func (w *World) IsRi() bool {
	return inList(w.Atmosphere(), 6, 8) && inList(w.PopulationExponent(), 6, 7, 8)
}

// Codes splits the remarks into codes. Bracketed codes ("[Sophont]",
// "(Minor Race)3", "{Anomaly}", "Di(Extinct)") may contain spaces.
func (w *World) Codes() []string {
	var codes []string
	s := w.Remarks
	pos := 0
	for pos < len(s) {
		if s[pos] == ' ' {
			pos++
			continue
		}
		begin := pos
		end := -1
		for _, m := range codeMarkers {
			if !strings.HasPrefix(s[pos:], m.open) {
				continue
			}
			p := pos + len(m.open)
			if i := strings.IndexByte(s[p:], m.close); i >= 0 {
				p += i
				if j := strings.IndexByte(s[p:], ' '); j >= 0 {
					end = p + j
				}
			}
			if end < 0 {
				end = len(s)
			}
			break
		}
		if end < 0 {
			if i := strings.IndexByte(s[pos:], ' '); i >= 0 {
				end = pos + i
			} else {
				end = len(s)
			}
		}
		codes = append(codes, s[begin:end])
		pos = end
	}
	return codes
}

var codeMarkers = []struct {
	open  string
	close byte
}{
	{"[", ']'},
	{"(", ')'},
	{"{", '}'},
	{"Di(", ')'},
}

// HasCode reports whether the remarks contain code, ignoring case.
func (w *World) HasCode(code string) bool {
	for _, c := range w.Codes() {
		if strings.EqualFold(c, code) {
			return true
		}
	}
	return false
}

// CodePrefix returns the first code starting with prefix, ignoring case.
func (w *World) CodePrefix(prefix string) (string, bool) {
	for _, c := range w.Codes() {
		if len(c) >= len(prefix) && strings.EqualFold(c[:len(prefix)], prefix) {
			return c, true
		}
	}
	return "", false
}

// IsCapital reports a capital of any level.
func (w *World) IsCapital() bool {
	for _, c := range w.Codes() {
		switch c {
		case "Cp", "Cs", "Cx", "Capital":
			return true
		}
	}
	return false
}

func (w *World) IsPenalColony() bool     { return w.HasCode("Pe") }
func (w *World) IsPrisonExileCamp() bool { return w.HasCode("Px") || w.HasCode("Ex") }
func (w *World) IsReserve() bool         { return w.HasCode("Re") }

// ResearchStation returns the research station code ("RsA"), if any.
func (w *World) ResearchStation() (string, bool) { return w.CodePrefix("Rs") }

// IsPlaceholder reports a world whose profile is entirely unknown.
func (w *World) IsPlaceholder() bool { return w.UWP == "XXXXXXX-X" || w.UWP == "???????-?" }

func (w *World) IsAnomaly() bool { return w.HasCode("{Anomaly}") }
func (w *World) IsAmber() bool   { return w.Zone == "A" || w.Zone == "U" }
func (w *World) IsRed() bool     { return w.Zone == "R" || w.Zone == "F" }

// BaseAllegiance returns the base code of the world's allegiance.
func (w *World) BaseAllegiance() string {
	if w.Sector != nil {
		return w.Sector.BaseAllegiance(w.Allegiance)
	}
	return w.Allegiance
}

// LegacyAllegiance returns the two-letter form of the world's allegiance.
func (w *World) LegacyAllegiance() string { return LegacyCode(w.Allegiance) }

// ImportanceValue returns the world's importance: the explicit extension
// when present, otherwise one computed from its profile.
func (w *World) ImportanceValue() int {
	if ix := strings.Trim(strings.TrimSpace(w.Importance), "{}"); strings.TrimSpace(ix) != "" {
		if v, err := strconv.Atoi(strings.TrimPrefix(strings.TrimSpace(ix), "+")); err == nil {
			return v
		}
	}
	return w.calculateImportance()
}

func (w *World) calculateImportance() int {
	i := 0
	sp := w.Starport()
	if sp == 'A' || sp == 'B' {
		i++
	}
	if sp >= 'D' {
		i--
	}
	tl := w.TechLevel()
	if tl >= 16 {
		i++
	}
	if tl >= 10 {
		i++
	}
	if tl <= 8 {
		i--
	}
	for _, b := range []bool{w.IsAg(), w.IsHi(), w.IsIn(), w.IsRi()} {
		if b {
			i++
		}
	}
	if w.PopulationExponent() <= 6 {
		i--
	}
	bases := w.Bases
	if strings.ContainsAny(bases, "NK") && strings.ContainsAny(bases, "SV") {
		i++
	}
	if strings.ContainsRune(bases, 'W') {
		i++
	}
	return i
}
