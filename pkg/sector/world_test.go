package sector

import (
	"slices"
	"testing"

	"github.com/travellermap/hexmap/pkg/astrometrics"
)

func TestFromHex(t *testing.T) {
	tests := []struct {
		c       byte
		want    int
		wantErr bool
	}{
		{'0', 0, false},
		{'9', 9, false},
		{'A', 10, false},
		{'a', 10, false},
		{'H', 17, false},
		{'J', 18, false},
		{'Z', 33, false},
		{'X', -1, false},
		{'?', -1, false},
		{'_', -1, false},
		{'O', 0, false},
		{'I', 1, false},
		{'!', 0, true},
	}
	for _, tt := range tests {
		got, err := FromHex(tt.c, -1)
		if (err != nil) != tt.wantErr {
			t.Errorf("FromHex(%q) error = %v", tt.c, err)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("FromHex(%q) = %d, want %d", tt.c, got, tt.want)
		}
	}
	if ToHex(10) != 'A' || ToHex(18) != 'J' || ToHex(-1) != '?' || ToHex(99) != '?' {
		t.Error("ToHex")
	}
}

func TestWorldProfile(t *testing.T) {
	w := NewWorld("Capital", astrometrics.MustParseHex("0102"), "A586A98-F")
	w.PBG = "704"
	w.Bases = "NS"
	w.Remarks = "Hi In Cx"

	checks := []struct {
		name      string
		got, want int
	}{
		{"starport", int(w.Starport()), 'A'},
		{"size", w.Size(), 5},
		{"atmosphere", w.Atmosphere(), 8},
		{"hydrographics", w.Hydrographics(), 6},
		{"population", w.PopulationExponent(), 10},
		{"government", w.Government(), 9},
		{"law", w.Law(), 8},
		{"tech", w.TechLevel(), 15},
		{"mantissa", w.PopulationMantissa(), 7},
		{"belts", w.Belts(), 0},
		{"gas giants", w.GasGiants(), 4},
		{"importance", w.ImportanceValue(), 4},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %d, want %d", c.name, c.got, c.want)
		}
	}
	if w.Population() != 7e10 {
		t.Errorf("Population = %v", w.Population())
	}
	if !w.IsHi() || w.IsIn() || w.IsRi() || w.IsAg() || !w.IsCapital() {
		t.Errorf("classes: hi=%v in=%v ri=%v ag=%v cap=%v", w.IsHi(), w.IsIn(), w.IsRi(), w.IsAg(), w.IsCapital())
	}
	if err := w.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestWorldEdgeProfiles(t *testing.T) {
	belt := NewWorld("Belter", astrometrics.Hex{X: 3, Y: 3}, "C000436-A")
	belt.Remarks = "As Ni Va"
	belt.Zone = "A"
	if !belt.IsAsteroids() || !belt.IsVacuum() || belt.WaterPresent() || !belt.IsAmber() || belt.IsRed() {
		t.Error("belt classification")
	}
	if got := belt.ImportanceValue(); got != 0 {
		t.Errorf("belt importance = %d", got)
	}

	red := NewWorld("Red One", astrometrics.Hex{X: 10, Y: 10}, "E76A300-5")
	red.Zone = "F"
	if !red.WaterPresent() || !red.IsRed() || red.Hydrographics() != 10 {
		t.Error("red classification")
	}
	if got := red.ImportanceValue(); got != -3 {
		t.Errorf("red importance = %d", got)
	}
	if red.PopulationMantissa() != 1 {
		t.Errorf("mantissa without PBG = %d", red.PopulationMantissa())
	}

	small := NewWorld("Small", astrometrics.Hex{X: 1, Y: 1}, "XS00000-0")
	if small.Size() != -1 || small.Atmosphere() != 0 {
		t.Errorf("small size = %d", small.Size())
	}

	unknown := NewWorld("Unknown", astrometrics.Hex{X: 1, Y: 1}, "???????-?")
	if !unknown.IsPlaceholder() || unknown.Size() != -1 || unknown.Hydrographics() != -1 || unknown.TechLevel() != 0 {
		t.Error("placeholder profile")
	}

	short := &World{Name: "Short", UWP: "A1"}
	if short.Starport() != 'X' || short.Validate() == nil {
		t.Error("short UWP should read as the default and fail validation")
	}

	explicit := NewWorld("Ix", astrometrics.Hex{X: 1, Y: 1}, "X000000-0")
	explicit.Importance = "{ +2 }"
	if got := explicit.ImportanceValue(); got != 2 {
		t.Errorf("explicit importance = %d", got)
	}
	explicit.Importance = "{ -1 }"
	if got := explicit.ImportanceValue(); got != -1 {
		t.Errorf("explicit importance = %d", got)
	}
}

func TestWorldCodes(t *testing.T) {
	w := &World{Remarks: "Ri  [Aslan] (Ktiin'a)3 Di(Extinct Race) {Anomaly} Pe RsB"}
	want := []string{"Ri", "[Aslan]", "(Ktiin'a)3", "Di(Extinct Race)", "{Anomaly}", "Pe", "RsB"}
	if got := w.Codes(); !slices.Equal(got, want) {
		t.Errorf("Codes = %q, want %q", got, want)
	}
	if !w.HasCode("ri") || !w.IsAnomaly() || !w.IsPenalColony() || w.IsReserve() || w.IsPrisonExileCamp() {
		t.Error("code predicates")
	}
	if rs, ok := w.ResearchStation(); !ok || rs != "RsB" {
		t.Errorf("ResearchStation = %q, %v", rs, ok)
	}
	if _, ok := w.CodePrefix("Zz"); ok {
		t.Error("unexpected prefix match")
	}

	open := &World{Remarks: "(Unclosed code"}
	if got := open.Codes(); !slices.Equal(got, []string{"(Unclosed code"}) {
		t.Errorf("unterminated code = %q", got)
	}
	if got := (&World{}).Codes(); len(got) != 0 {
		t.Errorf("empty remarks = %q", got)
	}
}

func TestWorldAllegiance(t *testing.T) {
	s := &Sector{Allegiances: []Allegiance{{Code: "ImXx", Name: "Local", Base: "Im"}}}
	w := NewWorld("A", astrometrics.Hex{X: 1, Y: 1}, "A000000-0")
	w.Allegiance = "ImXx"
	if got := w.BaseAllegiance(); got != "ImXx" {
		t.Errorf("unlinked base = %q", got)
	}
	w.Sector = s
	if got := w.BaseAllegiance(); got != "Im" {
		t.Errorf("base = %q", got)
	}
	w.Allegiance = "ZhCo"
	if got := w.LegacyAllegiance(); got != "Zh" {
		t.Errorf("legacy = %q", got)
	}
	if !IsDefaultAllegiance("ImDd") || IsDefaultAllegiance("Zh") {
		t.Error("IsDefaultAllegiance")
	}
	if w.Location().Sector != s.Location || w.SubsectorHex() != "0101" {
		t.Error("location")
	}
}
