package style

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/travellermap/hexmap/pkg/errors"
	"github.com/travellermap/hexmap/pkg/sector"
)

// HighlightField is the world attribute a HighlightPattern tests.
type HighlightField int

const (
	FieldStarport HighlightField = iota
	FieldSize
	FieldAtmosphere
	FieldHydrographics
	FieldPopulation
	FieldGovernment
	FieldLaw
	FieldTech
	FieldImportance
	FieldBases
)

var highlightFields = map[string]HighlightField{
	"st": FieldStarport,
	"s":  FieldSize,
	"a":  FieldAtmosphere,
	"h":  FieldHydrographics,
	"p":  FieldPopulation,
	"g":  FieldGovernment,
	"l":  FieldLaw,
	"t":  FieldTech,
	"ix": FieldImportance,
	"b":  FieldBases,
}

// HighlightPattern selects worlds to highlight, either by a numeric range
// of one attribute or by a set of characters (starport and bases only).
//
//	p9+      population 9 or more
//	t5-      tech level 5 or less
//	s3-6     size 3 to 6
//	st:AB    class A or B starport
type HighlightPattern struct {
	Field   HighlightField
	Min     *int
	Max     *int
	Matches string
}

// highlightForm is one numeric pattern syntax; min and max are submatch
// indexes, zero when the bound is open.
type highlightForm struct {
	re       *regexp.Regexp
	min, max int
}

var (
	highlightForms = []highlightForm{
		{regexp.MustCompile(`(?i)^([A-Z]+)(-?\d+|[0-9A-Z])$`), 2, 2},
		{regexp.MustCompile(`(?i)^([A-Z]+)(-?\d+|[0-9A-Z])\+$`), 2, 0},
		{regexp.MustCompile(`(?i)^([A-Z]+)(-?\d+|[0-9A-Z])-$`), 0, 2},
		{regexp.MustCompile(`(?i)^([A-Z]+)(-?\d+|[0-9A-Z])-(-?\d+|[0-9A-Z])$`), 2, 3},
	}
	highlightChars = regexp.MustCompile(`(?i)^([A-Z]+):([A-Z]+)$`)
)

const eHex = "0123456789ABCDEFGHJKLMNPQRSTUVWXYZ"

func parseHighlightNumber(s string) (int, bool) {
	if len(s) == 1 {
		if i := strings.IndexByte(eHex, s[0]); i > 0 {
			return i, true
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// ParseHighlight parses a highlight pattern. Blank input yields nil and no
// error.
func ParseHighlight(s string) (*HighlightPattern, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	invalid := func(format string, args ...any) error {
		return errors.New(errors.ErrCodeInvalidInput, "highlight pattern %q: %s", s, fmt.Sprintf(format, args...))
	}
	field := func(name string) (HighlightField, error) {
		f, ok := highlightFields[strings.ToLower(name)]
		if !ok {
			return 0, invalid("unknown field %q", name)
		}
		return f, nil
	}

	if m := highlightChars.FindStringSubmatch(s); m != nil {
		f, err := field(m[1])
		if err != nil {
			return nil, err
		}
		return &HighlightPattern{Field: f, Matches: strings.ToUpper(m[2])}, nil
	}

	for _, form := range highlightForms {
		m := form.re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		f, err := field(m[1])
		if err != nil {
			return nil, err
		}
		p := &HighlightPattern{Field: f}
		bound := func(i int) (*int, error) {
			if i == 0 {
				return nil, nil
			}
			n, ok := parseHighlightNumber(m[i])
			if !ok {
				return nil, invalid("bad value %q", m[i])
			}
			return &n, nil
		}
		if p.Min, err = bound(form.min); err != nil {
			return nil, err
		}
		if p.Max, err = bound(form.max); err != nil {
			return nil, err
		}
		return p, nil
	}
	return nil, invalid("unrecognized form")
}

func (p *HighlightPattern) inRange(v int) bool {
	if p.Min != nil && v < *p.Min {
		return false
	}
	if p.Max != nil && v > *p.Max {
		return false
	}
	return true
}

// Match reports whether w is selected by the pattern. Character patterns
// only apply to the starport and bases fields.
func (p *HighlightPattern) Match(w *sector.World) bool {
	if p.Matches != "" {
		var v string
		switch p.Field {
		case FieldStarport:
			v = string(w.Starport())
		case FieldBases:
			v = w.Bases
		default:
			return false
		}
		return strings.ContainsAny(v, p.Matches)
	}

	var v int
	switch p.Field {
	case FieldStarport:
		v = strings.IndexByte("XEDCBA", w.Starport())
	case FieldSize:
		v = w.Size()
	case FieldAtmosphere:
		v = w.Atmosphere()
	case FieldHydrographics:
		v = w.Hydrographics()
	case FieldPopulation:
		v = w.PopulationExponent()
	case FieldGovernment:
		v = w.Government()
	case FieldLaw:
		v = w.Law()
	case FieldTech:
		v = w.TechLevel()
	case FieldImportance:
		v = w.ImportanceValue()
	default:
		return false
	}
	return p.inRange(v)
}
