package stylesheet

import (
	_ "embed"
	"sync"
)

//go:embed default.css
var defaultSource string

var defaultSheet = sync.OnceValue(func() *Sheet {
	return MustParse(defaultSource)
})

// Default returns the built-in sheet used by sectors without a stylesheet
// and as the parent of every sector sheet.
func Default() *Sheet { return defaultSheet() }

// DefaultSource returns the text of the built-in sheet.
func DefaultSource() string { return defaultSource }

// ForSector parses a sector's stylesheet and chains it to the default sheet.
// An empty source yields the default sheet. A source that fails to parse
// also yields the default sheet, together with the parse error so the caller
// can report it.
func ForSector(src string) (*Sheet, error) {
	if src == "" {
		return Default(), nil
	}
	s, err := Parse(src)
	if err != nil {
		return Default(), err
	}
	s.Parent = Default()
	return s, nil
}
