package graphics

import (
	"golang.org/x/image/font"

	"github.com/travellermap/hexmap/pkg/fonts"
)

// measureSize is the pixel size faces are measured at; metrics scale
// linearly to the requested size.
const measureSize = 64

func faceKey(f Font, size float64) fonts.Key {
	return fonts.Key{
		Kind:   fonts.KindOf(f.Family),
		Bold:   f.Style&FontBold != 0,
		Italic: f.Style&FontItalic != 0,
		Size:   size,
	}
}

// measure returns the advance width and line height of text in f, in the
// same units as f.Size.
func measure(c *fonts.Cache, text string, f Font) (width, height float64) {
	if f.Size <= 0 {
		return 0, 0
	}
	face, err := c.Face(faceKey(f, measureSize))
	if err != nil {
		return 0, f.Size
	}
	adv := font.MeasureString(face, text)
	k := f.Size / measureSize
	return float64(adv) / 64 * k, float64(face.Metrics().Height) / 64 * k
}
