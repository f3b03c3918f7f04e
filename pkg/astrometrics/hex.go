package astrometrics

import (
	"fmt"
	"strconv"
)

// Hex is a 1-based cell within a sector. Values outside the sector are legal
// and mark cells beyond the sector edge.
type Hex struct {
	X, Y int
}

// HexFromInt builds a hex from its XXYY integer form.
func HexFromInt(v int) Hex {
	return Hex{X: v / 100, Y: v % 100}
}

// ParseHex parses a four-digit "XXYY" string. An empty string yields the
// zero Hex.
func ParseHex(s string) (Hex, error) {
	if s == "" {
		return Hex{}, nil
	}
	if len(s) != 4 {
		return Hex{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	x, errX := strconv.Atoi(s[:2])
	y, errY := strconv.Atoi(s[2:])
	if errX != nil || errY != nil || x < 0 || y < 0 {
		return Hex{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	return Hex{X: x, Y: y}, nil
}

// MustParseHex is like ParseHex but panics on malformed input.
func MustParseHex(s string) Hex {
	h, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return h
}

// IsEmpty reports whether h is the zero Hex.
func (h Hex) IsEmpty() bool { return h.X == 0 && h.Y == 0 }

// IsValid reports whether h lies within a sector.
func (h Hex) IsValid() bool {
	return 1 <= h.X && h.X <= SectorWidth && 1 <= h.Y && h.Y <= SectorHeight
}

// Less orders hexes by column and then row.
func (h Hex) Less(o Hex) bool {
	return h.X < o.X || (h.X == o.X && h.Y < o.Y)
}

// ToInt returns the XXYY integer form.
func (h Hex) ToInt() int { return h.X*100 + h.Y }

// String returns the zero-padded XXYY form.
func (h Hex) String() string {
	return fmt.Sprintf("%04d", h.ToInt())
}

// SubsectorString returns the hex number relative to its subsector.
func (h Hex) SubsectorString() string {
	return fmt.Sprintf("%04d", ((h.X-1)%SubsectorWidth+1)*100+((h.Y-1)%SubsectorHeight+1))
}

// Subsector returns the subsector index (0..15) containing a valid hex.
func (h Hex) Subsector() int {
	return (h.X-1)/SubsectorWidth + ((h.Y-1)/SubsectorHeight)*4
}

// Quadrant returns the quadrant index (0..3) containing a valid hex.
func (h Hex) Quadrant() int {
	return (h.X-1)/(SubsectorWidth*2) + ((h.Y-1)/(SubsectorHeight*2))*2
}

// Neighbor returns the hex adjacent to h in the given direction (0..5,
// lower-left first, clockwise). The result may lie outside the sector. It
// panics if direction is outside 0..5.
func (h Hex) Neighbor(direction int) Hex {
	c, r := h.X, h.Y
	odd := c & 1
	switch direction {
	case 0:
		r += 1 - odd
		c--
	case 1:
		r -= odd
		c--
	case 2:
		r--
	case 3:
		r -= odd
		c++
	case 4:
		r += 1 - odd
		c++
	case 5:
		r++
	default:
		panic(fmt.Sprintf("astrometrics: neighbor direction %d out of range", direction))
	}
	return Hex{X: c, Y: r}
}
