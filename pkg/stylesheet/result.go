package stylesheet

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Result is the resolved set of properties for one (element, code) pair.
// Property names are case-insensitive.
type Result struct {
	Element string
	Code    string
	values  map[string]string
}

func (r *Result) lookup(property string) (string, bool) {
	if r == nil {
		return "", false
	}
	v, ok := r.values[strings.ToLower(property)]
	return v, ok && v != ""
}

// Len returns the number of resolved properties.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.values)
}

// Properties returns the resolved property names.
func (r *Result) Properties() []string {
	if r == nil {
		return nil
	}
	out := make([]string, 0, len(r.values))
	for p := range r.values {
		out = append(out, p)
	}
	return out
}

// String returns the raw value of property.
func (r *Result) String(property string) (string, bool) {
	return r.lookup(property)
}

// Number returns property parsed as a decimal number. A value that is not a
// number reports false.
func (r *Result) Number(property string) (float64, bool) {
	v, ok := r.lookup(property)
	if !ok {
		return 0, false
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// Color returns property parsed as a color. It panics if the value is not a
// color: that is a stylesheet bug, not a runtime condition.
func (r *Result) Color(property string) (color.NRGBA, bool) {
	v, ok := r.lookup(property)
	if !ok {
		return color.NRGBA{}, false
	}
	c, err := ParseColor(v)
	if err != nil {
		panic(fmt.Sprintf("stylesheet: %s.%s %s: %v", r.Element, r.Code, property, err))
	}
	return c, true
}

// Enum returns property looked up case-insensitively in names. It panics
// if the value names no member: that is a stylesheet bug, not a runtime
// condition.
func Enum[T any](r *Result, property string, names map[string]T) (T, bool) {
	var zero T
	v, ok := r.lookup(property)
	if !ok {
		return zero, false
	}
	if e, ok := names[strings.ToLower(v)]; ok {
		return e, true
	}
	panic(fmt.Sprintf("stylesheet: %s.%s %s: %q is not a valid value", r.Element, r.Code, property, v))
}
