package stylesheet

import (
	"fmt"
	"strconv"
	"strings"
)

// Accessor checks that a declaration value parses as the property's type.
type Accessor func(value string) error

// ColorValue accepts values understood by ParseColor.
func ColorValue(v string) error {
	_, err := ParseColor(v)
	return err
}

// NumberValue accepts decimal numbers.
func NumberValue(v string) error {
	if _, err := strconv.ParseFloat(v, 64); err != nil {
		return fmt.Errorf("%q is not a number", v)
	}
	return nil
}

// StringValue accepts anything.
func StringValue(string) error { return nil }

// EnumValue accepts the keys of names, case-insensitively. Keys must be
// lower case.
func EnumValue[T any](names map[string]T) Accessor {
	return func(v string) error {
		if _, ok := names[strings.ToLower(v)]; !ok {
			return fmt.Errorf("%q is not a valid value", v)
		}
		return nil
	}
}

// Table maps property names, in lower case, to their accessors. Properties
// absent from the table are not checked.
type Table map[string]Accessor

// ValueError reports a declaration whose value does not parse.
type ValueError struct {
	Selector Selector
	Property string
	Value    string
	Err      error
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("%s { %s: %s; }: %v", e.Selector, e.Property, e.Value, e.Err)
}

func (e *ValueError) Unwrap() error { return e.Err }

// Check validates every declaration of s against the table. It does not
// consult the parent sheet.
func (t Table) Check(s *Sheet) []error {
	var errs []error
	for _, rule := range s.rules {
		for _, d := range rule.Declarations {
			acc, ok := t[strings.ToLower(d.Property)]
			if !ok {
				continue
			}
			if err := acc(d.Value); err != nil {
				for _, sel := range rule.Selectors {
					errs = append(errs, &ValueError{Selector: sel, Property: d.Property, Value: d.Value, Err: err})
				}
			}
		}
	}
	return errs
}
