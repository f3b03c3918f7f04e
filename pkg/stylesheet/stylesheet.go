package stylesheet

import (
	"io"
	"strings"
	"sync"

	"github.com/travellermap/hexmap/pkg/errors"
)

// Selector matches an element, optionally restricted to one code.
type Selector struct {
	Element string
	Code    string // empty matches any code
}

func (s Selector) String() string {
	if s.Code != "" {
		return s.Element + "." + s.Code
	}
	return s.Element
}

// specificity scores how well the selector matches (element, code).
func (s Selector) specificity(element, code string) int {
	switch {
	case element != s.Element:
		return 0
	case s.Code == "":
		return 1
	case code != s.Code:
		return 0
	}
	return 2
}

// Declaration is a single property assignment.
type Declaration struct {
	Property string
	Value    string
}

func (d Declaration) String() string { return d.Property + ": " + d.Value + ";" }

// Rule applies its declarations to every element its selectors match.
type Rule struct {
	Selectors    []Selector
	Declarations []Declaration
}

type key struct{ element, code string }

// Sheet is a parsed stylesheet. A Sheet is safe for concurrent use once its
// Parent has been set.
type Sheet struct {
	rules []Rule

	// Parent is consulted for pairs this sheet has no matching rule for.
	Parent *Sheet

	mu   sync.RWMutex
	memo map[key]*memoEntry
}

// New returns a sheet over the given rules.
func New(rules []Rule) *Sheet {
	return &Sheet{rules: rules, memo: make(map[key]*memoEntry)}
}

// Parse parses stylesheet source. Syntax errors are returned as a
// *ParseError wrapped with code PARSE.
func Parse(src string) (*Sheet, error) {
	p := &parser{src: src, line: 1, col: 1}
	rules, err := p.stylesheet()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse stylesheet")
	}
	return New(rules), nil
}

// ParseReader reads all of r and parses it.
func ParseReader(r io.Reader) (*Sheet, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "read stylesheet")
	}
	return Parse(string(b))
}

// MustParse is like Parse but panics on error.
func MustParse(src string) *Sheet {
	s, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return s
}

// Rules returns the sheet's rules in declaration order.
func (s *Sheet) Rules() []Rule { return s.rules }

// String formats the sheet with one rule per line.
func (s *Sheet) String() string {
	var sb strings.Builder
	for _, r := range s.rules {
		for i, sel := range r.Selectors {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(sel.String())
		}
		sb.WriteString(" { ")
		for _, d := range r.Declarations {
			sb.WriteString(d.String())
			sb.WriteString(" ")
		}
		sb.WriteString("}\n")
	}
	return sb.String()
}

// Apply resolves the declarations for (element, code). An empty code
// matches only element-wide rules. The returned Result is shared and must
// not be modified.
//
// Each pair is resolved at most once. Concurrent first callers for the same
// pair wait for that one resolution; other pairs are not blocked by it.
func (s *Sheet) Apply(element, code string) *Result {
	k := key{element, code}

	s.mu.RLock()
	m, ok := s.memo[k]
	s.mu.RUnlock()
	if !ok {
		s.mu.Lock()
		if s.memo == nil {
			s.memo = make(map[key]*memoEntry)
		}
		if m, ok = s.memo[k]; !ok {
			m = &memoEntry{}
			s.memo[k] = m
		}
		s.mu.Unlock()
	}

	m.once.Do(func() {
		m.result = s.resolve(element, code)
	})
	return m.result
}

type memoEntry struct {
	once   sync.Once
	result *Result
}

func (s *Sheet) resolve(element, code string) *Result {
	type entry struct {
		specificity int
		value       string
	}
	best := make(map[string]entry)
	matched := false
	for _, rule := range s.rules {
		for _, sel := range rule.Selectors {
			rank := sel.specificity(element, code)
			if rank == 0 {
				continue
			}
			matched = true
			for _, d := range rule.Declarations {
				prop := strings.ToLower(d.Property)
				if cur, ok := best[prop]; ok && rank < cur.specificity {
					continue
				}
				best[prop] = entry{rank, d.Value}
			}
		}
	}

	if !matched && s.Parent != nil {
		return s.Parent.Apply(element, code)
	}

	values := make(map[string]string, len(best))
	for prop, e := range best {
		values[prop] = e.value
	}
	return &Result{Element: element, Code: code, values: values}
}
