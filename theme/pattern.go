package theme

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

var (
	// ErrValueCount is returned when the number of replacement values does
	// not equal the number of target groups.
	ErrValueCount = errors.New("replacement value count mismatch")
	// ErrOverlap is returned when two spans to splice overlap.
	ErrOverlap = errors.New("overlapping spans")
)

// Pattern is a structural anchor with one or more target capture groups.
// Only the bytes of the target groups are rewritten; the rest of every
// match is left as it was.
type Pattern struct {
	Name        string
	Kind        FileKind
	Description string

	re      *regexp.Regexp
	targets []int
}

// Compile builds a pattern. targets lists the capture group indexes to
// splice, in increasing order; with none given every group is a target.
func Compile(name string, kind FileKind, expr string, targets ...int) (*Pattern, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("compile pattern %s: %w", name, err)
	}

	n := re.NumSubexp()
	if len(targets) == 0 {
		for g := 1; g <= n; g++ {
			targets = append(targets, g)
		}
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("compile pattern %s: no capture groups", name)
	}
	for i, g := range targets {
		if g < 1 || g > n {
			return nil, fmt.Errorf("compile pattern %s: group %d out of range 1..%d", name, g, n)
		}
		if i > 0 && g <= targets[i-1] {
			return nil, fmt.Errorf("compile pattern %s: targets must be increasing", name)
		}
	}

	return &Pattern{
		Name:    name,
		Kind:    kind,
		re:      re,
		targets: targets,
	}, nil
}

// MustCompile is like Compile but panics on error.
func MustCompile(name string, kind FileKind, expr string, targets ...int) *Pattern {
	p, err := Compile(name, kind, expr, targets...)
	if err != nil {
		panic(err)
	}
	return p
}

// Targets returns the number of values Replace expects.
func (p *Pattern) Targets() int {
	return len(p.targets)
}

// Expr returns the source of the underlying regular expression.
func (p *Pattern) Expr() string {
	return p.re.String()
}

// Match finds every non-overlapping anchor in text, left to right.
func (p *Pattern) Match(text string) []Match {
	locs := p.re.FindAllStringSubmatchIndex(text, -1)
	matches := make([]Match, 0, len(locs))
	for _, loc := range locs {
		m := Match{
			Start:  loc[0],
			End:    loc[1],
			Groups: make([]Span, len(p.targets)),
		}
		for i, g := range p.targets {
			m.Groups[i] = Span{Start: loc[2*g], End: loc[2*g+1]}
		}
		matches = append(matches, m)
	}
	return matches
}

// Replace substitutes values into the target groups of every match.
// values[i] goes into target group i. A text without any anchor comes
// back unchanged with a zero count.
func (p *Pattern) Replace(text string, values ...string) (Result, error) {
	if len(values) != len(p.targets) {
		return Result{}, fmt.Errorf("%w: pattern %s wants %d, got %d",
			ErrValueCount, p.Name, len(p.targets), len(values))
	}
	return Splice(text, p.Match(text), values)
}

// ReplaceFunc is like Replace but asks fn for the values of each match.
// fn receives the current text of the target groups.
func (p *Pattern) ReplaceFunc(text string, fn func(current []string) []string) (Result, error) {
	return splice(text, p.Match(text), func(m Match) ([]string, error) {
		current := make([]string, len(m.Groups))
		for i, s := range m.Groups {
			if s.Valid() {
				current[i] = text[s.Start:s.End]
			}
		}
		values := fn(current)
		if len(values) != len(m.Groups) {
			return nil, fmt.Errorf("%w: pattern %s wants %d, got %d",
				ErrValueCount, p.Name, len(m.Groups), len(values))
		}
		return values, nil
	})
}

// Splice writes values[i] over group i of every match and keeps all other
// bytes of text.
func Splice(text string, matches []Match, values []string) (Result, error) {
	return splice(text, matches, func(m Match) ([]string, error) {
		if len(values) != len(m.Groups) {
			return nil, fmt.Errorf("%w: match has %d groups, got %d values",
				ErrValueCount, len(m.Groups), len(values))
		}
		return values, nil
	})
}

type edit struct {
	span  Span
	value string
}

func splice(text string, matches []Match, valuesFor func(Match) ([]string, error)) (Result, error) {
	if len(matches) == 0 {
		return Result{Text: text}, nil
	}

	var edits []edit
	count := 0
	for _, m := range matches {
		values, err := valuesFor(m)
		if err != nil {
			return Result{}, err
		}
		spliced := false
		for i, s := range m.Groups {
			if !s.Valid() {
				continue
			}
			edits = append(edits, edit{span: s, value: values[i]})
			spliced = true
		}
		if spliced {
			count++
		}
	}

	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].span.Start < edits[j].span.Start
	})

	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, e := range edits {
		if e.span.Start < pos || e.span.End > len(text) {
			return Result{}, fmt.Errorf("%w: [%d,%d) after offset %d", ErrOverlap, e.span.Start, e.span.End, pos)
		}
		b.WriteString(text[pos:e.span.Start])
		b.WriteString(e.value)
		pos = e.span.End
	}
	b.WriteString(text[pos:])

	return Result{Text: b.String(), Count: count}, nil
}
