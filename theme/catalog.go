package theme

import (
	"fmt"
	"regexp"
	"sort"
)

// Names of the built-in patterns.
const (
	BaseMenu        = "base-menu"
	MenuList        = "menu-list"
	MenuOpacity     = "menu-opacity"
	SearchUnfocused = "search-unfocused"
	SearchFocused   = "search-focused"
	PanelRGBA       = "panel-rgba"
	BorderColor     = "border-color"
)

// `.background { color: #fff; background-color: <value>; }`
const exprBaseMenu = `\.background\s*\{(?:[^{}]*?\s)?color:\s*[^;{}]+;\s*background-color:\s*([^;{}]+);`

// `.view, iconview, .view text, iconview text, textview text { color: ...; background-color: <value>; }`
const exprMenuList = `\.view,\s*iconview,\s*\.view\s+text,\s*iconview\s+text,\s*textview\s+text\s*\{(?:[^{}]*?\s)?color:\s*[^;{}]+;\s*background-color:\s*([^;{}]+);`

const exprEntryPrefix = `entry\s*\{\s*border:\s*[^;{}]+;\s*padding:\s*[^;{}]+;\s*caret-color:\s*[^;{}]+;\s*border-radius:\s*[^;{}]+;\s*transition:\s*[^;{}]+;\s*color:\s*[^;{}]+;\s*`

const exprSearchUnfocused = exprEntryPrefix + `border-color:\s*[^;{}]+;\s*background-color:\s*([^;{}]+);`

const exprBorderColor = exprEntryPrefix + `border-color:\s*([^;{}]+);\s*background-color:\s*[^;{}]+;\s*\}`

const exprSearchFocused = `entry:focus\s*\{\s*background-clip:\s*[^;{}]+;\s*color:\s*[^;{}]+;\s*border-color:\s*[^;{}]+;\s*background-color:\s*([^;{}]+);`

const exprPanelValue = `\s*<value\s+type="double"\s+value="([^"]*)"\s*/>`

const exprPanelRGBA = `<property\s+name="background-rgba"\s+type="array"\s*>` +
	exprPanelValue + exprPanelValue + exprPanelValue + exprPanelValue +
	`\s*</property>`

// NumericProperty builds a pattern for a `key=<number>` line of an .rc
// file. The key and separator are captured but only the number is a target.
// The number may be empty or start with a dot; anything else on the line
// after it is a miss.
func NumericProperty(key string) (*Pattern, error) {
	expr := `(?m)^([ \t]*` + regexp.QuoteMeta(key) + `[ \t]*=[ \t]*)(\d*(?:\.\d*)?)[ \t\r]*$`
	p, err := Compile(key, KindRC, expr, 2)
	if err != nil {
		return nil, err
	}
	p.Description = fmt.Sprintf("numeric %s property in .rc files", key)
	return p, nil
}

// Catalog holds patterns by name.
type Catalog struct {
	patterns map[string]*Pattern
	names    []string
}

// NewCatalog returns a catalog holding the built-in patterns.
func NewCatalog() *Catalog {
	c := &Catalog{patterns: make(map[string]*Pattern)}

	builtins := []struct {
		name, desc, expr string
		kind             FileKind
	}{
		{BaseMenu, "main menu background", exprBaseMenu, KindTheme},
		{MenuList, "menu list layer background", exprMenuList, KindTheme},
		{SearchUnfocused, "search bar background, default state", exprSearchUnfocused, KindTheme},
		{SearchFocused, "search bar background, focused state", exprSearchFocused, KindTheme},
		{PanelRGBA, "panel background-rgba quartet", exprPanelRGBA, KindPanel},
		{BorderColor, "menu border colour", exprBorderColor, KindTheme},
	}
	for _, b := range builtins {
		p := MustCompile(b.name, b.kind, b.expr)
		p.Description = b.desc
		c.Add(p)
	}

	opacity, err := NumericProperty(MenuOpacity)
	if err != nil {
		panic(err)
	}
	opacity.Description = "menu opacity percentage in whiskermenu-N.rc"
	c.Add(opacity)

	return c
}

// Add registers p, replacing any pattern of the same name.
func (c *Catalog) Add(p *Pattern) {
	if _, exists := c.patterns[p.Name]; !exists {
		c.names = append(c.names, p.Name)
		c.names = sortNames(c.names)
	}
	c.patterns[p.Name] = p
}

// Get returns a pattern by name, or nil if not found.
func (c *Catalog) Get(name string) *Pattern {
	return c.patterns[name]
}

// MustGet returns a pattern by name and panics if it is missing.
func (c *Catalog) MustGet(name string) *Pattern {
	p := c.patterns[name]
	if p == nil {
		panic(fmt.Sprintf("theme: unknown pattern %q", name))
	}
	return p
}

// List returns every pattern, built-ins first in update order.
func (c *Catalog) List() []*Pattern {
	out := make([]*Pattern, 0, len(c.names))
	for _, name := range c.names {
		out = append(out, c.patterns[name])
	}
	return out
}

func sortNames(names []string) []string {
	preferredOrder := []string{BaseMenu, MenuList, MenuOpacity, SearchFocused, SearchUnfocused, PanelRGBA, BorderColor}
	rank := make(map[string]int, len(preferredOrder))
	for i, name := range preferredOrder {
		rank[name] = i
	}

	sorted := append([]string(nil), names...)
	sort.SliceStable(sorted, func(i, j int) bool {
		ri, iok := rank[sorted[i]]
		rj, jok := rank[sorted[j]]
		switch {
		case iok && jok:
			return ri < rj
		case iok != jok:
			return iok
		default:
			return sorted[i] < sorted[j]
		}
	})
	return sorted
}
