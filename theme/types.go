package theme

// Span is a half-open byte range [Start, End) inside a text.
type Span struct {
	Start int
	End   int
}

// Valid reports whether the span took part in the match.
func (s Span) Valid() bool {
	return s.Start >= 0 && s.End >= s.Start
}

// Match is one anchor hit. Groups holds the spans of the pattern's target
// groups in target order; Start and End bound the whole anchor.
type Match struct {
	Start  int
	End    int
	Groups []Span
}

// Result is the output of a substitution.
type Result struct {
	Text  string
	Count int
}

// FileKind names the kind of file a pattern applies to.
type FileKind string

const (
	KindTheme FileKind = "theme"
	KindPanel FileKind = "panel"
	KindRC    FileKind = "rc"
)
