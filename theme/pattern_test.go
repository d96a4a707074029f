package theme

import (
	"errors"
	"strings"
	"testing"
)

func TestCompile_DefaultTargets(t *testing.T) {
	p, err := Compile("pair", KindTheme, `(a)-(b)`)
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if p.Targets() != 2 {
		t.Errorf("Targets() = %d, want 2", p.Targets())
	}
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		targets []int
	}{
		{"bad regexp", `(a`, nil},
		{"no groups", `abc`, nil},
		{"target out of range", `(a)`, []int{2}},
		{"target zero", `(a)`, []int{0}},
		{"targets not increasing", `(a)(b)`, []int{2, 1}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Compile("p", KindTheme, tc.expr, tc.targets...); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestReplace_OnlyCapturedBytes(t *testing.T) {
	p := MustCompile("kv", KindRC, `key:\s*(\w+);`)
	in := "a key:  old; b key:old; c"

	res, err := p.Replace(in, "NEW")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	want := "a key:  NEW; b key:NEW; c"
	if res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
	if res.Count != 2 {
		t.Errorf("Count = %d, want 2", res.Count)
	}
}

func TestReplace_NoMatchReturnsInput(t *testing.T) {
	p := MustCompile("kv", KindRC, `key:\s*(\w+);`)
	in := "nothing to see here\n"

	res, err := p.Replace(in, "NEW")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if res.Text != in {
		t.Errorf("Text = %q, want input unchanged", res.Text)
	}
	if res.Count != 0 {
		t.Errorf("Count = %d, want 0", res.Count)
	}
}

func TestReplace_ValueCountMismatch(t *testing.T) {
	p := MustCompile("pair", KindTheme, `(a)-(b)`)
	if _, err := p.Replace("a-b", "x"); !errors.Is(err, ErrValueCount) {
		t.Fatalf("error = %v, want ErrValueCount", err)
	}
}

func TestReplace_SplicesCapturedOccurrenceNotFirstEqualText(t *testing.T) {
	// The captured value also appears earlier inside the anchor; only the
	// captured position may change.
	p := MustCompile("bg", KindTheme, `color:\s*[^;]+;\s*background-color:\s*([^;]+);`)
	in := "x { color: #111; background-color: #111; }"

	res, err := p.Replace(in, "red")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	want := "x { color: #111; background-color: red; }"
	if res.Text != want {
		t.Errorf("Text = %q, want %q", res.Text, want)
	}
}

func TestReplace_KeepsNonTargetGroups(t *testing.T) {
	p := MustCompile("prop", KindRC, `(menu-opacity=)(\d+)`, 2)
	res, err := p.Replace("menu-opacity=50\n", "80")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if res.Text != "menu-opacity=80\n" {
		t.Errorf("Text = %q", res.Text)
	}
}

func TestReplaceFunc_ReceivesCurrentValues(t *testing.T) {
	p := MustCompile("num", KindRC, `n=(\d+)`)
	res, err := p.ReplaceFunc("n=1 n=22 n=333", func(cur []string) []string {
		return []string{strings.Repeat("9", len(cur[0]))}
	})
	if err != nil {
		t.Fatalf("ReplaceFunc: %v", err)
	}
	if res.Text != "n=9 n=99 n=999" {
		t.Errorf("Text = %q", res.Text)
	}
	if res.Count != 3 {
		t.Errorf("Count = %d, want 3", res.Count)
	}
}

func TestSplice_SkipsNonParticipatingGroups(t *testing.T) {
	p := MustCompile("opt", KindTheme, `x(a)?(b)`)
	res, err := p.Replace("xb xab", "A", "B")
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if res.Text != "xB xAB" {
		t.Errorf("Text = %q, want %q", res.Text, "xB xAB")
	}
}

func TestSplice_RejectsOverlap(t *testing.T) {
	matches := []Match{{Start: 0, End: 4, Groups: []Span{{0, 3}, {1, 4}}}}
	if _, err := Splice("abcd", matches, []string{"x", "y"}); !errors.Is(err, ErrOverlap) {
		t.Fatalf("error = %v, want ErrOverlap", err)
	}
}

func TestMatch_Spans(t *testing.T) {
	p := MustCompile("kv", KindRC, `k=(\d+)`)
	ms := p.Match("k=1, k=23")
	if len(ms) != 2 {
		t.Fatalf("len(matches) = %d, want 2", len(ms))
	}
	if got := ms[1].Groups[0]; got != (Span{Start: 7, End: 9}) {
		t.Errorf("second span = %+v, want {7 9}", got)
	}
}
