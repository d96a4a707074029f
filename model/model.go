package model

// Substitution records how many anchors one pattern rewrote in one file.
type Substitution struct {
	File    string `json:"file"`
	Pattern string `json:"pattern"`
	Count   int    `json:"count"`
	Value   string `json:"value"`
}

// Report collects the substitutions of one updater.
type Report struct {
	Target        string         `json:"target"`
	DryRun        bool           `json:"dry_run,omitempty"`
	Substitutions []Substitution `json:"substitutions"`
}

// Add appends a substitution to the report.
func (r *Report) Add(file, pattern, value string, count int) {
	r.Substitutions = append(r.Substitutions, Substitution{
		File:    file,
		Pattern: pattern,
		Count:   count,
		Value:   value,
	})
}

// Total returns the number of anchors rewritten across all files.
func (r Report) Total() int {
	n := 0
	for _, s := range r.Substitutions {
		n += s.Count
	}
	return n
}

// Misses returns the substitutions whose anchor never matched.
func (r Report) Misses() []Substitution {
	var out []Substitution
	for _, s := range r.Substitutions {
		if s.Count == 0 {
			out = append(out, s)
		}
	}
	return out
}
