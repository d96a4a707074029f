// Package render formats reports, configuration and the pattern catalog
// for the terminal.
package render

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"whiskertint/color"
	"whiskertint/config"
	"whiskertint/model"
	"whiskertint/theme"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#9d87ae"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#c9c9c9"))
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7a7a7a"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#50fa7b"))
	missStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffb86c"))
)

// Swatch renders a small block filled with hex. Invalid colours render as
// a placeholder.
func Swatch(hex string) string {
	if err := color.ValidateHex(hex); err != nil {
		return mutedStyle.Render("[?]")
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("   ")
}

// Report renders one update report, one line per file and pattern.
func Report(r model.Report) string {
	var b strings.Builder

	title := r.Target
	if r.DryRun {
		title += " (dry run)"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	if len(r.Substitutions) == 0 {
		b.WriteString(mutedStyle.Render("  nothing to do"))
		b.WriteString("\n")
		return b.String()
	}

	for _, s := range r.Substitutions {
		status := okStyle.Render(fmt.Sprintf("%d", s.Count))
		if s.Count == 0 {
			status = missStyle.Render("no match")
		}
		fmt.Fprintf(&b, "  %-16s %-24s %s %s\n",
			s.Pattern,
			filepath.Base(s.File),
			status,
			mutedStyle.Render(s.Value),
		)
	}

	summary := fmt.Sprintf("  %d substituted", r.Total())
	if misses := len(r.Misses()); misses > 0 {
		b.WriteString(mutedStyle.Render(summary + ", "))
		b.WriteString(missStyle.Render(fmt.Sprintf("%d without a match", misses)))
	} else {
		b.WriteString(mutedStyle.Render(summary))
	}
	b.WriteString("\n")
	return b.String()
}

// Config renders the effective configuration with colour swatches.
func Config(cfg config.Config) string {
	var b strings.Builder

	source := cfg.Source
	if source == "" {
		source = "defaults"
	}
	b.WriteString(titleStyle.Render("configuration"))
	b.WriteString(mutedStyle.Render(" (" + source + ")"))
	b.WriteString("\n")

	rows := []struct {
		key, value, swatch string
	}{
		{"theme_path", cfg.ThemePath, ""},
		{"whisker_menu_path", cfg.WhiskerMenuPath, ""},
		{"whisker_menu_prefix", cfg.WhiskerMenuPrefix, ""},
		{"panel_path", cfg.PanelPath, ""},
		{"base_color", cfg.BaseColor, Swatch(cfg.BaseColor)},
		{"opacity", color.FormatAlpha(cfg.Opacity), ""},
		{"search_color", cfg.SearchColor, Swatch(cfg.SearchColor)},
		{"search_opacity", color.FormatAlpha(cfg.SearchOpacity), ""},
		{"logging.level", cfg.Logging.Level, ""},
		{"logging.format", cfg.Logging.Format, ""},
	}
	for _, row := range rows {
		fmt.Fprintf(&b, "  %s %s", keyStyle.Render(fmt.Sprintf("%-20s", row.key)), row.value)
		if row.swatch != "" {
			b.WriteString(" ")
			b.WriteString(row.swatch)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Patterns renders the catalog as a list of names, file kinds and
// descriptions. With exprs set each entry is followed by its expression.
func Patterns(patterns []*theme.Pattern, exprs bool) string {
	var b strings.Builder
	for _, p := range patterns {
		fmt.Fprintf(&b, "%s %s %s\n",
			titleStyle.Render(fmt.Sprintf("%-18s", p.Name)),
			keyStyle.Render(fmt.Sprintf("%-6s", p.Kind)),
			p.Description,
		)
		if exprs {
			b.WriteString("    ")
			b.WriteString(mutedStyle.Render(p.Expr()))
			b.WriteString("\n")
		}
	}
	return b.String()
}
