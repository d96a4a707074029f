// Package update applies the configured colours to the GTK theme, the
// Whisker Menu .rc files and the XFCE panel channel file.
package update

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"whiskertint/color"
	"whiskertint/config"
	"whiskertint/model"
	"whiskertint/storage"
	"whiskertint/theme"
)

// Alpha values of the two theme layers behind the Whisker Menu. The menu's
// visible transparency comes from menu-opacity in the .rc files.
const (
	baseLayerAlpha = 0.99
	listLayerAlpha = 0
)

// Target names one updater.
type Target string

const (
	Whisker Target = "whisker"
	Search  Target = "search"
	Panel   Target = "panel"
	Border  Target = "border"
)

// AllTargets lists every target in the order --update-all runs them.
var AllTargets = []Target{Whisker, Search, Panel, Border}

// Updater rewrites theme files from a validated configuration.
type Updater struct {
	cfg     config.Config
	files   *storage.Files
	catalog *theme.Catalog
	log     *zap.Logger
}

// New creates an Updater. cfg must already have passed Validate.
func New(cfg config.Config, files *storage.Files, log *zap.Logger) *Updater {
	if log == nil {
		log = zap.NewNop()
	}
	return &Updater{
		cfg:     cfg,
		files:   files,
		catalog: theme.NewCatalog(),
		log:     log,
	}
}

// Run dispatches to the updater for t.
func (u *Updater) Run(t Target) (model.Report, error) {
	switch t {
	case Whisker:
		return u.WhiskerMenu()
	case Search:
		return u.SearchBar()
	case Panel:
		return u.Panel()
	case Border:
		return u.Border()
	default:
		return model.Report{}, fmt.Errorf("unknown update target %q", t)
	}
}

// WhiskerMenu sets the menu background layers in the theme file and the
// menu-opacity property of every numbered Whisker Menu .rc file.
func (u *Updater) WhiskerMenu() (model.Report, error) {
	report := u.newReport(Whisker)

	baseText, err := color.RGBAText(u.cfg.BaseColor, baseLayerAlpha)
	if err != nil {
		return report, err
	}
	listText, err := color.RGBAText(u.cfg.BaseColor, listLayerAlpha)
	if err != nil {
		return report, err
	}
	percent, err := color.Percent(u.cfg.Opacity)
	if err != nil {
		return report, err
	}

	if err := u.patchFile(&report, u.cfg.ThemePath,
		step{theme.BaseMenu, []string{baseText}},
		step{theme.MenuList, []string{listText}},
	); err != nil {
		return report, err
	}

	paths, err := u.files.ListNumbered(u.cfg.WhiskerMenuPath, u.cfg.WhiskerMenuPrefix)
	if err != nil {
		return report, fmt.Errorf("list whisker menu files in %s: %w", u.cfg.WhiskerMenuPath, err)
	}
	if len(paths) == 0 {
		u.log.Warn("no whisker menu rc files found",
			zap.String("dir", u.cfg.WhiskerMenuPath),
			zap.String("prefix", u.cfg.WhiskerMenuPrefix),
		)
	}

	value := strconv.Itoa(percent)
	for _, path := range paths {
		if err := u.patchFile(&report, path, step{theme.MenuOpacity, []string{value}}); err != nil {
			return report, err
		}
	}

	return report, nil
}

// SearchBar sets the focused and unfocused search entry backgrounds.
func (u *Updater) SearchBar() (model.Report, error) {
	report := u.newReport(Search)

	text, err := color.RGBAText(u.cfg.SearchColor, u.cfg.SearchOpacity)
	if err != nil {
		return report, err
	}

	err = u.patchFile(&report, u.cfg.ThemePath,
		step{theme.SearchFocused, []string{text}},
		step{theme.SearchUnfocused, []string{text}},
	)
	return report, err
}

// Panel writes the normalized base colour into the panel background-rgba.
func (u *Updater) Panel() (model.Report, error) {
	report := u.newReport(Panel)

	rgba, err := color.NormalizedRGBA(u.cfg.BaseColor, u.cfg.Opacity)
	if err != nil {
		return report, err
	}

	err = u.patchFile(&report, u.cfg.PanelPath,
		step{theme.PanelRGBA, color.FormatComponents(rgba)},
	)
	return report, err
}

// Border sets the menu border colour to the base colour as written.
func (u *Updater) Border() (model.Report, error) {
	report := u.newReport(Border)

	if err := color.ValidateHex(u.cfg.BaseColor); err != nil {
		return report, err
	}

	err := u.patchFile(&report, u.cfg.ThemePath,
		step{theme.BorderColor, []string{u.cfg.BaseColor}},
	)
	return report, err
}

func (u *Updater) newReport(t Target) model.Report {
	return model.Report{Target: string(t), DryRun: u.files.DryRun()}
}

type step struct {
	pattern string
	values  []string
}

// patchFile applies steps to path in order. The file is written only when
// at least one anchor matched.
func (u *Updater) patchFile(report *model.Report, path string, steps ...step) error {
	content, err := u.files.ReadText(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}

	total := 0
	for _, s := range steps {
		res, err := u.catalog.MustGet(s.pattern).Replace(content, s.values...)
		if err != nil {
			return fmt.Errorf("apply %s to %s: %w", s.pattern, path, err)
		}
		content = res.Text
		total += res.Count

		value := strings.Join(s.values, ", ")
		report.Add(path, s.pattern, value, res.Count)
		if res.Count == 0 {
			u.log.Warn("pattern did not match",
				zap.String("pattern", s.pattern),
				zap.String("file", path),
			)
			continue
		}
		u.log.Debug("pattern applied",
			zap.String("pattern", s.pattern),
			zap.String("file", path),
			zap.Int("count", res.Count),
			zap.String("value", value),
		)
	}

	if total == 0 {
		return nil
	}
	if err := u.files.WriteText(path, content); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	u.log.Info("file updated",
		zap.String("file", path),
		zap.Int("substitutions", total),
		zap.Bool("dry_run", u.files.DryRun()),
	)
	return nil
}
