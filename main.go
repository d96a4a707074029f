package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"whiskertint/config"
	"whiskertint/model"
	"whiskertint/render"
	"whiskertint/storage"
	"whiskertint/theme"
	"whiskertint/update"
)

var (
	configPath    string
	generatePath  string
	dryRun        bool
	updateWhisker bool
	updateSearch  bool
	updatePanel   bool
	updateBorder  bool
	updateAll     bool
	showExprs     bool
	appVersion    = "0.3.0"
)

var rootCmd = &cobra.Command{
	Use:   "whiskertint",
	Short: "whiskertint – colour and transparency for the XFCE Whisker Menu",
	Long: "whiskertint patches the GTK theme, the Whisker Menu rc files and the XFCE panel " +
		"configuration with a base colour, a search bar colour and their opacities.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  "Create and inspect the whiskertint configuration file.",
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a default configuration file",
	Long:  "Generate a default config.toml at --path (or in the current directory if not specified).",
	RunE:  runConfigGenerate,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	RunE:  runConfigShow,
}

var patternsCmd = &cobra.Command{
	Use:   "patterns [name...]",
	Short: "List the structural patterns used to locate values",
	RunE:  runPatterns,
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report which patterns match without writing any file",
	RunE:  runCheck,
}

func init() {
	rootCmd.Version = appVersion
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config.toml (default: ./config.toml, then the user config dir)")
	rootCmd.Flags().BoolVar(&updateWhisker, "update-whisker", false, "Update the Whisker Menu background and opacity")
	rootCmd.Flags().BoolVar(&updateSearch, "update-search", false, "Update the search bar colours")
	rootCmd.Flags().BoolVar(&updatePanel, "update-panel", false, "Update the panel background colour")
	rootCmd.Flags().BoolVar(&updateBorder, "update-border", false, "Update the menu border colour")
	rootCmd.Flags().BoolVar(&updateAll, "update-all", false, "Run every update in order")
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute substitutions without writing files")

	patternsCmd.Flags().BoolVar(&showExprs, "expr", false, "Show the regular expression of each pattern")

	configGenerateCmd.Flags().StringVar(&generatePath, "path", config.FileName, "Where to write the configuration file")
	configCmd.AddCommand(configGenerateCmd, configShowCmd)
	rootCmd.AddCommand(configCmd, patternsCmd, checkCmd)
}

// selectedTargets returns the targets chosen by flags in update order.
func selectedTargets() []update.Target {
	if updateAll {
		return update.AllTargets
	}
	chosen := map[update.Target]bool{
		update.Whisker: updateWhisker,
		update.Search:  updateSearch,
		update.Panel:   updatePanel,
		update.Border:  updateBorder,
	}
	var targets []update.Target
	for _, t := range update.AllTargets {
		if chosen[t] {
			targets = append(targets, t)
		}
	}
	return targets
}

// setup loads and validates configuration and builds the logger.
func setup() (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("load config: %w", err)
	}

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("initialize logger: %w", err)
	}

	if cfg.Source != "" {
		logger.Debug("configuration loaded", zap.String("source", cfg.Source))
	} else {
		logger.Warn("no configuration file found, using defaults")
	}

	if err := cfg.Validate(); err != nil {
		_ = logger.Sync()
		return config.Config{}, nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, logger, nil
}

func run(cmd *cobra.Command, args []string) error {
	targets := selectedTargets()
	if len(targets) == 0 {
		return cmd.Help()
	}
	return runTargets(cmd, targets, dryRun)
}

func runCheck(cmd *cobra.Command, args []string) error {
	return runTargets(cmd, update.AllTargets, true)
}

func runTargets(cmd *cobra.Command, targets []update.Target, dry bool) error {
	cfg, logger, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	updater := update.New(cfg, storage.New(dry), logger.Named("update"))
	runner := update.NewRunner(logger.Named("runner"))
	runner.AddTargets(updater, targets...)
	logger.Debug("running updates", zap.Int("count", runner.Len()), zap.Bool("dry_run", dry))

	out := cmd.OutOrStdout()
	runner.SetOnComplete(func(r model.Report) {
		fmt.Fprintln(out, render.Report(r))
	})

	_, err = runner.Run()
	return err
}

func runPatterns(cmd *cobra.Command, args []string) error {
	catalog := theme.NewCatalog()
	patterns := catalog.List()
	if len(args) > 0 {
		patterns = make([]*theme.Pattern, 0, len(args))
		for _, name := range args {
			p := catalog.Get(name)
			if p == nil {
				return fmt.Errorf("unknown pattern %q", name)
			}
			patterns = append(patterns, p)
		}
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Patterns(patterns, showExprs))
	return nil
}

func runConfigGenerate(cmd *cobra.Command, args []string) error {
	path, err := filepath.Abs(generatePath)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}
	if err := config.Generate(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Generated default config file: %s\n", path)
	return nil
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), render.Config(cfg))
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
