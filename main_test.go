package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cliTheme = `entry {
    border: 1px solid;
    padding: 5px;
    caret-color: #ffffff;
    border-radius: 3px;
    transition: all 0.3s;
    color: #ffffff;
    border-color: #444444;
    background-color: #333333;
}
`

func resetFlags() {
	configPath = ""
	generatePath = "config.toml"
	dryRun = false
	updateWhisker = false
	updateSearch = false
	updatePanel = false
	updateBorder = false
	updateAll = false
	showExprs = false
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func writeCLIConfig(t *testing.T, dir, base string) string {
	t.Helper()
	themePath := filepath.Join(dir, "gtk-dark.css")
	if err := os.WriteFile(themePath, []byte(cliTheme), 0o644); err != nil {
		t.Fatalf("write theme: %v", err)
	}
	cfgPath := filepath.Join(dir, "config.toml")
	content := "theme_path = '" + themePath + "'\n" +
		"whisker_menu_path = '" + dir + "'\n" +
		"panel_path = '" + filepath.Join(dir, "panel.xml") + "'\n" +
		"base_color = \"" + base + "\"\n" +
		"opacity = 0.5\n" +
		"[logging]\nlevel = \"error\"\n"
	if err := os.WriteFile(cfgPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return cfgPath
}

func TestSelectedTargets(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	if got := selectedTargets(); len(got) != 0 {
		t.Errorf("no flags selected %v", got)
	}

	updateBorder = true
	updateSearch = true
	got := selectedTargets()
	if len(got) != 2 || got[0] != "search" || got[1] != "border" {
		t.Errorf("selectedTargets() = %v, want [search border]", got)
	}

	updateAll = true
	if got := selectedTargets(); len(got) != 4 {
		t.Errorf("--update-all selected %v", got)
	}
}

func TestCLI_UpdateBorder(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeCLIConfig(t, dir, "#abcdef")

	out, err := execute(t, "--config", cfgPath, "--update-border")
	if err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	if !strings.Contains(out, "border-color") {
		t.Errorf("output missing report:\n%s", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "gtk-dark.css"))
	if err != nil {
		t.Fatalf("read theme: %v", err)
	}
	if !strings.Contains(string(data), "border-color: #abcdef;") {
		t.Errorf("theme not updated:\n%s", data)
	}
}

func TestCLI_DryRunLeavesFiles(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeCLIConfig(t, dir, "#abcdef")

	if out, err := execute(t, "--config", cfgPath, "--update-border", "--dry-run"); err != nil {
		t.Fatalf("execute: %v\n%s", err, out)
	}
	data, err := os.ReadFile(filepath.Join(dir, "gtk-dark.css"))
	if err != nil {
		t.Fatalf("read theme: %v", err)
	}
	if string(data) != cliTheme {
		t.Errorf("dry run changed theme:\n%s", data)
	}
}

func TestCLI_InvalidConfigFailsBeforeWriting(t *testing.T) {
	dir := t.TempDir()
	cfgPath := writeCLIConfig(t, dir, "#12")

	if _, err := execute(t, "--config", cfgPath, "--update-border"); err == nil {
		t.Fatal("expected validation error")
	}
	data, err := os.ReadFile(filepath.Join(dir, "gtk-dark.css"))
	if err != nil {
		t.Fatalf("read theme: %v", err)
	}
	if string(data) != cliTheme {
		t.Error("theme modified despite invalid config")
	}
}

func TestCLI_NoFlagsPrintsHelp(t *testing.T) {
	out, err := execute(t)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "--update-all") {
		t.Errorf("help not printed:\n%s", out)
	}
}

func TestCLI_ConfigGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	out, err := execute(t, "config", "generate", "--path", path)
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("output = %q", out)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config not written: %v", err)
	}

	if _, err := execute(t, "config", "generate", "--path", path); err == nil {
		t.Fatal("expected error when config exists")
	}
}

func TestCLI_Patterns(t *testing.T) {
	out, err := execute(t, "patterns")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "panel-rgba") || !strings.Contains(out, "menu-opacity") {
		t.Errorf("patterns output:\n%s", out)
	}
}

func TestCLI_PatternsByName(t *testing.T) {
	out, err := execute(t, "patterns", "--expr", "border-color")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(out, "border-color") || strings.Contains(out, "panel-rgba") {
		t.Errorf("patterns output:\n%s", out)
	}
	if !strings.Contains(out, "entry") {
		t.Errorf("expression not shown:\n%s", out)
	}

	if _, err := execute(t, "patterns", "dock"); err == nil {
		t.Fatal("expected error for unknown pattern")
	}
}
