package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/ayuferov/grt/internal/utils"
)

func writeConfigFile(t *testing.T, directory string, content string) string {
	t.Helper()
	configPath := filepath.Join(directory, utils.ConfigFileName)
	if writeError := os.WriteFile(configPath, []byte(content), 0o600); writeError != nil {
		t.Fatalf("write config: %v", writeError)
	}
	return configPath
}

func TestLoadApplicationConfigurationMissingFileYieldsZeroValue(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	configuration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: t.TempDir()})
	if loadError != nil {
		t.Fatalf("load: %v", loadError)
	}
	if !reflect.DeepEqual(configuration, ApplicationConfiguration{}) {
		t.Fatalf("expected zero configuration, got %+v", configuration)
	}
}

func TestLoadApplicationConfigurationReadsLocalFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workingDirectory := t.TempDir()
	writeConfigFile(t, workingDirectory, `tree:
  format: json
  depth: 3
  exclude: ["dist/", "*.min.js"]
  tokens:
    enabled: true
    model: gpt-4o
copy:
  max_size: 5M
  zip: true
`)

	configuration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		t.Fatalf("load: %v", loadError)
	}

	if configuration.Tree.Format != "json" {
		t.Fatalf("expected tree format json, got %q", configuration.Tree.Format)
	}
	if configuration.Tree.Depth == nil || *configuration.Tree.Depth != 3 {
		t.Fatalf("expected tree depth 3, got %v", configuration.Tree.Depth)
	}
	if !reflect.DeepEqual(configuration.Tree.Exclude, []string{"dist/", "*.min.js"}) {
		t.Fatalf("unexpected tree excludes: %v", configuration.Tree.Exclude)
	}
	if configuration.Tree.Tokens.Enabled == nil || !*configuration.Tree.Tokens.Enabled {
		t.Fatal("expected tokens enabled")
	}
	if configuration.Copy.MaxSize != "5M" {
		t.Fatalf("expected copy max size 5M, got %q", configuration.Copy.MaxSize)
	}
	if configuration.Copy.Zip == nil || !*configuration.Copy.Zip {
		t.Fatal("expected copy zip enabled")
	}
}

func TestLoadApplicationConfigurationLocalOverridesGlobal(t *testing.T) {
	homeDirectory := t.TempDir()
	t.Setenv("HOME", homeDirectory)
	globalDirectory := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName)
	if makeError := os.MkdirAll(globalDirectory, 0o755); makeError != nil {
		t.Fatalf("mkdir global config dir: %v", makeError)
	}
	writeConfigFile(t, globalDirectory, `tree:
  format: json
  depth: 2
loc:
  format: json
`)

	workingDirectory := t.TempDir()
	writeConfigFile(t, workingDirectory, `tree:
  format: raw
`)

	configuration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		t.Fatalf("load: %v", loadError)
	}

	if configuration.Tree.Format != "raw" {
		t.Fatalf("local format must win, got %q", configuration.Tree.Format)
	}
	if configuration.Tree.Depth == nil || *configuration.Tree.Depth != 2 {
		t.Fatalf("global depth must survive, got %v", configuration.Tree.Depth)
	}
	if configuration.Loc.Format != "json" {
		t.Fatalf("global loc format must survive, got %q", configuration.Loc.Format)
	}
}

func TestLoadApplicationConfigurationExplicitPath(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workingDirectory := t.TempDir()
	explicitPath := filepath.Join(workingDirectory, "custom.yaml")
	if writeError := os.WriteFile(explicitPath, []byte("loc:\n  exclude: [\"vendor/\"]\n"), 0o600); writeError != nil {
		t.Fatalf("write config: %v", writeError)
	}

	configuration, loadError := LoadApplicationConfiguration(LoadOptions{
		WorkingDirectory: workingDirectory,
		ExplicitFilePath: "custom.yaml",
	})
	if loadError != nil {
		t.Fatalf("load: %v", loadError)
	}
	if !reflect.DeepEqual(configuration.Loc.Exclude, []string{"vendor/"}) {
		t.Fatalf("unexpected loc excludes: %v", configuration.Loc.Exclude)
	}
}

func TestMergeDeduplicatesExcludes(t *testing.T) {
	base := ApplicationConfiguration{}
	override := ApplicationConfiguration{
		Copy: CopyCommandConfiguration{Exclude: []string{"dist/", "dist/", "*.log"}},
	}
	merged := base.Merge(override)
	if !reflect.DeepEqual(merged.Copy.Exclude, []string{"dist/", "*.log"}) {
		t.Fatalf("unexpected merged excludes: %v", merged.Copy.Exclude)
	}
}

func TestInitializeConfigurationLocal(t *testing.T) {
	workingDirectory := t.TempDir()

	writtenPath, initError := InitializeConfiguration(InitOptions{Target: InitTargetLocal, WorkingDirectory: workingDirectory})
	if initError != nil {
		t.Fatalf("init: %v", initError)
	}
	if writtenPath != filepath.Join(workingDirectory, utils.ConfigFileName) {
		t.Fatalf("unexpected path: %s", writtenPath)
	}
	if _, statError := os.Stat(writtenPath); statError != nil {
		t.Fatalf("expected configuration file: %v", statError)
	}

	if _, secondError := InitializeConfiguration(InitOptions{Target: InitTargetLocal, WorkingDirectory: workingDirectory}); secondError == nil {
		t.Fatal("expected error without force when file exists")
	}
	if _, forcedError := InitializeConfiguration(InitOptions{Target: InitTargetLocal, WorkingDirectory: workingDirectory, Force: true}); forcedError != nil {
		t.Fatalf("forced init: %v", forcedError)
	}
}

func TestInitializedTemplateLoadsCleanly(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	workingDirectory := t.TempDir()
	if _, initError := InitializeConfiguration(InitOptions{Target: InitTargetLocal, WorkingDirectory: workingDirectory}); initError != nil {
		t.Fatalf("init: %v", initError)
	}

	configuration, loadError := LoadApplicationConfiguration(LoadOptions{WorkingDirectory: workingDirectory})
	if loadError != nil {
		t.Fatalf("load: %v", loadError)
	}
	if configuration.Tree.Format != "raw" || configuration.Copy.MaxSize != "10M" {
		t.Fatalf("unexpected template defaults: %+v", configuration)
	}
}
