package catalog_test

import (
	"testing"

	"github.com/ayuferov/grt/internal/catalog"
)

func TestShouldPruneDirectory(t *testing.T) {
	defaultCatalog := catalog.Default()
	testCases := []struct {
		name          string
		directoryName string
		expected      bool
	}{
		{name: "node_modules", directoryName: "node_modules", expected: true},
		{name: "git metadata", directoryName: ".git", expected: true},
		{name: "egg info glob", directoryName: "grt.egg-info", expected: true},
		{name: "pycache", directoryName: "__pycache__", expected: true},
		{name: "source directory", directoryName: "src", expected: false},
		{name: "dotfile directory", directoryName: ".github", expected: false},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := defaultCatalog.ShouldPruneDirectory(testCase.directoryName)
			if result != testCase.expected {
				t.Fatalf("ShouldPruneDirectory(%q) = %v, want %v", testCase.directoryName, result, testCase.expected)
			}
		})
	}
}

func TestShouldExcludeFileAndPreserve(t *testing.T) {
	defaultCatalog := catalog.Default()

	if !defaultCatalog.ShouldExcludeFile("debug.log") {
		t.Fatal("expected debug.log to match default exclusions")
	}
	if defaultCatalog.ShouldExcludeFile("main.go") {
		t.Fatal("main.go must not match default exclusions")
	}
	if !defaultCatalog.ShouldPreserve(".env.local") {
		t.Fatal("expected .env.local to be preserved")
	}
	if !defaultCatalog.ShouldPreserve(".gitignore") {
		t.Fatal("expected .gitignore to be preserved")
	}
	if defaultCatalog.ShouldPreserve("settings.json") {
		t.Fatal("settings.json must not be preserved")
	}
}

func TestParseOverlayRoutesTrailingSeparatorToDirectories(t *testing.T) {
	overlay := catalog.ParseOverlay([]string{"coverage/", "*.snap", " ", "tmp/"})
	if len(overlay.DirectoryPatterns) != 2 || overlay.DirectoryPatterns[0] != "coverage" || overlay.DirectoryPatterns[1] != "tmp" {
		t.Fatalf("unexpected directory patterns: %v", overlay.DirectoryPatterns)
	}
	if len(overlay.FilePatterns) != 1 || overlay.FilePatterns[0] != "*.snap" {
		t.Fatalf("unexpected file patterns: %v", overlay.FilePatterns)
	}
}

func TestOverlayExtendsWithoutReplacing(t *testing.T) {
	combined := catalog.New(catalog.ParseOverlay([]string{"coverage/", "*.snap"}))

	if !combined.ShouldPruneDirectory("coverage") {
		t.Fatal("overlay directory pattern not applied")
	}
	if !combined.ShouldPruneDirectory("node_modules") {
		t.Fatal("default prune list must survive overlay")
	}
	if !combined.ShouldExcludeFile("app.snap") {
		t.Fatal("overlay file pattern not applied")
	}
	if !combined.ShouldExcludeFile("trace.log") {
		t.Fatal("default exclude list must survive overlay")
	}
}

func TestIncludeGitRemovesGitFromPruneList(t *testing.T) {
	withGit := catalog.New(catalog.Overlay{IncludeGit: true})
	if withGit.ShouldPruneDirectory(".git") {
		t.Fatal(".git must not be pruned when IncludeGit is set")
	}
	if !withGit.ShouldPruneDirectory("node_modules") {
		t.Fatal("other prune patterns must remain active")
	}
}
