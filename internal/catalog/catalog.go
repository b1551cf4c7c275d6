// Package catalog holds the static classification data used by the scanner:
// directory names that are always eagerly pruned, file globs excluded by
// default, and filename globs preserved even when other rules would hide them.
package catalog

import (
	"path/filepath"
	"strings"
)

// defaultPruneDirectoryPatterns lists directory-name globs that are removed
// from traversal before descent. A pruned subtree is never walked.
var defaultPruneDirectoryPatterns = []string{
	// Version control
	".git",
	".svn",
	".hg",
	// IDEs
	".idea",
	".vscode",
	// Python
	"__pycache__",
	".pytest_cache",
	".mypy_cache",
	".ruff_cache",
	"venv",
	".venv",
	"env",
	".tox",
	".nox",
	"*.egg-info",
	// Node / web
	"node_modules",
	"bower_components",
	".next",
	".nuxt",
	".output",
	".cache",
	// Build artifacts
	"dist",
	"build",
	"target",
	"bin",
	"obj",
	"out",
	".parcel-cache",
	// Misc
	".DS_Store",
	"Thumbs.db",
	".turbo",
}

// defaultExcludeFilePatterns lists filename globs excluded independently of
// ignore resolution.
var defaultExcludeFilePatterns = []string{
	"*.log",
	"*.tmp",
	"*.temp",
	"*.bak",
	"*.swp",
	"*.pyc",
	"*.pyo",
	"*.class",
	"*.dll",
	"*.exe",
	"*.o",
	"*.so",
	"*.dylib",
}

// defaultPreservePatterns lists filename globs kept visible even when a
// default exclusion or ignore resolution would hide them. Preservation does
// not rescue files inside eagerly pruned directories.
var defaultPreservePatterns = []string{
	".env",
	".env.*",
	".gitignore",
}

// EnvFilePatterns matches local environment configuration files. Used by the
// copier's env-only filter.
var EnvFilePatterns = []string{
	".env",
	".env.*",
	"*.env",
}

// Catalog is an immutable set of pattern lists combined once per scan.
type Catalog struct {
	pruneDirectoryPatterns []string
	excludeFilePatterns    []string
	preservePatterns       []string
}

// Overlay carries user-supplied pattern additions applied on top of the
// default catalog.
type Overlay struct {
	DirectoryPatterns []string
	FilePatterns      []string
	IncludeGit        bool
}

// ParseOverlay splits raw user exclusion patterns into directory and file
// additions. A trailing separator routes a pattern to the directory list.
func ParseOverlay(rawPatterns []string) Overlay {
	var overlay Overlay
	for _, rawPattern := range rawPatterns {
		trimmedPattern := strings.TrimSpace(rawPattern)
		if trimmedPattern == "" {
			continue
		}
		if strings.HasSuffix(trimmedPattern, "/") {
			overlay.DirectoryPatterns = append(overlay.DirectoryPatterns, strings.TrimSuffix(trimmedPattern, "/"))
			continue
		}
		overlay.FilePatterns = append(overlay.FilePatterns, trimmedPattern)
	}
	return overlay
}

// Default returns the base catalog without user additions.
func Default() Catalog {
	return New(Overlay{})
}

// New combines the default pattern lists with the provided overlay into an
// immutable catalog. IncludeGit removes the .git directory from the prune
// list so repository metadata survives the walk.
func New(overlay Overlay) Catalog {
	pruneDirectories := make([]string, 0, len(defaultPruneDirectoryPatterns)+len(overlay.DirectoryPatterns))
	for _, patternValue := range defaultPruneDirectoryPatterns {
		if overlay.IncludeGit && patternValue == ".git" {
			continue
		}
		pruneDirectories = append(pruneDirectories, patternValue)
	}
	pruneDirectories = append(pruneDirectories, overlay.DirectoryPatterns...)

	excludeFiles := make([]string, 0, len(defaultExcludeFilePatterns)+len(overlay.FilePatterns))
	excludeFiles = append(excludeFiles, defaultExcludeFilePatterns...)
	excludeFiles = append(excludeFiles, overlay.FilePatterns...)

	preservePatterns := make([]string, len(defaultPreservePatterns))
	copy(preservePatterns, defaultPreservePatterns)

	return Catalog{
		pruneDirectoryPatterns: pruneDirectories,
		excludeFilePatterns:    excludeFiles,
		preservePatterns:       preservePatterns,
	}
}

// ShouldPruneDirectory reports whether a bare directory name matches an
// eager-prune pattern.
func (catalogValue Catalog) ShouldPruneDirectory(directoryName string) bool {
	return matchesAny(directoryName, catalogValue.pruneDirectoryPatterns)
}

// ShouldExcludeFile reports whether a bare filename matches a default-exclude
// pattern.
func (catalogValue Catalog) ShouldExcludeFile(fileName string) bool {
	return matchesAny(fileName, catalogValue.excludeFilePatterns)
}

// ShouldPreserve reports whether a bare filename matches a preserve pattern.
func (catalogValue Catalog) ShouldPreserve(fileName string) bool {
	return matchesAny(fileName, catalogValue.preservePatterns)
}

// MatchesEnvPattern reports whether a bare filename matches an env-file pattern.
func MatchesEnvPattern(fileName string) bool {
	return matchesAny(fileName, EnvFilePatterns)
}

// matchesAny evaluates name against each glob with filepath.Match semantics.
// Malformed patterns never match.
func matchesAny(name string, patterns []string) bool {
	for _, patternValue := range patterns {
		if name == patternValue {
			return true
		}
		isMatched, matchError := filepath.Match(patternValue, name)
		if matchError == nil && isMatched {
			return true
		}
	}
	return false
}
