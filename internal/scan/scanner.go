// Package scan implements the two-phase hybrid scanning strategy shared by
// every command: phase 1 walks the tree once with eager structural pruning,
// phase 2 hands the surviving file candidates to the ignore resolver. The
// policy layer in this package turns a scan result into the final visible
// path set for a particular consumer.
package scan

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/ayuferov/grt/internal/catalog"
	"github.com/ayuferov/grt/internal/gitignore"
)

// Candidate is a path relative to the scan root, produced during the walk
// before ignore filtering. Directory keys carry a trailing separator so a
// directory is distinguishable from a same-named file.
type Candidate struct {
	RelativePath string
	Name         string
	IsDirectory  bool
	IsSymlink    bool
	SizeBytes    int64
}

// Key returns the set key for the candidate, with the directory marker.
func (candidate Candidate) Key() string {
	if candidate.IsDirectory {
		return candidate.RelativePath + "/"
	}
	return candidate.RelativePath
}

// AbsolutePath joins the candidate onto the given scan root.
func (candidate Candidate) AbsolutePath(rootPath string) string {
	return filepath.Join(rootPath, filepath.FromSlash(candidate.RelativePath))
}

// Options configures a single scan invocation.
type Options struct {
	// Root is the directory to scan. Must exist.
	Root string
	// RawMode disables eager pruning and ignore resolution. The .git
	// directory is still listed without recursing into it unless IncludeGit
	// is set.
	RawMode bool
	// MaxDepth stops descent at the given depth; negative means unlimited.
	// Directories at the boundary are listed but not explored.
	MaxDepth int
	// ExtraExcludes extends the catalog; a trailing separator routes a
	// pattern to the directory list.
	ExtraExcludes []string
	// IncludeGit keeps .git out of the prune list.
	IncludeGit bool
	// Resolver overrides ignore resolution; nil selects the default hybrid
	// resolver for Root.
	Resolver gitignore.Resolver
	// SkipResolution omits phase 2 entirely, leaving the ignored set empty.
	// For consumers whose policy never consults ignore verdicts.
	SkipResolution bool
	// CountPruned walks eagerly pruned subtrees once to count the files they
	// discard, for summary reporting only.
	CountPruned bool
	// Progress, when set, is invoked once per visited entry. UI feedback
	// only, no control semantics.
	Progress func(relativePath string)
	// Warn, when set, receives non-fatal walk errors.
	Warn func(path string, walkError error)
}

// Result is the output of a scan: the surviving candidates in walk order,
// the resolver's ignored subset keyed by candidate key, per-directory pruned
// file counts, and whether the scan was interrupted.
type Result struct {
	Root         string
	Candidates   []Candidate
	Ignored      gitignore.PathSet
	PrunedCounts map[string]int
	Interrupted  bool
}

// Scan walks the tree once and resolves ignore status for the surviving
// files. Permission errors skip the affected subtree. Cancellation of the
// context stops the walk at the next entry and marks the result interrupted.
func Scan(executionContext context.Context, options Options) (Result, error) {
	absoluteRoot, absolutePathError := filepath.Abs(options.Root)
	if absolutePathError != nil {
		return Result{}, absolutePathError
	}

	patternCatalog := catalog.New(overlayFromOptions(options))
	result := Result{
		Root:         absoluteRoot,
		Ignored:      gitignore.PathSet{},
		PrunedCounts: map[string]int{},
	}
	if options.MaxDepth == 0 {
		// Depth zero stops descent at the root itself.
		return result, nil
	}

	walkError := filepath.WalkDir(absoluteRoot, func(currentPath string, directoryEntry fs.DirEntry, entryError error) error {
		if executionContext.Err() != nil {
			result.Interrupted = true
			return filepath.SkipAll
		}
		if entryError != nil {
			if options.Warn != nil {
				options.Warn(currentPath, entryError)
			}
			if directoryEntry != nil && directoryEntry.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if currentPath == absoluteRoot {
			return nil
		}

		relativePath := relativeSlashPath(absoluteRoot, currentPath)
		if options.Progress != nil {
			options.Progress(relativePath)
		}

		if directoryEntry.IsDir() {
			return visitDirectory(&result, options, patternCatalog, currentPath, relativePath, directoryEntry)
		}

		candidate := Candidate{
			RelativePath: relativePath,
			Name:         directoryEntry.Name(),
			IsSymlink:    directoryEntry.Type()&fs.ModeSymlink != 0,
		}
		if entryInfo, infoError := directoryEntry.Info(); infoError == nil {
			candidate.SizeBytes = entryInfo.Size()
		}
		result.Candidates = append(result.Candidates, candidate)
		return nil
	})
	if walkError != nil {
		return result, walkError
	}
	if result.Interrupted {
		return result, nil
	}

	if !options.RawMode && !options.SkipResolution {
		resolveIgnoredFiles(executionContext, options, &result)
	}
	return result, nil
}

// visitDirectory applies eager pruning and depth limiting before descent.
func visitDirectory(result *Result, options Options, patternCatalog catalog.Catalog, currentPath string, relativePath string, directoryEntry fs.DirEntry) error {
	directoryName := directoryEntry.Name()

	if options.RawMode {
		// Raw mode lists everything, with one hard structural exclusion:
		// the .git subtree is listed but never entered unless requested.
		if directoryName == ".git" && !options.IncludeGit {
			result.Candidates = append(result.Candidates, Candidate{RelativePath: relativePath, Name: directoryName, IsDirectory: true})
			return filepath.SkipDir
		}
	} else if patternCatalog.ShouldPruneDirectory(directoryName) {
		if options.CountPruned {
			result.PrunedCounts[directoryName] += countFilesUnder(currentPath)
		} else if _, seen := result.PrunedCounts[directoryName]; !seen {
			result.PrunedCounts[directoryName] = 0
		}
		return filepath.SkipDir
	}

	result.Candidates = append(result.Candidates, Candidate{RelativePath: relativePath, Name: directoryName, IsDirectory: true})

	depth := strings.Count(relativePath, "/") + 1
	if options.MaxDepth >= 0 && depth >= options.MaxDepth {
		return filepath.SkipDir
	}
	return nil
}

// resolveIgnoredFiles runs phase 2: only file candidates are submitted, per
// the resolver contract; directory ignore status is inferred downstream from
// their files being absent.
func resolveIgnoredFiles(executionContext context.Context, options Options, result *Result) {
	filePaths := make([]string, 0, len(result.Candidates))
	for _, candidate := range result.Candidates {
		if !candidate.IsDirectory {
			filePaths = append(filePaths, candidate.RelativePath)
		}
	}
	if len(filePaths) == 0 {
		return
	}
	resolver := options.Resolver
	if resolver == nil {
		resolver = gitignore.NewResolver(result.Root)
	}
	result.Ignored = resolver.ResolveIgnored(executionContext, filePaths)
	if executionContext.Err() != nil {
		result.Interrupted = true
	}
}

func overlayFromOptions(options Options) catalog.Overlay {
	overlay := catalog.ParseOverlay(options.ExtraExcludes)
	overlay.IncludeGit = options.IncludeGit
	return overlay
}

// countFilesUnder counts files in a pruned subtree for reporting. Errors are
// ignored; the count is informational.
func countFilesUnder(directoryPath string) int {
	fileCount := 0
	_ = filepath.WalkDir(directoryPath, func(_ string, directoryEntry fs.DirEntry, entryError error) error {
		if entryError != nil {
			return nil
		}
		if !directoryEntry.IsDir() {
			fileCount++
		}
		return nil
	})
	return fileCount
}

func relativeSlashPath(rootPath string, fullPath string) string {
	relativePath, relativeError := filepath.Rel(rootPath, fullPath)
	if relativeError != nil {
		return filepath.ToSlash(filepath.Clean(fullPath))
	}
	return filepath.ToSlash(relativePath)
}
