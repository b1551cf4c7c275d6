package scan

import (
	"strings"

	"github.com/ayuferov/grt/internal/catalog"
)

// FilterVariant selects the mutually exclusive content filter a consumer
// applies on top of ignore resolution.
type FilterVariant int

const (
	// FilterNone keeps every candidate that survives ignore resolution.
	FilterNone FilterVariant = iota
	// FilterExtensions keeps only files whose extension is in the allow-list.
	FilterExtensions
	// FilterEnvOnly keeps only local environment configuration files.
	FilterEnvOnly
)

// Policy describes how a consumer turns a scan result into its visible set.
// Policies are passed by value and never mutated by the engine.
type Policy struct {
	RawMode       bool
	MaxDepth      int
	ExtraExcludes []string
	IncludeGit    bool

	Filter FilterVariant
	// Extensions is the case-insensitive allow-list, without dots. Used only
	// with FilterExtensions.
	Extensions []string

	// MaxFileSize excludes files above the threshold; zero means unlimited.
	MaxFileSize int64
	// SkipSymlinks drops symbolic links from the visible set.
	SkipSymlinks bool
	// ApplyDefaultExcludes applies the catalog's default-exclude file globs.
	ApplyDefaultExcludes bool
	// ApplyPreserve lets preserve globs override exclusion and ignore verdicts.
	ApplyPreserve bool
	// ForceIncludeRootGitignore keeps the root .gitignore visible regardless
	// of its own exclude status.
	ForceIncludeRootGitignore bool
}

// DefaultPolicy returns the unlimited-depth policy with no content filter.
func DefaultPolicy() Policy {
	return Policy{MaxDepth: -1}
}

// VisibleSet is the final result of a scan under a policy: membership is the
// only contract. It is built once and never mutated afterwards.
type VisibleSet struct {
	// Members maps candidate keys (directories carry a trailing separator)
	// to their candidates.
	Members map[string]Candidate
	// SkippedForSize counts files excluded by the size ceiling.
	SkippedForSize int
	// SymlinksSkipped counts symbolic links dropped by the policy.
	SymlinksSkipped int
	// PreservedFiles lists file keys kept only because of a preserve override.
	PreservedFiles []string
	// Interrupted marks a partial result produced by a cancelled scan.
	Interrupted bool
}

// Contains reports membership of a candidate key.
func (visibleSet VisibleSet) Contains(key string) bool {
	_, present := visibleSet.Members[key]
	return present
}

// Files returns the file candidates of the set in no particular order.
func (visibleSet VisibleSet) Files() []Candidate {
	files := make([]Candidate, 0, len(visibleSet.Members))
	for _, candidate := range visibleSet.Members {
		if !candidate.IsDirectory {
			files = append(files, candidate)
		}
	}
	return files
}

// Keys returns every member key in no particular order.
func (visibleSet VisibleSet) Keys() []string {
	keys := make([]string, 0, len(visibleSet.Members))
	for key := range visibleSet.Members {
		keys = append(keys, key)
	}
	return keys
}

// ApplyPolicy subtracts the ignored set and applies the policy's filters to
// produce the visible path set. A member was never eagerly pruned and was not
// resolved as ignored unless preserve-overridden; an absent path was excluded
// by exactly one of eager pruning, ignore resolution, a policy filter, or
// symlink exclusion.
func ApplyPolicy(result Result, policy Policy) VisibleSet {
	overlay := catalog.ParseOverlay(policy.ExtraExcludes)
	overlay.IncludeGit = policy.IncludeGit
	patternCatalog := catalog.New(overlay)

	visibleSet := VisibleSet{
		Members:     make(map[string]Candidate, len(result.Candidates)),
		Interrupted: result.Interrupted,
	}

	for _, candidate := range result.Candidates {
		if policy.SkipSymlinks && candidate.IsSymlink {
			visibleSet.SymlinksSkipped++
			continue
		}
		if candidate.IsDirectory {
			visibleSet.Members[candidate.Key()] = candidate
			continue
		}
		if policy.MaxFileSize > 0 && candidate.SizeBytes > policy.MaxFileSize {
			visibleSet.SkippedForSize++
			continue
		}
		if policy.RawMode {
			visibleSet.Members[candidate.Key()] = candidate
			continue
		}
		if !matchesVariantFilter(candidate, policy) {
			continue
		}

		preserved := policy.ApplyPreserve && patternCatalog.ShouldPreserve(candidate.Name)
		excluded := result.Ignored.Contains(candidate.RelativePath)
		if !excluded && policy.ApplyDefaultExcludes && patternCatalog.ShouldExcludeFile(candidate.Name) {
			excluded = true
		}
		if excluded && !preserved {
			continue
		}
		if excluded && preserved {
			visibleSet.PreservedFiles = append(visibleSet.PreservedFiles, candidate.Key())
		}
		visibleSet.Members[candidate.Key()] = candidate
	}

	dropEmptiedDirectories(result, &visibleSet)

	if policy.ForceIncludeRootGitignore {
		for _, candidate := range result.Candidates {
			if candidate.RelativePath == ".gitignore" && !candidate.IsDirectory {
				visibleSet.Members[candidate.Key()] = candidate
				break
			}
		}
	}

	return visibleSet
}

// dropEmptiedDirectories infers directory ignore status from the files: a
// directory that had file candidates beneath it but kept none of them was
// emptied by ignore resolution or exclusion and is hidden. Directories that
// were empty on disk stay visible.
func dropEmptiedDirectories(result Result, visibleSet *VisibleSet) {
	fileCandidatesBeneath := map[string]struct{}{}
	for _, candidate := range result.Candidates {
		if candidate.IsDirectory {
			continue
		}
		for _, ancestorKey := range ancestorDirectoryKeys(candidate.RelativePath) {
			fileCandidatesBeneath[ancestorKey] = struct{}{}
		}
	}

	visibleFilesBeneath := map[string]struct{}{}
	for _, member := range visibleSet.Members {
		if member.IsDirectory {
			continue
		}
		for _, ancestorKey := range ancestorDirectoryKeys(member.RelativePath) {
			visibleFilesBeneath[ancestorKey] = struct{}{}
		}
	}

	droppedDirectories := map[string]struct{}{}
	for memberKey, member := range visibleSet.Members {
		if !member.IsDirectory {
			continue
		}
		if _, hadFiles := fileCandidatesBeneath[memberKey]; !hadFiles {
			continue
		}
		if _, keptFiles := visibleFilesBeneath[memberKey]; !keptFiles {
			droppedDirectories[memberKey] = struct{}{}
			delete(visibleSet.Members, memberKey)
		}
	}

	// Directories inside a hidden directory are hidden with it, even when
	// empty on disk themselves.
	for memberKey, member := range visibleSet.Members {
		if !member.IsDirectory {
			continue
		}
		for _, ancestorKey := range ancestorDirectoryKeys(memberKey[:len(memberKey)-1]) {
			if _, hidden := droppedDirectories[ancestorKey]; hidden {
				delete(visibleSet.Members, memberKey)
				break
			}
		}
	}
}

// ancestorDirectoryKeys lists the directory keys containing a slash-relative
// file path, outermost first.
func ancestorDirectoryKeys(relativePath string) []string {
	var directoryKeys []string
	for position, character := range relativePath {
		if character == '/' {
			directoryKeys = append(directoryKeys, relativePath[:position+1])
		}
	}
	return directoryKeys
}

// matchesVariantFilter applies the policy's tagged content filter.
func matchesVariantFilter(candidate Candidate, policy Policy) bool {
	switch policy.Filter {
	case FilterExtensions:
		extension := strings.ToLower(strings.TrimPrefix(fileExtension(candidate.Name), "."))
		for _, allowedExtension := range policy.Extensions {
			if extension == strings.ToLower(allowedExtension) {
				return true
			}
		}
		return false
	case FilterEnvOnly:
		return catalog.MatchesEnvPattern(candidate.Name)
	default:
		return true
	}
}

// fileExtension returns the trailing extension with its dot. A leading-dot
// filename such as .env has no extension.
func fileExtension(fileName string) string {
	dotIndex := strings.LastIndex(fileName, ".")
	if dotIndex <= 0 {
		return ""
	}
	return fileName[dotIndex:]
}
