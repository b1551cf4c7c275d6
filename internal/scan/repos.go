package scan

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/ayuferov/grt/internal/gitignore"
)

// Repository is a discovered Git working tree under a source root.
type Repository struct {
	Name string
	Path string
}

// DiscoverRepositories resolves the repositories to process. A root that is
// itself a working tree is returned alone (single-repository mode); otherwise
// its immediate children containing Git metadata are returned in name order,
// optionally restricted to the allow-list. A permission error while listing
// the root yields no repositories rather than failing.
func DiscoverRepositories(rootPath string, onlyNames []string) (bool, []Repository) {
	if gitignore.IsGitRepository(rootPath) {
		return true, []Repository{{Name: filepath.Base(rootPath), Path: rootPath}}
	}

	allowedNames := map[string]struct{}{}
	for _, repositoryName := range onlyNames {
		if repositoryName != "" {
			allowedNames[repositoryName] = struct{}{}
		}
	}

	directoryEntries, readError := os.ReadDir(rootPath)
	if readError != nil {
		return false, nil
	}

	var repositories []Repository
	for _, directoryEntry := range directoryEntries {
		if !directoryEntry.IsDir() {
			continue
		}
		entryPath := filepath.Join(rootPath, directoryEntry.Name())
		if !gitignore.IsGitRepository(entryPath) {
			continue
		}
		if len(allowedNames) > 0 {
			if _, allowed := allowedNames[directoryEntry.Name()]; !allowed {
				continue
			}
		}
		repositories = append(repositories, Repository{Name: directoryEntry.Name(), Path: entryPath})
	}
	sort.Slice(repositories, func(firstIndex, secondIndex int) bool {
		return repositories[firstIndex].Name < repositories[secondIndex].Name
	})
	return false, repositories
}
