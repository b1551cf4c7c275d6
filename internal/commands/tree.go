// Package commands contains the engines behind the tree, loc, and copy
// commands. Each engine runs the shared scanner under its own policy and
// shapes the visible path set into command-specific results.
package commands

import (
	"context"
	"path"
	"sort"
	"strings"

	"github.com/ayuferov/grt/internal/scan"
	"github.com/ayuferov/grt/internal/tokenizer"
	"github.com/ayuferov/grt/internal/types"
	"github.com/ayuferov/grt/internal/utils"
)

// TreeBuilder produces directory tree data for a single root.
type TreeBuilder struct {
	RootPath      string
	RawMode       bool
	MaxDepth      int
	ExtraExcludes []string
	IncludeGit    bool
	TokenCounter  tokenizer.Counter
	Progress      func(relativePath string)
	Warn          func(path string, walkError error)
}

// treePolicy is the policy the tree command applies around the scanner.
func (builder *TreeBuilder) treePolicy() scan.Policy {
	return scan.Policy{
		RawMode:                   builder.RawMode,
		MaxDepth:                  builder.MaxDepth,
		ExtraExcludes:             builder.ExtraExcludes,
		IncludeGit:                builder.IncludeGit,
		ApplyDefaultExcludes:      true,
		ApplyPreserve:             true,
		ForceIncludeRootGitignore: true,
	}
}

// Scan runs the two-phase scan and returns the visible path set for the tree.
func (builder *TreeBuilder) Scan(executionContext context.Context) (scan.VisibleSet, error) {
	result, scanError := scan.Scan(executionContext, scan.Options{
		Root:          builder.RootPath,
		RawMode:       builder.RawMode,
		MaxDepth:      builder.MaxDepth,
		ExtraExcludes: builder.ExtraExcludes,
		IncludeGit:    builder.IncludeGit,
		Progress:      builder.Progress,
		Warn:          builder.Warn,
	})
	if scanError != nil {
		return scan.VisibleSet{}, scanError
	}
	return scan.ApplyPolicy(result, builder.treePolicy()), nil
}

// BuildTree assembles the visible set into a single root node. Intermediate
// directories implied by nested keys are materialized even when the set holds
// no explicit entry for them.
func (builder *TreeBuilder) BuildTree(visibleSet scan.VisibleSet) *types.TreeOutputNode {
	rootNode := &types.TreeOutputNode{
		Path: builder.RootPath,
		Name: path.Base(strings.ReplaceAll(builder.RootPath, "\\", "/")),
		Type: types.NodeTypeDirectory,
	}

	nodesByPath := map[string]*types.TreeOutputNode{"": rootNode}
	keys := visibleSet.Keys()
	sort.Strings(keys)

	for _, key := range keys {
		relativePath := strings.TrimSuffix(key, "/")
		parentNode := builder.ensureParents(nodesByPath, relativePath)

		node, alreadyPresent := nodesByPath[relativePath]
		if alreadyPresent {
			continue
		}
		candidate := visibleSet.Members[key]
		node = &types.TreeOutputNode{
			Path: relativePath,
			Name: path.Base(relativePath),
		}
		if candidate.IsDirectory {
			node.Type = types.NodeTypeDirectory
		} else {
			node.Type = types.NodeTypeFile
			node.SizeBytes = candidate.SizeBytes
			node.Size = utils.FormatFileSize(candidate.SizeBytes)
			if builder.TokenCounter != nil {
				if tokenCount, countError := tokenizer.CountFile(builder.TokenCounter, candidate.AbsolutePath(builder.RootPath)); countError == nil {
					node.Tokens = tokenCount
				}
			}
		}
		nodesByPath[relativePath] = node
		parentNode.Children = append(parentNode.Children, node)
	}

	sortTreeChildren(rootNode)
	applyTreeSummary(rootNode)
	return rootNode
}

// ensureParents materializes the chain of ancestor directory nodes for a key.
func (builder *TreeBuilder) ensureParents(nodesByPath map[string]*types.TreeOutputNode, relativePath string) *types.TreeOutputNode {
	parentPath := path.Dir(relativePath)
	if parentPath == "." {
		parentPath = ""
	}
	if parentNode, present := nodesByPath[parentPath]; present {
		return parentNode
	}
	grandparentNode := builder.ensureParents(nodesByPath, parentPath)
	parentNode := &types.TreeOutputNode{
		Path: parentPath,
		Name: path.Base(parentPath),
		Type: types.NodeTypeDirectory,
	}
	nodesByPath[parentPath] = parentNode
	grandparentNode.Children = append(grandparentNode.Children, parentNode)
	return parentNode
}

// sortTreeChildren orders children directories-first, then case-insensitively
// by name, recursively.
func sortTreeChildren(node *types.TreeOutputNode) {
	sort.SliceStable(node.Children, func(firstIndex, secondIndex int) bool {
		firstChild := node.Children[firstIndex]
		secondChild := node.Children[secondIndex]
		firstIsDirectory := firstChild.Type == types.NodeTypeDirectory
		secondIsDirectory := secondChild.Type == types.NodeTypeDirectory
		if firstIsDirectory != secondIsDirectory {
			return firstIsDirectory
		}
		return strings.ToLower(firstChild.Name) < strings.ToLower(secondChild.Name)
	})
	for _, childNode := range node.Children {
		if childNode.Type == types.NodeTypeDirectory {
			sortTreeChildren(childNode)
		}
	}
}

// applyTreeSummary aggregates file counts, bytes, and tokens bottom-up.
func applyTreeSummary(node *types.TreeOutputNode) (int, int64, int) {
	if node.Type == types.NodeTypeFile {
		return 1, node.SizeBytes, node.Tokens
	}
	var totalFiles int
	var totalBytes int64
	var totalTokens int
	for _, childNode := range node.Children {
		childFiles, childBytes, childTokens := applyTreeSummary(childNode)
		totalFiles += childFiles
		totalBytes += childBytes
		totalTokens += childTokens
	}
	node.TotalFiles = totalFiles
	node.TotalSize = utils.FormatFileSize(totalBytes)
	node.TotalTokens = totalTokens
	return totalFiles, totalBytes, totalTokens
}

// FlatList returns the visible keys sorted lexicographically, directories
// marked by their trailing separator.
func FlatList(visibleSet scan.VisibleSet) []string {
	keys := visibleSet.Keys()
	sort.Strings(keys)
	return keys
}

// ListRepositories returns the names of Git working trees directly under the
// given directory, in name order.
func ListRepositories(rootPath string) []string {
	isSingle, repositories := scan.DiscoverRepositories(rootPath, nil)
	if isSingle {
		return []string{repositories[0].Name}
	}
	names := make([]string, 0, len(repositories))
	for _, repository := range repositories {
		names = append(names, repository.Name)
	}
	return names
}
