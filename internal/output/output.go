// Package output renders command results as text or JSON.
package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ayuferov/grt/internal/types"
)

const (
	indentPrefix = ""
	indentSpacer = "  "

	treeBranchConnector = "├── "
	treeLastConnector   = "└── "
	treeBranchPadding   = "│   "
	treeLastPadding     = "    "
)

var (
	directoryStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	fileStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dotfileStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	annotateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TreeRenderOptions controls the text tree renderer.
type TreeRenderOptions struct {
	// Color enables ANSI styling of names and annotations.
	Color bool
	// ShowSizes annotates files with their formatted size.
	ShowSizes bool
	// ShowTokens annotates files with their token count.
	ShowTokens bool
	// ShowSummary appends the aggregate line after the tree.
	ShowSummary bool
	// Model names the tokenizer in the summary line.
	Model string
}

// WriteTreeText renders a directory tree with box-drawing connectors.
func WriteTreeText(writer io.Writer, rootNode *types.TreeOutputNode, options TreeRenderOptions) {
	if rootNode == nil {
		return
	}
	fmt.Fprintf(writer, "%s\n", styleName(rootNode.Name+"/", rootNode, options))
	renderTreeChildren(writer, rootNode, "", options)
	if options.ShowSummary {
		fmt.Fprintf(writer, "\n%s\n", TreeSummaryLine(rootNode, options.Model))
	}
}

// RenderTreeText returns the text tree as a string.
func RenderTreeText(rootNode *types.TreeOutputNode, options TreeRenderOptions) string {
	var buffer bytes.Buffer
	WriteTreeText(&buffer, rootNode, options)
	return buffer.String()
}

func renderTreeChildren(writer io.Writer, node *types.TreeOutputNode, prefix string, options TreeRenderOptions) {
	for childIndex, childNode := range node.Children {
		isLast := childIndex == len(node.Children)-1
		connector := treeBranchConnector
		childPrefix := prefix + treeBranchPadding
		if isLast {
			connector = treeLastConnector
			childPrefix = prefix + treeLastPadding
		}

		displayName := childNode.Name
		if childNode.Type == types.NodeTypeDirectory {
			displayName += "/"
		}
		fmt.Fprintf(writer, "%s%s%s%s\n", prefix, connector, styleName(displayName, childNode, options), nodeAnnotation(childNode, options))

		if childNode.Type == types.NodeTypeDirectory {
			renderTreeChildren(writer, childNode, childPrefix, options)
		}
	}
}

func styleName(displayName string, node *types.TreeOutputNode, options TreeRenderOptions) string {
	if !options.Color {
		return displayName
	}
	if node.Type == types.NodeTypeDirectory {
		return directoryStyle.Render(displayName)
	}
	if strings.HasPrefix(node.Name, ".") {
		return dotfileStyle.Render(displayName)
	}
	return fileStyle.Render(displayName)
}

func nodeAnnotation(node *types.TreeOutputNode, options TreeRenderOptions) string {
	if node.Type != types.NodeTypeFile {
		return ""
	}
	var parts []string
	if options.ShowSizes && node.Size != "" {
		parts = append(parts, node.Size)
	}
	if options.ShowTokens {
		parts = append(parts, fmt.Sprintf("%d tok", node.Tokens))
	}
	if len(parts) == 0 {
		return ""
	}
	annotation := " (" + strings.Join(parts, ", ") + ")"
	if options.Color {
		return annotateStyle.Render(annotation)
	}
	return annotation
}

// TreeSummaryLine formats the aggregate line below a rendered tree.
func TreeSummaryLine(rootNode *types.TreeOutputNode, model string) string {
	fileLabel := "files"
	if rootNode.TotalFiles == 1 {
		fileLabel = "file"
	}
	tokenSuffix := ""
	if rootNode.TotalTokens > 0 {
		tokenSuffix = fmt.Sprintf(", %d tokens", rootNode.TotalTokens)
		if model != "" {
			tokenSuffix += fmt.Sprintf(" (model: %s)", model)
		}
	}
	return fmt.Sprintf("%d %s, %s%s", rootNode.TotalFiles, fileLabel, rootNode.TotalSize, tokenSuffix)
}

// WriteFlatList prints one visible path per line, directories marked with a
// trailing separator.
func WriteFlatList(writer io.Writer, pathKeys []string) {
	for _, pathKey := range pathKeys {
		fmt.Fprintln(writer, pathKey)
	}
}

// RenderJSON marshals any result with stable two-space indentation.
func RenderJSON(value any) (string, error) {
	encoded, jsonEncodeError := json.MarshalIndent(value, indentPrefix, indentSpacer)
	if jsonEncodeError != nil {
		return "", jsonEncodeError
	}
	return string(encoded), nil
}
