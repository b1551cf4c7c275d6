// Package types defines cross-package data structures shared by the grt commands.
package types

const (
	NodeTypeFile      = "file"
	NodeTypeDirectory = "directory"

	FormatRaw  = "raw"
	FormatJSON = "json"
)

// TreeOutputNode represents a node of a rendered directory tree.
type TreeOutputNode struct {
	Path        string            `json:"path"`
	Name        string            `json:"name"`
	Type        string            `json:"type"`
	Size        string            `json:"size,omitempty"`
	SizeBytes   int64             `json:"-"`
	Tokens      int               `json:"tokens,omitempty"`
	Children    []*TreeOutputNode `json:"children,omitempty"`
	TotalFiles  int               `json:"totalFiles,omitempty"`
	TotalSize   string            `json:"totalSize,omitempty"`
	TotalTokens int               `json:"totalTokens,omitempty"`
}

// LanguageCount aggregates line counts for a single language.
type LanguageCount struct {
	Language string `json:"language"`
	Files    int    `json:"files"`
	Blank    int    `json:"blank"`
	Comment  int    `json:"comment"`
	Code     int    `json:"code"`
}

// LocReport is the result of a lines-of-code scan.
type LocReport struct {
	Root        string          `json:"root"`
	Languages   []LanguageCount `json:"languages"`
	Interrupted bool            `json:"interrupted,omitempty"`
	ElapsedSecs float64         `json:"elapsedSeconds"`
}

// TotalFiles sums the file counts of every language.
func (report LocReport) TotalFiles() int {
	total := 0
	for _, languageCount := range report.Languages {
		total += languageCount.Files
	}
	return total
}

// TotalLines returns the blank, comment, and code totals across languages.
func (report LocReport) TotalLines() (int, int, int) {
	var blankTotal, commentTotal, codeTotal int
	for _, languageCount := range report.Languages {
		blankTotal += languageCount.Blank
		commentTotal += languageCount.Comment
		codeTotal += languageCount.Code
	}
	return blankTotal, commentTotal, codeTotal
}

// ExtensionStat aggregates copied files per extension for reporting.
type ExtensionStat struct {
	Extension string
	Count     int
	Bytes     int64
}

// CopySummary captures the aggregate outcome of a copy run.
type CopySummary struct {
	Destination          string
	RepositoriesFound    int
	FilesCopied          int
	FilesSkipped         int
	BytesCopied          int64
	PreservedFiles       []string
	SymlinksSkipped      int
	LargeFilesSkipped    int
	FilesOverwritten     int
	FilesSkippedExisting int
	Interrupted          bool
	DryRun               bool
	Zipped               bool
	ElapsedSecs          float64
	ExtensionStats       []ExtensionStat
}
