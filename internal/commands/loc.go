package commands

import (
	"bufio"
	"context"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/ayuferov/grt/internal/scan"
	"github.com/ayuferov/grt/internal/types"
)

// LocEngine counts blank, comment, and code lines per language under a root.
type LocEngine struct {
	RootPath      string
	RawMode       bool
	ExtraExcludes []string
	Progress      func(relativePath string)
	Warn          func(path string, walkError error)
}

// locPolicy restricts the visible set to files with known extensions and
// drops symbolic links.
func (engine *LocEngine) locPolicy() scan.Policy {
	return scan.Policy{
		RawMode:       engine.RawMode,
		MaxDepth:      -1,
		ExtraExcludes: engine.ExtraExcludes,
		Filter:        scan.FilterExtensions,
		Extensions:    KnownExtensions(),
		SkipSymlinks:  true,
	}
}

// Run scans the root and analyzes every visible code file. Unreadable files
// contribute nothing and never abort the run; cancellation yields a partial
// report marked interrupted.
func (engine *LocEngine) Run(executionContext context.Context) (types.LocReport, error) {
	startTime := time.Now()

	result, scanError := scan.Scan(executionContext, scan.Options{
		Root:          engine.RootPath,
		RawMode:       engine.RawMode,
		MaxDepth:      -1,
		ExtraExcludes: engine.ExtraExcludes,
		Progress:      engine.Progress,
		Warn:          engine.Warn,
	})
	if scanError != nil {
		return types.LocReport{}, scanError
	}
	visibleSet := scan.ApplyPolicy(result, engine.locPolicy())

	countsByLanguage := map[string]*types.LanguageCount{}
	interrupted := visibleSet.Interrupted

	files := visibleSet.Files()
	sort.Slice(files, func(firstIndex, secondIndex int) bool {
		return files[firstIndex].RelativePath < files[secondIndex].RelativePath
	})

	for _, candidate := range files {
		if executionContext.Err() != nil {
			interrupted = true
			break
		}
		if engine.Progress != nil {
			engine.Progress(candidate.RelativePath)
		}

		definition, known := LookupLanguage(strings.ToLower(fileExtension(candidate.Name)))
		if !known {
			continue
		}
		blankLines, commentLines, codeLines := analyzeFile(candidate.AbsolutePath(result.Root), definition)

		languageCount, present := countsByLanguage[definition.Name]
		if !present {
			languageCount = &types.LanguageCount{Language: definition.Name}
			countsByLanguage[definition.Name] = languageCount
		}
		languageCount.Files++
		languageCount.Blank += blankLines
		languageCount.Comment += commentLines
		languageCount.Code += codeLines
	}

	report := types.LocReport{
		Root:        result.Root,
		Interrupted: interrupted,
		ElapsedSecs: time.Since(startTime).Seconds(),
	}
	for _, languageCount := range countsByLanguage {
		report.Languages = append(report.Languages, *languageCount)
	}
	sort.Slice(report.Languages, func(firstIndex, secondIndex int) bool {
		if report.Languages[firstIndex].Code != report.Languages[secondIndex].Code {
			return report.Languages[firstIndex].Code > report.Languages[secondIndex].Code
		}
		return report.Languages[firstIndex].Language < report.Languages[secondIndex].Language
	})
	return report, nil
}

// analyzeFile classifies each line of one file. I/O errors yield zero counts;
// a single bad file must never abort the whole run.
func analyzeFile(filePath string, definition LanguageDefinition) (int, int, int) {
	fileHandle, openError := os.Open(filePath) // #nosec G304 -- path comes from the scanner
	if openError != nil {
		return 0, 0, 0
	}
	defer fileHandle.Close()

	var blankLines, commentLines, codeLines int
	inBlockComment := false

	lineScanner := bufio.NewScanner(fileHandle)
	lineScanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineScanner.Scan() {
		strippedLine := strings.TrimSpace(lineScanner.Text())
		if strippedLine == "" {
			blankLines++
			continue
		}
		if inBlockComment {
			commentLines++
			if definition.BlockEnd != "" && strings.Contains(strippedLine, definition.BlockEnd) {
				inBlockComment = false
			}
			continue
		}
		if definition.BlockStart != "" && strings.HasPrefix(strippedLine, definition.BlockStart) {
			commentLines++
			remainder := strippedLine[len(definition.BlockStart):]
			if definition.BlockEnd != "" && !strings.Contains(remainder, definition.BlockEnd) {
				inBlockComment = true
			}
			continue
		}
		if definition.SinglePrefix != "" && strings.HasPrefix(strippedLine, definition.SinglePrefix) {
			commentLines++
			continue
		}
		codeLines++
	}

	return blankLines, commentLines, codeLines
}

// fileExtension returns the trailing extension with its dot; leading-dot
// names have none.
func fileExtension(fileName string) string {
	dotIndex := strings.LastIndex(fileName, ".")
	if dotIndex <= 0 {
		return ""
	}
	return fileName[dotIndex:]
}
