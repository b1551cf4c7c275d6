package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeTestFile(t *testing.T, filePath string, content string) {
	t.Helper()
	if directoryError := os.MkdirAll(filepath.Dir(filePath), 0o755); directoryError != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(filePath), directoryError)
	}
	if writeError := os.WriteFile(filePath, []byte(content), 0o644); writeError != nil {
		t.Fatalf("write %s: %v", filePath, writeError)
	}
}

func TestAnalyzeFileClassifiesLines(t *testing.T) {
	testCases := []struct {
		name            string
		extension       string
		content         string
		expectedBlank   int
		expectedComment int
		expectedCode    int
	}{
		{
			name:      "python with docstring block",
			extension: ".py",
			content: "\"\"\"Module docstring.\n" +
				"Second line.\n" +
				"\"\"\"\n" +
				"\n" +
				"# a comment\n" +
				"x = 1\n",
			expectedBlank:   1,
			expectedComment: 4,
			expectedCode:    1,
		},
		{
			name:      "go with single line block comment",
			extension: ".go",
			content: "package main\n" +
				"\n" +
				"/* one line block */\n" +
				"// single\n" +
				"func main() {}\n",
			expectedBlank:   1,
			expectedComment: 2,
			expectedCode:    2,
		},
		{
			name:      "json has no comments",
			extension: ".json",
			content: "{\n" +
				"  \"key\": 1\n" +
				"}\n",
			expectedBlank:   0,
			expectedComment: 0,
			expectedCode:    3,
		},
		{
			name:      "html block spanning lines",
			extension: ".html",
			content: "<!-- start\n" +
				"still comment\n" +
				"end -->\n" +
				"<p>hi</p>\n",
			expectedBlank:   0,
			expectedComment: 3,
			expectedCode:    1,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			filePath := filepath.Join(t.TempDir(), "sample"+testCase.extension)
			writeTestFile(t, filePath, testCase.content)

			definition, known := LookupLanguage(testCase.extension)
			if !known {
				t.Fatalf("no language for %s", testCase.extension)
			}
			blankLines, commentLines, codeLines := analyzeFile(filePath, definition)
			if blankLines != testCase.expectedBlank || commentLines != testCase.expectedComment || codeLines != testCase.expectedCode {
				t.Fatalf("got blank=%d comment=%d code=%d, want blank=%d comment=%d code=%d",
					blankLines, commentLines, codeLines,
					testCase.expectedBlank, testCase.expectedComment, testCase.expectedCode)
			}
		})
	}
}

func TestAnalyzeFileMissingFileYieldsZeroCounts(t *testing.T) {
	definition, _ := LookupLanguage(".go")
	blankLines, commentLines, codeLines := analyzeFile(filepath.Join(t.TempDir(), "absent.go"), definition)
	if blankLines != 0 || commentLines != 0 || codeLines != 0 {
		t.Fatalf("expected zero counts for missing file, got %d/%d/%d", blankLines, commentLines, codeLines)
	}
}

func TestLocEngineAggregatesByLanguage(t *testing.T) {
	rootPath := t.TempDir()
	writeTestFile(t, filepath.Join(rootPath, "main.go"), "package main\n\nfunc main() {}\n")
	writeTestFile(t, filepath.Join(rootPath, "util.go"), "package main\n\n// helper\nfunc helper() {}\n")
	writeTestFile(t, filepath.Join(rootPath, "script.py"), "# comment\nprint(1)\n")
	writeTestFile(t, filepath.Join(rootPath, "notes.txt"), "not counted\n")
	writeTestFile(t, filepath.Join(rootPath, "node_modules", "dep.js"), "var x = 1\n")

	engine := &LocEngine{RootPath: rootPath}
	report, runError := engine.Run(context.Background())
	if runError != nil {
		t.Fatalf("run: %v", runError)
	}
	if report.Interrupted {
		t.Fatal("unexpected interruption")
	}

	countsByLanguage := map[string]languageSnapshot{}
	for _, languageCount := range report.Languages {
		countsByLanguage[languageCount.Language] = languageSnapshot{
			Files:   languageCount.Files,
			Blank:   languageCount.Blank,
			Comment: languageCount.Comment,
			Code:    languageCount.Code,
		}
	}

	goCounts, goPresent := countsByLanguage["Go"]
	if !goPresent {
		t.Fatal("expected Go counts")
	}
	if goCounts.Files != 2 || goCounts.Code != 4 || goCounts.Comment != 1 || goCounts.Blank != 2 {
		t.Fatalf("unexpected Go counts: %+v", goCounts)
	}

	pythonCounts, pythonPresent := countsByLanguage["Python"]
	if !pythonPresent {
		t.Fatal("expected Python counts")
	}
	if pythonCounts.Files != 1 || pythonCounts.Code != 1 || pythonCounts.Comment != 1 {
		t.Fatalf("unexpected Python counts: %+v", pythonCounts)
	}

	if _, jsPresent := countsByLanguage["JavaScript"]; jsPresent {
		t.Fatal("pruned node_modules must not be counted")
	}

	if report.TotalFiles() != 3 {
		t.Fatalf("expected 3 counted files, got %d", report.TotalFiles())
	}
}

// languageSnapshot mirrors the counted fields for comparison in tests.
type languageSnapshot struct {
	Files   int
	Blank   int
	Comment int
	Code    int
}

func TestLocEngineOrdersLanguagesByCode(t *testing.T) {
	rootPath := t.TempDir()
	writeTestFile(t, filepath.Join(rootPath, "big.py"), "a = 1\nb = 2\nc = 3\n")
	writeTestFile(t, filepath.Join(rootPath, "small.go"), "package main\n")

	engine := &LocEngine{RootPath: rootPath}
	report, runError := engine.Run(context.Background())
	if runError != nil {
		t.Fatalf("run: %v", runError)
	}
	if len(report.Languages) != 2 {
		t.Fatalf("expected 2 languages, got %d", len(report.Languages))
	}
	if report.Languages[0].Language != "Python" {
		t.Fatalf("expected Python first by code lines, got %s", report.Languages[0].Language)
	}
}

func TestLocEngineCancelledContext(t *testing.T) {
	rootPath := t.TempDir()
	writeTestFile(t, filepath.Join(rootPath, "main.go"), "package main\n")

	cancelledContext, cancel := context.WithCancel(context.Background())
	cancel()

	engine := &LocEngine{RootPath: rootPath}
	report, runError := engine.Run(cancelledContext)
	if runError != nil {
		t.Fatalf("run: %v", runError)
	}
	if !report.Interrupted {
		t.Fatal("expected interrupted report")
	}
}
