package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/ayuferov/grt/internal/types"
)

const (
	locRowFormat        = "%-18s %8d %9d %9d %10d\n"
	locPercentRowFormat = "%-18s %8d %9d %9d %10d %7.1f%%\n"
	locHeaderFormat     = "%-18s %8s %9s %9s %10s\n"
	locTableWidth       = 58
	locTotalLabel       = "Total"
)

// LocRenderOptions controls the lines-of-code table renderer.
type LocRenderOptions struct {
	// Color styles the header row.
	Color bool
	// ShowPercent appends each language's share of total code lines.
	ShowPercent bool
}

// WriteLocReport renders the per-language table with a totals row.
func WriteLocReport(writer io.Writer, report types.LocReport, options LocRenderOptions) {
	tableWidth := locTableWidth
	if options.ShowPercent {
		tableWidth += 9
	}
	separatorLine := strings.Repeat("-", tableWidth)

	headerLine := fmt.Sprintf(locHeaderFormat, "Language", "Files", "Blank", "Comment", "Code")
	if options.ShowPercent {
		headerLine = strings.TrimSuffix(headerLine, "\n") + fmt.Sprintf(" %8s\n", "Code%")
	}
	if options.Color {
		headerLine = directoryStyle.Render(strings.TrimSuffix(headerLine, "\n")) + "\n"
	}
	fmt.Fprint(writer, headerLine)
	fmt.Fprintln(writer, separatorLine)

	_, _, codeTotal := report.TotalLines()
	for _, languageCount := range report.Languages {
		if options.ShowPercent {
			fmt.Fprintf(writer, locPercentRowFormat, languageCount.Language, languageCount.Files, languageCount.Blank, languageCount.Comment, languageCount.Code, codePercentage(languageCount.Code, codeTotal))
			continue
		}
		fmt.Fprintf(writer, locRowFormat, languageCount.Language, languageCount.Files, languageCount.Blank, languageCount.Comment, languageCount.Code)
	}
	fmt.Fprintln(writer, separatorLine)

	blankTotal, commentTotal, codeTotalAgain := report.TotalLines()
	fmt.Fprintf(writer, locRowFormat, locTotalLabel, report.TotalFiles(), blankTotal, commentTotal, codeTotalAgain)

	fmt.Fprintf(writer, "\n%d files scanned in %.2fs\n", report.TotalFiles(), report.ElapsedSecs)
	if report.Interrupted {
		fmt.Fprintln(writer, "Scan interrupted; counts are partial.")
	}
}

func codePercentage(codeLines int, codeTotal int) float64 {
	if codeTotal == 0 {
		return 0
	}
	return float64(codeLines) / float64(codeTotal) * 100
}
