package output

import (
	"fmt"
	"io"

	"github.com/ayuferov/grt/internal/types"
	"github.com/ayuferov/grt/internal/utils"
)

// WriteCopySummary renders the aggregate outcome of a copy run.
func WriteCopySummary(writer io.Writer, summary types.CopySummary) {
	if summary.DryRun {
		fmt.Fprintln(writer, "Dry run; nothing was written.")
	}

	repositoryLabel := "repositories"
	if summary.RepositoriesFound == 1 {
		repositoryLabel = "repository"
	}
	fmt.Fprintf(writer, "%d %s processed\n", summary.RepositoriesFound, repositoryLabel)
	fmt.Fprintf(writer, "Copied:  %d files (%s)\n", summary.FilesCopied, utils.FormatFileSize(summary.BytesCopied))
	fmt.Fprintf(writer, "Skipped: %d excluded", summary.FilesSkipped)
	if summary.LargeFilesSkipped > 0 {
		fmt.Fprintf(writer, ", %d over size limit", summary.LargeFilesSkipped)
	}
	if summary.SymlinksSkipped > 0 {
		fmt.Fprintf(writer, ", %d symlinks", summary.SymlinksSkipped)
	}
	if summary.FilesSkippedExisting > 0 {
		fmt.Fprintf(writer, ", %d already present", summary.FilesSkippedExisting)
	}
	fmt.Fprintln(writer)
	if summary.FilesOverwritten > 0 {
		fmt.Fprintf(writer, "Overwritten: %d files\n", summary.FilesOverwritten)
	}
	for _, preservedPath := range summary.PreservedFiles {
		fmt.Fprintf(writer, "Preserved: %s\n", preservedPath)
	}
	if summary.Destination != "" {
		destinationLabel := "Destination"
		if summary.Zipped {
			destinationLabel = "Archive"
		}
		fmt.Fprintf(writer, "%s: %s\n", destinationLabel, summary.Destination)
	}

	if len(summary.ExtensionStats) > 0 {
		fmt.Fprintln(writer)
		fmt.Fprintf(writer, "%-12s %8s %10s\n", "Extension", "Files", "Size")
		for _, extensionStat := range summary.ExtensionStats {
			fmt.Fprintf(writer, "%-12s %8d %10s\n", extensionStat.Extension, extensionStat.Count, utils.FormatFileSize(extensionStat.Bytes))
		}
	}

	fmt.Fprintf(writer, "\nCompleted in %.2fs\n", summary.ElapsedSecs)
	if summary.Interrupted {
		fmt.Fprintln(writer, "Copy interrupted; results are partial.")
	}
}
