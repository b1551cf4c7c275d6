package commands

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ayuferov/grt/internal/scan"
	"github.com/ayuferov/grt/internal/types"
)

const (
	destinationInsideSourceMessageFormat = "destination %s is inside source %s"
	destinationNotEmptyMessageFormat     = "destination %s is not empty; use --force to overwrite or --skip-existing to keep existing files"
	noRepositoriesFoundMessageFormat     = "no Git repositories found under %s"
	zipExtension                         = ".zip"
)

// CopyEngine migrates the visible files of one or more Git working trees into
// a destination directory or zip archive.
type CopyEngine struct {
	SourcePath       string
	DestinationPath  string
	DryRun           bool
	Zip              bool
	Force            bool
	SkipExisting     bool
	EnvOnly          bool
	Extensions       []string
	MaxFileSize      int64
	OnlyRepositories []string
	ExtraExcludes    []string
	IncludeGit       bool
	RawMode          bool
	Progress         func(relativePath string)
	Verbose          func(destinationRelativePath string)
	Warn             func(path string, walkError error)
}

// copyPolicy builds the per-repository visibility policy from the engine's
// filter flags.
func (engine *CopyEngine) copyPolicy() scan.Policy {
	policy := scan.Policy{
		MaxDepth:             -1,
		RawMode:              engine.RawMode,
		ExtraExcludes:        engine.ExtraExcludes,
		IncludeGit:           engine.IncludeGit,
		MaxFileSize:          engine.MaxFileSize,
		SkipSymlinks:         true,
		ApplyDefaultExcludes: true,
		ApplyPreserve:        true,
	}
	switch {
	case engine.EnvOnly:
		policy.Filter = scan.FilterEnvOnly
	case len(engine.Extensions) > 0:
		policy.Filter = scan.FilterExtensions
		policy.Extensions = engine.Extensions
	}
	return policy
}

// Run discovers the repositories under the source, scans each one under the
// copy policy, and writes the visible files to the destination. Repositories
// are processed sequentially in name order. Cancellation stops between files
// and yields a partial summary marked interrupted, not an error.
func (engine *CopyEngine) Run(executionContext context.Context) (types.CopySummary, error) {
	startTime := time.Now()

	sourcePath, sourceError := filepath.Abs(engine.SourcePath)
	if sourceError != nil {
		return types.CopySummary{}, sourceError
	}
	destinationPath, destinationError := filepath.Abs(engine.DestinationPath)
	if destinationError != nil {
		return types.CopySummary{}, destinationError
	}
	if engine.Zip && !strings.HasSuffix(strings.ToLower(destinationPath), zipExtension) {
		destinationPath += zipExtension
	}
	if validationError := validateDestination(sourcePath, destinationPath); validationError != nil {
		return types.CopySummary{}, validationError
	}

	singleRepository, repositories := scan.DiscoverRepositories(sourcePath, engine.OnlyRepositories)
	if len(repositories) == 0 {
		return types.CopySummary{}, fmt.Errorf(noRepositoriesFoundMessageFormat, sourcePath)
	}

	summary := types.CopySummary{
		Destination:       destinationPath,
		RepositoriesFound: len(repositories),
		DryRun:            engine.DryRun,
		Zipped:            engine.Zip,
	}
	extensionStats := map[string]*types.ExtensionStat{}

	writer, writerError := engine.newDestinationWriter(destinationPath)
	if writerError != nil {
		return types.CopySummary{}, writerError
	}
	defer writer.Close()

	for _, repository := range repositories {
		if executionContext.Err() != nil {
			summary.Interrupted = true
			break
		}
		repositoryPrefix := repository.Name
		if singleRepository && !engine.Zip {
			repositoryPrefix = ""
		}
		if repositoryError := engine.copyRepository(executionContext, repository, repositoryPrefix, writer, &summary, extensionStats); repositoryError != nil {
			return summary, repositoryError
		}
	}

	for _, extensionStat := range extensionStats {
		summary.ExtensionStats = append(summary.ExtensionStats, *extensionStat)
	}
	sort.Slice(summary.ExtensionStats, func(firstIndex, secondIndex int) bool {
		if summary.ExtensionStats[firstIndex].Count != summary.ExtensionStats[secondIndex].Count {
			return summary.ExtensionStats[firstIndex].Count > summary.ExtensionStats[secondIndex].Count
		}
		return summary.ExtensionStats[firstIndex].Extension < summary.ExtensionStats[secondIndex].Extension
	})
	summary.ElapsedSecs = time.Since(startTime).Seconds()
	return summary, nil
}

// copyRepository scans one repository and writes its visible files.
func (engine *CopyEngine) copyRepository(executionContext context.Context, repository scan.Repository, repositoryPrefix string, writer destinationWriter, summary *types.CopySummary, extensionStats map[string]*types.ExtensionStat) error {
	result, scanError := scan.Scan(executionContext, scan.Options{
		Root:          repository.Path,
		MaxDepth:      -1,
		ExtraExcludes: engine.ExtraExcludes,
		IncludeGit:    engine.IncludeGit,
		// Raw copies never consult ignore verdicts, so phase 2 would be a
		// wasted external call per repository.
		SkipResolution: engine.RawMode,
		CountPruned:    true,
		Progress:       engine.Progress,
		Warn:           engine.Warn,
	})
	if scanError != nil {
		return scanError
	}
	visibleSet := scan.ApplyPolicy(result, engine.copyPolicy())
	if visibleSet.Interrupted {
		summary.Interrupted = true
	}

	summary.SymlinksSkipped += visibleSet.SymlinksSkipped
	summary.LargeFilesSkipped += visibleSet.SkippedForSize
	for _, prunedCount := range result.PrunedCounts {
		summary.FilesSkipped += prunedCount
	}
	for _, preservedKey := range visibleSet.PreservedFiles {
		summary.PreservedFiles = append(summary.PreservedFiles, joinArchivePath(repositoryPrefix, preservedKey))
	}

	files := visibleSet.Files()
	sort.Slice(files, func(firstIndex, secondIndex int) bool {
		return files[firstIndex].RelativePath < files[secondIndex].RelativePath
	})
	fileCandidates := 0
	for _, candidate := range result.Candidates {
		if !candidate.IsDirectory {
			fileCandidates++
		}
	}
	summary.FilesSkipped += fileCandidates - len(files) - visibleSet.SkippedForSize - visibleSet.SymlinksSkipped

	for _, candidate := range files {
		if executionContext.Err() != nil {
			summary.Interrupted = true
			return nil
		}
		destinationRelativePath := joinArchivePath(repositoryPrefix, candidate.RelativePath)
		if engine.Progress != nil {
			engine.Progress(destinationRelativePath)
		}

		outcome, writeError := writer.WriteFile(destinationRelativePath, candidate.AbsolutePath(result.Root), engine)
		if writeError != nil {
			if engine.Warn != nil {
				engine.Warn(candidate.RelativePath, writeError)
			}
			summary.FilesSkipped++
			continue
		}
		switch outcome {
		case writeOutcomeCopied:
			summary.FilesCopied++
			summary.BytesCopied += candidate.SizeBytes
			recordExtensionStat(extensionStats, candidate)
		case writeOutcomeOverwritten:
			summary.FilesCopied++
			summary.FilesOverwritten++
			summary.BytesCopied += candidate.SizeBytes
			recordExtensionStat(extensionStats, candidate)
		case writeOutcomeSkippedExisting:
			summary.FilesSkippedExisting++
		}
		if engine.Verbose != nil && outcome != writeOutcomeSkippedExisting {
			engine.Verbose(destinationRelativePath)
		}
	}
	return nil
}

func recordExtensionStat(extensionStats map[string]*types.ExtensionStat, candidate scan.Candidate) {
	extension := strings.ToLower(fileExtension(candidate.Name))
	if extension == "" {
		extension = "(none)"
	}
	extensionStat, present := extensionStats[extension]
	if !present {
		extensionStat = &types.ExtensionStat{Extension: extension}
		extensionStats[extension] = extensionStat
	}
	extensionStat.Count++
	extensionStat.Bytes += candidate.SizeBytes
}

// validateDestination rejects a destination that sits inside the source tree.
func validateDestination(sourcePath string, destinationPath string) error {
	relativePath, relativeError := filepath.Rel(sourcePath, destinationPath)
	if relativeError != nil {
		return nil
	}
	if relativePath == "." || (relativePath != ".." && !strings.HasPrefix(relativePath, ".."+string(filepath.Separator))) {
		return fmt.Errorf(destinationInsideSourceMessageFormat, destinationPath, sourcePath)
	}
	return nil
}

// joinArchivePath joins a repository prefix onto a slash-relative path.
func joinArchivePath(repositoryPrefix string, relativePath string) string {
	if repositoryPrefix == "" {
		return relativePath
	}
	return repositoryPrefix + "/" + relativePath
}

type writeOutcome int

const (
	writeOutcomeCopied writeOutcome = iota
	writeOutcomeOverwritten
	writeOutcomeSkippedExisting
)

// destinationWriter abstracts the two destination shapes: a directory tree and
// a zip archive.
type destinationWriter interface {
	WriteFile(destinationRelativePath string, sourceFilePath string, engine *CopyEngine) (writeOutcome, error)
	Close() error
}

// newDestinationWriter opens the destination for writing. In dry-run mode no
// writer touches the filesystem.
func (engine *CopyEngine) newDestinationWriter(destinationPath string) (destinationWriter, error) {
	if engine.Zip {
		return newZipWriter(destinationPath, engine.DryRun, engine.Force)
	}
	return newDirectoryWriter(destinationPath, engine.DryRun, engine.Force, engine.SkipExisting)
}

type directoryWriter struct {
	rootPath string
	dryRun   bool
}

func newDirectoryWriter(rootPath string, dryRun bool, force bool, skipExisting bool) (*directoryWriter, error) {
	if !dryRun {
		if entries, readError := os.ReadDir(rootPath); readError == nil && len(entries) > 0 && !force && !skipExisting {
			return nil, fmt.Errorf(destinationNotEmptyMessageFormat, rootPath)
		}
		if makeError := os.MkdirAll(rootPath, 0o755); makeError != nil {
			return nil, makeError
		}
	}
	return &directoryWriter{rootPath: rootPath, dryRun: dryRun}, nil
}

func (writer *directoryWriter) WriteFile(destinationRelativePath string, sourceFilePath string, engine *CopyEngine) (writeOutcome, error) {
	destinationFilePath, pathError := secureJoin(writer.rootPath, destinationRelativePath)
	if pathError != nil {
		return writeOutcomeCopied, pathError
	}

	outcome := writeOutcomeCopied
	if _, statError := os.Lstat(destinationFilePath); statError == nil {
		if engine.SkipExisting {
			return writeOutcomeSkippedExisting, nil
		}
		outcome = writeOutcomeOverwritten
	}
	if writer.dryRun {
		return outcome, nil
	}

	if makeError := os.MkdirAll(filepath.Dir(destinationFilePath), 0o755); makeError != nil {
		return outcome, makeError
	}
	if copyError := copyFileContents(sourceFilePath, destinationFilePath); copyError != nil {
		return outcome, copyError
	}
	return outcome, nil
}

func (writer *directoryWriter) Close() error {
	return nil
}

type zipArchiveWriter struct {
	archiveFile *os.File
	zipWriter   *zip.Writer
	dryRun      bool
}

func newZipWriter(archivePath string, dryRun bool, force bool) (*zipArchiveWriter, error) {
	if dryRun {
		return &zipArchiveWriter{dryRun: true}, nil
	}
	if _, statError := os.Lstat(archivePath); statError == nil && !force {
		return nil, fmt.Errorf(destinationNotEmptyMessageFormat, archivePath)
	}
	if makeError := os.MkdirAll(filepath.Dir(archivePath), 0o755); makeError != nil {
		return nil, makeError
	}
	archiveFile, createError := os.Create(archivePath) // #nosec G304 -- destination chosen by the user
	if createError != nil {
		return nil, createError
	}
	return &zipArchiveWriter{archiveFile: archiveFile, zipWriter: zip.NewWriter(archiveFile)}, nil
}

func (writer *zipArchiveWriter) WriteFile(destinationRelativePath string, sourceFilePath string, _ *CopyEngine) (writeOutcome, error) {
	if containsTraversal(destinationRelativePath) {
		return writeOutcomeCopied, fmt.Errorf("refusing archive entry outside destination: %s", destinationRelativePath)
	}
	if writer.dryRun {
		return writeOutcomeCopied, nil
	}

	sourceFile, openError := os.Open(sourceFilePath) // #nosec G304 -- path comes from the scanner
	if openError != nil {
		return writeOutcomeCopied, openError
	}
	defer sourceFile.Close()

	sourceInfo, statError := sourceFile.Stat()
	if statError != nil {
		return writeOutcomeCopied, statError
	}
	header, headerError := zip.FileInfoHeader(sourceInfo)
	if headerError != nil {
		return writeOutcomeCopied, headerError
	}
	header.Name = destinationRelativePath
	header.Method = zip.Deflate

	entryWriter, entryError := writer.zipWriter.CreateHeader(header)
	if entryError != nil {
		return writeOutcomeCopied, entryError
	}
	if _, copyError := io.Copy(entryWriter, sourceFile); copyError != nil {
		return writeOutcomeCopied, copyError
	}
	return writeOutcomeCopied, nil
}

func (writer *zipArchiveWriter) Close() error {
	if writer.dryRun {
		return nil
	}
	if closeError := writer.zipWriter.Close(); closeError != nil {
		writer.archiveFile.Close()
		return closeError
	}
	return writer.archiveFile.Close()
}

// secureJoin joins a relative path under the root and rejects any result that
// escapes it.
func secureJoin(rootPath string, relativePath string) (string, error) {
	if containsTraversal(relativePath) {
		return "", fmt.Errorf("refusing path outside destination: %s", relativePath)
	}
	joinedPath := filepath.Join(rootPath, filepath.FromSlash(relativePath))
	checkPath, relativeError := filepath.Rel(rootPath, joinedPath)
	if relativeError != nil || checkPath == ".." || strings.HasPrefix(checkPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("refusing path outside destination: %s", relativePath)
	}
	return joinedPath, nil
}

func containsTraversal(relativePath string) bool {
	if filepath.IsAbs(relativePath) {
		return true
	}
	for _, segment := range strings.Split(relativePath, "/") {
		if segment == ".." {
			return true
		}
	}
	return false
}

// copyFileContents copies one regular file, preserving its mode bits.
func copyFileContents(sourceFilePath string, destinationFilePath string) error {
	sourceFile, openError := os.Open(sourceFilePath) // #nosec G304 -- path comes from the scanner
	if openError != nil {
		return openError
	}
	defer sourceFile.Close()

	sourceInfo, statError := sourceFile.Stat()
	if statError != nil {
		return statError
	}

	destinationFile, createError := os.OpenFile(destinationFilePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, sourceInfo.Mode().Perm()) // #nosec G304 -- path validated by secureJoin
	if createError != nil {
		return createError
	}
	if _, copyError := io.Copy(destinationFile, sourceFile); copyError != nil {
		destinationFile.Close()
		return copyError
	}
	return destinationFile.Close()
}
