// Package cli provides the command line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ayuferov/grt/internal/commands"
	"github.com/ayuferov/grt/internal/config"
	"github.com/ayuferov/grt/internal/output"
	"github.com/ayuferov/grt/internal/scan"
	"github.com/ayuferov/grt/internal/services/clipboard"
	"github.com/ayuferov/grt/internal/tokenizer"
	"github.com/ayuferov/grt/internal/types"
	"github.com/ayuferov/grt/internal/utils"
)

const (
	exclusionFlagName    = "exclude"
	exclusionFlagShort   = "e"
	depthFlagName        = "depth"
	depthFlagShort       = "d"
	rawFlagName          = "raw"
	includeGitFlagName   = "include-git"
	formatFlagName       = "format"
	flatFlagName         = "flat"
	listFlagName         = "list"
	sizesFlagName        = "size"
	noColorFlagName      = "no-color"
	tokensFlagName       = "tokens"
	modelFlagName        = "model"
	clipboardFlagName    = "copy"
	outFlagName          = "out"
	outFlagShort         = "o"
	dryRunFlagName       = "dry-run"
	zipFlagName          = "zip"
	envFlagName          = "env"
	extensionsFlagName   = "ext"
	maxSizeFlagName      = "max-size"
	onlyFlagName         = "only"
	forceFlagName        = "force"
	skipExistingFlagName = "skip-existing"
	statsFlagName        = "stats"
	statsAllFlagName     = "stats-all"
	verboseFlagName      = "verbose"
	verboseFlagShort     = "v"
	quietFlagName        = "quiet"
	quietFlagShort       = "q"
	globalFlagName       = "global"
	configFileFlagName   = "config"
	versionFlagName      = "version"

	versionTemplate      = "grt version: %s\n"
	defaultPath          = "."
	rootUse              = "grt"
	rootShortDescription = "grt command line interface"
	rootLongDescription  = `grt enumerates Git repositories the way git sees them.
It renders directory trees, counts lines of code, and copies repositories
while honoring .gitignore and pruning dependency directories.`
	versionFlagDescription = "display application version"

	treeUse              = "tree [path]"
	locUse               = "loc [path]"
	copyUse              = "copy [source] <destination>"
	configUse            = "config"
	configInitUse        = "init"
	treeAlias            = "t"
	locAlias             = "l"
	copyAlias            = "cp"
	treeShortDescription = "display directory tree (" + treeAlias + ")"
	locShortDescription  = "count lines of code (" + locAlias + ")"
	copyShortDescription = "copy repositories without ignored files (" + copyAlias + ")"

	treeLongDescription = `List the visible files and directories of a path.
Ignored files and dependency directories are omitted unless --raw is given.`
	treeUsageExample = `  # Render the tree with file sizes
  grt tree --size .

  # Flat list of visible paths, two levels deep
  grt tree --flat -d 2 ./src`

	locLongDescription = `Count blank, comment, and code lines per language.
Only files with recognized extensions are analyzed.`
	locUsageExample = `  # Count lines in the current repository
  grt loc

  # Include everything, even ignored files
  grt loc --raw .`

	copyLongDescription = `Copy one or more Git repositories to a destination,
skipping ignored files, dependency directories, and symlinks. A source that is
not itself a repository is treated as a folder of repositories.`
	copyUsageExample = `  # Copy the current repository to a new directory
  grt copy ./project-export

  # Archive only Go and Markdown files from every repository
  grt copy ~/repos backup --zip --ext go,md`

	configShortDescription     = "manage configuration"
	configInitShortDescription = "write a default configuration file"

	exclusionFlagDescription    = "exclude pattern; trailing / prunes directories"
	depthFlagDescription        = "maximum depth; negative for unlimited"
	rawFlagDescription          = "disable pruning and ignore resolution"
	copyRawFlagDescription      = "include ignored files; dependency directories stay excluded"
	includeGitFlagDescription   = "include the .git directory"
	formatFlagDescription       = "output format (raw or json)"
	flatFlagDescription         = "print a flat path list instead of a tree"
	listFlagDescription         = "list repositories and exit"
	sizesFlagDescription        = "annotate files with their size"
	noColorFlagDescription      = "disable colored output"
	tokensFlagDescription       = "include token counts"
	modelFlagDescription        = "tokenizer model to use for token counting"
	clipboardFlagDescription    = "copy the rendered output to the clipboard"
	outFlagDescription          = "write output to a file; auto-generates a name when no value is given"
	dryRunFlagDescription       = "report what would be copied without writing"
	zipFlagDescription          = "write the destination as a zip archive"
	envFlagDescription          = "copy only environment configuration files"
	extensionsFlagDescription   = "copy only files with these extensions"
	maxSizeFlagDescription      = "skip files larger than this size (e.g. 10M)"
	onlyFlagDescription         = "restrict to the named repositories"
	forceFlagDescription        = "overwrite an existing destination"
	skipExistingFlagDescription = "keep files already present in the destination"
	statsFlagDescription        = "show per-extension statistics"
	statsAllFlagDescription     = "show the full per-extension table, not only the top entries"
	locStatsFlagDescription     = "show each language's share of total code lines"
	verboseFlagDescription      = "print every copied file"
	quietFlagDescription        = "suppress the summary and progress output"
	globalFlagDescription       = "write to the global configuration directory"
	configInitForceDescription  = "overwrite an existing configuration file"
	configFileFlagDescription   = "path to a configuration file"

	defaultTokenizerModelName = "gpt-4o"
	invalidFormatMessage      = "Invalid format value '%s'"
	destinationRequiredError  = "destination argument is required"
	warningSkipPathFormat     = "Warning: skipping %s: %v\n"
	interruptedNotice         = "Interrupted; output is partial."
	clipboardCopiedFormat     = "Copied %d characters to clipboard\n"
	outputWrittenFormat       = "Output written to %s\n"
	verboseCopiedFormat       = "  %s\n"
	scanSpinnerLabel          = "scanning"
	copySpinnerLabel          = "copying"
	autoOutFlagValue          = "auto"
	statsTopExtensionCount    = 15
)

// isSupportedFormat reports whether the provided format is recognized.
func isSupportedFormat(format string) bool {
	switch format {
	case types.FormatRaw, types.FormatJSON:
		return true
	default:
		return false
	}
}

// Execute runs the grt application. SIGINT and SIGTERM cancel the context so
// running scans stop and report partial results.
func Execute() error {
	executionContext, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	rootCommand := createRootCommand()
	return rootCommand.ExecuteContext(executionContext)
}

// createRootCommand builds the root Cobra command.
func createRootCommand() *cobra.Command {
	var showVersion bool
	var configFilePath string

	rootCommand := &cobra.Command{
		Use:          rootUse,
		Short:        rootShortDescription,
		Long:         rootLongDescription,
		SilenceUsage: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
		PersistentPreRun: func(command *cobra.Command, arguments []string) {
			if showVersion {
				fmt.Printf(versionTemplate, utils.GetApplicationVersion())
				os.Exit(0)
			}
		},
	}
	rootCommand.PersistentFlags().BoolVar(&showVersion, versionFlagName, false, versionFlagDescription)
	rootCommand.PersistentFlags().StringVar(&configFilePath, configFileFlagName, "", configFileFlagDescription)
	rootCommand.AddCommand(
		createTreeCommand(&configFilePath),
		createLocCommand(&configFilePath),
		createCopyCommand(&configFilePath),
		createConfigCommand(),
	)
	rootCommand.InitDefaultHelpCmd()
	rootCommand.InitDefaultCompletionCmd()
	return rootCommand
}

func loadConfiguration(configFilePath string) config.ApplicationConfiguration {
	configuration, loadError := config.LoadApplicationConfiguration(config.LoadOptions{ExplicitFilePath: configFilePath})
	if loadError != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", loadError)
		return config.ApplicationConfiguration{}
	}
	return configuration
}

func warnToStderr(path string, walkError error) {
	fmt.Fprintf(os.Stderr, warningSkipPathFormat, path, walkError)
}

// createTreeCommand returns the tree subcommand.
func createTreeCommand(configFilePath *string) *cobra.Command {
	var exclusionPatterns []string
	var maxDepth int = -1
	var rawMode bool
	var includeGit bool
	var outputFormat string = types.FormatRaw
	var flatList bool
	var listRepositories bool
	var showSizes bool
	var noColor bool
	var tokensEnabled bool
	var tokenizerModel string = defaultTokenizerModelName
	var copyToClipboard bool
	var outPath string

	treeCommand := &cobra.Command{
		Use:     treeUse,
		Aliases: []string{treeAlias},
		Short:   treeShortDescription,
		Long:    treeLongDescription,
		Example: treeUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			rootPath := defaultPath
			if len(arguments) > 0 {
				rootPath = arguments[0]
			}

			configuration := loadConfiguration(*configFilePath).Tree
			if !command.Flags().Changed(formatFlagName) && configuration.Format != "" {
				outputFormat = configuration.Format
			}
			if !command.Flags().Changed(depthFlagName) && configuration.Depth != nil {
				maxDepth = *configuration.Depth
			}
			if !command.Flags().Changed(clipboardFlagName) && configuration.Clipboard != nil {
				copyToClipboard = *configuration.Clipboard
			}
			if !command.Flags().Changed(tokensFlagName) && configuration.Tokens.Enabled != nil {
				tokensEnabled = *configuration.Tokens.Enabled
			}
			if !command.Flags().Changed(modelFlagName) && configuration.Tokens.Model != "" {
				tokenizerModel = configuration.Tokens.Model
			}
			exclusionPatterns = append(exclusionPatterns, configuration.Exclude...)

			outputFormatLower := strings.ToLower(outputFormat)
			if !isSupportedFormat(outputFormatLower) {
				return fmt.Errorf(invalidFormatMessage, outputFormatLower)
			}

			if listRepositories {
				for _, repositoryName := range commands.ListRepositories(rootPath) {
					fmt.Println(repositoryName)
				}
				return nil
			}

			writingToFile := command.Flags().Changed(outFlagName)

			var tokenCounter tokenizer.Counter
			var resolvedModel string
			if tokensEnabled {
				createdCounter, model, counterError := tokenizer.NewCounter(tokenizerModel)
				if counterError != nil {
					return counterError
				}
				tokenCounter = createdCounter
				resolvedModel = model
			}

			builder := &commands.TreeBuilder{
				RootPath:      rootPath,
				RawMode:       rawMode,
				MaxDepth:      maxDepth,
				ExtraExcludes: exclusionPatterns,
				IncludeGit:    includeGit,
				TokenCounter:  tokenCounter,
				Warn:          warnToStderr,
			}
			var visibleSet scan.VisibleSet
			spinnerEnabled := outputFormatLower == types.FormatRaw && !writingToFile && !copyToClipboard
			scanError := runWithSpinner(command.Context(), os.Stderr, scanSpinnerLabel, spinnerEnabled,
				func(workContext context.Context, progress func(relativePath string)) error {
					builder.Progress = progress
					scannedSet, workError := builder.Scan(workContext)
					if workError != nil {
						return workError
					}
					visibleSet = scannedSet
					return nil
				})
			if scanError != nil {
				return scanError
			}

			var rendered string
			switch {
			case flatList:
				pathKeys := commands.FlatList(visibleSet)
				if outputFormatLower == types.FormatJSON {
					encoded, renderError := output.RenderJSON(pathKeys)
					if renderError != nil {
						return renderError
					}
					rendered = encoded + "\n"
				} else {
					var textBuilder strings.Builder
					output.WriteFlatList(&textBuilder, pathKeys)
					rendered = textBuilder.String()
				}
			default:
				rootNode := builder.BuildTree(visibleSet)
				if outputFormatLower == types.FormatJSON {
					encoded, renderError := output.RenderJSON(rootNode)
					if renderError != nil {
						return renderError
					}
					rendered = encoded + "\n"
				} else {
					rendered = output.RenderTreeText(rootNode, output.TreeRenderOptions{
						Color:       !noColor && !copyToClipboard && !writingToFile,
						ShowSizes:   showSizes,
						ShowTokens:  tokensEnabled,
						ShowSummary: true,
						Model:       resolvedModel,
					})
				}
			}

			if writingToFile {
				resolvedOutPath := outPath
				if resolvedOutPath == autoOutFlagValue {
					autoName, autoError := autoTreeOutName(rootPath, flatList, rawMode)
					if autoError != nil {
						return autoError
					}
					resolvedOutPath = autoName
				}
				if writeError := os.WriteFile(resolvedOutPath, []byte(rendered), 0o644); writeError != nil {
					return writeError
				}
				fmt.Printf(outputWrittenFormat, resolvedOutPath)
			} else {
				fmt.Print(rendered)
			}
			if copyToClipboard {
				if clipboardError := clipboard.NewService().Copy(rendered); clipboardError != nil {
					return clipboardError
				}
				fmt.Fprintf(os.Stderr, clipboardCopiedFormat, len(rendered))
			}
			if visibleSet.Interrupted {
				fmt.Fprintln(os.Stderr, interruptedNotice)
			}
			return nil
		},
	}

	treeCommand.Flags().StringArrayVarP(&exclusionPatterns, exclusionFlagName, exclusionFlagShort, nil, exclusionFlagDescription)
	treeCommand.Flags().IntVarP(&maxDepth, depthFlagName, depthFlagShort, -1, depthFlagDescription)
	treeCommand.Flags().BoolVar(&rawMode, rawFlagName, false, rawFlagDescription)
	treeCommand.Flags().BoolVar(&includeGit, includeGitFlagName, false, includeGitFlagDescription)
	treeCommand.Flags().StringVar(&outputFormat, formatFlagName, types.FormatRaw, formatFlagDescription)
	treeCommand.Flags().BoolVar(&flatList, flatFlagName, false, flatFlagDescription)
	treeCommand.Flags().BoolVar(&listRepositories, listFlagName, false, listFlagDescription)
	treeCommand.Flags().BoolVar(&showSizes, sizesFlagName, false, sizesFlagDescription)
	treeCommand.Flags().BoolVar(&noColor, noColorFlagName, false, noColorFlagDescription)
	treeCommand.Flags().BoolVar(&tokensEnabled, tokensFlagName, false, tokensFlagDescription)
	treeCommand.Flags().StringVar(&tokenizerModel, modelFlagName, defaultTokenizerModelName, modelFlagDescription)
	treeCommand.Flags().BoolVar(&copyToClipboard, clipboardFlagName, false, clipboardFlagDescription)
	treeCommand.Flags().StringVarP(&outPath, outFlagName, outFlagShort, "", outFlagDescription)
	treeCommand.Flags().Lookup(outFlagName).NoOptDefVal = autoOutFlagValue
	return treeCommand
}

// autoTreeOutName derives the output filename from the root's base name.
func autoTreeOutName(rootPath string, flatList bool, rawMode bool) (string, error) {
	absoluteRoot, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		return "", absoluteError
	}
	suffix := "tree"
	if flatList {
		suffix = "flat_tree"
	}
	if rawMode {
		suffix += "_raw"
	}
	return fmt.Sprintf("%s_%s.txt", filepath.Base(absoluteRoot), suffix), nil
}

// createLocCommand returns the loc subcommand.
func createLocCommand(configFilePath *string) *cobra.Command {
	var exclusionPatterns []string
	var rawMode bool
	var outputFormat string = types.FormatRaw
	var showPercentages bool
	var noColor bool
	var copyToClipboard bool
	var outPath string

	locCommand := &cobra.Command{
		Use:     locUse,
		Aliases: []string{locAlias},
		Short:   locShortDescription,
		Long:    locLongDescription,
		Example: locUsageExample,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(command *cobra.Command, arguments []string) error {
			rootPath := defaultPath
			if len(arguments) > 0 {
				rootPath = arguments[0]
			}

			configuration := loadConfiguration(*configFilePath).Loc
			if !command.Flags().Changed(formatFlagName) && configuration.Format != "" {
				outputFormat = configuration.Format
			}
			exclusionPatterns = append(exclusionPatterns, configuration.Exclude...)

			outputFormatLower := strings.ToLower(outputFormat)
			if !isSupportedFormat(outputFormatLower) {
				return fmt.Errorf(invalidFormatMessage, outputFormatLower)
			}
			writingToFile := command.Flags().Changed(outFlagName)

			var report types.LocReport
			spinnerEnabled := outputFormatLower == types.FormatRaw && !writingToFile
			runError := runWithSpinner(command.Context(), os.Stderr, scanSpinnerLabel, spinnerEnabled,
				func(workContext context.Context, progress func(relativePath string)) error {
					engine := &commands.LocEngine{
						RootPath:      rootPath,
						RawMode:       rawMode,
						ExtraExcludes: exclusionPatterns,
						Progress:      progress,
						Warn:          warnToStderr,
					}
					engineReport, engineError := engine.Run(workContext)
					if engineError != nil {
						return engineError
					}
					report = engineReport
					return nil
				})
			if runError != nil {
				return runError
			}

			var rendered string
			if outputFormatLower == types.FormatJSON {
				encoded, renderError := output.RenderJSON(report)
				if renderError != nil {
					return renderError
				}
				rendered = encoded + "\n"
			} else {
				var textBuilder strings.Builder
				output.WriteLocReport(&textBuilder, report, output.LocRenderOptions{
					Color:       !noColor && !copyToClipboard && !writingToFile,
					ShowPercent: showPercentages,
				})
				rendered = textBuilder.String()
			}

			if writingToFile {
				resolvedOutPath := outPath
				if resolvedOutPath == autoOutFlagValue {
					autoName, autoError := autoLocOutName(rootPath, outputFormatLower == types.FormatJSON)
					if autoError != nil {
						return autoError
					}
					resolvedOutPath = autoName
				}
				if writeError := os.WriteFile(resolvedOutPath, []byte(rendered), 0o644); writeError != nil {
					return writeError
				}
				fmt.Printf(outputWrittenFormat, resolvedOutPath)
			} else {
				fmt.Print(rendered)
			}
			if copyToClipboard {
				if clipboardError := clipboard.NewService().Copy(rendered); clipboardError != nil {
					return clipboardError
				}
				fmt.Fprintf(os.Stderr, clipboardCopiedFormat, len(rendered))
			}
			return nil
		},
	}

	locCommand.Flags().StringArrayVarP(&exclusionPatterns, exclusionFlagName, exclusionFlagShort, nil, exclusionFlagDescription)
	locCommand.Flags().BoolVar(&rawMode, rawFlagName, false, rawFlagDescription)
	locCommand.Flags().StringVar(&outputFormat, formatFlagName, types.FormatRaw, formatFlagDescription)
	locCommand.Flags().BoolVar(&showPercentages, statsFlagName, false, locStatsFlagDescription)
	locCommand.Flags().BoolVar(&noColor, noColorFlagName, false, noColorFlagDescription)
	locCommand.Flags().BoolVar(&copyToClipboard, clipboardFlagName, false, clipboardFlagDescription)
	locCommand.Flags().StringVarP(&outPath, outFlagName, outFlagShort, "", outFlagDescription)
	locCommand.Flags().Lookup(outFlagName).NoOptDefVal = autoOutFlagValue
	return locCommand
}

// autoLocOutName places the report next to the analyzed tree, named after it.
func autoLocOutName(rootPath string, jsonFormat bool) (string, error) {
	absoluteRoot, absoluteError := filepath.Abs(rootPath)
	if absoluteError != nil {
		return "", absoluteError
	}
	extension := ".txt"
	if jsonFormat {
		extension = ".json"
	}
	return filepath.Join(absoluteRoot, filepath.Base(absoluteRoot)+"_loc"+extension), nil
}

// createCopyCommand returns the copy subcommand. With a single argument the
// source defaults to the current directory and the argument names the
// destination.
func createCopyCommand(configFilePath *string) *cobra.Command {
	var exclusionPatterns []string
	var dryRun bool
	var zipOutput bool
	var envOnly bool
	var extensions []string
	var maxSizeText string
	var onlyRepositories []string
	var force bool
	var skipExisting bool
	var includeGit bool
	var rawMode bool
	var listRepositories bool
	var showStats bool
	var showAllStats bool
	var verbose bool
	var quiet bool

	copyCommand := &cobra.Command{
		Use:     copyUse,
		Aliases: []string{copyAlias},
		Short:   copyShortDescription,
		Long:    copyLongDescription,
		Example: copyUsageExample,
		Args:    cobra.MaximumNArgs(2),
		RunE: func(command *cobra.Command, arguments []string) error {
			sourcePath := defaultPath
			destinationPath := ""
			switch len(arguments) {
			case 1:
				destinationPath = arguments[0]
			case 2:
				sourcePath = arguments[0]
				destinationPath = arguments[1]
			}

			configuration := loadConfiguration(*configFilePath).Copy
			if !command.Flags().Changed(maxSizeFlagName) && configuration.MaxSize != "" {
				maxSizeText = configuration.MaxSize
			}
			if !command.Flags().Changed(zipFlagName) && configuration.Zip != nil {
				zipOutput = *configuration.Zip
			}
			if !command.Flags().Changed(skipExistingFlagName) && configuration.SkipExisting != nil {
				skipExisting = *configuration.SkipExisting
			}
			exclusionPatterns = append(exclusionPatterns, configuration.Exclude...)

			if listRepositories {
				for _, repositoryName := range commands.ListRepositories(sourcePath) {
					fmt.Println(repositoryName)
				}
				return nil
			}
			if destinationPath == "" {
				return errors.New(destinationRequiredError)
			}

			maxFileSize, parseError := utils.ParseSize(maxSizeText)
			if parseError != nil {
				return parseError
			}

			var verboseSink func(destinationRelativePath string)
			if verbose && !quiet {
				verboseSink = func(destinationRelativePath string) {
					fmt.Printf(verboseCopiedFormat, destinationRelativePath)
				}
			}

			var summary types.CopySummary
			spinnerEnabled := !dryRun && !quiet && !verbose
			runError := runWithSpinner(command.Context(), os.Stderr, copySpinnerLabel, spinnerEnabled,
				func(workContext context.Context, progress func(relativePath string)) error {
					engine := &commands.CopyEngine{
						SourcePath:       sourcePath,
						DestinationPath:  destinationPath,
						DryRun:           dryRun,
						Zip:              zipOutput,
						Force:            force,
						SkipExisting:     skipExisting,
						EnvOnly:          envOnly,
						Extensions:       extensions,
						MaxFileSize:      maxFileSize,
						OnlyRepositories: onlyRepositories,
						ExtraExcludes:    exclusionPatterns,
						IncludeGit:       includeGit,
						RawMode:          rawMode,
						Progress:         progress,
						Verbose:          verboseSink,
						Warn:             warnToStderr,
					}
					engineSummary, engineError := engine.Run(workContext)
					if engineError != nil {
						return engineError
					}
					summary = engineSummary
					return nil
				})
			if runError != nil {
				return runError
			}

			switch {
			case showAllStats:
			case showStats:
				if len(summary.ExtensionStats) > statsTopExtensionCount {
					summary.ExtensionStats = summary.ExtensionStats[:statsTopExtensionCount]
				}
			default:
				summary.ExtensionStats = nil
			}
			if !quiet {
				output.WriteCopySummary(os.Stdout, summary)
			}
			return nil
		},
	}

	copyCommand.Flags().StringArrayVarP(&exclusionPatterns, exclusionFlagName, exclusionFlagShort, nil, exclusionFlagDescription)
	copyCommand.Flags().BoolVar(&dryRun, dryRunFlagName, false, dryRunFlagDescription)
	copyCommand.Flags().BoolVar(&zipOutput, zipFlagName, false, zipFlagDescription)
	copyCommand.Flags().BoolVar(&envOnly, envFlagName, false, envFlagDescription)
	copyCommand.Flags().StringSliceVar(&extensions, extensionsFlagName, nil, extensionsFlagDescription)
	copyCommand.Flags().StringVar(&maxSizeText, maxSizeFlagName, "", maxSizeFlagDescription)
	copyCommand.Flags().StringSliceVar(&onlyRepositories, onlyFlagName, nil, onlyFlagDescription)
	copyCommand.Flags().BoolVar(&force, forceFlagName, false, forceFlagDescription)
	copyCommand.Flags().BoolVar(&skipExisting, skipExistingFlagName, false, skipExistingFlagDescription)
	copyCommand.Flags().BoolVar(&includeGit, includeGitFlagName, false, includeGitFlagDescription)
	copyCommand.Flags().BoolVar(&rawMode, rawFlagName, false, copyRawFlagDescription)
	copyCommand.Flags().BoolVar(&listRepositories, listFlagName, false, listFlagDescription)
	copyCommand.Flags().BoolVar(&showStats, statsFlagName, false, statsFlagDescription)
	copyCommand.Flags().BoolVar(&showAllStats, statsAllFlagName, false, statsAllFlagDescription)
	copyCommand.Flags().BoolVarP(&verbose, verboseFlagName, verboseFlagShort, false, verboseFlagDescription)
	copyCommand.Flags().BoolVarP(&quiet, quietFlagName, quietFlagShort, false, quietFlagDescription)
	return copyCommand
}

// createConfigCommand returns the config subcommand with its init action.
func createConfigCommand() *cobra.Command {
	configCommand := &cobra.Command{
		Use:   configUse,
		Short: configShortDescription,
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	var writeGlobal bool
	var force bool
	initCommand := &cobra.Command{
		Use:   configInitUse,
		Short: configInitShortDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if writeGlobal {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initError != nil {
				return initError
			}
			fmt.Printf("Configuration written to %s\n", writtenPath)
			return nil
		},
	}
	initCommand.Flags().BoolVar(&writeGlobal, globalFlagName, false, globalFlagDescription)
	initCommand.Flags().BoolVar(&force, forceFlagName, false, configInitForceDescription)

	configCommand.AddCommand(initCommand)
	return configCommand
}
