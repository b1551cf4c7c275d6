// Package gitignore decides which candidate paths are ignored. The primary
// implementation shells out to git check-ignore; a simplified rule matcher
// compiled from the root .gitignore serves as the fallback when Git is
// unavailable. Resolution never fails the caller: every degradation path
// ends in "nothing additional is ignored".
package gitignore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/ayuferov/grt/internal/utils"
)

// DefaultTimeout bounds a single git check-ignore invocation so a hung
// external process cannot stall the scan.
const DefaultTimeout = 30 * time.Second

const (
	gitExecutableName     = "git"
	checkIgnoreSubcommand = "check-ignore"
	stdinFlag             = "--stdin"
	nullDelimiterFlag     = "-z"
)

// PathSet is a membership-only set of relative paths.
type PathSet map[string]struct{}

// Contains reports whether the set holds the given path.
func (pathSet PathSet) Contains(relativePath string) bool {
	_, present := pathSet[relativePath]
	return present
}

// Resolver reports the ignored subset of candidate file paths relative to a
// fixed repository root. Implementations must not return errors; inability
// to resolve degrades to an empty result.
type Resolver interface {
	ResolveIgnored(executionContext context.Context, relativeFilePaths []string) PathSet
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(executionContext context.Context, relativeFilePaths []string) PathSet

// ResolveIgnored invokes the wrapped function.
func (resolve ResolverFunc) ResolveIgnored(executionContext context.Context, relativeFilePaths []string) PathSet {
	return resolve(executionContext, relativeFilePaths)
}

// IsGitRepository reports whether the directory contains Git metadata.
func IsGitRepository(directoryPath string) bool {
	gitInfo, statError := os.Stat(filepath.Join(directoryPath, utils.GitDirectoryName))
	return statError == nil && gitInfo.IsDir()
}

// NewResolver selects the resolution strategy for the given root. A Git
// working tree gets the authoritative check-ignore resolver with the rule-set
// fallback behind it; any other directory gets the fallback alone.
func NewResolver(rootPath string) Resolver {
	fallback := NewRuleSetResolver(rootPath)
	if !IsGitRepository(rootPath) {
		return fallback
	}
	return &GitResolver{RootPath: rootPath, Timeout: DefaultTimeout, Fallback: fallback}
}

// GitResolver resolves ignore status through git check-ignore using the
// null-delimited stdin protocol. Exit codes 0 (some ignored) and 1 (none
// ignored) both count as success; everything else routes to Fallback.
type GitResolver struct {
	RootPath string
	Timeout  time.Duration
	Fallback Resolver
}

// ResolveIgnored submits the sanitized candidate list to git check-ignore and
// returns the ignored subset. On any failure it degrades to the fallback
// resolver, or to an empty set when no fallback is configured.
func (resolver *GitResolver) ResolveIgnored(executionContext context.Context, relativeFilePaths []string) PathSet {
	ignoredPaths, resolutionError := resolver.resolveWithAuthority(executionContext, relativeFilePaths)
	if resolutionError == nil {
		return ignoredPaths
	}
	if resolver.Fallback != nil {
		return resolver.Fallback.ResolveIgnored(executionContext, relativeFilePaths)
	}
	return PathSet{}
}

func (resolver *GitResolver) resolveWithAuthority(executionContext context.Context, relativeFilePaths []string) (PathSet, error) {
	safePaths := SanitizePaths(relativeFilePaths)
	if len(safePaths) == 0 {
		return PathSet{}, nil
	}

	timeout := resolver.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	boundedContext, cancelFunction := context.WithTimeout(executionContext, timeout)
	defer cancelFunction()

	// #nosec G204 -- fixed argument list; candidate paths travel via stdin.
	checkIgnoreCommand := exec.CommandContext(boundedContext, gitExecutableName, checkIgnoreSubcommand, stdinFlag, nullDelimiterFlag)
	checkIgnoreCommand.Dir = resolver.RootPath
	checkIgnoreCommand.Stdin = bytes.NewReader(joinNullDelimited(safePaths))

	var standardOutput bytes.Buffer
	checkIgnoreCommand.Stdout = &standardOutput

	runError := checkIgnoreCommand.Run()
	if runError != nil {
		var exitError *exec.ExitError
		// Exit code 1 means no paths are ignored; every other failure is
		// treated as an unavailable authority.
		if !errors.As(runError, &exitError) || exitError.ExitCode() != 1 {
			return nil, runError
		}
	}

	ignoredPaths := PathSet{}
	for _, outputSegment := range bytes.Split(standardOutput.Bytes(), []byte{0}) {
		if len(outputSegment) == 0 {
			continue
		}
		ignoredPaths[string(outputSegment)] = struct{}{}
	}
	return ignoredPaths, nil
}

// SanitizePaths drops candidates containing null bytes or control characters
// outside tab and newline, defending the external invocation against crafted
// filenames.
func SanitizePaths(relativePaths []string) []string {
	safePaths := make([]string, 0, len(relativePaths))
	for _, candidatePath := range relativePaths {
		if isSafePath(candidatePath) {
			safePaths = append(safePaths, candidatePath)
		}
	}
	return safePaths
}

func isSafePath(candidatePath string) bool {
	for _, character := range candidatePath {
		if character == 0 {
			return false
		}
		if character < 0x20 && character != '\t' && character != '\n' {
			return false
		}
	}
	return true
}

func joinNullDelimited(relativePaths []string) []byte {
	var buffer bytes.Buffer
	for pathIndex, relativePath := range relativePaths {
		if pathIndex > 0 {
			buffer.WriteByte(0)
		}
		buffer.WriteString(relativePath)
	}
	return buffer.Bytes()
}
