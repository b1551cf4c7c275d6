package gitignore

import (
	"bufio"
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/ayuferov/grt/internal/utils"
)

// Rule is a single compiled ignore rule.
type Rule struct {
	Pattern         string
	IsNegation      bool
	IsDirectoryOnly bool
}

// RuleSet is an ordered sequence of rules parsed from an ignore-rule file.
// Later rules override earlier ones for the same path.
type RuleSet struct {
	rules []Rule
}

// ParseRuleSet compiles the ignore-rule file at the given path. A missing,
// unreadable, or malformed file yields an empty rule set.
func ParseRuleSet(ruleFilePath string) RuleSet {
	fileHandle, openError := os.Open(ruleFilePath) // #nosec G304 -- path is rooted at the scan root
	if openError != nil {
		return RuleSet{}
	}
	defer fileHandle.Close()

	var compiledRules []Rule
	lineScanner := bufio.NewScanner(fileHandle)
	for lineScanner.Scan() {
		trimmedLine := strings.TrimSpace(lineScanner.Text())
		if trimmedLine == "" || strings.HasPrefix(trimmedLine, "#") {
			continue
		}

		isNegation := strings.HasPrefix(trimmedLine, "!")
		if isNegation {
			trimmedLine = trimmedLine[1:]
		}
		isDirectoryOnly := strings.HasSuffix(trimmedLine, "/")
		if isDirectoryOnly {
			trimmedLine = strings.TrimSuffix(trimmedLine, "/")
		}
		if trimmedLine == "" {
			continue
		}
		compiledRules = append(compiledRules, Rule{
			Pattern:         trimmedLine,
			IsNegation:      isNegation,
			IsDirectoryOnly: isDirectoryOnly,
		})
	}
	if scanError := lineScanner.Err(); scanError != nil {
		return RuleSet{}
	}
	return RuleSet{rules: compiledRules}
}

// Len returns the number of compiled rules.
func (ruleSet RuleSet) Len() int {
	return len(ruleSet.rules)
}

// Match evaluates every rule in file order against the relative path and
// keeps the last matching rule's verdict, so a later negation re-includes a
// path matched by an earlier rule. Directory-only rules are skipped when the
// path is a file. Each rule is matched against both the path's base name and
// its full relative path using the simple non-double-star glob subset; this
// is a deliberate approximation of the authoritative semantics.
func (ruleSet RuleSet) Match(relativePath string, isDirectory bool) bool {
	normalizedPath := filepath.ToSlash(relativePath)
	baseName := path.Base(normalizedPath)

	ignored := false
	for _, currentRule := range ruleSet.rules {
		if currentRule.IsDirectoryOnly && !isDirectory {
			continue
		}
		baseMatched, baseMatchError := path.Match(currentRule.Pattern, baseName)
		fullMatched, fullMatchError := path.Match(currentRule.Pattern, normalizedPath)
		matched := (baseMatchError == nil && baseMatched) || (fullMatchError == nil && fullMatched)
		if matched {
			ignored = !currentRule.IsNegation
		}
	}
	return ignored
}

// NewRuleSetResolver builds the fallback resolver from the ignore-rule file
// at the root. With no rules present nothing is ignored by this phase.
func NewRuleSetResolver(rootPath string) Resolver {
	ruleSet := ParseRuleSet(filepath.Join(rootPath, utils.GitIgnoreFileName))
	return ResolverFunc(func(executionContext context.Context, relativeFilePaths []string) PathSet {
		ignoredPaths := PathSet{}
		if ruleSet.Len() == 0 {
			return ignoredPaths
		}
		for _, relativePath := range relativeFilePaths {
			if executionContext.Err() != nil {
				return ignoredPaths
			}
			isDirectory := strings.HasSuffix(relativePath, "/")
			if ruleSet.Match(strings.TrimSuffix(relativePath, "/"), isDirectory) {
				ignoredPaths[relativePath] = struct{}{}
			}
		}
		return ignoredPaths
	})
}
