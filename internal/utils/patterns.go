package utils

// ConfigFileName is the per-project configuration file name.
const ConfigFileName = ".grt.yaml"

// GlobalConfigDirectoryName is the configuration directory under the user home.
const GlobalConfigDirectoryName = ".grt"

// DeduplicatePatterns removes duplicate patterns while preserving order.
func DeduplicatePatterns(patterns []string) []string {
	seenPatterns := make(map[string]struct{}, len(patterns))
	deduplicated := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		if _, seen := seenPatterns[pattern]; seen {
			continue
		}
		seenPatterns[pattern] = struct{}{}
		deduplicated = append(deduplicated, pattern)
	}
	return deduplicated
}
