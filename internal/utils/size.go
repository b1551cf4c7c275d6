package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatFileSize converts a byte length into a human-readable lower-case unit string.
func FormatFileSize(bytes int64) string {
	if bytes < 0 {
		return "0b"
	}
	units := []string{"b", "kb", "mb", "gb", "tb", "pb"}
	value := float64(bytes)
	unitIndex := 0
	for value >= 1024 && unitIndex < len(units)-1 {
		value /= 1024
		unitIndex++
	}
	if unitIndex == 0 {
		return fmt.Sprintf("%db", bytes)
	}
	if value < 10 {
		formatted := fmt.Sprintf("%.1f", value)
		formatted = strings.TrimSuffix(formatted, ".0")
		return formatted + units[unitIndex]
	}
	return fmt.Sprintf("%.0f%s", value, units[unitIndex])
}

// sizeSuffixMultipliers maps size suffix letters to byte multipliers.
var sizeSuffixMultipliers = map[byte]int64{
	'K': 1024,
	'M': 1024 * 1024,
	'G': 1024 * 1024 * 1024,
}

// ParseSize converts a human size string such as "10M", "500K", or "1.5G"
// into a byte count. A bare number is interpreted as bytes. An empty string
// returns zero without error.
func ParseSize(sizeText string) (int64, error) {
	trimmedText := strings.ToUpper(strings.TrimSpace(sizeText))
	if trimmedText == "" {
		return 0, nil
	}

	trimmedText = strings.TrimSuffix(trimmedText, "B")
	multiplier := int64(1)
	if len(trimmedText) > 0 {
		lastCharacter := trimmedText[len(trimmedText)-1]
		if suffixMultiplier, hasSuffix := sizeSuffixMultipliers[lastCharacter]; hasSuffix {
			multiplier = suffixMultiplier
			trimmedText = trimmedText[:len(trimmedText)-1]
		}
	}

	numericValue, parseError := strconv.ParseFloat(strings.TrimSpace(trimmedText), 64)
	if parseError != nil || numericValue < 0 {
		return 0, fmt.Errorf("invalid size value '%s'", sizeText)
	}
	return int64(numericValue * float64(multiplier)), nil
}
