package utils_test

import (
	"testing"

	"github.com/ayuferov/grt/internal/utils"
)

func TestFormatFileSize(t *testing.T) {
	testCases := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "negative", bytes: -1, expected: "0b"},
		{name: "zero", bytes: 0, expected: "0b"},
		{name: "bytes", bytes: 512, expected: "512b"},
		{name: "one kilobyte", bytes: 1024, expected: "1kb"},
		{name: "fractional kilobyte", bytes: 1536, expected: "1.5kb"},
		{name: "ten megabytes", bytes: 10 * 1024 * 1024, expected: "10mb"},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result := utils.FormatFileSize(testCase.bytes)
			if result != testCase.expected {
				t.Fatalf("expected %s, got %s", testCase.expected, result)
			}
		})
	}
}

func TestParseSize(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expected  int64
		expectErr bool
	}{
		{name: "empty", input: "", expected: 0},
		{name: "bare bytes", input: "4096", expected: 4096},
		{name: "kilobytes", input: "500K", expected: 500 * 1024},
		{name: "megabytes", input: "10M", expected: 10 * 1024 * 1024},
		{name: "gigabytes", input: "1G", expected: 1024 * 1024 * 1024},
		{name: "fractional", input: "1.5M", expected: int64(1.5 * 1024 * 1024)},
		{name: "lower case with suffix b", input: "2kb", expected: 2048},
		{name: "whitespace", input: " 10M ", expected: 10 * 1024 * 1024},
		{name: "garbage", input: "lots", expectErr: true},
		{name: "negative", input: "-5M", expectErr: true},
	}
	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			result, parseError := utils.ParseSize(testCase.input)
			if testCase.expectErr {
				if parseError == nil {
					t.Fatalf("expected error for %q, got %d", testCase.input, result)
				}
				return
			}
			if parseError != nil {
				t.Fatalf("ParseSize(%q) failed: %v", testCase.input, parseError)
			}
			if result != testCase.expected {
				t.Fatalf("expected %d, got %d", testCase.expected, result)
			}
		})
	}
}
