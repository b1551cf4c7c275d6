// Package tokenizer estimates token counts for text files using tiktoken
// encodings.
package tokenizer

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/pkoukk/tiktoken-go"
)

// Counter estimates token counts for text content.
type Counter interface {
	Name() string
	CountString(input string) (int, error)
}

const (
	defaultModel        = "gpt-4o"
	defaultEncodingName = "cl100k_base"
)

// NewCounter returns a Counter for the requested model, falling back to the
// default encoding for unrecognized model names. It returns the resolved
// model or encoding name alongside the counter.
func NewCounter(model string) (Counter, string, error) {
	resolvedModel := strings.ToLower(strings.TrimSpace(model))
	if resolvedModel == "" {
		resolvedModel = defaultModel
	}

	encoding, encodingError := tiktoken.EncodingForModel(resolvedModel)
	if encodingError == nil && encoding != nil {
		return encodingCounter{encoding: encoding, name: resolvedModel}, resolvedModel, nil
	}

	fallbackEncoding, fallbackError := tiktoken.GetEncoding(defaultEncodingName)
	if fallbackError != nil {
		return nil, "", fmt.Errorf("initialize fallback tokenizer: %w", fallbackError)
	}
	return encodingCounter{encoding: fallbackEncoding, name: defaultEncodingName}, defaultEncodingName, nil
}

type encodingCounter struct {
	encoding *tiktoken.Tiktoken
	name     string
}

func (counter encodingCounter) Name() string {
	return counter.name
}

func (counter encodingCounter) CountString(input string) (int, error) {
	return len(counter.encoding.Encode(input, nil, nil)), nil
}

// CountFile reads a file and counts its tokens. Binary content (invalid
// UTF-8) is reported as zero tokens without error.
func CountFile(counter Counter, filePath string) (int, error) {
	fileContent, readError := os.ReadFile(filePath) // #nosec G304 -- path comes from the scanner
	if readError != nil {
		return 0, readError
	}
	if !utf8.Valid(fileContent) {
		return 0, nil
	}
	return counter.CountString(string(fileContent))
}
