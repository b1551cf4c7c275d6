package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestRunWithSpinnerAnimatesAndErasesLine(t *testing.T) {
	var buffer bytes.Buffer
	workError := runWithSpinner(context.Background(), &buffer, "scanning", true,
		func(_ context.Context, progress func(relativePath string)) error {
			progress("src/a.py")
			time.Sleep(3 * spinnerInterval)
			return nil
		})
	if workError != nil {
		t.Fatalf("runWithSpinner: %v", workError)
	}

	rendered := buffer.String()
	if !strings.Contains(rendered, "scanning") {
		t.Fatalf("expected spinner label in output: %q", rendered)
	}
	if !strings.Contains(rendered, "src/a.py") {
		t.Fatalf("expected reported path in output: %q", rendered)
	}
	if !strings.HasSuffix(rendered, spinnerEraseLine) {
		t.Fatalf("spinner must erase its line when work completes: %q", rendered)
	}
}

func TestRunWithSpinnerDisabledWritesNothing(t *testing.T) {
	var buffer bytes.Buffer
	progressCalls := 0
	workError := runWithSpinner(context.Background(), &buffer, "scanning", false,
		func(_ context.Context, progress func(relativePath string)) error {
			progress("src/a.py")
			progressCalls++
			return nil
		})
	if workError != nil {
		t.Fatalf("runWithSpinner: %v", workError)
	}
	if buffer.Len() != 0 {
		t.Fatalf("disabled spinner must not write: %q", buffer.String())
	}
	if progressCalls != 1 {
		t.Fatal("work must run exactly once when the spinner is disabled")
	}
}
