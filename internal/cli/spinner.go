package cli

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	spinnerInterval  = 100 * time.Millisecond
	spinnerEraseLine = "\r\x1b[K"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// progressSpinner animates on stderr while long scans run. The work callback
// reports the path currently being visited through the progress function.
type progressSpinner struct {
	writer      io.Writer
	label       string
	currentPath atomic.Value
}

func (spinner *progressSpinner) update(relativePath string) {
	spinner.currentPath.Store(relativePath)
}

func (spinner *progressSpinner) animate(done <-chan struct{}) {
	ticker := time.NewTicker(spinnerInterval)
	defer ticker.Stop()

	frameIndex := 0
	for {
		select {
		case <-done:
			fmt.Fprint(spinner.writer, spinnerEraseLine)
			return
		case <-ticker.C:
			currentPath, _ := spinner.currentPath.Load().(string)
			fmt.Fprintf(spinner.writer, "%s%s %s %s", spinnerEraseLine, spinnerFrames[frameIndex%len(spinnerFrames)], spinner.label, currentPath)
			frameIndex++
		}
	}
}

// runWithSpinner runs work while animating a spinner. When disabled, work runs
// directly with a no-op progress function.
func runWithSpinner(executionContext context.Context, writer io.Writer, label string, enabled bool, work func(workContext context.Context, progress func(relativePath string)) error) error {
	if !enabled {
		return work(executionContext, func(string) {})
	}

	spinner := &progressSpinner{writer: writer, label: label}
	group, groupContext := errgroup.WithContext(executionContext)
	done := make(chan struct{})

	group.Go(func() error {
		defer close(done)
		return work(groupContext, spinner.update)
	})
	group.Go(func() error {
		spinner.animate(done)
		return nil
	})
	return group.Wait()
}
