package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/PolarWolf314/n8nsync/internal/ui"
	"github.com/PolarWolf314/n8nsync/internal/utils"
	"github.com/briandowns/spinner"
)

// startSpinner creates and starts a spinner writing to w.
// The spinner stays off in verbose or debug mode and when w is not a
// terminal, so log lines and captured test output are never interleaved
// with spinner frames.
//
// spinner.FinalMSG values do NOT need trailing newlines. The cleanup function
// calls ui.EnsureNewline() on the final message before printing it.
func startSpinner(w io.Writer, message string) (*spinner.Spinner, func()) {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(w))
	s.Suffix = " " + message

	if err := s.Color("cyan"); err != nil {
		Logger.Warnf("Failed to set spinner color: %v", err)
	}

	enabled := !verbose && !debug && utils.IsTerminalWriter(w)
	if enabled {
		Logger.Debugf("Starting spinner with message: %s", message)
		s.Start()
	} else {
		Logger.Infof("%s", message)
	}

	cleanup := func() {
		finalMsg := ""
		if s.FinalMSG != "" {
			finalMsg = ui.EnsureNewline(s.FinalMSG)
			// Clear FinalMSG so s.Stop() doesn't print it.
			s.FinalMSG = ""
		}

		if enabled {
			s.Stop()
		}

		if finalMsg != "" {
			fmt.Fprint(w, finalMsg)
		}
	}

	return s, cleanup
}

// printAbove writes line to w without tearing the spinner frame.
func printAbove(s *spinner.Spinner, w io.Writer, line string) {
	if s.Active() {
		s.Stop()
		defer s.Start()
	}
	fmt.Fprint(w, ui.EnsureNewline(line))
}

// setSpinnerSuffix updates the spinner message while it is running.
func setSpinnerSuffix(s *spinner.Spinner, message string) {
	s.Lock()
	s.Suffix = " " + message
	s.Unlock()
}
