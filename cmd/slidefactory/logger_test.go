package main

// Notes:
// - cliLogger: we test the quiet/verbose matrix and where each level goes.
// - Color codes: fatih/color disables them when the output is not a
//   terminal, which is always the case for a bytes.Buffer.
// These are acceptable gaps: we test observable behavior, not implementation details.

import (
	"bytes"
	"errors"
	"testing"
)

// ---------------------------------------------------------------------------
// TestCLILogger - Output levels
// ---------------------------------------------------------------------------

func TestCLILogger(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		quiet      bool
		verbose    bool
		wantStdout string
	}{
		{"default shows info", false, false, "info\n"},
		{"verbose shows both", false, true, "info\nverbose\n"},
		{"quiet hides info", true, false, ""},
		{"quiet wins over verbose", true, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stdout, stderr bytes.Buffer
			l := newCLILogger(&Environment{Stdout: &stdout, Stderr: &stderr}, tt.quiet, tt.verbose)
			l.Info("info")
			l.Verbose("verbose")
			l.Error("broken")

			if stdout.String() != tt.wantStdout {
				t.Errorf("stdout = %q, want %q", stdout.String(), tt.wantStdout)
			}
			if stderr.String() != "error: broken\n" {
				t.Errorf("stderr = %q, want %q", stderr.String(), "error: broken\n")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestReportError - Command failures go to stderr
// ---------------------------------------------------------------------------

func TestReportError(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	reportError(&Environment{Stdout: &stdout, Stderr: &stderr}, errors.New("pandoc failed: \"pandoc\" exited with code 64"))

	if stdout.Len() != 0 {
		t.Errorf("stdout = %q, want empty", stdout.String())
	}
	want := "error: pandoc failed: \"pandoc\" exited with code 64\n"
	if stderr.String() != want {
		t.Errorf("stderr = %q, want %q", stderr.String(), want)
	}
}
