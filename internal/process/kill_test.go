package process

// Notes:
// - KillProcessGroup: we only test with an invalid PID to verify the function
//   doesn't panic. Real kill behavior is covered by the ExecRunner cancellation
//   test in the root package.
// - Cannot test with PID 0 (kills current process group) or real PIDs.
// These are acceptable gaps: we test observable behavior, not syscall internals.

import (
	"os/exec"
	"testing"
)

// ---------------------------------------------------------------------------
// TestKillProcessGroup - Invalid PID Handling
// ---------------------------------------------------------------------------

func TestKillProcessGroup_InvalidPID(t *testing.T) {
	t.Parallel()

	// PID 0 would target the current process group.
	KillProcessGroup(999999999)
}

// ---------------------------------------------------------------------------
// TestSetProcessGroup - SysProcAttr Initialization
// ---------------------------------------------------------------------------

func TestSetProcessGroup(t *testing.T) {
	t.Parallel()

	cmd := exec.Command("true")
	SetProcessGroup(cmd)
	if cmd.SysProcAttr == nil {
		t.Fatal("SysProcAttr should be set")
	}

	// Calling twice keeps the existing attributes.
	attr := cmd.SysProcAttr
	SetProcessGroup(cmd)
	if cmd.SysProcAttr != attr {
		t.Error("SetProcessGroup should reuse existing SysProcAttr")
	}
}
