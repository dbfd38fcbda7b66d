package slidefactory

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/kballard/go-shellquote"

	"github.com/alnah/go-slidefactory/internal/hints"
	"github.com/alnah/go-slidefactory/internal/process"
)

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) (stdout string, stderr string, err error)
}

// ExecRunner implements CommandRunner using os/exec. No shell is involved.
// Each command runs in its own process group, killed as a whole when ctx
// is canceled, so Chromium helpers do not outlive an interrupted run.
type ExecRunner struct{}

// waitDelay bounds how long Wait blocks on output pipes after a kill.
const waitDelay = 5 * time.Second

func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (string, string, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	process.SetProcessGroup(cmd)
	cmd.Cancel = func() error {
		process.KillProcessGroup(cmd.Process.Pid)
		return cmd.Process.Kill()
	}
	cmd.WaitDelay = waitDelay

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err != nil && ctx.Err() != nil {
		return stdout.String(), stderr.String(), ctx.Err()
	}
	return stdout.String(), stderr.String(), err
}

var _ CommandRunner = (*ExecRunner)(nil)

// stage identifies which external tool of the pipeline ran.
type stage int

const (
	stageEngine stage = iota
	stageBrowser
	stagePostProcess
)

func (s stage) sentinel() error {
	switch s {
	case stageBrowser:
		return ErrBrowserFailed
	case stagePostProcess:
		return ErrPostProcessFailed
	default:
		return ErrEngineFailed
	}
}

// notFoundHint tells how to point at the program of the stage.
func (s stage) notFoundHint() string {
	switch s {
	case stageBrowser:
		return hints.ForToolNotFound("browser", "SLIDEFACTORY_BROWSER")
	case stagePostProcess:
		return hints.ForToolNotFound("gs", "SLIDEFACTORY_GS")
	default:
		return hints.ForToolNotFound("pandoc", "SLIDEFACTORY_PANDOC")
	}
}

// ToolError reports a failed external program.
// It matches ErrExternalTool and the sentinel of the failing stage with
// errors.Is, and the underlying exec error (e.g. exec.ErrNotFound).
type ToolError struct {
	Tool     string
	Args     []string
	ExitCode int // -1 when the program could not be started
	Stderr   string
	Err      error
	stage    stage
}

func (e *ToolError) Error() string {
	if e.ExitCode < 0 {
		return fmt.Sprintf("%s: %q could not be run: %v", e.stage.sentinel(), e.Tool, e.Err)
	}
	msg := fmt.Sprintf("%s: %q exited with code %d", e.stage.sentinel(), e.Tool, e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ":\n" + stderr
	}
	return msg
}

func (e *ToolError) Unwrap() []error {
	return []error{ErrExternalTool, e.stage.sentinel(), e.Err}
}

func newToolError(s stage, argv []string, stderr string, err error) *ToolError {
	code := -1
	// *exec.ExitError satisfies this; fakes in tests can too.
	var exitErr interface{ ExitCode() int }
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
	}
	return &ToolError{
		Tool:     filepath.Base(argv[0]),
		Args:     argv,
		ExitCode: code,
		Stderr:   stderr,
		Err:      err,
		stage:    s,
	}
}

// run executes argv, or only prints it in dry-run mode.
// Commands are echoed shell-quoted so they can be pasted into a terminal.
func (c *Converter) run(ctx context.Context, s stage, argv []string) error {
	line := shellquote.Join(argv...)
	if c.dryRun {
		c.logger.Info(line)
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	c.logger.Verbose(line)
	stdout, stderr, err := c.runner.Run(ctx, argv[0], argv[1:]...)
	if out := strings.TrimSpace(stdout); out != "" {
		c.logger.Verbose(out)
	}
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		toolErr := newToolError(s, argv, stderr, err)
		if errors.Is(err, exec.ErrNotFound) {
			return fmt.Errorf("%w%s", toolErr, s.notFoundHint())
		}
		return toolErr
	}
	return nil
}
