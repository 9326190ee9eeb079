package flowrun

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
	"time"

	"github.com/flowforge/cli/internal/errors"
	"github.com/flowforge/cli/internal/output"
)

// DefaultTimeout bounds one flow subprocess.
const DefaultTimeout = 300 * time.Second

// ExecResult captures one flow subprocess run.
type ExecResult struct {
	// Stdout is the captured standard output.
	Stdout string `json:"stdout"`

	// Stderr is the captured standard error.
	Stderr string `json:"stderr"`

	// ExitCode is the subprocess exit code; zero on success.
	ExitCode int `json:"exitCode"`

	// TimedOut reports whether the subprocess was killed on timeout.
	TimedOut bool `json:"timedOut"`

	// Duration is the wall-clock run time.
	Duration time.Duration `json:"duration"`
}

// Executor runs flow scripts with `go run` inside the workspace root so
// the workspace marker resolves module imports.
type Executor struct {
	// Workspace is the workspace root directory.
	Workspace string

	// Timeout bounds one run; zero means DefaultTimeout.
	Timeout time.Duration
}

// NewExecutor creates an Executor over the given workspace root.
func NewExecutor(workspaceRoot string) *Executor {
	return &Executor{Workspace: workspaceRoot, Timeout: DefaultTimeout}
}

// Execute writes the script to a temp file in the workspace root, runs
// it, and returns the captured result. The temp file is always removed.
// A timeout kills the whole process group and returns ErrTimeout; a
// nonzero exit returns ErrExecution alongside the result. Launch
// failures return a result with exit code -1 rather than a bare error.
func (x *Executor) Execute(ctx context.Context, script string) (*ExecResult, error) {
	timeout := x.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	tmp, err := os.CreateTemp(x.Workspace, "flow-*.go")
	if err != nil {
		return launchFailure(fmt.Sprintf("creating flow script: %v", err))
	}
	scriptPath := tmp.Name()
	defer os.Remove(scriptPath)

	if _, err := tmp.WriteString(script); err != nil {
		tmp.Close()
		return launchFailure(fmt.Sprintf("writing flow script: %v", err))
	}
	if err := tmp.Close(); err != nil {
		return launchFailure(fmt.Sprintf("closing flow script: %v", err))
	}

	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.Command("go", "run", filepath.Base(scriptPath))
	cmd.Dir = x.Workspace
	cmd.Env = os.Environ()

	// Child processes join one group so a timeout kill reaches them all,
	// not just the go tool.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return launchFailure(fmt.Sprintf("starting flow subprocess: %v", err))
	}
	output.Debug("flow subprocess started", "pid", cmd.Process.Pid, "script", filepath.Base(scriptPath))

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	result := &ExecResult{}
	select {
	case <-runCtx.Done():
		syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL)
		<-done
		result.Stdout = stdout.String()
		result.Stderr = stderr.String()
		result.ExitCode = -1
		result.TimedOut = true
		result.Duration = time.Since(start)
		return result, errors.Wrap(errors.ErrTimeout,
			fmt.Sprintf("flow subprocess exceeded %s", timeout))
	case waitErr := <-done:
		result.Stdout = stdout.String()
		result.Stderr = stderr.String()
		result.Duration = time.Since(start)
		if waitErr == nil {
			return result, nil
		}
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, errors.Wrap(errors.ErrExecution,
				fmt.Sprintf("flow subprocess exited with code %d", result.ExitCode))
		}
		return result, fmt.Errorf("waiting for flow subprocess: %w", waitErr)
	}
}

// launchFailure builds the structured result for a run that never got
// off the ground.
func launchFailure(msg string) (*ExecResult, error) {
	return &ExecResult{ExitCode: -1}, errors.Wrap(errors.ErrExecution, msg)
}
