// SPDX-License-Identifier: MPL-2.0

package runtime

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	goruntime "runtime"
	"strings"

	"github.com/cmdkeep/cmdkeep/internal/issue"
)

type (
	// ExecutionContext contains everything needed to run one saved
	// command: the resolved command text, working directory, and the full
	// effective environment. The environment is handed to the child as-is.
	ExecutionContext struct {
		// Context is the Go context for cancellation.
		Context context.Context
		// Command is the shell command text, passed to the shell verbatim.
		Command string
		// WorkDir is the resolved working directory.
		WorkDir string
		// Env is the complete child environment.
		Env Environment
		// Stdout is where to write standard output.
		Stdout io.Writer
		// Stderr is where to write standard error.
		Stderr io.Writer
		// Stdin is where to read standard input.
		Stdin io.Reader
	}

	// Executor runs a resolved command.
	Executor interface {
		// Validate checks preconditions without spawning anything.
		Validate(ctx *ExecutionContext) error
		// Execute runs the command and reports its outcome. A non-zero
		// child exit is a normal Result, not an error.
		Execute(ctx *ExecutionContext) *Result
	}

	// ShellExecutor executes commands under the system's default shell.
	// The command text is not tokenized or escaped; shell metacharacters
	// behave exactly as they would typed at the prompt.
	ShellExecutor struct {
		// Shell overrides the default shell.
		Shell string
		// ShellArgs are arguments passed to the shell before the command.
		ShellArgs []string
	}
)

// NewShellExecutor creates an executor using platform shell defaults.
func NewShellExecutor() *ShellExecutor {
	return &ShellExecutor{}
}

// Available returns whether a usable shell was found for env.
func (e *ShellExecutor) Available(env Environment) bool {
	_, err := e.getShell(env)
	return err == nil
}

// Validate fails fast when the command is empty or the working directory
// does not exist, before any process is spawned.
func (e *ShellExecutor) Validate(ctx *ExecutionContext) error {
	if strings.TrimSpace(ctx.Command) == "" {
		return fmt.Errorf("command text: %w: nothing to execute", issue.ErrInvalidInput)
	}
	info, err := os.Stat(ctx.WorkDir)
	if err != nil {
		if os.IsPermission(err) {
			return fmt.Errorf("working directory %s: %w", ctx.WorkDir, issue.ErrPermissionDenied)
		}
		return fmt.Errorf("working directory %s: %w: does not exist", ctx.WorkDir, issue.ErrNotFound)
	}
	if !info.IsDir() {
		return fmt.Errorf("working directory %s: %w: not a directory", ctx.WorkDir, issue.ErrInvalidInput)
	}
	return nil
}

// Execute runs the command with stdio connected to the caller's streams,
// so interactive and long-running commands behave normally.
func (e *ShellExecutor) Execute(ctx *ExecutionContext) *Result {
	cmd, err := e.prepare(ctx)
	if err != nil {
		return NewErrorResult(ExitGeneralFailure, err)
	}
	cmd.Stdout = ctx.Stdout
	cmd.Stderr = ctx.Stderr
	cmd.Stdin = ctx.Stdin

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return NewExitCodeResult(ExitCode(exitErr.ExitCode()))
		}
		return NewErrorResult(ExitGeneralFailure, fmt.Errorf("execute command: %w", err))
	}
	return NewSuccessResult()
}

// ExecuteCapture runs the command with stdout and stderr captured
// instead of streamed.
func (e *ShellExecutor) ExecuteCapture(ctx *ExecutionContext) *Result {
	cmd, err := e.prepare(ctx)
	if err != nil {
		return NewErrorResult(ExitGeneralFailure, err)
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Stdin = ctx.Stdin

	runErr := cmd.Run()
	result := &Result{Output: stdout.String(), ErrOutput: stderr.String()}
	if runErr != nil {
		if exitErr, ok := runErr.(*exec.ExitError); ok {
			result.ExitCode = ExitCode(exitErr.ExitCode())
		} else {
			result.ExitCode = ExitGeneralFailure
			result.Error = fmt.Errorf("execute command: %w", runErr)
		}
	}
	return result
}

func (e *ShellExecutor) prepare(ctx *ExecutionContext) (*exec.Cmd, error) {
	shell, err := e.getShell(ctx.Env)
	if err != nil {
		return nil, err
	}
	args := append(e.getShellArgs(shell), ctx.Command)

	goCtx := ctx.Context
	if goCtx == nil {
		goCtx = context.Background()
	}
	cmd := exec.CommandContext(goCtx, shell, args...)
	cmd.Dir = ctx.WorkDir
	cmd.Env = ctx.Env.Slice()
	return cmd, nil
}

// getShell determines which shell to use. SHELL is taken from the
// execution environment, never from the process's own.
func (e *ShellExecutor) getShell(env Environment) (string, error) {
	if e.Shell != "" {
		return e.Shell, nil
	}

	switch goruntime.GOOS {
	case "windows":
		if pwsh, err := exec.LookPath("pwsh"); err == nil {
			return pwsh, nil
		}
		if ps, err := exec.LookPath("powershell"); err == nil {
			return ps, nil
		}
		return exec.LookPath("cmd")
	default:
		if shell := env["SHELL"]; shell != "" {
			return shell, nil
		}
		if bash, err := exec.LookPath("bash"); err == nil {
			return bash, nil
		}
		if sh, err := exec.LookPath("sh"); err == nil {
			return sh, nil
		}
		return "", fmt.Errorf("no shell found")
	}
}

// getShellArgs returns the arguments to pass to the shell before the
// command text.
func (e *ShellExecutor) getShellArgs(shell string) []string {
	if len(e.ShellArgs) > 0 {
		return e.ShellArgs
	}

	base := strings.TrimSuffix(filepath.Base(shell), ".exe")
	switch base {
	case "cmd":
		return []string{"/C"}
	case "powershell", "pwsh":
		return []string{"-NoProfile", "-Command"}
	default:
		// Assume POSIX shell
		return []string{"-c"}
	}
}
