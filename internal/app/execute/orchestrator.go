// SPDX-License-Identifier: MPL-2.0

package execute

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cmdkeep/cmdkeep/internal/alias"
	"github.com/cmdkeep/cmdkeep/internal/issue"
	"github.com/cmdkeep/cmdkeep/internal/recent"
	"github.com/cmdkeep/cmdkeep/internal/runtime"
)

type (
	// WorkDirSource records which rule picked the working directory, for
	// preview provenance.
	WorkDirSource string

	// Orchestrator drives one run end to end. LiveEnv is the invoking
	// process's environment, passed in explicitly.
	Orchestrator struct {
		Registry  *alias.Registry
		Shortcuts *alias.Shortcuts
		Recent    *recent.Tracker
		Executor  runtime.Executor
		LiveEnv   runtime.Environment

		Stdout io.Writer
		Stderr io.Writer
		Stdin  io.Reader

		// OnResolved, when set, is called once resolution is complete and
		// before any dispatch, so callers can surface warnings ahead of
		// child output.
		OnResolved func(*RunReport)
	}

	// RunOptions carries per-invocation inputs.
	RunOptions struct {
		// Cwd is the caller's current working directory.
		Cwd string
		// PathOverride, when non-empty, wins over the stored path mode.
		PathOverride string
		// DryRun previews without spawning or recording.
		DryRun bool
		// Verbose enables the masked environment listing in previews.
		Verbose bool
		// Context cancels the child process when done.
		Context context.Context
	}

	// RunReport describes what a run resolved to and, unless it was a dry
	// run, how the child exited.
	RunReport struct {
		// Ref is the reference as the user gave it.
		Ref string
		// Name is the resolved primary alias name.
		Name alias.Name
		// Alias is the saved record that was run.
		Alias alias.CommandAlias
		// WorkDir is the resolved working directory.
		WorkDir string
		// WorkDirSource tells which rule produced WorkDir.
		WorkDirSource WorkDirSource
		// Env is the full effective child environment.
		Env runtime.Environment
		// Overrides lists saved variables shadowed by differing live values.
		Overrides []runtime.Override
		// DestructiveWarnings flags suspicious command patterns; never
		// blocking.
		DestructiveWarnings []string
		// DryRun reports whether execution was skipped.
		DryRun bool
		// ExitCode is the child's exit code; 0 for dry runs.
		ExitCode runtime.ExitCode
	}
)

const (
	// WorkDirOverride means an explicit path override was used.
	WorkDirOverride WorkDirSource = "override"
	// WorkDirSaved means the alias's stored directory was used.
	WorkDirSaved WorkDirSource = "saved"
	// WorkDirCurrent means the caller's directory was used per path mode.
	WorkDirCurrent WorkDirSource = "current"
)

// Run resolves ref and either previews or executes it. A non-zero child
// exit is reported in the RunReport, not as an error; errors are reserved
// for resolution and spawn failures.
func (o *Orchestrator) Run(ref string, opts RunOptions) (*RunReport, error) {
	name, err := o.resolveReference(ref)
	if err != nil {
		return nil, err
	}

	a, ok, err := o.Registry.Get(name)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, issue.NewErrorContext().
			WithOperation("resolve command").
			WithResource(string(name)).
			WithSuggestion("Run 'cmdkeep list' to see saved commands").
			Wrap(fmt.Errorf("%q: %w", name, issue.ErrNotFound)).
			Build()
	}

	report := &RunReport{
		Ref:                 ref,
		Name:                name,
		Alias:               a,
		DryRun:              opts.DryRun,
		DestructiveWarnings: DestructiveWarnings(a.Command),
	}
	report.WorkDir = runtime.ResolveWorkDir(a, opts.PathOverride, opts.Cwd)
	report.WorkDirSource = workDirSource(a, opts.PathOverride)

	saved := runtime.Environment(a.Env)
	report.Env = runtime.ResolveEnv(saved, o.LiveEnv)
	report.Overrides = runtime.Overrides(saved, o.LiveEnv)

	if o.OnResolved != nil {
		o.OnResolved(report)
	}

	if opts.DryRun {
		return report, nil
	}

	execCtx := &runtime.ExecutionContext{
		Context: opts.Context,
		Command: a.Command,
		WorkDir: report.WorkDir,
		Env:     report.Env,
		Stdout:  o.Stdout,
		Stderr:  o.Stderr,
		Stdin:   o.Stdin,
	}
	if err := o.Executor.Validate(execCtx); err != nil {
		return nil, err
	}

	result := o.Executor.Execute(execCtx)
	// Failures still count as an execution for recency purposes.
	if recErr := o.Recent.Record(name); recErr != nil {
		fmt.Fprintf(o.Stderr, "warning: could not record execution: %v\n", recErr)
	}
	report.ExitCode = result.ExitCode
	if result.Error != nil {
		return report, result.Error
	}
	return report, nil
}

// resolveReference turns ref into a primary alias name: @N references go
// through the recent log, everything else through short-alias resolution.
func (o *Orchestrator) resolveReference(ref string) (alias.Name, error) {
	if rest, isRecent := strings.CutPrefix(ref, "@"); isRecent {
		n, err := strconv.Atoi(rest)
		if err != nil {
			return "", fmt.Errorf("recent reference %q: %w: index must be a number", ref, issue.ErrInvalidInput)
		}
		if n < 0 {
			return "", fmt.Errorf("recent reference %q: %w: index must be non-negative", ref, issue.ErrInvalidInput)
		}
		return o.Recent.ByIndex(n)
	}
	return o.Shortcuts.Resolve(alias.Name(ref))
}

func workDirSource(a alias.CommandAlias, override string) WorkDirSource {
	if override != "" {
		return WorkDirOverride
	}
	if a.PathMode.Effective() == alias.PathModeCurrent {
		return WorkDirCurrent
	}
	return WorkDirSaved
}
