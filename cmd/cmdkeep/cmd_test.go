// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/cmdkeep/cmdkeep/internal/alias"
	"github.com/cmdkeep/cmdkeep/internal/config"
	"github.com/cmdkeep/cmdkeep/internal/histfile"
	"github.com/cmdkeep/cmdkeep/internal/issue"
	"github.com/cmdkeep/cmdkeep/internal/recent"
	"github.com/cmdkeep/cmdkeep/internal/runtime"
	"github.com/cmdkeep/cmdkeep/internal/store"
	"github.com/cmdkeep/cmdkeep/internal/testutil"
)

// newTestApp swaps the package-level app for one backed by an in-memory
// filesystem and buffered output, restoring everything on cleanup.
func newTestApp(t *testing.T) (*App, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	fs := afero.NewMemMapFs()
	logger := log.NewWithOptions(&bytes.Buffer{}, log.Options{})
	aliasStore := store.New(fs, "/data/cmdkeep/aliases.json", logger)
	metaStore := store.New(fs, "/data/cmdkeep/metadata.json", logger)

	var stdout, stderr bytes.Buffer
	app := &App{
		Config:    config.DefaultConfig(),
		Fs:        fs,
		Logger:    logger,
		Registry:  alias.NewRegistry(aliasStore, fs, logger),
		Shortcuts: alias.NewShortcuts(metaStore),
		Recent:    recent.NewTracker(metaStore),
		Meta:      metaStore,
		History:   histfile.NewReader(fs),
		LiveEnv:   runtime.Environment{"PATH": "/usr/bin"},
		Stdout:    &stdout,
		Stderr:    &stderr,
	}

	prev := appInstance
	appInstance = app
	t.Cleanup(func() {
		appInstance = prev
		saveDir, savePathMode, saveLast = "", "", false
		saveEnvPairs, saveCaptureEnv = nil, nil
		runPathOverride, runDryRun = "", false
		listOutput, showOutput, recentOutput, exportOutput = "", "", "", ""
		recentRaw, recentClear, importMerge = false, false, false
		recentLimit = 0
	})
	return app, &stdout, &stderr
}

func TestSaveThenList(t *testing.T) {
	_, stdout, _ := newTestApp(t)

	saveDir = "/proj"
	if err := runSave(saveCmd, []string{"build", "npm", "run", "build"}); err != nil {
		t.Fatalf("runSave() error: %v", err)
	}
	if !strings.Contains(stdout.String(), "build") {
		t.Errorf("save output missing name: %q", stdout.String())
	}

	stdout.Reset()
	if err := runList(listCmd, nil); err != nil {
		t.Fatalf("runList() error: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "npm run build") || !strings.Contains(out, "/proj") {
		t.Errorf("list output missing saved command:\n%s", out)
	}
}

func TestSave_RequiresCommandText(t *testing.T) {
	newTestApp(t)

	err := runSave(saveCmd, []string{"build"})
	if !errors.Is(err, issue.ErrInvalidInput) {
		t.Errorf("runSave() without command = %v, want ErrInvalidInput", err)
	}
}

func TestSave_CaptureEnvFromSession(t *testing.T) {
	app, _, _ := newTestApp(t)
	app.LiveEnv["API_TOKEN"] = "sekret"

	saveDir = "/proj"
	saveCaptureEnv = []string{"API_TOKEN"}
	if err := runSave(saveCmd, []string{"deploy", "./deploy.sh"}); err != nil {
		t.Fatalf("runSave() error: %v", err)
	}

	a, ok, err := app.Registry.Get("deploy")
	if err != nil || !ok {
		t.Fatalf("Get(deploy) = %v, %v", ok, err)
	}
	if a.Env["API_TOKEN"] != "sekret" {
		t.Errorf("captured env = %v, want API_TOKEN from live session", a.Env)
	}

	saveCaptureEnv = []string{"UNSET_VAR"}
	if err := runSave(saveCmd, []string{"other", "true"}); !errors.Is(err, issue.ErrNotFound) {
		t.Errorf("capture of unset var = %v, want ErrNotFound", err)
	}
}

func TestSave_LastFromHistory(t *testing.T) {
	app, _, _ := newTestApp(t)
	defer testutil.SetHomeDir(t, "/home/u")()
	if err := afero.WriteFile(app.Fs, "/home/u/.bash_history", []byte("make deploy\ncmdkeep list\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	saveDir = "/proj"
	saveLast = true
	if err := runSave(saveCmd, []string{"redo"}); err != nil {
		t.Fatalf("runSave(--last) error: %v", err)
	}
	a, ok, err := app.Registry.Get("redo")
	if err != nil || !ok {
		t.Fatalf("Get(redo) = %v, %v", ok, err)
	}
	if a.Command != "make deploy" {
		t.Errorf("saved command = %q, want history entry %q", a.Command, "make deploy")
	}
}

func TestRunDryRun_PrintsPreview(t *testing.T) {
	app, stdout, _ := newTestApp(t)
	if err := app.Registry.Set("clean", "rm -rf ./dist", "/proj", "", nil); err != nil {
		t.Fatal(err)
	}

	runDryRun = true
	if err := runRun(runCmd, []string{"clean"}); err != nil {
		t.Fatalf("runRun(--dry-run) error: %v", err)
	}
	out := stdout.String()
	for _, want := range []string{"rm -rf ./dist", "/proj", "DANGER"} {
		if !strings.Contains(out, want) {
			t.Errorf("preview missing %q:\n%s", want, out)
		}
	}

	entries, err := app.Recent.ListRaw()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("dry run recorded %d executions, want 0", len(entries))
	}
}

func TestLinkUnlink(t *testing.T) {
	app, _, _ := newTestApp(t)
	if err := app.Registry.Set("build", "make", "/proj", "", nil); err != nil {
		t.Fatal(err)
	}

	if err := runLink(linkCmd, []string{"b", "build"}); err != nil {
		t.Fatalf("runLink() error: %v", err)
	}
	got, err := app.Shortcuts.Resolve("b")
	if err != nil || got != "build" {
		t.Errorf("Resolve(b) = %q, %v", got, err)
	}

	if err := runUnlink(unlinkCmd, []string{"b"}); err != nil {
		t.Fatalf("runUnlink() error: %v", err)
	}
	if err := runUnlink(unlinkCmd, []string{"b"}); !errors.Is(err, issue.ErrInvalidInput) {
		t.Errorf("second unlink = %v, want ErrInvalidInput", err)
	}
}

func TestRm_WarnsAboutDanglingShorts(t *testing.T) {
	app, _, stderr := newTestApp(t)
	if err := app.Registry.Set("build", "make", "/proj", "", nil); err != nil {
		t.Fatal(err)
	}
	if err := app.Shortcuts.Create("b", "build", app.Registry); err != nil {
		t.Fatal(err)
	}

	if err := runRm(rmCmd, []string{"build"}); err != nil {
		t.Fatalf("runRm() error: %v", err)
	}
	if !strings.Contains(stderr.String(), "b") {
		t.Errorf("rm did not warn about dangling short alias:\n%s", stderr.String())
	}
}

func TestRecent_TableShowsRefs(t *testing.T) {
	app, stdout, _ := newTestApp(t)
	for _, n := range []alias.Name{"build", "test"} {
		if err := app.Recent.Record(n); err != nil {
			t.Fatal(err)
		}
	}

	if err := runRecent(recentCmd, nil); err != nil {
		t.Fatalf("runRecent() error: %v", err)
	}
	out := stdout.String()
	if !strings.Contains(out, "@0") || !strings.Contains(out, "test") {
		t.Errorf("recent output missing @N refs:\n%s", out)
	}
}

func TestExportImport_RoundTrip(t *testing.T) {
	app, stdout, _ := newTestApp(t)
	if err := app.Registry.Set("build", "make", "/proj", "", nil); err != nil {
		t.Fatal(err)
	}

	if err := runExport(exportCmd, nil); err != nil {
		t.Fatalf("runExport() error: %v", err)
	}
	exported := stdout.String()
	if !strings.Contains(exported, "make") {
		t.Fatalf("export output missing command:\n%s", exported)
	}
}

func TestApplyRecentCap(t *testing.T) {
	app, _, _ := newTestApp(t)
	for _, n := range []alias.Name{"a", "b", "c"} {
		if err := app.Recent.Record(n); err != nil {
			t.Fatal(err)
		}
	}

	app.Config.RecentMaxSize = 2
	app.applyRecentCap()

	got, err := app.Recent.MaxSize()
	if err != nil {
		t.Fatal(err)
	}
	if got != 2 {
		t.Errorf("tracker cap = %d, want configured value 2", got)
	}
	entries, err := app.Recent.ListRaw()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Errorf("raw log has %d entries after cap change, want 2", len(entries))
	}
}

func TestChildExit(t *testing.T) {
	if err := childExit(0); err != nil {
		t.Errorf("childExit(0) = %v, want nil", err)
	}
	err := childExit(42)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 42 {
		t.Errorf("childExit(42) = %v, want ExitError{42}", err)
	}
}

func TestFormatErrorForDisplay(t *testing.T) {
	plain := errors.New("boom")
	if got := formatErrorForDisplay(plain, false); got != "boom" {
		t.Errorf("formatErrorForDisplay(plain) = %q", got)
	}

	actionable := issue.NewErrorContext().
		WithOperation("resolve command").
		WithSuggestion("Run 'cmdkeep list' to see saved commands").
		Wrap(plain).
		BuildError()
	got := formatErrorForDisplay(actionable, false)
	if !strings.Contains(got, "resolve command") {
		t.Errorf("formatErrorForDisplay(actionable) = %q, want operation text", got)
	}
}
