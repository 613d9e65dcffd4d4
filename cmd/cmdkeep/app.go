// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"

	"github.com/cmdkeep/cmdkeep/internal/alias"
	appexec "github.com/cmdkeep/cmdkeep/internal/app/execute"
	"github.com/cmdkeep/cmdkeep/internal/config"
	"github.com/cmdkeep/cmdkeep/internal/histfile"
	"github.com/cmdkeep/cmdkeep/internal/meta"
	"github.com/cmdkeep/cmdkeep/internal/recent"
	"github.com/cmdkeep/cmdkeep/internal/runtime"
	"github.com/cmdkeep/cmdkeep/internal/store"
)

// App wires CLI services and shared dependencies. It is the composition
// root for the CLI layer; Cobra command handlers receive an App and
// delegate all business logic through its fields.
type App struct {
	Config     *config.Config
	ConfigPath string

	Fs     afero.Fs
	Logger *log.Logger

	Registry  *alias.Registry
	Shortcuts *alias.Shortcuts
	Recent    *recent.Tracker
	Meta      *store.Store
	History   *histfile.Reader

	LiveEnv runtime.Environment
	Stdout  io.Writer
	Stderr  io.Writer
}

var appInstance *App

// getApp builds (once) the production App from loaded configuration.
func getApp() (*App, error) {
	if appInstance != nil {
		return appInstance, nil
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})
	if verbose {
		logger.SetLevel(log.DebugLevel)
	} else {
		logger.SetLevel(log.WarnLevel)
	}

	cfg, cfgPath, err := loadConfig()
	if err != nil {
		return nil, err
	}

	storeDir, err := cfg.StoreDirOrDefault()
	if err != nil {
		return nil, err
	}

	fs := afero.NewOsFs()
	aliasStore := store.New(fs, filepath.Join(storeDir, config.AliasFileName), logger)
	metaStore := store.New(fs, filepath.Join(storeDir, config.MetaFileName), logger)

	tracker := recent.NewTracker(metaStore)

	app := &App{
		Config:     cfg,
		ConfigPath: cfgPath,
		Fs:         fs,
		Logger:     logger,
		Registry:   alias.NewRegistry(aliasStore, fs, logger),
		Shortcuts:  alias.NewShortcuts(metaStore),
		Recent:     tracker,
		Meta:       metaStore,
		History:    histfile.NewReader(fs),
		LiveEnv:    runtime.FromEnviron(os.Environ()),
		Stdout:     os.Stdout,
		Stderr:     os.Stderr,
	}
	app.applyRecentCap()
	app.touchUpdateCheck()

	appInstance = app
	return app, nil
}

// applyRecentCap pushes the configured recent-log cap into the tracker
// when it differs from the persisted one. Best-effort: a store problem
// here surfaces on the next real log access.
func (a *App) applyRecentCap() {
	cur, err := a.Recent.MaxSize()
	if err != nil || cur == a.Config.RecentMaxSize {
		return
	}
	if err := a.Recent.SetMaxSize(a.Config.RecentMaxSize); err != nil {
		a.Logger.Debug("recent-log cap not applied", "err", err)
	}
}

// loadConfig loads configuration honoring the --config flag.
func loadConfig() (*config.Config, string, error) {
	opts := config.LoadOptions{ConfigFilePath: cfgFile}
	return config.LoadWithPath(context.Background(), opts)
}

// Orchestrator assembles the run pipeline over the app's services.
func (a *App) Orchestrator() *appexec.Orchestrator {
	return &appexec.Orchestrator{
		Registry:  a.Registry,
		Shortcuts: a.Shortcuts,
		Recent:    a.Recent,
		Executor:  runtime.NewShellExecutor(),
		LiveEnv:   a.LiveEnv,
		Stdout:    a.Stdout,
		Stderr:    a.Stderr,
		Stdin:     os.Stdin,
	}
}

// touchUpdateCheck maintains the daily version-check bookkeeping key.
// Best-effort: failures are logged at debug level and never block a run.
func (a *App) touchUpdateCheck() {
	tbl, err := meta.Open(a.Meta)
	if err != nil {
		a.Logger.Debug("update-check bookkeeping unavailable", "err", err)
		return
	}
	uc, _, err := meta.Get[meta.UpdateCheck](tbl, meta.KeyUpdateCheck)
	if err != nil {
		a.Logger.Debug("update-check bookkeeping unreadable", "err", err)
		return
	}
	now := time.Now()
	if !uc.ShouldCheck(now) {
		return
	}
	uc = uc.MarkChecked(now, Version)
	if err := meta.Set(tbl, meta.KeyUpdateCheck, uc); err == nil {
		if err := tbl.Save(); err != nil {
			a.Logger.Debug("update-check bookkeeping not saved", "err", err)
		}
	}
}
