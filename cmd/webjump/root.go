package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/robottwo/webjump/internal/completion"
	"github.com/robottwo/webjump/internal/config"
	"github.com/robottwo/webjump/internal/core"
	"github.com/robottwo/webjump/internal/history"
	"github.com/robottwo/webjump/internal/termfeatures"
	"github.com/robottwo/webjump/internal/webjump"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type rootOptions struct {
	configPath     string
	noPartialMatch bool
	logLevel       string
}

// app holds what every subcommand needs. It is filled in by setup.
type app struct {
	opts     rootOptions
	cfg      *config.Config
	logger   *zap.Logger
	registry *webjump.Registry
	history  *history.HistoryManager
}

func newRootCmd() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:           "webjump",
		Short:         "Open URLs by short name and argument",
		Long:          "webjump resolves inputs such as \"maps paris\" to URLs using named URL templates.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.opts.configPath, "config", "", "settings file (default ~/.config/webjump/config.yaml)")
	flags.BoolVar(&a.opts.noPartialMatch, "no-partial-match", false, "only accept exact webjump names")
	flags.StringVar(&a.opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newResolveCmd(a),
		newCompleteCmd(a),
		newListCmd(a),
		newFindCmd(a),
		newDebugCmd(a),
		newHistoryCmd(a),
		newServeCmd(a),
		newPromptCmd(a),
		newInitCmd(a),
		newVersionCmd(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command) error {
	configureOutput(cmd.OutOrStdout())

	path := a.opts.configPath
	if path == "" {
		path = core.ConfigFile()
	}
	result, err := config.Load(path)
	if err != nil {
		return err
	}
	a.cfg = result.Config
	a.cfg.ResolvePaths()
	if a.opts.noPartialMatch {
		a.cfg.PartialMatch = false
	}
	if a.opts.logLevel != "" {
		a.cfg.LogLevel = a.opts.logLevel
	}

	a.logger, err = initializeLogger(a.cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	for _, err := range result.Errors {
		a.warn(cmd, err)
	}

	specs, err := config.LoadWebjumps(a.cfg.WebjumpsFile)
	if err != nil {
		a.warn(cmd, err)
	}

	if a.cfg.History {
		a.history, err = history.NewHistoryManager(a.cfg.HistoryDB)
		if err != nil {
			a.warn(cmd, fmt.Errorf("history disabled: %w", err))
			a.history = nil
		}
	}

	// a nil *HistoryManager must not become a non-nil interface
	var argHistory completion.ArgumentHistory
	if a.history != nil {
		argHistory = a.history
	}

	var errs []error
	a.registry, errs = config.BuildRegistry(a.cfg, specs, argHistory, a.logger)
	for _, err := range errs {
		a.warn(cmd, err)
	}

	a.logger.Debug("webjump initialized",
		zap.String("config", path),
		zap.Int("webjumps", a.registry.Len()),
		zap.Bool("history", a.history != nil))
	return nil
}

func (a *app) warn(cmd *cobra.Command, err error) {
	fmt.Fprintln(cmd.ErrOrStderr(), "webjump: warning:", err)
	if a.logger != nil {
		a.logger.Warn("configuration problem", zap.Error(err))
	}
}

func (a *app) close() error {
	var errs []error
	if a.history != nil {
		errs = append(errs, a.history.Close())
		a.history = nil
	}
	if a.logger != nil {
		// syncing a file logger can fail harmlessly on some platforms
		_ = a.logger.Sync()
	}
	return errors.Join(errs...)
}

func initializeLogger(level string) (*zap.Logger, error) {
	logLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, err
	}
	loggerConfig := zap.NewProductionConfig()
	loggerConfig.Level = logLevel
	loggerConfig.OutputPaths = []string{
		core.LogFile(),
	}
	return loggerConfig.Build()
}

// configureOutput matches the lipgloss color profile to w.
func configureOutput(w io.Writer) {
	lipgloss.SetColorProfile(termfeatures.Detect(w, os.Getenv).ColorProfile())
}
