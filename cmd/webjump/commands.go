package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Masterminds/semver/v3"
	"github.com/atotto/clipboard"
	"github.com/dustin/go-humanize"
	"github.com/robottwo/webjump/internal/completion"
	"github.com/robottwo/webjump/internal/config"
	"github.com/robottwo/webjump/internal/core"
	"github.com/robottwo/webjump/internal/dump"
	"github.com/robottwo/webjump/internal/filesystem"
	"github.com/robottwo/webjump/internal/prompt"
	"github.com/robottwo/webjump/internal/server"
	"github.com/robottwo/webjump/internal/termfeatures"
	"github.com/robottwo/webjump/internal/webjump"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// copyToClipboard is replaced in tests.
var copyToClipboard = clipboard.WriteAll

// resolveInput resolves input to a URL and records the jump. Input that
// names no webjump is returned unchanged.
func (a *app) resolveInput(input string) (string, error) {
	m, err := a.registry.Match(input)
	if err != nil {
		return "", err
	}

	key, arg, url := "", "", input
	if m != nil {
		key, arg, url = m.Definition.Key, m.Argument, m.URL()
	}

	if a.history != nil {
		if _, err := a.history.Record(input, key, arg, url); err != nil {
			a.logger.Warn("failed to record jump", zap.Error(err))
		}
	}
	a.logger.Debug("resolved", zap.String("input", input), zap.String("webjump", key), zap.String("url", url))
	return url, nil
}

func newResolveCmd(a *app) *cobra.Command {
	var copyURL bool

	cmd := &cobra.Command{
		Use:   "resolve <input>...",
		Short: "Print the URL for a webjump invocation",
		Example: `  webjump resolve maps paris
  webjump resolve --copy scholar relativity`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := a.resolveInput(strings.Join(args, " "))
			if err != nil {
				return err
			}
			if copyURL {
				if err := copyToClipboard(url); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
			}
			printf(cmd.OutOrStdout(), "%s\n", url)
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyURL, "copy", false, "also copy the URL to the clipboard")
	return cmd
}

func newCompleteCmd(a *app) *cobra.Command {
	var pos int
	var conservative bool

	cmd := &cobra.Command{
		Use:   "complete [input]...",
		Short: "List completions for a partial invocation",
		Long:  "Prints one completion per line, followed by a tab and its description when it has one.",
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			if cmd.Flags().Changed("pos") && pos < 0 {
				return fmt.Errorf("invalid --pos %d", pos)
			}
			if !cmd.Flags().Changed("pos") {
				pos = len(input)
			}
			if !cmd.Flags().Changed("conservative") {
				conservative = a.cfg.Conservative
			}

			candidates, err := a.registry.Completions(cmd.Context(), input, pos, conservative)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, c := range candidates {
				if c.Description != "" {
					printf(out, "%s\t%s\n", c.Value, c.Description)
				} else {
					printf(out, "%s\n", c.Value)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&pos, "pos", 0, "cursor byte offset (default end of input)")
	cmd.Flags().BoolVar(&conservative, "conservative", false, "do not list every argument for an empty argument")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all webjumps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return definitionTable(a.registry.Definitions()).render(cmd.OutOrStdout())
		},
	}
}

func newFindCmd(a *app) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "find <query>",
		Short: "Fuzzy-search webjump names and descriptions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			results := completion.Find(a.registry, args[0], limit)
			if len(results) == 0 {
				return fmt.Errorf("no webjump matches %q", args[0])
			}
			defs := lo.Map(results, func(r completion.FindResult, _ int) *webjump.Definition {
				return r.Definition
			})
			return definitionTable(defs).render(cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "maximum number of results")
	return cmd
}

func newDebugCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "debug <input>...",
		Short: "Show how an input is matched",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := strings.Join(args, " ")
			out := cmd.OutOrStdout()

			m, err := a.registry.Match(input)
			var missing *webjump.MissingArgumentError
			switch {
			case errors.As(err, &missing):
				def, _ := a.registry.Get(missing.Key)
				printf(out, "%s", dump.DumpRecursive(def, "definition", "", 0))
				printf(out, "error: %v\n", err)
				return nil
			case err != nil:
				return err
			case m == nil:
				printf(out, "no webjump matches %q\n", input)
				return nil
			}

			a.logger.Debug("match", dump.Field("match", m))
			printf(out, "%s", dump.DumpRecursive(m, "match", "", 0))
			printf(out, "url: %s\n", m.URL())
			return nil
		},
	}
}

func newHistoryCmd(a *app) *cobra.Command {
	var limit int
	var name string
	var reset, top bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent jumps",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.history == nil {
				return errors.New("history is disabled")
			}
			out := cmd.OutOrStdout()

			if reset {
				if err := a.history.ResetHistory(); err != nil {
					return err
				}
				printf(out, "history cleared\n")
				return nil
			}

			if top {
				counts, err := a.history.TopWebjumps(limit)
				if err != nil {
					return err
				}
				t := newTable("WEBJUMP", "JUMPS").style(0, nameStyle)
				for _, c := range counts {
					t.addRow(c.Webjump, humanize.Comma(c.Count))
				}
				return t.render(out)
			}

			entries, err := a.history.GetRecentEntries(name, limit)
			if err != nil {
				return err
			}
			t := newTable("ID", "WHEN", "INPUT", "URL").style(1, dimStyle)
			for _, e := range entries {
				t.addRow(fmt.Sprint(e.ID), humanize.Time(e.CreatedAt), e.Input, e.URL)
			}
			return t.render(out)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show")
	cmd.Flags().StringVar(&name, "webjump", "", "only show jumps through this webjump")
	cmd.Flags().BoolVar(&reset, "reset", false, "delete all history")
	cmd.Flags().BoolVar(&top, "top", false, "show the most used webjumps")
	return cmd
}

func newServeCmd(a *app) *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve webjumps over HTTP",
		Long: `Serves GET /jump?q=<input>, which redirects to the resolved URL, plus JSON
endpoints for resolving, completion, listing, search and history. Point a
browser search keyword at http://<listen>/jump?q=%s.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if listen == "" {
				listen = a.cfg.Listen
			}

			var h server.History
			if a.history != nil {
				h = a.history
			}
			srv := server.New(a.registry, h, a.cfg.Conservative, a.logger)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			printf(cmd.OutOrStdout(), "serving %d webjumps on http://%s\n", a.registry.Len(), listen)
			a.logger.Info("serving", zap.String("listen", listen))
			return srv.Start(ctx, listen)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", "", "address to listen on (default from config)")
	return cmd
}

func newPromptCmd(a *app) *cobra.Command {
	var copyURL bool

	cmd := &cobra.Command{
		Use:   "prompt [input]...",
		Short: "Read a webjump interactively with completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			provider := completion.NewWebjumpCompletionProvider(a.registry, a.cfg.Conservative, a.logger)
			terminal := termfeatures.New(os.Stdout)
			if terminal.SetWindowTitle("webjump").Success {
				defer terminal.ResetWindowTitle()
			}
			input, err := prompt.Run(provider, "webjump> ", strings.Join(args, " "), a.logger)
			if errors.Is(err, prompt.ErrInterrupted) {
				return nil
			}
			if err != nil {
				return err
			}
			if strings.TrimSpace(input) == "" {
				return nil
			}

			url, err := a.resolveInput(input)
			if err != nil {
				return err
			}
			if copyURL {
				if err := copyToClipboard(url); err != nil {
					return fmt.Errorf("failed to copy to clipboard: %w", err)
				}
			}
			printf(cmd.OutOrStdout(), "%s\n", url)
			return nil
		},
	}
	cmd.Flags().BoolVar(&copyURL, "copy", false, "also copy the URL to the clipboard")
	return cmd
}

func newInitCmd(a *app) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default settings file and an example webjumps file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath := a.opts.configPath
			if configPath == "" {
				configPath = core.ConfigFile()
			}
			written, err := config.WriteDefaults(filesystem.DefaultFileSystem{}, configPath, a.cfg.WebjumpsFile, force)
			if err != nil {
				return err
			}
			if len(written) == 0 {
				printf(cmd.OutOrStdout(), "Nothing to do; use --force to overwrite existing files.\n")
			}
			for _, path := range written {
				printf(cmd.OutOrStdout(), "Wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite existing files")
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the build version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printf(cmd.OutOrStdout(), "%s\n", versionString(BUILD_VERSION))
			return nil
		},
	}
}

func versionString(build string) string {
	v, err := semver.NewVersion(strings.TrimSpace(build))
	if err != nil {
		return "webjump " + strings.TrimSpace(build) + " (development build)"
	}
	return "webjump v" + v.String()
}
