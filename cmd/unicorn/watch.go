package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/maruel/unicorn/internal/watch"
)

func newWatchCommand(g *globalFlags) *cobra.Command {
	f := &buildFlags{}
	cmd := &cobra.Command{
		Use:   "watch [flags] patterns...",
		Short: "Build item records, then rebuild them when asset files change",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default()
			cfg, err := loadConfig(g, f)
			if err != nil {
				return err
			}
			p, err := newPipeline(cfg, cmd.OutOrStdout(), logger)
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			var initial []string
			for _, arg := range args {
				matches, err := filepath.Glob(arg)
				if err != nil {
					return fmt.Errorf("invalid pattern %q: %w", arg, err)
				}
				initial = append(initial, matches...)
			}
			if len(initial) > 0 {
				outcomes, err := p.run(ctx, initial)
				_, _ = fmt.Fprintln(p.summaryWriter(cmd.OutOrStdout(), cmd.ErrOrStderr()), renderSummary(outcomes))
				if err != nil {
					return err
				}
			}

			w, err := watch.New(args, cfg.WatchInterval())
			if err != nil {
				return err
			}
			w.Logger = logger
			logger.InfoContext(ctx, "Watching", "patterns", strings.Join(args, " "), "interval", cfg.WatchInterval())
			return w.Run(ctx, func(ctx context.Context, path string) error {
				o := p.process(ctx, path)
				if o.err != nil {
					return o.err
				}
				return p.commit(ctx)
			})
		},
	}
	addBuildFlags(cmd, f)
	return cmd
}
