package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/cobra"
)

func newBuildCommand(g *globalFlags) *cobra.Command {
	f := &buildFlags{}
	cmd := &cobra.Command{
		Use:   "build [flags] files...",
		Short: "Generate item records for asset files",
		Long: `Generate item records for asset files.

Arguments are file paths or glob patterns. Each file becomes one item whose
blob holds the file content. Existing records are updated in place; their
blob identifier only changes when the content does.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default()
			cfg, err := loadConfig(g, f)
			if err != nil {
				return err
			}
			paths, err := expandInputs(args)
			if err != nil {
				return err
			}
			p, err := newPipeline(cfg, cmd.OutOrStdout(), logger)
			if err != nil {
				return err
			}
			outcomes, err := p.run(cmd.Context(), paths)
			if len(outcomes) > 0 {
				_, _ = fmt.Fprintln(p.summaryWriter(cmd.OutOrStdout(), cmd.ErrOrStderr()), renderSummary(outcomes))
			}
			if err != nil {
				return err
			}
			if n := countFailed(outcomes); n > 0 {
				return fmt.Errorf("%d of %d files failed", n, len(outcomes))
			}
			return nil
		},
	}
	addBuildFlags(cmd, f)
	return cmd
}

// expandInputs expands glob patterns and returns the sorted unique files.
// A literal path is kept even when it does not exist so the failure is
// reported for that file.
func expandInputs(args []string) ([]string, error) {
	var paths []string
	for _, arg := range args {
		if !strings.ContainsAny(arg, `*?[`) {
			paths = append(paths, filepath.Clean(arg))
			continue
		}
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no file matches %q", arg)
		}
		paths = append(paths, matches...)
	}
	slices.Sort(paths)
	return slices.Compact(paths), nil
}

func countFailed(outcomes []fileOutcome) int {
	n := 0
	for _, o := range outcomes {
		if o.err != nil {
			n++
		}
	}
	return n
}
