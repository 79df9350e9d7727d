package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maruel/unicorn/internal/config"
)

// defaultConfigNames are looked up in the working directory when --config
// is not given.
var defaultConfigNames = []string{"unicorn.yml", "unicorn.yaml", "unicorn.toml"}

// globalFlags are shared by all commands.
type globalFlags struct {
	configPath string
	logLevel   string
}

// buildFlags override the configuration file.
type buildFlags struct {
	out    string
	parent string
	mode   string
	dest   string
	git    bool
}

func newRootCommand() *cobra.Command {
	g := &globalFlags{}
	rootCmd := &cobra.Command{
		Use:           "unicorn",
		Short:         "Serialize asset files as content tree items",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := stderrLogger(g.logLevel)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			logger.Debug("Starting", "command", cmd.Name(), "version", readBuildInfo().Version)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	rootCmd.PersistentFlags().StringVarP(&g.configPath, "config", "c", "", "Configuration file path (default unicorn.yml, unicorn.yaml or unicorn.toml)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newBuildCommand(g))
	rootCmd.AddCommand(newWatchCommand(g))
	rootCmd.AddCommand(newSchemaCommand())
	rootCmd.AddCommand(newVersionCommand())
	return rootCmd
}

func addBuildFlags(cmd *cobra.Command, f *buildFlags) {
	cmd.Flags().StringVarP(&f.out, "out", "o", "", "Directory receiving item records")
	cmd.Flags().StringVarP(&f.parent, "parent", "p", "", "Path of the parent item record")
	cmd.Flags().StringVar(&f.mode, "mode", "", "Emission mode (write, transform)")
	cmd.Flags().StringVar(&f.dest, "dest", "", "Directory receiving records in transform mode (default stdout)")
	cmd.Flags().BoolVar(&f.git, "git", false, "Commit written records to the enclosing git repository")
}

// loadConfig loads the configuration, applies flag overrides and validates
// the result.
func loadConfig(g *globalFlags, f *buildFlags) (*config.Config, error) {
	path := g.configPath
	if path == "" {
		for _, name := range defaultConfigNames {
			if info, err := os.Stat(name); err == nil && !info.IsDir() {
				path = name
				break
			}
		}
	}
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
		slog.Debug("Loaded configuration", "path", path)
	}
	if f.out != "" {
		cfg.OutputPath = filepath.Clean(f.out)
	}
	if f.parent != "" {
		cfg.ParentItem = filepath.Clean(f.parent)
		cfg.Parent = nil
	}
	if f.mode != "" {
		cfg.Mode = f.mode
	}
	if f.dest != "" {
		cfg.Dest = filepath.Clean(f.dest)
	}
	if f.git {
		cfg.Git.Commit = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newSchemaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := config.Schema()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		},
	}
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), readBuildInfo().render())
			return err
		},
	}
}
