// Package cli implements the command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/slashcmd/internal/config"
	"github.com/aidanlsb/slashcmd/internal/ui"
	"github.com/aidanlsb/slashcmd/internal/versions"
)

var (
	// Global flags
	repoPathFlag string
	configPath   string
	verbose      bool

	// Resolved values
	resolvedRoot       string
	resolvedConfigPath string
	cfg                *config.Config
	logger             = slog.New(slog.NewTextHandler(io.Discard, nil))

	// stdout receives all command output; tests swap it.
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	// now is the clock handed to the version manager.
	now = time.Now
)

// errSilentFailure makes the process exit non-zero after the command has
// already reported the problem.
var errSilentFailure = errors.New("command failed")

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "slashcmd",
	Short: "Validate and version markdown slash commands",
	Long: `slashcmd checks the workflow and tool command files of a repository for
structural problems and tracks a semantic version for each command, keeping a
metadata store, the version in each file's frontmatter, and a changelog in step.`,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

		switch cmd.Name() {
		case "version", "help", "completion":
			return nil
		}

		root, err := filepath.Abs(repoPathFlag)
		if err != nil {
			return fmt.Errorf("resolve repository path: %w", err)
		}
		info, err := os.Stat(root)
		if err != nil || !info.IsDir() {
			return handleErrorMsg(ErrRepoNotFound, fmt.Sprintf("repository not found: %s", root), "Pass --path with the directory holding workflows/ and tools/")
		}
		resolvedRoot = root

		resolvedConfigPath = configPath
		if resolvedConfigPath == "" {
			resolvedConfigPath = config.DefaultPath(root)
		}

		// config init must work even when the existing file is broken.
		if cmd.Parent() != nil && cmd.Parent().Name() == "config" {
			cfg = config.Default()
			return nil
		}

		cfg, err = config.Load(resolvedConfigPath)
		if err != nil {
			return handleError(ErrConfigInvalid, err, "Fix the file or regenerate it with 'slashcmd config init'")
		}
		for _, key := range cfg.Undecoded {
			logger.Warn("unknown config key", "key", key, "file", resolvedConfigPath)
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		logger.Debug("repository resolved", "root", resolvedRoot, "config", resolvedConfigPath)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errSilentFailure) {
		fmt.Fprintln(stderr, ui.Errorf("%v", err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&repoPathFlag, "path", "p", ".", "Repository containing the command directories")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default <path>/.slashcmd.toml)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for agent/script use)")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log debug details to stderr")
}

// openManager loads the version manager for the resolved repository.
func openManager() (*versions.Manager, error) {
	opts := cfg.VersionOptions()
	opts.Now = now
	opts.Logger = logger
	return versions.Open(cfg.Layout(resolvedRoot), opts)
}

// writeOutput writes content to path when set, otherwise prints it, rendering
// markdown when stdout is a terminal.
func writeOutput(content, path string) error {
	if path == "" {
		fmt.Fprint(stdout, ui.NewDisplayContext().Markdown(content))
		return nil
	}
	if err := atomicWrite(path, content); err != nil {
		return handleError(ErrFileWriteError, err, "")
	}
	fmt.Fprintln(stdout, ui.Successf("Report written to %s", path))
	return nil
}
