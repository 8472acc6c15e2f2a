package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/slashcmd/internal/config"
	"github.com/aidanlsb/slashcmd/internal/ui"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the repository config file",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default .slashcmd.toml",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		created, err := config.CreateDefault(resolvedConfigPath)
		if err != nil {
			return handleError(ErrFileWriteError, err, "")
		}

		if isJSONOutput() {
			outputSuccess(map[string]any{"path": resolvedConfigPath, "created": created}, nil)
			return nil
		}
		if !created {
			fmt.Fprintln(stdout, ui.Infof("Config already exists: %s", relPath(resolvedConfigPath)))
			return nil
		}
		fmt.Fprintln(stdout, ui.Successf("Created %s", relPath(resolvedConfigPath)))
		return nil
	},
}

func init() {
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}
