package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/slashcmd/internal/ui"
	"github.com/aidanlsb/slashcmd/internal/versions"
)

var (
	initDescription  string
	initTags         []string
	initDependencies []string
)

var initCmd = &cobra.Command{
	Use:   "init <path-or-name>",
	Short: "Start tracking a command at version 1.0.0",
	Long: `Registers a command in the metadata store at version 1.0.0 and writes the
version into the file's frontmatter. Initializing a tracked command does nothing.`,
	Example: `  slashcmd init workflows/feature-dev.md --description "Full feature workflow"
  slashcmd init api-scaffold --tags api,backend`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, ok := resolveCommandFile(args[0])
		if !ok {
			return handleErrorMsg(ErrCommandMissing, fmt.Sprintf("command file not found: %s", args[0]), "Pass a path to a .md file or the name of a command under the workflow or tool directory")
		}

		m, err := openManager()
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		res, err := m.Initialize(path, versions.InitOptions{
			Description:  initDescription,
			Tags:         initTags,
			Dependencies: initDependencies,
		})
		if err != nil {
			return handleError(errorCode(err, ErrFileWriteError), err, "")
		}

		if isJSONOutput() {
			var warnings []Warning
			if res.AlreadyRegistered {
				warnings = append(warnings, Warning{
					Code:    WarnAlreadyInitialized,
					Message: fmt.Sprintf("%s is already tracked at %s", res.Name, res.Version),
					Ref:     res.Name,
				})
			}
			outputSuccessWithWarnings(res, warnings, nil)
			return nil
		}

		if res.AlreadyRegistered {
			fmt.Fprintln(stdout, ui.Infof("%s is already tracked at v%s", ui.Name(res.Name), res.Version))
			return nil
		}
		fmt.Fprintln(stdout, ui.Successf("Initialized %s %s at v%s", res.Kind, ui.Name(res.Name), res.Version))
		return nil
	},
}

var initAllCmd = &cobra.Command{
	Use:   "init-all",
	Short: "Start tracking every untracked command",
	Long: `Registers every command under the workflow and tool directories that is not
yet tracked, with a generated description, then prints the version report.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := openManager()
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		results, err := m.InitializeAll()
		if err != nil {
			return handleError(errorCode(err, ErrFileWriteError), err, fmt.Sprintf("%d command(s) were initialized before the failure", len(results)))
		}

		if isJSONOutput() {
			if results == nil {
				results = []versions.InitResult{}
			}
			outputSuccess(map[string]any{"initialized": results}, &Meta{Count: len(results)})
			return nil
		}

		if len(results) == 0 {
			fmt.Fprintln(stdout, ui.Infof("All commands are already tracked"))
		}
		for _, res := range results {
			fmt.Fprintln(stdout, ui.Successf("Initialized %s %s", res.Kind, ui.Name(res.Name)))
		}
		fmt.Fprintln(stdout)
		return writeOutput(m.Report(), "")
	},
}

func init() {
	initCmd.Flags().StringVarP(&initDescription, "description", "d", "", "Short description of the command")
	initCmd.Flags().StringSliceVar(&initTags, "tags", nil, "Comma-separated tags")
	initCmd.Flags().StringSliceVar(&initDependencies, "depends", nil, "Comma-separated names of commands this one relies on")
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(initAllCmd)
}
