package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/slashcmd/internal/ui"
)

var showCmd = &cobra.Command{
	Use:               "show <name>",
	Short:             "Show a tracked command's metadata and release history",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeRegisteredNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := openManager()
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		md, ok := m.Get(args[0])
		if !ok {
			return handleErrorMsg(ErrCommandMissing, fmt.Sprintf("command not registered: %s", args[0]), fmt.Sprintf("Run 'slashcmd init %s' first", args[0]))
		}

		if isJSONOutput() {
			outputSuccess(md, nil)
			return nil
		}

		fmt.Fprintf(stdout, "%s %s\n", ui.Header(md.Name), ui.Hint("("+string(md.Type)+")"))
		if md.Description != "" {
			fmt.Fprintln(stdout, md.Description)
		}
		fmt.Fprintf(stdout, "Version:      v%s\n", md.CurrentVersion)
		fmt.Fprintf(stdout, "Created:      %s\n", md.Created)
		fmt.Fprintf(stdout, "Last updated: %s\n", md.LastUpdated)
		if len(md.Tags) > 0 {
			fmt.Fprintf(stdout, "Tags:         %s\n", strings.Join(md.Tags, ", "))
		}
		if len(md.Dependencies) > 0 {
			fmt.Fprintf(stdout, "Depends on:   %s\n", strings.Join(md.Dependencies, ", "))
		}

		fmt.Fprintln(stdout)
		fmt.Fprintln(stdout, ui.Header("History"))
		table := ui.NewTable(3)
		for i := len(md.VersionHistory) - 1; i >= 0; i-- {
			e := md.VersionHistory[i]
			released := e.Released
			if len(released) >= 10 {
				released = released[:10]
			}
			notes := strings.Join(e.Changes, "; ")
			if len(e.BreakingChanges) > 0 {
				notes = ui.SymbolWarning + " " + strings.Join(e.BreakingChanges, "; ") + "; " + notes
			}
			table.AddRow(ui.Name(e.Version), ui.Hint(released), notes)
		}
		fmt.Fprint(stdout, table.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
