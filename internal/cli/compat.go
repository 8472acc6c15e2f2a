package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/slashcmd/internal/ui"
)

var compatCmd = &cobra.Command{
	Use:   "compat <name> <required-version>",
	Short: "Check that a command is at least a given version",
	Long: `Reports whether a tracked command's current version is greater than or equal
to the required version. Exits non-zero when it is not, or when the command is
not tracked.`,
	Example:           `  slashcmd compat feature-dev 1.2.0`,
	Args:              cobra.ExactArgs(2),
	ValidArgsFunction: completeRegisteredNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		name, required := args[0], args[1]

		m, err := openManager()
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		ok, err := m.CheckCompatibility(name, required)
		if err != nil {
			return handleError(errorCode(err, ErrInvalidInput), err, "Versions look like MAJOR.MINOR.PATCH, e.g. 1.2.0")
		}

		current := ""
		if md, found := m.Get(name); found {
			current = md.CurrentVersion
		}

		if isJSONOutput() {
			resp := Response{
				OK: ok,
				Data: map[string]any{
					"name":       name,
					"required":   required,
					"current":    current,
					"compatible": ok,
				},
			}
			if !ok {
				resp.Error = &ErrorInfo{
					Code:    ErrIncompatible,
					Message: fmt.Sprintf("%s does not satisfy >= %s", name, required),
				}
				if current == "" {
					resp.Error.Code = ErrCommandMissing
					resp.Error.Message = fmt.Sprintf("%s is not tracked", name)
				}
			}
			outputJSON(resp)
		} else {
			switch {
			case current == "":
				fmt.Fprintln(stdout, ui.Errorf("%s is not tracked", ui.Name(name)))
			case ok:
				fmt.Fprintln(stdout, ui.Successf("%s v%s satisfies >= %s", ui.Name(name), current, required))
			default:
				fmt.Fprintln(stdout, ui.Errorf("%s v%s does not satisfy >= %s", ui.Name(name), current, required))
			}
		}

		if !ok {
			return errSilentFailure
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compatCmd)
}
