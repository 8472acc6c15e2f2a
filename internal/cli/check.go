package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/slashcmd/internal/check"
	"github.com/aidanlsb/slashcmd/internal/ui"
)

var (
	checkStrict bool
	checkFormat string
	checkOutput string
)

type checkSummary struct {
	Total    int  `json:"total"`
	Errors   int  `json:"errors"`
	Warnings int  `json:"warnings"`
	Info     int  `json:"info"`
	Passed   bool `json:"passed"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate every workflow and tool command",
	Long: `Checks every command file under the workflow and tool directories and
reports errors, warnings, and informational findings.

Exits non-zero when any error is found, or any warning with --strict.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if checkFormat != "text" && checkFormat != "json" {
			return handleErrorMsg(ErrInvalidInput, fmt.Sprintf("unknown format %q", checkFormat), "Use --format text or --format json")
		}

		strict := cfg.Check.Strict
		if cmd.Flags().Changed("strict") {
			strict = checkStrict
		}

		report, err := check.Run(cfg.Layout(resolvedRoot), cfg.CheckOptions())
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		errs, warns, infos := report.Totals()
		summary := checkSummary{
			Total:    len(report.Files),
			Errors:   errs,
			Warnings: warns,
			Info:     infos,
			Passed:   report.ExitCode(strict) == 0,
		}
		logger.Debug("check finished", "files", summary.Total, "errors", errs, "warnings", warns)

		if isJSONOutput() {
			resp := Response{
				OK: summary.Passed,
				Data: map[string]any{
					"summary": summary,
					"files":   report.Files,
				},
				Meta: &Meta{Count: summary.Total},
			}
			if !summary.Passed {
				resp.Error = &ErrorInfo{
					Code:    ErrValidationFailed,
					Message: fmt.Sprintf("validation failed with %d error(s) and %d warning(s)", errs, warns),
				}
			}
			outputJSON(resp)
		} else {
			var content string
			if checkFormat == "json" {
				data, err := json.MarshalIndent(report.ByFile(), "", "  ")
				if err != nil {
					return err
				}
				content = string(data) + "\n"
			} else {
				content = check.FormatText(report)
			}

			if checkOutput != "" || checkFormat == "json" {
				if err := writeRaw(content, checkOutput); err != nil {
					return err
				}
			} else if err := writeOutput(content, ""); err != nil {
				return err
			}

			if summary.Total == 0 {
				fmt.Fprintln(stderr, ui.Warningf("No command files found under %s", resolvedRoot))
			}
			if !summary.Passed {
				fmt.Fprintln(stderr, ui.Errorf("Validation failed %s", ui.ErrorWarningCounts(errs, warns)))
			}
		}

		if !summary.Passed {
			return errSilentFailure
		}
		return nil
	},
}

// writeRaw prints content unrendered, or writes it to path when set.
func writeRaw(content, path string) error {
	if path == "" {
		fmt.Fprint(stdout, content)
		return nil
	}
	return writeOutput(content, path)
}

func init() {
	checkCmd.Flags().BoolVar(&checkStrict, "strict", false, "Treat warnings as failures (overrides config)")
	checkCmd.Flags().StringVar(&checkFormat, "format", "text", "Report format: text or json")
	checkCmd.Flags().StringVarP(&checkOutput, "output", "o", "", "Write the report to a file instead of stdout")
	_ = checkCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(checkCmd)
}
