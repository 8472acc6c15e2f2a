package cli

import (
	"github.com/spf13/cobra"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the version report for all tracked commands",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := openManager()
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		if isJSONOutput() {
			store := m.Store()
			items := make([]map[string]any, 0, store.Len())
			for _, name := range store.Names() {
				md, _ := store.Get(name)
				items = append(items, metadataSummary(md))
			}
			outputSuccess(map[string]any{"commands": items}, &Meta{Count: len(items)})
			return nil
		}

		return writeOutput(m.Report(), reportOutput)
	},
}

func init() {
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Write the report to a file instead of stdout")
	rootCmd.AddCommand(reportCmd)
}
