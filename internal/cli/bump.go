package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/slashcmd/internal/semver"
	"github.com/aidanlsb/slashcmd/internal/ui"
	"github.com/aidanlsb/slashcmd/internal/versions"
)

// changeKindValue is a --kind flag restricted to major, minor, and patch.
type changeKindValue semver.ChangeKind

var _ pflag.Value = (*changeKindValue)(nil)

func (v *changeKindValue) String() string { return string(*v) }

func (v *changeKindValue) Set(s string) error {
	kind, err := semver.ParseChangeKind(s)
	if err != nil {
		return err
	}
	*v = changeKindValue(kind)
	return nil
}

func (v *changeKindValue) Type() string { return "kind" }

var (
	bumpKind       = changeKindValue(semver.Patch)
	bumpChanges    []string
	bumpBreaking   []string
	bumpDeprecated []string
)

var bumpCmd = &cobra.Command{
	Use:   "bump <name>",
	Short: "Release a new version of a tracked command",
	Long: `Increments a tracked command's version, records the changes in its history,
rewrites the version in the command file, and adds a changelog section.
Either every file is updated or none is.`,
	Example: `  slashcmd bump feature-dev --kind minor -c "Add review step"
  slashcmd bump lint --kind major -c "New output" --breaking "Removed --legacy"`,
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completeRegisteredNames,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(bumpChanges) == 0 {
			return handleErrorMsg(ErrMissingArgument, "at least one --change is required", "Describe the release with -c \"...\"")
		}

		m, err := openManager()
		if err != nil {
			return handleError(ErrFileReadError, err, "")
		}

		res, err := m.Update(versions.UpdateRequest{
			Name:               args[0],
			Kind:               semver.ChangeKind(bumpKind),
			Changes:            bumpChanges,
			BreakingChanges:    bumpBreaking,
			DeprecatedFeatures: bumpDeprecated,
		})
		if err != nil {
			suggestion := ""
			if errorCode(err, "") == ErrCommandMissing {
				suggestion = fmt.Sprintf("Run 'slashcmd init %s' first", args[0])
			}
			return handleError(errorCode(err, ErrFileWriteError), err, suggestion)
		}

		if isJSONOutput() {
			var warnings []Warning
			if !res.FileUpdated {
				warnings = append(warnings, Warning{
					Code:    WarnCommandFileMissing,
					Message: "command file not found; only the metadata store and changelog were updated",
					Ref:     res.Name,
				})
			}
			outputSuccessWithWarnings(res, warnings, nil)
			return nil
		}

		fmt.Fprintln(stdout, ui.Successf("Updated %s: %s → %s", ui.Name(res.Name), res.OldVersion, res.NewVersion))
		if !res.FileUpdated {
			fmt.Fprintln(stdout, ui.Warningf("Command file not found; only the metadata store and changelog were updated"))
		}
		return nil
	},
}

func init() {
	bumpCmd.Flags().VarP(&bumpKind, "kind", "k", "Change kind: major, minor, or patch")
	bumpCmd.Flags().StringArrayVarP(&bumpChanges, "change", "c", nil, "Change description (repeatable, at least one)")
	bumpCmd.Flags().StringArrayVar(&bumpBreaking, "breaking", nil, "Breaking change description (repeatable)")
	bumpCmd.Flags().StringArrayVar(&bumpDeprecated, "deprecated", nil, "Deprecated feature description (repeatable)")
	_ = bumpCmd.RegisterFlagCompletionFunc("kind", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var kinds []string
		for _, k := range semver.ChangeKinds() {
			kinds = append(kinds, string(k))
		}
		return kinds, cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(bumpCmd)
}
