package cli

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/slashcmd/internal/buildinfo"
)

const defaultModulePath = "github.com/aidanlsb/slashcmd"

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

var readBuildInfo = debug.ReadBuildInfo

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show slashcmd version and build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		if isJSONOutput() {
			outputSuccess(info, nil)
			return nil
		}

		fmt.Fprintf(stdout, "slashcmd %s\n", info.Version)
		if info.Commit != "" {
			commit := info.Commit
			if info.Modified {
				commit += " (modified)"
			}
			fmt.Fprintf(stdout, "commit: %s\n", commit)
		}
		if info.CommitTime != "" {
			fmt.Fprintf(stdout, "built: %s\n", info.CommitTime)
		}
		fmt.Fprintf(stdout, "go: %s %s\n", info.GoVersion, info.Platform)
		return nil
	},
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := readBuildInfo()
	if ok && bi != nil {
		if bi.Main.Path != "" {
			info.ModulePath = bi.Main.Path
		}
		info.Version = normalizeVersion(bi.Main.Version)
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}

		settings := make(map[string]string, len(bi.Settings))
		for _, s := range bi.Settings {
			settings[s.Key] = s.Value
		}
		if goos, goarch := settings["GOOS"], settings["GOARCH"]; goos != "" && goarch != "" {
			info.Platform = goos + "/" + goarch
		}
		info.Commit = settings["vcs.revision"]
		info.CommitTime = settings["vcs.time"]
		info.Modified = strings.EqualFold(settings["vcs.modified"], "true")
	}

	// Release builds inject these through ldflags.
	if info.Version == "devel" && buildinfo.Version != "" {
		info.Version = normalizeVersion(buildinfo.Version)
	}
	if info.Commit == "" {
		info.Commit = buildinfo.Commit
	}
	if info.CommitTime == "" {
		info.CommitTime = buildinfo.Date
	}
	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
