package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aidanlsb/slashcmd/internal/semver"
	"github.com/aidanlsb/slashcmd/internal/testutil"
)

const (
	cleanWorkflow = "# Feature Dev\n\nUse the Task tool with subagent_type=\"backend-architect\" for $ARGUMENTS.\n"
	cleanTool     = "# Lint\n\nRun the linters.\n"
)

type cliResult struct {
	Stdout string
	Stderr string
	Err    error
}

func (r cliResult) mustSucceed(t *testing.T) {
	t.Helper()
	if r.Err != nil {
		t.Fatalf("command failed: %v\nstdout:\n%s\nstderr:\n%s", r.Err, r.Stdout, r.Stderr)
	}
}

func (r cliResult) envelope(t *testing.T) Response {
	t.Helper()
	var resp Response
	if err := json.Unmarshal([]byte(r.Stdout), &resp); err != nil {
		t.Fatalf("stdout is not a JSON envelope: %v\n%s", err, r.Stdout)
	}
	return resp
}

// runCLI executes the root command in-process against repo.
func runCLI(t *testing.T, repo *testutil.TestRepo, args ...string) cliResult {
	t.Helper()

	var out, errOut bytes.Buffer
	prevOut, prevErr, prevNow := stdout, stderr, now
	t.Cleanup(func() {
		stdout, stderr, now = prevOut, prevErr, prevNow
	})
	stdout, stderr = &out, &errOut
	now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }

	resetFlags()
	rootCmd.SetArgs(append([]string{"--path", repo.Path}, args...))
	err := Execute()

	return cliResult{Stdout: out.String(), Stderr: errOut.String(), Err: err}
}

// resetFlags restores flag variables and their changed state between runs.
func resetFlags() {
	repoPathFlag, configPath = ".", ""
	jsonOutput, verbose = false, false
	checkStrict, checkFormat, checkOutput = false, "text", ""
	initDescription, initTags, initDependencies = "", nil, nil
	bumpKind = changeKindValue(semver.Patch)
	bumpChanges, bumpBreaking, bumpDeprecated = nil, nil, nil
	reportOutput = ""

	var walk func(*cobra.Command)
	walk = func(c *cobra.Command) {
		c.Flags().VisitAll(func(f *pflag.Flag) { f.Changed = false })
		for _, sub := range c.Commands() {
			walk(sub)
		}
	}
	walk(rootCmd)
}

func TestCheckCommand(t *testing.T) {
	t.Run("clean repository passes", func(t *testing.T) {
		repo := testutil.NewTestRepo(t).
			WithWorkflow("feature-dev", cleanWorkflow).
			WithTool("lint", cleanTool).
			Build()

		r := runCLI(t, repo, "check")
		r.mustSucceed(t)
		if !strings.Contains(r.Stdout, "- Total Commands: 2") {
			t.Errorf("expected summary, got:\n%s", r.Stdout)
		}
	})

	t.Run("errors fail the run", func(t *testing.T) {
		repo := testutil.NewTestRepo(t).
			WithTool("lint", cleanTool).
			WithTool("broken", "").
			Build()

		r := runCLI(t, repo, "check")
		if !errors.Is(r.Err, errSilentFailure) {
			t.Fatalf("expected silent failure, got %v", r.Err)
		}
		if !strings.Contains(r.Stdout, "## broken.md") || !strings.Contains(r.Stdout, "Command file is empty") {
			t.Errorf("expected broken.md section, got:\n%s", r.Stdout)
		}
	})

	t.Run("strict fails on warnings", func(t *testing.T) {
		repo := testutil.NewTestRepo(t).
			WithWorkflow("feature-dev", "# Feature Dev\n\nDo the thing.\n").
			Build()

		runCLI(t, repo, "check").mustSucceed(t)
		if r := runCLI(t, repo, "check", "--strict"); !errors.Is(r.Err, errSilentFailure) {
			t.Fatalf("expected --strict to fail on warnings, got %v", r.Err)
		}
	})

	t.Run("json format writes findings per file", func(t *testing.T) {
		repo := testutil.NewTestRepo(t).WithTool("broken", "").Build()

		r := runCLI(t, repo, "check", "--format", "json", "--output", repo.Abs("report.json"))
		if !errors.Is(r.Err, errSilentFailure) {
			t.Fatalf("expected failure, got %v", r.Err)
		}

		var byFile map[string][]map[string]any
		if err := json.Unmarshal([]byte(repo.ReadFile("report.json")), &byFile); err != nil {
			t.Fatalf("report is not JSON: %v", err)
		}
		findings := byFile[repo.Abs("tools/broken.md")]
		if len(findings) == 0 || findings[0]["level"] != "error" {
			t.Errorf("unexpected findings: %v", byFile)
		}
	})

	t.Run("json envelope", func(t *testing.T) {
		repo := testutil.NewTestRepo(t).WithTool("lint", cleanTool).Build()

		r := runCLI(t, repo, "--json", "check")
		r.mustSucceed(t)
		if resp := r.envelope(t); !resp.OK || resp.Meta == nil || resp.Meta.Count != 1 {
			t.Errorf("unexpected envelope: %+v", resp)
		}
	})
}

func TestVersionLifecycle(t *testing.T) {
	repo := testutil.NewTestRepo(t).
		WithWorkflow("feature-dev", cleanWorkflow).
		WithTool("lint", cleanTool).
		Build()

	r := runCLI(t, repo, "init", "workflows/feature-dev.md", "--description", "Build features", "--tags", "core,dev")
	r.mustSucceed(t)
	if !strings.Contains(r.Stdout, "Initialized workflow") {
		t.Errorf("unexpected init output: %s", r.Stdout)
	}
	repo.AssertFileContains("workflows/feature-dev.md", "version: 1.0.0")

	// Initializing again by bare name is a no-op.
	r = runCLI(t, repo, "init", "feature-dev")
	r.mustSucceed(t)
	if !strings.Contains(r.Stdout, "already tracked") {
		t.Errorf("expected already-tracked notice, got: %s", r.Stdout)
	}

	runCLI(t, repo, "init-all").mustSucceed(t)
	repo.AssertFileContains(".command-metadata.json", `"description": "Tool: Lint"`)

	r = runCLI(t, repo, "bump", "feature-dev", "--kind", "minor", "-c", "Add review step", "--breaking", "Renamed phases")
	r.mustSucceed(t)
	if !strings.Contains(r.Stdout, "1.0.0 → 1.1.0") {
		t.Errorf("unexpected bump output: %s", r.Stdout)
	}
	repo.AssertFileContains("workflows/feature-dev.md", "version: 1.1.0")
	repo.AssertFileContains("CHANGELOG.md", "## [feature-dev] 1.1.0 - 2024-05-01")
	repo.AssertFileContains("CHANGELOG.md", "### Breaking Changes\n- Renamed phases")

	runCLI(t, repo, "compat", "feature-dev", "1.1.0").mustSucceed(t)
	if r := runCLI(t, repo, "compat", "feature-dev", "1.2.0"); !errors.Is(r.Err, errSilentFailure) {
		t.Errorf("expected incompatible result to fail, got %v", r.Err)
	}

	r = runCLI(t, repo, "show", "feature-dev")
	r.mustSucceed(t)
	if !strings.Contains(r.Stdout, "Version:      v1.1.0") || !strings.Contains(r.Stdout, "Add review step") {
		t.Errorf("unexpected show output:\n%s", r.Stdout)
	}

	r = runCLI(t, repo, "report")
	r.mustSucceed(t)
	if !strings.Contains(r.Stdout, "- **feature-dev** (v1.1.0)") || !strings.Contains(r.Stdout, "## Tools") {
		t.Errorf("unexpected report:\n%s", r.Stdout)
	}

	// The versioned files still pass validation.
	runCLI(t, repo, "check").mustSucceed(t)
}

func TestBumpErrors(t *testing.T) {
	repo := testutil.NewTestRepo(t).WithTool("lint", cleanTool).Build()

	t.Run("unregistered command", func(t *testing.T) {
		r := runCLI(t, repo, "--json", "bump", "lint", "-c", "x")
		if !errors.Is(r.Err, errSilentFailure) {
			t.Fatalf("expected silent failure, got %v", r.Err)
		}
		resp := r.envelope(t)
		if resp.OK || resp.Error == nil || resp.Error.Code != ErrCommandMissing {
			t.Errorf("unexpected envelope: %+v", resp)
		}
	})

	t.Run("missing change", func(t *testing.T) {
		r := runCLI(t, repo, "--json", "bump", "lint")
		if resp := r.envelope(t); resp.Error == nil || resp.Error.Code != ErrMissingArgument {
			t.Errorf("unexpected envelope: %+v", resp)
		}
	})

	t.Run("invalid kind", func(t *testing.T) {
		r := runCLI(t, repo, "bump", "lint", "--kind", "huge", "-c", "x")
		if r.Err == nil || !strings.Contains(r.Err.Error(), "invalid change kind") {
			t.Errorf("expected flag parse error, got %v", r.Err)
		}
	})

	repo.AssertFileNotExists("CHANGELOG.md")
	repo.AssertFileNotExists(".command-metadata.json")
}

func TestCompatMalformedVersion(t *testing.T) {
	repo := testutil.NewTestRepo(t).WithTool("lint", cleanTool).Build()
	runCLI(t, repo, "init", "lint").mustSucceed(t)

	r := runCLI(t, repo, "--json", "compat", "lint", "1.x")
	if resp := r.envelope(t); resp.Error == nil || resp.Error.Code != ErrInvalidVersion {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}

func TestConfigInit(t *testing.T) {
	repo := testutil.NewTestRepo(t).WithFile(".slashcmd.toml", "not = [valid").Build()

	// A broken config does not block regenerating it, but it is not overwritten.
	r := runCLI(t, repo, "config", "init")
	r.mustSucceed(t)
	if !strings.Contains(r.Stdout, "already exists") {
		t.Errorf("unexpected output: %s", r.Stdout)
	}

	if r := runCLI(t, repo, "check"); r.Err == nil {
		t.Error("expected invalid config to fail check")
	}
}

func TestConfigDirectories(t *testing.T) {
	repo := testutil.NewTestRepo(t).
		WithFile(".slashcmd.toml", "workflows_dir = \"flows\"\n").
		WithFile("flows/feature-dev.md", cleanWorkflow).
		Build()

	r := runCLI(t, repo, "init-all")
	r.mustSucceed(t)
	repo.AssertFileContains(".command-metadata.json", `"type": "workflow"`)
	repo.AssertFileContains("flows/feature-dev.md", "version: 1.0.0")
}

func TestCompatJSON(t *testing.T) {
	repo := testutil.NewTestRepo(t).WithTool("lint", cleanTool).Build()
	runCLI(t, repo, "init", "lint").mustSucceed(t)

	r := runCLI(t, repo, "--json", "compat", "lint", "2.0.0")
	resp := r.envelope(t)
	if resp.OK || resp.Error == nil || resp.Error.Code != ErrIncompatible {
		t.Errorf("unexpected envelope: %+v", resp)
	}

	r = runCLI(t, repo, "--json", "compat", "ghost", "1.0.0")
	if resp := r.envelope(t); resp.Error == nil || resp.Error.Code != ErrCommandMissing {
		t.Errorf("unexpected envelope: %+v", resp)
	}
}
