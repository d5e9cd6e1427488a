package cli

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/primefeed/primefeed/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
}

// scenarioOutcome is one scenario's result in the test report.
type scenarioOutcome struct {
	Name   string   `json:"name"`
	File   string   `json:"file"`
	Pass   bool     `json:"pass"`
	Errors []string `json:"errors,omitempty"`
}

// testReport is the test command's result payload.
type testReport struct {
	Scenarios []scenarioOutcome `json:"scenarios"`
	Total     int               `json:"total"`
	Passed    int               `json:"passed"`
	Failed    int               `json:"failed"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run scenario files against a fresh runtime",
		Long: `Run every scenario YAML file in a directory.

Each scenario runs in a fresh in-memory session with a fixed clock and
token, dispatches its steps through the real reducer composition, and
evaluates its assertions against the final state.

Exit codes:
  0 - all scenarios passed
  1 - at least one scenario failed
  2 - command error (directory missing, scenario unparseable)

Examples:
  primefeed test ./scenarios
  primefeed test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTest(opts, args[0], cmd)
		},
	}

	return cmd
}

func runTest(opts *TestOptions, dir string, cmd *cobra.Command) error {
	files, err := scenarioFiles(dir)
	if err != nil {
		return WrapExitError(ExitCommandError, "list scenarios", err)
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("no scenario files in %s", dir))
	}

	report := testReport{Total: len(files)}
	for _, file := range files {
		scenario, err := harness.LoadScenario(file)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("load %s", file), err)
		}

		result, err := harness.Run(scenario)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("run %s", scenario.Name), err)
		}

		outcome := scenarioOutcome{
			Name:   scenario.Name,
			File:   file,
			Pass:   result.Pass,
			Errors: result.Errors,
		}
		report.Scenarios = append(report.Scenarios, outcome)
		if result.Pass {
			report.Passed++
		} else {
			report.Failed++
		}
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		if err := f.Success(report); err != nil {
			return err
		}
	} else {
		if err := f.Success(formatTestText(report)); err != nil {
			return err
		}
	}

	if report.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", report.Failed, report.Total))
	}
	return nil
}

// scenarioFiles lists the YAML files in dir, sorted so runs are stable.
func scenarioFiles(dir string) ([]string, error) {
	var files []string
	for _, pattern := range []string{"*.yaml", "*.yml"} {
		matches, err := filepath.Glob(filepath.Join(dir, pattern))
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	sort.Strings(files)
	return files, nil
}

func formatTestText(report testReport) string {
	var b strings.Builder
	for _, s := range report.Scenarios {
		status := "PASS"
		if !s.Pass {
			status = "FAIL"
		}
		fmt.Fprintf(&b, "%s  %s\n", status, s.Name)
		for _, e := range s.Errors {
			for _, line := range strings.Split(e, "\n") {
				fmt.Fprintf(&b, "      %s\n", line)
			}
		}
	}
	fmt.Fprintf(&b, "%d passed, %d failed, %d total", report.Passed, report.Failed, report.Total)
	return b.String()
}
