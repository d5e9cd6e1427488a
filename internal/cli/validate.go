package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/primefeed/primefeed/internal/config"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// validateResult is the validate command's result payload.
type validateResult struct {
	Path     string `json:"path"`
	Database string `json:"database"`
	Endpoint string `json:"endpoint"`
	Timeout  string `json:"timeout"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "validate <config-file>",
		Short: "Validate a config file",
		Long: `Validate a CUE config file against the schema and print the
resolved values, defaults included.

Validation failures report the CUE source position when one is
available.

Examples:
  primefeed validate ./primefeed.cue
  primefeed validate ./primefeed.cue --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	// Load treats a missing file as "use defaults", which is right for
	// normal startup but wrong for explicit validation.
	if _, err := os.Stat(path); err != nil {
		return WrapExitError(ExitCommandError, "config file not found", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		if ferr := f.Failure("config invalid", err.Error()); ferr != nil {
			return ferr
		}
		return WrapExitError(ExitFailure, "config invalid", err)
	}

	result := validateResult{
		Path:     path,
		Database: cfg.DatabasePath,
		Endpoint: cfg.Lookup.Endpoint,
		Timeout:  cfg.Lookup.Timeout.String(),
	}

	if opts.Format == "json" {
		return f.Success(result)
	}
	return f.Success(fmt.Sprintf("config ok: database=%s endpoint=%s timeout=%s",
		result.Database, result.Endpoint, result.Timeout))
}
