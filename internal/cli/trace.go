package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/primefeed/primefeed/internal/app"
	"github.com/primefeed/primefeed/internal/journal"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Token string // optional - filter to one dispatch token
}

// traceEntry is one journaled activity in the trace output.
type traceEntry struct {
	Seq       int64  `json:"seq"`
	Kind      string `json:"kind"`
	Prime     int    `json:"prime"`
	Token     string `json:"token"`
	Timestamp string `json:"timestamp"`
}

// traceResult is the trace command's result payload.
type traceResult struct {
	Entries []traceEntry `json:"entries"`
	Total   int          `json:"total"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Print the journaled activity log",
		Long: `Print the journaled activity log in deterministic order.

Entries come back ordered by (seq, insertion), exactly the order replay
uses. The --token filter narrows the log to the activities one dispatch
token caused, which ties feed entries back to the user command or lookup
that produced them.

Examples:
  primefeed trace --db ./primefeed.db
  primefeed trace --db ./primefeed.db --token 0190a1b2-...
  primefeed trace --db ./primefeed.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Token, "token", "", "filter to one dispatch token")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	jnl, err := journal.Open(cfg.DatabasePath)
	if err != nil {
		return WrapExitError(ExitCommandError, "open journal", err)
	}
	defer jnl.Close()

	var activities []app.Activity
	if opts.Token != "" {
		activities, err = jnl.ReadActivitiesForToken(ctx, opts.Token)
	} else {
		activities, err = jnl.ReadActivities(ctx)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "read activities", err)
	}

	result := traceResult{
		Entries: make([]traceEntry, len(activities)),
		Total:   len(activities),
	}
	for i, a := range activities {
		result.Entries[i] = traceEntry{
			Seq:       a.Seq,
			Kind:      string(a.Kind),
			Prime:     a.Prime,
			Token:     a.Token,
			Timestamp: a.Timestamp.UTC().Format(time.RFC3339),
		}
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return f.Success(result)
	}
	return f.Success(formatTraceText(result))
}

func formatTraceText(result traceResult) string {
	if result.Total == 0 {
		return "journal is empty"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-5s %-24s %-8s %-24s %s\n", "SEQ", "KIND", "PRIME", "TIMESTAMP", "TOKEN")
	for _, e := range result.Entries {
		fmt.Fprintf(&b, "%-5d %-24s %-8d %-24s %s\n", e.Seq, e.Kind, e.Prime, e.Timestamp, e.Token)
	}
	fmt.Fprintf(&b, "%d entries", result.Total)
	return b.String()
}
