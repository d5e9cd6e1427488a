package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/primefeed/primefeed/internal/app"
	"github.com/primefeed/primefeed/internal/runtime"
)

// DispatchOptions holds flags for the dispatch command.
type DispatchOptions struct {
	*RootOptions
}

// dispatchSummary is the dispatch command's result payload.
type dispatchSummary struct {
	Count       int    `json:"count"`
	Favorites   []int  `json:"favorites"`
	FeedEntries int    `json:"feed_entries"`
	Token       string `json:"token"`
}

// NewDispatchCommand creates the one-shot dispatch command.
func NewDispatchCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DispatchOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "dispatch <action>...",
		Short: "Dispatch actions against the journal and exit",
		Long: `Dispatch a batch of actions against the persisted state and exit.

The counter is restored from the journal snapshot before the first action;
the whole batch shares one dispatch token. Actions use the same dotted
names the runtime logs:

  counter.increment        counter.decrement
  primeModal.save          primeModal.remove
  favorites.delete:0,2     (indices into the ascending favorites view)

Examples:
  primefeed dispatch --db ./primefeed.db counter.increment counter.increment
  primefeed dispatch --db ./primefeed.db primeModal.save
  primefeed dispatch --db ./primefeed.db favorites.delete:0 --format json`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDispatch(opts, args, cmd)
		},
	}

	return cmd
}

func runDispatch(opts *DispatchOptions, args []string, cmd *cobra.Command) error {
	actions := make([]app.Action, len(args))
	for i, arg := range args {
		action, err := parseActionArg(arg)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("argument %d", i+1), err)
		}
		actions[i] = action
	}

	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	rt, jnl, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer jnl.Close()

	// One external request, one token. Apply is safe here because the Run
	// loop never starts: this goroutine is the single writer.
	token := rt.NewToken()
	for _, action := range actions {
		rt.Apply(ctx, runtime.Dispatch{Action: action, Token: token})
	}

	state := rt.State()
	summary := dispatchSummary{
		Count:       state.Count,
		Favorites:   state.FavoritePrimes,
		FeedEntries: len(state.ActivityFeed),
		Token:       token,
	}
	if summary.Favorites == nil {
		summary.Favorites = []int{}
	}

	f := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}
	if opts.Format == "json" {
		return f.Success(summary)
	}
	return f.Success(fmt.Sprintf("count=%d favorites=%v new feed entries=%d",
		summary.Count, summary.Favorites, summary.FeedEntries))
}

// parseActionArg parses one dispatch argument into an action. The syntax
// matches the dotted action names, with favorites.delete taking its
// indices after a colon.
func parseActionArg(arg string) (app.Action, error) {
	if indices, ok := strings.CutPrefix(arg, "favorites.delete:"); ok {
		parts := strings.Split(indices, ",")
		parsed := make([]int, len(parts))
		for i, part := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || v < 0 {
				return nil, fmt.Errorf("bad delete index %q", part)
			}
			parsed[i] = v
		}
		return app.FavoritesAction{DeleteIndices: parsed}, nil
	}

	switch arg {
	case "counter.increment":
		return app.CounterAction(app.Increment), nil
	case "counter.decrement":
		return app.CounterAction(app.Decrement), nil
	case "primeModal.save":
		return app.PrimeModalAction(app.SaveFavorite), nil
	case "primeModal.remove":
		return app.PrimeModalAction(app.RemoveFavorite), nil
	default:
		return nil, fmt.Errorf("unknown action %q", arg)
	}
}
