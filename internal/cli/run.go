package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/primefeed/primefeed/internal/app"
	"github.com/primefeed/primefeed/internal/lookup"
	"github.com/primefeed/primefeed/internal/prime"
	"github.com/primefeed/primefeed/internal/runtime"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions

	// LookupClient overrides the config-built client (tests point it at
	// httptest servers). Nil means build from config.
	LookupClient *lookup.Client
}

// NewRunCommand creates the interactive run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start an interactive session",
		Long: `Start an interactive session against the journal.

The counter is restored from the journal snapshot; favorites, the feed,
and lookup state start empty. Every command dispatches through the same
single-writer loop, and favorites changes are journaled as they happen.

Commands:
  incr / decr          move the counter
  check                report whether the current count is prime
  save / remove        favorite or unfavorite the current count
  delete <i> [j ...]   delete favorites by position (ascending view)
  nth <n>              look up the nth prime remotely
  state                print the full state tree
  favorites            print the favorites set
  feed                 print the activity feed
  quit                 stop the session

Example:
  primefeed run --db ./primefeed.db`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSession(opts, cmd)
		},
	}

	return cmd
}

// stateView is the REPL's read side. The store subscriber writes snapshots
// from the Run goroutine; the REPL goroutine reads them under the mutex.
type stateView struct {
	mu sync.Mutex
	s  app.State
}

func (v *stateView) set(s app.State) {
	v.mu.Lock()
	v.s = s
	v.mu.Unlock()
}

func (v *stateView) get() app.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.s
}

func runSession(opts *RunOptions, cmd *cobra.Command) error {
	cfg, err := loadConfig(opts.RootOptions)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	rt, jnl, err := openSession(ctx, cfg)
	if err != nil {
		return err
	}
	defer jnl.Close()

	client := opts.LookupClient
	if client == nil {
		client = lookup.NewClient(
			lookup.WithBaseURL(cfg.Lookup.Endpoint),
			lookup.WithAppID(cfg.Lookup.AppID),
			lookup.WithTimeout(cfg.Lookup.Timeout),
		)
	}

	view := &stateView{}
	view.set(rt.State())
	rt.Subscribe(view.set)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			slog.Info("received signal, shutting down", "signal", sig)
			rt.Stop()
			cancel()
		case <-ctx.Done():
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		errCh <- rt.Run(ctx)
	}()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session started. Count is %d. Type 'help' for commands.\n", view.get().Count)

	repl(ctx, rt, client, view, cmd.InOrStdin(), out)

	rt.Stop()
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return WrapExitError(ExitFailure, "runtime error", err)
	}
	return nil
}

// repl reads commands until EOF or quit. Every user command mints one
// token; everything it causes, including the async lookup result, carries
// that token.
func repl(ctx context.Context, rt *runtime.Runtime, client *lookup.Client, view *stateView, in io.Reader, out io.Writer) {
	printer := message.NewPrinter(language.English)
	scanner := bufio.NewScanner(in)

	// The lookup gate is REPL-local: the store view only reflects
	// LookupStarted after the Run goroutine processes it, so reading
	// LookupInFlight here would let two rapid nth commands race past it.
	var lookupBusy atomic.Bool

	fmt.Fprint(out, "> ")
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			fmt.Fprint(out, "> ")
			continue
		}

		switch fields[0] {
		case "incr":
			rt.Enqueue(runtime.Dispatch{Action: app.CounterAction(app.Increment), Token: rt.NewToken()})
		case "decr":
			rt.Enqueue(runtime.Dispatch{Action: app.CounterAction(app.Decrement), Token: rt.NewToken()})
		case "save":
			rt.Enqueue(runtime.Dispatch{Action: app.PrimeModalAction(app.SaveFavorite), Token: rt.NewToken()})
		case "remove":
			rt.Enqueue(runtime.Dispatch{Action: app.PrimeModalAction(app.RemoveFavorite), Token: rt.NewToken()})
		case "delete":
			indices, err := parseIndices(fields[1:])
			if err != nil {
				fmt.Fprintf(out, "delete: %v\n", err)
				break
			}
			rt.Enqueue(runtime.Dispatch{Action: app.FavoritesAction{DeleteIndices: indices}, Token: rt.NewToken()})
		case "nth":
			n, err := parseOrdinal(fields[1:])
			if err != nil {
				fmt.Fprintf(out, "nth: %v\n", err)
				break
			}
			if !lookupBusy.CompareAndSwap(false, true) {
				fmt.Fprintln(out, "a lookup is already in flight")
				break
			}
			startLookup(ctx, rt, client, printer, out, n, &lookupBusy)
		case "check":
			count := view.get().Count
			if prime.IsPrime(count) {
				fmt.Fprintf(out, "%d is prime\n", count)
			} else {
				fmt.Fprintf(out, "%d is not prime\n", count)
			}
		case "state":
			printState(out, view.get())
		case "favorites":
			fmt.Fprintf(out, "favorites: %v\n", view.get().FavoritePrimes)
		case "feed":
			printFeed(out, view.get().ActivityFeed)
		case "help":
			fmt.Fprintln(out, "commands: incr decr check save remove delete <i>... nth <n> state favorites feed quit")
		case "quit", "exit":
			return
		default:
			fmt.Fprintf(out, "unknown command %q (try 'help')\n", fields[0])
		}

		fmt.Fprint(out, "> ")
	}
}

// startLookup dispatches the start action and fires the network request.
// The result re-enters the queue as a finished action with the SAME token,
// so the feed and journal attribute it to the user command that caused it.
// busy is cleared once the result has been printed and enqueued.
func startLookup(ctx context.Context, rt *runtime.Runtime, client *lookup.Client, printer *message.Printer, out io.Writer, n int, busy *atomic.Bool) {
	token := rt.NewToken()
	rt.Enqueue(runtime.Dispatch{Action: app.LookupAction{Type: app.LookupStarted, N: n}, Token: token})

	go func() {
		var result *int64
		if v, ok := client.NthPrime(ctx, n); ok {
			result = &v
			printer.Fprintf(out, "\nThe %d%s prime is %d.\n> ", n, ordinalSuffix(n), v)
		} else {
			printer.Fprintf(out, "\nNo result for the %d%s prime.\n> ", n, ordinalSuffix(n))
		}
		rt.Enqueue(runtime.Dispatch{Action: app.LookupAction{Type: app.LookupFinished, Result: result}, Token: token})
		busy.Store(false)
	}()
}

// ordinalSuffix returns the English ordinal suffix for n (1st, 2nd, 3rd,
// 4th, ... 11th, 12th, 13th, ... 21st).
func ordinalSuffix(n int) string {
	if r := n % 100; r >= 11 && r <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

func printState(out io.Writer, s app.State) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		fmt.Fprintf(out, "state: %v\n", err)
		return
	}
	fmt.Fprintln(out, string(data))
}

func printFeed(out io.Writer, feed []app.Activity) {
	if len(feed) == 0 {
		fmt.Fprintln(out, "feed is empty")
		return
	}
	for _, a := range feed {
		fmt.Fprintf(out, "%4d  %-22s  %d\n", a.Seq, a.Kind, a.Prime)
	}
}

func parseIndices(args []string) ([]int, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("at least one index required")
	}
	indices := make([]int, len(args))
	for i, arg := range args {
		v, err := strconv.Atoi(arg)
		if err != nil || v < 0 {
			return nil, fmt.Errorf("bad index %q", arg)
		}
		indices[i] = v
	}
	return indices, nil
}

func parseOrdinal(args []string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("exactly one ordinal required")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("bad ordinal %q", args[0])
	}
	return n, nil
}
