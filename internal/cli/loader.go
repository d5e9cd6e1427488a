package cli

import (
	"context"

	"github.com/primefeed/primefeed/internal/app"
	"github.com/primefeed/primefeed/internal/config"
	"github.com/primefeed/primefeed/internal/journal"
	"github.com/primefeed/primefeed/internal/runtime"
)

// loadConfig resolves the effective configuration: the config file (or
// defaults when none is given or found), with the --db flag taking
// precedence over the configured database path.
func loadConfig(opts *RootOptions) (config.Config, error) {
	var cfg config.Config
	if opts.ConfigPath != "" {
		loaded, err := config.Load(opts.ConfigPath)
		if err != nil {
			return config.Config{}, WrapExitError(ExitCommandError, "load config", err)
		}
		cfg = loaded
	} else {
		cfg = config.Default()
	}

	if opts.Database != "" {
		cfg.DatabasePath = opts.Database
	}
	return cfg, nil
}

// openSession opens the journal and builds a runtime resumed from it:
// the counter restored from the snapshot, everything else reset, and the
// logical clock continued past the last journaled seq.
func openSession(ctx context.Context, cfg config.Config) (*runtime.Runtime, *journal.Journal, error) {
	jnl, err := journal.Open(cfg.DatabasePath)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "open journal", err)
	}

	count, err := jnl.LoadCount(ctx)
	if err != nil {
		jnl.Close()
		return nil, nil, WrapExitError(ExitCommandError, "load counter snapshot", err)
	}

	lastSeq, err := jnl.LastSeq(ctx)
	if err != nil {
		jnl.Close()
		return nil, nil, WrapExitError(ExitCommandError, "read journal seq", err)
	}

	rt := runtime.New(
		app.State{Count: count},
		runtime.WithJournal(jnl),
		runtime.WithClockAt(lastSeq),
	)
	return rt, jnl, nil
}
