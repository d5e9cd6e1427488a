// Package config loads the optional primefeed configuration file.
//
// Config files are CUE: they are compiled, unified against the embedded
// schema (which supplies defaults and rejects unknown fields), and
// validated for concreteness before any value is read. A missing file is
// not an error - every field has a default.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/token"

	_ "embed"
)

//go:embed schema.cue
var schemaCUE string

// Config is the fully resolved configuration.
type Config struct {
	DatabasePath string
	Lookup       LookupConfig
}

// LookupConfig configures the nth-prime lookup client.
type LookupConfig struct {
	Endpoint string
	AppID    string
	Timeout  time.Duration
}

// LoadError is a configuration load failure with the CUE source position
// when one is available.
type LoadError struct {
	Path    string
	Message string
	Pos     token.Pos
	Err     error
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Default returns the configuration implied by an absent config file.
func Default() Config {
	cfg, err := fromValue(schemaValue(cuecontext.New()))
	if err != nil {
		// The embedded schema's defaults are complete; failing to resolve
		// them is a programming error, not a runtime condition.
		panic(fmt.Sprintf("config: embedded schema defaults invalid: %v", err))
	}
	return cfg
}

// Load reads and validates a CUE config file. A missing file returns the
// defaults; any other failure returns a LoadError.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, &LoadError{Path: path, Message: "read config", Err: err}
	}

	cctx := cuecontext.New()

	fileVal := cctx.CompileBytes(data, cue.Filename(path))
	if err := fileVal.Err(); err != nil {
		return Config{}, cueError(path, "compile config", err)
	}

	// Unify with the schema: defaults fill omissions, constraints and the
	// closed struct reject bad or unknown fields.
	unified := schemaValue(cctx).Unify(fileVal)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return Config{}, cueError(path, "validate config", err)
	}

	return fromValue(unified)
}

// schemaValue compiles the embedded schema and resolves the #Config
// definition as a closed struct.
func schemaValue(cctx *cue.Context) cue.Value {
	schema := cctx.CompileString(schemaCUE, cue.Filename("schema.cue"))
	return schema.LookupPath(cue.ParsePath("#Config"))
}

// fromValue extracts a Config from a validated CUE value.
func fromValue(v cue.Value) (Config, error) {
	var cfg Config

	dbPath, err := v.LookupPath(cue.ParsePath("database.path")).String()
	if err != nil {
		return Config{}, cueError("", "database.path", err)
	}
	cfg.DatabasePath = dbPath

	endpoint, err := v.LookupPath(cue.ParsePath("lookup.endpoint")).String()
	if err != nil {
		return Config{}, cueError("", "lookup.endpoint", err)
	}
	cfg.Lookup.Endpoint = endpoint

	appID, err := v.LookupPath(cue.ParsePath("lookup.app_id")).String()
	if err != nil {
		return Config{}, cueError("", "lookup.app_id", err)
	}
	cfg.Lookup.AppID = appID

	seconds, err := v.LookupPath(cue.ParsePath("lookup.timeout_seconds")).Int64()
	if err != nil {
		return Config{}, cueError("", "lookup.timeout_seconds", err)
	}
	cfg.Lookup.Timeout = time.Duration(seconds) * time.Second

	return cfg, nil
}

// cueError wraps a CUE error into a LoadError, carrying the source
// position when the error exposes one.
func cueError(path, message string, err error) *LoadError {
	le := &LoadError{Path: path, Message: fmt.Sprintf("%s: %v", message, err), Err: err}
	if pe, ok := err.(interface{ Position() token.Pos }); ok {
		le.Pos = pe.Position()
	}
	return le
}
