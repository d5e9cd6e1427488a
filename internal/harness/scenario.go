package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/primefeed/primefeed/internal/app"
)

// Scenario is one YAML-defined test case.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario exercises.
	Description string `yaml:"description"`

	// Initial seeds the state before any step runs.
	Initial InitialState `yaml:"initial,omitempty"`

	// Token is the dispatch token stamped on every step. Defaults to
	// "scenario-fixed-token" so golden traces stay stable.
	Token string `yaml:"token,omitempty"`

	// Steps are dispatched in order through the runtime.
	Steps []Step `yaml:"steps"`

	// Assertions validate the final state and activity feed.
	Assertions []Assertion `yaml:"assertions"`
}

// InitialState is the seedable slice of the state tree. Only the counter
// persists across sessions, so only the counter is seedable here.
type InitialState struct {
	Count int `yaml:"count"`
}

// Step names one action dispatch. Action takes the dotted names the
// actions print themselves with; the extra fields carry per-action
// payloads and are only read for the actions that need them.
type Step struct {
	Action string `yaml:"action"`

	// Indices is the favorites.delete payload.
	Indices []int `yaml:"indices,omitempty"`

	// N is the lookup.started payload.
	N int `yaml:"n,omitempty"`

	// Result is the lookup.finished payload; nil means the lookup failed.
	Result *int64 `yaml:"result,omitempty"`
}

// Assertion validates one aspect of the scenario outcome.
type Assertion struct {
	// Type selects the check: count, favorites, feed_count, feed_kinds,
	// feed_contains, nth_prime.
	Type string `yaml:"type"`

	// Value is the expected number (count, feed_count, nth_prime).
	Value *int64 `yaml:"value,omitempty"`

	// Primes is the expected favorites set, ascending (favorites).
	Primes []int `yaml:"primes,omitempty"`

	// Kinds is the expected feed kind sequence in order (feed_kinds).
	Kinds []string `yaml:"kinds,omitempty"`

	// Kind and Prime identify one expected feed entry (feed_contains).
	Kind  string `yaml:"kind,omitempty"`
	Prime int    `yaml:"prime,omitempty"`

	// Absent asserts no lookup result is held (nth_prime).
	Absent bool `yaml:"absent,omitempty"`
}

// Assertion type constants.
const (
	AssertCount        = "count"
	AssertFavorites    = "favorites"
	AssertFeedCount    = "feed_count"
	AssertFeedKinds    = "feed_kinds"
	AssertFeedContains = "feed_contains"
	AssertNthPrime     = "nth_prime"
)

// defaultToken keeps golden traces stable for scenarios that don't care
// about token values.
const defaultToken = "scenario-fixed-token"

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so a typo like "assertion:" fails loudly instead of silently
// skipping checks.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario file: %w", err)
	}

	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("parse scenario YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks required fields and that every step parses to a
// real action.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}
	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if _, err := parseStep(step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertCount, AssertFeedCount:
		if a.Value == nil {
			return fmt.Errorf("assertions[%d]: value is required for %s", index, a.Type)
		}
	case AssertFavorites:
		// An empty (or omitted) primes list asserts no favorites.
	case AssertFeedKinds:
		for j, kind := range a.Kinds {
			if !validKind(kind) {
				return fmt.Errorf("assertions[%d].kinds[%d]: unknown kind %q", index, j, kind)
			}
		}
	case AssertFeedContains:
		if !validKind(a.Kind) {
			return fmt.Errorf("assertions[%d]: unknown kind %q", index, a.Kind)
		}
	case AssertNthPrime:
		if a.Value == nil && !a.Absent {
			return fmt.Errorf("assertions[%d]: nth_prime needs value or absent", index)
		}
		if a.Value != nil && a.Absent {
			return fmt.Errorf("assertions[%d]: nth_prime value and absent are exclusive", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}

func validKind(kind string) bool {
	k := app.ActivityKind(kind)
	return k == app.ActivityAdded || k == app.ActivityRemoved
}

// parseStep turns a scenario step into the action it dispatches.
func parseStep(step Step) (app.Action, error) {
	switch step.Action {
	case "counter.increment":
		return app.CounterAction(app.Increment), nil
	case "counter.decrement":
		return app.CounterAction(app.Decrement), nil
	case "primeModal.save":
		return app.PrimeModalAction(app.SaveFavorite), nil
	case "primeModal.remove":
		return app.PrimeModalAction(app.RemoveFavorite), nil
	case "favorites.delete":
		if len(step.Indices) == 0 {
			return nil, fmt.Errorf("favorites.delete requires indices")
		}
		return app.FavoritesAction{DeleteIndices: step.Indices}, nil
	case "lookup.started":
		if step.N <= 0 {
			return nil, fmt.Errorf("lookup.started requires n > 0")
		}
		return app.LookupAction{Type: app.LookupStarted, N: step.N}, nil
	case "lookup.finished":
		return app.LookupAction{Type: app.LookupFinished, Result: step.Result}, nil
	case "":
		return nil, fmt.Errorf("action is required")
	default:
		return nil, fmt.Errorf("unknown action %q", step.Action)
	}
}
