package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// TraceSnapshot is the golden-file shape: scenario identity plus the
// per-step trace. Serialized with stable field order and two-space indent.
type TraceSnapshot struct {
	Scenario string       `json:"scenario"`
	Token    string       `json:"token"`
	Trace    []TraceEvent `json:"trace"`
}

// RunWithGolden executes a scenario and pins its trace against
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}

	token := scenario.Token
	if token == "" {
		token = defaultToken
	}

	snapshot := TraceSnapshot{
		Scenario: scenario.Name,
		Token:    token,
		Trace:    result.Trace,
	}

	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result, nil
}
