package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Golden traces pin the exact per-step state and seq assignment. Regenerate
// with -update after an intentional behavior change.
func TestGoldenTraces(t *testing.T) {
	scenarios := []string{
		"testdata/scenarios/counter-walk.yaml",
		"testdata/scenarios/favorites-lifecycle.yaml",
		"testdata/scenarios/delete-batch.yaml",
	}

	for _, file := range scenarios {
		t.Run(file, func(t *testing.T) {
			s, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := RunWithGolden(t, s)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
		})
	}
}

// Two runs of the same scenario produce identical traces: fixed token,
// fixed wall clock, and a fresh logical clock per run.
func TestGoldenDeterminism(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/delete-batch.yaml")
	require.NoError(t, err)

	first, err := Run(s)
	require.NoError(t, err)
	second, err := Run(s)
	require.NoError(t, err)

	assert.Equal(t, first.Trace, second.Trace)
}
