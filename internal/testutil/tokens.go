package testutil

import "sync"

// FixedTokens returns predetermined dispatch tokens in order.
//
// This enables deterministic runtime tests and golden trace comparison:
// provide a known token sequence and verify exact journal output.
//
// Generate panics once the tokens are exhausted - fail fast on a test that
// creates more dispatch contexts than it declared.
type FixedTokens struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokens creates a generator that yields tokens in the given order.
func NewFixedTokens(tokens ...string) *FixedTokens {
	return &FixedTokens{tokens: tokens}
}

// Generate returns the next predetermined token.
func (g *FixedTokens) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("testutil: FixedTokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
