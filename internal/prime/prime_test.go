package prime

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPrime_SmallCases(t *testing.T) {
	tests := []struct {
		n    int
		want bool
	}{
		{-7, false},
		{-1, false},
		{0, false},
		{1, false},
		{2, true},
		{3, true},
		{4, false},
		{5, true},
		{9, false},
		{25, false},
		{97, true},
		{7919, true}, // the 1000th prime
		{7917, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPrime(tt.n), "IsPrime(%d)", tt.n)
	}
}

func TestIsPrime_MatchesSieve(t *testing.T) {
	const bound = 10000
	sieve := Sieve(bound)
	require.Len(t, sieve, bound+1)

	for n := 0; n <= bound; n++ {
		if IsPrime(n) != sieve[n] {
			t.Fatalf("IsPrime(%d) = %v, sieve says %v", n, IsPrime(n), sieve[n])
		}
	}
}

func TestSieve_NegativeBound(t *testing.T) {
	assert.Nil(t, Sieve(-1))
}

func TestSieve_ZeroBound(t *testing.T) {
	sieve := Sieve(0)
	require.Len(t, sieve, 1)
	assert.False(t, sieve[0])
}
