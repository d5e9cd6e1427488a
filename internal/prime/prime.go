// Package prime provides the local primality check used when saving
// favorites. The remote nth-prime lookup lives in internal/lookup; this
// package is pure arithmetic with no I/O.
package prime

// IsPrime reports whether n is prime using trial division.
//
// Policy:
//   - n < 2 is not prime
//   - 2 and 3 are prime by direct check
//   - otherwise divide by every i in [2, floor(sqrt(n))]
//
// Trial division is fine at the magnitudes this app handles (counter values
// a human clicks to). Callers needing bulk primality should use Sieve.
func IsPrime(n int) bool {
	if n < 2 {
		return false
	}
	if n == 2 || n == 3 {
		return true
	}
	for i := 2; i*i <= n; i++ {
		if n%i == 0 {
			return false
		}
	}
	return true
}

// Sieve returns primality for every n in [0, bound] as a lookup slice,
// computed with the sieve of Eratosthenes.
//
// Used by tests as ground truth against IsPrime and by the CLI for the
// local "is this prime" display.
func Sieve(bound int) []bool {
	if bound < 0 {
		return nil
	}
	isPrime := make([]bool, bound+1)
	for i := 2; i <= bound; i++ {
		isPrime[i] = true
	}
	for i := 2; i*i <= bound; i++ {
		if !isPrime[i] {
			continue
		}
		for j := i * i; j <= bound; j += i {
			isPrime[j] = false
		}
	}
	return isPrime
}
