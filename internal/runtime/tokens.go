package runtime

import "github.com/google/uuid"

// TokenGenerator mints correlation tokens for external requests.
// Implemented by UUIDv7Generator (production) and testutil.FixedTokens
// (deterministic tests).
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 dispatch tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, so tokens sort by
// creation time - convenient when eyeballing the journal.
//
// Thread-safety: stateless, safe for concurrent use.
type UUIDv7Generator struct{}

// Generate returns a new hyphenated UUIDv7 string.
// Panics if UUID generation fails (does not happen in practice).
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
