package domain

import "math/bits"

const (
	secretMultiplier = 16807
	secretModulus    = 2147483647
)

// SessionToken is a v2 token: every request it signs must use the current
// secret, and the secret advances whenever the server answers new_key=yes.
type SessionToken struct {
	Token string
	// Secret is the numeric shared secret issued with the token.
	Secret uint64
	// IssuedAt is the server "time" value, kept verbatim for signing.
	IssuedAt  string
	Available bool
}

// NextSecret applies one multiplicative congruential step to secret.
func NextSecret(secret uint64) uint64 {
	hi, lo := bits.Mul64(secret, secretMultiplier)
	return bits.Rem64(hi, lo, secretModulus)
}

func (t *SessionToken) RotateSecret() {
	t.Secret = NextSecret(t.Secret)
}
