package security

import "crypto/subtle"

// Secret is the shared password that authorizes destructive admin actions.
type Secret struct {
	value []byte
}

func NewSecret(value string) Secret {
	return Secret{value: []byte(value)}
}

// Matches reports whether candidate equals the secret. An unset secret
// never matches.
func (s Secret) Matches(candidate string) bool {
	if len(s.value) == 0 {
		return false
	}
	return subtle.ConstantTimeCompare(s.value, []byte(candidate)) == 1
}
