package tokenizer

import "github.com/golang-jwt/jwt/v5"

// SessionClaims are the standard claims of a session credential. The subject
// carries the verified wallet public key.
type SessionClaims struct {
	jwt.RegisteredClaims
}
