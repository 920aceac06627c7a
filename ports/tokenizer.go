package ports

import "github.com/luckyroll/walletgate/core"

// Tokenizer converts between sessions and their wire credential.
type Tokenizer interface {
	// SessionToToken encodes and signs a session credential.
	SessionToToken(session *core.Session) (string, error)

	// TokenToSession parses a credential and returns the session it encodes.
	// Expired or tampered credentials fail with core.ErrTokenExpired or
	// core.ErrInvalidToken.
	TokenToSession(token string) (*core.Session, error)
}
