package core

import "time"

// Challenge represents a one-time authentication challenge. It lives in the
// challenge store from issuance until it is consumed by a verification
// attempt or its TTL elapses, whichever comes first.
type Challenge struct {
	ID        string    `json:"id"`         // Unique identifier, used as the store key
	PublicKey string    `json:"public_key"` // Wallet public key the client claims to own
	Nonce     string    `json:"nonce"`      // Message the wallet must sign, carries 32 bytes of entropy
	IssuedAt  time.Time `json:"issued_at"`  // When the challenge was created
	ExpiresAt time.Time `json:"expires_at"` // When the challenge expires
}

// Expired reports whether the challenge TTL has elapsed at the given time.
func (c Challenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Session represents an authenticated session minted after successful
// signature verification. There is no server-side revocation: a session
// stays valid until ExpiresAt, logout only discards the client-held
// credential.
type Session struct {
	ID        string    // Unique session identifier (JWT ID)
	PublicKey string    // Verified wallet public key
	IssuedAt  time.Time // When the session was created
	ExpiresAt time.Time // When the session expires
}
