package core

import "errors"

var (
	// ErrInvalidRequest is returned for malformed caller input, such as an
	// empty or undecodable public key.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrChallengeNotFound is returned when a challenge is absent from the
	// store, already consumed, or expired. Callers cannot distinguish the
	// three cases.
	ErrChallengeNotFound = errors.New("challenge not found or expired")

	// ErrPublicKeyMismatch is returned when the public key presented at
	// verification differs from the one the challenge was issued for.
	ErrPublicKeyMismatch = errors.New("public key mismatch")

	// ErrMalformedSignature is returned when the signature cannot be decoded
	// from its transport encoding.
	ErrMalformedSignature = errors.New("malformed signature")

	// ErrInvalidSignature is returned when the signature does not verify
	// against the claimed public key and the issued nonce.
	ErrInvalidSignature = errors.New("invalid signature")

	// ErrTokenExpired is returned when a session credential is past its expiry.
	ErrTokenExpired = errors.New("token has expired")

	// ErrInvalidToken is returned when a session credential fails signature
	// or claims validation.
	ErrInvalidToken = errors.New("invalid token")

	// ErrStoreUnavailable is returned on transient store infrastructure
	// failures. The whole flow is safe to retry from challenge issuance.
	ErrStoreUnavailable = errors.New("challenge store unavailable")

	// ErrWeakSecret is returned at startup when the session signing secret
	// is absent or below the minimum strength.
	ErrWeakSecret = errors.New("session signing secret missing or too short")
)

// IsAuthFailure reports whether err is one of the verification failure kinds
// that must be surfaced to clients as a generic message. The distinction
// between them lives in server-side audit logs only.
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrChallengeNotFound) ||
		errors.Is(err, ErrPublicKeyMismatch) ||
		errors.Is(err, ErrMalformedSignature) ||
		errors.Is(err, ErrInvalidSignature)
}
