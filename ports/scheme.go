package ports

// SignatureScheme verifies detached wallet signatures for one curve/encoding
// pair. A deployment runs exactly one scheme.
type SignatureScheme interface {
	// Name identifies the scheme, e.g. "ed25519" or "ethereum".
	Name() string

	// ParsePublicKey decodes a public key from its canonical wire encoding,
	// returning core.ErrInvalidRequest (wrapped) when the encoding is
	// malformed.
	ParsePublicKey(encoded string) ([]byte, error)

	// Verify reports whether signature is a valid detached signature over
	// message by the holder of publicKey. publicKey must come from
	// ParsePublicKey.
	Verify(publicKey, message, signature []byte) bool
}
