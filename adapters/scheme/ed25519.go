package scheme

import (
	"crypto/ed25519"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/luckyroll/walletgate/core"
	"github.com/luckyroll/walletgate/ports"
)

// Ed25519Scheme verifies detached Ed25519 signatures against base58-encoded
// public keys, the encoding used by Solana wallets.
type Ed25519Scheme struct{}

// NewEd25519Scheme creates a new Ed25519 scheme.
func NewEd25519Scheme() *Ed25519Scheme {
	return &Ed25519Scheme{}
}

var _ ports.SignatureScheme = (*Ed25519Scheme)(nil)

// Name returns "ed25519".
func (s *Ed25519Scheme) Name() string {
	return "ed25519"
}

// ParsePublicKey decodes a base58 public key and checks its length.
func (s *Ed25519Scheme) ParsePublicKey(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty public key", core.ErrInvalidRequest)
	}

	raw, err := base58.Decode(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: public key is not valid base58", core.ErrInvalidRequest)
	}
	if len(raw) != ed25519.PublicKeySize {
		return nil, fmt.Errorf("%w: public key must be %d bytes, got %d", core.ErrInvalidRequest, ed25519.PublicKeySize, len(raw))
	}
	return raw, nil
}

// Verify checks a detached Ed25519 signature over message.
func (s *Ed25519Scheme) Verify(publicKey, message, signature []byte) bool {
	if len(publicKey) != ed25519.PublicKeySize || len(signature) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(publicKey), message, signature)
}
