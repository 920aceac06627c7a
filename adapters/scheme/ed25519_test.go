package scheme

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckyroll/walletgate/core"
)

func TestEd25519Scheme_VerifyRoundTrip(t *testing.T) {
	s := NewEd25519Scheme()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	encoded := base58.Encode(pub)
	parsed, err := s.ParsePublicKey(encoded)
	require.NoError(t, err)
	assert.Equal(t, []byte(pub), parsed)

	message := []byte("Sign this message to verify your wallet ownership: nonce")
	signature := ed25519.Sign(priv, message)

	assert.True(t, s.Verify(parsed, message, signature))
}

func TestEd25519Scheme_VerifyWrongKey(t *testing.T) {
	s := NewEd25519Scheme()

	pubA, _, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	_, privB, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	message := []byte("some message")
	signature := ed25519.Sign(privB, message)

	assert.False(t, s.Verify(pubA, message, signature))
}

func TestEd25519Scheme_VerifyWrongMessage(t *testing.T) {
	s := NewEd25519Scheme()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	signature := ed25519.Sign(priv, []byte("signed message"))

	assert.False(t, s.Verify(pub, []byte("different message"), signature))
}

func TestEd25519Scheme_VerifyBadLengths(t *testing.T) {
	s := NewEd25519Scheme()

	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)
	signature := ed25519.Sign(priv, []byte("msg"))

	assert.False(t, s.Verify(pub[:16], []byte("msg"), signature))
	assert.False(t, s.Verify(pub, []byte("msg"), signature[:32]))
}

func TestEd25519Scheme_ParsePublicKey_Invalid(t *testing.T) {
	s := NewEd25519Scheme()

	tests := []struct {
		name    string
		encoded string
	}{
		{name: "empty", encoded: ""},
		{name: "not base58", encoded: "0OIl+/"},
		{name: "wrong length", encoded: base58.Encode([]byte("short"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ParsePublicKey(tt.encoded)
			assert.ErrorIs(t, err, core.ErrInvalidRequest)
		})
	}
}
