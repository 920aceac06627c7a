package scheme

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/luckyroll/walletgate/core"
)

func TestEthereumScheme_VerifyRoundTrip(t *testing.T) {
	s := NewEthereumScheme()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	address := crypto.PubkeyToAddress(key.PublicKey).Hex()

	parsed, err := s.ParsePublicKey(address)
	require.NoError(t, err)

	message := []byte("Sign this message to verify your wallet ownership: nonce")
	signature, err := crypto.Sign(accounts.TextHash(message), key)
	require.NoError(t, err)

	assert.True(t, s.Verify(parsed, message, signature))

	// Wallets report the recovery id as 27/28.
	walletSig := make([]byte, len(signature))
	copy(walletSig, signature)
	walletSig[crypto.RecoveryIDOffset] += 27
	assert.True(t, s.Verify(parsed, message, walletSig))
}

func TestEthereumScheme_VerifyWrongKey(t *testing.T) {
	s := NewEthereumScheme()

	keyA, err := crypto.GenerateKey()
	require.NoError(t, err)
	keyB, err := crypto.GenerateKey()
	require.NoError(t, err)

	addressA, err := s.ParsePublicKey(crypto.PubkeyToAddress(keyA.PublicKey).Hex())
	require.NoError(t, err)

	message := []byte("some message")
	signature, err := crypto.Sign(accounts.TextHash(message), keyB)
	require.NoError(t, err)

	assert.False(t, s.Verify(addressA, message, signature))
}

func TestEthereumScheme_ParsePublicKey_Invalid(t *testing.T) {
	s := NewEthereumScheme()

	for _, encoded := range []string{"", "not-an-address", "0x1234"} {
		_, err := s.ParsePublicKey(encoded)
		assert.ErrorIs(t, err, core.ErrInvalidRequest, "encoded=%q", encoded)
	}
}

func TestByName(t *testing.T) {
	ed, err := ByName("ed25519")
	require.NoError(t, err)
	assert.Equal(t, "ed25519", ed.Name())

	eth, err := ByName("ethereum")
	require.NoError(t, err)
	assert.Equal(t, "ethereum", eth.Name())

	_, err = ByName("rsa")
	assert.Error(t, err)
}
