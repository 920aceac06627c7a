package scheme

import (
	"bytes"
	"fmt"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/luckyroll/walletgate/core"
	"github.com/luckyroll/walletgate/ports"
)

// EthereumScheme verifies EIP-191 personal-sign signatures. The claimed
// public key is a hex Ethereum address; verification recovers the signer
// from the signature and compares addresses.
type EthereumScheme struct{}

// NewEthereumScheme creates a new Ethereum scheme.
func NewEthereumScheme() *EthereumScheme {
	return &EthereumScheme{}
}

var _ ports.SignatureScheme = (*EthereumScheme)(nil)

// Name returns "ethereum".
func (s *EthereumScheme) Name() string {
	return "ethereum"
}

// ParsePublicKey checks the hex address encoding and returns its bytes.
func (s *EthereumScheme) ParsePublicKey(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, fmt.Errorf("%w: empty address", core.ErrInvalidRequest)
	}
	if !common.IsHexAddress(encoded) {
		return nil, fmt.Errorf("%w: not a valid ethereum address", core.ErrInvalidRequest)
	}
	return common.HexToAddress(encoded).Bytes(), nil
}

// Verify recovers the signer of an EIP-191 personal-sign signature over
// message and compares it to the claimed address.
func (s *EthereumScheme) Verify(publicKey, message, signature []byte) bool {
	if len(publicKey) != common.AddressLength || len(signature) != crypto.SignatureLength {
		return false
	}

	// Wallets return V as 27/28; go-ethereum expects 0/1.
	sig := make([]byte, crypto.SignatureLength)
	copy(sig, signature)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}

	recovered, err := crypto.SigToPub(accounts.TextHash(message), sig)
	if err != nil {
		return false
	}
	return bytes.Equal(crypto.PubkeyToAddress(*recovered).Bytes(), publicKey)
}
