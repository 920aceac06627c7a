package scheme

import (
	"fmt"

	"github.com/luckyroll/walletgate/ports"
)

// ByName returns the scheme with the given name. A deployment selects one
// scheme at startup; schemes are never negotiated per request.
func ByName(name string) (ports.SignatureScheme, error) {
	switch name {
	case "ed25519":
		return NewEd25519Scheme(), nil
	case "ethereum":
		return NewEthereumScheme(), nil
	default:
		return nil, fmt.Errorf("unknown signature scheme %q", name)
	}
}
