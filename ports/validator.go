package ports

import (
	"context"

	"github.com/luckyroll/walletgate/core"
)

// SessionValidator validates a session credential and resolves the identity
// it carries. Two implementations exist: the self-issued tokenizer-backed
// validator and a delegated identity-provider client. The deployment picks
// one at startup; they are never mixed per request.
type SessionValidator interface {
	Validate(ctx context.Context, credential string) (*core.Session, error)
}
