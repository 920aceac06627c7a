package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/luckyroll/walletgate/core"
	"github.com/luckyroll/walletgate/ports"
)

const defaultTimeout = 5 * time.Second

// HTTPValidator implements the SessionValidator interface by delegating
// credential validation to a third-party identity provider over HTTP. The
// provider is a black box: walletgate adopts its verdict and identity
// mapping without inspecting the credential itself.
type HTTPValidator struct {
	client    *http.Client
	verifyURL string
}

// NewHTTPValidator creates a validator that POSTs credentials to verifyURL.
func NewHTTPValidator(verifyURL string) *HTTPValidator {
	return &HTTPValidator{
		client:    &http.Client{Timeout: defaultTimeout},
		verifyURL: verifyURL,
	}
}

var _ ports.SessionValidator = (*HTTPValidator)(nil)

type verifyRequest struct {
	Credential string `json:"credential"`
}

type verifyResponse struct {
	PublicKey string    `json:"public_key"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Validate submits the credential to the provider and maps its answer onto
// the session contract. Any provider rejection is reported as an invalid
// token; transport failures are reported as such so callers can treat them
// as transient.
func (v *HTTPValidator) Validate(ctx context.Context, credential string) (*core.Session, error) {
	body, err := json.Marshal(verifyRequest{Credential: credential})
	if err != nil {
		return nil, fmt.Errorf("failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.verifyURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: provider returned status %d", core.ErrInvalidToken, resp.StatusCode)
	}

	var payload verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode provider response: %w", err)
	}
	if payload.PublicKey == "" {
		return nil, fmt.Errorf("%w: provider returned no identity", core.ErrInvalidToken)
	}
	if !payload.ExpiresAt.IsZero() && time.Now().After(payload.ExpiresAt) {
		return nil, core.ErrTokenExpired
	}

	return &core.Session{
		PublicKey: payload.PublicKey,
		IssuedAt:  payload.IssuedAt,
		ExpiresAt: payload.ExpiresAt,
	}, nil
}
