package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/luckyroll/walletgate/core"
	"github.com/luckyroll/walletgate/ports"
)

// noncePrefix is the human-readable part of the signed message; the wallet
// displays it to the user before signing. The random suffix carries the
// entropy.
const noncePrefix = "Sign this message to verify your wallet ownership: "

const (
	// DefaultChallengeTTL bounds how long a challenge stays verifiable.
	DefaultChallengeTTL = 5 * time.Minute

	// DefaultSessionTTL is the fixed session credential lifetime.
	DefaultSessionTTL = 24 * time.Hour
)

// AuthService implements the challenge-response authentication flow: it
// issues one-time challenges, verifies wallet signatures over them, and
// mints session credentials.
type AuthService struct {
	store     ports.ChallengeStore
	tokenizer ports.Tokenizer
	scheme    ports.SignatureScheme
	eventPub  ports.EventPublisher
	logger    *slog.Logger

	challengeTTL time.Duration
	sessionTTL   time.Duration
}

// Option configures an AuthService.
type Option func(*AuthService)

// WithChallengeTTL overrides the challenge lifetime.
func WithChallengeTTL(ttl time.Duration) Option {
	return func(s *AuthService) { s.challengeTTL = ttl }
}

// WithSessionTTL overrides the session credential lifetime.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *AuthService) { s.sessionTTL = ttl }
}

// WithEventPublisher attaches an auth event publisher.
func WithEventPublisher(pub ports.EventPublisher) Option {
	return func(s *AuthService) { s.eventPub = pub }
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store ports.ChallengeStore,
	tokenizer ports.Tokenizer,
	sigScheme ports.SignatureScheme,
	logger *slog.Logger,
	opts ...Option,
) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	s := &AuthService{
		store:        store,
		tokenizer:    tokenizer,
		scheme:       sigScheme,
		logger:       logger,
		challengeTTL: DefaultChallengeTTL,
		sessionTTL:   DefaultSessionTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueChallenge generates a fresh challenge for the claimed public key and
// stores it with a bounded TTL. The claimed key is only checked for
// well-formedness here; ownership is proven at Verify.
func (s *AuthService) IssueChallenge(ctx context.Context, publicKey string) (*core.Challenge, error) {
	if _, err := s.scheme.ParsePublicKey(publicKey); err != nil {
		return nil, err
	}

	nonce, err := generateNonce(32)
	if err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	now := time.Now()
	challenge := core.Challenge{
		ID:        uuid.New().String(),
		PublicKey: publicKey,
		Nonce:     noncePrefix + nonce,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.challengeTTL),
	}

	if err := s.store.Put(ctx, challenge.ID, challenge, s.challengeTTL); err != nil {
		return nil, fmt.Errorf("failed to store challenge: %w", err)
	}
	return &challenge, nil
}

// Verify checks a wallet signature against an outstanding challenge and, on
// success, mints a session credential. The challenge is consumed on the
// first attempt regardless of outcome, so a failed or replayed attempt
// cannot be retried against the same nonce.
func (s *AuthService) Verify(ctx context.Context, challengeID, signature, publicKey string) (*core.Session, string, error) {
	challenge, err := s.store.TakeOnce(ctx, challengeID)
	if err != nil {
		s.auditFailure(challengeID, publicKey, err)
		return nil, "", err
	}

	if challenge.PublicKey != publicKey {
		s.auditFailure(challengeID, publicKey, core.ErrPublicKeyMismatch)
		return nil, "", core.ErrPublicKeyMismatch
	}

	sigBytes, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		s.auditFailure(challengeID, publicKey, core.ErrMalformedSignature)
		return nil, "", fmt.Errorf("%w: %v", core.ErrMalformedSignature, err)
	}

	keyBytes, err := s.scheme.ParsePublicKey(publicKey)
	if err != nil {
		s.auditFailure(challengeID, publicKey, err)
		return nil, "", err
	}

	if !s.scheme.Verify(keyBytes, []byte(challenge.Nonce), sigBytes) {
		s.auditFailure(challengeID, publicKey, core.ErrInvalidSignature)
		return nil, "", core.ErrInvalidSignature
	}

	now := time.Now()
	session := &core.Session{
		ID:        uuid.New().String(),
		PublicKey: publicKey,
		IssuedAt:  now,
		ExpiresAt: now.Add(s.sessionTTL),
	}

	token, err := s.tokenizer.SessionToToken(session)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create session token: %w", err)
	}

	s.logger.Info("wallet verified",
		slog.String("public_key", publicKey),
		slog.String("session_id", session.ID),
		slog.String("scheme", s.scheme.Name()))

	if s.eventPub != nil {
		if err := s.eventPub.PublishLogin(ctx, publicKey, session.ID); err != nil {
			s.logger.Warn("failed to publish login event", slog.String("error", err.Error()))
		}
	}

	return session, token, nil
}

// SessionTTL returns the configured session credential lifetime.
func (s *AuthService) SessionTTL() time.Duration {
	return s.sessionTTL
}

// Logout acknowledges a logout. There is no server-side revocation list:
// the caller discards the credential and it stays technically valid until
// its natural expiry. The event is published for audit consumers.
func (s *AuthService) Logout(ctx context.Context, session *core.Session) {
	if session == nil {
		return
	}

	s.logger.Info("wallet logged out",
		slog.String("public_key", session.PublicKey),
		slog.String("session_id", session.ID))

	if s.eventPub != nil {
		if err := s.eventPub.PublishLogout(ctx, session.PublicKey, session.ID); err != nil {
			s.logger.Warn("failed to publish logout event", slog.String("error", err.Error()))
		}
	}
}

// auditFailure records a verification failure with enough context to audit
// abuse. Clients only ever see a generic message; the failure kind stays
// server-side.
func (s *AuthService) auditFailure(challengeID, publicKey string, err error) {
	kind := "internal"
	switch {
	case errors.Is(err, core.ErrChallengeNotFound):
		kind = "challenge_not_found_or_expired"
	case errors.Is(err, core.ErrPublicKeyMismatch):
		kind = "public_key_mismatch"
	case errors.Is(err, core.ErrMalformedSignature):
		kind = "malformed_signature"
	case errors.Is(err, core.ErrInvalidSignature):
		kind = "invalid_signature"
	case errors.Is(err, core.ErrInvalidRequest):
		kind = "invalid_request"
	case errors.Is(err, core.ErrStoreUnavailable):
		kind = "store_unavailable"
	}

	s.logger.Warn("verification failed",
		slog.String("challenge_id", challengeID),
		slog.String("public_key", publicKey),
		slog.String("kind", kind))
}

// generateNonce returns length cryptographically random bytes, base64url
// encoded.
func generateNonce(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
