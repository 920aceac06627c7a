package tokenizer

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/luckyroll/walletgate/core"
	"github.com/luckyroll/walletgate/ports"
)

// AudienceSession is the audience claim stamped on session credentials.
const AudienceSession = "session:access"

// MinSecretLen is the minimum length of the session signing secret in bytes.
const MinSecretLen = 32

// JWTTokenizer implements the Tokenizer and SessionValidator interfaces
// using HS256-signed JWTs.
type JWTTokenizer struct {
	secret []byte
}

// NewJWTTokenizer creates a new JWT tokenizer. It fails with
// core.ErrWeakSecret when the secret is below the minimum strength, so a
// misconfigured service refuses to start rather than mint forgeable
// sessions.
func NewJWTTokenizer(secret []byte) (*JWTTokenizer, error) {
	if len(secret) < MinSecretLen {
		return nil, fmt.Errorf("%w: need at least %d bytes, got %d", core.ErrWeakSecret, MinSecretLen, len(secret))
	}
	return &JWTTokenizer{secret: secret}, nil
}

var (
	_ ports.Tokenizer        = (*JWTTokenizer)(nil)
	_ ports.SessionValidator = (*JWTTokenizer)(nil)
)

// SessionToToken converts a Session to a signed JWT.
func (j *JWTTokenizer) SessionToToken(session *core.Session) (string, error) {
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   session.PublicKey,
			ID:        session.ID,
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(session.IssuedAt),
			Audience:  jwt.ClaimStrings{AudienceSession},
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signedToken, err := token.SignedString(j.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signedToken, nil
}

// TokenToSession parses and validates a JWT and returns the session it
// encodes. The jwt library enforces the expiry claim during parsing.
func (j *JWTTokenizer) TokenToSession(tokenStr string) (*core.Session, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate the signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.secret, nil
	}, jwt.WithAudience(AudienceSession), jwt.WithExpirationRequired())

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, core.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", core.ErrInvalidToken, err)
	}
	if !token.Valid {
		return nil, core.ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid claims type", core.ErrInvalidToken)
	}

	session := &core.Session{
		ID:        claims.ID,
		PublicKey: claims.Subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	return session, nil
}

// Validate implements the self-issued SessionValidator variant.
func (j *JWTTokenizer) Validate(ctx context.Context, credential string) (*core.Session, error) {
	return j.TokenToSession(credential)
}
