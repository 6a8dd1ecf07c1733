package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"ainews-backend/internal/config"
)

var (
	// ErrInvalidToken is returned for any token that fails verification.
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingSubject is returned when a verified token has no subject.
	ErrMissingSubject = errors.New("token has no subject")
)

// Verifier validates RS256 bearer tokens against the configured issuer and
// audience using keys from the JWKS cache.
type Verifier struct {
	keys     *KeyCache
	issuer   string
	audience string
}

// NewVerifier creates a Verifier from configuration.
func NewVerifier(cfg *config.AuthConfig) *Verifier {
	return &Verifier{
		keys:     NewKeyCache(cfg.JWKSURL, cfg.CacheTTL),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
	}
}

// Verify parses and validates the token string and returns its subject.
// Signature, expiry, issuer and audience are all checked; any failure
// surfaces as ErrInvalidToken so callers cannot leak verification details.
func (v *Verifier) Verify(ctx context.Context, tokenString string) (string, error) {
	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		options = append(options, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		options = append(options, jwt.WithAudience(v.audience))
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, fmt.Errorf("token has no kid header")
		}
		return v.keys.Key(ctx, kid)
	}, options...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return "", ErrMissingSubject
	}
	return subject, nil
}
