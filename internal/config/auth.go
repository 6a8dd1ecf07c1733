package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthConfig holds settings for bearer-token verification against the
// identity provider's JWKS endpoint.
type AuthConfig struct {
	// JWKSURL is the JSON Web Key Set endpoint. Derived from Issuer when
	// unset.
	JWKSURL string

	// Issuer is the expected token issuer. Required when JWKSURL is unset;
	// when set it is also enforced as the iss claim.
	Issuer string

	// Audience is the expected aud claim. Audience verification is skipped
	// when empty, matching the identity provider's default token shape.
	Audience string

	// CacheTTL bounds how long a fetched key set is trusted before a full
	// refresh. Default: 1h.
	CacheTTL time.Duration
}

// LoadAuthConfig loads identity verification configuration from environment
// variables.
//
// Environment variables:
//   - CLERK_JWKS_URL (explicit JWKS endpoint)
//   - CLERK_ISSUER (issuer URL; JWKS endpoint derived as
//     <issuer>/.well-known/jwks.json when CLERK_JWKS_URL is unset)
//   - CLERK_AUDIENCE (optional)
//   - JWKS_CACHE_TTL (default: 1h)
func LoadAuthConfig() (*AuthConfig, error) {
	cfg := &AuthConfig{
		JWKSURL:  GetEnvOrDefault("CLERK_JWKS_URL", ""),
		Issuer:   GetEnvOrDefault("CLERK_ISSUER", ""),
		Audience: GetEnvOrDefault("CLERK_AUDIENCE", ""),
		CacheTTL: GetEnvDuration("JWKS_CACHE_TTL", time.Hour),
	}

	if cfg.JWKSURL == "" {
		if cfg.Issuer == "" {
			return nil, fmt.Errorf("missing CLERK_JWKS_URL or CLERK_ISSUER")
		}
		cfg.JWKSURL = strings.TrimRight(cfg.Issuer, "/") + "/.well-known/jwks.json"
	}

	if cfg.CacheTTL <= 0 {
		return nil, fmt.Errorf("JWKS cache TTL must be positive, got %v", cfg.CacheTTL)
	}
	return cfg, nil
}
