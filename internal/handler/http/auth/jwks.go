// Package auth provides bearer token authentication for the HTTP API.
// Tokens are verified as RS256 JWTs against the identity provider's JWKS
// endpoint; verified requests carry the token subject in the context.
package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// jwk is the subset of an RSA JSON Web Key needed to build a public key.
type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwksDocument struct {
	Keys []jwk `json:"keys"`
}

// KeyCache fetches and caches the provider's signing keys. Keys are served
// from cache within the TTL; a token signed with an unknown kid triggers an
// immediate refresh so provider key rotation does not lock users out for a
// full cache period. Concurrent refreshes collapse into one fetch.
type KeyCache struct {
	jwksURL    string
	ttl        time.Duration
	httpClient *http.Client

	mu        sync.RWMutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time

	group singleflight.Group
}

// NewKeyCache creates a KeyCache for the given JWKS endpoint.
func NewKeyCache(jwksURL string, ttl time.Duration) *KeyCache {
	return &KeyCache{
		jwksURL: jwksURL,
		ttl:     ttl,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		keys: make(map[string]*rsa.PublicKey),
	}
}

// Key returns the public key for the given kid. The cache is refreshed when
// stale or when the kid is unknown; a kid still missing after a fresh fetch
// is an error.
func (c *KeyCache) Key(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	c.mu.RLock()
	key, ok := c.keys[kid]
	fresh := time.Since(c.fetchedAt) < c.ttl
	c.mu.RUnlock()

	if ok && fresh {
		return key, nil
	}

	if err := c.refresh(ctx); err != nil {
		// A stale key beats a hard failure when the provider is briefly
		// unreachable.
		if ok {
			return key, nil
		}
		return nil, err
	}

	c.mu.RLock()
	key, ok = c.keys[kid]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("signing key %q not found in jwks", kid)
	}
	return key, nil
}

// refresh fetches the JWKS document and replaces the cached key set.
func (c *KeyCache) refresh(ctx context.Context) error {
	_, err, _ := c.group.Do("jwks", func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.jwksURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build jwks request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("fetch jwks: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("fetch jwks: unexpected status %d", resp.StatusCode)
		}

		var doc jwksDocument
		if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode jwks: %w", err)
		}

		keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
		for _, k := range doc.Keys {
			if k.Kty != "RSA" || k.Kid == "" {
				continue
			}
			pub, err := parseRSAKey(k)
			if err != nil {
				return nil, fmt.Errorf("parse jwk %q: %w", k.Kid, err)
			}
			keys[k.Kid] = pub
		}

		c.mu.Lock()
		c.keys = keys
		c.fetchedAt = time.Now()
		c.mu.Unlock()
		return nil, nil
	})
	return err
}

// parseRSAKey converts a JWK's base64url modulus and exponent into an
// rsa.PublicKey.
func parseRSAKey(k jwk) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}
	if e <= 1 {
		return nil, fmt.Errorf("invalid exponent")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
