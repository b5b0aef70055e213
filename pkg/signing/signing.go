// Package signing attests a tree's root hash with a JWT so that a
// verifier holding only the signing key's public half (or the shared
// secret, for HMAC) can confirm which party vouched for a given root.
package signing

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

// rootHashClaims is the JWT claim set for a signed root hash.
type rootHashClaims struct {
	RootHash string `json:"root_hash"`
	SignerID string `json:"signer_id"`
	jwt.RegisteredClaims
}

// Signer signs root hashes on behalf of signerID using key.
//
// allowedAlgorithms records the allow-list matching this Signer's own
// signing method. The package-level Verify does not read it: Verify
// takes its own allow-list argument and follows the same fail-closed
// pattern used to validate signed envelopes elsewhere in this
// codebase, rejecting a token whose header names an algorithm outside
// that list before any cryptographic check runs.
type Signer struct {
	signerID string
	key      any
	method   jwt.SigningMethod

	allowedAlgorithms map[string]bool
}

// NewHMACSigner creates a Signer that signs with HS256 using secret.
// Its tokens verify with Verify given the allow-list {"HS256": true}.
func NewHMACSigner(signerID string, secret []byte) *Signer {
	return &Signer{
		signerID:          signerID,
		key:               secret,
		method:            jwt.SigningMethodHS256,
		allowedAlgorithms: map[string]bool{"HS256": true},
	}
}

// NewRSASigner creates a Signer that signs with RS256 using privateKey.
// Its tokens verify with Verify given the allow-list {"RS256": true}.
func NewRSASigner(signerID string, privateKey *rsa.PrivateKey) *Signer {
	return &Signer{
		signerID:          signerID,
		key:               privateKey,
		method:            jwt.SigningMethodRS256,
		allowedAlgorithms: map[string]bool{"RS256": true},
	}
}

// Sign produces a JWT attesting that Signer's signerID vouches for
// root as of now, expiring after ttl (zero means no expiry).
func (s *Signer) Sign(root hash.Hash, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := rootHashClaims{
		RootHash: root.String(),
		SignerID: s.signerID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	if ttl > 0 {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}

	token := jwt.NewWithClaims(s.method, claims)
	signed, err := token.SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("signing: %w", err)
	}
	return signed, nil
}

// VerifyKey is the key material needed to verify a token: the HMAC
// secret, or an RSA/ECDSA public key.
type VerifyKey = any

// Verify parses tokenString, checks its algorithm against
// allowedAlgorithms, verifies its signature against key, and confirms
// its root_hash claim equals want. It returns the signer ID that
// attested to the hash.
func Verify(tokenString string, key VerifyKey, allowedAlgorithms map[string]bool, want hash.Hash) (signerID string, err error) {
	claims := &rootHashClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if !allowedAlgorithms[t.Method.Alg()] {
			return nil, fmt.Errorf("signing: algorithm %q is not in the allow-list", t.Method.Alg())
		}
		return key, nil
	})
	if err != nil {
		return "", fmt.Errorf("signing: verify: %w", err)
	}
	if !token.Valid {
		return "", fmt.Errorf("signing: token is not valid")
	}

	if claims.RootHash != want.String() {
		return "", fmt.Errorf("signing: root hash mismatch: token attests %q, want %q", claims.RootHash, want.String())
	}

	return claims.SignerID, nil
}
