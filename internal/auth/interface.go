package auth

import "docshelf/internal/domain/models"

// JWTVerifier checks access tokens. The middleware only depends on this
// interface, so tests can swap in a stub and production can swap JWKS
// sources without touching request handling.
type JWTVerifier interface {
	// VerifyToken parses and validates a raw token string and returns its
	// claims. Any failure (signature, expiry, wrong role) is an error.
	VerifyToken(tokenString string) (*models.SupabaseClaims, error)

	// Close releases verifier resources. Call it on shutdown.
	Close() error
}
