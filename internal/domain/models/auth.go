package models

import "github.com/golang-jwt/jwt/v5"

// SupabaseClaims is the claim set Supabase Auth puts in its access
// tokens, on top of the registered JWT claims.
type SupabaseClaims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	Role        string `json:"role"` // "authenticated" or "anon"
	SessionID   string `json:"session_id"`
	IsAnonymous bool   `json:"is_anonymous"`
}

// GetUserID returns the user id (the subject claim).
func (c *SupabaseClaims) GetUserID() string {
	return c.Subject
}

// IsAuthenticated reports whether the token belongs to a signed-in user
// rather than an anonymous session.
func (c *SupabaseClaims) IsAuthenticated() bool {
	return c.Role == "authenticated" && c.Subject != ""
}
