package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims represents the payload of access tokens minted by the identity service.
// SchoolID scopes every request to a single tenant.
type JWTClaims struct {
	UserID   string   `json:"user_id"`
	Role     UserRole `json:"role"`
	SchoolID string   `json:"school_id"`
	Email    string   `json:"email,omitempty"`
	jwt.RegisteredClaims
}
