package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sellerboard/sellerboard-backend/pkg/enums"
)

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID        uuid.UUID
	ActiveStoreID *uuid.UUID
	Role          enums.MemberRole
	JTI           string
}

// AccessTokenClaims represents the typed JWT issued to dashboard clients.
type AccessTokenClaims struct {
	UserID        uuid.UUID        `json:"user_id"`
	ActiveStoreID *uuid.UUID       `json:"active_store_id,omitempty"`
	Role          enums.MemberRole `json:"role"`
	jwt.RegisteredClaims
}
