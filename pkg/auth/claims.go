package auth

import "github.com/golang-jwt/jwt/v5"

// AccessTokenClaims is the JWT payload for an operator session. The jti keys
// the ephemeral session record; AdminMode mirrors the record at mint time.
type AccessTokenClaims struct {
	AdminMode bool `json:"adm"`
	jwt.RegisteredClaims
}

// AccessTokenPayload is the input to MintAccessToken.
type AccessTokenPayload struct {
	SessionID string
	AdminMode bool
}
