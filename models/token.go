package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenData is the credential pair issued by the budgeting service.
// Exactly one instance exists process-wide; it is persisted by the durable
// store, mutated only by the token lifecycle coordinator, and read by
// every remote call site.
type TokenData struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Valid reports whether the access token is usable at the given instant
// with the full renewal window still ahead of it.
func (t TokenData) Valid(now time.Time, renewalWindow time.Duration) bool {
	return t.AccessToken != "" && now.Before(t.ExpiresAt.Add(-renewalWindow))
}

// Expired reports whether the access token is past its hard expiry.
func (t TokenData) Expired(now time.Time) bool {
	return t.AccessToken == "" || !now.Before(t.ExpiresAt)
}

// ExpiryFromJWT extracts the "exp" claim from an access token that happens
// to be a JWT. The token is parsed without signature verification: the
// client holds no verification key and only needs the expiry hint when the
// credential endpoint omits an explicit lifetime.
//
// Returns the zero time and an error if the token is not a JWT or carries
// no expiry claim.
func ExpiryFromJWT(accessToken string) (time.Time, error) {
	token, _, err := jwt.NewParser().ParseUnverified(accessToken, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, err
	}

	exp, err := token.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, err
	}
	if exp == nil {
		return time.Time{}, jwt.ErrTokenInvalidClaims
	}

	return exp.Time, nil
}
