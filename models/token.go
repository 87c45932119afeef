package models

import "time"

// Token is a signed bearer token together with the claims it was issued with.
type Token struct {
	// Subject is the "sub" claim: the email of the account the token was
	// issued for.
	Subject string `json:"-"`

	// IssuedAt is the "iat" claim.
	IssuedAt time.Time `json:"-"`

	// ExpiresAt is the "exp" claim. The token is rejected from this instant on.
	ExpiresAt time.Time `json:"-"`

	// SignedString is the compact JWS representation of the token
	// (base64url-encoded header.payload.signature).
	SignedString string `json:"-"`
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t Token) String() string {
	return t.SignedString
}
