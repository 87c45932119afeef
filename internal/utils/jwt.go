package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-home-inventory/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrUnsupportedSigningMethod is returned by [SigningMethod] for algorithm
// identifiers other than HS256, HS384 and HS512.
var ErrUnsupportedSigningMethod = errors.New("unsupported token signing method")

// SigningMethod resolves an HMAC algorithm identifier ("HS256", "HS384",
// "HS512") to its jwt.SigningMethod.
func SigningMethod(alg string) (jwt.SigningMethod, error) {
	switch strings.ToUpper(alg) {
	case jwt.SigningMethodHS256.Alg():
		return jwt.SigningMethodHS256, nil
	case jwt.SigningMethodHS384.Alg():
		return jwt.SigningMethodHS384, nil
	case jwt.SigningMethodHS512.Alg():
		return jwt.SigningMethodHS512, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedSigningMethod, alg)
	}
}

// GenerateJWTToken creates a signed JWT token with the given parameters.
//
// The token includes the following standard claims:
//   - Subject   (sub): the account email
//   - IssuedAt  (iat): issuedAt
//   - ExpiresAt (exp): issuedAt plus ttl
//
// All parameters are required. Returns an error if any of them are empty or zero.
//
// Example usage:
//
//	token, err := utils.GenerateJWTToken("a@x.com", time.Now(), time.Hour, jwt.SigningMethodHS256, "secret")
func GenerateJWTToken(subject string, issuedAt time.Time, ttl time.Duration, method jwt.SigningMethod, signKey string) (models.Token, error) {
	if subject == "" || ttl <= 0 || method == nil || signKey == "" {
		return models.Token{}, errors.New("invalid params for generating JWT Token")
	}

	expiresAt := issuedAt.Add(ttl)
	claims := &jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
	}

	token := jwt.NewWithClaims(method, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.Token{
		Subject:      subject,
		IssuedAt:     claims.IssuedAt.Time,
		ExpiresAt:    claims.ExpiresAt.Time,
		SignedString: tokenString,
	}, nil
}

// ValidateAndParseJWTToken validates the given JWT token string and extracts its claims.
//
// Validation includes:
//   - Signing method check: only method is accepted
//   - Signature verification using the provided sign key
//   - Expiration (exp) claim presence and check against now
//
// The subject is returned as-is and may be empty; callers decide whether an
// empty subject is acceptable. Errors are the jwt package errors, so callers
// can classify them with errors.Is (jwt.ErrTokenExpired,
// jwt.ErrTokenSignatureInvalid, jwt.ErrTokenMalformed and so on).
//
// Example usage:
//
//	token, err := utils.ValidateAndParseJWTToken(raw, "secret", jwt.SigningMethodHS256, time.Now)
//	if err != nil {
//	    // handle invalid or expired token
//	}
func ValidateAndParseJWTToken(tokenString, signKey string, method jwt.SigningMethod, now func() time.Time) (models.Token, error) {
	if now == nil {
		now = time.Now
	}

	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return []byte(signKey), nil
	},
		jwt.WithValidMethods([]string{method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(now),
	)
	if err != nil {
		return models.Token{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	token := models.Token{
		Subject:      claims.Subject,
		SignedString: tokenString,
	}
	if claims.IssuedAt != nil {
		token.IssuedAt = claims.IssuedAt.Time
	}
	if claims.ExpiresAt != nil {
		token.ExpiresAt = claims.ExpiresAt.Time
	}

	return token, nil
}

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Fields(authorizationHeader)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
