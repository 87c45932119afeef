// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/MKhiriev/go-home-inventory/internal/config"
	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/utils"
	"github.com/MKhiriev/go-home-inventory/models"
)

// tokenService is the JWT implementation of [TokenService].
// All state is read-only after construction, so it is safe for concurrent use.
type tokenService struct {
	// signKey is the HMAC secret used to sign and verify tokens.
	signKey string

	// method is the only signing method accepted by Verify. A token signed
	// with any other algorithm is rejected as signature_invalid.
	method jwt.SigningMethod

	// ttl controls how long an issued token stays valid.
	ttl time.Duration

	// now is the clock used for iat/exp. Replaced in tests.
	now func() time.Time

	logger *logger.Logger
}

// TokenServiceOption customises a [TokenService] at construction.
type TokenServiceOption func(*tokenService)

// WithClock makes the token service read time from now.
func WithClock(now func() time.Time) TokenServiceOption {
	return func(s *tokenService) {
		s.now = now
	}
}

// NewTokenService builds a [TokenService] from the token settings of cfg.
// It fails when the configured algorithm is not an HMAC method.
func NewTokenService(cfg config.App, logger *logger.Logger, opts ...TokenServiceOption) (TokenService, error) {
	method, err := utils.SigningMethod(cfg.TokenAlgorithm)
	if err != nil {
		return nil, err
	}

	s := &tokenService{
		signKey: cfg.TokenSignKey,
		method:  method,
		ttl:     time.Duration(cfg.TokenExpireMinutes) * time.Minute,
		now:     time.Now,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Issue signs a token with sub=subject, iat=now and exp=now+ttl.
func (s *tokenService) Issue(ctx context.Context, subject string) (models.Token, error) {
	token, err := utils.GenerateJWTToken(subject, s.now(), s.ttl, s.method, s.signKey)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*tokenService.Issue").Msg("error generating token")
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// Verify checks signature, algorithm and expiry and returns the subject.
// The reason of a rejection is logged at warn level and carried in the
// returned error.
func (s *tokenService) Verify(ctx context.Context, rawToken string) (string, error) {
	log := logger.FromContext(ctx)

	token, err := utils.ValidateAndParseJWTToken(strings.TrimSpace(rawToken), s.signKey, s.method, s.now)
	if err != nil {
		reason := rejectionReason(err)
		log.Warn().Err(err).Str("func", "*tokenService.Verify").Str("reason", reason.Error()).Msg("token rejected")
		return "", fmt.Errorf("%w: %w", ErrTokenRejected, reason)
	}

	if strings.TrimSpace(token.Subject) == "" {
		log.Warn().Str("func", "*tokenService.Verify").Str("reason", ErrTokenMissingSubject.Error()).Msg("token rejected")
		return "", fmt.Errorf("%w: %w", ErrTokenRejected, ErrTokenMissingSubject)
	}

	return token.Subject, nil
}

// rejectionReason maps a jwt validation error to its reason sentinel.
// Anything that is neither a bad signature nor an expiry, including a
// missing exp claim, counts as malformed.
func rejectionReason(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrTokenSignatureInvalid
	default:
		return ErrTokenMalformed
	}
}
