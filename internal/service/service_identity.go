package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/models"
)

// identityResolver is the implementation of [IdentityResolver].
// It verifies the token and then looks its subject up by email, so a token
// outlives neither its account nor the account's active flag.
type identityResolver struct {
	tokens   TokenService
	accounts AccountService
	logger   *logger.Logger
}

// NewIdentityResolver wires a resolver over the token and account services.
func NewIdentityResolver(tokens TokenService, accounts AccountService, logger *logger.Logger) IdentityResolver {
	return &identityResolver{
		tokens:   tokens,
		accounts: accounts,
		logger:   logger,
	}
}

// Resolve returns the principal a bearer token stands for.
//
// Every failure is reported as ErrUnauthorized so the client cannot tell a
// bad token from a deleted account. The single exception is an unreachable
// account store, which surfaces as ErrUnavailable.
func (r *identityResolver) Resolve(ctx context.Context, rawToken string) (models.Principal, error) {
	log := logger.FromContext(ctx)

	subject, err := r.tokens.Verify(ctx, rawToken)
	if err != nil {
		return models.Principal{}, ErrUnauthorized
	}

	account, err := r.accounts.FindByEmail(ctx, subject)
	if err != nil {
		if errors.Is(err, ErrUnavailable) {
			log.Err(err).Str("func", "*identityResolver.Resolve").Msg("account store unavailable")
			return models.Principal{}, fmt.Errorf("error resolving identity: %w", err)
		}
		log.Warn().Err(err).Str("func", "*identityResolver.Resolve").Msg("token subject has no account")
		return models.Principal{}, ErrUnauthorized
	}

	if !account.IsActive {
		log.Warn().Str("func", "*identityResolver.Resolve").Int64("account_id", account.ID).Msg("account is inactive")
		return models.Principal{}, ErrUnauthorized
	}

	return models.NewPrincipal(account), nil
}
