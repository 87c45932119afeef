// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-home-inventory/internal/crypto"
	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/store"
	"github.com/MKhiriev/go-home-inventory/internal/validators"
	"github.com/MKhiriev/go-home-inventory/models"
)

// accountService is the concrete implementation of [AccountService].
// It validates signup data, delegates password encoding to a
// [crypto.PasswordHasher] and persistence to a [store.AccountRepository].
type accountService struct {
	// accountRepository is the data-access layer for accounts.
	accountRepository store.AccountRepository

	// hasher encodes and checks passwords. Only it knows the scheme.
	hasher crypto.PasswordHasher

	// validator checks email syntax and password presence.
	validator validators.Validator

	now    func() time.Time
	logger *logger.Logger
}

// NewAccountService constructs an [AccountService].
func NewAccountService(accountRepository store.AccountRepository, hasher crypto.PasswordHasher, logger *logger.Logger) AccountService {
	return &accountService{
		accountRepository: accountRepository,
		hasher:            hasher,
		validator:         validators.NewAccountValidator(),
		now:               time.Now,
		logger:            logger,
	}
}

// Register creates an active account.
//
// Returns:
//   - ErrValidation (wrapped) for a blank or malformed email and for a
//     password the hasher refuses (blank or too long).
//   - ErrEmailTaken if the email is already registered, whether the
//     pre-check or the unique constraint notices it.
//   - ErrUnavailable (wrapped) if the store cannot be reached.
func (s *accountService) Register(ctx context.Context, req models.AccountCreate) (models.Account, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, req, validators.FieldEmail); err != nil {
		log.Error().Err(err).Str("func", "*accountService.Register").Msg("invalid signup data")
		return models.Account{}, validationError(err)
	}

	_, err := s.accountRepository.FindByEmail(ctx, req.Email)
	switch {
	case err == nil:
		return models.Account{}, ErrEmailTaken
	case !errors.Is(err, store.ErrAccountNotFound):
		log.Err(err).Str("func", "*accountService.Register").Msg("email lookup failed")
		return models.Account{}, mapStoreError(err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, crypto.ErrInvalidPassword) {
			return models.Account{}, fmt.Errorf("%w: %w", ErrValidation, err)
		}
		log.Err(err).Str("func", "*accountService.Register").Msg("password hashing failed")
		return models.Account{}, fmt.Errorf("password hashing failed: %w", err)
	}

	account, err := s.accountRepository.Create(ctx, models.Account{
		Email:        req.Email,
		FullName:     req.FullName,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		log.Err(err).Str("func", "*accountService.Register").Msg("account creation ended with error")
		return models.Account{}, mapStoreError(err)
	}

	return account, nil
}

// Authenticate checks an email/password pair.
//
// Unknown email, unusable password input, a wrong password and an inactive
// account all return the same ErrInvalidCredentials. A store outage is
// ErrUnavailable.
func (s *accountService) Authenticate(ctx context.Context, email, password string) (models.Account, error) {
	log := logger.FromContext(ctx)

	account, err := s.accountRepository.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			log.Warn().Str("func", "*accountService.Authenticate").Msg("unknown email")
			return models.Account{}, ErrInvalidCredentials
		}
		log.Err(err).Str("func", "*accountService.Authenticate").Msg("account lookup failed")
		return models.Account{}, mapStoreError(err)
	}

	if crypto.ValidatePassword(password) != nil || !s.hasher.Verify(password, account.PasswordHash) {
		log.Warn().Str("func", "*accountService.Authenticate").Int64("account_id", account.ID).Msg("wrong password")
		return models.Account{}, ErrInvalidCredentials
	}

	if !account.IsActive {
		log.Warn().Str("func", "*accountService.Authenticate").Int64("account_id", account.ID).Msg("account is inactive")
		return models.Account{}, ErrInvalidCredentials
	}

	return account, nil
}

// FindByID returns ErrAccountNotFound when no account has id.
func (s *accountService) FindByID(ctx context.Context, id int64) (models.Account, error) {
	account, err := s.accountRepository.FindByID(ctx, id)
	if err != nil {
		return models.Account{}, mapStoreError(err)
	}
	return account, nil
}

// FindByEmail returns ErrAccountNotFound when no account has email.
func (s *accountService) FindByEmail(ctx context.Context, email string) (models.Account, error) {
	account, err := s.accountRepository.FindByEmail(ctx, email)
	if err != nil {
		return models.Account{}, mapStoreError(err)
	}
	return account, nil
}

// Delete removes the account together with all of its items.
func (s *accountService) Delete(ctx context.Context, id int64) error {
	if err := s.accountRepository.Delete(ctx, id); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*accountService.Delete").Int64("account_id", id).Msg("account deletion failed")
		return mapStoreError(err)
	}

	logger.FromContext(ctx).Info().Int64("account_id", id).Msg("account deleted")
	return nil
}
