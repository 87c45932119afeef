// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Account represents a registered user of the inventory.
// The email is the login key; the password is kept only as an encoded hash.
type Account struct {
	// ID is the server-assigned identifier of the account.
	ID int64 `json:"id"`

	// Email is the unique login identifier, compared exactly as stored.
	Email string `json:"email"`

	// FullName is the optional display name.
	FullName *string `json:"full_name"`

	// PasswordHash is the encoded argon2id credential.
	// It never leaves the server.
	PasswordHash string `json:"-"`

	// IsActive reports whether the account may authenticate.
	IsActive bool `json:"is_active"`

	// CreatedAt is the timestamp when the account was created.
	CreatedAt time.Time `json:"created_at"`
}

// AccountCreate is the signup payload.
type AccountCreate struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName *string `json:"full_name,omitempty"`
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// TableName returns the name of the database table
// associated with the Account model.
func (a Account) TableName() string {
	return "accounts"
}
