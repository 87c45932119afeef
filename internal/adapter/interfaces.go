// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides the outbound integrations of the inventory server.
//
// The primary abstraction is [BlobStore], which decouples the item service
// from the place uploaded images end up. Three implementations ship with the
// package: a local directory ([NewLocalBlobStore]), an S3-compatible bucket
// ([NewS3BlobStore]) and Supabase Storage ([NewSupabaseBlobStore]).
// [NewBlobStore] picks one from the storage configuration.
//
// Failures are reported with the sentinel values in errors.go so callers can
// use [errors.Is] without knowing the backend: [ErrBlobUnavailable] when the
// backend could not be reached, [ErrBlobRejected] when it refused the object.
package adapter

import "context"

//go:generate mockgen -source=interfaces.go -destination=../mock/blob_store_mock.go -package=mock

// BlobStore persists opaque binary objects and returns where they can be
// fetched from.
type BlobStore interface {
	// StoreBlob writes data under a fresh object name derived from
	// suggestedName (only its extension is kept) and returns the locator:
	// a URL or a path served by this server. The call blocks until the
	// backend confirms the write.
	StoreBlob(ctx context.Context, data []byte, suggestedName, contentType string) (string, error)
}

// nameGenerator produces unique object names. Satisfied by
// [utils.UUIDGenerator].
type nameGenerator interface {
	Generate() string
}
