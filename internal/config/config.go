// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

const (
	// DefaultTokenSignKey is the insecure placeholder used when no signing
	// key is configured. It must be overridden in production.
	DefaultTokenSignKey = "change_this_to_a_random_secret_key_please"

	// DefaultTokenAlgorithm is the JWT signing algorithm used by default.
	DefaultTokenAlgorithm = "HS256"

	// DefaultTokenExpireMinutes is the default access-token lifetime (24h).
	DefaultTokenExpireMinutes = 1440

	// DefaultHTTPAddress is the address the HTTP server listens on by default.
	DefaultHTTPAddress = ":8080"

	// DefaultUploadDir is the local directory used by the local blob backend.
	DefaultUploadDir = "static/uploads"

	// DefaultPublicPrefix is the URL path under which local uploads are served.
	DefaultPublicPrefix = "/static/uploads"

	// DefaultMaxUploadBytes caps the size of a single image upload (10 MiB).
	DefaultMaxUploadBytes = 10 << 20
)

// StructuredConfig is the top-level configuration container for the
// go-home-inventory server. It is populated by merging defaults, a .env
// file, environment variables, command-line flags and an optional JSON file.
//
// Struct tags:
//   - envPrefix: prefix applied to all nested env tag lookups (caarlos0/env).
//   - env: direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token parameters and the application version.
	App App `envPrefix:"APP_"`

	// Storage holds the database and blob backend settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address and timeout settings.
	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`
}

// App holds application-level configuration values that control token
// issuance and versioning.
type App struct {
	// TokenSignKey is the secret used to sign and verify access tokens.
	// Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenAlgorithm is the HMAC signing algorithm identifier
	// (HS256, HS384 or HS512).
	// Env: APP_TOKEN_ALGORITHM
	TokenAlgorithm string `env:"TOKEN_ALGORITHM"`

	// TokenExpireMinutes is the access-token lifetime in minutes.
	// Env: APP_TOKEN_EXPIRE_MINUTES
	TokenExpireMinutes int `env:"TOKEN_EXPIRE_MINUTES"`

	// Version is the semantic version string of the running application.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// TokenTTL returns the configured access-token lifetime.
func (a App) TokenTTL() time.Duration {
	return time.Duration(a.TokenExpireMinutes) * time.Minute
}

// UsesDefaultSignKey reports whether the insecure placeholder key is in use.
func (a App) UsesDefaultSignKey() bool {
	return a.TokenSignKey == DefaultTokenSignKey
}

// Storage groups the configuration for the database and the blob backends.
type Storage struct {
	DB       DB       `envPrefix:"DB_"`
	Files    Files    `envPrefix:"FILES_"`
	S3       S3       `envPrefix:"S3_"`
	Supabase Supabase `envPrefix:"SUPABASE_"`
}

// DB holds connection settings for the relational database backend.
type DB struct {
	// DSN is the database connection string. A postgres:// or postgresql://
	// URI selects PostgreSQL; sqlite:// or file: selects SQLite.
	// Mandatory.
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// LocalFilesEnabled reports whether uploads go to the local upload
// directory, which is the case when no remote backend is configured.
func (s Storage) LocalFilesEnabled() bool {
	return !s.S3.Enabled() && !s.Supabase.Enabled()
}

// Files holds settings of the local blob backend and upload limits.
type Files struct {
	// UploadDir is the directory uploaded images are written to.
	// Env: STORAGE_FILES_UPLOAD_DIR
	UploadDir string `env:"UPLOAD_DIR"`

	// PublicPrefix is the URL path prefix of locally stored images.
	// Env: STORAGE_FILES_PUBLIC_PREFIX
	PublicPrefix string `env:"PUBLIC_PREFIX"`

	// MaxUploadBytes caps a single upload. Applies to every backend.
	// Env: STORAGE_FILES_MAX_UPLOAD_BYTES
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES"`
}

// S3 holds settings of the S3-compatible blob backend. The backend is
// selected when Bucket is non-empty.
type S3 struct {
	Bucket          string `env:"BUCKET"`
	Region          string `env:"REGION"`
	AccessKeyID     string `env:"ACCESS_KEY_ID"`
	SecretAccessKey string `env:"SECRET_ACCESS_KEY"`

	// Endpoint overrides the service endpoint (MinIO, localstack).
	Endpoint string `env:"ENDPOINT"`

	// PublicRead uploads objects with the public-read canned ACL.
	PublicRead bool `env:"PUBLIC_READ"`
}

// Enabled reports whether the S3 backend is configured.
func (s S3) Enabled() bool {
	return s.Bucket != ""
}

// Supabase holds settings of the Supabase Storage blob backend. The backend
// is selected when URL is non-empty and S3 is not configured.
type Supabase struct {
	URL    string `env:"URL"`
	Key    string `env:"KEY"`
	Bucket string `env:"BUCKET"`
}

// Enabled reports whether the Supabase backend is configured.
func (s Supabase) Enabled() bool {
	return s.URL != ""
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address of the HTTP server ("host:port").
	// Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// GRPCAddress is the TCP address of the optional gRPC health endpoint.
	// Env: SERVER_GRPC_ADDRESS
	GRPCAddress string `env:"GRPC_ADDRESS"`

	// RequestTimeout bounds a single inbound HTTP request (e.g. "30s").
	// Zero disables the timeout.
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// defaultConfig returns the lowest-priority configuration layer.
func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:       DefaultTokenSignKey,
			TokenAlgorithm:     DefaultTokenAlgorithm,
			TokenExpireMinutes: DefaultTokenExpireMinutes,
		},
		Storage: Storage{
			Files: Files{
				UploadDir:      DefaultUploadDir,
				PublicPrefix:   DefaultPublicPrefix,
				MaxUploadBytes: DefaultMaxUploadBytes,
			},
		},
		Server: Server{
			HTTPAddress: DefaultHTTPAddress,
		},
	}
}

// GetStructuredConfig loads, merges, and validates the application
// configuration from all available sources in the following priority order
// (later sources override earlier non-zero fields):
//  1. Built-in defaults
//  2. .env file in the working directory (if present)
//  3. Environment variables
//  4. Command-line flags
//  5. JSON file (path resolved from sources 3 and 4)
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDefaults().
		withDotEnv(".env").
		withEnv().
		withFlags(args).
		withJSON().
		build()
}
