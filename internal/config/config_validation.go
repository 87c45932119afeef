// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"slices"
	"strings"
)

var supportedTokenAlgorithms = []string{"HS256", "HS384", "HS512"}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if strings.TrimSpace(cfg.Storage.DB.DSN) == "" {
		return fmt.Errorf("%w: database DSN is not set", ErrInvalidStorageConfigs)
	}

	if cfg.Storage.Supabase.Enabled() && (cfg.Storage.Supabase.Key == "" || cfg.Storage.Supabase.Bucket == "") {
		return fmt.Errorf("%w: supabase storage requires key and bucket", ErrInvalidStorageConfigs)
	}

	if cfg.Storage.Files.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: max upload size must be positive", ErrInvalidStorageConfigs)
	}

	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is empty", ErrInvalidAppConfigs)
	}

	if !slices.Contains(supportedTokenAlgorithms, cfg.App.TokenAlgorithm) {
		return fmt.Errorf("%w: unsupported token algorithm %q", ErrInvalidAppConfigs, cfg.App.TokenAlgorithm)
	}

	if cfg.App.TokenExpireMinutes <= 0 {
		return fmt.Errorf("%w: token lifetime must be positive", ErrInvalidAppConfigs)
	}

	if cfg.Server.HTTPAddress == "" {
		return fmt.Errorf("%w: http address is empty", ErrInvalidServerConfigs)
	}

	return nil
}
