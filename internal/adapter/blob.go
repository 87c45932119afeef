package adapter

import (
	"context"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/MKhiriev/go-home-inventory/internal/config"
	"github.com/MKhiriev/go-home-inventory/internal/logger"
)

// objectPrefix is the key prefix of uploaded images in remote buckets.
const objectPrefix = "uploads/"

const defaultContentType = "application/octet-stream"

// NewBlobStore selects the backend described by cfg: S3 when a bucket is
// configured, Supabase Storage when a project URL is configured, the local
// upload directory otherwise.
func NewBlobStore(ctx context.Context, cfg config.Storage, log *logger.Logger) (BlobStore, error) {
	switch {
	case cfg.S3.Enabled():
		log.Info().Str("backend", "s3").Str("bucket", cfg.S3.Bucket).Msg("using blob store")
		return NewS3BlobStore(ctx, cfg.S3, log)
	case cfg.Supabase.Enabled():
		log.Info().Str("backend", "supabase").Str("bucket", cfg.Supabase.Bucket).Msg("using blob store")
		return NewSupabaseBlobStore(cfg.Supabase, log), nil
	default:
		log.Info().Str("backend", "local").Str("dir", cfg.Files.UploadDir).Msg("using blob store")
		return NewLocalBlobStore(cfg.Files, log)
	}
}

// objectName builds a collision-free object name that keeps the extension
// of suggestedName, e.g. "photo.JPG" becomes "0192f0c1...a7.jpg".
func objectName(names nameGenerator, suggestedName string) string {
	return strings.ReplaceAll(names.Generate(), "-", "") + extension(suggestedName)
}

// extension returns the lower-cased extension of name, or "" when it holds
// anything other than letters and digits.
func extension(name string) string {
	ext := filepath.Ext(filepath.Base(name))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}

	for _, r := range ext[1:] {
		if r > unicode.MaxASCII || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return ""
		}
	}

	return strings.ToLower(ext)
}

func contentTypeOrDefault(contentType string) string {
	if strings.TrimSpace(contentType) == "" {
		return defaultContentType
	}
	return contentType
}
