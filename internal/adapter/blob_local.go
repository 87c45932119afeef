package adapter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-home-inventory/internal/config"
	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/utils"
)

// localBlobStore writes objects into a directory that the HTTP server
// exposes under publicPrefix.
type localBlobStore struct {
	dir          string
	publicPrefix string
	names        nameGenerator
	logger       *logger.Logger
}

// NewLocalBlobStore creates the upload directory if needed and returns a
// [BlobStore] writing into it. Locators have the form
// "<PublicPrefix>/<object name>".
func NewLocalBlobStore(cfg config.Files, log *logger.Logger) (BlobStore, error) {
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Err(err).Str("func", "NewLocalBlobStore").Str("dir", cfg.UploadDir).Msg("error creating upload directory")
		return nil, fmt.Errorf("error creating upload directory: %w", err)
	}

	return &localBlobStore{
		dir:          cfg.UploadDir,
		publicPrefix: strings.TrimRight(cfg.PublicPrefix, "/"),
		names:        utils.NewUUIDGenerator(),
		logger:       log,
	}, nil
}

func (s *localBlobStore) StoreBlob(ctx context.Context, data []byte, suggestedName, contentType string) (string, error) {
	log := logger.FromContext(ctx)

	name := objectName(s.names, suggestedName)

	// O_EXCL: never overwrite an existing object
	f, err := os.OpenFile(filepath.Join(s.dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		log.Err(err).Str("func", "*localBlobStore.StoreBlob").Msg("error creating object file")
		return "", fmt.Errorf("%w: %w", ErrBlobUnavailable, err)
	}

	if _, err = f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		log.Err(err).Str("func", "*localBlobStore.StoreBlob").Msg("error writing object file")
		return "", fmt.Errorf("%w: %w", ErrBlobUnavailable, err)
	}

	if err = f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("%w: %w", ErrBlobUnavailable, err)
	}

	log.Debug().Str("object", name).Int("size", len(data)).Msg("object stored locally")
	return s.publicPrefix + "/" + name, nil
}
