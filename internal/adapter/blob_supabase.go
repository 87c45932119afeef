package adapter

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-home-inventory/internal/config"
	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/utils"
)

const supabaseTimeout = 30 * time.Second

// supabaseBlobStore uploads objects through the Supabase Storage REST API.
type supabaseBlobStore struct {
	client  *utils.HTTPClient
	baseURL string
	bucket  string
	names   nameGenerator
	logger  *logger.Logger
}

// NewSupabaseBlobStore returns a [BlobStore] for the bucket of a Supabase
// project. The service key is sent both as bearer token and as "apikey".
// Objects are expected to live in a public bucket: the returned locator is
// the public object URL.
func NewSupabaseBlobStore(cfg config.Supabase, log *logger.Logger) BlobStore {
	baseURL := strings.TrimRight(cfg.URL, "/")

	client := utils.NewHTTPClient()
	client.
		SetBaseURL(baseURL).
		SetTimeout(supabaseTimeout).
		SetAuthToken(cfg.Key).
		SetHeader("apikey", cfg.Key)

	return &supabaseBlobStore{
		client:  client,
		baseURL: baseURL,
		bucket:  cfg.Bucket,
		names:   utils.NewUUIDGenerator(),
		logger:  log,
	}
}

func (s *supabaseBlobStore) StoreBlob(ctx context.Context, data []byte, suggestedName, contentType string) (string, error) {
	log := logger.FromContext(ctx)

	key := objectPrefix + objectName(s.names, suggestedName)

	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentTypeOrDefault(contentType)).
		SetHeader("x-upsert", "false").
		SetBody(data).
		Post("/storage/v1/object/" + s.bucket + "/" + key)
	if err != nil {
		log.Err(err).Str("func", "*supabaseBlobStore.StoreBlob").Msg("upload request failed")
		return "", fmt.Errorf("%w: upload request: %w", ErrBlobUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		log.Err(err).Str("func", "*supabaseBlobStore.StoreBlob").Int("status", resp.StatusCode()).Msg("upload rejected")
		return "", err
	}

	return s.baseURL + "/storage/v1/object/public/" + s.bucket + "/" + key, nil
}
