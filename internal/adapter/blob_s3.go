// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/MKhiriev/go-home-inventory/internal/config"
	"github.com/MKhiriev/go-home-inventory/internal/logger"
	"github.com/MKhiriev/go-home-inventory/internal/utils"
)

// s3API is the part of *s3.Client the blob store uses.
type s3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// s3BlobStore uploads objects to an S3 bucket under the "uploads/" prefix.
type s3BlobStore struct {
	client     s3API
	bucket     string
	region     string
	endpoint   string
	publicRead bool
	names      nameGenerator
	logger     *logger.Logger
}

// NewS3BlobStore builds an S3 client from cfg. Static credentials are used
// when an access key is configured; otherwise the default AWS credential
// chain applies. A custom Endpoint switches to path-style addressing for
// MinIO and similar servers.
func NewS3BlobStore(ctx context.Context, cfg config.S3, log *logger.Logger) (BlobStore, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		opts = append(opts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3BlobStore").Msg("error loading AWS config")
		return nil, fmt.Errorf("error loading AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &s3BlobStore{
		client:     client,
		bucket:     cfg.Bucket,
		region:     awsCfg.Region,
		endpoint:   strings.TrimRight(cfg.Endpoint, "/"),
		publicRead: cfg.PublicRead,
		names:      utils.NewUUIDGenerator(),
		logger:     log,
	}, nil
}

func (s *s3BlobStore) StoreBlob(ctx context.Context, data []byte, suggestedName, contentType string) (string, error) {
	log := logger.FromContext(ctx)

	key := objectPrefix + objectName(s.names, suggestedName)
	input := &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentTypeOrDefault(contentType)),
	}
	if s.publicRead {
		input.ACL = types.ObjectCannedACLPublicRead
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		log.Err(err).Str("func", "*s3BlobStore.StoreBlob").Str("bucket", s.bucket).Msg("error uploading object")

		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorFault() == smithy.FaultClient {
			return "", fmt.Errorf("%w: %w", ErrBlobRejected, err)
		}
		return "", fmt.Errorf("%w: %w", ErrBlobUnavailable, err)
	}

	return s.publicURL(key), nil
}

// publicURL is the address an uploaded object is served from.
func (s *s3BlobStore) publicURL(key string) string {
	switch {
	case s.endpoint != "":
		return s.endpoint + "/" + s.bucket + "/" + key
	case s.region != "":
		return "https://" + s.bucket + ".s3." + s.region + ".amazonaws.com/" + key
	default:
		return "https://" + s.bucket + ".s3.amazonaws.com/" + key
	}
}
