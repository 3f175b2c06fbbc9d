package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"github.com/phnormalguy/tungwong-video-uploader/configs"
	"github.com/phnormalguy/tungwong-video-uploader/pkg/logger"
)

// Store writes video binaries to an S3-compatible bucket and resolves
// public URLs for the keys it creates.
type Store struct {
	client *minio.Client
	config *configs.S3Config
	logger *logrus.Entry
}

func NewStore(config *configs.S3Config, log *logrus.Logger) (*Store, error) {
	client, err := minio.New(config.Endpoint, &minio.Options{
		Creds:  selectCredentials(config),
		Secure: config.UseSSL,
		Region: config.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	entry := logger.WithComponent(log, "storage")
	entry.WithFields(logrus.Fields{
		"endpoint": config.Endpoint,
		"bucket":   config.Bucket,
	}).Info("S3 client initialized")

	return &Store{
		client: client,
		config: config,
		logger: entry,
	}, nil
}

// selectCredentials picks the credential provider once at startup: explicit
// static keys when configured, otherwise the ambient chain (environment,
// shared credentials file, IAM role).
func selectCredentials(config *configs.S3Config) *credentials.Credentials {
	if config.AccessKey != "" && config.SecretKey != "" {
		return credentials.NewStaticV4(config.AccessKey, config.SecretKey, config.SessionToken)
	}
	return credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvAWS{},
		&credentials.FileAWSCredentials{},
		&credentials.IAM{},
	})
}

// EnsureBucket creates the configured bucket if it doesn't exist.
func (s *Store) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.config.Bucket)
	if err != nil {
		return fmt.Errorf("error checking bucket: %w", err)
	}

	if !exists {
		err = s.client.MakeBucket(ctx, s.config.Bucket, minio.MakeBucketOptions{Region: s.config.Region})
		if err != nil {
			return fmt.Errorf("error creating bucket: %w", err)
		}
		s.logger.WithField("bucket", s.config.Bucket).Info("Created bucket")
	} else {
		s.logger.WithField("bucket", s.config.Bucket).Info("Bucket exists")
	}

	return nil
}

// Put uploads the full byte stream as a single object under a freshly
// generated key and returns that key. Exactly one object is created per
// successful call; a failed call returns the backend error unchanged in
// meaning (no cleanup of a partial write is attempted).
func (s *Store) Put(ctx context.Context, content io.Reader, size int64, originalFilename, contentType string) (string, error) {
	key := objectKey(originalFilename, time.Now())

	if contentType == "" {
		contentType = "application/octet-stream"
	}

	info, err := s.client.PutObject(ctx, s.config.Bucket, key, content, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	s.logger.WithFields(logrus.Fields{
		"key":  info.Key,
		"size": info.Size,
	}).Info("Object stored")

	return key, nil
}

// ResolveURL returns the externally reachable URL for a stored key. The URL
// is derived from configuration alone; no network round-trip is made.
func (s *Store) ResolveURL(key string) (string, error) {
	if s.config.Bucket == "" {
		return "", fmt.Errorf("cannot resolve URL: bucket not configured")
	}
	if s.config.PublicURL != "" {
		return fmt.Sprintf("%s/%s/%s", s.config.PublicURL, s.config.Bucket, key), nil
	}
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL(), s.config.Bucket, key), nil
}
