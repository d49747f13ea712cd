package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/maalberto-engineer/IoT-Data-Generator/config"
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/pkg/logger"
)

// MinioArchive keeps copies of exported dataset files in a single
// object-storage bucket, keyed by dataset ID.
type MinioArchive struct {
	client *minio.Client
	bucket string
	logger logger.Logger
}

func NewMinioArchive(cfg config.StorageConfig) (*MinioArchive, error) {
	log := logger.New("info", "development").WithField("component", "minio_archive")

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Minio client: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := client.ListBuckets(ctx); err != nil {
		return nil, fmt.Errorf("failed to list Minio buckets: %w", err)
	}

	log.Info("Minio archive initialized successfully")
	return &MinioArchive{
		client: client,
		bucket: cfg.Bucket,
		logger: log,
	}, nil
}

func (m *MinioArchive) Upload(ctx context.Context, key string, data io.Reader, size int64, contentType string) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			return fmt.Errorf("failed to create bucket: %w", err)
		}
		m.logger.Infof("Created bucket: %s", m.bucket)
	}

	_, err = m.client.PutObject(ctx, m.bucket, key, data, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	m.logger.Debugf("Uploaded export to bucket: %s, key: %s", m.bucket, key)
	return nil
}

func (m *MinioArchive) HealthCheck(ctx context.Context) error {
	_, err := m.client.ListBuckets(ctx)
	return err
}
