package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type MinioOpts func(c *minioConfig)

type minioConfig struct {
	endpoint        string
	bucket          string
	accessKey       string
	secretAccessKey string
	publicBaseUrl   string
	useSSL          bool
}

func newConfig(opts ...MinioOpts) *minioConfig {
	cfg := &minioConfig{
		useSSL: false,
	}

	for _, o := range opts {
		o(cfg)
	}
	return cfg
}

type MinioStore struct {
	cfg    *minioConfig
	client *minio.Client
}

// Make sure we conform to ObjectStore interface
var _ ObjectStore = (*MinioStore)(nil)

func NewMinioStore(opts ...MinioOpts) (*MinioStore, error) {
	cfg := newConfig(opts...)

	// Initialize minio client object.
	minioClient, err := minio.New(cfg.endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.accessKey, cfg.secretAccessKey, ""),
		Secure: cfg.useSSL,
	})
	if err != nil {
		return nil, err
	}

	return &MinioStore{cfg: cfg, client: minioClient}, nil
}

// EnsureBucket creates the configured bucket if it does not exist yet.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.cfg.bucket)
	if err != nil {
		return fmt.Errorf("checking bucket %q: %w", s.cfg.bucket, err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.cfg.bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("creating bucket %q: %w", s.cfg.bucket, err)
	}
	return nil
}

func (s *MinioStore) Upload(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.StatObject(ctx, s.cfg.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return "", ErrObjectExists
	}
	if errResp := minio.ToErrorResponse(err); errResp.Code != "NoSuchKey" {
		return "", fmt.Errorf("checking object %q: %w", key, err)
	}

	return s.put(ctx, key, body, size, contentType)
}

func (s *MinioStore) Overwrite(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	return s.put(ctx, key, body, size, contentType)
}

func (s *MinioStore) put(ctx context.Context, key string, body io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.cfg.bucket, key, body, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("uploading object %q: %w", key, err)
	}
	return s.objectUrl(key), nil
}

// objectUrl builds the public URL of a stored object. When a public base url
// is configured it is assumed to front the bucket root.
func (s *MinioStore) objectUrl(key string) string {
	if s.cfg.publicBaseUrl != "" {
		return fmt.Sprintf("%s/%s", strings.TrimSuffix(s.cfg.publicBaseUrl, "/"), key)
	}
	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.cfg.bucket, key)
}

func WithEndpoint(endpoint string) MinioOpts {
	return func(c *minioConfig) {
		c.endpoint = endpoint
	}
}

func WithBucket(bucket string) MinioOpts {
	return func(c *minioConfig) {
		c.bucket = bucket
	}
}

func WithAccessKey(accessKey string) MinioOpts {
	return func(c *minioConfig) {
		c.accessKey = accessKey
	}
}

func WithSecretKey(secretKey string) MinioOpts {
	return func(c *minioConfig) {
		c.secretAccessKey = secretKey
	}
}

func WithPublicBaseUrl(publicBaseUrl string) MinioOpts {
	return func(c *minioConfig) {
		c.publicBaseUrl = publicBaseUrl
	}
}

func WithSSL(useSSL bool) MinioOpts {
	return func(c *minioConfig) {
		c.useSSL = useSSL
	}
}
