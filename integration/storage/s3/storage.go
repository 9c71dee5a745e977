package s3

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	s3aws "github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/layangkit/layangkit/core/storage"
)

var _ storage.Storage = (*Storage)(nil)

// Client is the subset of the S3 API the storage uses. Satisfied by
// *s3aws.Client; narrow so tests can substitute a mock.
type Client interface {
	PutObject(ctx context.Context, params *s3aws.PutObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3aws.HeadObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3aws.DeleteObjectInput, optFns ...func(*s3aws.Options)) (*s3aws.DeleteObjectOutput, error)
}

// Config contains S3 configuration with environment variable support.
type Config struct {
	Bucket      string `env:"S3_BUCKET"`
	Region      string `env:"S3_REGION" envDefault:"auto"`
	AccessKeyID string `env:"S3_ACCESS_KEY_ID"`
	SecretKey   string `env:"S3_SECRET_ACCESS_KEY"`
	// Endpoint targets S3-compatible services (R2, MinIO).
	Endpoint string `env:"S3_ENDPOINT"`
	// BaseURL overrides public URL generation, for CDN-fronted buckets.
	BaseURL string `env:"S3_BASE_URL"`
	// ForcePathStyle is required for MinIO and some compatible services.
	ForcePathStyle bool `env:"S3_FORCE_PATH_STYLE" envDefault:"false"`
}

// Configured reports whether the config is complete enough to construct a
// storage backend.
func (c Config) Configured() bool {
	return c.Bucket != "" && c.AccessKeyID != "" && c.SecretKey != ""
}

// Storage implements the storage contract over S3. Safe for concurrent use.
type Storage struct {
	client         Client
	presign        *s3aws.PresignClient
	bucket         string
	region         string
	endpoint       string
	baseURL        string
	forcePathStyle bool
}

// Option configures optional Storage behavior.
type Option func(*Storage)

// WithClient sets a pre-configured S3 client, mainly for tests.
func WithClient(client Client) Option {
	return func(s *Storage) {
		s.client = client
	}
}

// New creates an S3 storage backend.
func New(ctx context.Context, cfg Config, opts ...Option) (*Storage, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, storage.ErrInvalidConfig
	}

	s := &Storage{
		bucket:         cfg.Bucket,
		region:         cfg.Region,
		endpoint:       cfg.Endpoint,
		baseURL:        cfg.BaseURL,
		forcePathStyle: cfg.ForcePathStyle,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID, cfg.SecretKey, "")))
		}

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, fmt.Errorf("failed to load AWS config: %v", err)
		}

		client := s3aws.NewFromConfig(awsConfig, func(o *s3aws.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
		s.client = client
		s.presign = s3aws.NewPresignClient(client)
	}

	return s, nil
}

// Save writes the object and returns its public URL.
func (s *Storage) Save(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	key, err := storage.ValidateKey(key)
	if err != nil {
		return "", err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	_, err = s.client.PutObject(ctx, &s3aws.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", classifyError(err, "upload file")
	}

	return s.URL(key), nil
}

// Delete removes a single object. Verifies existence first so unknown keys
// fail with storage.ErrFileNotFound instead of succeeding silently.
func (s *Storage) Delete(ctx context.Context, key string) error {
	key, err := storage.ValidateKey(key)
	if err != nil {
		return err
	}

	if _, err := s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return classifyError(err, "check file")
	}

	if _, err := s.client.DeleteObject(ctx, &s3aws.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}); err != nil {
		return classifyError(err, "delete file")
	}

	return nil
}

// Exists checks whether the object exists.
func (s *Storage) Exists(ctx context.Context, key string) bool {
	key, err := storage.ValidateKey(key)
	if err != nil {
		return false
	}

	_, err = s.client.HeadObject(ctx, &s3aws.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	return err == nil
}

// URL returns the public URL for a key. A configured BaseURL wins; custom
// endpoints use path-style or virtual-hosted-style per config; otherwise
// the standard AWS form is used.
func (s *Storage) URL(key string) string {
	key = strings.TrimPrefix(key, "/")

	if s.baseURL != "" {
		return strings.TrimSuffix(s.baseURL, "/") + "/" + key
	}

	if s.endpoint != "" {
		endpoint := strings.TrimSuffix(s.endpoint, "/")
		protocol := "https://"
		if after, ok := strings.CutPrefix(endpoint, "http://"); ok {
			protocol = "http://"
			endpoint = after
		} else if after, ok := strings.CutPrefix(endpoint, "https://"); ok {
			endpoint = after
		}

		if s.forcePathStyle {
			return fmt.Sprintf("%s%s/%s/%s", protocol, endpoint, s.bucket, key)
		}
		return fmt.Sprintf("%s%s.%s/%s", protocol, s.bucket, endpoint, key)
	}

	if s.forcePathStyle {
		return fmt.Sprintf("https://s3.%s.amazonaws.com/%s/%s", s.region, s.bucket, key)
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key)
}

// PresignPut returns a URL allowing a direct client PUT of the key.
func (s *Storage) PresignPut(ctx context.Context, key, contentType string, expires time.Duration) (string, error) {
	key, err := storage.ValidateKey(key)
	if err != nil {
		return "", err
	}
	if s.presign == nil {
		return "", storage.ErrInvalidConfig
	}
	if expires <= 0 {
		expires = 15 * time.Minute
	}

	req, err := s.presign.PresignPutObject(ctx, &s3aws.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3aws.WithPresignExpires(expires))
	if err != nil {
		return "", classifyError(err, "presign upload")
	}

	return req.URL, nil
}
