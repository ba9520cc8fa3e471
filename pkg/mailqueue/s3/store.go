package s3

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/dmitrymomot/mailout/pkg/mailqueue"
)

// DefaultKey is the object key used when none is configured.
const DefaultKey = "mailqueue/snapshot.json"

// Client defines the interface for S3 operations used by Store.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// Store persists queue snapshots as a single S3 object.
// It is safe for concurrent use.
type Store struct {
	client Client
	bucket string
	key    string
}

// Option defines a function that configures a Store.
type Option func(*storeOptions)

type storeOptions struct {
	client Client
}

// WithClient sets a custom pre-configured S3 client.
// Useful for testing with mocks.
func WithClient(client Client) Option {
	return func(o *storeOptions) {
		o.client = client
	}
}

// New creates an S3 snapshot store. Unless WithClient supplies one, the
// client is built from cfg with static credentials when provided, falling
// back to the ambient AWS credential chain otherwise.
func New(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	if cfg.Bucket == "" || cfg.Region == "" {
		return nil, ErrInvalidConfig
	}

	options := &storeOptions{}
	for _, opt := range opts {
		opt(options)
	}

	client := options.client
	if client == nil {
		awsOptions := []func(*config.LoadOptions) error{
			config.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			awsOptions = append(awsOptions,
				config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
					cfg.AccessKeyID,
					cfg.SecretKey,
					"",
				)),
			)
		}

		awsConfig, err := config.LoadDefaultConfig(ctx, awsOptions...)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadConfig, err)
		}

		client = s3.NewFromConfig(awsConfig, func(o *s3.Options) {
			if cfg.Endpoint != "" {
				o.BaseEndpoint = aws.String(cfg.Endpoint)
			}
			o.UsePathStyle = cfg.ForcePathStyle
		})
	}

	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	return &Store{
		client: client,
		bucket: cfg.Bucket,
		key:    key,
	}, nil
}

// ReadSnapshot returns the stored snapshot, or mailqueue.ErrNoSnapshot when
// the object does not exist.
func (s *Store) ReadSnapshot(ctx context.Context) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, mailqueue.ErrNoSnapshot
		}
		return nil, errors.Join(ErrReadFailed, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, errors.Join(ErrReadFailed, err)
	}
	return data, nil
}

// WriteSnapshot replaces the stored snapshot.
func (s *Store) WriteSnapshot(ctx context.Context, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return errors.Join(ErrWriteFailed, err)
	}
	return nil
}

// isNoSuchKey detects missing objects across the typed error and the generic
// API error code some S3-compatible services return.
func isNoSuchKey(err error) bool {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}

	var apiErr smithy.APIError
	return errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey"
}
