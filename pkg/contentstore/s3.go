package contentstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/Mindburn-Labs/objgraph/pkg/hash"
)

// S3Store implements Store against an S3 (or S3-compatible) bucket,
// one object per node, keyed by content hash.
type S3Store struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Store wraps an already-configured *s3.Client.
func NewS3Store(client *s3.Client, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// OpenS3Store loads the default AWS config chain (environment, shared
// config, IMDS) for region and opens a client against bucket.
func OpenS3Store(ctx context.Context, region, bucket, prefix string) (*S3Store, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("contentstore: load aws config: %w", err)
	}
	return NewS3Store(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func (s *S3Store) key(h hash.Hash) string {
	if s.prefix == "" {
		return h.String()
	}
	return s.prefix + "/" + h.String()
}

func (s *S3Store) Put(ctx context.Context, h hash.Hash, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(h)),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("contentstore: s3 put: %w", err)
	}
	return nil
}

func (s *S3Store) Get(ctx context.Context, h hash.Hash) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(h)),
	})
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &noSuchKey) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("contentstore: s3 get: %w", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("contentstore: s3 read body: %w", err)
	}
	return data, nil
}

func (s *S3Store) Has(ctx context.Context, h hash.Hash) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(h)),
	})
	var notFound *types.NotFound
	if errors.As(err, &notFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("contentstore: s3 head: %w", err)
	}
	return true, nil
}

// Close is a no-op: the underlying *s3.Client holds no closeable
// resources of its own.
func (s *S3Store) Close() error {
	return nil
}
