// Package storage provides the S3-compatible object store that holds entry
// images.
package storage

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// MaxPresignExpiry is the longest lifetime SigV4 accepts for a presigned URL.
const MaxPresignExpiry = 7 * 24 * time.Hour

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	presignPutObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignPutObject(ctx, in, optFns...)
	}
	presignGetObject = func(pc *s3.PresignClient, ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
		return pc.PresignGetObject(ctx, in, optFns...)
	}
)

// ObjectStore is what the services need from the bucket.
type ObjectStore interface {
	Exists(ctx context.Context, name string) (bool, error)
	PresignUpload(ctx context.Context, name, contentType string, size int64, ttl time.Duration) (PresignedUpload, error)
	SignURL(ctx context.Context, name string, ttl time.Duration) (SignedURL, error)
}

// PresignedUpload is a no-overwrite PUT slot. Headers were signed into the
// URL and must be replayed by the uploader.
type PresignedUpload struct {
	URL       string
	Headers   map[string]string
	ExpiresAt time.Time
}

// SignedURL is a time-limited GET link.
type SignedURL struct {
	URL       string
	ExpiresAt time.Time
}

// Options configures an S3Store.
type Options struct {
	Region       string
	AccessKey    string
	SecretKey    string
	BaseEndpoint string
	Bucket       string
}

// S3Store implements ObjectStore on aws-sdk-go-v2.
type S3Store struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	now     func() time.Time
}

// NewS3Store builds a path-style client, which MinIO requires.
func NewS3Store(ctx context.Context, o Options) (*S3Store, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(o.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(o.AccessKey, o.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := newS3ClientFromConfig(cfg, func(so *s3.Options) {
		if o.BaseEndpoint != "" {
			so.BaseEndpoint = aws.String(o.BaseEndpoint)
		}
		so.UsePathStyle = true
	})

	return &S3Store{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  o.Bucket,
		now:     time.Now,
	}, nil
}

// Bucket returns the bucket name objects are written to.
func (s *S3Store) Bucket() string {
	return s.bucket
}

// EnsureBucket creates the bucket when it does not exist yet.
func (s *S3Store) EnsureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}
	if !isNotFound(err) {
		return fmt.Errorf("head bucket %s: %w", s.bucket, err)
	}
	if _, err := s.client.CreateBucket(ctx, &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}); err != nil {
		return fmt.Errorf("create bucket %s: %w", s.bucket, err)
	}
	return nil
}

func (s *S3Store) Exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{Bucket: aws.String(s.bucket), Key: aws.String(name)})
	if err == nil {
		return true, nil
	}
	if isNotFound(err) {
		return false, nil
	}
	return false, fmt.Errorf("head object %s: %w", name, err)
}

func (s *S3Store) PresignUpload(ctx context.Context, name, contentType string, size int64, ttl time.Duration) (PresignedUpload, error) {
	ttl = clampTTL(ttl)

	req, err := presignPutObject(s.presign, ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(name),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(size),
		IfNoneMatch:   aws.String("*"),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return PresignedUpload{}, fmt.Errorf("presign put %s: %w", name, err)
	}

	return PresignedUpload{
		URL:       req.URL,
		Headers:   replayHeaders(req.SignedHeader),
		ExpiresAt: s.now().Add(ttl),
	}, nil
}

func (s *S3Store) SignURL(ctx context.Context, name string, ttl time.Duration) (SignedURL, error) {
	ttl = clampTTL(ttl)

	req, err := presignGetObject(s.presign, ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(name),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return SignedURL{}, fmt.Errorf("presign get %s: %w", name, err)
	}

	return SignedURL{URL: req.URL, ExpiresAt: s.now().Add(ttl)}, nil
}

func clampTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 || ttl > MaxPresignExpiry {
		return MaxPresignExpiry
	}
	return ttl
}

// replayHeaders drops headers the HTTP client sets on its own.
func replayHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		switch http.CanonicalHeaderKey(k) {
		case "Host", "Content-Length":
			continue
		}
		if len(v) > 0 {
			out[http.CanonicalHeaderKey(k)] = v[0]
		}
	}
	return out
}

func isNotFound(err error) bool {
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return true
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NotFound", "NoSuchKey", "NoSuchBucket":
			return true
		}
	}
	return false
}
