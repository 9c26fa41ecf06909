package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	appcfg "github.com/storyshare/core/internal/config"
)

// objectAPI is the subset of the S3 client the store uses.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Store keeps objects in an S3-compatible bucket.
type S3Store struct {
	api      objectAPI
	bucket   string
	endpoint string
	region   string
	domain   string
	path     bool
}

// NewS3Store builds a client with static credentials. A custom endpoint
// (MinIO, R2, ...) switches to path-style addressing unless the domain is
// explicitly configured.
func NewS3Store(ctx context.Context, opts appcfg.S3Config) (*S3Store, error) {
	if opts.Bucket == "" || opts.AccessKeyID == "" || opts.SecretAccessKey == "" {
		return nil, fmt.Errorf("incomplete s3 config: bucket/access_key_id/secret_access_key are required")
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			opts.AccessKeyID, opts.SecretAccessKey, "",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	endpoint := strings.TrimRight(strings.TrimSpace(opts.Endpoint), "/")
	if endpoint != "" && !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
		endpoint = "https://" + endpoint
	}
	pathStyle := opts.PathStyle || endpoint != ""

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
		}
		o.UsePathStyle = pathStyle
	})
	return newS3Store(client, opts.Bucket, endpoint, opts.Region, opts.CustomDomain, pathStyle), nil
}

func newS3Store(api objectAPI, bucket, endpoint, region, domain string, pathStyle bool) *S3Store {
	return &S3Store{
		api:      api,
		bucket:   bucket,
		endpoint: endpoint,
		region:   region,
		domain:   strings.TrimRight(strings.TrimSpace(domain), "/"),
		path:     pathStyle,
	}
}

func (s *S3Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	key = normalizeKey(key)
	if key == "" {
		return ErrInvalidKey
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := s.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("s3 put %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) Delete(ctx context.Context, key string) error {
	key = normalizeKey(key)
	if key == "" {
		return ErrInvalidKey
	}
	_, err := s.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("s3 delete %s: %w", key, err)
	}
	return nil
}

func (s *S3Store) URL(key string) string {
	key = normalizeKey(key)
	if key == "" {
		return ""
	}
	escaped := escapeKey(key)
	if s.domain != "" {
		return s.domain + "/" + escaped
	}
	if s.endpoint != "" {
		if s.path {
			return s.endpoint + "/" + s.bucket + "/" + escaped
		}
		u, err := url.Parse(s.endpoint)
		if err == nil {
			return u.Scheme + "://" + s.bucket + "." + u.Host + "/" + escaped
		}
	}
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, escaped)
}

func escapeKey(key string) string {
	parts := strings.Split(key, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
