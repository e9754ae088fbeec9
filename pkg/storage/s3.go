// Package storage uploads attachments to S3-compatible object storage (AWS
// or Wasabi).
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Provider is the S3-compatible storage vendor.
type Provider string

const (
	ProviderAWS    Provider = "aws"
	ProviderWasabi Provider = "wasabi"
)

// wasabiEndpoints maps regions to Wasabi service endpoints.
var wasabiEndpoints = map[string]string{
	"us-east-1":      "s3.us-east-1.wasabisys.com",
	"us-east-2":      "s3.us-east-2.wasabisys.com",
	"us-west-1":      "s3.us-west-1.wasabisys.com",
	"eu-central-1":   "s3.eu-central-1.wasabisys.com",
	"eu-west-1":      "s3.eu-west-1.wasabisys.com",
	"ap-northeast-1": "s3.ap-northeast-1.wasabisys.com",
	"ap-southeast-1": "s3.ap-southeast-1.wasabisys.com",
	"ap-southeast-2": "s3.ap-southeast-2.wasabisys.com",
}

const defaultWasabiEndpoint = "s3.ap-southeast-1.wasabisys.com"

type Config struct {
	Provider        Provider
	AccessKeyID     string
	SecretAccessKey string
	Region          string
	Endpoint        string // Wasabi only; derived from Region when empty
	PublicBaseURL   string // overrides the provider object URL, e.g. a CDN
}

// endpoint returns the Wasabi host objects are addressed on.
func (c Config) endpoint() string {
	if c.Provider != ProviderWasabi {
		return ""
	}
	if c.Endpoint != "" {
		return c.Endpoint
	}
	if ep, ok := wasabiEndpoints[c.Region]; ok {
		return ep
	}
	return defaultWasabiEndpoint
}

// ObjectPutter is the part of *s3.Client the blob store uses.
type ObjectPutter interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// BlobStore stores objects and derives their public URLs.
type BlobStore struct {
	client ObjectPutter
	cfg    Config
}

func NewBlobStore(client ObjectPutter, cfg Config) *BlobStore {
	return &BlobStore{client: client, cfg: cfg}
}

// NewS3Client creates a client for cfg. Wasabi needs its endpoint and
// path-style addressing.
func NewS3Client(ctx context.Context, cfg Config) (*s3.Client, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(cfg.Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Provider == ProviderWasabi {
		return s3.NewFromConfig(awsCfg, func(o *s3.Options) {
			o.BaseEndpoint = aws.String("https://" + cfg.endpoint())
			o.UsePathStyle = true
		}), nil
	}
	return s3.NewFromConfig(awsCfg), nil
}

// Upload writes data under path in bucket and returns the object key.
func (b *BlobStore) Upload(ctx context.Context, bucket, path string, data []byte, contentType string) (string, error) {
	_, err := b.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(path),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return "", fmt.Errorf("put %s/%s: %w", bucket, path, err)
	}
	return path, nil
}

// PublicURL returns the URL an uploaded object is served from.
func (b *BlobStore) PublicURL(bucket, path string) string {
	key := escapeKey(path)
	switch {
	case b.cfg.PublicBaseURL != "":
		return strings.TrimRight(b.cfg.PublicBaseURL, "/") + "/" + url.PathEscape(bucket) + "/" + key
	case b.cfg.Provider == ProviderWasabi:
		return "https://" + b.cfg.endpoint() + "/" + url.PathEscape(bucket) + "/" + key
	default:
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, b.cfg.Region, key)
	}
}

func escapeKey(path string) string {
	parts := strings.Split(path, "/")
	for i, p := range parts {
		parts[i] = url.PathEscape(p)
	}
	return strings.Join(parts, "/")
}
