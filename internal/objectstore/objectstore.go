// Package objectstore wraps the S3 operations photodrive needs: multipart
// uploads, managed single-shot uploads, pre-signed GET URLs and session
// listing. All uploads of one batch live under uploads/<session-id>/.
package objectstore

import (
	"context"
	"fmt"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/photodrive/photodrive/internal/config"
)

const (
	// UploadPrefix is the bucket prefix all upload sessions live under.
	UploadPrefix = "uploads/"

	// GalleryObject is the per-session gallery page object name.
	GalleryObject = "gallery.html"
)

// SessionKey builds the object key for a file within an upload session:
// uploads/<session-id>/<name>.
func SessionKey(sessionID, name string) string {
	return path.Join("uploads", sessionID, name)
}

// Client is the subset of the S3 API the store uses. The manager interface
// covers PutObject and the multipart trio; listing is added for sessions.
type Client interface {
	manager.UploadAPIClient
	ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error)
}

// Presigner generates pre-signed GET requests.
type Presigner interface {
	PresignGetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Store performs uploads and presigning against a single S3 endpoint.
type Store struct {
	client      Client
	presigner   Presigner
	partSize    int64
	concurrency int
}

// New builds a store from the environment-driven S3 configuration. Credentials
// come from the default AWS chain (env vars, shared config, IMDS).
func New(ctx context.Context, cfg config.S3Config) (*Store, error) {
	var optFns []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		optFns = append(optFns, awsconfig.WithRegion(cfg.Region))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	return NewWithClient(client, s3.NewPresignClient(client), cfg.PartSize, cfg.Concurrency), nil
}

// NewWithClient wires explicit clients, used by New and by tests.
func NewWithClient(client Client, presigner Presigner, partSize int64, concurrency int) *Store {
	if partSize <= 0 {
		partSize = config.DefaultPartSize
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &Store{
		client:      client,
		presigner:   presigner,
		partSize:    partSize,
		concurrency: concurrency,
	}
}
