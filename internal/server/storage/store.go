package storage

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Backends understood by New.
const (
	BackendS3    = "s3"
	BackendMinio = "minio"
)

// ErrObjectNotFound is returned by Size when nothing is stored under the key.
var ErrObjectNotFound = errors.New("object not found")

// Part is one uploaded part of a multipart upload as the client reported it.
type Part struct {
	Number int32
	ETag   string
}

// ObjectStore is the slice of S3 the upload service needs: presigned
// single PUTs, presigned multipart parts, and the server-side calls that
// open, close and inspect them.
type ObjectStore interface {
	PresignPut(ctx context.Context, key string, ttl time.Duration) (string, error)

	StartMultipart(ctx context.Context, key, contentType string) (string, error)
	PresignPart(ctx context.Context, key, uploadID string, number int32, ttl time.Duration) (string, error)
	CompleteMultipart(ctx context.Context, key, uploadID string, parts []Part) error
	AbortMultipart(ctx context.Context, key, uploadID string) error

	// Size returns the stored object's length in bytes.
	Size(ctx context.Context, key string) (int64, error)
}

// Config locates the bucket and carries static credentials.
type Config struct {
	Backend   string
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
}

// New returns the store for cfg.Backend.
func New(ctx context.Context, cfg Config) (ObjectStore, error) {
	switch cfg.Backend {
	case BackendS3, "":
		return NewS3Store(ctx, cfg)
	case BackendMinio:
		return NewMinioStore(cfg)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

func parseEndpoint(endpoint string) (*url.URL, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("parse endpoint %q: %w", endpoint, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("endpoint %q has no host", endpoint)
	}
	return u, nil
}
