package storage

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore talks to MinIO with minio-go. Region must be set so signing
// never needs a bucket-location round trip.
type MinioStore struct {
	core   *minio.Core
	bucket string
}

func NewMinioStore(cfg Config) (*MinioStore, error) {
	u, err := parseEndpoint(cfg.Endpoint)
	if err != nil {
		return nil, err
	}

	core, err := minio.NewCore(u.Host, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: u.Scheme == "https",
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio client: %w", err)
	}

	return &MinioStore{core: core, bucket: cfg.Bucket}, nil
}

func (p *MinioStore) PresignPut(ctx context.Context, key string, ttl time.Duration) (string, error) {
	u, err := p.core.PresignedPutObject(ctx, p.bucket, key, ttl)
	if err != nil {
		return "", fmt.Errorf("presign put %s: %w", key, err)
	}
	return u.String(), nil
}

func (p *MinioStore) StartMultipart(ctx context.Context, key, contentType string) (string, error) {
	id, err := p.core.NewMultipartUpload(ctx, p.bucket, key, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("create multipart %s: %w", key, err)
	}
	return id, nil
}

func (p *MinioStore) PresignPart(ctx context.Context, key, uploadID string, number int32, ttl time.Duration) (string, error) {
	params := url.Values{}
	params.Set("partNumber", strconv.Itoa(int(number)))
	params.Set("uploadId", uploadID)
	u, err := p.core.Presign(ctx, http.MethodPut, p.bucket, key, ttl, params)
	if err != nil {
		return "", fmt.Errorf("presign part %d of %s: %w", number, key, err)
	}
	return u.String(), nil
}

func (p *MinioStore) CompleteMultipart(ctx context.Context, key, uploadID string, parts []Part) error {
	completed := make([]minio.CompletePart, 0, len(parts))
	for _, part := range sortedParts(parts) {
		completed = append(completed, minio.CompletePart{PartNumber: int(part.Number), ETag: part.ETag})
	}
	if _, err := p.core.CompleteMultipartUpload(ctx, p.bucket, key, uploadID, completed, minio.PutObjectOptions{}); err != nil {
		return fmt.Errorf("complete multipart %s: %w", key, err)
	}
	return nil
}

func (p *MinioStore) AbortMultipart(ctx context.Context, key, uploadID string) error {
	if err := p.core.AbortMultipartUpload(ctx, p.bucket, key, uploadID); err != nil {
		return fmt.Errorf("abort multipart %s: %w", key, err)
	}
	return nil
}

func (p *MinioStore) Size(ctx context.Context, key string) (int64, error) {
	info, err := p.core.StatObject(ctx, p.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return 0, fmt.Errorf("stat %s: %w", key, ErrObjectNotFound)
		}
		return 0, fmt.Errorf("stat %s: %w", key, err)
	}
	return info.Size, nil
}
