package blobproxy

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Object is one bucket object as returned by an ObjectLister.
type Object struct {
	Key          string
	Size         int64
	LastModified time.Time
	ContentType  string
}

// ObjectLister lists the objects under a key prefix.
type ObjectLister interface {
	ListObjects(ctx context.Context, prefix string) ([]Object, error)
}

// MinioConfig describes the bucket to list.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// MinioLister lists a bucket through minio-go.
type MinioLister struct {
	client *minio.Client
	bucket string
}

// NewMinioLister creates a client for cfg. No request is made until the
// first listing.
func NewMinioLister(cfg MinioConfig) (*MinioLister, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client for %s: %w", cfg.Endpoint, err)
	}
	return &MinioLister{client: client, bucket: cfg.Bucket}, nil
}

// Bucket returns the listed bucket name.
func (m *MinioLister) Bucket() string {
	return m.bucket
}

// EndpointURL returns the scheme and host the client talks to.
func (m *MinioLister) EndpointURL() string {
	return m.client.EndpointURL().String()
}

// ListObjects returns every object under prefix, recursing into
// pseudo-directories. The first listing error aborts the whole listing.
func (m *MinioLister) ListObjects(ctx context.Context, prefix string) ([]Object, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	objectCh := m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{
		Prefix:       prefix,
		Recursive:    true,
		WithMetadata: true,
	})

	var objects []Object
	for obj := range objectCh {
		if obj.Err != nil {
			return nil, fmt.Errorf("failed to list bucket %s: %w", m.bucket, obj.Err)
		}
		objects = append(objects, Object{
			Key:          obj.Key,
			Size:         obj.Size,
			LastModified: obj.LastModified,
			ContentType:  objectContentType(obj),
		})
	}
	return objects, nil
}

func objectContentType(obj minio.ObjectInfo) string {
	if obj.ContentType != "" {
		return obj.ContentType
	}
	for _, key := range []string{"content-type", "Content-Type"} {
		if ct := obj.UserMetadata[key]; ct != "" {
			return ct
		}
	}
	return ""
}
