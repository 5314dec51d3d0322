package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
)

// Buckets used by the media flows. On backends with a single physical
// bucket they become the first path segment of the object key.
const (
	BucketAvatars   = "avatars"
	BucketPortfolio = "portfolio"
)

var ErrObjectNotFound = errors.New("object not found")

// Storage defines the interface for file storage operations
type Storage interface {
	// Save stores (or overwrites) an object at the given path
	Save(ctx context.Context, path string, reader io.Reader, contentType string) error

	// Get retrieves an object; ErrObjectNotFound when it is missing
	Get(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete removes an object, missing objects are not an error
	Delete(ctx context.Context, path string) error

	Exists(ctx context.Context, path string) (bool, error)

	// GetURL returns the public URL for the object
	GetURL(ctx context.Context, path string) (string, error)
}

// Config holds storage configuration
type Config struct {
	Type       string // local, s3, cloudflare_r2
	BasePath   string // For local storage
	BaseURL    string // Public URL base
	Bucket     string // For S3/R2
	Region     string // For S3
	AccessKey  string // For S3/R2
	SecretKey  string // For S3/R2
	Endpoint   string // For R2 or custom S3
	UseSSL     bool   // For S3/R2
	PublicRead bool   // Make files public by default
}

// NewStorage creates a new storage instance based on configuration
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	case "cloudflare_r2":
		return NewCloudflareR2Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// ObjectPath joins a logical bucket and an object key. Keys may not
// escape their bucket.
func ObjectPath(bucket, key string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	if bucket == "" || key == "" {
		return "", fmt.Errorf("bucket and key are required")
	}
	clean := path.Clean(key)
	if clean != key || strings.HasPrefix(clean, "..") {
		return "", fmt.Errorf("invalid object key %q", key)
	}
	return bucket + "/" + clean, nil
}

// ObjectKey returns the per-owner key "{ownerID}/{name}.{ext}".
func ObjectKey(ownerID, name, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	if ext == "" {
		return ownerID + "/" + name
	}
	return ownerID + "/" + name + "." + ext
}
