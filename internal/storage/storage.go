package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"docstore/internal/config"
)

// Package storage contains blob storage abstractions with a local disk
// implementation and an S3-compatible (MinIO) one. Blobs are addressed by a
// flat key, the document's storage name.

// ErrObjectNotFound is returned by Get when no blob exists under the key.
var ErrObjectNotFound = errors.New("object not found")

// ErrInvalidKey is returned for keys that are not a single plain path element.
var ErrInvalidKey = errors.New("invalid object key")

// PutObjectOptions define optional parameters for uploading objects.
// Size should be the exact number of bytes if known; if unknown, set to -1 and the implementation
// will buffer/chunk as supported by the backend.
// ContentType and Metadata are optional.
type PutObjectOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// ObjectInfo contains basic information about an object in storage.
// Size is the number of bytes actually stored.
type ObjectInfo struct {
	Key          string
	Size         int64
	ETag         string
	ContentType  string
	LastModified time.Time
	Metadata     map[string]string
}

// Storage is a reusable blob storage client interface.
// Methods use context and streaming readers/writers.
type Storage interface {
	// Put stores the reader's content under the given key. The blob is complete when Put returns nil.
	Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error)
	// Get retrieves an object's content as a streaming reader alongside its info.
	// Missing objects yield ErrObjectNotFound.
	Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error)
	// Delete removes an object by key. Deleting a missing object is not an error.
	Delete(ctx context.Context, key string) error
}

// New builds the backend selected by cfg.Backend.
func New(cfg config.StorageConfig) (Storage, error) {
	switch cfg.Backend {
	case "", "disk":
		return NewDisk(cfg.Root)
	case "minio":
		return NewMinIO(cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}
