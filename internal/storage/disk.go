package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// diskStorage keeps blobs as plain files directly under root.
// It is safe for concurrent use as long as keys are distinct.
type diskStorage struct {
	root string
}

// NewDisk returns a Storage rooted at dir, creating the directory if needed.
func NewDisk(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create storage root %s: %w", dir, err)
	}
	return &diskStorage{root: dir}, nil
}

func (d *diskStorage) path(key string) (string, error) {
	if key == "" || key != filepath.Base(key) || strings.ContainsAny(key, `/\`) ||
		key == "." || key == ".." || strings.HasSuffix(key, ".tmp") {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(d.root, key), nil
}

// Put writes to a temp file, fsyncs it and renames it into place, so a blob is
// only ever visible under its key once fully written.
func (d *diskStorage) Put(ctx context.Context, key string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	full, err := d.path(key)
	if err != nil {
		return ObjectInfo{}, err
	}

	f, err := os.CreateTemp(d.root, "."+key+".*.tmp")
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()

	size, err := io.Copy(f, r)
	if err != nil {
		f.Close()
		os.Remove(tmp)
		return ObjectInfo{}, fmt.Errorf("write data: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return ObjectInfo{}, fmt.Errorf("fsync: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return ObjectInfo{}, fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp, full); err != nil {
		os.Remove(tmp)
		return ObjectInfo{}, fmt.Errorf("rename into place: %w", err)
	}

	st, err := os.Stat(full)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("stat stored file: %w", err)
	}
	return ObjectInfo{
		Key:          key,
		Size:         size,
		ContentType:  opt.ContentType,
		LastModified: st.ModTime(),
		Metadata:     opt.Metadata,
	}, nil
}

// Get opens the blob for reading. The caller must close the reader.
func (d *diskStorage) Get(ctx context.Context, key string) (io.ReadCloser, ObjectInfo, error) {
	full, err := d.path(key)
	if err != nil {
		return nil, ObjectInfo{}, err
	}
	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ObjectInfo{}, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return nil, ObjectInfo{}, fmt.Errorf("open %s: %w", key, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, ObjectInfo{}, fmt.Errorf("stat %s: %w", key, err)
	}
	if st.IsDir() {
		f.Close()
		return nil, ObjectInfo{}, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
	}
	return f, ObjectInfo{
		Key:          key,
		Size:         st.Size(),
		LastModified: st.ModTime(),
	}, nil
}

// Delete removes the blob. A missing file is not an error.
func (d *diskStorage) Delete(ctx context.Context, key string) error {
	full, err := d.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}
