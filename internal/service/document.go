package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"sort"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"docstore/internal/filename"
	"docstore/internal/logging"
	"docstore/internal/model"
	"docstore/internal/pagination"
	"docstore/internal/repository"
	"docstore/internal/storage"
)

// Error kinds returned by DocumentService. Failures wrap one of these together
// with the underlying cause, so callers match with errors.Is.
var (
	ErrEmptyFilename      = errors.New("empty filename")
	ErrInvalidFileType    = errors.New("invalid file type")
	ErrStorageFailure     = errors.New("storage failure")
	ErrPersistenceFailure = errors.New("persistence failure")
	ErrNotFound           = errors.New("document not found")
	ErrReaderNil          = errors.New("reader is nil")
)

const (
	defaultPerPage = 10
	cleanupTimeout = 5 * time.Second
)

var tracer = otel.Tracer("docstore/internal/service")

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.Document `json:"documents"`
	Total int              `json:"total"`
}

// DocumentService defines the use cases for handling documents.
type DocumentService interface {
	// Create validates the extension, writes the blob under a fresh storage name and
	// records its metadata. If the record cannot be saved the blob is removed again.
	Create(ctx context.Context, originalName, extension string, r io.Reader) (*model.Document, error)

	// Get returns a document's metadata by its ID.
	Get(ctx context.Context, id int64) (*model.Document, error)

	// Open returns the blob content and metadata of a document. The caller closes the reader.
	Open(ctx context.Context, id int64) (io.ReadCloser, *model.Document, error)

	// List returns a page of documents (newest first) and the total count.
	List(ctx context.Context, page, perPage int) (*DocumentListResult, error)
}

// Options configures a DocumentService.
type Options struct {
	// AllowedExtensions lists accepted extensions without the leading dot.
	AllowedExtensions []string
	// Logger receives cleanup failures. Defaults to logging.Default().
	Logger *logging.Logger
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store   storage.Storage
	repo    repository.DocumentRepository
	allowed map[string]struct{}
	log     *logging.Logger
	now     func() time.Time
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, repo repository.DocumentRepository, opts Options) DocumentService {
	allowed := make(map[string]struct{}, len(opts.AllowedExtensions))
	for _, ext := range opts.AllowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	log := opts.Logger
	if log == nil {
		log = logging.Default()
	}
	return &documentService{
		store:   store,
		repo:    repo,
		allowed: allowed,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
	}
}

func (s *documentService) Create(ctx context.Context, originalName, extension string, r io.Reader) (doc *model.Document, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Create")
	defer func() { endSpan(span, err) }()

	if strings.TrimSpace(originalName) == "" {
		return nil, ErrEmptyFilename
	}
	if r == nil {
		return nil, ErrReaderNil
	}
	ext := strings.ToLower(extension)
	if _, ok := s.allowed[ext]; !ok {
		return nil, fmt.Errorf("%w: %q (allowed: %s)", ErrInvalidFileType, extension, s.allowedList())
	}

	display := filename.DisplayName(originalName, ext)
	key := filename.StorageName(originalName)
	span.SetAttributes(
		attribute.String("document.storage_name", key),
		attribute.String("document.extension", ext),
	)

	// The blob must be complete and measured before the record is committed.
	info, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        -1,
		ContentType: contentType(ext),
		Metadata: map[string]string{
			"original-filename": display,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}

	stored, err := s.repo.Create(ctx, &model.Document{
		StorageName: key,
		DisplayName: display,
		Size:        info.Size,
		Extension:   ext,
		CreatedAt:   s.now(),
	})
	if err != nil {
		s.removeOrphan(ctx, key, err)
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	span.SetAttributes(attribute.Int64("document.id", stored.ID), attribute.Int64("document.size", stored.Size))
	return stored, nil
}

// removeOrphan deletes a blob whose record could not be saved. It runs even if the
// request context is already canceled; its own failure is only logged.
func (s *documentService) removeOrphan(ctx context.Context, key string, cause error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()

	if err := s.store.Delete(ctx, key); err != nil {
		s.log.Error("orphan blob cleanup failed", err, map[string]any{
			"component":   "service",
			"event":       "blob_cleanup_failed",
			"status":      "error",
			"storage_key": key,
			"cause":       cause.Error(),
		})
	}
}

// Get returns a document by ID.
func (s *documentService) Get(ctx context.Context, id int64) (doc *model.Document, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Get", trace.WithAttributes(attribute.Int64("document.id", id)))
	defer func() { endSpan(span, err) }()

	return s.find(ctx, id)
}

func (s *documentService) find(ctx context.Context, id int64) (*model.Document, error) {
	if id <= 0 {
		return nil, ErrNotFound
	}
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	return doc, nil
}

// Open checks both the record and the blob; either one missing is ErrNotFound.
func (s *documentService) Open(ctx context.Context, id int64) (rc io.ReadCloser, doc *model.Document, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.Open", trace.WithAttributes(attribute.Int64("document.id", id)))
	defer func() { endSpan(span, err) }()

	doc, err = s.find(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	rc, _, err = s.store.Get(ctx, doc.StorageName)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			s.log.Log(map[string]any{
				"level":       "warn",
				"component":   "service",
				"event":       "blob_missing",
				"document_id": doc.ID,
				"storage_key": doc.StorageName,
			})
			return nil, nil, ErrNotFound
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
	return rc, doc, nil
}

// List returns paginated documents without exposing repository types.
func (s *documentService) List(ctx context.Context, page, perPage int) (res *DocumentListResult, err error) {
	ctx, span := tracer.Start(ctx, "DocumentService.List")
	defer func() { endSpan(span, err) }()

	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		perPage = defaultPerPage
	}
	offset := pagination.Offset(pagination.Params{Page: page, PerPage: perPage})

	out, err := s.repo.List(ctx, repository.PageQuery{Limit: perPage, Offset: offset})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	return &DocumentListResult{Items: out.Items, Total: out.Total}, nil
}

func (s *documentService) allowedList() string {
	exts := make([]string, 0, len(s.allowed))
	for ext := range s.allowed {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return strings.Join(exts, ", ")
}

func contentType(ext string) string {
	if ct := mime.TypeByExtension("." + ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}
