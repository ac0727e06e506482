package repository

import (
	"context"

	"docstore/internal/model"
)

// DocumentRepository defines data access for documents using SQL queries only.
// No business logic here, strictly persistence operations.
type DocumentRepository interface {
	// Create inserts a new document record inside a single transaction.
	// The ID is assigned by the database; the returned document carries it.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID, or ErrNotFound.
	FindByID(ctx context.Context, id int64) (*model.Document, error)

	// List returns a page of documents, newest first, and the total rows count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Document], error)
}

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
