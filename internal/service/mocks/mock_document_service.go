package mocks

import (
	"context"
	"io"

	"docstore/internal/model"
	"docstore/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockDocumentService struct {
	mock.Mock
}

func (m *MockDocumentService) Create(ctx context.Context, originalName, extension string, r io.Reader) (*model.Document, error) {
	args := m.Called(ctx, originalName, extension, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Get(ctx context.Context, id int64) (*model.Document, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Document), args.Error(1)
}

func (m *MockDocumentService) Open(ctx context.Context, id int64) (io.ReadCloser, *model.Document, error) {
	args := m.Called(ctx, id)
	rc, _ := args.Get(0).(io.ReadCloser)
	doc, _ := args.Get(1).(*model.Document)
	return rc, doc, args.Error(2)
}

func (m *MockDocumentService) List(ctx context.Context, page, perPage int) (*service.DocumentListResult, error) {
	args := m.Called(ctx, page, perPage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DocumentListResult), args.Error(1)
}
