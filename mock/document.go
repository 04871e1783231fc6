package mock

import (
	"context"

	"github.com/fwojciec/web2md"
)

var _ web2md.DocumentService = (*DocumentService)(nil)

// DocumentService is a mock implementation of web2md.DocumentService.
type DocumentService struct {
	CreateDocumentFn   func(ctx context.Context, doc *web2md.Document) error
	FindDocumentByIDFn func(ctx context.Context, id string) (*web2md.Document, error)
	FindDocumentsFn    func(ctx context.Context, filter web2md.DocumentFilter) ([]*web2md.Document, error)
	DeleteDocumentFn   func(ctx context.Context, id string) error
}

func (s *DocumentService) CreateDocument(ctx context.Context, doc *web2md.Document) error {
	return s.CreateDocumentFn(ctx, doc)
}

func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*web2md.Document, error) {
	return s.FindDocumentByIDFn(ctx, id)
}

func (s *DocumentService) FindDocuments(ctx context.Context, filter web2md.DocumentFilter) ([]*web2md.Document, error) {
	return s.FindDocumentsFn(ctx, filter)
}

func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	return s.DeleteDocumentFn(ctx, id)
}
