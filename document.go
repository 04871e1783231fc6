package web2md

import (
	"context"
	"time"
)

// Document is the result of a conversion: the Markdown text along with the
// title and source URL of the page it came from.
type Document struct {
	ID          string    `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Markdown    string    `json:"markdown"`
	ContentHash string    `json:"contentHash"`
	ConvertedAt time.Time `json:"convertedAt"`
}

// Validate returns an error if the document contains invalid fields.
func (d *Document) Validate() error {
	if d.URL == "" {
		return Errorf(EINVALID, "document URL required")
	}
	if d.Markdown == "" {
		return Errorf(EINVALID, "document markdown required")
	}
	return nil
}

// Filename returns the suggested download filename for the document.
func (d *Document) Filename() string {
	return MarkdownFilename(d.Title)
}

// DocumentService stores the conversion history.
type DocumentService interface {
	// CreateDocument records a conversion. ID, ContentHash and ConvertedAt
	// are assigned by the implementation.
	CreateDocument(ctx context.Context, doc *Document) error

	// FindDocumentByID retrieves a document by ID.
	// Returns ENOTFOUND if document does not exist.
	FindDocumentByID(ctx context.Context, id string) (*Document, error)

	// FindDocuments retrieves documents matching the filter, newest first.
	FindDocuments(ctx context.Context, filter DocumentFilter) ([]*Document, error)

	// DeleteDocument permanently removes a document.
	// Returns ENOTFOUND if document does not exist.
	DeleteDocument(ctx context.Context, id string) error
}

// DocumentFilter represents a filter for FindDocuments.
type DocumentFilter struct {
	ID          *string `json:"id"`
	URL         *string `json:"url"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
