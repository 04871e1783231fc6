package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/web2md"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ web2md.DocumentService = (*DocumentService)(nil)

const documentColumns = "id, url, title, markdown, content_hash, converted_at"

// DocumentService implements web2md.DocumentService using SQLite.
type DocumentService struct {
	db  *DB
	now func() time.Time
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(db *DB) *DocumentService {
	return &DocumentService{db: db, now: time.Now}
}

// HashContent returns the hex encoded xxHash of markdown.
func HashContent(markdown string) string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], xxhash.Sum64String(markdown))
	return hex.EncodeToString(b[:])
}

// CreateDocument records a conversion.
func (s *DocumentService) CreateDocument(ctx context.Context, doc *web2md.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	doc.ID = uuid.NewString()
	doc.ContentHash = HashContent(doc.Markdown)
	doc.ConvertedAt = s.now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (`+documentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?)
	`, doc.ID, doc.URL, doc.Title, doc.Markdown, doc.ContentHash, formatTime(doc.ConvertedAt))
	return err
}

// FindDocumentByID retrieves a document by ID.
func (s *DocumentService) FindDocumentByID(ctx context.Context, id string) (*web2md.Document, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+documentColumns+" FROM documents WHERE id = ?", id)

	doc, err := scanDocument(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, web2md.Errorf(web2md.ENOTFOUND, "document %s not found", id)
	}
	return doc, err
}

// FindDocuments retrieves documents matching the filter, newest first.
func (s *DocumentService) FindDocuments(ctx context.Context, filter web2md.DocumentFilter) ([]*web2md.Document, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + documentColumns + " FROM documents WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY converted_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := []*web2md.Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}

// DeleteDocument permanently removes a document.
func (s *DocumentService) DeleteDocument(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM documents WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return web2md.Errorf(web2md.ENOTFOUND, "document %s not found", id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanDocument(row scanner) (*web2md.Document, error) {
	var doc web2md.Document
	var convertedAt string

	if err := row.Scan(&doc.ID, &doc.URL, &doc.Title, &doc.Markdown, &doc.ContentHash, &convertedAt); err != nil {
		return nil, err
	}

	t, err := parseTime(convertedAt, "converted_at")
	if err != nil {
		return nil, err
	}
	doc.ConvertedAt = t
	return &doc, nil
}
