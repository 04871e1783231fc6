package fs

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/web2md"
)

// Ensure FileStore implements web2md.PageStore at compile time.
var _ web2md.PageStore = (*FileStore)(nil)

// FileStore writes the documents of a batch run as a directory tree that
// mirrors the URL paths. Documents are staged in baseDir/name.tmp and the
// staging directory replaces baseDir/name on Commit.
type FileStore struct {
	baseDir string
	name    string
}

// NewFileStore creates a new FileStore.
func NewFileStore(baseDir, name string) *FileStore {
	return &FileStore{baseDir: baseDir, name: name}
}

// Dir returns the directory that Commit publishes to.
func (s *FileStore) Dir() string {
	return filepath.Join(s.baseDir, s.name)
}

func (s *FileStore) stagingDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

// Save stages doc with its frontmatter.
func (s *FileStore) Save(ctx context.Context, doc *web2md.Document) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(doc.URL)
	if err != nil {
		return web2md.Errorf(web2md.EINVALID, "invalid document URL %q: %v", doc.URL, err)
	}

	staging := s.stagingDir()
	fullPath := filepath.Join(staging, relPath)
	if rel, err := filepath.Rel(staging, fullPath); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return web2md.Errorf(web2md.EINVALID, "path traversal in %s", doc.URL)
	}

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return err
	}

	content, err := FormatDocument(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, []byte(content), 0644)
}

// Commit replaces the published directory with the staged documents.
func (s *FileStore) Commit() error {
	if err := os.MkdirAll(s.stagingDir(), 0755); err != nil {
		return err
	}
	if err := os.RemoveAll(s.Dir()); err != nil {
		return err
	}
	return os.Rename(s.stagingDir(), s.Dir())
}

// Abort removes the staged documents and leaves published output untouched.
func (s *FileStore) Abort() error {
	return os.RemoveAll(s.stagingDir())
}
