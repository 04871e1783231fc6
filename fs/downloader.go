package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fwojciec/web2md"
	"github.com/google/uuid"
)

// maxCollisions bounds the numbered variants tried for a taken name.
const maxCollisions = 1000

// Ensure Downloader implements web2md.DownloadSink at compile time.
var _ web2md.DownloadSink = (*Downloader)(nil)

// Downloader saves Markdown files into a directory. Existing files are never
// overwritten: a taken name gets a numeric suffix, as a browser save dialog
// would do. Files appear atomically under their final name.
type Downloader struct {
	dir string

	mu    sync.Mutex
	paths map[string]string
}

// NewDownloader returns a Downloader writing into dir. The directory is
// created on first use.
func NewDownloader(dir string) *Downloader {
	return &Downloader{dir: dir, paths: make(map[string]string)}
}

// Download writes content and returns a new download ID.
func (d *Downloader) Download(ctx context.Context, content []byte, suggestedFilename string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", web2md.Errorf(web2md.EDOWNLOAD, "download canceled: %v", err)
	}
	if err := os.MkdirAll(d.dir, 0755); err != nil {
		return "", web2md.Errorf(web2md.EDOWNLOAD, "creating %s: %v", d.dir, err)
	}

	tmp, err := writeTemp(d.dir, content)
	if err != nil {
		return "", web2md.Errorf(web2md.EDOWNLOAD, "writing %s: %v", suggestedFilename, err)
	}
	defer os.Remove(tmp)

	base := downloadBase(suggestedFilename)
	for i := 0; i < maxCollisions; i++ {
		name := base + ".md"
		if i > 0 {
			name = fmt.Sprintf("%s-%d.md", base, i)
		}
		target := filepath.Join(d.dir, name)

		err := os.Link(tmp, target)
		if errors.Is(err, os.ErrExist) {
			continue
		}
		if err != nil {
			return "", web2md.Errorf(web2md.EDOWNLOAD, "saving %s: %v", name, err)
		}

		id := uuid.NewString()
		d.mu.Lock()
		d.paths[id] = target
		d.mu.Unlock()
		return id, nil
	}
	return "", web2md.Errorf(web2md.EDOWNLOAD, "no free name for %s in %s", base, d.dir)
}

// Path returns the file written by the download with the given ID.
func (d *Downloader) Path(id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, ok := d.paths[id]
	return p, ok
}

func downloadBase(suggested string) string {
	name := filepath.Base(strings.TrimSpace(suggested))
	name = strings.TrimSuffix(name, ".md")
	if name = web2md.SanitizeFilename(name); name == "" || name == "." {
		return web2md.DefaultFilename
	}
	return name
}

func writeTemp(dir string, content []byte) (string, error) {
	f, err := os.CreateTemp(dir, ".web2md-*.tmp")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
