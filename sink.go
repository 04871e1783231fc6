package web2md

import (
	"context"
	"regexp"
	"strings"
)

// DefaultFilename is used when a document has no usable title.
const DefaultFilename = "webpage"

// maxFilenameLen is the maximum length of a sanitized filename in runes.
const maxFilenameLen = 100

// DownloadSink saves converted Markdown for the user.
type DownloadSink interface {
	// Download saves content under a name derived from suggestedFilename and
	// returns an identifier for the download.
	// Returns EDOWNLOAD if the content cannot be saved.
	Download(ctx context.Context, content []byte, suggestedFilename string) (downloadID string, err error)
}

// PageStore collects the documents of a batch run and publishes them
// together once the run completes.
type PageStore interface {
	// Save stages doc for publication.
	Save(ctx context.Context, doc *Document) error

	// Commit publishes every staged document, replacing earlier output.
	Commit() error

	// Abort discards staged documents.
	Abort() error
}

// Clipboard copies text for the user.
type Clipboard interface {
	// Copy places text on the clipboard.
	// Returns ECLIPBOARD if every copy mechanism failed.
	Copy(text string) error
}

var (
	invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	whitespaceRun        = regexp.MustCompile(`\s+`)
)

// SanitizeFilename makes name safe for use as a file name: characters that
// are invalid on common file systems are removed, whitespace runs become a
// single dash, the result is truncated to 100 characters, lowercased and
// stripped of leading and trailing dashes.
func SanitizeFilename(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "")
	name = whitespaceRun.ReplaceAllString(name, "-")
	if r := []rune(name); len(r) > maxFilenameLen {
		name = string(r[:maxFilenameLen])
	}
	name = strings.ToLower(name)
	return strings.Trim(name, "-")
}

// MarkdownFilename returns the .md file name for a document titled title.
func MarkdownFilename(title string) string {
	name := SanitizeFilename(title)
	if name == "" {
		name = DefaultFilename
	}
	return name + ".md"
}
