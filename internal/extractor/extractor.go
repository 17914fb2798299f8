// Package extractor converts uploaded notice files into plain text.
// PDF and plain-text uploads are supported; everything else is rejected
// before any parsing begins.
package extractor

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// MinTextLength is the minimum number of characters an extraction must
// yield to be considered a usable notice.
const MinTextLength = 50

const (
	ContentTypePDF  = "application/pdf"
	ContentTypeText = "text/plain"
)

// Options tunes a single extraction. Progress, when set, is invoked once
// per PDF page before that page is read; it is purely observational and
// must not affect the extracted output.
type Options struct {
	Progress func(page, total int)
}

// Extract converts file data into plain text. The content class is
// resolved from the filename extension first and the reported content type
// second. The returned text is trimmed and guaranteed to be at least
// MinTextLength characters long.
func Extract(data []byte, filename, contentType string, opts Options) (string, error) {
	var (
		text string
		err  error
	)

	switch ResolveContentType(filename, contentType) {
	case ContentTypePDF:
		text, err = ExtractPDF(data, opts.Progress)
	case ContentTypeText:
		text, err = ExtractTXT(data)
	default:
		return "", fmt.Errorf("%w: %q (only PDF and plain text are supported)", ErrUnsupportedFileType, contentType)
	}

	if err != nil {
		return "", err
	}

	if utf8.RuneCountInString(strings.TrimSpace(text)) < MinTextLength {
		return "", fmt.Errorf("%w: the document must contain at least %d characters of text", ErrDocumentTooShort, MinTextLength)
	}

	return text, nil
}

// ResolveContentType determines the effective content type from the file
// extension, falling back to the reported header value.
func ResolveContentType(filename, headerContentType string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		return ContentTypePDF
	case ".txt":
		return ContentTypeText
	}

	// Strip any charset parameter, e.g. "text/plain; charset=utf-8".
	ct := headerContentType
	if i := strings.Index(ct, ";"); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.ToLower(strings.TrimSpace(ct))

	switch ct {
	case ContentTypePDF:
		return ContentTypePDF
	case ContentTypeText, "text/txt", "application/txt", "application/x-txt":
		return ContentTypeText
	}

	return ct
}
