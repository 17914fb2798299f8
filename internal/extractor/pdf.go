package extractor

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// ExtractPDF reads every page of a PDF in order and returns the pages'
// collapsed text joined by blank lines. Pages that contribute no text are
// skipped. progress may be nil.
//
// The underlying parser panics on some malformed inputs, so the whole walk
// runs behind a recover that reports the file as corrupt.
func ExtractPDF(data []byte, progress func(page, total int)) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCorruptDocument, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", classifyPDFError(err)
	}

	var textBuilder strings.Builder
	totalPages := reader.NumPage()

	for i := 1; i <= totalPages; i++ {
		if progress != nil {
			progress(i, totalPages)
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		content, err := page.GetPlainText(nil)
		if err != nil {
			return "", classifyPDFError(err)
		}

		pageText := strings.TrimSpace(whitespaceRun.ReplaceAllString(content, " "))
		if pageText != "" {
			textBuilder.WriteString(pageText)
			textBuilder.WriteString("\n\n")
		}
	}

	extracted := strings.TrimSpace(textBuilder.String())
	if extracted == "" {
		return "", fmt.Errorf("%w: the PDF may be image-based or encrypted", ErrNoExtractableText)
	}

	return extracted, nil
}

// classifyPDFError maps parser failures onto the extraction taxonomy. The
// parser exposes a structured error only for bad passwords; everything
// else is classified by message, with a pass-through wrapper as the last
// resort.
func classifyPDFError(err error) error {
	if errors.Is(err, pdf.ErrInvalidPassword) {
		return fmt.Errorf("%w: %v", ErrPasswordProtected, err)
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "password") || strings.Contains(msg, "encrypted"):
		return fmt.Errorf("%w: %v", ErrPasswordProtected, err)
	case strings.Contains(msg, "invalid pdf") || strings.Contains(msg, "not a pdf") || strings.Contains(msg, "malformed"):
		return fmt.Errorf("%w: %v", ErrCorruptDocument, err)
	}

	return fmt.Errorf("%w: %v", ErrExtractionFailed, err)
}
