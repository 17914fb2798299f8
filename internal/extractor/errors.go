package extractor

import "errors"

// Extraction failures fall into a fixed taxonomy so the handler layer can
// map each kind to a distinct user-facing message. UnknownExtractionFailure
// is represented by wrapping ErrExtractionFailed around the parser's own
// message.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrCorruptDocument     = errors.New("invalid PDF file")
	ErrPasswordProtected   = errors.New("password-protected PDF")
	ErrNoExtractableText   = errors.New("no extractable text")
	ErrDocumentTooShort    = errors.New("document too short")
	ErrExtractionFailed    = errors.New("text extraction failed")
)
